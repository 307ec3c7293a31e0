package multigas

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

const (
	// batchFilenameFormat defines the naming pattern for batch files.
	// Format: multigas_batch_<batch_number>_<timestamp>.json
	batchFilenameFormat = "multigas_batch_%010d_%d.json"
)

var (
	ErrOutputDirRequired = errors.New("output directory is required")
	ErrBatchSizeRequired = errors.New("batch size must be greater than zero")
	ErrCreateOutputDir   = errors.New("failed to create output directory")
	ErrMarshalBatch      = errors.New("failed to marshal batch")
	ErrWriteBatchFile    = errors.New("failed to write batch file")
)

// MultiGasFromMap builds a MultiGas from a sparse kind->amount map, useful
// in tests and when assembling a record from an invocation's accumulated
// per-kind totals.
func MultiGasFromMap(m map[ResourceKind]uint64) *MultiGas {
	mg := &MultiGas{}
	for kind, amount := range m {
		mg.Set(kind, amount)
	}
	return mg
}

// BlockMultiGas contains all the multi-dimensional gas data accumulated for a single block
// along with the block's identifying information. Refund is the net gas refund accumulated
// against that block's storage operations (SSTORE clears and resets).
type BlockMultiGas struct {
	MultiGas
	BlockNumber uint64
	BlockHash   string
	Refund      uint64
}

// Config holds the configuration for the MultiGas collector.
type Config struct {
	OutputDir string
	BatchSize uint64
}

// gasRecord is the on-disk shape of one BlockMultiGas entry.
type gasRecord struct {
	BlockNumber   uint64 `json:"block_number"`
	BlockHash     string `json:"block_hash"`
	Computation   uint64 `json:"computation"`
	HistoryGrowth uint64 `json:"history_growth"`
	StorageAccess uint64 `json:"storage_access"`
	StorageGrowth uint64 `json:"storage_growth"`
	Unknown       uint64 `json:"unknown"`
	TotalGas      uint64 `json:"total_gas"`
	Refund        uint64 `json:"refund"`
}

type gasBatch struct {
	BatchTimestamp int64       `json:"batch_timestamp"`
	Data           []gasRecord `json:"data"`
}

// ToRecord converts the BlockMultiGas to its on-disk record shape.
func (bmg *BlockMultiGas) ToRecord() gasRecord {
	return gasRecord{
		BlockNumber:   bmg.BlockNumber,
		BlockHash:     bmg.BlockHash,
		Computation:   bmg.Get(ResourceKindComputation),
		HistoryGrowth: bmg.Get(ResourceKindHistoryGrowth),
		StorageAccess: bmg.Get(ResourceKindStorageAccess),
		StorageGrowth: bmg.Get(ResourceKindStorageGrowth),
		Unknown:       bmg.Get(ResourceKindUnknown),
		TotalGas:      bmg.Total(),
		Refund:        bmg.Refund,
	}
}

// Collector manages the asynchronous collection and batching of multi-dimensional
// gas data from blocks. It receives BlockMultiGas data through a channel, buffers
// it in memory, and periodically writes batches to disk as JSON.
//
// The teacher's equivalent collector serializes batches with protobuf against a
// generated schema; that generated package isn't available to this module, so
// batches are written as plain JSON records instead (see DESIGN.md).
type Collector struct {
	config   Config
	input    <-chan *BlockMultiGas
	wg       sync.WaitGroup
	buffer   []gasRecord
	batchNum uint64
	mu       sync.Mutex
}

// NewCollector creates and starts a new multi-gas data collector.
//
// The caller should close the input channel when done sending data, then call
// Wait() to ensure all data has been written to disk.
func NewCollector(config Config, input <-chan *BlockMultiGas) (*Collector, error) {
	if config.OutputDir == "" {
		return nil, ErrOutputDirRequired
	}
	if config.BatchSize == 0 {
		return nil, ErrBatchSizeRequired
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return nil, ErrCreateOutputDir
	}

	c := &Collector{
		config: config,
		input:  input,
		buffer: make([]gasRecord, 0, config.BatchSize),
	}

	c.wg.Add(1)
	go c.processData()

	return c, nil
}

func (c *Collector) processData() {
	defer c.wg.Done()

	for multiGas := range c.input {
		record := multiGas.ToRecord()

		c.mu.Lock()
		c.buffer = append(c.buffer, record)

		if uint64(len(c.buffer)) >= c.config.BatchSize {
			if err := c.flushBatch(); err != nil {
				log.Error("Failed to flush batch", "error", err)
			}
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	if len(c.buffer) > 0 {
		if err := c.flushBatch(); err != nil {
			log.Error("Failed to flush final batch", "error", err)
		}
	}
	c.mu.Unlock()
}

// flushBatch writes the current buffer contents to disk as a JSON batch
// file, clears the buffer, and increments the batch counter.
func (c *Collector) flushBatch() error {
	if len(c.buffer) == 0 {
		return nil
	}

	batch := gasBatch{
		BatchTimestamp: time.Now().Unix(),
		Data:           append([]gasRecord(nil), c.buffer...),
	}

	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMarshalBatch, err)
	}

	filename := fmt.Sprintf(batchFilenameFormat, c.batchNum, time.Now().Unix())
	path := filepath.Join(c.config.OutputDir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %s", ErrWriteBatchFile, err)
	}

	log.Info("Wrote multi-gas batch",
		"file", filename,
		"count", len(c.buffer),
		"size_bytes", len(data))

	c.buffer = c.buffer[:0]
	c.batchNum++

	return nil
}

// Wait blocks until the collector has finished processing all data and shut down.
func (c *Collector) Wait() {
	c.wg.Wait()
	log.Info("Multi-gas collector stopped")
}
