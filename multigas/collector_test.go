package multigas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockMultiGasToRecord(t *testing.T) {
	blockMultiGas := &BlockMultiGas{
		MultiGas: *MultiGasFromMap(map[ResourceKind]uint64{
			ResourceKindComputation:   100,
			ResourceKindHistoryGrowth: 50,
			ResourceKindStorageAccess: 200,
			ResourceKindStorageGrowth: 1000,
			ResourceKindUnknown:       10,
		}),
		BlockNumber: 12345,
		BlockHash:   "0xabcdef123456",
	}

	record := blockMultiGas.ToRecord()

	assert.Equal(t, uint64(12345), record.BlockNumber)
	assert.Equal(t, "0xabcdef123456", record.BlockHash)
	assert.Equal(t, uint64(100), record.Computation)
	assert.Equal(t, uint64(50), record.HistoryGrowth)
	assert.Equal(t, uint64(200), record.StorageAccess)
	assert.Equal(t, uint64(1000), record.StorageGrowth)
	assert.Equal(t, uint64(10), record.Unknown)
	assert.Equal(t, uint64(1360), record.TotalGas) // Sum: 100+50+200+1000+10
	assert.Equal(t, uint64(0), record.Refund)
}

func TestNewCollector(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		expectErr error
	}{
		{
			name:      "valid config",
			config:    Config{OutputDir: t.TempDir(), BatchSize: 10},
			expectErr: nil,
		},
		{
			name:      "empty output directory",
			config:    Config{OutputDir: "", BatchSize: 10},
			expectErr: ErrOutputDirRequired,
		},
		{
			name:      "zero batch size",
			config:    Config{OutputDir: t.TempDir(), BatchSize: 0},
			expectErr: ErrBatchSizeRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := make(chan *BlockMultiGas)

			collector, err := NewCollector(tt.config, input)

			if tt.expectErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectErr, err)
				assert.Nil(t, collector)
			} else {
				require.NoError(t, err)
				require.NotNil(t, collector)
				assert.Equal(t, tt.config.OutputDir, collector.config.OutputDir)
				assert.Equal(t, tt.config.BatchSize, collector.config.BatchSize)

				close(input)
				collector.Wait()
			}
		})
	}
}

func TestDataCollection(t *testing.T) {
	tests := []struct {
		name        string
		batchSize   uint64
		inputData   []*BlockMultiGas
		expectFiles int
	}{
		{name: "empty input", batchSize: 10, inputData: nil, expectFiles: 0},
		{
			name:      "single data",
			batchSize: 1,
			inputData: []*BlockMultiGas{
				{
					MultiGas: *MultiGasFromMap(map[ResourceKind]uint64{
						ResourceKindComputation:   100,
						ResourceKindHistoryGrowth: 50,
						ResourceKindStorageAccess: 200,
						ResourceKindStorageGrowth: 1000,
					}),
					BlockNumber: 12345,
					BlockHash:   "0xabcdef123456",
				},
			},
			expectFiles: 1,
		},
		{
			name:      "multiple data, single batch",
			batchSize: 3,
			inputData: []*BlockMultiGas{
				{
					MultiGas: *MultiGasFromMap(map[ResourceKind]uint64{
						ResourceKindComputation:   100,
						ResourceKindHistoryGrowth: 50,
						ResourceKindStorageAccess: 200,
						ResourceKindStorageGrowth: 1000,
					}),
					BlockNumber: 12345,
					BlockHash:   "0xabcdef123456",
				},
				{
					MultiGas:    *MultiGasFromMap(map[ResourceKind]uint64{ResourceKindUnknown: 10}),
					BlockNumber: 12346,
					BlockHash:   "0x123def456789",
				},
			},
			expectFiles: 1,
		},
		{
			name:      "multiple data, multiple batches",
			batchSize: 3,
			inputData: []*BlockMultiGas{
				{
					MultiGas: *MultiGasFromMap(map[ResourceKind]uint64{
						ResourceKindComputation: 100, ResourceKindHistoryGrowth: 50,
						ResourceKindStorageAccess: 200, ResourceKindStorageGrowth: 1000,
					}),
					BlockNumber: 12345, BlockHash: "0xabcdef123456",
				},
				{
					MultiGas: *MultiGasFromMap(map[ResourceKind]uint64{
						ResourceKindComputation: 200, ResourceKindHistoryGrowth: 100,
						ResourceKindStorageAccess: 300, ResourceKindStorageGrowth: 1500,
					}),
					BlockNumber: 12346, BlockHash: "0x123def456789",
				},
				{
					MultiGas: *MultiGasFromMap(map[ResourceKind]uint64{
						ResourceKindComputation: 300, ResourceKindHistoryGrowth: 150,
						ResourceKindStorageAccess: 400, ResourceKindStorageGrowth: 2000,
					}),
					BlockNumber: 12347, BlockHash: "0x789abc012345",
				},
				{
					MultiGas: *MultiGasFromMap(map[ResourceKind]uint64{
						ResourceKindComputation: 400, ResourceKindHistoryGrowth: 200,
						ResourceKindStorageAccess: 500, ResourceKindStorageGrowth: 2500,
					}),
					BlockNumber: 12348, BlockHash: "0xdef456789abc",
				},
				{
					MultiGas: *MultiGasFromMap(map[ResourceKind]uint64{
						ResourceKindComputation: 500, ResourceKindHistoryGrowth: 100,
						ResourceKindStorageAccess: 200,
					}),
					BlockNumber: 12349, BlockHash: "0x456789abcdef",
				},
			},
			expectFiles: 2, // 3 + 2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			input := make(chan *BlockMultiGas, 10)

			config := Config{OutputDir: tmpDir, BatchSize: tt.batchSize}

			collector, err := NewCollector(config, input)
			require.NoError(t, err)

			for _, multiGas := range tt.inputData {
				input <- multiGas
			}

			close(input)
			collector.Wait()

			files, err := filepath.Glob(filepath.Join(tmpDir, "multigas_batch_*.json"))
			require.NoError(t, err)
			assert.Len(t, files, tt.expectFiles)

			var allRecords []gasRecord
			for _, file := range files {
				data, err := os.ReadFile(file)
				require.NoError(t, err)

				var batch gasBatch
				require.NoError(t, json.Unmarshal(data, &batch))
				allRecords = append(allRecords, batch.Data...)
			}

			require.Len(t, allRecords, len(tt.inputData))

			for i, record := range allRecords {
				expected := tt.inputData[i].ToRecord()
				assert.Equal(t, expected, record)
			}
		})
	}
}

func TestCollectorChannelClosed(t *testing.T) {
	tmpDir := t.TempDir()
	input := make(chan *BlockMultiGas, 10)

	config := Config{OutputDir: tmpDir, BatchSize: 10}

	collector, err := NewCollector(config, input)
	require.NoError(t, err)

	multiGas := &BlockMultiGas{
		MultiGas: *MultiGasFromMap(map[ResourceKind]uint64{
			ResourceKindComputation: 100, ResourceKindHistoryGrowth: 50,
			ResourceKindStorageAccess: 200, ResourceKindStorageGrowth: 1000,
		}),
		BlockNumber: 12345,
		BlockHash:   "0xabcdef123456",
	}

	input <- multiGas
	close(input)

	time.Sleep(100 * time.Millisecond)

	files, err := filepath.Glob(filepath.Join(tmpDir, "multigas_batch_*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)

	collector.Wait()
}
