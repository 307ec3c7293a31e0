package runtime

import "github.com/ethereum/go-ethereum/metrics"

// GasUsageSample records the wasm gas actually consumed by each invocation
// into a sampled histogram, the debug-mode telemetry spec.md §4.9 alludes
// to alongside the per-invocation gas counters. The pack's arbitrum-delta
// files included a sliding-window reservoir (sliding_time_window_array_sample.go)
// built directly on go-ethereum/metrics' own Sample/ChunkedAssociativeArray
// machinery, but that machinery lives inside go-ethereum's metrics package
// itself rather than being duplicated here (see DESIGN.md); this type
// wires the same NewHistogram/Sample shape against go-ethereum/metrics
// directly instead of re-hosting a fork of it.
type GasUsageSample struct {
	histogram metrics.Histogram
}

// NewGasUsageSample creates a histogram over a uniform random sample of at
// most reservoirSize of the recorded invocations' gas usage; it is not a
// window over the most recent invocations.
func NewGasUsageSample(reservoirSize int) *GasUsageSample {
	return &GasUsageSample{
		histogram: metrics.NewHistogram(metrics.NewUniformSample(reservoirSize)),
	}
}

// Record adds one invocation's consumed gas (startGas - gasLeft) to the
// histogram.
func (g *GasUsageSample) Record(gasUsed uint64) {
	g.histogram.Update(int64(gasUsed))
}

func (g *GasUsageSample) Mean() float64            { return g.histogram.Mean() }
func (g *GasUsageSample) Percentile(p float64) float64 { return g.histogram.Percentile(p) }
func (g *GasUsageSample) Count() int64              { return g.histogram.Count() }
