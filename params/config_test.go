package params

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvmToWasmAndBack(t *testing.T) {
	p := PricingParams{WasmGasPrice: 10000}
	wasmGas, err := p.EvmToWasm(1000)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), wasmGas)
	require.Equal(t, uint64(1000), p.WasmToEvm(wasmGas))
}

func TestEvmToWasmZeroPriceErrors(t *testing.T) {
	p := PricingParams{WasmGasPrice: 0}
	_, err := p.EvmToWasm(1000)
	require.Error(t, err)
}

func TestEvmToWasmSaturatesRatherThanOverflows(t *testing.T) {
	p := PricingParams{WasmGasPrice: 1}
	wasmGas, err := p.EvmToWasm(1 << 62)
	require.NoError(t, err)
	require.Greater(t, wasmGas, uint64(0))
}

func TestNewConfigVersion0IsNoOp(t *testing.T) {
	cfg := NewConfig(0)
	require.Zero(t, cfg.Costs(0))
	require.EqualValues(t, DefaultConfig().HeapBound, cfg.HeapBound)
}

func TestNewConfigVersion1NarrowsHeapAndDepth(t *testing.T) {
	cfg := NewConfig(1)
	require.Less(t, cfg.HeapBound, DefaultConfig().HeapBound)
	require.Less(t, cfg.Depth.MaxDepth, DefaultConfig().Depth.MaxDepth)
	require.EqualValues(t, 1, cfg.Costs(0))
}

func TestNewConfigUnknownVersionPanics(t *testing.T) {
	require.Panics(t, func() { NewConfig(42) })
}

func TestHeapBoundPagesRoundsDown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HeapBound = 65536*3 + 1
	require.EqualValues(t, 3, cfg.HeapBoundPages())
}
