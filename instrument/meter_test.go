package instrument

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbstylus/wasmvm/operator"
	"github.com/arbstylus/wasmvm/wasmmod"
)

func uniformCost(operator.OpCode) uint64 { return 1 }

func TestMeterFlushesAtBlockBoundaryWithGasCheck(t *testing.T) {
	meter := NewMeter(uniformCost, 100)
	mod := wasmmod.NewNativeModule()
	require.NoError(t, meter.UpdateModule(mod))

	fm, err := meter.Instrument(0)
	require.NoError(t, err)

	sink := &OpSink{}
	require.NoError(t, fm.Feed(Instr{Op: operator.OpI32Const, Const: 1}, sink))
	require.NoError(t, fm.Feed(Instr{Op: operator.OpDrop}, sink))
	require.Empty(t, sink.Ops) // not yet flushed: no block boundary seen
	require.NoError(t, fm.Feed(Instr{Op: operator.OpEnd}, sink))

	require.NotEmpty(t, sink.Ops)
	require.Equal(t, operator.OpGlobalGet, sink.Ops[0].Op)
	require.Equal(t, meter.GasLeft(), sink.Ops[0].GlobalIndex)

	// the original three operators are preserved in order at the tail.
	tail := sink.Ops[len(sink.Ops)-3:]
	require.Equal(t, operator.OpI32Const, tail[0].Op)
	require.Equal(t, operator.OpDrop, tail[1].Op)
	require.Equal(t, operator.OpEnd, tail[2].Op)
}

func TestMeterInstrumentBeforeUpdateModuleErrors(t *testing.T) {
	meter := NewMeter(uniformCost, 100)
	_, err := meter.Instrument(0)
	require.Error(t, err)
}
