package instrument

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbstylus/wasmvm/operator"
	"github.com/arbstylus/wasmvm/wasmmod"
)

func TestDepthCheckerChargesWorstCaseDepthOnce(t *testing.T) {
	depth := NewDepthChecker(1000, 1000)
	mod := wasmmod.NewNativeModule()
	require.NoError(t, depth.UpdateModule(mod))

	fm, err := depth.Instrument(0)
	require.NoError(t, err)

	sink := &OpSink{}
	ops := []Instr{
		{Op: operator.OpI32Const, Const: 1},
		{Op: operator.OpI32Const, Const: 2},
		{Op: operator.OpI32Add},
		{Op: operator.OpEnd},
	}
	for _, op := range ops {
		require.NoError(t, fm.Feed(op, sink))
	}

	require.NotEmpty(t, sink.Ops)
	require.Equal(t, operator.OpGlobalGet, sink.Ops[0].Op)
	require.Equal(t, depth.Global(), sink.Ops[0].GlobalIndex)
	require.Equal(t, operator.OpEnd, sink.Ops[len(sink.Ops)-1].Op)

	var sawAdd bool
	for _, o := range sink.Ops {
		if o.Op == operator.OpI32Add {
			sawAdd = true
		}
	}
	require.True(t, sawAdd)
}

func TestDepthCheckerRejectsMalformedScoping(t *testing.T) {
	depth := NewDepthChecker(1000, 1000)
	mod := wasmmod.NewNativeModule()
	require.NoError(t, depth.UpdateModule(mod))
	fm, err := depth.Instrument(0)
	require.NoError(t, err)

	sink := &OpSink{}
	require.NoError(t, fm.Feed(Instr{Op: operator.OpEnd}, sink)) // closes the implicit function scope
	err = fm.Feed(Instr{Op: operator.OpEnd}, sink)               // a second End after finalization
	require.Error(t, err)
}

func TestDepthCheckerRejectsFrameExceedingMaxFrameSize(t *testing.T) {
	depth := NewDepthChecker(1000, 2)
	mod := wasmmod.NewNativeModule()
	require.NoError(t, depth.UpdateModule(mod))
	fm, err := depth.Instrument(0)
	require.NoError(t, err)

	sink := &OpSink{}
	ops := []Instr{
		{Op: operator.OpI32Const, Const: 1},
		{Op: operator.OpI32Const, Const: 2},
		{Op: operator.OpI32Add},
		{Op: operator.OpEnd},
	}
	var rejected error
	for _, op := range ops {
		if err := fm.Feed(op, sink); err != nil {
			rejected = err
			break
		}
	}
	require.Error(t, rejected)
	require.Contains(t, rejected.Error(), "frame too large")
}
