package operator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEffectClassification(t *testing.T) {
	require.Equal(t, EffectCall, OpCall.Effect())
	require.Equal(t, EffectCallIndirect, OpCallIndirect.Effect())
	require.Equal(t, EffectPush1, OpI32Const.Effect())
	require.Equal(t, EffectPop1, OpI32Add.Effect())
	require.Equal(t, EffectPop2, OpI32Store.Effect())
	require.Equal(t, EffectNeutral, OpNop.Effect())
	require.Equal(t, EffectNeutral, OpMemoryGrow.Effect())
}

func TestScopeOpenClose(t *testing.T) {
	require.True(t, OpBlock.IsScopeOpen())
	require.True(t, OpLoop.IsScopeOpen())
	require.True(t, OpIf.IsScopeOpen())
	require.False(t, OpNop.IsScopeOpen())
	require.True(t, OpEnd.IsScopeClose())
	require.False(t, OpBlock.IsScopeClose())
}

func TestOpCodeString(t *testing.T) {
	require.Equal(t, "call", OpCall.String())
	require.NotEmpty(t, OpI32Add.String())
}
