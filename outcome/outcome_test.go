package outcome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsEscapePassesThroughEscape(t *testing.T) {
	esc := LogicalEscape("bad input")
	got := AsEscape(esc)
	require.Same(t, esc, got)
}

func TestAsEscapeClassifiesPlainErrorAsInternal(t *testing.T) {
	got := AsEscape(errors.New("boom"))
	require.Equal(t, Internal, got.Kind)
	require.Equal(t, "boom", got.Error())
}

func TestAsEscapeNilIsNil(t *testing.T) {
	require.Nil(t, AsEscape(nil))
}

func TestEscapeToOutcomeIsFailure(t *testing.T) {
	esc := LogicalEscape("sentry: %d", 5)
	out := esc.ToOutcome(42)
	require.Equal(t, Failure, out.Status)
	require.Equal(t, "sentry: 5", string(out.Data))
	require.EqualValues(t, 42, out.GasLeft)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "success", Success.String())
	require.Equal(t, "out of gas", OutOfGas.String())
	require.Contains(t, Status(200).String(), "Status(")
}
