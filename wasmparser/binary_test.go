package wasmparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbstylus/wasmvm/operator"
)

// leb128 encodes an unsigned value the same way the binary format does, for
// building test fixtures byte by byte rather than hand-computing varints.
func leb128(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			break
		}
	}
	return out
}

func section(id byte, body []byte) []byte {
	out := []byte{id}
	out = append(out, leb128(uint32(len(body)))...)
	out = append(out, body...)
	return out
}

// buildModule assembles a minimal real wasm binary: one type (() -> ()), one
// function declared as the module's start function, one 1-page memory, and
// a body of `i32.const 1; drop; end`.
func buildModule(t *testing.T) []byte {
	t.Helper()
	wasm := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	typeSec := section(1, []byte{0x01, 0x60, 0x00, 0x00})
	funcSec := section(3, []byte{0x01, 0x00})
	memSec := section(5, []byte{0x01, 0x00, 0x01})
	startSec := section(8, []byte{0x00})

	body := []byte{0x00, 0x41, 0x01, 0x1A, 0x0B}
	codeBody := append([]byte{0x01}, leb128(uint32(len(body)))...)
	codeBody = append(codeBody, body...)
	codeSec := section(10, codeBody)

	wasm = append(wasm, typeSec...)
	wasm = append(wasm, funcSec...)
	wasm = append(wasm, memSec...)
	wasm = append(wasm, startSec...)
	wasm = append(wasm, codeSec...)
	return wasm
}

func TestParseMinimalModule(t *testing.T) {
	m, err := Parse(buildModule(t))
	require.NoError(t, err)
	require.Len(t, m.Types, 1)
	require.Empty(t, m.Types[0].Params)
	require.Empty(t, m.Types[0].Results)
	require.Len(t, m.FuncSigs, 1)
	require.Len(t, m.Memories, 1)
	require.EqualValues(t, 1, m.Memories[0].Minimum)
	require.NotNil(t, m.StartFunc)
	require.EqualValues(t, 0, *m.StartFunc)

	require.Len(t, m.Bodies, 1)
	code := m.Bodies[0].Code
	require.Len(t, code, 3)
	require.Equal(t, operator.OpI32Const, code[0].Op)
	require.EqualValues(t, 1, code[0].Const)
	require.Equal(t, operator.OpDrop, code[1].Op)
	require.Equal(t, operator.OpEnd, code[2].Op)
}

func TestParseBadMagic(t *testing.T) {
	_, err := Parse([]byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00})
	require.Error(t, err)
}

func TestParseRejectsUnsupportedOpcode(t *testing.T) {
	wasm := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	typeSec := section(1, []byte{0x01, 0x60, 0x00, 0x00})
	funcSec := section(3, []byte{0x01, 0x00})
	startSec := section(8, []byte{0x00})

	// try (0x06) is exception-handling, rejected by name.
	body := []byte{0x00, 0x06, 0x0B}
	codeBody := append([]byte{0x01}, leb128(uint32(len(body)))...)
	codeBody = append(codeBody, body...)
	codeSec := section(10, codeBody)

	wasm = append(wasm, typeSec...)
	wasm = append(wasm, funcSec...)
	wasm = append(wasm, startSec...)
	wasm = append(wasm, codeSec...)

	_, err := Parse(wasm)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exception-handling")
}

func TestParseRejectsMultipleMemories(t *testing.T) {
	wasm := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	memSec := section(5, []byte{0x02, 0x00, 0x01, 0x00, 0x01})
	wasm = append(wasm, memSec...)

	_, err := Parse(wasm)
	require.Error(t, err)
}
