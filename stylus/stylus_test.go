package stylus

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/arbstylus/wasmvm/hostapi"
	"github.com/arbstylus/wasmvm/outcome"
	"github.com/arbstylus/wasmvm/params"
	"github.com/arbstylus/wasmvm/runtime"
	"github.com/arbstylus/wasmvm/wasmmod"
)

// leb128 and section mirror wasmparser's own test helpers; duplicated here
// rather than exported from wasmparser since fixture-building has no
// business being part of that package's public surface.
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

// buildWasm assembles a minimal module with a single type () -> (), a
// memory of one page, and a start function of `i32.const 1; drop; end`.
// Activate's StartMover pass exports this as wasmmod.StylusEntryPoint.
func buildWasm(t *testing.T) []byte {
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

func testConfig() params.Config {
	cfg := params.NewConfig(1)
	cfg.Pricing = params.PricingParams{WasmGasPrice: 10000, HostioCost: 0}
	return cfg
}

type fakeEvmAPI struct{}

func (fakeEvmAPI) AddressBalance(common.Address) (common.Hash, uint64)    { return common.Hash{}, 0 }
func (fakeEvmAPI) AddressCodeHash(common.Address) (common.Hash, uint64)   { return common.Hash{}, 0 }
func (fakeEvmAPI) BlockHash(common.Hash) (common.Hash, uint64)            { return common.Hash{}, 0 }
func (fakeEvmAPI) LoadBytes32(common.Hash) (common.Hash, uint64)          { return common.Hash{}, 0 }
func (fakeEvmAPI) StoreBytes32(common.Hash, common.Hash) (uint64, error)  { return 0, nil }
func (fakeEvmAPI) ContractCall(common.Address, []byte, uint64, common.Hash) (uint32, uint64, uint8) {
	return 0, 0, 0
}
func (fakeEvmAPI) DelegateCall(common.Address, []byte, uint64) (uint32, uint64, uint8) {
	return 0, 0, 0
}
func (fakeEvmAPI) StaticCall(common.Address, []byte, uint64) (uint32, uint64, uint8) {
	return 0, 0, 0
}
func (fakeEvmAPI) Create1(code []byte, endowment common.Hash, gas uint64) (common.Address, uint32, uint64, error) {
	return common.Address{}, 0, 0, nil
}
func (fakeEvmAPI) Create2(code []byte, endowment, salt common.Hash, gas uint64) (common.Address, uint32, uint64, error) {
	return common.Address{}, 0, 0, nil
}
func (fakeEvmAPI) LoadReturnData() []byte                     { return nil }
func (fakeEvmAPI) EmitLog(data []byte, topics int) error      { return nil }
func (fakeEvmAPI) EcrecoverCallback([]byte) (common.Address, uint64) { return common.Address{}, 0 }

// stubExecutor reports whatever outcome the test configured instead of
// actually interpreting mod.Funcs[fn]; Call's job is the state machine
// and gas accounting around the Executor boundary, not execution itself.
type stubExecutor struct {
	returned       bool
	status         byte
	data           []byte
	gasStatus      uint32
	stackExhausted bool
	escape         *outcome.Escape
	err            error
}

func (s stubExecutor) Run(mod *Module, fn wasmmod.FunctionIndex, inv *runtime.Invocation) (bool, byte, []byte, uint32, bool, *outcome.Escape, error) {
	return s.returned, s.status, s.data, s.gasStatus, s.stackExhausted, s.escape, s.err
}

func TestActivateInstrumentsStartFunction(t *testing.T) {
	gas := uint64(1_000_000)
	mod, err := Activate(buildWasm(t), 16, 1, false, &gas)
	require.NoError(t, err)
	require.True(t, mod.HadStart)
	require.Less(t, gas, uint64(1_000_000))

	export, ok := mod.Native.Exports[wasmmod.StylusEntryPoint]
	require.True(t, ok)
	require.Equal(t, wasmmod.ExportFunc, export.Kind)

	fn := wasmmod.FunctionIndex(export.Index)
	require.NotEmpty(t, mod.Funcs[fn])
}

func TestActivateRejectsUnknownVersion(t *testing.T) {
	gas := uint64(1_000_000)
	_, err := Activate(buildWasm(t), 16, 99, false, &gas)
	require.Error(t, err)
}

func TestCallSuccessPath(t *testing.T) {
	gas := uint64(1_000_000)
	mod, err := Activate(buildWasm(t), 16, 1, false, &gas)
	require.NoError(t, err)

	exec := stubExecutor{returned: true, status: 0, data: []byte("ok")}
	gasInOut := uint64(500_000)
	status, data, err := Call(mod, nil, testConfig(), exec, fakeEvmAPI{}, hostapi.EvmData{}, 0, &gasInOut)
	require.NoError(t, err)
	require.Equal(t, byte(outcome.Success), status)
	require.Equal(t, []byte("ok"), data)
	require.Equal(t, uint64(500_000), gasInOut)
}

func TestCallTrapOnOutOfGas(t *testing.T) {
	gas := uint64(1_000_000)
	mod, err := Activate(buildWasm(t), 16, 1, false, &gas)
	require.NoError(t, err)

	exec := stubExecutor{returned: false, gasStatus: 1}
	gasInOut := uint64(500_000)
	status, data, err := Call(mod, nil, testConfig(), exec, fakeEvmAPI{}, hostapi.EvmData{}, 0, &gasInOut)
	require.NoError(t, err)
	require.Equal(t, byte(outcome.OutOfGas), status)
	require.Empty(t, data)
}

func TestCallTrapOnStackExhaustionForfeitsGas(t *testing.T) {
	gas := uint64(1_000_000)
	mod, err := Activate(buildWasm(t), 16, 1, false, &gas)
	require.NoError(t, err)

	exec := stubExecutor{returned: false, stackExhausted: true}
	gasInOut := uint64(500_000)
	status, _, err := Call(mod, nil, testConfig(), exec, fakeEvmAPI{}, hostapi.EvmData{}, 0, &gasInOut)
	require.NoError(t, err)
	require.Equal(t, byte(outcome.OutOfStack), status)
	require.Zero(t, gasInOut)
}

func TestCallMissingEntryPoint(t *testing.T) {
	gas := uint64(1_000_000)
	// A module with no start section never gets an arbitrum_main export.
	wasm := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	wasm = append(wasm, section(1, []byte{0x01, 0x60, 0x00, 0x00})...)
	wasm = append(wasm, section(3, []byte{0x01, 0x00})...)
	body := []byte{0x00, 0x0B}
	codeBody := append([]byte{0x01}, leb128(uint32(len(body)))...)
	codeBody = append(codeBody, body...)
	wasm = append(wasm, section(10, codeBody)...)

	mod, err := Activate(wasm, 16, 1, false, &gas)
	require.NoError(t, err)
	require.False(t, mod.HadStart)

	gasInOut := uint64(500_000)
	_, _, err = Call(mod, nil, testConfig(), stubExecutor{}, fakeEvmAPI{}, hostapi.EvmData{}, 0, &gasInOut)
	require.Error(t, err)
}
