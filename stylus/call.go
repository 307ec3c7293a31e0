package stylus

import (
	"fmt"

	ethlog "github.com/ethereum/go-ethereum/log"

	locallog "github.com/arbstylus/wasmvm/log"
	"github.com/arbstylus/wasmvm/outcome"
	"github.com/arbstylus/wasmvm/params"
	"github.com/arbstylus/wasmvm/runtime"
	"github.com/arbstylus/wasmvm/wasmmod"

	"github.com/arbstylus/wasmvm/hostapi"
)

// Executor is the native JIT or deterministic interpreter this package
// hands an instrumented instruction stream to. Both are external
// collaborators per spec.md §1 ("the native WebAssembly compiler and
// linker are external: the core specifies only the middleware contract
// they must honor" / "the fraud-proof interpreter's low-level instruction
// implementations ... are excluded except for the interfaces through which
// instrumentation installs globals and hooks"); this interface is that
// contract boundary. Implementations run mod.Funcs[fn] to completion,
// dispatching every host import call back through inv's host-call methods
// (runtime.Invocation.StorageLoad, .Keccak, ...), and report how execution
// stopped.
type Executor interface {
	// Run executes the instrumented function fn against inv until it
	// returns, traps, or an Escape aborts it. status/data are populated
	// only on a normal return (status 0 success, nonzero revert, matching
	// spec.md §4.10's Return transition). gasStatus and stackExhausted
	// report the two trap globals' final values when the function did not
	// return normally.
	Run(mod *Module, fn wasmmod.FunctionIndex, inv *runtime.Invocation) (returned bool, status byte, data []byte, gasStatus uint32, stackExhausted bool, escape *outcome.Escape, err error)
}

// Call drives one metered invocation of an already-activated module,
// implementing spec.md §4.10's state machine end to end: gas conversion,
// the single entry-point call (the module's renamed start function,
// spec.md §4.7), and outcome conversion. Grounded on
// arbitrator/stylus/src/lib.rs's stylus_call.
func Call(mod *Module, calldata []byte, config params.Config, exec Executor, evmAPI hostapi.EvmAPI, evmData hostapi.EvmData, debugFlag uint32, gasInOut *uint64) (byte, []byte, error) {
	wasmGas, err := config.Pricing.EvmToWasm(*gasInOut)
	if err != nil {
		return byte(outcome.Failure), nil, fmt.Errorf("stylus: %w", err)
	}

	export, ok := mod.Native.Exports[wasmmod.StylusEntryPoint]
	if !ok || export.Kind != wasmmod.ExportFunc {
		return byte(outcome.Failure), nil, fmt.Errorf("stylus: module has no %s export", wasmmod.StylusEntryPoint)
	}
	entry := wasmmod.FunctionIndex(export.Index)

	memSize := uint64(0)
	if len(mod.Native.Memories) > 0 {
		memSize = mod.Native.Memories[0].Minimum.Bytes()
	}
	mem := runtime.NewMemory(make([]byte, memSize))

	inv := runtime.New(wasmGas, config.Pricing, calldata, mem, evmAPI, evmData, debugFlag != 0)
	if err := inv.Start(); err != nil {
		return byte(outcome.Failure), nil, err
	}
	if err := inv.Run(); err != nil {
		return byte(outcome.Failure), nil, err
	}

	returned, status, data, gasStatus, stackExhausted, escape, err := exec.Run(mod, entry, inv)
	if err != nil {
		ethlog.Debug("stylus call aborted", "err", err)
		return byte(outcome.Failure), nil, err
	}

	var out outcome.Outcome
	switch {
	case escape != nil:
		result, internalErr := inv.Escape(escape)
		if internalErr != nil {
			return byte(outcome.Failure), nil, internalErr
		}
		out = result
	case returned:
		out = inv.Return(status, data)
	default:
		out = inv.Trap(gasStatus, stackExhausted)
	}

	*gasInOut = out.GasLeft
	return byte(out.Status), []byte(locallog.Uncolor(string(out.Data))), nil
}
