// Package stylus exposes the two entry points an embedder calls across the
// FFI boundary: Activate (load-time parsing and instrumentation) and Call
// (one metered invocation of an already-activated module). Grounded on
// _examples/original_source/arbitrator/stylus/src/lib.rs's
// stylus_activate/stylus_call, adapted so the actual wasm execution — the
// native JIT or the deterministic interpreter — is an external collaborator
// this package hands the instrumented instruction stream to, per spec.md
// §1's "native WebAssembly compiler and linker are external" boundary.
package stylus

import (
	"fmt"

	ethlog "github.com/ethereum/go-ethereum/log"

	"github.com/arbstylus/wasmvm/common"
	"github.com/arbstylus/wasmvm/hostapi"
	"github.com/arbstylus/wasmvm/instrument"
	"github.com/arbstylus/wasmvm/params"
	"github.com/arbstylus/wasmvm/wasmmod"
	"github.com/arbstylus/wasmvm/wasmparser"
)

// activationBytePrice is the wasm-gas cost charged per byte of module
// source during activation, standing in for the original's Brotli-aware
// asm/module-size-based pricing (Brotli compression itself is out of
// scope per spec.md §1). Grounded on hostapi.MemoryCopyCost's per-word
// formula, the closest existing per-byte cost table in this module.
const activationBytePrice = 3

// Module is the result of a successful Activate: an instrumented module
// ready for repeated Call invocations. It bundles the module-mod shape the
// instrumentation passes rewrote in place with the per-function
// instrumented instruction streams and the reserved global indices the
// runtime package needs to read gas/depth state back out after a trap.
type Module struct {
	Version uint32

	Native  *wasmmod.NativeModule
	Funcs   map[wasmmod.FunctionIndex][]instrument.Instr
	Globals wasmmod.StylusGlobals

	// HadStart reports whether the original module declared an implicit
	// start function, now exported as wasmmod.StylusEntryPoint. Call runs
	// that export as the module's only entry point; it does not invoke any
	// other export afterwards, and it fails when the export is absent.
	HadStart bool
}

// Activate parses, validates, and instruments a wasm binary, charging its
// size-proportional cost against gasInOut. page_limit and debug match
// spec.md §6's activate signature; version selects the frozen config
// bundle via params.NewConfig.
func Activate(wasm []byte, pageLimit uint16, version uint32, debug bool, gasInOut *uint64) (mod *Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stylus: activation failed for version %d: %v", version, r)
		}
	}()
	cfg := params.NewConfig(version) // panics on an unrecognized version; recovered above

	cost := uint64(len(wasm)) * activationBytePrice
	if err := hostapi.BurnGas(gasInOut, cost); err != nil {
		return nil, err
	}

	parsed, err := wasmparser.Parse(wasm)
	if err != nil {
		ethlog.Debug("stylus activation rejected", "err", err)
		return nil, err
	}

	native := parsed.ToNativeModule()
	funcs := localFunctionIndexes(parsed)

	heapLimit := wasmmod.Pages(common.MinInt(cfg.HeapBoundPages(), uint32(pageLimit)))

	meter := instrument.NewMeter(cfg.Costs, cfg.StartGas)
	depth := instrument.NewDepthChecker(cfg.Depth.MaxDepth, cfg.Depth.MaxFrameSize)
	heap := instrument.NewHeapBound(heapLimit)
	startMover := instrument.NewStartMover()
	passes := []instrument.Middleware{meter, depth, heap, startMover}
	if debug && cfg.Debug.CountOps {
		passes = append(passes, instrument.NewCounter(countedOpcodes))
	}

	if err := instrument.Pipeline(native, funcs, passes...); err != nil {
		return nil, err
	}

	rewritten := make(map[wasmmod.FunctionIndex][]instrument.Instr, len(funcs))
	for i, fn := range funcs {
		body := parsed.Bodies[i]
		stream := body.Code
		locals := body.Flatten()
		for _, pass := range passes {
			fm, err := pass.Instrument(fn)
			if err != nil {
				return nil, &instrument.PassError{Pass: pass.Name(), Err: err}
			}
			fm.LocalsInfo(locals)
			sink := &instrument.OpSink{}
			for _, ins := range stream {
				if err := fm.Feed(ins, sink); err != nil {
					return nil, &instrument.PassError{Pass: pass.Name(), Err: err}
				}
			}
			stream = sink.Ops
		}
		rewritten[fn] = stream
	}

	return &Module{
		Version: version,
		Native:  native,
		Funcs:   rewritten,
		Globals: wasmmod.StylusGlobals{
			GasLeft:   meter.GasLeft(),
			GasStatus: meter.GasStatus(),
			DepthLeft: depth.Global(),
		},
		HadStart: parsed.StartFunc != nil,
	}, nil
}

// localFunctionIndexes returns the function-index-space indices of every
// locally defined function (imports occupy the low end of the space, so
// locals start at len(m.Imports)).
func localFunctionIndexes(m *wasmparser.Module) []wasmmod.FunctionIndex {
	base := len(m.Imports)
	out := make([]wasmmod.FunctionIndex, len(m.FuncSigs))
	for i := range m.FuncSigs {
		out[i] = wasmmod.FunctionIndex(base + i)
	}
	return out
}
