package wasmparser

import (
	"github.com/arbstylus/wasmvm/instrument"
	"github.com/arbstylus/wasmvm/operator"
	"github.com/arbstylus/wasmvm/wasmmod"
)

// importFunc records one imported function, before wasm's combined
// import+local function index space absorbs it.
type importFunc struct {
	Module string
	Name   string
	Sig    wasmmod.SignatureIndex
}

// Module is the parsed, not-yet-instrumented shape of one wasm binary: a
// section-by-section decode with function bodies already turned into
// instrument.Instr streams, ready for the Meter/DepthChecker/HeapBound/
// StartMover/Counter pipeline in the instrument package. It mirrors
// binary.rs's own intermediate `WasmBinary` struct, minus the sections
// (elements, data, tables) no supported program ever needs because this
// module rejects the proposals (reference-types, bulk-memory) that give
// them meaning.
type Module struct {
	Types     []wasmmod.FunctionType
	Imports   []importFunc
	FuncSigs  []wasmmod.SignatureIndex // locally defined functions only
	Memories  []wasmmod.Memory
	Globals   []wasmmod.GlobalInit
	Exports   map[string]wasmmod.Export
	FuncNames map[wasmmod.FunctionIndex]string
	StartFunc *wasmmod.FunctionIndex

	// Bodies holds each locally defined function's decoded locals and
	// operator stream, keyed by its position in FuncSigs (not yet offset
	// by the imported-function count).
	Bodies []FunctionBody
}

// FunctionBody is one locally defined function's decoded locals and body.
type FunctionBody struct {
	Locals []operatorLocal
	Code   []instrument.Instr
}

// operatorLocal is one run-length-encoded locals declaration, matching the
// wasm binary format's (count, valtype) pairs in a function body's locals
// section. Flatten() expands these into the per-slot type list instrument
// middleware expects.
type operatorLocal struct {
	Count uint32
	Type  operator.ValueType
}

// Flatten expands a function body's run-length-encoded locals declarations
// into one entry per local slot, in declaration order.
func (b FunctionBody) Flatten() []operator.ValueType {
	var out []operator.ValueType
	for _, l := range b.Locals {
		for i := uint32(0); i < l.Count; i++ {
			out = append(out, l.Type)
		}
	}
	return out
}

// ToNativeModule converts the parsed module into the wasmmod.ModuleMod
// representation the instrumentation pipeline mutates in place. Grounded
// on how binary.rs's loader feeds prover/src/programs/mod.rs's `Module`
// constructor: import functions occupy the low end of the function index
// space, matching wasm's own numbering.
func (m *Module) ToNativeModule() *wasmmod.NativeModule {
	native := wasmmod.NewNativeModule()
	native.Types = append(native.Types, m.Types...)

	native.ImportSigs = make([]wasmmod.SignatureIndex, len(m.Imports))
	for i, imp := range m.Imports {
		native.ImportSigs[i] = imp.Sig
	}
	native.FuncSigs = append(native.FuncSigs, m.FuncSigs...)
	native.Globals = append(native.Globals, m.Globals...)
	native.Memories = append(native.Memories, m.Memories...)
	native.StartFunc = m.StartFunc

	for name, exp := range m.Exports {
		native.Exports[name] = exp
	}
	for idx, name := range m.FuncNames {
		native.FuncNames[idx] = name
	}
	return native
}
