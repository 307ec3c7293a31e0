// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package instrument implements the fixed pipeline of module- and
// function-level rewrites that turn a freshly parsed module into a metered,
// depth-checked, heap-bounded one, grounded on
// _examples/original_source/arbitrator/prover/src/programs/mod.rs's
// Middleware/FuncMiddleware split and polyglot/src/depth.rs's concrete
// per-function algorithm.
package instrument

import (
	"github.com/arbstylus/wasmvm/operator"
	"github.com/arbstylus/wasmvm/wasmmod"
)

// Middleware runs once per module, ahead of any function-level work, and
// produces the FuncMiddleware that will rewrite each function body.
type Middleware interface {
	// UpdateModule applies any module-wide change (installing globals,
	// clamping memory, renaming exports) before function processing begins.
	UpdateModule(mod wasmmod.ModuleMod) error

	// Instrument returns a fresh per-function rewriter for the function at
	// the given function index.
	Instrument(fn wasmmod.FunctionIndex) (FuncMiddleware, error)

	// Name identifies the pass in diagnostics.
	Name() string
}

// FuncMiddleware rewrites one function's operator stream.
type FuncMiddleware interface {
	// LocalsInfo is called once with the function's local types before any
	// Feed call.
	LocalsInfo(locals []operator.ValueType)

	// Feed consumes one operator from the original stream and appends zero
	// or more operators to out. Implementations must preserve every
	// operator from the input stream exactly once and in order, except
	// where the pass explicitly rewrites (a prelude/postlude it inserts
	// around the original stream, never a silent drop).
	Feed(op Instr, out *OpSink) error

	// Name identifies the pass in diagnostics.
	Name() string
}

// OpSink accumulates the rewritten operator stream a FuncMiddleware emits.
// It is a thin typed wrapper so passes don't need to know the concrete
// encoding the embedder eventually serializes to.
type OpSink struct {
	Ops []Instr
}

// Instr is one emitted operator together with whatever immediate operands
// the pass attached (global/function index, constant value). Passes that
// don't need an operand's specific shape can leave the zero value.
type Instr struct {
	Op           operator.OpCode
	GlobalIndex  wasmmod.GlobalIndex
	FuncIndex    wasmmod.FunctionIndex   // Call callee
	TableSig     wasmmod.SignatureIndex  // CallIndirect callee type
	Const        int64
	BlockType    operator.ValueType
	HasBlockType bool
}

func (s *OpSink) push(i Instr)              { s.Ops = append(s.Ops, i) }
func (s *OpSink) Emit(op operator.OpCode)   { s.push(Instr{Op: op}) }
func (s *OpSink) EmitI32Const(v int32)      { s.push(Instr{Op: operator.OpI32Const, Const: int64(v)}) }
func (s *OpSink) EmitI64Const(v int64)      { s.push(Instr{Op: operator.OpI64Const, Const: v}) }
func (s *OpSink) EmitGlobalGet(g wasmmod.GlobalIndex) {
	s.push(Instr{Op: operator.OpGlobalGet, GlobalIndex: g})
}
func (s *OpSink) EmitGlobalSet(g wasmmod.GlobalIndex) {
	s.push(Instr{Op: operator.OpGlobalSet, GlobalIndex: g})
}

// EmitIfUnreachable emits `if <empty block> ... unreachable ... end`
// wrapping the given body instructions, the shape every trapping prelude in
// this package uses.
func (s *OpSink) EmitIfUnreachable(body ...Instr) {
	s.push(Instr{Op: operator.OpIf})
	for _, i := range body {
		s.push(i)
	}
	s.push(Instr{Op: operator.OpUnreachable})
	s.push(Instr{Op: operator.OpEnd})
}

// Pipeline applies passes in the order given; callers pass the fixed,
// consensus-mandated ordering: Meter, DepthChecker, HeapBound, StartMover,
// and (optionally) Counter. Order is load-bearing: Meter and DepthChecker
// both install reserved-name globals before StartMover may touch the start
// function, and Counter — debug-only — always runs last. For each pass it
// runs UpdateModule and then checks that a FuncMiddleware can be built for
// every function in funcs; it does not feed any function body through those
// rewriters, which is left to the caller.
func Pipeline(mod wasmmod.ModuleMod, funcs []wasmmod.FunctionIndex, passes ...Middleware) error {
	for _, pass := range passes {
		if err := pass.UpdateModule(mod); err != nil {
			return &PassError{Pass: pass.Name(), Err: err}
		}
		for _, fn := range funcs {
			if _, err := pass.Instrument(fn); err != nil {
				return &PassError{Pass: pass.Name(), Err: err}
			}
		}
	}
	return nil
}

// PassError wraps a failure from a named pass the way the teacher's own
// MiddlewareError wraps a pass name around an inner cause.
type PassError struct {
	Pass string
	Err  error
}

func (e *PassError) Error() string { return e.Pass + ": " + e.Err.Error() }
func (e *PassError) Unwrap() error { return e.Err }
