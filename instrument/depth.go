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

package instrument

import (
	"fmt"
	"sync"

	"github.com/arbstylus/wasmvm/operator"
	"github.com/arbstylus/wasmvm/wasmmod"
)

// stackSpaceLeft and stackSizeLimit are the reserved global export names
// the DepthChecker pass installs, matching polyglot's "stack_space_left"
// and "stack_size_limit" (renamed here without the polyglot_ prefix, which
// was specific to that standalone binary's own namespacing).
const (
	stackSpaceLeft = "stylus_stack_left"
	stackSizeLimit = "stylus_stack_size_limit"
)

// DepthChecker installs the deterministic stack-depth accounting described
// in spec.md §4.5, grounded on
// _examples/original_source/arbitrator/polyglot/src/depth.rs.
type DepthChecker struct {
	limit        uint32
	maxFrameSize uint32

	mu     sync.Mutex
	global wasmmod.GlobalIndex
	mod    wasmmod.ModuleMod
}

// NewDepthChecker builds a depth checker that charges the runtime stack
// budget given by limit and rejects, at instrumentation time, any function
// whose worst-case frame size exceeds maxFrameSize.
func NewDepthChecker(limit, maxFrameSize uint32) *DepthChecker {
	return &DepthChecker{limit: limit, maxFrameSize: maxFrameSize}
}

func (d *DepthChecker) Name() string { return "depth checker" }

func (d *DepthChecker) UpdateModule(mod wasmmod.ModuleMod) error {
	limitInit := wasmmod.I32Init(d.limit)
	space, err := mod.AddGlobal(stackSpaceLeft, limitInit)
	if err != nil {
		return err
	}
	if _, err := mod.AddGlobal(stackSizeLimit, limitInit); err != nil {
		return err
	}
	d.mu.Lock()
	d.global = space
	d.mod = mod
	d.mu.Unlock()
	return nil
}

func (d *DepthChecker) Instrument(wasmmod.FunctionIndex) (FuncMiddleware, error) {
	d.mu.Lock()
	global, mod := d.global, d.mod
	d.mu.Unlock()
	if mod == nil {
		return nil, fmt.Errorf("depth checker: UpdateModule not yet run")
	}
	return &funcDepthChecker{global: global, mod: mod, maxFrameSize: d.maxFrameSize, scopes: 1}, nil
}

// Global returns the stack-space-left global index installed in
// UpdateModule, for wiring into the invocation state machine.
func (d *DepthChecker) Global() wasmmod.GlobalIndex {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.global
}

type funcDepthChecker struct {
	global       wasmmod.GlobalIndex
	mod          wasmmod.ModuleMod
	maxFrameSize uint32

	code   []Instr
	scopes int
	done   bool
}

func (f *funcDepthChecker) Name() string                           { return "depth checker" }
func (f *funcDepthChecker) LocalsInfo(locals []operator.ValueType) {}

func (f *funcDepthChecker) Feed(op Instr, out *OpSink) error {
	if f.done {
		return fmt.Errorf("depth checker: finalized too soon")
	}

	switch {
	case op.Op.IsScopeOpen():
		f.scopes++
	case op.Op.IsScopeClose():
		f.scopes--
	}
	if f.scopes < 0 {
		return fmt.Errorf("depth checker: malformed scoping detected")
	}

	last := f.scopes == 0 && op.Op.IsScopeClose()
	f.code = append(f.code, op)
	if !last {
		return nil
	}

	code := f.code
	f.code = nil
	size, err := worstCaseDepth(code, f.mod)
	if err != nil {
		return err
	}
	if size > f.maxFrameSize {
		return fmt.Errorf("depth checker: frame too large: worst-case depth %d exceeds max_frame_size %d", size, f.maxFrameSize)
	}

	emitCharge := func(out *OpSink) {
		out.EmitGlobalGet(f.global)
		out.EmitI32Const(int32(size))
		out.Emit(operator.OpI32LtU)
		out.EmitIfUnreachable(
			Instr{Op: operator.OpI32Const, Const: 0},
			Instr{Op: operator.OpGlobalSet, GlobalIndex: f.global},
		)
		out.EmitGlobalGet(f.global)
		out.EmitI32Const(int32(size))
		out.Emit(operator.OpI32Sub)
		out.EmitGlobalSet(f.global)
	}
	reclaim := func(out *OpSink) {
		out.EmitGlobalGet(f.global)
		out.EmitI32Const(int32(size))
		out.Emit(operator.OpI32Add)
		out.EmitGlobalSet(f.global)
	}

	emitCharge(out)
	for i, instr := range code {
		// code always ends with the function's closing End, so the final
		// reclaim lands just inside the function body.
		if instr.Op == operator.OpReturn || i == len(code)-1 {
			reclaim(out)
		}
		out.push(instr)
	}
	f.done = true
	return nil
}

// worstCaseDepth computes the function's maximum transient stack depth,
// matching depth.rs's worst_case_depth exactly: a running stack counter
// with a saturating pop, a stack of scope snapshots for Block/If/Else/End,
// and Call/CallIndirect resolved against the module's signatures.
func worstCaseDepth(code []Instr, mod wasmmod.ModuleMod) (uint32, error) {
	var worst, stack uint32
	push := func(n uint32) {
		stack += n
		if stack > worst {
			worst = stack
		}
	}
	pop := func(n uint32) {
		if stack < n {
			stack = 0
		} else {
			stack -= n
		}
	}

	scopes := []uint32{stack}

	for _, instr := range code {
		op := instr.Op
		switch {
		case op == operator.OpBlock || op == operator.OpLoop:
			scopes = append(scopes, stack)
		case op == operator.OpIf:
			pop(1)
			scopes = append(scopes, stack)
		case op == operator.OpElse:
			if len(scopes) == 0 {
				return 0, fmt.Errorf("depth checker: malformed if-else scope")
			}
			stack = scopes[len(scopes)-1]
		case op == operator.OpEnd:
			if len(scopes) == 0 {
				return 0, fmt.Errorf("depth checker: malformed scoping detected at end of block")
			}
			stack = scopes[len(scopes)-1]
			scopes = scopes[:len(scopes)-1]
		case op == operator.OpCall:
			ty, err := mod.Function(instr.FuncIndex)
			if err != nil {
				return 0, fmt.Errorf("depth checker: no function at index %d: %w", instr.FuncIndex, err)
			}
			push(uint32(len(ty.Results)))
			pop(uint32(len(ty.Params)))
		case op == operator.OpCallIndirect:
			ty, err := mod.Signature(instr.TableSig)
			if err != nil {
				return 0, fmt.Errorf("depth checker: no table signature at index %d: %w", instr.TableSig, err)
			}
			push(uint32(len(ty.Results)))
			pop(uint32(len(ty.Params)))
		default:
			switch op.Effect() {
			case operator.EffectPush1:
				push(1)
			case operator.EffectPop1:
				pop(1)
			case operator.EffectPop2:
				pop(2)
			}
		}
	}

	return worst + 4, nil
}
