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

// Counter is the debug-only tail pass of spec.md §4.8: one global per
// recognized operator, incremented once per basic block by the number of
// times that operator occurs in the block. It is never part of a
// consensus-relevant instrumentation run; Config.Debug.CountOps gates it.
type Counter struct {
	ops []operator.OpCode

	mu      sync.Mutex
	globals map[operator.OpCode]wasmmod.GlobalIndex
}

// NewCounter installs one counter per operator in ops, in the order given.
func NewCounter(ops []operator.OpCode) *Counter {
	return &Counter{ops: ops}
}

func (c *Counter) Name() string { return "counter" }

func (c *Counter) UpdateModule(mod wasmmod.ModuleMod) error {
	globals := make(map[operator.OpCode]wasmmod.GlobalIndex, len(c.ops))
	for i, op := range c.ops {
		name := fmt.Sprintf("stylus_opcode_count_%d", i)
		idx, err := mod.AddGlobal(name, wasmmod.I64Init(0))
		if err != nil {
			return err
		}
		globals[op] = idx
	}
	c.mu.Lock()
	c.globals = globals
	c.mu.Unlock()
	return nil
}

func (c *Counter) Instrument(wasmmod.FunctionIndex) (FuncMiddleware, error) {
	c.mu.Lock()
	globals := c.globals
	c.mu.Unlock()
	if globals == nil {
		return nil, fmt.Errorf("counter: UpdateModule not yet run")
	}
	return &funcCounter{ops: c.ops, globals: globals}, nil
}

type funcCounter struct {
	ops     []operator.OpCode
	globals map[operator.OpCode]wasmmod.GlobalIndex

	block  []Instr
	counts map[operator.OpCode]uint64
}

func (f *funcCounter) Name() string                           { return "counter" }
func (f *funcCounter) LocalsInfo(locals []operator.ValueType) {}

func (f *funcCounter) Feed(op Instr, out *OpSink) error {
	if f.counts == nil {
		f.counts = make(map[operator.OpCode]uint64)
	}
	f.block = append(f.block, op)
	if _, tracked := f.globals[op.Op]; tracked {
		f.counts[op.Op]++
	}

	if !isBlockBoundary(op.Op) {
		return nil
	}
	for _, trackedOp := range f.ops {
		count, seen := f.counts[trackedOp]
		if !seen {
			continue
		}
		global := f.globals[trackedOp]
		out.EmitGlobalGet(global)
		out.EmitI64Const(int64(count))
		out.Emit(operator.OpI64Add)
		out.EmitGlobalSet(global)
	}
	for _, instr := range f.block {
		out.push(instr)
	}
	f.block = nil
	f.counts = nil
	return nil
}
