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
	"github.com/arbstylus/wasmvm/params"
	"github.com/arbstylus/wasmvm/wasmmod"
)

const (
	gasLeftName   = "stylus_gas_left"
	gasStatusName = "stylus_gas_status"
)

// Meter installs the consensus gas accounting described in spec.md §4.4:
// a basic-block-granular pre-charge against a single i64 global, trapping
// through a dedicated i32 status global the host reads after the fact.
type Meter struct {
	costs    params.OpCosts
	startGas uint64

	mu        sync.Mutex
	gasLeft   wasmmod.GlobalIndex
	gasStatus wasmmod.GlobalIndex
	mod       wasmmod.ModuleMod
}

func NewMeter(costs params.OpCosts, startGas uint64) *Meter {
	return &Meter{costs: costs, startGas: startGas}
}

func (m *Meter) Name() string { return "meter" }

func (m *Meter) UpdateModule(mod wasmmod.ModuleMod) error {
	gasLeft, err := mod.AddGlobal(gasLeftName, wasmmod.I64Init(m.startGas))
	if err != nil {
		return err
	}
	gasStatus, err := mod.AddGlobal(gasStatusName, wasmmod.I32Init(0))
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.gasLeft, m.gasStatus, m.mod = gasLeft, gasStatus, mod
	m.mu.Unlock()
	return nil
}

func (m *Meter) Instrument(wasmmod.FunctionIndex) (FuncMiddleware, error) {
	m.mu.Lock()
	gasLeft, gasStatus, mod := m.gasLeft, m.gasStatus, m.mod
	m.mu.Unlock()
	if mod == nil {
		return nil, fmt.Errorf("meter: UpdateModule not yet run")
	}
	return &funcMeter{costs: m.costs, gasLeft: gasLeft, gasStatus: gasStatus}, nil
}

// GasLeft and GasStatus return the global indices installed in
// UpdateModule, for wiring into the invocation state machine.
func (m *Meter) GasLeft() wasmmod.GlobalIndex {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gasLeft
}

func (m *Meter) GasStatus() wasmmod.GlobalIndex {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gasStatus
}

type funcMeter struct {
	costs     params.OpCosts
	gasLeft   wasmmod.GlobalIndex
	gasStatus wasmmod.GlobalIndex

	block    []Instr
	blockCost uint64
}

func (f *funcMeter) Name() string                              { return "meter" }
func (f *funcMeter) LocalsInfo(locals []operator.ValueType) {}

// isBlockBoundary reports whether op both ends the current basic block and
// is itself part of it (every boundary operator is emitted as the last
// operator of the block it closes), matching spec.md §4.4's block
// delimiters: scope openers/closer, unconditional branches, Return, and
// Unreachable.
func isBlockBoundary(op operator.OpCode) bool {
	switch op {
	case operator.OpBlock, operator.OpLoop, operator.OpIf, operator.OpElse, operator.OpEnd,
		operator.OpBr, operator.OpReturn, operator.OpUnreachable, operator.OpBrTable:
		return true
	default:
		return false
	}
}

func (f *funcMeter) Feed(op Instr, out *OpSink) error {
	f.block = append(f.block, op)
	f.blockCost += f.costs(op.Op)

	if !isBlockBoundary(op.Op) {
		return nil
	}
	f.flush(out)
	return nil
}

func (f *funcMeter) flush(out *OpSink) {
	cost := f.blockCost
	out.EmitGlobalGet(f.gasLeft)
	out.EmitI64Const(int64(cost))
	out.Emit(operator.OpI64LtU)
	out.EmitIfUnreachable(
		Instr{Op: operator.OpI32Const, Const: 1},
		Instr{Op: operator.OpGlobalSet, GlobalIndex: f.gasStatus},
	)
	out.EmitGlobalGet(f.gasLeft)
	out.EmitI64Const(int64(cost))
	out.Emit(operator.OpI64Sub)
	out.EmitGlobalSet(f.gasLeft)

	for _, instr := range f.block {
		out.push(instr)
	}
	f.block = nil
	f.blockCost = 0
}
