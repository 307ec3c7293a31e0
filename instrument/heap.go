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
	"github.com/arbstylus/wasmvm/operator"
	"github.com/arbstylus/wasmvm/wasmmod"
)

// HeapBound clamps a module's linear memory maximum, per spec.md §4.6. It
// never rewrites any function body; UpdateModule is its entire job.
type HeapBound struct {
	limit wasmmod.Pages
}

func NewHeapBound(limit wasmmod.Pages) *HeapBound {
	return &HeapBound{limit: limit}
}

func (h *HeapBound) Name() string { return "heap bound" }

func (h *HeapBound) UpdateModule(mod wasmmod.ModuleMod) error {
	return mod.LimitHeap(h.limit)
}

func (h *HeapBound) Instrument(wasmmod.FunctionIndex) (FuncMiddleware, error) {
	return passthroughFuncMiddleware{name: "heap bound"}, nil
}

// passthroughFuncMiddleware re-emits every fed operator unchanged; used by
// passes whose entire effect is in UpdateModule.
type passthroughFuncMiddleware struct {
	name string
}

func (p passthroughFuncMiddleware) Name() string                           { return p.name }
func (p passthroughFuncMiddleware) LocalsInfo(locals []operator.ValueType) {}
func (p passthroughFuncMiddleware) Feed(op Instr, out *OpSink) error {
	out.push(op)
	return nil
}
