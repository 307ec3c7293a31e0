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

// Package wasmmod defines the module-shape abstraction the instrumentation
// passes rewrite, in a form that is agnostic to whether the underlying
// representation is a native-JIT module descriptor or the deterministic
// interpreter's own binary encoding. Two representations implement ModuleMod
// so that the same pass runs, unmodified, over both execution paths and
// produces bit-identical globals and exports on each.
package wasmmod

import (
	"fmt"

	"github.com/arbstylus/wasmvm/operator"
)

// FunctionType is a wasm function signature: ordered parameter and result
// value types.
type FunctionType struct {
	Params  []operator.ValueType
	Results []operator.ValueType
}

func (f FunctionType) String() string {
	return fmt.Sprintf("%v -> %v", f.Params, f.Results)
}

// Equal reports whether f and other have identical parameter and result
// lists.
func (f FunctionType) Equal(other FunctionType) bool {
	if len(f.Params) != len(other.Params) || len(f.Results) != len(other.Results) {
		return false
	}
	for i, p := range f.Params {
		if other.Params[i] != p {
			return false
		}
	}
	for i, r := range f.Results {
		if other.Results[i] != r {
			return false
		}
	}
	return true
}

// FunctionIndex is a module-wide index into the combined import+local
// function space, matching wasm's own function index space.
type FunctionIndex uint32

// SignatureIndex indexes the module's type section.
type SignatureIndex uint32

// GlobalIndex indexes the module's combined import+local global space.
type GlobalIndex uint32

// GlobalInit is the constant-expression initializer of a newly added
// global. Only the scalar kinds instrumentation passes ever add are
// represented; a module's own pre-existing globals may carry richer
// initializers the passes never inspect.
type GlobalInit struct {
	Type operator.ValueType
	I32  uint32
	I64  uint64
}

func I32Init(v uint32) GlobalInit { return GlobalInit{Type: operator.I32, I32: v} }
func I64Init(v uint64) GlobalInit { return GlobalInit{Type: operator.I64, I64: v} }

// Pages counts wasm linear-memory pages (64 KiB each).
type Pages uint32

const PageSize = 65536

// Bytes returns the page count converted to a byte count.
func (p Pages) Bytes() uint64 { return uint64(p) * PageSize }
