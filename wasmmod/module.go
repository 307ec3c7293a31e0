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

package wasmmod

// ModuleMod is the capability surface every instrumentation pass needs from
// a module, independent of whether that module will run on the native JIT
// path or the deterministic interpreter. A pass written against ModuleMod
// alone produces identical globals, exports, and heap bounds on both
// representations, which is what makes the two paths provably equivalent.
type ModuleMod interface {
	// AddGlobal appends a new mutable global with the given initializer and
	// exports it under name. It errors if name is already exported.
	AddGlobal(name string, init GlobalInit) (GlobalIndex, error)

	// Signature returns the function type at the given type-section index.
	Signature(sig SignatureIndex) (FunctionType, error)

	// Function returns the function type of the function at the given
	// function-index-space index (imports come first, as in wasm itself).
	Function(fn FunctionIndex) (FunctionType, error)

	// AllFunctions returns every function's type, keyed by function index.
	AllFunctions() (map[FunctionIndex]FunctionType, error)

	// AllSignatures returns every declared type, keyed by type index.
	AllSignatures() (map[SignatureIndex]FunctionType, error)

	// MoveStartFunction renames the module's start function (if any) to
	// name and exports it, clearing the implicit start so that the
	// embedder controls exactly when it runs.
	MoveStartFunction(name string) error

	// LimitHeap clamps the module's single memory's maximum to at most
	// limit pages, erroring if the module's declared minimum already
	// exceeds it or if the module declares more than one memory.
	LimitHeap(limit Pages) error
}

// StylusGlobals names the three consensus-critical globals every
// instrumented module carries after the Meter and DepthChecker passes run.
type StylusGlobals struct {
	GasLeft   GlobalIndex
	GasStatus GlobalIndex
	DepthLeft GlobalIndex
}

// Offsets returns the three global indices as a plain tuple, for callers
// that just need to address them without caring about the field names.
func (g StylusGlobals) Offsets() (gasLeft, gasStatus, depthLeft GlobalIndex) {
	return g.GasLeft, g.GasStatus, g.DepthLeft
}

const (
	// StylusEntryPoint is the export name the StartMover pass installs for
	// a module's original implicit start function.
	StylusEntryPoint = "arbitrum_main"

	// UserHost is the import module name host calls are made under.
	UserHost = "user_host"
)
