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

import "fmt"

// ExportKind distinguishes what an export name refers to.
type ExportKind uint8

const (
	ExportFunc ExportKind = iota
	ExportGlobal
	ExportMemory
	ExportTable
)

// Export is a single named export entry.
type Export struct {
	Kind  ExportKind
	Index uint32
}

// Memory describes a module's linear memory limits, in pages.
type Memory struct {
	Minimum Pages
	Maximum *Pages // nil means unbounded
}

// NativeModule is the JIT-oriented module representation: the shape a
// native compiler backend's module descriptor takes. It implements
// ModuleMod directly over in-memory slices and maps, the way the teacher's
// native `ModuleInfo` binding does (see DESIGN.md).
type NativeModule struct {
	Types        []FunctionType
	ImportSigs   []SignatureIndex // imported functions, in function-index order
	FuncSigs     []SignatureIndex // locally defined functions, in function-index order
	Globals      []GlobalInit
	Exports      map[string]Export
	FuncNames    map[FunctionIndex]string
	StartFunc    *FunctionIndex
	Memories     []Memory
}

// NewNativeModule builds an empty native module descriptor ready to accept
// declared types, functions, and memories before instrumentation runs.
func NewNativeModule() *NativeModule {
	return &NativeModule{
		Exports:   make(map[string]Export),
		FuncNames: make(map[FunctionIndex]string),
	}
}

func (m *NativeModule) AddGlobal(name string, init GlobalInit) (GlobalIndex, error) {
	if _, exists := m.Exports[name]; exists {
		return 0, fmt.Errorf("wasm already contains %s", name)
	}
	index := GlobalIndex(len(m.Globals))
	m.Globals = append(m.Globals, init)
	m.Exports[name] = Export{Kind: ExportGlobal, Index: uint32(index)}
	return index, nil
}

func (m *NativeModule) Signature(sig SignatureIndex) (FunctionType, error) {
	if int(sig) >= len(m.Types) {
		return FunctionType{}, fmt.Errorf("missing signature %d", sig)
	}
	return m.Types[sig], nil
}

func (m *NativeModule) Function(fn FunctionIndex) (FunctionType, error) {
	sig, ok := m.funcSignature(fn)
	if !ok {
		if name, ok := m.FuncNames[fn]; ok {
			return FunctionType{}, fmt.Errorf("missing func %s @ index %d", name, fn)
		}
		return FunctionType{}, fmt.Errorf("missing func @ index %d", fn)
	}
	return m.Signature(sig)
}

func (m *NativeModule) funcSignature(fn FunctionIndex) (SignatureIndex, bool) {
	idx := int(fn)
	if idx < len(m.ImportSigs) {
		return m.ImportSigs[idx], true
	}
	idx -= len(m.ImportSigs)
	if idx < 0 || idx >= len(m.FuncSigs) {
		return 0, false
	}
	return m.FuncSigs[idx], true
}

func (m *NativeModule) AllFunctions() (map[FunctionIndex]FunctionType, error) {
	out := make(map[FunctionIndex]FunctionType)
	var idx FunctionIndex
	for _, sig := range m.ImportSigs {
		ty, err := m.Signature(sig)
		if err != nil {
			return nil, err
		}
		out[idx] = ty
		idx++
	}
	for _, sig := range m.FuncSigs {
		ty, err := m.Signature(sig)
		if err != nil {
			return nil, err
		}
		out[idx] = ty
		idx++
	}
	return out, nil
}

func (m *NativeModule) AllSignatures() (map[SignatureIndex]FunctionType, error) {
	out := make(map[SignatureIndex]FunctionType, len(m.Types))
	for i, ty := range m.Types {
		out[SignatureIndex(i)] = ty
	}
	return out, nil
}

func (m *NativeModule) MoveStartFunction(name string) error {
	if prior, exists := m.Exports[name]; exists {
		return fmt.Errorf("function %s already exists @ index %d", name, prior.Index)
	}
	if m.StartFunc == nil {
		return nil
	}
	start := *m.StartFunc
	m.Exports[name] = Export{Kind: ExportFunc, Index: uint32(start)}
	m.FuncNames[start] = name
	m.StartFunc = nil
	return nil
}

func (m *NativeModule) LimitHeap(limit Pages) error {
	if len(m.Memories) > 1 {
		return fmt.Errorf("multi-memory extension not supported")
	}
	for i := range m.Memories {
		mem := &m.Memories[i]
		bound := limit
		if mem.Maximum != nil && *mem.Maximum < limit {
			bound = *mem.Maximum
		}
		mem.Maximum = &bound
		if mem.Minimum > bound {
			return fmt.Errorf("module memory minimum %d exceeds limit %d", mem.Minimum, bound)
		}
	}
	return nil
}

var _ ModuleMod = (*NativeModule)(nil)
