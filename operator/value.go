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

// Package operator enumerates the WebAssembly operators this system
// recognizes and classifies them the way the instrumentation passes need:
// scope openers/closers, constants, stack-effect category, and calls. It
// also carries the value-type enumeration shared by the module abstraction
// and the interpreter.
package operator

import (
	"fmt"

	"github.com/arbstylus/wasmvm/arbcrypto"
)

// ValueType is the wasm value-type enumeration, extended with the two
// reference-like variants the interpreter uses internally.
type ValueType uint8

const (
	I32 ValueType = iota
	I64
	F32
	F64
	RefNull
	FuncRef
	InternalRef
)

func (t ValueType) String() string {
	switch t {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case RefNull:
		return "refnull"
	case FuncRef:
		return "funcref"
	case InternalRef:
		return "internalref"
	default:
		return fmt.Sprintf("ValueType(%d)", uint8(t))
	}
}

// InternalRef points at a specific instruction within a specific function of
// a specific module, used by the interpreter to represent return addresses
// and function pointers that must survive serialization.
type InternalRef struct {
	Module uint32
	Func   uint32
	Inst   uint32
}

// Value is a tagged union over every wasm value kind the interpreter must be
// able to hold, hash, and serialize for a fraud proof.
type Value struct {
	Type     ValueType
	I32      uint32
	I64      uint64
	F32Bits  uint32
	F64Bits  uint64
	FuncRef  uint32
	InstRef  InternalRef
}

func I32Val(x uint32) Value { return Value{Type: I32, I32: x} }
func I64Val(x uint64) Value { return Value{Type: I64, I64: x} }
func F32Val(bits uint32) Value { return Value{Type: F32, F32Bits: bits} }
func F64Val(bits uint64) Value { return Value{Type: F64, F64Bits: bits} }

// contents returns the 32-byte, big-endian-padded contents used by Hash and
// by fraud-proof serialization. This layout is consensus-critical.
func (v Value) contents() [32]byte {
	var b [32]byte
	switch v.Type {
	case I32:
		b[28], b[29], b[30], b[31] = byte(v.I32>>24), byte(v.I32>>16), byte(v.I32>>8), byte(v.I32)
	case I64:
		for i := 0; i < 8; i++ {
			b[31-i] = byte(v.I64 >> (8 * i))
		}
	case F32:
		b[28], b[29], b[30], b[31] = byte(v.F32Bits>>24), byte(v.F32Bits>>16), byte(v.F32Bits>>8), byte(v.F32Bits)
	case F64:
		for i := 0; i < 8; i++ {
			b[31-i] = byte(v.F64Bits >> (8 * i))
		}
	case FuncRef:
		b[28], b[29], b[30], b[31] = byte(v.FuncRef>>24), byte(v.FuncRef>>16), byte(v.FuncRef>>8), byte(v.FuncRef)
	case InternalRef:
		b[20], b[21], b[22], b[23] = byte(v.InstRef.Module>>24), byte(v.InstRef.Module>>16), byte(v.InstRef.Module>>8), byte(v.InstRef.Module)
		b[24], b[25], b[26], b[27] = byte(v.InstRef.Func>>24), byte(v.InstRef.Func>>16), byte(v.InstRef.Func>>8), byte(v.InstRef.Func)
		b[28], b[29], b[30], b[31] = byte(v.InstRef.Inst>>24), byte(v.InstRef.Inst>>16), byte(v.InstRef.Inst>>8), byte(v.InstRef.Inst)
	case RefNull:
		// zero contents
	}
	return b
}

// Hash is keccak("Value:" ‖ tag ‖ 32-byte contents), consensus-critical for
// the fraud-proof machine's state commitment.
func (v Value) Hash() [32]byte {
	h := arbcrypto.NewLegacyKeccak256()
	h.Write([]byte("Value:"))
	h.Write([]byte{byte(v.Type)})
	contents := v.contents()
	h.Write(contents[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DefaultOf returns the zero value of the given type, used to initialize
// locals.
func DefaultOf(t ValueType) Value {
	switch t {
	case RefNull, FuncRef, InternalRef:
		return Value{Type: RefNull}
	default:
		return Value{Type: t}
	}
}
