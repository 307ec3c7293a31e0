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

package operator

import "fmt"

// OpCode identifies a single WebAssembly operator. The numbering here is
// internal to this module; it does not need to match the wasm binary
// encoding, since wasmparser is responsible for that translation.
type OpCode uint16

const (
	OpInvalid OpCode = iota

	// Control flow / scoping.
	OpUnreachable
	OpNop
	OpBlock
	OpLoop
	OpIf
	OpElse
	OpEnd
	OpBr
	OpBrIf
	OpBrTable
	OpReturn
	OpCall
	OpCallIndirect

	// Parametric.
	OpDrop
	OpSelect

	// Variable access.
	OpLocalGet
	OpLocalSet
	OpLocalTee
	OpGlobalGet
	OpGlobalSet

	// Memory.
	OpI32Load
	OpI64Load
	OpF32Load
	OpF64Load
	OpI32Load8S
	OpI32Load8U
	OpI32Load16S
	OpI32Load16U
	OpI64Load8S
	OpI64Load8U
	OpI64Load16S
	OpI64Load16U
	OpI64Load32S
	OpI64Load32U
	OpI32Store
	OpI64Store
	OpF32Store
	OpF64Store
	OpI32Store8
	OpI32Store16
	OpI64Store8
	OpI64Store16
	OpI64Store32
	OpMemorySize
	OpMemoryGrow

	// Constants.
	OpI32Const
	OpI64Const
	OpF32Const
	OpF64Const

	// Comparisons and arithmetic that pop1 (unary) or pop2 (binary, net pop 1).
	OpI32Eqz
	OpI64Eqz
	OpI32Clz
	OpI32Ctz
	OpI32Popcnt
	OpI64Clz
	OpI64Ctz
	OpI64Popcnt
	OpI32WrapI64
	OpI64ExtendI32S
	OpI64ExtendI32U
	OpI32Extend8S
	OpI32Extend16S
	OpI64Extend8S
	OpI64Extend16S
	OpI64Extend32S

	OpI32Eq
	OpI32Ne
	OpI32LtS
	OpI32LtU
	OpI32GtS
	OpI32GtU
	OpI32LeS
	OpI32LeU
	OpI32GeS
	OpI32GeU
	OpI64Eq
	OpI64Ne
	OpI64LtS
	OpI64LtU
	OpI64GtS
	OpI64GtU
	OpI64LeS
	OpI64LeU
	OpI64GeS
	OpI64GeU
	OpF32Eq
	OpF32Ne
	OpF32Lt
	OpF32Gt
	OpF32Le
	OpF32Ge
	OpF64Eq
	OpF64Ne
	OpF64Lt
	OpF64Gt
	OpF64Le
	OpF64Ge

	OpI32Add
	OpI32Sub
	OpI32Mul
	OpI32DivS
	OpI32DivU
	OpI32RemS
	OpI32RemU
	OpI64Add
	OpI64Sub
	OpI64Mul
	OpI64DivS
	OpI64DivU
	OpI64RemS
	OpI64RemU
	OpI32And
	OpI32Or
	OpI32Xor
	OpI32Shl
	OpI32ShrS
	OpI32ShrU
	OpI32Rotl
	OpI32Rotr
	OpI64And
	OpI64Or
	OpI64Xor
	OpI64Shl
	OpI64ShrS
	OpI64ShrU
	OpI64Rotl
	OpI64Rotr

	OpF32Abs
	OpF32Neg
	OpF32Ceil
	OpF32Floor
	OpF32Trunc
	OpF32Nearest
	OpF32Sqrt
	OpF64Abs
	OpF64Neg
	OpF64Ceil
	OpF64Floor
	OpF64Trunc
	OpF64Nearest
	OpF64Sqrt
	OpF32Add
	OpF32Sub
	OpF32Mul
	OpF32Div
	OpF32Min
	OpF32Max
	OpF32Copysign
	OpF64Add
	OpF64Sub
	OpF64Mul
	OpF64Div
	OpF64Min
	OpF64Max
	OpF64Copysign

	OpI32TruncF32S
	OpI32TruncF32U
	OpI32TruncF64S
	OpI32TruncF64U
	OpI64TruncF32S
	OpI64TruncF32U
	OpI64TruncF64S
	OpI64TruncF64U
	OpF32ConvertI32S
	OpF32ConvertI32U
	OpF32ConvertI64S
	OpF32ConvertI64U
	OpF32DemoteF64
	OpF64ConvertI32S
	OpF64ConvertI32U
	OpF64ConvertI64S
	OpF64ConvertI64U
	OpF64PromoteF32
	OpI32ReinterpretF32
	OpI64ReinterpretF64
	OpF32ReinterpretI32
	OpF64ReinterpretI64

	// Saturating float-to-int truncation (the "nontrapping conversions" proposal).
	OpI32TruncSatF32S
	OpI32TruncSatF32U
	OpI32TruncSatF64S
	OpI32TruncSatF64U
	OpI64TruncSatF32S
	OpI64TruncSatF32U
	OpI64TruncSatF64S
	OpI64TruncSatF64U
)

func (op OpCode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(%d)", uint16(op))
}

// StackEffect classifies how an operator moves the value-stack depth
// counter, matching the worst_case_depth accounting in
// _examples/original_source/arbitrator/polyglot/src/depth.rs.
type StackEffect uint8

const (
	EffectNeutral StackEffect = iota
	EffectPush1
	EffectPop1
	EffectPop2
	EffectCall        // net effect depends on the callee signature
	EffectCallIndirect // net effect depends on the indicated table type's signature
)

// neutralSet lists operators that leave the runtime value stack depth
// unchanged. Scope-opening / closing pseudo-ops (tracked separately by the
// scope counter) are not listed here; Effect reports them, like any other
// operator outside the push/pop sets, as EffectNeutral.
var neutralSet = map[OpCode]bool{
	OpNop: true, OpUnreachable: true,
	OpI32Eqz: true, OpI64Eqz: true, OpI32Clz: true, OpI32Ctz: true, OpI32Popcnt: true,
	OpI64Clz: true, OpI64Ctz: true, OpI64Popcnt: true,
	OpBr: true, OpLocalTee: true, OpMemoryGrow: true,
	OpI32Load: true, OpI64Load: true, OpF32Load: true, OpF64Load: true,
	OpI32Load8S: true, OpI32Load8U: true, OpI32Load16S: true, OpI32Load16U: true,
	OpI64Load8S: true, OpI64Load8U: true, OpI64Load16S: true, OpI64Load16U: true,
	OpI64Load32S: true, OpI64Load32U: true,
	OpI32WrapI64: true, OpI64ExtendI32S: true, OpI64ExtendI32U: true,
	OpI32Extend8S: true, OpI32Extend16S: true, OpI64Extend8S: true, OpI64Extend16S: true, OpI64Extend32S: true,
	OpF32Abs: true, OpF32Neg: true, OpF32Ceil: true, OpF32Floor: true, OpF32Trunc: true, OpF32Nearest: true, OpF32Sqrt: true,
	OpF64Abs: true, OpF64Neg: true, OpF64Ceil: true, OpF64Floor: true, OpF64Trunc: true, OpF64Nearest: true, OpF64Sqrt: true,
	OpI32TruncF32S: true, OpI32TruncF32U: true, OpI32TruncF64S: true, OpI32TruncF64U: true,
	OpI64TruncF32S: true, OpI64TruncF32U: true, OpI64TruncF64S: true, OpI64TruncF64U: true,
	OpF32ConvertI32S: true, OpF32ConvertI32U: true, OpF32ConvertI64S: true, OpF32ConvertI64U: true, OpF32DemoteF64: true,
	OpF64ConvertI32S: true, OpF64ConvertI32U: true, OpF64ConvertI64S: true, OpF64ConvertI64U: true, OpF64PromoteF32: true,
	OpI32ReinterpretF32: true, OpI64ReinterpretF64: true, OpF32ReinterpretI32: true, OpF64ReinterpretI64: true,
	OpI32TruncSatF32S: true, OpI32TruncSatF32U: true, OpI32TruncSatF64S: true, OpI32TruncSatF64U: true,
	OpI64TruncSatF32S: true, OpI64TruncSatF32U: true, OpI64TruncSatF64S: true, OpI64TruncSatF64U: true,
}

var push1Set = map[OpCode]bool{
	OpLocalGet: true, OpGlobalGet: true, OpMemorySize: true,
	OpI32Const: true, OpI64Const: true, OpF32Const: true, OpF64Const: true,
}

var pop1Set = map[OpCode]bool{
	OpDrop: true,
	OpI32Eq: true, OpI32Ne: true, OpI32LtS: true, OpI32LtU: true, OpI32GtS: true, OpI32GtU: true,
	OpI32LeS: true, OpI32LeU: true, OpI32GeS: true, OpI32GeU: true,
	OpI64Eq: true, OpI64Ne: true, OpI64LtS: true, OpI64LtU: true, OpI64GtS: true, OpI64GtU: true,
	OpI64LeS: true, OpI64LeU: true, OpI64GeS: true, OpI64GeU: true,
	OpF32Eq: true, OpF32Ne: true, OpF32Lt: true, OpF32Gt: true, OpF32Le: true, OpF32Ge: true,
	OpF64Eq: true, OpF64Ne: true, OpF64Lt: true, OpF64Gt: true, OpF64Le: true, OpF64Ge: true,
	OpI32Add: true, OpI32Sub: true, OpI32Mul: true, OpI32DivS: true, OpI32DivU: true, OpI32RemS: true, OpI32RemU: true,
	OpI64Add: true, OpI64Sub: true, OpI64Mul: true, OpI64DivS: true, OpI64DivU: true, OpI64RemS: true, OpI64RemU: true,
	OpI32And: true, OpI32Or: true, OpI32Xor: true, OpI32Shl: true, OpI32ShrS: true, OpI32ShrU: true, OpI32Rotl: true, OpI32Rotr: true,
	OpI64And: true, OpI64Or: true, OpI64Xor: true, OpI64Shl: true, OpI64ShrS: true, OpI64ShrU: true, OpI64Rotl: true, OpI64Rotr: true,
	OpF32Add: true, OpF32Sub: true, OpF32Mul: true, OpF32Div: true, OpF32Min: true, OpF32Max: true, OpF32Copysign: true,
	OpF64Add: true, OpF64Sub: true, OpF64Mul: true, OpF64Div: true, OpF64Min: true, OpF64Max: true, OpF64Copysign: true,
	OpBrIf: true, OpLocalSet: true, OpGlobalSet: true,
}

var pop2Set = map[OpCode]bool{
	OpSelect: true,
	OpI32Store: true, OpI64Store: true, OpF32Store: true, OpF64Store: true,
	OpI32Store8: true, OpI32Store16: true, OpI64Store8: true, OpI64Store16: true, OpI64Store32: true,
}

// Effect reports the stack-effect category of op, matching
// worst_case_depth's match arms in depth.rs. Call and CallIndirect are
// reported separately since their effect needs the callee signature.
func (op OpCode) Effect() StackEffect {
	switch {
	case op == OpCall:
		return EffectCall
	case op == OpCallIndirect:
		return EffectCallIndirect
	case pop2Set[op]:
		return EffectPop2
	case pop1Set[op]:
		return EffectPop1
	case push1Set[op]:
		return EffectPush1
	default:
		return EffectNeutral
	}
}

// IsScopeOpen reports whether op opens a new structured-control-flow scope
// (Block, Loop, If), matching depth.rs's `scopes += 1` arm.
func (op OpCode) IsScopeOpen() bool {
	return op == OpBlock || op == OpLoop || op == OpIf
}

// IsScopeClose reports whether op closes the innermost scope.
func (op OpCode) IsScopeClose() bool {
	return op == OpEnd
}

var opNames = map[OpCode]string{
	OpUnreachable: "unreachable", OpNop: "nop", OpBlock: "block", OpLoop: "loop", OpIf: "if",
	OpElse: "else", OpEnd: "end", OpBr: "br", OpBrIf: "br_if", OpBrTable: "br_table",
	OpReturn: "return", OpCall: "call", OpCallIndirect: "call_indirect",
	OpDrop: "drop", OpSelect: "select",
	OpLocalGet: "local.get", OpLocalSet: "local.set", OpLocalTee: "local.tee",
	OpGlobalGet: "global.get", OpGlobalSet: "global.set",
	OpMemorySize: "memory.size", OpMemoryGrow: "memory.grow",
	OpI32Const: "i32.const", OpI64Const: "i64.const", OpF32Const: "f32.const", OpF64Const: "f64.const",
}
