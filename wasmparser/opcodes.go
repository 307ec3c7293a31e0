package wasmparser

import (
	"fmt"

	"github.com/arbstylus/wasmvm/operator"
)

// rawOp maps a single-byte wasm binary opcode to the internal operator.OpCode
// enumeration. Multi-byte opcodes (the 0xFC "misc" prefix, used by both the
// saturating-truncation ops this module supports and the bulk-memory ops it
// doesn't) are handled separately in decodeMisc. Grounded on the opcode
// table implicit throughout binary.rs's operator match arms; the constants
// themselves come from the WebAssembly Core Specification's binary encoding,
// which is standard and not teacher- or proposal-specific.
var rawOp = map[byte]operator.OpCode{
	0x00: operator.OpUnreachable,
	0x01: operator.OpNop,
	0x02: operator.OpBlock,
	0x03: operator.OpLoop,
	0x04: operator.OpIf,
	0x05: operator.OpElse,
	0x0B: operator.OpEnd,
	0x0C: operator.OpBr,
	0x0D: operator.OpBrIf,
	0x0E: operator.OpBrTable,
	0x0F: operator.OpReturn,
	0x10: operator.OpCall,
	0x11: operator.OpCallIndirect,

	0x1A: operator.OpDrop,
	0x1B: operator.OpSelect,

	0x20: operator.OpLocalGet,
	0x21: operator.OpLocalSet,
	0x22: operator.OpLocalTee,
	0x23: operator.OpGlobalGet,
	0x24: operator.OpGlobalSet,

	0x28: operator.OpI32Load,
	0x29: operator.OpI64Load,
	0x2A: operator.OpF32Load,
	0x2B: operator.OpF64Load,
	0x2C: operator.OpI32Load8S,
	0x2D: operator.OpI32Load8U,
	0x2E: operator.OpI32Load16S,
	0x2F: operator.OpI32Load16U,
	0x30: operator.OpI64Load8S,
	0x31: operator.OpI64Load8U,
	0x32: operator.OpI64Load16S,
	0x33: operator.OpI64Load16U,
	0x34: operator.OpI64Load32S,
	0x35: operator.OpI64Load32U,
	0x36: operator.OpI32Store,
	0x37: operator.OpI64Store,
	0x38: operator.OpF32Store,
	0x39: operator.OpF64Store,
	0x3A: operator.OpI32Store8,
	0x3B: operator.OpI32Store16,
	0x3C: operator.OpI64Store8,
	0x3D: operator.OpI64Store16,
	0x3E: operator.OpI64Store32,
	0x3F: operator.OpMemorySize,
	0x40: operator.OpMemoryGrow,

	0x41: operator.OpI32Const,
	0x42: operator.OpI64Const,
	0x43: operator.OpF32Const,
	0x44: operator.OpF64Const,

	0x45: operator.OpI32Eqz,
	0x46: operator.OpI32Eq,
	0x47: operator.OpI32Ne,
	0x48: operator.OpI32LtS,
	0x49: operator.OpI32LtU,
	0x4A: operator.OpI32GtS,
	0x4B: operator.OpI32GtU,
	0x4C: operator.OpI32LeS,
	0x4D: operator.OpI32LeU,
	0x4E: operator.OpI32GeS,
	0x4F: operator.OpI32GeU,

	0x50: operator.OpI64Eqz,
	0x51: operator.OpI64Eq,
	0x52: operator.OpI64Ne,
	0x53: operator.OpI64LtS,
	0x54: operator.OpI64LtU,
	0x55: operator.OpI64GtS,
	0x56: operator.OpI64GtU,
	0x57: operator.OpI64LeS,
	0x58: operator.OpI64LeU,
	0x59: operator.OpI64GeS,
	0x5A: operator.OpI64GeU,

	0x5B: operator.OpF32Eq,
	0x5C: operator.OpF32Ne,
	0x5D: operator.OpF32Lt,
	0x5E: operator.OpF32Gt,
	0x5F: operator.OpF32Le,
	0x60: operator.OpF32Ge,

	0x61: operator.OpF64Eq,
	0x62: operator.OpF64Ne,
	0x63: operator.OpF64Lt,
	0x64: operator.OpF64Gt,
	0x65: operator.OpF64Le,
	0x66: operator.OpF64Ge,

	0x67: operator.OpI32Clz,
	0x68: operator.OpI32Ctz,
	0x69: operator.OpI32Popcnt,
	0x6A: operator.OpI32Add,
	0x6B: operator.OpI32Sub,
	0x6C: operator.OpI32Mul,
	0x6D: operator.OpI32DivS,
	0x6E: operator.OpI32DivU,
	0x6F: operator.OpI32RemS,
	0x70: operator.OpI32RemU,
	0x71: operator.OpI32And,
	0x72: operator.OpI32Or,
	0x73: operator.OpI32Xor,
	0x74: operator.OpI32Shl,
	0x75: operator.OpI32ShrS,
	0x76: operator.OpI32ShrU,
	0x77: operator.OpI32Rotl,
	0x78: operator.OpI32Rotr,

	0x79: operator.OpI64Clz,
	0x7A: operator.OpI64Ctz,
	0x7B: operator.OpI64Popcnt,
	0x7C: operator.OpI64Add,
	0x7D: operator.OpI64Sub,
	0x7E: operator.OpI64Mul,
	0x7F: operator.OpI64DivS,
	0x80: operator.OpI64DivU,
	0x81: operator.OpI64RemS,
	0x82: operator.OpI64RemU,
	0x83: operator.OpI64And,
	0x84: operator.OpI64Or,
	0x85: operator.OpI64Xor,
	0x86: operator.OpI64Shl,
	0x87: operator.OpI64ShrS,
	0x88: operator.OpI64ShrU,
	0x89: operator.OpI64Rotl,
	0x8A: operator.OpI64Rotr,

	0x8B: operator.OpF32Abs,
	0x8C: operator.OpF32Neg,
	0x8D: operator.OpF32Ceil,
	0x8E: operator.OpF32Floor,
	0x8F: operator.OpF32Trunc,
	0x90: operator.OpF32Nearest,
	0x91: operator.OpF32Sqrt,
	0x92: operator.OpF32Add,
	0x93: operator.OpF32Sub,
	0x94: operator.OpF32Mul,
	0x95: operator.OpF32Div,
	0x96: operator.OpF32Min,
	0x97: operator.OpF32Max,
	0x98: operator.OpF32Copysign,

	0x99: operator.OpF64Abs,
	0x9A: operator.OpF64Neg,
	0x9B: operator.OpF64Ceil,
	0x9C: operator.OpF64Floor,
	0x9D: operator.OpF64Trunc,
	0x9E: operator.OpF64Nearest,
	0x9F: operator.OpF64Sqrt,
	0xA0: operator.OpF64Add,
	0xA1: operator.OpF64Sub,
	0xA2: operator.OpF64Mul,
	0xA3: operator.OpF64Div,
	0xA4: operator.OpF64Min,
	0xA5: operator.OpF64Max,
	0xA6: operator.OpF64Copysign,

	0xA7: operator.OpI32WrapI64,
	0xA8: operator.OpI32TruncF32S,
	0xA9: operator.OpI32TruncF32U,
	0xAA: operator.OpI32TruncF64S,
	0xAB: operator.OpI32TruncF64U,
	0xAC: operator.OpI64ExtendI32S,
	0xAD: operator.OpI64ExtendI32U,
	0xAE: operator.OpI64TruncF32S,
	0xAF: operator.OpI64TruncF32U,
	0xB0: operator.OpI64TruncF64S,
	0xB1: operator.OpI64TruncF64U,
	0xB2: operator.OpF32ConvertI32S,
	0xB3: operator.OpF32ConvertI32U,
	0xB4: operator.OpF32ConvertI64S,
	0xB5: operator.OpF32ConvertI64U,
	0xB6: operator.OpF32DemoteF64,
	0xB7: operator.OpF64ConvertI32S,
	0xB8: operator.OpF64ConvertI32U,
	0xB9: operator.OpF64ConvertI64S,
	0xBA: operator.OpF64ConvertI64U,
	0xBB: operator.OpF64PromoteF32,
	0xBC: operator.OpI32ReinterpretF32,
	0xBD: operator.OpI64ReinterpretF64,
	0xBE: operator.OpF32ReinterpretI32,
	0xBF: operator.OpF64ReinterpretI64,

	0xC0: operator.OpI32Extend8S,
	0xC1: operator.OpI32Extend16S,
	0xC2: operator.OpI64Extend8S,
	0xC3: operator.OpI64Extend16S,
	0xC4: operator.OpI64Extend32S,
}

// miscOp maps the sub-opcode following the 0xFC prefix byte. Only the
// nontrapping-conversions proposal (saturating truncation) is supported;
// the bulk-memory sub-opcodes in the same prefix space are listed in
// operator.UnsupportedOpcodeName and rejected by name in decodeMisc.
var miscOp = map[uint32]operator.OpCode{
	0: operator.OpI32TruncSatF32S,
	1: operator.OpI32TruncSatF32U,
	2: operator.OpI32TruncSatF64S,
	3: operator.OpI32TruncSatF64U,
	4: operator.OpI64TruncSatF32S,
	5: operator.OpI64TruncSatF32U,
	6: operator.OpI64TruncSatF64S,
	7: operator.OpI64TruncSatF64U,
}

var miscUnsupportedName = map[uint32]string{
	8:  "memory.init",
	9:  "data.drop",
	10: "memory.copy",
	11: "memory.fill",
	12: "table.init",
	13: "elem.drop",
	14: "table.copy",
	15: "table.grow",
	16: "table.size",
	17: "table.fill",
}

// unsupportedRawOp names the raw opcodes this module rejects outright,
// keyed by the byte value the wasm core spec assigns them.
var unsupportedRawOp = map[byte]string{
	0x06: "try", 0x07: "catch", 0x08: "throw", 0x09: "rethrow",
	0x1C: "typed_select",
	0x25: "table.get", 0x26: "table.set",
	0xD0: "ref.null", 0xD1: "ref.is_null", 0xD2: "ref.func",
	0xFD: "v128.const",
	0xFE: "memory.atomic.notify",
}

// unsupportedError formats operator.UnsupportedOpcodeName's proposal lookup
// into a load-time diagnostic, falling back to a generic "unrecognized"
// message for opcodes outside any named proposal.
func unsupportedError(mnemonic string) error {
	if proposal, ok := operator.UnsupportedOpcodeName[mnemonic]; ok {
		return fmt.Errorf("wasmparser: operator %q is part of unsupported proposal %q", mnemonic, proposal)
	}
	return fmt.Errorf("wasmparser: unrecognized or unsupported operator %q", mnemonic)
}
