package wasmparser

import (
	"fmt"

	"github.com/arbstylus/wasmvm/instrument"
	"github.com/arbstylus/wasmvm/operator"
	"github.com/arbstylus/wasmvm/wasmmod"
)

func parseCodeSection(r *reader, m *Module) error {
	n, err := r.u32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		bodySize, err := r.u32()
		if err != nil {
			return err
		}
		raw, err := r.bytes(int(bodySize))
		if err != nil {
			return err
		}
		body, err := decodeFunctionBody(raw, m.Types)
		if err != nil {
			return fmt.Errorf("wasmparser: function %d: %w", i, err)
		}
		m.Bodies = append(m.Bodies, body)
	}
	return nil
}

func decodeFunctionBody(raw []byte, types []wasmmod.FunctionType) (FunctionBody, error) {
	r := newReader(raw)
	localGroups, err := r.u32()
	if err != nil {
		return FunctionBody{}, err
	}
	var locals []operatorLocal
	for i := uint32(0); i < localGroups; i++ {
		count, err := r.u32()
		if err != nil {
			return FunctionBody{}, err
		}
		tb, err := r.byte()
		if err != nil {
			return FunctionBody{}, err
		}
		vt, err := decodeValType(tb)
		if err != nil {
			return FunctionBody{}, err
		}
		locals = append(locals, operatorLocal{Count: count, Type: vt})
	}

	code, err := decodeInstrStream(r, types)
	if err != nil {
		return FunctionBody{}, err
	}
	return FunctionBody{Locals: locals, Code: code}, nil
}

// memOps lists the opcodes carrying a memarg (alignment, offset) immediate:
// every load and store, excluding memory.size/memory.grow which instead
// carry a single reserved byte.
var memOps = map[operator.OpCode]bool{
	operator.OpI32Load: true, operator.OpI64Load: true, operator.OpF32Load: true, operator.OpF64Load: true,
	operator.OpI32Load8S: true, operator.OpI32Load8U: true, operator.OpI32Load16S: true, operator.OpI32Load16U: true,
	operator.OpI64Load8S: true, operator.OpI64Load8U: true, operator.OpI64Load16S: true, operator.OpI64Load16U: true,
	operator.OpI64Load32S: true, operator.OpI64Load32U: true,
	operator.OpI32Store: true, operator.OpI64Store: true, operator.OpF32Store: true, operator.OpF64Store: true,
	operator.OpI32Store8: true, operator.OpI32Store16: true, operator.OpI64Store8: true, operator.OpI64Store16: true, operator.OpI64Store32: true,
}

// decodeInstrStream decodes one function body's raw operator stream (locals
// already consumed) into the instrument.Instr sequence the instrumentation
// pipeline's FuncMiddleware.Feed expects. It runs to the reader's end
// rather than tracking nested scope depth itself, since the instrument
// passes track scope open/close on their own via operator.IsScopeOpen/
// IsScopeClose.
func decodeInstrStream(r *reader, types []wasmmod.FunctionType) ([]instrument.Instr, error) {
	var out []instrument.Instr
	for !r.eof() {
		b, err := r.byte()
		if err != nil {
			return nil, err
		}
		if name, ok := unsupportedRawOp[b]; ok {
			return nil, unsupportedError(name)
		}
		if b == 0xFC {
			instr, err := decodeMisc(r)
			if err != nil {
				return nil, err
			}
			out = append(out, instr)
			continue
		}
		op, ok := rawOp[b]
		if !ok {
			return nil, fmt.Errorf("wasmparser: unrecognized opcode byte 0x%02x", b)
		}

		var instr instrument.Instr
		switch {
		case op == operator.OpBlock || op == operator.OpLoop || op == operator.OpIf:
			bt, has, err := decodeBlockType(r, types)
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, BlockType: bt, HasBlockType: has}

		case op == operator.OpBr || op == operator.OpBrIf:
			idx, err := r.u32()
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, Const: int64(idx)}

		case op == operator.OpBrTable:
			count, err := r.u32()
			if err != nil {
				return nil, err
			}
			for k := uint32(0); k < count; k++ {
				if _, err := r.u32(); err != nil {
					return nil, err
				}
			}
			if _, err := r.u32(); err != nil { // default label
				return nil, err
			}
			instr = instrument.Instr{Op: op}

		case op == operator.OpCall:
			idx, err := r.u32()
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, FuncIndex: wasmmod.FunctionIndex(idx)}

		case op == operator.OpCallIndirect:
			sig, err := r.u32()
			if err != nil {
				return nil, err
			}
			if _, err := r.byte(); err != nil { // table index, reserved 0x00
				return nil, err
			}
			instr = instrument.Instr{Op: op, TableSig: wasmmod.SignatureIndex(sig)}

		case op == operator.OpLocalGet || op == operator.OpLocalSet || op == operator.OpLocalTee:
			idx, err := r.u32()
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, Const: int64(idx)}

		case op == operator.OpGlobalGet || op == operator.OpGlobalSet:
			idx, err := r.u32()
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, GlobalIndex: wasmmod.GlobalIndex(idx)}

		case memOps[op]:
			if _, err := r.u32(); err != nil { // align
				return nil, err
			}
			offset, err := r.u32()
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, Const: int64(offset)}

		case op == operator.OpMemorySize || op == operator.OpMemoryGrow:
			if _, err := r.byte(); err != nil { // reserved
				return nil, err
			}
			instr = instrument.Instr{Op: op}

		case op == operator.OpI32Const:
			v, err := r.i32()
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, Const: int64(v)}

		case op == operator.OpI64Const:
			v, err := r.i64()
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, Const: v}

		case op == operator.OpF32Const:
			v, err := r.f32()
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, Const: int64(v)}

		case op == operator.OpF64Const:
			v, err := r.f64()
			if err != nil {
				return nil, err
			}
			instr = instrument.Instr{Op: op, Const: int64(v)}

		default:
			instr = instrument.Instr{Op: op}
		}
		out = append(out, instr)
	}
	return out, nil
}

func decodeBlockType(r *reader, types []wasmmod.FunctionType) (operator.ValueType, bool, error) {
	b, err := r.byte()
	if err != nil {
		return 0, false, err
	}
	switch b {
	case 0x40:
		return 0, false, nil
	case 0x7F, 0x7E, 0x7D, 0x7C, 0x70, 0x6F:
		vt, err := decodeValType(b)
		if err != nil {
			return 0, false, err
		}
		return vt, true, nil
	default:
		if b&0x80 == 0 {
			// Single-byte encoding with none of the recognized valtype
			// tags: must be a small non-negative type index.
			idx := uint32(b)
			return blockTypeFromSignature(types, idx)
		}
		idx, err := r.u32Continue(b)
		if err != nil {
			return 0, false, err
		}
		return blockTypeFromSignature(types, idx)
	}
}

func blockTypeFromSignature(types []wasmmod.FunctionType, idx uint32) (operator.ValueType, bool, error) {
	if int(idx) >= len(types) {
		return 0, false, fmt.Errorf("wasmparser: block type references unknown type %d", idx)
	}
	ty := types[idx]
	if len(ty.Params) > 0 {
		return 0, false, fmt.Errorf("wasmparser: block types with parameters are not supported")
	}
	switch len(ty.Results) {
	case 0:
		return 0, false, nil
	case 1:
		return ty.Results[0], true, nil
	default:
		return 0, false, fmt.Errorf("wasmparser: multi-value block types are not supported")
	}
}

// decodeMisc decodes the 0xFC-prefixed sub-opcode space: the saturating
// truncation operators this module supports, and the bulk-memory
// operators it rejects by name.
func decodeMisc(r *reader) (instrument.Instr, error) {
	sub, err := r.u32()
	if err != nil {
		return instrument.Instr{}, err
	}
	if name, ok := miscUnsupportedName[sub]; ok {
		return instrument.Instr{}, unsupportedError(name)
	}
	op, ok := miscOp[sub]
	if !ok {
		return instrument.Instr{}, fmt.Errorf("wasmparser: unrecognized misc opcode 0xFC 0x%02x", sub)
	}
	return instrument.Instr{Op: op}, nil
}
