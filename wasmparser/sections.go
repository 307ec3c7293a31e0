package wasmparser

import (
	"bytes"
	"fmt"

	"github.com/arbstylus/wasmvm/operator"
	"github.com/arbstylus/wasmvm/wasmmod"
)

const (
	magic   = 0x6d736100 // "\0asm"
	version = 1
)

const (
	secCustom    = 0
	secType      = 1
	secImport    = 2
	secFunction  = 3
	secTable     = 4
	secMemory    = 5
	secGlobal    = 6
	secExport    = 7
	secStart     = 8
	secElement   = 9
	secCode      = 10
	secData      = 11
	secDataCount = 12
)

// Parse decodes a complete wasm binary module, the entry point binary.rs's
// loader occupies in the original. It rejects any section referencing a
// proposal this module doesn't support (multiple memories, tables beyond a
// single funcref table used only by call_indirect, reference types) rather
// than silently ignoring it.
func Parse(wasm []byte) (*Module, error) {
	r := newReader(wasm)
	magicBytes, err := r.bytes(4)
	if err != nil {
		return nil, fmt.Errorf("wasmparser: truncated header: %w", err)
	}
	if !bytes.Equal(magicBytes, []byte{0x00, 0x61, 0x73, 0x6d}) {
		return nil, fmt.Errorf("wasmparser: bad magic number")
	}
	verBytes, err := r.bytes(4)
	if err != nil {
		return nil, fmt.Errorf("wasmparser: truncated header: %w", err)
	}
	if verBytes[0] != 1 || verBytes[1] != 0 || verBytes[2] != 0 || verBytes[3] != 0 {
		return nil, fmt.Errorf("wasmparser: unsupported binary version")
	}

	m := &Module{
		Exports:   make(map[string]wasmmod.Export),
		FuncNames: make(map[wasmmod.FunctionIndex]string),
	}

	var tableCount int
	var lastSection int = -1
	for !r.eof() {
		id, err := r.byte()
		if err != nil {
			return nil, err
		}
		size, err := r.u32()
		if err != nil {
			return nil, fmt.Errorf("wasmparser: section %d: bad size: %w", id, err)
		}
		body, err := r.bytes(int(size))
		if err != nil {
			return nil, fmt.Errorf("wasmparser: section %d: truncated body: %w", id, err)
		}
		if id != secCustom {
			if int(id) <= lastSection {
				return nil, fmt.Errorf("wasmparser: section %d out of order", id)
			}
			lastSection = int(id)
		}

		sr := newReader(body)
		switch id {
		case secCustom:
			// Name and other custom sections carry no consensus-relevant
			// information; they are parsed only far enough to validate
			// their own length and then discarded.
		case secType:
			if err := parseTypeSection(sr, m); err != nil {
				return nil, err
			}
		case secImport:
			if err := parseImportSection(sr, m, &tableCount); err != nil {
				return nil, err
			}
		case secFunction:
			if err := parseFunctionSection(sr, m); err != nil {
				return nil, err
			}
		case secTable:
			n, err := sr.u32()
			if err != nil {
				return nil, err
			}
			tableCount += int(n)
			if tableCount > 1 {
				return nil, fmt.Errorf("wasmparser: multiple tables not supported")
			}
			for i := uint32(0); i < n; i++ {
				if _, err := decodeTableType(sr); err != nil {
					return nil, err
				}
			}
		case secMemory:
			if err := parseMemorySection(sr, m); err != nil {
				return nil, err
			}
		case secGlobal:
			if err := parseGlobalSection(sr, m); err != nil {
				return nil, err
			}
		case secExport:
			if err := parseExportSection(sr, m); err != nil {
				return nil, err
			}
		case secStart:
			idx, err := sr.u32()
			if err != nil {
				return nil, err
			}
			fi := wasmmod.FunctionIndex(idx)
			m.StartFunc = &fi
		case secElement:
			// Element segments populate the call_indirect table; this
			// module only needs the table's existence, not its contents,
			// since indirect calls are resolved against signatures at
			// call time rather than statically. The section is skipped
			// in full without decoding its segments.
		case secCode:
			if err := parseCodeSection(sr, m); err != nil {
				return nil, err
			}
		case secData, secDataCount:
			// Passive/active data segments initialize linear memory;
			// harmless to skip since HeapBound and the embedder apply
			// them before any instrumented code runs, outside this
			// parser's scope.
		default:
			return nil, fmt.Errorf("wasmparser: unknown section id %d", id)
		}
	}
	if len(m.Bodies) != len(m.FuncSigs) {
		return nil, fmt.Errorf("wasmparser: function section declares %d functions but code section defines %d", len(m.FuncSigs), len(m.Bodies))
	}
	return m, nil
}

func decodeValType(b byte) (operator.ValueType, error) {
	switch b {
	case 0x7F:
		return operator.I32, nil
	case 0x7E:
		return operator.I64, nil
	case 0x7D:
		return operator.F32, nil
	case 0x7C:
		return operator.F64, nil
	case 0x70:
		return operator.FuncRef, nil
	case 0x6F:
		return 0, unsupportedError("table.get") // externref, reference-types proposal
	default:
		return 0, fmt.Errorf("wasmparser: unrecognized value type byte 0x%02x", b)
	}
}

func decodeTableType(r *reader) (operator.ValueType, error) {
	elemByte, err := r.byte()
	if err != nil {
		return 0, err
	}
	elem, err := decodeValType(elemByte)
	if err != nil {
		return 0, err
	}
	if elem != operator.FuncRef {
		return 0, unsupportedError("table.get")
	}
	limFlag, err := r.byte()
	if err != nil {
		return 0, err
	}
	if _, err := r.u32(); err != nil { // minimum
		return 0, err
	}
	if limFlag == 1 {
		if _, err := r.u32(); err != nil { // maximum
			return 0, err
		}
	}
	return elem, nil
}

func parseTypeSection(r *reader, m *Module) error {
	n, err := r.u32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		form, err := r.byte()
		if err != nil {
			return err
		}
		if form != 0x60 {
			return fmt.Errorf("wasmparser: type %d: expected func form 0x60, got 0x%02x", i, form)
		}
		params, err := decodeValTypeVec(r)
		if err != nil {
			return err
		}
		results, err := decodeValTypeVec(r)
		if err != nil {
			return err
		}
		m.Types = append(m.Types, wasmmod.FunctionType{Params: params, Results: results})
	}
	return nil
}

func decodeValTypeVec(r *reader) ([]operator.ValueType, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	out := make([]operator.ValueType, n)
	for i := uint32(0); i < n; i++ {
		b, err := r.byte()
		if err != nil {
			return nil, err
		}
		vt, err := decodeValType(b)
		if err != nil {
			return nil, err
		}
		out[i] = vt
	}
	return out, nil
}

func parseImportSection(r *reader, m *Module, tableCount *int) error {
	n, err := r.u32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		modName, err := r.name()
		if err != nil {
			return err
		}
		fieldName, err := r.name()
		if err != nil {
			return err
		}
		kind, err := r.byte()
		if err != nil {
			return err
		}
		switch kind {
		case 0x00: // func
			sig, err := r.u32()
			if err != nil {
				return err
			}
			m.Imports = append(m.Imports, importFunc{Module: modName, Name: fieldName, Sig: wasmmod.SignatureIndex(sig)})
		case 0x01: // table
			*tableCount++
			if *tableCount > 1 {
				return fmt.Errorf("wasmparser: multiple tables not supported")
			}
			if _, err := decodeTableType(r); err != nil {
				return err
			}
		case 0x02: // memory
			mem, err := decodeMemType(r)
			if err != nil {
				return err
			}
			m.Memories = append(m.Memories, mem)
		case 0x03: // global
			if _, err := r.byte(); err != nil { // valtype
				return err
			}
			if _, err := r.byte(); err != nil { // mutability
				return err
			}
		default:
			return fmt.Errorf("wasmparser: unknown import kind %d", kind)
		}
	}
	return nil
}

func decodeMemType(r *reader) (wasmmod.Memory, error) {
	flag, err := r.byte()
	if err != nil {
		return wasmmod.Memory{}, err
	}
	min, err := r.u32()
	if err != nil {
		return wasmmod.Memory{}, err
	}
	mem := wasmmod.Memory{Minimum: wasmmod.Pages(min)}
	if flag == 1 {
		max, err := r.u32()
		if err != nil {
			return wasmmod.Memory{}, err
		}
		maxPages := wasmmod.Pages(max)
		mem.Maximum = &maxPages
	}
	return mem, nil
}

func parseFunctionSection(r *reader, m *Module) error {
	n, err := r.u32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		sig, err := r.u32()
		if err != nil {
			return err
		}
		m.FuncSigs = append(m.FuncSigs, wasmmod.SignatureIndex(sig))
	}
	return nil
}

func parseMemorySection(r *reader, m *Module) error {
	n, err := r.u32()
	if err != nil {
		return err
	}
	if len(m.Memories)+int(n) > 1 {
		return fmt.Errorf("wasmparser: multi-memory extension not supported")
	}
	for i := uint32(0); i < n; i++ {
		mem, err := decodeMemType(r)
		if err != nil {
			return err
		}
		m.Memories = append(m.Memories, mem)
	}
	return nil
}

func parseGlobalSection(r *reader, m *Module) error {
	n, err := r.u32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		vtByte, err := r.byte()
		if err != nil {
			return err
		}
		vt, err := decodeValType(vtByte)
		if err != nil {
			return err
		}
		if _, err := r.byte(); err != nil { // mutability
			return err
		}
		init, err := decodeConstExpr(r, vt)
		if err != nil {
			return err
		}
		m.Globals = append(m.Globals, init)
	}
	return nil
}

// decodeConstExpr evaluates a global initializer expression. Only the
// numeric i32.const/i64.const forms followed by end are supported, matching
// the only initializers the instrumentation passes or a Stylus program ever
// need; global.get-of-an-import and ref.null/ref.func initializers are
// rejected as the reference-types proposal they depend on.
func decodeConstExpr(r *reader, want operator.ValueType) (wasmmod.GlobalInit, error) {
	op, err := r.byte()
	if err != nil {
		return wasmmod.GlobalInit{}, err
	}
	var init wasmmod.GlobalInit
	switch op {
	case 0x41: // i32.const
		v, err := r.i32()
		if err != nil {
			return wasmmod.GlobalInit{}, err
		}
		init = wasmmod.I32Init(uint32(v))
	case 0x42: // i64.const
		v, err := r.i64()
		if err != nil {
			return wasmmod.GlobalInit{}, err
		}
		init = wasmmod.I64Init(uint64(v))
	case 0x23: // global.get
		return wasmmod.GlobalInit{}, fmt.Errorf("wasmparser: imported-global initializers not supported")
	case 0xD0: // ref.null
		return wasmmod.GlobalInit{}, unsupportedError("ref.null")
	default:
		return wasmmod.GlobalInit{}, fmt.Errorf("wasmparser: unsupported global initializer opcode 0x%02x", op)
	}
	end, err := r.byte()
	if err != nil {
		return wasmmod.GlobalInit{}, err
	}
	if end != 0x0B {
		return wasmmod.GlobalInit{}, fmt.Errorf("wasmparser: malformed constant expression, expected end")
	}
	_ = want
	return init, nil
}

func parseExportSection(r *reader, m *Module) error {
	n, err := r.u32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		name, err := r.name()
		if err != nil {
			return err
		}
		kind, err := r.byte()
		if err != nil {
			return err
		}
		idx, err := r.u32()
		if err != nil {
			return err
		}
		var exportKind wasmmod.ExportKind
		switch kind {
		case 0x00:
			exportKind = wasmmod.ExportFunc
			m.FuncNames[wasmmod.FunctionIndex(idx)] = name
		case 0x01:
			exportKind = wasmmod.ExportTable
		case 0x02:
			exportKind = wasmmod.ExportMemory
		case 0x03:
			exportKind = wasmmod.ExportGlobal
		default:
			return fmt.Errorf("wasmparser: unknown export kind %d", kind)
		}
		m.Exports[name] = wasmmod.Export{Kind: exportKind, Index: idx}
	}
	return nil
}
