package runtime

import "fmt"

// Memory is a bounds-checked view over a user program's linear memory,
// the surface every host call reads arguments from and writes results
// into. It never grows on its own; HeapBound (spec.md §4.6) already
// clamps what the underlying instance can request.
type Memory struct {
	data []byte
}

// NewMemory wraps an existing linear-memory backing slice. The slice is
// owned by the caller (the native instance or interpreter machine); Memory
// never reallocates it.
func NewMemory(data []byte) *Memory { return &Memory{data: data} }

func (m *Memory) Len() int { return len(m.data) }

// Read returns a bounds-checked copy of length bytes starting at offset.
func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(m.data)) {
		return nil, fmt.Errorf("memory read out of bounds: offset %d len %d size %d", offset, length, len(m.data))
	}
	out := make([]byte, length)
	copy(out, m.data[offset:end])
	return out, nil
}

// Write copies src into the view starting at offset, bounds-checked.
func (m *Memory) Write(offset uint32, src []byte) error {
	end := uint64(offset) + uint64(len(src))
	if end > uint64(len(m.data)) {
		return fmt.Errorf("memory write out of bounds: offset %d len %d size %d", offset, len(src), len(m.data))
	}
	copy(m.data[offset:end], src)
	return nil
}

// WriteBytes20 writes a 20-byte address at offset.
func (m *Memory) WriteBytes20(offset uint32, b [20]byte) error { return m.Write(offset, b[:]) }

// WriteBytes32 writes a 32-byte word at offset.
func (m *Memory) WriteBytes32(offset uint32, b [32]byte) error { return m.Write(offset, b[:]) }

// ReadBytes20 reads a 20-byte address from offset.
func (m *Memory) ReadBytes20(offset uint32) ([20]byte, error) {
	var out [20]byte
	b, err := m.Read(offset, 20)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// ReadBytes32 reads a 32-byte word from offset.
func (m *Memory) ReadBytes32(offset uint32) ([32]byte, error) {
	var out [32]byte
	b, err := m.Read(offset, 32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// WriteU32 writes a little-endian u32 at offset, matching wasm's native
// integer encoding.
func (m *Memory) WriteU32(offset uint32, v uint32) error {
	b := []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	return m.Write(offset, b)
}
