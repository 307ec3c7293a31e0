package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryReadWriteRoundTrip(t *testing.T) {
	mem := NewMemory(make([]byte, 64))
	require.NoError(t, mem.Write(10, []byte("hello")))
	got, err := mem.Read(10, 5)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestMemoryReadOutOfBounds(t *testing.T) {
	mem := NewMemory(make([]byte, 16))
	_, err := mem.Read(10, 10)
	require.Error(t, err)
}

func TestMemoryWriteOutOfBounds(t *testing.T) {
	mem := NewMemory(make([]byte, 16))
	err := mem.Write(10, make([]byte, 10))
	require.Error(t, err)
}

func TestMemoryBytes32RoundTrip(t *testing.T) {
	mem := NewMemory(make([]byte, 64))
	var word [32]byte
	word[0] = 0xAB
	word[31] = 0xCD
	require.NoError(t, mem.WriteBytes32(0, word))
	got, err := mem.ReadBytes32(0)
	require.NoError(t, err)
	require.Equal(t, word, got)
}

func TestMemoryBytes20RoundTrip(t *testing.T) {
	mem := NewMemory(make([]byte, 32))
	var addr [20]byte
	addr[0] = 0x11
	addr[19] = 0x22
	require.NoError(t, mem.WriteBytes20(0, addr))
	got, err := mem.ReadBytes20(0)
	require.NoError(t, err)
	require.Equal(t, addr, got)
}

func TestMemoryWriteU32LittleEndian(t *testing.T) {
	mem := NewMemory(make([]byte, 8))
	require.NoError(t, mem.WriteU32(0, 0x01020304))
	got, err := mem.Read(0, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, got)
}
