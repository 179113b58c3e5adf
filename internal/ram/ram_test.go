package ram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	b := NewBlock(0x2000)
	b.Write(0x1234, 0xAB)
	require.Equal(t, uint8(0xAB), b.Read(0x1234))
}

func TestZeroInitialized(t *testing.T) {
	b := NewBlock(16)
	require.Equal(t, uint8(0), b.Read(0))
}

func TestLen(t *testing.T) {
	b := NewBlock(0x7F)
	require.Equal(t, 0x7F, b.Len())
}

func TestOutOfBoundsReadPanics(t *testing.T) {
	b := NewBlock(4)
	require.Panics(t, func() { b.Read(4) })
}

func TestOutOfBoundsWritePanics(t *testing.T) {
	b := NewBlock(4)
	require.Panics(t, func() { b.Write(100, 1) })
}
