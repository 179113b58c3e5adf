package bus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelbound/dmgcore/internal/boot"
	"github.com/pixelbound/dmgcore/internal/cartridge"
	"github.com/pixelbound/dmgcore/internal/types"
)

func newTestCart(t *testing.T) *cartridge.Cartridge {
	t.Helper()
	rom := make([]byte, 0x8000)
	logo := [48]byte{
		0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
		0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
		0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
		0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
		0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
		0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
	}
	copy(rom[0x104:0x134], logo[:])
	rom[0x147] = 0x00 // ROM only
	rom[0x148] = 0x00
	rom[0x149] = 0x00
	return cartridge.Load(rom)
}

func TestEchoMirror(t *testing.T) {
	b := New(newTestCart(t), nil)
	b.Write(0xC010, 0x42)
	require.Equal(t, uint8(0x42), b.Read(0xE010))
	b.Write(0xE020, 0x24)
	require.Equal(t, uint8(0x24), b.Read(0xC020))
}

func TestWriteWordReadWordRoundTrip(t *testing.T) {
	b := New(newTestCart(t), nil)
	b.WriteWord(0xC100, 0xBEEF)
	require.Equal(t, uint16(0xBEEF), b.ReadWord(0xC100))
}

func TestVRAMBlockedFromCPU(t *testing.T) {
	b := New(newTestCart(t), nil)
	b.VRAMAccessible = false
	b.Write(0x8000, 0x99)
	require.Equal(t, uint8(0xFF), b.Read(0x8000))

	b.VRAMAccessible = true
	b.Write(0x8000, 0x99)
	require.Equal(t, uint8(0x99), b.Read(0x8000))
}

func TestOAMBlockedFromCPU(t *testing.T) {
	b := New(newTestCart(t), nil)
	b.OAMAccessible = false
	b.Write(0xFE00, 0x55)
	require.Equal(t, uint8(0xFF), b.Read(0xFE00))
}

func TestUnusedRegionReadsFF(t *testing.T) {
	b := New(newTestCart(t), nil)
	b.Write(0xFEA0, 0x11)
	require.Equal(t, uint8(0xFF), b.Read(0xFEA0))
}

func TestDIVWriteResets(t *testing.T) {
	b := New(newTestCart(t), nil)
	b.Timer.Tick(100)
	require.NotEqual(t, uint8(0), b.Read(types.DIV))
	b.Write(types.DIV, 0x77)
	require.Equal(t, uint8(0), b.Read(types.DIV))
}

func TestOAMDMATransfer(t *testing.T) {
	b := New(newTestCart(t), nil)
	for i := uint16(0); i < 0xA0; i++ {
		b.wram.Write(i, uint8(i))
	}
	b.Write(types.DMA, 0xC0)
	for i := uint16(0); i < 0xA0; i++ {
		require.Equal(t, uint8(i), b.oam[i])
	}
	require.Equal(t, 160, b.DrainDMACycles())
	require.Equal(t, 0, b.DrainDMACycles())
}

func TestBootOverlayThenDisable(t *testing.T) {
	bootBytes := make([]byte, boot.Size)
	bootBytes[0] = 0xAA
	br := boot.Load(bootBytes)

	b := New(newTestCart(t), br)
	require.Equal(t, uint8(0xAA), b.Read(0x0000))

	b.Write(types.BDIS, 0x01)
	require.Equal(t, uint8(0x00), b.Read(0x0000))
}
