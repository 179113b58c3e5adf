package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestROM(cartType uint8, romBanks, ramSizeCode int) []byte {
	rom := make([]byte, 0x4000*max(romBanks, 2))
	copy(rom[0x104:0x134], nintendoLogo[:])
	rom[0x147] = cartType
	rom[0x148] = uint8(log2(romBanks) - 1) // code n declares 32KiB<<n, i.e. 2<<n banks
	rom[0x149] = uint8(ramSizeCode)
	return rom
}

func log2(n int) int {
	p := 0
	for (1 << p) < n {
		p++
	}
	return p
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func TestParseHeader_LogoValid(t *testing.T) {
	rom := newTestROM(uint8(TypeROM), 2, 0x00)
	h := ParseHeader(rom)
	require.True(t, h.LogoValid)
	require.Equal(t, TypeROM, h.CartridgeType)
}

func TestParseHeader_LogoInvalid(t *testing.T) {
	rom := newTestROM(uint8(TypeROM), 2, 0x00)
	rom[0x104] = 0x00
	h := ParseHeader(rom)
	require.False(t, h.LogoValid)
}

func TestLoad_ROMOnly(t *testing.T) {
	rom := newTestROM(uint8(TypeROM), 2, 0x00)
	c := Load(rom)
	require.Equal(t, TypeROM, c.Header.CartridgeType)
	require.Equal(t, uint8(0), c.ReadROM(0x0000))
}

func TestLoad_UnsupportedType(t *testing.T) {
	rom := newTestROM(0x19, 2, 0x00) // MBC5, not implemented
	require.Panics(t, func() { Load(rom) })
}

func TestChecksum_Deterministic(t *testing.T) {
	rom := newTestROM(uint8(TypeROM), 2, 0x00)
	a := Load(rom).Checksum()
	b := Load(rom).Checksum()
	require.Equal(t, a, b)
}

func TestMBC1_BankSwitch(t *testing.T) {
	rom := newTestROM(uint8(TypeMBC1), 4, 0x02)
	// mark bank 2 with a distinct byte at its start
	rom[0x4000*2] = 0xAB
	c := Load(rom)
	c.WriteROM(0x2000, 0x02) // select ROM bank 2
	require.Equal(t, uint8(0xAB), c.ReadROM(0x4000))
}

func TestMBC1_RAMGatedUntilEnabled(t *testing.T) {
	rom := newTestROM(uint8(TypeMBC1RAM), 2, 0x02)
	c := Load(rom)
	require.Equal(t, uint8(0xFF), c.ReadRAM(0x0000))
	c.WriteROM(0x0000, 0x0A)
	c.WriteRAM(0x0000, 0x42)
	require.Equal(t, uint8(0x42), c.ReadRAM(0x0000))
}
