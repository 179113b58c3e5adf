package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelbound/dmgcore/internal/bus"
	"github.com/pixelbound/dmgcore/internal/cartridge"
	"github.com/pixelbound/dmgcore/internal/types"
)

func newTestBus(t *testing.T) *bus.Bus {
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
	b := bus.New(cartridge.Load(rom), nil)
	b.Write(types.LCDC, 0x91) // LCD on, BG on, tile data at 0x8000
	return b
}

func TestModeSequenceAdvancesLY(t *testing.T) {
	b := newTestBus(t)
	p := New(b)
	require.Equal(t, ModeOAM, p.mode)

	p.Tick(80)
	require.Equal(t, ModeDraw, p.mode)

	p.Tick(p.drawDots)
	require.Equal(t, ModeHBlank, p.mode)

	p.Tick(dotsPerScanline - oamScanDots - p.drawDots)
	require.Equal(t, uint8(1), p.ly)
}

func TestVBlankRaisedAtScanline144(t *testing.T) {
	b := newTestBus(t)
	p := New(b)
	for i := 0; i < 144; i++ {
		p.Tick(dotsPerScanline)
	}
	require.Equal(t, ModeVBlank, p.mode)
	require.NotZero(t, b.Interrupts.Flag&0x01)
}

func TestLYCCoincidenceRaisesStatInterrupt(t *testing.T) {
	b := newTestBus(t)
	b.Write(types.LYC, 1)
	b.Write(types.STAT, 0x40) // enable coincidence interrupt source
	p := New(b)
	p.Tick(dotsPerScanline)
	require.NotZero(t, b.Interrupts.Flag&0x02)
}

func TestSpriteXPriorityLowerXWins(t *testing.T) {
	b := newTestBus(t)
	b.Write(types.LCDC, 0x93) // LCD+BG+OBJ on, tile data at 0x8000
	b.Write(types.OBP0, 0xE4) // identity mapping: shade == color index

	// tile 0: solid color index 3
	b.Write(0x8000, 0xFF)
	b.Write(0x8001, 0xFF)
	// tile 1: solid color index 1
	b.Write(0x8010, 0xFF)
	b.Write(0x8011, 0x00)

	// OAM index 0: x=4, tile 1
	b.Write(0xFE00, 16)
	b.Write(0xFE01, 12)
	b.Write(0xFE02, 1)
	b.Write(0xFE03, 0)
	// OAM index 1: x=0, tile 0 (higher OAM index but lower X -> should win)
	b.Write(0xFE04, 16)
	b.Write(0xFE05, 8)
	b.Write(0xFE06, 0)
	b.Write(0xFE07, 0)

	p := New(b)
	p.Tick(dotsPerScanline)

	fb := p.Frame()
	require.Equal(t, uint8(3), fb[0][0], "sprite-only region for the lower-X sprite")
	require.Equal(t, uint8(3), fb[0][5], "overlap region: lower X wins regardless of OAM index")
	require.Equal(t, uint8(1), fb[0][10], "sprite-only region for the higher-X sprite")
}

func TestSpriteOffTopEdgeStillDrawn(t *testing.T) {
	b := newTestBus(t)
	b.Write(types.LCDC, 0x82) // LCD+OBJ on, BG off
	b.Write(types.OBP0, 0xE4)

	// tile 0: solid color index 3 on every row
	for row := uint16(0); row < 8; row++ {
		b.Write(0x8000+row*2, 0xFF)
		b.Write(0x8000+row*2+1, 0xFF)
	}

	// raw Y=14 -> on-screen y=-2, still visible on scanline 0 (row 2 of the tile)
	b.Write(0xFE00, 14)
	b.Write(0xFE01, 8)
	b.Write(0xFE02, 0)
	b.Write(0xFE03, 0)

	p := New(b)
	p.Tick(dotsPerScanline)

	fb := p.Frame()
	require.Equal(t, uint8(3), fb[0][0], "sprite scrolled above the top edge must still render its visible rows")
}

func TestFrameProducesFullFramebuffer(t *testing.T) {
	b := newTestBus(t)
	p := New(b)
	for i := 0; i < scanlinesPerFrame; i++ {
		p.Tick(dotsPerScanline)
	}
	fb := p.Frame()
	require.Len(t, fb, ScreenHeight)
	require.Len(t, fb[0], ScreenWidth)
}
