// Package ppu implements the Game Boy's scanline-accurate Pixel
// Processing Unit: the per-scanline mode state machine, background and
// window pixel fetch, OAM sprite scan, and the DMG palette.
package ppu

import (
	"sort"

	"github.com/pixelbound/dmgcore/internal/bus"
	"github.com/pixelbound/dmgcore/internal/interrupts"
	"github.com/pixelbound/dmgcore/internal/ppu/palette"
	"github.com/pixelbound/dmgcore/internal/types"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	dotsPerScanline = 456
	oamScanDots     = 80
	scanlinesPerFrame = 154
	vblankStartLine   = 144
)

// Mode names the four STAT mode bits.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeDraw   Mode = 3
)

// PPU drives the LCD state machine and produces one 2-bit-index
// framebuffer per frame.
type PPU struct {
	bus *bus.Bus

	ly  uint8
	dot int

	mode       Mode
	drawDots   int
	frameReady bool

	framebuffer [ScreenHeight][ScreenWidth]uint8
	bgRow       [ScreenWidth]uint8 // raw (pre-palette) background/window color indices for the current scanline
}

// New returns a PPU driving bus. It enters Mode 2 for scanline 0 at once,
// so OAM is blocked to the CPU from construction on.
func New(b *bus.Bus) *PPU {
	p := &PPU{bus: b}
	p.enterMode(ModeOAM)
	return p
}

// Frame returns the framebuffer as it currently stands: 144 rows of 160
// 2-bit color indices (0-3), post-palette. Each row is overwritten when its
// scanline leaves Mode 3, so mid-frame the rows already drawn belong to the
// current frame and the rest to the previous one.
func (p *PPU) Frame() [ScreenHeight][ScreenWidth]uint8 {
	return p.framebuffer
}

// LY returns the current scanline.
func (p *PPU) LY() uint8 { return p.ly }

// Tick advances the PPU by the given number of dots, which may span mode
// or scanline boundaries.
func (p *PPU) Tick(dots int) {
	if p.bus.IO(types.LCDC)&0x80 == 0 {
		return
	}
	for dots > 0 {
		step := p.dotsUntilModeEnd()
		if step > dots {
			step = dots
		}
		p.dot += step
		dots -= step
		if p.dot >= p.modeLength() {
			p.dot -= p.modeLength()
			p.advanceMode()
		}
	}
}

func (p *PPU) dotsUntilModeEnd() int {
	remaining := p.modeLength() - p.dot
	if remaining <= 0 {
		return 1
	}
	return remaining
}

func (p *PPU) modeLength() int {
	switch p.mode {
	case ModeOAM:
		return oamScanDots
	case ModeDraw:
		return p.drawDots
	case ModeHBlank:
		return dotsPerScanline - oamScanDots - p.drawDots
	case ModeVBlank:
		return dotsPerScanline
	}
	return dotsPerScanline
}

func (p *PPU) advanceMode() {
	switch p.mode {
	case ModeOAM:
		p.enterMode(ModeDraw)
	case ModeDraw:
		p.renderScanline()
		p.enterMode(ModeHBlank)
	case ModeHBlank:
		p.ly++
		p.setLY(p.ly)
		if p.ly >= vblankStartLine {
			p.enterMode(ModeVBlank)
			p.bus.Interrupts.Request(interrupts.VBlankFlag)
			p.frameReady = true
		} else {
			p.enterMode(ModeOAM)
		}
	case ModeVBlank:
		p.ly++
		if p.ly >= scanlinesPerFrame {
			p.ly = 0
			p.setLY(p.ly)
			p.enterMode(ModeOAM)
		} else {
			p.setLY(p.ly)
		}
	}
}

// enterMode transitions into mode, updates the bus accessibility gates,
// the STAT register, and raises a STAT interrupt if an enabled source
// fires on this transition.
func (p *PPU) enterMode(mode Mode) {
	p.mode = mode
	switch mode {
	case ModeOAM:
		p.bus.OAMAccessible = false
		p.bus.VRAMAccessible = true
	case ModeDraw:
		p.bus.OAMAccessible = false
		p.bus.VRAMAccessible = false
		p.drawDots = 172 + int(p.bus.IO(types.SCX)&0x07)
	case ModeHBlank, ModeVBlank:
		p.bus.OAMAccessible = true
		p.bus.VRAMAccessible = true
	}

	stat := p.bus.IO(types.STAT)&0xF8 | uint8(mode)
	p.bus.SetIO(types.STAT, stat)

	var sourceBit uint8
	switch mode {
	case ModeHBlank:
		sourceBit = 0x08
	case ModeVBlank:
		sourceBit = 0x10
	case ModeOAM:
		sourceBit = 0x20
	default:
		return
	}
	if stat&sourceBit != 0 {
		p.bus.Interrupts.Request(interrupts.LCDFlag)
	}
}

// setLY sets LY and updates the STAT coincidence flag, raising a STAT
// interrupt if the coincidence interrupt source is enabled.
func (p *PPU) setLY(ly uint8) {
	p.bus.SetIO(types.LY, ly)

	stat := p.bus.IO(types.STAT) &^ 0x04
	coincidence := ly == p.bus.IO(types.LYC)
	if coincidence {
		stat |= 0x04
	}
	p.bus.SetIO(types.STAT, stat)
	if coincidence && stat&0x40 != 0 {
		p.bus.Interrupts.Request(interrupts.LCDFlag)
	}
}

// renderScanline computes the 160 background/window/sprite pixels for
// the current LY, applying BGP/OBP0/OBP1 and writing them into the
// framebuffer.
func (p *PPU) renderScanline() {
	if int(p.ly) >= ScreenHeight {
		return
	}
	lcdc := p.bus.IO(types.LCDC)
	bgp := palette.Palette(p.bus.IO(types.BGP))

	var row [ScreenWidth]uint8
	if lcdc&0x01 != 0 {
		p.renderBackground(lcdc, &row)
	}
	if lcdc&0x20 != 0 {
		p.renderWindow(lcdc, &row)
	}
	p.bgRow = row
	for x := 0; x < ScreenWidth; x++ {
		p.framebuffer[p.ly][x] = bgp.Shade(row[x])
	}
	if lcdc&0x02 != 0 {
		p.renderSprites(lcdc)
	}
}

func (p *PPU) renderBackground(lcdc uint8, row *[ScreenWidth]uint8) {
	scy := p.bus.IO(types.SCY)
	scx := p.bus.IO(types.SCX)
	mapBase := tileMapBase(lcdc&0x08 != 0)

	fetcherY := scy + p.ly
	for screenX := 0; screenX < ScreenWidth; screenX++ {
		fetcherX := (uint16(scx)/8 + uint16(screenX)/8) & 0x1F
		row[screenX] = p.tilePixel(mapBase, fetcherX, fetcherY, (uint16(scx)+uint16(screenX))%8, lcdc)
	}
}

func (p *PPU) renderWindow(lcdc uint8, row *[ScreenWidth]uint8) {
	wy := p.bus.IO(types.WY)
	wx := int(p.bus.IO(types.WX)) - 7
	if p.ly < wy {
		return
	}
	mapBase := tileMapBase(lcdc&0x40 != 0)
	windowLine := p.ly - wy

	for screenX := 0; screenX < ScreenWidth; screenX++ {
		if screenX < wx {
			continue
		}
		winX := uint16(screenX - wx)
		fetcherX := (winX / 8) & 0x1F
		row[screenX] = p.tilePixel(mapBase, fetcherX, windowLine, winX%8, lcdc)
	}
}

func tileMapBase(hiSelect bool) uint16 {
	if hiSelect {
		return 0x9C00
	}
	return 0x9800
}

// tilePixel fetches the single pixel at (col, pixelY) of the tile
// addressed by (mapBase, fetcherX, tile row of pixelY).
func (p *PPU) tilePixel(mapBase uint16, fetcherX uint16, pixelY uint8, col uint16, lcdc uint8) uint8 {
	tileRow := uint16(pixelY) / 8
	mapAddr := mapBase + tileRow*32 + fetcherX
	tileIndex := p.bus.ReadPPU(mapAddr)

	var tileAddr uint16
	if lcdc&0x10 != 0 {
		tileAddr = 0x8000 + uint16(tileIndex)*16
	} else {
		tileAddr = uint16(0x9000 + int16(int8(tileIndex))*16)
	}

	rowInTile := uint16(pixelY) % 8
	lo := p.bus.ReadPPU(tileAddr + rowInTile*2)
	hi := p.bus.ReadPPU(tileAddr + rowInTile*2 + 1)

	bit := 7 - col
	loBit := (lo >> bit) & 1
	hiBit := (hi >> bit) & 1
	return hiBit<<1 | loBit
}

// sprite is one 4-byte OAM entry, as read during the per-scanline scan. y
// and x are held as screen-relative ints (not uint8) since either can be
// negative for a sprite scrolled partially off the top or left edge.
type sprite struct {
	y, x     int
	tile     uint8
	attr     uint8
	oamIndex int
}

// renderSprites scans OAM for up to 10 sprites visible on the current
// scanline and blends them over the background/window row already
// written to the framebuffer. Priority is lower X wins, ties broken by
// lower OAM index; sprites are drawn back-to-front so the highest-priority
// sprite ends up on top.
func (p *PPU) renderSprites(lcdc uint8) {
	height := uint8(8)
	if lcdc&0x04 != 0 {
		height = 16
	}

	var visible []sprite
	for i := 0; i < 40 && len(visible) < 10; i++ {
		base := uint16(0xFE00 + i*4)
		y := int(p.bus.ReadPPU(base)) - 16
		if int(p.ly) < y || int(p.ly) >= y+int(height) {
			continue
		}
		visible = append(visible, sprite{
			y:        y,
			x:        int(p.bus.ReadPPU(base+1)) - 8,
			tile:     p.bus.ReadPPU(base + 2),
			attr:     p.bus.ReadPPU(base + 3),
			oamIndex: i,
		})
	}

	sort.Slice(visible, func(i, j int) bool {
		if visible[i].x != visible[j].x {
			return visible[i].x < visible[j].x
		}
		return visible[i].oamIndex < visible[j].oamIndex
	})

	for i := len(visible) - 1; i >= 0; i-- {
		p.drawSprite(visible[i], height)
	}
}

func (p *PPU) drawSprite(s sprite, height uint8) {
	row := int(p.ly) - s.y
	if s.attr&0x40 != 0 {
		row = int(height) - 1 - row
	}
	tile := s.tile
	if height == 16 {
		tile &^= 0x01
	}
	tileAddr := 0x8000 + uint16(tile)*16 + uint16(row)*2
	lo := p.bus.ReadPPU(tileAddr)
	hi := p.bus.ReadPPU(tileAddr + 1)

	obp0 := palette.Palette(p.bus.IO(types.OBP0))
	obp1 := palette.Palette(p.bus.IO(types.OBP1))
	pal := obp0
	if s.attr&0x10 != 0 {
		pal = obp1
	}

	for col := uint8(0); col < 8; col++ {
		screenX := s.x + int(col)
		if screenX < 0 || screenX >= ScreenWidth {
			continue
		}
		bit := col
		if s.attr&0x20 == 0 {
			bit = 7 - col
		}
		loBit := (lo >> bit) & 1
		hiBit := (hi >> bit) & 1
		index := hiBit<<1 | loBit
		if index == 0 {
			continue // color 0 is transparent for sprites
		}
		if s.attr&0x80 != 0 && p.bgRow[screenX] != 0 {
			continue // behind background, except over color 0
		}
		p.framebuffer[p.ly][screenX] = pal.Shade(index)
	}
}
