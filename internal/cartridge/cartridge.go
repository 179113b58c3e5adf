// Package cartridge parses Game Boy ROM headers and constructs the memory
// bank controller the header declares.
package cartridge

import (
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/pixelbound/dmgcore/internal/cartridge/mbc"
)

// Cartridge is a loaded ROM image paired with its bank controller.
type Cartridge struct {
	Header     Header
	Controller mbc.Controller

	checksum uint64
}

// Load parses rom's header and constructs the matching bank controller.
// It panics if the header declares a cartridge type this implementation
// does not support — an unimplemented MBC is a fatal condition, not a
// recoverable one, since nothing downstream could run correctly against it.
func Load(rom []byte) *Cartridge {
	h := ParseHeader(rom)
	if !h.CartridgeType.Supported() {
		panic(fmt.Sprintf("cartridge: unsupported cartridge type %s", h.CartridgeType))
	}

	var ctrl mbc.Controller
	switch h.CartridgeType {
	case TypeROM:
		ctrl = mbc.NewROMOnly(rom, h.RAMSize)
	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBATT:
		ctrl = mbc.NewMBC1(rom, h.RAMSize)
	}

	return &Cartridge{
		Header:     h,
		Controller: ctrl,
		checksum:   xxhash.Sum64(rom),
	}
}

// Checksum returns the xxhash-64 of the raw ROM bytes, suitable for keying
// a save-RAM blob by cartridge identity without touching the filesystem.
func (c *Cartridge) Checksum() uint64 {
	return c.checksum
}

// ReadROM reads a byte from cartridge ROM space, address 0x0000-0x7FFF.
func (c *Cartridge) ReadROM(addr uint16) uint8 { return c.Controller.ReadROM(addr) }

// WriteROM writes to a cartridge ROM-space register, address 0x0000-0x7FFF.
func (c *Cartridge) WriteROM(addr uint16, value uint8) { c.Controller.WriteROM(addr, value) }

// ReadRAM reads a byte from cartridge RAM space, address 0x0000-0x1FFF
// relative to 0xA000.
func (c *Cartridge) ReadRAM(addr uint16) uint8 { return c.Controller.ReadRAM(addr) }

// WriteRAM writes a byte to cartridge RAM space, address 0x0000-0x1FFF
// relative to 0xA000.
func (c *Cartridge) WriteRAM(addr uint16, value uint8) { c.Controller.WriteRAM(addr, value) }
