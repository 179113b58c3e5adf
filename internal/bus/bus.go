// Package bus implements the Game Boy's address-decoded 16-bit memory bus:
// cartridge ROM/RAM via the MBC, work RAM, VRAM, OAM, HRAM, IO registers,
// and the boot ROM overlay.
package bus

import (
	"fmt"

	"github.com/pixelbound/dmgcore/internal/boot"
	"github.com/pixelbound/dmgcore/internal/cartridge"
	"github.com/pixelbound/dmgcore/internal/interrupts"
	"github.com/pixelbound/dmgcore/internal/ram"
	"github.com/pixelbound/dmgcore/internal/timer"
	"github.com/pixelbound/dmgcore/internal/types"
)

// Bus owns every memory-backed region of the Game Boy and dispatches reads
// and writes by address range, applying the hardware's region-specific
// access policies.
type Bus struct {
	cart *cartridge.Cartridge
	boot *boot.ROM
	bootDisabled bool

	vram [0x2000]byte
	oam  [0x00A0]byte
	wram *ram.Block
	hram *ram.Block

	io [0x80]byte

	Interrupts *interrupts.Service
	Timer      *timer.Controller

	// VRAMAccessible and OAMAccessible are flipped by the PPU between CPU
	// instruction boundaries; the CPU-facing Read/Write honor them, the
	// PPU's own ReadPPU path bypasses them entirely.
	VRAMAccessible bool
	OAMAccessible  bool

	// PendingDMACycles is drained by the CPU on its next Step; a write to
	// DMA charges it to 160 M-cycles per spec.
	PendingDMACycles int
}

// New returns a Bus wired to cart, with all RAM regions zeroed. If bootROM
// is non-nil, its bytes overlay addresses 0x0000-0x00FF until the cartridge
// writes 1 to BDIS.
func New(cart *cartridge.Cartridge, bootROM *boot.ROM) *Bus {
	irq := interrupts.NewService()
	b := &Bus{
		cart:           cart,
		boot:           bootROM,
		wram:           ram.NewBlock(0x2000),
		hram:           ram.NewBlock(0x7F),
		Interrupts:     irq,
		Timer:          timer.NewController(irq),
		VRAMAccessible: true,
		OAMAccessible:  true,
	}
	if bootROM == nil {
		b.bootDisabled = true
	}
	return b
}

// Read reads a byte from the CPU-visible address space, honoring the
// VRAM/OAM accessibility gates.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x0100 && !b.bootDisabled:
		return b.boot.Read(addr)
	case addr < 0x8000:
		return b.cart.ReadROM(addr)
	case addr < 0xA000:
		if !b.VRAMAccessible {
			return 0xFF
		}
		return b.vram[addr-0x8000]
	case addr < 0xC000:
		return b.cart.ReadRAM(addr - 0xA000)
	case addr < 0xE000:
		return b.wram.Read(addr - 0xC000)
	case addr < 0xFE00:
		return b.wram.Read(addr - 0xE000)
	case addr < 0xFEA0:
		if !b.OAMAccessible {
			return 0xFF
		}
		return b.oam[addr-0xFE00]
	case addr < 0xFF00:
		return 0xFF
	case addr < 0xFF80:
		return b.readIO(addr)
	case addr < 0xFFFF:
		return b.hram.Read(addr - 0xFF80)
	case addr == 0xFFFF:
		return b.Interrupts.Read(addr)
	}
	panic(fmt.Sprintf("bus: unreachable read address %04X", addr))
}

// Write writes a byte to the CPU-visible address space, honoring the
// VRAM/OAM accessibility gates and region-specific write side effects.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x8000:
		b.cart.WriteROM(addr, value)
	case addr < 0xA000:
		if b.VRAMAccessible {
			b.vram[addr-0x8000] = value
		}
	case addr < 0xC000:
		b.cart.WriteRAM(addr-0xA000, value)
	case addr < 0xE000:
		b.wram.Write(addr-0xC000, value)
	case addr < 0xFE00:
		b.wram.Write(addr-0xE000, value)
	case addr < 0xFEA0:
		if b.OAMAccessible {
			b.oam[addr-0xFE00] = value
		}
	case addr < 0xFF00:
		// unused region; writes ignored
	case addr < 0xFF80:
		b.writeIO(addr, value)
	case addr < 0xFFFF:
		b.hram.Write(addr-0xFF80, value)
	case addr == 0xFFFF:
		b.Interrupts.Write(addr, value)
	default:
		panic(fmt.Sprintf("bus: unreachable write address %04X", addr))
	}
}

// ReadWord reads a little-endian 16-bit value at addr, addr+1.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return lo | hi<<8
}

// WriteWord writes value as a little-endian 16-bit value at addr, addr+1.
func (b *Bus) WriteWord(addr uint16, value uint16) {
	b.Write(addr, uint8(value))
	b.Write(addr+1, uint8(value>>8))
}

// ReadPPU reads VRAM or OAM directly, bypassing the CPU accessibility
// gates, for the PPU's own pixel and sprite fetches.
func (b *Bus) ReadPPU(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr < 0xA000:
		return b.vram[addr-0x8000]
	case addr >= 0xFE00 && addr < 0xFEA0:
		return b.oam[addr-0xFE00]
	}
	panic(fmt.Sprintf("bus: invalid PPU-path address %04X", addr))
}

func (b *Bus) readIO(addr uint16) uint8 {
	switch addr {
	case types.DIV:
		return b.Timer.DIV()
	case types.TIMA:
		return b.Timer.TIMA()
	case types.TMA:
		return b.Timer.TMA()
	case types.TAC:
		return b.Timer.TAC()
	case types.IF:
		return b.Interrupts.Read(addr)
	}
	return b.io[addr-0xFF00]
}

func (b *Bus) writeIO(addr uint16, value uint8) {
	switch addr {
	case types.DIV:
		b.Timer.WriteDIV()
		return
	case types.TIMA:
		b.Timer.WriteTIMA(value)
		return
	case types.TMA:
		b.Timer.WriteTMA(value)
		return
	case types.TAC:
		b.Timer.WriteTAC(value)
		return
	case types.IF:
		b.Interrupts.Write(addr, value)
		return
	case types.LY:
		// LY is read-only externally; any CPU write resets it to 0. The
		// PPU itself sets LY through a dedicated setter, not Write.
		b.io[addr-0xFF00] = 0
		return
	case types.DMA:
		b.io[addr-0xFF00] = value
		b.triggerOAMDMA(value)
		return
	case types.BDIS:
		b.io[addr-0xFF00] = value
		if value&0x01 != 0 {
			b.bootDisabled = true
		}
		return
	}
	b.io[addr-0xFF00] = value
}

// triggerOAMDMA copies 160 bytes from src*0x100 into OAM and charges 160
// M-cycles to the CPU's next Step. The source is read through Bus.Read so
// cartridge banking still applies.
func (b *Bus) triggerOAMDMA(src uint8) {
	base := uint16(src) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.oam[i] = b.Read(base + i)
	}
	b.PendingDMACycles += 160
}

// IO returns the raw byte currently stored for an IO address, for PPU
// registers (LCDC, STAT, SCY, SCX, LYC, BGP, OBP0, OBP1, WY, WX) that have
// no side effects of their own and are read/written directly by the PPU.
func (b *Bus) IO(addr uint16) uint8 {
	return b.io[addr-0xFF00]
}

// SetIO sets the raw byte for an IO address, bypassing side-effect
// dispatch — used by the PPU to update LY and STAT directly.
func (b *Bus) SetIO(addr uint16, value uint8) {
	b.io[addr-0xFF00] = value
}

// DrainDMACycles returns and clears the number of M-cycles the CPU still
// owes to an in-flight OAM DMA transfer.
func (b *Bus) DrainDMACycles() int {
	n := b.PendingDMACycles
	b.PendingDMACycles = 0
	return n
}
