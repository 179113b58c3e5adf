// Package cpu implements the Game Boy's SM83 instruction interpreter:
// registers, flag-exact arithmetic, the primary and CB-prefixed opcode
// tables, and interrupt dispatch.
package cpu

import (
	"fmt"

	"github.com/pixelbound/dmgcore/internal/interrupts"
)

// Mode is the CPU's execution mode. Unlike a busy-wait HALT loop, Halted
// is a state the Step loop simply declines to fetch an instruction in
// until an interrupt becomes pending.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeHalt
)

// Bus is the memory interface the CPU executes against.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, value uint16)
	DrainDMACycles() int
}

// CPU is the SM83 interpreter. It holds no back-reference into the Bus
// beyond the interface above, and no reference to the PPU or Timer at
// all — the FrameRunner is the only component that wires those together.
type CPU struct {
	Registers
	SP, PC uint16

	bus Bus
	irq *interrupts.Service

	mode Mode

	// eiPending is the one-instruction-delay latch: EI schedules IME to
	// become true only after the instruction following EI has executed.
	eiPending bool

	// haltBug is set when HALT executes with IME clear and an interrupt
	// already pending: the byte after HALT is then fetched twice. This is
	// modeled as a one-shot flag rather than a full CPU mode.
	haltBug bool

	cycles uint8
}

// New returns a CPU bound to bus and irq, with PC at the boot entry point
// (0x0000; a boot ROM overlay, if present, is expected to be mapped there).
func New(bus Bus, irq *interrupts.Service) *CPU {
	return &CPU{bus: bus, irq: irq}
}

// Step executes one instruction (or one HALT/interrupt-dispatch tick) and
// returns the number of M-cycles consumed.
func (c *CPU) Step() uint8 {
	c.cycles = 0

	if dma := c.bus.DrainDMACycles(); dma > 0 {
		c.cycles += uint8(dma)
	}

	if c.eiPending {
		c.eiPending = false
		c.irq.IME = true
	}

	switch c.mode {
	case ModeHalt:
		c.tick()
		if c.irq.HasPending() {
			c.mode = ModeNormal
		}
	default:
		c.runOne()
	}

	if c.irq.IME && c.irq.HasPending() {
		c.dispatchInterrupt()
	}

	return c.cycles
}

func (c *CPU) runOne() {
	opcode := c.fetch()
	if c.haltBug {
		c.PC--
		c.haltBug = false
	}
	if opcode == 0xCB {
		cb := c.fetch()
		c.execCB(cb)
		return
	}
	c.exec(opcode)
}

// fetch reads the byte at PC, advancing PC and charging one M-cycle.
func (c *CPU) fetch() uint8 {
	c.tick()
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

// fetch16 reads a little-endian 16-bit immediate starting at PC.
func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return lo | hi<<8
}

func (c *CPU) readByte(addr uint16) uint8 {
	c.tick()
	return c.bus.Read(addr)
}

func (c *CPU) writeByte(addr uint16, v uint8) {
	c.tick()
	c.bus.Write(addr, v)
}

func (c *CPU) tick() {
	c.cycles++
}

// halt enters ModeHalt, applying the halt-bug condition spec.md marks as
// optional: HALT with IME clear and an interrupt already pending causes
// the next opcode fetch to read the same byte twice.
func (c *CPU) halt() {
	if !c.irq.IME && c.irq.HasPending() {
		c.haltBug = true
		return
	}
	c.mode = ModeHalt
}

// dispatchInterrupt services the lowest-indexed pending, enabled
// interrupt: clears IME, clears its IF bit, pushes PC, and jumps to its
// vector, charging 5 M-cycles.
func (c *CPU) dispatchInterrupt() {
	bit, ok := c.irq.Pending()
	if !ok {
		return
	}
	c.mode = ModeNormal
	c.irq.IME = false
	c.irq.Clear(bit)

	c.tick()
	c.tick()
	c.SP--
	c.writeByte(c.SP, uint8(c.PC>>8))
	c.SP--
	c.writeByte(c.SP, uint8(c.PC))
	c.tick()

	c.PC = interrupts.Vector(bit)
}

func (c *CPU) panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf("cpu: "+format, args...))
}
