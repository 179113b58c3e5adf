// Package timer provides the Game Boy's DIV/TIMA timer. DIV increments at
// 16384Hz and TIMA increments at the rate selected by TAC, raising the
// Timer interrupt on overflow.
package timer

import (
	"github.com/pixelbound/dmgcore/internal/interrupts"
)

// timaPeriod holds the M-cycle period for each TAC frequency select (bits
// 1:0), in the order 4096Hz, 262144Hz, 65536Hz, 16384Hz.
var timaPeriod = [4]uint16{256, 4, 16, 64}

// Controller is the timer/divider unit. It is driven purely by elapsed
// M-cycle counts handed to it by the CPU on each step, rather than by a
// scheduled event N cycles in the future, since FrameRunner has no global
// event scheduler to register callbacks with.
type Controller struct {
	irq *interrupts.Service

	div  uint16 // internal divider, incremented once per M-cycle; DIV is bits 13:6
	tima uint8
	tma  uint8
	tac  uint8

	timaSubCycles uint16
}

// NewController returns a new timer Controller bound to the given
// interrupt service.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{irq: irq}
}

// Tick advances the timer by the given number of elapsed M-cycles.
func (c *Controller) Tick(mCycles uint8) {
	for i := uint8(0); i < mCycles; i++ {
		c.tickOne()
	}
}

func (c *Controller) tickOne() {
	c.div++

	if c.tac&0x04 != 0 {
		c.timaSubCycles++
		if c.timaSubCycles >= timaPeriod[c.tac&0x03] {
			c.timaSubCycles = 0
			c.incrementTIMA()
		}
	}
}

func (c *Controller) incrementTIMA() {
	if c.tima == 0xFF {
		c.tima = c.tma
		c.irq.Request(interrupts.TimerFlag)
	} else {
		c.tima++
	}
}

// DIV returns the visible 8-bit DIV register value. DIV increments once
// every 64 M-cycles (16384Hz), so it tracks bits 13:6 of the internal
// divider rather than its upper byte.
func (c *Controller) DIV() uint8 {
	return uint8(c.div >> 6)
}

// WriteDIV resets DIV (and its internal sub-counters) to zero, as any
// write to the DIV register does regardless of the written value.
func (c *Controller) WriteDIV() {
	c.div = 0
	c.timaSubCycles = 0
}

// TIMA returns the current TIMA value.
func (c *Controller) TIMA() uint8 { return c.tima }

// WriteTIMA sets TIMA directly (e.g. from a CPU write to 0xFF05).
func (c *Controller) WriteTIMA(v uint8) { c.tima = v }

// TMA returns the current TMA value.
func (c *Controller) TMA() uint8 { return c.tma }

// WriteTMA sets the TIMA reload value.
func (c *Controller) WriteTMA(v uint8) { c.tma = v }

// TAC returns the current TAC value, with unused bits read as 1.
func (c *Controller) TAC() uint8 { return c.tac | 0xF8 }

// WriteTAC sets the timer control register (bit 2 enable, bits 1:0 clock
// select).
func (c *Controller) WriteTAC(v uint8) { c.tac = v & 0x07 }
