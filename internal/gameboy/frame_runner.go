// Package gameboy composes the Bus, CPU, PPU, Timer, and interrupt
// controller into the lock-step frame loop, replacing the cyclic
// back-references the original source wires between those subsystems
// after construction.
package gameboy

import (
	"github.com/pixelbound/dmgcore/internal/boot"
	"github.com/pixelbound/dmgcore/internal/bus"
	"github.com/pixelbound/dmgcore/internal/cartridge"
	"github.com/pixelbound/dmgcore/internal/cpu"
	"github.com/pixelbound/dmgcore/internal/ppu"
	"github.com/pixelbound/dmgcore/internal/types"
	"github.com/pixelbound/dmgcore/pkg/log"
)

// ClockSpeed is the Game Boy's master clock speed in Hz.
const ClockSpeed = 4194304

// DotsPerFrame is the number of PPU dots in one 154-scanline frame.
const DotsPerFrame = 70224

// startingRegisterValues mirrors the power-on IO register state a real
// DMG leaves behind once its boot ROM has handed off to cartridge code.
var startingRegisterValues = map[uint16]uint8{
	types.LCDC: 0x91,
	types.STAT: 0x80,
	types.BGP:  0xFC,
}

// Options configures a GameBoy at construction.
type Options struct {
	BootROM []byte
	Logger  log.Logger
}

// GameBoyOpt applies one Options field, following the functional-options
// pattern used throughout this codebase's construction sites.
type GameBoyOpt func(*Options)

// WithBootROM supplies a 256-byte boot ROM image to overlay at power-on.
func WithBootROM(rom []byte) GameBoyOpt {
	return func(o *Options) { o.BootROM = rom }
}

// WithLogger supplies a logger; the default is pkg/log's null logger.
func WithLogger(l log.Logger) GameBoyOpt {
	return func(o *Options) { o.Logger = l }
}

// GameBoy is the top-level emulator: the composed subsystems plus the
// frame loop driving them.
type GameBoy struct {
	Bus *bus.Bus
	CPU *cpu.CPU
	PPU *ppu.PPU

	log log.Logger
}

// New constructs a GameBoy for the given cartridge ROM image.
func New(rom []byte, opts ...GameBoyOpt) *GameBoy {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = log.NewNullLogger()
	}

	cart := cartridge.Load(rom)

	var bootROM *boot.ROM
	if o.BootROM != nil {
		bootROM = boot.Load(o.BootROM)
	}

	b := bus.New(cart, bootROM)
	if bootROM == nil {
		for addr, v := range startingRegisterValues {
			b.Write(addr, v)
		}
	}

	gb := &GameBoy{
		Bus: b,
		CPU: cpu.New(b, b.Interrupts),
		PPU: ppu.New(b),
		log: o.Logger,
	}
	return gb
}

// RunFrame drives the CPU and PPU in lock-step for one frame's worth of
// dots (154 scanlines, 70224 dots): the CPU executes one instruction (or
// one HALT/interrupt-dispatch tick) at a time, and each returned M-cycle
// count is converted to dots (×4) and fed to the PPU and the Timer. It
// stops once at least 70224 dots have run, so the last step can carry it
// a few dots past the frame; that excess is not deducted from the next
// call.
func (gb *GameBoy) RunFrame() {
	dotsRemaining := DotsPerFrame
	for dotsRemaining > 0 {
		mCycles := gb.CPU.Step()
		if mCycles == 0 {
			mCycles = 1
		}
		gb.Bus.Timer.Tick(mCycles)
		dots := int(mCycles) * 4
		gb.PPU.Tick(dots)
		dotsRemaining -= dots
	}
}

// Frame returns the framebuffer produced by the most recently completed
// RunFrame call.
func (gb *GameBoy) Frame() [ppu.ScreenHeight][ppu.ScreenWidth]uint8 {
	return gb.PPU.Frame()
}
