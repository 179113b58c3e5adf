package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelbound/dmgcore/internal/interrupts"
	"github.com/pixelbound/dmgcore/internal/types"
)

// flatBus is a minimal Bus backed by a flat 64KiB array, enough to drive
// the CPU's decode logic in isolation from the real memory map.
type flatBus struct {
	mem [0x10000]byte
}

func (b *flatBus) Read(addr uint16) uint8            { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, value uint8)    { b.mem[addr] = value }
func (b *flatBus) ReadWord(addr uint16) uint16       { return uint16(b.mem[addr]) | uint16(b.mem[addr+1])<<8 }
func (b *flatBus) WriteWord(addr uint16, value uint16) {
	b.mem[addr] = uint8(value)
	b.mem[addr+1] = uint8(value >> 8)
}
func (b *flatBus) DrainDMACycles() int { return 0 }

func newTestCPU() (*CPU, *flatBus) {
	bus := &flatBus{}
	irq := interrupts.NewService()
	return New(bus, irq), bus
}

func TestRegToRegLoad(t *testing.T) {
	c, bus := newTestCPU()
	c.SetBC(0x1234)
	bus.mem[0x0000] = 0x78 // LD A,B
	cycles := c.Step()
	require.Equal(t, uint8(0x12), c.A)
	require.Equal(t, uint8(1), cycles)
	require.Equal(t, uint16(1), c.PC)
}

func TestIncOverflowSetsHalfCarryAndZero(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0xFF
	bus.mem[0x0000] = 0x3C // INC A
	c.Step()
	require.Equal(t, uint8(0x00), c.A)
	require.True(t, c.flag(types.FlagZero))
	require.True(t, c.flag(types.FlagHalfCarry))
}

func TestCallThenRetRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.SP = 0xFFFE
	c.PC = 0x0100
	bus.mem[0x0100] = 0xCD
	bus.mem[0x0101] = 0x50
	bus.mem[0x0102] = 0x02
	bus.mem[0x0250] = 0xC9 // RET

	c.Step() // CALL
	require.Equal(t, uint16(0x0250), c.PC)
	require.Equal(t, uint16(0xFFFC), c.SP)
	require.Equal(t, uint8(0x03), bus.mem[0xFFFC])
	require.Equal(t, uint8(0x01), bus.mem[0xFFFD])

	c.Step() // RET
	require.Equal(t, uint16(0x0103), c.PC)
	require.Equal(t, uint16(0xFFFE), c.SP)
}

func TestPushPopAFForcesLowNibbleZero(t *testing.T) {
	c, bus := newTestCPU()
	c.SP = 0xFFFE
	c.SetAF(0x1234)
	bus.mem[0x0000] = 0xF5 // PUSH AF
	bus.mem[0x0001] = 0xF1 // POP AF
	c.PC = 0x0000
	c.Step()
	c.Step()
	require.Equal(t, uint8(0x12), c.A)
	require.Equal(t, uint8(0x30), c.F)
}

func TestFlatBusWriteWordReadWordRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	_ = c
	bus.WriteWord(0x100, 0xBEEF)
	require.Equal(t, uint16(0xBEEF), bus.ReadWord(0x100))
}

func TestDAAValidBCDAfterAddition(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x45
	c.A = c.add(0x38, false)
	bus.mem[0x0000] = 0x27 // DAA
	c.Step()
	require.LessOrEqual(t, c.A&0x0F, uint8(9))
	require.LessOrEqual(t, c.A>>4, uint8(9))
}

func TestJRRelativeJump(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0200
	bus.mem[0x0200] = 0x18 // JR e8
	bus.mem[0x0201] = 0xFE // -2
	c.Step()
	require.Equal(t, uint16(0x0200), c.PC)
}

func TestHaltResumesOnPendingInterrupt(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x0000] = 0x76 // HALT
	c.irq.IME = false
	c.Step()
	require.Equal(t, ModeHalt, c.mode)

	c.irq.Enable = 0x01
	c.irq.Flag = 0x01
	c.Step()
	require.Equal(t, ModeNormal, c.mode)
}
