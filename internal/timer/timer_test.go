package timer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelbound/dmgcore/internal/interrupts"
)

func TestDIVIncrementsEvery64MCycles(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	require.Equal(t, uint8(0), c.DIV())
	c.Tick(63)
	require.Equal(t, uint8(0), c.DIV())
	c.Tick(1)
	require.Equal(t, uint8(1), c.DIV())
}

func TestWriteDIVResets(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.Tick(200)
	require.NotEqual(t, uint8(0), c.DIV())
	c.WriteDIV()
	require.Equal(t, uint8(0), c.DIV())
}

func TestTIMAOverflowReloadsFromTMAAndRaisesInterrupt(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.WriteTMA(0x10)
	c.WriteTAC(0x05) // enabled, frequency select 01 -> every 4 M-cycles
	c.WriteTIMA(0xFF)

	c.Tick(4)
	require.Equal(t, uint8(0x10), c.TIMA())
	require.NotZero(t, irq.Flag&(1<<interrupts.TimerFlag))
}

func TestTIMADisabledWhenTACBit2Clear(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.WriteTAC(0x01) // frequency select set, but enable bit clear
	c.WriteTIMA(0x00)
	c.Tick(100)
	require.Equal(t, uint8(0x00), c.TIMA())
}
