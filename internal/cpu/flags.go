package cpu

import "github.com/pixelbound/dmgcore/internal/types"

// setFlag sets or clears flag in F according to on, leaving the other
// three flags and F's always-zero low nibble untouched.
func (c *CPU) setFlag(flag types.Flag, on bool) {
	if on {
		c.F = types.SetBit(c.F, flag)
	} else {
		c.F = types.ResetBit(c.F, flag)
	}
}

func (c *CPU) flag(flag types.Flag) bool {
	return types.TestBit(c.F, flag)
}

// setZFromResult sets FlagZero from whether value is zero.
func (c *CPU) setZFromResult(value uint8) {
	c.setFlag(types.FlagZero, value == 0)
}
