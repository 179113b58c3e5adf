package cpu

import "github.com/pixelbound/dmgcore/internal/types"

// rlc rotates value left by one bit, bit 7 wrapping into bit 0 and C.
func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | v>>7
	c.setShiftFlags(result, carry)
	return result
}

// rrc rotates value right by one bit, bit 0 wrapping into bit 7 and C.
func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v<<7
	c.setShiftFlags(result, carry)
	return result
}

// rl rotates value left through C.
func (c *CPU) rl(v uint8) uint8 {
	carry := v&0x80 != 0
	var cin uint8
	if c.flag(types.FlagCarry) {
		cin = 1
	}
	result := v<<1 | cin
	c.setShiftFlags(result, carry)
	return result
}

// rr rotates value right through C.
func (c *CPU) rr(v uint8) uint8 {
	carry := v&0x01 != 0
	var cin uint8
	if c.flag(types.FlagCarry) {
		cin = 1 << 7
	}
	result := v>>1 | cin
	c.setShiftFlags(result, carry)
	return result
}

// sla shifts value left by one bit, bit 0 becoming 0.
func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.setShiftFlags(result, carry)
	return result
}

// sra shifts value right by one bit, bit 7 preserved.
func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v&0x80
	c.setShiftFlags(result, carry)
	return result
}

// srl shifts value right by one bit, bit 7 becoming 0.
func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	c.setShiftFlags(result, carry)
	return result
}

// swap exchanges the high and low nibbles of value.
func (c *CPU) swap(v uint8) uint8 {
	result := v<<4 | v>>4
	c.setFlag(types.FlagZero, result == 0)
	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, false)
	c.setFlag(types.FlagCarry, false)
	return result
}

// setShiftFlags is shared by the rotate/shift family: N=H=0, Z from
// result, C from the bit that was shifted out.
func (c *CPU) setShiftFlags(result uint8, carryOut bool) {
	c.setFlag(types.FlagZero, result == 0)
	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, false)
	c.setFlag(types.FlagCarry, carryOut)
}

// bit tests bit n of v, setting Z accordingly (N=0, H=1, C untouched).
func (c *CPU) bit(n uint8, v uint8) {
	c.setFlag(types.FlagZero, v&(1<<n) == 0)
	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, true)
}
