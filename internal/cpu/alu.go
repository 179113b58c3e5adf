package cpu

import "github.com/pixelbound/dmgcore/internal/types"

// add computes A+op (+carryIn if adc) and sets Z/N/H/C, returning the
// 8-bit wrapped result.
func (c *CPU) add(op uint8, carryIn bool) uint8 {
	var cin uint8
	if carryIn {
		cin = 1
	}
	a := c.A
	result16 := uint16(a) + uint16(op) + uint16(cin)
	result := uint8(result16)

	c.setFlag(types.FlagZero, result == 0)
	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, (a&0x0F)+(op&0x0F)+cin > 0x0F)
	c.setFlag(types.FlagCarry, result16 > 0xFF)
	return result
}

// sub computes A-op (-carryIn if sbc) and sets Z/N/H/C, returning the
// 8-bit wrapped result.
func (c *CPU) sub(op uint8, carryIn bool) uint8 {
	var cin uint8
	if carryIn {
		cin = 1
	}
	a := c.A
	result16 := int(a) - int(op) - int(cin)
	result := uint8(result16)

	c.setFlag(types.FlagZero, result == 0)
	c.setFlag(types.FlagSubtract, true)
	c.setFlag(types.FlagHalfCarry, int(a&0x0F)-int(op&0x0F)-int(cin) < 0)
	c.setFlag(types.FlagCarry, result16 < 0)
	return result
}

func (c *CPU) and(op uint8) uint8 {
	result := c.A & op
	c.setFlag(types.FlagZero, result == 0)
	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, true)
	c.setFlag(types.FlagCarry, false)
	return result
}

func (c *CPU) or(op uint8) uint8 {
	result := c.A | op
	c.setFlag(types.FlagZero, result == 0)
	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, false)
	c.setFlag(types.FlagCarry, false)
	return result
}

func (c *CPU) xor(op uint8) uint8 {
	result := c.A ^ op
	c.setFlag(types.FlagZero, result == 0)
	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, false)
	c.setFlag(types.FlagCarry, false)
	return result
}

// cp compares A against op (as sub, but discards the result) and sets
// flags accordingly.
func (c *CPU) cp(op uint8) {
	c.sub(op, false)
}

// inc8 increments value, updating Z/N/H and leaving C untouched.
func (c *CPU) inc8(value uint8) uint8 {
	result := value + 1
	c.setFlag(types.FlagZero, result == 0)
	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, value&0x0F == 0x0F)
	return result
}

// dec8 decrements value, updating Z/N/H and leaving C untouched.
func (c *CPU) dec8(value uint8) uint8 {
	result := value - 1
	c.setFlag(types.FlagZero, result == 0)
	c.setFlag(types.FlagSubtract, true)
	c.setFlag(types.FlagHalfCarry, value&0x0F == 0x00)
	return result
}

// addHL adds op to HL, setting N/H/C from the 16-bit addition and leaving
// Z untouched.
func (c *CPU) addHL(op uint16) {
	hl := c.HL()
	result := uint32(hl) + uint32(op)

	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, (hl&0x0FFF)+(op&0x0FFF) > 0x0FFF)
	c.setFlag(types.FlagCarry, result > 0xFFFF)
	c.SetHL(uint16(result))
}

// addSPSigned computes SP + sign-extend(e8) and sets Z=0,N=0 with H/C from
// an unsigned addition of SP's low byte and e8 — per the hardware's actual
// carry behavior for both ADD SP,e8 and LD HL,SP+e8.
func (c *CPU) addSPSigned(e8 uint8) uint16 {
	offset := int16(int8(e8))
	result := uint16(int32(c.SP) + int32(offset))

	lo := uint16(c.SP & 0xFF)
	c.setFlag(types.FlagZero, false)
	c.setFlag(types.FlagSubtract, false)
	c.setFlag(types.FlagHalfCarry, (lo&0x0F)+(uint16(e8)&0x0F) > 0x0F)
	c.setFlag(types.FlagCarry, (lo&0xFF)+(uint16(e8)&0xFF) > 0xFF)
	return result
}

// daa adjusts A after a BCD addition or subtraction, per the standard
// DAA correction table.
func (c *CPU) daa() {
	a := c.A
	if !c.flag(types.FlagSubtract) {
		highCarry := c.flag(types.FlagCarry) || a > 0x99
		if c.flag(types.FlagHalfCarry) || a&0x0F > 9 {
			a += 0x06
		}
		if highCarry {
			a += 0x60
			c.setFlag(types.FlagCarry, true)
		}
	} else {
		if c.flag(types.FlagHalfCarry) {
			a -= 0x06
		}
		if c.flag(types.FlagCarry) {
			a -= 0x60
		}
	}
	c.A = a
	c.setFlag(types.FlagZero, c.A == 0)
	c.setFlag(types.FlagHalfCarry, false)
}
