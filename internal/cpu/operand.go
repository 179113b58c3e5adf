package cpu

import "github.com/pixelbound/dmgcore/internal/types"

// r8Names maps an opcode-table r8 index to the register it names, for
// diagnostics; index 6 ((HL)) has no single-register name and is reported
// separately.
var r8Names = [8]types.RegisterID{
	types.RegB, types.RegC, types.RegD, types.RegE,
	types.RegH, types.RegL, types.RegF /* unused, (HL) handled below */, types.RegA,
}

func r8Name(idx uint8) string {
	if idx > 7 {
		return "?"
	}
	if idx == 6 {
		return "(HL)"
	}
	return r8Names[idx].String()
}

// readR8 reads an 8-bit operand by its opcode-table index, using the
// classic SM83 ordering: 0:B 1:C 2:D 3:E 4:H 5:L 6:(HL) 7:A.
func (c *CPU) readR8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readByte(c.HL())
	case 7:
		return c.A
	}
	c.panicf("invalid r8 index %d (%s)", idx, r8Name(idx))
	return 0
}

// writeR8 writes an 8-bit operand by its opcode-table index.
func (c *CPU) writeR8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.writeByte(c.HL(), v)
	case 7:
		c.A = v
	default:
		c.panicf("invalid r8 index %d (%s)", idx, r8Name(idx))
	}
}

// r16Names maps an opcode-table r16 index to the register pair it names,
// for diagnostics.
var r16Names = [4]types.RegisterPairID{types.RegBC, types.RegDE, types.RegHL, types.RegSP}

func r16Name(idx uint8) string {
	if idx > 3 {
		return "?"
	}
	return r16Names[idx].String()
}

// r16 reads a general 16-bit register pair by its opcode-table index for
// the 0x00-0x3F block: 0:BC 1:DE 2:HL 3:SP.
func (c *CPU) r16(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	case 3:
		return c.SP
	}
	c.panicf("invalid r16 index %d (%s)", idx, r16Name(idx))
	return 0
}

func (c *CPU) setR16(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	case 3:
		c.SP = v
	default:
		c.panicf("invalid r16 index %d (%s)", idx, r16Name(idx))
	}
}

// r16Stack reads a register pair by its PUSH/POP opcode-table index:
// 0:BC 1:DE 2:HL 3:AF.
func (c *CPU) r16Stack(idx uint8) uint16 {
	if idx == 3 {
		return c.AF()
	}
	return c.r16(idx)
}

func (c *CPU) setR16Stack(idx uint8, v uint16) {
	if idx == 3 {
		c.SetAF(v)
		return
	}
	c.setR16(idx, v)
}

// conditionNames maps an opcode-table condition index to the condition it
// names, for diagnostics.
var conditionNames = [4]types.Condition{types.CondNZ, types.CondZ, types.CondNC, types.CondC}

// condition evaluates a branch condition by its opcode-table index:
// 0:NZ 1:Z 2:NC 3:C.
func (c *CPU) condition(idx uint8) bool {
	switch idx {
	case 0:
		return !c.flagZero()
	case 1:
		return c.flagZero()
	case 2:
		return !c.flagCarry()
	case 3:
		return c.flagCarry()
	}
	name := "?"
	if idx <= 3 {
		name = conditionNames[idx].String()
	}
	c.panicf("invalid condition index %d (%s)", idx, name)
	return false
}

func (c *CPU) flagZero() bool  { return c.flag(types.FlagZero) }
func (c *CPU) flagCarry() bool { return c.flag(types.FlagCarry) }
