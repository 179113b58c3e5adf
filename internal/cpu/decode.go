package cpu

import "github.com/pixelbound/dmgcore/internal/types"

// exec decodes and executes a primary-table opcode. The three regular
// blocks (loads 0x40-0x7F, ALU 0x80-0xBF, and the bottom half's register
// increments/loads) are decoded by their bit pattern, following the
// classic xxyyyzzz layout of the SM83/Z80 encoding; the top block
// (0xC0-0xFF) and the handful of irregular bottom-block opcodes are
// dispatched by name.
func (c *CPU) exec(instr uint8) {
	x := instr >> 6 & 0x3
	y := instr >> 3 & 0x7
	z := instr & 0x7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		c.execBlock0(instr, y, z, p, q)
	case 1:
		if y == 6 && z == 6 {
			c.halt()
			return
		}
		c.writeR8(y, c.readR8(z))
	case 2:
		c.execALU(y, c.readR8(z))
	case 3:
		c.execBlock3(instr, y, z, p, q)
	}
}

func (c *CPU) execBlock0(instr, y, z, p, q uint8) {
	switch z {
	case 0:
		switch {
		case y == 0: // NOP
		case y == 1: // LD (a16),SP
			addr := c.fetch16()
			lo := uint8(c.SP)
			hi := uint8(c.SP >> 8)
			c.writeByte(addr, lo)
			c.writeByte(addr+1, hi)
		case y == 2: // STOP — treated as a NOP, per spec's DMG scope
			c.fetch()
		case y == 3: // JR e8
			c.jrImm(true)
		default: // JR cc,e8, cc = y-4
			c.jrImm(c.condition(y - 4))
		}
	case 1:
		if q == 0 {
			c.setR16(p, c.fetch16())
		} else {
			c.tick()
			c.addHL(c.r16(p))
		}
	case 2:
		addr := c.indirectAddr(p)
		if q == 0 {
			c.writeByte(addr, c.A)
		} else {
			c.A = c.readByte(addr)
		}
		c.postIndirect(p)
	case 3:
		c.tick()
		if q == 0 {
			c.setR16(p, c.r16(p)+1)
		} else {
			c.setR16(p, c.r16(p)-1)
		}
	case 4:
		c.writeR8(y, c.inc8(c.readR8(y)))
	case 5:
		c.writeR8(y, c.dec8(c.readR8(y)))
	case 6:
		c.writeR8(y, c.fetch())
	case 7:
		c.execAccumOp(y)
	}
}

// indirectAddr returns the address for the z==2 LD (rp2),A / LD A,(rp2)
// group: BC, DE, HL+ (post-increment), HL- (post-decrement).
func (c *CPU) indirectAddr(p uint8) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	default:
		return c.HL()
	}
}

func (c *CPU) postIndirect(p uint8) {
	switch p {
	case 2:
		c.SetHL(c.HL() + 1)
	case 3:
		c.SetHL(c.HL() - 1)
	}
}

// execAccumOp handles the z==7 single-byte accumulator/flag opcodes:
// RLCA, RRCA, RLA, RRA, DAA, CPL, SCF, CCF.
func (c *CPU) execAccumOp(y uint8) {
	switch y {
	case 0:
		c.A = c.rlc(c.A)
		c.setFlag(types.FlagZero, false)
	case 1:
		c.A = c.rrc(c.A)
		c.setFlag(types.FlagZero, false)
	case 2:
		c.A = c.rl(c.A)
		c.setFlag(types.FlagZero, false)
	case 3:
		c.A = c.rr(c.A)
		c.setFlag(types.FlagZero, false)
	case 4:
		c.daa()
	case 5:
		c.A = ^c.A
		c.setFlag(types.FlagSubtract, true)
		c.setFlag(types.FlagHalfCarry, true)
	case 6:
		c.setFlag(types.FlagSubtract, false)
		c.setFlag(types.FlagHalfCarry, false)
		c.setFlag(types.FlagCarry, true)
	case 7:
		c.setFlag(types.FlagSubtract, false)
		c.setFlag(types.FlagHalfCarry, false)
		c.setFlag(types.FlagCarry, !c.flagCarry())
	}
}

// execALU applies the ALU op selected by y (0:ADD 1:ADC 2:SUB 3:SBC
// 4:AND 5:XOR 6:OR 7:CP) against operand op.
func (c *CPU) execALU(y uint8, op uint8) {
	switch y {
	case 0:
		c.A = c.add(op, false)
	case 1:
		c.A = c.add(op, c.flagCarry())
	case 2:
		c.A = c.sub(op, false)
	case 3:
		c.A = c.sub(op, c.flagCarry())
	case 4:
		c.A = c.and(op)
	case 5:
		c.A = c.xor(op)
	case 6:
		c.A = c.or(op)
	case 7:
		c.cp(op)
	}
}

func (c *CPU) execBlock3(instr, y, z, p, q uint8) {
	switch z {
	case 0:
		switch {
		case y <= 3:
			c.ret(c.condition(y), true)
		case y == 4: // LDH (a8),A
			a8 := c.fetch()
			c.writeByte(0xFF00+uint16(a8), c.A)
		case y == 5: // ADD SP,e8
			e8 := c.fetch()
			c.tick()
			c.tick()
			c.SP = c.addSPSigned(e8)
		case y == 6: // LDH A,(a8)
			a8 := c.fetch()
			c.A = c.readByte(0xFF00 + uint16(a8))
		case y == 7: // LD HL,SP+e8
			e8 := c.fetch()
			c.tick()
			c.SetHL(c.addSPSigned(e8))
		}
	case 1:
		if q == 0 {
			c.setR16Stack(p, c.pop())
			return
		}
		switch p {
		case 0:
			c.ret(true, false)
		case 1:
			c.irq.IME = true
			c.ret(true, false)
		case 2:
			c.PC = c.HL()
		case 3:
			c.tick()
			c.SP = c.HL()
		}
	case 2:
		switch {
		case y <= 3:
			c.jpImm(c.condition(y))
		case y == 4: // LD (C),A
			c.writeByte(0xFF00+uint16(c.C), c.A)
		case y == 5: // LD (a16),A
			addr := c.fetch16()
			c.writeByte(addr, c.A)
		case y == 6: // LD A,(C)
			c.A = c.readByte(0xFF00 + uint16(c.C))
		case y == 7: // LD A,(a16)
			addr := c.fetch16()
			c.A = c.readByte(addr)
		}
	case 3:
		switch instr {
		case 0xC3:
			c.jpImm(true)
		case 0xF3:
			c.irq.IME = false
			c.eiPending = false
		case 0xFB:
			c.eiPending = true
		default:
			c.panicf("undefined opcode %02X at %04X", instr, c.PC-1)
		}
	case 4:
		if y <= 3 {
			c.callImm(c.condition(y))
			return
		}
		c.panicf("undefined opcode %02X at %04X", instr, c.PC-1)
	case 5:
		if q == 0 {
			c.push(c.r16Stack(p))
			return
		}
		if p == 0 {
			c.callImm(true)
			return
		}
		c.panicf("undefined opcode %02X at %04X", instr, c.PC-1)
	case 6:
		c.execALU(y, c.fetch())
	case 7:
		c.rst(uint16(y) * 8)
	}
}

// execCB decodes and executes a CB-prefixed opcode: bits 7:6 select the
// operation group (0:rotate/shift family by y, 1:BIT, 2:RES, 3:SET), bits
// 5:3 select the bit index or rotate/shift kind, bits 2:0 select the r8
// operand.
func (c *CPU) execCB(instr uint8) {
	x := instr >> 6 & 0x3
	y := instr >> 3 & 0x7
	z := instr & 0x7

	v := c.readR8(z)
	switch x {
	case 0:
		c.writeR8(z, c.execShift(y, v))
	case 1:
		c.bit(y, v)
	case 2:
		c.writeR8(z, v&^(1<<y))
	case 3:
		c.writeR8(z, v|1<<y)
	}
}

func (c *CPU) execShift(y uint8, v uint8) uint8 {
	switch y {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.swap(v)
	case 7:
		return c.srl(v)
	}
	c.panicf("invalid shift selector %d", y)
	return v
}
