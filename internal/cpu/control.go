package cpu

// jpImm reads a 16-bit immediate address and jumps to it if taken is
// true; an extra internal M-cycle is spent only when the jump is taken.
func (c *CPU) jpImm(taken bool) {
	addr := c.fetch16()
	if taken {
		c.tick()
		c.PC = addr
	}
}

// jrImm reads a signed 8-bit displacement and jumps relative to the
// address of the following instruction if taken is true.
func (c *CPU) jrImm(taken bool) {
	e8 := c.fetch()
	if taken {
		c.tick()
		c.PC = uint16(int32(c.PC) + int32(int8(e8)))
	}
}

// callImm reads a 16-bit immediate address, and if taken, pushes the
// address of the following instruction and jumps.
func (c *CPU) callImm(taken bool) {
	addr := c.fetch16()
	if taken {
		c.push(c.PC)
		c.PC = addr
	}
}

// ret pops a return address into PC if taken is true. callerConditional
// charges the extra internal M-cycle RET cc spends evaluating its
// condition, which unconditional RET does not.
func (c *CPU) ret(taken bool, callerConditional bool) {
	if callerConditional {
		c.tick()
	}
	if taken {
		c.PC = c.pop()
		c.tick()
	}
}

// rst pushes PC and jumps to one of the eight fixed reset vectors.
func (c *CPU) rst(vector uint16) {
	c.push(c.PC)
	c.PC = vector
}
