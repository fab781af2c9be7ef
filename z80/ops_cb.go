package z80

// executeCB decodes a CB-prefixed opcode against an unindexed operand.
func (c *CPU) executeCB(opcode byte) int {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7

	v := c.getReg8(z, indexNone)
	switch x {
	case 0:
		r := c.shiftOp(y, v)
		c.setReg8(z, indexNone, r)
	case 1:
		c.bitTest(uint(y), v, z == 6)
	case 2:
		r := v &^ (1 << y)
		c.setReg8(z, indexNone, r)
	default:
		r := v | (1 << y)
		c.setReg8(z, indexNone, r)
	}
	if z == 6 {
		return 15
	}
	return 8
}

func (c *CPU) shiftOp(op byte, v byte) byte {
	switch op {
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
		return c.sll(v)
	default:
		return c.srl(v)
	}
}

// executeIndexedCB handles the DD CB d op / FD CB d op family: the
// displacement byte precedes the opcode, the operand is always
// (IX+d)/(IY+d), and for x==0/2/3 (rotate/RES/SET) the result is also
// copied into the named 8-bit register when z != 6 (the undocumented
// "shift-and-store" variant).
func (c *CPU) executeIndexedCB(idx indexMode) int {
	addr := c.indexedAddr(idx)
	opcode := c.fetchByte()
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7

	v := c.read(addr)
	switch x {
	case 0:
		r := c.shiftOp(y, v)
		c.write(addr, r)
		if z != 6 {
			c.setReg8(z, indexNone, r)
		}
		return 23
	case 1:
		c.bitTest(uint(y), v, true)
		return 20
	case 2:
		r := v &^ (1 << y)
		c.write(addr, r)
		if z != 6 {
			c.setReg8(z, indexNone, r)
		}
		return 23
	default:
		r := v | (1 << y)
		c.write(addr, r)
		if z != 6 {
			c.setReg8(z, indexNone, r)
		}
		return 23
	}
}
