package z80

// executeMain decodes an unprefixed (or DD/FD-prefixed) opcode using the
// standard x/y/z/p/q bitfield scheme (x = bits 6-7, y = bits 3-5 split into
// p:bits 4-5 and q: bit 3, z = bits 0-2). See http://www.z80.info/decoding.htm.
func (c *CPU) executeMain(opcode byte, idx indexMode) int {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return c.executeMainX0(opcode, y, z, p, q, idx)
	case 1:
		if z == 6 && y == 6 {
			c.Halted = true
			return 4
		}
		v := c.getReg8(z, idx)
		cyc := 4
		if z == 6 || y == 6 {
			cyc = 7
			if idx != indexNone {
				cyc = 15
			}
		} else if idx != indexNone && (y == 4 || y == 5 || z == 4 || z == 5) {
			cyc = 8
		}
		c.setReg8(y, idx, v)
		return cyc
	case 2:
		v := c.getReg8(z, idx)
		c.aluOp(y, v)
		return aluOrMemCycles(z, idx)
	default:
		return c.executeMainX3(opcode, y, z, p, q, idx)
	}
}

func aluOrMemCycles(z byte, idx indexMode) int {
	if z == 6 {
		if idx != indexNone {
			return 15
		}
		return 7
	}
	if idx != indexNone {
		return 8
	}
	return 4
}

func (c *CPU) aluOp(op byte, v byte) {
	switch op {
	case 0:
		c.A = c.add8(c.A, v, false)
	case 1:
		c.A = c.add8(c.A, v, true)
	case 2:
		c.A = c.sub8(c.A, v, false)
	case 3:
		c.A = c.sub8(c.A, v, true)
	case 4:
		c.A = c.and8(c.A, v)
	case 5:
		c.A = c.xor8(c.A, v)
	case 6:
		c.A = c.or8(c.A, v)
	case 7:
		c.cp8(c.A, v)
	}
}

func (c *CPU) executeMainX0(opcode, y, z, p, q byte, idx indexMode) int {
	switch z {
	case 0:
		switch y {
		case 0:
			return 4 // NOP
		case 1:
			c.ExxAF()
			return 4
		case 2:
			d := int8(c.fetchByte())
			c.B--
			if c.B != 0 {
				c.PC = uint16(int32(c.PC) + int32(d))
				c.WZ = c.PC
				return 13
			}
			return 8
		case 3:
			d := int8(c.fetchByte())
			c.PC = uint16(int32(c.PC) + int32(d))
			c.WZ = c.PC
			return 12
		default:
			d := int8(c.fetchByte())
			if c.testCond(y - 4) {
				c.PC = uint16(int32(c.PC) + int32(d))
				c.WZ = c.PC
				return 12
			}
			return 7
		}
	case 1:
		if q == 0 {
			v := c.fetchWord()
			c.setReg16SP(p, idx, v)
			return 10
		}
		hl := c.indexBase(idx)
		pair := c.getReg16SP(p, idx)
		c.setIndexBase(idx, c.add16(hl, pair))
		return 11
	case 2:
		switch y {
		case 0:
			c.write(c.BC(), c.A)
			c.WZ = c.BC() + 1
			return 7
		case 1:
			c.A = c.read(c.BC())
			c.WZ = c.BC() + 1
			return 7
		case 2:
			c.write(c.DE(), c.A)
			c.WZ = c.DE() + 1
			return 7
		case 3:
			c.A = c.read(c.DE())
			c.WZ = c.DE() + 1
			return 7
		case 4:
			addr := c.fetchWord()
			c.writeWord(addr, c.indexBase(idx))
			c.WZ = addr + 1
			return 16
		case 5:
			addr := c.fetchWord()
			c.setIndexBase(idx, c.readWord(addr))
			c.WZ = addr + 1
			return 16
		case 6:
			addr := c.fetchWord()
			c.write(addr, c.A)
			c.WZ = uint16(c.A)<<8 | (addr+1)&0xFF
			return 13
		default:
			addr := c.fetchWord()
			c.A = c.read(addr)
			c.WZ = addr + 1
			return 13
		}
	case 3:
		pair := c.getReg16SP(p, idx)
		if q == 0 {
			c.setReg16SP(p, idx, pair+1)
		} else {
			c.setReg16SP(p, idx, pair-1)
		}
		return 6
	case 4:
		v := c.getReg8(y, idx)
		c.setReg8(y, idx, c.inc8(v))
		if y == 6 {
			if idx != indexNone {
				return 23
			}
			return 11
		}
		if idx != indexNone && (y == 4 || y == 5) {
			return 8
		}
		return 4
	case 5:
		v := c.getReg8(y, idx)
		c.setReg8(y, idx, c.dec8(v))
		if y == 6 {
			if idx != indexNone {
				return 23
			}
			return 11
		}
		if idx != indexNone && (y == 4 || y == 5) {
			return 8
		}
		return 4
	case 6:
		n := c.fetchByte()
		c.setReg8(y, idx, n)
		if y == 6 {
			if idx != indexNone {
				return 19
			}
			return 10
		}
		if idx != indexNone && (y == 4 || y == 5) {
			return 11
		}
		return 7
	default: // z == 7: assorted accumulator/flag ops
		switch y {
		case 0:
			c.A = c.rlc(c.A)
			c.F &^= byte(FlagZ) | byte(FlagS) | byte(FlagPV)
			c.F |= c.A & (byte(FlagY) | byte(FlagX))
			return 4
		case 1:
			c.A = c.rrc(c.A)
			c.F &^= byte(FlagZ) | byte(FlagS) | byte(FlagPV)
			return 4
		case 2:
			c.A = c.rl(c.A)
			c.F &^= byte(FlagZ) | byte(FlagS) | byte(FlagPV)
			return 4
		case 3:
			c.A = c.rr(c.A)
			c.F &^= byte(FlagZ) | byte(FlagS) | byte(FlagPV)
			return 4
		case 4:
			c.daa()
			return 4
		case 5:
			c.A = ^c.A
			c.F |= byte(FlagH) | byte(FlagN)
			c.F = c.F&^(byte(FlagY)|byte(FlagX)) | c.A&(byte(FlagY)|byte(FlagX))
			return 4
		case 6:
			c.F = c.F&^(byte(FlagH)|byte(FlagN)) | byte(FlagC)
			c.F = c.F&^(byte(FlagY)|byte(FlagX)) | c.A&(byte(FlagY)|byte(FlagX))
			return 4
		default: // CCF
			carry := c.GetFlag(FlagC)
			f := c.F &^ (byte(FlagH) | byte(FlagN) | byte(FlagC))
			if carry {
				f |= byte(FlagH)
			} else {
				f |= byte(FlagC)
			}
			c.F = f&^(byte(FlagY)|byte(FlagX)) | c.A&(byte(FlagY)|byte(FlagX))
			return 4
		}
	}
}

func (c *CPU) executeMainX3(opcode, y, z, p, q byte, idx indexMode) int {
	switch z {
	case 0:
		if c.testCond(y) {
			c.PC = c.pop()
			c.WZ = c.PC
			return 11
		}
		return 5
	case 1:
		if q == 0 {
			v := c.pop()
			c.setReg16AF(p, idx, v)
			return 10
		}
		switch p {
		case 0:
			c.PC = c.pop()
			c.WZ = c.PC
			return 10
		case 1:
			c.Exx()
			return 4
		case 2:
			c.PC = c.indexBase(idx)
			return 4
		default:
			c.SP = c.indexBase(idx)
			return 6
		}
	case 2:
		addr := c.fetchWord()
		if c.testCond(y) {
			c.PC = addr
		}
		c.WZ = addr
		return 10
	case 3:
		switch y {
		case 0:
			addr := c.fetchWord()
			c.PC = addr
			c.WZ = addr
			return 10
		case 1:
			// Unreachable: the 0xCB prefix byte is intercepted in
			// executeWithIndex before dispatch ever reaches here.
			return 4
		case 2:
			n := c.fetchByte()
			c.ioOut(uint16(c.A)<<8|uint16(n), c.A)
			c.WZ = (uint16(c.A)<<8 | uint16(n)) + 1
			return 11
		case 3:
			n := c.fetchByte()
			c.A = c.ioIn(uint16(c.A)<<8 | uint16(n))
			c.WZ = (uint16(c.A)<<8 | uint16(n)) + 1
			return 11
		case 4:
			tmp := c.readWord(c.SP)
			v := c.indexBase(idx)
			c.writeWord(c.SP, v)
			c.setIndexBase(idx, tmp)
			c.WZ = tmp
			return 19
		case 5:
			de, hl := c.DE(), c.indexBase(idx)
			c.SetDE(hl)
			c.setIndexBase(idx, de)
			return 4
		case 6:
			c.IFF1, c.IFF2 = false, false
			return 4
		default:
			c.IFF1, c.IFF2 = true, true
			c.afterEI = true
			return 4
		}
	case 4:
		addr := c.fetchWord()
		if c.testCond(y) {
			c.push(c.PC)
			c.PC = addr
		}
		c.WZ = addr
		return 17
	case 5:
		if q == 0 {
			c.push(c.getReg16AF(p, idx))
			return 11
		}
		n := c.fetchByte()
		c.push(c.PC)
		c.PC = uint16(n)
		c.WZ = c.PC
		return 17
	case 6:
		n := c.fetchByte()
		c.aluOp(y, n)
		return 7
	default:
		c.push(c.PC)
		c.PC = uint16(y) * 8
		c.WZ = c.PC
		return 11
	}
}
