package m68k

// group5 covers ADDQ/SUBQ (0101 ddd0), Scc (0101 cccc 11), and DBcc
// (0101 cccc 11 001 rrr).
func (c *CPU) group5(opcode uint16) int {
	sizeBits := (opcode >> 6) & 3

	if sizeBits == 3 {
		mode := uint8(opcode>>3) & 7
		reg := uint8(opcode) & 7
		cond := opcode >> 8

		if mode == 1 { // DBcc
			dn := int(reg)
			disp := int16(c.nextExtWord())
			if !c.condition(cond) {
				c.D[dn] = c.D[dn]&0xFFFF0000 | uint32(uint16(c.D[dn])-1)
				if uint16(c.D[dn]) != 0xFFFF {
					c.PC = uint32(int64(c.PC) - 2 + int64(disp))
					c.refillPrefetch()
					return 10
				}
			}
			return 14
		}

		// Scc
		ea, extra := c.decodeEA(mode, reg, SizeByte)
		var v uint32
		if c.condition(cond) {
			v = 0xFF
		}
		c.writeOperand(ea, SizeByte, v)
		return 4 + extra
	}

	s, ok := opSize2(sizeBits)
	if !ok {
		c.raiseIllegal()
		return 34
	}
	data := uint32((opcode >> 9) & 7)
	if data == 0 {
		data = 8
	}
	mode := uint8(opcode>>3) & 7
	reg := uint8(opcode) & 7
	sub := opcode&0x0100 != 0

	if mode == 1 { // address register: no flags affected, always treated as long
		an := int(reg)
		if sub {
			c.SetAReg(an, c.AReg(an)-data)
		} else {
			c.SetAReg(an, c.AReg(an)+data)
		}
		return 8
	}

	ea, extra := c.decodeEA(mode, reg, s)
	v := c.readOperand(ea, s)
	var result uint32
	if sub {
		result = c.sub(v, data, false, s, false)
	} else {
		result = c.add(v, data, false, s, false)
	}
	c.writeOperand(ea, s, result)
	return 4 + extra
}
