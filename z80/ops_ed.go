package z80

// executeED decodes an ED-prefixed opcode. The documented set lives in
// 0x40-0x7F (register block transfer/arithmetic) and 0xA0-0xA3, 0xA8-0xAB,
// 0xB0-0xB3, 0xB8-0xBB (block transfer/search/IO); everything else behaves
// as an 8-T-state NOP (NONI), matching undocumented real-hardware behaviour.
func (c *CPU) executeED(opcode byte) int {
	if opcode >= 0x40 && opcode <= 0x7F {
		return c.executeEDRegister(opcode)
	}
	if opcode >= 0xA0 && opcode <= 0xBB && opcode&0x04 == 0 {
		return c.executeEDBlock(opcode)
	}
	return 8
}

func (c *CPU) executeEDRegister(opcode byte) int {
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	switch z {
	case 0:
		if y == 6 {
			v := c.ioIn(c.BC())
			c.F = sz53p(v) | c.F&byte(FlagC)
			c.WZ = c.BC() + 1
			return 12
		}
		v := c.ioIn(c.BC())
		c.setReg8(y, indexNone, v)
		c.F = sz53p(v) | c.F&byte(FlagC)
		c.WZ = c.BC() + 1
		return 12
	case 1:
		if y == 6 {
			c.ioOut(c.BC(), 0)
			c.WZ = c.BC() + 1
			return 12
		}
		c.ioOut(c.BC(), c.getReg8(y, indexNone))
		c.WZ = c.BC() + 1
		return 12
	case 2:
		hl := c.HL()
		pair := c.getReg16SP(p, indexNone)
		if q == 0 {
			c.SetHL(c.sbc16(hl, pair))
		} else {
			c.SetHL(c.adc16(hl, pair))
		}
		return 15
	case 3:
		addr := c.fetchWord()
		if q == 0 {
			c.writeWord(addr, c.getReg16SP(p, indexNone))
		} else {
			c.setReg16SP(p, indexNone, c.readWord(addr))
		}
		c.WZ = addr + 1
		return 20
	case 4:
		c.A = c.sub8(0, c.A, false)
		return 8
	case 5:
		if y == 1 {
			c.IFF1 = c.IFF2
		}
		c.PC = c.pop()
		c.WZ = c.PC
		return 14
	case 6:
		switch y {
		case 0, 4:
			c.IM = 0
		case 2, 6:
			c.IM = 1
		default:
			c.IM = 2
		}
		return 8
	default: // z == 7
		switch y {
		case 0:
			c.I = c.A
			return 9
		case 1:
			c.R = c.A
			return 9
		case 2:
			c.A = c.I
			c.F = sz53(c.A) | c.F&byte(FlagC)
			if c.IFF2 {
				c.F |= byte(FlagPV)
			}
			return 9
		case 3:
			c.A = c.R
			c.F = sz53(c.A) | c.F&byte(FlagC)
			if c.IFF2 {
				c.F |= byte(FlagPV)
			}
			return 9
		case 4:
			v := c.read(c.HL())
			result := (c.A&0xF0 | v>>4&0x0F)
			c.write(c.HL(), v<<4&0xF0|c.A&0x0F)
			c.A = result
			c.F = sz53p(c.A) | c.F&byte(FlagC)
			c.WZ = c.HL() + 1
			return 18
		case 5:
			v := c.read(c.HL())
			result := c.A&0xF0 | v&0x0F
			c.write(c.HL(), c.A<<4&0xF0|v>>4&0x0F)
			c.A = result
			c.F = sz53p(c.A) | c.F&byte(FlagC)
			c.WZ = c.HL() + 1
			return 18
		default:
			return 8 // NOP / NONI
		}
	}
}

func (c *CPU) executeEDBlock(opcode byte) int {
	repeat := opcode&0x10 != 0
	inc := opcode&0x08 == 0
	kind := opcode & 3 // 0=LD, 1=CP, 2=IN, 3=OUT

	step := func() {
		if inc {
			c.SetHL(c.HL() + 1)
		} else {
			c.SetHL(c.HL() - 1)
		}
	}

	switch kind {
	case 0: // LDI/LDD/LDIR/LDDR
		v := c.read(c.HL())
		c.write(c.DE(), v)
		step()
		if inc {
			c.SetDE(c.DE() + 1)
		} else {
			c.SetDE(c.DE() - 1)
		}
		c.SetBC(c.BC() - 1)
		n := v + c.A
		f := c.F &^ (byte(FlagH) | byte(FlagN) | byte(FlagPV) | byte(FlagY) | byte(FlagX))
		if c.BC() != 0 {
			f |= byte(FlagPV)
		}
		f |= n & byte(FlagX)
		if n&0x02 != 0 {
			f |= byte(FlagY)
		}
		c.F = f
		if repeat && c.BC() != 0 {
			c.PC -= 2
			c.WZ = c.PC + 1
			return 21
		}
		return 16
	case 1: // CPI/CPD/CPIR/CPDR
		v := c.read(c.HL())
		result := c.A - v
		step()
		c.SetBC(c.BC() - 1)
		halfBorrow := c.A&0x0F < v&0x0F
		f := sz53(result)&^(byte(FlagY)|byte(FlagX)) | byte(FlagN) | c.F&byte(FlagC)
		if halfBorrow {
			f |= byte(FlagH)
			result--
		}
		if c.BC() != 0 {
			f |= byte(FlagPV)
		}
		f |= result & byte(FlagX)
		if result&0x02 != 0 {
			f |= byte(FlagY)
		}
		c.F = f
		if inc {
			c.WZ++
		} else {
			c.WZ--
		}
		if repeat && c.BC() != 0 && result != 0 {
			c.PC -= 2
			c.WZ = c.PC + 1
			return 21
		}
		return 16
	case 2: // INI/IND/INIR/INDR
		v := c.ioIn(c.BC())
		c.write(c.HL(), v)
		step()
		c.B--
		c.F = sz53(c.B) | byte(FlagN)
		if c.B == 0 {
			c.F |= byte(FlagZ)
		}
		if repeat && c.B != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	default: // OUTI/OUTD/OTIR/OTDR
		v := c.read(c.HL())
		c.ioOut(c.BC(), v)
		step()
		c.B--
		c.F = sz53(c.B) | byte(FlagN)
		if c.B == 0 {
			c.F |= byte(FlagZ)
		}
		if repeat && c.B != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	}
}
