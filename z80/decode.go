package z80

// indexMode selects which, if any, index register (IX/IY) is substituted
// for HL by the current instruction's DD/FD prefix.
type indexMode int

const (
	indexNone indexMode = iota
	indexIX
	indexIY
)

// execute decodes and runs a single instruction starting with opcode,
// returning the number of T-states it consumes. Index-register prefixes
// (DD/FD) are peeled off and re-dispatched with idx set; CB/ED prefixes
// dispatch to their own tables.
func (c *CPU) execute(opcode byte) int {
	return c.executeWithIndex(opcode, indexNone)
}

func (c *CPU) executeWithIndex(opcode byte, idx indexMode) int {
	switch opcode {
	case 0xDD:
		return 4 + c.executeWithIndex(c.fetchByte(), indexIX)
	case 0xFD:
		return 4 + c.executeWithIndex(c.fetchByte(), indexIY)
	case 0xCB:
		if idx == indexNone {
			return c.executeCB(c.fetchByte())
		}
		return c.executeIndexedCB(idx)
	case 0xED:
		return c.executeED(c.fetchByte())
	}
	return c.executeMain(opcode, idx)
}

// indexBase returns the active index register value (IX or IY), or HL when
// idx is indexNone.
func (c *CPU) indexBase(idx indexMode) uint16 {
	switch idx {
	case indexIX:
		return c.IX
	case indexIY:
		return c.IY
	default:
		return c.HL()
	}
}

func (c *CPU) setIndexBase(idx indexMode, v uint16) {
	switch idx {
	case indexIX:
		c.IX = v
	case indexIY:
		c.IY = v
	default:
		c.SetHL(v)
	}
}

// indexedAddr fetches a signed displacement byte and returns (IX/IY)+d,
// also updating WZ as real hardware does.
func (c *CPU) indexedAddr(idx indexMode) uint16 {
	d := int8(c.fetchByte())
	addr := uint16(int32(c.indexBase(idx)) + int32(d))
	c.WZ = addr
	return addr
}

// reg8 identifies one of the eight 3-bit-encoded 8-bit operands.
type reg8 int

const (
	reg8B reg8 = iota
	reg8C
	reg8D
	reg8E
	reg8H
	reg8L
	reg8HLInd
	reg8A
)

// getReg8 reads an 8-bit operand selected by its 3-bit code, substituting
// IXH/IXL/IYH/IYL for H/L and (IX+d)/(IY+d) for (HL) when idx is active.
func (c *CPU) getReg8(code byte, idx indexMode) byte {
	switch reg8(code & 7) {
	case reg8B:
		return c.B
	case reg8C:
		return c.C
	case reg8D:
		return c.D
	case reg8E:
		return c.E
	case reg8H:
		if idx == indexIX {
			return byte(c.IX >> 8)
		} else if idx == indexIY {
			return byte(c.IY >> 8)
		}
		return c.H
	case reg8L:
		if idx == indexIX {
			return byte(c.IX)
		} else if idx == indexIY {
			return byte(c.IY)
		}
		return c.L
	case reg8HLInd:
		if idx != indexNone {
			return c.read(c.indexedAddr(idx))
		}
		return c.read(c.HL())
	default: // reg8A
		return c.A
	}
}

func (c *CPU) setReg8(code byte, idx indexMode, v byte) {
	switch reg8(code & 7) {
	case reg8B:
		c.B = v
	case reg8C:
		c.C = v
	case reg8D:
		c.D = v
	case reg8E:
		c.E = v
	case reg8H:
		switch idx {
		case indexIX:
			c.IX = c.IX&0x00FF | uint16(v)<<8
		case indexIY:
			c.IY = c.IY&0x00FF | uint16(v)<<8
		default:
			c.H = v
		}
	case reg8L:
		switch idx {
		case indexIX:
			c.IX = c.IX&0xFF00 | uint16(v)
		case indexIY:
			c.IY = c.IY&0xFF00 | uint16(v)
		default:
			c.L = v
		}
	case reg8HLInd:
		if idx != indexNone {
			c.write(c.indexedAddr(idx), v)
		} else {
			c.write(c.HL(), v)
		}
	default:
		c.A = v
	}
}

// reg16sp/reg16af select a 16-bit pair by its 2-bit code, for the two
// competing conventions (SP in slot 3 for most instructions, AF in slot 3
// for PUSH/POP).
func (c *CPU) getReg16SP(code byte, idx indexMode) uint16 {
	switch code & 3 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.indexBase(idx)
	default:
		return c.SP
	}
}

func (c *CPU) setReg16SP(code byte, idx indexMode, v uint16) {
	switch code & 3 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setIndexBase(idx, v)
	default:
		c.SP = v
	}
}

func (c *CPU) getReg16AF(code byte, idx indexMode) uint16 {
	switch code & 3 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.indexBase(idx)
	default:
		return c.AF()
	}
}

func (c *CPU) setReg16AF(code byte, idx indexMode, v uint16) {
	switch code & 3 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setIndexBase(idx, v)
	default:
		c.SetAF(v)
	}
}

// testCond evaluates one of the eight condition codes used by JP/JR/CALL/RET.
func (c *CPU) testCond(code byte) bool {
	switch code & 7 {
	case 0:
		return !c.GetFlag(FlagZ)
	case 1:
		return c.GetFlag(FlagZ)
	case 2:
		return !c.GetFlag(FlagC)
	case 3:
		return c.GetFlag(FlagC)
	case 4:
		return !c.GetFlag(FlagPV)
	case 5:
		return c.GetFlag(FlagPV)
	case 6:
		return !c.GetFlag(FlagS)
	default:
		return c.GetFlag(FlagS)
	}
}
