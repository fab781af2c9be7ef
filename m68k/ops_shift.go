package m68k

// groupShift implements ASL/ASR/LSL/LSR/ROL/ROR/ROXL/ROXR, in both the
// register (count in Dn or immediate 1-8) and single-bit memory-operand
// forms.
func (c *CPU) groupShift(opcode uint16) int {
	if opcode&0xF0C0 == 0xE0C0 { // memory shift, always word, count 1, direction bit 8
		kind := (opcode >> 9) & 3
		left := opcode&0x0100 != 0
		mode, rm := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, rm, SizeWord)
		v := uint16(c.readOperand(ea, SizeWord))
		result := c.shiftOnce(kind, left, uint32(v), SizeWord)
		c.writeOperand(ea, SizeWord, result)
		return 8 + extra
	}

	dn := int(opcode) & 7
	left := opcode&0x0100 != 0
	kind := (opcode >> 3) & 3
	sizeBits := (opcode >> 6) & 3
	s, ok := opSize2(sizeBits)
	if !ok {
		c.raiseIllegal()
		return 34
	}
	isReg := opcode&0x0020 != 0
	var count uint32
	if isReg {
		count = c.D[int(opcode>>9)&7] % 64
	} else {
		count = uint32((opcode >> 9) & 7)
		if count == 0 {
			count = 8
		}
	}

	v := maskTo(c.D[dn], s)
	if count == 0 {
		c.setNZ(v, s)
		c.SR.SetBit(BitV, false)
		c.SR.SetBit(BitC, false)
		return 6
	}
	var result uint32
	for i := uint32(0); i < count; i++ {
		result = c.shiftOnce(kind, left, v, s)
		v = result
	}
	c.D[dn] = c.D[dn]&^s.mask() | result
	return 6 + int(2*count)
}

// shiftOnce applies one bit-position of the given shift/rotate kind
// (0=ASx,1=LSx,2=ROxd,3=ROXx) and sets C/X/N/Z/V per that single step.
func (c *CPU) shiftOnce(kind uint16, left bool, v uint32, s Size) uint32 {
	bits := uint32(s) * 8
	sign := v & s.signBit()
	var result uint32
	var carryOut bool

	switch kind {
	case 0: // arithmetic
		if left {
			carryOut = v&s.signBit() != 0
			result = maskTo(v<<1, s)
		} else {
			carryOut = v&1 != 0
			result = v>>1 | sign
		}
	case 1: // logical
		if left {
			carryOut = v&s.signBit() != 0
			result = maskTo(v<<1, s)
		} else {
			carryOut = v&1 != 0
			result = v >> 1
		}
	case 2: // rotate (no extend)
		if left {
			carryOut = v&s.signBit() != 0
			result = maskTo(v<<1, s)
			if carryOut {
				result |= 1
			}
		} else {
			carryOut = v&1 != 0
			result = v >> 1
			if carryOut {
				result |= s.signBit()
			}
		}
	default: // rotate through extend
		xIn := uint32(0)
		if c.SR.Bit(BitX) {
			xIn = 1
		}
		if left {
			carryOut = v&s.signBit() != 0
			result = maskTo(v<<1, s) | xIn
		} else {
			carryOut = v&1 != 0
			result = v>>1 | xIn<<(bits-1)
		}
		c.SR.SetBit(BitX, carryOut)
	}

	c.SR.SetBit(BitC, carryOut)
	if kind != 2 { // simple rotate (kind 2) never touches X
		c.SR.SetBit(BitX, carryOut)
	}
	c.SR.SetBit(BitN, isNegative(result, s))
	c.SR.SetBit(BitZ, maskTo(result, s) == 0)
	if kind == 0 {
		c.SR.SetBit(BitV, isNegative(result, s) != (sign != 0))
	} else {
		c.SR.SetBit(BitV, false)
	}
	return result
}
