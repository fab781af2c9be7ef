package m68k

// ea3 reads the common bitfields shared by the 1000/1001/1011/1100/1101
// groups: Dn/An register, opmode, and the ea mode/register pair.
func ea3(opcode uint16) (reg int, opmode uint16, mode, rm uint8) {
	return int(opcode>>9) & 7, (opcode >> 6) & 7, uint8(opcode>>3) & 7, uint8(opcode) & 7
}

// groupOrDivSbcd implements OR, DIVU, DIVS, and SBCD (opcode prefix 1000).
func (c *CPU) groupOrDivSbcd(opcode uint16) int {
	dn, opmode, mode, rm := ea3(opcode)

	if opmode == 3 { // DIVU
		ea, extra := c.decodeEA(mode, rm, SizeWord)
		divisor := uint16(c.readOperand(ea, SizeWord))
		extraCyc := c.divu(dn, divisor)
		return 4 + extra + extraCyc
	}
	if opmode == 7 { // DIVS
		ea, extra := c.decodeEA(mode, rm, SizeWord)
		divisor := int16(c.readOperand(ea, SizeWord))
		extraCyc := c.divs(dn, divisor)
		return 4 + extra + extraCyc
	}
	if opmode == 4 && mode == 0 { // SBCD Dn,Dn
		src := uint8(c.D[rm])
		dst := uint8(c.D[dn])
		c.D[dn] = c.D[dn]&0xFFFFFF00 | uint32(c.bcdSub(dst, src))
		return 6
	}
	if opmode == 4 && mode == 1 { // SBCD -(Ay),-(Ax)
		c.SetAReg(int(rm), c.AReg(int(rm))-1)
		c.SetAReg(dn, c.AReg(dn)-1)
		src := c.readByte(c.AReg(int(rm)), FCData)
		dst := c.readByte(c.AReg(dn), FCData)
		c.writeByte(c.AReg(dn), c.bcdSub(dst, src), FCData)
		return 18
	}

	s, ok := opSize2(opmode & 3)
	if !ok {
		c.raiseIllegal()
		return 34
	}
	ea, extra := c.decodeEA(mode, rm, s)
	v := c.readOperand(ea, s)
	if opmode&4 != 0 { // <ea> = <ea> OR Dn
		result := v | maskTo(c.D[dn], s)
		c.writeOperand(ea, s, result)
		c.logicFlags(result, s)
	} else { // Dn = Dn OR <ea>
		result := maskTo(c.D[dn], s) | v
		c.D[dn] = c.D[dn]&^s.mask() | result
		c.logicFlags(result, s)
	}
	return 4 + extra
}

// groupSub implements SUB, SUBA, SUBX (opcode prefix 1001).
func (c *CPU) groupSub(opcode uint16) int {
	return c.addSubFamily(opcode, true)
}

// groupAdd implements ADD, ADDA, ADDX (opcode prefix 1101).
func (c *CPU) groupAdd(opcode uint16) int {
	return c.addSubFamily(opcode, false)
}

func (c *CPU) addSubFamily(opcode uint16, sub bool) int {
	reg, opmode, mode, rm := ea3(opcode)

	if opmode == 3 || opmode == 7 { // ADDA/SUBA
		s := SizeWord
		if opmode == 7 {
			s = SizeLong
		}
		ea, extra := c.decodeEA(mode, rm, s)
		v := uint32(int32(signExtend(c.readOperand(ea, s), s)))
		an := reg
		if sub {
			c.SetAReg(an, c.AReg(an)-v)
		} else {
			c.SetAReg(an, c.AReg(an)+v)
		}
		return 8 + extra
	}

	s, ok := opSize2(opmode & 3)
	if !ok {
		c.raiseIllegal()
		return 34
	}

	// ADDX/SUBX: opmode in {4,5,6} AND destination addressing is register
	// direct (Dn,Dn) or predecrement (-(Ay),-(Ax)).
	if (opmode == 4 || opmode == 5 || opmode == 6) && (mode == 0 || mode == 1) {
		if mode == 0 {
			src := maskTo(c.D[rm], s)
			dst := maskTo(c.D[reg], s)
			var result uint32
			if sub {
				result = c.sub(dst, src, c.SR.Bit(BitX), s, true)
			} else {
				result = c.add(dst, src, c.SR.Bit(BitX), s, true)
			}
			c.D[reg] = c.D[reg]&^s.mask() | result
			return 4
		}
		c.SetAReg(int(rm), c.AReg(int(rm))-uint32(s))
		c.SetAReg(reg, c.AReg(reg)-uint32(s))
		src := c.readSized(c.AReg(int(rm)), s, FCData)
		dst := c.readSized(c.AReg(reg), s, FCData)
		var result uint32
		if sub {
			result = c.sub(dst, src, c.SR.Bit(BitX), s, true)
		} else {
			result = c.add(dst, src, c.SR.Bit(BitX), s, true)
		}
		c.writeSized(c.AReg(reg), s, result, FCData)
		return 18
	}

	ea, extra := c.decodeEA(mode, rm, s)
	v := c.readOperand(ea, s)
	if opmode&4 != 0 { // <ea> = <ea> +/- Dn
		var result uint32
		if sub {
			result = c.sub(v, maskTo(c.D[reg], s), false, s, false)
		} else {
			result = c.add(v, maskTo(c.D[reg], s), false, s, false)
		}
		c.writeOperand(ea, s, result)
	} else { // Dn = Dn +/- <ea>
		var result uint32
		if sub {
			result = c.sub(maskTo(c.D[reg], s), v, false, s, false)
		} else {
			result = c.add(maskTo(c.D[reg], s), v, false, s, false)
		}
		c.D[reg] = c.D[reg]&^s.mask() | result
	}
	return 4 + extra
}

func (c *CPU) readSized(addr uint32, s Size, fc FunctionCodeKind) uint32 {
	switch s {
	case SizeByte:
		return uint32(c.readByte(addr, fc))
	case SizeWord:
		return uint32(c.readWord(addr, fc))
	default:
		return c.readLong(addr, fc)
	}
}

func (c *CPU) writeSized(addr uint32, s Size, v uint32, fc FunctionCodeKind) {
	switch s {
	case SizeByte:
		c.writeByte(addr, uint8(v), fc)
	case SizeWord:
		c.writeWord(addr, uint16(v), fc)
	default:
		c.writeLong(addr, v, fc)
	}
}

// groupCmpEor implements CMP, CMPA, CMPM, and EOR (opcode prefix 1011).
func (c *CPU) groupCmpEor(opcode uint16) int {
	reg, opmode, mode, rm := ea3(opcode)

	if opmode == 3 || opmode == 7 { // CMPA
		s := SizeWord
		if opmode == 7 {
			s = SizeLong
		}
		ea, extra := c.decodeEA(mode, rm, s)
		v := uint32(int32(signExtend(c.readOperand(ea, s), s)))
		c.cmp(c.AReg(reg), v, SizeLong)
		return 6 + extra
	}

	s, ok := opSize2(opmode & 3)
	if !ok {
		c.raiseIllegal()
		return 34
	}

	if opmode >= 4 && mode == 1 { // CPMPM (Ay)+,(Ax)+
		src := c.readSized(c.AReg(int(rm)), s, FCData)
		c.SetAReg(int(rm), c.AReg(int(rm))+uint32(s))
		dst := c.readSized(c.AReg(reg), s, FCData)
		c.SetAReg(reg, c.AReg(reg)+uint32(s))
		c.cmp(dst, src, s)
		return 8
	}

	ea, extra := c.decodeEA(mode, rm, s)
	v := c.readOperand(ea, s)
	if opmode&4 != 0 { // EOR: <ea> = <ea> XOR Dn
		result := v ^ maskTo(c.D[reg], s)
		c.writeOperand(ea, s, result)
		c.logicFlags(result, s)
		return 4 + extra
	}
	c.cmp(maskTo(c.D[reg], s), v, s) // CMP
	return 4 + extra
}

// groupAndMulAbcdExg implements AND, MULU, MULS, ABCD, and EXG (prefix 1100).
func (c *CPU) groupAndMulAbcdExg(opcode uint16) int {
	reg, opmode, mode, rm := ea3(opcode)

	if opmode == 3 { // MULU
		ea, extra := c.decodeEA(mode, rm, SizeWord)
		src := uint32(c.readOperand(ea, SizeWord))
		result := (c.D[reg] & 0xFFFF) * src
		c.D[reg] = result
		c.setNZ(result, SizeLong)
		c.SR.SetBit(BitV, false)
		c.SR.SetBit(BitC, false)
		return 70 + extra
	}
	if opmode == 7 { // MULS
		ea, extra := c.decodeEA(mode, rm, SizeWord)
		src := int32(int16(c.readOperand(ea, SizeWord)))
		result := int32(int16(c.D[reg])) * src
		c.D[reg] = uint32(result)
		c.setNZ(uint32(result), SizeLong)
		c.SR.SetBit(BitV, false)
		c.SR.SetBit(BitC, false)
		return 70 + extra
	}
	if opmode == 4 && mode == 0 { // ABCD Dn,Dn
		src := uint8(c.D[rm])
		dst := uint8(c.D[reg])
		c.D[reg] = c.D[reg]&0xFFFFFF00 | uint32(c.bcdAdd(dst, src))
		return 6
	}
	if opmode == 4 && mode == 1 { // ABCD -(Ay),-(Ax)
		c.SetAReg(int(rm), c.AReg(int(rm))-1)
		c.SetAReg(reg, c.AReg(reg)-1)
		src := c.readByte(c.AReg(int(rm)), FCData)
		dst := c.readByte(c.AReg(reg), FCData)
		c.writeByte(c.AReg(reg), c.bcdAdd(dst, src), FCData)
		return 18
	}
	if mode == 1 && (opmode == 5 || opmode == 6) { // EXG
		if opmode == 5 {
			c.D[reg], c.D[rm] = c.D[rm], c.D[reg]
		} else {
			a, b := c.AReg(reg), c.AReg(int(rm))
			c.SetAReg(reg, b)
			c.SetAReg(int(rm), a)
		}
		return 6
	}
	if mode == 2 && opmode == 6 { // EXG Dx,Ay
		d, a := c.D[reg], c.AReg(int(rm))
		c.D[reg] = a
		c.SetAReg(int(rm), d)
		return 6
	}

	s, ok := opSize2(opmode & 3)
	if !ok {
		c.raiseIllegal()
		return 34
	}
	ea, extra := c.decodeEA(mode, rm, s)
	v := c.readOperand(ea, s)
	if opmode&4 != 0 {
		result := v & maskTo(c.D[reg], s)
		c.writeOperand(ea, s, result)
		c.logicFlags(result, s)
	} else {
		result := maskTo(c.D[reg], s) & v
		c.D[reg] = c.D[reg]&^s.mask() | result
		c.logicFlags(result, s)
	}
	return 4 + extra
}
