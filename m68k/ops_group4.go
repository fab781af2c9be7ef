package m68k

// group4 covers the 0100-prefixed miscellaneous group: LEA, CHK, CLR, NEG,
// NOT, NBCD, SWAP, PEA, EXT, TST, TAS, TRAP, LINK, UNLK, MOVE USP, RESET,
// NOP, STOP, RTE, RTS, TRAPV, RTR, JSR, JMP, MOVEM, MOVE from/to SR/CCR.
func (c *CPU) group4(opcode uint16) int {
	switch {
	case opcode == 0x4E71: // NOP
		return 4
	case opcode == 0x4E70: // RESET
		if !c.SR.Supervisor() {
			c.raisePrivilegeViolation()
			return 34
		}
		c.Bus.Reset()
		return 132
	case opcode == 0x4E72: // STOP
		imm := c.nextExtWord()
		if !c.SR.Supervisor() {
			c.raisePrivilegeViolation()
			return 34
		}
		c.SR.Set(imm)
		c.state = StateStopped
		return 4
	case opcode == 0x4E73: // RTE
		if !c.SR.Supervisor() {
			c.raisePrivilegeViolation()
			return 34
		}
		sr := c.readWord(c.A7(), FCData)
		c.SetA7(c.A7() + 2)
		pc := c.readLong(c.A7(), FCData)
		c.SetA7(c.A7() + 4)
		c.SR.Set(sr)
		c.PC = pc
		c.refillPrefetch()
		return 20
	case opcode == 0x4E75: // RTS
		pc := c.readLong(c.A7(), FCData)
		c.SetA7(c.A7() + 4)
		c.PC = pc
		c.refillPrefetch()
		return 16
	case opcode == 0x4E76: // TRAPV
		if c.SR.Bit(BitV) {
			c.raiseTRAPV()
		}
		return 4
	case opcode == 0x4E77: // RTR
		ccr := c.readWord(c.A7(), FCData)
		c.SetA7(c.A7() + 2)
		pc := c.readLong(c.A7(), FCData)
		c.SetA7(c.A7() + 4)
		c.SR.SetCCR(uint8(ccr))
		c.PC = pc
		c.refillPrefetch()
		return 20
	}

	if opcode&0xFFF0 == 0x4E60 { // MOVE An,USP / MOVE USP,An
		an := int(opcode & 7)
		if !c.SR.Supervisor() {
			c.raisePrivilegeViolation()
			return 34
		}
		if opcode&0x0008 != 0 {
			c.SetAReg(an, c.USP)
		} else {
			c.USP = c.AReg(an)
		}
		return 4
	}

	if opcode&0xFF00 == 0x4E00 && opcode&0x00F0 == 0x0040 { // TRAP #n
		c.raiseTrap(opcode & 0xF)
		return 34
	}

	if opcode&0xFFF8 == 0x4E50 { // LINK An,#d16
		an := int(opcode & 7)
		disp := int16(c.nextExtWord())
		sp := c.A7() - 4
		c.writeLong(sp, c.AReg(an), FCData)
		c.SetAReg(an, sp)
		c.SetA7(uint32(int64(sp) + int64(disp)))
		return 16
	}
	if opcode&0xFFF8 == 0x4E58 { // UNLK An
		an := int(opcode & 7)
		sp := c.AReg(an)
		c.SetAReg(an, c.readLong(sp, FCData))
		c.SetA7(sp + 4)
		return 12
	}

	if opcode&0xFFC0 == 0x4E80 { // JSR <ea>
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeLong)
		target := eaJumpAddr(ea)
		sp := c.A7() - 4
		c.writeLong(sp, c.PC-2, FCData) // return address: the word in IRC
		c.SetA7(sp)
		c.PC = target
		c.refillPrefetch()
		return 16 + extra
	}
	if opcode&0xFFC0 == 0x4EC0 { // JMP <ea>
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeLong)
		c.PC = eaJumpAddr(ea)
		c.refillPrefetch()
		return 8 + extra
	}

	if opcode&0xFFC0 == 0x41C0 { // LEA <ea>,An
		an := int(opcode>>9) & 7
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeLong)
		c.SetAReg(an, ea.addr)
		return 4 + extra
	}
	if opcode&0xF1C0 == 0x4180 { // CHK <ea>,Dn
		dn := int(opcode>>9) & 7
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeWord)
		bound := uint32(int32(int16(c.readOperand(ea, SizeWord))))
		val := uint32(int32(int16(c.D[dn])))
		if int32(val) < 0 {
			c.SR.SetBit(BitN, true)
			c.raiseCHK()
		} else if int32(val) > int32(bound) {
			c.SR.SetBit(BitN, false)
			c.raiseCHK()
		}
		return 10 + extra
	}
	if opcode&0xFFF8 == 0x4840 { // SWAP Dn (must be checked before PEA: same prefix, register-direct mode)
		dn := int(opcode & 7)
		v := c.D[dn]
		c.D[dn] = v<<16 | v>>16
		c.setNZ(c.D[dn], SizeLong)
		c.SR.SetBit(BitV, false)
		c.SR.SetBit(BitC, false)
		return 4
	}
	if opcode&0xFFC0 == 0x4840 { // PEA <ea>
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeLong)
		sp := c.A7() - 4
		c.writeLong(sp, ea.addr, FCData)
		c.SetA7(sp)
		return 12 + extra
	}
	if opcode&0xFF80 == 0x4880 { // EXT.W / EXT.L
		dn := int(opcode & 7)
		long := opcode&0x0040 != 0
		if long {
			c.D[dn] = uint32(int32(int16(c.D[dn])))
			c.setNZ(c.D[dn], SizeLong)
		} else {
			c.D[dn] = c.D[dn]&0xFFFF0000 | uint32(uint16(int16(int8(c.D[dn]))))
			c.setNZ(c.D[dn], SizeWord)
		}
		c.SR.SetBit(BitV, false)
		c.SR.SetBit(BitC, false)
		return 4
	}
	if opcode&0xFF00 == 0x4A00 && opcode&0x00C0 != 0x00C0 { // TST
		sizeBits := (opcode >> 6) & 3
		s, ok := opSize2(sizeBits)
		if !ok {
			c.raiseIllegal()
			return 34
		}
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, s)
		v := c.readOperand(ea, s)
		c.logicFlags(v, s)
		return 4 + extra
	}
	if opcode&0xFFC0 == 0x4AC0 { // TAS
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeByte)
		v := uint8(c.readOperand(ea, SizeByte))
		c.logicFlags(uint32(v), SizeByte)
		c.writeOperand(ea, SizeByte, uint32(v)|0x80)
		return 14 + extra
	}
	if opcode&0xFF00 == 0x4000 { // NEGX
		return c.unaryArith(opcode, arithNegX)
	}
	if opcode&0xFF00 == 0x4200 { // CLR
		sizeBits := (opcode >> 6) & 3
		s, ok := opSize2(sizeBits)
		if !ok {
			c.raiseIllegal()
			return 34
		}
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, s)
		c.writeOperand(ea, s, 0)
		c.SR.SetCCR(byte(FlagZm))
		return 4 + extra
	}
	if opcode&0xFF00 == 0x4400 { // NEG
		return c.unaryArith(opcode, arithNeg)
	}
	if opcode&0xFF00 == 0x4600 { // NOT
		return c.unaryArith(opcode, arithNot)
	}
	if opcode&0xFFC0 == 0x4800 { // NBCD
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeByte)
		v := uint8(c.readOperand(ea, SizeByte))
		r := c.bcdSub(0, v)
		c.writeOperand(ea, SizeByte, uint32(r))
		return 6 + extra
	}
	if opcode&0xFB80 == 0x4880 || opcode&0xFB80 == 0x4C80 { // MOVEM
		return c.movem(opcode)
	}
	if opcode&0xFFC0 == 0x40C0 { // MOVE from SR
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeWord)
		c.writeOperand(ea, SizeWord, uint32(c.SR.Value()))
		return 6 + extra
	}
	if opcode&0xFFC0 == 0x44C0 { // MOVE to CCR
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeWord)
		c.SR.SetCCR(uint8(c.readOperand(ea, SizeWord)))
		return 12 + extra
	}
	if opcode&0xFFC0 == 0x46C0 { // MOVE to SR
		if !c.SR.Supervisor() {
			c.raisePrivilegeViolation()
			return 34
		}
		mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
		ea, extra := c.decodeEA(mode, reg, SizeWord)
		c.SR.Set(uint16(c.readOperand(ea, SizeWord)))
		return 12 + extra
	}

	c.raiseIllegal()
	return 34
}

// FlagZm is the Z-only CCR value CLR leaves behind (N/V/C cleared, Z set).
const FlagZm uint8 = 1 << BitZ

type arithKind int

const (
	arithNeg arithKind = iota
	arithNegX
	arithNot
)

func (c *CPU) unaryArith(opcode uint16, kind arithKind) int {
	sizeBits := (opcode >> 6) & 3
	s, ok := opSize2(sizeBits)
	if !ok {
		c.raiseIllegal()
		return 34
	}
	mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7
	ea, extra := c.decodeEA(mode, reg, s)
	v := c.readOperand(ea, s)

	var result uint32
	switch kind {
	case arithNeg:
		result = c.sub(0, v, false, s, false)
	case arithNegX:
		result = c.sub(0, v, c.SR.Bit(BitX), s, true)
	default:
		result = maskTo(^v, s)
		c.logicFlags(result, s)
	}
	c.writeOperand(ea, s, result)
	return 4 + extra
}

// movem implements MOVEM register-list transfer to/from memory. Only
// (An), (An)+, -(An), and the absolute/displacement forms are supported,
// covering every alterable mode real programs use for register save/restore.
func (c *CPU) movem(opcode uint16) int {
	toMem := opcode&0x0400 == 0
	long := opcode&0x0040 != 0
	s := SizeWord
	if long {
		s = SizeLong
	}
	mask := c.nextExtWord()
	mode, reg := uint8(opcode>>3)&7, uint8(opcode)&7

	count := 0
	if mode == 4 { // -(An): mask order is A7..A0,D7..D0, predecrementing
		addr := c.AReg(int(reg))
		for i := 0; i < 16; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			addr -= uint32(s)
			regN := 15 - i
			var v uint32
			if regN < 8 {
				v = c.D[regN]
			} else {
				v = c.AReg(regN - 8)
			}
			if s == SizeWord {
				c.writeWord(addr, uint16(v), FCData)
			} else {
				c.writeLong(addr, v, FCData)
			}
			count++
		}
		c.SetAReg(int(reg), addr)
		return 8 + count*int(s)
	}

	ea, extra := c.decodeEA(mode, reg, s)
	addr := ea.addr
	for i := 0; i < 16; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		if toMem {
			var v uint32
			if i < 8 {
				v = c.D[i]
			} else {
				v = c.AReg(i - 8)
			}
			if s == SizeWord {
				c.writeWord(addr, uint16(v), FCData)
			} else {
				c.writeLong(addr, v, FCData)
			}
		} else {
			var v uint32
			if s == SizeWord {
				v = uint32(int32(int16(c.readWord(addr, FCData))))
			} else {
				v = c.readLong(addr, FCData)
			}
			if i < 8 {
				c.D[i] = v
			} else {
				c.SetAReg(i-8, v)
			}
		}
		addr += uint32(s)
		count++
	}
	if mode == 3 { // (An)+ also updates An
		c.SetAReg(int(reg), addr)
	}
	return 8 + count*int(s) + extra
}

// eaJumpAddr extracts the control-transfer target address from a control
// (memory) addressing mode operand for JMP/JSR.
func eaJumpAddr(ea operand) uint32 { return ea.addr }
