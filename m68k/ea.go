package m68k

// Mode is the 3-bit addressing-mode field; combined with a 3-bit register
// field it selects one of the 68000's twelve effective-address forms.
type Mode int

const (
	ModeDataReg Mode = iota
	ModeAddrReg
	ModeAddrInd
	ModeAddrIndPostInc
	ModeAddrIndPreDec
	ModeAddrIndDisp
	ModeAddrIndIndex
	ModeOther // register field distinguishes abs/PC/immediate forms
)

// operand is a resolved effective address: either a CPU register (read and
// written directly) or a memory location (addr set, accessed through the
// bus). programSpaceAccess is true for PC-relative forms, which use the
// {User,Supervisor}Program function code instead of Data.
type operand struct {
	isReg              bool
	isAddrReg          bool
	regN               int
	addr               uint32
	programSpaceAccess bool
	isImmediate        bool
	immediate          uint32
}

// decodeEA reads mode/reg fields, fetches any extension words from the
// prefetch queue (via FetchIRC promotion), and returns the resolved
// operand plus the extra cycle cost of computing it.
func (c *CPU) decodeEA(mode, reg byte, s Size) (operand, int) {
	switch Mode(mode) {
	case ModeDataReg:
		return operand{isReg: true, regN: int(reg)}, 0
	case ModeAddrReg:
		return operand{isReg: true, isAddrReg: true, regN: int(reg)}, 0
	case ModeAddrInd:
		return operand{addr: c.AReg(int(reg))}, 4
	case ModeAddrIndPostInc:
		addr := c.AReg(int(reg))
		op := operand{addr: addr}
		inc := uint32(s)
		if reg == 7 && s == SizeByte {
			inc = 2
		}
		c.SetAReg(int(reg), addr+inc)
		return op, 4
	case ModeAddrIndPreDec:
		dec := uint32(s)
		if reg == 7 && s == SizeByte {
			dec = 2
		}
		addr := c.AReg(int(reg)) - dec
		c.SetAReg(int(reg), addr)
		return operand{addr: addr}, 6
	case ModeAddrIndDisp:
		disp := int16(c.nextExtWord())
		addr := uint32(int64(c.AReg(int(reg))) + int64(disp))
		return operand{addr: addr}, 8
	case ModeAddrIndIndex:
		ext := c.nextExtWord()
		addr := c.indexedAddr(c.AReg(int(reg)), ext)
		return operand{addr: addr}, 10
	default:
		switch reg {
		case 0: // absolute short
			addr := uint32(int32(int16(c.nextExtWord())))
			return operand{addr: addr}, 8
		case 1: // absolute long
			hi := c.nextExtWord()
			lo := c.nextExtWord()
			return operand{addr: uint32(hi)<<16 | uint32(lo)}, 12
		case 2: // PC + d16
			base := c.PC
			disp := int16(c.nextExtWord())
			addr := uint32(int64(base) + int64(disp))
			return operand{addr: addr, programSpaceAccess: true}, 8
		case 3: // PC + d8(Xn)
			base := c.PC
			ext := c.nextExtWord()
			addr := c.indexedAddr(base, ext)
			return operand{addr: addr, programSpaceAccess: true}, 10
		default: // immediate
			if s == SizeLong {
				hi := c.nextExtWord()
				lo := c.nextExtWord()
				return operand{isImmediate: true, immediate: uint32(hi)<<16 | uint32(lo)}, 8
			}
			return operand{isImmediate: true, immediate: uint32(c.nextExtWord())}, 4
		}
	}
}

// nextExtWord consumes IRC as an extension word: it becomes IR-adjacent
// data, and a fresh FetchIRC refills the pipeline behind it, matching the
// real chip's "IRC is always loaded by the time Execute decodes" invariant.
func (c *CPU) nextExtWord() uint16 {
	word := c.IRC
	c.extraWait = 0
	c.IRC = c.readWord(c.PC, FCProgram)
	c.PC += 2
	return word
}

// indexedAddr computes (d8,base,Xn) per the brief extension-word format:
// bit 15 selects An(1)/Dn(0), bits 12-14 select the register, bit 11
// selects word(0)/long(1) sign-extension, bits 0-7 are the signed
// displacement.
func (c *CPU) indexedAddr(base uint32, ext uint16) uint32 {
	isAddrReg := ext&0x8000 != 0
	regN := int(ext>>12) & 7
	isLong := ext&0x0800 != 0
	disp := int8(ext & 0xFF)

	var xn int64
	if isAddrReg {
		xn = int64(int32(c.AReg(regN)))
	} else {
		xn = int64(int32(c.D[regN]))
	}
	if !isLong {
		xn = int64(int16(xn))
	}
	return uint32(int64(base) + int64(disp) + xn)
}

// readOperand loads the operand's value at size s.
func (c *CPU) readOperand(op operand, s Size) uint32 {
	if op.isImmediate {
		return op.immediate
	}
	if op.isReg {
		if op.isAddrReg {
			return c.AReg(op.regN)
		}
		return maskTo(c.D[op.regN], s)
	}
	kind := FCData
	if op.programSpaceAccess {
		kind = FCProgram
	}
	switch s {
	case SizeByte:
		return uint32(c.readByte(op.addr, kind))
	case SizeWord:
		return uint32(c.readWord(op.addr, kind))
	default:
		return c.readLong(op.addr, kind)
	}
}

// writeOperand stores v into the operand at size s. Writing a byte/word
// into a data register only touches the low bits; address registers are
// always written as a sign-extended long (MOVEA semantics handled by the
// caller via size promotion).
func (c *CPU) writeOperand(op operand, s Size, v uint32) {
	if op.isReg {
		if op.isAddrReg {
			c.SetAReg(op.regN, v)
			return
		}
		switch s {
		case SizeByte:
			c.D[op.regN] = c.D[op.regN]&0xFFFFFF00 | v&0xFF
		case SizeWord:
			c.D[op.regN] = c.D[op.regN]&0xFFFF0000 | v&0xFFFF
		default:
			c.D[op.regN] = v
		}
		return
	}
	kind := FCData
	if op.programSpaceAccess {
		kind = FCProgram
	}
	switch s {
	case SizeByte:
		c.writeByte(op.addr, uint8(v), kind)
	case SizeWord:
		c.writeWord(op.addr, uint16(v), kind)
	default:
		c.writeLong(op.addr, v, kind)
	}
}
