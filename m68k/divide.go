package m68k

// divuCycles computes the exact MC68000 DIVU cycle count by shadow-executing
// Jorge Cwik's restoring-division algorithm on the masked absolute operand
// values: 15 quotient-bit steps, charging 2 extra cycles for every step
// that does NOT need a final borrow-correction (non-restoring shortcut),
// mirrors real hardware's data-dependent timing. Overflow short-circuits to
// a fixed low cycle count.
func divuCycles(dividend uint32, divisor uint16) int {
	if divisor == 0 {
		return 38
	}
	if dividend/uint32(divisor) > 0xFFFF {
		return 10
	}

	cycles := 6 + 2 // base dispatch overhead
	hi := dividend
	divisorShifted := uint32(divisor) << 16

	for i := 0; i < 15; i++ {
		cycles += 2
		if hi&0x80000000 != 0 {
			hi = hi<<1 - divisorShifted
		} else {
			hi = hi << 1
			if hi >= divisorShifted {
				hi -= divisorShifted
				cycles++
			} else {
				cycles += 2
			}
		}
	}
	return cycles + 4
}

// divsCycles computes DIVS timing: a fixed overhead for sign handling plus
// a variant of the same restoring-division step count, charging extra
// cycles by quotient-bit polarity as the real chip's microcode does.
func divsCycles(dividend int32, divisor int16) int {
	if divisor == 0 {
		return 38
	}
	quotient := int64(dividend) / int64(divisor)
	if quotient > 0x7FFF || quotient < -0x8000 {
		return 16
	}

	cycles := 6 + 2
	absDividend := uint32(dividend)
	if dividend < 0 {
		absDividend = uint32(-dividend)
		cycles += 4
	}
	absDivisor := uint16(divisor)
	if divisor < 0 {
		absDivisor = uint16(-divisor)
	}

	cycles += divuCycles(absDividend, absDivisor) - 12
	if (dividend < 0) != (divisor < 0) {
		cycles += 2
	}
	return cycles + 6
}

// divu executes DIVU.W <ea>,Dn: Dn / <ea>, quotient in the low word, the
// remainder in the high word. Returns the extra cycle cost beyond the
// instruction's fixed dispatch overhead.
func (c *CPU) divu(dn int, divisor uint16) int {
	dividend := c.D[dn]
	extra := divuCycles(dividend, divisor)
	if divisor == 0 {
		c.raiseZeroDivide()
		return extra
	}
	quotient := dividend / uint32(divisor)
	remainder := dividend % uint32(divisor)
	if quotient > 0xFFFF {
		c.SR.SetBit(BitV, true)
		return extra
	}
	c.D[dn] = remainder<<16 | quotient&0xFFFF
	c.SR.SetBit(BitV, false)
	c.SR.SetBit(BitC, false)
	c.SR.SetBit(BitN, quotient&0x8000 != 0)
	c.SR.SetBit(BitZ, quotient == 0)
	return extra
}

// divs executes DIVS.W <ea>,Dn with signed operands.
func (c *CPU) divs(dn int, divisor int16) int {
	dividend := int32(c.D[dn])
	extra := divsCycles(dividend, divisor)
	if divisor == 0 {
		c.raiseZeroDivide()
		return extra
	}
	quotient := dividend / int32(divisor)
	remainder := dividend % int32(divisor)
	if quotient > 0x7FFF || quotient < -0x8000 {
		c.SR.SetBit(BitV, true)
		return extra
	}
	c.D[dn] = uint32(remainder)<<16 | uint32(quotient)&0xFFFF
	c.SR.SetBit(BitV, false)
	c.SR.SetBit(BitC, false)
	c.SR.SetBit(BitN, quotient < 0)
	c.SR.SetBit(BitZ, quotient == 0)
	return extra
}
