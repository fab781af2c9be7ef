package m68k

// Size is an operand width for data-manipulation instructions.
type Size int

const (
	SizeByte Size = 1
	SizeWord Size = 2
	SizeLong Size = 4
)

func (s Size) mask() uint32 {
	switch s {
	case SizeByte:
		return 0xFF
	case SizeWord:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}

func (s Size) signBit() uint32 {
	switch s {
	case SizeByte:
		return 0x80
	case SizeWord:
		return 0x8000
	default:
		return 0x80000000
	}
}

func maskTo(v uint32, s Size) uint32 { return v & s.mask() }

func isNegative(v uint32, s Size) bool { return v&s.signBit() != 0 }

// setNZ sets N and Z from a masked result, leaving C/V/X untouched.
func (c *CPU) setNZ(result uint32, s Size) {
	c.SR.SetBit(BitN, isNegative(result, s))
	c.SR.SetBit(BitZ, maskTo(result, s) == 0)
}

// add computes a+b+carryIn (carryIn only used by ADDX), sets C/V/X/N/Z per
// the classic sign-agreement rule, and returns the masked result. When
// extendMode is true (ADDX/SUBX), Z is cleared on a nonzero result but
// never set on a zero one - it is a running AND across multi-precision
// chains.
func (c *CPU) add(a, b uint32, carryIn bool, s Size, extendMode bool) uint32 {
	var cin uint32
	if carryIn {
		cin = 1
	}
	full := uint64(maskTo(a, s)) + uint64(maskTo(b, s)) + uint64(cin)
	result := uint32(full) & s.mask()

	carry := full > uint64(s.mask())
	overflow := (a^b^s.signBit())&(b^result)&s.signBit() != 0

	c.SR.SetBit(BitC, carry)
	c.SR.SetBit(BitX, carry)
	c.SR.SetBit(BitV, overflow)
	c.SR.SetBit(BitN, isNegative(result, s))
	if extendMode {
		if result != 0 {
			c.SR.SetBit(BitZ, false)
		}
	} else {
		c.SR.SetBit(BitZ, result == 0)
	}
	return result
}

// sub computes a-b-borrowIn, mirroring add's flag rules for subtraction.
func (c *CPU) sub(a, b uint32, borrowIn bool, s Size, extendMode bool) uint32 {
	var bin uint64
	if borrowIn {
		bin = 1
	}
	am, bm := uint64(maskTo(a, s)), uint64(maskTo(b, s))
	full := int64(am) - int64(bm) - int64(bin)
	result := uint32(full) & s.mask()

	borrow := full < 0
	overflow := (a^b)&(a^result)&s.signBit() != 0

	c.SR.SetBit(BitC, borrow)
	c.SR.SetBit(BitX, borrow)
	c.SR.SetBit(BitV, overflow)
	c.SR.SetBit(BitN, isNegative(result, s))
	if extendMode {
		if result != 0 {
			c.SR.SetBit(BitZ, false)
		}
	} else {
		c.SR.SetBit(BitZ, result == 0)
	}
	return result
}

func (c *CPU) cmp(a, b uint32, s Size) {
	am, bm := uint64(maskTo(a, s)), uint64(maskTo(b, s))
	full := int64(am) - int64(bm)
	result := uint32(full) & s.mask()
	overflow := (a^b)&(a^result)&s.signBit() != 0

	c.SR.SetBit(BitC, full < 0)
	c.SR.SetBit(BitV, overflow)
	c.SR.SetBit(BitN, isNegative(result, s))
	c.SR.SetBit(BitZ, result == 0)
}

func (c *CPU) logicFlags(result uint32, s Size) {
	c.SR.SetBit(BitN, isNegative(result, s))
	c.SR.SetBit(BitZ, maskTo(result, s) == 0)
	c.SR.SetBit(BitV, false)
	c.SR.SetBit(BitC, false)
}

func signExtend(v uint32, s Size) int64 {
	switch s {
	case SizeByte:
		return int64(int8(v))
	case SizeWord:
		return int64(int16(v))
	default:
		return int64(int32(v))
	}
}
