package m68k

// groupBranch covers BRA/BSR/Bcc: an 8-bit displacement in the opcode,
// extended to a 16-bit extension word when that byte is zero.
func (c *CPU) groupBranch(opcode uint16) int {
	cond := (opcode >> 8) & 0xF
	disp8 := int8(opcode)
	// PC has already advanced past IR and IRC by the time Execute runs, so
	// the branch's base address (the word after the opcode) is PC-2, taken
	// before any 16-bit displacement word is consumed.
	base := c.PC - 2
	var disp int32
	if disp8 == 0 {
		disp = int32(int16(c.nextExtWord()))
	} else {
		disp = int32(disp8)
	}
	target := uint32(int64(base) + int64(disp))
	cycles := 10

	if cond == 1 { // BSR
		sp := c.A7() - 4
		c.writeLong(sp, c.PC-2, FCData) // return address: the word in IRC
		c.SetA7(sp)
		c.PC = target
		c.refillPrefetch()
		return 18
	}

	if cond == 0 || c.condition(cond) { // BRA or Bcc taken
		c.PC = target
		c.refillPrefetch()
		return cycles
	}
	if disp8 == 0 {
		return 12
	}
	return 8
}
