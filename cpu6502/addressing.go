package cpu6502

// Addressing mode functions. Each returns 1 if a page boundary was crossed
// (the condition under which some instructions need an extra cycle) else 0.

func amIMP(cpu *CPU) byte {
	cpu.isImpliedAddr = true
	cpu.Fetched = cpu.A
	return 0
}

func amIMM(cpu *CPU) byte {
	cpu.AddrAbs = cpu.Pc
	cpu.Pc++
	return 0
}

func amREL(cpu *CPU) byte {
	addr := cpu.read(cpu.Pc)
	cpu.Pc++
	cpu.AddrRel = uint16(addr)
	if cpu.AddrRel&0x80 != 0 {
		cpu.AddrRel |= 0xFF00
	}
	return 0
}

func amZP0(cpu *CPU) byte {
	lo := cpu.read(cpu.Pc)
	cpu.Pc++
	cpu.AddrAbs = uint16(lo)
	return 0
}

func amZPX(cpu *CPU) byte {
	cpu.AddrAbs = uint16(cpu.read(cpu.Pc)+cpu.X) & 0x00FF
	cpu.Pc++
	return 0
}

func amZPY(cpu *CPU) byte {
	cpu.AddrAbs = uint16(cpu.read(cpu.Pc)+cpu.Y) & 0x00FF
	cpu.Pc++
	return 0
}

func amABS(cpu *CPU) byte {
	cpu.AddrAbs = cpu.readWord(cpu.Pc)
	cpu.Pc += 2
	return 0
}

func amABX(cpu *CPU) byte {
	addr := cpu.readWord(cpu.Pc)
	cpu.Pc += 2
	cpu.AddrAbs = addr + uint16(cpu.X)
	if cpu.AddrAbs&0xFF00 != addr&0xFF00 {
		return 1
	}
	return 0
}

func amABY(cpu *CPU) byte {
	addr := cpu.readWord(cpu.Pc)
	cpu.Pc += 2
	cpu.AddrAbs = addr + uint16(cpu.Y)
	if cpu.AddrAbs&0xFF00 != addr&0xFF00 {
		return 1
	}
	return 0
}

// amIND reproduces the NMOS 6502's page-boundary indirect-jump bug: if the
// low byte of the pointer is 0xFF, the high byte is fetched from the start
// of the same page instead of the next page.
func amIND(cpu *CPU) byte {
	ptr := cpu.readWord(cpu.Pc)
	cpu.Pc += 2

	var lo, hi byte
	if cpu.Variant == NMOS6502 && ptr&0x00FF == 0x00FF {
		lo = cpu.read(ptr)
		hi = cpu.read(ptr & 0xFF00)
	} else {
		lo = cpu.read(ptr)
		hi = cpu.read(ptr + 1)
	}
	cpu.AddrAbs = uint16(hi)<<8 | uint16(lo)
	return 0
}

func amIZX(cpu *CPU) byte {
	t := uint16(cpu.read(cpu.Pc)+cpu.X) & 0x00FF
	cpu.Pc++
	lo := cpu.read(t)
	hi := cpu.read((t + 1) & 0x00FF)
	cpu.AddrAbs = uint16(hi)<<8 | uint16(lo)
	return 0
}

func amIZY(cpu *CPU) byte {
	t := uint16(cpu.read(cpu.Pc)) & 0x00FF
	cpu.Pc++
	lo := cpu.read(t)
	hi := cpu.read((t + 1) & 0x00FF)
	base := uint16(hi)<<8 | uint16(lo)
	cpu.AddrAbs = base + uint16(cpu.Y)
	if cpu.AddrAbs&0xFF00 != base&0xFF00 {
		return 1
	}
	return 0
}
