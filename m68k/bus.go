package m68k

import "github.com/n-ulricksen/retrocore/bus"

// FunctionCode wraps bus.FunctionCode for local readability.
type FunctionCode = bus.FunctionCode

func (c *CPU) fc(kind FunctionCodeKind) FunctionCode {
	return bus.FunctionCodeFromFlags(c.SR.Supervisor(), kind == FCProgram)
}

// readWord performs a word read, charging wait cycles against the current
// bus cycle and raising a bus-error exception if the bus reports a fault.
func (c *CPU) readWord(addr uint32, kind FunctionCodeKind) uint16 {
	fc := c.fc(kind)
	if addr&1 != 0 {
		c.raiseAddressError(addr, fc, true)
		return 0
	}
	if c.Bus.BusError(addr, fc) {
		c.raiseBusError(addr, fc, true)
		return 0
	}
	res := c.Bus.ReadWord(addr, fc)
	c.extraWait += int(res.WaitCycles)
	return res.Data
}

func (c *CPU) writeWord(addr uint32, v uint16, kind FunctionCodeKind) {
	fc := c.fc(kind)
	if addr&1 != 0 {
		c.raiseAddressError(addr, fc, false)
		return
	}
	if c.Bus.BusError(addr, fc) {
		c.raiseBusError(addr, fc, false)
		return
	}
	res := c.Bus.WriteWord(addr, v, fc)
	c.extraWait += int(res.WaitCycles)
}

func (c *CPU) readByte(addr uint32, kind FunctionCodeKind) uint8 {
	fc := c.fc(kind)
	if c.Bus.BusError(addr, fc) {
		c.raiseBusError(addr, fc, true)
		return 0
	}
	res := c.Bus.ReadByte(addr, fc)
	c.extraWait += int(res.WaitCycles)
	return uint8(res.Data)
}

func (c *CPU) writeByte(addr uint32, v uint8, kind FunctionCodeKind) {
	fc := c.fc(kind)
	if c.Bus.BusError(addr, fc) {
		c.raiseBusError(addr, fc, false)
		return
	}
	res := c.Bus.WriteByte(addr, v, fc)
	c.extraWait += int(res.WaitCycles)
}

func (c *CPU) readLong(addr uint32, kind FunctionCodeKind) uint32 {
	hi := c.readWord(addr, kind)
	lo := c.readWord(addr+2, kind)
	return uint32(hi)<<16 | uint32(lo)
}

func (c *CPU) writeLong(addr uint32, v uint32, kind FunctionCodeKind) {
	c.writeWord(addr, uint16(v>>16), kind)
	c.writeWord(addr+2, uint16(v), kind)
}
