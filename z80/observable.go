package z80

import "github.com/n-ulricksen/retrocore/bus"

// Query implements bus.Observable for debugging/inspection.
func (c *CPU) Query(path string) (bus.Value, bool) {
	switch path {
	case "pc":
		return bus.U16(c.PC), true
	case "sp":
		return bus.U16(c.SP), true
	case "a":
		return bus.U8(c.A), true
	case "f":
		return bus.U8(c.F), true
	case "bc":
		return bus.U16(c.BC()), true
	case "de":
		return bus.U16(c.DE()), true
	case "hl":
		return bus.U16(c.HL()), true
	case "ix":
		return bus.U16(c.IX), true
	case "iy":
		return bus.U16(c.IY), true
	case "i":
		return bus.U8(c.I), true
	case "r":
		return bus.U8(c.R), true
	case "iff1":
		return bus.Bool(c.IFF1), true
	case "iff2":
		return bus.Bool(c.IFF2), true
	case "im":
		return bus.U8(c.IM), true
	case "flags.s":
		return bus.Bool(c.GetFlag(FlagS)), true
	case "flags.z":
		return bus.Bool(c.GetFlag(FlagZ)), true
	case "flags.h":
		return bus.Bool(c.GetFlag(FlagH)), true
	case "flags.pv":
		return bus.Bool(c.GetFlag(FlagPV)), true
	case "flags.n":
		return bus.Bool(c.GetFlag(FlagN)), true
	case "flags.c":
		return bus.Bool(c.GetFlag(FlagC)), true
	case "halted":
		return bus.Bool(c.Halted), true
	default:
		return nil, false
	}
}

// QueryPaths lists every path Query accepts.
func (c *CPU) QueryPaths() []string {
	return []string{
		"pc", "sp", "a", "f", "bc", "de", "hl", "ix", "iy", "i", "r",
		"iff1", "iff2", "im", "flags.s", "flags.z", "flags.h", "flags.pv",
		"flags.n", "flags.c", "halted",
	}
}

var _ bus.Observable = (*CPU)(nil)
