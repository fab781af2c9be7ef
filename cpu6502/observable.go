package cpu6502

import "github.com/n-ulricksen/retrocore/bus"

// Query implements bus.Observable for debugging/inspection.
func (c *CPU) Query(path string) (bus.Value, bool) {
	switch path {
	case "pc":
		return bus.U16(c.Pc), true
	case "sp":
		return bus.U8(c.Sp), true
	case "a":
		return bus.U8(c.A), true
	case "x":
		return bus.U8(c.X), true
	case "y":
		return bus.U8(c.Y), true
	case "status":
		return bus.U8(c.Status), true
	case "flags.c":
		return bus.Bool(c.Status&byte(FlagC) != 0), true
	case "flags.z":
		return bus.Bool(c.Status&byte(FlagZ) != 0), true
	case "flags.i":
		return bus.Bool(c.Status&byte(FlagI) != 0), true
	case "flags.d":
		return bus.Bool(c.Status&byte(FlagD) != 0), true
	case "flags.v":
		return bus.Bool(c.Status&byte(FlagV) != 0), true
	case "flags.n":
		return bus.Bool(c.Status&byte(FlagN) != 0), true
	case "opcode":
		return bus.U8(c.Opcode), true
	case "cycles":
		return bus.U64(c.CycleCount), true
	case "halted":
		return bus.Bool(c.halted), true
	default:
		return nil, false
	}
}

// QueryPaths lists every path Query accepts.
func (c *CPU) QueryPaths() []string {
	return []string{
		"pc", "sp", "a", "x", "y", "status",
		"flags.c", "flags.z", "flags.i", "flags.d", "flags.v", "flags.n",
		"opcode", "cycles", "halted",
	}
}

var _ bus.Observable = (*CPU)(nil)
