package m68k

import "github.com/n-ulricksen/retrocore/bus"

// Query implements bus.Observable for debugging/inspection.
func (c *CPU) Query(path string) (bus.Value, bool) {
	switch path {
	case "pc":
		return bus.U32(c.PC), true
	case "sr":
		return bus.U16(c.SR.Value()), true
	case "usp":
		return bus.U32(c.USP), true
	case "ssp":
		return bus.U32(c.SSP), true
	case "flags.n":
		return bus.Bool(c.SR.Bit(BitN)), true
	case "flags.z":
		return bus.Bool(c.SR.Bit(BitZ)), true
	case "flags.v":
		return bus.Bool(c.SR.Bit(BitV)), true
	case "flags.c":
		return bus.Bool(c.SR.Bit(BitC)), true
	case "flags.x":
		return bus.Bool(c.SR.Bit(BitX)), true
	case "supervisor":
		return bus.Bool(c.SR.Supervisor()), true
	}
	for i := 0; i < 8; i++ {
		if path == dRegPath(i) {
			return bus.U32(c.D[i]), true
		}
		if path == aRegPath(i) {
			return bus.U32(c.AReg(i)), true
		}
	}
	return nil, false
}

func dRegPath(n int) string { return "d" + string(rune('0'+n)) }
func aRegPath(n int) string { return "a" + string(rune('0'+n)) }

// QueryPaths lists every path Query accepts.
func (c *CPU) QueryPaths() []string {
	paths := []string{"pc", "sr", "usp", "ssp", "flags.n", "flags.z", "flags.v", "flags.c", "flags.x", "supervisor"}
	for i := 0; i < 8; i++ {
		paths = append(paths, dRegPath(i), aRegPath(i))
	}
	return paths
}

var _ bus.Observable = (*CPU)(nil)
