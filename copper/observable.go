package copper

import "github.com/n-ulricksen/retrocore/bus"

func (c *Copper) stateName() string {
	switch c.State {
	case StateIdle:
		return "idle"
	case StateFetchIR1:
		return "fetch_ir1"
	case StateFetchIR2:
		return "fetch_ir2"
	case StateWaitBeam:
		return "wait_beam"
	default:
		return "unknown"
	}
}

// Query implements bus.Observable for debugging/inspection.
func (c *Copper) Query(path string) (bus.Value, bool) {
	switch path {
	case "state":
		return bus.Str(c.stateName()), true
	case "pc":
		return bus.U32(c.PC), true
	case "ir1":
		return bus.U16(c.IR1), true
	case "ir2":
		return bus.U16(c.IR2), true
	case "cop1lc":
		return bus.U32(c.COP1LC), true
	case "cop2lc":
		return bus.U32(c.COP2LC), true
	case "danger":
		return bus.Bool(c.Danger), true
	}
	return nil, false
}

// QueryPaths lists every path Query accepts.
func (c *Copper) QueryPaths() []string {
	return []string{"state", "pc", "ir1", "ir2", "cop1lc", "cop2lc", "danger"}
}
