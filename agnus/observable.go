package agnus

import "github.com/n-ulricksen/retrocore/bus"

// Query implements bus.Observable for debugging/inspection.
func (a *Agnus) Query(path string) (bus.Value, bool) {
	switch path {
	case "vpos":
		return bus.U16(a.Vpos), true
	case "hpos":
		return bus.U16(a.Hpos), true
	case "lof":
		return bus.Bool(a.LongFrame), true
	case "dmaconr":
		return bus.U16(a.DMACONR()), true
	case "vposr":
		return bus.U16(a.VPOSR()), true
	case "vhposr":
		return bus.U16(a.VHPOSR()), true
	case "slot":
		return bus.Str(a.CurrentSlot().String()), true
	}
	return nil, false
}

// QueryPaths lists every path Query accepts.
func (a *Agnus) QueryPaths() []string {
	return []string{"vpos", "hpos", "lof", "dmaconr", "vposr", "vhposr", "slot"}
}
