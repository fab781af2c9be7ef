package ula

import "github.com/n-ulricksen/retrocore/bus"

// Query implements bus.Observable for debugging/inspection.
func (u *ULA) Query(path string) (bus.Value, bool) {
	switch path {
	case "line":
		return bus.U16(u.Line), true
	case "line_tstate":
		return bus.U16(u.LineTstate), true
	case "border":
		return bus.U8(u.BorderColour), true
	case "int_active":
		return bus.Bool(u.IntActive()), true
	}
	return nil, false
}

// QueryPaths lists every path Query accepts.
func (u *ULA) QueryPaths() []string {
	return []string{"line", "line_tstate", "border", "int_active"}
}
