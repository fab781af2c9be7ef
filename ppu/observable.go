package ppu

import "github.com/n-ulricksen/retrocore/bus"

// Query implements bus.Observable for debugging/inspection.
func (p *PPU) Query(path string) (bus.Value, bool) {
	switch path {
	case "scanline":
		return bus.U16(uint16(p.Scanline)), true
	case "dot":
		return bus.U16(uint16(p.Dot)), true
	case "ctrl":
		return bus.U8(p.ctrl), true
	case "mask":
		return bus.U8(p.mask), true
	case "status":
		return bus.U8(p.status), true
	case "v":
		return bus.U16(p.vramAddr.value()), true
	case "t":
		return bus.U16(p.tramAddr.value()), true
	}
	return nil, false
}

// QueryPaths lists every path Query accepts.
func (p *PPU) QueryPaths() []string {
	return []string{"scanline", "dot", "ctrl", "mask", "status", "v", "t"}
}
