package c64

// cia is a minimal CIA1: just enough of ports A/B to drive keyboard matrix
// scanning (port A selects rows, port B reads columns), grounded on
// original_source/crates/emu-c64/src/keyboard.rs's scan() contract. Timers,
// TOD clock and the serial port are out of scope for this core.
type cia struct {
	kb      *keyboard
	portA   byte // row select, active low
}

func newCIA(kb *keyboard) *cia {
	return &cia{kb: kb, portA: 0xFF}
}

func (c *cia) read(reg byte) byte {
	switch reg {
	case 0x00: // Port A (DC00)
		return c.portA
	case 0x01: // Port B (DC01)
		return c.kb.scan(c.portA)
	default:
		return 0xFF
	}
}

func (c *cia) write(reg byte, value byte) {
	switch reg {
	case 0x00:
		c.portA = value
	}
}
