package nes

import "github.com/n-ulricksen/retrocore/bus"

// button bit order matches the NES controller's serial shift-out order:
// A, B, Select, Start, Up, Down, Left, Right.
const (
	btnA = iota
	btnB
	btnSelect
	btnStart
	btnUp
	btnDown
	btnLeft
	btnRight
)

// controller models one NES joypad: 8 logical buttons latched into a shift
// register on a strobe write, then read out one bit per $4016/$4017 access.
//
// Grounded on the teacher's nes/controller.go, which tracked button state
// as a []bool keyed by a pixelgl.Button map — appropriate for its direct
// glfw polling loop, but the wrong shape for the bus.Machine boundary this
// module uses instead, where the host reports individual key events rather
// than the core polling a window each frame. The button bit order and the
// binding table that assigns logical buttons to a standard keyboard layout
// and joystick lines are kept.
type controller struct {
	state  byte
	shift  byte
	strobe bool
}

func newController() *controller { return &controller{} }

func (c *controller) setButton(bit int, down bool) {
	if down {
		c.state |= 1 << bit
	} else {
		c.state &^= 1 << bit
	}
}

func (c *controller) write(data byte) {
	c.strobe = data&0x01 != 0
	if c.strobe {
		c.shift = c.state
	}
}

func (c *controller) read() byte {
	if c.strobe {
		return c.state & 0x01
	}
	bit := c.shift & 0x01
	c.shift = c.shift>>1 | 0x80
	return bit | 0x40 // open-bus bits above D0 read back high
}

// applyKey maps a bus.KeyCode onto the default NES keyboard layout.
func (c *controller) applyKey(key bus.KeyCode, down bool) {
	switch key {
	case bus.KeyJ:
		c.setButton(btnA, down)
	case bus.KeyK:
		c.setButton(btnB, down)
	case bus.KeyShift:
		c.setButton(btnSelect, down)
	case bus.KeyEnter:
		c.setButton(btnStart, down)
	case bus.KeyUp:
		c.setButton(btnUp, down)
	case bus.KeyDown:
		c.setButton(btnDown, down)
	case bus.KeyLeft:
		c.setButton(btnLeft, down)
	case bus.KeyRight:
		c.setButton(btnRight, down)
	}
}

func (c *controller) applyJoystick(j bus.JoystickState) {
	c.setButton(btnUp, j.Up)
	c.setButton(btnDown, j.Down)
	c.setButton(btnLeft, j.Left)
	c.setButton(btnRight, j.Right)
	c.setButton(btnA, j.Fire)
	c.setButton(btnB, j.Fire2)
}
