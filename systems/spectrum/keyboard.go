package spectrum

import "github.com/n-ulricksen/retrocore/bus"

// The 48K keyboard is wired as an 8x5 matrix; IN A,($FE) selects one or
// more half-rows via the high byte of the port address (a cleared address
// bit selects that row) and returns their 5 keys OR'd together in bits
// 0-4, active low.
type keyboard struct {
	rows [8]byte // each row's 5 key bits, active low (1 = not pressed)
}

func newKeyboard() *keyboard {
	k := &keyboard{}
	for i := range k.rows {
		k.rows[i] = 0x1F
	}
	return k
}

// rowBit identifies a key's (row index, bit index) position in the matrix.
type rowBit struct {
	row, bit int
}

var keyMatrix = map[bus.KeyCode]rowBit{
	bus.KeyShift: {0, 0}, bus.KeyZ: {0, 1}, bus.KeyX: {0, 2}, bus.KeyC: {0, 3}, bus.KeyV: {0, 4},
	bus.KeyA: {1, 0}, bus.KeyS: {1, 1}, bus.KeyD: {1, 2}, bus.KeyF: {1, 3}, bus.KeyG: {1, 4},
	bus.KeyQ: {2, 0}, bus.KeyW: {2, 1}, bus.KeyE: {2, 2}, bus.KeyR: {2, 3}, bus.KeyT: {2, 4},
	bus.Key1: {3, 0}, bus.Key2: {3, 1}, bus.Key3: {3, 2}, bus.Key4: {3, 3}, bus.Key5: {3, 4},
	bus.Key0: {4, 0}, bus.Key9: {4, 1}, bus.Key8: {4, 2}, bus.Key7: {4, 3}, bus.Key6: {4, 4},
	bus.KeyP: {5, 0}, bus.KeyO: {5, 1}, bus.KeyI: {5, 2}, bus.KeyU: {5, 3}, bus.KeyY: {5, 4},
	bus.KeyEnter: {6, 0}, bus.KeyL: {6, 1}, bus.KeyK: {6, 2}, bus.KeyJ: {6, 3}, bus.KeyH: {6, 4},
	bus.KeySpace: {7, 0}, bus.KeySymbolShift: {7, 1}, bus.KeyM: {7, 2}, bus.KeyN: {7, 3}, bus.KeyB: {7, 4},
}

func (k *keyboard) setKey(key bus.KeyCode, down bool) {
	rb, ok := keyMatrix[key]
	if !ok {
		return
	}
	if down {
		k.rows[rb.row] &^= 1 << rb.bit
	} else {
		k.rows[rb.row] |= 1 << rb.bit
	}
}

// kempstonByte maps a Kempston-style joystick onto bits 0-4 (right, left,
// down, up, fire) of a dedicated port ($1F) rather than the keyboard matrix;
// Kempston bits are active high, unlike the keyboard's active-low rows.
func kempstonByte(j bus.JoystickState) byte {
	var b byte
	if j.Right {
		b |= 1 << 0
	}
	if j.Left {
		b |= 1 << 1
	}
	if j.Down {
		b |= 1 << 2
	}
	if j.Up {
		b |= 1 << 3
	}
	if j.Fire {
		b |= 1 << 4
	}
	return b
}

// read returns the 5 low bits for the half-rows selected by the port's
// high byte, OR'd together, with bits 5-7 set (unused lines read high).
func (k *keyboard) read(highByte byte) byte {
	result := byte(0x1F)
	for row := 0; row < 8; row++ {
		if highByte&(1<<row) == 0 {
			result &= k.rows[row]
		}
	}
	return result | 0xE0
}
