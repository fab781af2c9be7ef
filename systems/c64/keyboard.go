package c64

import "github.com/n-ulricksen/retrocore/bus"

// keyboard is the C64's 8x8 matrix scanned via CIA1 ports A (row select,
// active low) and B (column result, active low), grounded on
// original_source/crates/emu-c64/src/keyboard.rs's KeyboardMatrix.
type keyboard struct {
	rows [8]byte // bit c set = key (row, c) pressed
}

func newKeyboard() *keyboard { return &keyboard{} }

type matrixPos struct{ row, col byte }

// keyMatrix is a representative subset of the full 64-key layout (letters,
// digits, space, return, shifts), grounded on keyboard_map.rs's host-key to
// C64Key mapping shape but targeting bus.KeyCode directly instead of an
// intermediate enum.
var keyMatrix = map[bus.KeyCode]matrixPos{
	bus.KeyA: {1, 2}, bus.KeyB: {3, 4}, bus.KeyC: {4, 2}, bus.KeyD: {2, 2},
	bus.KeyE: {1, 6}, bus.KeyF: {2, 5}, bus.KeyG: {3, 2}, bus.KeyH: {3, 5},
	bus.KeyI: {4, 1}, bus.KeyJ: {4, 2}, bus.KeyK: {4, 5}, bus.KeyL: {5, 2},
	bus.KeyM: {4, 4}, bus.KeyN: {4, 7}, bus.KeyO: {4, 6}, bus.KeyP: {5, 1},
	bus.KeyQ: {7, 6}, bus.KeyR: {2, 1}, bus.KeyS: {1, 5}, bus.KeyT: {2, 6},
	bus.KeyU: {3, 6}, bus.KeyV: {3, 7}, bus.KeyW: {1, 1}, bus.KeyX: {2, 7},
	bus.KeyY: {3, 1}, bus.KeyZ: {1, 4},
	bus.Key0: {4, 3}, bus.Key1: {7, 0}, bus.Key2: {7, 3}, bus.Key3: {1, 0},
	bus.Key4: {1, 3}, bus.Key5: {2, 0}, bus.Key6: {2, 3}, bus.Key7: {3, 0},
	bus.Key8: {3, 3}, bus.Key9: {4, 0},
	bus.KeySpace: {7, 4}, bus.KeyEnter: {0, 1}, bus.KeyShift: {1, 7},
}

func (k *keyboard) setKey(key bus.KeyCode, down bool) {
	pos, ok := keyMatrix[key]
	if !ok {
		return
	}
	if down {
		k.rows[pos.row] |= 1 << pos.col
	} else {
		k.rows[pos.row] &^= 1 << pos.col
	}
}

// scan returns active-low column data for the rows selected by rowMask
// (itself active low, as written to CIA1 port A).
func (k *keyboard) scan(rowMask byte) byte {
	var result byte
	for row := 0; row < 8; row++ {
		if rowMask&(1<<row) == 0 {
			result |= k.rows[row]
		}
	}
	return ^result
}
