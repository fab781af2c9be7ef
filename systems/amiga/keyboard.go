package amiga

import "github.com/n-ulricksen/retrocore/bus"

// keyState is the Amiga keyboard's internal power-up/transmit state
// machine. The real keyboard contains its own 6500/1 microprocessor that
// scans its matrix and shifts bytes serially to CIA-A; this models that
// protocol rather than a bare matrix, grounded on
// original_source/crates/peripheral-amiga-keyboard/src/lib.rs.
type keyState int

const (
	statePowerUpDelay keyState = iota
	stateSendInitPowerUp
	stateWaitHandshakeInit
	stateSendTermPowerUp
	stateWaitHandshakeTerm
	stateIdle
	stateWaitHandshakeKey
)

const (
	powerUpDelayTicks     = 150_000
	byteIntervalTicks     = 700
	handshakeTimeoutTicks = 100_000
)

// AmigaKeyboard is the serial keyboard controller: a power-up handshake
// followed by a FIFO of key-down/key-up bytes shifted out one per
// byteIntervalTicks E-clock ticks, each requiring a host handshake (a CIA-A
// SDR read) before the next byte sends.
type AmigaKeyboard struct {
	state keyState
	timer int
	queue []byte
}

// Tick advances the keyboard by one E-clock tick. ok is true when a byte
// (already bit-rotated for transmission) is ready to load into CIA-A's SDR.
func (k *AmigaKeyboard) Tick() (byte, bool) {
	k.timer++
	switch k.state {
	case statePowerUpDelay:
		if k.timer >= powerUpDelayTicks {
			k.state = stateSendInitPowerUp
			k.timer = 0
		}
		return 0, false
	case stateSendInitPowerUp:
		k.state = stateWaitHandshakeInit
		k.timer = 0
		return rotateByte(0xFD), true
	case stateWaitHandshakeInit:
		if k.timer >= handshakeTimeoutTicks {
			k.state = stateSendInitPowerUp
			k.timer = 0
		}
		return 0, false
	case stateSendTermPowerUp:
		k.state = stateWaitHandshakeTerm
		k.timer = 0
		return rotateByte(0xFE), true
	case stateWaitHandshakeTerm:
		if k.timer >= handshakeTimeoutTicks {
			k.state = stateSendTermPowerUp
			k.timer = 0
		}
		return 0, false
	case stateIdle:
		if k.timer >= byteIntervalTicks && len(k.queue) > 0 {
			b := k.queue[0]
			k.queue = k.queue[1:]
			k.state = stateWaitHandshakeKey
			k.timer = 0
			return rotateByte(b), true
		}
		return 0, false
	case stateWaitHandshakeKey:
		if k.timer >= handshakeTimeoutTicks {
			k.state = stateIdle
			k.timer = 0
		}
		return 0, false
	default:
		return 0, false
	}
}

// Handshake is called when the host reads CIA-A's SDR, acknowledging the
// last transmitted byte.
func (k *AmigaKeyboard) Handshake() {
	switch k.state {
	case stateWaitHandshakeInit:
		k.state = stateSendTermPowerUp
		k.timer = 0
	case stateWaitHandshakeTerm, stateWaitHandshakeKey:
		k.state = stateIdle
		k.timer = 0
	}
}

// KeyEvent queues a raw Amiga keycode: bit 7 clear for key-down, set for
// key-up.
func (k *AmigaKeyboard) KeyEvent(code byte, pressed bool) {
	if pressed {
		k.queue = append(k.queue, code&0x7F)
	} else {
		k.queue = append(k.queue, code|0x80)
	}
}

// rotateByte applies the keyboard protocol's one-bit left rotation; the ROM
// interrupt handler rotates right to recover the original keycode.
func rotateByte(b byte) byte { return b<<1 | b>>7 }

// amigaKeycode maps the core's logical KeyCode to the raw (pre-rotation)
// Amiga keyboard matrix code. Only the keys spec.md's KeyCode enum names
// are covered (letters, digits, modifiers, arrows, function keys,
// space/enter) — the full 0x00-0x67 matrix is a file-format-style mapping
// table out of this core's scope per spec.md §1.
var amigaKeycode = map[bus.KeyCode]byte{
	bus.Key1: 0x01, bus.Key2: 0x02, bus.Key3: 0x03, bus.Key4: 0x04, bus.Key5: 0x05,
	bus.Key6: 0x06, bus.Key7: 0x07, bus.Key8: 0x08, bus.Key9: 0x09, bus.Key0: 0x0A,
	bus.KeyQ: 0x10, bus.KeyW: 0x11, bus.KeyE: 0x12, bus.KeyR: 0x13, bus.KeyT: 0x14,
	bus.KeyY: 0x15, bus.KeyU: 0x16, bus.KeyI: 0x17, bus.KeyO: 0x18, bus.KeyP: 0x19,
	bus.KeyA: 0x20, bus.KeyS: 0x21, bus.KeyD: 0x22, bus.KeyF: 0x23, bus.KeyG: 0x24,
	bus.KeyH: 0x25, bus.KeyJ: 0x26, bus.KeyK: 0x27, bus.KeyL: 0x28,
	bus.KeyZ: 0x31, bus.KeyX: 0x32, bus.KeyC: 0x33, bus.KeyV: 0x34, bus.KeyB: 0x35,
	bus.KeyN: 0x36, bus.KeyM: 0x37,
	bus.KeySpace: 0x40, bus.KeyBackspace: 0x41, bus.KeyTab: 0x42, bus.KeyEnter: 0x44,
	bus.KeyEscape: 0x45, bus.KeyShift: 0x60, bus.KeyControl: 0x63,
	bus.KeyUp: 0x4C, bus.KeyDown: 0x4D, bus.KeyRight: 0x4E, bus.KeyLeft: 0x4F,
	bus.KeyF1: 0x50, bus.KeyF2: 0x51, bus.KeyF3: 0x52, bus.KeyF4: 0x53, bus.KeyF5: 0x54,
	bus.KeyF6: 0x55, bus.KeyF7: 0x56, bus.KeyF8: 0x57, bus.KeyF9: 0x58, bus.KeyF10: 0x59,
}
