package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/n-ulricksen/retrocore/bus"
)

// hostKeys maps physical keyboard keys to the core's logical bus.KeyCode
// enum; every systems/* package does its own translation from there onto
// its hardware matrix (see systems/nes/controller.go, systems/spectrum/
// keyboard.go, systems/amiga/keyboard.go), so this table only needs to
// cover the keys bus.KeyCode names, once, for every system.
var hostKeys = map[pixelgl.Button]bus.KeyCode{
	pixelgl.KeyA: bus.KeyA, pixelgl.KeyB: bus.KeyB, pixelgl.KeyC: bus.KeyC,
	pixelgl.KeyD: bus.KeyD, pixelgl.KeyE: bus.KeyE, pixelgl.KeyF: bus.KeyF,
	pixelgl.KeyG: bus.KeyG, pixelgl.KeyH: bus.KeyH, pixelgl.KeyI: bus.KeyI,
	pixelgl.KeyJ: bus.KeyJ, pixelgl.KeyK: bus.KeyK, pixelgl.KeyL: bus.KeyL,
	pixelgl.KeyM: bus.KeyM, pixelgl.KeyN: bus.KeyN, pixelgl.KeyO: bus.KeyO,
	pixelgl.KeyP: bus.KeyP, pixelgl.KeyQ: bus.KeyQ, pixelgl.KeyR: bus.KeyR,
	pixelgl.KeyS: bus.KeyS, pixelgl.KeyT: bus.KeyT, pixelgl.KeyU: bus.KeyU,
	pixelgl.KeyV: bus.KeyV, pixelgl.KeyW: bus.KeyW, pixelgl.KeyX: bus.KeyX,
	pixelgl.KeyY: bus.KeyY, pixelgl.KeyZ: bus.KeyZ,
	pixelgl.Key0: bus.Key0, pixelgl.Key1: bus.Key1, pixelgl.Key2: bus.Key2,
	pixelgl.Key3: bus.Key3, pixelgl.Key4: bus.Key4, pixelgl.Key5: bus.Key5,
	pixelgl.Key6: bus.Key6, pixelgl.Key7: bus.Key7, pixelgl.Key8: bus.Key8,
	pixelgl.Key9: bus.Key9,
	pixelgl.KeySpace: bus.KeySpace, pixelgl.KeyEnter: bus.KeyEnter,
	pixelgl.KeyLeftShift: bus.KeyShift, pixelgl.KeyRightShift: bus.KeyShift,
	pixelgl.KeyLeftControl: bus.KeyControl,
	pixelgl.KeyUp:          bus.KeyUp, pixelgl.KeyDown: bus.KeyDown,
	pixelgl.KeyLeft: bus.KeyLeft, pixelgl.KeyRight: bus.KeyRight,
	pixelgl.KeyF1: bus.KeyF1, pixelgl.KeyF2: bus.KeyF2, pixelgl.KeyF3: bus.KeyF3,
	pixelgl.KeyF4: bus.KeyF4, pixelgl.KeyF5: bus.KeyF5, pixelgl.KeyF6: bus.KeyF6,
	pixelgl.KeyF7: bus.KeyF7, pixelgl.KeyF8: bus.KeyF8, pixelgl.KeyF9: bus.KeyF9,
	pixelgl.KeyF10: bus.KeyF10, pixelgl.KeyF11: bus.KeyF11, pixelgl.KeyF12: bus.KeyF12,
	pixelgl.KeyEscape: bus.KeyEscape, pixelgl.KeyBackspace: bus.KeyBackspace,
	pixelgl.KeyTab: bus.KeyTab,
}

// pollKeys reports every key edge since the last poll to the machine, and
// derives port-0 joystick state from the arrow keys + left-ctrl fire, a
// convenience binding independent of each system's native keyboard matrix.
func pollKeys(win *pixelgl.Window, m interface {
	KeyDown(bus.KeyCode)
	KeyUp(bus.KeyCode)
	SetJoystick(int, bus.JoystickState)
}) {
	for key, code := range hostKeys {
		if win.JustPressed(key) {
			m.KeyDown(code)
		}
		if win.JustReleased(key) {
			m.KeyUp(code)
		}
	}
	m.SetJoystick(0, bus.JoystickState{
		Up:    win.Pressed(pixelgl.KeyUp),
		Down:  win.Pressed(pixelgl.KeyDown),
		Left:  win.Pressed(pixelgl.KeyLeft),
		Right: win.Pressed(pixelgl.KeyRight),
		Fire:  win.Pressed(pixelgl.KeyLeftControl),
	})
}
