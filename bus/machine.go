package bus

// KeyCode is the core's logical keyboard-key enum; each machine's
// systems/* package maps these onto its own hardware key matrix.
type KeyCode int

const (
	KeyA KeyCode = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyShift
	KeySymbolShift
	KeyCapsShift
	KeyControl
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyEscape
	KeyBackspace
	KeyTab
)

// JoystickState is the logical 6-line joystick state a machine translates
// into its port/hardware-specific read.
type JoystickState struct {
	Up, Down, Left, Right, Fire, Fire2 bool
}

// VideoConfig describes a machine's native framebuffer shape.
type VideoConfig struct {
	Width, Height int
	RefreshHz     float64
}

// AudioConfig describes a machine's output sample format.
type AudioConfig struct {
	SampleRate int
	Channels   int
}

// Frame is one run_frame()'s output: an ARGB32 framebuffer at the machine's
// native resolution plus the audio generated during that frame.
type Frame struct {
	Pixels []uint32 // row-major, Width*Height long
	Audio  []float32
}

// Machine is the boundary every systems/* package implements: a
// frame-pump, logical keyboard/joystick input, file ingest, and (via the
// embedded Observable on each component) debugging access. This is the
// thin contract cmd/retrocore and internal/inspector talk to — neither
// imports a specific system's package directly.
type Machine interface {
	// RunFrame advances the master clock by exactly one frame's worth of
	// ticks and returns the resulting framebuffer and audio samples.
	RunFrame() Frame

	// VideoConfig and AudioConfig report this machine's fixed output shape.
	VideoConfig() VideoConfig
	AudioConfig() AudioConfig

	// KeyDown and KeyUp inject a logical key event.
	KeyDown(key KeyCode)
	KeyUp(key KeyCode)

	// SetJoystick updates the logical state of joystick port n (0-based).
	SetJoystick(port int, state JoystickState)

	// Reset propagates a bus-level reset pulse to every component.
	Reset()

	// LoadFile accepts a named, already-validated byte slice and dispatches
	// on the name's extension to the right loader (ROM image, snapshot,
	// disk image, tape image). The core never parses the file itself.
	LoadFile(name string, data []byte) error
}
