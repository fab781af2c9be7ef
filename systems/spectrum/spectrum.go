// Package spectrum wires a z80.CPU and a ula.ULA together into a 48K ZX
// Spectrum, implementing bus.Machine.
//
// Grounded on crates/emu-spectrum/src/machine.rs's Z80+ULA wiring and tick
// loop shape; the teacher repo itself has no Spectrum code (it is an NES
// emulator), so this package leans on the wider example pack rather than
// the teacher for its domain logic, while still following the teacher's
// bus.Bus/Tick plumbing conventions used throughout this module.
package spectrum

import (
	"path/filepath"
	"strings"

	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/internal/inspector"
	"github.com/n-ulricksen/retrocore/ula"
	"github.com/n-ulricksen/retrocore/z80"
)

const romImageSize = 0x4000

// Spectrum is a 48K ZX Spectrum machine.
type Spectrum struct {
	cpu      *z80.CPU
	ula      *ula.ULA
	bus      *spectrumBus
	keyboard *keyboard
}

// New builds a Spectrum with no ROM loaded. Call LoadFile with a 16KB ROM
// image before RunFrame produces anything meaningful.
func New() *Spectrum {
	u := ula.New()
	kb := newKeyboard()
	b := newSpectrumBus(u, kb)
	cpu := z80.New(b, nil)

	return &Spectrum{cpu: cpu, ula: u, bus: b, keyboard: kb}
}

// LoadFile implements bus.Machine. A ".rom" file is the 16KB system ROM;
// other formats (snapshots, tape images) are out of scope for this core
// (see bus.Machine's doc comment on thin, already-validated ingestion).
func (s *Spectrum) LoadFile(name string, data []byte) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".rom":
		if len(data) != romImageSize {
			return bus.NewConfigError(bus.RomWrongSize, "Spectrum ROM must be exactly 16KB")
		}
		s.bus.LoadROM(data)
		s.Reset()
		return nil
	default:
		return bus.NewConfigError(bus.UnsupportedFormat, "unrecognised Spectrum file extension: "+name)
	}
}

// Reset implements bus.Machine.
func (s *Spectrum) Reset() {
	s.bus.Reset()
	s.cpu.Reset()
}

// VideoConfig implements bus.Machine.
func (s *Spectrum) VideoConfig() bus.VideoConfig {
	return bus.VideoConfig{Width: frameW, Height: frameH, RefreshHz: 50.08}
}

// AudioConfig implements bus.Machine. The beeper is out of scope for this
// core (see DESIGN.md); RunFrame always returns an empty audio slice.
func (s *Spectrum) AudioConfig() bus.AudioConfig {
	return bus.AudioConfig{SampleRate: 44100, Channels: 1}
}

// KeyDown implements bus.Machine.
func (s *Spectrum) KeyDown(key bus.KeyCode) { s.keyboard.setKey(key, true) }

// KeyUp implements bus.Machine.
func (s *Spectrum) KeyUp(key bus.KeyCode) { s.keyboard.setKey(key, false) }

// SetJoystick implements bus.Machine: the Spectrum has one Kempston port,
// so only port 0 has any effect.
func (s *Spectrum) SetJoystick(port int, state bus.JoystickState) {
	if port != 0 {
		return
	}
	s.bus.kempston = kempstonByte(state)
}

// RunFrame advances the Z80/ULA in lockstep for one 50Hz frame (69888
// T-states at 3.5MHz) and renders the resulting display.
func (s *Spectrum) RunFrame() bus.Frame {
	for !s.ula.TakeFrameComplete() {
		s.tickOnce()
	}
	pixels := renderFrame(s.bus, s.ula, s.ula.BorderColour)
	return bus.Frame{Pixels: pixels}
}

func (s *Spectrum) tickOnce() {
	if s.ula.IntActive() {
		s.cpu.IRQ(0xFF)
	}
	s.cpu.Tick()
	s.ula.Tick()
}

// Components lists the registers the inspector TUI can show for this
// machine.
func (s *Spectrum) Components() []inspector.Component {
	return []inspector.Component{
		{Label: "CPU", Obs: s.cpu},
		{Label: "ULA", Obs: s.ula},
	}
}

var _ bus.Machine = (*Spectrum)(nil)
