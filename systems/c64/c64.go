// Package c64 wires a cpu6502.CPU and a minimal VIC-II together into a
// Commodore 64, implementing bus.Machine. Grounded on
// original_source/crates/emu-c64/src/{config,prg,keyboard,palette}.rs for
// timing constants, the PRG load format, the keyboard matrix contract and
// the palette; the teacher repo itself has only NES code, so this package
// follows systems/nes's bus.Bus wiring shape while sourcing C64 domain
// behaviour from the wider example pack.
package c64

import (
	"path/filepath"
	"strings"

	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/cpu6502"
	"github.com/n-ulricksen/retrocore/internal/inspector"
)

const (
	kernalSizeBytes = 0x2000
	basicSizeBytes  = 0x2000
	charSizeBytes   = 0x1000
)

// C64 is a PAL Commodore 64 machine.
type C64 struct {
	cpu *cpu6502.CPU
	bus *c64Bus
}

// New builds a C64 with no ROMs loaded. Call LoadFile with ".rom" images
// (kernal, basic, chargen in that order is not assumed - see LoadFile) and
// a ".prg" program before RunFrame produces anything meaningful.
func New() *C64 {
	b := newC64Bus()
	cpu := cpu6502.New(b, cpu6502.NMOS6502, nil)
	return &C64{cpu: cpu, bus: b}
}

// LoadFile implements bus.Machine. Three distinct ROM images share the
// ".rom" extension upstream (kernal/basic/chargen). The 4KB character ROM
// is recognised by its size; KERNAL and BASIC are both 8KB, so an 8KB image
// whose file name contains "basic" loads as BASIC and any other 8KB image
// loads as the KERNAL. A ".prg" file loads directly into RAM without a CPU reset,
// mirroring a real C64's LOAD+RUN rather than a cold boot.
func (c *C64) LoadFile(name string, data []byte) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".rom":
		switch len(data) {
		case kernalSizeBytes: // also basicSizeBytes: both images are 8KB
			if strings.Contains(strings.ToLower(filepath.Base(name)), "basic") {
				copy(c.bus.basic[:], data)
			} else {
				copy(c.bus.kernal[:], data)
			}
			c.Reset()
			return nil
		case charSizeBytes:
			copy(c.bus.charROM[:], data)
			return nil
		default:
			return bus.NewConfigError(bus.RomWrongSize, "unrecognised C64 ROM image size")
		}
	case ".prg":
		_, err := c.bus.LoadPRG(data)
		return err
	default:
		return bus.NewConfigError(bus.UnsupportedFormat, "unrecognised C64 file extension: "+name)
	}
}

// Reset implements bus.Machine.
func (c *C64) Reset() {
	c.bus.Reset()
	c.cpu.Reset()
}

// VideoConfig implements bus.Machine.
func (c *C64) VideoConfig() bus.VideoConfig {
	w := frameWidth + borderColumns*2
	h := frameHeight + int(firstVisible)
	return bus.VideoConfig{Width: w, Height: h, RefreshHz: 50.12}
}

// AudioConfig implements bus.Machine. SID is out of scope for this core
// (see DESIGN.md); RunFrame always returns an empty audio slice.
func (c *C64) AudioConfig() bus.AudioConfig {
	return bus.AudioConfig{SampleRate: 44100, Channels: 1}
}

// KeyDown implements bus.Machine.
func (c *C64) KeyDown(key bus.KeyCode) { c.bus.cia.kb.setKey(key, true) }

// KeyUp implements bus.Machine.
func (c *C64) KeyUp(key bus.KeyCode) { c.bus.cia.kb.setKey(key, false) }

// SetJoystick implements bus.Machine. Joystick ports are out of scope for
// this core's minimal CIA model; calls are accepted and ignored.
func (c *C64) SetJoystick(port int, state bus.JoystickState) {}

// RunFrame advances the CPU and VIC-II in lockstep (they share one clock on
// the C64, unlike the NES's divided CPU/PPU rates) for one PAL frame.
func (c *C64) RunFrame() bus.Frame {
	for !c.bus.vic.TakeFrameComplete() {
		c.tickOnce()
	}
	return bus.Frame{Pixels: c.bus.vic.RenderFrame()}
}

func (c *C64) tickOnce() {
	if c.bus.vic.TakeIRQ() {
		c.cpu.IRQ()
	}
	c.cpu.Tick()
	c.bus.vic.Tick()
}

// Components lists the registers the inspector TUI can show for this
// machine.
func (c *C64) Components() []inspector.Component {
	return []inspector.Component{{Label: "CPU", Obs: c.cpu}}
}

var _ bus.Machine = (*C64)(nil)
