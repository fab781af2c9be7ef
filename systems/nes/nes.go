// Package nes wires a cpu6502.CPU and a ppu.PPU to an iNES cartridge over
// the shared bus.Bus/bus.Machine contracts, implementing a Nintendo
// Entertainment System.
package nes

import (
	"path/filepath"
	"strings"

	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/cpu6502"
	"github.com/n-ulricksen/retrocore/internal/inspector"
	"github.com/n-ulricksen/retrocore/ppu"
)

// NES is the top-level machine, implementing bus.Machine. The PPU ticks at
// the master clock rate (3x the NTSC CPU rate); the CPU ticks every third
// call, matching the real chip's 1:3 ratio.
type NES struct {
	cpu  *cpu6502.CPU
	ppu  *ppu.PPU
	bus  *nesBus
	cart *Cartridge
	pads [2]*controller

	masterClock uint64
}

// New builds an NES with no cartridge loaded. Call LoadFile before
// RunFrame produces anything meaningful.
func New() *NES {
	pads := [2]*controller{newController(), newController()}
	p := ppu.New()
	b := newNESBus(p, nil, pads)
	cpu := cpu6502.New(b, cpu6502.NMOS6502, nil)

	return &NES{cpu: cpu, ppu: p, bus: b, pads: pads}
}

// LoadFile implements bus.Machine: the only format this core accepts is a
// raw iNES (.nes) image. The core does the minimal structural parse needed
// to split PRG/CHR/mapper out of the container; it is not a general file
// format library (see bus.Machine's doc comment).
func (n *NES) LoadFile(name string, data []byte) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".nes":
		cart, err := ParseINES(data)
		if err != nil {
			return err
		}
		n.cart = cart
		n.bus.cart = cart
		n.ppu.ConnectCartridge(cart)
		n.Reset()
		return nil
	default:
		return bus.NewConfigError(bus.UnsupportedFormat, "unrecognised NES file extension: "+name)
	}
}

// Reset implements bus.Machine.
func (n *NES) Reset() {
	n.bus.Reset()
	n.cpu.Reset()
}

// VideoConfig implements bus.Machine.
func (n *NES) VideoConfig() bus.VideoConfig {
	return bus.VideoConfig{Width: ppu.FrameWidth, Height: ppu.FrameHeight, RefreshHz: 60.0988}
}

// AudioConfig implements bus.Machine. The APU is out of scope for this
// core (see DESIGN.md); RunFrame always returns an empty audio slice.
func (n *NES) AudioConfig() bus.AudioConfig {
	return bus.AudioConfig{SampleRate: 44100, Channels: 1}
}

// KeyDown implements bus.Machine, applying to controller port 0.
func (n *NES) KeyDown(key bus.KeyCode) { n.pads[0].applyKey(key, true) }

// KeyUp implements bus.Machine.
func (n *NES) KeyUp(key bus.KeyCode) { n.pads[0].applyKey(key, false) }

// SetJoystick implements bus.Machine.
func (n *NES) SetJoystick(port int, state bus.JoystickState) {
	if port < 0 || port >= len(n.pads) {
		return
	}
	n.pads[port].applyJoystick(state)
}

// RunFrame advances CPU/PPU ticks until the PPU reports a completed frame.
func (n *NES) RunFrame() bus.Frame {
	for !n.ppu.TakeFrameComplete() {
		n.tickOnce()
	}
	pixels := make([]uint32, len(n.ppu.Framebuffer))
	copy(pixels, n.ppu.Framebuffer[:])
	return bus.Frame{Pixels: pixels}
}

// tickOnce advances the master clock by one PPU dot: the PPU ticks on every
// call and the CPU on every third call (NTSC: 3 PPU dots per CPU cycle).
func (n *NES) tickOnce() {
	n.ppu.Tick()
	if n.masterClock%3 == 0 {
		if req, pending := n.bus.TakeDMARequest(); pending {
			n.serviceOAMDMA(req)
		}
		n.cpu.Tick()
		if n.ppu.NMI {
			n.ppu.NMI = false
			n.cpu.NMI()
		}
	}
	n.masterClock++
}

// serviceOAMDMA copies the 256-byte CPU page at page<<8 into PPU OAM. Real
// hardware stalls the CPU for 513-514 cycles while this happens; this core
// folds that cost into the same tick used to detect the request rather
// than modelling the stall cycle-for-cycle.
func (n *NES) serviceOAMDMA(page byte) {
	var buf [256]byte
	base := uint32(page) << 8
	for i := range buf {
		buf[i] = n.bus.Read(base + uint32(i)).Data
	}
	n.ppu.WriteOAMDMA(buf)
}

// Components lists the registers the inspector TUI can show for this
// machine.
func (n *NES) Components() []inspector.Component {
	return []inspector.Component{
		{Label: "CPU", Obs: n.cpu},
		{Label: "PPU", Obs: n.ppu},
	}
}

var _ bus.Machine = (*NES)(nil)
