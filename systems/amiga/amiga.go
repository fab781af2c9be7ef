// Package amiga wires a m68k.CPU, an agnus.Agnus beam/DMA arbiter and a
// copper.Copper coprocessor together into a PAL Amiga 500, implementing
// bus.Machine. This is the hardest timing problem named in spec.md §1: the
// CPU, Agnus, and Copper all advance from the same colour-clock tick, with
// Agnus's fixed slot map deciding who touches chip RAM each CCK.
package amiga

import (
	"path/filepath"
	"strings"

	"github.com/n-ulricksen/retrocore/agnus"
	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/copper"
	"github.com/n-ulricksen/retrocore/internal/inspector"
	"github.com/n-ulricksen/retrocore/m68k"
)

// cpuTicksPerCCK is the ratio between the 68000's bus-cycle clock
// (crystal/4, ~7.09MHz) and the colour clock (crystal/8, ~3.55MHz) on a
// PAL Amiga — see original_source/crates/emu-amiga/src/lib.rs's header
// comment for the derivation from the 28.375MHz crystal.
const cpuTicksPerCCK = 2

// Amiga is a PAL Amiga 500 with no Blitter/Paula audio (see DESIGN.md);
// the DMA slot arbiter, Copper, and 68000 core are cycle-accurate per
// spec.md §4.5-4.7.
type Amiga struct {
	cpu    *m68k.CPU
	agnus  *agnus.Agnus
	copper *copper.Copper
	bus    *amigaBus

	joy0, joy1 bus.JoystickState
}

// New builds an Amiga with no Kickstart ROM loaded. Call LoadFile with a
// ".rom" Kickstart image before RunFrame produces anything meaningful.
func New() *Amiga {
	ag := agnus.New(agnus.LinesPAL)
	cop := &copper.Copper{}
	b := newAmigaBus(ag, cop)
	cpu, err := m68k.New(b, m68k.M68000)
	if err != nil {
		// Model is hardcoded to M68000 above; this can only fail for an
		// unsupported model, which never happens here.
		panic(err)
	}
	return &Amiga{cpu: cpu, agnus: ag, copper: cop, bus: b}
}

// LoadFile implements bus.Machine. A ".rom" file is the 256K Kickstart
// image; disk images (ADF) and other formats are out of scope for this
// core (see bus.Machine's doc comment on already-validated ingestion).
func (a *Amiga) LoadFile(name string, data []byte) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".rom":
		if len(data) != kickstartSize {
			return bus.NewConfigError(bus.RomWrongSize, "Amiga Kickstart ROM must be exactly 256KB")
		}
		a.bus.LoadKickstart(data)
		a.Reset()
		return nil
	default:
		return bus.NewConfigError(bus.UnsupportedFormat, "unrecognised Amiga file extension: "+name)
	}
}

// Reset implements bus.Machine.
func (a *Amiga) Reset() {
	a.bus.Reset()
	a.cpu.Reset()
}

// VideoConfig implements bus.Machine.
func (a *Amiga) VideoConfig() bus.VideoConfig {
	return bus.VideoConfig{Width: frameWidth, Height: frameHeight, RefreshHz: 50.0}
}

// AudioConfig implements bus.Machine. Paula's audio DMA channels are out
// of scope for this core (see DESIGN.md); RunFrame always returns an
// empty audio slice.
func (a *Amiga) AudioConfig() bus.AudioConfig {
	return bus.AudioConfig{SampleRate: 44100, Channels: 2}
}

// KeyDown implements bus.Machine.
func (a *Amiga) KeyDown(key bus.KeyCode) {
	if code, ok := amigaKeycode[key]; ok {
		a.bus.cia.kb.KeyEvent(code, true)
	}
}

// KeyUp implements bus.Machine.
func (a *Amiga) KeyUp(key bus.KeyCode) {
	if code, ok := amigaKeycode[key]; ok {
		a.bus.cia.kb.KeyEvent(code, false)
	}
}

// SetJoystick implements bus.Machine for the Amiga's two DB9 ports.
// Direction bits feed JOY0DAT/JOY1DAT in a simplified (non-quadrature)
// encoding — see DESIGN.md; fire buttons go through CIA-A PRA bits 6-7,
// which is bit-exact.
func (a *Amiga) SetJoystick(port int, state bus.JoystickState) {
	switch port {
	case 0:
		a.joy0 = state
		a.bus.joy0 = joystickByte(state)
	case 1:
		a.joy1 = state
		a.bus.joy1 = joystickByte(state)
	default:
		return
	}
	a.bus.setFireButtons(a.joy0.Fire, a.joy1.Fire)
}

func joystickByte(j bus.JoystickState) uint16 {
	var v uint16
	if j.Up {
		v |= 1 << 0
	}
	if j.Down {
		v |= 1 << 1
	}
	if j.Left {
		v |= 1 << 8
	}
	if j.Right {
		v |= 1 << 9
	}
	return v
}

// RunFrame advances Agnus, the Copper, and the 68000 in lockstep for one
// PAL frame (312 lines x 227 CCKs) and renders the resulting display.
// Per-CCK ordering follows spec.md §5: (1) Agnus decides the slot owner,
// (2) the Copper fetches/executes if it owns this slot, (3) the CPU
// advances its fraction of the clock, stalling on chip-RAM contention via
// the wait cycles its bus calls already charge.
func (a *Amiga) RunFrame() bus.Frame {
	const ccksPerFrame = int(agnus.LinesPAL) * 227
	for i := 0; i < ccksPerFrame; i++ {
		a.tickOnce()
	}
	return bus.Frame{Pixels: a.bus.renderFrame()}
}

func (a *Amiga) tickOnce() {
	a.agnus.TickCCK()
	if a.agnus.CurrentSlot().Kind == agnus.OwnerCopper {
		a.copper.Tick(copperMemReader{a.bus}, a.bus, a.agnus.Vpos, a.agnus.Hpos)
	}
	a.bus.tickKeyboard()
	a.updateInterrupts()
	for i := 0; i < cpuTicksPerCCK; i++ {
		a.cpu.Tick()
	}
}

// updateInterrupts derives the 68000's IPL lines from INTENA & INTREQ
// using the real chip's source-to-priority-level table. Paula's
// audio/disk DMA channels are out of scope (see DESIGN.md), but the
// PORTS (CIA) and VERTB/COPER sources this core does drive are mapped
// bit-exactly.
func (a *Amiga) updateInterrupts() {
	pending := a.agnus.INTENAR() & a.agnus.INTREQR()
	level := uint8(0)
	switch {
	case pending&0x2000 != 0 || pending&0x1000 != 0: // EXTER, DSKSYNC
		level = 6
	case pending&0x0800 != 0: // RBF
		level = 5
	case pending&0x0780 != 0: // AUD0-3
		level = 4
	case pending&0x0070 != 0: // COPER, VERTB, BLIT
		level = 3
	case pending&0x0008 != 0: // PORTS
		level = 2
	case pending&0x0007 != 0: // TBE, DSKBLK, SOFTINT
		level = 1
	}
	a.cpu.RequestInterrupt(level)
}

// Components lists the registers the inspector TUI can show for this
// machine.
func (a *Amiga) Components() []inspector.Component {
	return []inspector.Component{
		{Label: "CPU", Obs: a.cpu},
		{Label: "Agnus", Obs: a.agnus},
		{Label: "Copper", Obs: a.copper},
	}
}

var _ bus.Machine = (*Amiga)(nil)
