// Package agnus implements the Amiga Agnus custom chip: beam position
// tracking and the fixed per-colour-clock DMA slot arbiter that every other
// chip-RAM client (CPU, Copper, bitplane fetch, audio, disk, sprites)
// contends against.
package agnus

import "github.com/n-ulricksen/retrocore/bus"

// LinesPAL and LinesNTSC select the video standard's line count; Agnus
// toggles the long-frame flag at every frame wrap.
const (
	LinesPAL  uint16 = 312
	LinesNTSC uint16 = 262

	cckPerLine uint16 = 227 // colour clocks per scanline, both standards
)

// Agnus is a pure counter plus slot arbiter: it owns no pixels or samples of
// its own, only beam position and the DMA mask that everything else reads.
type Agnus struct {
	Vpos, Hpos uint16
	LongFrame  bool // LOF, toggles at the end of every frame

	linesPerFrame uint16

	dmacon setClrRegister
	intena setClrRegister
	intreq setClrRegister
	adkcon setClrRegister

	DDFSTRT, DDFSTOP uint16
	Bitplanes        uint8 // number of active bitplanes, 0-6

	ChipID uint16 // exposed in VPOSR's upper bits, chip-revision dependent
}

// New builds an Agnus for the given video standard.
func New(linesPerFrame uint16) *Agnus {
	a := &Agnus{linesPerFrame: linesPerFrame}
	a.dmacon.reservedMask = dmaconReservedMask
	a.intena.reservedMask = 0x7FFF
	a.intreq.reservedMask = 0x7FFF
	a.adkcon.reservedMask = 0x7FFF
	return a
}

// TickCCK advances the beam by one colour clock (4 CPU clocks at 7.09 MHz
// dot clock, or 2 master ticks at the 3.58 MHz colour-clock rate this engine
// uses as its unit - callers drive this once per colour clock, not per
// master tick).
func (a *Agnus) TickCCK() {
	a.Hpos++
	if a.Hpos >= cckPerLine {
		a.Hpos = 0
		a.Vpos++
		if a.Vpos >= a.linesPerFrame {
			a.Vpos = 0
			a.LongFrame = !a.LongFrame
		}
	}
}

// inDDFWindow reports whether hpos falls in the bitplane data-fetch window
// [DDFSTRT, DDFSTOP+8).
func (a *Agnus) inDDFWindow(hpos uint16) bool {
	return hpos >= a.DDFSTRT && hpos < a.DDFSTOP+8
}

// CurrentSlot returns the owner of the current colour clock per the fixed
// OCS slot map; DMA-disabled or channel-disabled slots fall back to CPU.
func (a *Agnus) CurrentSlot() SlotOwner {
	return a.slotAt(a.Hpos)
}

func (a *Agnus) slotAt(hpos uint16) SlotOwner {
	switch {
	case hpos >= 0x01 && hpos <= 0x03, hpos == 0x1B:
		return refreshSlot
	case hpos >= 0x04 && hpos <= 0x06:
		if a.dmaEnabled(DMACONBitDSKEN) {
			return SlotOwner{Kind: OwnerDisk}
		}
	case hpos >= 0x07 && hpos <= 0x0A:
		ch := uint8(hpos - 0x07)
		if a.dmaEnabled(DMACONBitAUD0 + uint(ch)) {
			return SlotOwner{Kind: OwnerAudio, Channel: ch}
		}
	case hpos >= 0x0B && hpos <= 0x1A:
		if a.dmaEnabled(DMACONBitSPREN) {
			return SlotOwner{Kind: OwnerSprite, Channel: uint8((hpos - 0x0B) / 2)}
		}
	case hpos >= 0x1C && hpos <= 0xE2:
		if a.dmaEnabled(DMACONBitBPLEN) && a.inDDFWindow(hpos) {
			return SlotOwner{Kind: OwnerBitplane}
		}
		if a.dmaEnabled(DMACONBitCOPEN) && hpos%2 == 0 {
			return SlotOwner{Kind: OwnerCopper}
		}
	}
	return cpuSlot
}

// AccessChipRAM charges the CPU contention penalty: wait=2 when the current
// slot is held by anything other than the CPU, zero otherwise. Fast/slow
// RAM and ROM accesses never call this.
func (a *Agnus) AccessChipRAM() bus.ReadResult {
	if a.CurrentSlot().Kind != OwnerCPU {
		return bus.ReadResult{Wait: 2}
	}
	return bus.ReadResult{}
}

// VPOSR packs the chip ID, LOF, and vpos bit 8 in the common OCS/ECS
// layout: bit 15 LOF, bits 14-1 from ChipID, bit 0 vpos8.
func (a *Agnus) VPOSR() uint16 {
	v := a.ChipID &^ 0x8001
	if a.LongFrame {
		v |= 0x8000
	}
	v |= (a.Vpos >> 8) & 1
	return v
}

// VHPOSR packs the low byte of vpos and all 8 bits of hpos.
func (a *Agnus) VHPOSR() uint16 {
	return (a.Vpos&0xFF)<<8 | (a.Hpos & 0xFF)
}

var _ bus.Observable = (*Agnus)(nil)
