// Package copper implements the Amiga Copper coprocessor: a tiny
// beam-synchronized instruction stream (MOVE/WAIT/SKIP) that Agnus fetches
// from chip RAM only in Copper-owned DMA slots.
package copper

import "github.com/n-ulricksen/retrocore/bus"

// State is the Copper's fetch/execute state machine.
type State int

const (
	StateIdle State = iota
	StateFetchIR1
	StateFetchIR2
	StateWaitBeam
)

// endOfList is the IR1/IR2 pair that halts the Copper instead of resolving
// a WAIT - the program's terminator.
const (
	endOfListIR1 = 0xFFFF
	endOfListIR2 = 0xFFFE
)

// MemReader reads a word from chip RAM for Copper instruction fetch.
type MemReader interface {
	ReadWord(addr uint32) uint16
}

// RegisterWriter receives a completed MOVE's (register offset, value).
type RegisterWriter interface {
	WriteCustomRegister(offset uint16, value uint16)
}

// Copper is the coprocessor's full register and state-machine model.
type Copper struct {
	State State

	COP1LC, COP2LC uint32
	PC             uint32
	IR1, IR2       uint16

	Danger bool // COPCON bit 1: DANGER, allows MOVE to registers below $080
}

// RestartList1 and RestartList2 are triggered by writes to the COPJMP1/
// COPJMP2 strobe registers, reloading PC from the corresponding location
// register and restarting the fetch cycle.
func (c *Copper) RestartList1() { c.PC = c.COP1LC; c.State = StateFetchIR1 }
func (c *Copper) RestartList2() { c.PC = c.COP2LC; c.State = StateFetchIR1 }

// Tick advances the Copper by one Copper-owned DMA slot. vpos/hpos are the
// current Agnus beam position.
func (c *Copper) Tick(mem MemReader, regs RegisterWriter, vpos, hpos uint16) {
	switch c.State {
	case StateIdle:
		return
	case StateFetchIR1:
		c.IR1 = mem.ReadWord(c.PC)
		c.PC += 2
		c.State = StateFetchIR2
	case StateFetchIR2:
		c.IR2 = mem.ReadWord(c.PC)
		c.PC += 2
		c.execute(regs, vpos, hpos)
	case StateWaitBeam:
		if c.beamReached(vpos, hpos) {
			c.State = StateFetchIR1
		}
	}
}

func (c *Copper) execute(regs RegisterWriter, vpos, hpos uint16) {
	if c.IR1&1 == 0 { // MOVE
		reg := c.IR1 & 0x01FE
		if reg >= 0x080 || c.Danger {
			regs.WriteCustomRegister(reg, c.IR2)
		}
		c.State = StateFetchIR1
		return
	}

	if c.IR1 == endOfListIR1 && c.IR2 == endOfListIR2 {
		c.State = StateIdle
		return
	}

	if c.IR2&1 != 0 { // SKIP
		if c.beamReached(vpos, hpos) {
			c.PC += 4 // skip the next instruction word pair
		}
		c.State = StateFetchIR1
		return
	}

	// WAIT
	if c.beamReached(vpos, hpos) {
		c.State = StateFetchIR1
	} else {
		c.State = StateWaitBeam
	}
}

// beamReached implements the masked (vpos,hpos) >= (waitV,waitH) compare.
// V7 (bit 7 of the vertical compare value) is always compared regardless of
// the supplied mask - the one hardware quirk the naive Rust reference got
// wrong, called out explicitly since it changes behaviour for any WAIT past
// line 128.
func (c *Copper) beamReached(vpos, hpos uint16) bool {
	waitV := (c.IR1 >> 8) & 0xFF
	waitH := (c.IR1 >> 1) & 0x7F
	maskV := (c.IR2>>8)&0x7F | 0x80 // bit 7 forced into the mask
	maskH := (c.IR2 >> 1) & 0x7F

	curV := vpos & 0xFF
	curH := (hpos >> 1) & 0x7F

	cv, wv := curV&maskV, waitV&maskV
	ch, wh := curH&maskH, waitH&maskH

	if cv != wv {
		return cv > wv
	}
	return ch >= wh
}

var _ bus.Observable = (*Copper)(nil)
