package copper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMem struct {
	words map[uint32]uint16
}

func (m *fakeMem) ReadWord(addr uint32) uint16 { return m.words[addr] }

type fakeRegs struct {
	writes map[uint16]uint16
}

func (r *fakeRegs) WriteCustomRegister(offset, value uint16) {
	if r.writes == nil {
		r.writes = map[uint16]uint16{}
	}
	r.writes[offset] = value
}

func stepUntilIdleOrWait(c *Copper, mem MemReader, regs RegisterWriter, vpos, hpos uint16, maxSteps int) {
	for i := 0; i < maxSteps; i++ {
		if c.State == StateIdle || c.State == StateWaitBeam {
			return
		}
		c.Tick(mem, regs, vpos, hpos)
	}
}

func TestMoveWritesRegisterAboveDanger(t *testing.T) {
	mem := &fakeMem{words: map[uint32]uint16{
		0x1000: 0x0100, // MOVE to reg 0x100 (bit0=0, reg = IR1&0x1FE)
		0x1002: 0x1234,
	}}
	regs := &fakeRegs{}
	c := &Copper{COP1LC: 0x1000}
	c.RestartList1()

	stepUntilIdleOrWait(c, mem, regs, 0, 0, 4)

	require.Contains(t, regs.writes, uint16(0x100))
	assert.Equal(t, uint16(0x1234), regs.writes[0x100])
}

func TestMoveBelowDangerSuppressedWithoutDangerBit(t *testing.T) {
	mem := &fakeMem{words: map[uint32]uint16{
		0x1000: 0x0040, // reg 0x040, below $080
		0x1002: 0xBEEF,
	}}
	regs := &fakeRegs{}
	c := &Copper{COP1LC: 0x1000, Danger: false}
	c.RestartList1()

	stepUntilIdleOrWait(c, mem, regs, 0, 0, 4)

	assert.NotContains(t, regs.writes, uint16(0x040))
}

func TestEndOfListSentinelHalts(t *testing.T) {
	mem := &fakeMem{words: map[uint32]uint16{
		0x1000: endOfListIR1,
		0x1002: endOfListIR2,
	}}
	regs := &fakeRegs{}
	c := &Copper{COP1LC: 0x1000}
	c.RestartList1()

	stepUntilIdleOrWait(c, mem, regs, 0, 0, 4)

	assert.Equal(t, StateIdle, c.State)
}

func TestWaitResolvesOnBeamMatch(t *testing.T) {
	mem := &fakeMem{words: map[uint32]uint16{
		0x1000: 0x4401, // WAIT: VP=0x44, bit0=1
		0x1002: 0xFFFE, // mask all bits compared, IR2 bit0=0 selects WAIT
	}}
	regs := &fakeRegs{}
	c := &Copper{COP1LC: 0x1000}
	c.RestartList1()

	c.Tick(mem, regs, 0, 0) // FetchIR1
	c.Tick(mem, regs, 0, 0) // FetchIR2 -> execute -> WaitBeam (not yet reached)
	assert.Equal(t, StateWaitBeam, c.State)

	c.Tick(mem, regs, 0x44, 0) // beam reaches target line
	assert.Equal(t, StateFetchIR1, c.State)
}

func TestV7AlwaysCompared(t *testing.T) {
	// VP=0x80 (V7 set), mask clears every bit except what hardware forces:
	// V7 must still be compared even though the mask field supplies zero.
	mem := &fakeMem{words: map[uint32]uint16{
		0x1000: 0x8001, // VP = 0x80, WAIT
		0x1002: 0x0000, // mask = 0: naive implementations would match any line
	}}
	regs := &fakeRegs{}
	c := &Copper{COP1LC: 0x1000}
	c.RestartList1()

	c.Tick(mem, regs, 0, 0)
	c.Tick(mem, regs, 0, 0) // execute -> WaitBeam, vpos=0 has V7=0

	assert.Equal(t, StateWaitBeam, c.State)
	c.Tick(mem, regs, 0, 0) // still line 0, must not resolve
	assert.Equal(t, StateWaitBeam, c.State)

	c.Tick(mem, regs, 0x80, 0) // vpos now has V7=1, matches
	assert.Equal(t, StateFetchIR1, c.State)
}
