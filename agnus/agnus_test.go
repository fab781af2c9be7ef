package agnus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeamAdvanceAndFrameWrap(t *testing.T) {
	a := New(LinesPAL)
	for i := uint16(0); i < cckPerLine; i++ {
		a.TickCCK()
	}
	assert.Equal(t, uint16(0), a.Hpos)
	assert.Equal(t, uint16(1), a.Vpos)

	a.Vpos = LinesPAL - 1
	a.Hpos = cckPerLine - 1
	before := a.LongFrame
	a.TickCCK()
	assert.Equal(t, uint16(0), a.Vpos)
	assert.NotEqual(t, before, a.LongFrame)
}

func TestRefreshSlotUnconditional(t *testing.T) {
	a := New(LinesPAL)
	a.Hpos = 0x02
	assert.Equal(t, OwnerRefresh, a.CurrentSlot().Kind)
}

func TestDiskSlotFallsBackToCpuWhenDisabled(t *testing.T) {
	a := New(LinesPAL)
	a.Hpos = 0x05
	assert.Equal(t, OwnerCPU, a.CurrentSlot().Kind)

	a.WriteDMACON(0x8000 | 1<<DMACONBitDMAEN | 1<<DMACONBitDSKEN)
	assert.Equal(t, OwnerDisk, a.CurrentSlot().Kind)
}

func TestBitplaneSlotRequiresDDFWindow(t *testing.T) {
	a := New(LinesPAL)
	a.WriteDMACON(0x8000 | 1<<DMACONBitDMAEN | 1<<DMACONBitBPLEN)
	a.DDFSTRT, a.DDFSTOP = 0x30, 0x80

	a.Hpos = 0x50
	assert.Equal(t, OwnerBitplane, a.CurrentSlot().Kind)

	a.Hpos = 0x1C // outside the DDF window, DMA enabled but unused here
	assert.Equal(t, OwnerCPU, a.CurrentSlot().Kind)
}

func TestChipRAMContention(t *testing.T) {
	a := New(LinesPAL)
	a.Hpos = 0x02 // refresh slot, never CPU
	res := a.AccessChipRAM()
	assert.Equal(t, uint64(2), uint64(res.Wait))
}

func TestDMAConSetClrProtocol(t *testing.T) {
	a := New(LinesPAL)
	a.WriteDMACON(0x8000 | 1<<DMACONBitDSKEN)
	assert.NotEqual(t, uint16(0), a.DMACONR()&(1<<DMACONBitDSKEN))

	a.WriteDMACON(1 << DMACONBitDSKEN) // bit15=0: clear
	assert.Equal(t, uint16(0), a.DMACONR()&(1<<DMACONBitDSKEN))
}
