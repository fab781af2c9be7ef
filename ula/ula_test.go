package ula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMem struct {
	data [0x10000]byte
}

func (m *fakeMem) Peek(addr uint16) byte { return m.data[addr] }

func tickN(u *ULA, n int) {
	for i := 0; i < n; i++ {
		u.Tick()
	}
}

func TestBeamWrapsLineAndFrame(t *testing.T) {
	u := New()
	tickN(u, int(TStatesPerLine))
	assert.Equal(t, uint16(0), u.LineTstate)
	assert.Equal(t, uint16(1), u.Line)

	tickN(u, int(TStatesPerLine)*int(LinesPerFrame-1))
	assert.Equal(t, uint16(0), u.Line)
	assert.True(t, u.TakeFrameComplete())
	assert.False(t, u.TakeFrameComplete()) // auto-clears
}

func TestContentionPatternInActiveDisplay(t *testing.T) {
	u := New()
	u.Line = displayFirstLn
	for i, want := range contentionTable {
		u.LineTstate = uint16(i)
		assert.Equal(t, want, u.Contention(0x4000), "tstate %d", i)
	}
}

func TestContentionZeroOutsideActiveWindow(t *testing.T) {
	u := New()
	u.Line = displayFirstLn
	u.LineTstate = activeWindowLen // just past the 128-cycle fetch window
	assert.Equal(t, uint8(0), u.Contention(0x4000))
}

func TestContentionZeroForUncontendedMemory(t *testing.T) {
	u := New()
	u.Line = displayFirstLn
	u.LineTstate = 0
	assert.Equal(t, uint8(0), u.Contention(0x8000))
}

func TestIOContentionPortFEAlwaysContended(t *testing.T) {
	u := New()
	u.Line = displayFirstLn
	u.LineTstate = 0
	assert.Equal(t, contentionTable[0], u.IOContention(0xFEFE))
}

func TestIOContentionOtherPortsOnlyWhenMirrored(t *testing.T) {
	u := New()
	u.Line = displayFirstLn
	u.LineTstate = 0
	assert.Equal(t, uint8(0), u.IOContention(0x00FD))     // odd, not mirrored
	assert.Equal(t, contentionTable[0], u.IOContention(0x7FFD)) // mirrors contended RAM
}

func TestFloatingBusOutsideActiveAreaReturnsFF(t *testing.T) {
	u := New()
	mem := &fakeMem{}
	u.Line = 0 // top border
	assert.Equal(t, byte(0xFF), u.FloatingBus(mem))
}

func TestFloatingBusLeaksBitmapAndAttributeBytes(t *testing.T) {
	u := New()
	mem := &fakeMem{}
	mem.data[bitmapAddr(0, 0)] = 0xAA
	mem.data[attrAddr(0, 0)] = 0x55

	u.Line = displayFirstLn
	u.LineTstate = 0
	assert.Equal(t, byte(0xAA), u.FloatingBus(mem))

	u.LineTstate = 1
	assert.Equal(t, byte(0x55), u.FloatingBus(mem))

	u.LineTstate = 4
	assert.Equal(t, byte(0xFF), u.FloatingBus(mem))
}
