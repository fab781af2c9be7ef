package c64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n-ulricksen/retrocore/bus"
)

func TestLoadFileRejectsUnknownExtension(t *testing.T) {
	c := New()
	err := c.LoadFile("game.d64", []byte{0x00})
	require.Error(t, err)
}

func TestLoadFileRejectsWrongSizedROM(t *testing.T) {
	c := New()
	err := c.LoadFile("kernal.rom", []byte{0x00})
	require.Error(t, err)
}

func TestLoadPRGInstallsAtLoadAddress(t *testing.T) {
	c := New()
	prg := []byte{0x01, 0x08, 0xAA, 0xBB}
	require.NoError(t, c.LoadFile("game.prg", prg))
	assert.Equal(t, byte(0xAA), c.bus.ram[0x0801])
	assert.Equal(t, byte(0xBB), c.bus.ram[0x0802])
}

func TestKeyboardMatrixScanActiveLow(t *testing.T) {
	kb := newKeyboard()
	assert.Equal(t, byte(0xFF), kb.scan(0x00)) // nothing pressed, all rows selected

	kb.setKey(bus.KeyW, true) // row 1, col 1
	got := kb.scan(0xFD)      // bit1=0: row 1 selected
	assert.Equal(t, byte(0), got&(1<<1))

	notSelected := kb.scan(0xFF) // no rows selected
	assert.Equal(t, byte(0xFF), notSelected)
}

func TestVicRasterRegisterRoundTrips(t *testing.T) {
	b := newC64Bus()
	b.vic.WriteRegister(0x20, 0x05)
	assert.Equal(t, byte(0x05), b.vic.ReadRegister(0x20))
}

func TestVicTickAdvancesRasterLine(t *testing.T) {
	v := NewVic(newC64Bus())
	for i := 0; i < int(CyclesPerLine); i++ {
		v.Tick()
	}
	assert.Equal(t, uint16(1), v.Line)
}

func TestVicFrameWrapsAfterAllLines(t *testing.T) {
	v := NewVic(newC64Bus())
	total := int(CyclesPerLine) * int(LinesPerFrame)
	for i := 0; i < total-1; i++ {
		v.Tick()
		assert.False(t, v.TakeFrameComplete())
	}
	v.Tick()
	assert.True(t, v.TakeFrameComplete())
}

func TestRunFrameProducesFullFramebuffer(t *testing.T) {
	c := New()
	frame := c.RunFrame()
	w := frameWidth + borderColumns*2
	h := frameHeight + int(firstVisible)
	assert.Len(t, frame.Pixels, w*h)
}
