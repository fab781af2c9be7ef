package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalINES(prgBanks, chrBanks byte, prg []byte) []byte {
	header := make([]byte, headerLen)
	header[0], header[1], header[2], header[3] = 'N', 'E', 'S', 0x1A
	header[4] = prgBanks
	header[5] = chrBanks
	img := append(header, prg...)
	if chrBanks > 0 {
		img = append(img, make([]byte, int(chrBanks)*chrBankLen)...)
	}
	return img
}

func TestParseINESRejectsBadMagic(t *testing.T) {
	_, err := ParseINES([]byte("not an ines file"))
	require.Error(t, err)
}

func TestParseINESRejectsNonZeroMapper(t *testing.T) {
	img := minimalINES(1, 1, make([]byte, prgBankLen))
	img[6] = 0x10 // mapper nibble low = 1
	_, err := ParseINES(img)
	require.Error(t, err)
}

func TestParseINESBuildsUsablePRG(t *testing.T) {
	prg := make([]byte, prgBankLen)
	prg[0] = 0xEA // NOP, just a marker byte
	img := minimalINES(1, 1, prg)
	cart, err := ParseINES(img)
	require.NoError(t, err)
	require.NotNil(t, cart)

	v, ok := cart.CPURead(0x8000)
	assert.True(t, ok)
	assert.Equal(t, byte(0xEA), v)

	// 16KB PRG mirrors across $C000 too.
	v, ok = cart.CPURead(0xC000)
	assert.True(t, ok)
	assert.Equal(t, byte(0xEA), v)
}

func TestParseINESWithNoCHRBanksUsesCHRRAM(t *testing.T) {
	img := minimalINES(1, 0, make([]byte, prgBankLen))
	cart, err := ParseINES(img)
	require.NoError(t, err)
	assert.True(t, cart.PPUWrite(0x0000, 0x42))
	v, ok := cart.PPURead(0x0000)
	require.True(t, ok)
	assert.Equal(t, byte(0x42), v)
}

func TestControllerShiftsOutButtonsInOrder(t *testing.T) {
	c := newController()
	c.setButton(btnA, true)
	c.setButton(btnRight, true)
	c.write(1) // strobe high: latch
	c.write(0) // strobe low: start shifting
	assert.Equal(t, byte(1), c.read()&0x01) // btnA first
	for i := 0; i < 6; i++ {
		c.read()
	}
	assert.Equal(t, byte(1), c.read()&0x01) // btnRight, 8th bit
}

func TestControllerWhileStrobedAlwaysReportsButtonA(t *testing.T) {
	c := newController()
	c.setButton(btnA, true)
	c.write(1) // strobe stays high
	assert.Equal(t, byte(1), c.read()&0x01)
	assert.Equal(t, byte(1), c.read()&0x01)
}

func TestLoadFileRejectsUnknownExtension(t *testing.T) {
	n := New()
	err := n.LoadFile("game.bin", []byte{0x00})
	require.Error(t, err)
}

func TestLoadFileWiresCartridgeAndResets(t *testing.T) {
	n := New()
	prg := make([]byte, prgBankLen)
	// reset vector at $FFFC/$FFFD -> points into $8000 bank start
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	img := minimalINES(1, 1, prg)
	require.NoError(t, n.LoadFile("game.nes", img))
	assert.NotNil(t, n.cart)
	assert.Equal(t, uint16(0x8000), n.cpu.Pc)
}

func TestRunFrameProducesFullFramebuffer(t *testing.T) {
	n := New()
	prg := make([]byte, prgBankLen)
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80 // reset vector -> $8000
	img := minimalINES(1, 1, prg)
	require.NoError(t, n.LoadFile("game.nes", img))

	frame := n.RunFrame()
	assert.Len(t, frame.Pixels, 256*240)
}
