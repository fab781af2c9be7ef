package amiga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/copper"
)

func TestLoadFileRejectsUnknownExtension(t *testing.T) {
	a := New()
	err := a.LoadFile("disk.adf", []byte{0x00})
	require.Error(t, err)
}

func TestLoadFileRejectsWrongSizedROM(t *testing.T) {
	a := New()
	err := a.LoadFile("kick.rom", []byte{0x00})
	require.Error(t, err)
}

func TestLoadKickstartBootsFromOverlay(t *testing.T) {
	a := New()
	rom := make([]byte, kickstartSize)
	// SSP = $00080000
	rom[0], rom[1], rom[2], rom[3] = 0x00, 0x08, 0x00, 0x00
	// PC = $00FC00D2
	rom[4], rom[5], rom[6], rom[7] = 0x00, 0xFC, 0x00, 0xD2
	require.NoError(t, a.LoadFile("kick.rom", rom))
	assert.Equal(t, uint32(0x00080000), a.cpu.SSP)
	assert.Equal(t, uint32(0x00FC00D2), a.cpu.PC)
}

func TestOverlayClearExposesChipRAM(t *testing.T) {
	b := newAmigaBus(nil, nil)
	rom := make([]byte, kickstartSize)
	rom[0] = 0xAB
	b.LoadKickstart(rom)
	assert.Equal(t, byte(0xAB), b.peekByte(0))
	b.chipRAM[0] = 0xCD
	b.ciaWrite(0xBFE001, 0x00) // CIA-A PRA bit0=0 clears the overlay
	assert.False(t, b.overlay)
	assert.Equal(t, byte(0xCD), b.peekByte(0))
}

func TestWritesAlwaysGoToChipRAMEvenWithOverlay(t *testing.T) {
	b := newAmigaBus(nil, nil)
	b.pokeByte(0x100, 0x42)
	assert.Equal(t, byte(0x42), b.chipRAM[0x100])
}

func TestDMAConSetClrProtocol(t *testing.T) {
	a := New()
	a.bus.WriteCustomRegister(regDMACON, 0x8000|1<<9|1<<8) // set DMAEN + BPLEN
	assert.NotZero(t, a.bus.agnus.DMACONR()&(1<<9))
	a.bus.WriteCustomRegister(regDMACON, 1<<8) // clear BPLEN only
	assert.Zero(t, a.bus.agnus.DMACONR()&(1<<8))
	assert.NotZero(t, a.bus.agnus.DMACONR()&(1<<9))
}

func TestCopperMoveWritesCustomRegisterViaBus(t *testing.T) {
	a := New()
	a.bus.WriteCustomRegister(regDMACON, 0x8000|1<<9|1<<7) // DMAEN + COPEN
	a.bus.chipRAM[0x1000] = 0x01                            // MOVE opcode (even reg offset, bit0=0)
	a.bus.chipRAM[0x1001] = 0x80                             // target $180 (COLOR00)
	a.bus.chipRAM[0x1002] = 0x0A
	a.bus.chipRAM[0x1003] = 0xBC // value $0ABC
	a.copper.COP1LC = 0x1000
	a.copper.RestartList1()
	for i := 0; i < 4; i++ {
		a.copper.Tick(copperMemReader{a.bus}, a.bus, 0, 0)
	}
	assert.Equal(t, uint16(0x0ABC), a.bus.color[0])
}

func TestCopperEndOfListNeverResolves(t *testing.T) {
	cop := &copper.Copper{}
	b := newAmigaBus(nil, cop)
	b.chipRAM[0x2000] = 0xFF
	b.chipRAM[0x2001] = 0xFF
	b.chipRAM[0x2002] = 0xFF
	b.chipRAM[0x2003] = 0xFE
	cop.COP1LC = 0x2000
	cop.RestartList1()
	cop.Tick(copperMemReader{b}, b, 0, 0)
	cop.Tick(copperMemReader{b}, b, 0, 0)
	assert.Equal(t, copper.StateIdle, cop.State)
	assert.Equal(t, uint32(0x2004), cop.PC)
}

func TestKeyboardKeycodeMapCoversLetters(t *testing.T) {
	_, ok := amigaKeycode[bus.KeyA]
	assert.True(t, ok)
	_, ok = amigaKeycode[bus.KeyEnter]
	assert.True(t, ok)
}

func TestRunFrameProducesFullFramebuffer(t *testing.T) {
	a := New()
	rom := make([]byte, kickstartSize)
	require.NoError(t, a.LoadFile("kick.rom", rom))
	frame := a.RunFrame()
	assert.Len(t, frame.Pixels, frameWidth*frameHeight)
}

func TestVideoConfigMatchesDeniseFramebuffer(t *testing.T) {
	a := New()
	cfg := a.VideoConfig()
	assert.Equal(t, frameWidth, cfg.Width)
	assert.Equal(t, frameHeight, cfg.Height)
}

var _ bus.Machine = (*Amiga)(nil)
