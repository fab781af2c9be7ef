package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/ula"
)

func TestLoadFileRejectsWrongSizedROM(t *testing.T) {
	s := New()
	err := s.LoadFile("48.rom", []byte{0x00})
	require.Error(t, err)
}

func TestLoadFileRejectsUnknownExtension(t *testing.T) {
	s := New()
	err := s.LoadFile("snapshot.sna", make([]byte, romImageSize))
	require.Error(t, err)
}

func TestLoadFileInstallsROMAndResets(t *testing.T) {
	s := New()
	rom := make([]byte, romImageSize)
	rom[0] = 0xF3 // DI, a plausible first ROM byte
	require.NoError(t, s.LoadFile("48.rom", rom))
	assert.Equal(t, byte(0xF3), s.bus.Peek(0x0000))
	assert.Equal(t, uint16(0), s.cpu.PC)
}

func TestKeyboardMatrixSetAndReadHalfRow(t *testing.T) {
	kb := newKeyboard()
	kb.setKey(bus.KeyA, true)
	// Row 1 (A/S/D/F/G) selected by clearing bit 1 of the high byte.
	v := kb.read(0xFD)
	assert.Equal(t, byte(0x1E), v&0x1F) // bit 0 (A) low, others high
}

func TestKeyboardReleaseRestoresHighBit(t *testing.T) {
	kb := newKeyboard()
	kb.setKey(bus.KeyA, true)
	kb.setKey(bus.KeyA, false)
	v := kb.read(0xFD)
	assert.Equal(t, byte(0x1F), v&0x1F)
}

func TestKempstonByteMapsDirectionsAndFire(t *testing.T) {
	b := kempstonByte(bus.JoystickState{Right: true, Up: true, Fire: true})
	assert.Equal(t, byte(0x01|0x08|0x10), b)
}

func TestContendedRAMAccrueWaitStates(t *testing.T) {
	u := ula.New()
	kb := newKeyboard()
	b := newSpectrumBus(u, kb)
	// Force the beam into the active display window where contention applies.
	for u.Line != 100 || u.LineTstate != 0 {
		u.Tick()
	}
	res := b.Read(0x4000)
	assert.Equal(t, byte(6), uint8(res.Wait))
}

func TestUncontendedRAMHasNoWaitStates(t *testing.T) {
	u := ula.New()
	kb := newKeyboard()
	b := newSpectrumBus(u, kb)
	for u.Line != 100 || u.LineTstate != 0 {
		u.Tick()
	}
	res := b.Read(0x8000)
	assert.Equal(t, byte(0), uint8(res.Wait))
}

func TestRunFrameProducesFullFramebufferIncludingBorder(t *testing.T) {
	s := New()
	rom := make([]byte, romImageSize)
	require.NoError(t, s.LoadFile("48.rom", rom))

	frame := s.RunFrame()
	assert.Len(t, frame.Pixels, frameW*frameH)
}
