package spectrum

import (
	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/tick"
	"github.com/n-ulricksen/retrocore/ula"
)

const (
	romSize = 0x4000
	ramSize = 0xC000 // $4000-$FFFF, 48KB
)

// spectrumBus is the 48K model's memory and I/O map: a 16KB ROM at
// $0000-$3FFF, 48KB of RAM at $4000-$FFFF (the first 16KB of which is the
// contended screen bank), and the ULA's single I/O port $FE (border
// colour write, keyboard/EAR read).
type spectrumBus struct {
	rom [romSize]byte
	ram [ramSize]byte

	ula      *ula.ULA
	keyboard *keyboard
	kempston byte
}

func newSpectrumBus(u *ula.ULA, kb *keyboard) *spectrumBus {
	return &spectrumBus{ula: u, keyboard: kb}
}

func (b *spectrumBus) Peek(addr uint16) byte {
	if addr < romSize {
		return b.rom[addr]
	}
	return b.ram[addr-romSize]
}

func (b *spectrumBus) Read(addr uint32) bus.ReadResult {
	a := uint16(addr)
	wait := tick.Ticks(b.ula.Contention(a))
	return bus.WithWait(b.Peek(a), wait)
}

func (b *spectrumBus) Write(addr uint32, value byte) tick.Ticks {
	a := uint16(addr)
	wait := tick.Ticks(b.ula.Contention(a))
	if a >= romSize {
		b.ram[a-romSize] = value
	}
	return wait
}

func (b *spectrumBus) IORead(addr uint32) bus.ReadResult {
	port := uint16(addr)
	wait := tick.Ticks(b.ula.IOContention(port))
	switch {
	case port&0x0001 == 0: // $FE and mirrors: keyboard + EAR bit
		row := b.keyboard.read(byte(port >> 8))
		return bus.WithWait(row, wait)
	case port&0xE0 == 0: // Kempston joystick, port $1F (A5-A7 low)
		return bus.WithWait(b.kempston, wait)
	default:
		return bus.WithWait(b.ula.FloatingBus(b), wait)
	}
}

func (b *spectrumBus) IOWrite(addr uint32, value byte) tick.Ticks {
	port := uint16(addr)
	wait := tick.Ticks(b.ula.IOContention(port))
	if port&0x0001 == 0 {
		b.ula.WriteFEPort(value)
	}
	return wait
}

func (b *spectrumBus) Reset() {}

// LoadROM installs the 16KB Spectrum ROM image.
func (b *spectrumBus) LoadROM(data []byte) {
	copy(b.rom[:], data)
}

var _ bus.Bus = (*spectrumBus)(nil)
var _ ula.MemReader = (*spectrumBus)(nil)
