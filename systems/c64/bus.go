package c64

import (
	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/tick"
)

const (
	ramSize     = 0x10000
	basicBase   = 0xA000
	basicSize   = 0x2000
	kernalBase  = 0xE000
	kernalSize  = 0x2000
	charBase    = 0xD000
	charSize    = 0x1000
	ioBase      = 0xD000
	ioSize      = 0x1000
	vicRegBase  = 0xD000
	vicRegCount = 0x2F
	ciaBase     = 0xDC00
)

// c64Bus is the C64 memory map with the stock PLA banking configuration
// (BASIC+KERNAL+I/O mapped in, as at power-on): $0000-$9FFF and $C000-$CFFF
// RAM, $A000-$BFFF BASIC ROM, $D000-$DFFF VIC-II/SID/CIA/colour RAM I/O,
// $E000-$FFFF KERNAL ROM. Bank switching via $0001 is out of scope for this
// core (see DESIGN.md); the machine always runs with ROMs banked in.
type c64Bus struct {
	ram      [ramSize]byte
	basic    [basicSize]byte
	kernal   [kernalSize]byte
	charROM  [charSize]byte
	colorRAM [1024]byte

	vic *Vic
	cia *cia
}

func newC64Bus() *c64Bus {
	b := &c64Bus{}
	b.cia = newCIA(newKeyboard())
	b.vic = NewVic(b)
	return b
}

func (b *c64Bus) Read(addr uint32) bus.ReadResult {
	a := uint16(addr)
	switch {
	case a >= kernalBase:
		return bus.WithWait(b.kernal[a-kernalBase], 0)
	case a >= ioBase && a < ioBase+ioSize:
		return bus.WithWait(b.readIO(a), 0)
	case a >= basicBase && a < basicBase+basicSize:
		return bus.WithWait(b.basic[a-basicBase], 0)
	default:
		return bus.WithWait(b.ram[a], 0)
	}
}

func (b *c64Bus) Write(addr uint32, value byte) tick.Ticks {
	a := uint16(addr)
	if a >= ioBase && a < ioBase+ioSize {
		b.writeIO(a, value)
		return 0
	}
	b.ram[a] = value
	return 0
}

func (b *c64Bus) readIO(addr uint16) byte {
	off := addr - ioBase
	switch {
	case off < vicRegCount:
		return b.vic.ReadRegister(byte(off))
	case addr >= 0xD800 && addr < 0xDC00:
		return b.colorRAM[addr-0xD800] & 0x0F
	case addr >= ciaBase && addr < ciaBase+0x100:
		return b.cia.read(byte(addr - ciaBase))
	default:
		return 0xFF
	}
}

func (b *c64Bus) writeIO(addr uint16, value byte) {
	off := addr - ioBase
	switch {
	case off < vicRegCount:
		b.vic.WriteRegister(byte(off), value)
	case addr >= 0xD800 && addr < 0xDC00:
		b.colorRAM[addr-0xD800] = value & 0x0F
	case addr >= ciaBase && addr < ciaBase+0x100:
		b.cia.write(byte(addr-ciaBase), value)
	}
}

// IORead/IOWrite: the C64 is entirely memory-mapped, so the CPU's separate
// I/O space goes unused here (see bus.Bus's doc comment on memory-mapped
// systems returning a sentinel).
func (b *c64Bus) IORead(addr uint32) bus.ReadResult { return bus.WithWait(0xFF, 0) }
func (b *c64Bus) IOWrite(addr uint32, value byte) tick.Ticks { return 0 }

func (b *c64Bus) Reset() {}

// VicRead implements c64.VicMemory: the VIC-II reads screen/colour/char
// data straight out of the bus's backing arrays, bypassing CPU bank
// switching (real VIC-II bank selection via CIA2 $DD00 is out of scope;
// the VIC always sees bank 0's layout).
func (b *c64Bus) VicRead(addr uint16) byte {
	if addr >= charBase && addr < charBase+charSize {
		return b.charROM[addr-charBase]
	}
	if addr >= 0xD800 && addr < 0xDC00 {
		return b.colorRAM[addr-0xD800]
	}
	return b.ram[addr]
}

// LoadROMs installs the KERNAL, BASIC and character ROM images.
func (b *c64Bus) LoadROMs(kernal, basic, char []byte) {
	copy(b.kernal[:], kernal)
	copy(b.basic[:], basic)
	copy(b.charROM[:], char)
}

// LoadPRG installs a PRG image (2-byte little-endian load address followed
// by data) into RAM, grounded on prg.rs's load_prg.
func (b *c64Bus) LoadPRG(data []byte) (uint16, error) {
	if len(data) < 3 {
		return 0, bus.NewConfigError(bus.RomWrongSize, "PRG file too short")
	}
	loadAddr := uint16(data[0]) | uint16(data[1])<<8
	for i, v := range data[2:] {
		b.ram[loadAddr+uint16(i)] = v
	}
	return loadAddr, nil
}

var _ bus.Bus = (*c64Bus)(nil)
var _ VicMemory = (*c64Bus)(nil)
