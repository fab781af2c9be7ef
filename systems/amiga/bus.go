package amiga

import (
	"github.com/n-ulricksen/retrocore/agnus"
	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/copper"
)

const (
	chipRAMSize    = 512 * 1024 // A500 base chip RAM
	chipRAMMask    = chipRAMSize - 1
	kickstartSize  = 256 * 1024
	kickstartBase  = 0xF80000
	customRegBase  = 0xDFF000
	customRegSize  = 0x200
)

// Custom-register byte offsets from $DFF000, bit-exact per spec.md §6.
const (
	regDMACON  = 0x096
	regINTENA  = 0x09A
	regINTREQ  = 0x09C
	regADKCON  = 0x09E
	regCOP1LCH = 0x080
	regCOP1LCL = 0x082
	regCOP2LCH = 0x084
	regCOP2LCL = 0x086
	regCOPJMP1 = 0x088
	regCOPJMP2 = 0x08A
	regDIWSTRT = 0x08E
	regDIWSTOP = 0x090
	regDDFSTRT = 0x092
	regDDFSTOP = 0x094
	regBPL1PTH = 0x0E0
	regBPL6PTL = 0x0F6
	regBPLCON0 = 0x100
	regBPLCON1 = 0x102
	regBPLCON2 = 0x104
	regCOLOR00 = 0x180
	regCOLOR31 = 0x1BE
	regVPOSR   = 0x004
	regVHPOSR  = 0x006
	regJOY0DAT = 0x00A
	regJOY1DAT = 0x00C
)

// amigaBus is the Amiga 500's 68000 memory map: chip RAM at $000000 (with
// the reset-time Kickstart overlay), the custom chip register page at
// $DFF000, CIA-A/CIA-B at $BFE001/$BFD000 (keyboard + overlay-clear +
// joystick ports), and Kickstart ROM at $F80000. Grounded on
// original_source/crates/emu-amiga/src/memory.rs's overlay scheme and
// spec.md §6's bit-exact register offsets.
type amigaBus struct {
	chipRAM   [chipRAMSize]byte
	kickstart [kickstartSize]byte
	overlay   bool

	agnus  *agnus.Agnus
	copper *copper.Copper

	diwstrt, diwstop uint16
	bplcon0          uint16
	bplcon1          uint16
	bplcon2          uint16
	bplPt            [6]uint32
	color            [32]uint16

	cia    ciaState
	joy0   uint16
	joy1   uint16
}

func newAmigaBus(ag *agnus.Agnus, cop *copper.Copper) *amigaBus {
	b := &amigaBus{agnus: ag, copper: cop, overlay: true}
	return b
}

// LoadKickstart installs the 256K Kickstart ROM image.
func (b *amigaBus) LoadKickstart(data []byte) { copy(b.kickstart[:], data) }

func (b *amigaBus) Reset() {
	b.overlay = true
	b.cia = ciaState{}
}

func (b *amigaBus) BusError(addr uint32, fc bus.FunctionCode) bool { return false }

func (b *amigaBus) InterruptAck(level uint8) uint8 { return 24 + level }

// peekByte resolves a read without side effects beyond chip-RAM DMA
// contention, which is charged separately by readByte/readWord.
func (b *amigaBus) peekByte(addr uint32) byte {
	addr &= 0x00FFFFFF
	if b.overlay && addr < kickstartSize {
		return b.kickstart[addr]
	}
	switch {
	case addr < chipRAMSize:
		return b.chipRAM[addr]
	case addr >= kickstartBase:
		return b.kickstart[(addr-kickstartBase)%kickstartSize]
	case addr >= 0xBFD000 && addr < 0xBFF000:
		return b.ciaRead(addr)
	case addr >= customRegBase && addr < customRegBase+customRegSize:
		return byte(b.readCustomRegister(uint16(addr-customRegBase) &^ 1))
	default:
		return 0xFF
	}
}

func (b *amigaBus) pokeByte(addr uint32, v byte) {
	addr &= 0x00FFFFFF
	switch {
	case addr < chipRAMSize:
		b.chipRAM[addr] = v
	case addr >= 0xBFD000 && addr < 0xBFF000:
		b.ciaWrite(addr, v)
	}
}

func (b *amigaBus) contention(addr uint32) uint8 {
	addr &= 0x00FFFFFF
	if addr >= chipRAMSize || (b.overlay && addr < kickstartSize) {
		return 0
	}
	return uint8(b.agnus.AccessChipRAM().Wait)
}

func (b *amigaBus) ReadByte(addr uint32, _ bus.FunctionCode) bus.BusResult {
	return bus.BusResultWithWait(uint16(b.peekByte(addr)), b.contention(addr))
}

func (b *amigaBus) WriteByte(addr uint32, v uint8, _ bus.FunctionCode) bus.BusResult {
	wait := b.contention(addr)
	a := addr & 0x00FFFFFF
	if a >= customRegBase && a < customRegBase+customRegSize {
		off := uint16(a-customRegBase) &^ 1
		cur := b.readCustomRegister(off)
		if a&1 == 0 {
			b.WriteCustomRegister(off, uint16(v)<<8|cur&0xFF)
		} else {
			b.WriteCustomRegister(off, cur&0xFF00|uint16(v))
		}
		return bus.WriteWait(wait)
	}
	b.pokeByte(addr, v)
	return bus.WriteWait(wait)
}

func (b *amigaBus) ReadWord(addr uint32, _ bus.FunctionCode) bus.BusResult {
	addr &= 0x00FFFFFE
	wait := b.contention(addr)
	if addr >= customRegBase && addr < customRegBase+customRegSize {
		return bus.BusResultWithWait(b.readCustomRegister(uint16(addr-customRegBase)), wait)
	}
	hi := uint16(b.peekByte(addr))
	lo := uint16(b.peekByte(addr + 1))
	return bus.BusResultWithWait(hi<<8|lo, wait)
}

func (b *amigaBus) WriteWord(addr uint32, v uint16, _ bus.FunctionCode) bus.BusResult {
	addr &= 0x00FFFFFE
	wait := b.contention(addr)
	if addr >= customRegBase && addr < customRegBase+customRegSize {
		b.WriteCustomRegister(uint16(addr-customRegBase), v)
		return bus.WriteWait(wait)
	}
	b.pokeByte(addr, byte(v>>8))
	b.pokeByte(addr+1, byte(v))
	return bus.WriteWait(wait)
}

// readWordRaw is the Copper's own fetch path: plain chip-RAM word reads,
// with no function-code or contention accounting of their own (the slot
// arbiter already decided this CCK belongs to the Copper before Tick runs).
func (b *amigaBus) readWordRaw(addr uint32) uint16 {
	addr &= chipRAMMask &^ 1
	return uint16(b.chipRAM[addr])<<8 | uint16(b.chipRAM[addr+1])
}

// copperMemReader adapts amigaBus to copper.MemReader's no-function-code
// signature (Go forbids two ReadWord methods with different signatures on
// one receiver).
type copperMemReader struct{ b *amigaBus }

func (r copperMemReader) ReadWord(addr uint32) uint16 { return r.b.readWordRaw(addr) }

func (b *amigaBus) readCustomRegister(offset uint16) uint16 {
	switch offset {
	case regDMACON:
		return b.agnus.DMACONR()
	case regINTENA:
		return b.agnus.INTENAR()
	case regINTREQ:
		return b.agnus.INTREQR()
	case regADKCON:
		return b.agnus.ADKCONR()
	case regVPOSR:
		return b.agnus.VPOSR()
	case regVHPOSR:
		return b.agnus.VHPOSR()
	case regJOY0DAT:
		return uint16(b.joy0)
	case regJOY1DAT:
		return uint16(b.joy1)
	default:
		return 0xFFFF // unimplemented chipset register, open-bus-ish
	}
}

// WriteCustomRegister implements copper.RegisterWriter and is also the
// single dispatch point 68000 writes to $DFF000-$DFF1FF go through, so a
// Copper MOVE and a CPU store behave identically.
func (b *amigaBus) WriteCustomRegister(offset uint16, value uint16) {
	switch {
	case offset == regDMACON:
		b.agnus.WriteDMACON(value)
	case offset == regINTENA:
		b.agnus.WriteINTENA(value)
	case offset == regINTREQ:
		b.agnus.WriteINTREQ(value)
	case offset == regADKCON:
		b.agnus.WriteADKCON(value)
	case offset == regCOP1LCH:
		b.copper.COP1LC = b.copper.COP1LC&0x0000FFFF | uint32(value)<<16
	case offset == regCOP1LCL:
		b.copper.COP1LC = b.copper.COP1LC&0xFFFF0000 | uint32(value)
	case offset == regCOP2LCH:
		b.copper.COP2LC = b.copper.COP2LC&0x0000FFFF | uint32(value)<<16
	case offset == regCOP2LCL:
		b.copper.COP2LC = b.copper.COP2LC&0xFFFF0000 | uint32(value)
	case offset == regCOPJMP1:
		b.copper.RestartList1()
	case offset == regCOPJMP2:
		b.copper.RestartList2()
	case offset == regDIWSTRT:
		b.diwstrt = value
	case offset == regDIWSTOP:
		b.diwstop = value
	case offset == regDDFSTRT:
		b.agnus.DDFSTRT = value
	case offset == regDDFSTOP:
		b.agnus.DDFSTOP = value
	case offset >= regBPL1PTH && offset <= regBPL6PTL:
		b.writeBplPt(offset, value)
	case offset == regBPLCON0:
		b.bplcon0 = value
		b.agnus.Bitplanes = uint8(value>>12) & 0x7
	case offset == regBPLCON1:
		b.bplcon1 = value
	case offset == regBPLCON2:
		b.bplcon2 = value
	case offset >= regCOLOR00 && offset <= regCOLOR31:
		b.color[(offset-regCOLOR00)/2] = value & 0x0FFF
	}
}

func (b *amigaBus) writeBplPt(offset uint16, value uint16) {
	idx := (offset - regBPL1PTH) / 4
	if (offset-regBPL1PTH)%4 == 0 {
		b.bplPt[idx] = b.bplPt[idx]&0x0000FFFF | uint32(value)<<16
	} else {
		b.bplPt[idx] = b.bplPt[idx]&0xFFFF0000 | uint32(value)
	}
}

var _ bus.M68kBus = (*amigaBus)(nil)
var _ copper.RegisterWriter = (*amigaBus)(nil)
