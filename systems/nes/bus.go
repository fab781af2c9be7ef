package nes

import (
	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/ppu"
	"github.com/n-ulricksen/retrocore/tick"
)

// nesBus is the CPU-side memory map: 2KB internal RAM mirrored four times
// across $0000-$1FFF, the PPU's 8 registers mirrored across $2000-$3FFF,
// the APU/IO page at $4000-$4017, and the cartridge's PRG window at
// $8000-$FFFF.
//
// Grounded on the teacher's nes/bus.go, which wired the same three regions
// (RAM mirror, PPU register mirror, cartridge window) through CpuRead/
// CpuWrite; this version also routes $4014 (OAM DMA) and $4016/$4017
// (controllers), which the teacher's bus left unhandled.
type nesBus struct {
	ram         [2048]byte
	ppu         *ppu.PPU
	cart        *Cartridge
	controllers [2]*controller

	dmaPending bool
	dmaPage    byte
}

func newNESBus(p *ppu.PPU, cart *Cartridge, pads [2]*controller) *nesBus {
	return &nesBus{ppu: p, cart: cart, controllers: pads}
}

func (b *nesBus) Read(addr uint32) bus.ReadResult {
	a := uint16(addr)
	switch {
	case a < 0x2000:
		return bus.NewReadResult(b.ram[a&0x07FF])
	case a < 0x4000:
		return bus.NewReadResult(b.ppu.CPURead(a & 0x0007))
	case a == 0x4016:
		return bus.NewReadResult(b.controllers[0].read())
	case a == 0x4017:
		return bus.NewReadResult(b.controllers[1].read())
	case a >= 0x8000:
		if b.cart != nil {
			if v, ok := b.cart.CPURead(a); ok {
				return bus.NewReadResult(v)
			}
		}
	}
	return bus.NewReadResult(0)
}

func (b *nesBus) Write(addr uint32, value byte) tick.Ticks {
	a := uint16(addr)
	switch {
	case a < 0x2000:
		b.ram[a&0x07FF] = value
	case a < 0x4000:
		b.ppu.CPUWrite(a&0x0007, value)
	case a == 0x4014:
		b.dmaPending = true
		b.dmaPage = value
	case a == 0x4016:
		// both controllers share the single strobe line at $4016
		b.controllers[0].write(value)
		b.controllers[1].write(value)
	case a >= 0x8000:
		if b.cart != nil {
			b.cart.CPUWrite(a, value)
		}
	}
	return 0
}

// TakeDMARequest reports and clears a pending $4014 OAM DMA request; the
// owning machine services it by reading 256 bytes from CPU page b.dmaPage
// through this bus and feeding them to the PPU; the CPU's 513/514-cycle
// DMA stall is not modelled.
func (b *nesBus) TakeDMARequest() (page byte, pending bool) {
	p := b.dmaPage
	pend := b.dmaPending
	b.dmaPending = false
	return p, pend
}

func (b *nesBus) IORead(addr uint32) bus.ReadResult           { return bus.NewReadResult(0xFF) }
func (b *nesBus) IOWrite(addr uint32, value byte) tick.Ticks { return 0 }

func (b *nesBus) Reset() {
	b.ppu.Reset()
}

var _ bus.Bus = (*nesBus)(nil)
