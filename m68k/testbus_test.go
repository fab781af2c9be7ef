package m68k

import "github.com/n-ulricksen/retrocore/bus"

// flatBus is a 1MB flat-memory M68kBus (addresses wrap at $100000) with no contention, for
// unit tests and single-step conformance harnesses.
type flatBus struct {
	mem [1 << 20]byte
}

func newFlatBus() *flatBus { return &flatBus{} }

func (b *flatBus) Load(addr uint32, data []byte) { copy(b.mem[addr:], data) }

func (b *flatBus) ReadWord(addr uint32, _ FunctionCode) bus.BusResult {
	hi, lo := b.mem[addr&0xFFFFF], b.mem[(addr+1)&0xFFFFF]
	return bus.NewBusResult(uint16(hi)<<8 | uint16(lo))
}

func (b *flatBus) WriteWord(addr uint32, v uint16, _ FunctionCode) bus.BusResult {
	b.mem[addr&0xFFFFF] = byte(v >> 8)
	b.mem[(addr+1)&0xFFFFF] = byte(v)
	return bus.WriteOK()
}

func (b *flatBus) ReadByte(addr uint32, _ FunctionCode) bus.BusResult {
	return bus.NewBusResult(uint16(b.mem[addr&0xFFFFF]))
}

func (b *flatBus) WriteByte(addr uint32, v uint8, _ FunctionCode) bus.BusResult {
	b.mem[addr&0xFFFFF] = v
	return bus.WriteOK()
}

func (b *flatBus) Reset() {}

func (b *flatBus) BusError(addr uint32, fc FunctionCode) bool { return false }

func (b *flatBus) InterruptAck(level uint8) uint8 { return 24 + level }

var _ bus.M68kBus = (*flatBus)(nil)
