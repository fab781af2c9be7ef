package z80

import (
	"log"

	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/tick"
)

// CPU is an instruction-level Z80 core. Like cpu6502.CPU, one Tick() call
// burns one T-state; the full instruction is decoded and executed on the
// first T-state of its duration and the remaining T-states are idle, with
// any bus wait states folded into the remaining count.
type CPU struct {
	Registers

	Bus bus.Bus

	cycles     int
	waitCycles int // contention/wait states accrued during the in-flight instruction
	prefix     byte // 0x00, 0xCB, 0xED, 0xDD, 0xFD
	afterEI    bool
	pendingNMI bool
	irqVector  int // -1 when no IRQ is pending, else the IM0 instruction/IM2 vector byte

	CycleCount uint64
	Logger     *log.Logger
}

// New builds a power-on-reset Z80 core wired to the given bus.
func New(b bus.Bus, logger *log.Logger) *CPU {
	cpu := &CPU{Bus: b, Logger: logger}
	cpu.Reset()
	return cpu
}

// Reset pulls every register to its documented power-on state.
func (c *CPU) Reset() {
	c.Registers = Registers{SP: 0xFFFF, F: 0}
	c.prefix = 0
	c.cycles = 0
	c.waitCycles = 0
	c.irqVector = -1
	c.pendingNMI = false
	c.afterEI = false
}

// read/write/ioIn/ioOut accrue any wait states the bus reports (e.g. ZX
// Spectrum memory/IO contention) into waitCycles, added on top of the
// instruction's base timing once Tick() computes it — the same way real
// contended hardware stretches the affected T-states rather than the whole
// instruction.
func (c *CPU) read(addr uint16) byte {
	r := c.Bus.Read(uint32(addr))
	c.waitCycles += int(r.Wait)
	return r.Data
}

func (c *CPU) write(addr uint16, v byte) {
	c.waitCycles += int(c.Bus.Write(uint32(addr), v))
}

func (c *CPU) ioIn(port uint16) byte {
	r := c.Bus.IORead(uint32(port))
	c.waitCycles += int(r.Wait)
	return r.Data
}

func (c *CPU) ioOut(port uint16, v byte) {
	c.waitCycles += int(c.Bus.IOWrite(uint32(port), v))
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.read(addr)
	hi := c.read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeWord(addr uint16, v uint16) {
	c.write(addr, byte(v))
	c.write(addr+1, byte(v>>8))
}

func (c *CPU) fetchByte() byte {
	b := c.read(c.PC)
	c.PC++
	return b
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push(v uint16) {
	c.SP--
	c.write(c.SP, byte(v>>8))
	c.SP--
	c.write(c.SP, byte(v))
}

func (c *CPU) pop() uint16 {
	lo := c.read(c.SP)
	c.SP++
	hi := c.read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// NMI requests a non-maskable interrupt, serviced at the next instruction
// boundary: it clears IFF1 (leaving IFF2 as a save of the pre-NMI state) and
// calls $0066.
func (c *CPU) NMI() { c.pendingNMI = true }

// IRQ requests a maskable interrupt, delivering the given data-bus value
// (relevant for IM0, where it is interpreted as an instruction opcode -
// typically RST n - and IM2, where it is the low byte of the vector table
// index). The request stays pending until an instruction boundary where
// IFF1 is set (and the previous instruction was not EI).
func (c *CPU) IRQ(busValue byte) { c.irqVector = int(busValue) }

// Tick advances the core by one T-state.
func (c *CPU) Tick() {
	if c.cycles > 0 {
		c.cycles--
		c.CycleCount++
		return
	}

	if c.pendingNMI {
		c.pendingNMI = false
		c.Halted = false
		c.IFF2 = c.IFF1
		c.IFF1 = false
		c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
		c.push(c.PC)
		c.PC = 0x0066
		c.cycles = 11 + c.waitCycles - 1
		c.waitCycles = 0
		c.CycleCount++
		return
	}

	if c.irqVector >= 0 && c.IFF1 && !c.afterEI {
		vector := byte(c.irqVector)
		c.irqVector = -1
		c.Halted = false
		c.IFF1, c.IFF2 = false, false
		c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
		switch c.IM {
		case 0:
			c.cycles = c.execute(vector) + 2 + c.waitCycles - 1
		case 1:
			c.push(c.PC)
			c.PC = 0x0038
			c.cycles = 13 + c.waitCycles - 1
		case 2:
			c.push(c.PC)
			addr := uint16(c.I)<<8 | uint16(vector)
			c.PC = c.readWord(addr)
			c.cycles = 19 + c.waitCycles - 1
		}
		c.waitCycles = 0
		c.CycleCount++
		return
	}
	c.afterEI = false

	if c.Halted {
		c.cycles = 4 + c.waitCycles - 1
		c.waitCycles = 0
		c.CycleCount++
		return
	}

	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
	opcode := c.fetchByte()
	c.cycles = c.execute(opcode) + c.waitCycles - 1
	c.waitCycles = 0
	c.CycleCount++
}

var _ tick.Tickable = (*CPU)(nil)
