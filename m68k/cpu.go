package m68k

import (
	"github.com/n-ulricksen/retrocore/bus"
	"github.com/n-ulricksen/retrocore/tick"
)

// Model selects the instruction-level CPU being emulated. Only M68000 is
// implemented; 68010/68020 are explicitly refused rather than silently
// delegated (spec.md §9's open question, resolved per its own instruction).
type Model int

const (
	M68000 Model = iota
	M68010
	M68020
)

// EngineState is the top-level state machine driving Tick.
type EngineState int

const (
	StateReset EngineState = iota
	StateRunning
	StateException
	StateStopped
	StateHalted
)

// CPU is an instruction-level 68000 core: register file, two-word IR/IRC
// prefetch pipeline, a bounded micro-op queue, and group 0/1/2 exception
// processing.
type CPU struct {
	Registers

	Bus   bus.M68kBus
	Model Model

	IR, IRC uint16
	queue   microOpQueue

	state          EngineState
	ticksRemaining int
	extraWait      int

	pendingIRQ   int8 // -1 when none pending, else priority level 1-7
	stopped      bool
	doubleFault  bool
	tracePending bool

	faultAddr   uint32
	faultFC     FunctionCode
	faultIsRead bool

	CycleCount uint64
}

// New builds a 68000 core. ConfigErr is returned (and the CPU left unusable)
// if model is anything but M68000, per the explicit refusal spec.md's open
// question requires for 68010+.
func New(b bus.M68kBus, model Model) (*CPU, error) {
	if model != M68000 {
		return nil, bus.NewConfigError(bus.UnsupportedFormat,
			"m68k: only the base M68000 instruction set is implemented; 68010/68020-specific behaviour (VBR, MOVEC, CACR) is not")
	}
	c := &CPU{Bus: b, Model: model, pendingIRQ: -1}
	c.Reset()
	return c, nil
}

// Reset pulls the initial SSP and PC from the vector table at addresses 0
// and 4 and refills the prefetch pipeline, matching the real chip's 40-tick
// reset sequence (approximated here as two prefetch fills).
func (c *CPU) Reset() {
	c.Bus.Reset()
	c.Registers = Registers{}
	c.SR.SetBit(BitS, true)
	c.SR.SetInterruptMask(7)
	c.SSP = c.readLong(0, FCData)
	c.PC = c.readLong(4, FCData)
	c.queue.clear()
	c.state = StateRunning
	c.pendingIRQ = -1
	c.stopped = false
	c.doubleFault = false
	c.refillPrefetch()
}

func (c *CPU) refillPrefetch() {
	c.IRC = c.readWord(c.PC, FCProgram)
	c.PC += 2
	c.IR = c.IRC
	c.IRC = c.readWord(c.PC, FCProgram)
	c.PC += 2
}

// RequestInterrupt signals a pending interrupt at the given priority level
// (1-7). It is sampled at the next instruction boundary.
func (c *CPU) RequestInterrupt(level uint8) {
	if level == 0 {
		c.pendingIRQ = -1
		return
	}
	c.pendingIRQ = int8(level)
}

// Halted reports whether the CPU has entered the Halted state after a
// double bus fault.
func (c *CPU) Halted() bool { return c.state == StateHalted }

// Stopped reports whether a STOP instruction is holding the CPU idle.
func (c *CPU) Stopped() bool { return c.state == StateStopped }

// Tick advances the engine by one clock tick, implementing tick.Tickable.
func (c *CPU) Tick() {
	c.CycleCount++

	switch c.state {
	case StateHalted:
		return
	case StateStopped:
		if c.pendingIRQ >= 0 && int(c.pendingIRQ) > int(c.SR.InterruptMask()) || c.pendingIRQ == 7 {
			c.state = StateRunning
			c.serviceInterruptIfPending()
		}
		return
	}

	if c.ticksRemaining > 0 {
		c.ticksRemaining--
		return
	}

	if c.serviceInterruptIfPending() {
		return
	}

	cycles := c.dispatchInstruction()
	c.ticksRemaining = cycles - 1
	if c.ticksRemaining < 0 {
		c.ticksRemaining = 0
	}
}

func (c *CPU) serviceInterruptIfPending() bool {
	if c.pendingIRQ < 0 {
		return false
	}
	level := uint8(c.pendingIRQ)
	if level != 7 && level <= c.SR.InterruptMask() {
		return false
	}
	c.pendingIRQ = -1
	c.enterException(24+uint16(level), groupFrameShort, func() {
		vector := c.Bus.InterruptAck(level)
		_ = vector
	})
	c.ticksRemaining += 44
	return true
}

// dispatchInstruction decodes IR (already prefetched) and executes it,
// issuing PromoteIRC/FetchIRC micro-ops to keep the pipeline filled, then
// returns the instruction's total tick cost.
func (c *CPU) dispatchInstruction() int {
	c.queue.push(MicroOp{Kind: OpExecute})
	c.queue.push(MicroOp{Kind: OpPromoteIRC})
	c.queue.push(MicroOp{Kind: OpFetchIRC})

	total := 0
	for {
		op, ok := c.queue.pop()
		if !ok {
			break
		}
		switch op.Kind {
		case OpExecute:
			opcode := c.IR
			cycles := c.execute(opcode)
			total += cycles
		case OpPromoteIRC:
			c.IR = c.IRC
		case OpFetchIRC:
			c.extraWait = 0
			c.IRC = c.readWord(c.PC, FCProgram)
			c.PC += 2
			total += 4 + c.extraWait
		}
	}
	return total
}

var _ tick.Tickable = (*CPU)(nil)
