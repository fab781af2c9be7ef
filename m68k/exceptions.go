package m68k

// groupFrameShort is the 6-byte (SR, PC) stack frame used by Group 1
// (trace, interrupt, illegal, privilege) and Group 2 (TRAP#n, TRAPV, CHK,
// zero-divide) exceptions.
const groupFrameShort = false

// groupFrameLong is the 14-byte (SR, PC, IR, access type, fault address)
// frame used by Group 0 (reset, address error, bus error).
const groupFrameLong = true

const (
	vecBusError       = 2
	vecAddressError   = 3
	vecIllegal        = 4
	vecZeroDivide     = 5
	vecCHK            = 6
	vecTRAPV          = 7
	vecPrivilege      = 8
	vecTrace          = 9
	vecLineA          = 10
	vecLineF          = 11
)

// enterException saves SR, sets S, clears T, loads the vector-table entry
// for vector into PC, and refills the prefetch pipeline. before, if
// non-nil, runs after the old SR/PC are captured but before the new PC is
// read (used for interrupt-ack's vector lookup).
func (c *CPU) enterException(vector uint16, longFrame bool, before func()) {
	oldSR := c.SR.Value()
	oldPC := c.PC

	c.SR.SetBit(BitS, true)
	c.SR.SetBit(BitT, false)

	if before != nil {
		before()
	}

	sp := c.A7()
	if longFrame {
		sp -= 4
		c.writeLong(sp, oldPC, FCData)
		sp -= 2
		c.writeWord(sp, oldSR, FCData)
		sp -= 2
		c.writeWord(sp, uint16(c.IR), FCData)
		sp -= 4
		c.writeLong(sp, c.faultAddr, FCData)
		sp -= 2
		c.writeWord(sp, accessTypeWord(c.faultFC, c.faultIsRead), FCData)
	} else {
		sp -= 4
		c.writeLong(sp, oldPC, FCData)
		sp -= 2
		c.writeWord(sp, oldSR, FCData)
	}
	c.SetA7(sp)

	c.PC = c.readLong(uint32(vector)*4, FCData)
	c.refillPrefetch()
}

func (c *CPU) raiseIllegal() {
	c.enterException(vecIllegal, groupFrameShort, nil)
}

func (c *CPU) raisePrivilegeViolation() {
	c.enterException(vecPrivilege, groupFrameShort, nil)
}

func (c *CPU) raiseZeroDivide() {
	c.enterException(vecZeroDivide, groupFrameShort, nil)
}

func (c *CPU) raiseCHK() {
	c.enterException(vecCHK, groupFrameShort, nil)
}

func (c *CPU) raiseTRAPV() {
	c.enterException(vecTRAPV, groupFrameShort, nil)
}

func (c *CPU) raiseTrap(n uint16) {
	c.enterException(32+n, groupFrameShort, nil)
}

// accessTypeWord builds the Group 0 frame's access-type word: the faulting
// access's function code in bits 2-0 and its read/write direction in bit 4
// (set for a read), the two pieces of information a handler needs to
// identify and retry the faulting cycle.
func accessTypeWord(fc FunctionCode, isRead bool) uint16 {
	w := uint16(fc.Bits()) & 0x7
	if isRead {
		w |= 1 << 4
	}
	return w
}

// enterGroup0 enters a Group 0 exception (bus error or address error) for
// the given faulting access. A Group 0 fault hit while already unwinding a
// Group 0 exception is a double bus fault, which halts the CPU (the real
// chip's terminal failure mode).
func (c *CPU) enterGroup0(vector uint16, addr uint32, fc FunctionCode, isRead bool) {
	if c.state == StateException {
		c.state = StateHalted
		return
	}
	c.faultAddr, c.faultFC, c.faultIsRead = addr, fc, isRead
	prevState := c.state
	c.state = StateException
	c.enterException(vector, groupFrameLong, nil)
	if c.state != StateHalted {
		c.state = prevState
	}
}

// raiseBusError enters Group 0 exception processing for an access the bus
// reports as faulting (unmapped region configured to fail instead of
// returning open-bus data).
func (c *CPU) raiseBusError(addr uint32, fc FunctionCode, isRead bool) {
	c.enterGroup0(vecBusError, addr, fc, isRead)
}

// raiseAddressError enters Group 0 processing for an odd-address word/long
// access, the other Group 0 fault besides a true bus error.
func (c *CPU) raiseAddressError(addr uint32, fc FunctionCode, isRead bool) {
	c.enterGroup0(vecAddressError, addr, fc, isRead)
}
