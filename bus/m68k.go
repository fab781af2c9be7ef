package bus

// FunctionCode carries the 68000's FC0-FC2 pin state, distinguishing
// supervisor/user and program/data accesses for memory management and bus
// arbitration.
type FunctionCode uint8

const (
	// UserData is FC=1.
	UserData FunctionCode = 1
	// UserProgram is FC=2.
	UserProgram FunctionCode = 2
	// SupervisorData is FC=5.
	SupervisorData FunctionCode = 5
	// SupervisorProgram is FC=6.
	SupervisorProgram FunctionCode = 6
	// InterruptAck is FC=7.
	InterruptAck FunctionCode = 7
)

// FunctionCodeFromFlags builds a FunctionCode from the supervisor and
// program/data state.
func FunctionCodeFromFlags(supervisor, program bool) FunctionCode {
	switch {
	case !supervisor && !program:
		return UserData
	case !supervisor && program:
		return UserProgram
	case supervisor && !program:
		return SupervisorData
	default:
		return SupervisorProgram
	}
}

// Bits returns the 3-bit FC value.
func (fc FunctionCode) Bits() uint8 { return uint8(fc) }

// BusResult is the outcome of a word- or byte-wide 68000 bus access: the
// data (zero for writes) and any extra wait cycles the CPU must burn as
// idle ticks before the access completes — the mechanism for DMA cycle
// stealing on the Amiga.
type BusResult struct {
	Data       uint16
	WaitCycles uint8
}

// NewBusResult builds a result with data and no wait cycles.
func NewBusResult(data uint16) BusResult { return BusResult{Data: data} }

// BusResultWithWait builds a result with data and wait cycles.
func BusResultWithWait(data uint16, wait uint8) BusResult {
	return BusResult{Data: data, WaitCycles: wait}
}

// WriteOK is the result of a write with no wait cycles.
func WriteOK() BusResult { return BusResult{} }

// WriteWait is the result of a write that incurred wait cycles.
func WriteWait(wait uint8) BusResult { return BusResult{WaitCycles: wait} }

// M68kBus is the word-wide bus contract for 68000-family CPUs. All
// accesses are word-aligned; byte accesses still perform a word-width bus
// cycle (even addresses return the high byte, odd addresses the low byte).
type M68kBus interface {
	ReadWord(addr uint32, fc FunctionCode) BusResult
	WriteWord(addr uint32, value uint16, fc FunctionCode) BusResult
	ReadByte(addr uint32, fc FunctionCode) BusResult
	WriteByte(addr uint32, value uint8, fc FunctionCode) BusResult
	// Reset asserts the RESET line on the bus.
	Reset()
	// BusError reports whether an access to addr/fc would fault.
	BusError(addr uint32, fc FunctionCode) bool
	// InterruptAck runs an interrupt-acknowledge cycle for the given
	// priority level and returns the vector number — the autovector
	// (24+level) unless a device supplies its own.
	InterruptAck(level uint8) uint8
}

// CoreBusAdapter wraps a byte-wide Bus so it can serve as an M68kBus for
// components that have no contention or function-code-sensitive behaviour
// of their own (used by single-step test harnesses).
type CoreBusAdapter struct {
	Bus Bus
}

func NewCoreBusAdapter(b Bus) *CoreBusAdapter { return &CoreBusAdapter{Bus: b} }

func (a *CoreBusAdapter) ReadWord(addr uint32, _ FunctionCode) BusResult {
	hi := a.Bus.Read(addr).Data
	lo := a.Bus.Read(addr + 1).Data
	return NewBusResult(uint16(hi)<<8 | uint16(lo))
}

func (a *CoreBusAdapter) WriteWord(addr uint32, value uint16, _ FunctionCode) BusResult {
	a.Bus.Write(addr, byte(value>>8))
	a.Bus.Write(addr+1, byte(value&0xFF))
	return WriteOK()
}

func (a *CoreBusAdapter) ReadByte(addr uint32, _ FunctionCode) BusResult {
	return NewBusResult(uint16(a.Bus.Read(addr).Data))
}

func (a *CoreBusAdapter) WriteByte(addr uint32, value uint8, _ FunctionCode) BusResult {
	a.Bus.Write(addr, value)
	return WriteOK()
}

func (a *CoreBusAdapter) Reset() { a.Bus.Reset() }

func (a *CoreBusAdapter) BusError(addr uint32, fc FunctionCode) bool { return false }

func (a *CoreBusAdapter) InterruptAck(level uint8) uint8 { return 24 + level }

var _ M68kBus = (*CoreBusAdapter)(nil)
