package z80

import (
	"testing"

	"github.com/n-ulricksen/retrocore/bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(cpu *CPU, instructions int) {
	for i := 0; i < instructions; i++ {
		cpu.Tick()
		for cpu.cycles > 0 {
			cpu.Tick()
		}
	}
}

func TestResetState(t *testing.T) {
	mem := bus.NewFlatMemory()
	cpu := New(mem, nil)

	assert.Equal(t, uint16(0), cpu.PC)
	assert.Equal(t, uint16(0xFFFF), cpu.SP)
	assert.False(t, cpu.IFF1)
	assert.False(t, cpu.Halted)
}

func TestLdBcNnAndIncDec(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{
		0x01, 0x34, 0x12, // LD BC, $1234
		0x03,             // INC BC
		0x0B,             // DEC BC
	})
	cpu := New(mem, nil)
	run(cpu, 3)

	require.Equal(t, uint16(0x1234), cpu.BC())
}

func TestExAfAf(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{0x08}) // EX AF,AF'
	cpu := New(mem, nil)
	cpu.A, cpu.F = 0x12, 0x34
	cpu.A2, cpu.F2 = 0x56, 0x78
	run(cpu, 1)

	assert.Equal(t, byte(0x56), cpu.A)
	assert.Equal(t, byte(0x78), cpu.F)
	assert.Equal(t, byte(0x12), cpu.A2)
	assert.Equal(t, byte(0x34), cpu.F2)
}

func TestStackPushPop(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{
		0x01, 0x00, 0x20, // LD BC, $2000
		0xC5,             // PUSH BC
		0x01, 0x00, 0x00, // LD BC, $0000
		0xC1, // POP BC
	})
	cpu := New(mem, nil)
	cpu.SP = 0xFFF0
	run(cpu, 4)

	assert.Equal(t, uint16(0x2000), cpu.BC())
	assert.Equal(t, uint16(0xFFF0), cpu.SP)
}

func TestAddAWithCarry(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{
		0x3E, 0xFF, // LD A, $FF
		0xC6, 0x01, // ADD A, $01
	})
	cpu := New(mem, nil)
	run(cpu, 2)

	assert.Equal(t, byte(0x00), cpu.A)
	assert.True(t, cpu.GetFlag(FlagZ))
	assert.True(t, cpu.GetFlag(FlagC))
	assert.True(t, cpu.GetFlag(FlagH))
}

func TestDjnzLoop(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{
		0x06, 0x03, // LD B, 3
		0x3C,       // loop: INC A
		0x10, 0xFD, // DJNZ loop
	})
	cpu := New(mem, nil)
	run(cpu, 1)
	// three iterations of INC A + DJNZ
	for i := 0; i < 3; i++ {
		run(cpu, 2)
	}

	assert.Equal(t, byte(3), cpu.A)
	assert.Equal(t, byte(0), cpu.B)
}

func TestBitCbOperand(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{
		0x3E, 0x80, // LD A, $80
		0xCB, 0x7F, // BIT 7,A
	})
	cpu := New(mem, nil)
	run(cpu, 2)

	assert.False(t, cpu.GetFlag(FlagZ))
	assert.True(t, cpu.GetFlag(FlagS))
}

func TestIndexedIXLoad(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{
		0xDD, 0x21, 0x00, 0x10, // LD IX, $1000
		0x3E, 0x42, // LD A, $42
		0xDD, 0x77, 0x05, // LD (IX+5), A
	})
	cpu := New(mem, nil)
	run(cpu, 3)

	assert.Equal(t, byte(0x42), mem.Peek(0x1005))
}
