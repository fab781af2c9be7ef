package cpu6502

import (
	"testing"

	"github.com/n-ulricksen/retrocore/bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(cpu *CPU, instructions int) {
	for i := 0; i < instructions; i++ {
		cpu.Tick()
		for cpu.Cycles > 0 {
			cpu.Tick()
		}
	}
}

func TestResetState(t *testing.T) {
	mem := bus.NewFlatMemory()
	cpu := New(mem, NMOS6502, nil)

	assert.Equal(t, byte(0xFD), cpu.Sp)
	assert.False(t, cpu.IsHalted())
}

// TestStackPushPop matches spec.md §8 scenario 1: LDX #$FF; TXS; LDA #$42;
// PHA; LDA #$00; PLA, starting at $0200. Expect A=$42, S=$FF.
func TestStackPushPop(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0x0200, []byte{
		0xA2, 0xFF, // LDX #$FF
		0x9A,       // TXS
		0xA9, 0x42, // LDA #$42
		0x48,       // PHA
		0xA9, 0x00, // LDA #$00
		0x68, // PLA
	})
	cpu := New(mem, NMOS6502, nil)
	cpu.Pc = 0x0200

	run(cpu, 6)

	assert.Equal(t, byte(0x42), cpu.A)
	assert.Equal(t, byte(0xFF), cpu.Sp)
}

// TestBrkPushesFrameAndClearsPendingI matches spec.md §8 scenario 2: with
// the IRQ vector at $FFFE/F pointing to $0300, CLI; BRK; NOP at $0204.
// BRK is a 2-byte instruction (the byte after the opcode is a signature
// padding byte it skips over before pushing the return address), so the
// pushed PC is the address past both bytes. Expect PC=$0300 and a stack
// frame of PCH=$02, PCL=$07, P with B=1, U=1, I=0 (CLI ran before BRK
// pushed the status byte).
func TestBrkPushesFrameAndClearsPendingI(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Poke(0xFFFE, 0x00)
	mem.Poke(0xFFFF, 0x03)
	mem.Load(0x0204, []byte{
		0x58, // CLI
		0x00, // BRK
		0xEA, // NOP (BRK's signature byte, never reached)
	})
	cpu := New(mem, NMOS6502, nil)
	cpu.Pc = 0x0204
	cpu.Status = byte(FlagI) | byte(FlagU)
	spBefore := cpu.Sp

	run(cpu, 2)

	require.Equal(t, uint16(0x0300), cpu.Pc)
	assert.Equal(t, byte(spBefore-3), cpu.Sp)
	assert.Equal(t, byte(0x02), mem.Peek(stackBase|uint16(spBefore)))
	assert.Equal(t, byte(0x07), mem.Peek(stackBase|uint16(spBefore-1)))

	pushedStatus := mem.Peek(stackBase | uint16(spBefore-2))
	assert.NotZero(t, pushedStatus&byte(FlagB))
	assert.NotZero(t, pushedStatus&byte(FlagU))
	assert.Zero(t, pushedStatus&byte(FlagI))
}

func TestLaxLoadsAccumulatorAndX(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{0xA7, 0x10}) // LAX $10
	mem.Poke(0x0010, 0x7F)
	cpu := New(mem, NMOS6502, nil)

	run(cpu, 1)

	assert.Equal(t, byte(0x7F), cpu.A)
	assert.Equal(t, byte(0x7F), cpu.X)
	assert.False(t, cpu.flagSet(FlagZ))
	assert.False(t, cpu.flagSet(FlagN))
}

func TestSloFusesAslAndOra(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{0x07, 0x10}) // SLO $10
	mem.Poke(0x0010, 0x41)          // ASL -> $82, carry out 0
	cpu := New(mem, NMOS6502, nil)
	cpu.A = 0x01

	run(cpu, 1)

	assert.Equal(t, byte(0x82), mem.Peek(0x0010))
	assert.Equal(t, byte(0x83), cpu.A) // $01 | $82
	assert.False(t, cpu.flagSet(FlagC))
}

func TestDcpComparesAfterDecrement(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{0xC7, 0x10}) // DCP $10
	mem.Poke(0x0010, 0x05)          // decrements to $04
	cpu := New(mem, NMOS6502, nil)
	cpu.A = 0x04

	run(cpu, 1)

	assert.Equal(t, byte(0x04), mem.Peek(0x0010))
	assert.True(t, cpu.flagSet(FlagZ))
	assert.True(t, cpu.flagSet(FlagC))
}

func TestJamOpcodeHaltsNmosOnly(t *testing.T) {
	mem := bus.NewFlatMemory()
	mem.Load(0, []byte{0x02}) // JAM
	cpu := New(mem, NMOS6502, nil)

	run(cpu, 1)

	assert.True(t, cpu.IsHalted())
}
