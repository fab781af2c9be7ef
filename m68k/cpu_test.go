package m68k

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCPU(t *testing.T) (*CPU, *flatBus) {
	t.Helper()
	b := newFlatBus()
	b.Load(0, []byte{0x00, 0x10, 0x00, 0x00}) // initial SSP = $00100000
	b.Load(4, []byte{0x00, 0x00, 0x10, 0x00}) // initial PC = $00001000
	cpu, err := New(b, M68000)
	require.NoError(t, err)
	return cpu, b
}

func runInstructions(cpu *CPU, n int) {
	for i := 0; i < n; i++ {
		cpu.Tick()
		for cpu.ticksRemaining > 0 {
			cpu.Tick()
		}
	}
}

func TestResetVectorsLoaded(t *testing.T) {
	cpu, _ := newTestCPU(t)
	assert.Equal(t, uint32(0x00100000), cpu.SSP)
	assert.Equal(t, uint32(0x00001000), cpu.PC)
	assert.True(t, cpu.SR.Supervisor())
}

func TestRefusesNon68000Model(t *testing.T) {
	b := newFlatBus()
	_, err := New(b, M68010)
	require.Error(t, err)
}

func TestMoveqAndAdd(t *testing.T) {
	cpu, b := newTestCPU(t)
	b.Load(0x1000, []byte{
		0x70, 0x05, // MOVEQ #5,D0
		0x72, 0x03, // MOVEQ #3,D1
		0xD0, 0x81, // ADD.L D1,D0
	})
	runInstructions(cpu, 3)

	assert.Equal(t, uint32(8), cpu.D[0])
	assert.False(t, cpu.SR.Bit(BitZ))
	assert.False(t, cpu.SR.Bit(BitN))
}

// TestAddxZeroFlagCleared matches spec.md scenario 3: ADDX never *sets* Z even
// when the result is zero - only ADD/CMP do. Here the result is non-zero
// and Z must be cleared.
func TestAddxZeroFlagCleared(t *testing.T) {
	cpu, b := newTestCPU(t)
	b.Load(0x1000, []byte{
		0xD3, 0x80, // ADDX.L D0,D1 (opcode 1101 001 1 00 000 000)
	})
	cpu.D[0] = 0x00000001
	cpu.D[1] = 0xFFFFFFFF
	cpu.SR.SetBit(BitX, true)
	cpu.SR.SetBit(BitZ, true)

	runInstructions(cpu, 1)

	assert.Equal(t, uint32(0x00000001), cpu.D[1])
	assert.True(t, cpu.SR.Bit(BitX))
	assert.True(t, cpu.SR.Bit(BitC))
	assert.False(t, cpu.SR.Bit(BitZ))
}

func TestMoveUspPrivilegeViolation(t *testing.T) {
	cpu, b := newTestCPU(t)
	b.Load(0x1000, []byte{
		0x4E, 0x68, // MOVE USP,A0
	})
	b.Load(8*4, []byte{0x00, 0x00, 0x20, 0x00}) // privilege-violation vector
	cpu.SR.SetBit(BitS, false)
	cpu.USP = 0xAAAA
	oldA0 := cpu.A[0]

	runInstructions(cpu, 1)

	assert.Equal(t, oldA0, cpu.A[0])
	assert.Equal(t, uint32(0x2000), cpu.PC)
	assert.True(t, cpu.SR.Supervisor())
}

func TestDivuOverflow(t *testing.T) {
	cpu, b := newTestCPU(t)
	b.Load(0x1000, []byte{
		0x80, 0xFC, 0x00, 0x01, // DIVU.W #1,D0
	})
	cpu.D[0] = 0x00010000

	runInstructions(cpu, 1)

	assert.True(t, cpu.SR.Bit(BitV))
}

// TestOddAddressWordWriteRaisesAddressError covers spec.md §7.1's Group 0
// address-error fault: a word-wide access through an odd address.
func TestOddAddressWordWriteRaisesAddressError(t *testing.T) {
	cpu, b := newTestCPU(t)
	b.Load(0x1000, []byte{0x30, 0x80}) // MOVE.W D0,(A0)
	b.Load(vecAddressError*4, []byte{0x00, 0x00, 0x30, 0x00})
	cpu.D[0] = 0x1234
	cpu.A[0] = 0x1001 // odd -> faults before the write reaches the bus

	runInstructions(cpu, 1)

	assert.Equal(t, uint32(0x3000), cpu.PC)
	assert.True(t, cpu.SR.Supervisor())
}

func TestLeaAndJsrRts(t *testing.T) {
	cpu, b := newTestCPU(t)
	b.Load(0x1000, []byte{
		0x41, 0xF8, 0x20, 0x00, // LEA $2000,A0
		0x4E, 0x90, // JSR (A0)
	})
	b.Load(0x2000, []byte{
		0x70, 0x09, // MOVEQ #9,D0
		0x4E, 0x75, // RTS
	})
	cpu.SSP = 0x3000
	runInstructions(cpu, 4)

	assert.Equal(t, uint32(9), cpu.D[0])
	assert.Equal(t, uint32(0x100A), cpu.PC) // RTS lands PC at the return address, then refills two more prefetch words
}
