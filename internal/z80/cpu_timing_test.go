package z80

import "testing"

func stepCycles(cpu *CPU, bus *testBus) uint32 {
	before := bus.tStates
	cpu.Step()
	return uint32(bus.tStates - before)
}

func TestNOPTakesFourTStates(t *testing.T) {
	cpu, bus := newTestCPU(0x00)
	if got := stepCycles(cpu, bus); got != 4 {
		t.Fatalf("NOP took %d T-states, want 4", got)
	}
}

func TestLDRegHLTakesSevenTStates(t *testing.T) {
	cpu, bus := newTestCPU(0x46) // LD B,(HL)
	cpu.SetHL(0x8000)
	bus.mem[0x8000] = 0x42
	if got := stepCycles(cpu, bus); got != 7 {
		t.Fatalf("LD B,(HL) took %d T-states, want 7", got)
	}
	if cpu.B != 0x42 {
		t.Fatalf("B = %#x, want 0x42", cpu.B)
	}
}

func TestCALLTakesSeventeenTStates(t *testing.T) {
	cpu, bus := newTestCPU(0xCD, 0x00, 0x90) // CALL 0x9000
	if got := stepCycles(cpu, bus); got != 17 {
		t.Fatalf("CALL nn took %d T-states, want 17", got)
	}
	if cpu.PC != 0x9000 {
		t.Fatalf("PC = %#x, want 0x9000", cpu.PC)
	}
}

func TestStepReturnsZeroWhenStopped(t *testing.T) {
	cpu, _ := newTestCPU(0x00)
	cpu.SetRunning(false)
	if got := cpu.Step(); got != 0 {
		t.Fatalf("Step() = %d after Stop, want 0", got)
	}
}

func TestContentionDelayAddsToStepCost(t *testing.T) {
	cpu, bus := newTestCPU(0x00)
	bus.contends = map[uint16]int{0x0000: 3}
	if got := stepCycles(cpu, bus); got != 7 {
		t.Fatalf("NOP with contended fetch took %d T-states, want 7", got)
	}
}
