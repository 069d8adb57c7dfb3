package z80

import "testing"

func TestBITOnHLDerivesYXFromMEMPTRHigh(t *testing.T) {
	cpu, bus := newTestCPU(0xCB, 0x46) // BIT 0,(HL)
	cpu.SetHL(0x1234)
	bus.mem[0x1234] = 0x00 // bit 0 clear, operand's own Y/X bits would be 0

	cpu.Step()

	wantHigh := byte(0x1235 >> 8) // WZ = HL+1
	if cpu.F&(flagY|flagX) != wantHigh&(flagY|flagX) {
		t.Fatalf("Y/X flags = %#x, want bits from MEMPTR high byte %#x", cpu.F&(flagY|flagX), wantHigh&(flagY|flagX))
	}
	if !cpu.Flag(flagZ) {
		t.Fatalf("expected zero flag set, bit was clear")
	}
}

func TestBITOnRegisterUsesOperandYX(t *testing.T) {
	cpu, _ := newTestCPU(0xCB, 0x47) // BIT 0,A
	cpu.A = 0x28                     // bits 5 and 3 set in the operand itself
	cpu.Step()
	if cpu.F&(flagY|flagX) != 0x28 {
		t.Fatalf("Y/X flags = %#x, want 0x28 from operand", cpu.F&(flagY|flagX))
	}
}

func TestRLCRegisterRoundTrip(t *testing.T) {
	cpu, _ := newTestCPU(0xCB, 0x07) // RLC A
	cpu.A = 0x80
	cpu.Step()
	if cpu.A != 0x01 {
		t.Fatalf("A = %#x, want 0x01", cpu.A)
	}
	if !cpu.Flag(flagC) {
		t.Fatalf("expected carry set from bit 7")
	}
}

func TestSETAndRESOnMemory(t *testing.T) {
	cpu, bus := newTestCPU(0xCB, 0xC6) // SET 0,(HL)
	cpu.SetHL(0x8000)
	bus.mem[0x8000] = 0x00
	cpu.Step()
	if bus.mem[0x8000] != 0x01 {
		t.Fatalf("mem = %#x, want 0x01 after SET 0,(HL)", bus.mem[0x8000])
	}
}
