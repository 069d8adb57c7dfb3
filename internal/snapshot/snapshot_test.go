package snapshot

import (
	"errors"
	"testing"

	"github.com/zxemu/core/internal/machine"
	"github.com/zxemu/core/internal/memory"
)

func newTestMachine() *machine.Machine {
	rom := make([]byte, 16*1024)
	return machine.New(memory.Model48K, [][]byte{rom})
}

func TestDetectRejectsShortData(t *testing.T) {
	_, err := Detect([]byte{1, 2, 3})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Detect error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadSNATruncatedReturnsError(t *testing.T) {
	m := newTestMachine()
	err := LoadSNA(m, make([]byte, 100))
	if !errors.Is(err, ErrTruncatedImage) {
		t.Fatalf("LoadSNA error = %v, want ErrTruncatedImage", err)
	}
}

func TestSNARoundTripPreservesRegistersAndMemory(t *testing.T) {
	m := newTestMachine()
	m.CPU.SetBC(0x1234)
	m.CPU.SetDE(0xBEEF)
	m.CPU.SetHL(0xCAFE)
	m.CPU.A, m.CPU.F = 0x42, 0x99
	m.CPU.I = 0x3F
	m.CPU.IM = 1
	m.CPU.SP = 0x8000
	m.CPU.PC = 0x6000
	m.Memory.WriteByte(0x8000, 0x11)
	m.Memory.WriteByte(0x8001, 0x22)
	m.WriteByte(0x5000, 0xAB) // 0x5000 is in the VRAM mirror window; must go through Machine, not Memory directly

	out, err := SaveSNA(m)
	if err != nil {
		t.Fatalf("SaveSNA: %v", err)
	}
	if len(out) != sna48KSize {
		t.Fatalf("SaveSNA length = %d, want %d", len(out), sna48KSize)
	}

	m2 := newTestMachine()
	if err := LoadSNA(m2, out); err != nil {
		t.Fatalf("LoadSNA: %v", err)
	}
	if m2.CPU.BC() != 0x1234 {
		t.Fatalf("BC = %#x, want 0x1234", m2.CPU.BC())
	}
	if m2.CPU.DE() != 0xBEEF {
		t.Fatalf("DE = %#x, want 0xBEEF", m2.CPU.DE())
	}
	if m2.CPU.HL() != 0xCAFE {
		t.Fatalf("HL = %#x, want 0xCAFE", m2.CPU.HL())
	}
	if m2.CPU.A != 0x42 || m2.CPU.F != 0x99 {
		t.Fatalf("AF = %#x %#x, want 0x42 0x99", m2.CPU.A, m2.CPU.F)
	}
	if m2.CPU.I != 0x3F {
		t.Fatalf("I = %#x, want 0x3F", m2.CPU.I)
	}
	if m2.CPU.IM != 1 {
		t.Fatalf("IM = %d, want 1", m2.CPU.IM)
	}
	if m2.Memory.ReadByte(0x5000) != 0xAB {
		t.Fatalf("RAM byte at 0x5000 not preserved")
	}
	if m2.ULA.ReadVRAM(0x5000-0x4000) != 0xAB {
		t.Fatalf("loaded screen byte at 0x5000 not mirrored into the ULA's VRAM, so it would never be displayed")
	}
	if m2.CPU.PC != 0x6000 {
		t.Fatalf("PC = %#x, want 0x6000 (popped from stack)", m2.CPU.PC)
	}
	if m2.CPU.SP != 0x8000 {
		t.Fatalf("SP = %#x, want 0x8000 (original SP restored by the pop)", m2.CPU.SP)
	}
}

func TestDecompressZ80ExpandsRunLengthMarker(t *testing.T) {
	in := []byte{0x01, 0xED, 0xED, 0x04, 0x7F, 0x02}
	got := decompressZ80(in)
	want := []byte{0x01, 0x7F, 0x7F, 0x7F, 0x7F, 0x02}
	if len(got) != len(want) {
		t.Fatalf("decompressZ80 length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestLoadZ80V1HeaderRestoresRegisters(t *testing.T) {
	m := newTestMachine()
	header := make([]byte, 30)
	header[0] = 0x55     // A
	header[1] = 0x00     // F
	header[6] = 0x00     // PC low -- nonzero elsewhere signals v1
	header[7] = 0x80     // PC high = 0x8000, nonzero => v1 format
	header[8] = 0x00     // SP low
	header[9] = 0xC0     // SP high
	header[12] = 0x00    // flags1: border 0, not compressed
	data := append(header, make([]byte, 48*1024)...)

	if err := LoadZ80(m, data); err != nil {
		t.Fatalf("LoadZ80: %v", err)
	}
	if m.CPU.A != 0x55 {
		t.Fatalf("A = %#x, want 0x55", m.CPU.A)
	}
	if m.CPU.PC != 0x8000 {
		t.Fatalf("PC = %#x, want 0x8000", m.CPU.PC)
	}
	if m.CPU.SP != 0xC000 {
		t.Fatalf("SP = %#x, want 0xC000", m.CPU.SP)
	}
}

func TestLoadZ80TruncatedReturnsError(t *testing.T) {
	m := newTestMachine()
	err := LoadZ80(m, make([]byte, 10))
	if !errors.Is(err, ErrTruncatedImage) {
		t.Fatalf("LoadZ80 error = %v, want ErrTruncatedImage", err)
	}
}
