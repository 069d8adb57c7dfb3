package memory

import "testing"

func TestReadWriteRoundTrip(t *testing.T) {
	c := New(Model48K, [][]byte{make([]byte, 0x4000)})
	c.WriteByte(0x8000, 0x42)
	if got := c.ReadByte(0x8000); got != 0x42 {
		t.Fatalf("ReadByte = %#x, want 0x42", got)
	}
}

func TestWritesToROMAreDropped(t *testing.T) {
	rom := make([]byte, 0x4000)
	rom[0] = 0xAA
	c := New(Model48K, [][]byte{rom})
	c.WriteByte(0x0000, 0x00)
	if got := c.ReadByte(0x0000); got != 0xAA {
		t.Fatalf("ROM write was not dropped, read back %#x", got)
	}
}

// TestModel48KAllowsBankNumbersUpToSeven guards against the bank store
// being undersized for 48K: the reset layout pages bank 5 into slot 1 and
// PortOut is a no-op on this model, but 128K-style bank-select values
// (0-7) must still be safe to reach through ScreenBytes and direct access
// without panicking on a short slice.
func TestModel48KAllowsBankNumbersUpToSeven(t *testing.T) {
	c := New(Model48K, [][]byte{make([]byte, 0x4000)})
	c.WriteByte(0x5B00, 0x77) // system variables, inside bank 5 (slot 1)
	if got := c.ReadByte(0x5B00); got != 0x77 {
		t.Fatalf("ReadByte = %#x, want 0x77", got)
	}
	if got := c.ScreenBytes(); len(got) != 0x4000 {
		t.Fatalf("ScreenBytes length = %d, want 0x4000", len(got))
	}
}

func Test128KPagingSelectsBank(t *testing.T) {
	c := New(Model128K, [][]byte{make([]byte, 0x4000), make([]byte, 0x4000)})
	c.PortOut(0x7FFD, 0x03) // page bank 3 into slot 3
	c.WriteByte(0xC000, 0x55)

	c.PortOut(0x7FFD, 0x01) // page bank 1 into slot 3
	if got := c.ReadByte(0xC000); got == 0x55 {
		t.Fatalf("expected a different bank to be paged in, still reading bank 3's byte")
	}

	c.PortOut(0x7FFD, 0x03)
	if got := c.ReadByte(0xC000); got != 0x55 {
		t.Fatalf("ReadByte = %#x, want 0x55 after re-paging bank 3", got)
	}
}

func TestPagingLockPreventsFurtherChanges(t *testing.T) {
	c := New(Model128K, [][]byte{make([]byte, 0x4000)})
	c.PortOut(0x7FFD, 0x20) // lock paging
	c.PortOut(0x7FFD, 0x03) // should be ignored
	if c.slots[3] != 0 {
		t.Fatalf("paging lock did not prevent bank switch, slot3=%d", c.slots[3])
	}
}

func TestContentionOnlyAppliesToContendedBankDuringWindow(t *testing.T) {
	c := New(Model48K, [][]byte{make([]byte, 0x4000)})
	if got := c.ContentionDelay(0x4000, firstContendedTState); got != 6 {
		t.Fatalf("ContentionDelay at screen start = %d, want 6", got)
	}
	if got := c.ContentionDelay(0x4000, 0); got != 0 {
		t.Fatalf("ContentionDelay outside the display window = %d, want 0", got)
	}
	if got := c.ContentionDelay(0x8000, firstContendedTState); got != 0 {
		t.Fatalf("ContentionDelay for an uncontended bank = %d, want 0", got)
	}
}
