package audio

import (
	"testing"
	"time"
)

func TestRingReadWriteRoundTrip(t *testing.T) {
	r := NewRing(8)
	r.Write([]float32{1, 2, 3})
	out := make([]float32, 3)
	n := r.Read(out)
	if n != 3 {
		t.Fatalf("Read returned %d, want 3", n)
	}
	for i, want := range []float32{1, 2, 3} {
		if out[i] != want {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestRingReadZeroFillsWhenDrained(t *testing.T) {
	r := NewRing(4)
	r.Write([]float32{1})
	out := make([]float32, 4)
	r.Read(out)
	for i := 1; i < 4; i++ {
		if out[i] != 0 {
			t.Fatalf("out[%d] = %v, want 0 after drain", i, out[i])
		}
	}
}

func TestRingWriteBlocksUntilSpaceFreed(t *testing.T) {
	r := NewRing(2)
	r.Write([]float32{1, 2})

	done := make(chan struct{})
	go func() {
		r.Write([]float32{3})
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("Write returned before consumer freed space")
	case <-time.After(20 * time.Millisecond):
	}

	out := make([]float32, 1)
	r.Read(out)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Write never unblocked after Read freed space")
	}
}

func TestRingLenTracksBuffered(t *testing.T) {
	r := NewRing(8)
	r.Write([]float32{1, 2})
	if got := r.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}
