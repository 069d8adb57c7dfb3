package ula

import "testing"

type fakeKeyboard struct{ value byte }

func (f fakeKeyboard) Read(rowSelect byte) byte { return f.value }

func TestReadPortCombinesKeyboardAndEar(t *testing.T) {
	u := New(fakeKeyboard{value: 0x1E})
	u.SetEarIn(true)
	got := u.ReadPort(0xFE)
	if got&0x1F != 0x1E {
		t.Fatalf("keyboard bits = %#x, want 0x1E", got&0x1F)
	}
	if got&0x40 == 0 {
		t.Fatalf("expected EAR bit set")
	}
}

func TestWritePortSetsBorderAndSpeaker(t *testing.T) {
	u := New(fakeKeyboard{value: 0x1F})
	u.WritePort(0x13) // border 3, speaker bit set
	if u.border != 3 {
		t.Fatalf("border = %d, want 3", u.border)
	}
	if !u.SpeakerOut() {
		t.Fatalf("expected speaker output set")
	}
}

func TestCatchUpRendersOnlyCompletedLines(t *testing.T) {
	u := New(fakeKeyboard{value: 0x1F})
	u.CatchUp(tStatesPerLine * 5)
	if u.lastRenderedLine != 5 {
		t.Fatalf("lastRenderedLine = %d, want 5", u.lastRenderedLine)
	}
}

func TestEndFrameRendersRemainderAndResets(t *testing.T) {
	u := New(fakeKeyboard{value: 0x1F})
	u.CatchUp(tStatesPerLine * 100)
	frame := u.EndFrame()
	if u.lastRenderedLine != 0 {
		t.Fatalf("lastRenderedLine should reset to 0 after EndFrame, got %d", u.lastRenderedLine)
	}
	if len(frame) != FrameWidth*FrameHeight*4 {
		t.Fatalf("frame size = %d, want %d", len(frame), FrameWidth*FrameHeight*4)
	}
}

func TestBitmapAddressBandsThreeThirdsOfDisplay(t *testing.T) {
	top := bitmapAddress(0, 0)
	middleThird := bitmapAddress(64, 0)
	bottomThird := bitmapAddress(128, 0)
	if top != 0x0000 {
		t.Fatalf("bitmapAddress(0,0) = %#x, want 0x0000", top)
	}
	if middleThird != 0x0800 {
		t.Fatalf("bitmapAddress(64,0) = %#x, want 0x0800", middleThird)
	}
	if bottomThird != 0x1000 {
		t.Fatalf("bitmapAddress(128,0) = %#x, want 0x1000", bottomThird)
	}
}
