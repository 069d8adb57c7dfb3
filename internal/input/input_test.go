package input

import (
	"testing"

	"github.com/zxemu/core/internal/keyboard"
)

type fakeSource struct{ pressed map[int]bool }

func (f fakeSource) Pressed(code int) bool { return f.pressed[code] }

type recordingTarget struct{ events []event }

type event struct {
	key     keyboard.Key
	pressed bool
}

func (r *recordingTarget) KeyEvent(key keyboard.Key, pressed bool) {
	r.events = append(r.events, event{key, pressed})
}

func TestPollEmitsOnlyTransitions(t *testing.T) {
	src := fakeSource{pressed: map[int]bool{1: false}}
	p := NewPoller(src, []Binding{{Code: 1, Key: keyboard.KeyA}})
	target := &recordingTarget{}

	p.Poll(target)
	if len(target.events) != 0 {
		t.Fatalf("expected no events on first poll with key up, got %v", target.events)
	}

	src.pressed[1] = true
	p.Poll(target)
	if len(target.events) != 1 || target.events[0] != (event{keyboard.KeyA, true}) {
		t.Fatalf("expected one press event, got %v", target.events)
	}

	p.Poll(target)
	if len(target.events) != 1 {
		t.Fatalf("expected no duplicate events while key held, got %v", target.events)
	}

	src.pressed[1] = false
	p.Poll(target)
	if len(target.events) != 2 || target.events[1] != (event{keyboard.KeyA, false}) {
		t.Fatalf("expected a release event, got %v", target.events)
	}
}

func TestPollHandlesMultipleBindingsIndependently(t *testing.T) {
	src := fakeSource{pressed: map[int]bool{1: true, 2: false}}
	p := NewPoller(src, []Binding{
		{Code: 1, Key: keyboard.KeyA},
		{Code: 2, Key: keyboard.KeyB},
	})
	target := &recordingTarget{}
	p.Poll(target)
	if len(target.events) != 1 || target.events[0].key != keyboard.KeyA {
		t.Fatalf("expected only the A binding to fire, got %v", target.events)
	}
}
