package machine

import (
	"testing"

	"github.com/zxemu/core/internal/memory"
)

func TestScriptEvalsBreakpointOnPC(t *testing.T) {
	s := NewScript()
	defer s.Close()

	if err := s.Load("atStart", "pc == 0x8000"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	m := New(memory.Model48K, [][]byte{make([]byte, 16*1024)})
	m.CPU.PC = 0x1234
	hit, err := s.Eval("atStart", m)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if hit {
		t.Fatalf("expected watch to be false at PC=0x1234")
	}

	m.CPU.PC = 0x8000
	hit, err = s.Eval("atStart", m)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !hit {
		t.Fatalf("expected watch to be true at PC=0x8000")
	}
}

func TestScriptEvalUnknownWatchErrors(t *testing.T) {
	s := NewScript()
	defer s.Close()
	m := New(memory.Model48K, [][]byte{make([]byte, 16*1024)})
	if _, err := s.Eval("missing", m); err == nil {
		t.Fatalf("expected error evaluating an unregistered watch")
	}
}
