// Package input turns a polled host key-state source into the Spectrum
// keyboard matrix's press/release events, diffing against the previous
// poll the same way the machine's original keyboard driver tracked
// transitions rather than raw levels.
package input

import "github.com/zxemu/core/internal/keyboard"

// Source reports whether a host key code is currently held down.
type Source interface {
	Pressed(code int) bool
}

// Binding maps one host key code to the Spectrum key it represents.
type Binding struct {
	Code int
	Key  keyboard.Key
}

// Target receives key transitions; *machine.Machine satisfies this.
type Target interface {
	KeyEvent(key keyboard.Key, pressed bool)
}

// Poller polls a Source against a fixed set of bindings once per frame
// and forwards only the transitions (press/release edges), not the
// steady-state level, to a Target.
type Poller struct {
	source   Source
	bindings []Binding
	down     map[int]bool
}

// NewPoller builds a Poller over the given bindings.
func NewPoller(source Source, bindings []Binding) *Poller {
	return &Poller{
		source:   source,
		bindings: bindings,
		down:     make(map[int]bool, len(bindings)),
	}
}

// Poll checks every binding's current state and emits a KeyEvent to
// target for each one that changed since the last Poll.
func (p *Poller) Poll(target Target) {
	for _, b := range p.bindings {
		now := p.source.Pressed(b.Code)
		if now != p.down[b.Code] {
			p.down[b.Code] = now
			target.KeyEvent(b.Key, now)
		}
	}
}
