//go:build headless

package video

import (
	"github.com/zxemu/core/internal/audio"
	"github.com/zxemu/core/internal/machine"
)

// Game is a no-op stand-in for builds with no display backend, letting
// the disassembler-only CLI mode link without ebiten.
type Game struct {
	machine *machine.Machine
}

func New(m *machine.Machine, ring *audio.Ring, sampleRate, scale int) *Game {
	return &Game{machine: m}
}

// Run executes frames without presenting them, in an endless loop; it
// never returns.
func Run(g *Game, title string) error {
	for {
		g.machine.RunFrame()
	}
}
