//go:build !headless

package input

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/zxemu/core/internal/keyboard"
)

// EbitenSource adapts ebiten's key-state query to the Source interface,
// using the key's own integer value as the binding code.
type EbitenSource struct{}

func (EbitenSource) Pressed(code int) bool {
	return ebiten.IsKeyPressed(ebiten.Key(code))
}

// StandardBindings maps a QWERTY host keyboard onto the 40-key Spectrum
// matrix. Both Shift keys map to CAPS SHIFT and both Control keys to
// SYMBOL SHIFT, matching the layout most Spectrum emulators settle on.
func StandardBindings() []Binding {
	return []Binding{
		{int(ebiten.KeyShiftLeft), keyboard.KeyCapsShift},
		{int(ebiten.KeyShiftRight), keyboard.KeyCapsShift},
		{int(ebiten.KeyControlLeft), keyboard.KeySymShift},
		{int(ebiten.KeyControlRight), keyboard.KeySymShift},
		{int(ebiten.KeyZ), keyboard.KeyZ},
		{int(ebiten.KeyX), keyboard.KeyX},
		{int(ebiten.KeyC), keyboard.KeyC},
		{int(ebiten.KeyV), keyboard.KeyV},
		{int(ebiten.KeyA), keyboard.KeyA},
		{int(ebiten.KeyS), keyboard.KeyS},
		{int(ebiten.KeyD), keyboard.KeyD},
		{int(ebiten.KeyF), keyboard.KeyF},
		{int(ebiten.KeyG), keyboard.KeyG},
		{int(ebiten.KeyQ), keyboard.KeyQ},
		{int(ebiten.KeyW), keyboard.KeyW},
		{int(ebiten.KeyE), keyboard.KeyE},
		{int(ebiten.KeyR), keyboard.KeyR},
		{int(ebiten.KeyT), keyboard.KeyT},
		{int(ebiten.Key1), keyboard.Key1},
		{int(ebiten.Key2), keyboard.Key2},
		{int(ebiten.Key3), keyboard.Key3},
		{int(ebiten.Key4), keyboard.Key4},
		{int(ebiten.Key5), keyboard.Key5},
		{int(ebiten.Key0), keyboard.Key0},
		{int(ebiten.Key9), keyboard.Key9},
		{int(ebiten.Key8), keyboard.Key8},
		{int(ebiten.Key7), keyboard.Key7},
		{int(ebiten.Key6), keyboard.Key6},
		{int(ebiten.KeyP), keyboard.KeyP},
		{int(ebiten.KeyO), keyboard.KeyO},
		{int(ebiten.KeyI), keyboard.KeyI},
		{int(ebiten.KeyU), keyboard.KeyU},
		{int(ebiten.KeyY), keyboard.KeyY},
		{int(ebiten.KeyEnter), keyboard.KeyEnter},
		{int(ebiten.KeyL), keyboard.KeyL},
		{int(ebiten.KeyK), keyboard.KeyK},
		{int(ebiten.KeyJ), keyboard.KeyJ},
		{int(ebiten.KeyH), keyboard.KeyH},
		{int(ebiten.KeySpace), keyboard.KeySpace},
		{int(ebiten.KeyM), keyboard.KeyM},
		{int(ebiten.KeyN), keyboard.KeyN},
		{int(ebiten.KeyB), keyboard.KeyB},
		{int(ebiten.KeyBackspace), keyboard.KeyBackspace},
	}
}

// NewStandardPoller builds a Poller wired to a live ebiten key source
// with the standard QWERTY-to-Spectrum bindings.
func NewStandardPoller() *Poller {
	return NewPoller(EbitenSource{}, StandardBindings())
}
