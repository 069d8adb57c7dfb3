// Package machine wires the CPU, banked memory, ULA, and keyboard matrix
// into a single runnable ZX Spectrum, and exposes the frame/key/snapshot
// operations the host front-end drives.
package machine

import (
	"fmt"
	"sync/atomic"

	"github.com/zxemu/core/internal/keyboard"
	"github.com/zxemu/core/internal/memory"
	"github.com/zxemu/core/internal/ula"
	"github.com/zxemu/core/internal/z80"
)

const tStatesPerFrame48K = 69888

// Machine aggregates one Z80, its banked memory, the ULA, and the
// keyboard matrix, and drives them one frame at a time.
type Machine struct {
	CPU      *z80.CPU
	Memory   *memory.Controller
	ULA      *ula.ULA
	Keyboard *keyboard.Matrix

	model        memory.Model
	frameTStates int
	quit         atomic.Bool

	bus *cpuBus
}

// New builds a Machine for model with the given ROM images (see
// memory.New for the expected ROM ordering).
func New(model memory.Model, roms [][]byte) *Machine {
	kbd := keyboard.New()
	mem := memory.New(model, roms)
	u := ula.New(kbd)

	m := &Machine{
		Memory:       mem,
		ULA:          u,
		Keyboard:     kbd,
		model:        model,
		frameTStates: tStatesPerFrame48K,
	}
	m.bus = &cpuBus{machine: m}
	m.CPU = z80.New(m.bus)
	return m
}

// Reset restores the CPU and memory paging to their power-on state. The
// ULA keeps its current VRAM contents, matching real hardware's RESET
// line, which does not clear RAM.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Memory.Reset()
	m.bus.cycleInFrame = 0
}

// RunFrame executes instructions until one display frame's worth of
// T-states has elapsed, then asserts the ULA's /INT line for the
// standard 32-T-state interrupt pulse at the top of the next frame, and
// returns the rendered frame buffer.
func (m *Machine) RunFrame() []byte {
	target := m.frameTStates
	m.CPU.SetIRQLine(true)
	for m.bus.cycleInFrame < target {
		if m.quit.Load() {
			break
		}
		m.CPU.Step()
		if m.bus.cycleInFrame >= 32 {
			m.CPU.SetIRQLine(false)
		}
	}
	frame := m.ULA.EndFrame()
	m.bus.cycleInFrame -= target
	if m.bus.cycleInFrame < 0 {
		m.bus.cycleInFrame = 0
	}
	return frame
}

// ReadByte and WriteByte expose the same address decoding cpuBus gives the
// CPU — including the VRAM mirror over 0x4000-0x5AFF — to collaborators
// like the snapshot loader that poke memory directly rather than through
// a running CPU, so a loaded screen is visible and a saved one reflects
// what the ULA actually renders.
func (m *Machine) ReadByte(addr uint16) byte {
	return m.bus.Read(addr)
}

func (m *Machine) WriteByte(addr uint16, value byte) {
	m.bus.Write(addr, value)
}

// KeyEvent forwards a key transition to the keyboard matrix.
func (m *Machine) KeyEvent(key keyboard.Key, pressed bool) {
	m.Keyboard.SetKeyDown(key, pressed)
}

// Quit requests that the next RunFrame stop early instead of running a
// full frame's worth of T-states.
func (m *Machine) Quit() {
	m.quit.Store(true)
}

// cpuBus implements z80.Bus by routing CPU accesses to the paged memory
// controller, the ULA's port 0xFE, and ROM/RAM decoding, and keeps the
// ULA's incremental renderer and the memory controller's contention table
// both driven by the same running T-state count.
type cpuBus struct {
	machine      *Machine
	cycleInFrame int
}

func (b *cpuBus) Read(addr uint16) byte {
	if addr >= ula.VRAMBase && addr < ula.VRAMBase+ula.VRAMSize {
		return b.machine.ULA.ReadVRAM(addr - ula.VRAMBase)
	}
	return b.machine.Memory.ReadByte(addr)
}

func (b *cpuBus) Write(addr uint16, value byte) {
	if addr >= ula.VRAMBase && addr < ula.VRAMBase+ula.VRAMSize {
		b.machine.ULA.WriteVRAM(addr-ula.VRAMBase, value)
	}
	b.machine.Memory.WriteByte(addr, value)
}

func (b *cpuBus) In(port uint16) byte {
	if port&0x01 == 0 {
		return b.machine.ULA.ReadPort(byte(port >> 8))
	}
	if value, handled := b.machine.Memory.PortIn(port); handled {
		return value
	}
	return 0xFF
}

func (b *cpuBus) Out(port uint16, value byte) {
	if port&0x01 == 0 {
		b.machine.ULA.WritePort(value)
	}
	if port&0x8002 == 0 {
		b.machine.Memory.PortOut(port, value)
	}
}

func (b *cpuBus) Contend(addr uint16) int {
	return b.machine.Memory.ContentionDelay(addr, b.cycleInFrame)
}

func (b *cpuBus) Tick(cycles int) {
	b.cycleInFrame += cycles
	b.machine.ULA.CatchUp(b.cycleInFrame)
}

// String renders a short human-readable identity for logging, matching
// the receiver-conventions used throughout this package's CLI glue.
func (m *Machine) String() string {
	return fmt.Sprintf("machine(model=%d)", m.model)
}
