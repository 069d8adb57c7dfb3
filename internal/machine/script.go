package machine

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Script evaluates Lua breakpoint and watch expressions against a
// machine's live register state, for the disassembler REPL's scripting
// hook. Each expression is wrapped as a Lua function taking the CPU's
// named registers as arguments and returning a boolean.
type Script struct {
	state *lua.LState
	fns   map[string]*lua.LFunction
}

// NewScript starts a fresh Lua interpreter for one debug session.
func NewScript() *Script {
	return &Script{
		state: lua.NewState(),
		fns:   make(map[string]*lua.LFunction),
	}
}

// Close releases the interpreter's resources.
func (s *Script) Close() {
	s.state.Close()
}

// Load compiles expr (a Lua boolean expression referencing pc, a, f,
// bc, de, hl, sp, ix, iy) into a named watch function.
func (s *Script) Load(name, expr string) error {
	src := fmt.Sprintf("function %s(pc, a, f, bc, de, hl, sp, ix, iy) return %s end", name, expr)
	if err := s.state.DoString(src); err != nil {
		return fmt.Errorf("script: compile %q: %w", name, err)
	}
	fn, ok := s.state.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return fmt.Errorf("script: %q did not define a function", name)
	}
	s.fns[name] = fn
	return nil
}

// Eval calls the named watch function against m's current register
// state and reports whether it evaluated truthy.
func (s *Script) Eval(name string, m *Machine) (bool, error) {
	fn, ok := s.fns[name]
	if !ok {
		return false, fmt.Errorf("script: no such watch %q", name)
	}
	cpu := m.CPU
	args := []lua.LValue{
		lua.LNumber(cpu.PC), lua.LNumber(cpu.A), lua.LNumber(cpu.F),
		lua.LNumber(cpu.BC()), lua.LNumber(cpu.DE()), lua.LNumber(cpu.HL()),
		lua.LNumber(cpu.SP), lua.LNumber(cpu.IX), lua.LNumber(cpu.IY),
	}
	if err := s.state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		return false, fmt.Errorf("script: eval %q: %w", name, err)
	}
	ret := s.state.Get(-1)
	s.state.Pop(1)
	return lua.LVAsBool(ret), nil
}
