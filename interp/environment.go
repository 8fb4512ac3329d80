package interp

import "github.com/abatkin/expressions/value"

// scope is one binding frame: a flat name→Value map. Grounded on the
// teacher's Environment, minus the parent-chain link — this module's stack
// is a slice of scopes rather than a linked chain (see DESIGN.md).
type scope struct {
	vars map[string]value.Value
}

func newScope() *scope {
	return &scope{vars: make(map[string]value.Value)}
}

// Environment is the executor's mutable scope stack. Index 0 is always the
// global scope. Because user functions never capture, a call frame is
// always exactly [global, callFrame] — never deeper — but the stack is kept
// general (a slice) to also host the top-level program scope and any block
// scopes a future extension might add.
type Environment struct {
	scopes []*scope
}

// NewEnvironment creates a stack containing a single global scope.
func NewEnvironment() *Environment {
	return &Environment{scopes: []*scope{newScope()}}
}

// Global returns the outermost (index 0) scope.
func (e *Environment) Global() *scope {
	return e.scopes[0]
}

// EnterCall swaps the stack to exactly [global, freshFrame] for the
// duration of a user-function call and returns a restore closure that must
// run on every exit path (normal return, Return/Break/Continue signal, or
// error) to put the caller's own stack back in place. This is what enforces
// the "push onto global only" no-closure rule even under recursion: each
// nested call captures its own caller stack in the closure rather than
// pushing onto a shared slice, so a recursive call can never see a parent
// call's locals (spec.md §4.5).
func (e *Environment) EnterCall() (frame *scope, restore func()) {
	saved := e.scopes
	frame = newScope()
	e.scopes = []*scope{saved[0], frame}
	return frame, func() { e.scopes = saved }
}

// Lookup searches innermost to outermost, per spec.md §3.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign updates the nearest existing binding for name, or creates one in
// the innermost scope if none exists anywhere (spec.md §3).
func (e *Environment) Assign(name string, v value.Value) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i].vars[name]; ok {
			e.scopes[i].vars[name] = v
			return
		}
	}
	innermost := e.scopes[len(e.scopes)-1]
	innermost.vars[name] = v
}

// DefineGlobal binds name directly in the global scope, regardless of the
// current stack depth. Used to install builtins and host-supplied globals
// before any program statement runs.
func (e *Environment) DefineGlobal(name string, v value.Value) {
	e.scopes[0].vars[name] = v
}

// Define binds name in the innermost scope unconditionally, used for fn
// declarations, whose name must land in the current scope regardless of
// any outer binding of the same name.
func (e *Environment) Define(name string, v value.Value) {
	innermost := e.scopes[len(e.scopes)-1]
	innermost.vars[name] = v
}
