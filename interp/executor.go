package interp

import (
	"io"

	"github.com/abatkin/expressions/ast"
	"github.com/abatkin/expressions/value"
)

// ctrlKind is the non-value outcome of executing a statement (spec.md
// §4.5's "control signal"), replacing the teacher's (Object, bool) tuple
// because this grammar also needs Break/Continue, which that shape cannot
// carry alongside a return value.
type ctrlKind int

const (
	ctrlNormal ctrlKind = iota
	ctrlBreak
	ctrlContinue
	ctrlReturn
)

type control struct {
	kind  ctrlKind
	value value.Value // populated only when kind == ctrlReturn
}

var normalCtrl = control{kind: ctrlNormal}

// HostConfig configures a single RunProgram call: where print writes, and
// any additional globals layered over the builtin registry.
type HostConfig struct {
	Stdout  io.Writer
	Globals map[string]value.Value
}

// RunProgram executes prog to completion, returning Unit on normal
// completion or the first Error encountered (spec.md §4.5).
func RunProgram(prog *ast.Program, cfg HostConfig) (value.Value, error) {
	it := newInterp(cfg.Stdout)
	for name, v := range cfg.Globals {
		it.Env.DefineGlobal(name, v)
	}

	hoistTopLevelFns(it, prog.Stmts)

	ctrl, err := it.execStmts(prog.Stmts)
	if err != nil {
		return nil, err
	}
	switch ctrl.kind {
	case ctrlReturn:
		return nil, evaluationFailed("return outside any function call", 0)
	case ctrlBreak, ctrlContinue:
		return nil, evaluationFailed("break/continue outside any loop", 0)
	default:
		return value.Unit{}, nil
	}
}

// hoistTopLevelFns pre-binds every top-level fn's name before execution
// begins, so mutually recursive top-level functions can call one another
// regardless of declaration order (spec.md: "pushes an initial global scope
// pre-populated with ... user-defined function names encountered at top
// level").
func hoistTopLevelFns(it *Interp, stmts []ast.Stmt) {
	for _, s := range stmts {
		if fn, ok := s.(*ast.FnDef); ok {
			it.Env.DefineGlobal(fn.Name, &value.Func{Name: fn.Name, Params: fn.Params, Body: fn.Body})
		}
	}
}

// Session is a persistent program execution context for hosts that want to
// feed statements incrementally (a REPL) rather than running one complete
// Program and discarding the environment, as RunProgram does.
type Session struct {
	it *Interp
}

// NewSession creates a Session with a fresh global scope pre-populated with
// builtins and any host-supplied globals.
func NewSession(cfg HostConfig) *Session {
	it := newInterp(cfg.Stdout)
	for name, v := range cfg.Globals {
		it.Env.DefineGlobal(name, v)
	}
	return &Session{it: it}
}

// Run executes stmts against the session's persistent environment, so names
// bound by one call are visible to the next.
func (s *Session) Run(stmts []ast.Stmt) (value.Value, error) {
	hoistTopLevelFns(s.it, stmts)
	ctrl, err := s.it.execStmts(stmts)
	if err != nil {
		return nil, err
	}
	switch ctrl.kind {
	case ctrlReturn:
		return nil, evaluationFailed("return outside any function call", 0)
	case ctrlBreak, ctrlContinue:
		return nil, evaluationFailed("break/continue outside any loop", 0)
	default:
		return value.Unit{}, nil
	}
}

func (it *Interp) execBlock(b *ast.Block) (control, error) {
	return it.execStmts(b.Stmts)
}

func (it *Interp) execStmts(stmts []ast.Stmt) (control, error) {
	for _, s := range stmts {
		ctrl, err := it.execStmt(s)
		if err != nil {
			return normalCtrl, err
		}
		if ctrl.kind != ctrlNormal {
			return ctrl, nil
		}
	}
	return normalCtrl, nil
}

func (it *Interp) execStmt(s ast.Stmt) (control, error) {
	switch st := s.(type) {
	case *ast.Assign:
		return normalCtrl, it.execAssign(st)

	case *ast.ExprStmt:
		_, err := it.eval(st.Expr)
		return normalCtrl, err

	case *ast.Block:
		return it.execBlock(st)

	case *ast.If:
		cond, err := it.eval(st.Cond)
		if err != nil {
			return normalCtrl, err
		}
		truthy, err := it.truthy(cond, st.Line)
		if err != nil {
			return normalCtrl, err
		}
		if truthy {
			return it.execBlock(st.Then)
		}
		if st.Else != nil {
			return it.execBlock(st.Else)
		}
		return normalCtrl, nil

	case *ast.While:
		return it.execWhile(st)

	case *ast.ForC:
		return it.execForC(st)

	case *ast.ForInList:
		return it.execForInList(st)

	case *ast.ForInDict:
		return it.execForInDict(st)

	case *ast.FnDef:
		it.Env.Define(st.Name, &value.Func{Name: st.Name, Params: st.Params, Body: st.Body})
		return normalCtrl, nil

	case *ast.Return:
		if st.Expr == nil {
			return control{kind: ctrlReturn, value: value.Unit{}}, nil
		}
		v, err := it.eval(st.Expr)
		if err != nil {
			return normalCtrl, err
		}
		return control{kind: ctrlReturn, value: v}, nil

	case *ast.Break:
		return control{kind: ctrlBreak}, nil

	case *ast.Continue:
		return control{kind: ctrlContinue}, nil
	}
	return normalCtrl, unsupported("unrecognized statement node", 0)
}

func (it *Interp) execAssign(a *ast.Assign) error {
	v, err := it.eval(a.Value)
	if err != nil {
		return err
	}

	switch target := a.Target.(type) {
	case *ast.Var:
		it.Env.Assign(target.Name, v)
		return nil

	case *ast.Member:
		obj, err := it.eval(target.Object)
		if err != nil {
			return err
		}
		d, ok := obj.(*value.Dict)
		if !ok {
			return notADict(target.Line)
		}
		d.Entries[target.Field] = v
		return nil

	case *ast.Index:
		obj, err := it.eval(target.Object)
		if err != nil {
			return err
		}
		idx, err := it.eval(target.Idx)
		if err != nil {
			return err
		}
		return it.assignIndex(obj, idx, v, target.Line)
	}
	return unsupported("unrecognized assignment target", a.Line)
}

func (it *Interp) assignIndex(obj, idx, v value.Value, line int) error {
	switch container := obj.(type) {
	case *value.Dict:
		key, ok := idx.(value.Str)
		if !ok {
			return wrongIndexType("dict", "dict assignment index must be a string", line)
		}
		container.Entries[string(key)] = v
		return nil

	case *value.List:
		n, ok := idx.(value.Int)
		if !ok {
			return wrongIndexType("list", "list assignment index must be an int", line)
		}
		i := int(n)
		length := len(container.Elems)
		if i < 0 {
			i += length
		}
		if i < 0 || i >= length {
			return indexOutOfBounds(int(n), length, line)
		}
		container.Elems[i] = v
		return nil
	}
	return notIndexable(obj.TypeName(), line)
}

func (it *Interp) execWhile(w *ast.While) (control, error) {
	for {
		cond, err := it.eval(w.Cond)
		if err != nil {
			return normalCtrl, err
		}
		truthy, err := it.truthy(cond, w.Line)
		if err != nil {
			return normalCtrl, err
		}
		if !truthy {
			return normalCtrl, nil
		}

		ctrl, err := it.execBlock(w.Body)
		if err != nil {
			return normalCtrl, err
		}
		switch ctrl.kind {
		case ctrlBreak:
			return normalCtrl, nil
		case ctrlReturn:
			return ctrl, nil
		}
	}
}

func (it *Interp) execForC(f *ast.ForC) (control, error) {
	if f.Init != nil {
		if _, err := it.execStmt(f.Init); err != nil {
			return normalCtrl, err
		}
	}

	for {
		if f.Cond != nil {
			cond, err := it.eval(f.Cond)
			if err != nil {
				return normalCtrl, err
			}
			truthy, err := it.truthy(cond, f.Line)
			if err != nil {
				return normalCtrl, err
			}
			if !truthy {
				return normalCtrl, nil
			}
		}

		ctrl, err := it.execBlock(f.Body)
		if err != nil {
			return normalCtrl, err
		}
		switch ctrl.kind {
		case ctrlBreak:
			return normalCtrl, nil
		case ctrlReturn:
			return ctrl, nil
		}

		if f.Post != nil {
			if _, err := it.execStmt(f.Post); err != nil {
				return normalCtrl, err
			}
		}
	}
}

func (it *Interp) execForInList(f *ast.ForInList) (control, error) {
	iterable, err := it.eval(f.Iterable)
	if err != nil {
		return normalCtrl, err
	}
	list, ok := iterable.(*value.List)
	if !ok {
		return normalCtrl, typeMismatch("for-in over a list requires a list, got "+iterable.TypeName(), f.Line)
	}

	// Snapshot the backing slice so concurrent mutation during the loop
	// cannot change which elements are visited (spec.md §5).
	elems := make([]value.Value, len(list.Elems))
	copy(elems, list.Elems)

	for _, el := range elems {
		it.Env.Assign(f.Var, el)
		ctrl, err := it.execBlock(f.Body)
		if err != nil {
			return normalCtrl, err
		}
		switch ctrl.kind {
		case ctrlBreak:
			return normalCtrl, nil
		case ctrlReturn:
			return ctrl, nil
		}
	}
	return normalCtrl, nil
}

func (it *Interp) execForInDict(f *ast.ForInDict) (control, error) {
	iterable, err := it.eval(f.Iterable)
	if err != nil {
		return normalCtrl, err
	}
	dict, ok := iterable.(*value.Dict)
	if !ok {
		return normalCtrl, typeMismatch("for-in over (k, v) requires a dict, got "+iterable.TypeName(), f.Line)
	}

	keys := dict.SortedKeys() // iteration order is unspecified; sorted-by-key is deterministic (DESIGN.md)

	for _, k := range keys {
		it.Env.Assign(f.Key, value.Str(k))
		it.Env.Assign(f.Val, dict.Entries[k])
		ctrl, err := it.execBlock(f.Body)
		if err != nil {
			return normalCtrl, err
		}
		switch ctrl.kind {
		case ctrlBreak:
			return normalCtrl, nil
		case ctrlReturn:
			return ctrl, nil
		}
	}
	return normalCtrl, nil
}
