package interp

import (
	"io"

	"github.com/abatkin/expressions/ast"
	"github.com/abatkin/expressions/value"
)

// maxCallDepth bounds recursion so a runaway user function (e.g. a factorial
// without a base case) surfaces as a recoverable EvaluationFailed error
// instead of exhausting the Go call stack (spec.md §5).
const maxCallDepth = 2000

// Interp is the shared state behind both public entry points: expression
// evaluation against a Resolver, and full program execution against an
// Environment. Building both on one struct is what lets evaluator.go's
// eval method be written once, per SPEC_FULL.md §4.4.
type Interp struct {
	Env      *Environment
	Stdout   io.Writer
	Resolver Resolver // non-nil only in expression-only (Resolver-backed) mode
	depth    int
}

// newInterp builds an Interp with a fresh global scope pre-populated with
// the builtins of spec.md §6.
func newInterp(stdout io.Writer) *Interp {
	if stdout == nil {
		stdout = io.Discard
	}
	it := &Interp{Env: NewEnvironment(), Stdout: stdout}
	registerBuiltins(it)
	return it
}

// lookupVar checks the Environment first (the active call frame if any,
// then globals), falling back to the Resolver only when nothing in the
// Environment matches. In program mode Resolver is nil and this degrades to
// a plain Environment lookup.
func (it *Interp) lookupVar(name string) (value.Value, bool) {
	if v, ok := it.Env.Lookup(name); ok {
		return v, true
	}
	if it.Resolver != nil {
		return it.Resolver(name)
	}
	return nil, false
}

// call dispatches a Value callee over already-evaluated args, per spec.md
// §4.5's call-dispatch rule.
func (it *Interp) call(callee value.Value, args []value.Value, line int) (value.Value, error) {
	fn, ok := callee.(*value.Func)
	if !ok {
		return nil, notCallable(callee, line)
	}

	if fn.Native != nil {
		v, err := fn.Native(args)
		if err != nil {
			return nil, nativeErr(err, line)
		}
		return v, nil
	}

	if len(args) != len(fn.Params) {
		return nil, wrongArity(len(fn.Params), len(args), line)
	}

	it.depth++
	if it.depth > maxCallDepth {
		it.depth--
		return nil, evaluationFailed("maximum call depth exceeded", line)
	}
	defer func() { it.depth-- }()

	frame, restore := it.Env.EnterCall()
	defer restore()
	for i, p := range fn.Params {
		frame.vars[p] = args[i]
	}

	ctrl, err := it.execBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	switch ctrl.kind {
	case ctrlReturn:
		return ctrl.value, nil
	case ctrlBreak, ctrlContinue:
		return nil, evaluationFailed("break/continue escaped a function body", line)
	default:
		return value.Unit{}, nil
	}
}

// EvaluateExpression evaluates expr with free variables resolved through
// resolve, with no mutable Environment beyond the builtin registry
// (spec.md §6's expression-only embedding).
func EvaluateExpression(expr ast.Expr, resolve Resolver) (value.Value, error) {
	it := newInterp(nil)
	it.Resolver = resolve
	return it.eval(expr)
}

// nativeErr lets a builtin return either a plain error (turned into
// EvaluationFailed) or a fully-formed *Error (passed through unchanged),
// so builtins can raise a specific kind (e.g. TypeMismatch) when they know
// which one applies.
func nativeErr(err error, line int) error {
	if ierr, ok := err.(*Error); ok {
		if ierr.Line == 0 {
			ierr.Line = line
		}
		return ierr
	}
	return evaluationFailed(err.Error(), line)
}
