package interp

import (
	"github.com/abatkin/expressions/ast"
	"github.com/abatkin/expressions/lexer"
	"github.com/abatkin/expressions/value"
)

// Resolver is the host-supplied variable lookup callback for expression-only
// embedding (spec.md §6). It stands in for a mutable Environment when no
// program is being executed.
type Resolver func(name string) (value.Value, bool)

// eval reduces expr to a Value, reading variables through it.lookupVar and
// dispatching calls through it.call. This single method backs both
// EvaluateExpression (Resolver-backed, no call frames) and RunProgram
// (Environment-backed), matching SPEC_FULL.md §4.4's requirement that the
// reducer logic is written once.
func (it *Interp) eval(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Lit:
		return litValue(e), nil

	case *ast.Var:
		v, ok := it.lookupVar(e.Name)
		if !ok {
			return nil, resolveFailed(e.Name, e.Line)
		}
		return v, nil

	case *ast.Unary:
		return it.evalUnary(e)

	case *ast.Binary:
		return it.evalBinary(e)

	case *ast.Logical:
		return it.evalLogical(e)

	case *ast.Ternary:
		cond, err := it.eval(e.Cond)
		if err != nil {
			return nil, err
		}
		truthy, err := it.truthy(cond, e.Line)
		if err != nil {
			return nil, err
		}
		if truthy {
			return it.eval(e.Then)
		}
		return it.eval(e.Else)

	case *ast.ListLit:
		elems := make([]value.Value, len(e.Elems))
		for i, el := range e.Elems {
			v, err := it.eval(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil

	case *ast.DictLit:
		d := value.NewDict()
		for _, entry := range e.Entries {
			v, err := it.eval(entry.Value)
			if err != nil {
				return nil, err
			}
			d.Entries[entry.Key] = v
		}
		return d, nil

	case *ast.Member:
		obj, err := it.eval(e.Object)
		if err != nil {
			return nil, err
		}
		return it.memberAccess(obj, e.Field, e.Line)

	case *ast.Index:
		obj, err := it.eval(e.Object)
		if err != nil {
			return nil, err
		}
		idx, err := it.eval(e.Idx)
		if err != nil {
			return nil, err
		}
		return it.indexAccess(obj, idx, e.Line)

	case *ast.Call:
		callee, err := it.eval(e.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]value.Value, len(e.Args))
		for i, a := range e.Args {
			v, err := it.eval(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return it.call(callee, args, e.Line)
	}
	return nil, unsupported("unrecognized expression node", 0)
}

func litValue(l *ast.Lit) value.Value {
	switch l.Kind {
	case ast.LitInt:
		return value.Int(l.Int)
	case ast.LitFloat:
		return value.Float(l.Flt)
	case ast.LitBool:
		return value.Bool(l.Bool)
	case ast.LitStr:
		return value.Str(l.Str)
	}
	return value.Unit{}
}

// truthy wraps value.Truthy, turning a non-coercible value into the
// TypeMismatch error spec.md §4.3 requires.
func (it *Interp) truthy(v value.Value, line int) (bool, error) {
	b, ok := value.Truthy(v)
	if !ok {
		return false, typeMismatch(v.TypeName()+" is not coercible to bool", line)
	}
	return b, nil
}

func (it *Interp) evalUnary(u *ast.Unary) (value.Value, error) {
	v, err := it.eval(u.Expr)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case lexer.MINUS:
		r, err := value.Neg(v)
		if err != nil {
			return nil, typeMismatch("unary '-' requires a numeric operand, got "+v.TypeName(), u.Line)
		}
		return r, nil
	case lexer.BANG:
		b, err := it.truthy(v, u.Line)
		if err != nil {
			return nil, err
		}
		return value.Bool(!b), nil
	}
	return nil, unsupported("unrecognized unary operator", u.Line)
}

func (it *Interp) evalLogical(l *ast.Logical) (value.Value, error) {
	left, err := it.eval(l.Left)
	if err != nil {
		return nil, err
	}
	lb, err := it.truthy(left, l.Line)
	if err != nil {
		return nil, err
	}

	if l.Op == lexer.OR_OR && lb {
		return value.Bool(true), nil
	}
	if l.Op == lexer.AND_AND && !lb {
		return value.Bool(false), nil
	}

	right, err := it.eval(l.Right)
	if err != nil {
		return nil, err
	}
	rb, err := it.truthy(right, l.Line)
	if err != nil {
		return nil, err
	}
	return value.Bool(rb), nil
}

func (it *Interp) evalBinary(b *ast.Binary) (value.Value, error) {
	left, err := it.eval(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.eval(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case lexer.PLUS:
		r, err := value.Add(left, right)
		return r, arithErr(err, left, right, b.Line)
	case lexer.MINUS:
		r, err := value.Sub(left, right)
		return r, arithErr(err, left, right, b.Line)
	case lexer.STAR:
		r, err := value.Mul(left, right)
		return r, arithErr(err, left, right, b.Line)
	case lexer.SLASH:
		r, err := value.Div(left, right)
		return r, arithErr(err, left, right, b.Line)
	case lexer.PERCENT:
		r, err := value.Mod(left, right)
		return r, arithErr(err, left, right, b.Line)
	case lexer.CARET:
		r, err := value.Pow(left, right)
		return r, arithErr(err, left, right, b.Line)
	case lexer.EQUAL_EQUAL:
		return value.Bool(value.Equal(left, right)), nil
	case lexer.BANG_EQUAL:
		return value.Bool(!value.Equal(left, right)), nil
	case lexer.LESS, lexer.LESS_EQUAL, lexer.GREATER, lexer.GREATER_EQUAL:
		cmp, ok := value.Compare(left, right)
		if !ok {
			return nil, typeMismatch("cannot compare "+left.TypeName()+" and "+right.TypeName(), b.Line)
		}
		return value.Bool(compareHolds(b.Op, cmp)), nil
	}
	return nil, unsupported("unrecognized binary operator", b.Line)
}

func compareHolds(op lexer.TokenType, cmp int) bool {
	switch op {
	case lexer.LESS:
		return cmp < 0
	case lexer.LESS_EQUAL:
		return cmp <= 0
	case lexer.GREATER:
		return cmp > 0
	case lexer.GREATER_EQUAL:
		return cmp >= 0
	}
	return false
}

// arithErr translates value package's two sentinel errors into the matching
// interp.Error kind; value itself never depends on interp's error taxonomy
// (see value/arithmetic.go).
func arithErr(err error, left, right value.Value, line int) error {
	switch err {
	case nil:
		return nil
	case value.ErrDivideByZero:
		return divideByZero(line)
	case value.ErrTypeMismatch:
		return typeMismatch("unsupported operand types "+left.TypeName()+" and "+right.TypeName(), line)
	}
	return evaluationFailed(err.Error(), line)
}
