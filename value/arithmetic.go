package value

import (
	"errors"
	"math"
)

// Sentinel errors returned by the arithmetic helpers below. interp wraps
// these in its own typed *Error (TypeMismatch / DivideByZero) with a
// descriptive message; value itself only needs to signal which of the two
// conditions occurred, so it stays free of any dependency on interp's
// error taxonomy.
var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrDivideByZero = errors.New("divide by zero")
)

// Add implements '+': numeric+numeric (Float-promoting), Str+Str
// (concatenation). Anything else is ErrTypeMismatch.
func Add(a, b Value) (Value, error) {
	if as, aok := a.(Str); aok {
		if bs, bok := b.(Str); bok {
			return as + bs, nil
		}
		return nil, ErrTypeMismatch
	}
	if ai, bi, ok := bothInt(a, b); ok {
		return Int(ai + bi), nil
	}
	return numericBinOp(a, b, func(x, y float64) float64 { return x + y })
}

// Sub, Mul are numeric-only, Float-promoting, with an Int+Int fast path
// that stays in int64 so magnitudes above 2^53 don't lose precision by
// round-tripping through float64.
func Sub(a, b Value) (Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		return Int(ai - bi), nil
	}
	return numericBinOp(a, b, func(x, y float64) float64 { return x - y })
}

func Mul(a, b Value) (Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		return Int(ai * bi), nil
	}
	return numericBinOp(a, b, func(x, y float64) float64 { return x * y })
}

func Mod(a, b Value) (Value, error) {
	if ai, bi, ok := bothInt(a, b); ok {
		if bi == 0 {
			return nil, ErrDivideByZero
		}
		return Int(ai % bi), nil
	}
	an, aok := IsNumeric(a)
	bn, bok := IsNumeric(b)
	if !aok || !bok {
		return nil, ErrTypeMismatch
	}
	if bn == 0 {
		return nil, ErrDivideByZero
	}
	return Float(math.Mod(an, bn)), nil
}

// bothInt reports whether a and b are both Int, returning their int64
// values. Mixed or non-numeric operands fall back to the Float path.
func bothInt(a, b Value) (int64, int64, bool) {
	ai, aok := a.(Int)
	bi, bok := b.(Int)
	if !aok || !bok {
		return 0, 0, false
	}
	return int64(ai), int64(bi), true
}

// Div ('/') always returns Float; zero divisor is ErrDivideByZero.
func Div(a, b Value) (Value, error) {
	an, aok := IsNumeric(a)
	bn, bok := IsNumeric(b)
	if !aok || !bok {
		return nil, ErrTypeMismatch
	}
	if bn == 0 {
		return nil, ErrDivideByZero
	}
	return Float(an / bn), nil
}

// Pow ('^') always returns Float.
func Pow(a, b Value) (Value, error) {
	an, aok := IsNumeric(a)
	bn, bok := IsNumeric(b)
	if !aok || !bok {
		return nil, ErrTypeMismatch
	}
	return Float(math.Pow(an, bn)), nil
}

// Neg implements unary '-'.
func Neg(v Value) (Value, error) {
	switch n := v.(type) {
	case Int:
		return -n, nil
	case Float:
		return -n, nil
	}
	return nil, ErrTypeMismatch
}

// numericBinOp is reached only once bothInt has already ruled out the
// Int+Int case, so at least one operand here is a Float: always promote.
func numericBinOp(a, b Value, op func(x, y float64) float64) (Value, error) {
	an, aok := IsNumeric(a)
	bn, bok := IsNumeric(b)
	if !aok || !bok {
		return nil, ErrTypeMismatch
	}
	return Float(op(an, bn)), nil
}
