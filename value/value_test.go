package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abatkin/expressions/value"
)

func TestStringificationAsStrLossy(t *testing.T) {
	assert.Equal(t, "42", value.AsStrLossy(value.Int(42)))
	assert.Equal(t, "3.5", value.AsStrLossy(value.Float(3.5)))
	assert.Equal(t, "true", value.AsStrLossy(value.Bool(true)))
	assert.Equal(t, "hello", value.AsStrLossy(value.Str("hello")))
	assert.Equal(t, "", value.AsStrLossy(value.Unit{}))

	list := value.NewList([]value.Value{value.Int(1), value.Str("a")})
	assert.Equal(t, "[1, a]", value.AsStrLossy(list))
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		v       value.Value
		truthy  bool
		coerces bool
	}{
		{value.Int(0), false, true},
		{value.Int(1), true, true},
		{value.Float(0), false, true},
		{value.Bool(false), false, true},
		{value.Str("true"), true, true},
		{value.Str("false"), false, true},
		{value.Str("nonsense"), false, false},
		{value.NewList(nil), false, true},
		{value.NewList([]value.Value{value.Int(1)}), true, true},
		{value.Unit{}, false, false},
	}
	for _, c := range cases {
		got, ok := value.Truthy(c.v)
		assert.Equal(t, c.coerces, ok, "coercibility of %v", c.v)
		if ok {
			assert.Equal(t, c.truthy, got, "truthiness of %v", c.v)
		}
	}
}

func TestEqualityNumericCoercion(t *testing.T) {
	assert.True(t, value.Equal(value.Int(1), value.Float(1.0)))
	assert.False(t, value.Equal(value.Int(1), value.Str("1")))
	assert.True(t, value.Equal(value.Unit{}, value.Unit{}))
}

func TestEqualityListsAndDicts(t *testing.T) {
	a := value.NewList([]value.Value{value.Int(1), value.Int(2)})
	b := value.NewList([]value.Value{value.Int(1), value.Int(2)})
	assert.True(t, value.Equal(a, b))

	d1 := value.NewDict()
	d1.Entries["x"] = value.Int(1)
	d2 := value.NewDict()
	d2.Entries["x"] = value.Int(1)
	assert.True(t, value.Equal(d1, d2))
}

func TestAliasingSharesBackingStorage(t *testing.T) {
	a := value.NewList([]value.Value{value.Int(1), value.Int(2)})
	b := a
	b.Elems[0] = value.Int(9)
	assert.Equal(t, value.Int(9), a.Elems[0])
}

func TestOrdering(t *testing.T) {
	cmp, ok := value.Compare(value.Int(1), value.Float(2.0))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = value.Compare(value.Str("abc"), value.Str("abd"))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)

	_, ok = value.Compare(value.Bool(true), value.Bool(false))
	assert.False(t, ok)
}

func TestArithmeticPromotion(t *testing.T) {
	sum, err := value.Add(value.Int(1), value.Int(2))
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), sum)

	sum, err = value.Add(value.Int(1), value.Float(2))
	require.NoError(t, err)
	assert.Equal(t, value.Float(3), sum)

	concat, err := value.Add(value.Str("a"), value.Str("b"))
	require.NoError(t, err)
	assert.Equal(t, value.Str("ab"), concat)

	_, err = value.Add(value.Int(1), value.Str("b"))
	assert.ErrorIs(t, err, value.ErrTypeMismatch)
}

func TestIntArithmeticDoesNotRoundTripThroughFloat64(t *testing.T) {
	big := value.Int(9007199254740993) // 2^53 + 1, not exactly representable as float64

	sum, err := value.Add(big, value.Int(0))
	require.NoError(t, err)
	assert.Equal(t, big, sum)

	diff, err := value.Sub(big, value.Int(0))
	require.NoError(t, err)
	assert.Equal(t, big, diff)

	prod, err := value.Mul(big, value.Int(1))
	require.NoError(t, err)
	assert.Equal(t, big, prod)

	rem, err := value.Mod(big, value.Int(10))
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), rem)
}

func TestDivisionAlwaysReturnsFloat(t *testing.T) {
	r, err := value.Div(value.Int(5), value.Int(2))
	require.NoError(t, err)
	assert.Equal(t, value.Float(2.5), r)

	_, err = value.Div(value.Int(1), value.Int(0))
	assert.ErrorIs(t, err, value.ErrDivideByZero)
}

func TestPowAlwaysReturnsFloat(t *testing.T) {
	r, err := value.Pow(value.Int(2), value.Int(3))
	require.NoError(t, err)
	assert.Equal(t, value.Float(8), r)
}
