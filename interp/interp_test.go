package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abatkin/expressions/interp"
	"github.com/abatkin/expressions/parser"
	"github.com/abatkin/expressions/value"
)

func evalExpr(t *testing.T, src string) value.Value {
	t.Helper()
	expr, err := parser.ParseExpression(src)
	require.NoError(t, err)
	v, err := interp.EvaluateExpression(expr, func(string) (value.Value, bool) { return nil, false })
	require.NoError(t, err)
	return v
}

// These mirror the twelve concrete scenarios of spec.md §8.

func TestScenarioIndexIntoListLiteral(t *testing.T) {
	assert.Equal(t, value.Bool(true), evalExpr(t, `[true][0]`))
}

func TestScenarioDictKeyFromConcatenation(t *testing.T) {
	assert.Equal(t, value.Int(1), evalExpr(t, `{"ab": 1, "cd": 2}["a" + "b"]`))
}

func TestScenarioSubstring(t *testing.T) {
	assert.Equal(t, value.Str("b"), evalExpr(t, `"abcd".substring(1, 2)`))
}

func TestStrLengthAndSubstringAgreeOnUnit(t *testing.T) {
	// "é" is two UTF-8 bytes but one rune; length and substring must use
	// the same unit or they disagree about where the string ends.
	assert.Equal(t, value.Int(1), evalExpr(t, `"é".length`))
	assert.Equal(t, value.Str("é"), evalExpr(t, `"é".substring(0, 1)`))
}

func TestScenarioJoin(t *testing.T) {
	assert.Equal(t, value.Str("a,b,c"), evalExpr(t, `["a", "b", "c"].join(",")`))
}

func TestScenarioDictGetDefault(t *testing.T) {
	assert.Equal(t, value.Str("blah"), evalExpr(t, `{"a": 1, "b": 2}.get("c", "blah")`))
}

func TestScenarioNegativeIndexAndOutOfBounds(t *testing.T) {
	assert.Equal(t, value.Int(30), evalExpr(t, `[10, 20, 30][-1]`))

	expr, err := parser.ParseExpression(`[10][1]`)
	require.NoError(t, err)
	_, err = interp.EvaluateExpression(expr, func(string) (value.Value, bool) { return nil, false })
	require.Error(t, err)
	ierr, ok := err.(*interp.Error)
	require.True(t, ok)
	assert.Equal(t, interp.ErrIndexOutOfBounds, ierr.Kind)
	assert.Equal(t, 1, ierr.Index)
	assert.Equal(t, 1, ierr.Len)
}

func TestScenarioIntDivisionPromotesToFloat(t *testing.T) {
	assert.Equal(t, value.Float(2.5), evalExpr(t, `5 / 2`))
}

func TestScenarioInterpolation(t *testing.T) {
	out, err := interp.EvaluateInterpolated("Hello ${1 + 2}", func(string) (value.Value, bool) { return nil, false })
	require.NoError(t, err)
	assert.Equal(t, "Hello 3", out)
}

func TestScenarioFactorialLoopPrints120(t *testing.T) {
	prog, err := parser.ParseProgram("n = 5\nacc = 1\nfor (i = 1; i <= n; i = i + 1) { acc = acc * i }\nprint(acc)")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = interp.RunProgram(prog, interp.HostConfig{Stdout: &buf})
	require.NoError(t, err)
	assert.Equal(t, "120\n", buf.String())
}

func TestScenarioRecursiveFactorialPrints720(t *testing.T) {
	prog, err := parser.ParseProgram("fn fact(n){ if (n <= 1) { return 1 } return n * fact(n-1) }\nprint(fact(6))")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = interp.RunProgram(prog, interp.HostConfig{Stdout: &buf})
	require.NoError(t, err)
	assert.Equal(t, "720\n", buf.String())
}

func TestScenarioForInDictVisitsEveryEntryOnce(t *testing.T) {
	prog, err := parser.ParseProgram(`d = {"a": 1, "b": 2}
for (k, v) in d { print(k, v) }`)
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = interp.RunProgram(prog, interp.HostConfig{Stdout: &buf})
	require.NoError(t, err)
	assert.Equal(t, "a 1\nb 2\n", buf.String())
}

func TestScenarioNoClosureOverCallerLocal(t *testing.T) {
	prog, err := parser.ParseProgram(`fn useX() { return x }
fn caller() {
  x = 5
  return useX()
}
caller()`)
	require.NoError(t, err)
	_, err = interp.RunProgram(prog, interp.HostConfig{})
	require.Error(t, err)
	ierr, ok := err.(*interp.Error)
	require.True(t, ok)
	assert.Equal(t, interp.ErrResolveFailed, ierr.Kind)
	assert.Equal(t, "x", ierr.Name)
}

// Universal invariants beyond the twelve scenarios.

func TestShortCircuitSkipsRightOperandWhenLeftDecides(t *testing.T) {
	calls := 0
	record := &value.Func{Name: "record", Native: func(args []value.Value) (value.Value, error) {
		calls++
		return value.Bool(true), nil
	}}

	prog, err := parser.ParseProgram(`a = true || record()`)
	require.NoError(t, err)
	_, err = interp.RunProgram(prog, interp.HostConfig{Globals: map[string]value.Value{"record": record}})
	require.NoError(t, err)
	assert.Equal(t, 0, calls, "right operand of || must not run once the left side is already true")

	prog, err = parser.ParseProgram(`a = false || record()`)
	require.NoError(t, err)
	_, err = interp.RunProgram(prog, interp.HostConfig{Globals: map[string]value.Value{"record": record}})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "right operand of || must run when the left side does not decide the outcome")
}

func TestAliasAcrossAssignment(t *testing.T) {
	prog, err := parser.ParseProgram(`a = [1, 2]
b = a
b[0] = 9
print(a[0], b[0])`)
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = interp.RunProgram(prog, interp.HostConfig{Stdout: &buf})
	require.NoError(t, err)
	assert.Equal(t, "9 9\n", buf.String())
}

func TestBreakAndContinueInLoops(t *testing.T) {
	prog, err := parser.ParseProgram(`
total = 0
for (i = 0; i < 10; i = i + 1) {
  if (i == 5) { break }
  if (i % 2 == 0) { continue }
  total = total + i
}
print(total)
`)
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = interp.RunProgram(prog, interp.HostConfig{Stdout: &buf})
	require.NoError(t, err)
	assert.Equal(t, "4\n", buf.String()) // 1 + 3
}

func TestDictKeyShadowsBuiltinMember(t *testing.T) {
	v := evalExpr(t, `{"length": "shadowed"}.length`)
	assert.Equal(t, value.Str("shadowed"), v)
}

func TestTopLevelReturnIsAnError(t *testing.T) {
	prog, err := parser.ParseProgram(`return 1`)
	require.NoError(t, err)
	_, err = interp.RunProgram(prog, interp.HostConfig{})
	require.Error(t, err)
	ierr, ok := err.(*interp.Error)
	require.True(t, ok)
	assert.Equal(t, interp.ErrEvaluationFailed, ierr.Kind)
}

func TestWrongArityIsAnError(t *testing.T) {
	prog, err := parser.ParseProgram(`fn add(a, b) { return a + b }
add(1)`)
	require.NoError(t, err)
	_, err = interp.RunProgram(prog, interp.HostConfig{})
	require.Error(t, err)
	ierr, ok := err.(*interp.Error)
	require.True(t, ok)
	assert.Equal(t, interp.ErrWrongArity, ierr.Kind)
}
