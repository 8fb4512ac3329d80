package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abatkin/expressions/ast"
	"github.com/abatkin/expressions/parser"
)

func TestParseExpressionPrecedence(t *testing.T) {
	expr, err := parser.ParseExpression("1 + 2 * 3")
	require.NoError(t, err)
	bin, ok := expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op.String())
	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op.String())
}

func TestParseTernaryIsRightAssociative(t *testing.T) {
	expr, err := parser.ParseExpression("a ? b : c ? d : e")
	require.NoError(t, err)
	top, ok := expr.(*ast.Ternary)
	require.True(t, ok)
	_, ok = top.Else.(*ast.Ternary)
	assert.True(t, ok, "else branch of outer ternary should itself be a ternary")
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	expr, err := parser.ParseExpression("2 ^ 3 ^ 2")
	require.NoError(t, err)
	top, ok := expr.(*ast.Binary)
	require.True(t, ok)
	_, ok = top.Right.(*ast.Binary)
	assert.True(t, ok, "right operand of outer ^ should itself be a ^ expression")
}

func TestParsePostfixChain(t *testing.T) {
	expr, err := parser.ParseExpression(`obj.field[0](1, 2)`)
	require.NoError(t, err)
	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
	idx, ok := call.Callee.(*ast.Index)
	require.True(t, ok)
	_, ok = idx.Object.(*ast.Member)
	assert.True(t, ok)
}

func TestParseListAndDictLiterals(t *testing.T) {
	expr, err := parser.ParseExpression(`[1, 2, 3,]`)
	require.NoError(t, err)
	list, ok := expr.(*ast.ListLit)
	require.True(t, ok)
	assert.Len(t, list.Elems, 3)

	expr, err = parser.ParseExpression(`{"a": 1, "b": 2}`)
	require.NoError(t, err)
	dict, ok := expr.(*ast.DictLit)
	require.True(t, ok)
	assert.Len(t, dict.Entries, 2)
}

func TestParseDictLiteralRejectsNonStringKey(t *testing.T) {
	_, err := parser.ParseExpression(`{a: 1}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrParseFailed))
}

func TestParseAssignmentTargetMustBeLValue(t *testing.T) {
	_, err := parser.ParseProgram("f(x) = 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrParseFailed))

	_, err = parser.ParseProgram("3 = x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrParseFailed))
}

func TestParseProgramStatementForms(t *testing.T) {
	src := `
n = 5
acc = 1
for (i = 1; i <= n; i = i + 1) { acc = acc * i }
print(acc)
`
	prog, err := parser.ParseProgram(src)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 4)
	_, ok := prog.Stmts[2].(*ast.ForC)
	assert.True(t, ok)
}

func TestParseForInListAndForInDict(t *testing.T) {
	prog, err := parser.ParseProgram("for x in xs { print(x) }")
	require.NoError(t, err)
	_, ok := prog.Stmts[0].(*ast.ForInList)
	assert.True(t, ok)

	prog, err = parser.ParseProgram("for (k, v) in d { print(k, v) }")
	require.NoError(t, err)
	_, ok = prog.Stmts[0].(*ast.ForInDict)
	assert.True(t, ok)
}

func TestParseFnDef(t *testing.T) {
	prog, err := parser.ParseProgram("fn fact(n) { if (n <= 1) { return 1 } return n * fact(n-1) }")
	require.NoError(t, err)
	fn, ok := prog.Stmts[0].(*ast.FnDef)
	require.True(t, ok)
	assert.Equal(t, "fact", fn.Name)
	assert.Equal(t, []string{"n"}, fn.Params)
	require.Len(t, fn.Body.Stmts, 2)
}

func TestParseStatementSeparatorAcceptsSemicolonOrNewline(t *testing.T) {
	prog, err := parser.ParseProgram("a = 1; b = 2\nc = 3")
	require.NoError(t, err)
	assert.Len(t, prog.Stmts, 3)
}

func TestParseUnbalancedParenIsParseFailed(t *testing.T) {
	_, err := parser.ParseExpression("(1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrParseFailed))
}

func TestBareDictLiteralStatementIsNotMistakenForABlock(t *testing.T) {
	prog, err := parser.ParseProgram(`{"a": 1}`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	es, ok := prog.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	_, ok = es.Expr.(*ast.DictLit)
	assert.True(t, ok)
}
