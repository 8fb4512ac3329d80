// Package expressions is the embeddable entry point: parse an expression or
// a program, evaluate it against a host resolver or a mutable environment,
// and splice ${…} interpolation into template strings.
package expressions

import (
	"github.com/abatkin/expressions/ast"
	"github.com/abatkin/expressions/interp"
	"github.com/abatkin/expressions/parser"
	"github.com/abatkin/expressions/value"
)

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (ast.Expr, error) {
	return parser.ParseExpression(src)
}

// ParseProgram parses src as a sequence of statements.
func ParseProgram(src string) (*ast.Program, error) {
	return parser.ParseProgram(src)
}

// Resolver is the host-supplied variable lookup used by expression-only
// evaluation in lieu of a mutable Environment.
type Resolver = interp.Resolver

// HostConfig configures a RunProgram call.
type HostConfig = interp.HostConfig

// EvaluateExpression evaluates expr, resolving free variable references
// through resolve.
func EvaluateExpression(expr ast.Expr, resolve Resolver) (value.Value, error) {
	return interp.EvaluateExpression(expr, resolve)
}

// EvaluateInterpolated splices the as_str_lossy of every ${expr} segment of
// template into the surrounding literal text.
func EvaluateInterpolated(template string, resolve Resolver) (string, error) {
	return interp.EvaluateInterpolated(template, resolve)
}

// RunProgram executes prog to completion under cfg, returning the program's
// final value (Unit on normal completion) or the first Error encountered.
func RunProgram(prog *ast.Program, cfg HostConfig) (value.Value, error) {
	return interp.RunProgram(prog, cfg)
}

// Session is a persistent execution context for hosts that feed a program
// in incrementally (a REPL) instead of running one complete Program.
type Session = interp.Session

// NewSession creates a Session under cfg.
func NewSession(cfg HostConfig) *Session {
	return interp.NewSession(cfg)
}
