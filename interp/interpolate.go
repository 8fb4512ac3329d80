package interp

import (
	"strings"

	"github.com/abatkin/expressions/parser"
	"github.com/abatkin/expressions/value"
)

// EvaluateInterpolated splices the as_str_lossy of each ${expr} segment of
// template into the surrounding literal text (spec.md §4.3). Brace nesting
// inside a ${…} segment is tracked char-by-char so that braces occurring
// inside a string literal of that expression (e.g. ${f("{")}) do not count
// toward the segment's own nesting depth.
func EvaluateInterpolated(template string, resolve Resolver) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(template) {
		if template[i] == '$' && i+1 < len(template) && template[i+1] == '{' {
			segEnd, ok := findInterpolationEnd(template, i+2)
			if !ok {
				return "", &parser.ParseError{Message: "unterminated ${...} interpolation segment"}
			}
			exprSrc := template[i+2 : segEnd]
			expr, err := parser.ParseExpression(exprSrc)
			if err != nil {
				return "", err
			}
			it := newInterp(nil)
			it.Resolver = resolve
			v, err := it.eval(expr)
			if err != nil {
				return "", err
			}
			out.WriteString(value.AsStrLossy(v))
			i = segEnd + 1 // past the closing '}'
			continue
		}
		out.WriteByte(template[i])
		i++
	}
	return out.String(), nil
}

// findInterpolationEnd scans forward from start (just past "${") for the
// '}' that closes this segment, tracking brace depth and skipping over
// quoted-string contents so braces inside a string literal don't count.
func findInterpolationEnd(s string, start int) (int, bool) {
	depth := 0
	i := start
	for i < len(s) {
		c := s[i]
		switch {
		case c == '"' || c == '\'':
			end, ok := skipStringLiteral(s, i)
			if !ok {
				return 0, false
			}
			i = end
			continue
		case c == '{':
			depth++
		case c == '}':
			if depth == 0 {
				return i, true
			}
			depth--
		}
		i++
	}
	return 0, false
}

// skipStringLiteral returns the index just past the closing quote matching
// s[start], honoring the lexer's backslash-escape rule so an escaped quote
// doesn't end the literal early.
func skipStringLiteral(s string, start int) (int, bool) {
	quote := s[start]
	i := start + 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1, true
		}
		i++
	}
	return 0, false
}
