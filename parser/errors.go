package parser

import (
	"errors"
	"fmt"

	"github.com/abatkin/expressions/lexer"
)

// ErrParseFailed is the single sentinel every *ParseError wraps, so callers
// can test for the ParseFailed error kind with errors.Is regardless of the
// specific message (spec.md §7: "ParseFailed is a single error kind").
var ErrParseFailed = errors.New("parse failed")

// ParseError carries a human-readable message and source position
// alongside the ErrParseFailed identity. Precise span/column information
// beyond the line number is a display collaborator's concern per spec.md §1.
type ParseError struct {
	Line    int
	Lexeme  string
	Message string
}

func (e *ParseError) Error() string {
	if e.Lexeme != "" {
		return fmt.Sprintf("line %d: at %q: %s", e.Line, e.Lexeme, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Unwrap() error { return ErrParseFailed }

func newParseError(tok lexer.Token, message string) *ParseError {
	return &ParseError{Line: tok.Line, Lexeme: tok.Lexeme, Message: message}
}
