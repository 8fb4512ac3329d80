// Package interp implements the evaluator and executor: expression
// reduction, the environment stack, control signals, call dispatch, and the
// native builtin registry.
package interp

import (
	"errors"
	"fmt"

	"github.com/abatkin/expressions/value"
)

// ErrorKind is the closed taxonomy of runtime error conditions (spec.md §7).
// ParseFailed is not here: it belongs to package parser and exists before an
// interp.Error ever could.
type ErrorKind int

const (
	ErrResolveFailed ErrorKind = iota
	ErrNotCallable
	ErrWrongArity
	ErrTypeMismatch
	ErrDivideByZero
	ErrIndexOutOfBounds
	ErrWrongIndexType
	ErrNotADict
	ErrNotIndexable
	ErrNoSuchKey
	ErrUnsupported
	ErrEvaluationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrResolveFailed:
		return "ResolveFailed"
	case ErrNotCallable:
		return "NotCallable"
	case ErrWrongArity:
		return "WrongArity"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrDivideByZero:
		return "DivideByZero"
	case ErrIndexOutOfBounds:
		return "IndexOutOfBounds"
	case ErrWrongIndexType:
		return "WrongIndexType"
	case ErrNotADict:
		return "NotADict"
	case ErrNotIndexable:
		return "NotIndexable"
	case ErrNoSuchKey:
		return "NoSuchKey"
	case ErrUnsupported:
		return "Unsupported"
	case ErrEvaluationFailed:
		return "EvaluationFailed"
	}
	return "UnknownError"
}

// errRuntimeFailed is the sentinel every *Error wraps, mirroring
// parser.ErrParseFailed so hosts can test the family with errors.Is without
// switching on Kind.
var errRuntimeFailed = errors.New("evaluation failed")

// Error is every runtime (post-parse) error this module raises. The typed
// fields are populated according to Kind; zero value otherwise.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int

	Name     string // ResolveFailed, NoSuchKey
	Type     string // NotCallable, NotIndexable
	Expected int    // WrongArity
	Got      int    // WrongArity
	Index    int    // IndexOutOfBounds
	Len      int    // IndexOutOfBounds
	Target   string // WrongIndexType
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return errRuntimeFailed }

func resolveFailed(name string, line int) *Error {
	return &Error{Kind: ErrResolveFailed, Name: name, Line: line, Message: fmt.Sprintf("undefined name %q", name)}
}

func notCallable(v value.Value, line int) *Error {
	return &Error{Kind: ErrNotCallable, Type: v.TypeName(), Line: line, Message: fmt.Sprintf("value of type %s is not callable", v.TypeName())}
}

func wrongArity(expected, got, line int) *Error {
	return &Error{Kind: ErrWrongArity, Expected: expected, Got: got, Line: line, Message: fmt.Sprintf("expected %d argument(s), got %d", expected, got)}
}

func typeMismatch(msg string, line int) *Error {
	return &Error{Kind: ErrTypeMismatch, Message: msg, Line: line}
}

func divideByZero(line int) *Error {
	return &Error{Kind: ErrDivideByZero, Line: line, Message: "division by zero"}
}

func indexOutOfBounds(index, length, line int) *Error {
	return &Error{Kind: ErrIndexOutOfBounds, Index: index, Len: length, Line: line, Message: fmt.Sprintf("index %d out of bounds for length %d", index, length)}
}

func wrongIndexType(target, msg string, line int) *Error {
	return &Error{Kind: ErrWrongIndexType, Target: target, Line: line, Message: msg}
}

func notADict(line int) *Error {
	return &Error{Kind: ErrNotADict, Line: line, Message: "member access requires a dict or a built-in member"}
}

func notIndexable(typeName string, line int) *Error {
	return &Error{Kind: ErrNotIndexable, Type: typeName, Line: line, Message: fmt.Sprintf("value of type %s is not indexable", typeName)}
}

func noSuchKey(key string, line int) *Error {
	return &Error{Kind: ErrNoSuchKey, Name: key, Line: line, Message: fmt.Sprintf("no such key %q", key)}
}

func unsupported(msg string, line int) *Error {
	return &Error{Kind: ErrUnsupported, Message: msg, Line: line}
}

func evaluationFailed(msg string, line int) *Error {
	return &Error{Kind: ErrEvaluationFailed, Message: msg, Line: line}
}
