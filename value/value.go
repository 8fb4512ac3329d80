// Package value implements the runtime value model: the tagged Value union,
// truthiness, structural equality, ordering, arithmetic, and stringification.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abatkin/expressions/ast"
)

// Value is any runtime value: a Primitive (Int, Float, Bool, Str), a List,
// a Dict, a Func, or Unit.
type Value interface {
	fmt.Stringer
	TypeName() string
	valueNode()
}

// Int is a 64-bit signed integer value.
type Int int64

func (Int) valueNode()        {}
func (Int) TypeName() string  { return "int" }
func (i Int) String() string  { return strconv.FormatInt(int64(i), 10) }

// Float is a 64-bit floating point value.
type Float float64

func (Float) valueNode()       {}
func (Float) TypeName() string { return "float" }
func (f Float) String() string { return formatFloat(float64(f)) }

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Bool is a boolean value.
type Bool bool

func (Bool) valueNode()       {}
func (Bool) TypeName() string { return "bool" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Str is a string value.
type Str string

func (Str) valueNode()       {}
func (Str) TypeName() string { return "string" }
func (s Str) String() string { return string(s) }

// List is a mutable, ordered, reference-shared sequence of Values. The
// pointer-to-struct shape is what makes `b := a; b[0] = 9` visible through
// `a` (spec.md §5's aliasing rule): assignment copies the pointer, never the
// backing slice.
type List struct {
	Elems []Value
}

func NewList(elems []Value) *List { return &List{Elems: elems} }

func (*List) valueNode()       {}
func (*List) TypeName() string { return "list" }
func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = AsStrLossy(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Dict is a mutable, reference-shared string-keyed map. Like List, it is
// always passed around as a pointer so aliasing is observable.
type Dict struct {
	Entries map[string]Value
}

func NewDict() *Dict { return &Dict{Entries: make(map[string]Value)} }

func (*Dict) valueNode()       {}
func (*Dict) TypeName() string { return "dict" }

// SortedKeys returns the dict's keys sorted lexicographically. Iteration
// order over a Dict is unspecified by the language; this module picks
// sorted-by-key for determinism (see DESIGN.md open-question decisions).
func (d *Dict) SortedKeys() []string {
	keys := make([]string, 0, len(d.Entries))
	for k := range d.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d *Dict) String() string {
	keys := d.SortedKeys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, AsStrLossy(d.Entries[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Func is a callable value: either a user-defined function or a native
// (builtin, possibly receiver-bound) one.
type Func struct {
	// User function fields; Native is nil for these.
	Name   string
	Params []string
	Body   *ast.Block

	// Native is set for builtins and bound type methods.
	Native NativeFunc
}

// NativeFunc is a native callable: given already-evaluated arguments, it
// returns a Value or an error (any error type the interp package recognizes).
type NativeFunc func(args []Value) (Value, error)

func (*Func) valueNode()       {}
func (*Func) TypeName() string { return "func" }
func (f *Func) String() string {
	if f.Native != nil {
		return "<native fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// Unit is the "no value" result of `return;` and of a function body that
// completes without returning. It has exactly one value, Unit{}.
type Unit struct{}

func (Unit) valueNode()       {}
func (Unit) TypeName() string { return "unit" }
func (Unit) String() string   { return "" }

// AsStrLossy renders any Value as text, with containers rendering their
// elements recursively by the same function (spec.md §4.3).
func AsStrLossy(v Value) string {
	return v.String()
}

// IsNumeric reports whether v is Int or Float and returns its float64 value.
func IsNumeric(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	}
	return 0, false
}
