package interp

import (
	"fmt"
	"strings"

	"github.com/abatkin/expressions/value"
)

// registerBuiltins installs the global builtins of spec.md §6 into it's
// global scope: print, len, type, keys, values, items, get.
func registerBuiltins(it *Interp) {
	def := func(name string, fn value.NativeFunc) {
		it.Env.DefineGlobal(name, &value.Func{Name: name, Native: fn})
	}

	def("print", func(args []value.Value) (value.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = value.AsStrLossy(a)
		}
		fmt.Fprintln(it.Stdout, strings.Join(parts, " "))
		return value.Unit{}, nil
	})

	def("len", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &Error{Kind: ErrWrongArity, Expected: 1, Got: len(args)}
		}
		n, err := containerLen(args[0])
		if err != nil {
			return nil, err
		}
		return value.Int(n), nil
	})

	def("type", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &Error{Kind: ErrWrongArity, Expected: 1, Got: len(args)}
		}
		return value.Str(args[0].TypeName()), nil
	})

	def("keys", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &Error{Kind: ErrWrongArity, Expected: 1, Got: len(args)}
		}
		d, ok := args[0].(*value.Dict)
		if !ok {
			return nil, &Error{Kind: ErrTypeMismatch, Message: "keys() requires a dict, got " + args[0].TypeName()}
		}
		return dictKeysList(d), nil
	})

	def("values", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &Error{Kind: ErrWrongArity, Expected: 1, Got: len(args)}
		}
		d, ok := args[0].(*value.Dict)
		if !ok {
			return nil, &Error{Kind: ErrTypeMismatch, Message: "values() requires a dict, got " + args[0].TypeName()}
		}
		return dictValuesList(d), nil
	})

	def("items", func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, &Error{Kind: ErrWrongArity, Expected: 1, Got: len(args)}
		}
		d, ok := args[0].(*value.Dict)
		if !ok {
			return nil, &Error{Kind: ErrTypeMismatch, Message: "items() requires a dict, got " + args[0].TypeName()}
		}
		keys := d.SortedKeys()
		pairs := make([]value.Value, len(keys))
		for i, k := range keys {
			pairs[i] = value.NewList([]value.Value{value.Str(k), d.Entries[k]})
		}
		return value.NewList(pairs), nil
	})

	def("get", func(args []value.Value) (value.Value, error) {
		if len(args) != 3 {
			return nil, &Error{Kind: ErrWrongArity, Expected: 3, Got: len(args)}
		}
		return containerGet(args[0], args[1], args[2])
	})
}

func containerLen(v value.Value) (int64, error) {
	switch c := v.(type) {
	case value.Str:
		return int64(len(c)), nil
	case *value.List:
		return int64(len(c.Elems)), nil
	case *value.Dict:
		return int64(len(c.Entries)), nil
	}
	return 0, &Error{Kind: ErrTypeMismatch, Message: "len() requires a string, list, or dict, got " + v.TypeName()}
}

func dictKeysList(d *value.Dict) *value.List {
	keys := d.SortedKeys()
	elems := make([]value.Value, len(keys))
	for i, k := range keys {
		elems[i] = value.Str(k)
	}
	return value.NewList(elems)
}

func dictValuesList(d *value.Dict) *value.List {
	keys := d.SortedKeys()
	elems := make([]value.Value, len(keys))
	for i, k := range keys {
		elems[i] = d.Entries[k]
	}
	return value.NewList(elems)
}

// containerGet implements the `get` builtin, mirroring the .get() built-in
// method for both lists (index-based) and dicts (key-based).
func containerGet(container, keyOrIdx, def value.Value) (value.Value, error) {
	switch c := container.(type) {
	case *value.List:
		n, ok := keyOrIdx.(value.Int)
		if !ok {
			return nil, &Error{Kind: ErrWrongIndexType, Target: "list", Message: "get() on a list requires an int index"}
		}
		i := int(n)
		if i < 0 {
			i += len(c.Elems)
		}
		if i < 0 || i >= len(c.Elems) {
			return def, nil
		}
		return c.Elems[i], nil
	case *value.Dict:
		k, ok := keyOrIdx.(value.Str)
		if !ok {
			return nil, &Error{Kind: ErrWrongIndexType, Target: "dict", Message: "get() on a dict requires a string key"}
		}
		if v, found := c.Entries[string(k)]; found {
			return v, nil
		}
		return def, nil
	}
	return nil, &Error{Kind: ErrNotIndexable, Type: container.TypeName(), Message: "get() requires a list or dict, got " + container.TypeName()}
}

// ---- Member-access and indexing protocols (spec.md §4.4) ----

func (it *Interp) memberAccess(obj value.Value, field string, line int) (value.Value, error) {
	if d, ok := obj.(*value.Dict); ok {
		if v, found := d.Entries[field]; found {
			return v, nil
		}
	}

	if v, ok := builtinMember(obj, field); ok {
		return v, nil
	}

	if _, ok := obj.(*value.Dict); ok {
		return nil, noSuchKey(field, line)
	}
	return nil, notADict(line)
}

// builtinMember looks up a built-in property or method for obj's dynamic
// type, per the table in spec.md §4.4. A method resolves to a bound native
// Func that captures obj by value.
func builtinMember(obj value.Value, field string) (value.Value, bool) {
	switch o := obj.(type) {
	case value.Str:
		return strMember(o, field)
	case *value.List:
		return listMember(o, field)
	case *value.Dict:
		return dictMember(o, field)
	}
	return nil, false
}

func bound(name string, fn value.NativeFunc) value.Value {
	return &value.Func{Name: name, Native: fn}
}

func strMember(s value.Str, field string) (value.Value, bool) {
	switch field {
	case "length":
		return value.Int(len([]rune(string(s)))), true
	case "toUpper":
		return bound(field, func(args []value.Value) (value.Value, error) {
			return value.Str(strings.ToUpper(string(s))), nil
		}), true
	case "toLower":
		return bound(field, func(args []value.Value) (value.Value, error) {
			return value.Str(strings.ToLower(string(s))), nil
		}), true
	case "trim":
		return bound(field, func(args []value.Value) (value.Value, error) {
			return value.Str(strings.TrimSpace(string(s))), nil
		}), true
	case "contains":
		return bound(field, func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, &Error{Kind: ErrWrongArity, Expected: 1, Got: len(args)}
			}
			sub, ok := args[0].(value.Str)
			if !ok {
				return nil, &Error{Kind: ErrTypeMismatch, Message: "contains() requires a string argument"}
			}
			return value.Bool(strings.Contains(string(s), string(sub))), nil
		}), true
	case "substring":
		return bound(field, func(args []value.Value) (value.Value, error) {
			return strSubstring(s, args)
		}), true
	}
	return nil, false
}

func strSubstring(s value.Str, args []value.Value) (value.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, &Error{Kind: ErrWrongArity, Expected: 2, Got: len(args)}
	}
	runes := []rune(string(s))
	n := len(runes)

	start, ok := args[0].(value.Int)
	if !ok {
		return nil, &Error{Kind: ErrTypeMismatch, Message: "substring() start must be an int"}
	}
	end := value.Int(n)
	if len(args) == 2 {
		e, ok := args[1].(value.Int)
		if !ok {
			return nil, &Error{Kind: ErrTypeMismatch, Message: "substring() end must be an int"}
		}
		end = e
	}

	si, ei := clampRange(int(start), int(end), n)
	return value.Str(string(runes[si:ei])), nil
}

// clampRange normalises negative indices and clamps both bounds into
// [0, n], per spec.md §4.4's "out-of-range is clamped to the valid range".
func clampRange(start, end, n int) (int, int) {
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end < 0 {
		end = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}

func listMember(l *value.List, field string) (value.Value, bool) {
	switch field {
	case "length":
		return value.Int(len(l.Elems)), true
	case "contains":
		return bound(field, func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, &Error{Kind: ErrWrongArity, Expected: 1, Got: len(args)}
			}
			for _, e := range l.Elems {
				if value.Equal(e, args[0]) {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		}), true
	case "get":
		return bound(field, func(args []value.Value) (value.Value, error) {
			if len(args) != 2 {
				return nil, &Error{Kind: ErrWrongArity, Expected: 2, Got: len(args)}
			}
			return containerGet(l, args[0], args[1])
		}), true
	case "join":
		return bound(field, func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, &Error{Kind: ErrWrongArity, Expected: 1, Got: len(args)}
			}
			sep, ok := args[0].(value.Str)
			if !ok {
				return nil, &Error{Kind: ErrTypeMismatch, Message: "join() requires a string separator"}
			}
			parts := make([]string, len(l.Elems))
			for i, e := range l.Elems {
				parts[i] = value.AsStrLossy(e)
			}
			return value.Str(strings.Join(parts, string(sep))), nil
		}), true
	}
	return nil, false
}

func dictMember(d *value.Dict, field string) (value.Value, bool) {
	switch field {
	case "length":
		return value.Int(len(d.Entries)), true
	case "keys":
		return bound(field, func(args []value.Value) (value.Value, error) {
			return dictKeysList(d), nil
		}), true
	case "values":
		return bound(field, func(args []value.Value) (value.Value, error) {
			return dictValuesList(d), nil
		}), true
	case "contains":
		return bound(field, func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, &Error{Kind: ErrWrongArity, Expected: 1, Got: len(args)}
			}
			k, ok := args[0].(value.Str)
			if !ok {
				return nil, &Error{Kind: ErrTypeMismatch, Message: "contains() requires a string key"}
			}
			_, found := d.Entries[string(k)]
			return value.Bool(found), nil
		}), true
	case "get":
		return bound(field, func(args []value.Value) (value.Value, error) {
			if len(args) != 2 {
				return nil, &Error{Kind: ErrWrongArity, Expected: 2, Got: len(args)}
			}
			return containerGet(d, args[0], args[1])
		}), true
	}
	return nil, false
}

func (it *Interp) indexAccess(obj, idx value.Value, line int) (value.Value, error) {
	switch container := obj.(type) {
	case *value.List:
		n, ok := idx.(value.Int)
		if !ok {
			return nil, wrongIndexType("list", "list index must be an int, got "+idx.TypeName(), line)
		}
		i := int(n)
		length := len(container.Elems)
		if i < 0 {
			i += length
		}
		if i < 0 || i >= length {
			return nil, indexOutOfBounds(int(n), length, line)
		}
		return container.Elems[i], nil

	case *value.Dict:
		s, ok := idx.(value.Str)
		if !ok {
			return nil, wrongIndexType("dict", "dict index must be a string, got "+idx.TypeName(), line)
		}
		v, found := container.Entries[string(s)]
		if !found {
			return nil, noSuchKey(string(s), line)
		}
		return v, nil
	}
	return nil, notIndexable(obj.TypeName(), line)
}
