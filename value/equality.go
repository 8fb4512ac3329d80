package value

// Truthy implements spec.md §4.3's per-type truthiness procedure. The
// second return value is false when v is not coercible to Bool at all
// (Func, Unit) or when a Str holds neither "true" nor "false" — both are
// TypeMismatch conditions the caller (interp) turns into an error.
func Truthy(v Value) (bool, bool) {
	switch t := v.(type) {
	case Int:
		return t != 0, true
	case Float:
		return t != 0, true
	case Bool:
		return bool(t), true
	case Str:
		switch string(t) {
		case "true":
			return true, true
		case "false":
			return false, true
		default:
			return false, false
		}
	case *List:
		return len(t.Elems) > 0, true
	case *Dict:
		return len(t.Entries) > 0, true
	default:
		return false, false
	}
}

// Equal implements spec.md §4.3's structural, type-sensitive equality, with
// numeric cross-type coercion as the sole exception.
func Equal(a, b Value) bool {
	if an, aok := IsNumeric(a); aok {
		if bn, bok := IsNumeric(b); bok {
			return an == bn
		}
		return false
	}

	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Unit:
		_, ok := b.(Unit)
		return ok
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv, ok := b.(*Dict)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for k, v := range av.Entries {
			bvVal, found := bv.Entries[k]
			if !found || !Equal(v, bvVal) {
				return false
			}
		}
		return true
	case *Func:
		bv, ok := b.(*Func)
		return ok && av == bv // reference identity
	}
	return false
}

// Compare implements spec.md §4.3's ordering: defined only between two
// numerics (with Int/Float coercion) or two strings (lexicographic over
// code units). ok is false for any other operand combination.
func Compare(a, b Value) (cmp int, ok bool) {
	if an, aok := IsNumeric(a); aok {
		if bn, bok := IsNumeric(b); bok {
			switch {
			case an < bn:
				return -1, true
			case an > bn:
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}

	as, aok := a.(Str)
	bs, bok := b.(Str)
	if aok && bok {
		switch {
		case as < bs:
			return -1, true
		case as > bs:
			return 1, true
		default:
			return 0, true
		}
	}

	return 0, false
}
