package expr

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Undefined is the value of an unresolved reference. It renders as the
// empty string, is falsy, and compares unequal to everything except
// another Undefined, so one broken reference degrades instead of failing
// the render.
type Undefined struct{}

func (Undefined) String() string { return "" }

// IsUndefined reports whether v is the undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(Undefined)
	return ok
}

// Truthy converts any evaluated value into a boolean: empty strings,
// zero numbers, empty collections, nil and undefined are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil, Undefined:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0
	}
	return true
}

// Stringify renders an evaluated value for interpolation output.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil, Undefined:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = Stringify(e)
		}
		return strings.Join(parts, ", ")
	case float64:
		// Whole floats print without the trailing ".0" templates never wrote.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	}
	return fmt.Sprintf("%v", v)
}

// Equal compares two evaluated values with numeric coercion: 2 == "2"
// holds, matching how template authors write attribute values (always
// strings on the wire).
func Equal(a, b any) bool {
	if IsUndefined(a) || IsUndefined(b) {
		return IsUndefined(a) && IsUndefined(b)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aerr := cast.ToFloat64E(a); aerr == nil {
		if bf, berr := cast.ToFloat64E(b); berr == nil {
			return af == bf
		}
	}
	if ab, aerr := cast.ToBoolE(a); aerr == nil {
		if bb, berr := cast.ToBoolE(b); berr == nil {
			return ab == bb
		}
	}
	return cast.ToString(a) == cast.ToString(b)
}

// Compare orders two values: -1, 0 or 1. Numeric when both sides
// coerce, lexicographic otherwise. Undefined sorts before everything.
func Compare(a, b any) int {
	if IsUndefined(a) || a == nil {
		if IsUndefined(b) || b == nil {
			return 0
		}
		return -1
	}
	if IsUndefined(b) || b == nil {
		return 1
	}
	if af, aerr := cast.ToFloat64E(a); aerr == nil {
		if bf, berr := cast.ToFloat64E(b); berr == nil {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(cast.ToString(a), cast.ToString(b))
}
