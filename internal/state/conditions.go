package state

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/quiltspace/quilt/internal/expr"
)

// Condition is one declarative predicate, optionally composed of
// sub-conditions. Branch and loop components reduce a condition tree to
// a single boolean.
type Condition struct {
	// Op is the comparison or combinator name.
	Op string `json:"op" yaml:"op"`

	// Left is a variable reference or expression for the left operand.
	Left string `json:"left,omitempty" yaml:"left,omitempty"`

	// Value is the right operand for binary comparisons.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Conditions are the operands of and/or/not combinators.
	Conditions []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// Condition operator names.
const (
	CondEquals      = "equals"
	CondNotEquals   = "notEquals"
	CondGreaterThan = "greaterThan"
	CondLessThan    = "lessThan"
	CondAtLeast     = "atLeast"
	CondAtMost      = "atMost"
	CondStartsWith  = "startsWith"
	CondEndsWith    = "endsWith"
	CondContains    = "contains"
	CondExists      = "exists"
	CondEmpty       = "empty"
	CondAnd         = "and"
	CondOr          = "or"
	CondNot         = "not"
)

// EvalCondition reduces a condition tree to one boolean against env.
// Combinators short-circuit left to right. Malformed conditions are
// false, never errors: a broken predicate hides a branch, it does not
// break the page.
func EvalCondition(c Condition, env expr.Env) bool {
	switch c.Op {
	case CondAnd:
		for _, sub := range c.Conditions {
			if !EvalCondition(sub, env) {
				return false
			}
		}
		return len(c.Conditions) > 0

	case CondOr:
		for _, sub := range c.Conditions {
			if EvalCondition(sub, env) {
				return true
			}
		}
		return false

	case CondNot:
		if len(c.Conditions) != 1 {
			return false
		}
		return !EvalCondition(c.Conditions[0], env)
	}

	left, err := expr.Eval(c.Left, env)
	if err != nil {
		return false
	}

	switch c.Op {
	case CondEquals:
		return expr.Equal(left, c.Value)
	case CondNotEquals:
		return !expr.Equal(left, c.Value)
	case CondGreaterThan:
		return definedBoth(left, c.Value) && expr.Compare(left, c.Value) > 0
	case CondLessThan:
		return definedBoth(left, c.Value) && expr.Compare(left, c.Value) < 0
	case CondAtLeast:
		return definedBoth(left, c.Value) && expr.Compare(left, c.Value) >= 0
	case CondAtMost:
		return definedBoth(left, c.Value) && expr.Compare(left, c.Value) <= 0
	case CondStartsWith:
		return strings.HasPrefix(expr.Stringify(left), cast.ToString(c.Value))
	case CondEndsWith:
		return strings.HasSuffix(expr.Stringify(left), cast.ToString(c.Value))
	case CondContains:
		return containsValue(left, c.Value)
	case CondExists:
		return !expr.IsUndefined(left) && left != nil
	case CondEmpty:
		return !expr.Truthy(left)
	}
	return false
}

func definedBoth(a, b any) bool {
	return !expr.IsUndefined(a) && a != nil && !expr.IsUndefined(b) && b != nil
}

func containsValue(haystack, needle any) bool {
	switch h := haystack.(type) {
	case []any:
		for _, item := range h {
			if expr.Equal(item, needle) {
				return true
			}
		}
		return false
	default:
		return strings.Contains(expr.Stringify(haystack), cast.ToString(needle))
	}
}
