package expr

import (
	"fmt"

	"github.com/spf13/cast"
)

// Env resolves bare identifiers during evaluation. The state runtime
// and the renderer both implement it; the evaluator itself has no idea
// where values come from.
type Env interface {
	Lookup(name string) (any, bool)
}

// MapEnv is the simplest Env: a plain map.
type MapEnv map[string]any

func (m MapEnv) Lookup(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// ChainEnv tries each member in order; first hit wins. Used to layer
// loop-local bindings over session state over profile data.
type ChainEnv []Env

func (c ChainEnv) Lookup(name string) (any, bool) {
	for _, env := range c {
		if v, ok := env.Lookup(name); ok {
			return v, ok
		}
	}
	return nil, false
}

// Eval parses and evaluates an expression against env.
//
// Only syntax errors are returned as errors. Unresolved references and
// type mismatches produce Undefined so a broken expression degrades to
// an empty render value rather than failing the page.
func Eval(src string, env Env) (any, error) {
	node, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return evalNode(node, env), nil
}

// EvalBool evaluates an expression to a boolean using template
// truthiness rules.
func EvalBool(src string, env Env) (bool, error) {
	v, err := Eval(src, env)
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

func evalNode(node NodeExpr, env Env) any {
	switch n := node.(type) {
	case *Literal:
		return n.Value

	case *Ident:
		if v, ok := env.Lookup(n.Name); ok {
			return v
		}
		return Undefined{}

	case *Member:
		return member(evalNode(n.Target, env), n.Name)

	case *Index:
		return index(evalNode(n.Target, env), evalNode(n.Key, env))

	case *Unary:
		operand := evalNode(n.Operand, env)
		switch n.Op {
		case "!":
			return !Truthy(operand)
		case "-":
			if f, err := cast.ToFloat64E(operand); err == nil {
				return -f
			}
			return Undefined{}
		}
		return Undefined{}

	case *Binary:
		return evalBinary(n, env)
	}
	return Undefined{}
}

func evalBinary(n *Binary, env Env) any {
	// Logical operators short-circuit left to right.
	switch n.Op {
	case "&&":
		left := evalNode(n.Left, env)
		if !Truthy(left) {
			return false
		}
		return Truthy(evalNode(n.Right, env))
	case "||":
		left := evalNode(n.Left, env)
		if Truthy(left) {
			return true
		}
		return Truthy(evalNode(n.Right, env))
	}

	left := evalNode(n.Left, env)
	right := evalNode(n.Right, env)

	switch n.Op {
	case "==":
		return Equal(left, right)
	case "!=":
		return !Equal(left, right)
	case "<":
		return defined(left, right) && Compare(left, right) < 0
	case "<=":
		return defined(left, right) && Compare(left, right) <= 0
	case ">":
		return defined(left, right) && Compare(left, right) > 0
	case ">=":
		return defined(left, right) && Compare(left, right) >= 0

	case "+":
		// String concatenation when either side is a string literal
		// value; numeric addition otherwise.
		lf, lerr := cast.ToFloat64E(left)
		rf, rerr := cast.ToFloat64E(right)
		if lerr == nil && rerr == nil {
			return lf + rf
		}
		if IsUndefined(left) || IsUndefined(right) {
			return Undefined{}
		}
		return Stringify(left) + Stringify(right)

	case "-", "*", "/", "%":
		lf, lerr := cast.ToFloat64E(left)
		rf, rerr := cast.ToFloat64E(right)
		if lerr != nil || rerr != nil {
			return Undefined{}
		}
		switch n.Op {
		case "-":
			return lf - rf
		case "*":
			return lf * rf
		case "/":
			if rf == 0 {
				return Undefined{}
			}
			return lf / rf
		case "%":
			if rf == 0 {
				return Undefined{}
			}
			return float64(int64(lf) % int64(rf))
		}
	}
	return Undefined{}
}

func defined(vs ...any) bool {
	for _, v := range vs {
		if IsUndefined(v) || v == nil {
			return false
		}
	}
	return true
}

func member(target any, name string) any {
	switch t := target.(type) {
	case map[string]any:
		if v, ok := t[name]; ok {
			return v
		}
	case map[string]string:
		if v, ok := t[name]; ok {
			return v
		}
	case map[string]bool:
		if v, ok := t[name]; ok {
			return v
		}
	case []any:
		// length is the only pseudo-property collections expose
		if name == "length" || name == "count" {
			return float64(len(t))
		}
	case string:
		if name == "length" {
			return float64(len(t))
		}
	}
	return Undefined{}
}

func index(target, key any) any {
	switch t := target.(type) {
	case []any:
		i, err := cast.ToIntE(key)
		if err != nil || i < 0 || i >= len(t) {
			return Undefined{}
		}
		return t[i]
	case map[string]any:
		k := cast.ToString(key)
		if v, ok := t[k]; ok {
			return v
		}
	}
	return Undefined{}
}

// MustParse is a test helper that panics on syntax errors.
func MustParse(src string) NodeExpr {
	n, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("expr: %v", err))
	}
	return n
}
