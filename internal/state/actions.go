package state

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/quiltspace/quilt/internal/expr"
	"github.com/quiltspace/quilt/pkg/domain"
)

// Verb names understood by Apply. Anything else is rejected; there is
// no escape hatch into arbitrary code.
const (
	VerbSet       = "set"
	VerbIncrement = "increment"
	VerbDecrement = "decrement"
	VerbToggle    = "toggle"

	VerbPush     = "push"
	VerbPop      = "pop"
	VerbRemoveAt = "removeAt"
	VerbInsertAt = "insertAt"
	VerbClear    = "clear"

	VerbAppend  = "append"
	VerbPrepend = "prepend"
	VerbReplace = "replace"

	VerbFilter    = "filter"
	VerbSort      = "sort"
	VerbTransform = "transform"
	VerbFind      = "find"
	VerbCount     = "count"
	VerbSum       = "sum"
	VerbGet       = "get"

	// Side channels: no variable mutation, an effect request instead.
	VerbToggleClass = "toggleClass"
	VerbCSSProperty = "setCssProperty"
	VerbURLParam    = "setUrlParam"
	VerbURLHash     = "setUrlHash"
	VerbClipboard   = "copyToClipboard"
	VerbToast       = "showToast"
)

// Apply executes one action verb against the target variable.
//
// On success it returns the new value plus any side-effect requests for
// the host. On failure the target variable is untouched: verbs compute
// the full replacement value first and commit last.
func (r *Runtime) Apply(ctx context.Context, verb, targetVar string, props map[string]any) (any, []domain.SideEffect, error) {
	fail := func(err error) (any, []domain.SideEffect, error) {
		return nil, nil, &domain.ActionError{Verb: verb, Target: targetVar, Err: err}
	}

	if effect, ok := sideChannel(verb, props); ok {
		return nil, []domain.SideEffect{effect}, nil
	}

	v, ok := r.vars[targetVar]
	if !ok {
		// Referencing an undeclared variable is an explicit failure,
		// never a silent creation of ambiguous type.
		return fail(domain.ErrVariableNotFound)
	}

	newValue, err := r.compute(verb, v, props)
	if err != nil {
		return fail(err)
	}

	if err := r.commit(ctx, v, newValue); err != nil {
		return fail(err)
	}
	return newValue, nil, nil
}

func (r *Runtime) compute(verb string, v *domain.Variable, props map[string]any) (any, error) {
	switch verb {
	case VerbSet:
		raw, ok := props["value"]
		if !ok {
			return nil, fmt.Errorf("missing prop %q", "value")
		}
		return coerceToType(raw, v.Type)

	case VerbIncrement, VerbDecrement:
		return r.step(verb, v, props)

	case VerbToggle:
		b, err := cast.ToBoolE(v.Value)
		if err != nil {
			return nil, fmt.Errorf("toggle on non-boolean value %v", v.Value)
		}
		return !b, nil

	case VerbPush:
		list, err := asList(v)
		if err != nil {
			return nil, err
		}
		raw, ok := props["value"]
		if !ok {
			return nil, fmt.Errorf("missing prop %q", "value")
		}
		out := append(cloneList(list), raw)
		return out, nil

	case VerbPop:
		list, err := asList(v)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("pop on empty list")
		}
		return cloneList(list[:len(list)-1]), nil

	case VerbRemoveAt:
		list, err := asList(v)
		if err != nil {
			return nil, err
		}
		idx, err := intProp(props, "index")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(list) {
			return nil, fmt.Errorf("index %d out of range (len %d)", idx, len(list))
		}
		out := cloneList(list[:idx])
		out = append(out, list[idx+1:]...)
		return out, nil

	case VerbInsertAt:
		list, err := asList(v)
		if err != nil {
			return nil, err
		}
		idx, err := intProp(props, "index")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx > len(list) {
			return nil, fmt.Errorf("index %d out of range (len %d)", idx, len(list))
		}
		raw, ok := props["value"]
		if !ok {
			return nil, fmt.Errorf("missing prop %q", "value")
		}
		out := cloneList(list[:idx])
		out = append(out, raw)
		out = append(out, list[idx:]...)
		return out, nil

	case VerbClear:
		return zeroValue(v.Type), nil

	case VerbAppend:
		s, err := cast.ToStringE(v.Value)
		if err != nil {
			return nil, err
		}
		return s + cast.ToString(props["value"]), nil

	case VerbPrepend:
		s, err := cast.ToStringE(v.Value)
		if err != nil {
			return nil, err
		}
		return cast.ToString(props["value"]) + s, nil

	case VerbReplace:
		s, err := cast.ToStringE(v.Value)
		if err != nil {
			return nil, err
		}
		return strings.ReplaceAll(s, cast.ToString(props["find"]), cast.ToString(props["with"])), nil

	case VerbFilter, VerbSort, VerbTransform, VerbFind, VerbCount, VerbSum, VerbGet:
		return r.collection(verb, props)
	}

	return nil, fmt.Errorf("unknown verb")
}

// step handles increment/decrement with clamping. Bounds come from the
// action props first, then from the variable's own declaration; when
// both are absent the value moves freely.
func (r *Runtime) step(verb string, v *domain.Variable, props map[string]any) (any, error) {
	current, err := cast.ToFloat64E(v.Value)
	if err != nil {
		return nil, fmt.Errorf("%s on non-numeric value %v", verb, v.Value)
	}

	by := 1.0
	if raw, ok := props["by"]; ok {
		if by, err = cast.ToFloat64E(raw); err != nil {
			return nil, fmt.Errorf("bad %q prop: %w", "by", err)
		}
	}
	if verb == VerbDecrement {
		by = -by
	}
	next := current + by

	if min, ok := boundProp(props, "min", v.Min); ok && next < min {
		next = min
	}
	if max, ok := boundProp(props, "max", v.Max); ok && next > max {
		next = max
	}
	return next, nil
}

// collection runs the list-processing verbs over a named source
// variable with a predicate string evaluated by the same restricted
// evaluator templates use.
func (r *Runtime) collection(verb string, props map[string]any) (any, error) {
	sourceName := cast.ToString(props["source"])
	if sourceName == "" {
		return nil, fmt.Errorf("missing prop %q", "source")
	}
	raw, ok := r.Get(sourceName)
	if !ok {
		return nil, fmt.Errorf("source %q: %w", sourceName, domain.ErrVariableNotFound)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("source %q is not a list", sourceName)
	}

	itemEnv := func(item any, index int) expr.Env {
		locals := expr.MapEnv{"item": item, "index": float64(index)}
		if m, ok := item.(map[string]any); ok {
			// Field names of object items resolve bare: where="likes > 5".
			return expr.ChainEnv{expr.MapEnv(m), locals, r}
		}
		return expr.ChainEnv{locals, r}
	}

	predicate := func(propName string) (string, error) {
		src := cast.ToString(props[propName])
		if src == "" {
			return "", fmt.Errorf("missing prop %q", propName)
		}
		// Surface syntax errors before iterating.
		if _, err := expr.Parse(src); err != nil {
			return "", fmt.Errorf("bad %s predicate: %w", propName, err)
		}
		return src, nil
	}

	switch verb {
	case VerbFilter:
		where, err := predicate("where")
		if err != nil {
			return nil, err
		}
		out := []any{}
		for i, item := range list {
			keep, _ := expr.EvalBool(where, itemEnv(item, i))
			if keep {
				out = append(out, item)
			}
		}
		return out, nil

	case VerbFind:
		where, err := predicate("where")
		if err != nil {
			return nil, err
		}
		for i, item := range list {
			hit, _ := expr.EvalBool(where, itemEnv(item, i))
			if hit {
				return item, nil
			}
		}
		return nil, nil

	case VerbCount:
		if _, ok := props["where"]; !ok {
			return float64(len(list)), nil
		}
		where, err := predicate("where")
		if err != nil {
			return nil, err
		}
		n := 0
		for i, item := range list {
			hit, _ := expr.EvalBool(where, itemEnv(item, i))
			if hit {
				n++
			}
		}
		return float64(n), nil

	case VerbSum:
		total := 0.0
		if _, ok := props["by"]; !ok {
			for _, item := range list {
				f, err := cast.ToFloat64E(item)
				if err != nil {
					return nil, fmt.Errorf("non-numeric element %v", item)
				}
				total += f
			}
			return total, nil
		}
		by, err := predicate("by")
		if err != nil {
			return nil, err
		}
		for i, item := range list {
			val, _ := expr.Eval(by, itemEnv(item, i))
			if f, err := cast.ToFloat64E(val); err == nil {
				total += f
			}
		}
		return total, nil

	case VerbSort:
		by, err := predicate("by")
		if err != nil {
			return nil, err
		}
		out := cloneList(list)
		descending := strings.EqualFold(cast.ToString(props["order"]), "desc")
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := expr.Eval(by, itemEnv(out[i], i))
			b, _ := expr.Eval(by, itemEnv(out[j], j))
			if descending {
				return expr.Compare(a, b) > 0
			}
			return expr.Compare(a, b) < 0
		})
		return out, nil

	case VerbTransform:
		expression, err := predicate("expression")
		if err != nil {
			return nil, err
		}
		out := make([]any, len(list))
		for i, item := range list {
			val, _ := expr.Eval(expression, itemEnv(item, i))
			if expr.IsUndefined(val) {
				val = nil
			}
			out[i] = val
		}
		return out, nil

	case VerbGet:
		idx, err := intProp(props, "index")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(list) {
			return nil, fmt.Errorf("index %d out of range (len %d)", idx, len(list))
		}
		return list[idx], nil
	}

	return nil, fmt.Errorf("unknown collection verb")
}

// sideChannel maps side-effect verbs onto the closed SideEffect set.
func sideChannel(verb string, props map[string]any) (domain.SideEffect, bool) {
	str := func(key string) string { return cast.ToString(props[key]) }

	switch verb {
	case VerbToggleClass:
		return domain.SideEffect{
			Kind:    domain.EffectToggleClass,
			Target:  str("target"),
			Payload: map[string]string{"class": str("class")},
		}, true
	case VerbCSSProperty:
		return domain.SideEffect{
			Kind:    domain.EffectCSSProperty,
			Target:  str("target"),
			Payload: map[string]string{"name": str("name"), "value": str("value")},
		}, true
	case VerbURLParam:
		return domain.SideEffect{
			Kind:    domain.EffectURLParam,
			Payload: map[string]string{"name": str("name"), "value": str("value")},
		}, true
	case VerbURLHash:
		return domain.SideEffect{
			Kind:    domain.EffectURLHash,
			Payload: map[string]string{"value": str("value")},
		}, true
	case VerbClipboard:
		return domain.SideEffect{
			Kind:    domain.EffectClipboard,
			Payload: map[string]string{"value": str("value")},
		}, true
	case VerbToast:
		return domain.SideEffect{
			Kind:    domain.EffectToast,
			Payload: map[string]string{"message": str("message"), "duration": str("duration")},
		}, true
	}
	return domain.SideEffect{}, false
}

func asList(v *domain.Variable) ([]any, error) {
	list, ok := v.Value.([]any)
	if !ok {
		return nil, fmt.Errorf("variable %q is not a list", v.Name)
	}
	return list, nil
}

func cloneList(in []any) []any {
	out := make([]any, len(in))
	copy(out, in)
	return out
}

func intProp(props map[string]any, key string) (int, error) {
	raw, ok := props[key]
	if !ok {
		return 0, fmt.Errorf("missing prop %q", key)
	}
	i, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("bad %q prop: %w", key, err)
	}
	return i, nil
}

func boundProp(props map[string]any, key string, declared *float64) (float64, bool) {
	if raw, ok := props[key]; ok {
		if f, err := cast.ToFloat64E(raw); err == nil {
			return f, true
		}
	}
	if declared != nil {
		return *declared, true
	}
	return 0, false
}
