package domain

import (
	"errors"
	"fmt"
)

// ErrComponentNotFound is returned when a component name is not registered.
var ErrComponentNotFound = errors.New("component not found")

// ErrDuplicateComponent is returned when registering a name twice.
var ErrDuplicateComponent = errors.New("component already registered")

// ErrVariableNotFound is returned when an action targets an undeclared variable.
var ErrVariableNotFound = errors.New("variable not found")

// ErrNoSnapPosition is returned when no collision-free grid cell exists
// for an item; callers fall back to unsnapped pixel placement.
var ErrNoSnapPosition = errors.New("no snap position available")

// ErrVariableNotPersisted is returned by state stores asked to load a
// variable they never stored.
var ErrVariableNotPersisted = errors.New("variable not persisted")

// StructuralError is a parse-time template defect: unknown component
// usage, disallowed nesting, or a missing required parent. Structural
// errors block publishing and are never silently dropped.
type StructuralError struct {
	Component string
	Line      int
	Column    int
	Reason    string
}

func (e *StructuralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d:%d: component %q: %s", e.Line, e.Column, e.Component, e.Reason)
	}
	return fmt.Sprintf("component %q: %s", e.Component, e.Reason)
}

// ActionError reports a rejected action application. State is unchanged
// when an ActionError is returned; there are no partial mutations.
type ActionError struct {
	Verb   string
	Target string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q on %q: %v", e.Verb, e.Target, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// StructuralErrors aggregates every defect found in one parse pass so
// authors see the full list, not just the first failure.
type StructuralErrors []*StructuralError

func (e StructuralErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := fmt.Sprintf("%d structural errors:\n", len(e))
	for i, err := range e {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}
