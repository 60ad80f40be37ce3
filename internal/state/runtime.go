package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cast"

	"github.com/quiltspace/quilt/internal/expr"
	"github.com/quiltspace/quilt/pkg/domain"
	"github.com/quiltspace/quilt/pkg/ports"
)

// Runtime is the per-render reactive variable store plus the action
// interpreter.
//
// It holds no internal locking: the host serializes user-triggered
// events so each Apply runs to completion before the next begins.
type Runtime struct {
	vars   map[string]*domain.Variable
	store  ports.StateStore
	logger *slog.Logger
	timers *TimerRegistry
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithStore attaches a persisted-variable store.
func WithStore(store ports.StateStore) Option {
	return func(r *Runtime) { r.store = store }
}

// WithLogger sets a structured logger for degradable errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) { r.logger = logger }
}

// NewRuntime creates an empty runtime.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		vars:   make(map[string]*domain.Variable),
		timers: NewTimerRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return r
}

// Declare creates a variable on first sight. The first declaration in a
// render session wins; re-declaring an existing name is a no-op so
// re-renders of the same tree are stable.
//
// For persisted variables, a previously stored value takes precedence
// over the declared initial; absence in the store means "use initial".
func (r *Runtime) Declare(ctx context.Context, v domain.Variable) error {
	if v.Name == "" {
		return fmt.Errorf("declare: variable has no name")
	}
	if _, exists := r.vars[v.Name]; exists {
		return nil
	}

	if v.Type == "" {
		v.Type = inferType(v.Value)
	}
	coerced, err := coerceToType(v.Value, v.Type)
	if err != nil {
		return fmt.Errorf("declare %q: %w", v.Name, err)
	}
	v.Value = coerced

	if v.Persisted && r.store != nil {
		stored, err := r.store.Load(ctx, v.Name)
		switch {
		case err == nil:
			if c, cerr := coerceToType(stored, v.Type); cerr == nil {
				v.Value = c
			} else {
				r.logger.Warn("persisted value has wrong shape, using initial",
					"var", v.Name, "err", cerr)
			}
		case errors.Is(err, domain.ErrVariableNotPersisted):
			// use declared initial
		default:
			r.logger.Warn("persisted load failed, using initial", "var", v.Name, "err", err)
		}
	}

	r.vars[v.Name] = &v
	return nil
}

// Get returns a variable's current value.
func (r *Runtime) Get(name string) (any, bool) {
	v, ok := r.vars[name]
	if !ok {
		return nil, false
	}
	return v.Value, true
}

// Lookup implements expr.Env over the variable store.
func (r *Runtime) Lookup(name string) (any, bool) {
	return r.Get(name)
}

// Var returns the full variable record.
func (r *Runtime) Var(name string) (*domain.Variable, bool) {
	v, ok := r.vars[name]
	return v, ok
}

// Names returns the declared variable names.
func (r *Runtime) Names() []string {
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	return names
}

// Timers returns the runtime's cancellable timer registry.
func (r *Runtime) Timers() *TimerRegistry {
	return r.timers
}

// Close cancels all pending timers. Unmounting a rendered tree must
// call this so delayed actions never fire against a disposed runtime.
func (r *Runtime) Close() {
	r.timers.Close()
}

// Snapshot returns a copy of all variable values, usable as an
// expression environment independent of later mutations.
func (r *Runtime) Snapshot() map[string]any {
	out := make(map[string]any, len(r.vars))
	for name, v := range r.vars {
		out[name] = v.Value
	}
	return out
}

// commit writes a new value to the target variable and mirrors it to
// the store when persisted. The variable record is only touched after
// every fallible step has succeeded: a rejected action leaves state
// unchanged.
func (r *Runtime) commit(ctx context.Context, v *domain.Variable, newValue any) error {
	if v.Persisted && r.store != nil {
		if err := r.store.Save(ctx, v.Name, newValue); err != nil {
			r.logger.Warn("persist failed, keeping in-memory value", "var", v.Name, "err", err)
		}
	}
	v.Value = newValue
	return nil
}

func inferType(value any) domain.VarType {
	switch value.(type) {
	case bool:
		return domain.VarBool
	case []any:
		return domain.VarList
	case map[string]any:
		return domain.VarObject
	case int, int64, float32, float64:
		return domain.VarNumber
	case nil:
		return domain.VarString
	}
	if _, err := cast.ToFloat64E(value); err == nil {
		return domain.VarNumber
	}
	return domain.VarString
}

// coerceToType converts a raw value (usually a string off an attribute)
// into the variable's declared type.
func coerceToType(value any, t domain.VarType) (any, error) {
	if value == nil {
		return zeroValue(t), nil
	}
	switch t {
	case domain.VarString:
		return cast.ToStringE(value)
	case domain.VarNumber:
		return cast.ToFloat64E(value)
	case domain.VarBool:
		return cast.ToBoolE(value)
	case domain.VarList:
		if l, ok := value.([]any); ok {
			return l, nil
		}
		if s, err := cast.ToStringE(value); err == nil {
			return parseListLiteral(s), nil
		}
		return nil, fmt.Errorf("expected list, got %T", value)
	case domain.VarObject:
		if m, ok := value.(map[string]any); ok {
			return m, nil
		}
		return nil, fmt.Errorf("expected object, got %T", value)
	}
	return value, nil
}

func zeroValue(t domain.VarType) any {
	switch t {
	case domain.VarNumber:
		return float64(0)
	case domain.VarBool:
		return false
	case domain.VarList:
		return []any{}
	case domain.VarObject:
		return map[string]any{}
	}
	return ""
}

// parseListLiteral splits a comma-separated attribute value into list
// elements, coercing numerics. `initial="a, b, 3"` becomes ["a","b",3].
func parseListLiteral(s string) []any {
	if s == "" {
		return []any{}
	}
	parts := strings.Split(s, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if f, err := cast.ToFloat64E(item); err == nil && item != "" {
			out = append(out, f)
		} else {
			out = append(out, item)
		}
	}
	return out
}

// EnvWith layers extra bindings (loop locals, profile namespaces) over
// the runtime's variables.
func (r *Runtime) EnvWith(extra expr.Env) expr.Env {
	if extra == nil {
		return r
	}
	return expr.ChainEnv{extra, r}
}
