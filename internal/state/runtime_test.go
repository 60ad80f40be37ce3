package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiltspace/quilt/pkg/domain"
	"github.com/quiltspace/quilt/pkg/ports"
)

// memStore is a minimal in-test StateStore; the real adapters live in
// pkg/adapters and run the shared contract.
type memStore struct {
	data map[string]any
}

var _ ports.StateStore = (*memStore)(nil)

func newMemStore() *memStore { return &memStore{data: make(map[string]any)} }

func (s *memStore) Save(_ context.Context, key string, value any) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Load(_ context.Context, key string) (any, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrVariableNotPersisted
	}
	return v, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func TestDeclare_TypeCoercion(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()

	// Attribute values arrive as strings; the declared type wins.
	require.NoError(t, r.Declare(ctx, domain.Variable{
		Name: "count", Type: domain.VarNumber, Value: "0",
	}))
	got, ok := r.Get("count")
	require.True(t, ok)
	assert.Equal(t, float64(0), got)

	require.NoError(t, r.Declare(ctx, domain.Variable{
		Name: "open", Type: domain.VarBool, Value: "true",
	}))
	got, _ = r.Get("open")
	assert.Equal(t, true, got)

	require.NoError(t, r.Declare(ctx, domain.Variable{
		Name: "tags", Type: domain.VarList, Value: "synth, lofi, 3",
	}))
	got, _ = r.Get("tags")
	assert.Equal(t, []any{"synth", "lofi", float64(3)}, got)
}

func TestDeclare_FirstWins(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()

	require.NoError(t, r.Declare(ctx, domain.Variable{Name: "x", Type: domain.VarNumber, Value: "1"}))
	require.NoError(t, r.Declare(ctx, domain.Variable{Name: "x", Type: domain.VarNumber, Value: "99"}))

	got, _ := r.Get("x")
	assert.Equal(t, float64(1), got)
}

func TestDeclare_PersistedLoadsStoredValue(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.Save(ctx, "visits", float64(41)))

	r := NewRuntime(WithStore(store))
	require.NoError(t, r.Declare(ctx, domain.Variable{
		Name: "visits", Type: domain.VarNumber, Value: "0", Persisted: true,
	}))

	got, _ := r.Get("visits")
	assert.Equal(t, float64(41), got)
}

func TestDeclare_PersistedAbsentUsesInitial(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime(WithStore(newMemStore()))

	require.NoError(t, r.Declare(ctx, domain.Variable{
		Name: "visits", Type: domain.VarNumber, Value: "5", Persisted: true,
	}))
	got, _ := r.Get("visits")
	assert.Equal(t, float64(5), got)
}

func TestApply_PersistedWritesBack(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	r := NewRuntime(WithStore(store))

	require.NoError(t, r.Declare(ctx, domain.Variable{
		Name: "visits", Type: domain.VarNumber, Value: "0", Persisted: true,
	}))

	_, _, err := r.Apply(ctx, VerbIncrement, "visits", nil)
	require.NoError(t, err)

	stored, err := store.Load(ctx, "visits")
	require.NoError(t, err)
	assert.Equal(t, float64(1), stored)
}

func TestApply_UndeclaredVariableFails(t *testing.T) {
	r := NewRuntime()

	_, _, err := r.Apply(context.Background(), VerbSet, "ghost", map[string]any{"value": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVariableNotFound)

	var actionErr *domain.ActionError
	assert.ErrorAs(t, err, &actionErr)
}

func TestSnapshot_IndependentOfLaterMutation(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	require.NoError(t, r.Declare(ctx, domain.Variable{Name: "n", Type: domain.VarNumber, Value: "1"}))

	snap := r.Snapshot()
	_, _, err := r.Apply(ctx, VerbIncrement, "n", nil)
	require.NoError(t, err)

	assert.Equal(t, float64(1), snap["n"])
	now, _ := r.Get("n")
	assert.Equal(t, float64(2), now)
}
