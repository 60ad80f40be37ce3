package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiltspace/quilt/pkg/domain"
)

func declareNumber(t *testing.T, r *Runtime, name string, initial string) {
	t.Helper()
	require.NoError(t, r.Declare(context.Background(), domain.Variable{
		Name: name, Type: domain.VarNumber, Value: initial,
	}))
}

func declareList(t *testing.T, r *Runtime, name string, items ...any) {
	t.Helper()
	require.NoError(t, r.Declare(context.Background(), domain.Variable{
		Name: name, Type: domain.VarList, Value: items,
	}))
}

func TestApply_IncrementClampsToMax(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	declareNumber(t, r, "count", "0")

	// <Increment var="count" by="2" max="5"/> three times ends at 5.
	props := map[string]any{"by": "2", "max": "5"}
	for i := 0; i < 3; i++ {
		_, _, err := r.Apply(ctx, VerbIncrement, "count", props)
		require.NoError(t, err)
	}

	got, _ := r.Get("count")
	assert.Equal(t, float64(5), got)
}

func TestApply_DecrementClampsToMin(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	declareNumber(t, r, "count", "1")

	props := map[string]any{"min": "0"}
	for i := 0; i < 3; i++ {
		_, _, err := r.Apply(ctx, VerbDecrement, "count", props)
		require.NoError(t, err)
	}

	got, _ := r.Get("count")
	assert.Equal(t, float64(0), got)
}

func TestApply_DeclaredBoundsClamp(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	max := 3.0
	require.NoError(t, r.Declare(ctx, domain.Variable{
		Name: "lvl", Type: domain.VarNumber, Value: "0", Max: &max,
	}))

	for i := 0; i < 5; i++ {
		_, _, err := r.Apply(ctx, VerbIncrement, "lvl", nil)
		require.NoError(t, err)
	}
	got, _ := r.Get("lvl")
	assert.Equal(t, float64(3), got)
}

func TestApply_Toggle(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	require.NoError(t, r.Declare(ctx, domain.Variable{Name: "open", Type: domain.VarBool, Value: "false"}))

	_, _, err := r.Apply(ctx, VerbToggle, "open", nil)
	require.NoError(t, err)
	got, _ := r.Get("open")
	assert.Equal(t, true, got)

	_, _, err = r.Apply(ctx, VerbToggle, "open", nil)
	require.NoError(t, err)
	got, _ = r.Get("open")
	assert.Equal(t, false, got)
}

func TestApply_ListVerbs(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	declareList(t, r, "tags", "a", "b")

	_, _, err := r.Apply(ctx, VerbPush, "tags", map[string]any{"value": "c"})
	require.NoError(t, err)
	got, _ := r.Get("tags")
	assert.Equal(t, []any{"a", "b", "c"}, got)

	_, _, err = r.Apply(ctx, VerbRemoveAt, "tags", map[string]any{"index": "1"})
	require.NoError(t, err)
	got, _ = r.Get("tags")
	assert.Equal(t, []any{"a", "c"}, got)

	_, _, err = r.Apply(ctx, VerbInsertAt, "tags", map[string]any{"index": 1, "value": "x"})
	require.NoError(t, err)
	got, _ = r.Get("tags")
	assert.Equal(t, []any{"a", "x", "c"}, got)

	_, _, err = r.Apply(ctx, VerbPop, "tags", nil)
	require.NoError(t, err)
	got, _ = r.Get("tags")
	assert.Equal(t, []any{"a", "x"}, got)
}

func TestApply_ListErrorsLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	declareList(t, r, "empty")

	_, _, err := r.Apply(ctx, VerbPop, "empty", nil)
	require.Error(t, err)
	var actionErr *domain.ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, VerbPop, actionErr.Verb)

	declareList(t, r, "tags", "a")
	_, _, err = r.Apply(ctx, VerbRemoveAt, "tags", map[string]any{"index": 9})
	require.Error(t, err)
	got, _ := r.Get("tags")
	assert.Equal(t, []any{"a"}, got, "failed action must not mutate")
}

func TestApply_StringVerbs(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	require.NoError(t, r.Declare(ctx, domain.Variable{Name: "s", Type: domain.VarString, Value: "mid"}))

	_, _, err := r.Apply(ctx, VerbAppend, "s", map[string]any{"value": "-end"})
	require.NoError(t, err)
	_, _, err = r.Apply(ctx, VerbPrepend, "s", map[string]any{"value": "start-"})
	require.NoError(t, err)
	got, _ := r.Get("s")
	assert.Equal(t, "start-mid-end", got)

	_, _, err = r.Apply(ctx, VerbReplace, "s", map[string]any{"find": "mid", "with": "X"})
	require.NoError(t, err)
	got, _ = r.Get("s")
	assert.Equal(t, "start-X-end", got)
}

func postsFixture() []any {
	return []any{
		map[string]any{"title": "first", "likes": float64(10), "tag": "art"},
		map[string]any{"title": "second", "likes": float64(2), "tag": "music"},
		map[string]any{"title": "third", "likes": float64(7), "tag": "art"},
	}
}

func TestApply_CollectionVerbs(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	declareList(t, r, "posts", postsFixture()...)
	declareList(t, r, "out")

	// Filter with bare field access on object items.
	_, _, err := r.Apply(ctx, VerbFilter, "out", map[string]any{"source": "posts", "where": "likes > 5"})
	require.NoError(t, err)
	got, _ := r.Get("out")
	require.Len(t, got, 2)

	// Sort descending by a field expression.
	_, _, err = r.Apply(ctx, VerbSort, "out", map[string]any{"source": "posts", "by": "likes", "order": "desc"})
	require.NoError(t, err)
	got, _ = r.Get("out")
	list := got.([]any)
	assert.Equal(t, "first", list[0].(map[string]any)["title"])
	assert.Equal(t, "second", list[2].(map[string]any)["title"])

	// Transform projects each item.
	_, _, err = r.Apply(ctx, VerbTransform, "out", map[string]any{"source": "posts", "expression": "title"})
	require.NoError(t, err)
	got, _ = r.Get("out")
	assert.Equal(t, []any{"first", "second", "third"}, got)

	// Count with and without predicate.
	declareNumber(t, r, "n", "0")
	_, _, err = r.Apply(ctx, VerbCount, "n", map[string]any{"source": "posts"})
	require.NoError(t, err)
	got, _ = r.Get("n")
	assert.Equal(t, float64(3), got)

	_, _, err = r.Apply(ctx, VerbCount, "n", map[string]any{"source": "posts", "where": "tag == 'art'"})
	require.NoError(t, err)
	got, _ = r.Get("n")
	assert.Equal(t, float64(2), got)

	// Sum over a field.
	_, _, err = r.Apply(ctx, VerbSum, "n", map[string]any{"source": "posts", "by": "likes"})
	require.NoError(t, err)
	got, _ = r.Get("n")
	assert.Equal(t, float64(19), got)

	// Find first match.
	require.NoError(t, r.Declare(ctx, domain.Variable{Name: "hit", Type: domain.VarObject, Value: map[string]any{}}))
	_, _, err = r.Apply(ctx, VerbFind, "hit", map[string]any{"source": "posts", "where": "tag == 'music'"})
	require.NoError(t, err)
	got, _ = r.Get("hit")
	assert.Equal(t, "second", got.(map[string]any)["title"])
}

func TestApply_CollectionBadPredicateFails(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()
	declareList(t, r, "posts", postsFixture()...)
	declareList(t, r, "out")

	_, _, err := r.Apply(ctx, VerbFilter, "out", map[string]any{"source": "posts", "where": "likes = 5"})
	require.Error(t, err)

	// Target unchanged on failure.
	got, _ := r.Get("out")
	assert.Equal(t, []any{}, got)
}

func TestApply_SideChannels(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime()

	_, effects, err := r.Apply(ctx, VerbToggleClass, "", map[string]any{"target": "header", "class": "glow"})
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Equal(t, domain.EffectToggleClass, effects[0].Kind)
	assert.Equal(t, "header", effects[0].Target)
	assert.Equal(t, "glow", effects[0].Payload["class"])

	_, effects, err = r.Apply(ctx, VerbToast, "", map[string]any{"message": "saved!"})
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Equal(t, domain.EffectToast, effects[0].Kind)
}

func TestApply_UnknownVerb(t *testing.T) {
	r := NewRuntime()
	declareNumber(t, r, "x", "0")

	_, _, err := r.Apply(context.Background(), "eval", "x", map[string]any{"code": "os.exit()"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown verb")
}
