package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiltspace/quilt/pkg/domain"
)

// RunStateStoreContract exercises the StateStore behavior every adapter
// must satisfy. Adapter test suites call this against their own
// construction.
func RunStateStoreContract(t *testing.T, store StateStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("load missing returns ErrVariableNotPersisted", func(t *testing.T) {
		_, err := store.Load(ctx, "never-stored")
		assert.ErrorIs(t, err, domain.ErrVariableNotPersisted)
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "visits", float64(7)))

		got, err := store.Load(ctx, "visits")
		require.NoError(t, err)
		assert.Equal(t, float64(7), got)
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "mood", "happy"))
		require.NoError(t, store.Save(ctx, "mood", "sleepy"))

		got, err := store.Load(ctx, "mood")
		require.NoError(t, err)
		assert.Equal(t, "sleepy", got)
	})

	t.Run("lists survive", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "tags", []any{"synth", "lofi"}))

		got, err := store.Load(ctx, "tags")
		require.NoError(t, err)
		assert.Equal(t, []any{"synth", "lofi"}, got)
	})

	t.Run("delete removes", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "temp", true))
		require.NoError(t, store.Delete(ctx, "temp"))

		_, err := store.Load(ctx, "temp")
		assert.ErrorIs(t, err, domain.ErrVariableNotPersisted)
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "never-stored"))
	})
}
