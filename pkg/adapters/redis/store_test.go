package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiltspace/quilt/pkg/adapters/redis"
	"github.com/quiltspace/quilt/pkg/domain"
	"github.com/quiltspace/quilt/pkg/ports"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	ports.RunStateStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "visits", float64(3)))

	got, err := store.Load(ctx, "visits")
	require.NoError(t, err)
	assert.Equal(t, float64(3), got)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "visits")
	assert.ErrorIs(t, err, domain.ErrVariableNotPersisted)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("profiles:42:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "mood", "sleepy"))

	assert.True(t, mr.Exists("profiles:42:mood"), "expected key with custom prefix to exist")
	assert.False(t, mr.Exists("quilt:var:mood"))
}
