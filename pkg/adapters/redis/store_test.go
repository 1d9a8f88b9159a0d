package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/turbo-editor/pkg/adapters/redis"
	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/aretw0/turbo-editor/pkg/ports"
	"github.com/aretw0/turbo-editor/pkg/scene"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunSceneStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	sceneID := "scene-ttl"

	err := store.Save(ctx, sceneID, scene.New("Short lived", scene.WithSceneID(sceneID)).Scene())
	require.NoError(t, err)

	scenes, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, scenes, sceneID)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, sceneID)
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)

	// Index pruning compares against the wall clock, not miniredis time.
	time.Sleep(1200 * time.Millisecond)

	scenes, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, scenes)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.Save(ctx, "my-scene", scene.New("Prefixed").Scene())
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:my-scene"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, "my-scene")
}
