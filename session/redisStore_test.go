package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStoreSetGet(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session:1:pending_coupon", "SUMMER%20", time.Hour))

	value, ok, err := store.Get(ctx, "session:1:pending_coupon")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "SUMMER%20", value)

	_, ok, err = store.Get(ctx, "session:2:pending_coupon")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "code", "123456", 10*time.Minute))
	mr.FastForward(11 * time.Minute)

	_, ok, err := store.Get(ctx, "code")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreTakeConsumesValue(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "code", "123456", time.Minute))

	value, ok, err := store.Take(ctx, "code")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "123456", value)
	assert.False(t, mr.Exists("code"))

	_, ok, err = store.Take(ctx, "code")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreDelete(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", 0))
	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
	assert.NoError(t, store.Delete(ctx, "missing"))
}
