package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "code", "654321", 10*time.Minute))

	value, ok, err := store.Get(ctx, "code")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "654321", value)

	now = now.Add(10 * time.Minute)
	_, ok, err = store.Get(ctx, "code")
	require.NoError(t, err)
	assert.False(t, ok, "value should expire after its ttl")

	require.NoError(t, store.Set(ctx, "coupon", "WELCOME50", 0))
	value, ok, err = store.Take(ctx, "coupon")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "WELCOME50", value)

	_, ok, err = store.Take(ctx, "coupon")
	require.NoError(t, err)
	assert.False(t, ok)
}
