package cache

import (
	"context"
	"testing"
	"time"

	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryTagCache_GetSet(t *testing.T) {
	c := NewMemoryTagCache()
	defer c.Close()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "client:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "client:1", []byte(`{"id":1}`), time.Minute, "client:1"))
	value, ok, err := c.Get(ctx, "client:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, string(value))
}

func TestMemoryTagCache_Expiry(t *testing.T) {
	c := NewMemoryTagCache()
	defer c.Close()
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second, "t"))
	now = now.Add(2 * time.Second)

	_, ok, _ := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, c.Len())

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	now = now.Add(2 * time.Second)
	c.evictExpired()
	assert.Zero(t, c.Len())
}

func TestMemoryTagCache_ZeroTTLIsNotStored(t *testing.T) {
	c := NewMemoryTagCache()
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), 0))
	assert.Zero(t, c.Len())
}

func TestMemoryTagCache_InvalidateTags(t *testing.T) {
	c := NewMemoryTagCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "client:a", []byte("a"), time.Minute, "client:a", "org:1:clients"))
	require.NoError(t, c.Set(ctx, "client:b", []byte("b"), time.Minute, "client:b", "org:1:clients"))
	require.NoError(t, c.Set(ctx, "product:c", []byte("c"), time.Minute, "product:c"))

	require.NoError(t, c.InvalidateTags(ctx, "client:a"))
	_, ok, _ := c.Get(ctx, "client:a")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "client:b")
	assert.True(t, ok)

	require.NoError(t, c.InvalidateTags(ctx, "org:1:clients"))
	_, ok, _ = c.Get(ctx, "client:b")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "product:c")
	assert.True(t, ok)

	assert.NoError(t, c.InvalidateTags(ctx, "unknown"))
}

func TestMemoryTagCache_OverwriteDropsOldTags(t *testing.T) {
	c := NewMemoryTagCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("1"), time.Minute, "old"))
	require.NoError(t, c.Set(ctx, "k", []byte("2"), time.Minute, "new"))

	require.NoError(t, c.InvalidateTags(ctx, "old"))
	value, ok, _ := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "2", string(value))
}

func TestMemoryTagCache_CloseIsIdempotent(t *testing.T) {
	c := NewMemoryTagCache()
	c.Close()
	c.Close()
}

func TestNew_SelectsDriver(t *testing.T) {
	logger := zap.NewNop()

	tc, err := New(config.CacheConfig{Driver: "memory"}, nil, logger)
	require.NoError(t, err)
	mem, ok := tc.(*MemoryTagCache)
	require.True(t, ok)
	mem.Close()

	tc, err = New(config.CacheConfig{Driver: "none"}, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, NopTagCache{}, tc)

	_, err = New(config.CacheConfig{Driver: "redis"}, nil, logger)
	assert.Error(t, err)
}
