package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/job-radar/internal/cache"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(10, time.Minute)

	_, err := c.Get(ctx, "alpha")
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Set(ctx, "alpha", "- bullet", 0))
	got, err := c.Get(ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, "- bullet", got)
}

func TestMemoryTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(10, time.Minute)

	require.NoError(t, c.Set(ctx, "beta", "x", 20*time.Millisecond))
	time.Sleep(25 * time.Millisecond)
	_, err := c.Get(ctx, "beta")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestMemoryCapacityEvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(1, time.Minute)

	require.NoError(t, c.Set(ctx, "first", "1", 0))
	require.NoError(t, c.Set(ctx, "second", "2", 0))

	_, err := c.Get(ctx, "first")
	require.ErrorIs(t, err, cache.ErrNotFound)
	got, err := c.Get(ctx, "second")
	require.NoError(t, err)
	require.Equal(t, "2", got)
}

func TestMemoryClosed(t *testing.T) {
	c := cache.NewMemory(1, time.Minute)
	require.NoError(t, c.Close())
	require.ErrorIs(t, c.Set(context.Background(), "k", "v", 0), cache.ErrClosed)
}

func TestKeyIsStable(t *testing.T) {
	require.Equal(t, cache.Key("prompt"), cache.Key("prompt"))
	require.NotEqual(t, cache.Key("prompt"), cache.Key("prompt "))
	require.Len(t, cache.Key("prompt"), len("llm:")+40)
}

func TestNewPicksMemoryWithoutRedis(t *testing.T) {
	c := cache.New(cache.DefaultOptions())
	_, ok := c.(*cache.Memory)
	require.True(t, ok)
}
