package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listingcheck/backend/internal/domain"
)

func setupRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	analysis := &domain.PropertyAnalysis{ID: "a-1", RiskLevel: domain.RiskHigh}
	require.NoError(t, c.Set(ctx, "analysis:x", analysis, time.Hour))

	got, err := c.Get(ctx, "analysis:x")
	require.NoError(t, err)

	raw, ok := got.(string)
	require.True(t, ok, "redis cache returns raw JSON strings")

	var decoded domain.PropertyAnalysis
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "a-1", decoded.ID)
	assert.Equal(t, domain.RiskHigh, decoded.RiskLevel)

	assert.Equal(t, time.Hour, mr.TTL("analysis:x"))
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := setupRedisCache(t)

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_DeleteExists(t *testing.T) {
	c, _ := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, "k"))

	exists, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Unavailable(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()
	mr.Close()

	assert.ErrorIs(t, c.Ping(ctx), domain.ErrCacheUnavailable)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache("not-a-redis-url")
	assert.Error(t, err)
}
