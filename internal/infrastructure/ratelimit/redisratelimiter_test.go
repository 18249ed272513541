package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	rule := Rule{Limit: 3, Window: 5 * time.Minute}

	for i := 0; i < 3; i++ {
		d, err := limiter.Allow(ctx, "login:1.2.3.4", rule)
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d, err := limiter.Allow(ctx, "login:1.2.3.4", rule)
	require.NoError(t, err)
	assert.False(t, d.Allowed, "4th request should be denied")
	assert.Positive(t, d.RetryAfter)
	assert.LessOrEqual(t, d.RetryAfter, rule.Window)

	d, err = limiter.Allow(ctx, "login:5.6.7.8", rule)
	require.NoError(t, err)
	assert.True(t, d.Allowed, "other keys are independent")
}

func TestRedisRateLimiter_SlidingWindow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	rule := Rule{Limit: 2, Window: time.Minute}

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return base }
	for i := 0; i < 2; i++ {
		d, err := limiter.Allow(ctx, "k", rule)
		require.NoError(t, err)
		require.True(t, d.Allowed)
	}

	limiter.now = func() time.Time { return base.Add(30 * time.Second) }
	d, err := limiter.Allow(ctx, "k", rule)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 30*time.Second, d.RetryAfter)

	limiter.now = func() time.Time { return base.Add(61 * time.Second) }
	d, err = limiter.Allow(ctx, "k", rule)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	rule := Rule{Limit: 1, Window: time.Minute}

	d, err := limiter.Allow(ctx, "contact:ip", rule)
	require.NoError(t, err)
	require.True(t, d.Allowed)
	d, err = limiter.Allow(ctx, "contact:ip", rule)
	require.NoError(t, err)
	require.False(t, d.Allowed)

	require.NoError(t, limiter.Reset(ctx, "contact:ip"))
	d, err = limiter.Allow(ctx, "contact:ip", rule)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRedisRateLimiter_DisabledRule(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	d, err := limiter.Allow(context.Background(), "x", Rule{})
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}
