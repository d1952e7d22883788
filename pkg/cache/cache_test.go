package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledHelpers(t *testing.T) {
	Use(nil)
	ctx := context.Background()

	assert.False(t, Enabled())
	assert.ErrorIs(t, Ping(ctx), ErrDisabled)

	_, _, err := Hit(ctx, "k", time.Second)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.NoError(t, Close())
}

// TestHitAgainstRedis runs only when REDIS_TEST_ADDR points at a server.
func TestHitAgainstRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	Use(redis.NewClient(&redis.Options{Addr: addr}))
	t.Cleanup(func() { _ = Close() })

	ctx := context.Background()
	key := "test:hit:" + uuid.NewString()

	n, ttl, err := Hit(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.LessOrEqual(t, ttl, time.Minute)

	n, _, err = Hit(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
