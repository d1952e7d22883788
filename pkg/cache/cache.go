// Package cache owns the optional Redis connection. When REDIS_ADDR is
// empty or the server does not answer, the package stays disabled and every
// helper degrades to a no-op so callers can fall back to in-process state.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kicksup/kicksup/config"
)

// ErrDisabled is returned by helpers when no Redis client is connected.
var ErrDisabled = errors.New("cache: redis disabled")

var (
	mu  sync.RWMutex
	rdb *redis.Client
)

// Connect dials REDIS_ADDR and verifies it with a ping. An empty address is
// not an error: Redis is simply left disabled.
func Connect(ctx context.Context) error {
	addr := config.RedisAddr()
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
		DB:       config.Int("REDIS_DB", 0),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("cache: redis ping %s: %w", addr, err)
	}

	Use(client)
	return nil
}

// Use installs an already-built client. Passing nil disables the cache.
func Use(client *redis.Client) {
	mu.Lock()
	rdb = client
	mu.Unlock()
}

// Client returns the connected client, or nil.
func Client() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	return rdb
}

// Enabled reports whether a Redis client is connected.
func Enabled() bool { return Client() != nil }

// Ping checks the live connection.
func Ping(ctx context.Context) error {
	c := Client()
	if c == nil {
		return ErrDisabled
	}
	return c.Ping(ctx).Err()
}

// Close releases the client.
func Close() error {
	mu.Lock()
	c := rdb
	rdb = nil
	mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}

// Hit increments a fixed-window counter stored at key and returns the new
// count with the time left in the window. The window starts on the first hit.
func Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	c := Client()
	if c == nil {
		return 0, 0, ErrDisabled
	}

	n, err := c.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("cache: hit %s: %w", key, err)
	}
	if n == 1 {
		if err := c.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("cache: expire %s: %w", key, err)
		}
		return n, window, nil
	}

	left, err := c.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("cache: ttl %s: %w", key, err)
	}
	if left < 0 {
		// A key without expiry would never reset; repair it.
		_ = c.Expire(ctx, key, window).Err()
		left = window
	}
	return n, left, nil
}
