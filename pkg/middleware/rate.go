// Package middleware provides the HTTP middleware stack of the API.
package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kicksup/kicksup/pkg/cache"
	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/metrics"
	"github.com/kicksup/kicksup/pkg/realip"
	"github.com/kicksup/kicksup/pkg/response"
)

// Limiter decides whether one more request for key fits in its budget.
// retryAfter is meaningful only when allowed is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
	Name() string
}

// ─── In-process limiter ───────────────────────────────────────────────────────

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// MemoryLimiter is a token bucket per key that refills max tokens per window.
type MemoryLimiter struct {
	max    int
	window time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	if max < 1 {
		max = 1
	}
	return &MemoryLimiter{max: max, window: window, visitors: make(map[string]*visitor)}
}

func (m *MemoryLimiter) Name() string { return "memory" }

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := time.Now()

	m.mu.Lock()
	v, ok := m.visitors[key]
	if !ok {
		every := rate.Every(m.window / time.Duration(m.max))
		v = &visitor{lim: rate.NewLimiter(every, m.max)}
		m.visitors[key] = v
	}
	v.seen = now
	m.mu.Unlock()

	r := v.lim.ReserveN(now, 1)
	if !r.OK() {
		return false, m.window, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

// Sweep drops keys idle for longer than one window.
func (m *MemoryLimiter) Sweep() {
	cutoff := time.Now().Add(-m.window)
	m.mu.Lock()
	for k, v := range m.visitors {
		if v.seen.Before(cutoff) {
			delete(m.visitors, k)
		}
	}
	m.mu.Unlock()
}

// RunSweeper calls Sweep every window until ctx is done.
func (m *MemoryLimiter) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(m.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// ─── Redis limiter ────────────────────────────────────────────────────────────

// RedisLimiter is a fixed-window counter shared by every API instance.
type RedisLimiter struct {
	prefix string
	max    int
	window time.Duration
}

func NewRedisLimiter(prefix string, max int, window time.Duration) *RedisLimiter {
	if max < 1 {
		max = 1
	}
	return &RedisLimiter{prefix: prefix, max: max, window: window}
}

func (l *RedisLimiter) Name() string { return "redis" }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	n, ttl, err := cache.Hit(ctx, l.prefix+key, l.window)
	if err != nil {
		return false, 0, err
	}
	return n <= int64(l.max), ttl, nil
}

// ─── Middleware ───────────────────────────────────────────────────────────────

// RateLimit rejects requests over budget with 429 and a Retry-After header.
// When primary errors (Redis down) the request is checked against fallback
// instead, so an outage neither blocks nor unthrottles the endpoint.
func RateLimit(primary, fallback Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := realip.FromRequest(r)
			lim := primary

			allowed, retry, err := lim.Allow(r.Context(), key)
			if err != nil && fallback != nil {
				logger.WithCtx(r.Context()).Warn("rate limiter unavailable, falling back",
					"limiter", lim.Name(), "error", err)
				lim = fallback
				allowed, retry, err = lim.Allow(r.Context(), key)
			}
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				metrics.RateLimited.WithLabelValues(lim.Name()).Inc()
				secs := int(math.Ceil(retry.Seconds()))
				if secs < 1 {
					secs = 1
				}
				response.TooManyRequests(w, strconv.Itoa(secs))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
