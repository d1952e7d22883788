package app

import (
	"net/http"
	"time"

	"github.com/kicksup/kicksup/app/routes"
	"github.com/kicksup/kicksup/config"
	"github.com/kicksup/kicksup/pkg/cache"
	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/metrics"
	"github.com/kicksup/kicksup/pkg/middleware"
	"github.com/kicksup/kicksup/pkg/realip"
	"github.com/kicksup/kicksup/pkg/reqid"
	"github.com/kicksup/kicksup/pkg/response"
	"github.com/kicksup/kicksup/pkg/router"
	"github.com/kicksup/kicksup/pkg/storage"
)

// buildHandler installs the global middleware and every route on r.
func buildHandler(r *router.Router, deps routes.Deps) http.Handler {
	if err := realip.SetTrustedProxies(config.TrustedProxies()); err != nil {
		logger.Warn("TRUSTED_PROXIES ignored", "error", err)
	}

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, for total latency
	//  2. Request ID, before anything logs
	//  3. Logger, tagged with the request id
	//  4. Recovery, so a panic is logged with the request id
	//  5. CORS
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// No auth and no rate limit on the exporter.
	r.Mount("/metrics", metrics.Handler())

	if local, ok := deps.Disk().(*storage.LocalDisk); ok {
		r.Mount("/storage", http.StripPrefix("/storage", local.Handler()))
	}

	routes.RegisterAPI(r, deps)
	return r.Handler()
}

// authLimiter throttles login and registration per client IP. Redis keeps the
// budget shared across instances; the in-process bucket takes over while
// Redis is down or disabled.
func authLimiter(perMinute int) (router.Middleware, *middleware.MemoryLimiter) {
	memory := middleware.NewMemoryLimiter(perMinute, time.Minute)
	if !cache.Enabled() {
		return middleware.RateLimit(memory, nil), memory
	}
	return middleware.RateLimit(middleware.NewRedisLimiter("rl:auth:", perMinute, time.Minute), memory), memory
}
