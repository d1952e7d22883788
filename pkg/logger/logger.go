// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the per-request logger injected by middleware.Logger, so
// every line written from a handler or service carries the request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", order.ID)
//	// → time=... level=INFO msg="order placed" request_id=0b6c... order_id=...
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/kicksup/kicksup/config"
)

var L *slog.Logger

// closers are flushed by Close on shutdown (mongo sink).
var closers []func()

func init() {
	L = slog.New(baseHandler(config.IsProduction(), levelFor(config.LogLevel(), config.IsProduction())))
	slog.SetDefault(L)
}

// Configure rebuilds the logger from the loaded config. When LOG_MONGO_URI is
// set, records are also shipped to MongoDB.
func Configure() error {
	prod := config.IsProduction()
	var h slog.Handler = baseHandler(prod, levelFor(config.LogLevel(), prod))

	if uri := config.LogMongoURI(); uri != "" {
		mh, err := NewMongoHandler(uri, config.LogMongoDB(), "logs")
		if err != nil {
			L.Warn("logger: mongo sink disabled", "error", err)
		} else {
			closers = append(closers, mh.Close)
			h = NewMultiHandler(h, mh)
		}
	}

	L = slog.New(h)
	slog.SetDefault(L)
	return nil
}

// Close flushes any asynchronous sinks.
func Close() {
	for _, c := range closers {
		c()
	}
	closers = nil
}

func baseHandler(prod bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if prod {
		return slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.NewTextHandler(os.Stdout, opts)
}

func levelFor(name string, prod bool) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if prod {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }

// LevelForStatus picks the access-log level for an HTTP status.
func LevelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
