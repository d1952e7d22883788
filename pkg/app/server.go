package app

import (
	"context"

	"github.com/kicksup/kicksup/config"
	"github.com/kicksup/kicksup/internal/server"
)

// Serve runs the HTTP server on APP_PORT until ctx is cancelled, then shuts
// the application down.
func (a *Application) Serve(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Start()
	}

	err := server.Run(ctx, ":"+config.AppPort(), a.handler, ShutdownTimeout())

	stopCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout())
	defer cancel()
	a.Shutdown(stopCtx)
	return err
}
