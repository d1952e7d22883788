// Package app assembles the KicksUp API: it connects the infrastructure,
// builds repositories and services, wires listeners and scheduled jobs, and
// exposes the HTTP handler.
//
//	a, err := app.Boot(ctx)
//	if err != nil {
//	    return err
//	}
//	return a.Serve(ctx)
//
// Tests skip Boot and call New with an in-memory database.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/jobs"
	"github.com/kicksup/kicksup/app/listeners"
	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/app/routes"
	"github.com/kicksup/kicksup/app/services"
	"github.com/kicksup/kicksup/config"
	"github.com/kicksup/kicksup/database/seeders"
	"github.com/kicksup/kicksup/pkg/cache"
	"github.com/kicksup/kicksup/pkg/database"
	"github.com/kicksup/kicksup/pkg/event"
	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/middleware"
	"github.com/kicksup/kicksup/pkg/migration"
	"github.com/kicksup/kicksup/pkg/router"
	"github.com/kicksup/kicksup/pkg/schedule"
	"github.com/kicksup/kicksup/pkg/storage"
	"github.com/kicksup/kicksup/pkg/workerpool"

	// Registers the schema migrations.
	_ "github.com/kicksup/kicksup/database/migrations"
)

// Options tunes New. Zero values fall back to config.
type Options struct {
	// Disk receives uploads. Nil means storage.Default at request time.
	Disk storage.Disk
	// Async runs event listeners on a worker pool. Tests leave it off so
	// listeners finish before the response is read.
	Async          bool
	Workers        int
	AuthRateLimit  int
	UploadMaxBytes int64
}

// Application owns every long-lived component of the API.
type Application struct {
	DB     *gorm.DB
	Router *router.Router
	Bus    *event.Bus

	Products *repositories.ProductRepository
	Users    *services.UserService

	pool      *workerpool.Pool
	limiter   *middleware.MemoryLimiter
	scheduler *schedule.Scheduler
	handler   http.Handler
	stops     []func()
}

// New builds the application over db without touching the network.
func New(db *gorm.DB, opts Options) *Application {
	a := &Application{DB: db}

	if opts.Async {
		a.pool = workerpool.New(orDefault(opts.Workers, config.Int("EVENT_WORKERS", 8)))
	}
	a.Bus = event.NewBus(a.pool)

	disk := func() storage.Disk {
		if opts.Disk != nil {
			return opts.Disk
		}
		return storage.Default()
	}
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	listeners.Register(a.Bus, disk(), productRepo)
	a.Products = productRepo
	a.Users = services.NewUserService(userRepo, orderRepo)

	limit, memory := authLimiter(orDefault(opts.AuthRateLimit, config.Int("AUTH_RATE_LIMIT", 20)))
	a.limiter = memory

	a.Router = router.New()
	a.handler = buildHandler(a.Router, routes.Deps{
		Auth:           services.NewAuthService(userRepo, a.Bus),
		Products:       services.NewProductService(productRepo, orderRepo, a.Bus),
		Orders:         services.NewOrderService(orderRepo, productRepo, userRepo, a.Bus),
		Users:          a.Users,
		DB:             func() *gorm.DB { return a.DB },
		Disk:           disk,
		UploadMaxBytes: int64(orDefault(int(opts.UploadMaxBytes), config.Int("UPLOAD_MAX_BYTES", 5<<20))),
		AuthLimit:      limit,
	})
	return a
}

// Boot loads config, connects the database, Redis and storage, optionally
// migrates and seeds, then builds the application with async listeners and
// the stock scan scheduled.
func Boot(ctx context.Context) (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := logger.Configure(); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if err := database.Connect(); err != nil {
		return nil, err
	}
	if err := cache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, using in-process fallbacks", "error", err)
	}
	if err := storage.Connect(); err != nil {
		return nil, err
	}

	if config.SeedOnBoot() {
		if _, err := migration.New(database.DB, nil).Run(); err != nil {
			return nil, err
		}
		if err := seeders.RunAll(database.DB, nil); err != nil {
			return nil, err
		}
	}

	a := New(database.DB, Options{Async: true})
	event.SetDefault(a.Bus)
	if err := a.schedule(); err != nil {
		return nil, err
	}

	sweepCtx, cancel := context.WithCancel(context.Background())
	go a.limiter.RunSweeper(sweepCtx)
	a.OnStop(cancel)
	return a, nil
}

func (a *Application) schedule() error {
	a.scheduler = schedule.New()
	job := jobs.ScanStock(a.Products, config.Int("STOCK_LOW_THRESHOLD", 5))
	if err := a.scheduler.Add(jobs.StockScanName, config.Get("STOCK_SCAN_SCHEDULE", "@every 5m"), job); err != nil {
		return err
	}
	a.scheduler.RunNow(jobs.StockScanName, job)
	return nil
}

// Handler is the fully wrapped HTTP handler.
func (a *Application) Handler() http.Handler { return a.handler }

// OnStop registers fn to run during Shutdown, after background work drains.
func (a *Application) OnStop(fn func()) { a.stops = append(a.stops, fn) }

// Shutdown stops the scheduler, waits for in-flight listeners and releases
// connections.
func (a *Application) Shutdown(ctx context.Context) {
	if a.scheduler != nil {
		if err := a.scheduler.Stop(ctx); err != nil {
			logger.Warn("schedule: stop timed out", "error", err)
		}
	}
	a.Bus.Wait()
	if a.pool != nil {
		a.pool.Shutdown()
	}
	for _, fn := range a.stops {
		fn()
	}
	if err := cache.Close(); err != nil {
		logger.Warn("redis close", "error", err)
	}
	if err := database.Close(); err != nil {
		logger.Warn("database close", "error", err)
	}
	logger.Close()
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout() time.Duration {
	return time.Duration(config.Int("SHUTDOWN_TIMEOUT_SECONDS", 15)) * time.Second
}
