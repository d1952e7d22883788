// Package schedule runs named background jobs on cron specs.
//
//	s := schedule.New()
//	s.Add("stock.scan", "@every 5m", jobs.ScanStock(db))
//	s.Add("nightly", "0 3 * * *", cleanup)
//	s.Start()
//	defer s.Stop(ctx)
//
// Specs are standard 5-field cron expressions or descriptors such as
// "@hourly" and "@every 90s". A job still running when its next tick fires
// is skipped, and a panicking job is logged without stopping the scheduler.
package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/metrics"
)

// Job is one unit of scheduled work. The context is cancelled on Stop.
type Job func(ctx context.Context) error

// Entry describes a registered job.
type Entry struct {
	Name string
	Spec string
	Next time.Time
	Prev time.Time
}

// Scheduler wraps a cron.Cron with named jobs.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	names map[cron.EntryID]string
	specs map[cron.EntryID]string
}

// New creates a stopped scheduler.
func New() *Scheduler {
	cl := cronLogger{}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		ctx:    ctx,
		cancel: cancel,
		names:  make(map[cron.EntryID]string),
		specs:  make(map[cron.EntryID]string),
	}
}

// Add registers job under name. An invalid spec is returned as an error.
func (s *Scheduler) Add(name, spec string, job Job) error {
	id, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("schedule: %s: invalid spec %q: %w", name, spec, err)
	}

	s.mu.Lock()
	s.names[id] = name
	s.specs[id] = spec
	s.mu.Unlock()
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	start := time.Now()
	err := job(s.ctx)
	metrics.RecordScheduledRun(name, err)

	log := logger.L.With("job", name, "duration", time.Since(start).String())
	if err != nil {
		log.Error("schedule: job failed", "error", err)
		return
	}
	log.Debug("schedule: job finished")
}

// RunNow executes a registered-style job synchronously, outside the cron
// loop. Used at boot to prime gauges.
func (s *Scheduler) RunNow(name string, job Job) {
	s.run(name, job)
}

// Start begins dispatching in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("schedule: scheduler started", "jobs", len(s.Entries()))
}

// Stop halts dispatching, cancels running jobs' context and waits for them
// to return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		logger.Info("schedule: scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entries lists registered jobs ordered by name.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.names))
	for _, e := range s.cron.Entries() {
		out = append(out, Entry{Name: s.names[e.ID], Spec: s.specs[e.ID], Next: e.Next, Prev: e.Prev})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// cronLogger routes robfig/cron's logr-style calls into slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.L.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.L.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
