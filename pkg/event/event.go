// Package event is an in-process event bus. Services fire domain events
// after their transaction commits; listeners run on a worker pool so a slow
// listener never holds up the HTTP response.
//
//	event.Listen("order.placed", func(ctx context.Context, e event.Event) {
//	    placed := e.(events.OrderPlaced)
//	    ...
//	})
//	bus.Dispatch(ctx, events.OrderPlaced{...})
package event

import (
	"context"
	"errors"
	"sync"

	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/workerpool"
)

// Event is anything with a stable name.
type Event interface {
	EventName() string
}

// Handler receives a dispatched event. ctx keeps the values of the
// dispatching request (logger, request id) but is never cancelled by it.
type Handler func(ctx context.Context, e Event)

// Dispatcher is what services depend on.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event)
}

// Bus fans events out to listeners.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	pool     *workerpool.Pool
	inflight sync.WaitGroup
}

// NewBus creates a bus. With a nil pool every listener runs synchronously.
func NewBus(pool *workerpool.Pool) *Bus {
	return &Bus{handlers: make(map[string][]Handler), pool: pool}
}

// Listen registers handler for the named event.
func (b *Bus) Listen(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

func (b *Bus) listeners(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Handler(nil), b.handlers[name]...)
}

// Dispatch delivers e to every listener. When the pool is full or closed the
// listener runs inline instead of being dropped.
func (b *Bus) Dispatch(ctx context.Context, e Event) {
	hs := b.listeners(e.EventName())
	if len(hs) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	for _, h := range hs {
		h := h
		if b.pool == nil {
			b.call(ctx, h, e)
			continue
		}

		b.inflight.Add(1)
		err := b.pool.Submit(func() {
			defer b.inflight.Done()
			h(ctx, e)
		})
		if err != nil {
			b.inflight.Done()
			if !errors.Is(err, workerpool.ErrPoolClosed) {
				logger.WithCtx(ctx).Warn("event: pool saturated, running listener inline",
					"event", e.EventName())
			}
			b.call(ctx, h, e)
		}
	}
}

func (b *Bus) call(ctx context.Context, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithCtx(ctx).Error("event: listener panicked", "event", e.EventName(), "panic", r)
		}
	}()
	h(ctx, e)
}

// Wait blocks until every listener queued so far has finished.
func (b *Bus) Wait() {
	b.inflight.Wait()
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[string][]Handler)
}

// ─── Default bus ──────────────────────────────────────────────────────────────

var (
	defaultMu  sync.RWMutex
	defaultBus = NewBus(nil)
)

// Default returns the process-wide bus.
func Default() *Bus {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultBus
}

// SetDefault replaces the process-wide bus, e.g. with a pooled one at boot.
func SetDefault(b *Bus) {
	defaultMu.Lock()
	defaultBus = b
	defaultMu.Unlock()
}

// Listen registers on the default bus.
func Listen(name string, handler Handler) { Default().Listen(name, handler) }

// Fire dispatches on the default bus.
func Fire(ctx context.Context, e Event) { Default().Dispatch(ctx, e) }
