// Package event provides an event bus with synchronous listeners and
// asynchronous listeners run on a bounded worker pool.
package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/qcharged/product-service/pkg/logger"
	"github.com/qcharged/product-service/pkg/metrics"
	"github.com/qcharged/product-service/pkg/workerpool"
)

// Event is what listeners receive.
type Event struct {
	Name       string
	Payload    any
	OccurredAt time.Time
}

// Listener handles one event. A returned error is logged and counted; it
// never reaches the code that fired the event.
type Listener func(ctx context.Context, e Event) error

// Publisher is the firing side of a Bus.
type Publisher interface {
	Fire(ctx context.Context, name string, payload any)
}

type entry struct {
	listener Listener
	async    bool
}

// Bus dispatches events by name.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]entry
	pool      *workerpool.Pool
}

// NewBus returns a Bus that runs async listeners on pool. With a nil pool
// async listeners run inline like sync ones.
func NewBus(pool *workerpool.Pool) *Bus {
	return &Bus{
		listeners: make(map[string][]entry),
		pool:      pool,
	}
}

// Listen registers a listener that runs before Fire returns.
func (b *Bus) Listen(name string, l Listener) {
	b.add(name, entry{listener: l})
}

// ListenAsync registers a listener that runs on the worker pool.
func (b *Bus) ListenAsync(name string, l Listener) {
	b.add(name, entry{listener: l, async: true})
}

func (b *Bus) add(name string, e entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[name] = append(b.listeners[name], e)
}

// Fire dispatches payload to every listener of name. Async listeners get a
// context that is not cancelled with ctx. When the pool is full they run
// inline instead.
func (b *Bus) Fire(ctx context.Context, name string, payload any) {
	b.mu.RLock()
	entries := append([]entry(nil), b.listeners[name]...)
	b.mu.RUnlock()

	e := Event{Name: name, Payload: payload, OccurredAt: time.Now()}

	for _, en := range entries {
		if !en.async || b.pool == nil {
			run(ctx, en.listener, e)
			continue
		}

		detached := context.WithoutCancel(ctx)
		listener := en.listener
		err := b.pool.Submit(func() { run(detached, listener, e) })
		switch {
		case errors.Is(err, workerpool.ErrPoolFull):
			run(ctx, listener, e)
		case err != nil:
			logger.WithCtx(ctx).Warn("event: listener dropped", "event", name, "error", err)
			metrics.ListenerFailures.WithLabelValues(name).Inc()
		}
	}
}

// Flush removes all listeners (useful in tests).
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = make(map[string][]entry)
}

func run(ctx context.Context, l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithCtx(ctx).Error("event: listener panicked", "event", e.Name, "panic", fmt.Sprint(r))
			metrics.ListenerFailures.WithLabelValues(e.Name).Inc()
		}
	}()

	if err := l(ctx, e); err != nil {
		logger.WithCtx(ctx).Error("event: listener failed", "event", e.Name, "error", err)
		metrics.ListenerFailures.WithLabelValues(e.Name).Inc()
	}
}
