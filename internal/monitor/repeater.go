package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Repeater calls fn every interval on its own goroutine until stopped. A
// panicking call is logged and the next tick still runs.
type Repeater struct {
	interval time.Duration
	fn       func()
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRepeater(interval time.Duration, fn func(), logger *slog.Logger) *Repeater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repeater{interval: interval, fn: fn, logger: logger}
}

// Start launches the loop. It is a no-op while already running.
func (r *Repeater) Start(parent context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.run(ctx, r.done)
}

func (r *Repeater) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.tick()
		}
	}
}

func (r *Repeater) tick() {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("background tick panicked", "panic", p)
		}
	}()
	r.fn()
}

// Stop cancels the loop and waits up to timeout for it to exit. It reports
// whether the loop finished in time. Stopping a stopped Repeater returns
// true immediately.
func (r *Repeater) Stop(timeout time.Duration) bool {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return true
	}
	cancel()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
