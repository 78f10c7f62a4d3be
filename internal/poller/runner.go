// internal/poller/runner.go
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner is the scheduler: one cycle at startup, then one per tick.
// Cycles run on their own goroutine so the tick loop and the caller's
// signal path are never blocked. Overlap is dropped by the Poller.
type Runner struct {
	poller   *Poller
	handler  Handler
	interval time.Duration
	log      *zap.Logger

	wg sync.WaitGroup
}

// NewRunner creates a scheduler for p.
func NewRunner(p *Poller, h Handler, interval time.Duration, log *zap.Logger) (*Runner, error) {
	if p == nil {
		return nil, errors.New("poller: runner needs a poller")
	}
	if interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{poller: p, handler: h, interval: interval, log: log}, nil
}

// Run executes the startup cycle synchronously, then ticks until ctx ends.
// No cycle is started after ctx is done.
func (r *Runner) Run(ctx context.Context) {
	r.cycle(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Debug("scheduler stopped")
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			r.wg.Add(1)
			go func() {
				defer r.wg.Done()
				r.cycle(ctx)
			}()
		}
	}
}

// Wait blocks until in-flight cycles finish or timeout elapses.
// It reports whether all cycles finished.
func (r *Runner) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (r *Runner) cycle(ctx context.Context) {
	res := r.poller.RunCycle(ctx, r.handler)
	if res.Outcome == OutcomeSkipped {
		r.log.Info("previous cycle still running, tick dropped")
	}
}
