// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ddguard/relay/internal/reading"
)

// Config is the minimal runtime config the poller needs.
type Config struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Poller is the acquisition guard: at most one cycle at a time,
// bounded retries around the driver call.
type Poller struct {
	cfg    Config
	driver Driver
	log    *zap.Logger

	busy atomic.Bool
	now  func() time.Time
}

// New creates a poller with immutable config.
func New(cfg Config, driver Driver, log *zap.Logger) (*Poller, error) {
	if cfg.MaxAttempts < 1 {
		return nil, errors.New("poller: max attempts must be >= 1")
	}
	if cfg.Backoff < 0 {
		return nil, errors.New("poller: backoff must be >= 0")
	}
	if driver == nil {
		return nil, errors.New("poller: driver required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{cfg: cfg, driver: driver, log: log, now: time.Now}, nil
}

// Busy reports whether a cycle currently holds the in-progress flag.
func (p *Poller) Busy() bool {
	return p.busy.Load()
}

// RunCycle performs one acquisition cycle and hands the Reading to h.
// A call made while another cycle is in flight returns OutcomeSkipped
// without touching the driver. The flag is released only after h returns.
func (p *Poller) RunCycle(ctx context.Context, h Handler) Result {
	if !p.busy.CompareAndSwap(false, true) {
		p.log.Debug("acquisition in progress, cycle dropped")
		return Result{Outcome: OutcomeSkipped, At: p.now()}
	}
	defer p.busy.Store(false)

	res := Result{CycleID: uuid.NewString(), At: p.now()}
	log := p.log.With(zap.String("cycle", res.CycleID))

	if err := ctx.Err(); err != nil {
		res.Outcome = OutcomeCanceled
		res.Err = err
		return res
	}

	log.Debug("read live data from pump")

	for res.Attempts < p.cfg.MaxAttempts {
		res.Attempts++

		a := p.attempt(ctx)
		if a.kind == attemptOK {
			res.Outcome = OutcomeAcquired
			res.Reading = a.reading
			res.Err = nil
			break
		}

		res.Err = a.err
		log.Warn("reading live data failed",
			zap.Int("attempt", res.Attempts),
			zap.Int("max_attempts", p.cfg.MaxAttempts),
			zap.Error(a.err),
		)

		if res.Attempts >= p.cfg.MaxAttempts {
			res.Outcome = OutcomeExhausted
			break
		}

		if err := sleep(ctx, p.cfg.Backoff); err != nil {
			res.Outcome = OutcomeCanceled
			log.Info("acquisition canceled during backoff", zap.Int("attempt", res.Attempts))
			return res
		}
	}

	if res.Outcome == OutcomeExhausted {
		log.Error("acquisition failed, skipping this period",
			zap.Int("attempts", res.Attempts),
			zap.Error(res.Err),
		)
		return res
	}

	log.Info("live data acquired",
		zap.Int("attempts", res.Attempts),
		zap.Int("bgl", res.Reading.BGL),
		zap.Stringer("trend", res.Reading.Trend),
		zap.Stringer("sensor_status", res.Reading.Status),
	)

	if h != nil {
		h.Handle(ctx, res.CycleID, res.Reading)
	}
	return res
}

// attempt performs exactly one driver call and validates its output.
// Every failure is retryable; the loop does not distinguish causes.
func (p *Poller) attempt(ctx context.Context) attempt {
	raw, err := p.driver.FetchLive(ctx)
	if err != nil {
		return attempt{kind: attemptRetryable, err: fmt.Errorf("driver: %w", err)}
	}

	r, err := reading.FromRaw(raw, p.now())
	if err != nil {
		return attempt{kind: attemptRetryable, err: err}
	}
	return attempt{kind: attemptOK, reading: r}
}

// sleep waits d or until ctx ends.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
