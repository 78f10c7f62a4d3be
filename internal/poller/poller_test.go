// internal/poller/poller_test.go
package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ddguard/relay/internal/reading"
)

type fakeDriver struct {
	mu     sync.Mutex
	calls  int
	failN  int // first failN calls fail
	block  chan struct{}
	onCall func()
}

func (f *fakeDriver) FetchLive(ctx context.Context) (reading.Raw, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	if f.onCall != nil {
		f.onCall()
	}
	if f.block != nil {
		<-f.block
	}
	if n <= f.failN {
		return reading.Raw{}, errors.New("stick not responding")
	}
	bgl := 154
	return reading.Raw{BGL: &bgl, Trend: []byte(`"flat"`)}, nil
}

func (f *fakeDriver) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type countingHandler struct {
	calls atomic.Int32
	last  reading.Reading
}

func (h *countingHandler) Handle(ctx context.Context, cycleID string, r reading.Reading) {
	h.last = r
	h.calls.Add(1)
}

func newTestPoller(t *testing.T, d Driver, attempts int) *Poller {
	t.Helper()
	p, err := New(Config{MaxAttempts: attempts, Backoff: time.Millisecond}, d, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	return p
}

func TestRunCycle_Success(t *testing.T) {
	d := &fakeDriver{}
	h := &countingHandler{}
	p := newTestPoller(t, d, 3)

	res := p.RunCycle(context.Background(), h)
	if res.Outcome != OutcomeAcquired {
		t.Fatalf("outcome: got=%s want=acquired (err=%v)", res.Outcome, res.Err)
	}
	if res.Attempts != 1 || d.Calls() != 1 {
		t.Fatalf("expected 1 attempt, got attempts=%d calls=%d", res.Attempts, d.Calls())
	}
	if h.calls.Load() != 1 || h.last.BGL != 154 {
		t.Fatalf("handler not called with reading")
	}
	if res.CycleID == "" {
		t.Fatalf("cycle id missing")
	}
	if p.Busy() {
		t.Fatalf("flag must be clear after cycle")
	}
}

func TestRunCycle_RetryThenSuccess(t *testing.T) {
	d := &fakeDriver{failN: 2}
	h := &countingHandler{}
	p := newTestPoller(t, d, 3)

	res := p.RunCycle(context.Background(), h)
	if res.Outcome != OutcomeAcquired {
		t.Fatalf("outcome: got=%s want=acquired", res.Outcome)
	}
	if res.Attempts != 3 || d.Calls() != 3 {
		t.Fatalf("expected 3 attempts, got attempts=%d calls=%d", res.Attempts, d.Calls())
	}
	if h.calls.Load() != 1 {
		t.Fatalf("handler calls: got=%d want=1", h.calls.Load())
	}
}

func TestRunCycle_Exhausted(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		d := &fakeDriver{failN: 100}
		h := &countingHandler{}
		p := newTestPoller(t, d, n)

		res := p.RunCycle(context.Background(), h)
		if res.Outcome != OutcomeExhausted {
			t.Fatalf("n=%d outcome: got=%s want=exhausted", n, res.Outcome)
		}
		if d.Calls() != n {
			t.Fatalf("n=%d driver calls: got=%d", n, d.Calls())
		}
		if h.calls.Load() != 0 {
			t.Fatalf("n=%d handler must not be called", n)
		}
		if res.Err == nil {
			t.Fatalf("n=%d expected last error", n)
		}
		if p.Busy() {
			t.Fatalf("n=%d flag must be clear", n)
		}
	}
}

func TestRunCycle_InvalidRawIsRetried(t *testing.T) {
	calls := 0
	d := driverFunc(func(ctx context.Context) (reading.Raw, error) {
		calls++
		if calls == 1 {
			return reading.Raw{}, nil // bgl missing
		}
		bgl := 99
		return reading.Raw{BGL: &bgl}, nil
	})
	p := newTestPoller(t, d, 3)

	res := p.RunCycle(context.Background(), nil)
	if res.Outcome != OutcomeAcquired || res.Attempts != 2 {
		t.Fatalf("got outcome=%s attempts=%d", res.Outcome, res.Attempts)
	}
}

func TestRunCycle_SecondCycleDropped(t *testing.T) {
	d := &fakeDriver{block: make(chan struct{})}
	h := &countingHandler{}
	p := newTestPoller(t, d, 3)

	started := make(chan struct{})
	d.onCall = func() { close(started) }

	done := make(chan Result)
	go func() { done <- p.RunCycle(context.Background(), h) }()

	<-started
	if !p.Busy() {
		t.Fatalf("flag must be set while driver call is in flight")
	}

	second := p.RunCycle(context.Background(), h)
	if second.Outcome != OutcomeSkipped {
		t.Fatalf("second outcome: got=%s want=skipped", second.Outcome)
	}

	close(d.block)
	first := <-done

	if first.Outcome != OutcomeAcquired {
		t.Fatalf("first outcome: got=%s", first.Outcome)
	}
	if d.Calls() != 1 {
		t.Fatalf("driver calls: got=%d want=1", d.Calls())
	}
	if h.calls.Load() != 1 {
		t.Fatalf("handler calls: got=%d want=1", h.calls.Load())
	}
}

func TestRunCycle_FlagHeldDuringHandler(t *testing.T) {
	d := &fakeDriver{}
	p := newTestPoller(t, d, 3)

	var busyInHandler bool
	var nested Result
	h := HandlerFunc(func(ctx context.Context, cycleID string, r reading.Reading) {
		busyInHandler = p.Busy()
		nested = p.RunCycle(ctx, nil)
	})

	p.RunCycle(context.Background(), h)

	if !busyInHandler {
		t.Fatalf("flag must stay set until the handler returns")
	}
	if nested.Outcome != OutcomeSkipped {
		t.Fatalf("nested cycle: got=%s want=skipped", nested.Outcome)
	}
	if d.Calls() != 1 {
		t.Fatalf("driver calls: got=%d want=1", d.Calls())
	}
}

func TestRunCycle_CanceledContext(t *testing.T) {
	d := &fakeDriver{}
	p := newTestPoller(t, d, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := p.RunCycle(ctx, nil)
	if res.Outcome != OutcomeCanceled {
		t.Fatalf("outcome: got=%s want=canceled", res.Outcome)
	}
	if d.Calls() != 0 {
		t.Fatalf("driver must not be called after cancellation")
	}
}

func TestRunCycle_CanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := &fakeDriver{failN: 100, onCall: cancel}

	p, err := New(Config{MaxAttempts: 3, Backoff: time.Hour}, d, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res := p.RunCycle(ctx, nil)
	if res.Outcome != OutcomeCanceled {
		t.Fatalf("outcome: got=%s want=canceled", res.Outcome)
	}
	if d.Calls() != 1 {
		t.Fatalf("driver calls: got=%d want=1", d.Calls())
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{MaxAttempts: 0}, &fakeDriver{}, nil); err == nil {
		t.Fatalf("expected error for zero attempts")
	}
	if _, err := New(Config{MaxAttempts: 1}, nil, nil); err == nil {
		t.Fatalf("expected error for nil driver")
	}
}

type driverFunc func(ctx context.Context) (reading.Raw, error)

func (f driverFunc) FetchLive(ctx context.Context) (reading.Raw, error) { return f(ctx) }
