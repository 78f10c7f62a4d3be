// internal/poller/runner_test.go
package poller

import (
	"context"
	"testing"
	"time"
)

func TestRunner_StartupCycleIsSynchronous(t *testing.T) {
	d := &fakeDriver{}
	h := &countingHandler{}
	p := newTestPoller(t, d, 3)

	r, err := NewRunner(p, h, time.Hour, nil)
	if err != nil {
		t.Fatalf("NewRunner err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	go func() {
		r.Run(ctx)
		close(stopped)
	}()

	deadline := time.After(2 * time.Second)
	for h.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("startup cycle did not run")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop after cancel")
	}
	if d.Calls() != 1 {
		t.Fatalf("driver calls: got=%d want=1", d.Calls())
	}
}

func TestRunner_Ticks(t *testing.T) {
	d := &fakeDriver{}
	h := &countingHandler{}
	p := newTestPoller(t, d, 1)

	r, _ := NewRunner(p, h, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(stopped)
	}()

	deadline := time.After(2 * time.Second)
	for h.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected periodic cycles, got %d", h.calls.Load())
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	<-stopped
	if !r.Wait(time.Second) {
		t.Fatalf("in-flight cycles did not finish")
	}

	after := d.Calls()
	time.Sleep(30 * time.Millisecond)
	if d.Calls() != after {
		t.Fatalf("cycles started after shutdown: before=%d after=%d", after, d.Calls())
	}
}

func TestRunner_ShutdownWhileIdle(t *testing.T) {
	d := &fakeDriver{}
	p := newTestPoller(t, d, 1)
	r, _ := NewRunner(p, nil, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("runner must exit immediately when idle")
	}
	if d.Calls() != 0 {
		t.Fatalf("no cycle may start after shutdown, got %d driver calls", d.Calls())
	}
}

func TestNewRunner_Validation(t *testing.T) {
	p := newTestPoller(t, &fakeDriver{}, 1)
	if _, err := NewRunner(p, nil, 0, nil); err == nil {
		t.Fatalf("expected error for zero interval")
	}
	if _, err := NewRunner(nil, nil, time.Second, nil); err == nil {
		t.Fatalf("expected error for nil poller")
	}
}
