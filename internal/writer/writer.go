// internal/writer/writer.go
package writer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ddguard/relay/internal/status"
)

// Relay delivers to every sink concurrently and waits for all of them.
// A failing sink never prevents delivery to the others.
type Relay struct {
	sinks []Sink
	log   *zap.Logger
}

func New(sinks []Sink, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{sinks: sinks, log: log}
}

// Sinks returns the names of the configured sinks.
func (r *Relay) Sinks() []string {
	names := make([]string, 0, len(r.sinks))
	for _, s := range r.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Deliver returns only after every sink has finished. Usable-only sinks
// are skipped when the assessment is not usable.
// The returned error lists every failed sink; it is informational.
func (r *Relay) Deliver(ctx context.Context, a status.Assessment) error {
	if len(r.sinks) == 0 {
		return nil
	}

	errs := make([]error, len(r.sinks))

	var wg sync.WaitGroup
	for i, s := range r.sinks {
		if !a.Usable && skipsUnusable(s) {
			r.log.Debug("sink skipped, reading not usable", zap.String("sink", s.Name()))
			continue
		}
		wg.Add(1)
		go func(i int, s Sink) {
			defer wg.Done()
			errs[i] = r.deliverOne(ctx, s, a)
		}(i, s)
	}
	wg.Wait()

	var msgs []string
	for i, err := range errs {
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("%s: %v", r.sinks[i].Name(), err))
		}
	}
	if len(msgs) > 0 {
		return errors.New("writer: " + strings.Join(msgs, " | "))
	}
	return nil
}

func (r *Relay) deliverOne(ctx context.Context, s Sink, a status.Assessment) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
		if err != nil {
			r.log.Error("sink delivery failed", zap.String("sink", s.Name()), zap.Error(err))
			return
		}
		r.log.Debug("sink delivered", zap.String("sink", s.Name()))
	}()

	return s.Deliver(ctx, a)
}

func skipsUnusable(s Sink) bool {
	u, ok := s.(usableOnly)
	return ok && u.UsableOnly()
}

// Close disconnects every sink. Errors are logged and the last one returned.
func (r *Relay) Close() error {
	var last error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			r.log.Warn("sink close failed", zap.String("sink", s.Name()), zap.Error(err))
			last = err
		}
	}
	return last
}
