// internal/poller/types.go
package poller

import (
	"context"
	"time"

	"github.com/ddguard/relay/internal/reading"
)

// Driver abstracts the radio-bridge exchange with the pump.
// FetchLive blocks for the duration of one protocol exchange.
type Driver interface {
	FetchLive(ctx context.Context) (reading.Raw, error)
}

// Handler receives the Reading of a successful acquisition.
// The in-progress flag stays set until Handle returns.
type Handler interface {
	Handle(ctx context.Context, cycleID string, r reading.Reading)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, cycleID string, r reading.Reading)

func (f HandlerFunc) Handle(ctx context.Context, cycleID string, r reading.Reading) {
	f(ctx, cycleID, r)
}

// Outcome is the terminal state of one cycle.
type Outcome uint8

const (
	// OutcomeAcquired: a Reading was produced and handed to the Handler.
	OutcomeAcquired Outcome = iota
	// OutcomeExhausted: every attempt failed; no Reading, no Handler call.
	OutcomeExhausted
	// OutcomeSkipped: another cycle held the flag; nothing happened.
	OutcomeSkipped
	// OutcomeCanceled: the context ended before a Reading was produced.
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAcquired:
		return "acquired"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "invalid"
	}
}

// Result is a summary produced by one cycle.
type Result struct {
	CycleID  string
	Outcome  Outcome
	Attempts int
	At       time.Time

	Reading reading.Reading // valid only for OutcomeAcquired
	Err     error           // last attempt error for OutcomeExhausted / OutcomeCanceled
}

// attemptKind classifies one driver call.
type attemptKind uint8

const (
	attemptOK attemptKind = iota
	attemptRetryable
)

// attempt is the result of one driver call plus raw validation.
type attempt struct {
	kind    attemptKind
	reading reading.Reading
	err     error
}
