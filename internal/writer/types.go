// internal/writer/types.go
package writer

import (
	"context"

	"github.com/ddguard/relay/internal/status"
)

// Sink is one delivery target for an assessed reading.
// Deliver is called at most once per cycle; failures are reported, never retried.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, a status.Assessment) error
	Close() error
}

// usableOnly is implemented by sinks that must only see usable readings.
// Sinks without it mirror state and receive every assessment.
type usableOnly interface {
	UsableOnly() bool
}

// Writer fans one assessment out to every configured sink.
type Writer interface {
	Deliver(ctx context.Context, a status.Assessment) error
}
