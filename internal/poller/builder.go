// internal/poller/builder.go
package poller

import (
	"time"

	"go.uber.org/zap"

	cfg "github.com/ddguard/relay/internal/config"
	"github.com/ddguard/relay/internal/poller/bridge"
)

// Build constructs a Poller wired to the radio-bridge driver.
// Assumes config has already passed Validate and Normalize.
func Build(c *cfg.Config, log *zap.Logger) (*Poller, error) {
	driver, err := bridge.New(bridge.Config{
		Command: c.Driver.Command,
		Timeout: time.Duration(c.Driver.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	return New(
		Config{
			MaxAttempts: c.Poll.MaxAttempts,
			Backoff:     time.Duration(c.Poll.BackoffMs) * time.Millisecond,
		},
		driver,
		log,
	)
}

// Interval returns the configured scheduling period.
func Interval(c *cfg.Config) time.Duration {
	return time.Duration(c.Poll.IntervalMs) * time.Millisecond
}
