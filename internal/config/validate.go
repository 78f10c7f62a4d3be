// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/ddguard/relay/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// DRIVER
	// ------------------------------------------------------------

	if len(cfg.Driver.Command) == 0 || strings.TrimSpace(cfg.Driver.Command[0]) == "" {
		return fmt.Errorf("driver: command is required")
	}

	// ------------------------------------------------------------
	// THRESHOLDS (REQUIRED)
	// ------------------------------------------------------------

	missing := []string{}
	if cfg.BGL.Low == nil {
		missing = append(missing, "bgl_low")
	}
	if cfg.BGL.PreLow == nil {
		missing = append(missing, "bgl_pre_low")
	}
	if cfg.BGL.PreHigh == nil {
		missing = append(missing, "bgl_pre_high")
	}
	if cfg.BGL.High == nil {
		missing = append(missing, "bgl_high")
	}
	if len(missing) > 0 {
		return fmt.Errorf("bgl: needed option(s) not found: %s", strings.Join(missing, ", "))
	}

	if err := cfg.Thresholds().Check(); err != nil {
		return fmt.Errorf("bgl: %w", err)
	}

	// ------------------------------------------------------------
	// NIGHTSCOUT (KEYS REQUIRED, EMPTY = DISABLED)
	// ------------------------------------------------------------

	if cfg.Nightscout.Server == nil || cfg.Nightscout.APISecret == nil {
		return fmt.Errorf("nightscout: needed option not found (server and api_secret must be present, empty disables upload)")
	}

	// ------------------------------------------------------------
	// TIMINGS (0 = DEFAULT)
	// ------------------------------------------------------------

	for name, v := range map[string]int{
		"driver.timeout_ms":     cfg.Driver.TimeoutMs,
		"poll.interval_ms":      cfg.Poll.IntervalMs,
		"poll.max_attempts":     cfg.Poll.MaxAttempts,
		"poll.backoff_ms":       cfg.Poll.BackoffMs,
		"nightscout.timeout_ms": cfg.Nightscout.TimeoutMs,
		"broadcast.hold_ms":     cfg.Broadcast.HoldMs,
		"broadcast.interval_ms": cfg.Broadcast.IntervalMs,
		"modbus.timeout_ms":     cfg.Modbus.TimeoutMs,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", name, v)
		}
	}

	// ------------------------------------------------------------
	// SINK SANITY
	// ------------------------------------------------------------

	if cfg.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt: qos must be 0, 1 or 2, got %d", cfg.MQTT.QoS)
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("redis: db must be >= 0, got %d", cfg.Redis.DB)
	}
	if cfg.Broadcast.LocalName != "" {
		for i := 0; i < len(cfg.Broadcast.LocalName); i++ {
			if cfg.Broadcast.LocalName[i] > 0x7F {
				return fmt.Errorf("broadcast: local_name must contain ASCII characters only")
			}
		}
	}

	switch cfg.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("log: format must be json or console, got %q", cfg.Log.Format)
	}

	return nil
}

// Thresholds returns the glucose boundaries.
// It MUST be called only after Validate().
func (c *Config) Thresholds() status.Thresholds {
	return status.Thresholds{
		Low:     *c.BGL.Low,
		PreLow:  *c.BGL.PreLow,
		PreHigh: *c.BGL.PreHigh,
		High:    *c.BGL.High,
	}
}

// NightscoutEnabled reports whether both nightscout values are non-empty.
func (c *Config) NightscoutEnabled() bool {
	return c.Nightscout.Server != nil && c.Nightscout.APISecret != nil &&
		*c.Nightscout.Server != "" && *c.Nightscout.APISecret != ""
}
