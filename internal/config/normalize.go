// internal/config/normalize.go
package config

import "strings"

// Defaults applied by Normalize when a value is left at zero.
const (
	DefaultDriverTimeoutMs     = 60_000
	DefaultPollIntervalMs      = 300_000
	DefaultMaxAttempts         = 3
	DefaultBackoffMs           = 5_000
	DefaultNightscoutTimeoutMs = 10_000
	DefaultNightscoutDevice    = "ddguard"
	DefaultServiceUUID         = "11111111-2222-3333-4444-555555555555"
	DefaultLocalName           = "ddguard"
	DefaultHoldMs              = 15_000
	DefaultAdvIntervalMs       = 200
	DefaultModbusTimeoutMs     = 2_000
	DefaultMQTTClientID        = "ddguard"
	DefaultMQTTTopic           = "ddguard/reading"
	DefaultRedisKey            = "ddguard:reading:latest"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "json"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	defaultInt(&cfg.Driver.TimeoutMs, DefaultDriverTimeoutMs)
	defaultInt(&cfg.Poll.IntervalMs, DefaultPollIntervalMs)
	defaultInt(&cfg.Poll.MaxAttempts, DefaultMaxAttempts)
	defaultInt(&cfg.Poll.BackoffMs, DefaultBackoffMs)

	// Server and secret are kept verbatim apart from whitespace,
	// quotes and a trailing slash on the server URL.
	if cfg.Nightscout.Server != nil {
		s := strings.TrimRight(clean(*cfg.Nightscout.Server), "/")
		cfg.Nightscout.Server = &s
	}
	if cfg.Nightscout.APISecret != nil {
		s := clean(*cfg.Nightscout.APISecret)
		cfg.Nightscout.APISecret = &s
	}
	defaultInt(&cfg.Nightscout.TimeoutMs, DefaultNightscoutTimeoutMs)
	defaultString(&cfg.Nightscout.Device, DefaultNightscoutDevice)

	defaultString(&cfg.Broadcast.ServiceUUID, DefaultServiceUUID)
	defaultString(&cfg.Broadcast.LocalName, DefaultLocalName)
	defaultInt(&cfg.Broadcast.HoldMs, DefaultHoldMs)
	defaultInt(&cfg.Broadcast.IntervalMs, DefaultAdvIntervalMs)

	defaultInt(&cfg.Modbus.TimeoutMs, DefaultModbusTimeoutMs)

	defaultString(&cfg.MQTT.ClientID, DefaultMQTTClientID)
	defaultString(&cfg.MQTT.Topic, DefaultMQTTTopic)

	defaultString(&cfg.Redis.Key, DefaultRedisKey)

	defaultString(&cfg.Log.Level, DefaultLogLevel)
	defaultString(&cfg.Log.Format, DefaultLogFormat)
}

func clean(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

func defaultInt(v *int, d int) {
	if *v == 0 {
		*v = d
	}
}

func defaultString(v *string, d string) {
	if strings.TrimSpace(*v) == "" {
		*v = d
	}
}
