// internal/config/config.go
package config

type Config struct {
	Driver     DriverConfig     `yaml:"driver"`
	Poll       PollConfig       `yaml:"poll"`
	BGL        BGLConfig        `yaml:"bgl"`
	Nightscout NightscoutConfig `yaml:"nightscout"`
	Broadcast  BroadcastConfig  `yaml:"broadcast"`
	Modbus     ModbusConfig     `yaml:"modbus"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	Redis      RedisConfig      `yaml:"redis"`
	Log        LogConfig        `yaml:"log"`
}

// ---- DRIVER ----

// DriverConfig describes the radio-bridge helper that talks to the pump.
type DriverConfig struct {
	Command   []string `yaml:"command"`
	TimeoutMs int      `yaml:"timeout_ms"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs  int `yaml:"interval_ms"`
	MaxAttempts int `yaml:"max_attempts"`
	BackoffMs   int `yaml:"backoff_ms"`
}

// ---- THRESHOLDS ----

// BGLConfig holds the glucose thresholds. All four are required;
// pointers distinguish a missing key from zero.
type BGLConfig struct {
	Low     *int `yaml:"bgl_low"`
	PreLow  *int `yaml:"bgl_pre_low"`
	PreHigh *int `yaml:"bgl_pre_high"`
	High    *int `yaml:"bgl_high"`
}

// ---- SINKS ----

// NightscoutConfig keys are required; empty values disable the upload.
type NightscoutConfig struct {
	Server    *string `yaml:"server"`
	APISecret *string `yaml:"api_secret"`
	TimeoutMs int     `yaml:"timeout_ms"`
	Device    string  `yaml:"device"`
}

type BroadcastConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceUUID string `yaml:"service_uuid"`
	LocalName   string `yaml:"local_name"`
	HoldMs      int    `yaml:"hold_ms"`
	IntervalMs  int    `yaml:"interval_ms"`
}

// ModbusConfig targets a local Modbus TCP server that mirrors the reading.
// Empty endpoint disables the sink.
type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	Address   uint16 `yaml:"address"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// MQTTConfig targets a local broker. Empty broker disables the sink.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
}

// RedisConfig keeps the latest reading in a key. Empty addr disables the sink.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
