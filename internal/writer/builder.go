// internal/writer/builder.go
package writer

import (
	"context"
	"time"

	"go.uber.org/zap"

	cfg "github.com/ddguard/relay/internal/config"
	"github.com/ddguard/relay/internal/writer/ble"
	wmodbus "github.com/ddguard/relay/internal/writer/modbus"
	wmqtt "github.com/ddguard/relay/internal/writer/mqtt"
	"github.com/ddguard/relay/internal/writer/nightscout"
	wredis "github.com/ddguard/relay/internal/writer/redis"
)

const connectTimeout = 5 * time.Second

// BuildSinks creates one sink per enabled destination.
// Assumes config has already passed Validate and Normalize.
// Local transport failures (broker, cache, register server) are fatal;
// an unavailable radio only disables the broadcast sink.
func BuildSinks(c *cfg.Config, log *zap.Logger) ([]Sink, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var sinks []Sink
	fail := func(err error) ([]Sink, error) {
		for _, s := range sinks {
			_ = s.Close()
		}
		return nil, err
	}

	// ------------------------------------------------------------
	// Nightscout
	// ------------------------------------------------------------
	if c.NightscoutEnabled() {
		cli, err := nightscout.New(nightscout.Config{
			Server:    *c.Nightscout.Server,
			APISecret: *c.Nightscout.APISecret,
			Timeout:   time.Duration(c.Nightscout.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, NewNightscoutSink(cli, c.Nightscout.Device))
	} else {
		log.Info("sink disabled", zap.String("sink", "nightscout"), zap.String("reason", "server or api_secret empty"))
	}

	// ------------------------------------------------------------
	// BLE broadcast
	// ------------------------------------------------------------
	if c.Broadcast.Enabled {
		interval := time.Duration(c.Broadcast.IntervalMs) * time.Millisecond
		adv, err := ble.New(interval)
		if err != nil {
			log.Warn("sink disabled", zap.String("sink", "broadcast"), zap.Error(err))
		} else {
			sinks = append(sinks, NewBroadcastSink(adv, BroadcastConfig{
				ServiceUUID: c.Broadcast.ServiceUUID,
				LocalName:   c.Broadcast.LocalName,
				Interval:    interval,
				Hold:        time.Duration(c.Broadcast.HoldMs) * time.Millisecond,
			}))
		}
	} else {
		log.Info("sink disabled", zap.String("sink", "broadcast"), zap.String("reason", "not enabled"))
	}

	// ------------------------------------------------------------
	// Modbus register mirror
	// ------------------------------------------------------------
	if c.Modbus.Endpoint != "" {
		cli, err := wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: c.Modbus.Endpoint,
			UnitID:   c.Modbus.UnitID,
			Timeout:  time.Duration(c.Modbus.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, NewRegisterSink(cli, c.Modbus.Address))
	} else {
		log.Info("sink disabled", zap.String("sink", "modbus"), zap.String("reason", "endpoint empty"))
	}

	// ------------------------------------------------------------
	// MQTT
	// ------------------------------------------------------------
	if c.MQTT.Broker != "" {
		cli, err := wmqtt.NewClient(wmqtt.Config{
			Broker:   c.MQTT.Broker,
			ClientID: c.MQTT.ClientID,
			Username: c.MQTT.Username,
			Password: c.MQTT.Password,
			Timeout:  connectTimeout,
		})
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, NewMQTTSink(cli, c.MQTT.Topic, c.MQTT.QoS))
	} else {
		log.Info("sink disabled", zap.String("sink", "mqtt"), zap.String("reason", "broker empty"))
	}

	// ------------------------------------------------------------
	// Redis
	// ------------------------------------------------------------
	if c.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		rdb, err := wredis.NewClient(ctx, wredis.Config{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		cancel()
		if err != nil {
			return fail(err)
		}
		ttl := 2 * time.Duration(c.Poll.IntervalMs) * time.Millisecond
		sinks = append(sinks, NewRedisSink(rdb, c.Redis.Key, ttl))
	} else {
		log.Info("sink disabled", zap.String("sink", "redis"), zap.String("reason", "addr empty"))
	}

	return sinks, nil
}
