// internal/writer/mqtt/client.go
package mqtt

import (
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Timeout  time.Duration
}

// Client is a publish-only wrapper around a paho connection.
type Client struct {
	client  paho.Client
	timeout time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Broker == "" {
		return nil, errors.New("writer mqtt: broker required")
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	if cfg.Timeout > 0 {
		opts.SetConnectTimeout(cfg.Timeout)
	}

	c := paho.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &Client{client: c, timeout: cfg.Timeout}, nil
}

// Publish waits for the broker acknowledgement, bounded by the configured timeout.
func (c *Client) Publish(topic string, qos byte, retained bool, payload []byte) error {
	token := c.client.Publish(topic, qos, retained, payload)

	if c.timeout > 0 {
		if !token.WaitTimeout(c.timeout) {
			return fmt.Errorf("publish to topic %s timed out", topic)
		}
	} else {
		token.Wait()
	}

	if token.Error() != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", topic, token.Error())
	}
	return nil
}

func (c *Client) Close() error {
	c.client.Disconnect(250)
	return nil
}
