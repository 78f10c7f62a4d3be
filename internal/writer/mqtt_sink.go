// internal/writer/mqtt_sink.go
package writer

import (
	"context"

	"github.com/ddguard/relay/internal/status"
)

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
	Close() error
}

// MQTTSink publishes the latest reading as a retained message.
type MQTTSink struct {
	pub   publisher
	topic string
	qos   byte
}

func NewMQTTSink(pub publisher, topic string, qos byte) *MQTTSink {
	return &MQTTSink{pub: pub, topic: topic, qos: qos}
}

func (s *MQTTSink) Name() string { return "mqtt" }

func (s *MQTTSink) Deliver(ctx context.Context, a status.Assessment) error {
	b, err := encodeDocument(a)
	if err != nil {
		return err
	}
	return s.pub.Publish(s.topic, s.qos, true, b)
}

func (s *MQTTSink) Close() error { return s.pub.Close() }
