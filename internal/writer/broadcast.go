// internal/writer/broadcast.go
package writer

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ddguard/relay/internal/reading"
	"github.com/ddguard/relay/internal/status"
	"github.com/ddguard/relay/internal/writer/ble"
)

// Advertiser is the exact contract the broadcast sink uses.
type Advertiser interface {
	Start(ad ble.Advertisement) error
	Stop() error
	Close() error
}

// BroadcastSink advertises "<timestamp>-<bgl>-" for a fixed hold, then stops.
// Start, hold and stop form one atomic sequence.
type BroadcastSink struct {
	mu  sync.Mutex
	adv Advertiser

	serviceUUID string
	localName   string
	interval    time.Duration
	hold        time.Duration
}

type BroadcastConfig struct {
	ServiceUUID string
	LocalName   string
	Interval    time.Duration
	Hold        time.Duration
}

func NewBroadcastSink(adv Advertiser, cfg BroadcastConfig) *BroadcastSink {
	return &BroadcastSink{
		adv:         adv,
		serviceUUID: cfg.ServiceUUID,
		localName:   cfg.LocalName,
		interval:    cfg.Interval,
		hold:        cfg.Hold,
	}
}

func (s *BroadcastSink) Name() string { return "broadcast" }

// UsableOnly keeps sensor exceptions off the air.
func (s *BroadcastSink) UsableOnly() bool { return true }

// Deliver blocks for the hold duration. Shutdown cuts the hold short;
// advertising is stopped in every case once it started.
func (s *BroadcastSink) Deliver(ctx context.Context, a status.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.adv.Start(ble.Advertisement{
		ServiceUUID: s.serviceUUID,
		LocalName:   s.localName,
		CompanyID:   ble.DefaultCompanyID,
		Payload:     Payload(a.Reading),
		Interval:    s.interval,
	})
	if err != nil {
		return fmt.Errorf("start advertising: %w", err)
	}

	t := time.NewTimer(s.hold)
	select {
	case <-ctx.Done():
	case <-t.C:
	}
	t.Stop()

	if err := s.adv.Stop(); err != nil {
		return fmt.Errorf("stop advertising: %w", err)
	}
	return nil
}

func (s *BroadcastSink) Close() error { return s.adv.Close() }

// Payload encodes the reading as "<timestamp>-<bgl>-".
// timestamp is the driver's reading time in unix seconds, unconverted.
func Payload(r reading.Reading) []byte {
	b := make([]byte, 0, 24)
	b = strconv.AppendInt(b, r.Time.Unix(), 10)
	b = append(b, '-')
	b = strconv.AppendInt(b, int64(r.BGL), 10)
	b = append(b, '-')
	return b
}
