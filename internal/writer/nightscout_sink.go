// internal/writer/nightscout_sink.go
package writer

import (
	"context"
	"time"

	"github.com/ddguard/relay/internal/reading"
	"github.com/ddguard/relay/internal/status"
	"github.com/ddguard/relay/internal/writer/nightscout"
)

// uploader is the exact contract the cloud sink uses.
type uploader interface {
	UploadEntries(ctx context.Context, entries []nightscout.Entry) error
	UploadDeviceStatus(ctx context.Context, ds nightscout.DeviceStatus) error
	Close() error
}

// NightscoutSink uploads one glucose entry plus pump status per cycle.
// A failed upload is dropped; the next cycle carries fresh data.
type NightscoutSink struct {
	cli    uploader
	device string
}

func NewNightscoutSink(cli uploader, device string) *NightscoutSink {
	return &NightscoutSink{cli: cli, device: device}
}

func (s *NightscoutSink) Name() string { return "nightscout" }

// UsableOnly: Nightscout entries carry a glucose value, so exceptions are not uploaded.
func (s *NightscoutSink) UsableOnly() bool { return true }

func (s *NightscoutSink) Deliver(ctx context.Context, a status.Assessment) error {
	if err := s.cli.UploadEntries(ctx, []nightscout.Entry{s.entry(a)}); err != nil {
		return err
	}
	return s.cli.UploadDeviceStatus(ctx, s.deviceStatus(a))
}

func (s *NightscoutSink) Close() error { return s.cli.Close() }

func (s *NightscoutSink) entry(a status.Assessment) nightscout.Entry {
	r := a.Reading
	return nightscout.Entry{
		Type:       "sgv",
		SGV:        r.BGL,
		Direction:  direction(r.Trend),
		Date:       r.Time.UnixMilli(),
		DateString: r.Time.UTC().Format(time.RFC3339),
		Device:     s.device,
	}
}

func (s *NightscoutSink) deviceStatus(a status.Assessment) nightscout.DeviceStatus {
	r := a.Reading
	ts := r.Time.UTC().Format(time.RFC3339)

	ds := nightscout.DeviceStatus{
		Device:    s.device,
		CreatedAt: ts,
		Pump:      nightscout.PumpStatus{Clock: ts},
	}
	if r.Battery != nil {
		ds.Pump.Battery = &nightscout.Battery{Percent: *r.Battery}
	}
	if r.ActiveInsulin != nil {
		ds.Pump.IOB = &nightscout.IOB{BolusIOB: *r.ActiveInsulin, Timestamp: ts}
	}
	return ds
}

// direction maps pump arrows to Nightscout directions.
// One pump arrow is 1-2 mg/dL/min, which Nightscout calls FortyFive.
func direction(t reading.Trend) string {
	switch t {
	case reading.TrendNone:
		return "NONE"
	case reading.TrendFlat:
		return "Flat"
	case reading.TrendUp:
		return "FortyFiveUp"
	case reading.TrendUpDouble:
		return "SingleUp"
	case reading.TrendUpTriple:
		return "DoubleUp"
	case reading.TrendDown:
		return "FortyFiveDown"
	case reading.TrendDownDouble:
		return "SingleDown"
	case reading.TrendDownTriple:
		return "DoubleDown"
	default:
		return "NOT COMPUTABLE"
	}
}
