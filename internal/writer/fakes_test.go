// internal/writer/fakes_test.go
package writer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ddguard/relay/internal/reading"
	"github.com/ddguard/relay/internal/status"
	"github.com/ddguard/relay/internal/writer/ble"
	"github.com/ddguard/relay/internal/writer/nightscout"
)

var errBoom = errors.New("boom")

func intPtr(v int) *int { return &v }

func testAssessment(bgl int) status.Assessment {
	batt := 40
	iob := 1.25
	r := reading.Reading{
		Time:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		BGL:           bgl,
		Trend:         reading.TrendFlat,
		ActiveInsulin: &iob,
		Battery:       &batt,
		Status:        reading.SensorOK,
	}
	return status.Assess(r, status.Thresholds{Low: 70, PreLow: 80, PreHigh: 180, High: 250})
}

// recorder keeps an ordered event log shared between fakes.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeAdvertiser struct {
	rec      *recorder
	startErr error
	stopErr  error

	mu  sync.Mutex
	ads []ble.Advertisement
}

func (f *fakeAdvertiser) Start(ad ble.Advertisement) error {
	f.rec.add("start")
	f.mu.Lock()
	f.ads = append(f.ads, ad)
	f.mu.Unlock()
	return f.startErr
}

func (f *fakeAdvertiser) Stop() error {
	f.rec.add("stop")
	return f.stopErr
}

func (f *fakeAdvertiser) Close() error {
	f.rec.add("close")
	return nil
}

type fakeUploader struct {
	entryErr  error
	statusErr error

	mu       sync.Mutex
	entries  []nightscout.Entry
	statuses []nightscout.DeviceStatus
	closed   bool
}

func (f *fakeUploader) UploadEntries(ctx context.Context, entries []nightscout.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entries...)
	return f.entryErr
}

func (f *fakeUploader) UploadDeviceStatus(ctx context.Context, ds nightscout.DeviceStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, ds)
	return f.statusErr
}

func (f *fakeUploader) Close() error {
	f.closed = true
	return nil
}

// funcSink adapts a function to Sink.
type funcSink struct {
	name    string
	deliver func(ctx context.Context, a status.Assessment) error
	closed  bool
}

func (s *funcSink) Name() string { return s.name }

func (s *funcSink) Deliver(ctx context.Context, a status.Assessment) error {
	return s.deliver(ctx, a)
}

func (s *funcSink) Close() error {
	s.closed = true
	return nil
}
