//go:build !linux

// internal/writer/ble/advertiser_other.go
package ble

import "time"

// Advertiser is unavailable outside Linux; New always fails so the
// broadcast sink is reported as disabled at startup.
type Advertiser struct{}

func New(interval time.Duration) (*Advertiser, error) { return nil, ErrUnsupported }

func (a *Advertiser) Start(ad Advertisement) error { return ErrUnsupported }
func (a *Advertiser) Stop() error                  { return nil }
func (a *Advertiser) Close() error                 { return nil }
