//go:build linux

// internal/writer/ble/advertiser_linux.go
package ble

import (
	"errors"
	"fmt"
	"sync"
	"time"

	goble "github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
	"github.com/go-ble/ble/linux/adv"
	"github.com/go-ble/ble/linux/hci/cmd"
)

// Advertiser drives the local HCI controller.
// Start and Stop are serialized; only one advertising set is active.
type Advertiser struct {
	mu     sync.Mutex
	dev    *linux.Device
	active bool
}

// New opens the default HCI device with the given advertising interval.
func New(interval time.Duration) (*Advertiser, error) {
	units := intervalUnits(interval)

	dev, err := linux.NewDevice(goble.OptAdvParams(cmd.LESetAdvertisingParameters{
		AdvertisingIntervalMin: units,
		AdvertisingIntervalMax: units,
		AdvertisingChannelMap:  0x07,
	}))
	if err != nil {
		return nil, fmt.Errorf("ble: open hci device: %w", err)
	}
	return &Advertiser{dev: dev}, nil
}

// Start sets the advertising data and enables advertising.
func (a *Advertiser) Start(ad Advertisement) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.active {
		return errors.New("ble: already advertising")
	}

	data, err := adv.NewPacket(
		adv.Flags(adv.FlagGeneralDiscoverable|adv.FlagLEOnly),
		adv.ManufacturerData(ad.CompanyID, ad.Payload),
	)
	if err != nil {
		return fmt.Errorf("ble: advertising data: %w", err)
	}

	scan, err := adv.NewPacket()
	if err != nil {
		return fmt.Errorf("ble: scan response: %w", err)
	}
	if ad.ServiceUUID != "" {
		u, err := goble.Parse(ad.ServiceUUID)
		if err != nil {
			return fmt.Errorf("ble: service uuid %q: %w", ad.ServiceUUID, err)
		}
		if err := scan.Append(adv.AllUUID(u)); err != nil {
			return fmt.Errorf("ble: scan response: %w", err)
		}
	}
	if ad.LocalName != "" {
		// name is best effort: it is dropped when the scan response is full
		_ = scan.Append(adv.CompleteName(ad.LocalName))
	}

	if err := a.dev.HCI.SetAdvertisement(data.Bytes(), scan.Bytes()); err != nil {
		return fmt.Errorf("ble: set advertisement: %w", err)
	}
	if err := a.dev.HCI.Advertise(); err != nil {
		return fmt.Errorf("ble: enable advertising: %w", err)
	}

	a.active = true
	return nil
}

// Stop disables advertising. Stopping an idle advertiser is a no-op.
func (a *Advertiser) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.active {
		return nil
	}
	a.active = false

	if err := a.dev.HCI.StopAdvertising(); err != nil {
		return fmt.Errorf("ble: stop advertising: %w", err)
	}
	return nil
}

// Close stops advertising and releases the HCI device.
func (a *Advertiser) Close() error {
	_ = a.Stop()
	return a.dev.Stop()
}
