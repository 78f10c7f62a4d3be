// internal/writer/ble/advertisement.go
package ble

import (
	"errors"
	"time"
)

// DefaultCompanyID is the Bluetooth SIG id reserved for testing; the
// manufacturer data block carries the reading payload.
const DefaultCompanyID uint16 = 0xFFFF

// Advertisement is one advertising set.
type Advertisement struct {
	ServiceUUID string
	LocalName   string
	CompanyID   uint16
	Payload     []byte
	Interval    time.Duration
}

// ErrUnsupported is returned on platforms without an HCI transport.
var ErrUnsupported = errors.New("ble: advertising not supported on this platform")

// intervalUnits converts an advertising interval to 0.625 ms controller units,
// clamped to the range the controller accepts.
func intervalUnits(d time.Duration) uint16 {
	const (
		unit     = 625 * time.Microsecond
		minUnits = 0x0020
		maxUnits = 0x4000
	)
	u := d / unit
	if u < minUnits {
		return minUnits
	}
	if u > maxUnits {
		return maxUnits
	}
	return uint16(u)
}
