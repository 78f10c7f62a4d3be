// internal/status/bands.go
package status

import "fmt"

// Thresholds are the four glucose boundaries, strictly increasing.
type Thresholds struct {
	Low     int
	PreLow  int
	PreHigh int
	High    int
}

// Check reports whether the boundaries are strictly increasing.
func (t Thresholds) Check() error {
	if !(t.Low < t.PreLow && t.PreLow < t.PreHigh && t.PreHigh < t.High) {
		return fmt.Errorf(
			"thresholds must increase strictly: low=%d pre_low=%d pre_high=%d high=%d",
			t.Low, t.PreLow, t.PreHigh, t.High,
		)
	}
	return nil
}

// Band is the threshold classification of a glucose value.
type Band uint16

const (
	BandUnknown Band = iota
	BandLow
	BandPreLow
	BandInRange
	BandPreHigh
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandPreLow:
		return "pre_low"
	case BandInRange:
		return "in_range"
	case BandPreHigh:
		return "pre_high"
	case BandHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Classify places bgl into a band.
// A value equal to Low or PreLow belongs to the band below the boundary;
// a value equal to PreHigh or High belongs to the band above it.
func Classify(bgl int, t Thresholds) Band {
	switch {
	case bgl <= t.Low:
		return BandLow
	case bgl <= t.PreLow:
		return BandPreLow
	case bgl < t.PreHigh:
		return BandInRange
	case bgl < t.High:
		return BandPreHigh
	default:
		return BandHigh
	}
}
