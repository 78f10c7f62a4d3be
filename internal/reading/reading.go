// internal/reading/reading.go
package reading

import "time"

// Reading is one live telemetry sample taken from the pump.
// It is never mutated after FromRaw returns it.
type Reading struct {
	Time  time.Time
	BGL   int
	Trend Trend

	// nil means the driver did not supply the value.
	ActiveInsulin *float64
	Battery       *int

	// Status is the sensor status code reported by the pump.
	// Interpretation lives in the status package.
	Status StatusCode
}

// Trend is the direction/rate indicator shown next to the glucose value.
type Trend uint8

const (
	TrendNone Trend = iota
	TrendFlat
	TrendUp
	TrendUpDouble
	TrendUpTriple
	TrendDown
	TrendDownDouble
	TrendDownTriple
	TrendUnknown
)

var trendNames = map[Trend]string{
	TrendNone:       "none",
	TrendFlat:       "flat",
	TrendUp:         "up",
	TrendUpDouble:   "up_double",
	TrendUpTriple:   "up_triple",
	TrendDown:       "down",
	TrendDownDouble: "down_double",
	TrendDownTriple: "down_triple",
	TrendUnknown:    "unknown",
}

func (t Trend) String() string {
	if s, ok := trendNames[t]; ok {
		return s
	}
	return "unknown"
}

// Known reports whether the value is one of the declared trends.
func (t Trend) Known() bool {
	return t < TrendUnknown
}
