// internal/status/snapshot.go
package status

import "github.com/ddguard/relay/internal/reading"

// Assessment is exactly what writers are allowed to deliver.
// It is fully classified on construction and never mutated.
type Assessment struct {
	Reading   reading.Reading
	Condition Condition

	// Known is false when the status code is outside the table.
	Known bool

	// Usable is true only when the sensor reported a normal measurement.
	Usable bool

	// Band is BandUnknown unless Usable.
	Band Band
}

// Assess interprets the status code of r and classifies its glucose value.
func Assess(r reading.Reading, t Thresholds) Assessment {
	cond, known := Describe(r.Status)

	a := Assessment{
		Reading:   r,
		Condition: cond,
		Known:     known,
		Usable:    known && r.Status == reading.SensorOK,
		Band:      BandUnknown,
	}
	if a.Usable {
		a.Band = Classify(r.BGL, t)
	}
	return a
}
