// internal/status/conditions.go
package status

import "github.com/ddguard/relay/internal/reading"

// Condition is the human-readable meaning of a sensor status code.
type Condition struct {
	Name  string
	Label string
}

// ConditionUnknown is attached to readings whose status code is outside the table.
var ConditionUnknown = Condition{Name: "unknown", Label: "Unknown sensor status"}

var conditions = map[reading.StatusCode]Condition{
	reading.SensorOK:             {"normal", "Sensor OK"},
	reading.SensorInit:           {"warming_up", "Sensor warm up"},
	reading.SensorCalNeeded:      {"calibration_needed", "Calibrate now"},
	reading.SensorError:          {"error", "Sensor error"},
	reading.SensorCalError:       {"calibration_error", "Calibration error"},
	reading.SensorChangeSensor:   {"change_sensor", "Change sensor"},
	reading.SensorEndOfLife:      {"end_of_life", "Sensor end of life"},
	reading.SensorNotReady:       {"not_ready", "Sensor not ready"},
	reading.SensorReadingHigh:    {"above_range", "Sensor reading too high"},
	reading.SensorReadingLow:     {"below_range", "Sensor reading too low"},
	reading.SensorCalPending:     {"calibration_pending", "Calibration pending"},
	reading.SensorChangeCalError: {"change_calibration_error", "Change sensor, calibration error"},
	reading.SensorTimeUnknown:    {"time_unknown", "Time unknown"},
	reading.SensorLost:           {"signal_lost", "Sensor signal lost"},
}

// Describe maps a status code to its condition.
// The second value is false for codes outside the table; those never
// resolve to the normal condition.
func Describe(code reading.StatusCode) (Condition, bool) {
	c, ok := conditions[code]
	if !ok {
		return ConditionUnknown, false
	}
	return c, true
}
