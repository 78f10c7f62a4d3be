// internal/reading/status_code.go
package reading

import "strconv"

// StatusCode is the sensor condition reported by the pump.
// It is distinct from driver or connectivity errors.
type StatusCode int

// Codes as used by the pump firmware. Non-OK codes travel in the glucose
// field when the sensor has no measurement to report.
const (
	SensorOK             StatusCode = 0x0000
	SensorInit           StatusCode = 0x0301
	SensorCalNeeded      StatusCode = 0x0302
	SensorError          StatusCode = 0x0303
	SensorCalError       StatusCode = 0x0304
	SensorChangeSensor   StatusCode = 0x0305
	SensorEndOfLife      StatusCode = 0x0306
	SensorNotReady       StatusCode = 0x0307
	SensorReadingHigh    StatusCode = 0x0308
	SensorReadingLow     StatusCode = 0x0309
	SensorCalPending     StatusCode = 0x030A
	SensorChangeCalError StatusCode = 0x030B
	SensorTimeUnknown    StatusCode = 0x030C
	SensorLost           StatusCode = 0x030D
)

// SensorExceptionBase is the lowest glucose value that carries a sensor
// exception code instead of a measurement.
const SensorExceptionBase StatusCode = 0x0300

// StatusUnrecognized marks a symbolic status name the driver sent that is
// not in the code table. It never matches a real code.
const StatusUnrecognized StatusCode = -1

var codeByName = map[string]StatusCode{
	"SENSOR_OK":               SensorOK,
	"SENSOR_INIT":             SensorInit,
	"SENSOR_CAL_NEEDED":       SensorCalNeeded,
	"SENSOR_ERROR":            SensorError,
	"SENSOR_CAL_ERROR":        SensorCalError,
	"SENSOR_CHANGE_SENSOR":    SensorChangeSensor,
	"SENSOR_END_OF_LIFE":      SensorEndOfLife,
	"SENSOR_NOT_READY":        SensorNotReady,
	"SENSOR_READING_HIGH":     SensorReadingHigh,
	"SENSOR_READING_LOW":      SensorReadingLow,
	"SENSOR_CAL_PENDING":      SensorCalPending,
	"SENSOR_CHANGE_CAL_ERROR": SensorChangeCalError,
	"SENSOR_TIME_UNKNOWN":     SensorTimeUnknown,
	"SENSOR_LOST":             SensorLost,
}

// String returns the firmware symbol, or the hex value for codes outside
// the table.
func (c StatusCode) String() string {
	for name, code := range codeByName {
		if code == c {
			return name
		}
	}
	if c == StatusUnrecognized {
		return "UNRECOGNIZED"
	}
	return "0x" + strconv.FormatInt(int64(c), 16)
}
