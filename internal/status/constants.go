// internal/status/constants.go
package status

// Reading register block layout.
// These values define what register consumers read and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerReading is the fixed number of registers in one encoded reading.
const SlotsPerReading = 12

// ---- SLOT INDICES ----

// SlotBGL holds the glucose value (0 when not usable).
const SlotBGL = 0

// SlotTrend holds the trend index (reading.Trend).
const SlotTrend = 1

// SlotBand holds the threshold band code.
const SlotBand = 2

// SlotStatusCode holds the raw sensor status code.
const SlotStatusCode = 3

// SlotBattery holds the pump battery percent (NoValue when unknown).
const SlotBattery = 4

// SlotActiveInsulin holds active insulin in hundredths of a unit (NoValue when unknown).
const SlotActiveInsulin = 5

// SlotTimeHi and SlotTimeLo hold device time as seconds since BaseTime, big-endian.
const SlotTimeHi = 6
const SlotTimeLo = 7

// SlotUsable is 1 when the reading carries a usable glucose value.
const SlotUsable = 8

// ---- RESERVED RANGE ----

// Slots 9-11 are reserved for future use.
const SlotReservedStart = 9
const SlotReservedEnd = 11

// ---- VALUES ----

// NoValue marks an unknown optional field in the register block.
const NoValue uint16 = 0xFFFF

// BaseTime is the pump epoch: midnight 1st Jan 2000 (UTC), as unix seconds.
const BaseTime int64 = 946684800
