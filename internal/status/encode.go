// internal/status/encode.go
package status

import "math"

// Encode converts an Assessment into a full reading register block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(a Assessment) []uint16 {
	regs := make([]uint16, SlotsPerReading)
	r := a.Reading

	if a.Usable {
		regs[SlotBGL] = clampU16(int64(r.BGL))
		regs[SlotUsable] = 1
	}
	regs[SlotTrend] = uint16(r.Trend)
	regs[SlotBand] = uint16(a.Band)
	regs[SlotStatusCode] = uint16(r.Status)

	regs[SlotBattery] = NoValue
	if r.Battery != nil {
		regs[SlotBattery] = uint16(*r.Battery)
	}

	regs[SlotActiveInsulin] = NoValue
	if r.ActiveInsulin != nil {
		regs[SlotActiveInsulin] = clampU16(int64(math.Round(*r.ActiveInsulin * 100)))
	}

	secs := PumpSeconds(r.Time.Unix())
	regs[SlotTimeHi] = uint16(secs >> 16)
	regs[SlotTimeLo] = uint16(secs)

	return regs
}

// PumpSeconds converts unix seconds to seconds since BaseTime.
// Times before BaseTime encode as 0.
func PumpSeconds(unix int64) uint32 {
	d := unix - BaseTime
	if d < 0 {
		return 0
	}
	if d > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(d)
}

// clampU16 keeps NoValue out of the valid range.
func clampU16(v int64) uint16 {
	if v < 0 {
		return 0
	}
	if v >= int64(NoValue) {
		return NoValue - 1
	}
	return uint16(v)
}
