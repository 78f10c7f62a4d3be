// internal/reading/raw.go
package reading

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Raw is the live data object as emitted by the radio-bridge driver.
// Fields the driver may send in more than one shape are kept raw and
// resolved by FromRaw.
type Raw struct {
	Time          json.RawMessage `json:"time,omitempty"`
	BGL           *int            `json:"bgl,omitempty"`
	Trend         json.RawMessage `json:"trend,omitempty"`
	ActiveInsulin *float64        `json:"actins,omitempty"`
	Battery       *int            `json:"batt,omitempty"`
	Status        json.RawMessage `json:"status,omitempty"`
}

// FromRaw validates driver output and builds a Reading.
// now is used when the driver supplies no timestamp.
func FromRaw(raw Raw, now time.Time) (Reading, error) {
	if raw.BGL == nil {
		return Reading{}, errors.New("reading: bgl missing")
	}

	r := Reading{
		Time: now,
		BGL:  *raw.BGL,
	}

	if raw.ActiveInsulin != nil {
		iob := *raw.ActiveInsulin
		r.ActiveInsulin = &iob
	}

	if raw.Battery != nil {
		b := *raw.Battery
		if b < 0 || b > 100 {
			return Reading{}, fmt.Errorf("reading: battery %d out of range", b)
		}
		r.Battery = &b
	}

	if present(raw.Time) {
		t, err := parseTime(raw.Time)
		if err != nil {
			return Reading{}, err
		}
		r.Time = t
	}

	trend, err := parseTrend(raw.Trend)
	if err != nil {
		return Reading{}, err
	}
	r.Trend = trend

	switch {
	case present(raw.Status):
		code, err := parseStatus(raw.Status)
		if err != nil {
			return Reading{}, err
		}
		r.Status = code
	case r.BGL >= int(SensorExceptionBase):
		// exception code travels in the glucose field
		r.Status = StatusCode(r.BGL)
	}

	return r, nil
}

func present(m json.RawMessage) bool {
	m = bytes.TrimSpace(m)
	return len(m) > 0 && !bytes.Equal(m, []byte("null"))
}

func parseTime(m json.RawMessage) (time.Time, error) {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(m))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return time.Time{}, fmt.Errorf("reading: time: %w", err)
	}

	switch x := v.(type) {
	case json.Number:
		n = x
	case string:
		s := strings.TrimSpace(x)
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		n = json.Number(s)
	default:
		return time.Time{}, fmt.Errorf("reading: time: unsupported value %s", string(m))
	}

	secs, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading: time %q is neither unix seconds nor RFC 3339", n.String())
	}
	return time.Unix(secs, 0).UTC(), nil
}

func parseTrend(m json.RawMessage) (Trend, error) {
	if !present(m) {
		return TrendUnknown, nil
	}

	var idx int
	if err := json.Unmarshal(m, &idx); err == nil {
		if idx < 0 || idx >= int(TrendUnknown) {
			return TrendUnknown, nil
		}
		return Trend(idx), nil
	}

	var name string
	if err := json.Unmarshal(m, &name); err != nil {
		return TrendUnknown, fmt.Errorf("reading: trend: %w", err)
	}

	name = strings.ToLower(strings.TrimSpace(name))
	for t, s := range trendNames {
		if s == name {
			return t, nil
		}
	}
	return TrendUnknown, nil
}

func parseStatus(m json.RawMessage) (StatusCode, error) {
	var code int
	if err := json.Unmarshal(m, &code); err == nil {
		return StatusCode(code), nil
	}

	var name string
	if err := json.Unmarshal(m, &name); err != nil {
		return 0, fmt.Errorf("reading: status: %w", err)
	}

	name = strings.ToUpper(strings.TrimSpace(name))
	if c, ok := codeByName[name]; ok {
		return c, nil
	}
	if c, err := strconv.ParseInt(name, 0, 32); err == nil {
		return StatusCode(c), nil
	}
	return StatusUnrecognized, nil
}
