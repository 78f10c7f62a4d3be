// internal/writer/document.go
package writer

import (
	"encoding/json"
	"time"

	"github.com/ddguard/relay/internal/status"
)

// Document is the JSON shape published by the broker and cache sinks.
type Document struct {
	Time      time.Time `json:"time"`
	PumpTime  uint32    `json:"pump_time"`
	BGL       *int      `json:"bgl"`
	Trend     string    `json:"trend"`
	Band      string    `json:"band"`
	Status    int       `json:"status"`
	Condition string    `json:"condition"`
	Label     string    `json:"label"`
	Usable    bool      `json:"usable"`

	ActiveInsulin *float64 `json:"active_insulin,omitempty"`
	Battery       *int     `json:"battery,omitempty"`
}

// NewDocument flattens an assessment. BGL is null unless the reading is usable.
func NewDocument(a status.Assessment) Document {
	r := a.Reading
	d := Document{
		Time:          r.Time.UTC(),
		PumpTime:      status.PumpSeconds(r.Time.Unix()),
		Trend:         r.Trend.String(),
		Band:          a.Band.String(),
		Status:        int(r.Status),
		Condition:     a.Condition.Name,
		Label:         a.Condition.Label,
		Usable:        a.Usable,
		ActiveInsulin: r.ActiveInsulin,
		Battery:       r.Battery,
	}
	if a.Usable {
		bgl := r.BGL
		d.BGL = &bgl
	}
	return d
}

func encodeDocument(a status.Assessment) ([]byte, error) {
	return json.Marshal(NewDocument(a))
}
