// internal/writer/ble/advertisement_test.go
package ble

import (
	"testing"
	"time"
)

func TestIntervalUnits(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want uint16
	}{
		{200 * time.Millisecond, 320},
		{0, 0x0020},
		{time.Millisecond, 0x0020},
		{time.Minute, 0x4000},
	}

	for _, c := range cases {
		if got := intervalUnits(c.in); got != c.want {
			t.Fatalf("interval %v: got=%d want=%d", c.in, got, c.want)
		}
	}
}
