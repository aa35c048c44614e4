package entity

import (
	"encoding/json"
	"math"
	"strconv"
)

// Metric is a tagged variant: either a finite numeric value or an
// explicit "unavailable" marker with an optional reason. Downstream
// consumers branch on Value's second return instead of checking for
// NaN or nil.
type Metric struct {
	value     float64
	reason    string
	available bool
}

// Available wraps a finite numeric value.
func Available(v float64) Metric {
	return Metric{value: v, available: true}
}

// Unavailable marks a metric that could not be computed.
func Unavailable(reason string) Metric {
	return Metric{reason: reason}
}

// Value returns the numeric value and whether it is available.
func (m Metric) Value() (float64, bool) {
	return m.value, m.available
}

// Reason returns the unavailability reason, empty for available metrics.
func (m Metric) Reason() string {
	if m.available {
		return ""
	}
	return m.reason
}

// String renders the metric the way reports display it.
func (m Metric) String() string {
	if !m.available {
		if m.reason == "" {
			return "N/A"
		}
		return "N/A (" + m.reason + ")"
	}
	return strconv.FormatFloat(m.value, 'f', -1, 64)
}

// MarshalJSON emits the bare number for available metrics and the
// "N/A (...)" marker string otherwise.
func (m Metric) MarshalJSON() ([]byte, error) {
	if m.available {
		return json.Marshal(m.value)
	}
	return json.Marshal(m.String())
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
