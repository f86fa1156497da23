// Package watch implements the watch-list/alerting layer: a user-facing
// projection of the parameter store onto a dashboard layout with
// thresholds and computed severity bands (spec.md §4.6).
package watch

import (
	"math"

	"github.com/brnsen/rigwatch/param"
)

// Severity is the alert band computed for a watch item's current value
// (spec.md §3).
type Severity int

const (
	SeverityNone Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "NONE"
	}
}

// Widget is the display-hint tag carried by a watch item; it has no effect
// on severity computation.
type Widget int

const (
	WidgetCircular Widget = iota
	WidgetLinear
	WidgetSemicircle
	WidgetNumeric
	WidgetIndicator
)

// NumPages is the fixed page count of the dashboard layout (spec.md §4.6:
// four pages in the canonical default).
const NumPages = 4

// Thresholds holds the four severity boundaries. Disabled boundaries are
// encoded as saturating infinities so the comparison in Severity naturally
// never trips (spec.md §3).
type Thresholds struct {
	WarnLow  float64
	WarnHigh float64
	CritLow  float64
	CritHigh float64
}

// disabledThresholds is the default: nothing ever trips.
func disabledThresholds() Thresholds {
	return Thresholds{
		WarnLow:  math.Inf(-1),
		WarnHigh: math.Inf(1),
		CritLow:  math.Inf(-1),
		CritHigh: math.Inf(1),
	}
}

// Severity computes the alert band for value v under t, per spec.md §3:
// critical if v is at or beyond either critical bound, else warning if v
// is at or beyond either warning bound, else none.
func (t Thresholds) Severity(v float64) Severity {
	if v <= t.CritLow || v >= t.CritHigh {
		return SeverityCritical
	}
	if v <= t.WarnLow || v >= t.WarnHigh {
		return SeverityWarning
	}
	return SeverityNone
}

// GaugeRange is the display min/max for analogue widgets.
type GaugeRange struct {
	Min float64
	Max float64
}

// Item is one entry of the watch list (spec.md §3).
type Item struct {
	Identity   param.Identity
	Widget     Widget
	Page       int
	Position   int
	Decimals   int
	Label      string // "" uses the identity's catalogue name
	Unit       string // "" uses the identity's catalogue unit
	Gauge      GaugeRange
	Thresholds Thresholds
	Enabled    bool
	Severity   Severity
}

func newItem(id param.Identity, widget Widget, page, position int) Item {
	return Item{
		Identity:   id,
		Widget:     widget,
		Page:       page,
		Position:   position,
		Decimals:   1,
		Gauge:      GaugeRange{Min: 0, Max: 100},
		Thresholds: disabledThresholds(),
		Enabled:    true,
		Severity:   SeverityNone,
	}
}
