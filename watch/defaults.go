package watch

import (
	"math"

	"github.com/brnsen/rigwatch/param"
)

type defaultEntry struct {
	page, position    int
	identity          param.Identity
	widget            Widget
	warnLow, warnHigh float64
	critLow, critHigh float64
	gaugeMin, gaugeMax float64
}

// negInf/posInf saturate a disabled threshold bound, per spec.md §3.
var negInf = math.Inf(-1)
var posInf = math.Inf(1)

// defaultDashboard is the canonical reference layout of spec.md §4.6.
var defaultDashboard = []defaultEntry{
	{page: 0, position: 0, identity: param.EngineSpeed, widget: WidgetCircular, warnLow: 400, warnHigh: 2200, critLow: 300, critHigh: 2500, gaugeMin: 0, gaugeMax: 3000},
	{page: 0, position: 1, identity: param.CoolantTemp, widget: WidgetLinear, warnLow: 70, warnHigh: 100, critLow: 50, critHigh: 110, gaugeMin: 40, gaugeMax: 120},
	{page: 0, position: 2, identity: param.OilPressure, widget: WidgetLinear, warnLow: 150, warnHigh: posInf, critLow: 100, critHigh: posInf, gaugeMin: 0, gaugeMax: 700},
	{page: 0, position: 3, identity: param.BoostPressure, widget: WidgetSemicircle, warnLow: negInf, warnHigh: posInf, critLow: negInf, critHigh: posInf, gaugeMin: 0, gaugeMax: 300},
	{page: 1, position: 0, identity: param.VehicleSpeed, widget: WidgetCircular, warnLow: negInf, warnHigh: posInf, critLow: negInf, critHigh: posInf, gaugeMin: 0, gaugeMax: 140},
	{page: 1, position: 1, identity: param.FuelLevel1, widget: WidgetLinear, warnLow: 15, warnHigh: posInf, critLow: 10, critHigh: posInf, gaugeMin: 0, gaugeMax: 100},
	{page: 2, position: 0, identity: param.TransOilTemp, widget: WidgetLinear, warnLow: negInf, warnHigh: 100, critLow: negInf, critHigh: 120, gaugeMin: 0, gaugeMax: 150},
	{page: 3, position: 0, identity: param.BatteryVoltage, widget: WidgetNumeric, warnLow: 12.0, warnHigh: 15.0, critLow: 11.5, critHigh: 15.5},
	{page: 3, position: 1, identity: param.ActiveDTCCount, widget: WidgetIndicator, warnLow: negInf, warnHigh: 0.5, critLow: negInf, critHigh: 0.5},
}

// SetupDefaults installs the canonical four-page dashboard layout (engine,
// fuel, transmission, diagnostics) into an empty list.
func (l *List) SetupDefaults() error {
	for _, e := range defaultDashboard {
		idx, err := l.Add(e.identity, e.widget, e.page, e.position)
		if err != nil {
			return err
		}
		l.items[idx].Thresholds = Thresholds{
			WarnLow: e.warnLow, WarnHigh: e.warnHigh,
			CritLow: e.critLow, CritHigh: e.critHigh,
		}
		if e.gaugeMin != 0 || e.gaugeMax != 0 {
			l.items[idx].Gauge = GaugeRange{Min: e.gaugeMin, Max: e.gaugeMax}
		}
	}
	return nil
}
