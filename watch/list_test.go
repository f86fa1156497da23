package watch

import (
	"testing"
	"time"

	"github.com/brnsen/rigwatch/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholds_Severity(t *testing.T) {
	th := Thresholds{WarnLow: 70, WarnHigh: 100, CritLow: 50, CritHigh: 110}

	var testCases = []struct {
		name   string
		value  float64
		expect Severity
	}{
		{name: "nominal", value: 85, expect: SeverityNone},
		{name: "at warn high", value: 100, expect: SeverityWarning},
		{name: "above warn high", value: 105, expect: SeverityWarning},
		{name: "at crit high", value: 110, expect: SeverityCritical},
		{name: "beyond crit high", value: 200, expect: SeverityCritical},
		{name: "at warn low", value: 70, expect: SeverityWarning},
		{name: "at crit low", value: 50, expect: SeverityCritical},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, th.Severity(tc.value))
		})
	}
}

func TestList_AddRemove(t *testing.T) {
	store := param.NewStore()
	l := NewList(store)

	idx, err := l.Add(param.EngineSpeed, WidgetCircular, 0, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 0)

	_, err = l.Add(param.EngineSpeed, WidgetCircular, 0, 1)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = l.Add(param.CoolantTemp, WidgetLinear, NumPages, 0)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	require.NoError(t, l.Remove(param.EngineSpeed))
	assert.ErrorIs(t, l.Remove(param.EngineSpeed), ErrNotFound)
}

func TestList_ListFull(t *testing.T) {
	store := param.NewStore()
	l := NewList(store)

	for i := 0; i < maxItems; i++ {
		_, err := l.Add(param.Identity(i+1), WidgetNumeric, 0, i)
		require.NoError(t, err)
	}

	_, err := l.Add(param.Identity(maxItems+1), WidgetNumeric, 0, 0)
	assert.ErrorIs(t, err, ErrListFull)
}

func TestList_SetThresholdsGaugeAndLabel(t *testing.T) {
	store := param.NewStore()
	l := NewList(store)
	_, err := l.Add(param.CoolantTemp, WidgetLinear, 0, 0)
	require.NoError(t, err)

	require.NoError(t, l.SetThresholds(param.CoolantTemp, Thresholds{WarnLow: 70, WarnHigh: 100, CritLow: 50, CritHigh: 110}))
	require.NoError(t, l.SetGaugeRange(param.CoolantTemp, 40, 120))
	require.NoError(t, l.SetCustomLabel(param.CoolantTemp, "ECT", "degC"))

	items := l.PageItems(0)
	require.Len(t, items, 1)
	assert.Equal(t, "ECT", items[0].Label)
	assert.Equal(t, GaugeRange{Min: 40, Max: 120}, items[0].Gauge)

	assert.ErrorIs(t, l.SetThresholds(param.EngineSpeed, Thresholds{}), ErrNotFound)
}

func TestList_UpdateComputesSeverity(t *testing.T) {
	store := param.NewStore()
	now := time.Unix(1700000000, 0).UTC()
	l := NewList(store)
	_, err := l.Add(param.CoolantTemp, WidgetLinear, 0, 0)
	require.NoError(t, err)
	require.NoError(t, l.SetThresholds(param.CoolantTemp, Thresholds{WarnLow: 70, WarnHigh: 100, CritLow: 50, CritHigh: 110}))

	l.Update(now) // no value in store yet: severity stays NONE
	assert.Equal(t, SeverityNone, l.PageItems(0)[0].Severity)

	store.Update(param.CoolantTemp, 115, param.SourceJ1939, now)
	l.Update(now)
	assert.Equal(t, SeverityCritical, l.PageItems(0)[0].Severity)
}

func TestList_HighestAlertAndAlertCount(t *testing.T) {
	store := param.NewStore()
	now := time.Unix(1700000000, 0).UTC()
	l := NewList(store)

	_, _ = l.Add(param.CoolantTemp, WidgetLinear, 0, 0)
	_, _ = l.Add(param.OilPressure, WidgetLinear, 0, 1)
	require.NoError(t, l.SetThresholds(param.CoolantTemp, Thresholds{WarnLow: 70, WarnHigh: 100, CritLow: 50, CritHigh: 110}))
	require.NoError(t, l.SetThresholds(param.OilPressure, Thresholds{WarnLow: 150, WarnHigh: posInf, CritLow: 100, CritHigh: posInf}))

	store.Update(param.CoolantTemp, 105, param.SourceJ1939, now) // warning
	store.Update(param.OilPressure, 90, param.SourceJ1939, now)  // critical
	l.Update(now)

	assert.Equal(t, SeverityCritical, l.HighestAlert())
	assert.Equal(t, 2, l.AlertCount(SeverityWarning))
	assert.Equal(t, 1, l.AlertCount(SeverityCritical))
}

func TestList_SetupDefaults(t *testing.T) {
	store := param.NewStore()
	l := NewList(store)

	require.NoError(t, l.SetupDefaults())

	page0 := l.PageItems(0)
	require.Len(t, page0, 4)
	assert.Equal(t, param.EngineSpeed, page0[0].Identity)

	page3 := l.PageItems(3)
	require.Len(t, page3, 2)
	assert.Equal(t, param.BatteryVoltage, page3[0].Identity)
}
