package rigwatch

import (
	"time"

	"github.com/brnsen/rigwatch/j1587"
	"github.com/brnsen/rigwatch/param"
)

// j1708DiagnosticSourceTag distinguishes J1708-sourced fault history
// entries from J1939 DM1 entries in the shared persistence namespace
// (persist.StoreDTC's source byte is opaque to this dashboard beyond
// telling the two buses apart).
const j1708DiagnosticSourceTag uint8 = 1

// handleJ1587Message is the J1708 receiver context's per-message entry
// point (spec.md §5's high-priority context): it re-parses the framed
// bytes and dispatches each decoded parameter.
func (d *Dashboard) handleJ1587Message(mid byte, data []byte, length int, ts time.Time) {
	msg := j1587.ParseMessage(data[:length], ts)
	if !msg.ChecksumValid {
		return
	}

	for _, p := range msg.Parameters {
		d.routeJ1587Parameter(p, ts)
	}
}

func (d *Dashboard) routeJ1587Parameter(p j1587.Parameter, ts time.Time) {
	update := func(id param.Identity, v float64, ok bool) {
		if ok {
			d.Store.Update(id, v, param.SourceJ1708, ts)
		}
	}

	if v, ok := j1587.DecodeRoadSpeed(p); ok {
		update(param.RoadSpeedJ1708, v, true)
		return
	}
	if v, ok := j1587.DecodeFuelLevel(p); ok {
		update(param.FuelLevel1, v, true)
		return
	}
	if v, ok := j1587.DecodeOilPressure(p); ok {
		update(param.OilPressure, v, true)
		return
	}
	if v, ok := j1587.DecodeCoolantTemp(p); ok {
		update(param.CoolantTemp, v, true)
		return
	}
	if v, ok := j1587.DecodeBatteryVoltage(p); ok {
		update(param.BatteryVoltage, v, true)
		return
	}
	if v, ok := j1587.DecodeTransOilTemp(p); ok {
		update(param.TransOilTemp, v, true)
		return
	}
	if v, ok := j1587.DecodeEngineSpeed(p); ok {
		update(param.EngineSpeed, v, true)
		return
	}

	if entries := j1587.DecodeDiagnostics(p); entries != nil {
		for _, e := range entries {
			active := p.PID == j1587.PIDDiagnosticActive
			d.Persist.StoreDTC(uint32(e.ID), e.FMI, j1708DiagnosticSourceTag, ts.Unix(), active)
		}
	}
}
