package rigwatch

import (
	"time"

	"github.com/brnsen/rigwatch/j1939"
	"github.com/brnsen/rigwatch/param"
)

// maxDrainedPayload matches j1939's transport-protocol payload cap
// (spec.md §3: "total size in bytes (<= 1785)").
const maxDrainedPayload = 1785

// handleCANFrame is the CAN receiver context's per-frame entry point
// (spec.md §5's highest-priority context): it routes Broadcast Announce
// and Data Transfer control frames into the transport-protocol reassembler
// and everything else straight to signal decode.
func (d *Dashboard) handleCANFrame(id uint32, data []byte, length int, ts time.Time) {
	h := j1939.DecodeHeader(id)

	switch h.PGN {
	case j1939.PGNTPConnManagement:
		d.transport.HandleBAM(h.Source, data, ts)
		return
	case j1939.PGNTPDataTransfer:
		if d.transport.HandleDataTransfer(h.Source, data, ts) {
			var buf [maxDrainedPayload]byte
			if n, pgn, ok := d.transport.Drain(h.Source, buf[:]); ok {
				d.routeJ1939Payload(pgn, h.Source, buf[:n], ts)
			}
		}
		return
	}

	msg, err := j1939.Decode(id, data, length, ts)
	if err != nil {
		return
	}
	d.routeJ1939Payload(msg.PGN, msg.Source, msg.Data, ts)
}

// routeJ1939Payload dispatches one already-assembled PGN payload (whether
// from a single frame or a drained transport session) to the matching
// signal decoder and installs the result in the parameter store.
func (d *Dashboard) routeJ1939Payload(pgn uint32, source uint8, data []byte, ts time.Time) {
	update := func(id param.Identity, v float64, ok bool) {
		if ok {
			d.Store.Update(id, v, param.SourceJ1939, ts)
		}
	}

	switch pgn {
	case j1939.PGNEEC1:
		v, ok := j1939.DecodeEngineSpeed(data)
		update(param.EngineSpeed, v, ok)
	case j1939.PGNEEC2:
		v, ok := j1939.DecodePedalPosition(data)
		update(param.PedalPosition, v, ok)
	case j1939.PGNET1:
		v, ok := j1939.DecodeCoolantTemp(data)
		update(param.CoolantTemp, v, ok)
	case j1939.PGNEFLP1:
		v, ok := j1939.DecodeOilPressure(data)
		update(param.OilPressure, v, ok)
	case j1939.PGNCCVS:
		v, ok := j1939.DecodeWheelSpeed(data)
		update(param.VehicleSpeed, v, ok)
	case j1939.PGNLFE:
		v, ok := j1939.DecodeFuelRate(data)
		update(param.FuelRate, v, ok)
	case j1939.PGNAMB:
		v, ok := j1939.DecodeAmbientTemp(data)
		update(param.AmbientTemp, v, ok)
	case j1939.PGNIC1:
		v, ok := j1939.DecodeBoostPressure(data)
		update(param.BoostPressure, v, ok)
	case j1939.PGNVEP1:
		v, ok := j1939.DecodeBatteryVoltage(data)
		update(param.BatteryVoltage, v, ok)
	case j1939.PGNTRF1:
		v, ok := j1939.DecodeTransOilTemp(data)
		update(param.TransOilTemp, v, ok)
	case j1939.PGNDD:
		v, ok := j1939.DecodeFuelLevel1(data)
		update(param.FuelLevel1, v, ok)
	case j1939.PGNHours:
		v, ok := j1939.DecodeEngineHours(data)
		update(param.EngineHours, v, ok)
	case j1939.PGNETC2:
		v, ok := j1939.DecodeCurrentGear(data)
		update(param.CurrentGear, v, ok)
	case j1939.PGNDM1:
		d.handleDM1(source, data, ts)
	}
}

// maxDTCsPerMessage bounds the DTC records this dashboard extracts from a
// single DM1 message; spec.md §4.3 puts no hard cap, but a truck rarely
// has more than a handful of simultaneous active faults.
const maxDTCsPerMessage = 16

// handleDM1 updates the active-fault count and folds every reported DTC
// into the persistence fault-history table (spec.md §4.3, §4.7).
func (d *Dashboard) handleDM1(source uint8, data []byte, ts time.Time) {
	var dst [maxDTCsPerMessage]j1939.DTC
	_, n := j1939.ParseDM1(data, source, dst[:])

	d.Store.Update(param.ActiveDTCCount, float64(n), param.SourceJ1939, ts)

	if n == 0 {
		d.Persist.ClearActiveDTCs()
		return
	}
	for _, dtc := range dst[:n] {
		d.Persist.StoreDTC(dtc.SPN, dtc.FMI, dtc.Source, ts.Unix(), true)
	}
}
