// Package scenario is a deterministic bus-traffic generator used to
// exercise the decode/store/watch/persist pipeline without a real vehicle
// (spec.md §6's "scenario harness boundary"). It is a collaborator outside
// the protocol core, not part of it: it only ever calls into the core
// through the same raw-frame callback a real CAN adapter would use.
package scenario

import (
	"errors"
	"math/rand"
	"time"
)

// engineSourceAddress is the simulated engine ECU's source address used
// for every emitted frame; this harness only ever plays one ECU.
const engineSourceAddress uint8 = 0x00

// periods holds the emission interval for each PGN (spec.md §6's defaults
// table). dm1PeriodActive/dm1PeriodIdle hold the two DM1 rates, selected by
// whether a fault is currently active.
var periods = map[uint32]time.Duration{
	61444: 10 * time.Millisecond,   // EEC1
	61443: 50 * time.Millisecond,   // EEC2
	65265: 100 * time.Millisecond,  // CCVS
	65266: 100 * time.Millisecond,  // LFE
	61445: 100 * time.Millisecond,  // ETC2
	65262: 1000 * time.Millisecond, // ET1
	65263: 1000 * time.Millisecond, // EFLP1
	65270: 1000 * time.Millisecond, // IC1
	65272: 1000 * time.Millisecond, // TRF1
	65253: 1000 * time.Millisecond, // HOURS
	65271: 1000 * time.Millisecond, // VEP1
	65276: 1000 * time.Millisecond, // DD
}

// periodOrder lists the keys of periods in the fixed order Advance emits
// them, so frames due on the same tick always come out in the same order.
var periodOrder = []uint32{61444, 61443, 65265, 65266, 61445, 65262, 65263, 65270, 65272, 65253, 65271, 65276}

const (
	dm1PeriodActive = 1000 * time.Millisecond
	dm1PeriodIdle   = 5000 * time.Millisecond
	pgnDM1          = 65226
)

// ErrUnknownScenario is returned by Select for a name outside the
// canonical set (spec.md §6).
var ErrUnknownScenario = errors.New("scenario: unknown scenario name")

// RawFrameFunc matches the raw CAN-frame callback of spec.md §6.
type RawFrameFunc func(id uint32, data []byte, length int, ts time.Time)

// Generator holds one running scenario's simulated clock, RNG and
// per-PGN emission schedule.
type Generator struct {
	name    Name
	rng     *rand.Rand
	elapsed time.Duration

	nextDue map[uint32]time.Duration

	faultActive bool
	faultSPN    uint32
	faultFMI    uint8

	state VehicleState
}

// NewGenerator creates a Generator running scenario name from t=0, seeded
// for reproducible output.
func NewGenerator(name Name, seed int64) (*Generator, error) {
	if !name.valid() {
		return nil, ErrUnknownScenario
	}
	g := &Generator{
		name:    name,
		rng:     rand.New(rand.NewSource(seed)),
		nextDue: make(map[uint32]time.Duration, len(periods)+1),
	}
	g.state = evaluate(g.name, 0, g.rng.Float64())
	return g, nil
}

// Select switches to a different scenario without resetting the simulated
// clock or RNG, so a bench run can chain scenarios (e.g. cold-start then
// highway) with a continuous timeline.
func (g *Generator) Select(name Name) error {
	if !name.valid() {
		return ErrUnknownScenario
	}
	g.name = name
	return nil
}

// SetSeed re-seeds the RNG. It does not reset the simulated clock.
func (g *Generator) SetSeed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// State reports the current simulated vehicle state, including whether a
// fault has been injected.
func (g *Generator) State() VehicleState {
	s := g.state
	s.FaultActive = g.faultActive
	s.FaultSPN = g.faultSPN
	s.FaultFMI = g.faultFMI
	return s
}

// InjectFault force-activates a diagnostic trouble code (spec.md §6:
// "force-inject a DTC"). It takes effect on the DM1 message's next due
// emission.
func (g *Generator) InjectFault(spn uint32, fmi uint8) {
	g.faultActive = true
	g.faultSPN = spn
	g.faultFMI = fmi
}

// ClearFault deactivates the injected fault; the next DM1 emission reports
// no active faults and DM1 reverts to its slower idle-rate cadence.
func (g *Generator) ClearFault() {
	g.faultActive = false
	g.faultSPN = 0
	g.faultFMI = 0
}

// Advance moves the simulated clock forward by delta, updates the vehicle
// state, and emits every PGN whose period has elapsed since the last
// Advance, timestamped at now (spec.md §6: "advance by delta ms").
func (g *Generator) Advance(now time.Time, delta time.Duration, emit RawFrameFunc) {
	g.elapsed += delta
	g.state = evaluate(g.name, g.elapsed.Seconds(), g.rng.Float64())

	for _, pgn := range periodOrder {
		g.maybeEmit(pgn, periods[pgn], now, emit)
	}
	g.maybeEmit(pgnDM1, g.dm1Period(), now, emit)
}

func (g *Generator) dm1Period() time.Duration {
	if g.faultActive {
		return dm1PeriodActive
	}
	return dm1PeriodIdle
}

func (g *Generator) maybeEmit(pgn uint32, period time.Duration, now time.Time, emit RawFrameFunc) {
	if g.elapsed < g.nextDue[pgn] {
		return
	}
	g.nextDue[pgn] = g.elapsed + period

	data := g.payloadFor(pgn)
	if data == nil {
		return
	}
	id := frameID(pgn, engineSourceAddress, 3)
	emit(id, data, len(data), now)
}

func (g *Generator) payloadFor(pgn uint32) []byte {
	s := g.state
	switch pgn {
	case 61444:
		return encodeEEC1(s.EngineSpeed)
	case 61443:
		return encodeEEC2(s.PedalPosition)
	case 65262:
		return encodeET1(s.CoolantTemp)
	case 65263:
		return encodeEFLP1(s.OilPressure)
	case 65265:
		return encodeCCVS(s.WheelSpeed)
	case 65266:
		return encodeLFE(s.FuelRate)
	case 65270:
		return encodeIC1(s.BoostPressure)
	case 65271:
		return encodeVEP1(s.BatteryVoltage)
	case 65272:
		return encodeTRF1(s.TransOilTemp)
	case 65276:
		return encodeDD(s.FuelLevel1)
	case 65253:
		return encodeHours(s.EngineHours)
	case 61445:
		return encodeETC2(s.CurrentGear)
	case pgnDM1:
		return encodeDM1(g.faultActive, g.faultSPN, g.faultFMI)
	default:
		return nil
	}
}
