package persist

// Trip is one trip odometer/economy record (spec.md §3).
type Trip struct {
	Distance    float64 // km
	FuelUsed    float64 // L
	StartTime   int64   // epoch seconds
	Active      bool
	Duration    int64 // seconds
	AvgSpeed    float64 // km/h
	AvgEconomy  float64 // L/100km
}

// Reset zeroes trip and marks it active, starting at nowEpoch (spec.md
// §4.7).
func (t *Trip) Reset(nowEpoch int64) {
	*t = Trip{Active: true, StartTime: nowEpoch}
}

// Update accumulates a distance/fuel/duration delta and recomputes the
// derived averages (spec.md §4.7). Average economy is defined as 0 below
// 1 km of accumulated distance to avoid division noise from a tiny
// denominator.
func (t *Trip) Update(deltaDistance, deltaFuel float64, deltaDurationSec int64) {
	t.Distance += deltaDistance
	t.FuelUsed += deltaFuel
	t.Duration += deltaDurationSec

	if t.Duration > 0 {
		t.AvgSpeed = t.Distance * 3600 / float64(t.Duration)
	}
	if t.Distance >= 1 {
		t.AvgEconomy = t.FuelUsed * 100 / t.Distance
	} else {
		t.AvgEconomy = 0
	}
}

func (t Trip) encode() []byte {
	e := &encoder{}
	e.putFloat64(t.Distance)
	e.putFloat64(t.FuelUsed)
	e.putInt64(t.StartTime)
	e.putBool(t.Active)
	e.putInt64(t.Duration)
	e.putFloat64(t.AvgSpeed)
	e.putFloat64(t.AvgEconomy)
	return e.bytes()
}

func decodeTrip(b []byte) Trip {
	d := newDecoder(b)
	return Trip{
		Distance:   d.getFloat64(),
		FuelUsed:   d.getFloat64(),
		StartTime:  d.getInt64(),
		Active:     d.getBool(),
		Duration:   d.getInt64(),
		AvgSpeed:   d.getFloat64(),
		AvgEconomy: d.getFloat64(),
	}
}
