package persist

// Lifetime is the vehicle's cumulative record (spec.md §3). BestEconomy
// and WorstEconomy are persisted separately under the fuel-economy
// namespace (see Store.pendingWrites) since they update far more often
// than the rest of this record and benefit from an independent dirty
// flag.
type Lifetime struct {
	TotalDistance float64 // km
	TotalFuel     float64 // L
	EngineHours   float64 // h, verbatim from the bus, not accumulated
	BootCount     uint32
	FirstBootTime int64 // epoch seconds
	TotalRuntime  int64 // seconds

	BestEconomy  float64 // L/100km
	WorstEconomy float64 // L/100km
}

// DefaultLifetime returns the first-boot lifetime record: best/worst
// economy are seeded so the very first sample becomes both extremes
// (spec.md §4.7).
func DefaultLifetime(nowEpoch int64) Lifetime {
	return Lifetime{
		FirstBootTime: nowEpoch,
		BestEconomy:   0,
		WorstEconomy:  999,
	}
}

// ObserveEconomy folds a new instantaneous economy sample into the
// running best/worst extremes.
func (l *Lifetime) ObserveEconomy(economy float64) {
	if l.BestEconomy == 0 || economy < l.BestEconomy {
		l.BestEconomy = economy
	}
	if l.WorstEconomy == 999 || economy > l.WorstEconomy {
		l.WorstEconomy = economy
	}
}

func (l Lifetime) encodeCore() []byte {
	e := &encoder{}
	e.putFloat64(l.TotalDistance)
	e.putFloat64(l.TotalFuel)
	e.putFloat64(l.EngineHours)
	e.putUint32(l.BootCount)
	e.putInt64(l.FirstBootTime)
	e.putInt64(l.TotalRuntime)
	return e.bytes()
}

func decodeLifetimeCore(b []byte) Lifetime {
	d := newDecoder(b)
	return Lifetime{
		TotalDistance: d.getFloat64(),
		TotalFuel:     d.getFloat64(),
		EngineHours:   d.getFloat64(),
		BootCount:     d.getUint32(),
		FirstBootTime: d.getInt64(),
		TotalRuntime:  d.getInt64(),
	}
}

func encodeEconomy(best, worst float64) []byte {
	e := &encoder{}
	e.putFloat64(best)
	e.putFloat64(worst)
	return e.bytes()
}

func decodeEconomy(b []byte) (best, worst float64) {
	d := newDecoder(b)
	return d.getFloat64(), d.getFloat64()
}
