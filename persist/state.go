package persist

// SystemState is the boot/shutdown bookkeeping record (spec.md §3).
type SystemState struct {
	CleanShutdown   bool
	LastKnownTime   int64 // epoch seconds
	BootCount       uint32
	CrashCount      uint32
	PendingDistance float64 // km accumulated since the last flush, lost on a crash
	PendingFuel     float64 // L accumulated since the last flush, lost on a crash
}

func (s SystemState) encode() []byte {
	e := &encoder{}
	e.putBool(s.CleanShutdown)
	e.putInt64(s.LastKnownTime)
	e.putUint32(s.BootCount)
	e.putUint32(s.CrashCount)
	e.putFloat64(s.PendingDistance)
	e.putFloat64(s.PendingFuel)
	return e.bytes()
}

func decodeState(b []byte) SystemState {
	d := newDecoder(b)
	return SystemState{
		CleanShutdown:   d.getBool(),
		LastKnownTime:   d.getInt64(),
		BootCount:       d.getUint32(),
		CrashCount:      d.getUint32(),
		PendingDistance: d.getFloat64(),
		PendingFuel:     d.getFloat64(),
	}
}
