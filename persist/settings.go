package persist

// UnitSystem selects display units across the dashboard (spec.md §3).
type UnitSystem uint8

const (
	UnitMetric UnitSystem = iota
	UnitImperial
)

// Settings is the user-configurable dashboard preference set (spec.md
// §3).
type Settings struct {
	Units          UnitSystem
	Brightness     uint8 // 0-100
	DefaultPage    int
	TemperatureUnit string
	PressureUnit    string
	EconomyUnit     string
	Tank1Capacity   float64 // L
	Tank2Capacity   float64 // L
}

// DefaultSettings returns the first-boot settings (spec.md §4.7).
func DefaultSettings() Settings {
	return Settings{
		Units:           UnitMetric,
		Brightness:      75,
		DefaultPage:     0,
		TemperatureUnit: "C",
		PressureUnit:    "kPa",
		EconomyUnit:     "L/100km",
		Tank1Capacity:   200,
		Tank2Capacity:   200,
	}
}

func (s Settings) encode() []byte {
	e := &encoder{}
	e.putUint8(uint8(s.Units))
	e.putUint8(s.Brightness)
	e.putUint32(uint32(s.DefaultPage))
	putString(e, s.TemperatureUnit)
	putString(e, s.PressureUnit)
	putString(e, s.EconomyUnit)
	e.putFloat64(s.Tank1Capacity)
	e.putFloat64(s.Tank2Capacity)
	return e.bytes()
}

func decodeSettings(b []byte) Settings {
	d := newDecoder(b)
	return Settings{
		Units:           UnitSystem(d.getUint8()),
		Brightness:      d.getUint8(),
		DefaultPage:     int(d.getUint32()),
		TemperatureUnit: getString(d),
		PressureUnit:    getString(d),
		EconomyUnit:     getString(d),
		Tank1Capacity:   d.getFloat64(),
		Tank2Capacity:   d.getFloat64(),
	}
}

// putString/getString write a short (<=255 byte) length-prefixed string,
// enough for the unit-label fields this namespace holds.
func putString(e *encoder, s string) {
	e.putUint8(uint8(len(s)))
	e.buf = append(e.buf, s...)
}

func getString(d *decoder) string {
	n := int(d.getUint8())
	if !d.ok(n) {
		return ""
	}
	s := string(d.buf[d.off : d.off+n])
	d.off += n
	return s
}
