// Package param implements the parameter store: a dense, identity-indexed
// map of timestamped decoded values shared by every decoder, the watch
// list, and persistence (spec.md §4.5).
package param

// Identity is the stable, closed enumeration of every parameter this core
// can hold, regardless of which bus or computation produced it (spec.md
// §3: "used across sources"). It doubles as the array index into Store, so
// the enumeration must stay dense and under maxIdentities.
type Identity uint8

const (
	None Identity = iota

	// Engine domain.
	EngineSpeed
	PedalPosition
	CoolantTemp
	OilPressure
	BoostPressure
	EngineHours

	// Transmission domain.
	CurrentGear
	TransOilTemp

	// Vehicle domain.
	VehicleSpeed
	RoadSpeedJ1708

	// Fuel domain.
	FuelRate
	FuelLevel1

	// Electrical domain.
	BatteryVoltage

	// Environmental domain.
	AmbientTemp

	// Distance domain.
	TotalDistance

	// Diagnostics domain.
	ActiveDTCCount

	// Computed domain — written only by an external consumer (spec.md §9).
	FuelEconomy

	numIdentities // sentinel: count of entries above, not a usable identity
)

const maxIdentities = 256

// catalogEntry is the static display metadata for one identity.
type catalogEntry struct {
	name string
	unit string
}

// catalog is the small static name/unit table of spec.md §3. Every
// Identity below numIdentities has an entry; identities beyond it are
// unused reserved slots.
var catalog = [numIdentities]catalogEntry{
	None:           {name: "none", unit: ""},
	EngineSpeed:    {name: "Engine Speed", unit: "rpm"},
	PedalPosition:  {name: "Pedal Position", unit: "%"},
	CoolantTemp:    {name: "Coolant Temp", unit: "°C"},
	OilPressure:    {name: "Oil Pressure", unit: "kPa"},
	BoostPressure:  {name: "Boost Pressure", unit: "kPa"},
	EngineHours:    {name: "Engine Hours", unit: "h"},
	CurrentGear:    {name: "Current Gear", unit: "gear"},
	TransOilTemp:   {name: "Trans. Oil Temp", unit: "°C"},
	VehicleSpeed:   {name: "Vehicle Speed", unit: "km/h"},
	RoadSpeedJ1708: {name: "Road Speed", unit: "km/h"},
	FuelRate:       {name: "Fuel Rate", unit: "L/h"},
	FuelLevel1:     {name: "Fuel Level", unit: "%"},
	BatteryVoltage: {name: "Battery Voltage", unit: "V"},
	AmbientTemp:    {name: "Ambient Temp", unit: "°C"},
	TotalDistance:  {name: "Total Distance", unit: "km"},
	ActiveDTCCount: {name: "Active DTC Count", unit: ""},
	FuelEconomy:    {name: "Fuel Economy", unit: "L/100km"},
}

// Name returns the catalogue's human-readable name for id, or "" if id is
// outside the known range.
func (id Identity) Name() string {
	if int(id) >= len(catalog) {
		return ""
	}
	return catalog[id].name
}

// Unit returns the catalogue's canonical unit for id, or "" if id is
// outside the known range.
func (id Identity) Unit() string {
	if int(id) >= len(catalog) {
		return ""
	}
	return catalog[id].unit
}

func (id Identity) valid() bool {
	return id != None && int(id) < int(numIdentities)
}
