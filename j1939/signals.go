package j1939

import "github.com/brnsen/rigwatch/internal/bits"

// PGN constants for every message class this core decodes (spec.md §4.1-§4.3).
const (
	PGNEEC1               uint32 = 61444 // Electronic Engine Controller 1
	PGNEEC2               uint32 = 61443 // Electronic Engine Controller 2
	PGNET1                uint32 = 65262 // Engine Temperature 1
	PGNEFLP1              uint32 = 65263 // Engine Fluid Level/Pressure 1
	PGNCCVS               uint32 = 65265 // Cruise Control/Vehicle Speed
	PGNLFE                uint32 = 65266 // Fuel Economy (Liquid)
	PGNAMB                uint32 = 65269 // Ambient Conditions
	PGNIC1                uint32 = 65270 // Inlet/Exhaust Conditions 1
	PGNVEP1               uint32 = 65271 // Vehicle Electrical Power 1
	PGNTRF1               uint32 = 65272 // Transmission Fluids 1
	PGNDD                 uint32 = 65276 // Dash Display
	PGNHours              uint32 = 65253 // Engine Hours, Revolutions
	PGNETC2               uint32 = 61445 // Electronic Transmission Controller 2
	PGNDM1                uint32 = 65226 // Active Diagnostic Trouble Codes
	PGNTPConnManagement   uint32 = 60416 // Transport Protocol Connection Management (BAM)
	PGNTPDataTransfer     uint32 = 60160 // Transport Protocol Data Transfer
)

// Domain sentinels a consumer may surface for an Invalid decode result
// instead of a bare boolean, per spec.md §4.1.
const (
	SentinelNonNegative float64 = -1
	SentinelTemperature float64 = -9999
	SentinelGear        int     = -126
)

// signalSpec is the table-driven description of one decoded signal: byte
// offset, width, scale and offset. This is the "table of (byte offset,
// width, scale, offset, sentinel kind)" representation spec.md §9 offers
// as an alternative to a tagged variant; the sentinel band itself is
// derived from width alone (Valid8/Valid16/Valid32), so it isn't a
// separate field here.
type signalSpec struct {
	offset int
	width  int // 1, 2 or 4 bytes
	scale  float64
	shift  float64
}

func decodeSignal(data []byte, s signalSpec) (float64, bool) {
	switch s.width {
	case 1:
		raw, ok := bits.Uint8(data, s.offset)
		if !ok || !bits.Valid8(raw) {
			return 0, false
		}
		return float64(raw)*s.scale + s.shift, true
	case 2:
		raw, ok := bits.Uint16LE(data, s.offset)
		if !ok || !bits.Valid16(raw) {
			return 0, false
		}
		return float64(raw)*s.scale + s.shift, true
	case 4:
		raw, ok := bits.Uint32LE(data, s.offset)
		if !ok || !bits.Valid32(raw) {
			return 0, false
		}
		return float64(raw)*s.scale + s.shift, true
	default:
		return 0, false
	}
}

var (
	specEngineSpeed    = signalSpec{offset: 3, width: 2, scale: 0.125, shift: 0}
	specPedalPosition  = signalSpec{offset: 1, width: 1, scale: 0.4, shift: 0}
	specCoolantTemp    = signalSpec{offset: 0, width: 1, scale: 1, shift: -40}
	specOilPressure    = signalSpec{offset: 3, width: 1, scale: 4, shift: 0}
	specWheelSpeed     = signalSpec{offset: 1, width: 2, scale: 1.0 / 256, shift: 0}
	specFuelRate       = signalSpec{offset: 0, width: 2, scale: 0.05, shift: 0}
	specAmbientTemp    = signalSpec{offset: 3, width: 2, scale: 0.03125, shift: -273}
	specBoostPressure  = signalSpec{offset: 1, width: 1, scale: 2, shift: 0}
	specBatteryVoltage = signalSpec{offset: 6, width: 2, scale: 0.05, shift: 0}
	specTransOilTemp   = signalSpec{offset: 4, width: 2, scale: 0.03125, shift: -273}
	specFuelLevel1     = signalSpec{offset: 1, width: 1, scale: 0.4, shift: 0}
	specEngineHours    = signalSpec{offset: 0, width: 4, scale: 0.05, shift: 0}
	specCurrentGear    = signalSpec{offset: 3, width: 1, scale: 1, shift: -125}
)

// DecodeEngineSpeed decodes EEC1 engine speed in rpm.
func DecodeEngineSpeed(data []byte) (float64, bool) { return decodeSignal(data, specEngineSpeed) }

// DecodePedalPosition decodes EEC2 accelerator pedal position in percent.
func DecodePedalPosition(data []byte) (float64, bool) { return decodeSignal(data, specPedalPosition) }

// DecodeCoolantTemp decodes ET1 engine coolant temperature in degrees C.
func DecodeCoolantTemp(data []byte) (float64, bool) { return decodeSignal(data, specCoolantTemp) }

// DecodeOilPressure decodes EFLP1 engine oil pressure in kPa.
func DecodeOilPressure(data []byte) (float64, bool) { return decodeSignal(data, specOilPressure) }

// DecodeWheelSpeed decodes CCVS wheel-based vehicle speed in km/h.
func DecodeWheelSpeed(data []byte) (float64, bool) { return decodeSignal(data, specWheelSpeed) }

// DecodeFuelRate decodes LFE engine fuel rate in L/h.
func DecodeFuelRate(data []byte) (float64, bool) { return decodeSignal(data, specFuelRate) }

// DecodeAmbientTemp decodes AMB ambient air temperature in degrees C.
func DecodeAmbientTemp(data []byte) (float64, bool) { return decodeSignal(data, specAmbientTemp) }

// DecodeBoostPressure decodes IC1 turbo boost pressure in kPa.
func DecodeBoostPressure(data []byte) (float64, bool) { return decodeSignal(data, specBoostPressure) }

// DecodeBatteryVoltage decodes VEP1 battery/electrical system voltage.
func DecodeBatteryVoltage(data []byte) (float64, bool) {
	return decodeSignal(data, specBatteryVoltage)
}

// DecodeTransOilTemp decodes TRF1 transmission oil temperature in degrees C.
func DecodeTransOilTemp(data []byte) (float64, bool) { return decodeSignal(data, specTransOilTemp) }

// DecodeFuelLevel1 decodes DD primary fuel tank level in percent.
func DecodeFuelLevel1(data []byte) (float64, bool) { return decodeSignal(data, specFuelLevel1) }

// DecodeEngineHours decodes total engine hours. The accumulator is a 64-bit
// float even though the wire value is 32 bits, per spec.md §9's note that
// durations may exceed 32 bits.
func DecodeEngineHours(data []byte) (float64, bool) { return decodeSignal(data, specEngineHours) }

// DecodeCurrentGear decodes ETC2 current gear (negative = reverse, 0 = neutral).
func DecodeCurrentGear(data []byte) (float64, bool) { return decodeSignal(data, specCurrentGear) }
