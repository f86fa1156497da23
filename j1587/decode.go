package j1587

import "github.com/brnsen/rigwatch/internal/bits"

// PID constants for every parameter this core scales (spec.md §4.4). Real
// J1708/J1587 hardware defines many more; this catalogue covers exactly
// the signals this dashboard consumes.
const (
	pidRoadSpeed      byte = 84
	pidFuelLevel      byte = 96
	pidOilPressure    byte = 100
	pidCoolantTemp    byte = 110
	pidBatteryVoltage byte = 168
	pidTransOilTemp   byte = 177
	pidEngineSpeed    byte = 190
	pidTotalDistance  byte = 245
	pidEngineHours    byte = 247

	// PIDDiagnosticActive and PIDDiagnosticInactive carry variable-length
	// lists of 2-byte {id, fmi} diagnostic entries (spec.md §4.4).
	PIDDiagnosticActive   byte = 194
	PIDDiagnosticInactive byte = 195
)

const milesToKm = 1.60934

// DecodeRoadSpeed decodes PID 84 (0.5 mi/h per bit) into km/h.
func DecodeRoadSpeed(p Parameter) (float64, bool) {
	if p.PID != pidRoadSpeed || len(p.Data) < 1 {
		return 0, false
	}
	return float64(p.Data[0]) * 0.5 * milesToKm, true
}

// DecodeFuelLevel decodes PID 96 (0.5 %/bit).
func DecodeFuelLevel(p Parameter) (float64, bool) {
	if p.PID != pidFuelLevel || len(p.Data) < 1 {
		return 0, false
	}
	return float64(p.Data[0]) * 0.5, true
}

// DecodeOilPressure decodes PID 100 (4 kPa/bit).
func DecodeOilPressure(p Parameter) (float64, bool) {
	if p.PID != pidOilPressure || len(p.Data) < 1 {
		return 0, false
	}
	return float64(p.Data[0]) * 4, true
}

// DecodeCoolantTemp decodes PID 110 (1 degF/bit) into degrees C.
func DecodeCoolantTemp(p Parameter) (float64, bool) {
	if p.PID != pidCoolantTemp || len(p.Data) < 1 {
		return 0, false
	}
	f := float64(p.Data[0])
	return (f - 32) * 5 / 9, true
}

// DecodeBatteryVoltage decodes PID 168 (0.05 V/bit).
func DecodeBatteryVoltage(p Parameter) (float64, bool) {
	if p.PID != pidBatteryVoltage || len(p.Data) < 1 {
		return 0, false
	}
	return float64(p.Data[0]) * 0.05, true
}

// DecodeTransOilTemp decodes PID 177 (2 bytes LE, 0.25 degC/bit, -273
// offset). spec.md §9 notes the source disagreed on this PID's offset
// between two upstream documents; this core follows the raw*0.25-273
// interpretation.
func DecodeTransOilTemp(p Parameter) (float64, bool) {
	if p.PID != pidTransOilTemp {
		return 0, false
	}
	raw, ok := bits.Uint16LE(p.Data, 0)
	if !ok {
		return 0, false
	}
	return float64(raw)*0.25 - 273, true
}

// DecodeEngineSpeed decodes PID 190 (2 bytes LE, 0.25 rpm/bit).
func DecodeEngineSpeed(p Parameter) (float64, bool) {
	if p.PID != pidEngineSpeed {
		return 0, false
	}
	raw, ok := bits.Uint16LE(p.Data, 0)
	if !ok {
		return 0, false
	}
	return float64(raw) * 0.25, true
}

// DiagnosticEntry is one decoded 2-byte diagnostic code under PID 194/195.
type DiagnosticEntry struct {
	IsSubsystem bool // high bit of the id byte set: subsystem identifier rather than a PID
	ID          byte
	FMI         byte
	Count       int // occurrence count; J1587 diagnostics carry no explicit count, defaults to 1
}

// DecodeDiagnostics interprets a PID 194/195 parameter's data as a
// sequence of 2-byte {id, fmi} entries (spec.md §4.4).
func DecodeDiagnostics(p Parameter) []DiagnosticEntry {
	if p.PID != PIDDiagnosticActive && p.PID != PIDDiagnosticInactive {
		return nil
	}
	var entries []DiagnosticEntry
	for i := 0; i+2 <= len(p.Data); i += 2 {
		idByte := p.Data[i]
		fmiByte := p.Data[i+1]
		entries = append(entries, DiagnosticEntry{
			IsSubsystem: idByte&0x80 != 0,
			ID:          idByte &^ 0x80,
			FMI:         fmiByte & 0x0F,
			Count:       1,
		})
	}
	return entries
}
