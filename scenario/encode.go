package scenario

import (
	"github.com/brnsen/rigwatch/internal/bits"
	"github.com/brnsen/rigwatch/j1939"
)

// blank returns an 8-byte payload with every byte set to the SAE J1939
// "not available" sentinel, the correct default for any byte this
// scenario does not populate (spec.md §4.1).
func blank() []byte {
	b := make([]byte, 8)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

// The encode* helpers are the exact inverse of the signalSpec table in
// j1939/signals.go: same byte offsets, scale and shift from spec.md §4.1,
// duplicated here rather than exported from the core because the core is
// listen-only by design (spec.md's Non-goals) and this harness is an
// external collaborator producing bench fixtures, not a transmit path.
func encodeEEC1(engineSpeedRPM float64) []byte {
	b := blank()
	bits.PutUint16LE(b, 3, uint16(engineSpeedRPM/0.125))
	return b
}

func encodeEEC2(pedalPct float64) []byte {
	b := blank()
	b[1] = byte(pedalPct / 0.4)
	return b
}

func encodeET1(coolantC float64) []byte {
	b := blank()
	b[0] = byte(coolantC + 40)
	return b
}

func encodeEFLP1(oilPressureKPa float64) []byte {
	b := blank()
	b[3] = byte(oilPressureKPa / 4)
	return b
}

func encodeCCVS(wheelSpeedKMH float64) []byte {
	b := blank()
	bits.PutUint16LE(b, 1, uint16(wheelSpeedKMH/(1.0/256)))
	return b
}

func encodeLFE(fuelRateLH float64) []byte {
	b := blank()
	bits.PutUint16LE(b, 0, uint16(fuelRateLH/0.05))
	return b
}

func encodeIC1(boostKPa float64) []byte {
	b := blank()
	b[1] = byte(boostKPa / 2)
	return b
}

func encodeVEP1(batteryV float64) []byte {
	b := blank()
	bits.PutUint16LE(b, 6, uint16(batteryV/0.05))
	return b
}

func encodeTRF1(transOilC float64) []byte {
	b := blank()
	bits.PutUint16LE(b, 4, uint16((transOilC+273)/0.03125))
	return b
}

func encodeDD(fuelLevelPct float64) []byte {
	b := blank()
	b[1] = byte(fuelLevelPct / 0.4)
	return b
}

func encodeHours(hours float64) []byte {
	b := blank()
	bits.PutUint32LE(b, 0, uint32(hours/0.05))
	return b
}

func encodeETC2(gear float64) []byte {
	b := blank()
	b[3] = byte(gear + 125)
	return b
}

// encodeDM1 builds an active-diagnostics payload matching j1939.ParseDM1's
// bit layout. When active is false it emits the lamp-off, no-active-fault
// pattern (spn=0, fmi=0).
func encodeDM1(active bool, spn uint32, fmi uint8) []byte {
	b := blank()
	b[0] = 0
	b[1] = 0
	if !active {
		b[2], b[3], b[4], b[5] = 0, 0, 0, 0
		return b
	}
	b[1] = 1 << 4 // malfunction indicator lamp on
	b[2] = byte(spn)
	b[3] = byte(spn >> 8)
	b[4] = byte(fmi & 0x1F) // top 3 spn bits (spn < 2^16 for every catalogued fault) stay 0
	b[5] = 1                // occurrence count = 1
	return b
}

// frameID builds the 29-bit extended identifier a PGN is broadcast under,
// from source address sa and priority.
func frameID(pgn uint32, sa uint8, priority uint8) uint32 {
	return j1939.BuildID(pgn, sa, priority)
}
