package j1939

// LampStatus is the four lamp indicators carried in every DM1 message
// (spec.md §3, §4.3).
type LampStatus struct {
	Protect     bool
	AmberWarn   bool
	RedStop     bool
	Malfunction bool
}

// DTC is a single diagnostic trouble code record (spec.md §3, §4.3).
type DTC struct {
	SPN              uint32
	FMI              uint8
	OccurrenceCount  uint8
	ConversionMethod bool
	Source           uint8
}

// DM1 is a fully decoded active-diagnostics message.
type DM1 struct {
	Lamps LampStatus
	DTCs  []DTC
}

// ParseDM1 decodes lamp status and the variable-length sequence of 4-byte
// DTC records starting at offset 2 of data (spec.md §4.3). It writes into a
// caller-supplied DTC slice up to its capacity and returns the number of
// records written. A record with spn==0 && fmi==0 ("no active faults") is
// skipped rather than emitted.
func ParseDM1(data []byte, source uint8, dst []DTC) (DM1, int) {
	var msg DM1
	if len(data) < 2 {
		return msg, 0
	}
	msg.Lamps = LampStatus{
		Protect:   data[0]&(1<<2) != 0,
		AmberWarn: data[0]&(1<<4) != 0,
		RedStop:   data[1]&(1<<2) != 0,
		Malfunction: data[1]&(1<<4) != 0,
	}

	count := 0
	for offset := 2; offset+4 <= len(data) && count < len(dst); offset += 4 {
		b0, b1, b2, b3 := data[offset], data[offset+1], data[offset+2], data[offset+3]
		spn := uint32(b0) | uint32(b1)<<8 | uint32(b2&0xE0)<<11
		fmi := b2 & 0x1F
		oc := b3 & 0x7F
		cm := (b3>>7)&1 != 0

		if spn == 0 && fmi == 0 {
			continue
		}

		dst[count] = DTC{
			SPN:              spn,
			FMI:              fmi,
			OccurrenceCount:  oc,
			ConversionMethod: cm,
			Source:           source,
		}
		count++
	}
	msg.DTCs = dst[:count]
	return msg, count
}
