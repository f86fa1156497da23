package j1587

import "time"

// Parameter is one decoded PID/data pair extracted from a J1708 message
// (spec.md §3).
type Parameter struct {
	PID  byte
	Data []byte // up to 8 bytes
}

// Message is a fully framed J1708 message: source MID, its ordered
// parameters, the raw bytes as received (including the checksum byte) and
// whether that checksum validated.
type Message struct {
	MID           byte
	Parameters    []Parameter
	Raw           []byte
	ChecksumValid bool
	Timestamp     time.Time
}

// fixedLength maps PIDs with a known, constant data width (spec.md §4.4's
// "fixed table"). PIDs absent from this table require an explicit length
// byte, whether or not they fall in the 192-254 extended range.
var fixedLength = map[byte]int{
	pidRoadSpeed:      1,
	pidFuelLevel:      1,
	pidOilPressure:    1,
	pidCoolantTemp:    1,
	pidBatteryVoltage: 1,
	pidTransOilTemp:   2,
	pidEngineSpeed:    2,
	pidTotalDistance:  4,
	pidEngineHours:    4,
}

// lengthFor reports the data width for pid and whether an explicit length
// byte must be read first.
func lengthFor(pid byte) (length int, needsPrefix bool) {
	if n, ok := fixedLength[pid]; ok {
		return n, false
	}
	return 0, true
}

// ParseMessage decodes a complete, checksum-terminated J1708 frame (MID
// byte, a sequence of PID/[length]/data parameters, then a checksum byte)
// into its ordered parameter list. Truncated parameter data at the tail of
// the frame silently stops parsing and returns everything decoded so far
// (spec.md §4.4).
func ParseMessage(raw []byte, ts time.Time) Message {
	msg := Message{
		MID:           raw[0],
		Raw:           raw,
		ChecksumValid: ValidateChecksum(raw),
		Timestamp:     ts,
	}
	body := raw[1 : len(raw)-1] // excludes MID and trailing checksum

	i := 0
	for i < len(body) {
		pid := body[i]
		i++

		length, needsPrefix := lengthFor(pid)
		if needsPrefix {
			if i >= len(body) {
				break
			}
			length = int(body[i])
			i++
		}
		if length > 8 {
			length = 8
		}
		if i+length > len(body) {
			break
		}

		data := make([]byte, length)
		copy(data, body[i:i+length])
		msg.Parameters = append(msg.Parameters, Parameter{PID: pid, Data: data})
		i += length
	}

	return msg
}
