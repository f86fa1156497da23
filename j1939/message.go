package j1939

import "time"

// Message is a decoded J1939 application message: a Header plus payload.
type Message struct {
	PGN         uint32
	Source      uint8
	Destination uint8
	Priority    uint8
	Data        []byte // 1-8 bytes for a single frame, up to 1785 for a reassembled transport payload
	Timestamp   time.Time
}

// Decode builds a Message from a raw extended identifier, payload and
// receipt timestamp. It fails only on a nil payload or a length outside
// 1-8 (spec.md §4.1); an unrecognised PGN is not an error at this layer.
func Decode(id uint32, payload []byte, length int, ts time.Time) (Message, error) {
	if payload == nil || length < 1 || length > 8 {
		return Message{}, ErrBadPayload
	}
	if len(payload) < length {
		return Message{}, ErrBadPayload
	}
	h := DecodeHeader(id)
	data := make([]byte, length)
	copy(data, payload[:length])
	return Message{
		PGN:         h.PGN,
		Source:      h.Source,
		Destination: h.Destination,
		Priority:    h.Priority,
		Data:        data,
		Timestamp:   ts,
	}, nil
}
