package j1587

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// FramerState is the byte-framing state machine of spec.md §4.4.
type FramerState int

const (
	FramerIdle FramerState = iota
	FramerReceiving
	FramerComplete
)

const (
	interByteGap  = 10 * time.Millisecond
	maxRawLength  = 21
	minRawLength  = 2
)

// Framer assembles a raw byte stream into J1708 messages by inter-byte
// silence, per spec.md §4.4. It is not safe for concurrent use; the caller
// (a single UART receiver context) owns it exclusively.
type Framer struct {
	state        FramerState
	buffer       []byte
	lastByteTime time.Time
	completed    []byte // raw bytes of a message awaiting drain

	parseErrors int
	log         *log.Entry
}

// NewFramer creates an idle framer.
func NewFramer() *Framer {
	return &Framer{
		state:  FramerIdle,
		buffer: make([]byte, 0, maxRawLength),
		log:    log.WithField("component", "j1587.framer"),
	}
}

// State reports the framer's current state.
func (f *Framer) State() FramerState { return f.state }

// ParseErrors reports the number of frames dropped to a bad checksum,
// short length or buffer overflow since the framer was created.
func (f *Framer) ParseErrors() int { return f.parseErrors }

// Push feeds one byte received at timestamp ts into the framer. It returns
// consumed=false when the byte was not absorbed into the buffer: this
// happens when a message just completed (the byte belongs to the next
// message and must be re-pushed after TakeMessage drains the current one),
// or when the framer already holds an undrained complete message.
func (f *Framer) Push(b byte, ts time.Time) (consumed bool) {
	switch f.state {
	case FramerComplete:
		// spec.md §4.4: "incoming bytes are blocked until a consumer drains
		// the message" -- the completed message must not be lost or
		// overwritten.
		return false

	case FramerIdle:
		f.buffer = append(f.buffer[:0], b)
		f.lastByteTime = ts
		f.state = FramerReceiving
		return true

	default: // FramerReceiving
		if ts.Sub(f.lastByteTime) > interByteGap {
			if len(f.buffer) >= minRawLength && ValidateChecksum(f.buffer) {
				f.completed = append([]byte(nil), f.buffer...)
				f.buffer = f.buffer[:0]
				f.state = FramerComplete
				return false // this byte belongs to the next message
			}
			f.parseErrors++
			f.log.Debug("discarding buffer terminated by silence gap: bad checksum or too short")
			f.buffer = append(f.buffer[:0], b)
			f.lastByteTime = ts
			f.state = FramerReceiving
			return true
		}

		f.buffer = append(f.buffer, b)
		f.lastByteTime = ts
		if len(f.buffer) > maxRawLength {
			f.parseErrors++
			f.log.Warn("frame buffer overflow, resetting")
			f.buffer = f.buffer[:0]
			f.state = FramerIdle
		}
		return true
	}
}

// TakeMessage drains a completed message, parses it, and returns the
// framer to idle. ok is false if no message is currently complete.
func (f *Framer) TakeMessage(ts time.Time) (Message, bool) {
	if f.state != FramerComplete {
		return Message{}, false
	}
	raw := f.completed
	f.completed = nil
	f.state = FramerIdle
	return ParseMessage(raw, ts), true
}
