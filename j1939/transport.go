package j1939

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// SessionState is the state of one Transport Protocol reassembly session
// (spec.md §3, §4.2).
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionReceiving
	SessionComplete
	SessionError
)

// maxTransportSessions is the fixed number of concurrent Broadcast Announce
// sessions this core tracks (spec.md §4.2: "at least 4").
const maxTransportSessions = 4

// transportSilenceTimeout is the inter-packet silence that aborts a
// receiving session (spec.md §4.2).
const transportSilenceTimeout = 750 * time.Millisecond

// maxTransportPayload is the largest reassembled payload this core buffers
// (spec.md §3: "total size in bytes (<= 1785)").
const maxTransportPayload = 1785

// TransportSession is one Broadcast Announce / Data Transfer reassembly in
// progress for a given source address.
type TransportSession struct {
	source          uint8
	state           SessionState
	targetPGN       uint32
	totalSize       int
	expectedPackets int
	receivedPackets int
	lastPacketTime  time.Time
	buffer          [maxTransportPayload]byte
}

// State reports the session's current lifecycle state.
func (s *TransportSession) State() SessionState { return s.state }

func (s *TransportSession) reset() {
	s.state = SessionIdle
	s.targetPGN = 0
	s.totalSize = 0
	s.expectedPackets = 0
	s.receivedPackets = 0
	s.lastPacketTime = time.Time{}
}

// TransportProtocol reassembles Broadcast Announce Message transfers
// (spec.md §4.2). It tracks at most maxTransportSessions concurrent
// per-source sessions and is owned exclusively by the CAN receiver context
// (spec.md §5: "no other context reads or mutates them").
type TransportProtocol struct {
	sessions [maxTransportSessions]TransportSession
	inUse    [maxTransportSessions]bool

	log *log.Entry
}

// NewTransportProtocol creates an empty transport-protocol tracker.
func NewTransportProtocol() *TransportProtocol {
	return &TransportProtocol{log: log.WithField("component", "j1939.transport")}
}

func (tp *TransportProtocol) findSlot(sa uint8) int {
	for i := range tp.sessions {
		if tp.inUse[i] && tp.sessions[i].source == sa {
			return i
		}
	}
	return -1
}

func (tp *TransportProtocol) freeSlot() int {
	for i := range tp.inUse {
		if !tp.inUse[i] {
			return i
		}
	}
	return -1
}

// HandleBAM processes a Broadcast Announce control frame (PGN 60416,
// control byte 0x20) and opens a fresh reassembly session for its source
// address, discarding any prior session for that source. If no session
// exists for this source and no slot is free, the announce is dropped.
func (tp *TransportProtocol) HandleBAM(sa uint8, data []byte, now time.Time) bool {
	if len(data) < 8 || data[0] != 0x20 {
		tp.log.WithField("source", sa).Debug("dropped malformed BAM control frame")
		return false
	}

	idx := tp.findSlot(sa)
	if idx < 0 {
		idx = tp.freeSlot()
		if idx < 0 {
			tp.log.WithField("source", sa).Warn("no free transport session slot, dropping BAM")
			return false
		}
	}

	totalSize := int(data[1]) | int(data[2])<<8
	if totalSize > maxTransportPayload {
		totalSize = maxTransportPayload
	}
	totalPackets := int(data[3])
	targetPGN := uint32(data[5]) | uint32(data[6])<<8 | uint32(data[7])<<16

	s := &tp.sessions[idx]
	s.reset()
	s.source = sa
	s.state = SessionReceiving
	s.targetPGN = targetPGN
	s.totalSize = totalSize
	s.expectedPackets = totalPackets
	s.lastPacketTime = now
	for i := range s.buffer {
		s.buffer[i] = 0xFF
	}
	tp.inUse[idx] = true
	return true
}

// HandleDataTransfer processes one Data Transfer frame (PGN 60160) and
// reports whether the session it belongs to is now complete. A sequence
// mismatch or an inter-packet gap over 750ms moves the session to the
// error state and drops the frame; the sender's next BAM starts fresh.
func (tp *TransportProtocol) HandleDataTransfer(sa uint8, data []byte, now time.Time) bool {
	idx := tp.findSlot(sa)
	if idx < 0 {
		return false
	}
	s := &tp.sessions[idx]
	if s.state != SessionReceiving {
		return false
	}
	if now.Sub(s.lastPacketTime) > transportSilenceTimeout {
		s.state = SessionError
		tp.log.WithField("source", sa).Debug("transport session timed out, awaiting next BAM")
		return false
	}
	if len(data) < 1 {
		s.state = SessionError
		return false
	}

	seq := int(data[0])
	if seq != s.receivedPackets+1 {
		s.state = SessionError
		tp.log.WithFields(log.Fields{"source": sa, "seq": seq, "expected": s.receivedPackets + 1}).
			Debug("transport sequence error, session abandoned")
		return false
	}

	payload := data[1:]
	if len(payload) > 7 {
		payload = payload[:7]
	}
	start := (seq - 1) * 7
	n := len(payload)
	if start+n > s.totalSize {
		n = s.totalSize - start
	}
	if n > 0 {
		copy(s.buffer[start:start+n], payload[:n])
	}

	s.receivedPackets++
	s.lastPacketTime = now

	if s.receivedPackets == s.expectedPackets {
		s.state = SessionComplete
		return true
	}
	return false
}

// CheckTimeouts abandons any receiving session that has been silent longer
// than the transport-protocol timeout. Intended to be called periodically
// (e.g. from the display/compute tick) so a stalled sender's slot is
// reclaimed even if no further data frame ever arrives.
func (tp *TransportProtocol) CheckTimeouts(now time.Time) {
	for i := range tp.sessions {
		s := &tp.sessions[i]
		if tp.inUse[i] && s.state == SessionReceiving && now.Sub(s.lastPacketTime) > transportSilenceTimeout {
			s.state = SessionError
		}
	}
}

// Drain copies a completed session's reassembled bytes into buf, returns
// the number of bytes copied and the session's target PGN, and returns the
// slot to idle. Drain is a no-op returning ok=false for any session that is
// not complete.
func (tp *TransportProtocol) Drain(sa uint8, buf []byte) (n int, pgn uint32, ok bool) {
	idx := tp.findSlot(sa)
	if idx < 0 {
		return 0, 0, false
	}
	s := &tp.sessions[idx]
	if s.state != SessionComplete {
		return 0, 0, false
	}
	n = s.totalSize
	if n > len(buf) {
		n = len(buf)
	}
	copy(buf[:n], s.buffer[:n])
	pgn = s.targetPGN
	tp.inUse[idx] = false
	s.reset()
	return n, pgn, true
}

// SessionStateFor reports the current state of the session tracked for sa,
// or SessionIdle if none exists.
func (tp *TransportProtocol) SessionStateFor(sa uint8) SessionState {
	idx := tp.findSlot(sa)
	if idx < 0 {
		return SessionIdle
	}
	return tp.sessions[idx].state
}
