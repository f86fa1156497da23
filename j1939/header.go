// Package j1939 decodes SAE J1939 CAN application-layer traffic: extended
// frame identifiers, PDU1/PDU2 addressing, the per-signal scaling table of
// §4.1, the Broadcast Announce / Data Transfer transport protocol of §4.2,
// and DM1 diagnostic trouble code parsing of §4.3.
//
// The package is listen-only: it never builds a request or claims an
// address (spec.md's Non-goals). BuildID exists only so callers/tests can
// construct identifiers for outbound-shaped fixtures.
package j1939

import "errors"

// AddressGlobal is the broadcast/global destination and source-unknown
// sentinel used throughout J1939 (0xFF and 0xFE respectively share the
// upper address range; this core only needs the broadcast destination).
const AddressGlobal uint8 = 0xFF

// Header is the decomposed identifier of an extended (29-bit) J1939 frame.
type Header struct {
	PGN         uint32
	Source      uint8
	Destination uint8
	Priority    uint8
}

// ErrBadPayload is returned when a frame's payload is missing or its
// declared length is outside the valid 1-8 byte range (spec.md §4.1).
var ErrBadPayload = errors.New("j1939: payload is nil or length outside 1-8")

// DecodeHeader decomposes a 29-bit extended CAN identifier into a Header
// per spec.md §4.1: priority = bits 28-26, data page = bit 24, PF = bits
// 23-16, PS = bits 15-8, SA = bits 7-0. PDU1 (PF<240) treats PS as a
// unicast destination address; PDU2 (PF>=240) treats PS as a PGN group
// extension and destination is always the broadcast sentinel.
func DecodeHeader(id uint32) Header {
	h := Header{
		Priority: uint8((id >> 26) & 0x7),
		Source:   uint8(id),
	}
	ps := uint8(id >> 8)
	pf := uint8(id >> 16)
	reservedAndDP := uint8(id>>24) & 0x3
	pgn := uint32(reservedAndDP)<<16 | uint32(pf)<<8

	if pf < 240 {
		h.Destination = ps
		h.PGN = pgn
	} else {
		h.Destination = AddressGlobal
		h.PGN = pgn | uint32(ps)
	}
	return h
}

// BuildID encodes pgn/sa/priority into a 29-bit extended CAN identifier.
// The PGN is written verbatim into the PF:PS field, which is correct for
// broadcast/PDU2 traffic; a caller building a PDU1 unicast identifier must
// have already placed the destination address in the PGN's low byte.
func BuildID(pgn uint32, sa uint8, priority uint8) uint32 {
	id := uint32(sa)
	id |= (pgn & 0x3FFFF) << 8
	id |= uint32(priority&0x7) << 26
	return id
}

// IsPDU1 reports whether pgn's PDU-format byte addresses a unicast
// destination (PF < 240) rather than a broadcast group extension.
func IsPDU1(pgn uint32) bool {
	pf := uint8(pgn >> 8)
	return pf < 240
}
