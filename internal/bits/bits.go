// Package bits provides byte-aligned little-endian extraction helpers
// shared by the J1939 and J1587 decoders. Every signal in this core is
// byte-aligned (see the scale tables in spec.md §4.1 and §4.4), so this is
// deliberately narrower than a general bit-packing library.
package bits

import "encoding/binary"

// Uint8 reads a single byte at offset. ok is false if offset is out of range.
func Uint8(data []byte, offset int) (uint8, bool) {
	if offset < 0 || offset >= len(data) {
		return 0, false
	}
	return data[offset], true
}

// Uint16LE reads two little-endian bytes starting at offset.
func Uint16LE(data []byte, offset int) (uint16, bool) {
	if offset < 0 || offset+2 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(data[offset : offset+2]), true
}

// Uint32LE reads four little-endian bytes starting at offset.
func Uint32LE(data []byte, offset int) (uint32, bool) {
	if offset < 0 || offset+4 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[offset : offset+4]), true
}

// PutUint16LE writes v as two little-endian bytes starting at offset.
func PutUint16LE(data []byte, offset int, v uint16) {
	binary.LittleEndian.PutUint16(data[offset:offset+2], v)
}

// PutUint32LE writes v as four little-endian bytes starting at offset.
func PutUint32LE(data []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(data[offset:offset+4], v)
}

// Valid8 reports whether a raw 8-bit signal value is neither the error
// sentinel (0xFE) nor the not-available sentinel (0xFF).
func Valid8(raw uint8) bool {
	return raw != 0xFE && raw != 0xFF
}

// Valid16 reports whether a raw 16-bit signal value is below the invalid
// band (>= 0xFE00 is error-or-not-available).
func Valid16(raw uint16) bool {
	return raw < 0xFE00
}

// Valid32 reports whether a raw 32-bit signal value is not the
// not-available sentinel (all ones).
func Valid32(raw uint32) bool {
	return raw != 0xFFFFFFFF
}
