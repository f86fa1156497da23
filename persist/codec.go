package persist

import (
	"encoding/binary"
	"math"
)

// encoder is a small append-only byte writer for the manual namespace
// blob layouts used throughout this package. spec.md §6 leaves the exact
// byte layout implementation-local provided round-trip identity holds
// within a single build, so this format has no external compatibility
// requirement beyond that.
type encoder struct {
	buf []byte
}

func (e *encoder) putFloat64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) putInt64(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) putUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) putUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) putUint8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *encoder) putBool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

func (e *encoder) bytes() []byte { return e.buf }

// decoder reads back values written by encoder, in the same order.
type decoder struct {
	buf []byte
	off int
}

func newDecoder(b []byte) *decoder { return &decoder{buf: b} }

func (d *decoder) ok(n int) bool { return d.off+n <= len(d.buf) }

func (d *decoder) getFloat64() float64 {
	if !d.ok(8) {
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(d.buf[d.off:]))
	d.off += 8
	return v
}

func (d *decoder) getInt64() int64 {
	if !d.ok(8) {
		return 0
	}
	v := int64(binary.LittleEndian.Uint64(d.buf[d.off:]))
	d.off += 8
	return v
}

func (d *decoder) getUint32() uint32 {
	if !d.ok(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += 4
	return v
}

func (d *decoder) getUint16() uint16 {
	if !d.ok(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(d.buf[d.off:])
	d.off += 2
	return v
}

func (d *decoder) getUint8() uint8 {
	if !d.ok(1) {
		return 0
	}
	v := d.buf[d.off]
	d.off++
	return v
}

func (d *decoder) getBool() bool { return d.getUint8() != 0 }
