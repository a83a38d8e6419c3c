package binstruct

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
)

// Record is a decoded view over one block of device memory. It keeps the
// complete raw buffer and mutates only the bits a field declares, so
// reserved regions the layout does not model pass through encode/decode
// unchanged.
type Record struct {
	layout *Layout
	buf    []byte
}

// Decode creates a record from a raw buffer. The buffer length must match
// the layout size exactly; anything else fails with a SizeError before
// any field is interpreted. The buffer is copied.
func (l *Layout) Decode(b []byte) (*Record, error) {
	if len(b) != l.size {
		return nil, &SizeError{Expected: l.size, Got: len(b)}
	}
	buf := make([]byte, l.size)
	copy(buf, b)
	return &Record{layout: l, buf: buf}, nil
}

// New creates a zero-filled record for the layout.
func (l *Layout) New() *Record {
	return &Record{layout: l, buf: make([]byte, l.size)}
}

// Encode returns a copy of the record's backing buffer, always exactly
// the layout size.
func (r *Record) Encode() []byte {
	out := make([]byte, len(r.buf))
	copy(out, r.buf)
	return out
}

// Layout returns the layout the record was decoded with.
func (r *Record) Layout() *Layout {
	return r.layout
}

// Uint reads an integer, enum, or flag field as an unsigned value.
// Unknown field names panic; they are programming errors, not data errors.
func (r *Record) Uint(name string) uint32 {
	f := r.layout.mustField(name)
	switch f.kind {
	case kindUint8:
		return uint32(r.buf[f.offset])
	case kindUint16:
		return uint32(binary.LittleEndian.Uint16(r.buf[f.offset:]))
	case kindUint32:
		return binary.LittleEndian.Uint32(r.buf[f.offset:])
	case kindFlag, kindEnum:
		return uint32((r.buf[f.offset] & f.mask) >> f.shift)
	default:
		panic(fmt.Sprintf("binstruct: field %q is not numeric", name))
	}
}

// SetUint writes an integer, enum, or flag field. Masked fields keep the
// other bits of their backing byte intact.
func (r *Record) SetUint(name string, v uint32) {
	f := r.layout.mustField(name)
	switch f.kind {
	case kindUint8:
		r.buf[f.offset] = byte(v)
	case kindUint16:
		binary.LittleEndian.PutUint16(r.buf[f.offset:], uint16(v))
	case kindUint32:
		binary.LittleEndian.PutUint32(r.buf[f.offset:], v)
	case kindFlag, kindEnum:
		b := r.buf[f.offset]
		r.buf[f.offset] = (b &^ f.mask) | (byte(v) << f.shift & f.mask)
	default:
		panic(fmt.Sprintf("binstruct: field %q is not numeric", name))
	}
}

// Bool reads a flag field.
func (r *Record) Bool(name string) bool {
	f := r.layout.mustField(name)
	if f.kind != kindFlag {
		panic(fmt.Sprintf("binstruct: field %q is not a flag", name))
	}
	return r.buf[f.offset]&f.mask != 0
}

// SetBool writes a flag field, leaving the rest of the backing byte alone.
func (r *Record) SetBool(name string, v bool) {
	f := r.layout.mustField(name)
	if f.kind != kindFlag {
		panic(fmt.Sprintf("binstruct: field %q is not a flag", name))
	}
	if v {
		r.buf[f.offset] |= f.mask
	} else {
		r.buf[f.offset] &^= f.mask
	}
}

// String reads a fixed-width string field with trailing NUL and space
// padding stripped.
func (r *Record) String(name string) string {
	f := r.layout.mustField(name)
	if f.kind != kindString {
		panic(fmt.Sprintf("binstruct: field %q is not a string", name))
	}
	raw := r.buf[f.offset : f.offset+f.length]
	return string(bytes.TrimRight(raw, "\x00 "))
}

// SetString writes a fixed-width string field, NUL-padding short values.
// Values longer than the declared width are an error: silently truncating
// an identifier would defeat the compatibility check built on it.
func (r *Record) SetString(name, v string) error {
	f := r.layout.mustField(name)
	if f.kind != kindString {
		panic(fmt.Sprintf("binstruct: field %q is not a string", name))
	}
	if len(v) > f.length {
		return fmt.Errorf("value %q exceeds field %q width of %d bytes", v, name, f.length)
	}
	region := r.buf[f.offset : f.offset+f.length]
	for i := range region {
		region[i] = 0
	}
	copy(region, v)
	return nil
}

// Float reads a numeric field with its fixed-point scale applied.
func (r *Record) Float(name string) float64 {
	f := r.layout.mustField(name)
	return float64(r.Uint(name)) / float64(f.scale)
}

// FormatFixed renders a scaled field for display with as many decimal
// places as the scale implies: scale 100 gives two, scale 10 gives one,
// scale 1 gives none. A stored 161 at scale 100 renders as "1.61".
func (r *Record) FormatFixed(name string) string {
	f := r.layout.mustField(name)
	decimals := 0
	for s := f.scale; s > 1; s /= 10 {
		decimals++
	}
	return strconv.FormatFloat(r.Float(name), 'f', decimals, 64)
}
