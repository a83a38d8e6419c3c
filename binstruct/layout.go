package binstruct

import "fmt"

// fieldKind identifies how a field's bytes are interpreted.
type fieldKind int

const (
	kindUint8 fieldKind = iota
	kindUint16
	kindUint32
	kindString
	kindFlag
	kindEnum
)

// Field describes one typed region of a layout: where it lives, how wide
// it is, and how its raw value maps to a logical one. Fields are created
// through the Layout builder methods and are immutable afterwards apart
// from the Scaled modifier.
type Field struct {
	name   string
	kind   fieldKind
	offset int
	length int  // byte width for string fields
	mask   byte // flag/enum fields only
	shift  uint // derived from mask
	scale  int  // fixed-point divisor, 1 = unscaled
}

// Scaled declares the field as fixed-point with the given divisor.
// A stored value of 161 with scale 100 represents 1.61.
func (f *Field) Scaled(scale int) *Field {
	if scale <= 0 {
		panic(fmt.Sprintf("binstruct: field %q: scale must be positive, got %d", f.name, scale))
	}
	f.scale = scale
	return f
}

// Layout describes the complete field map of a fixed-size binary block.
// Layouts are built once and shared; they carry no mutable state after
// construction and are safe for concurrent use.
type Layout struct {
	size   int
	fields []*Field
	byName map[string]*Field
}

// NewLayout creates an empty layout for a block of exactly size bytes.
func NewLayout(size int) *Layout {
	if size <= 0 {
		panic(fmt.Sprintf("binstruct: layout size must be positive, got %d", size))
	}
	return &Layout{
		size:   size,
		byName: make(map[string]*Field),
	}
}

// Size returns the exact block size the layout declares.
func (l *Layout) Size() int {
	return l.size
}

// Uint8 declares a one-byte unsigned integer field.
func (l *Layout) Uint8(name string, offset int) *Field {
	return l.add(name, kindUint8, offset, 1, 0)
}

// Uint16 declares a two-byte little-endian unsigned integer field.
func (l *Layout) Uint16(name string, offset int) *Field {
	return l.add(name, kindUint16, offset, 2, 0)
}

// Uint32 declares a four-byte little-endian unsigned integer field.
func (l *Layout) Uint32(name string, offset int) *Field {
	return l.add(name, kindUint32, offset, 4, 0)
}

// String declares a fixed-width string field. Values shorter than the
// declared width are NUL-padded on the wire; trailing NUL and space
// padding is stripped on read.
func (l *Layout) String(name string, offset, length int) *Field {
	if length <= 0 {
		panic(fmt.Sprintf("binstruct: field %q: string length must be positive, got %d", name, length))
	}
	return l.add(name, kindString, offset, length, 0)
}

// Flag declares a single-bit boolean field within one backing byte.
// The mask must have exactly one bit set. Several flags, and an Enum,
// may share the same backing byte.
func (l *Layout) Flag(name string, offset int, mask byte) *Field {
	if mask == 0 || mask&(mask-1) != 0 {
		panic(fmt.Sprintf("binstruct: field %q: flag mask 0x%02X must have exactly one bit set", name, mask))
	}
	return l.add(name, kindFlag, offset, 1, mask)
}

// Enum declares a masked enumeration field within one backing byte.
// Only the bits selected by mask belong to the field; flag bits layered
// on the same byte are independent.
func (l *Layout) Enum(name string, offset int, mask byte) *Field {
	if mask == 0 {
		panic(fmt.Sprintf("binstruct: field %q: enum mask must be non-zero", name))
	}
	return l.add(name, kindEnum, offset, 1, mask)
}

// Field returns the named field descriptor, or nil if not declared.
func (l *Layout) Field(name string) *Field {
	return l.byName[name]
}

func (l *Layout) add(name string, kind fieldKind, offset, length int, mask byte) *Field {
	if name == "" {
		panic("binstruct: field name must not be empty")
	}
	if _, dup := l.byName[name]; dup {
		panic(fmt.Sprintf("binstruct: duplicate field %q", name))
	}
	if offset < 0 || offset+length > l.size {
		panic(fmt.Sprintf("binstruct: field %q: region [%d,%d) outside layout of %d bytes",
			name, offset, offset+length, l.size))
	}

	f := &Field{
		name:   name,
		kind:   kind,
		offset: offset,
		length: length,
		mask:   mask,
		shift:  trailingZeros(mask),
		scale:  1,
	}
	l.fields = append(l.fields, f)
	l.byName[name] = f
	return f
}

func trailingZeros(mask byte) uint {
	if mask == 0 {
		return 0
	}
	var n uint
	for mask&1 == 0 {
		mask >>= 1
		n++
	}
	return n
}

func (l *Layout) mustField(name string) *Field {
	f := l.byName[name]
	if f == nil {
		panic(fmt.Sprintf("binstruct: unknown field %q", name))
	}
	return f
}
