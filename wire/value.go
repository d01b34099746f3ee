package wire

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value represents any decodable wire value without a target schema. It is
// a closed set of variants; decoded trees are freshly built per call and
// never share mutable state.
//
// Values are totally ordered across variant kinds (see Compare), which is
// what allows them to serve as map keys with a reproducible order.
type Value interface {
	Kind() Kind
	fmt.Stringer

	isValue()
}

// Kind identifies a Value variant. The declaration order of the constants
// is the cross-kind ordering used by Compare.
type Kind int

const (
	KindAbsent Kind = iota
	KindInt
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindList
	KindMap
	KindRecord
)

// Absent is the zero/empty marker: no payload, decodes to the target
// type's default.
type Absent struct{}

// Int is any wire integer widened to 64 bits.
type Int int64

// Float32 is a single-precision float; it compares by raw bit pattern.
type Float32 float32

// Float64 is a double-precision float; it compares by raw bit pattern.
type Float64 float64

// String is a UTF-8 text value.
type String string

// Bytes is a raw byte blob.
type Bytes []byte

// List is an ordered sequence of values.
type List []Value

// MapEntry is a single key/value pair of a Map.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an ordered collection of unique keys, sorted by Compare. Build it
// with Set to keep the invariant.
type Map []MapEntry

// Field is a single tagged field of a Record.
type Field struct {
	Tag   uint8
	Value Value
}

// Record is an ordered collection of tagged fields, sorted by tag. The
// tags are the raw wire tags; name resolution never happens here.
type Record []Field

func (Absent) Kind() Kind  { return KindAbsent }
func (Int) Kind() Kind     { return KindInt }
func (Float32) Kind() Kind { return KindFloat32 }
func (Float64) Kind() Kind { return KindFloat64 }
func (String) Kind() Kind  { return KindString }
func (Bytes) Kind() Kind   { return KindBytes }
func (List) Kind() Kind    { return KindList }
func (Map) Kind() Kind     { return KindMap }
func (Record) Kind() Kind  { return KindRecord }

func (Absent) isValue()  {}
func (Int) isValue()     {}
func (Float32) isValue() {}
func (Float64) isValue() {}
func (String) isValue()  {}
func (Bytes) isValue()   {}
func (List) isValue()    {}
func (Map) isValue()     {}
func (Record) isValue()  {}

// ===== ORDERING =====

// Compare imposes a total order over all values:
// Absent < Int < Float32 < Float64 < String < Bytes < List < Map < Record,
// with same-kind values ordered by their content. Floats compare by raw
// bit pattern rather than IEEE ordering, so NaN sorts reproducibly.
func Compare(a, b Value) int {
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case Absent:
		return 0
	case Int:
		return cmpInt64(int64(av), int64(b.(Int)))
	case Float32:
		return cmpUint64(uint64(math.Float32bits(float32(av))), uint64(math.Float32bits(float32(b.(Float32)))))
	case Float64:
		return cmpUint64(math.Float64bits(float64(av)), math.Float64bits(float64(b.(Float64))))
	case String:
		return strings.Compare(string(av), string(b.(String)))
	case Bytes:
		return bytes.Compare(av, b.(Bytes))
	case List:
		bv := b.(List)
		for i := 0; i < len(av) && i < len(bv); i++ {
			if c := Compare(av[i], bv[i]); c != 0 {
				return c
			}
		}
		return cmpInt64(int64(len(av)), int64(len(bv)))
	case Map:
		bv := b.(Map)
		for i := 0; i < len(av) && i < len(bv); i++ {
			if c := Compare(av[i].Key, bv[i].Key); c != 0 {
				return c
			}
			if c := Compare(av[i].Value, bv[i].Value); c != 0 {
				return c
			}
		}
		return cmpInt64(int64(len(av)), int64(len(bv)))
	case Record:
		bv := b.(Record)
		for i := 0; i < len(av) && i < len(bv); i++ {
			if av[i].Tag != bv[i].Tag {
				if av[i].Tag < bv[i].Tag {
					return -1
				}
				return 1
			}
			if c := Compare(av[i].Value, bv[i].Value); c != 0 {
				return c
			}
		}
		return cmpInt64(int64(len(av)), int64(len(bv)))
	}
	return 0
}

// Equal reports whether two values are identical, including variant kind
// and float bit patterns.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ===== MAP / RECORD ACCESSORS =====

// Set returns the map with key bound to val, inserting in key order or
// replacing an existing entry.
func (m Map) Set(key, val Value) Map {
	i := sort.Search(len(m), func(i int) bool { return Compare(m[i].Key, key) >= 0 })
	if i < len(m) && Compare(m[i].Key, key) == 0 {
		m[i].Value = val
		return m
	}
	m = append(m, MapEntry{})
	copy(m[i+1:], m[i:])
	m[i] = MapEntry{Key: key, Value: val}
	return m
}

// Get returns the value bound to key.
func (m Map) Get(key Value) (Value, bool) {
	i := sort.Search(len(m), func(i int) bool { return Compare(m[i].Key, key) >= 0 })
	if i < len(m) && Compare(m[i].Key, key) == 0 {
		return m[i].Value, true
	}
	return nil, false
}

// Set returns the record with tag bound to val, inserting in tag order or
// replacing an existing field.
func (r Record) Set(tag uint8, val Value) Record {
	i := sort.Search(len(r), func(i int) bool { return r[i].Tag >= tag })
	if i < len(r) && r[i].Tag == tag {
		r[i].Value = val
		return r
	}
	r = append(r, Field{})
	copy(r[i+1:], r[i:])
	r[i] = Field{Tag: tag, Value: val}
	return r
}

// Get returns the value of the field with the given tag.
func (r Record) Get(tag uint8) (Value, bool) {
	i := sort.Search(len(r), func(i int) bool { return r[i].Tag >= tag })
	if i < len(r) && r[i].Tag == tag {
		return r[i].Value, true
	}
	return nil, false
}

// ===== RENDERING =====

func (Absent) String() string { return "zero" }

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

func (v Float32) String() string {
	return strconv.FormatFloat(float64(float32(v)), 'g', -1, 32) + "f32"
}

func (v Float64) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64) + "f64"
}

func (v String) String() string { return strconv.Quote(string(v)) }

func (v Bytes) String() string {
	return "bytes(" + base64.StdEncoding.EncodeToString(v) + ")"
}

func (v List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (v Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key.String())
		sb.WriteString(": ")
		sb.WriteString(e.Value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (v Record) String() string {
	var sb strings.Builder
	sb.WriteString("record{")
	for i, f := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d: %s", f.Tag, f.Value)
	}
	sb.WriteByte('}')
	return sb.String()
}

// ===== DECODER METHODS =====

// sizeHint bounds a wire-declared element count by the bytes actually
// remaining in the input. Every element costs at least one byte, so a
// malformed count can never force an allocation larger than the input
// itself; append grows the honest cases past the hint.
func sizeHint(count, remaining int) int {
	if count > remaining {
		return remaining
	}
	return count
}

// ReadValue decodes the next value of any wire type into a Value tree.
// Wire type alone decides the variant: a map marker always yields Map, a
// struct-begin always yields Record. A bare struct-end is malformed here.
func (p *Parser) ReadValue() (Value, error) {
	wt, err := p.PeekType()
	if err != nil {
		return nil, err
	}
	switch wt {
	case TypeZero:
		if err := p.ReadZero(); err != nil {
			return nil, err
		}
		return Absent{}, nil
	case TypeInt1, TypeInt2, TypeInt4, TypeInt8:
		v, err := p.ReadInt64()
		if err != nil {
			return nil, err
		}
		return Int(v), nil
	case TypeFloat4:
		v, err := p.ReadFloat32()
		if err != nil {
			return nil, err
		}
		return Float32(v), nil
	case TypeFloat8:
		v, err := p.ReadFloat64()
		if err != nil {
			return nil, err
		}
		return Float64(v), nil
	case TypeShortString, TypeLongString:
		v, err := p.ReadString()
		if err != nil {
			return nil, err
		}
		return String(v), nil
	case TypeBytes:
		v, err := p.ReadBytes()
		if err != nil {
			return nil, err
		}
		// The parser hands back a view into the input; the tree owns
		// its memory.
		return Bytes(append([]byte(nil), v...)), nil
	case TypeList:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		count, err := p.ReadListLen()
		if err != nil {
			return nil, err
		}
		list := make(List, 0, sizeHint(count, len(p.buf)-p.pos))
		for i := 0; i < count; i++ {
			elem, err := p.ReadValue()
			if err != nil {
				return nil, err
			}
			list = append(list, elem)
		}
		return list, nil
	case TypeMap:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		count, err := p.ReadMapLen()
		if err != nil {
			return nil, err
		}
		// An entry is a key and a value, two bytes minimum.
		m := make(Map, 0, sizeHint(count, (len(p.buf)-p.pos)/2))
		for i := 0; i < count; i++ {
			key, err := p.ReadValue()
			if err != nil {
				return nil, err
			}
			val, err := p.ReadValue()
			if err != nil {
				return nil, err
			}
			m = m.Set(key, val)
		}
		return m, nil
	case TypeStructBegin:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.ReadStructBegin(); err != nil {
			return nil, err
		}
		rec := Record{}
		sr := NewStructReader(p)
		for {
			tag, ok, err := sr.NextField()
			if err != nil {
				return nil, err
			}
			if !ok {
				return rec, nil
			}
			val, err := p.ReadValue()
			if err != nil {
				return nil, err
			}
			rec = rec.Set(tag, val)
		}
	default: // TypeStructEnd
		return nil, p.errAt(ErrWrongWireType)
	}
}

// ===== ENCODER METHODS =====

// WriteValue encodes a Value tree under tag. Unlike the raw WriteString
// and WriteBytes, over-long payloads fail with ErrOutputTooLong here
// instead of being trimmed.
func (b *Builder) WriteValue(tag uint8, v Value) error {
	switch v := v.(type) {
	case Absent:
		b.WriteZero(tag)
	case Int:
		b.WriteInt64(tag, int64(v))
	case Float32:
		b.WriteFloat32(tag, float32(v))
	case Float64:
		b.WriteFloat64(tag, float64(v))
	case String:
		if uint64(len(v)) > MaxStringLen {
			return ErrOutputTooLong
		}
		b.WriteString(tag, string(v))
	case Bytes:
		if len(v) > MaxBytesLen {
			return ErrOutputTooLong
		}
		b.WriteBytes(tag, v)
	case List:
		if err := b.WriteListBegin(tag, len(v)); err != nil {
			return err
		}
		for _, elem := range v {
			if err := b.WriteValue(0, elem); err != nil {
				return err
			}
		}
	case Map:
		if err := b.WriteMapBegin(tag, len(v)); err != nil {
			return err
		}
		for _, e := range v {
			if err := b.WriteValue(0, e.Key); err != nil {
				return err
			}
			if err := b.WriteValue(1, e.Value); err != nil {
				return err
			}
		}
	case Record:
		sw := NewStructWriter(b, tag)
		for _, f := range v {
			if err := sw.WriteValue(f.Tag, f.Value); err != nil {
				return err
			}
		}
		sw.End()
	default:
		return fmt.Errorf("cannot encode value of type %T", v)
	}
	return nil
}
