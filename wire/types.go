package wire

// ===== JCE WIRE FORMAT TYPES =====

// WireType represents the JCE wire format type codes. The low nibble of every
// field header carries one of these values.
type WireType byte

const (
	TypeInt1        WireType = 0  // 1-byte signed integer
	TypeInt2        WireType = 1  // 2-byte signed integer, big-endian
	TypeInt4        WireType = 2  // 4-byte signed integer, big-endian
	TypeInt8        WireType = 3  // 8-byte signed integer, big-endian
	TypeFloat4      WireType = 4  // IEEE-754 single, big-endian
	TypeFloat8      WireType = 5  // IEEE-754 double, big-endian
	TypeShortString WireType = 6  // 1-byte length + UTF-8 payload
	TypeLongString  WireType = 7  // 4-byte big-endian length + UTF-8 payload
	TypeMap         WireType = 8  // tagged i32 entry count + count key/value pairs
	TypeList        WireType = 9  // tagged i32 element count + count elements
	TypeStructBegin WireType = 10 // opens a record of tagged fields
	TypeStructEnd   WireType = 11 // record terminator, tag conventionally 0
	TypeZero        WireType = 12 // header only; zero / empty / absent
	TypeBytes       WireType = 13 // inner Int1 header + tagged i32 length + raw bytes
)

// longTagMarker in the high nibble of the first header byte announces the
// two-byte header form: the full tag follows in the next byte.
const longTagMarker = 0x0f

// ParseWireType validates a raw type nibble.
func ParseWireType(v byte) (WireType, error) {
	if v > byte(TypeBytes) {
		return 0, ErrUnknownWireType
	}
	return WireType(v), nil
}

// String returns the name of the wire type.
func (t WireType) String() string {
	switch t {
	case TypeInt1:
		return "int1"
	case TypeInt2:
		return "int2"
	case TypeInt4:
		return "int4"
	case TypeInt8:
		return "int8"
	case TypeFloat4:
		return "float4"
	case TypeFloat8:
		return "float8"
	case TypeShortString:
		return "short-string"
	case TypeLongString:
		return "long-string"
	case TypeMap:
		return "map"
	case TypeList:
		return "list"
	case TypeStructBegin:
		return "struct-begin"
	case TypeStructEnd:
		return "struct-end"
	case TypeZero:
		return "zero"
	case TypeBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// DecodeHead parses a field header from the front of data without consuming
// it. It returns the tag, the wire type and the header length in bytes
// (1 for tags 0-14, 2 for the long form).
func DecodeHead(data []byte) (tag uint8, wt WireType, n int, err error) {
	if len(data) == 0 {
		return 0, 0, 0, ErrTruncatedInput
	}
	wt, err = ParseWireType(data[0] & 0x0f)
	if err != nil {
		return 0, 0, 0, err
	}
	tag = data[0] >> 4
	if tag != longTagMarker {
		return tag, wt, 1, nil
	}
	if len(data) < 2 {
		return 0, 0, 0, ErrTruncatedInput
	}
	return data[1], wt, 2, nil
}

// AppendHead appends the header for (tag, wt) to buf, choosing the one-byte
// form whenever the tag fits in the high nibble.
func AppendHead(buf []byte, tag uint8, wt WireType) []byte {
	if tag < longTagMarker {
		return append(buf, tag<<4|byte(wt))
	}
	return append(buf, byte(longTagMarker)<<4|byte(wt), tag)
}
