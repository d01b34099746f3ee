package wire

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math"
	"strings"
	"testing"
)

// mustHex decodes a spaced hex string into bytes.
func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return data
}

func TestParser_PeekHead(t *testing.T) {
	p := NewParser(mustHex(t, "0c"))
	wt, err := p.PeekType()
	if err != nil || wt != TypeZero {
		t.Fatalf("PeekType = %v, %v; want zero", wt, err)
	}
	tag, wt, err := p.PeekHead()
	if err != nil || tag != 0 || wt != TypeZero {
		t.Fatalf("PeekHead = (%d, %v, %v); want (0, zero)", tag, wt, err)
	}
	if p.Done() {
		t.Fatal("peek must not consume")
	}

	// Long-tag form: marker nibble 0xf, tag in the second byte.
	p = NewParser(mustHex(t, "fc ab"))
	if wt, err := p.PeekType(); err != nil || wt != TypeZero {
		t.Fatalf("PeekType = %v, %v; want zero", wt, err)
	}
	tag, wt, err = p.PeekHead()
	if err != nil || tag != 0xab || wt != TypeZero {
		t.Fatalf("PeekHead = (%d, %v, %v); want (171, zero)", tag, wt, err)
	}
}

func TestParser_ReadIntegers(t *testing.T) {
	p := NewParser(mustHex(t, "00 12"))
	if v, err := p.ReadInt8(); err != nil || v != 0x12 {
		t.Fatalf("ReadInt8 = %d, %v", v, err)
	}
	if !p.Done() {
		t.Fatal("input not exhausted")
	}

	p = NewParser(mustHex(t, "01 1234"))
	if v, err := p.ReadInt16(); err != nil || v != 0x1234 {
		t.Fatalf("ReadInt16 = %d, %v", v, err)
	}

	p = NewParser(mustHex(t, "02 12345678"))
	if v, err := p.ReadInt32(); err != nil || v != 0x12345678 {
		t.Fatalf("ReadInt32 = %d, %v", v, err)
	}

	p = NewParser(mustHex(t, "03 0123456789abcdef"))
	if v, err := p.ReadInt64(); err != nil || v != 0x0123456789abcdef {
		t.Fatalf("ReadInt64 = %d, %v", v, err)
	}
}

func TestParser_Widening(t *testing.T) {
	// A stored int1 satisfies any wider request with sign extension.
	for _, tc := range []struct {
		name string
		in   string
		want int64
	}{
		{"int1_as_int16", "00 12", 0x12},
		{"int1_negative_as_int64", "00 ff", -1},
		{"int2_as_int32", "01 8000", -32768},
		{"int4_as_int64", "02 80000000", -2147483648},
		{"zero_as_int64", "0c", 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser(mustHex(t, tc.in))
			v, err := p.ReadInt64()
			if err != nil {
				t.Fatalf("ReadInt64: %v", err)
			}
			if v != tc.want {
				t.Fatalf("ReadInt64 = %d, want %d", v, tc.want)
			}
		})
	}

	// The other direction is a type error.
	p := NewParser(mustHex(t, "03 0123456789abcdef"))
	if _, err := p.ReadInt16(); !errors.Is(err, ErrWrongWireType) {
		t.Fatalf("ReadInt16 over int8 data: err = %v, want ErrWrongWireType", err)
	}
}

func TestParser_ReadFloats(t *testing.T) {
	p := NewParser(mustHex(t, "04 12345678"))
	if v, err := p.ReadFloat32(); err != nil || math.Float32bits(v) != 0x12345678 {
		t.Fatalf("ReadFloat32 = %v, %v", v, err)
	}

	p = NewParser(mustHex(t, "05 0123456789abcdef"))
	if v, err := p.ReadFloat64(); err != nil || math.Float64bits(v) != 0x0123456789abcdef {
		t.Fatalf("ReadFloat64 = %v, %v", v, err)
	}

	// Stored single widens by value.
	p = NewParser(mustHex(t, "04 3fc00000")) // 1.5f
	if v, err := p.ReadFloat64(); err != nil || v != 1.5 {
		t.Fatalf("ReadFloat64 over float4 = %v, %v; want 1.5", v, err)
	}

	// A stored double does not narrow.
	p = NewParser(mustHex(t, "05 0123456789abcdef"))
	if _, err := p.ReadFloat32(); !errors.Is(err, ErrWrongWireType) {
		t.Fatalf("ReadFloat32 over float8: err = %v, want ErrWrongWireType", err)
	}
}

func TestParser_ReadStrings(t *testing.T) {
	p := NewParser(mustHex(t, "06 04 31323334"))
	if v, err := p.ReadShortString(); err != nil || v != "1234" {
		t.Fatalf("ReadShortString = %q, %v", v, err)
	}

	long := append(mustHex(t, "07 0000012c"), bytes.Repeat([]byte{0x7f}, 300)...)
	p = NewParser(long)
	if v, err := p.ReadLongString(); err != nil || v != strings.Repeat("\x7f", 300) {
		t.Fatalf("ReadLongString len = %d, %v", len(v), err)
	}

	// ReadString takes either width.
	p = NewParser(mustHex(t, "06 04 31323334"))
	if v, err := p.ReadString(); err != nil || v != "1234" {
		t.Fatalf("ReadString = %q, %v", v, err)
	}
	p = NewParser(mustHex(t, "0c"))
	if v, err := p.ReadString(); err != nil || v != "" {
		t.Fatalf("ReadString over zero = %q, %v", v, err)
	}

	// The width-specific readers reject the other width.
	p = NewParser(long)
	if _, err := p.ReadShortString(); !errors.Is(err, ErrWrongWireType) {
		t.Fatalf("ReadShortString over long-string: err = %v", err)
	}
}

func TestParser_InvalidUTF8(t *testing.T) {
	p := NewParser(mustHex(t, "06 02 ff fe"))
	if _, err := p.ReadString(); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("err = %v, want ErrInvalidUTF8", err)
	}
	// The malformed payload has been consumed by the time the error is
	// reported; the cursor is at the end of the payload.
	if !p.Done() {
		t.Fatalf("cursor at %d, want past payload", p.Pos())
	}
}

func TestParser_ReadBytes(t *testing.T) {
	p := NewParser(mustHex(t, "0d 00 0008 0123456789abcdef"))
	v, err := p.ReadBytes()
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(v, mustHex(t, "0123456789abcdef")) {
		t.Fatalf("ReadBytes = %x", v)
	}
	if !p.Done() {
		t.Fatal("input not exhausted")
	}

	// The inner header must be Int1-typed regardless of the length's
	// magnitude.
	p = NewParser(mustHex(t, "0d 01 0008 0123456789abcdef"))
	if _, err := p.ReadBytes(); !errors.Is(err, ErrWrongWireType) {
		t.Fatalf("bad inner header: err = %v, want ErrWrongWireType", err)
	}

	p = NewParser(mustHex(t, "0c"))
	if v, err := p.ReadBytes(); err != nil || len(v) != 0 {
		t.Fatalf("ReadBytes over zero = %x, %v", v, err)
	}
}

func TestParser_Containers(t *testing.T) {
	p := NewParser(mustHex(t,
		"08 0002"+
			"06 05 6669727374"+
			"16 0b 66697273745f76616c7565"+
			"06 06 7365636f6e64"+
			"16 0c 7365636f6e645f76616c7565"))
	n, err := p.ReadMapLen()
	if err != nil || n != 2 {
		t.Fatalf("ReadMapLen = %d, %v", n, err)
	}
	for _, want := range []string{"first", "first_value", "second", "second_value"} {
		v, err := p.ReadString()
		if err != nil || v != want {
			t.Fatalf("ReadString = %q, %v; want %q", v, err, want)
		}
	}
	if !p.Done() {
		t.Fatal("input not exhausted")
	}

	p = NewParser(mustHex(t, "09 0002 06 05 6669727374 06 06 7365636f6e64"))
	if n, err := p.ReadListLen(); err != nil || n != 2 {
		t.Fatalf("ReadListLen = %d, %v", n, err)
	}

	// A negative narrowed count is malformed.
	p = NewParser(mustHex(t, "08 00 ff"))
	if _, err := p.ReadMapLen(); !errors.Is(err, ErrLengthOverflow) {
		t.Fatalf("negative count: err = %v, want ErrLengthOverflow", err)
	}
}

func TestParser_Struct(t *testing.T) {
	p := NewParser(mustHex(t, "0a 1012 213456 0b"))
	if err := p.ReadStructBegin(); err != nil {
		t.Fatalf("ReadStructBegin: %v", err)
	}
	if tag, err := p.PeekTag(); err != nil || tag != 1 {
		t.Fatalf("PeekTag = %d, %v", tag, err)
	}
	if v, err := p.ReadInt8(); err != nil || v != 0x12 {
		t.Fatalf("ReadInt8 = %d, %v", v, err)
	}
	if tag, err := p.PeekTag(); err != nil || tag != 2 {
		t.Fatalf("PeekTag = %d, %v", tag, err)
	}
	if v, err := p.ReadInt16(); err != nil || v != 0x3456 {
		t.Fatalf("ReadInt16 = %d, %v", v, err)
	}
	if err := p.ReadStructEnd(); err != nil {
		t.Fatalf("ReadStructEnd: %v", err)
	}
	if !p.Done() {
		t.Fatal("input not exhausted")
	}
}

func TestParser_LongTag(t *testing.T) {
	p := NewParser(mustHex(t, "f0 0f 12"))
	if tag, err := p.PeekTag(); err != nil || tag != 0x0f {
		t.Fatalf("PeekTag = %d, %v", tag, err)
	}
	if v, err := p.ReadInt8(); err != nil || v != 0x12 {
		t.Fatalf("ReadInt8 = %d, %v", v, err)
	}
	if !p.Done() {
		t.Fatal("input not exhausted")
	}
}

func TestParser_Skip(t *testing.T) {
	// Each case is one skippable value followed by the probe field
	// "10 12" (tag 1, int1 0x12): if the skip consumed exactly one
	// value, the probe decodes cleanly.
	cases := []struct {
		name string
		in   string
	}{
		{"int1", "00 12"},
		{"int8", "03 0123456789abcdef"},
		{"float4", "04 12345678"},
		{"short_string", "06 04 31323334"},
		{"map", "08 0002 06 05 6669727374 16 0b 66697273745f76616c7565 06 06 7365636f6e64 16 0c 7365636f6e645f76616c7565"},
		{"list", "09 0002 06 05 6669727374 06 06 7365636f6e64"},
		{"struct", "0a 00 34 10 34 0b"},
		{"nested_struct", "0a 0a 00 34 0b 0b"},
		{"zero", "0c"},
		{"bytes", "0d 00 0008 0123456789abcdef"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser(append(mustHex(t, tc.in), mustHex(t, "10 12")...))
			if err := p.Skip(); err != nil {
				t.Fatalf("Skip: %v", err)
			}
			if v, err := p.ReadInt8(); err != nil || v != 0x12 {
				t.Fatalf("probe after skip = %d, %v", v, err)
			}
			if !p.Done() {
				t.Fatal("input not exhausted")
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	// Truncated payload.
	p := NewParser(mustHex(t, "03 1234"))
	if _, err := p.ReadInt64(); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("short int8 payload: err = %v, want ErrTruncatedInput", err)
	}

	// Truncated element inside a declared list.
	p = NewParser(mustHex(t, "09 0002 06 05 6669727374"))
	if n, err := p.ReadListLen(); err != nil || n != 2 {
		t.Fatalf("ReadListLen = %d, %v", n, err)
	}
	if v, err := p.ReadString(); err != nil || v != "first" {
		t.Fatalf("ReadString = %q, %v", v, err)
	}
	if _, err := p.ReadString(); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("missing element: err = %v, want ErrTruncatedInput", err)
	}

	// Unknown type nibble.
	p = NewParser(mustHex(t, "0e"))
	if _, err := p.PeekType(); !errors.Is(err, ErrUnknownWireType) {
		t.Fatalf("nibble 14: err = %v, want ErrUnknownWireType", err)
	}

	// Empty input.
	p = NewParser(nil)
	if _, _, err := p.PeekHead(); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("empty input: err = %v, want ErrTruncatedInput", err)
	}

	// Long-tag header cut short.
	p = NewParser(mustHex(t, "f0"))
	if _, _, err := p.PeekHead(); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("cut long tag: err = %v, want ErrTruncatedInput", err)
	}
}

func TestParser_ErrorCarriesOffset(t *testing.T) {
	p := NewParser(mustHex(t, "00 12 03 1234"))
	if v, err := p.ReadInt8(); err != nil || v != 0x12 {
		t.Fatalf("ReadInt8 = %d, %v", v, err)
	}
	_, err := p.ReadInt64()
	var oe *OffsetError
	if !errors.As(err, &oe) {
		t.Fatalf("err = %v, want *OffsetError", err)
	}
	if oe.Offset != 3 {
		t.Fatalf("offset = %d, want 3", oe.Offset)
	}
	if !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("unwrapped err = %v, want ErrTruncatedInput", err)
	}
}

func TestParser_DepthGuard(t *testing.T) {
	// Lists nested beyond MaxNestingDepth must fail instead of
	// recursing without bound.
	var buf []byte
	for i := 0; i < MaxNestingDepth+5; i++ {
		buf = append(buf, mustHex(t, "09 0001")...) // list of one element
	}
	buf = append(buf, 0x0c)

	p := NewParser(buf)
	if err := p.Skip(); !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("Skip: err = %v, want ErrNestingTooDeep", err)
	}

	p = NewParser(buf)
	if _, err := p.ReadValue(); !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("ReadValue: err = %v, want ErrNestingTooDeep", err)
	}
}
