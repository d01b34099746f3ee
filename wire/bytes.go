package wire

import (
	"math"
)

// MaxBytesLen is the longest byte blob the format can carry: the length is
// a signed 32-bit integer on the wire. WriteBytes trims anything beyond it.
const MaxBytesLen = math.MaxInt32

// A bytes value is a Bytes header, a mandatory inner Int1-typed header
// (tag 0), the length as an ordinary tagged narrowed i32, and the raw
// payload. The inner header's wire type is fixed shape; only the length
// integer itself narrows.

// ===== DECODER METHODS =====

// ReadBytes reads a bytes blob or zero marker. The returned slice aliases
// the input buffer; callers that outlive the buffer must copy it.
func (p *Parser) ReadBytes() ([]byte, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return nil, err
	}
	switch wt {
	case TypeZero:
		return []byte{}, nil
	case TypeBytes:
		_, inner, err := p.readHead()
		if err != nil {
			return nil, err
		}
		if inner != TypeInt1 {
			return nil, p.errAt(ErrWrongWireType)
		}
		n, err := p.ReadInt32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, p.errAt(ErrLengthOverflow)
		}
		return p.take(int(n))
	default:
		return nil, p.errAt(ErrWrongWireType)
	}
}

// ===== ENCODER METHODS =====

// WriteBytes writes v under tag. Payloads beyond MaxBytesLen are silently
// trimmed; Builder.WriteValue guards the length and fails instead.
func (b *Builder) WriteBytes(tag uint8, v []byte) {
	n := len(v)
	if n > MaxBytesLen {
		n = MaxBytesLen
	}
	b.appendHead(tag, TypeBytes)
	b.appendHead(0, TypeInt1)
	b.WriteInt32(0, int32(n))
	b.buf = append(b.buf, v[:n]...)
}
