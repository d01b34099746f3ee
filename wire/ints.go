package wire

import (
	"encoding/binary"
	"math"
)

// Integers travel as big-endian two's-complement in 1, 2, 4 or 8 bytes.
// The builder always picks the narrowest width that represents the value
// (zero collapses to the zero marker), and the parser widens any stored
// width up to the requested one with sign extension. A stored width wider
// than the requested type is ErrWrongWireType.

// ===== DECODER METHODS =====

// ReadInt8 reads an Int1 or zero-marker value.
func (p *Parser) ReadInt8() (int8, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return 0, err
	}
	switch wt {
	case TypeZero:
		return 0, nil
	case TypeInt1:
		buf, err := p.take(1)
		if err != nil {
			return 0, err
		}
		return int8(buf[0]), nil
	default:
		return 0, p.errAt(ErrWrongWireType)
	}
}

// ReadInt16 reads a value stored in at most 2 bytes, sign-extending
// narrower encodings.
func (p *Parser) ReadInt16() (int16, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return 0, err
	}
	switch wt {
	case TypeZero:
		return 0, nil
	case TypeInt1:
		buf, err := p.take(1)
		if err != nil {
			return 0, err
		}
		return int16(int8(buf[0])), nil
	case TypeInt2:
		buf, err := p.take(2)
		if err != nil {
			return 0, err
		}
		return int16(binary.BigEndian.Uint16(buf)), nil
	default:
		return 0, p.errAt(ErrWrongWireType)
	}
}

// ReadInt32 reads a value stored in at most 4 bytes, sign-extending
// narrower encodings.
func (p *Parser) ReadInt32() (int32, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return 0, err
	}
	switch wt {
	case TypeZero:
		return 0, nil
	case TypeInt1:
		buf, err := p.take(1)
		if err != nil {
			return 0, err
		}
		return int32(int8(buf[0])), nil
	case TypeInt2:
		buf, err := p.take(2)
		if err != nil {
			return 0, err
		}
		return int32(int16(binary.BigEndian.Uint16(buf))), nil
	case TypeInt4:
		buf, err := p.take(4)
		if err != nil {
			return 0, err
		}
		return int32(binary.BigEndian.Uint32(buf)), nil
	default:
		return 0, p.errAt(ErrWrongWireType)
	}
}

// ReadInt64 reads a value stored in at most 8 bytes, sign-extending
// narrower encodings.
func (p *Parser) ReadInt64() (int64, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return 0, err
	}
	switch wt {
	case TypeZero:
		return 0, nil
	case TypeInt1:
		buf, err := p.take(1)
		if err != nil {
			return 0, err
		}
		return int64(int8(buf[0])), nil
	case TypeInt2:
		buf, err := p.take(2)
		if err != nil {
			return 0, err
		}
		return int64(int16(binary.BigEndian.Uint16(buf))), nil
	case TypeInt4:
		buf, err := p.take(4)
		if err != nil {
			return 0, err
		}
		return int64(int32(binary.BigEndian.Uint32(buf))), nil
	case TypeInt8:
		buf, err := p.take(8)
		if err != nil {
			return 0, err
		}
		return int64(binary.BigEndian.Uint64(buf)), nil
	default:
		return 0, p.errAt(ErrWrongWireType)
	}
}

// ===== ENCODER METHODS =====

// WriteInt8 writes v under tag, collapsing zero to the zero marker.
func (b *Builder) WriteInt8(tag uint8, v int8) {
	if v == 0 {
		b.WriteZero(tag)
		return
	}
	b.appendHead(tag, TypeInt1)
	b.buf = append(b.buf, byte(v))
}

// WriteInt16 writes v under tag using the narrowest width.
func (b *Builder) WriteInt16(tag uint8, v int16) {
	if math.MinInt8 <= v && v <= math.MaxInt8 {
		b.WriteInt8(tag, int8(v))
		return
	}
	b.appendHead(tag, TypeInt2)
	b.buf = binary.BigEndian.AppendUint16(b.buf, uint16(v))
}

// WriteInt32 writes v under tag using the narrowest width.
func (b *Builder) WriteInt32(tag uint8, v int32) {
	if math.MinInt16 <= v && v <= math.MaxInt16 {
		b.WriteInt16(tag, int16(v))
		return
	}
	b.appendHead(tag, TypeInt4)
	b.buf = binary.BigEndian.AppendUint32(b.buf, uint32(v))
}

// WriteInt64 writes v under tag using the narrowest width. The narrowing is
// unconditional: decoders rely on it to bound their own buffers, so it is a
// wire-compatibility requirement rather than an optimization.
func (b *Builder) WriteInt64(tag uint8, v int64) {
	if math.MinInt32 <= v && v <= math.MaxInt32 {
		b.WriteInt32(tag, int32(v))
		return
	}
	b.appendHead(tag, TypeInt8)
	b.buf = binary.BigEndian.AppendUint64(b.buf, uint64(v))
}

// WriteUint64 writes v under tag. The wire carries signed integers only, so
// values above math.MaxInt64 fail with ErrIntegerOutOfRange.
func (b *Builder) WriteUint64(tag uint8, v uint64) error {
	if v > math.MaxInt64 {
		return ErrIntegerOutOfRange
	}
	b.WriteInt64(tag, int64(v))
	return nil
}
