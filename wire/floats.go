package wire

import (
	"encoding/binary"
	"math"
)

// Floats travel as big-endian IEEE-754. There is no zero-elision for
// floats: 0.0 keeps its full encoding so the bit pattern survives a
// round trip. ReadFloat64 widens a stored single by value, not by bit
// pattern.

// ===== DECODER METHODS =====

// ReadFloat32 reads a Float4 or zero-marker value.
func (p *Parser) ReadFloat32() (float32, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return 0, err
	}
	switch wt {
	case TypeZero:
		return 0, nil
	case TypeFloat4:
		buf, err := p.take(4)
		if err != nil {
			return 0, err
		}
		return math.Float32frombits(binary.BigEndian.Uint32(buf)), nil
	default:
		return 0, p.errAt(ErrWrongWireType)
	}
}

// ReadFloat64 reads a Float8 value, widening a stored Float4.
func (p *Parser) ReadFloat64() (float64, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return 0, err
	}
	switch wt {
	case TypeZero:
		return 0, nil
	case TypeFloat4:
		buf, err := p.take(4)
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(buf))), nil
	case TypeFloat8:
		buf, err := p.take(8)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(buf)), nil
	default:
		return 0, p.errAt(ErrWrongWireType)
	}
}

// ===== ENCODER METHODS =====

// WriteFloat32 writes v under tag as a Float4.
func (b *Builder) WriteFloat32(tag uint8, v float32) {
	b.appendHead(tag, TypeFloat4)
	b.buf = binary.BigEndian.AppendUint32(b.buf, math.Float32bits(v))
}

// WriteFloat64 writes v under tag as a Float8.
func (b *Builder) WriteFloat64(tag uint8, v float64) {
	b.appendHead(tag, TypeFloat8)
	b.buf = binary.BigEndian.AppendUint64(b.buf, math.Float64bits(v))
}
