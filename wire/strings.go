package wire

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// MaxStringLen is the longest string payload the format can carry: the
// long-string form uses a 4-byte unsigned length prefix. WriteString trims
// anything beyond it.
const MaxStringLen = math.MaxUint32

// ===== DECODER METHODS =====

// readStringPayload consumes an n-byte payload and validates it as UTF-8.
// On validation failure the malformed bytes have already been consumed.
func (p *Parser) readStringPayload(n int) (string, error) {
	buf, err := p.take(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", p.errAt(ErrInvalidUTF8)
	}
	return string(buf), nil
}

// ReadShortString reads a short-string or zero-marker value.
func (p *Parser) ReadShortString() (string, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return "", err
	}
	switch wt {
	case TypeZero:
		return "", nil
	case TypeShortString:
		buf, err := p.take(1)
		if err != nil {
			return "", err
		}
		return p.readStringPayload(int(buf[0]))
	default:
		return "", p.errAt(ErrWrongWireType)
	}
}

// ReadLongString reads a long-string or zero-marker value.
func (p *Parser) ReadLongString() (string, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return "", err
	}
	switch wt {
	case TypeZero:
		return "", nil
	case TypeLongString:
		buf, err := p.take(4)
		if err != nil {
			return "", err
		}
		return p.readStringPayload(int(binary.BigEndian.Uint32(buf)))
	default:
		return "", p.errAt(ErrWrongWireType)
	}
}

// ReadString reads a string of either width.
func (p *Parser) ReadString() (string, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return "", err
	}
	switch wt {
	case TypeZero:
		return "", nil
	case TypeShortString:
		buf, err := p.take(1)
		if err != nil {
			return "", err
		}
		return p.readStringPayload(int(buf[0]))
	case TypeLongString:
		buf, err := p.take(4)
		if err != nil {
			return "", err
		}
		return p.readStringPayload(int(binary.BigEndian.Uint32(buf)))
	default:
		return "", p.errAt(ErrWrongWireType)
	}
}

// ===== ENCODER METHODS =====

// WriteString writes v under tag, picking the short form for payloads of
// up to 255 bytes. The empty string collapses to the zero marker. Payloads
// beyond MaxStringLen are silently trimmed; callers that prefer a hard
// failure should guard the length themselves, as Builder.WriteValue does.
func (b *Builder) WriteString(tag uint8, v string) {
	if len(v) == 0 {
		b.WriteZero(tag)
		return
	}
	if len(v) <= 255 {
		b.appendHead(tag, TypeShortString)
		b.buf = append(b.buf, byte(len(v)))
		b.buf = append(b.buf, v...)
		return
	}
	n := uint64(len(v))
	if n > MaxStringLen {
		n = MaxStringLen
	}
	b.appendHead(tag, TypeLongString)
	b.buf = binary.BigEndian.AppendUint32(b.buf, uint32(n))
	b.buf = append(b.buf, v[:n]...)
}
