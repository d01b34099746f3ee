package wire

import (
	"math"
)

// Maps and lists carry only a count on the wire: a marker header, the
// entry/element count as a tagged narrowed i32 (tag 0), then the entries
// themselves, each independently headered. Map entries are encoded key
// first (tag 0) then value (tag 1); on the decode side ordering alone
// disambiguates key from value. Neither side verifies the count against
// the entries actually written or read - that is the caller's contract.

// ===== DECODER METHODS =====

// ReadMapLen consumes a map header and returns the entry count. The caller
// must read exactly 2*count values (key, value, key, value, ...).
func (p *Parser) ReadMapLen() (int, error) {
	return p.readContainerLen(TypeMap)
}

// ReadListLen consumes a list header and returns the element count. The
// caller must read exactly count values.
func (p *Parser) ReadListLen() (int, error) {
	return p.readContainerLen(TypeList)
}

func (p *Parser) readContainerLen(marker WireType) (int, error) {
	_, wt, err := p.readHead()
	if err != nil {
		return 0, err
	}
	switch wt {
	case TypeZero:
		return 0, nil
	case marker:
		n, err := p.ReadInt32()
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, p.errAt(ErrLengthOverflow)
		}
		return int(n), nil
	default:
		return 0, p.errAt(ErrWrongWireType)
	}
}

// ===== ENCODER METHODS =====

// WriteMapBegin writes a map header under tag for count entries. The
// caller must follow with exactly count (key, value) pairs.
func (b *Builder) WriteMapBegin(tag uint8, count int) error {
	return b.writeContainerBegin(tag, TypeMap, count)
}

// WriteListBegin writes a list header under tag for count elements. The
// caller must follow with exactly count elements.
func (b *Builder) WriteListBegin(tag uint8, count int) error {
	return b.writeContainerBegin(tag, TypeList, count)
}

func (b *Builder) writeContainerBegin(tag uint8, marker WireType, count int) error {
	if count < 0 {
		return ErrLengthOverflow
	}
	if count > math.MaxInt32 {
		return ErrOutputTooLong
	}
	b.appendHead(tag, marker)
	b.WriteInt32(0, int32(count))
	return nil
}
