package wire

// MaxNestingDepth bounds recursion while skipping or decoding nested
// maps, lists and structs. The format itself has no depth limit, so a
// hard cap is needed to keep hostile input from exhausting the stack.
const MaxNestingDepth = 64

// Parser is a read cursor over a JCE byte buffer.
//
// Every successful read advances the cursor by exactly the bytes it
// consumed. A failed read leaves the cursor in an unspecified position:
// parsing is not atomic, and callers must discard the parser (or re-create
// it from a saved offset) after any error.
//
// The parser never mutates the input buffer, so the same buffer may be
// shared by any number of parsers running concurrently. A single Parser
// instance is not safe for concurrent use.
type Parser struct {
	buf   []byte
	pos   int
	depth int
}

// NewParser creates a parser positioned at the start of data.
func NewParser(data []byte) *Parser {
	return &Parser{buf: data}
}

// Done reports whether the entire input has been consumed.
func (p *Parser) Done() bool {
	return p.pos >= len(p.buf)
}

// Pos returns the current byte offset into the input.
func (p *Parser) Pos() int {
	return p.pos
}

// errAt attaches the current offset to a wire error.
func (p *Parser) errAt(err error) error {
	return &OffsetError{Offset: p.pos, Err: err}
}

// ===== NON-CONSUMING READS =====

// PeekHead returns the tag and wire type of the next field without
// consuming it.
func (p *Parser) PeekHead() (uint8, WireType, error) {
	tag, wt, _, err := DecodeHead(p.buf[p.pos:])
	if err != nil {
		return 0, 0, p.errAt(err)
	}
	return tag, wt, nil
}

// PeekTag returns the tag of the next field without consuming it.
func (p *Parser) PeekTag() (uint8, error) {
	tag, _, err := p.PeekHead()
	return tag, err
}

// PeekType returns the wire type of the next field without consuming it.
func (p *Parser) PeekType() (WireType, error) {
	if p.pos >= len(p.buf) {
		return 0, p.errAt(ErrTruncatedInput)
	}
	wt, err := ParseWireType(p.buf[p.pos] & 0x0f)
	if err != nil {
		return 0, p.errAt(err)
	}
	return wt, nil
}

// ===== CONSUMING PRIMITIVES =====

// readHead consumes a field header and returns its tag and wire type.
func (p *Parser) readHead() (uint8, WireType, error) {
	tag, wt, n, err := DecodeHead(p.buf[p.pos:])
	if err != nil {
		return 0, 0, p.errAt(err)
	}
	p.pos += n
	return tag, wt, nil
}

// take consumes exactly n bytes of payload and returns them as a subslice
// of the input buffer. The returned slice aliases the input and stays valid
// for its lifetime.
func (p *Parser) take(n int) ([]byte, error) {
	if n < 0 || p.pos+n > len(p.buf) {
		return nil, p.errAt(ErrTruncatedInput)
	}
	out := p.buf[p.pos : p.pos+n]
	p.pos += n
	return out, nil
}

// enter tracks recursion depth for nested container decoding.
func (p *Parser) enter() error {
	if p.depth >= MaxNestingDepth {
		return p.errAt(ErrNestingTooDeep)
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// ===== STRUCT DELIMITERS / ZERO =====

// ReadStructBegin consumes a struct-begin header. The header carries no
// payload; fields follow until a struct-end header.
func (p *Parser) ReadStructBegin() error {
	_, wt, err := p.readHead()
	if err != nil {
		return err
	}
	if wt != TypeStructBegin {
		return p.errAt(ErrWrongWireType)
	}
	return nil
}

// ReadStructEnd consumes a struct-end header.
func (p *Parser) ReadStructEnd() error {
	_, wt, err := p.readHead()
	if err != nil {
		return err
	}
	if wt != TypeStructEnd {
		return p.errAt(ErrWrongWireType)
	}
	return nil
}

// ReadZero consumes a zero marker.
func (p *Parser) ReadZero() error {
	_, wt, err := p.readHead()
	if err != nil {
		return err
	}
	if wt != TypeZero {
		return p.errAt(ErrWrongWireType)
	}
	return nil
}

// ===== SKIP =====

// Skip fully consumes the next value, whatever its wire type. Nested maps,
// lists and structs are skipped recursively, which is what makes decoding
// tolerant of unknown field tags.
func (p *Parser) Skip() error {
	wt, err := p.PeekType()
	if err != nil {
		return err
	}
	switch wt {
	case TypeInt1:
		_, err = p.ReadInt8()
	case TypeInt2:
		_, err = p.ReadInt16()
	case TypeInt4:
		_, err = p.ReadInt32()
	case TypeInt8:
		_, err = p.ReadInt64()
	case TypeFloat4:
		_, err = p.ReadFloat32()
	case TypeFloat8:
		_, err = p.ReadFloat64()
	case TypeShortString:
		_, err = p.ReadShortString()
	case TypeLongString:
		_, err = p.ReadLongString()
	case TypeMap:
		if err = p.enter(); err != nil {
			return err
		}
		defer p.leave()
		var count int
		if count, err = p.ReadMapLen(); err != nil {
			return err
		}
		for i := 0; i < 2*count; i++ {
			if err = p.Skip(); err != nil {
				return err
			}
		}
	case TypeList:
		if err = p.enter(); err != nil {
			return err
		}
		defer p.leave()
		var count int
		if count, err = p.ReadListLen(); err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err = p.Skip(); err != nil {
				return err
			}
		}
	case TypeStructBegin:
		if err = p.enter(); err != nil {
			return err
		}
		defer p.leave()
		if err = p.ReadStructBegin(); err != nil {
			return err
		}
		for {
			wt, err = p.PeekType()
			if err != nil {
				return err
			}
			if wt == TypeStructEnd {
				return p.ReadStructEnd()
			}
			if err = p.Skip(); err != nil {
				return err
			}
		}
	case TypeStructEnd:
		err = p.ReadStructEnd()
	case TypeZero:
		err = p.ReadZero()
	case TypeBytes:
		_, err = p.ReadBytes()
	}
	return err
}
