package wire

// The field multiplexer sits on top of Parser and Builder while a single
// struct is in flight. It owns the per-record seen-tag set: duplicate tags
// are rejected on both sides, unknown tags can be skipped on the decode
// side, and the struct-end terminator is recognized and consumed here
// rather than by the typed readers.

// ===== DECODE SIDE =====

// StructReader scans the fields of one struct. Create it after the
// struct-begin header has been consumed; it consumes the struct-end header
// itself. A StructReader is scoped to exactly one struct instance and must
// not be reused.
type StructReader struct {
	parser *Parser
	seen   map[uint8]bool
	expect map[uint8]bool // nil means every tag is handed to the caller
	done   bool
}

// NewStructReader creates a reader that hands every field to the caller.
func NewStructReader(p *Parser) *StructReader {
	return &StructReader{
		parser: p,
		seen:   make(map[uint8]bool),
	}
}

// NewStructReaderExpecting creates a reader that hands only the given tags
// to the caller and silently skips every other field. A duplicate in the
// expected set is rejected up front.
func NewStructReaderExpecting(p *Parser, tags []uint8) (*StructReader, error) {
	expect := make(map[uint8]bool, len(tags))
	for _, tag := range tags {
		if expect[tag] {
			return nil, ErrDuplicateFieldTag
		}
		expect[tag] = true
	}
	return &StructReader{
		parser: p,
		seen:   make(map[uint8]bool),
		expect: expect,
	}, nil
}

// NextField returns the tag of the next field the caller should decode.
// ok is false once the struct terminator has been consumed. The field's
// value is left unconsumed: the caller must decode (or Skip) exactly one
// value before calling NextField again. A tag repeated within the struct
// fails with ErrDuplicateFieldTag.
func (sr *StructReader) NextField() (tag uint8, ok bool, err error) {
	for {
		if sr.done {
			return 0, false, nil
		}
		tag, wt, err := sr.parser.PeekHead()
		if err != nil {
			return 0, false, err
		}
		if wt == TypeStructEnd {
			if err := sr.parser.ReadStructEnd(); err != nil {
				return 0, false, err
			}
			sr.done = true
			return 0, false, nil
		}
		if sr.seen[tag] {
			return 0, false, sr.parser.errAt(ErrDuplicateFieldTag)
		}
		sr.seen[tag] = true
		if sr.expect != nil && !sr.expect[tag] {
			if err := sr.parser.Skip(); err != nil {
				return 0, false, err
			}
			continue
		}
		return tag, true, nil
	}
}

// ===== ENCODE SIDE =====

// StructWriter emits the fields of one struct, rejecting duplicate tags
// before any bytes for the offending field are written. Bytes already
// flushed for earlier fields stay in the builder: a failed field write is
// not atomic at the byte-stream level, mirroring the parser's contract.
type StructWriter struct {
	builder *Builder
	seen    map[uint8]bool
}

// NewStructWriter opens a struct under tag and returns a writer for its
// fields. Call End to emit the terminator.
func NewStructWriter(b *Builder, tag uint8) *StructWriter {
	b.WriteStructBegin(tag)
	return &StructWriter{
		builder: b,
		seen:    make(map[uint8]bool),
	}
}

// claim reserves a field tag, failing if it was already written.
func (sw *StructWriter) claim(tag uint8) error {
	if sw.seen[tag] {
		return ErrDuplicateFieldTag
	}
	sw.seen[tag] = true
	return nil
}

// End emits the struct terminator.
func (sw *StructWriter) End() {
	sw.builder.WriteStructEnd()
}

// WriteInt8 writes an int8 field.
func (sw *StructWriter) WriteInt8(tag uint8, v int8) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	sw.builder.WriteInt8(tag, v)
	return nil
}

// WriteInt16 writes an int16 field.
func (sw *StructWriter) WriteInt16(tag uint8, v int16) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	sw.builder.WriteInt16(tag, v)
	return nil
}

// WriteInt32 writes an int32 field.
func (sw *StructWriter) WriteInt32(tag uint8, v int32) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	sw.builder.WriteInt32(tag, v)
	return nil
}

// WriteInt64 writes an int64 field.
func (sw *StructWriter) WriteInt64(tag uint8, v int64) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	sw.builder.WriteInt64(tag, v)
	return nil
}

// WriteFloat32 writes a float32 field.
func (sw *StructWriter) WriteFloat32(tag uint8, v float32) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	sw.builder.WriteFloat32(tag, v)
	return nil
}

// WriteFloat64 writes a float64 field.
func (sw *StructWriter) WriteFloat64(tag uint8, v float64) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	sw.builder.WriteFloat64(tag, v)
	return nil
}

// WriteString writes a string field.
func (sw *StructWriter) WriteString(tag uint8, v string) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	sw.builder.WriteString(tag, v)
	return nil
}

// WriteBytes writes a bytes field.
func (sw *StructWriter) WriteBytes(tag uint8, v []byte) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	sw.builder.WriteBytes(tag, v)
	return nil
}

// WriteZero writes a zero-marker field.
func (sw *StructWriter) WriteZero(tag uint8) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	sw.builder.WriteZero(tag)
	return nil
}

// WriteMapBegin writes a map field header for count entries; the caller
// emits the entries on the underlying builder.
func (sw *StructWriter) WriteMapBegin(tag uint8, count int) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	return sw.builder.WriteMapBegin(tag, count)
}

// WriteListBegin writes a list field header for count elements; the caller
// emits the elements on the underlying builder.
func (sw *StructWriter) WriteListBegin(tag uint8, count int) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	return sw.builder.WriteListBegin(tag, count)
}

// Struct opens a nested struct field and returns a writer for it. The
// nested writer has its own tag scope.
func (sw *StructWriter) Struct(tag uint8) (*StructWriter, error) {
	if err := sw.claim(tag); err != nil {
		return nil, err
	}
	return NewStructWriter(sw.builder, tag), nil
}

// WriteValue writes a generic Value field.
func (sw *StructWriter) WriteValue(tag uint8, v Value) error {
	if err := sw.claim(tag); err != nil {
		return err
	}
	return sw.builder.WriteValue(tag, v)
}
