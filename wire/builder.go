package wire

// Builder is an append-only accumulator for JCE bytes. Lengths and counts
// are written eagerly from caller-supplied values; nothing is ever
// backpatched.
//
// A Builder is exclusively owned by the encode that created it and is not
// safe for concurrent use.
type Builder struct {
	buf []byte
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		buf: make([]byte, 0),
	}
}

// Bytes returns the accumulated encoding.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// appendHead appends a field header.
func (b *Builder) appendHead(tag uint8, wt WireType) {
	b.buf = AppendHead(b.buf, tag, wt)
}

// WriteZero writes the single-header zero marker under tag.
func (b *Builder) WriteZero(tag uint8) {
	b.appendHead(tag, TypeZero)
}

// WriteStructBegin opens a struct under the given tag. The builder does not
// track field tags; use StructWriter for duplicate-tag detection.
func (b *Builder) WriteStructBegin(tag uint8) {
	b.appendHead(tag, TypeStructBegin)
}

// WriteStructEnd writes the struct terminator. Its tag is fixed at 0.
func (b *Builder) WriteStructEnd() {
	b.appendHead(0, TypeStructEnd)
}
