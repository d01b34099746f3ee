// Package jcelite encodes and decodes the JCE tag-length-value wire
// format. Every value on the wire is self-describing through a one- or
// two-byte tag+type header, so no schema is needed to decode: Decode
// turns any well-formed buffer into a wire.Value tree, and Encode turns
// the tree back into its compact canonical encoding.
//
// The wire package underneath exposes the streaming Parser, the
// append-only Builder and the struct field multiplexer for callers that
// want to read or write fields directly.
package jcelite

import (
	"github.com/anirudhraja/jcelite/wire"
)

// Decode parses a single top-level value from data. Input left over after
// a complete value is an error (wire.ErrTrailingBytes).
func Decode(data []byte) (wire.Value, error) {
	parser := wire.NewParser(data)
	v, err := parser.ReadValue()
	if err != nil {
		return nil, err
	}
	if !parser.Done() {
		return nil, wire.ErrTrailingBytes
	}
	return v, nil
}

// Encode encodes a value tree under tag 0.
func Encode(v wire.Value) ([]byte, error) {
	return EncodeWithTag(0, v)
}

// EncodeWithTag encodes a value tree under the given field tag.
func EncodeWithTag(tag uint8, v wire.Value) ([]byte, error) {
	builder := wire.NewBuilder()
	if err := builder.WriteValue(tag, v); err != nil {
		return nil, err
	}
	return builder.Bytes(), nil
}
