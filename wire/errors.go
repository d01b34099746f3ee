package wire

import (
	"errors"
	"fmt"
)

// Wire format errors
var (
	ErrTruncatedInput    = errors.New("truncated input")
	ErrTrailingBytes     = errors.New("trailing bytes after top-level value")
	ErrUnknownWireType   = errors.New("unknown wire type")
	ErrWrongWireType     = errors.New("wrong wire type for requested value")
	ErrInvalidUTF8       = errors.New("string payload is not valid UTF-8")
	ErrDuplicateFieldTag = errors.New("duplicate field tag in struct")
	ErrLengthOverflow    = errors.New("length does not fit target integer width")
	ErrIntegerOutOfRange = errors.New("integer value out of representable range")
	ErrOutputTooLong     = errors.New("value exceeds maximum encodable length")
	ErrNestingTooDeep    = errors.New("nesting exceeds maximum depth")
)

// OffsetError reports a decode failure together with the byte offset the
// parser had reached when it failed. The offset points at the read that
// failed, not necessarily at the first malformed byte: a bad UTF-8 payload,
// for example, is reported after its bytes have been consumed.
type OffsetError struct {
	Offset int   // byte offset into the input buffer
	Err    error // underlying error
}

// Error implements the error interface.
func (e *OffsetError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *OffsetError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *OffsetError) Is(target error) bool {
	_, ok := target.(*OffsetError)
	return ok
}
