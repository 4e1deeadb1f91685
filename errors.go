package pgxvec

import "fmt"

// ErrInvalidBinary indicates wire bytes, or explicitly supplied buffers, that
// do not satisfy the layout declared for a pgvector type: a dense payload
// whose length disagrees with its header, a sparse payload with mismatched
// index/value counts, or a float buffer with a truncated item.
//
// A malformed payload is always rejected; it is never truncated or padded
// into a decodable one. The original underlying error (if any) can be
// accessed via errors.Unwrap.
type ErrInvalidBinary struct {
	Type   string // pgvector type name: vector, halfvec or sparsevec
	Reason string
	cause  error
}

func (e *ErrInvalidBinary) Error() string {
	return fmt.Sprintf("%s: malformed binary value: %s", e.Type, e.Reason)
}

func (e *ErrInvalidBinary) Unwrap() error { return e.cause }

// ErrUnsupportedValue indicates a value offered to the encode boundary that
// is none of the accepted shapes: nil, a native vector, or a float slice.
type ErrUnsupportedValue struct {
	TypeName string
	// Item is true when the offending type was an element of an otherwise
	// acceptable slice.
	Item bool
}

func (e *ErrUnsupportedValue) Error() string {
	if e.Item {
		return fmt.Sprintf("unsupported slice item type: %s", e.TypeName)
	}
	return fmt.Sprintf("unsupported value type: %s", e.TypeName)
}
