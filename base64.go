package pgxvec

import (
	"encoding/base64"
	"fmt"

	"github.com/hupe1980/pgxvec/internal/wire"
)

// The FromFloatBase64 constructors rebuild a vector from a base64-encoded
// buffer of raw big-endian float32 values. They exist for interop with
// text-only channels (JSON, environment payloads): shipping the raw item
// bytes loses no precision, unlike decimal rendering. Nothing in this
// package produces the format; it is import-only.

// VectorFromFloatBase64 creates a Vector from a base64-encoded float32
// buffer. Since the "vector" item encoding already is big-endian float32,
// the decoded bytes are adopted directly as the item buffer instead of going
// through a float slice; the result is byte-identical to the generic path.
func VectorFromFloatBase64(encoded string) (*Vector, error) {
	raw, err := decodeFloatPayload(TypeVector, encoded)
	if err != nil {
		return nil, err
	}
	if err := checkDenseDim(TypeVector, len(raw)/wire.SizeFloat32); err != nil {
		return nil, err
	}
	return &Vector{data: raw}, nil
}

// HalfVectorFromFloatBase64 creates a HalfVector from a base64-encoded
// float32 buffer, narrowing each item to half precision.
func HalfVectorFromFloatBase64(encoded string) (*HalfVector, error) {
	vals, err := floatsFromBase64(TypeHalfVector, encoded)
	if err != nil {
		return nil, err
	}
	return NewHalfVector(vals)
}

// SparseVectorFromFloatBase64 creates a SparseVector from a base64-encoded
// float32 buffer, eliding zero items.
func SparseVectorFromFloatBase64(encoded string) (*SparseVector, error) {
	vals, err := floatsFromBase64(TypeSparseVector, encoded)
	if err != nil {
		return nil, err
	}
	return NewSparseVector(vals)
}

func decodeFloatPayload(typeName, encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &ErrInvalidBinary{Type: typeName, Reason: "invalid base64 payload", cause: err}
	}
	if len(raw)%wire.SizeFloat32 != 0 {
		return nil, &ErrInvalidBinary{
			Type:   typeName,
			Reason: fmt.Sprintf("float payload of %d bytes is not a multiple of %d", len(raw), wire.SizeFloat32),
		}
	}
	return raw, nil
}

func floatsFromBase64(typeName, encoded string) ([]float64, error) {
	raw, err := decodeFloatPayload(typeName, encoded)
	if err != nil {
		return nil, err
	}
	items, err := wire.Float32s(raw)
	if err != nil {
		return nil, &ErrInvalidBinary{Type: typeName, Reason: "invalid float payload", cause: err}
	}
	out := make([]float64, len(items))
	for i, f := range items {
		out[i] = float64(f)
	}
	return out, nil
}
