package pgxvec

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hupe1980/pgxvec/internal/wire"
)

// PostgreSQL type names of the pgvector extension types this package
// marshals, and the matching cosine-distance operator classes for building
// index DDL.
const (
	TypeVector       = "vector"
	TypeHalfVector   = "halfvec"
	TypeSparseVector = "sparsevec"

	VectorCosineOps       = "vector_cosine_ops"
	HalfVectorCosineOps   = "halfvec_cosine_ops"
	SparseVectorCosineOps = "sparsevec_cosine_ops"
)

// Vec is the capability shared by every pgvector column value. The set of
// implementations is closed: *Vector, *HalfVector and *SparseVector.
//
// Vec values are immutable once constructed and safe for concurrent use.
type Vec interface {
	// Size returns the number of dimensions.
	Size() int
	// Floats converts the vector to a flat slice of float64 values.
	Floats() []float64
	// EncodeBinary renders the value in the pgvector binary transfer format.
	EncodeBinary() []byte

	typeName() string
}

var (
	_ Vec = (*Vector)(nil)
	_ Vec = (*HalfVector)(nil)
	_ Vec = (*SparseVector)(nil)
)

// Vector implements the pgvector type "vector": a dense vector of float32
// items. It owns a single buffer of big-endian items; the buffer length is
// always a multiple of the item width. The zero value is the empty vector.
type Vector struct {
	data []byte
}

// NewVector creates a Vector from a float slice, narrowing each value to
// float32. A nil or empty input yields the zero-dimension vector. The wire
// header carries the dimensionality as u16, so inputs longer than 65535
// fail with *ErrInvalidBinary.
func NewVector(vals []float64) (*Vector, error) {
	if err := checkDenseDim(TypeVector, len(vals)); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, len(vals)*wire.SizeFloat32)
	for _, v := range vals {
		buf = wire.AppendFloat32(buf, float32(v))
	}
	return &Vector{data: buf}, nil
}

// DecodeVector reads a Vector from its pgvector binary transfer
// representation: u16 dimensions, u16 reserved, then one big-endian float32
// per dimension. The reserved field is ignored. A payload whose length
// disagrees with the declared dimensionality fails with *ErrInvalidBinary.
func DecodeVector(data []byte) (*Vector, error) {
	buf, err := decodeDense(TypeVector, wire.SizeFloat32, data)
	if err != nil {
		return nil, err
	}
	return &Vector{data: buf}, nil
}

// Size returns the number of dimensions.
func (v *Vector) Size() int { return len(v.data) / wire.SizeFloat32 }

// Floats converts the vector to a flat slice of float64 values in stored
// order.
func (v *Vector) Floats() []float64 {
	out := make([]float64, v.Size())
	for i := range out {
		out[i] = float64(wire.Float32At(v.data, i))
	}
	return out
}

// EncodeBinary renders the vector in the pgvector binary transfer format.
func (v *Vector) EncodeBinary() []byte {
	return encodeDense(v.Size(), v.data)
}

// Equal reports whether v and o hold byte-identical items.
func (v *Vector) Equal(o *Vector) bool {
	return o != nil && bytes.Equal(v.data, o.data)
}

func (v *Vector) String() string {
	return fmt.Sprintf("%s(dim=%d)", v.typeName(), v.Size())
}

// GoString renders the full value as the constructor call that rebuilds it.
func (v *Vector) GoString() string {
	return fmt.Sprintf("pgxvec.NewVector(%#v)", v.Floats())
}

func (v *Vector) typeName() string { return TypeVector }

// HalfVector implements the pgvector type "halfvec": a dense vector of
// IEEE-754 half-precision items. Layout and semantics match Vector except
// for the two-byte item width; construction rounds each input to the nearest
// representable half-precision value. The zero value is the empty vector.
type HalfVector struct {
	data []byte
}

// NewHalfVector creates a HalfVector from a float slice, narrowing each
// value to half precision. A nil or empty input yields the zero-dimension
// vector. The wire header carries the dimensionality as u16, so inputs
// longer than 65535 fail with *ErrInvalidBinary.
func NewHalfVector(vals []float64) (*HalfVector, error) {
	if err := checkDenseDim(TypeHalfVector, len(vals)); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, len(vals)*wire.SizeFloat16)
	for _, v := range vals {
		buf = wire.AppendFloat16(buf, float32(v))
	}
	return &HalfVector{data: buf}, nil
}

// DecodeHalfVector reads a HalfVector from its pgvector binary transfer
// representation. See DecodeVector; items are big-endian float16.
func DecodeHalfVector(data []byte) (*HalfVector, error) {
	buf, err := decodeDense(TypeHalfVector, wire.SizeFloat16, data)
	if err != nil {
		return nil, err
	}
	return &HalfVector{data: buf}, nil
}

// Size returns the number of dimensions.
func (v *HalfVector) Size() int { return len(v.data) / wire.SizeFloat16 }

// Floats converts the vector to a flat slice of float64 values in stored
// order. Widening from half precision is lossless.
func (v *HalfVector) Floats() []float64 {
	out := make([]float64, v.Size())
	for i := range out {
		out[i] = float64(wire.Float16At(v.data, i))
	}
	return out
}

// EncodeBinary renders the vector in the pgvector binary transfer format.
func (v *HalfVector) EncodeBinary() []byte {
	return encodeDense(v.Size(), v.data)
}

// Equal reports whether v and o hold byte-identical items.
func (v *HalfVector) Equal(o *HalfVector) bool {
	return o != nil && bytes.Equal(v.data, o.data)
}

func (v *HalfVector) String() string {
	return fmt.Sprintf("%s(dim=%d)", v.typeName(), v.Size())
}

// GoString renders the full value as the constructor call that rebuilds it.
func (v *HalfVector) GoString() string {
	return fmt.Sprintf("pgxvec.NewHalfVector(%#v)", v.Floats())
}

func (v *HalfVector) typeName() string { return TypeHalfVector }

// Dense header: u16 dimensions, u16 reserved. The u16 dimension field also
// caps how large a dense vector the format can carry.
const (
	denseHeaderSize = 2 * wire.SizeUint16
	maxDenseDim     = math.MaxUint16
)

func checkDenseDim(typeName string, dim int) error {
	if dim > maxDenseDim {
		return &ErrInvalidBinary{
			Type:   typeName,
			Reason: fmt.Sprintf("dimension %d exceeds the format maximum %d", dim, maxDenseDim),
		}
	}
	return nil
}

// encodeDense prepends the shared dense header to an item buffer:
// u16 dimensions, u16 reserved (always written as zero).
func encodeDense(dim int, items []byte) []byte {
	buf := make([]byte, 0, denseHeaderSize+len(items))
	buf = wire.AppendUint16(buf, uint16(dim))
	buf = wire.AppendUint16(buf, 0)
	return append(buf, items...)
}

// decodeDense validates the shared dense header and returns a copy of the
// item buffer, so decoded vectors never alias a driver's read buffer.
func decodeDense(typeName string, itemSize int, data []byte) ([]byte, error) {
	if len(data) < denseHeaderSize {
		return nil, &ErrInvalidBinary{
			Type:   typeName,
			Reason: fmt.Sprintf("header needs %d bytes, got %d", denseHeaderSize, len(data)),
		}
	}
	dim := int(wire.Uint16(data)) // data[2:4] is reserved, ignored
	if want := denseHeaderSize + itemSize*dim; len(data) != want {
		return nil, &ErrInvalidBinary{
			Type:   typeName,
			Reason: fmt.Sprintf("expected %d * %d item bytes, got %d", itemSize, dim, len(data)-denseHeaderSize),
		}
	}
	buf := make([]byte, len(data)-denseHeaderSize)
	copy(buf, data[denseHeaderSize:])
	return buf, nil
}
