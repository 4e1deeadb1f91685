package pgxvec

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hupe1980/pgxvec/internal/wire"
)

// Sparse header: i32 dimensions, i32 entry count, i32 reserved. The i32
// dimension field caps how large a sparse vector the format can declare.
const sparseHeaderSize = 3 * wire.SizeInt32

// SparseVector implements the pgvector type "sparsevec": a float32 vector
// that stores only its non-zero positions as explicit (index, value) pairs.
//
// The declared dimensionality is carried separately since it cannot be
// recovered from the elided representation. The index and value buffers
// always describe the same number of entries; indices are ascending and in
// [0, dim). The zero value is the empty vector.
type SparseVector struct {
	dim     int32
	indices []byte // big-endian int32 entries
	values  []byte // big-endian float32 entries
}

// NewSparseVector creates a SparseVector from a dense float slice. Every
// position whose value compares exactly non-equal to zero is kept, in
// ascending index order; the dimensionality is the input length. A nil or
// empty input yields the zero-dimension vector. The wire header carries the
// dimensionality as i32, so longer inputs fail with *ErrInvalidBinary.
func NewSparseVector(vals []float64) (*SparseVector, error) {
	if err := checkSparseDim(len(vals)); err != nil {
		return nil, err
	}
	var indices, values []byte
	for i, v := range vals {
		if v != 0 {
			indices = wire.AppendInt32(indices, int32(i))
			values = wire.AppendFloat32(values, float32(v))
		}
	}
	return &SparseVector{dim: int32(len(vals)), indices: indices, values: values}, nil
}

func checkSparseDim(dim int) error {
	if dim < 0 || dim > math.MaxInt32 {
		return &ErrInvalidBinary{
			Type:   TypeSparseVector,
			Reason: fmt.Sprintf("dimension %d exceeds the format maximum %d", dim, math.MaxInt32),
		}
	}
	return nil
}

// NewSparseVectorRaw creates a SparseVector from its explicit fields. It
// fails with *ErrInvalidBinary if the dimensionality is outside the i32
// header range, if the two slices describe different entry counts, or if an
// index falls outside [0, dim). Indices are expected in ascending order;
// ordering is not validated.
func NewSparseVectorRaw(dim int, indices []int32, values []float32) (*SparseVector, error) {
	if err := checkSparseDim(dim); err != nil {
		return nil, err
	}
	if len(indices) != len(values) {
		return nil, &ErrInvalidBinary{
			Type:   TypeSparseVector,
			Reason: fmt.Sprintf("%d indices paired with %d values", len(indices), len(values)),
		}
	}
	ibuf := make([]byte, 0, len(indices)*wire.SizeInt32)
	vbuf := make([]byte, 0, len(values)*wire.SizeFloat32)
	for i, idx := range indices {
		if idx < 0 || int(idx) >= dim {
			return nil, &ErrInvalidBinary{
				Type:   TypeSparseVector,
				Reason: fmt.Sprintf("index %d out of range for dimension %d", idx, dim),
			}
		}
		ibuf = wire.AppendInt32(ibuf, idx)
		vbuf = wire.AppendFloat32(vbuf, values[i])
	}
	return &SparseVector{dim: int32(dim), indices: ibuf, values: vbuf}, nil
}

// DecodeSparseVector reads a SparseVector from its pgvector binary transfer
// representation: i32 dimensions, i32 entry count, i32 reserved, then the
// index entries followed by the value entries, all big-endian. The reserved
// field is ignored. A truncated header, a negative dimension or count, a
// total length that disagrees with the declared count, or an out-of-range
// index fails with *ErrInvalidBinary. Duplicate or unordered indices are
// accepted as-is.
func DecodeSparseVector(data []byte) (*SparseVector, error) {
	if len(data) < sparseHeaderSize {
		return nil, &ErrInvalidBinary{
			Type:   TypeSparseVector,
			Reason: fmt.Sprintf("header needs %d bytes, got %d", sparseHeaderSize, len(data)),
		}
	}
	dim := wire.Int32(data)
	nnz := wire.Int32(data[4:]) // data[8:12] is reserved, ignored
	if dim < 0 || nnz < 0 {
		return nil, &ErrInvalidBinary{
			Type:   TypeSparseVector,
			Reason: fmt.Sprintf("negative dimension %d or entry count %d", dim, nnz),
		}
	}
	if want := sparseHeaderSize + 8*int64(nnz); int64(len(data)) != want {
		return nil, &ErrInvalidBinary{
			Type:   TypeSparseVector,
			Reason: fmt.Sprintf("expected %d bytes for %d entries, got %d", want, nnz, len(data)),
		}
	}

	n := int(nnz)
	indices := make([]byte, n*wire.SizeInt32)
	copy(indices, data[sparseHeaderSize:])
	values := make([]byte, n*wire.SizeFloat32)
	copy(values, data[sparseHeaderSize+len(indices):])

	for i := 0; i < n; i++ {
		if idx := wire.Int32At(indices, i); idx < 0 || idx >= dim {
			return nil, &ErrInvalidBinary{
				Type:   TypeSparseVector,
				Reason: fmt.Sprintf("index %d out of range for dimension %d", idx, dim),
			}
		}
	}
	return &SparseVector{dim: dim, indices: indices, values: values}, nil
}

// Size returns the declared number of dimensions.
func (v *SparseVector) Size() int { return int(v.dim) }

// NNZ returns the number of stored non-zero entries.
func (v *SparseVector) NNZ() int { return len(v.indices) / wire.SizeInt32 }

// Floats converts the vector to a dense float64 slice: zero everywhere
// except the stored positions, assigned in stored order. If the wire data
// carried duplicate indices, the last entry wins.
func (v *SparseVector) Floats() []float64 {
	out := make([]float64, v.Size())
	for i := 0; i < v.NNZ(); i++ {
		out[wire.Int32At(v.indices, i)] = float64(wire.Float32At(v.values, i))
	}
	return out
}

// EncodeBinary renders the vector in the pgvector binary transfer format.
func (v *SparseVector) EncodeBinary() []byte {
	buf := make([]byte, 0, sparseHeaderSize+len(v.indices)+len(v.values))
	buf = wire.AppendInt32(buf, v.dim)
	buf = wire.AppendInt32(buf, int32(v.NNZ()))
	buf = wire.AppendInt32(buf, 0)
	buf = append(buf, v.indices...)
	return append(buf, v.values...)
}

// Equal reports whether v and o declare the same dimensionality and hold
// byte-identical entries.
func (v *SparseVector) Equal(o *SparseVector) bool {
	return o != nil && v.dim == o.dim &&
		bytes.Equal(v.indices, o.indices) && bytes.Equal(v.values, o.values)
}

func (v *SparseVector) String() string {
	return fmt.Sprintf("%s(dim=%d, nnz=%d)", v.typeName(), v.Size(), v.NNZ())
}

// GoString renders the full value as the constructor call that rebuilds it.
func (v *SparseVector) GoString() string {
	return fmt.Sprintf("pgxvec.NewSparseVector(%#v)", v.Floats())
}

func (v *SparseVector) typeName() string { return TypeSparseVector }
