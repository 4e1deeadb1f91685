// Package wire packs and unpacks the fixed-width big-endian fields shared by
// the pgvector binary formats. The extension transfers every multi-byte field
// big-endian regardless of host byte order, so all helpers here are
// big-endian by construction.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/pgxvec/internal/f16"
)

// Item widths in bytes.
const (
	SizeUint16  = 2
	SizeInt32   = 4
	SizeFloat32 = 4
	SizeFloat16 = 2
)

// AppendUint16 appends v in big-endian byte order.
func AppendUint16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

// AppendInt32 appends v in big-endian byte order.
func AppendInt32(b []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

// AppendFloat32 appends the IEEE-754 single-precision encoding of v.
func AppendFloat32(b []byte, v float32) []byte {
	return binary.BigEndian.AppendUint32(b, math.Float32bits(v))
}

// AppendFloat16 narrows v to IEEE-754 half precision and appends the
// two-byte encoding. Narrowing rounds to nearest, ties to even.
func AppendFloat16(b []byte, v float32) []byte {
	return binary.BigEndian.AppendUint16(b, f16.ToBits(v))
}

// Uint16 reads a big-endian uint16 from the start of b.
func Uint16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// Int32 reads a big-endian int32 from the start of b.
func Int32(b []byte) int32 {
	return int32(binary.BigEndian.Uint32(b))
}

// Float32At reads the i-th big-endian float32 item of b.
func Float32At(b []byte, i int) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b[i*SizeFloat32:]))
}

// Float16At reads the i-th big-endian float16 item of b, widened to float32.
func Float16At(b []byte, i int) float32 {
	return f16.FromBits(binary.BigEndian.Uint16(b[i*SizeFloat16:]))
}

// Int32At reads the i-th big-endian int32 item of b.
func Int32At(b []byte, i int) int32 {
	return int32(binary.BigEndian.Uint32(b[i*SizeInt32:]))
}

// Float32s unpacks b as a sequence of big-endian float32 items. It fails if
// the buffer length is not a multiple of the item width.
func Float32s(b []byte) ([]float32, error) {
	if len(b)%SizeFloat32 != 0 {
		return nil, fmt.Errorf("buffer length %d is not a multiple of %d", len(b), SizeFloat32)
	}
	out := make([]float32, len(b)/SizeFloat32)
	for i := range out {
		out[i] = Float32At(b, i)
	}
	return out, nil
}
