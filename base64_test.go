package pgxvec

import (
	"encoding/base64"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pgxvec/internal/wire"
)

func floatBase64(vals ...float32) string {
	var raw []byte
	for _, v := range vals {
		raw = wire.AppendFloat32(raw, v)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestVectorFromFloatBase64(t *testing.T) {
	encoded := floatBase64(1.0, -2.5, 0.0)

	v, err := VectorFromFloatBase64(encoded)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2.5, 0}, v.Floats())

	// The fast path adopts the payload directly; it must match going
	// through the float-slice constructor byte for byte.
	assert.True(t, v.Equal(mustVector(t, []float64{1, -2.5, 0})))
}

func TestHalfVectorFromFloatBase64(t *testing.T) {
	v, err := HalfVectorFromFloatBase64(floatBase64(1.0, -2.5, 0.0))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2.5, 0}, v.Floats())
	assert.True(t, v.Equal(mustHalfVector(t, []float64{1, -2.5, 0})))
}

func TestSparseVectorFromFloatBase64(t *testing.T) {
	v, err := SparseVectorFromFloatBase64(floatBase64(1.0, -2.5, 0.0))
	require.NoError(t, err)
	assert.Equal(t, 3, v.Size())
	assert.Equal(t, 2, v.NNZ())
	assert.Equal(t, []float64{1, -2.5, 0}, v.Floats())
}

func TestFromFloatBase64_Empty(t *testing.T) {
	v, err := VectorFromFloatBase64("")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Size())
}

func TestFromFloatBase64_InvalidBase64(t *testing.T) {
	_, err := VectorFromFloatBase64("not*base64")

	var e *ErrInvalidBinary
	require.ErrorAs(t, err, &e)
	assert.Equal(t, TypeVector, e.Type)
}

func TestFromFloatBase64_DimensionOverflow(t *testing.T) {
	// 65536 items fit the payload grammar but not the u16 wire header; the
	// fast path must apply the same cap as the constructors.
	encoded := base64.StdEncoding.EncodeToString(make([]byte, (math.MaxUint16+1)*wire.SizeFloat32))

	_, err := VectorFromFloatBase64(encoded)
	var e *ErrInvalidBinary
	require.ErrorAs(t, err, &e)
	assert.Equal(t, TypeVector, e.Type)

	_, err = HalfVectorFromFloatBase64(encoded)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, TypeHalfVector, e.Type)
}

func TestFromFloatBase64_TruncatedItem(t *testing.T) {
	// 6 raw bytes: one and a half float32 items.
	encoded := base64.StdEncoding.EncodeToString(make([]byte, 6))

	for name, decode := range map[string]func(string) error{
		"vector":    func(s string) error { _, err := VectorFromFloatBase64(s); return err },
		"halfvec":   func(s string) error { _, err := HalfVectorFromFloatBase64(s); return err },
		"sparsevec": func(s string) error { _, err := SparseVectorFromFloatBase64(s); return err },
	} {
		t.Run(name, func(t *testing.T) {
			err := decode(encoded)
			var e *ErrInvalidBinary
			require.ErrorAs(t, err, &e)
		})
	}
}
