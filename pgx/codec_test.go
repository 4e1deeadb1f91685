package pgx

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pgxvec"
)

func mustVector(tb testing.TB, vals []float64) *pgxvec.Vector {
	tb.Helper()
	v, err := pgxvec.NewVector(vals)
	require.NoError(tb, err)
	return v
}

func TestVectorCodec_EncodePlan(t *testing.T) {
	m := pgtype.NewMap()
	c := VectorCodec{}

	plan := c.PlanEncode(m, 0, pgtype.BinaryFormatCode, []float64{1, 2})
	require.NotNil(t, plan)

	buf, err := plan.Encode([]float64{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, mustVector(t, []float64{1, 2}).EncodeBinary(), buf)

	// Native values encode too.
	v := mustVector(t, []float64{3})
	buf, err = plan.Encode(v, nil)
	require.NoError(t, err)
	assert.Equal(t, v.EncodeBinary(), buf)

	// nil stands for SQL NULL.
	buf, err = plan.Encode(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, buf)
}

func TestVectorCodec_EncodePlan_Rejections(t *testing.T) {
	m := pgtype.NewMap()
	c := VectorCodec{}

	assert.Nil(t, c.PlanEncode(m, 0, pgtype.TextFormatCode, []float64{1}))
	assert.Nil(t, c.PlanEncode(m, 0, pgtype.BinaryFormatCode, "nope"))

	plan := c.PlanEncode(m, 0, pgtype.BinaryFormatCode, []any{1.0})
	require.NotNil(t, plan)
	_, err := plan.Encode([]any{1, 2.0}, nil)

	var e *pgxvec.ErrUnsupportedValue
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "int", e.TypeName)
}

func TestVectorCodec_ScanPlan(t *testing.T) {
	m := pgtype.NewMap()
	c := VectorCodec{}
	src := mustVector(t, []float64{1, -2.5}).EncodeBinary()

	var v pgxvec.Vector
	plan := c.PlanScan(m, 0, pgtype.BinaryFormatCode, &v)
	require.NotNil(t, plan)
	require.NoError(t, plan.Scan(src, &v))
	assert.Equal(t, []float64{1, -2.5}, v.Floats())

	var fs []float64
	plan = c.PlanScan(m, 0, pgtype.BinaryFormatCode, &fs)
	require.NotNil(t, plan)
	require.NoError(t, plan.Scan(src, &fs))
	assert.Equal(t, []float64{1, -2.5}, fs)

	// NULL clears the targets.
	require.NoError(t, plan.Scan(nil, &fs))
	assert.Nil(t, fs)

	assert.Nil(t, c.PlanScan(m, 0, pgtype.TextFormatCode, &v))
	assert.Nil(t, c.PlanScan(m, 0, pgtype.BinaryFormatCode, &struct{}{}))
}

func TestCodec_ScanPlan_VecInterface(t *testing.T) {
	m := pgtype.NewMap()

	t.Run("vector", func(t *testing.T) {
		src := mustVector(t, []float64{1, -2.5}).EncodeBinary()

		var v pgxvec.Vec
		plan := VectorCodec{}.PlanScan(m, 0, pgtype.BinaryFormatCode, &v)
		require.NotNil(t, plan)
		require.NoError(t, plan.Scan(src, &v))
		require.IsType(t, (*pgxvec.Vector)(nil), v)
		assert.Equal(t, []float64{1, -2.5}, v.Floats())

		// NULL clears the interface target.
		require.NoError(t, plan.Scan(nil, &v))
		assert.Nil(t, v)
	})

	t.Run("halfvec", func(t *testing.T) {
		h, err := pgxvec.NewHalfVector([]float64{0.5})
		require.NoError(t, err)

		var v pgxvec.Vec
		plan := HalfVectorCodec{}.PlanScan(m, 0, pgtype.BinaryFormatCode, &v)
		require.NotNil(t, plan)
		require.NoError(t, plan.Scan(h.EncodeBinary(), &v))
		require.IsType(t, (*pgxvec.HalfVector)(nil), v)
		assert.Equal(t, []float64{0.5}, v.Floats())
	})

	t.Run("sparsevec", func(t *testing.T) {
		s, err := pgxvec.NewSparseVector([]float64{0, 2})
		require.NoError(t, err)

		var v pgxvec.Vec
		plan := SparseVectorCodec{}.PlanScan(m, 0, pgtype.BinaryFormatCode, &v)
		require.NotNil(t, plan)
		require.NoError(t, plan.Scan(s.EncodeBinary(), &v))
		require.IsType(t, (*pgxvec.SparseVector)(nil), v)
		assert.Equal(t, []float64{0, 2}, v.Floats())
	})
}

func TestHalfVectorCodec_RoundTrip(t *testing.T) {
	m := pgtype.NewMap()
	c := HalfVectorCodec{}

	plan := c.PlanEncode(m, 0, pgtype.BinaryFormatCode, []float64{1, 0.5})
	require.NotNil(t, plan)
	buf, err := plan.Encode([]float64{1, 0.5}, nil)
	require.NoError(t, err)

	got, err := c.DecodeValue(m, 0, pgtype.BinaryFormatCode, buf)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5}, got.(*pgxvec.HalfVector).Floats())
}

func TestSparseVectorCodec_RoundTrip(t *testing.T) {
	m := pgtype.NewMap()
	c := SparseVectorCodec{}
	in := []float64{0, 3.5, 0, -2}

	plan := c.PlanEncode(m, 0, pgtype.BinaryFormatCode, in)
	require.NotNil(t, plan)
	buf, err := plan.Encode(in, nil)
	require.NoError(t, err)

	var v pgxvec.SparseVector
	sp := c.PlanScan(m, 0, pgtype.BinaryFormatCode, &v)
	require.NotNil(t, sp)
	require.NoError(t, sp.Scan(buf, &v))
	assert.Equal(t, 2, v.NNZ())
	assert.Equal(t, in, v.Floats())
}

func TestCodec_DecodeValue_NullAndFormat(t *testing.T) {
	m := pgtype.NewMap()
	c := VectorCodec{}

	got, err := c.DecodeValue(m, 0, pgtype.BinaryFormatCode, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = c.DecodeValue(m, 0, pgtype.TextFormatCode, []byte("[1,2]"))
	assert.Error(t, err)
}

func TestCodec_DecodeValue_Malformed(t *testing.T) {
	m := pgtype.NewMap()
	c := VectorCodec{}

	_, err := c.DecodeValue(m, 0, pgtype.BinaryFormatCode, []byte{0x00, 0x03, 0x00, 0x00, 0x01})
	var e *pgxvec.ErrInvalidBinary
	require.ErrorAs(t, err, &e)
}

func TestCodec_DecodeDatabaseSQLValue(t *testing.T) {
	m := pgtype.NewMap()
	c := VectorCodec{}
	src := mustVector(t, []float64{4}).EncodeBinary()

	got, err := c.DecodeDatabaseSQLValue(m, 0, pgtype.BinaryFormatCode, src)
	require.NoError(t, err)
	assert.Equal(t, src, got)

	got, err = c.DecodeDatabaseSQLValue(m, 0, pgtype.BinaryFormatCode, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCodec_FormatSupport(t *testing.T) {
	for _, c := range []pgtype.Codec{VectorCodec{}, HalfVectorCodec{}, SparseVectorCodec{}} {
		assert.True(t, c.FormatSupported(pgtype.BinaryFormatCode))
		assert.False(t, c.FormatSupported(pgtype.TextFormatCode))
		assert.Equal(t, int16(pgtype.BinaryFormatCode), c.PreferredFormat())
	}
}
