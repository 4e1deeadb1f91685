package pgx

import (
	"database/sql/driver"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hupe1980/pgxvec"
)

// The three codecs below speak only the binary format: the pgvector text
// format is a separate grammar and not part of this module. Encoding accepts
// whatever pgxvec.ToValue accepts; scanning targets the native vector type,
// a *pgxvec.Vec, or a plain *[]float64.

// encodePlanFunc adapts a pgxvec per-kind encode hook to pgtype.EncodePlan.
type encodePlanFunc func(pgxvec.Value) ([]byte, error)

func (fn encodePlanFunc) Encode(value any, buf []byte) ([]byte, error) {
	v, err := pgxvec.ToValue(value)
	if err != nil {
		return nil, err
	}
	out, err := fn(v)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil // SQL NULL
	}
	return append(buf, out...), nil
}

// scanPlanFunc adapts a scan function to pgtype.ScanPlan.
type scanPlanFunc func(src []byte, target any) error

func (fn scanPlanFunc) Scan(src []byte, target any) error { return fn(src, target) }

// VectorCodec is a pgtype.Codec for the pgvector type "vector".
type VectorCodec struct{}

func (VectorCodec) FormatSupported(format int16) bool { return format == pgtype.BinaryFormatCode }

func (VectorCodec) PreferredFormat() int16 { return pgtype.BinaryFormatCode }

func (VectorCodec) PlanEncode(m *pgtype.Map, oid uint32, format int16, value any) pgtype.EncodePlan {
	if format != pgtype.BinaryFormatCode {
		return nil
	}
	if _, err := pgxvec.ToValue(value); err != nil {
		return nil
	}
	return encodePlanFunc(pgxvec.EncodeVectorValue)
}

func (VectorCodec) PlanScan(m *pgtype.Map, oid uint32, format int16, target any) pgtype.ScanPlan {
	if format != pgtype.BinaryFormatCode {
		return nil
	}
	switch target.(type) {
	case *pgxvec.Vector, *pgxvec.Vec, *[]float64:
		return scanPlanFunc(scanVector)
	}
	return nil
}

func (c VectorCodec) DecodeDatabaseSQLValue(m *pgtype.Map, oid uint32, format int16, src []byte) (driver.Value, error) {
	return decodeDriverValue(c, m, oid, format, src)
}

func (VectorCodec) DecodeValue(m *pgtype.Map, oid uint32, format int16, src []byte) (any, error) {
	if src == nil {
		return nil, nil
	}
	if format != pgtype.BinaryFormatCode {
		return nil, errUnsupportedFormat(format)
	}
	return pgxvec.DecodeVector(src)
}

func scanVector(src []byte, target any) error {
	switch t := target.(type) {
	case *pgxvec.Vector:
		v, err := pgxvec.DecodeVectorValue(src)
		if err != nil {
			return err
		}
		if v == nil {
			*t = pgxvec.Vector{}
			return nil
		}
		*t = *v
		return nil
	case *pgxvec.Vec:
		return scanVec(t, src, func(data []byte) (pgxvec.Vec, error) {
			return pgxvec.DecodeVector(data)
		})
	case *[]float64:
		return scanFloats(t, src, func(data []byte) (pgxvec.Vec, error) {
			return pgxvec.DecodeVector(data)
		})
	}
	return errUnsupportedTarget(target)
}

// HalfVectorCodec is a pgtype.Codec for the pgvector type "halfvec".
type HalfVectorCodec struct{}

func (HalfVectorCodec) FormatSupported(format int16) bool { return format == pgtype.BinaryFormatCode }

func (HalfVectorCodec) PreferredFormat() int16 { return pgtype.BinaryFormatCode }

func (HalfVectorCodec) PlanEncode(m *pgtype.Map, oid uint32, format int16, value any) pgtype.EncodePlan {
	if format != pgtype.BinaryFormatCode {
		return nil
	}
	if _, err := pgxvec.ToValue(value); err != nil {
		return nil
	}
	return encodePlanFunc(pgxvec.EncodeHalfVectorValue)
}

func (HalfVectorCodec) PlanScan(m *pgtype.Map, oid uint32, format int16, target any) pgtype.ScanPlan {
	if format != pgtype.BinaryFormatCode {
		return nil
	}
	switch target.(type) {
	case *pgxvec.HalfVector, *pgxvec.Vec, *[]float64:
		return scanPlanFunc(scanHalfVector)
	}
	return nil
}

func (c HalfVectorCodec) DecodeDatabaseSQLValue(m *pgtype.Map, oid uint32, format int16, src []byte) (driver.Value, error) {
	return decodeDriverValue(c, m, oid, format, src)
}

func (HalfVectorCodec) DecodeValue(m *pgtype.Map, oid uint32, format int16, src []byte) (any, error) {
	if src == nil {
		return nil, nil
	}
	if format != pgtype.BinaryFormatCode {
		return nil, errUnsupportedFormat(format)
	}
	return pgxvec.DecodeHalfVector(src)
}

func scanHalfVector(src []byte, target any) error {
	switch t := target.(type) {
	case *pgxvec.HalfVector:
		v, err := pgxvec.DecodeHalfVectorValue(src)
		if err != nil {
			return err
		}
		if v == nil {
			*t = pgxvec.HalfVector{}
			return nil
		}
		*t = *v
		return nil
	case *pgxvec.Vec:
		return scanVec(t, src, func(data []byte) (pgxvec.Vec, error) {
			return pgxvec.DecodeHalfVector(data)
		})
	case *[]float64:
		return scanFloats(t, src, func(data []byte) (pgxvec.Vec, error) {
			return pgxvec.DecodeHalfVector(data)
		})
	}
	return errUnsupportedTarget(target)
}

// SparseVectorCodec is a pgtype.Codec for the pgvector type "sparsevec".
type SparseVectorCodec struct{}

func (SparseVectorCodec) FormatSupported(format int16) bool {
	return format == pgtype.BinaryFormatCode
}

func (SparseVectorCodec) PreferredFormat() int16 { return pgtype.BinaryFormatCode }

func (SparseVectorCodec) PlanEncode(m *pgtype.Map, oid uint32, format int16, value any) pgtype.EncodePlan {
	if format != pgtype.BinaryFormatCode {
		return nil
	}
	if _, err := pgxvec.ToValue(value); err != nil {
		return nil
	}
	return encodePlanFunc(pgxvec.EncodeSparseVectorValue)
}

func (SparseVectorCodec) PlanScan(m *pgtype.Map, oid uint32, format int16, target any) pgtype.ScanPlan {
	if format != pgtype.BinaryFormatCode {
		return nil
	}
	switch target.(type) {
	case *pgxvec.SparseVector, *pgxvec.Vec, *[]float64:
		return scanPlanFunc(scanSparseVector)
	}
	return nil
}

func (c SparseVectorCodec) DecodeDatabaseSQLValue(m *pgtype.Map, oid uint32, format int16, src []byte) (driver.Value, error) {
	return decodeDriverValue(c, m, oid, format, src)
}

func (SparseVectorCodec) DecodeValue(m *pgtype.Map, oid uint32, format int16, src []byte) (any, error) {
	if src == nil {
		return nil, nil
	}
	if format != pgtype.BinaryFormatCode {
		return nil, errUnsupportedFormat(format)
	}
	return pgxvec.DecodeSparseVector(src)
}

func scanSparseVector(src []byte, target any) error {
	switch t := target.(type) {
	case *pgxvec.SparseVector:
		v, err := pgxvec.DecodeSparseVectorValue(src)
		if err != nil {
			return err
		}
		if v == nil {
			*t = pgxvec.SparseVector{}
			return nil
		}
		*t = *v
		return nil
	case *pgxvec.Vec:
		return scanVec(t, src, func(data []byte) (pgxvec.Vec, error) {
			return pgxvec.DecodeSparseVector(data)
		})
	case *[]float64:
		return scanFloats(t, src, func(data []byte) (pgxvec.Vec, error) {
			return pgxvec.DecodeSparseVector(data)
		})
	}
	return errUnsupportedTarget(target)
}

func scanVec(t *pgxvec.Vec, src []byte, decode func([]byte) (pgxvec.Vec, error)) error {
	if src == nil {
		*t = nil
		return nil
	}
	v, err := decode(src)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func scanFloats(t *[]float64, src []byte, decode func([]byte) (pgxvec.Vec, error)) error {
	if src == nil {
		*t = nil
		return nil
	}
	v, err := decode(src)
	if err != nil {
		return err
	}
	*t = v.Floats()
	return nil
}

func decodeDriverValue(c pgtype.Codec, m *pgtype.Map, oid uint32, format int16, src []byte) (driver.Value, error) {
	v, err := c.DecodeValue(m, oid, format, src)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(pgxvec.Vec).EncodeBinary(), nil
}

func errUnsupportedFormat(format int16) error {
	return fmt.Errorf("pgxvec: unsupported format code %d (binary only)", format)
}

func errUnsupportedTarget(target any) error {
	return fmt.Errorf("pgxvec: unsupported scan target %T", target)
}
