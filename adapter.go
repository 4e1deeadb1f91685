package pgxvec

import "fmt"

// valueKind discriminates the states of a boundary Value.
type valueKind uint8

const (
	valueAbsent valueKind = iota
	valueNative
	valueFloats
)

// Value is the tri-state value a driver boundary exchanges for a vector
// column: SQL NULL, an already-constructed vector, or a plain float slice
// that still needs a kind. Build one with Null, ValueOf or ValueFloats, or
// translate an untyped driver value with ToValue.
//
// The encode and decode hooks below are stateless pure transforms; they may
// be called concurrently without coordination.
type Value struct {
	kind   valueKind
	vec    Vec
	floats []float64
}

// Null returns the absent Value. It encodes to SQL NULL on every kind.
func Null() Value { return Value{} }

// ValueOf wraps an already-constructed vector.
func ValueOf(v Vec) Value { return Value{kind: valueNative, vec: v} }

// ValueFloats wraps a plain float slice. The target kind decides how it is
// narrowed and laid out; an empty slice encodes the empty vector, not NULL.
func ValueFloats(vals []float64) Value { return Value{kind: valueFloats, floats: vals} }

// IsNull reports whether the value is the absent state.
func (v Value) IsNull() bool { return v.kind == valueAbsent }

// ToValue translates an untyped driver-boundary value into a Value. Accepted
// shapes: nil, any Vec implementation, []float64, []float32, and []any whose
// elements are floats. Anything else fails with *ErrUnsupportedValue naming
// the offending type; for a slice of non-floats the element type is named.
func ToValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Vec:
		return ValueOf(x), nil
	case []float64:
		return ValueFloats(x), nil
	case []float32:
		out := make([]float64, len(x))
		for i, f := range x {
			out[i] = float64(f)
		}
		return ValueFloats(out), nil
	case []any:
		out := make([]float64, len(x))
		for i, item := range x {
			switch f := item.(type) {
			case float64:
				out[i] = f
			case float32:
				out[i] = float64(f)
			default:
				return Value{}, &ErrUnsupportedValue{TypeName: fmt.Sprintf("%T", item), Item: true}
			}
		}
		return ValueFloats(out), nil
	default:
		return Value{}, &ErrUnsupportedValue{TypeName: fmt.Sprintf("%T", v)}
	}
}

// EncodeVectorValue renders v as "vector" wire bytes. A nil slice with nil
// error stands for SQL NULL. A native value of a different kind fails with
// *ErrUnsupportedValue: its wire bytes would not decode as "vector".
func EncodeVectorValue(v Value) ([]byte, error) {
	return encodeValue(v, TypeVector, func(vals []float64) (Vec, error) { return NewVector(vals) })
}

// EncodeHalfVectorValue renders v as "halfvec" wire bytes. A nil slice with
// nil error stands for SQL NULL. A native value of a different kind fails
// with *ErrUnsupportedValue.
func EncodeHalfVectorValue(v Value) ([]byte, error) {
	return encodeValue(v, TypeHalfVector, func(vals []float64) (Vec, error) { return NewHalfVector(vals) })
}

// EncodeSparseVectorValue renders v as "sparsevec" wire bytes. A nil slice
// with nil error stands for SQL NULL. A native value of a different kind
// fails with *ErrUnsupportedValue.
func EncodeSparseVectorValue(v Value) ([]byte, error) {
	return encodeValue(v, TypeSparseVector, func(vals []float64) (Vec, error) { return NewSparseVector(vals) })
}

func encodeValue(v Value, typeName string, fromFloats func([]float64) (Vec, error)) ([]byte, error) {
	switch v.kind {
	case valueNative:
		if v.vec.typeName() != typeName {
			// A wrong-kind vector would encode cleanly but corrupt the
			// column; reject it like any other unsupported value.
			return nil, &ErrUnsupportedValue{TypeName: fmt.Sprintf("%T", v.vec)}
		}
		return v.vec.EncodeBinary(), nil
	case valueFloats:
		vec, err := fromFloats(v.floats)
		if err != nil {
			return nil, err
		}
		return vec.EncodeBinary(), nil
	default:
		return nil, nil // SQL NULL passes through
	}
}

// DecodeVectorValue reads "vector" wire bytes. nil data stands for SQL NULL
// and passes through as a nil vector.
func DecodeVectorValue(data []byte) (*Vector, error) {
	if data == nil {
		return nil, nil
	}
	return DecodeVector(data)
}

// DecodeHalfVectorValue reads "halfvec" wire bytes. nil data stands for SQL
// NULL and passes through as a nil vector.
func DecodeHalfVectorValue(data []byte) (*HalfVector, error) {
	if data == nil {
		return nil, nil
	}
	return DecodeHalfVector(data)
}

// DecodeSparseVectorValue reads "sparsevec" wire bytes. nil data stands for
// SQL NULL and passes through as a nil vector.
func DecodeSparseVectorValue(data []byte) (*SparseVector, error) {
	if data == nil {
		return nil, nil
	}
	return DecodeSparseVector(data)
}
