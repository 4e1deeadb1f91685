// Package f16 converts between IEEE-754 binary16 bit-patterns and float32.
//
// The pgvector halfvec wire format stores items as raw binary16, while all
// arithmetic in Go happens at float32 or wider. This package covers exactly
// that boundary: scalar conversions that are correct for normals, subnormals,
// signed zero, infinities and NaN.
package f16

import "math"

// binary16 layout: 1 sign bit, 5 exponent bits (bias 15), 10 fraction bits.
const (
	signMask16 = 0x8000
	expMask16  = 0x7C00
	fracMask16 = 0x03FF

	expMask32  = 0x7F800000
	fracMask32 = 0x007FFFFF
)

// FromBits converts a binary16 bit-pattern to the float32 with the same value.
// Every binary16 value is exactly representable in float32, so the conversion
// is lossless.
func FromBits(b uint16) float32 {
	sign := uint32(b&signMask16) << 16
	exp := (b & expMask16) >> 10
	frac := uint32(b & fracMask16)

	switch exp {
	case 0:
		if frac == 0 {
			return math.Float32frombits(sign) // +/- zero
		}
		// Subnormal: shift the fraction up until the leading 1 surfaces,
		// then encode as a float32 normal.
		e := int32(-14)
		for frac&0x0400 == 0 {
			frac <<= 1
			e--
		}
		frac &= fracMask16
		return math.Float32frombits(sign | uint32(e+127)<<23 | frac<<13)
	case 0x1F:
		if frac == 0 {
			return math.Float32frombits(sign | expMask32)
		}
		return math.Float32frombits(sign | expMask32 | frac<<13)
	default:
		return math.Float32frombits(sign | (uint32(exp)-15+127)<<23 | frac<<13)
	}
}

// ToBits converts a float32 to the nearest binary16 bit-pattern, rounding
// ties to even. Values beyond the binary16 range become infinities; float32
// subnormals underflow to signed zero.
func ToBits(f float32) uint16 {
	u := math.Float32bits(f)
	sign := uint16(u>>16) & signMask16
	exp := int32((u & expMask32) >> 23)
	frac := u & fracMask32

	if exp == 0xFF {
		if frac == 0 {
			return sign | expMask16
		}
		// Quiet the NaN and keep the top payload bits.
		return sign | expMask16 | 0x0200 | uint16(frac>>13)&fracMask16
	}
	if exp == 0 {
		return sign // zero; float32 subnormals are below binary16 range
	}

	e := exp - 127 + 15
	if e >= 0x1F {
		return sign | expMask16
	}
	if e <= 0 {
		if e < -10 {
			return sign
		}
		// Subnormal result: make the implicit 1 explicit, shift down to a
		// 10-bit fraction and round to nearest, ties to even.
		m := frac | 0x00800000
		shift := uint32(14 - e)
		rounded := m >> shift
		rem := m & (uint32(1)<<shift - 1)
		half := uint32(1) << (shift - 1)
		if rem > half || (rem == half && rounded&1 == 1) {
			rounded++
		}
		return sign | uint16(rounded)
	}

	m := frac >> 13
	if rem := frac & 0x1FFF; rem > 0x1000 || (rem == 0x1000 && m&1 == 1) {
		m++
		if m == 0x0400 {
			// Fraction carry bumps the exponent.
			m = 0
			e++
			if e >= 0x1F {
				return sign | expMask16
			}
		}
	}
	return sign | uint16(e)<<10 | uint16(m)
}
