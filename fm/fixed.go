// Package fm implements a four-operator FM synthesis voice in Q16.16
// fixed-point arithmetic. All synthesis state advances one sample per call;
// nothing on the sample path allocates or blocks.
package fm

import (
	"fmt"
	"math"
)

// Fixed is a signed Q16.16 fixed-point number: 16 integer bits and 16
// fractional bits. Ordering and equality are those of the raw int32, so the
// native comparison operators apply. Addition and subtraction are the native
// operators and wrap on overflow (two's complement).
type Fixed int32

// Q16.16 layout constants.
const (
	fracBits = 16
	fracMask = 0xFFFF
)

// Common values.
const (
	Zero     Fixed = 0
	One      Fixed = 1 << fracBits
	MinusOne Fixed = -One
	MaxFixed Fixed = math.MaxInt32
	MinFixed Fixed = math.MinInt32
)

// Raw wraps a raw Q16.16 bit pattern.
func Raw(r int32) Fixed { return Fixed(r) }

// FromInt converts a small integer. Values outside [-32768, 32767] wrap.
func FromInt(i int32) Fixed { return Fixed(i << fracBits) }

// FromFloat converts a float, truncating toward zero at 1/65536 resolution.
func FromFloat(f float64) Fixed { return Fixed(int32(f * (1 << fracBits))) }

// Bits returns the raw representation.
func (a Fixed) Bits() int32 { return int32(a) }

// Mul returns a*b. The 64-bit product is arithmetic-shifted right by 16,
// which rounds toward negative infinity for negative results.
func (a Fixed) Mul(b Fixed) Fixed {
	return Fixed((int64(a) * int64(b)) >> fracBits)
}

// Scale multiplies the raw value by a plain integer without rescaling.
func (a Fixed) Scale(n int32) Fixed { return Fixed(int32(a) * n) }

// And masks the raw representation.
func (a Fixed) And(mask int32) Fixed { return Fixed(int32(a) & mask) }

// Frac returns the fractional part, always in [0, 1).
func (a Fixed) Frac() Fixed { return a & fracMask }

// Int returns the integer part, rounded toward negative infinity.
func (a Fixed) Int() int32 { return int32(a) >> fracBits }

// Float32 converts to float32.
func (a Fixed) Float32() float32 { return float32(a) / (1 << fracBits) }

// Float64 converts to float64.
func (a Fixed) Float64() float64 { return float64(a) / (1 << fracBits) }

func (a Fixed) String() string {
	return fmt.Sprintf("%.5f", a.Float64())
}

// PCM16 converts a sample to signed 16-bit PCM, mapping +-1.0 to +-32767
// and saturating outside that range.
func PCM16(s Fixed) int16 {
	v := int32(s) >> 1
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < -math.MaxInt16 {
		return -math.MaxInt16
	}
	return int16(v)
}
