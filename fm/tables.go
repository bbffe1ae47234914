package fm

import "math"

// Table lookup layout. A 14-bit argument is split as
//
//	0b tttt_tttt_tt ii
//
// where t selects one of 1024 table entries and i linearly interpolates
// between entry t and t+1 in sixteenths.
const (
	interpBits  = 4
	interpLen   = 1 << interpBits
	interpMask  = interpLen - 1
	tableBits   = 10
	tableLen    = 1 << tableBits
	tableMask   = tableLen - 1
	lookupBits  = tableBits + interpBits
	expDropBits = fracBits - lookupBits
)

// sineTable holds sin(i/1024 * pi/2) for one quarter period in Q0.16,
// truncated, plus one guard entry. Entries saturate at 0xFFFF.
var sineTable [tableLen + 1]uint16

// exp2Table holds the mantissa 2^(i/1024) - 1 in Q0.16, rounded, plus one
// guard entry. The guard would be 1.0 and saturates at 0xFFFF.
var exp2Table [tableLen + 1]uint16

func init() {
	for i := 0; i <= tableLen; i++ {
		s := math.Sin(float64(i) / tableLen * math.Pi / 2)
		sineTable[i] = saturateU16(math.Floor(s * (1 << fracBits)))

		m := math.Exp2(float64(i)/tableLen) - 1
		exp2Table[i] = saturateU16(math.Round(m * (1 << fracBits)))
	}
}

func saturateU16(v float64) uint16 {
	if v >= math.MaxUint16 {
		return math.MaxUint16
	}
	if v <= 0 {
		return 0
	}
	return uint16(v)
}

// interpolate reads a table at a 14-bit position. The index mask keeps
// idx+1 within the guard entry.
func interpolate(table *[tableLen + 1]uint16, pos int32) int32 {
	idx := (pos >> interpBits) & tableMask
	div := pos & interpMask

	bot := int32(table[idx])
	top := int32(table[idx+1])
	return (bot*(interpLen-div) + top*div) >> interpBits
}

// SinQuarter returns sin(w) for a phase in the low 14 bits of w, where a
// phase of 1.0 is a full turn, so the argument covers [0, 0.25). Higher bits
// are ignored. The result is in [0, 1).
func SinQuarter(w Fixed) Fixed {
	return Fixed(interpolate(&sineTable, int32(w)))
}

// Exp2 returns 2^x. The integer part of x is the power-of-two exponent and
// the fractional part, reduced to 14 bits, is the table argument. Results
// too large for Q16.16 saturate to MaxFixed; tiny results flush to zero.
func Exp2(x Fixed) Fixed {
	n := x.Int()
	f := int32(x.Frac()) >> expDropBits

	v := int64(One) + int64(interpolate(&exp2Table, f))
	switch {
	case n >= 15:
		return MaxFixed
	case n >= 0:
		return Fixed(v << uint(n))
	case n > -32:
		return Fixed(v >> uint(-n))
	default:
		return Zero
	}
}
