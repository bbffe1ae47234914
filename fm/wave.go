package fm

import "fmt"

// Waveform selects one of eight shapes derived from the quarter-sine table.
type Waveform uint8

// Waveforms.
const (
	FullSine     Waveform = iota // plain sine
	HalfSine                     // positive half only
	DblHalfSine                  // rectified sine, twice the apparent frequency
	DblQuartSine                 // first quarter of each half, opposite signs
	FastSine                     // full sine squeezed into the first half
	FastHalfSine                 // rectified FastSine
	Sawish                       // half-rate sine segments approximating a saw
	Square                       // +1 then -1

	numWaveforms
)

var waveformNames = [numWaveforms]string{
	FullSine:     "sine",
	HalfSine:     "halfsine",
	DblHalfSine:  "dblhalfsine",
	DblQuartSine: "dblquartsine",
	FastSine:     "fastsine",
	FastHalfSine: "fasthalfsine",
	Sawish:       "sawish",
	Square:       "square",
}

func (wf Waveform) String() string {
	if wf < numWaveforms {
		return waveformNames[wf]
	}
	return fmt.Sprintf("Waveform(%d)", uint8(wf))
}

// Valid reports whether wf names a known shape.
func (wf Waveform) Valid() bool { return wf < numWaveforms }

// Waveforms returns all shapes in selector order.
func Waveforms() []Waveform {
	ws := make([]Waveform, numWaveforms)
	for i := range ws {
		ws[i] = Waveform(i)
	}
	return ws
}

// ParseWaveform looks up a shape by the name returned from String.
func ParseWaveform(name string) (Waveform, error) {
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWaveform, name)
}

// The phase is read as 0b qqww_wwww_wwww_wwww: q is the quadrant and w the
// position within it.
const (
	quadShift        = 14
	quadMask         = 0x03
	quart      Fixed = 0x3FFF
	eighth     Fixed = 0x1FFF
)

// Sample returns the waveform value at phase, in [-1, 1]. Only the
// fractional part of phase is used.
func (wf Waveform) Sample(phase Fixed) Fixed {
	q := (phase >> quadShift) & quadMask
	w := phase & quart

	switch wf {
	case FullSine:
		return fullSine(q, w)
	case HalfSine:
		return halfSine(q, w)
	case DblHalfSine:
		return dblHalfSine(q, w)
	case DblQuartSine:
		return dblQuartSine(q, w)
	case FastSine:
		return fastSine(q, w)
	case FastHalfSine:
		return fastHalfSine(q, w)
	case Sawish:
		return sawish(q, w)
	case Square:
		return square(q)
	}
	return Zero
}

func fullSine(q, w Fixed) Fixed {
	switch q {
	case 0:
		return SinQuarter(w)
	case 1:
		return SinQuarter(quart - w)
	case 2:
		return -SinQuarter(w)
	default:
		return -SinQuarter(quart - w)
	}
}

func halfSine(q, w Fixed) Fixed {
	switch q {
	case 0:
		return SinQuarter(w)
	case 1:
		return SinQuarter(quart - w)
	}
	return Zero
}

func dblHalfSine(q, w Fixed) Fixed {
	if q == 0 || q == 2 {
		return SinQuarter(w)
	}
	return SinQuarter(quart - w)
}

func dblQuartSine(q, w Fixed) Fixed {
	switch q {
	case 0:
		return SinQuarter(w)
	case 2:
		return -SinQuarter(w)
	}
	return Zero
}

// foldedSine plays a whole half-sine over one quadrant by doubling the
// sub-phase and folding it at the eighth.
func foldedSine(w Fixed) Fixed {
	if w < eighth {
		return SinQuarter(w << 1)
	}
	return SinQuarter((quart - w) << 1)
}

func fastSine(q, w Fixed) Fixed {
	switch q {
	case 0:
		return foldedSine(w)
	case 1:
		return -foldedSine(w)
	}
	return Zero
}

func fastHalfSine(q, w Fixed) Fixed {
	if q < 2 {
		return foldedSine(w)
	}
	return Zero
}

func sawish(q, w Fixed) Fixed {
	w2 := w >> 1
	switch q {
	case 0:
		return SinQuarter(w2)
	case 1:
		return SinQuarter(w2 + eighth)
	case 2:
		return -SinQuarter(quart - w2)
	default:
		return -SinQuarter(eighth - w2)
	}
}

func square(q Fixed) Fixed {
	if q < 2 {
		return One
	}
	return MinusOne
}
