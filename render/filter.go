package render

import (
	"fmt"
	"math"

	"github.com/user-none/fmvoice/fm"
)

// LowPass is a first-order RC low-pass filter over 16-bit PCM. State
// carries across calls so consecutive blocks filter seamlessly.
type LowPass struct {
	alpha float64
	prev  float64
}

// NewLowPass returns a filter with the given cutoff. The cutoff must be
// positive and below the Nyquist frequency.
func NewLowPass(cutoffHz float64) (*LowPass, error) {
	if !(cutoffHz > 0 && cutoffHz < fm.SampleRate/2) {
		return nil, fmt.Errorf("low-pass cutoff %g Hz out of range (0, %d)", cutoffHz, fm.SampleRate/2)
	}
	// alpha = dt / (RC + dt), RC = 1/(2*pi*fc)
	rc := 1 / (2 * math.Pi * cutoffHz)
	dt := 1.0 / fm.SampleRate
	return &LowPass{alpha: dt / (rc + dt)}, nil
}

// Process filters samples in place.
func (f *LowPass) Process(samples []int16) {
	for i, s := range samples {
		f.prev += f.alpha * (float64(s) - f.prev)
		samples[i] = int16(math.Round(f.prev))
	}
}

// Reset clears the filter state.
func (f *LowPass) Reset() { f.prev = 0 }
