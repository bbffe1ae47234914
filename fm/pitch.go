package fm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Semitone is one twelfth of an octave in the logarithmic pitch domain.
var Semitone = FromFloat(1.0 / 12)

// Pitch limits: 1 Hz up to 32768 Hz.
const (
	MinPitch Fixed = 0
	MaxPitch Fixed = 15 << fracBits
)

// ValidatePitch rejects pitches outside (MinPitch, MaxPitch).
func ValidatePitch(p Fixed) error {
	if p <= MinPitch || p >= MaxPitch {
		return fmt.Errorf("%w: %v", ErrPitchRange, p)
	}
	return nil
}

// PitchFromHz converts a frequency to log2 pitch.
func PitchFromHz(hz float64) (Fixed, error) {
	if !(hz > 0) || math.IsInf(hz, 0) {
		return 0, fmt.Errorf("%w: %g Hz", ErrPitchRange, hz)
	}
	p := FromFloat(math.Log2(hz))
	if err := ValidatePitch(p); err != nil {
		return 0, err
	}
	return p, nil
}

var noteOffsets = map[byte]int{
	'C': -9, 'D': -7, 'E': -5, 'F': -4, 'G': -2, 'A': 0, 'B': 2,
}

// PitchFromNote parses a note name such as "A4", "C#3" or "Eb5" in equal
// temperament with A4 at 440 Hz.
func PitchFromNote(name string) (Fixed, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid note %q", name)
	}
	semis, ok := noteOffsets[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("invalid note %q", name)
	}
	s = s[1:]
	switch s[0] {
	case '#':
		semis++
		s = s[1:]
	case 'b':
		semis--
		s = s[1:]
	}
	octave, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid note %q: %w", name, err)
	}
	semis += (octave - 4) * 12
	return PitchFromHz(440 * math.Exp2(float64(semis)/12))
}
