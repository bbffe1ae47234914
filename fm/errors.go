package fm

import (
	"errors"
	"fmt"
)

// Configuration errors. The sample path never returns errors; everything
// out of range is rejected here when configuration is applied.
var (
	ErrInvalidAlgorithm = errors.New("invalid algorithm")
	ErrInvalidWaveform  = errors.New("invalid waveform")
	ErrTuneRange        = errors.New("tuning out of range")
	ErrRateRange        = errors.New("envelope rate out of range")
	ErrSustainRange     = errors.New("sustain level out of range")
	ErrClockDivider     = errors.New("envelope clock divider must be positive")
	ErrPitchRange       = errors.New("pitch out of range")
	ErrUnknownPreset    = errors.New("unknown preset")
)

// PatchError reports an invalid field of a patch. Op is the operator index,
// or -1 for voice-level fields.
type PatchError struct {
	Patch string
	Op    int
	Field string
	Err   error
}

func (e *PatchError) Error() string {
	name := e.Patch
	if name == "" {
		name = "patch"
	}
	if e.Op < 0 {
		return fmt.Sprintf("%s: %s: %v", name, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: op %d: %s: %v", name, e.Op, e.Field, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}

func errAlgorithm(i int) error {
	return fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidAlgorithm, i, NumAlgorithms-1)
}
