package fm

// Configuration limits. They keep pitch + tune - log2(sampleRate) and the
// envelope index far from the Q16.16 wrap boundary.
const (
	MaxTune Fixed = 8 << fracBits
	MinTune Fixed = -MaxTune
	MaxRate Fixed = 4 << fracBits
)

// OperatorPatch configures one operator.
type OperatorPatch struct {
	Wave       Waveform
	TotalLevel uint8
	Feedback   uint8
	// Tune is log2 of the frequency multiplier: 0 is unison, 1 an octave up.
	Tune Fixed

	Attack      Fixed
	Decay       Fixed
	Sustain     Fixed
	Release     Fixed
	SustainHold bool
}

// Patch is the full configuration of one voice.
type Patch struct {
	Name      string
	Algorithm int
	// ClockDivider is the envelope update interval in samples, shared by
	// all operators.
	ClockDivider uint8
	Ops          [NumOperators]OperatorPatch
}

// Validate checks every field against the engine's limits.
func (p Patch) Validate() error {
	if p.Algorithm < 0 || p.Algorithm >= NumAlgorithms {
		return &PatchError{Patch: p.Name, Op: -1, Field: "algorithm", Err: errAlgorithm(p.Algorithm)}
	}
	if p.ClockDivider == 0 {
		return &PatchError{Patch: p.Name, Op: -1, Field: "clock divider", Err: ErrClockDivider}
	}
	for i, op := range p.Ops {
		if err := op.validate(); err != nil {
			err.Patch = p.Name
			err.Op = i
			return err
		}
	}
	return nil
}

func (o OperatorPatch) validate() *PatchError {
	if !o.Wave.Valid() {
		return &PatchError{Field: "wave", Err: ErrInvalidWaveform}
	}
	if o.Tune < MinTune || o.Tune > MaxTune {
		return &PatchError{Field: "tune", Err: ErrTuneRange}
	}
	rates := []struct {
		name string
		v    Fixed
	}{
		{"attack", o.Attack},
		{"decay", o.Decay},
		{"release", o.Release},
	}
	for _, r := range rates {
		if r.v < Zero || r.v > MaxRate {
			return &PatchError{Field: r.name, Err: ErrRateRange}
		}
	}
	if o.Sustain < Zero || o.Sustain > One {
		return &PatchError{Field: "sustain", Err: ErrSustainRange}
	}
	return nil
}

func (o OperatorPatch) apply(op *Operator, divider uint8) {
	op.Wave = o.Wave
	op.TotalLevel = o.TotalLevel
	op.Feedback = o.Feedback
	op.Phase.Tune = o.Tune
	op.Env.AttackRate = o.Attack
	op.Env.DecayRate = o.Decay
	op.Env.SustainLevel = o.Sustain
	op.Env.ReleaseRate = o.Release
	op.Env.SustainHold = o.SustainHold
	op.Env.ClockDivider = divider
}

// PatchOf captures the current configuration of v.
func PatchOf(v *Voice, name string) Patch {
	p := Patch{Name: name, Algorithm: v.algorithm}
	for i := range v.Ops {
		op := &v.Ops[i]
		p.Ops[i] = OperatorPatch{
			Wave:        op.Wave,
			TotalLevel:  op.TotalLevel,
			Feedback:    op.Feedback,
			Tune:        op.Phase.Tune,
			Attack:      op.Env.AttackRate,
			Decay:       op.Env.DecayRate,
			Sustain:     op.Env.SustainLevel,
			Release:     op.Env.ReleaseRate,
			SustainHold: op.Env.SustainHold,
		}
		p.ClockDivider = op.Env.ClockDivider
	}
	if p.ClockDivider == 0 {
		p.ClockDivider = 1
	}
	return p
}
