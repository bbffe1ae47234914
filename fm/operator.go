package fm

// Operator combines a phase generator, a waveform and an envelope with
// self-feedback into one sample producer.
type Operator struct {
	Phase PhaseGenerator
	Wave  Waveform
	Env   EnvelopeGenerator

	// TotalLevel is the output level, 0 (silent) to 255 (unity).
	TotalLevel uint8
	// Feedback is the share of the previous output fed back into the
	// operator's own phase, 0 to 255.
	Feedback uint8

	// ModInput is the phase modulation for the next sample. The owning
	// Voice writes it before every call to Sample.
	ModInput Fixed

	feedback Fixed
}

// NewOperator returns a full-level sine operator with no feedback and an
// idle envelope.
func NewOperator() Operator {
	return Operator{
		Wave:       FullSine,
		Env:        NewEnvelopeGenerator(),
		TotalLevel: 255,
	}
}

// levelScale maps 0..255 to [0, 1] with 255 exactly 1.0.
func levelScale(l uint8) Fixed {
	return Fixed((int32(l) << fracBits) / 255)
}

// Sample produces the operator's next output.
func (op *Operator) Sample() Fixed {
	phase := op.Phase.Update(op.ModInput + op.feedback)
	raw := op.Wave.Sample(phase)
	env := op.Env.Sample()

	// Forcing exact zero keeps a muted operator silent and drains the
	// feedback register.
	var out Fixed
	if env != Zero && op.TotalLevel != 0 {
		out = raw.Mul(env).Mul(levelScale(op.TotalLevel))
	}

	op.feedback = out.Mul(levelScale(op.Feedback))
	return out
}

// Reset returns the operator's running state to silence. Configuration is
// kept.
func (op *Operator) Reset() {
	op.Phase.Reset()
	op.Env.Reset()
	op.ModInput = Zero
	op.feedback = Zero
}
