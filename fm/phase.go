package fm

// SampleRate is the fixed output rate of the engine in Hz.
const SampleRate = 48000

// log2SampleRate is log2(48000) = 15.55075 in Q16.16.
const log2SampleRate Fixed = 0xF_8CFE

// PhaseGenerator is a wrapping phase accumulator driven by a logarithmic
// pitch. Pitch is log2 of the frequency in Hz: the integer part is the
// octave and the fractional part the position within the octave (1V/oct).
// Tune is the log2 of the operator's frequency multiplier.
type PhaseGenerator struct {
	Pitch Fixed
	Tune  Fixed

	phase Fixed
}

// Increment returns the per-sample phase advance,
// exp2(pitch + tune - log2(sampleRate)) cycles per sample.
func (pg *PhaseGenerator) Increment() Fixed {
	return Exp2(pg.Pitch + pg.Tune - log2SampleRate)
}

// Update advances the accumulator by one sample and returns the phase
// offset by mod. The modulation only affects the returned value, never the
// stored accumulator (phase modulation).
func (pg *PhaseGenerator) Update(mod Fixed) Fixed {
	pg.phase = (pg.phase + pg.Increment()).Frac()
	return (pg.phase + mod).Frac()
}

// Phase returns the current accumulator value in [0, 1).
func (pg *PhaseGenerator) Phase() Fixed { return pg.phase }

// Reset rewinds the accumulator to zero. Pitch and tuning are kept.
func (pg *PhaseGenerator) Reset() { pg.phase = Zero }
