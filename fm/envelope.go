package fm

// EnvState is the lifecycle state of an envelope generator.
type EnvState uint8

// Envelope states.
const (
	EnvIdle EnvState = iota
	EnvAttack
	EnvDecay
	EnvSustain
	EnvRelease
)

var envStateNames = [...]string{
	EnvIdle:    "idle",
	EnvAttack:  "attack",
	EnvDecay:   "decay",
	EnvSustain: "sustain",
	EnvRelease: "release",
}

func (s EnvState) String() string {
	if int(s) < len(envStateNames) {
		return envStateNames[s]
	}
	return "unknown"
}

// Envelope curve constants. The curve index counts down from indexOffset to
// indexFloor; the level follows exp2 of the index. Attack uses the mirrored
// curve upperOffset - exp2(index) so it rises from 0 to 1, decay and release
// use exp2(index) - lowerOffset so they fall from 1 toward 0.
const (
	indexOffset Fixed = 12625          // log2(8/7) + delta
	upperOffset Fixed = 74898          // 8/7
	lowerOffset Fixed = 9362           // 1/7
	indexFloor  Fixed = -3 << fracBits // exp2(-3) - 1/7 < 0
	searchSteps       = 8
)

// EnvelopeGenerator produces an amplitude curve in [0, 1] through the
// states Idle, Attack, Decay, Sustain and Release. Rates are subtracted from
// the curve index once per update, so larger rates give faster segments.
// Updates happen every ClockDivider samples.
type EnvelopeGenerator struct {
	AttackRate   Fixed
	DecayRate    Fixed
	SustainLevel Fixed
	ReleaseRate  Fixed

	// SustainHold keeps the envelope at the sustain level until Close.
	// Without it the decay segment falls straight into release.
	SustainHold bool

	// ClockDivider is the number of samples between updates. Zero is
	// treated as one.
	ClockDivider uint8

	clock uint8
	index Fixed
	level Fixed
	state EnvState
}

// NewEnvelopeGenerator returns an idle, silent envelope that holds at full
// sustain level and updates every sample.
func NewEnvelopeGenerator() EnvelopeGenerator {
	return EnvelopeGenerator{
		SustainLevel: One,
		SustainHold:  true,
		ClockDivider: 1,
		index:        indexOffset,
	}
}

// State returns the current lifecycle state.
func (e *EnvelopeGenerator) State() EnvState { return e.state }

// Level returns the current output level without advancing.
func (e *EnvelopeGenerator) Level() Fixed { return e.level }

// Index returns the current curve index.
func (e *EnvelopeGenerator) Index() Fixed { return e.index }

// Open starts the attack segment from the top of the curve, whatever the
// current state.
func (e *EnvelopeGenerator) Open() {
	e.state = EnvAttack
	e.index = indexOffset
}

// Close starts the release segment. The attack and release curves differ,
// so when closing mid-attack the index is moved to the point on the release
// curve matching the current level. Closing an idle envelope does nothing.
func (e *EnvelopeGenerator) Close() {
	switch e.state {
	case EnvIdle:
		return
	case EnvAttack:
		e.index = releaseIndexFor(e.level)
	}
	e.state = EnvRelease
}

// releaseIndexFor binary-searches [indexFloor, indexOffset] for the index
// whose release curve value is closest to level.
func releaseIndexFor(level Fixed) Fixed {
	lo, hi := indexFloor, indexOffset
	for i := 0; i < searchSteps; i++ {
		mid := lo + (hi-lo)>>1
		if releaseCurve(mid) > level {
			hi = mid
		} else {
			lo = mid
		}
	}
	if level-releaseCurve(lo) <= releaseCurve(hi)-level {
		return lo
	}
	return hi
}

func releaseCurve(index Fixed) Fixed { return Exp2(index) - lowerOffset }

// Reset forces the envelope idle and silent. Rates and levels are kept.
func (e *EnvelopeGenerator) Reset() {
	e.clock = 0
	e.index = indexOffset
	e.level = Zero
	e.state = EnvIdle
}

// Sample advances the envelope when the clock divider elapses and returns
// the current level.
func (e *EnvelopeGenerator) Sample() Fixed {
	div := e.ClockDivider
	if div == 0 {
		div = 1
	}
	e.clock++
	if e.clock >= div {
		e.clock = 0
		e.step()
	}
	return e.level
}

func (e *EnvelopeGenerator) step() {
	switch e.state {
	case EnvAttack:
		e.attack()
	case EnvDecay:
		e.decay()
	case EnvRelease:
		e.release()
	}
}

func (e *EnvelopeGenerator) attack() {
	e.index -= e.AttackRate
	e.level = upperOffset - Exp2(e.index)

	if e.level >= One || e.index <= indexFloor {
		e.level = One
		e.state = EnvDecay
		e.index = indexOffset
	}
}

func (e *EnvelopeGenerator) decay() {
	e.index -= e.DecayRate
	e.level = releaseCurve(e.index)

	if e.level <= e.SustainLevel || e.index <= indexFloor {
		// Index and level carry over so release continues the same curve.
		if e.level < Zero {
			e.level = Zero
		}
		if e.SustainHold {
			e.state = EnvSustain
		} else {
			e.state = EnvRelease
		}
	}
}

func (e *EnvelopeGenerator) release() {
	e.index -= e.ReleaseRate
	e.level = releaseCurve(e.index)

	if e.level <= Zero || e.index <= indexFloor {
		e.level = Zero
		e.state = EnvIdle
		e.index = indexOffset
	}
}
