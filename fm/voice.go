package fm

// NumOperators is the number of operators in a voice.
const NumOperators = 4

// Voice wires four operators through one of the built-in algorithms.
type Voice struct {
	Ops [NumOperators]Operator

	algorithm int
}

// NewVoice returns a silent voice using algorithm 0.
func NewVoice() *Voice {
	v := &Voice{}
	for i := range v.Ops {
		v.Ops[i] = NewOperator()
	}
	return v
}

// Op returns operator i for configuration. It panics if i is out of range.
func (v *Voice) Op(i int) *Operator {
	return &v.Ops[i]
}

// Algorithm returns the active algorithm index.
func (v *Voice) Algorithm() int { return v.algorithm }

// SetAlgorithm selects the routing used from the next sample on.
func (v *Voice) SetAlgorithm(i int) error {
	if i < 0 || i >= NumAlgorithms {
		return errAlgorithm(i)
	}
	v.algorithm = i
	return nil
}

// Sample produces the voice's next output sample.
func (v *Voice) Sample() Fixed {
	// Scratch registers live for one sample. Operators run in index order,
	// so operator i reads what operators 0..i-1 wrote this sample.
	var output, adder Fixed
	algo := &algorithms[v.algorithm]

	for i := range v.Ops {
		op := &v.Ops[i]
		route := algo[i]

		switch route.Mod {
		case RegOutput:
			op.ModInput = output
		case RegAdder:
			op.ModInput = adder
		default:
			op.ModInput = Zero
		}

		s := op.Sample()

		switch route.Out {
		case RegOutput:
			output = s
		case RegAdder:
			adder += s
		}
	}

	switch algo[NumOperators-1].Out {
	case RegOutput:
		return output
	case RegAdder:
		return adder
	}
	return Zero
}

// SampleFloat32 is Sample converted to float32.
func (v *Voice) SampleFloat32() float32 {
	return v.Sample().Float32()
}

// GenerateSamples fills dst with consecutive samples as 16-bit PCM.
func (v *Voice) GenerateSamples(dst []int16) {
	for i := range dst {
		dst[i] = PCM16(v.Sample())
	}
}

// SetFreq sets the pitch of all operators without touching the envelopes.
func (v *Voice) SetFreq(pitch Fixed) {
	for i := range v.Ops {
		v.Ops[i].Phase.Pitch = pitch
	}
}

// NoteOn sets the pitch of all operators and opens their envelopes.
func (v *Voice) NoteOn(pitch Fixed) {
	for i := range v.Ops {
		v.Ops[i].Phase.Pitch = pitch
		v.Ops[i].Env.Open()
	}
}

// NoteOff starts the release of all envelopes.
func (v *Voice) NoteOff() {
	for i := range v.Ops {
		v.Ops[i].Env.Close()
	}
}

// Active reports whether any envelope is still sounding.
func (v *Voice) Active() bool {
	for i := range v.Ops {
		if v.Ops[i].Env.State() != EnvIdle {
			return true
		}
	}
	return false
}

// Reset silences every operator. Configuration and algorithm are kept.
func (v *Voice) Reset() {
	for i := range v.Ops {
		v.Ops[i].Reset()
	}
}

// Apply validates p and configures the voice from it. On error the voice
// is left unchanged. Running state (phase, envelopes) is not reset.
func (v *Voice) Apply(p Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	v.algorithm = p.Algorithm
	for i := range v.Ops {
		p.Ops[i].apply(&v.Ops[i], p.ClockDivider)
	}
	return nil
}
