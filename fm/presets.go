package fm

import (
	"fmt"
	"sort"
)

// op builds an OperatorPatch from float envelope parameters. Rates are
// curve-index steps per envelope update.
func op(wave Waveform, tl, fb uint8, tune, attack, decay, sustain, release float64, hold bool) OperatorPatch {
	return OperatorPatch{
		Wave:        wave,
		TotalLevel:  tl,
		Feedback:    fb,
		Tune:        FromFloat(tune),
		Attack:      FromFloat(attack),
		Decay:       FromFloat(decay),
		Sustain:     FromFloat(sustain),
		Release:     FromFloat(release),
		SustainHold: hold,
	}
}

// presets are built-in patches, keyed by name. Envelopes update at 12 kHz.
var presets = map[string]Patch{
	// Square-modulated pad.
	"drone": {
		Algorithm:    1,
		ClockDivider: 4,
		Ops: [NumOperators]OperatorPatch{
			op(FullSine, 0, 0, 1, 0.05, 0, 1, 0.01, true),
			op(FullSine, 4, 0, 0, 0.05, 0, 1, 0.01, true),
			op(Square, 64, 0, 0.5833, 0.05, 0, 1, 0.01, true),
			op(FullSine, 255, 0, 0, 0.05, 0, 1, 0.01, true),
		},
	},
	"epiano": {
		Algorithm:    4,
		ClockDivider: 4,
		Ops: [NumOperators]OperatorPatch{
			op(FullSine, 60, 0, 3.807, 0.5, 0.004, 0, 0.02, true),
			op(FullSine, 200, 0, 0, 0.3, 0.0015, 0.3, 0.01, true),
			op(FullSine, 40, 32, 0, 0.5, 0.002, 0.1, 0.02, true),
			op(FullSine, 160, 0, 1, 0.3, 0.002, 0.2, 0.01, true),
		},
	},
	"bass": {
		Algorithm:    0,
		ClockDivider: 4,
		Ops: [NumOperators]OperatorPatch{
			op(FullSine, 90, 96, 0, 0.4, 0.006, 0.2, 0.05, true),
			op(HalfSine, 70, 0, 1, 0.4, 0.004, 0.4, 0.05, true),
			op(FullSine, 50, 0, 0, 0.4, 0.003, 0.5, 0.05, true),
			op(FullSine, 255, 0, -1, 0.2, 0.002, 0.7, 0.03, true),
		},
	},
	"organ": {
		Algorithm:    7,
		ClockDivider: 4,
		Ops: [NumOperators]OperatorPatch{
			op(FullSine, 96, 0, -1, 0.4, 0, 1, 0.04, true),
			op(FullSine, 96, 0, 0, 0.4, 0, 1, 0.04, true),
			op(DblHalfSine, 48, 0, 1, 0.4, 0, 1, 0.04, true),
			op(FullSine, 32, 0, 1.585, 0.4, 0, 1, 0.04, true),
		},
	},
	"bell": {
		Algorithm:    5,
		ClockDivider: 4,
		Ops: [NumOperators]OperatorPatch{
			op(FullSine, 120, 0, 1.807, 0.6, 0.0008, 0, 0.004, false),
			op(FullSine, 140, 0, 0, 0.6, 0.0005, 0, 0.004, false),
			op(FullSine, 90, 0, 1.5, 0.6, 0.0007, 0, 0.004, false),
			op(FastSine, 40, 0, 2, 0.6, 0.001, 0, 0.004, false),
		},
	},
	"brass": {
		Algorithm:    2,
		ClockDivider: 4,
		Ops: [NumOperators]OperatorPatch{
			op(Sawish, 70, 48, 0, 0.02, 0.002, 0.6, 0.02, true),
			op(FullSine, 80, 0, 0, 0.03, 0.002, 0.7, 0.02, true),
			op(FullSine, 60, 0, 0, 0.03, 0.002, 0.7, 0.02, true),
			op(FullSine, 230, 0, 0, 0.04, 0.001, 0.8, 0.015, true),
		},
	},
}

// Presets returns the names of the built-in patches, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a copy of the named built-in patch.
func Preset(name string) (Patch, error) {
	p, ok := presets[name]
	if !ok {
		return Patch{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	p.Name = name
	return p, nil
}
