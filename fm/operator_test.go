package fm

import (
	"math"
	"testing"
)

// sustainedOperator returns an operator whose envelope jumps to 1 and holds.
func sustainedOperator(wave Waveform, hz float64) Operator {
	op := NewOperator()
	op.Wave = wave
	op.Phase.Pitch = FromFloat(math.Log2(hz))
	op.Env.AttackRate = FromInt(4)
	op.Env.Open()
	return op
}

func TestLevelScale(t *testing.T) {
	tests := []struct {
		in   uint8
		want Fixed
	}{
		{0, Zero},
		{255, One},
		{128, Raw(32896)},
		{1, Raw(257)},
	}
	for _, tt := range tests {
		if got := levelScale(tt.in); got != tt.want {
			t.Errorf("levelScale(%d) = 0x%X, want 0x%X", tt.in, got.Bits(), tt.want.Bits())
		}
	}
}

func TestOperator_MatchesComponents(t *testing.T) {
	op := sustainedOperator(FullSine, 440)
	op.TotalLevel = 200

	phase := op.Phase
	env := op.Env
	for i := 0; i < 2000; i++ {
		pg := phase.Update(Zero)
		lvl := env.Sample()
		var want Fixed
		if lvl != Zero {
			want = FullSine.Sample(pg).Mul(lvl).Mul(levelScale(200))
		}
		if got := op.Sample(); got != want {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestOperator_TotalLevelZeroIsSilent(t *testing.T) {
	for _, wf := range Waveforms() {
		op := sustainedOperator(wf, 330)
		op.TotalLevel = 0
		op.Feedback = 255
		op.ModInput = FromFloat(0.4)
		for i := 0; i < 1000; i++ {
			if s := op.Sample(); s != Zero {
				t.Fatalf("%v: sample %d = %v with total level 0", wf, i, s)
			}
		}
		if op.feedback != Zero {
			t.Errorf("%v: feedback register %v while muted", wf, op.feedback)
		}
	}
}

func TestOperator_IdleEnvelopeIsSilent(t *testing.T) {
	op := NewOperator()
	op.Wave = Square
	op.Phase.Pitch = FromFloat(math.Log2(100))
	for i := 0; i < 500; i++ {
		if s := op.Sample(); s != Zero {
			t.Fatalf("sample %d = %v with idle envelope", i, s)
		}
	}
}

func TestOperator_FeedbackModulatesNextSample(t *testing.T) {
	plain := sustainedOperator(FullSine, 220)
	fb := sustainedOperator(FullSine, 220)
	fb.Feedback = 200

	if a, b := plain.Sample(), fb.Sample(); a != b {
		t.Fatalf("first sample differs before any feedback: %v vs %v", a, b)
	}
	differs := false
	for i := 0; i < 200; i++ {
		a, b := plain.Sample(), fb.Sample()
		if a != b {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("feedback had no effect")
	}
}

func TestOperator_FeedbackRegister(t *testing.T) {
	op := sustainedOperator(Square, 100)
	op.Feedback = 255
	out := op.Sample()
	if out != One {
		t.Fatalf("square at full level = %v, want 1", out)
	}
	if op.feedback != out {
		t.Errorf("feedback register %v, want %v", op.feedback, out)
	}
}

func TestOperator_Reset(t *testing.T) {
	op := sustainedOperator(FullSine, 440)
	op.Feedback = 100
	for i := 0; i < 100; i++ {
		op.Sample()
	}
	op.Reset()
	if op.Phase.Phase() != Zero || op.Env.State() != EnvIdle || op.Env.Level() != Zero || op.feedback != Zero {
		t.Errorf("Reset left state: phase %v env %v/%v fb %v", op.Phase.Phase(), op.Env.State(), op.Env.Level(), op.feedback)
	}
	if op.Feedback != 100 || op.Wave != FullSine {
		t.Error("Reset changed configuration")
	}
}
