package fm

import (
	"math"
	"testing"
)

func TestPhaseGenerator_ConstantStep(t *testing.T) {
	pg := PhaseGenerator{Pitch: FromFloat(math.Log2(440))}
	inc := pg.Increment()
	if inc <= 0 {
		t.Fatalf("increment = %v", inc)
	}

	prev := Zero
	for i := 0; i < 10000; i++ {
		got := pg.Update(Zero)
		want := (prev + inc).Frac()
		if got != want {
			t.Fatalf("tick %d: phase 0x%X, want 0x%X", i, got.Bits(), want.Bits())
		}
		prev = got
	}
}

func TestPhaseGenerator_IncrementMatchesFrequency(t *testing.T) {
	for _, hz := range []float64{55, 110, 440, 1000, 4186} {
		pg := PhaseGenerator{Pitch: FromFloat(math.Log2(hz))}
		got := pg.Increment().Float64()
		want := hz / SampleRate
		if math.Abs(got-want) > 2.0/65536 && math.Abs(got-want)/want > 1e-3 {
			t.Errorf("%v Hz: increment %v, want %v", hz, got, want)
		}
	}
}

func TestPhaseGenerator_TuneIsLog2Multiplier(t *testing.T) {
	base := PhaseGenerator{Pitch: FromFloat(math.Log2(220))}
	up := PhaseGenerator{Pitch: FromFloat(math.Log2(220)), Tune: One}
	if got, want := up.Increment(), base.Increment()<<1; got-want > 1 || want-got > 1 {
		t.Errorf("tune +1 increment %v, want about %v", got, want)
	}
}

func TestPhaseGenerator_Period(t *testing.T) {
	pg := PhaseGenerator{Pitch: FromFloat(math.Log2(480))}
	inc := pg.Increment()

	const n = 48000
	wraps := 0
	prev := pg.Phase()
	for i := 0; i < n; i++ {
		cur := pg.Update(Zero)
		if cur < prev {
			wraps++
		}
		prev = cur
	}
	want := float64(n) * inc.Float64()
	if math.Abs(float64(wraps)-want) > 1 {
		t.Errorf("wrapped %d times in %d ticks, want about %.1f", wraps, n, want)
	}
}

func TestPhaseGenerator_ModulationDoesNotPersist(t *testing.T) {
	a := PhaseGenerator{Pitch: FromFloat(math.Log2(330))}
	b := a

	mod := FromFloat(0.3)
	for i := 0; i < 100; i++ {
		got := a.Update(mod)
		plain := b.Update(Zero)
		if got != (plain + mod).Frac() {
			t.Fatalf("tick %d: modulated phase %v, want %v", i, got, (plain + mod).Frac())
		}
		if a.Phase() != b.Phase() {
			t.Fatalf("tick %d: modulation leaked into accumulator", i)
		}
	}
}

func TestPhaseGenerator_NegativeModulationWraps(t *testing.T) {
	pg := PhaseGenerator{}
	got := pg.Update(FromFloat(-0.25))
	if got < Zero || got >= One {
		t.Errorf("phase %v not in [0,1)", got)
	}
	if got != FromFloat(0.75)+pg.Phase() {
		t.Errorf("phase %v, want %v", got, FromFloat(0.75)+pg.Phase())
	}
}

func TestPhaseGenerator_Reset(t *testing.T) {
	pg := PhaseGenerator{Pitch: FromInt(8), Tune: FromInt(1)}
	pg.Update(Zero)
	pg.Reset()
	if pg.Phase() != Zero || pg.Pitch != FromInt(8) || pg.Tune != FromInt(1) {
		t.Errorf("after Reset: phase %v pitch %v tune %v", pg.Phase(), pg.Pitch, pg.Tune)
	}
}
