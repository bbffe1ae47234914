package fm

import "testing"

func testEnvelope(attack, decay, sustain, release float64) EnvelopeGenerator {
	e := NewEnvelopeGenerator()
	e.AttackRate = FromFloat(attack)
	e.DecayRate = FromFloat(decay)
	e.SustainLevel = FromFloat(sustain)
	e.ReleaseRate = FromFloat(release)
	return e
}

func TestEnvelope_Defaults(t *testing.T) {
	e := NewEnvelopeGenerator()
	if e.State() != EnvIdle || e.Level() != Zero || e.Index() != indexOffset {
		t.Fatalf("new envelope: state %v level %v index %v", e.State(), e.Level(), e.Index())
	}
	for i := 0; i < 100; i++ {
		if l := e.Sample(); l != Zero {
			t.Fatalf("idle envelope produced %v", l)
		}
	}
}

func TestEnvelope_AttackReachesDecay(t *testing.T) {
	for _, rate := range []float64{0.001, 0.005, 0.05, 0.5, 4} {
		for _, div := range []uint8{1, 4} {
			e := testEnvelope(rate, 0, 1, 0)
			e.ClockDivider = div
			e.Open()

			ar := FromFloat(rate)
			bound := (int((indexOffset-indexFloor)/ar) + 2) * int(div)

			ticks := 0
			for e.State() == EnvAttack && ticks <= bound {
				e.Sample()
				ticks++
			}
			if e.State() != EnvDecay {
				t.Errorf("rate %v div %d: state %v after %d ticks (bound %d)", rate, div, e.State(), ticks, bound)
				continue
			}
			if e.Level() != One {
				t.Errorf("rate %v div %d: level at decay entry %v, want 1", rate, div, e.Level())
			}
			if e.Index() != indexOffset {
				t.Errorf("rate %v div %d: index not reset", rate, div)
			}
		}
	}
}

func TestEnvelope_AttackRises(t *testing.T) {
	e := testEnvelope(0.002, 0, 1, 0)
	e.Open()
	prev := e.Level()
	for e.State() == EnvAttack {
		cur := e.Sample()
		if cur < prev {
			t.Fatalf("attack fell from %v to %v", prev, cur)
		}
		if cur > One {
			t.Fatalf("attack overshot: %v", cur)
		}
		prev = cur
	}
}

func TestEnvelope_DecayToSustainHolds(t *testing.T) {
	e := testEnvelope(4, 0.01, 0.5, 0.01)
	e.Open()
	for i := 0; i < 10000 && e.State() != EnvSustain; i++ {
		e.Sample()
	}
	if e.State() != EnvSustain {
		t.Fatalf("state %v, want sustain", e.State())
	}
	held := e.Level()
	if held > FromFloat(0.5) || held < FromFloat(0.48) {
		t.Errorf("sustain level %v, want just below 0.5", held)
	}
	for i := 0; i < 1000; i++ {
		if l := e.Sample(); l != held {
			t.Fatalf("sustain moved from %v to %v", held, l)
		}
	}
}

func TestEnvelope_NoSustainHoldSkipsSustain(t *testing.T) {
	e := testEnvelope(4, 0.01, 0.5, 0.01)
	e.SustainHold = false
	e.Open()

	sawRelease := false
	for i := 0; i < 100000 && e.State() != EnvIdle; i++ {
		e.Sample()
		switch e.State() {
		case EnvSustain:
			t.Fatalf("tick %d: entered sustain with hold disabled", i)
		case EnvRelease:
			sawRelease = true
		}
	}
	if !sawRelease {
		t.Error("never released")
	}
	if e.State() != EnvIdle || e.Level() != Zero {
		t.Errorf("end state %v level %v, want idle at 0", e.State(), e.Level())
	}
}

func TestEnvelope_ReleaseEndsIdle(t *testing.T) {
	e := testEnvelope(4, 0.01, 0.6, 0.02)
	e.Open()
	for i := 0; i < 2000; i++ {
		e.Sample()
	}
	e.Close()
	if e.State() != EnvRelease {
		t.Fatalf("state %v after Close, want release", e.State())
	}
	start := e.Level()
	prev := start
	for i := 0; i < 100000 && e.State() == EnvRelease; i++ {
		cur := e.Sample()
		if cur > prev {
			t.Fatalf("release rose from %v to %v", prev, cur)
		}
		prev = cur
	}
	if e.State() != EnvIdle || e.Level() != Zero || e.Index() != indexOffset {
		t.Errorf("after release: state %v level %v index %v", e.State(), e.Level(), e.Index())
	}
}

func TestEnvelope_CloseMidAttackIsContinuous(t *testing.T) {
	const eps = 0.02
	for _, at := range []int{5, 50, 150, 300, 500} {
		e := testEnvelope(0.005, 0.01, 0.5, 0.005)
		e.Open()
		var last Fixed
		for i := 0; i < at; i++ {
			last = e.Sample()
		}
		if e.State() != EnvAttack {
			t.Fatalf("tick %d: left attack early (%v)", at, e.State())
		}

		e.Close()
		if e.State() != EnvRelease {
			t.Fatalf("tick %d: state %v after Close", at, e.State())
		}
		prev := last
		for i := 0; i < 4; i++ {
			cur := e.Sample()
			if d := (cur - prev).Float64(); d > eps || d < -eps {
				t.Errorf("close at tick %d: level jumped %v -> %v", at, prev, cur)
			}
			prev = cur
		}
	}
}

func TestEnvelope_ReleaseIndexSearch(t *testing.T) {
	for _, lv := range []float64{0.01, 0.1, 0.25, 0.5, 0.75, 0.99} {
		level := FromFloat(lv)
		idx := releaseIndexFor(level)
		if idx < indexFloor || idx > indexOffset {
			t.Errorf("level %v: index %v outside curve", lv, idx)
		}
		if d := (releaseCurve(idx) - level).Float64(); d > 0.01 || d < -0.01 {
			t.Errorf("level %v: curve at found index is %v", lv, releaseCurve(idx))
		}
	}
}

func TestEnvelope_OpenRestartsFromAnyState(t *testing.T) {
	e := testEnvelope(0.01, 0.01, 0.5, 0.01)
	e.Open()
	for i := 0; i < 5000; i++ {
		e.Sample()
	}
	e.Close()
	e.Sample()
	e.Open()
	if e.State() != EnvAttack || e.Index() != indexOffset {
		t.Errorf("Open from release: state %v index %v", e.State(), e.Index())
	}
}

func TestEnvelope_CloseWhileIdle(t *testing.T) {
	e := testEnvelope(0.01, 0.01, 0.5, 0.01)
	e.Close()
	if e.State() != EnvIdle {
		t.Fatalf("Close on idle moved to %v", e.State())
	}
	if l := e.Sample(); l != Zero {
		t.Errorf("idle level %v after Close", l)
	}
}

func TestEnvelope_ClockDivider(t *testing.T) {
	e := testEnvelope(0.001, 0, 1, 0)
	e.ClockDivider = 4
	e.Open()

	prev := e.Level()
	for i := 1; i <= 40; i++ {
		cur := e.Sample()
		changed := cur != prev
		if want := i%4 == 0; changed != want {
			t.Fatalf("sample %d: changed=%v, want %v", i, changed, want)
		}
		prev = cur
	}
}

func TestEnvState_String(t *testing.T) {
	if EnvSustain.String() != "sustain" || EnvState(99).String() != "unknown" {
		t.Errorf("String: %q %q", EnvSustain, EnvState(99))
	}
}
