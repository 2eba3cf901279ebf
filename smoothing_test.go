package scrollfx

import (
	"math"
	"testing"
)

func TestSmootherContraction(t *testing.T) {
	for _, start := range []float64{1, -1, 250, -0.003, 1e9} {
		for _, decay := range []float64{0.1, 0.5, 0.9, 1} {
			s := NewSmoother(decay)
			s.Reset(start)
			sign := Sign(start)
			ticks := 0
			for s.Value() != 0 {
				v := s.Step(0)
				if Sign(v) == -sign {
					t.Fatalf("start=%v decay=%v: sign flipped to %v", start, decay, v)
				}
				ticks++
				if ticks > 10000 {
					t.Fatalf("start=%v decay=%v: did not converge", start, decay)
				}
			}
		}
	}
}

func TestSmootherStep(t *testing.T) {
	s := NewSmoother(0.5)
	if got := s.Step(10); got != 5 {
		t.Errorf("Step = %v, want 5", got)
	}
	if got := s.Step(10); got != 7.5 {
		t.Errorf("Step = %v, want 7.5", got)
	}
	if got := s.Step(math.NaN()); math.IsNaN(got) {
		t.Error("NaN target leaked into the filter")
	}
}

func TestSmootherInvalidDecayFallsBack(t *testing.T) {
	s := NewSmoother(0)
	if got := s.Step(2); got != 1 {
		t.Errorf("Step with decay 0 = %v, want default-decay result 1", got)
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{5, 1}, {-0.1, -1}, {0, 0}, {math.NaN(), 0}, {math.Inf(-1), -1},
	}
	for _, tt := range tests {
		if got := Sign(tt.in); got != tt.want {
			t.Errorf("Sign(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMarqueeWrapsToExactlyZero(t *testing.T) {
	m := NewMarquee(DefaultMarqueeConfig(), 10)
	wrapped := false
	for i := 0; i < 100; i++ {
		before := m.Position()
		pos := m.Tick()
		if pos > 0 || pos < -10 {
			t.Fatalf("tick %d: position %v out of (-10, 0]", i, pos)
		}
		if before-0.45 <= -10 {
			if pos != 0 {
				t.Fatalf("tick %d: expected reset to 0, got %v", i, pos)
			}
			wrapped = true
		}
	}
	if !wrapped {
		t.Fatal("marquee never wrapped")
	}
}

func TestMarqueeVelocitySpeedsUpAndDecays(t *testing.T) {
	idle := NewMarquee(DefaultMarqueeConfig(), 1e6)
	fast := NewMarquee(DefaultMarqueeConfig(), 1e6)
	fast.Feed(-3000)

	idle.Tick()
	fast.Tick()
	if fast.Position() >= idle.Position() {
		t.Errorf("fed marquee %v should be ahead of idle %v", fast.Position(), idle.Position())
	}

	for i := 0; i < 500; i++ {
		fast.Tick()
	}
	if fast.Speed() != 0 {
		t.Errorf("speed should settle to 0, got %v", fast.Speed())
	}

	// Settled, it moves at exactly the base speed.
	cfg := DefaultMarqueeConfig()
	before := fast.Position()
	fast.Tick()
	if got := before - fast.Position(); math.Abs(got-cfg.BaseSpeed) > 1e-9 {
		t.Errorf("settled step = %v, want base speed %v", got, cfg.BaseSpeed)
	}
}

func TestMarqueeDegenerateTrack(t *testing.T) {
	m := NewMarquee(DefaultMarqueeConfig(), 0)
	if got := m.Tick(); got != 0 {
		t.Errorf("zero-width track position = %v, want 0", got)
	}
}

func TestNudgeBoundedAndNeutral(t *testing.T) {
	n := NewNudge(DefaultNudgeConfig())
	if got := n.Base(0); got != 0 {
		t.Errorf("Base(0) = %v, want 0", got)
	}
	if got := n.Base(1e9); got != 30 {
		t.Errorf("Base(huge) = %v, want cap 30", got)
	}
	if got := n.Base(-1000); got != -2 {
		t.Errorf("Base(-1000) = %v, want -2", got)
	}

	for i := 0; i < 100; i++ {
		n.Update(1e9)
	}
	if got := n.Offset(0); math.Abs(got-120) > 1e-6 {
		t.Errorf("layer 0 = %v, want 120", got)
	}
	if got := n.Offset(1); math.Abs(got-60) > 1e-6 {
		t.Errorf("layer 1 = %v, want 60", got)
	}
	if got := n.Offset(2); got != 0 {
		t.Errorf("fixed layer = %v, want 0", got)
	}

	for i := 0; i < 200; i++ {
		n.Update(0)
	}
	if n.Offset(0) != 0 || n.Offset(1) != 0 {
		t.Errorf("offsets did not settle: %v %v", n.Offset(0), n.Offset(1))
	}

	n.Update(1e9)
	n.Snap()
	if n.Offset(0) != 0 {
		t.Error("Snap should return to neutral immediately")
	}
	if n.Offset(99) != 0 {
		t.Error("out-of-range layer should read 0")
	}
}
