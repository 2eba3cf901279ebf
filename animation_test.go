package scrollfx

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestPropertyTweenReachesTarget(t *testing.T) {
	tw := NewPropertyTween(10, 1.0, ease.Linear)
	tw.To(100)
	if tw.Done {
		t.Fatal("tween should be running after To")
	}

	// Exact halves avoid float32 accumulation drift.
	mid := tw.Update(0.5)
	if math.Abs(mid-55) > 0.5 {
		t.Errorf("midpoint = %f, want ~55", mid)
	}
	end := tw.Update(0.5)

	if !tw.Done {
		t.Fatal("expected Done after full duration")
	}
	if end != 100 {
		t.Errorf("final = %v, want exactly 100", end)
	}
}

func TestPropertyTweenRetargetFromCurrent(t *testing.T) {
	tw := NewPropertyTween(0, 1.0, ease.Linear)
	tw.To(1)
	tw.Update(0.5)
	tw.To(0)
	v := tw.Update(0.5)
	if v <= 0 || v >= 0.5 {
		t.Errorf("after retarget value = %v, want between 0 and 0.5", v)
	}
	tw.Update(0.5)
	if tw.Value() != 0 || !tw.Done {
		t.Errorf("value = %v done = %v, want 0 true", tw.Value(), tw.Done)
	}
}

func TestPropertyTweenSameTargetKeepsRunning(t *testing.T) {
	tw := NewPropertyTween(0, 1.0, ease.Linear)
	tw.To(1)
	tw.Update(0.5)
	tw.To(1)
	tw.Update(0.5)
	if !tw.Done || tw.Value() != 1 {
		t.Errorf("repeated To restarted the tween: value=%v done=%v", tw.Value(), tw.Done)
	}
}

func TestPropertyTweenSnapCancels(t *testing.T) {
	tw := NewPropertyTween(0, 1.0, ease.OutCubic)
	tw.To(1)
	tw.Update(0.1)
	tw.Snap(0)
	if !tw.Done || tw.Value() != 0 || tw.Target() != 0 {
		t.Fatalf("Snap left value=%v target=%v done=%v", tw.Value(), tw.Target(), tw.Done)
	}
	if got := tw.Update(0.5); got != 0 {
		t.Errorf("Update after Snap = %v, want 0", got)
	}
}

func TestPropertyTweenZeroDurationSnaps(t *testing.T) {
	tw := NewPropertyTween(0, 0, nil)
	tw.To(5)
	if tw.Value() != 5 || !tw.Done {
		t.Errorf("zero-duration tween value = %v done = %v", tw.Value(), tw.Done)
	}
}

func TestPropertyTweenIgnoresNaN(t *testing.T) {
	tw := NewPropertyTween(math.NaN(), 1.0, ease.Linear)
	if tw.Value() != 0 {
		t.Errorf("NaN initial = %v, want 0", tw.Value())
	}
	tw.To(math.NaN())
	if !tw.Done {
		t.Error("NaN target should not start a tween")
	}
}

func TestPropertyTweenUpdateZeroAllocs(t *testing.T) {
	tw := NewPropertyTween(0, 1000, ease.Linear)
	tw.To(1)
	allocs := testing.AllocsPerRun(100, func() {
		tw.Update(0.001)
	})
	if allocs > 0 {
		t.Errorf("Update allocated %.1f times per run", allocs)
	}
}
