package scrollfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PropertyTween animates a single property value toward a target over a
// fixed duration. Call To to (re)target it and Update(dt) each frame; the
// current value is returned by Update and Value.
//
// There is no global animation manager; owners call Update themselves.
type PropertyTween struct {
	Duration float32
	Func     ease.TweenFunc

	tween *gween.Tween
	value float64
	to    float64
	Done  bool
}

// NewPropertyTween creates a tween resting at initial.
func NewPropertyTween(initial float64, duration float32, fn ease.TweenFunc) *PropertyTween {
	if fn == nil {
		fn = ease.Linear
	}
	initial = finite(initial, 0)
	return &PropertyTween{
		Duration: duration,
		Func:     fn,
		value:    initial,
		to:       initial,
		Done:     true,
	}
}

// To starts interpolating from the current value toward target. Asking for
// the target already in flight (or already reached) keeps the running tween.
func (t *PropertyTween) To(target float64) {
	target = finite(target, t.to)
	if target == t.to {
		return
	}
	t.to = target
	if !(t.Duration > 0) {
		t.Snap(target)
		return
	}
	t.tween = gween.New(float32(t.value), float32(target), t.Duration, t.Func)
	t.Done = false
}

// Update advances the tween by dt seconds and returns the current value.
// The final value is exactly the target, not its float32 approximation.
func (t *PropertyTween) Update(dt float32) float64 {
	if t.Done || t.tween == nil {
		return t.value
	}
	val, finished := t.tween.Update(dt)
	if finished {
		t.Snap(t.to)
		return t.value
	}
	t.value = finite(float64(val), t.to)
	return t.value
}

// Snap cancels any in-flight interpolation and jumps to v.
func (t *PropertyTween) Snap(v float64) {
	v = finite(v, t.to)
	t.value = v
	t.to = v
	t.tween = nil
	t.Done = true
}

// Value returns the current value.
func (t *PropertyTween) Value() float64 {
	return t.value
}

// Target returns the value the tween is heading to.
func (t *PropertyTween) Target() float64 {
	return t.to
}
