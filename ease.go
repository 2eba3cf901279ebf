package scrollfx

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Ease maps linear progress in [0, 1] to eased progress in [0, 1].
// Every Ease returned by this package clamps its input, returns exactly 0 at
// t <= 0 and exactly 1 at t >= 1, and maps NaN to 0.
type Ease func(t float64) float64

// FromTween adapts a gween easing function to an Ease. gween functions work in
// float32 over (t, begin, change, duration); the endpoints are pinned so the
// float32 round trip never leaves a terminal pose short of 0 or 1.
func FromTween(fn ease.TweenFunc) Ease {
	return func(t float64) float64 {
		if !(t > 0) { // also catches NaN
			return 0
		}
		if t >= 1 {
			return 1
		}
		return Clamp01(float64(fn(float32(t), 0, 1, 1)))
	}
}

// Built-in eases. The set is limited to curves that stay inside [0, 1];
// back, elastic, and bounce overshoot and are left out.
var (
	Linear     = FromTween(ease.Linear)
	InQuad     = FromTween(ease.InQuad)
	OutQuad    = FromTween(ease.OutQuad)
	InOutQuad  = FromTween(ease.InOutQuad)
	InCubic    = FromTween(ease.InCubic)
	OutCubic   = FromTween(ease.OutCubic)
	InOutCubic = FromTween(ease.InOutCubic)
	OutQuart   = FromTween(ease.OutQuart)
	OutQuint   = FromTween(ease.OutQuint)
	OutSine    = FromTween(ease.OutSine)
	InOutSine  = FromTween(ease.InOutSine)
	OutExpo    = FromTween(ease.OutExpo)
	OutCirc    = FromTween(ease.OutCirc)
)

// easeNames maps GSAP-style names, as written in section configs, to eases.
var easeNames = map[string]Ease{
	"none":         Linear,
	"linear":       Linear,
	"power1.in":    InQuad,
	"power1.out":   OutQuad,
	"power1.inOut": InOutQuad,
	"power2.in":    InCubic,
	"power2.out":   OutCubic,
	"power2.inOut": InOutCubic,
	"power3.out":   OutQuart,
	"power4.out":   OutQuint,
	"sine.out":     OutSine,
	"sine.inOut":   InOutSine,
	"expo.out":     OutExpo,
	"circ.out":     OutCirc,
}

// EaseByName resolves a GSAP-style ease name. The empty string resolves to
// Linear.
func EaseByName(name string) (Ease, error) {
	if name == "" {
		return Linear, nil
	}
	e, ok := easeNames[name]
	if !ok {
		return nil, fmt.Errorf("scrollfx: unknown ease %q", name)
	}
	return e, nil
}

// Clamp01 clamps v to [0, 1]. NaN becomes 0.
func Clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// finite replaces NaN and ±Inf with fallback.
func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
