package scrollfx

// Cascade drives a layered depth reveal: each item's progress is the global
// progress minus a per-item offset, stretched by Multiplier so it completes
// well before the global progress reaches 1. Depth and scale are monotonic,
// clamped functions of that progress.
type Cascade struct {
	StaggerOffset float64 `yaml:"staggerOffset"`
	Multiplier    float64 `yaml:"multiplier"`
	Far           float64 `yaml:"far"`        // starting depth
	ItemTarget    float64 `yaml:"itemTarget"` // resting depth of every item but the last
	LastTarget    float64 `yaml:"lastTarget"` // resting depth of the last item
	ScaleGain     float64 `yaml:"scaleGain"`
}

// DefaultCascade returns the gallery values.
func DefaultCascade() Cascade {
	return Cascade{
		StaggerOffset: 0.075,
		Multiplier:    3,
		Far:           -50000,
		ItemTarget:    2000,
		LastTarget:    1500,
		ScaleGain:     10,
	}
}

// Individual returns item i's own progress. Every item is at rest at either
// end of the range, however many items there are.
func (c Cascade) Individual(value float64, i int) float64 {
	switch {
	case value >= 1:
		return 1
	case value <= 0:
		return 0
	}
	return Clamp01((value - float64(i)*c.StaggerOffset) * c.Multiplier)
}

// Pose returns item i of n's depth and scale at global progress value.
func (c Cascade) Pose(value float64, i, n int) (z, scale float64) {
	p := c.Individual(value, i)
	target := c.ItemTarget
	if i == n-1 {
		target = c.LastTarget
	}
	z = Lerp(c.Far, target, p)
	scale = Clamp01(p * c.ScaleGain)
	return z, scale
}
