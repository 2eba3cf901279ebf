package scrollfx

import "math"

// DefaultDecay is the smoothing factor used when a Smoother is configured
// with a value outside (0, 1].
const DefaultDecay = 0.5

// settleEpsilon is the distance at which a Smoother lands exactly on its
// target, so repeated steps toward a constant reach it in a bounded number
// of ticks.
const settleEpsilon = 1e-6

// Smoother is an exponential low-pass filter: every Step moves the value a
// fixed fraction of the way to the target. It never overshoots, so stepping
// toward 0 never flips the sign of the value.
type Smoother struct {
	Decay float64
	value float64
}

// NewSmoother creates a smoother starting at 0.
func NewSmoother(decay float64) Smoother {
	return Smoother{Decay: decay}
}

// Step advances the filter one tick toward target and returns the new value.
// A non-finite target is treated as 0.
func (s *Smoother) Step(target float64) float64 {
	target = finite(target, 0)
	decay := s.Decay
	if !(decay > 0 && decay <= 1) {
		decay = DefaultDecay
	}
	s.value += (target - s.value) * decay
	if math.Abs(target-s.value) < settleEpsilon || math.IsNaN(s.value) {
		s.value = target
	}
	return s.value
}

// Value returns the current smoothed value.
func (s *Smoother) Value() float64 {
	return s.value
}

// Reset sets the smoothed value directly.
func (s *Smoother) Reset(v float64) {
	s.value = finite(v, 0)
}

// Sign returns v/|v|, or 0 when v is 0 or NaN.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// MarqueeConfig tunes a velocity-reactive marquee.
type MarqueeConfig struct {
	BaseSpeed     float64 `yaml:"baseSpeed"`     // px per tick with no scroll
	Gain          float64 `yaml:"gain"`          // extra px per tick per unit of smoothed velocity
	VelocityScale float64 `yaml:"velocityScale"` // scroll velocity → target velocity
	TargetDecay   float64 `yaml:"targetDecay"`   // per-tick decay of the target velocity
	Decay         float64 `yaml:"decay"`         // smoother decay
}

// DefaultMarqueeConfig returns the stock marquee tuning.
func DefaultMarqueeConfig() MarqueeConfig {
	return MarqueeConfig{
		BaseSpeed:     0.45,
		Gain:          9,
		VelocityScale: 0.02,
		TargetDecay:   0.9,
		Decay:         0.5,
	}
}

// Marquee drifts a track leftward forever, faster while the page scrolls.
// The track holds two copies of its content, so wrapping at -TrackWidth back
// to 0 is seamless.
type Marquee struct {
	cfg        MarqueeConfig
	trackWidth float64
	smoother   Smoother
	target     float64
	position   float64
}

// NewMarquee creates a marquee over a track of the given width (the width of
// one copy of the content).
func NewMarquee(cfg MarqueeConfig, trackWidth float64) *Marquee {
	return &Marquee{
		cfg:        cfg,
		trackWidth: trackWidth,
		smoother:   NewSmoother(cfg.Decay),
	}
}

// Feed records a scroll velocity sample. Direction is ignored; any scroll
// speeds the marquee up.
func (m *Marquee) Feed(velocity float64) {
	m.target = math.Abs(finite(velocity, 0)) * m.cfg.VelocityScale
}

// Tick advances the marquee one frame and returns the new position.
func (m *Marquee) Tick() float64 {
	smoothed := m.smoother.Step(m.target)
	speed := finite(m.cfg.BaseSpeed+smoothed*m.cfg.Gain, m.cfg.BaseSpeed)
	m.position -= speed
	if !(m.trackWidth > 0) || m.position <= -m.trackWidth {
		m.position = 0
	}
	m.target *= m.cfg.TargetDecay
	if m.target < settleEpsilon {
		m.target = 0
	}
	return m.position
}

// Position returns the current track offset, in (-TrackWidth, 0].
func (m *Marquee) Position() float64 {
	return m.position
}

// Speed returns the smoothed velocity currently added to the base speed.
func (m *Marquee) Speed() float64 {
	return m.smoother.Value()
}

// NudgeConfig tunes the velocity-driven text offset.
type NudgeConfig struct {
	MaxOffset       float64   `yaml:"maxOffset"`
	VelocityDivisor float64   `yaml:"velocityDivisor"`
	Gains           []float64 `yaml:"gains"` // per-layer multiplier
	Decay           float64   `yaml:"decay"`
}

// DefaultNudgeConfig returns the gallery title values: three stacked layers,
// the front two lagging at 4x and 2x, the back one fixed.
func DefaultNudgeConfig() NudgeConfig {
	return NudgeConfig{
		MaxOffset:       30,
		VelocityDivisor: 500,
		Gains:           []float64{4, 2, 0},
		Decay:           0.35,
	}
}

// Nudge turns scroll velocity into a bounded horizontal offset per layer that
// decays back to neutral when the velocity settles.
type Nudge struct {
	cfg       NudgeConfig
	smoothers []Smoother
}

// NewNudge creates a nudge with one smoother per configured layer.
func NewNudge(cfg NudgeConfig) *Nudge {
	n := &Nudge{cfg: cfg, smoothers: make([]Smoother, len(cfg.Gains))}
	for i := range n.smoothers {
		n.smoothers[i].Decay = cfg.Decay
	}
	return n
}

// Base returns the un-smoothed offset for velocity v:
// sign(v) * min(MaxOffset, |v|/VelocityDivisor).
func (n *Nudge) Base(v float64) float64 {
	v = finite(v, 0)
	div := n.cfg.VelocityDivisor
	if !(div > 0) {
		return 0
	}
	return Sign(v) * math.Min(n.cfg.MaxOffset, math.Abs(v)/div)
}

// Update advances every layer toward its target for velocity v.
func (n *Nudge) Update(v float64) {
	base := n.Base(v)
	for i := range n.smoothers {
		n.smoothers[i].Step(base * n.cfg.Gains[i])
	}
}

// Snap returns every layer to neutral immediately.
func (n *Nudge) Snap() {
	for i := range n.smoothers {
		n.smoothers[i].Reset(0)
	}
}

// Offset returns the current offset of layer i.
func (n *Nudge) Offset(i int) float64 {
	if i < 0 || i >= len(n.smoothers) {
		return 0
	}
	return n.smoothers[i].Value()
}

// Layers returns the number of layers.
func (n *Nudge) Layers() int {
	return len(n.smoothers)
}
