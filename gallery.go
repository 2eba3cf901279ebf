package scrollfx

import "fmt"

// GalleryConfig tunes the floating 3D gallery.
type GalleryConfig struct {
	// MoveViewports is the horizontal travel of the title strip across the
	// whole pin, in viewport widths.
	MoveViewports float64     `yaml:"moveViewports"`
	Nudge         NudgeConfig `yaml:"nudge"`
	Cascade       Cascade     `yaml:"cascade"`
}

// DefaultGalleryConfig returns a strip that travels three viewports, three
// nudged title layers, and the default depth cascade.
func DefaultGalleryConfig() GalleryConfig {
	return GalleryConfig{
		MoveViewports: 3,
		Nudge:         DefaultNudgeConfig(),
		Cascade:       DefaultCascade(),
	}
}

// Validate checks the travel and layer gains.
func (c GalleryConfig) Validate() error {
	if !(c.MoveViewports >= 0) {
		return fmt.Errorf("gallery: moveViewports %v must be >= 0", c.MoveViewports)
	}
	if len(c.Nudge.Gains) == 0 {
		return fmt.Errorf("gallery: nudge needs at least one layer gain")
	}
	if !(c.Nudge.Decay >= 0 && c.Nudge.Decay <= 1) {
		return fmt.Errorf("gallery: nudge decay %v outside [0, 1]", c.Nudge.Decay)
	}
	return nil
}

// GalleryTargets names the nodes a Gallery writes to.
type GalleryTargets struct {
	// Strip receives the raw strip translation. Optional.
	Strip TargetID
	// Layers[k] lists the title nodes of layer k. Every node in a layer gets
	// the strip translation plus that layer's nudge.
	Layers [][]TargetID
	// Cards receive depth and scale from the cascade, front to back.
	Cards []TargetID
}

// Gallery scrolls a strip of layered titles sideways while cards fly in from
// depth. Title layers lag behind the scroll velocity and settle when it
// stops.
type Gallery struct {
	cfg      GalleryConfig
	distance float64
	targets  GalleryTargets
	nudge    *Nudge
}

// NewGallery creates a gallery for a viewport viewWidth pixels wide.
func NewGallery(cfg GalleryConfig, viewWidth float64, t GalleryTargets) (*Gallery, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(t.Layers) > len(cfg.Nudge.Gains) {
		return nil, fmt.Errorf("gallery: %d title layers but %d nudge gains", len(t.Layers), len(cfg.Nudge.Gains))
	}
	return &Gallery{
		cfg:      cfg,
		distance: cfg.MoveViewports * finite(viewWidth, 0),
		targets:  t,
		nudge:    NewNudge(cfg.Nudge),
	}, nil
}

// MoveDistance returns the strip travel in pixels.
func (g *Gallery) MoveDistance() float64 {
	return g.distance
}

// StripX returns the strip translation at progress value.
func (g *Gallery) StripX(value float64) float64 {
	return -g.distance * Clamp01(value)
}

// Nudge exposes the layer offsets.
func (g *Gallery) Nudge() *Nudge {
	return g.nudge
}

// Animate implements Animator.
func (g *Gallery) Animate(s ProgressSample, b *Binding) {
	x := g.StripX(s.Value)
	if s.AtEdge() {
		g.nudge.Snap()
	} else {
		g.nudge.Update(s.Velocity)
	}

	if g.targets.Strip != "" {
		b.Apply(g.targets.Strip, Props{}.SetX(x))
	}
	for k, layer := range g.targets.Layers {
		lx := x + g.nudge.Offset(k)
		for _, id := range layer {
			b.Apply(id, Props{}.SetX(lx))
		}
	}

	n := len(g.targets.Cards)
	for i, id := range g.targets.Cards {
		z, scale := g.cfg.Cascade.Pose(s.Value, i, n)
		b.Apply(id, Props{}.SetZ(z).SetScale(scale))
	}
}
