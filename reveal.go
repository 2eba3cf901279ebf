package scrollfx

import "fmt"

// RevealConfig tunes the text swap and its marquee.
type RevealConfig struct {
	// Overlap is roughly how many glyphs of a block are in motion at once.
	Overlap float64       `yaml:"overlap"`
	Marquee MarqueeConfig `yaml:"marquee"`
}

// DefaultRevealConfig returns three glyphs in motion and the default marquee.
func DefaultRevealConfig() RevealConfig {
	return RevealConfig{
		Overlap: 3,
		Marquee: DefaultMarqueeConfig(),
	}
}

// Validate checks the overlap and marquee decay.
func (c RevealConfig) Validate() error {
	if !(c.Overlap >= 0) {
		return fmt.Errorf("reveal: overlap %v must be >= 0", c.Overlap)
	}
	if !(c.Marquee.Decay >= 0 && c.Marquee.Decay <= 1) {
		return fmt.Errorf("reveal: marquee decay %v outside [0, 1]", c.Marquee.Decay)
	}
	return nil
}

// RevealTargets names the nodes a Reveal writes to.
type RevealTargets struct {
	// Blocks[k] lists the glyph nodes of text block k in reading order.
	Blocks [][]TargetID
	// Indicator gets the section progress as its scale. Optional.
	Indicator TargetID
	// Track is the marquee track. Optional.
	Track TargetID
}

// Reveal swaps a sequence of text blocks glyph by glyph. With N blocks the
// pin is split into N-1 equal phases; in phase k block k drops out of view
// while block k+1 rises into place. A marquee underneath drifts
// continuously and speeds up with scrolling.
type Reveal struct {
	wave        Wave
	glyphHeight float64
	targets     RevealTargets
	schedule    *Schedule
	marquee     *Marquee
}

// NewReveal creates the section. glyphHeight converts the glyph offset from
// percent to pixels; trackWidth is the width of one copy of the marquee
// content.
func NewReveal(cfg RevealConfig, glyphHeight, trackWidth float64, t RevealTargets) (*Reveal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Reveal{
		wave:        Wave{Overlap: cfg.Overlap},
		glyphHeight: glyphHeight,
		targets:     t,
		marquee:     NewMarquee(cfg.Marquee, trackWidth),
	}
	if n := len(t.Blocks) - 1; n > 0 {
		phases := make([]Phase, n)
		for k := range phases {
			phases[k] = Phase{
				ID:    fmt.Sprintf("swap%d", k),
				Start: float64(k) / float64(n),
				End:   float64(k+1) / float64(n),
			}
		}
		s, err := NewSchedule(phases...)
		if err != nil {
			return nil, fmt.Errorf("reveal: %w", err)
		}
		r.schedule = s
	}
	return r, nil
}

// swap returns the index of the active phase and its local progress.
func (r *Reveal) swap(value float64) (k int, local float64) {
	phases := r.schedule.Phases()
	for i, p := range phases {
		if value >= p.Start {
			k = i
		}
	}
	return k, phases[k].Local(value)
}

// GlyphShift returns the vertical offset of glyph i of block blk in percent
// of the glyph height: 0 is in place, 100 is hidden below the line.
func (r *Reveal) GlyphShift(value float64, blk, i int) float64 {
	if blk < 0 || blk >= len(r.targets.Blocks) {
		return 0
	}
	if r.schedule == nil {
		return 0
	}
	n := len(r.targets.Blocks[blk])
	k, local := r.swap(value)
	switch blk {
	case k:
		return r.wave.Item(local, i, n) * 100
	case k + 1:
		return 100 - r.wave.Item(local, i, n)*100
	default:
		return 100
	}
}

// Marquee exposes the marquee.
func (r *Reveal) Marquee() *Marquee {
	return r.marquee
}

// Animate implements Animator.
func (r *Reveal) Animate(s ProgressSample, b *Binding) {
	for blk, glyphs := range r.targets.Blocks {
		for i, id := range glyphs {
			b.Apply(id, Props{}.SetY(r.GlyphShift(s.Value, blk, i)/100*r.glyphHeight))
		}
	}
	if r.targets.Indicator != "" {
		b.Apply(r.targets.Indicator, Props{}.SetScale(s.Value))
	}
	if s.Velocity != 0 {
		r.marquee.Feed(s.Velocity)
	}
}

// Frame implements FrameAnimator by advancing the marquee one step.
func (r *Reveal) Frame(dt float64, b *Binding) {
	x := r.marquee.Tick()
	if r.targets.Track != "" {
		b.Apply(r.targets.Track, Props{}.SetX(x))
	}
}
