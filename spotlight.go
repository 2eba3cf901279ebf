package scrollfx

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// SpotlightConfig tunes the mini timeline section. Positions are
// percentages of the card size, as translations from the card's layout
// position.
type SpotlightConfig struct {
	Rise   Phase  `yaml:"rise"`
	Spread Phase  `yaml:"spread"`
	Ease   string `yaml:"ease"`
	// RiseFrom is the vertical offset the cards start from. They rise to
	// Rest and spread out from Rest to their Finals.
	RiseFrom  float64   `yaml:"riseFrom"`
	Rest      float64   `yaml:"rest"`
	Finals    []Vec2    `yaml:"finals"`
	Rotations []float64 `yaml:"rotations"`
	// CaptionFade is the caption fade duration in seconds.
	CaptionFade float64 `yaml:"captionFade"`
}

// DefaultSpotlightConfig returns the four-card timeline: a staggered rise
// over the first 45% and a spread into the corners over [0.5, 0.95].
func DefaultSpotlightConfig() SpotlightConfig {
	return SpotlightConfig{
		Rise:     Phase{ID: "rise", Start: 0, End: 0.45, Stagger: 0.1, Fill: 0.9},
		Spread:   Phase{ID: "spread", Start: 0.5, End: 0.95, Stagger: 0.05, Fill: 0.9},
		Ease:     "power2.out",
		RiseFrom: 200,
		Rest:     -50,
		Finals: []Vec2{
			{X: -120, Y: -120},
			{X: 40, Y: -130},
			{X: -140, Y: 10},
			{X: 20, Y: 20},
		},
		Rotations:   []float64{5, -3, 3.5, -1},
		CaptionFade: 0.5,
	}
}

// Validate checks both phases, the ease name, and the caption fade.
func (c SpotlightConfig) Validate() error {
	if err := c.Rise.Validate(); err != nil {
		return fmt.Errorf("spotlight: %w", err)
	}
	if err := c.Spread.Validate(); err != nil {
		return fmt.Errorf("spotlight: %w", err)
	}
	if _, err := EaseByName(c.Ease); err != nil {
		return fmt.Errorf("spotlight: %w", err)
	}
	if !(c.CaptionFade >= 0) {
		return fmt.Errorf("spotlight: captionFade %v must be >= 0", c.CaptionFade)
	}
	return nil
}

// SpotlightTargets names the nodes a Spotlight writes to.
type SpotlightTargets struct {
	Cards    []TargetID
	Captions []TargetID
}

// Spotlight rises a handful of cards into a centered pile, then spreads them
// into their final places. Captions fade in once the spread completes and
// fade out when scrolling back.
type Spotlight struct {
	cfg      SpotlightConfig
	ease     Ease
	cardSize Vec2
	targets  SpotlightTargets
	caption  *PropertyTween
}

// NewSpotlight creates the section for cards of the given size.
func NewSpotlight(cfg SpotlightConfig, cardSize Vec2, t SpotlightTargets) (*Spotlight, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(t.Cards) > len(cfg.Finals) {
		return nil, fmt.Errorf("spotlight: %d cards but %d final positions", len(t.Cards), len(cfg.Finals))
	}
	for _, ph := range []Phase{cfg.Rise, cfg.Spread} {
		if err := ph.ValidateItems(len(t.Cards)); err != nil {
			return nil, fmt.Errorf("spotlight: %w", err)
		}
	}
	e, _ := EaseByName(cfg.Ease)
	return &Spotlight{
		cfg:      cfg,
		ease:     e,
		cardSize: cardSize,
		targets:  t,
		caption:  NewPropertyTween(0, float32(cfg.CaptionFade), ease.OutQuad),
	}, nil
}

// Pose returns card i's translation in percent of the card size and its
// rotation in degrees at progress value.
func (s *Spotlight) Pose(value float64, i int) (xPct, yPct, rotation float64) {
	xPct = s.cfg.Rest
	if i < len(s.cfg.Rotations) {
		rotation = s.cfg.Rotations[i]
	}

	riseStart, _ := s.cfg.Rise.ItemWindow(i)
	switch {
	case value < riseStart:
		yPct = s.cfg.RiseFrom
	case value <= s.cfg.Rise.End:
		yPct = Lerp(s.cfg.RiseFrom, s.cfg.Rest, s.ease(s.cfg.Rise.Item(value, i)))
	default:
		yPct = s.cfg.Rest
	}

	final := s.cfg.Finals[i]
	spreadStart, _ := s.cfg.Spread.ItemWindow(i)
	switch {
	case value > s.cfg.Spread.End:
		return final.X, final.Y, 0
	case value >= spreadStart:
		t := s.ease(s.cfg.Spread.Item(value, i))
		xPct = Lerp(s.cfg.Rest, final.X, t)
		yPct = Lerp(s.cfg.Rest, final.Y, t)
	}
	return xPct, yPct, rotation
}

// Caption returns the caption opacity tween.
func (s *Spotlight) Caption() *PropertyTween {
	return s.caption
}

// Animate implements Animator.
func (s *Spotlight) Animate(sample ProgressSample, b *Binding) {
	for i, id := range s.targets.Cards {
		xp, yp, rot := s.Pose(sample.Value, i)
		b.Apply(id, Props{}.
			SetX(xp/100*s.cardSize.X).
			SetY(yp/100*s.cardSize.Y).
			SetRotation(rot))
	}

	target := 0.0
	if sample.Value > s.cfg.Spread.End {
		target = 1
	}
	if sample.AtEdge() {
		s.caption.Snap(target)
	} else {
		s.caption.To(target)
	}
}

// Frame implements FrameAnimator by advancing the caption fade.
func (s *Spotlight) Frame(dt float64, b *Binding) {
	v := s.caption.Update(float32(dt))
	for _, id := range s.targets.Captions {
		b.Apply(id, Props{}.SetOpacity(v))
	}
}
