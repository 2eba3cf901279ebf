package scrollfx

import (
	"fmt"
	"math"
)

// StackCardsConfig tunes the stacked card section.
type StackCardsConfig struct {
	// Rotations are the resting angles of the cards in degrees. Cards past
	// the end of the list rest at 0.
	Rotations []float64 `yaml:"rotations"`
	// Drift is the fraction of the viewport a covered card slides up and
	// left once the next card has landed.
	Drift float64 `yaml:"drift"`
	// DriftFalloff shrinks the drift of each later card.
	DriftFalloff float64 `yaml:"driftFalloff"`
}

// DefaultStackCardsConfig returns the five-card values.
func DefaultStackCardsConfig() StackCardsConfig {
	return StackCardsConfig{
		Rotations:    []float64{-12, 10, -5, 5, -2},
		Drift:        0.3,
		DriftFalloff: 0.15,
	}
}

// Validate checks the drift values.
func (c StackCardsConfig) Validate() error {
	if !(c.Drift >= 0) || !(c.DriftFalloff >= 0) {
		return fmt.Errorf("stack cards: drift %v and falloff %v must be >= 0", c.Drift, c.DriftFalloff)
	}
	for i, r := range c.Rotations {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("stack cards: rotation %d is %v", i, r)
		}
	}
	return nil
}

// StackCards slides cards up one after another, each over its own 1/N
// window of the pin. A card that has landed drifts away as the remaining
// progress runs out, except the last one.
type StackCards struct {
	cfg      StackCardsConfig
	viewport Vec2
	cards    []TargetID
	playing  []bool
}

// NewStackCards creates the section for a viewport of the given size.
func NewStackCards(cfg StackCardsConfig, viewport Vec2, cards []TargetID) (*StackCards, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &StackCards{
		cfg:      cfg,
		viewport: viewport,
		cards:    cards,
		playing:  make([]bool, len(cards)),
	}, nil
}

// CardProgress returns card i's progress within its window.
func (s *StackCards) CardProgress(value float64, i int) float64 {
	n := len(s.cards)
	if n == 0 {
		return 0
	}
	per := 1 / float64(n)
	return Clamp01((value - float64(i)*per) / per)
}

// Pose returns card i's translation at progress value.
func (s *StackCards) Pose(value float64, i int) (x, y float64) {
	n := len(s.cards)
	cp := s.CardProgress(value, i)
	y = s.viewport.Y * (1 - cp)
	if cp < 1 || i >= n-1 {
		return 0, y
	}
	end := float64(i+1) / float64(n)
	remaining := (value - end) / (1 - end)
	if !(remaining > 0) {
		return 0, y
	}
	m := s.cfg.Drift * (1 - float64(i)*s.cfg.DriftFalloff) * math.Min(remaining, 1)
	return -s.viewport.X * m, -s.viewport.Y * m
}

// Playing reports whether card i is fully in view. The last card counts as
// playing throughout.
func (s *StackCards) Playing(i int) bool {
	if i < 0 || i >= len(s.playing) {
		return false
	}
	return s.playing[i]
}

// Animate implements Animator.
func (s *StackCards) Animate(sample ProgressSample, b *Binding) {
	n := len(s.cards)
	for i, id := range s.cards {
		x, y := s.Pose(sample.Value, i)
		var rot float64
		if i < len(s.cfg.Rotations) {
			rot = s.cfg.Rotations[i]
		}
		b.Apply(id, Props{}.SetX(x).SetY(y).SetRotation(rot))
		s.playing[i] = i == n-1 || s.CardProgress(sample.Value, i) == 1
	}
}
