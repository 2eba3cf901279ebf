package scrollfx

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPhase is returned when a phase window is malformed.
var ErrInvalidPhase = errors.New("scrollfx: invalid phase")

// Phase is a named sub-window of the global [0, 1] progress range. Phases of
// one group may overlap; overlapping windows produce crossfades.
type Phase struct {
	ID    string  `yaml:"id"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	// Stagger offsets item i's start by i*Stagger inside the window.
	Stagger float64 `yaml:"stagger"`
	// Fill is the fraction of an item's remaining window its ramp occupies.
	// Zero means 1 (the ramp ends at End).
	Fill float64 `yaml:"fill"`
}

// Validate checks 0 <= Start < End <= 1, a non-negative stagger, and a fill in
// [0, 1].
func (p Phase) Validate() error {
	if math.IsNaN(p.Start) || math.IsNaN(p.End) || p.Start < 0 || p.End > 1 || p.Start >= p.End {
		return fmt.Errorf("%w %q: window [%v, %v]", ErrInvalidPhase, p.ID, p.Start, p.End)
	}
	if p.Stagger < 0 || math.IsNaN(p.Stagger) {
		return fmt.Errorf("%w %q: stagger %v", ErrInvalidPhase, p.ID, p.Stagger)
	}
	if p.Fill < 0 || p.Fill > 1 || math.IsNaN(p.Fill) {
		return fmt.Errorf("%w %q: fill %v", ErrInvalidPhase, p.ID, p.Fill)
	}
	return nil
}

// Local returns the phase-local progress for a global value, clamped to
// [0, 1]. Monotonic non-decreasing in value.
func (p Phase) Local(value float64) float64 {
	return ramp(value, p.Start, p.End)
}

// ItemWindow returns the window of item i inside the phase. The start is
// shifted by i*Stagger and the end pulled in by Fill, never past End.
func (p Phase) ItemWindow(i int) (start, end float64) {
	start = p.Start + float64(i)*p.Stagger
	fill := p.Fill
	if fill == 0 {
		fill = 1
	}
	end = math.Min(p.End, start+(p.End-start)*fill)
	return start, end
}

// ValidateItems checks that n staggered items all start inside the phase.
// An item starting at or past End would jump from 0 to 1.
func (p Phase) ValidateItems(n int) error {
	if n < 1 {
		return nil
	}
	if last, _ := p.ItemWindow(n - 1); last >= p.End {
		return fmt.Errorf("%w %q: item %d of %d starts at %v, past the end %v",
			ErrInvalidPhase, p.ID, n-1, n, last, p.End)
	}
	return nil
}

// Item returns item i's progress inside the phase.
func (p Phase) Item(value float64, i int) float64 {
	start, end := p.ItemWindow(i)
	return ramp(value, start, end)
}

// Contains reports whether value lies inside the window (inclusive).
func (p Phase) Contains(value float64) bool {
	return value >= p.Start && value <= p.End
}

// ramp is the standard clamped linear ramp between start and end. value <=
// start is exactly 0 and value >= end exactly 1, which also covers an empty
// window without dividing by zero.
func ramp(value, start, end float64) float64 {
	if math.IsNaN(value) || value <= start {
		return 0
	}
	if value >= end {
		return 1
	}
	return Clamp01((value - start) / (end - start))
}

// AtEdge reports whether a global progress value sits at either end of the
// scroll range. At the edges every phase-driven transition snaps to its
// terminal pose.
func AtEdge(value float64) bool {
	return value <= 0 || value >= 1
}

// Schedule is an ordered set of phases for one animated group.
type Schedule struct {
	phases []Phase
	index  map[string]int
}

// NewSchedule validates the phases and keeps them in the given order.
// Phase IDs must be unique.
func NewSchedule(phases ...Phase) (*Schedule, error) {
	s := &Schedule{
		phases: make([]Phase, 0, len(phases)),
		index:  make(map[string]int, len(phases)),
	}
	for _, p := range phases {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidPhase, p.ID)
		}
		s.index[p.ID] = len(s.phases)
		s.phases = append(s.phases, p)
	}
	return s, nil
}

// MustSchedule is NewSchedule for fixed, known-good phase tables.
func MustSchedule(phases ...Phase) *Schedule {
	s, err := NewSchedule(phases...)
	if err != nil {
		panic(err)
	}
	return s
}

// Phase returns the phase with the given id.
func (s *Schedule) Phase(id string) (Phase, bool) {
	i, ok := s.index[id]
	if !ok {
		return Phase{}, false
	}
	return s.phases[i], true
}

// Phases returns the phases in order. The returned slice MUST NOT be mutated.
func (s *Schedule) Phases() []Phase {
	return s.phases
}

// Local returns the local progress of phase id at value. Unknown ids yield 0.
func (s *Schedule) Local(id string, value float64) float64 {
	p, ok := s.Phase(id)
	if !ok {
		return 0
	}
	return p.Local(value)
}

// Active appends the ids of every phase whose window contains value to buf
// and returns it. Overlapping phases are all reported.
func (s *Schedule) Active(value float64, buf []string) []string {
	for _, p := range s.phases {
		if p.Contains(value) {
			buf = append(buf, p.ID)
		}
	}
	return buf
}
