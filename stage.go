package scrollfx

import (
	"cmp"
	"slices"
)

// Stage is a flat collection of sprites addressed by TargetID. It implements
// Resolver, so a Binding can write straight into it.
type Stage struct {
	byID    map[TargetID]*Sprite
	sprites []*Sprite
	sorted  []*Sprite
}

// NewStage creates an empty stage.
func NewStage() *Stage {
	return &Stage{byID: make(map[TargetID]*Sprite)}
}

// Add places sp on the stage. A sprite already registered under the same ID
// is disposed and replaced.
func (s *Stage) Add(sp *Sprite) *Sprite {
	if old, ok := s.byID[sp.ID]; ok && old != sp {
		old.Dispose()
	}
	if sp.stage == s {
		return sp
	}
	if sp.stage != nil {
		sp.stage.remove(sp)
	}
	sp.stage = s
	s.byID[sp.ID] = sp
	s.sprites = append(s.sprites, sp)
	return sp
}

// AddRect is shorthand for Add(NewSprite(id, w, h)).
func (s *Stage) AddRect(id TargetID, w, h float64) *Sprite {
	return s.Add(NewSprite(id, w, h))
}

// Sprite returns the sprite registered under id, or nil.
func (s *Stage) Sprite(id TargetID) *Sprite {
	return s.byID[id]
}

// Resolve implements Resolver.
func (s *Stage) Resolve(id TargetID) (Node, bool) {
	sp, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return sp, true
}

// Remove disposes the sprite registered under id, if any.
func (s *Stage) Remove(id TargetID) {
	if sp, ok := s.byID[id]; ok {
		sp.Dispose()
	}
}

// Len returns the number of sprites on the stage.
func (s *Stage) Len() int {
	return len(s.sprites)
}

// Sprites returns the visible sprites in draw order: farthest Z first, then
// ascending ZIndex, then insertion order. The slice is reused between calls.
func (s *Stage) Sprites() []*Sprite {
	s.sorted = s.sorted[:0]
	for _, sp := range s.sprites {
		if sp.Visible {
			s.sorted = append(s.sorted, sp)
		}
	}
	slices.SortStableFunc(s.sorted, func(a, b *Sprite) int {
		if c := cmp.Compare(a.Z, b.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	return s.sorted
}

func (s *Stage) remove(sp *Sprite) {
	if s.byID[sp.ID] == sp {
		delete(s.byID, sp.ID)
	}
	if i := slices.Index(s.sprites, sp); i >= 0 {
		s.sprites = slices.Delete(s.sprites, i, i+1)
	}
}
