package scrollfx

// Sprite is an in-memory visual element: a sized, tinted rectangle carrying a
// property bag. It is the Node the Stage hands to a Binding and the thing the
// Ebitengine host draws.
type Sprite struct {
	ID   TargetID
	Name string

	// Layout position of the top-left corner. The property bag's X and Y
	// translate the sprite from here.
	Left, Top float64

	PropertyBag

	// Size in pixels before scaling. The pivot is the center.
	Width, Height float64
	Color         Color

	// ZIndex orders sprites with equal Z depth; lower draws first.
	ZIndex  int
	Visible bool

	UserData any

	stage    *Stage
	writes   int
	disposed bool
}

// NewSprite creates a visible white sprite with the neutral pose.
func NewSprite(id TargetID, width, height float64) *Sprite {
	return &Sprite{
		ID:          id,
		Name:        string(id),
		PropertyBag: DefaultPropertyBag(),
		Width:       width,
		Height:      height,
		Color:       ColorWhite,
		Visible:     true,
	}
}

// SetProperties writes the properties set in p.
func (s *Sprite) SetProperties(p Props) {
	if s.disposed {
		return
	}
	s.Apply(p)
	s.writes++
}

// Writes returns how many times SetProperties reached this sprite.
func (s *Sprite) Writes() int {
	return s.writes
}

// Bounds returns the unrotated, scaled rectangle of the sprite after
// translation.
func (s *Sprite) Bounds() Rect {
	w, h := s.Width*s.Scale, s.Height*s.Scale
	return Rect{
		X:      s.Left + s.X + (s.Width-w)/2,
		Y:      s.Top + s.Y + (s.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// Dispose removes the sprite from its stage and marks it disposed. Further
// property writes are ignored.
func (s *Sprite) Dispose() {
	if s.disposed {
		return
	}
	if s.stage != nil {
		s.stage.remove(s)
	}
	s.disposed = true
	s.stage = nil
	s.UserData = nil
}

// IsDisposed reports whether Dispose was called.
func (s *Sprite) IsDisposed() bool {
	return s.disposed
}
