package scrollfx

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phanxgames/scrollfx/internal/diag"
	"github.com/phanxgames/scrollfx/physics"
)

// FooterTargets names the nodes a Footer drives, one per body, with the size
// of each box.
type FooterTargets struct {
	Bodies []TargetID
	Sizes  []Vec2
}

// Footer drops a pile of boxes into a container the first time its section
// comes into view. The boxes can be dragged and thrown; their placement is
// written to the targets every frame.
type Footer struct {
	cfg       physics.Config
	origin    Vec2
	container physics.Container
	targets   FooterTargets

	world  *physics.World
	bodies []*physics.Body
	closed bool
}

// NewFooter creates the section for a container whose top-left corner sits at
// origin in page coordinates. The world is not created until the section's
// progress first becomes positive.
func NewFooter(cfg physics.Config, origin Vec2, container physics.Container, t FooterTargets) (*Footer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("footer: %w", err)
	}
	if len(t.Bodies) != len(t.Sizes) {
		return nil, fmt.Errorf("footer: %d bodies but %d sizes", len(t.Bodies), len(t.Sizes))
	}
	if !(container.Width > 0) || !(container.Height > 0) {
		return nil, fmt.Errorf("footer: %w: container %vx%v", physics.ErrInvalidConfig, container.Width, container.Height)
	}
	return &Footer{
		cfg:       cfg,
		origin:    origin,
		container: container,
		targets:   t,
	}, nil
}

// World returns the physics world, or nil before the section has been
// entered.
func (f *Footer) World() *physics.World {
	return f.world
}

// Animate implements Animator. It only creates the world; placement is
// written by Simulate.
func (f *Footer) Animate(s ProgressSample, b *Binding) {
	if f.world != nil || f.closed || !(s.Value > 0) {
		return
	}
	w, err := physics.NewWorld(f.cfg, f.container)
	if err != nil {
		diag.Logf("[scrollfx] footer: %v", err)
		f.closed = true
		return
	}
	sizes := make([]r2.Vec, len(f.targets.Sizes))
	for i, sz := range f.targets.Sizes {
		sizes[i] = r2.Vec{X: sz.X, Y: sz.Y}
	}
	f.world = w
	f.bodies = w.Spawn(sizes)
}

// Simulate implements Simulator.
func (f *Footer) Simulate(dt float64, b *Binding) {
	if f.world == nil || f.world.Closed() {
		return
	}
	f.world.Advance(dt)
	for i, body := range f.bodies {
		if body.Removed() {
			continue
		}
		p := f.world.Placement(body)
		b.Apply(f.targets.Bodies[i], Props{}.SetX(p.X).SetY(p.Y).SetRotation(p.Rotation))
	}
}

func (f *Footer) local(x, y float64) (float64, float64) {
	return x - f.origin.X, y - f.origin.Y
}

func (f *Footer) inside(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= f.container.Width && y <= f.container.Height
}

// PointerDown implements PointerTarget. Coordinates are in page space.
func (f *Footer) PointerDown(x, y float64) bool {
	if f.world == nil {
		return false
	}
	lx, ly := f.local(x, y)
	if !f.inside(lx, ly) {
		return false
	}
	_, ok := f.world.PointerDown(lx, ly)
	return ok
}

// PointerMove implements PointerTarget. Leaving the container ends a drag.
func (f *Footer) PointerMove(x, y float64) {
	if f.world == nil {
		return
	}
	lx, ly := f.local(x, y)
	if !f.inside(lx, ly) {
		f.world.PointerLeave()
		return
	}
	f.world.PointerMove(lx, ly)
}

// PointerUp implements PointerTarget.
func (f *Footer) PointerUp() {
	if f.world != nil {
		f.world.PointerUp()
	}
}

// PointerLeave implements PointerTarget.
func (f *Footer) PointerLeave() {
	if f.world != nil {
		f.world.PointerLeave()
	}
}

// Reinitialize moves the container and rebuilds its walls.
func (f *Footer) Reinitialize(origin Vec2, container physics.Container) error {
	if f.world != nil {
		if err := f.world.Reinitialize(container); err != nil {
			return fmt.Errorf("footer: %w", err)
		}
	} else if !(container.Width > 0) || !(container.Height > 0) {
		return fmt.Errorf("footer: %w: container %vx%v", physics.ErrInvalidConfig, container.Width, container.Height)
	}
	f.origin = origin
	f.container = container
	return nil
}

// Close releases the world. A closed footer never creates a new one.
func (f *Footer) Close() {
	f.closed = true
	if f.world != nil {
		f.world.Close()
	}
}
