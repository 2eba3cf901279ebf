package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// BodyID identifies a body within its World.
type BodyID int

// State is the lifecycle stage of a dynamic body.
type State uint8

const (
	// Falling bodies are moving under gravity or collisions.
	Falling State = iota
	// Settled bodies have stayed below the settle speeds for SettleSteps steps.
	Settled
	// Dragging bodies are held by the pointer.
	Dragging
	// Released bodies were just let go and keep their drag velocity.
	Released
)

var stateNames = [...]string{"falling", "settled", "dragging", "released"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Body is an oriented box. Position is its center; Angle is in radians.
// Static bodies (walls) never move and have infinite mass.
type Body struct {
	ID    BodyID
	Label string

	Position        r2.Vec
	Angle           float64
	Velocity        r2.Vec  // px/s
	AngularVelocity float64 // rad/s

	HalfWidth, HalfHeight float64

	Restitution float64
	Friction    float64
	FrictionAir float64
	Density     float64

	Static bool

	state      State
	settleRun  int
	wakeRun    int
	mass       float64
	invMass    float64
	inertia    float64
	invInertia float64

	// Inertia in effect before a drag overrode it. hasSavedInertia tells a
	// saved zero apart from no saved value.
	savedInertia    float64
	hasSavedInertia bool

	// Position at contact detection; the position passes measure how far
	// each body has moved since.
	detectPos r2.Vec

	removed bool
}

func newBody(id BodyID, pos r2.Vec, w, h, angle float64, static bool, cfg Config) *Body {
	b := &Body{
		ID:          id,
		Position:    pos,
		Angle:       angle,
		HalfWidth:   w / 2,
		HalfHeight:  h / 2,
		Restitution: cfg.Restitution,
		Friction:    cfg.Friction,
		FrictionAir: cfg.FrictionAir,
		Density:     cfg.Density,
		Static:      static,
	}
	b.updateMass()
	return b
}

// updateMass derives mass and moment of inertia from density and size.
func (b *Body) updateMass() {
	if b.Static {
		b.mass, b.invMass = math.Inf(1), 0
		b.inertia, b.invInertia = math.Inf(1), 0
		return
	}
	w, h := 2*b.HalfWidth, 2*b.HalfHeight
	b.mass = b.Density * w * h
	if b.mass > 0 {
		b.invMass = 1 / b.mass
	} else {
		b.invMass = 0
	}
	b.SetInertia(b.mass * (w*w + h*h) / 12)
}

// Mass returns the body's mass (+Inf for static bodies).
func (b *Body) Mass() float64 { return b.mass }

// Inertia returns the moment of inertia currently in effect.
func (b *Body) Inertia() float64 { return b.inertia }

// SetInertia overrides the moment of inertia. +Inf, zero, and negative
// values lock rotation in the solver; the stored value is kept as given.
func (b *Body) SetInertia(i float64) {
	b.inertia = i
	if i > 0 && !math.IsInf(i, 0) {
		b.invInertia = 1 / i
	} else {
		b.invInertia = 0
	}
}

// State returns the lifecycle stage of the body.
func (b *Body) State() State { return b.state }

// Removed reports whether the body was removed from its world.
func (b *Body) Removed() bool { return b.removed }

func (b *Body) rotation() rot { return newRot(b.Angle) }

// Vertices returns the four corners in world space, clockwise on screen
// starting at the top-left of the unrotated box.
func (b *Body) Vertices() [4]r2.Vec {
	hw, hh := b.HalfWidth, b.HalfHeight
	local := [4]r2.Vec{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	var out [4]r2.Vec
	for i, v := range local {
		out[i] = r2.Add(b.Position, r2.Rotate(v, b.Angle, r2.Vec{}))
	}
	return out
}

// Contains reports whether the world point p lies inside the body.
func (b *Body) Contains(p r2.Vec) bool {
	l := b.rotation().applyT(r2.Sub(p, b.Position))
	return math.Abs(l.X) <= b.HalfWidth && math.Abs(l.Y) <= b.HalfHeight
}

// Extents returns the half size of the body's axis-aligned bounding box.
func (b *Body) Extents() r2.Vec {
	c, s := math.Abs(math.Cos(b.Angle)), math.Abs(math.Sin(b.Angle))
	return r2.Vec{
		X: b.HalfWidth*c + b.HalfHeight*s,
		Y: b.HalfWidth*s + b.HalfHeight*c,
	}
}

// Speed returns the magnitude of the linear velocity.
func (b *Body) Speed() float64 { return r2.Norm(b.Velocity) }

// toLocal converts a world point to body space.
func (b *Body) toLocal(p r2.Vec) r2.Vec {
	return b.rotation().applyT(r2.Sub(p, b.Position))
}

// toWorld converts a body-space point to world space.
func (b *Body) toWorld(p r2.Vec) r2.Vec {
	return r2.Add(b.Position, b.rotation().apply(p))
}

// rot is a 2x2 rotation matrix stored as cos/sin. Columns are the body's
// local x and y axes in world space.
type rot struct{ c, s float64 }

func newRot(angle float64) rot {
	return rot{c: math.Cos(angle), s: math.Sin(angle)}
}

func (m rot) col1() r2.Vec { return r2.Vec{X: m.c, Y: m.s} }
func (m rot) col2() r2.Vec { return r2.Vec{X: -m.s, Y: m.c} }

func (m rot) apply(v r2.Vec) r2.Vec {
	return r2.Vec{X: m.c*v.X - m.s*v.Y, Y: m.s*v.X + m.c*v.Y}
}

func (m rot) applyT(v r2.Vec) r2.Vec {
	return r2.Vec{X: m.c*v.X + m.s*v.Y, Y: -m.s*v.X + m.c*v.Y}
}

// crossSV is the cross product of a scalar angular velocity and a vector.
func crossSV(w float64, v r2.Vec) r2.Vec {
	return r2.Vec{X: -w * v.Y, Y: w * v.X}
}
