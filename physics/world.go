// Package physics is a small 2D rigid-body simulation of oriented boxes
// inside a rectangular container: gravity, box-box contacts solved with
// sequential impulses, and a pointer drag that overrides a body's motion.
//
// A World is single-threaded and advanced by its owner, normally once per
// rendered frame through Advance, which runs fixed steps of Config.TimeStep.
package physics

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/phanxgames/scrollfx/internal/diag"
	"github.com/phanxgames/scrollfx/internal/signal"
)

// Container is the size of the area bodies live in. Walls sit just outside it.
type Container struct {
	Width, Height float64
}

// Placement is where a body should be drawn: the top-left corner of its
// unrotated box, clamped so it never renders outside the container, and its
// rotation in degrees.
type Placement struct {
	X, Y     float64
	Rotation float64
}

// World owns the bodies, walls, and the drag constraint of one simulation.
type World struct {
	cfg       Config
	container Container

	bodies   []*Body
	walls    []*Body
	topWall  *Body
	arbiters []arbiter
	nextID   BodyID

	rng  *rand.Rand
	drag *DragConstraint

	clock        float64
	accumulator  float64
	steps        int
	timers       []*Timer
	topWallTimer *Timer

	dragStart signal.Registry[*Body]
	dragEnd   signal.Registry[*Body]
	topWallUp signal.Registry[float64]

	overrun  diag.Once
	unstable diag.Once
	closed   bool
}

// NewWorld validates cfg, builds the bottom, left, and right walls around
// container, and schedules the top wall after cfg.TopWallDelay of simulated
// time.
func NewWorld(cfg Config, container Container) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !(container.Width > 0) || !(container.Height > 0) ||
		math.IsInf(container.Width, 0) || math.IsInf(container.Height, 0) {
		return nil, fmt.Errorf("%w: container %vx%v", ErrInvalidConfig, container.Width, container.Height)
	}
	w := &World{
		cfg:       cfg,
		container: container,
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	w.buildWalls()
	w.topWallTimer = w.After(cfg.TopWallDelay, w.addTopWall)
	return w, nil
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Container returns the current container geometry snapshot.
func (w *World) Container() Container { return w.container }

// Bodies returns the dynamic bodies in spawn order. The slice is owned by
// the world.
func (w *World) Bodies() []*Body { return w.bodies }

// Walls returns the static walls.
func (w *World) Walls() []*Body { return w.walls }

// HasTopWall reports whether the top wall has been added.
func (w *World) HasTopWall() bool { return w.topWall != nil }

// TopWallPending reports whether the top wall is still scheduled.
func (w *World) TopWallPending() bool { return w.topWallTimer.Pending() }

// Time returns the simulated time in seconds.
func (w *World) Time() float64 { return w.clock }

// Steps returns the number of fixed steps run so far.
func (w *World) Steps() int { return w.steps }

// Closed reports whether Close was called.
func (w *World) Closed() bool { return w.closed }

// OnDragStart registers fn to run when a body is grabbed.
func (w *World) OnDragStart(fn func(*Body)) signal.Handle { return w.dragStart.Add(fn) }

// OnDragEnd registers fn to run when a drag ends by release or pointer leave.
func (w *World) OnDragEnd(fn func(*Body)) signal.Handle { return w.dragEnd.Add(fn) }

// OnTopWall registers fn to run once the top wall is in place. fn receives
// the simulated time.
func (w *World) OnTopWall(fn func(at float64)) signal.Handle { return w.topWallUp.Add(fn) }

// After schedules fn to run once delay of simulated time has elapsed.
func (w *World) After(delay time.Duration, fn func()) *Timer {
	t := &Timer{at: w.clock + delay.Seconds(), fn: fn}
	w.timers = append(w.timers, t)
	return t
}

func (w *World) newBody(pos r2.Vec, width, height, angle float64, static bool) *Body {
	w.nextID++
	return newBody(w.nextID, pos, width, height, angle, static, w.cfg)
}

func (w *World) addWall(label string, cx, cy, width, height float64) *Body {
	b := w.newBody(r2.Vec{X: cx, Y: cy}, width, height, 0, true)
	b.Label = label
	w.walls = append(w.walls, b)
	return b
}

func (w *World) buildWalls() {
	W, H, t := w.container.Width, w.container.Height, w.cfg.WallThickness
	w.walls = w.walls[:0]
	w.addWall("bottom", W/2, H+t/2, W+2*t, t)
	w.addWall("left", -t/2, H/2, t, H+2*t)
	w.addWall("right", W+t/2, H/2, t, H+2*t)
	if w.topWall != nil {
		w.topWall = w.addWall("top", W/2, -t/2, W+2*t, t)
	}
}

func (w *World) addTopWall() {
	if w.topWall != nil || w.closed {
		return
	}
	W, t := w.container.Width, w.cfg.WallThickness
	w.topWall = w.addWall("top", W/2, -t/2, W+2*t, t)
	w.topWallUp.Emit(w.clock)
}

// AddBody adds a dynamic box centered at (x, y).
func (w *World) AddBody(x, y, width, height, angle float64) *Body {
	b := w.newBody(r2.Vec{X: x, Y: y}, width, height, angle, false)
	w.bodies = append(w.bodies, b)
	return b
}

// Spawn drops one box per size above the container: random X that keeps the
// box inside the container horizontally, Y stacked upward from SpawnY by
// SpawnSpacing, and a random angle in (-π/2, π/2).
func (w *World) Spawn(sizes []r2.Vec) []*Body {
	out := make([]*Body, 0, len(sizes))
	for i, sz := range sizes {
		x := w.container.Width / 2
		if free := w.container.Width - sz.X; free > 0 {
			x = w.rng.Float64()*free + sz.X/2
		}
		y := w.cfg.SpawnY - float64(i)*w.cfg.SpawnSpacing
		angle := (w.rng.Float64() - 0.5) * math.Pi
		out = append(out, w.AddBody(x, y, sz.X, sz.Y, angle))
	}
	return out
}

// RemoveBody takes b out of the simulation, ending its drag if needed.
func (w *World) RemoveBody(b *Body) {
	if w.drag != nil && w.drag.Body == b {
		w.endDrag()
	}
	for i, o := range w.bodies {
		if o == b {
			copy(w.bodies[i:], w.bodies[i+1:])
			w.bodies[len(w.bodies)-1] = nil
			w.bodies = w.bodies[:len(w.bodies)-1]
			b.removed = true
			return
		}
	}
}

// Advance runs as many fixed steps as frameDt (seconds) covers, carrying the
// remainder to the next call. At most MaxSubSteps run per call; time beyond
// that is dropped so a stalled frame cannot spiral. It returns the number of
// steps run.
func (w *World) Advance(frameDt float64) int {
	if w.closed || !(frameDt > 0) || math.IsInf(frameDt, 0) {
		return 0
	}
	dt := w.cfg.TimeStep
	w.accumulator += frameDt
	n := 0
	for w.accumulator >= dt && n < w.cfg.MaxSubSteps {
		w.Step()
		w.accumulator -= dt
		n++
	}
	if w.accumulator >= dt {
		w.overrun.Logf("[physics] frame of %.3fs needs more than %d steps; dropping %.3fs",
			frameDt, w.cfg.MaxSubSteps, w.accumulator)
		w.accumulator = 0
	}
	return n
}

// Step runs one fixed step of Config.TimeStep.
func (w *World) Step() {
	if w.closed {
		return
	}
	dt := w.cfg.TimeStep

	for _, b := range w.bodies {
		b.Velocity = r2.Add(b.Velocity, r2.Scale(dt, w.cfg.Gravity))
		f := math.Pow(1-b.FrictionAir, dt*60)
		b.Velocity = r2.Scale(f, b.Velocity)
		b.AngularVelocity *= f
	}
	w.driveDrag(dt)

	w.detect()
	for i := range w.arbiters {
		w.arbiters[i].preStep(w.cfg)
	}
	for it := 0; it < w.cfg.Iterations.Velocity; it++ {
		for i := range w.arbiters {
			w.arbiters[i].applyImpulse()
		}
	}
	w.clampDragVelocity()

	for _, b := range w.bodies {
		b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))
		b.Angle += b.AngularVelocity * dt
	}
	for it := 0; it < w.cfg.Iterations.Position; it++ {
		for i := range w.arbiters {
			w.arbiters[i].correctPositions(w.cfg)
		}
	}
	w.clampDragPosition()
	w.stabilize()
	w.updateStates()

	w.clock += dt
	w.steps++
	w.runTimers()
}

// detect rebuilds the contact manifolds for this step.
func (w *World) detect() {
	for _, b := range w.bodies {
		b.detectPos = b.Position
	}
	w.arbiters = w.arbiters[:0]
	for i, a := range w.bodies {
		for _, wall := range w.walls {
			w.pair(wall, a)
		}
		for _, b := range w.bodies[i+1:] {
			w.pair(a, b)
		}
	}
}

func (w *World) pair(a, b *Body) {
	if !aabbOverlap(a, b) {
		return
	}
	arb := arbiter{
		a:           a,
		b:           b,
		friction:    math.Min(a.Friction, b.Friction),
		restitution: math.Max(a.Restitution, b.Restitution),
	}
	// A held body presses into whatever it touches; it never bounces off.
	if w.dragged(a) || w.dragged(b) {
		arb.restitution = 0
	}
	arb.n = collide(&arb.contacts, a, b)
	if arb.n > 0 {
		w.arbiters = append(w.arbiters, arb)
	}
}

// stabilize puts back any body whose state went non-finite.
func (w *World) stabilize() {
	for _, b := range w.bodies {
		if finiteVec(b.Position) && finiteVec(b.Velocity) &&
			!math.IsNaN(b.Angle) && !math.IsInf(b.Angle, 0) &&
			!math.IsNaN(b.AngularVelocity) && !math.IsInf(b.AngularVelocity, 0) {
			continue
		}
		w.unstable.Logf("[physics] body %d went non-finite; resetting its motion", b.ID)
		b.Position = b.detectPos
		b.Velocity = r2.Vec{}
		b.AngularVelocity = 0
		if math.IsNaN(b.Angle) || math.IsInf(b.Angle, 0) {
			b.Angle = 0
		}
	}
}

// A settled body wakes only after moving faster than wakeFactor times the
// settle speeds for wakeSteps steps in a row, so contact jitter on a resting
// body does not flip its state.
const (
	wakeFactor = 2
	wakeSteps  = 4
)

func (w *World) updateStates() {
	for _, b := range w.bodies {
		if b.state == Dragging {
			continue
		}
		speed, spin := b.Speed(), math.Abs(b.AngularVelocity)
		slow := speed < w.cfg.SettleSpeed && spin < w.cfg.SettleAngularSpeed
		if slow {
			b.settleRun++
		} else {
			b.settleRun = 0
		}
		fast := speed > wakeFactor*w.cfg.SettleSpeed || spin > wakeFactor*w.cfg.SettleAngularSpeed
		if fast {
			b.wakeRun++
		} else {
			b.wakeRun = 0
		}
		switch b.state {
		case Falling, Released:
			if b.settleRun >= w.cfg.SettleSteps {
				b.state = Settled
			}
		case Settled:
			if b.wakeRun >= wakeSteps {
				b.state = Falling
			}
		}
	}
}

// Placement returns where b should be drawn. X is clamped to the container;
// Y may go up to three box heights above it so spawning bodies can fall in.
func (w *World) Placement(b *Body) Placement {
	bw, bh := 2*b.HalfWidth, 2*b.HalfHeight
	return Placement{
		X:        clampRange(b.Position.X-b.HalfWidth, 0, w.container.Width-bw),
		Y:        clampRange(b.Position.Y-b.HalfHeight, -3*bh, w.container.Height-bh),
		Rotation: b.Angle * 180 / math.Pi,
	}
}

// Reinitialize replaces the container geometry and rebuilds the walls. Bodies
// keep their state. Container size is not tracked automatically.
func (w *World) Reinitialize(container Container) error {
	if !(container.Width > 0) || !(container.Height > 0) ||
		math.IsInf(container.Width, 0) || math.IsInf(container.Height, 0) {
		return fmt.Errorf("%w: container %vx%v", ErrInvalidConfig, container.Width, container.Height)
	}
	w.container = container
	w.buildWalls()
	return nil
}

// Close cancels the top wall timer, releases any drag, removes every body,
// and drops all subscriptions. A closed world ignores further input.
func (w *World) Close() {
	if w.closed {
		return
	}
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = nil
	w.endDrag()
	for _, b := range w.bodies {
		b.removed = true
	}
	for _, b := range w.walls {
		b.removed = true
	}
	w.bodies = nil
	w.walls = nil
	w.topWall = nil
	w.arbiters = nil
	w.dragStart.Clear()
	w.dragEnd.Clear()
	w.topWallUp.Clear()
	w.closed = true
}

// Subscribers returns the number of live event subscriptions.
func (w *World) Subscribers() int {
	return w.dragStart.Len() + w.dragEnd.Len() + w.topWallUp.Len()
}

// clampRange clamps v to [lo, hi], preferring lo when the range is empty.
func clampRange(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func finiteVec(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
