package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DragConstraint ties a point of a body to the pointer. A World holds at most
// one, and only while the pointer is down on a body.
type DragConstraint struct {
	Body        *Body
	AnchorLocal r2.Vec // grab point in body space
	Pointer     r2.Vec
	Stiffness   float64
}

// Anchor returns the grab point in world space.
func (d *DragConstraint) Anchor() r2.Vec {
	return d.Body.toWorld(d.AnchorLocal)
}

// BodyAt returns the top-most dynamic body containing the point, or nil.
// Bodies spawned later are on top.
func (w *World) BodyAt(x, y float64) *Body {
	p := r2.Vec{X: x, Y: y}
	for i := len(w.bodies) - 1; i >= 0; i-- {
		if b := w.bodies[i]; b.Contains(p) {
			return b
		}
	}
	return nil
}

// PointerDown starts dragging the top-most body under (x, y). A drag already
// in progress is released first. It returns the grabbed body.
func (w *World) PointerDown(x, y float64) (*Body, bool) {
	if w.closed {
		return nil, false
	}
	if w.drag != nil {
		w.endDrag()
	}
	b := w.BodyAt(x, y)
	if b == nil {
		return nil, false
	}
	p := r2.Vec{X: x, Y: y}
	w.drag = &DragConstraint{
		Body:        b,
		AnchorLocal: b.toLocal(p),
		Pointer:     p,
		Stiffness:   w.cfg.DragStiffness,
	}

	b.savedInertia = b.inertia
	b.hasSavedInertia = true
	b.SetInertia(math.Inf(1))
	b.Velocity = r2.Vec{}
	b.AngularVelocity = 0
	b.state = Dragging
	b.settleRun, b.wakeRun = 0, 0

	w.dragStart.Emit(b)
	return b, true
}

// PointerMove updates the drag target. Without an active drag it does nothing.
func (w *World) PointerMove(x, y float64) {
	if w.drag == nil || math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	w.drag.Pointer = r2.Vec{X: x, Y: y}
}

// PointerUp releases the dragged body. It keeps its current velocity.
func (w *World) PointerUp() {
	w.endDrag()
}

// PointerLeave detaches the drag when the pointer leaves the container, the
// same as a release.
func (w *World) PointerLeave() {
	w.endDrag()
}

// Dragging returns the active drag constraint, or nil.
func (w *World) Dragging() *DragConstraint {
	return w.drag
}

func (w *World) endDrag() {
	d := w.drag
	if d == nil {
		return
	}
	w.drag = nil
	b := d.Body
	if b.hasSavedInertia {
		b.SetInertia(b.savedInertia)
		b.savedInertia = 0
		b.hasSavedInertia = false
	}
	b.state = Released
	b.settleRun, b.wakeRun = 0, 0
	w.dragEnd.Emit(b)
}

// driveDrag steers the dragged body's velocity toward the pointer. Each of
// the constraint passes closes a share of the remaining gap between where the
// anchor will be after this step and the pointer.
func (w *World) driveDrag(dt float64) {
	d := w.drag
	if d == nil {
		return
	}
	b := d.Body
	b.AngularVelocity = 0
	passes := w.cfg.Iterations.Constraint
	share := d.Stiffness / float64(passes)
	for i := 0; i < passes; i++ {
		next := r2.Add(d.Anchor(), r2.Scale(dt, b.Velocity))
		gap := r2.Sub(d.Pointer, next)
		b.Velocity = r2.Add(b.Velocity, r2.Scale(share/dt, gap))
	}
	w.clampDragVelocity()
}

func (w *World) clampDragVelocity() {
	if w.drag == nil {
		return
	}
	b := w.drag.Body
	limit := w.cfg.MaxDragSpeed
	b.Velocity.X = clamp(b.Velocity.X, -limit, limit)
	b.Velocity.Y = clamp(b.Velocity.Y, -limit, limit)
}

// clampDragPosition keeps the dragged body inside the container, inset by
// the half extents of its bounding box. On a clamped side the velocity
// component pointing out of the container is dropped.
func (w *World) clampDragPosition() {
	if w.drag == nil {
		return
	}
	b := w.drag.Body
	e := b.Extents()
	W, H := w.container.Width, w.container.Height
	switch {
	case b.Position.X <= e.X:
		b.Position.X = e.X
		b.Velocity.X = math.Max(0, b.Velocity.X)
	case b.Position.X >= W-e.X:
		b.Position.X = W - e.X
		b.Velocity.X = math.Min(0, b.Velocity.X)
	}
	switch {
	case b.Position.Y <= e.Y:
		b.Position.Y = e.Y
		b.Velocity.Y = math.Max(0, b.Velocity.Y)
	case b.Position.Y >= H-e.Y:
		b.Position.Y = H - e.Y
		b.Velocity.Y = math.Min(0, b.Velocity.Y)
	}
}

// dragged reports whether b is held by the drag constraint.
func (w *World) dragged(b *Body) bool {
	return w.drag != nil && w.drag.Body == b
}
