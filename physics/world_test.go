package physics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(DefaultConfig(), Container{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func TestNewWorldBuildsThreeWalls(t *testing.T) {
	w := newTestWorld(t)
	if got := len(w.Walls()); got != 3 {
		t.Fatalf("walls = %d, want 3", got)
	}
	if w.HasTopWall() {
		t.Fatal("top wall should not exist at creation")
	}
	if !w.TopWallPending() {
		t.Fatal("top wall should be scheduled")
	}

	bottom := w.Walls()[0]
	want := r2.Vec{X: 400, Y: 700}
	if diff := cmp.Diff(want, bottom.Position); diff != "" {
		t.Errorf("bottom wall center mismatch (-want +got):\n%s", diff)
	}
	if bottom.HalfWidth != 600 || bottom.HalfHeight != 100 {
		t.Errorf("bottom wall half size = %v x %v", bottom.HalfWidth, bottom.HalfHeight)
	}
	if !bottom.Static || bottom.invMass != 0 {
		t.Error("walls must be static with zero inverse mass")
	}
}

func TestNewWorldRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		container Container
	}{
		{"zero width", func(*Config) {}, Container{Width: 0, Height: 600}},
		{"nan height", func(*Config) {}, Container{Width: 800, Height: math.NaN()}},
		{"zero timestep", func(c *Config) { c.TimeStep = 0 }, Container{Width: 800, Height: 600}},
		{"restitution above one", func(c *Config) { c.Restitution = 2 }, Container{Width: 800, Height: 600}},
		{"no velocity iterations", func(c *Config) { c.Iterations.Velocity = 0 }, Container{Width: 800, Height: 600}},
		{"nan gravity", func(c *Config) { c.Gravity.Y = math.NaN() }, Container{Width: 800, Height: 600}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := NewWorld(cfg, tt.container)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRestingBodyStaysPut(t *testing.T) {
	w := newTestWorld(t)
	b := w.AddBody(400, 575, 50, 50, 0)
	start := b.Position

	for i := 0; i < 100; i++ {
		w.Step()
	}

	const eps = 0.5
	if d := r2.Norm(r2.Sub(b.Position, start)); d > eps {
		t.Errorf("resting body drifted %v px (pos %v)", d, b.Position)
	}
	if math.Abs(b.Angle) > 1e-3 {
		t.Errorf("resting body rotated to %v rad", b.Angle)
	}
	if b.State() != Settled {
		t.Errorf("state = %v, want settled", b.State())
	}
}

func TestFallingBodyLandsInsideContainer(t *testing.T) {
	w := newTestWorld(t)
	b := w.AddBody(400, 100, 60, 40, 0)
	for i := 0; i < 600; i++ {
		w.Step()
	}
	bottom := b.Position.Y + b.Extents().Y
	if bottom > 600+w.cfg.Slop+1 {
		t.Errorf("body sank below the floor: bottom edge at %v", bottom)
	}
	if b.Position.Y < 500 {
		t.Errorf("body did not land: y = %v", b.Position.Y)
	}
	if b.Speed() > w.cfg.SettleSpeed {
		t.Errorf("body still moving at %v px/s", b.Speed())
	}
}

func TestStackedBodiesDoNotInterpenetrate(t *testing.T) {
	w := newTestWorld(t)
	lower := w.AddBody(400, 575, 80, 50, 0)
	upper := w.AddBody(400, 520, 80, 50, 0)
	for i := 0; i < 300; i++ {
		w.Step()
	}
	gap := (lower.Position.Y - lower.HalfHeight) - (upper.Position.Y + upper.HalfHeight)
	if gap < -2*w.cfg.Slop-1 {
		t.Errorf("stacked boxes overlap by %v px", -gap)
	}
}

func TestDragClampsToLeftEdge(t *testing.T) {
	tests := []struct {
		name string
		y    float64
	}{
		{"on the floor", 575},
		{"mid-air", 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			b := w.AddBody(400, tt.y, 50, 50, 0)

			got, ok := w.PointerDown(400, tt.y)
			if !ok || got != b {
				t.Fatal("PointerDown missed the body")
			}
			w.PointerMove(-1000, tt.y)
			for i := 0; i < 120; i++ {
				w.Step()
				if v := b.Velocity; math.Abs(v.X) > w.cfg.MaxDragSpeed || math.Abs(v.Y) > w.cfg.MaxDragSpeed {
					t.Fatalf("step %d: drag velocity %v exceeds the cap", i, v)
				}
				if b.Position.X < b.HalfWidth {
					t.Fatalf("step %d: body left the container at x=%v", i, b.Position.X)
				}
			}

			// Held against the wall, the body rests there instead of bouncing.
			for i := 0; i < 30; i++ {
				w.Step()
				if p := w.Placement(b); p.X < 0 || p.X > 1e-6 {
					t.Fatalf("step %d: placement X = %v, want the left edge (0)", i, p.X)
				}
				if b.Velocity.X > 1e-6 {
					t.Fatalf("step %d: velocity X = %v, want no rebound", i, b.Velocity.X)
				}
			}
		})
	}
}

func TestFreeBodyBouncesOffWall(t *testing.T) {
	w := newTestWorld(t)
	b := w.AddBody(400, 300, 50, 50, 0)
	b.Velocity = r2.Vec{X: -1200}
	w.cfg.Gravity = r2.Vec{}
	for i := 0; i < 60 && b.Velocity.X <= 0; i++ {
		w.Step()
	}
	if b.Velocity.X <= 0 {
		t.Errorf("free body hitting the wall kept velocity X = %v, want a rebound", b.Velocity.X)
	}
}

func TestDragRestoresInertiaExactly(t *testing.T) {
	for _, inertia := range []float64{0, 1234.5678, 1e-300} {
		w := newTestWorld(t)
		b := w.AddBody(400, 300, 50, 50, 0)
		b.SetInertia(inertia)

		w.PointerDown(400, 300)
		if !math.IsInf(b.Inertia(), 1) {
			t.Fatalf("inertia during drag = %v, want +Inf", b.Inertia())
		}
		if b.Velocity != (r2.Vec{}) || b.AngularVelocity != 0 {
			t.Error("drag start should zero the body's motion")
		}
		for i := 0; i < 10; i++ {
			w.Step()
		}
		w.PointerUp()

		if b.Inertia() != inertia {
			t.Errorf("inertia after release = %v, want exactly %v", b.Inertia(), inertia)
		}
		if b.hasSavedInertia {
			t.Error("saved inertia should be cleared after release")
		}
		if b.State() != Released {
			t.Errorf("state = %v, want released", b.State())
		}
	}
}

func TestReleaseWithoutDragKeepsInertia(t *testing.T) {
	w := newTestWorld(t)
	b := w.AddBody(400, 300, 50, 50, 0)
	before := b.Inertia()
	w.PointerUp()
	w.PointerLeave()
	if b.Inertia() != before {
		t.Errorf("inertia changed to %v without a drag", b.Inertia())
	}
}

func TestPointerLeaveKeepsVelocity(t *testing.T) {
	w := newTestWorld(t)
	b := w.AddBody(400, 300, 50, 50, 0)
	w.PointerDown(400, 300)
	w.PointerMove(600, 300)
	for i := 0; i < 3; i++ {
		w.Step()
	}
	v := b.Velocity
	if v.X <= 0 {
		t.Fatalf("drag should have moved the body right, v = %v", v)
	}
	w.PointerLeave()
	if w.Dragging() != nil {
		t.Fatal("leave should detach the drag")
	}
	if b.Velocity != v {
		t.Errorf("velocity after leave = %v, want %v", b.Velocity, v)
	}
}

func TestOneDragConstraintPerWorld(t *testing.T) {
	w := newTestWorld(t)
	a := w.AddBody(200, 300, 50, 50, 0)
	b := w.AddBody(600, 300, 50, 50, 0)
	aInertia := a.Inertia()

	var started, ended []BodyID
	w.OnDragStart(func(x *Body) { started = append(started, x.ID) })
	w.OnDragEnd(func(x *Body) { ended = append(ended, x.ID) })

	w.PointerDown(200, 300)
	w.PointerDown(600, 300)

	if d := w.Dragging(); d == nil || d.Body != b {
		t.Fatal("second press should drag the second body")
	}
	if a.Inertia() != aInertia {
		t.Error("first body's inertia was not restored")
	}
	if diff := cmp.Diff([]BodyID{a.ID, b.ID}, started); diff != "" {
		t.Errorf("drag starts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]BodyID{a.ID}, ended); diff != "" {
		t.Errorf("drag ends mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerDownPicksTopMost(t *testing.T) {
	w := newTestWorld(t)
	w.AddBody(400, 300, 100, 100, 0)
	top := w.AddBody(410, 300, 100, 100, 0)
	if got, _ := w.PointerDown(405, 300); got != top {
		t.Error("expected the later body to be picked")
	}
	if _, ok := w.PointerDown(10, 10); ok {
		t.Error("press on empty space should not start a drag")
	}
	if w.Dragging() != nil {
		t.Error("press on empty space should leave no constraint")
	}
}

func TestTopWallAfterDelay(t *testing.T) {
	w := newTestWorld(t)
	fired := 0
	w.OnTopWall(func(float64) { fired++ })

	for i := 0; i < 170; i++ {
		w.Advance(1.0 / 60)
	}
	if w.HasTopWall() {
		t.Fatalf("top wall added early at t=%v", w.Time())
	}
	for i := 0; i < 20; i++ {
		w.Advance(1.0 / 60)
	}
	if !w.HasTopWall() {
		t.Fatalf("top wall missing at t=%v", w.Time())
	}
	if fired != 1 {
		t.Errorf("OnTopWall fired %d times, want 1", fired)
	}
	if len(w.Walls()) != 4 {
		t.Errorf("walls = %d, want 4", len(w.Walls()))
	}
	top := w.Walls()[3]
	if top.Position.Y != -100 {
		t.Errorf("top wall center y = %v, want -100", top.Position.Y)
	}
}

func TestCloseCancelsTopWall(t *testing.T) {
	w := newTestWorld(t)
	w.AddBody(400, 300, 50, 50, 0)
	w.OnTopWall(func(float64) { t.Error("top wall fired after Close") })
	w.PointerDown(400, 300)

	w.Close()
	if w.Subscribers() != 0 {
		t.Errorf("subscribers = %d after Close", w.Subscribers())
	}
	if len(w.Bodies()) != 0 || w.Dragging() != nil {
		t.Error("Close should remove bodies and the drag")
	}
	if w.TopWallPending() {
		t.Error("top wall timer should be cancelled")
	}
	for i := 0; i < 400; i++ {
		w.Advance(1.0 / 60)
	}
	if w.HasTopWall() {
		t.Error("closed world grew a top wall")
	}
	w.Close()
}

func TestAdvanceCapsSubSteps(t *testing.T) {
	w := newTestWorld(t)
	if n := w.Advance(10); n != w.cfg.MaxSubSteps {
		t.Errorf("Advance(10) ran %d steps, want %d", n, w.cfg.MaxSubSteps)
	}
	if n := w.Advance(math.NaN()); n != 0 {
		t.Errorf("Advance(NaN) ran %d steps", n)
	}
	if n := w.Advance(-1); n != 0 {
		t.Errorf("Advance(-1) ran %d steps", n)
	}
}

func TestSpawnLayout(t *testing.T) {
	w := newTestWorld(t)
	sizes := []r2.Vec{{X: 120, Y: 60}, {X: 80, Y: 80}, {X: 900, Y: 50}}
	bodies := w.Spawn(sizes)
	if len(bodies) != 3 {
		t.Fatalf("spawned %d bodies", len(bodies))
	}
	for i, b := range bodies {
		if want := -500 - float64(i)*200; b.Position.Y != want {
			t.Errorf("body %d y = %v, want %v", i, b.Position.Y, want)
		}
		if math.Abs(b.Angle) >= math.Pi/2 {
			t.Errorf("body %d angle %v out of range", i, b.Angle)
		}
	}
	for i, b := range bodies[:2] {
		if b.Position.X < sizes[i].X/2 || b.Position.X > 800-sizes[i].X/2 {
			t.Errorf("body %d x = %v escapes the container", i, b.Position.X)
		}
	}
	if bodies[2].Position.X != 400 {
		t.Errorf("oversized body x = %v, want centered 400", bodies[2].Position.X)
	}
}

func TestSpawnIsSeeded(t *testing.T) {
	sizes := []r2.Vec{{X: 50, Y: 50}, {X: 60, Y: 40}}
	a := newTestWorld(t).Spawn(sizes)
	b := newTestWorld(t).Spawn(sizes)
	for i := range a {
		if a[i].Position != b[i].Position || a[i].Angle != b[i].Angle {
			t.Errorf("body %d differs between equally seeded worlds", i)
		}
	}
}

func TestPlacementClamps(t *testing.T) {
	w := newTestWorld(t)
	b := w.AddBody(0, 0, 40, 20, math.Pi/2)

	b.Position = r2.Vec{X: -500, Y: -10000}
	got := w.Placement(b)
	want := Placement{X: 0, Y: -60, Rotation: 90}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("placement mismatch (-want +got):\n%s", diff)
	}

	b.Position = r2.Vec{X: 5000, Y: 5000}
	got = w.Placement(b)
	if got.X != 760 || got.Y != 580 {
		t.Errorf("placement = %+v, want X=760 Y=580", got)
	}
}

func TestReinitializeRebuildsWalls(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 200; i++ {
		w.Step()
	}
	if err := w.Reinitialize(Container{Width: 1000, Height: 500}); err != nil {
		t.Fatal(err)
	}
	if len(w.Walls()) != 4 || !w.HasTopWall() {
		t.Fatal("rebuilt walls should keep the top wall")
	}
	if got := w.Walls()[2].Position.X; got != 1100 {
		t.Errorf("right wall x = %v, want 1100", got)
	}
	if err := w.Reinitialize(Container{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Reinitialize(empty) err = %v", err)
	}
}

func TestRemoveBodyEndsDrag(t *testing.T) {
	w := newTestWorld(t)
	b := w.AddBody(400, 300, 50, 50, 0)
	w.PointerDown(400, 300)
	w.RemoveBody(b)
	if w.Dragging() != nil || !b.Removed() || len(w.Bodies()) != 0 {
		t.Error("RemoveBody should end the drag and remove the body")
	}
}

func TestTimerStop(t *testing.T) {
	w := newTestWorld(t)
	ran := false
	tm := w.After(100*time.Millisecond, func() { ran = true })
	if !tm.Stop() {
		t.Error("Stop on a pending timer should report true")
	}
	if tm.Stop() {
		t.Error("second Stop should report false")
	}
	for i := 0; i < 20; i++ {
		w.Step()
	}
	if ran {
		t.Error("stopped timer fired")
	}
}

func TestSettledBodyIgnoresContactJitter(t *testing.T) {
	w := newTestWorld(t)
	b := w.AddBody(400, 575, 50, 50, 0)
	b.state = Settled

	// Brief wobbles above the settle speed, as a box on its narrow edge
	// shows, keep the body settled.
	for i := 0; i < 50; i++ {
		b.Velocity = r2.Vec{X: 1.5 * w.cfg.SettleSpeed}
		if i%2 == 0 {
			b.AngularVelocity = 3 * w.cfg.SettleAngularSpeed
		} else {
			b.AngularVelocity = 0
		}
		w.updateStates()
		if b.State() != Settled {
			t.Fatalf("tick %d: state = %v, want settled", i, b.State())
		}
	}

	// A real knock wakes it once it lasts.
	b.Velocity = r2.Vec{X: 300}
	for i := 0; i < wakeSteps-1; i++ {
		w.updateStates()
	}
	if b.State() != Settled {
		t.Fatalf("woke after %d fast steps, want %d", wakeSteps-1, wakeSteps)
	}
	w.updateStates()
	if b.State() != Falling {
		t.Errorf("state = %v, want falling", b.State())
	}
}
