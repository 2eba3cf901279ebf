package scrollfx

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/phanxgames/scrollfx/internal/diag"
	"github.com/phanxgames/scrollfx/internal/signal"
)

// DefaultVelocityHold is how long a scroll velocity keeps being sampled after
// the Scroll call that reported it.
const DefaultVelocityHold = 100 * time.Millisecond

var (
	// ErrAlreadyMounted is returned by Mount on an engine that is mounted.
	ErrAlreadyMounted = errors.New("scrollfx: engine already mounted")
	// ErrClosed is returned by Mount after Unmount.
	ErrClosed = errors.New("scrollfx: engine closed")
)

// Animator turns a progress sample into property writes.
type Animator interface {
	Animate(s ProgressSample, b *Binding)
}

// AnimatorFunc adapts a function to an Animator.
type AnimatorFunc func(s ProgressSample, b *Binding)

// Animate calls f.
func (f AnimatorFunc) Animate(s ProgressSample, b *Binding) { f(s, b) }

// FrameAnimator is implemented by animators that also run every frame
// independently of scroll, such as a marquee or a tween.
type FrameAnimator interface {
	Frame(dt float64, b *Binding)
}

// Simulator is implemented by animators backed by a physics world. Simulate
// runs after every FrameAnimator.
type Simulator interface {
	Simulate(dt float64, b *Binding)
}

// PointerTarget is implemented by animators that take pointer input.
// PointerDown reports whether the target captured the pointer; move and up
// events then go to that target only.
type PointerTarget interface {
	PointerDown(x, y float64) bool
	PointerMove(x, y float64)
	PointerUp()
	PointerLeave()
}

type closer interface {
	Close()
}

type track struct {
	source   *ProgressSource
	animator Animator
	sample   ProgressSample
	panicked diag.Once
}

// Engine owns the progress sources, animators, and binding of a page. It is
// driven by a Ticker: each tick replays scripted input, samples every source
// against the current scroll offset, runs animators, advances physics, and
// flushes the binding once.
//
// Engine is single-threaded. All methods must be called from the goroutine
// that drives the ticker.
type Engine struct {
	binding *Binding
	tracks  []*track

	tick    signal.Handle
	mounted bool
	closed  bool

	offset   float64
	velocity float64
	clockMs  float64
	frames   int

	// Velocity hold: scrolledAt is the clock of the last Scroll call and
	// fresh is set until the next tick samples it.
	holdMs     float64
	scrolledAt float64
	fresh      bool

	captured PointerTarget
	pointer  Vec2

	injectQueue []syntheticEvent
	runner      *ScriptRunner

	debug         bool
	tooManyTracks diag.Once
}

// NewEngine creates an engine writing through a Binding on r.
func NewEngine(r Resolver) *Engine {
	return &Engine{
		binding: NewBinding(r),
		holdMs:  float64(DefaultVelocityHold) / float64(time.Millisecond),
	}
}

// SetVelocityHold sets how long the last scroll velocity is sampled after
// the Scroll call that reported it. Zero limits it to the next tick.
// Negative values are treated as zero.
func (e *Engine) SetVelocityHold(d time.Duration) {
	e.holdMs = math.Max(0, float64(d)/float64(time.Millisecond))
}

// Binding returns the engine's binding.
func (e *Engine) Binding() *Binding {
	return e.binding
}

// SetDebugMode enables per-frame timing logs.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// Track adds animator driven by a new progress source over region. The
// returned source can be tuned (Scrub) or subscribed to.
func (e *Engine) Track(region PinRegion, animator Animator) *ProgressSource {
	src := NewProgressSource(region)
	e.tracks = append(e.tracks, &track{source: src, animator: animator})
	if e.debug {
		e.debugCheckTracks()
	}
	return src
}

// Untrack removes the track driven by src, closing the source and, when it
// has a Close method, the animator.
func (e *Engine) Untrack(src *ProgressSource) {
	for i, tr := range e.tracks {
		if tr.source != src {
			continue
		}
		e.closeTrack(tr)
		copy(e.tracks[i:], e.tracks[i+1:])
		e.tracks[len(e.tracks)-1] = nil
		e.tracks = e.tracks[:len(e.tracks)-1]
		return
	}
}

// Tracks returns the number of tracks.
func (e *Engine) Tracks() int {
	return len(e.tracks)
}

// Mount registers the engine's tick with t. An engine mounts once.
func (e *Engine) Mount(t Ticker) error {
	if e.closed {
		return ErrClosed
	}
	if e.mounted {
		return fmt.Errorf("mount: %w", ErrAlreadyMounted)
	}
	e.tick = t.Add(e.Tick)
	e.mounted = true
	return nil
}

// Unmount removes the tick callback and tears everything down: sources,
// animators that can be closed (physics worlds among them), pending input,
// and unflushed writes. The engine cannot be mounted again.
func (e *Engine) Unmount() {
	if e.closed {
		return
	}
	e.tick.Remove()
	e.tick = signal.Handle{}
	for _, tr := range e.tracks {
		e.closeTrack(tr)
	}
	e.tracks = nil
	e.captured = nil
	e.injectQueue = nil
	e.runner = nil
	e.binding.Discard()
	e.mounted = false
	e.closed = true
}

func (e *Engine) closeTrack(tr *track) {
	tr.source.Close()
	if c, ok := tr.animator.(closer); ok {
		e.guard(tr, "close", c.Close)
	}
	if e.captured != nil {
		if pt, ok := tr.animator.(PointerTarget); ok && pt == e.captured {
			e.captured = nil
		}
	}
}

// Scroll records the latest scroll offset and velocity. Several calls within
// one frame collapse into the last one. The velocity is sampled by the next
// tick and held for the velocity hold after that, so a source slower than
// the frame rate does not read as stopping between its updates. Past the
// hold, frames without a Scroll call sample a velocity of 0.
func (e *Engine) Scroll(offset, velocity float64) {
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return
	}
	e.offset = offset
	e.velocity = finite(velocity, 0)
	e.scrolledAt = e.clockMs
	e.fresh = true
}

// ScrollOffset returns the last recorded scroll offset.
func (e *Engine) ScrollOffset() float64 {
	return e.offset
}

// Pointer returns the last pointer position seen by the engine.
func (e *Engine) Pointer() Vec2 {
	return e.pointer
}

// PointerDown offers the press to each pointer target in track order until
// one captures it.
func (e *Engine) PointerDown(x, y float64) {
	e.pointer = Vec2{X: x, Y: y}
	if e.captured != nil {
		e.captured.PointerUp()
		e.captured = nil
	}
	for _, tr := range e.tracks {
		pt, ok := tr.animator.(PointerTarget)
		if !ok {
			continue
		}
		if pt.PointerDown(x, y) {
			e.captured = pt
			return
		}
	}
}

// PointerMove forwards a move to the capturing target.
func (e *Engine) PointerMove(x, y float64) {
	e.pointer = Vec2{X: x, Y: y}
	if e.captured != nil {
		e.captured.PointerMove(x, y)
	}
}

// PointerUp releases the capturing target.
func (e *Engine) PointerUp() {
	if e.captured != nil {
		e.captured.PointerUp()
		e.captured = nil
	}
}

// PointerLeave tells every pointer target that the pointer left the page.
func (e *Engine) PointerLeave() {
	for _, tr := range e.tracks {
		if pt, ok := tr.animator.(PointerTarget); ok {
			pt.PointerLeave()
		}
	}
	e.captured = nil
}

// Frames returns the number of ticks run.
func (e *Engine) Frames() int {
	return e.frames
}

// Tick runs one frame. dt is the frame time in seconds.
func (e *Engine) Tick(dt float64) {
	if e.closed {
		return
	}
	if !(dt >= 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	var stats debugStats

	start := e.now()
	if e.runner != nil {
		e.runner.step(e)
	}
	e.processInjectedInput()
	stats.inputTime = e.since(start)

	start = e.now()
	e.clockMs += dt * 1000
	if !e.fresh && e.clockMs-e.scrolledAt > e.holdMs {
		e.velocity = 0
	}
	e.fresh = false
	for _, tr := range e.tracks {
		tr.sample = tr.source.Observe(e.offset, e.velocity, e.clockMs)
	}
	stats.progressTime = e.since(start)

	start = e.now()
	for _, tr := range e.tracks {
		a, s := tr.animator, tr.sample
		e.guard(tr, "animate", func() { a.Animate(s, e.binding) })
	}
	for _, tr := range e.tracks {
		if fa, ok := tr.animator.(FrameAnimator); ok {
			e.guard(tr, "frame", func() { fa.Frame(dt, e.binding) })
		}
	}
	stats.animateTime = e.since(start)

	start = e.now()
	for _, tr := range e.tracks {
		if sim, ok := tr.animator.(Simulator); ok {
			e.guard(tr, "simulate", func() { sim.Simulate(dt, e.binding) })
		}
	}
	stats.physicsTime = e.since(start)

	start = e.now()
	stats.writes = e.binding.Flush()
	stats.flushTime = e.since(start)
	stats.tracks = len(e.tracks)

	e.frames++
	e.debugLog(stats)
}

// guard runs fn and recovers a panic so one faulty animator cannot stop the
// frame. The first panic per track is logged.
func (e *Engine) guard(tr *track, stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			tr.panicked.Logf("[scrollfx] %s: %T panicked: %v", stage, tr.animator, r)
		}
	}()
	fn()
}
