package scrollfx

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/phanxgames/scrollfx/internal/diag"
	"github.com/phanxgames/scrollfx/internal/signal"
)

// PinRegion is the scrollable distance over which progress runs 0 → 1.
// It is a snapshot of the container geometry taken at init; re-capture it
// with ProgressSource.Reinitialize.
type PinRegion struct {
	StartOffset float64
	ExtentPx    float64
}

// Degenerate reports whether the region has no usable extent.
func (r PinRegion) Degenerate() bool {
	return !(r.ExtentPx > 0) || math.IsInf(r.ExtentPx, 0)
}

// Progress maps a raw scroll offset to [0, 1]. ok is false for a degenerate
// region, in which case the progress is 0.
func (r PinRegion) Progress(rawScrollOffset float64) (progress float64, ok bool) {
	if r.Degenerate() {
		return 0, false
	}
	return Clamp01((rawScrollOffset - r.StartOffset) / r.ExtentPx), true
}

// ProgressSample is one observation of a pin region. Immutable; superseded by
// the next sample.
type ProgressSample struct {
	Value       float64 // normalized progress in [0, 1]
	Velocity    float64 // signed scroll velocity, forwarded from the input source
	TimestampMs float64
}

// AtEdge reports whether the sample sits at either end of the scroll range.
func (s ProgressSample) AtEdge() bool {
	return AtEdge(s.Value)
}

// Observe normalizes a raw scroll offset against region. The velocity is not
// computed here; it is forwarded as given (NaN/Inf become 0).
func Observe(region PinRegion, rawScrollOffset, velocity, timestampMs float64) ProgressSample {
	v, _ := region.Progress(rawScrollOffset)
	return ProgressSample{
		Value:       v,
		Velocity:    finite(velocity, 0),
		TimestampMs: timestampMs,
	}
}

// scrubFrequency converts a scrub lag in seconds into the angular frequency
// of a critically damped spring that settles in roughly that time.
func scrubFrequency(scrub float64) float64 {
	return 5 / scrub
}

const scrubSnapEpsilon = 1e-4

// ProgressSource wraps a pin region and emits a ProgressSample every time the
// scroll input is observed.
type ProgressSource struct {
	region PinRegion

	// Scrub, when > 0, makes the emitted value trail the raw value by about
	// Scrub seconds through a critically damped spring.
	Scrub float64

	last      ProgressSample
	hasLast   bool
	springPos float64
	springVel float64

	handlers   signal.Registry[ProgressSample]
	degenerate diag.Once
	closed     bool
}

// NewProgressSource creates a source for region. A degenerate region is
// accepted and reported once when first observed.
func NewProgressSource(region PinRegion) *ProgressSource {
	return &ProgressSource{region: region}
}

// Region returns the geometry snapshot in use.
func (p *ProgressSource) Region() PinRegion {
	return p.region
}

// Reinitialize replaces the geometry snapshot. Resize handling is not
// automatic; callers re-capture geometry explicitly through this method.
func (p *ProgressSource) Reinitialize(region PinRegion) {
	p.region = region
	p.degenerate.Reset()
	p.hasLast = false
	p.springVel = 0
}

// OnUpdate registers a callback fired with every emitted sample.
func (p *ProgressSource) OnUpdate(fn func(ProgressSample)) signal.Handle {
	return p.handlers.Add(fn)
}

// Last returns the most recent sample and whether one exists.
func (p *ProgressSource) Last() (ProgressSample, bool) {
	return p.last, p.hasLast
}

// Observe samples the region at rawScrollOffset, applies scrub smoothing when
// enabled, stores the sample, and notifies subscribers.
func (p *ProgressSource) Observe(rawScrollOffset, velocity, timestampMs float64) ProgressSample {
	if p.region.Degenerate() {
		p.degenerate.Logf("[scrollfx] degenerate pin region (extent %v); progress held at 0", p.region.ExtentPx)
	}
	s := Observe(p.region, finite(rawScrollOffset, p.region.StartOffset), velocity, timestampMs)
	if p.Scrub > 0 {
		s.Value = p.scrub(s.Value, timestampMs)
	}
	p.last = s
	p.hasLast = true
	if !p.closed {
		p.handlers.Emit(s)
	}
	return s
}

func (p *ProgressSource) scrub(target, timestampMs float64) float64 {
	dt := 0.0
	if p.hasLast {
		dt = (timestampMs - p.last.TimestampMs) / 1000
	}
	if !p.hasLast || !(dt > 0) || AtEdge(target) {
		p.springPos, p.springVel = target, 0
		return target
	}
	spring := harmonica.NewSpring(dt, scrubFrequency(p.Scrub), 1.0)
	p.springPos, p.springVel = spring.Update(p.springPos, p.springVel, target)
	p.springPos = finite(p.springPos, target)
	p.springVel = finite(p.springVel, 0)
	if math.Abs(p.springPos-target) < scrubSnapEpsilon {
		p.springPos, p.springVel = target, 0
	}
	p.springPos = Clamp01(p.springPos)
	return p.springPos
}

// Close drops every subscription. Observe keeps working but no longer emits.
func (p *ProgressSource) Close() {
	p.closed = true
	p.handlers.Clear()
}

// Subscribers returns the number of live OnUpdate callbacks.
func (p *ProgressSource) Subscribers() int {
	return p.handlers.Len()
}
