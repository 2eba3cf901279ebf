package scrollfx

type syntheticKind uint8

const (
	syntheticScroll syntheticKind = iota
	syntheticPress
	syntheticMove
	syntheticRelease
	syntheticLeave
)

// syntheticEvent is a single queued input event. Coordinates are page
// coordinates, the same space real pointer input arrives in.
type syntheticEvent struct {
	kind             syntheticKind
	x, y             float64
	offset, velocity float64
}

// InjectScroll queues a scroll to offset with the given velocity. The event
// is consumed at the start of a later Tick, one event per frame.
func (e *Engine) InjectScroll(offset, velocity float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind:   syntheticScroll,
		offset: offset, velocity: velocity,
	})
}

// InjectScrollRamp queues a scroll from one offset to another spread evenly
// over frames frames, reporting the matching velocity at 60 frames per
// second.
func (e *Engine) InjectScrollRamp(from, to float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	velocity := (to - from) / float64(frames) * 60
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		e.InjectScroll(from+(to-from)*t, velocity)
	}
}

// InjectPress queues a pointer press at (x, y).
func (e *Engine) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticPress, x: x, y: y})
}

// InjectMove queues a pointer move to (x, y) with the button held. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (e *Engine) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectRelease queues a pointer release at (x, y).
func (e *Engine) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticRelease, x: x, y: y})
}

// InjectLeave queues the pointer leaving the page.
func (e *Engine) InjectLeave() {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticLeave})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// PendingInput returns the number of queued synthetic events.
func (e *Engine) PendingInput() int {
	return len(e.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same entry points as real input. Returns true if an event was
// consumed.
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case syntheticScroll:
		e.Scroll(evt.offset, evt.velocity)
	case syntheticPress:
		e.PointerDown(evt.x, evt.y)
	case syntheticMove:
		e.PointerMove(evt.x, evt.y)
	case syntheticRelease:
		e.PointerMove(evt.x, evt.y)
		e.PointerUp()
	case syntheticLeave:
		e.PointerLeave()
	}
	return true
}
