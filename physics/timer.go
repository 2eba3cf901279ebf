package physics

// Timer is a one-shot task scheduled on a World's simulated clock. It fires
// from Step, after the step that crosses its deadline.
type Timer struct {
	at   float64
	fn   func()
	done bool
}

// Stop cancels the timer. It reports whether the call prevented the timer
// from firing.
func (t *Timer) Stop() bool {
	if t == nil || t.done {
		return false
	}
	t.done = true
	t.fn = nil
	return true
}

// Pending reports whether the timer has neither fired nor been stopped.
func (t *Timer) Pending() bool {
	return t != nil && !t.done
}

// runTimers fires every timer whose deadline has passed, in scheduling
// order, then drops finished timers.
func (w *World) runTimers() {
	for i := 0; i < len(w.timers); i++ {
		t := w.timers[i]
		if t.done || t.at > w.clock {
			continue
		}
		fn := t.fn
		t.done = true
		t.fn = nil
		if fn != nil {
			fn()
		}
	}
	out := w.timers[:0]
	for _, t := range w.timers {
		if !t.done {
			out = append(out, t)
		}
	}
	clear(w.timers[len(out):])
	w.timers = out
}
