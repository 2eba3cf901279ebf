package scrollfx

import "github.com/phanxgames/scrollfx/internal/signal"

// Ticker is a frame clock. Callbacks receive the frame time in seconds.
type Ticker interface {
	Add(fn func(dt float64)) signal.Handle
}

// ManualTicker is a Ticker driven by explicit Tick calls. Tests and hosts
// that own their own loop (such as the Ebitengine adapter) use it.
type ManualTicker struct {
	callbacks signal.Registry[float64]
}

// NewManualTicker creates a ticker with no callbacks.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{}
}

// Add registers fn to run on every Tick.
func (t *ManualTicker) Add(fn func(dt float64)) signal.Handle {
	return t.callbacks.Add(fn)
}

// Tick runs every registered callback with dt.
func (t *ManualTicker) Tick(dt float64) {
	t.callbacks.Emit(dt)
}

// Len returns the number of registered callbacks.
func (t *ManualTicker) Len() int {
	return t.callbacks.Len()
}
