// Package ebitenfx runs a scrollfx page inside an [Ebitengine] window: the
// game loop is the tick source, the mouse wheel and keyboard scroll the page,
// the mouse is the pointer, and the stage's sprites are drawn as tinted
// rectangles with a simple depth projection.
//
// [Ebitengine]: https://ebitengine.org
package ebitenfx

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/scrollfx"
)

// Config controls the window and input mapping of a Host.
type Config struct {
	Title string
	// WheelStep is the scroll distance in pixels per wheel notch.
	WheelStep float64
	// KeyStep is the scroll distance in pixels per arrow key press.
	KeyStep float64
	// Perspective is the distance from the camera to the z = 0 plane.
	Perspective float64
	ClearColor  scrollfx.Color
	ShowFPS     bool
}

// DefaultConfig returns the settings used by the showcase example.
func DefaultConfig() Config {
	return Config{
		Title:       "scrollfx",
		WheelStep:   120,
		KeyStep:     240,
		Perspective: 2500,
		ClearColor:  scrollfx.Color{R: 0.07, G: 0.07, B: 0.09, A: 1},
	}
}

// Host implements ebiten.Game for a Page.
type Host struct {
	page   *scrollfx.Page
	ticker *scrollfx.ManualTicker
	cfg    Config

	offset  float64
	pointer pointerState
	frameOp ebiten.DrawImageOptions
}

// NewHost mounts the page's engine on the host's ticker.
func NewHost(page *scrollfx.Page, cfg Config) (*Host, error) {
	if !(cfg.Perspective > 0) {
		return nil, fmt.Errorf("ebitenfx: perspective %v must be > 0", cfg.Perspective)
	}
	h := &Host{
		page:   page,
		ticker: scrollfx.NewManualTicker(),
		cfg:    cfg,
	}
	if err := page.Engine.Mount(h.ticker); err != nil {
		return nil, fmt.Errorf("ebitenfx: %w", err)
	}
	return h, nil
}

// Offset returns the current scroll offset.
func (h *Host) Offset() float64 {
	return h.offset
}

// ScrollBy moves the page by delta pixels, clamped to the scroll range, and
// reports the resulting velocity for a frame of dt seconds.
func (h *Host) ScrollBy(delta, dt float64) {
	if delta == 0 || math.IsNaN(delta) {
		return
	}
	next := math.Max(0, math.Min(h.offset+delta, h.page.ScrollHeight()))
	moved := next - h.offset
	h.offset = next
	velocity := 0.0
	if dt > 0 {
		velocity = moved / dt
	}
	h.page.Engine.Scroll(h.offset, velocity)
}

// Step runs one frame of dt seconds without reading device input.
func (h *Host) Step(dt float64) {
	h.ticker.Tick(dt)
	h.offset = h.page.Engine.ScrollOffset()
	h.page.Show(h.offset)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	h.ScrollBy(h.scrollInput(), dt)
	h.pollPointer()
	h.Step(dt)
	return nil
}

// Layout implements ebiten.Game. The logical screen is the page viewport.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := h.page.Config.Viewport
	return int(vp.Width), int(vp.Height)
}

// Close unmounts the page.
func (h *Host) Close() {
	h.page.Engine.Unmount()
}

// Run opens a window sized to the page viewport and blocks until it closes.
func Run(page *scrollfx.Page, cfg Config) error {
	h, err := NewHost(page, cfg)
	if err != nil {
		return err
	}
	defer h.Close()
	vp := page.Config.Viewport
	ebiten.SetWindowSize(int(vp.Width), int(vp.Height))
	ebiten.SetWindowTitle(cfg.Title)
	return ebiten.RunGame(h)
}
