package ebitenfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerState tracks the mouse between frames so presses, drags, and the
// cursor leaving the window turn into engine pointer calls.
type pointerState struct {
	x, y    float64
	pressed bool
	inside  bool
}

// scrollInput returns this frame's scroll delta from the wheel and keyboard.
// Wheel up scrolls toward the top of the page.
func (h *Host) scrollInput() float64 {
	_, wy := ebiten.Wheel()
	delta := -wy * h.cfg.WheelStep
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		delta += h.cfg.KeyStep
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		delta -= h.cfg.KeyStep
	}
	return delta
}

func (h *Host) pollPointer() {
	mx, my := ebiten.CursorPosition()
	w, ht := h.Layout(0, 0)
	h.pointerFrame(pointerSample{
		x:        float64(mx),
		y:        float64(my),
		inside:   mx >= 0 && my >= 0 && mx < w && my < ht,
		pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	})
}

// pointerSample is one frame of mouse input.
type pointerSample struct {
	x, y              float64
	inside            bool
	pressed, released bool
}

// pointerFrame forwards one frame of mouse input to the engine.
func (h *Host) pointerFrame(s pointerSample) {
	e := h.page.Engine
	p := &h.pointer
	moved := s.x != p.x || s.y != p.y

	switch {
	case p.inside && !s.inside:
		e.PointerLeave()
		p.pressed = false
	case s.pressed && s.inside:
		e.PointerDown(s.x, s.y)
		p.pressed = true
	case p.pressed && moved:
		e.PointerMove(s.x, s.y)
	}
	if s.released && p.pressed {
		e.PointerUp()
		p.pressed = false
	}
	p.x, p.y, p.inside = s.x, s.y, s.inside
}
