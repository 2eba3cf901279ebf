package ebitenfx

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/scrollfx"
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// quad is a sprite resolved to screen space.
type quad struct {
	cx, cy   float64 // center
	w, h     float64 // scaled size
	rotation float64 // radians
	alpha    float32
}

// project places sp on a screen whose center is (vx, vy). Depth moves the
// sprite toward or away from the center and scales it; sprites at or behind
// the camera are culled.
func project(sp *scrollfx.Sprite, vx, vy, perspective float64) (quad, bool) {
	if sp.Opacity <= 0 || sp.Scale <= 0 || sp.Z >= perspective {
		return quad{}, false
	}
	f := perspective / (perspective - sp.Z)
	cx := sp.Left + sp.X + sp.Width/2
	cy := sp.Top + sp.Y + sp.Height/2
	q := quad{
		cx:       vx + (cx-vx)*f,
		cy:       vy + (cy-vy)*f,
		w:        sp.Width * sp.Scale * f,
		h:        sp.Height * sp.Scale * f,
		rotation: sp.Rotation * math.Pi / 180,
		alpha:    float32(scrollfx.Clamp01(sp.Opacity) * sp.Color.A),
	}
	if q.w < 0.5 && q.h < 0.5 {
		return quad{}, false
	}
	return q, true
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(h.cfg.ClearColor.ToRGBA())

	vp := h.page.Config.Viewport
	img := ensureWhitePixel()
	op := &h.frameOp
	for _, sp := range h.page.Stage.Sprites() {
		q, ok := project(sp, vp.Width/2, vp.Height/2, h.cfg.Perspective)
		if !ok {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Translate(-0.5, -0.5)
		op.GeoM.Scale(q.w, q.h)
		op.GeoM.Rotate(q.rotation)
		op.GeoM.Translate(q.cx, q.cy)

		// Premultiplied color scale, as the sprite batch does it.
		op.ColorScale.Reset()
		a := q.alpha
		op.ColorScale.Scale(float32(sp.Color.R)*a, float32(sp.Color.G)*a, float32(sp.Color.B)*a, a)
		screen.DrawImage(img, op)
	}

	if h.cfg.ShowFPS {
		name := ""
		if s := h.page.Active(); s != nil {
			name = s.Name
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nscroll: %.0f / %.0f\nsection: %s",
			ebiten.ActualFPS(), h.offset, h.page.ScrollHeight(), name))
	}
}
