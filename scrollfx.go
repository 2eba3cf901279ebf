package scrollfx

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default sprite tint.
var ColorWhite = Color{1, 1, 1, 1}

// ToRGBA converts c to an 8-bit color, clamping each component.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(Clamp01(c.R) * 255),
		G: uint8(Clamp01(c.G) * 255),
		B: uint8(Clamp01(c.B) * 255),
		A: uint8(Clamp01(c.A) * 255),
	}
}

// Vec2 is a 2D vector used for sizes and pointer positions in the public API.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}
