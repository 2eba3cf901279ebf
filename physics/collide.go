package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// contact is one point of a box-box manifold. Normal points from body A to
// body B; separation is negative while the boxes overlap.
type contact struct {
	position   r2.Vec
	normal     r2.Vec
	separation float64

	rA, rB      r2.Vec
	massNormal  float64
	massTangent float64
	bounce      float64
	pn, pt      float64 // accumulated normal and tangent impulses
}

type axis uint8

const (
	faceAX axis = iota
	faceAY
	faceBX
	faceBY
)

type clipVertex struct{ v r2.Vec }

// collide writes up to two contact points between boxes a and b into out
// and returns how many were written. It runs the separating axis test over
// the four face normals and clips the incident edge against the reference
// face's side planes.
func collide(out *[2]contact, a, b *Body) int {
	hA := r2.Vec{X: a.HalfWidth, Y: a.HalfHeight}
	hB := r2.Vec{X: b.HalfWidth, Y: b.HalfHeight}

	posA, posB := a.Position, b.Position
	rotA, rotB := a.rotation(), b.rotation()

	dp := r2.Sub(posB, posA)
	dA := rotA.applyT(dp)
	dB := rotB.applyT(dp)

	// C = RotAᵀ·RotB
	c11 := r2.Dot(rotA.col1(), rotB.col1())
	c12 := r2.Dot(rotA.col1(), rotB.col2())
	c21 := r2.Dot(rotA.col2(), rotB.col1())
	c22 := r2.Dot(rotA.col2(), rotB.col2())
	a11, a12, a21, a22 := math.Abs(c11), math.Abs(c12), math.Abs(c21), math.Abs(c22)

	faceA := r2.Vec{
		X: math.Abs(dA.X) - hA.X - (a11*hB.X + a12*hB.Y),
		Y: math.Abs(dA.Y) - hA.Y - (a21*hB.X + a22*hB.Y),
	}
	if faceA.X > 0 || faceA.Y > 0 {
		return 0
	}
	faceB := r2.Vec{
		X: math.Abs(dB.X) - (a11*hA.X + a21*hA.Y) - hB.X,
		Y: math.Abs(dB.Y) - (a12*hA.X + a22*hA.Y) - hB.Y,
	}
	if faceB.X > 0 || faceB.Y > 0 {
		return 0
	}

	// Prefer A's faces, then B's, unless another axis is clearly better.
	const relativeTol, absoluteTol = 0.95, 0.01

	ax := faceAX
	separation := faceA.X
	normal := signed(rotA.col1(), dA.X)

	if faceA.Y > relativeTol*separation+absoluteTol*hA.Y {
		ax, separation = faceAY, faceA.Y
		normal = signed(rotA.col2(), dA.Y)
	}
	if faceB.X > relativeTol*separation+absoluteTol*hB.X {
		ax, separation = faceBX, faceB.X
		normal = signed(rotB.col1(), dB.X)
	}
	if faceB.Y > relativeTol*separation+absoluteTol*hB.Y {
		ax = faceBY
		normal = signed(rotB.col2(), dB.Y)
	}

	var (
		frontNormal, sideNormal r2.Vec
		front, negSide, posSide float64
		incident                [2]clipVertex
	)
	switch ax {
	case faceAX:
		frontNormal = normal
		front = r2.Dot(posA, frontNormal) + hA.X
		sideNormal = rotA.col2()
		side := r2.Dot(posA, sideNormal)
		negSide, posSide = -side+hA.Y, side+hA.Y
		incident = incidentEdge(hB, posB, rotB, frontNormal)
	case faceAY:
		frontNormal = normal
		front = r2.Dot(posA, frontNormal) + hA.Y
		sideNormal = rotA.col1()
		side := r2.Dot(posA, sideNormal)
		negSide, posSide = -side+hA.X, side+hA.X
		incident = incidentEdge(hB, posB, rotB, frontNormal)
	case faceBX:
		frontNormal = r2.Scale(-1, normal)
		front = r2.Dot(posB, frontNormal) + hB.X
		sideNormal = rotB.col2()
		side := r2.Dot(posB, sideNormal)
		negSide, posSide = -side+hB.Y, side+hB.Y
		incident = incidentEdge(hA, posA, rotA, frontNormal)
	case faceBY:
		frontNormal = r2.Scale(-1, normal)
		front = r2.Dot(posB, frontNormal) + hB.Y
		sideNormal = rotB.col1()
		side := r2.Dot(posB, sideNormal)
		negSide, posSide = -side+hB.X, side+hB.X
		incident = incidentEdge(hA, posA, rotA, frontNormal)
	}

	var clip1, clip2 [2]clipVertex
	if clipSegmentToLine(&clip1, incident, r2.Scale(-1, sideNormal), negSide) < 2 {
		return 0
	}
	if clipSegmentToLine(&clip2, clip1, sideNormal, posSide) < 2 {
		return 0
	}

	n := 0
	for i := range clip2 {
		sep := r2.Dot(frontNormal, clip2[i].v) - front
		if sep > 0 {
			continue
		}
		out[n] = contact{
			separation: sep,
			normal:     normal,
			// Slide the point onto the reference face.
			position: r2.Sub(clip2[i].v, r2.Scale(sep, frontNormal)),
		}
		n++
	}
	return n
}

// signed returns v when d > 0 and -v otherwise.
func signed(v r2.Vec, d float64) r2.Vec {
	if d > 0 {
		return v
	}
	return r2.Scale(-1, v)
}

// incidentEdge returns the edge of the incident box (half size h, center
// pos, rotation m) most anti-parallel to the reference normal.
func incidentEdge(h, pos r2.Vec, m rot, normal r2.Vec) [2]clipVertex {
	n := r2.Scale(-1, m.applyT(normal))
	var c [2]clipVertex
	if math.Abs(n.X) > math.Abs(n.Y) {
		if n.X > 0 {
			c[0].v = r2.Vec{X: h.X, Y: -h.Y}
			c[1].v = r2.Vec{X: h.X, Y: h.Y}
		} else {
			c[0].v = r2.Vec{X: -h.X, Y: h.Y}
			c[1].v = r2.Vec{X: -h.X, Y: -h.Y}
		}
	} else {
		if n.Y > 0 {
			c[0].v = r2.Vec{X: h.X, Y: h.Y}
			c[1].v = r2.Vec{X: -h.X, Y: h.Y}
		} else {
			c[0].v = r2.Vec{X: -h.X, Y: -h.Y}
			c[1].v = r2.Vec{X: h.X, Y: -h.Y}
		}
	}
	c[0].v = r2.Add(pos, m.apply(c[0].v))
	c[1].v = r2.Add(pos, m.apply(c[1].v))
	return c
}

// clipSegmentToLine keeps the part of segment in that lies on the negative
// side of the plane dot(normal, x) = offset.
func clipSegmentToLine(out *[2]clipVertex, in [2]clipVertex, normal r2.Vec, offset float64) int {
	n := 0
	d0 := r2.Dot(normal, in[0].v) - offset
	d1 := r2.Dot(normal, in[1].v) - offset

	if d0 <= 0 {
		out[n] = in[0]
		n++
	}
	if d1 <= 0 {
		out[n] = in[1]
		n++
	}
	if d0*d1 < 0 && n < 2 {
		t := d0 / (d0 - d1)
		out[n].v = r2.Add(in[0].v, r2.Scale(t, r2.Sub(in[1].v, in[0].v)))
		n++
	}
	return n
}

// aabbOverlap is the broad-phase test run before collide.
func aabbOverlap(a, b *Body) bool {
	ea, eb := a.Extents(), b.Extents()
	return math.Abs(a.Position.X-b.Position.X) <= ea.X+eb.X &&
		math.Abs(a.Position.Y-b.Position.Y) <= ea.Y+eb.Y
}
