package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// arbiter holds the contact manifold between two bodies for one step.
type arbiter struct {
	a, b        *Body
	contacts    [2]contact
	n           int
	friction    float64
	restitution float64
}

// preStep computes the effective masses and the restitution target of each
// contact. Impulses start from zero every step.
func (arb *arbiter) preStep(cfg Config) {
	a, b := arb.a, arb.b
	for i := 0; i < arb.n; i++ {
		c := &arb.contacts[i]
		c.rA = r2.Sub(c.position, a.Position)
		c.rB = r2.Sub(c.position, b.Position)

		rnA := r2.Dot(c.rA, c.normal)
		rnB := r2.Dot(c.rB, c.normal)
		kNormal := a.invMass + b.invMass +
			a.invInertia*(r2.Dot(c.rA, c.rA)-rnA*rnA) +
			b.invInertia*(r2.Dot(c.rB, c.rB)-rnB*rnB)
		c.massNormal = inverse(kNormal)

		tangent := r2.Vec{X: c.normal.Y, Y: -c.normal.X}
		rtA := r2.Dot(c.rA, tangent)
		rtB := r2.Dot(c.rB, tangent)
		kTangent := a.invMass + b.invMass +
			a.invInertia*(r2.Dot(c.rA, c.rA)-rtA*rtA) +
			b.invInertia*(r2.Dot(c.rB, c.rB)-rtB*rtB)
		c.massTangent = inverse(kTangent)

		vn := r2.Dot(relativeVelocity(a, b, c), c.normal)
		c.bounce = 0
		if vn < -cfg.RestitutionThreshold {
			c.bounce = -arb.restitution * vn
		}
		c.pn, c.pt = 0, 0
	}
}

// applyImpulse runs one sequential-impulse pass over the manifold: a
// non-penetration impulse clamped so the accumulated impulse stays >= 0,
// then a Coulomb friction impulse bounded by friction·pn.
func (arb *arbiter) applyImpulse() {
	a, b := arb.a, arb.b
	for i := 0; i < arb.n; i++ {
		c := &arb.contacts[i]

		vn := r2.Dot(relativeVelocity(a, b, c), c.normal)
		dPn := c.massNormal * (-vn + c.bounce)
		pn0 := c.pn
		c.pn = math.Max(pn0+dPn, 0)
		dPn = c.pn - pn0
		applyPair(a, b, c, r2.Scale(dPn, c.normal))

		tangent := r2.Vec{X: c.normal.Y, Y: -c.normal.X}
		vt := r2.Dot(relativeVelocity(a, b, c), tangent)
		dPt := c.massTangent * -vt
		maxPt := arb.friction * c.pn
		pt0 := c.pt
		c.pt = clamp(pt0+dPt, -maxPt, maxPt)
		dPt = c.pt - pt0
		applyPair(a, b, c, r2.Scale(dPt, tangent))
	}
}

// correctPositions pushes the bodies apart along the contact normal. The
// current separation is estimated from how far each body moved since the
// contacts were detected, so no new narrow phase is needed.
func (arb *arbiter) correctPositions(cfg Config) {
	a, b := arb.a, arb.b
	k := a.invMass + b.invMass
	if k == 0 {
		return
	}
	for i := 0; i < arb.n; i++ {
		c := &arb.contacts[i]
		moved := r2.Sub(r2.Sub(b.Position, b.detectPos), r2.Sub(a.Position, a.detectPos))
		sep := c.separation + r2.Dot(moved, c.normal)
		if sep >= -cfg.Slop {
			continue
		}
		corr := clamp(cfg.Baumgarte*(sep+cfg.Slop), -cfg.MaxCorrection, 0)
		p := -corr / k
		a.Position = r2.Sub(a.Position, r2.Scale(p*a.invMass, c.normal))
		b.Position = r2.Add(b.Position, r2.Scale(p*b.invMass, c.normal))
	}
}

func relativeVelocity(a, b *Body, c *contact) r2.Vec {
	va := r2.Add(a.Velocity, crossSV(a.AngularVelocity, c.rA))
	vb := r2.Add(b.Velocity, crossSV(b.AngularVelocity, c.rB))
	return r2.Sub(vb, va)
}

// applyPair applies impulse p to b and -p to a at the contact point.
func applyPair(a, b *Body, c *contact, p r2.Vec) {
	a.Velocity = r2.Sub(a.Velocity, r2.Scale(a.invMass, p))
	a.AngularVelocity -= a.invInertia * r2.Cross(c.rA, p)
	b.Velocity = r2.Add(b.Velocity, r2.Scale(b.invMass, p))
	b.AngularVelocity += b.invInertia * r2.Cross(c.rB, p)
}

func inverse(k float64) float64 {
	if k > 0 && !math.IsInf(k, 0) {
		return 1 / k
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
