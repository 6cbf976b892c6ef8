package physics

import (
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Capsule is a world-space capsule: the segment A-B swept by Radius.
type Capsule struct {
	A, B   rl.Vector3
	Radius float32
}

// CapsuleAt places an upright locomotion capsule at pos. Character bodies
// only yaw, so the segment always stays vertical.
func CapsuleAt(shape locomotion.Capsule, pos rl.Vector3) Capsule {
	return Capsule{
		A:      rl.Vector3{X: pos.X, Y: pos.Y - shape.HalfHeight, Z: pos.Z},
		B:      rl.Vector3{X: pos.X, Y: pos.Y + shape.HalfHeight, Z: pos.Z},
		Radius: shape.Radius,
	}
}

// Translate returns c moved by d.
func (c Capsule) Translate(d rl.Vector3) Capsule {
	return Capsule{A: rl.Vector3Add(c.A, d), B: rl.Vector3Add(c.B, d), Radius: c.Radius}
}

// Bounds returns the world AABB enclosing the capsule.
func (c Capsule) Bounds() AABB {
	box := AABB{Min: c.A, Max: c.A}.Extend(c.B)
	r := rl.Vector3{X: c.Radius, Y: c.Radius, Z: c.Radius}
	return AABB{Min: rl.Vector3Subtract(box.Min, r), Max: rl.Vector3Add(box.Max, r)}
}

// Proximity is the closest approach between a capsule and another shape.
// Normal points from the other shape toward the capsule; Separation is
// negative when they overlap. Point lies on the other shape's surface.
type Proximity struct {
	Normal     rl.Vector3
	Separation float32
	Point      rl.Vector3
}

// closestPointOnSegment returns the point of segment a-b nearest to p.
func closestPointOnSegment(a, b, p rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	denom := rl.Vector3DotProduct(ab, ab)
	if denom < 1e-12 {
		return a
	}
	t := clampf(rl.Vector3DotProduct(rl.Vector3Subtract(p, a), ab)/denom, 0, 1)
	return rl.Vector3Add(a, rl.Vector3Scale(ab, t))
}

// closestPointsSegments returns the nearest points between segments p1-q1
// and p2-q2.
func closestPointsSegments(p1, q1, p2, q2 rl.Vector3) (c1, c2 rl.Vector3) {
	d1 := rl.Vector3Subtract(q1, p1)
	d2 := rl.Vector3Subtract(q2, p2)
	r := rl.Vector3Subtract(p1, p2)
	a := rl.Vector3DotProduct(d1, d1)
	e := rl.Vector3DotProduct(d2, d2)
	f := rl.Vector3DotProduct(d2, r)

	var s, t float32
	switch {
	case a < 1e-12 && e < 1e-12:
		return p1, p2
	case a < 1e-12:
		t = clampf(f/e, 0, 1)
	default:
		c := rl.Vector3DotProduct(d1, r)
		if e < 1e-12 {
			s = clampf(-c/a, 0, 1)
		} else {
			b := rl.Vector3DotProduct(d1, d2)
			denom := a*e - b*b
			if denom > 1e-12 {
				s = clampf((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clampf(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = clampf((b-c)/a, 0, 1)
			}
		}
	}
	c1 = rl.Vector3Add(p1, rl.Vector3Scale(d1, s))
	c2 = rl.Vector3Add(p2, rl.Vector3Scale(d2, t))
	return c1, c2
}

// CapsuleOBB measures a capsule against a box. The segment point nearest
// the box is found by alternating projections, which converges for convex
// shapes. A segment that dips inside the box is pushed out through the
// nearest face.
func CapsuleOBB(c Capsule, o OBB) Proximity {
	p := rl.Vector3Scale(rl.Vector3Add(c.A, c.B), 0.5)
	var q rl.Vector3
	for i := 0; i < 4; i++ {
		q = ClosestPointOnOBB(o, p)
		p = closestPointOnSegment(c.A, c.B, q)
	}
	q = ClosestPointOnOBB(o, p)

	d := rl.Vector3Subtract(p, q)
	dist := rl.Vector3Length(d)
	if dist > 1e-5 {
		return Proximity{
			Normal:     rl.Vector3Scale(d, 1/dist),
			Separation: dist - c.Radius,
			Point:      q,
		}
	}

	// Deep overlap: pick the segment end buried deepest and leave through
	// the nearest face.
	best := Proximity{Separation: 1}
	for _, s := range []rl.Vector3{p, c.A, c.B} {
		if !o.Contains(s) {
			continue
		}
		n, depth := o.ExitFace(s)
		sep := -depth - c.Radius
		if sep < best.Separation {
			best = Proximity{
				Normal:     n,
				Separation: sep,
				Point:      rl.Vector3Add(s, rl.Vector3Scale(n, depth)),
			}
		}
	}
	if best.Separation > 0 {
		best = Proximity{Normal: worldUp, Separation: -c.Radius, Point: p}
	}
	return best
}

// CapsuleSphere measures a capsule against a sphere.
func CapsuleSphere(c Capsule, center rl.Vector3, radius float32) Proximity {
	p := closestPointOnSegment(c.A, c.B, center)
	d := rl.Vector3Subtract(p, center)
	dist := rl.Vector3Length(d)
	n := normalizeOr(d, worldUp)
	return Proximity{
		Normal:     n,
		Separation: dist - c.Radius - radius,
		Point:      rl.Vector3Add(center, rl.Vector3Scale(n, radius)),
	}
}

// CapsuleCapsule measures capsule c against capsule other.
func CapsuleCapsule(c, other Capsule) Proximity {
	p, q := closestPointsSegments(c.A, c.B, other.A, other.B)
	d := rl.Vector3Subtract(p, q)
	dist := rl.Vector3Length(d)
	// coaxial capsules separate along X
	n := normalizeOr(d, rl.Vector3{X: 1})
	return Proximity{
		Normal:     n,
		Separation: dist - c.Radius - other.Radius,
		Point:      rl.Vector3Add(q, rl.Vector3Scale(n, other.Radius)),
	}
}
