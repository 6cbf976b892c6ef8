package locomotion

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BodyLookup resolves controller bodies by entity.
type BodyLookup interface {
	Body(id EntityID) (*Body, bool)
}

// ContactResolver applies collide-and-slide response to kinematic bodies
// from the manifolds of one physics step.
type ContactResolver struct {
	log *skipLog
}

// NewContactResolver creates a resolver.
func NewContactResolver() *ContactResolver {
	return &ContactResolver{log: newSkipLog()}
}

// Resolve walks every pair once. The first side of a pair that is a known
// controller is resolved; pairs with no controller side are skipped.
func (r *ContactResolver) Resolve(pairs []ContactPair, bodies BodyLookup, kinds BodyClassifier, dt float32) {
	for _, pair := range pairs {
		var (
			body    *Body
			other   EntityID
			isFirst bool
		)
		if b, ok := bodies.Body(pair.Body1); ok {
			body, other, isFirst = b, pair.Body2, true
		} else if b, ok := bodies.Body(pair.Body2); ok {
			body, other = b, pair.Body1
		} else {
			r.log.printf("no-controller", "contact %d/%d has no controller side, skipped", pair.Body1, pair.Body2)
			continue
		}
		if body.Kind != KindKinematic {
			continue
		}

		otherDynamic := false
		if kinds != nil {
			if k, ok := kinds.Kind(other); ok {
				otherDynamic = k == KindDynamic
			} else {
				r.log.printf("unknown-other", "contact %d/%d: unknown body %d, skipped", pair.Body1, pair.Body2, other)
				continue
			}
		}

		for _, m := range pair.Manifolds {
			normal := m.Normal
			if isFirst {
				normal = rl.Vector3Negate(normal)
			}
			ResolveManifold(body, m, normal, otherDynamic, dt)
		}
	}
}

// ResolveManifold resolves one manifold against b. normal must point from
// the other body toward b, out of the touched surface.
func ResolveManifold(b *Body, m Manifold, normal rl.Vector3, otherDynamic bool, dt float32) {
	normal = normalizeOrZero(normal)
	if len(m.Points) == 0 || normal == (rl.Vector3{}) {
		return
	}

	deepest := float32(-math.MaxFloat32)
	for _, p := range m.Points {
		if p.Penetration > 0 {
			b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(normal, p.Penetration))
		}
		deepest = maxf(deepest, p.Penetration)
	}

	if otherDynamic {
		return
	}

	slope := angleBetween(normal, up)
	climbable := b.Tuning.HasSlopeLimit && absf(slope) <= absf(b.Tuning.MaxSlopeAngle)

	if deepest > 0 {
		if climbable {
			// Ride the slope: vertical speed is at least what the
			// horizontal motion along the slope implies.
			dirXZ := normalizeOrZero(rejectFromUp(normal))
			alongXZ := rl.Vector3DotProduct(b.Velocity, dirXZ)
			b.Velocity.Y = maxf(b.Velocity.Y, -alongXZ*tan32(slope))
			return
		}
		if rl.Vector3DotProduct(b.Velocity, normal) > 0 {
			return
		}
		b.Velocity = rejectFrom(b.Velocity, normal)
		return
	}

	if !m.Speculative || dt <= 0 {
		return
	}

	normalSpeed := rl.Vector3DotProduct(b.Velocity, normal)
	if normalSpeed > 0 {
		return
	}
	impulse := rl.Vector3Scale(normal, normalSpeed-deepest/dt)
	if climbable {
		b.Velocity.Y -= minf(impulse.Y, 0)
		return
	}
	impulse.Y = maxf(impulse.Y, 0)
	b.Velocity = rl.Vector3Subtract(b.Velocity, impulse)
}

// rejectFrom removes the component of v along the unit vector n.
func rejectFrom(v, n rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(v, rl.Vector3Scale(n, rl.Vector3DotProduct(v, n)))
}
