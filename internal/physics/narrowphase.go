package physics

import (
	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contacts implements locomotion.ContactSource. It measures every
// character capsule against the level, the props and the other kinematics.
// The character is always Body1 of its pairs, so manifold normals point
// away from it.
func (p *PhysicsWorld) Contacts(dt float32) []locomotion.ContactPair {
	var pairs []locomotion.ContactPair

	for i, kin := range p.Kinematics {
		cc := engine.GetComponent[*components.CharacterController](kin)
		if cc == nil || cc.Body == nil {
			continue
		}
		body := cc.Body
		capsule := CapsuleAt(body.Collider, body.Position)

		// anything the capsule could reach this step
		margin := p.SpeculativeMargin + rl.Vector3Length(body.Velocity)*dt
		reach := capsule.Bounds().Expand(margin)

		check := func(other *engine.GameObject) {
			s, ok := shapeOf(other)
			if !ok || !reach.Intersects(s.bounds()) {
				return
			}
			prox := measure(capsule, s)
			if prox.Separation > margin {
				return
			}
			rel := rl.Vector3Subtract(body.Velocity, velocityOf(other))
			m, ok := manifoldFor(prox, rel, dt)
			if !ok {
				return
			}
			pairs = append(pairs, locomotion.ContactPair{
				Body1:     locomotion.EntityID(kin.UID),
				Body2:     locomotion.EntityID(other.UID),
				Manifolds: []locomotion.Manifold{m},
			})
		}

		for _, static := range p.Statics {
			check(static)
		}
		for _, obj := range p.Objects {
			check(obj)
		}
		for j, other := range p.Kinematics {
			if j == i {
				continue
			}
			// each character pair is reported once
			if j < i && engine.GetComponent[*components.CharacterController](other) != nil {
				continue
			}
			check(other)
		}
	}
	return pairs
}

// manifoldFor turns a proximity into a manifold. Overlaps always produce
// one; separated shapes only when the relative velocity closes the gap
// within dt, in which case the manifold is speculative.
func manifoldFor(prox Proximity, relVel rl.Vector3, dt float32) (locomotion.Manifold, bool) {
	m := locomotion.Manifold{
		Normal: rl.Vector3Negate(prox.Normal),
		Points: []locomotion.ContactPoint{{Point: prox.Point, Penetration: -prox.Separation}},
	}
	if prox.Separation <= 0 {
		return m, true
	}
	approach := rl.Vector3DotProduct(relVel, prox.Normal)
	if approach*dt+prox.Separation >= 0 {
		return locomotion.Manifold{}, false
	}
	m.Speculative = true
	return m, true
}
