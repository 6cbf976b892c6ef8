package locomotion

import rl "github.com/gen2brain/raylib-go/raylib"

// ShapeCast asks the physics collaborator to sweep a capsule.
type ShapeCast struct {
	Shape       Capsule
	Origin      rl.Vector3
	Rotation    rl.Quaternion
	Direction   rl.Vector3 // unit length
	MaxDistance float32
	MaxHits     int
	Exclude     EntityID // usually the caster itself
}

// ShapeHit is one collider touched by a cast, closest first.
type ShapeHit struct {
	Entity   EntityID
	Distance float32    // travel along Direction until first contact
	Point    rl.Vector3 // world-space contact point on the hit collider
	// Normal is the world-space surface normal of the hit collider,
	// pointing toward the caster.
	Normal rl.Vector3
	// LocalNormal is the contact normal on the cast shape in the caster's
	// local frame, pointing into the hit collider.
	LocalNormal rl.Vector3
}

// ShapeCaster answers shape casts.
type ShapeCaster interface {
	CastShape(cast ShapeCast) []ShapeHit
}

// ContactPoint is one point of a manifold. Penetration is a signed distance:
// positive means overlap, negative means the shapes are still apart.
type ContactPoint struct {
	Point       rl.Vector3
	Penetration float32
}

// Manifold is the set of contact points between two shapes sharing a
// normal. Normal points from Body1 toward Body2 of the owning pair.
type Manifold struct {
	Normal      rl.Vector3
	Points      []ContactPoint
	Speculative bool // predicted to penetrate within the step
}

// ContactPair lists the manifolds between two bodies for one step.
type ContactPair struct {
	Body1, Body2 EntityID
	Manifolds    []Manifold
}

// ContactSource runs the narrow phase for the kinematic bodies after their
// velocities are known, so speculative contacts can be predicted.
type ContactSource interface {
	Contacts(dt float32) []ContactPair
}

// BodyClassifier reports the rigid-body kind of any collider entity.
type BodyClassifier interface {
	Kind(id EntityID) (BodyKind, bool)
}
