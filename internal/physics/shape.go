package physics

import (
	"kinemotion/internal/components"
	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type shapeKind uint8

const (
	shapeBox shapeKind = iota + 1
	shapeSphere
	shapeCapsule
)

// shape is the world-space collider of one object.
type shape struct {
	kind    shapeKind
	box     OBB
	center  rl.Vector3
	radius  float32
	capsule Capsule
}

// shapeOf reads the collider of g. Characters use their body capsule, which
// leads the transform by up to a frame.
func shapeOf(g *engine.GameObject) (shape, bool) {
	if cc := engine.GetComponent[*components.CharacterController](g); cc != nil {
		if cc.Body == nil {
			return shape{}, false
		}
		return shape{kind: shapeCapsule, capsule: CapsuleAt(cc.Body.Collider, cc.Body.Position)}, true
	}
	if box := engine.GetComponent[*components.BoxCollider](g); box != nil {
		return shape{kind: shapeBox, box: boxOBB(g, box)}, true
	}
	if sphere := engine.GetComponent[*components.SphereCollider](g); sphere != nil {
		return shape{kind: shapeSphere, center: sphere.GetCenter(), radius: sphere.Radius}, true
	}
	return shape{}, false
}

func (s shape) bounds() AABB {
	switch s.kind {
	case shapeBox:
		return s.box.Bounds()
	case shapeSphere:
		d := 2 * s.radius
		return NewAABBFromCenter(s.center, rl.Vector3{X: d, Y: d, Z: d})
	default:
		return s.capsule.Bounds()
	}
}

// measure reports how capsule c sits relative to s.
func measure(c Capsule, s shape) Proximity {
	switch s.kind {
	case shapeBox:
		return CapsuleOBB(c, s.box)
	case shapeSphere:
		return CapsuleSphere(c, s.center, s.radius)
	default:
		return CapsuleCapsule(c, s.capsule)
	}
}

// velocityOf is the linear velocity of a character or rigidbody.
func velocityOf(g *engine.GameObject) rl.Vector3 {
	if cc := engine.GetComponent[*components.CharacterController](g); cc != nil && cc.Body != nil {
		return cc.Body.Velocity
	}
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		return rb.Velocity
	}
	return rl.Vector3{}
}
