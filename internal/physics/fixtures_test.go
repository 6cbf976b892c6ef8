package physics

import (
	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const eps = 1e-3

var playerShape = locomotion.Capsule{Radius: 0.4, HalfHeight: 0.5}

func newStaticBox(name string, pos, size, rot rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.Transform.Rotation = rot
	g.AddComponent(components.NewBoxCollider(size))
	return g
}

// newFloor has its top face at y = 0.
func newFloor() *engine.GameObject {
	return newStaticBox("Floor", rl.Vector3{Y: -0.5}, rl.Vector3{X: 40, Y: 1, Z: 40}, rl.Vector3{})
}

func newCharacter(name string, pos rl.Vector3) (*engine.GameObject, *components.CharacterController) {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	cc := components.NewCharacterController()
	g.AddComponent(cc)
	g.Start()
	return g, cc
}

func newProp(name string, pos rl.Vector3) (*engine.GameObject, *components.Rigidbody) {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	rb := components.NewRigidbody()
	g.AddComponent(rb)
	return g, rb
}

func newDriverOn(w *PhysicsWorld) *locomotion.Driver {
	d := locomotion.NewDriver(w.Gravity, locomotion.FixedViewport{Width: 1280, Height: 720})
	d.Caster = w
	d.Narrow = w
	d.Kinds = w
	return d
}
