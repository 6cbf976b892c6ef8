package physics

import (
	"log"

	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const CellSize = 5.0

// DefaultSpeculativeMargin is how far ahead of contact a pair is reported
// regardless of velocity.
const DefaultSpeculativeMargin = 0.05

type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(pos.X / CellSize),
		Y: int(pos.Y / CellSize),
		Z: int(pos.Z / CellSize),
	}
}

// PhysicsWorld owns every collider in the level. Dynamic props are
// simulated here; characters are only measured, their response belongs to
// the locomotion driver.
type PhysicsWorld struct {
	Gravity    rl.Vector3
	Objects    []*engine.GameObject // dynamic rigidbodies (props)
	Kinematics []*engine.GameObject // characters and kinematic rigidbodies
	Statics    []*engine.GameObject // colliders without a rigidbody (floor, walls, ramps)

	SpeculativeMargin float32

	grid         map[CellKey][]*engine.GameObject
	byUID        map[uint64]*engine.GameObject
	kinds        map[uint64]locomotion.BodyKind
	normalForces map[*engine.GameObject]rl.Vector3

	lastLoggedCount int
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:           rl.Vector3{X: 0, Y: -20.0, Z: 0},
		Objects:           make([]*engine.GameObject, 0),
		Kinematics:        make([]*engine.GameObject, 0),
		Statics:           make([]*engine.GameObject, 0),
		SpeculativeMargin: DefaultSpeculativeMargin,
		grid:              make(map[CellKey][]*engine.GameObject),
		byUID:             make(map[uint64]*engine.GameObject),
		kinds:             make(map[uint64]locomotion.BodyKind),
		normalForces:      make(map[*engine.GameObject]rl.Vector3),
	}
}

// classify decides the rigid-body kind of g; ok is false for objects that
// have no collider at all.
func classify(g *engine.GameObject) (kind locomotion.BodyKind, ok bool) {
	if engine.GetComponent[*components.CharacterController](g) != nil {
		return locomotion.KindKinematic, true
	}
	hasCollider := engine.GetComponent[*components.BoxCollider](g) != nil ||
		engine.GetComponent[*components.SphereCollider](g) != nil
	if !hasCollider {
		return 0, false
	}
	rb := engine.GetComponent[*components.Rigidbody](g)
	switch {
	case rb == nil:
		return locomotion.KindStatic, true
	case rb.IsKinematic:
		return locomotion.KindKinematic, true
	default:
		return locomotion.KindDynamic, true
	}
}

// AddObject registers g under its classification. Objects without a
// collider are ignored.
func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	kind, ok := classify(g)
	if !ok {
		return
	}
	if _, exists := p.byUID[g.UID]; exists {
		return
	}
	switch kind {
	case locomotion.KindStatic:
		p.Statics = append(p.Statics, g)
	case locomotion.KindKinematic:
		p.Kinematics = append(p.Kinematics, g)
	default:
		p.Objects = append(p.Objects, g)
	}
	p.byUID[g.UID] = g
	p.kinds[g.UID] = kind
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	if _, ok := p.byUID[g.UID]; !ok {
		return
	}
	delete(p.byUID, g.UID)
	delete(p.kinds, g.UID)
	delete(p.normalForces, g)
	p.Objects = removeObject(p.Objects, g)
	p.Kinematics = removeObject(p.Kinematics, g)
	p.Statics = removeObject(p.Statics, g)
}

func removeObject(list []*engine.GameObject, g *engine.GameObject) []*engine.GameObject {
	for i, obj := range list {
		if obj == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Kind implements locomotion.BodyClassifier.
func (p *PhysicsWorld) Kind(id locomotion.EntityID) (locomotion.BodyKind, bool) {
	k, ok := p.kinds[uint64(id)]
	return k, ok
}

// Object returns the registered object with the given UID.
func (p *PhysicsWorld) Object(uid uint64) *engine.GameObject {
	return p.byUID[uid]
}

// DynamicObjectCount returns the number of dynamic physics objects
func (p *PhysicsWorld) DynamicObjectCount() int {
	return len(p.Objects)
}

// rebuildGrid clears and repopulates the spatial hash grid
func (p *PhysicsWorld) rebuildGrid() {
	for k := range p.grid {
		delete(p.grid, k)
	}
	for _, obj := range p.Objects {
		cell := posToCell(obj.Transform.Position)
		p.grid[cell] = append(p.grid[cell], obj)
	}
}

// getNeighborObjects returns all objects in same cell and 26 neighboring cells
func (p *PhysicsWorld) getNeighborObjects(obj *engine.GameObject) []*engine.GameObject {
	cell := posToCell(obj.Transform.Position)
	var neighbors []*engine.GameObject
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				neighbors = append(neighbors, p.grid[key]...)
			}
		}
	}
	return neighbors
}

// Update simulates the dynamic props for one step: integration, prop vs
// prop, characters pushing props, then props against the level.
func (p *PhysicsWorld) Update(deltaTime float32) {
	if deltaTime <= 0 {
		return
	}

	for _, obj := range p.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsSleeping {
			continue
		}

		if rb.UseGravity {
			gravityAccel := rl.Vector3Scale(p.Gravity, deltaTime)
			// last frame's support counters gravity so stacks don't sink
			if normalForce, ok := p.normalForces[obj]; ok {
				gravityAccel = rl.Vector3Add(gravityAccel, rl.Vector3Scale(normalForce, deltaTime/rb.Mass))
			}
			rb.Velocity = rl.Vector3Add(rb.Velocity, gravityAccel)
		}

		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(rb.Velocity, deltaTime))
		obj.Transform.Rotation = rl.Vector3Add(obj.Transform.Rotation, rl.Vector3Scale(rb.AngularVelocity, deltaTime))

		// time-based so it's framerate independent
		damping := float32(1.0) - (1.0-rb.AngularDamping)*deltaTime*60
		if damping < 0 {
			damping = 0
		}
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)

		if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
			applyBoxFlatteningTorque(obj, rb, box, -p.Gravity.Y, deltaTime)
		}

		rb.TrySleep(deltaTime)
	}

	p.normalForces = make(map[*engine.GameObject]rl.Vector3)

	if n := len(p.Objects); n%100 == 0 && n > 0 && n != p.lastLoggedCount {
		p.lastLoggedCount = n
		log.Printf("Physics: %d dynamic objects", n)
	}

	p.rebuildGrid()
	checked := make(map[[2]uint64]bool)
	for _, obj := range p.Objects {
		for _, other := range p.getNeighborObjects(obj) {
			if obj == other {
				continue
			}
			key := [2]uint64{obj.UID, other.UID}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if checked[key] {
				continue
			}
			checked[key] = true
			p.resolveCollision(obj, other)
		}
	}

	for _, kinematic := range p.Kinematics {
		for _, obj := range p.Objects {
			p.resolveKinematicCollision(kinematic, obj)
		}
	}

	for _, obj := range p.Objects {
		for _, static := range p.Statics {
			p.resolveStaticCollision(obj, static)
		}
	}
}

// wakeOnImpact wakes both rigidbodies when they meet fast enough. Slow
// touches leave settled stacks asleep.
func (p *PhysicsWorld) wakeOnImpact(rbA, rbB *components.Rigidbody) {
	if rbA == nil || rbB == nil {
		return
	}
	relSpeed := rl.Vector3Length(rl.Vector3Subtract(rbA.Velocity, rbB.Velocity))
	if relSpeed > components.SleepVelocityThreshold*2.0 {
		rbA.Wake()
		rbB.Wake()
	}
}
