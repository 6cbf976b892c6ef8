package physics

import (
	"kinemotion/internal/components"
	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// kinematicPushScale is how much of a character's approach speed a pushed
// prop receives.
const kinematicPushScale = 1.5

func (p *PhysicsWorld) resolveCollision(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}

	sphereA := engine.GetComponent[*components.SphereCollider](a)
	sphereB := engine.GetComponent[*components.SphereCollider](b)
	if sphereA != nil && sphereB != nil {
		p.resolveSphereVsSphere(a, b, rbA, rbB, sphereA, sphereB)
		return
	}

	boxA := engine.GetComponent[*components.BoxCollider](a)
	boxB := engine.GetComponent[*components.BoxCollider](b)
	if sphereA != nil && boxB != nil {
		p.resolveSphereVsBox(a, b, rbA, rbB, sphereA, boxB)
		return
	}
	if boxA != nil && sphereB != nil {
		p.resolveSphereVsBox(b, a, rbB, rbA, sphereB, boxA)
		return
	}
	if boxA == nil || boxB == nil {
		return
	}

	pushOut := boxOBB(a, boxA).ResolveOBB(boxOBB(b, boxB))
	if pushOut.X == 0 && pushOut.Y == 0 && pushOut.Z == 0 {
		return
	}
	p.wakeOnImpact(rbA, rbB)

	// split the push by mass
	totalMass := rbA.Mass + rbB.Mass
	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(pushOut, rbB.Mass/totalMass))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(pushOut, rbA.Mass/totalMass))

	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 0.0001 {
		return
	}
	normal := rl.Vector3Scale(pushOut, 1/pushLen)

	velAlongNormal := rl.Vector3DotProduct(rl.Vector3Subtract(rbA.Velocity, rbB.Velocity), normal)
	if velAlongNormal > 0 {
		return
	}

	e := (rbA.Bounciness + rbB.Bounciness) / 2
	j := -(1 + e) * velAlongNormal
	j /= (1/rbA.Mass + 1/rbB.Mass)

	impulse := rl.Vector3Scale(normal, j)
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))

	// torque from an estimated contact on each box face
	halfSizeA := rl.Vector3Scale(boxA.Size, 0.5)
	halfSizeB := rl.Vector3Scale(boxB.Size, 0.5)
	rA := estimateContactPoint(rl.Vector3{}, halfSizeA, rl.Vector3Negate(normal))
	rB := estimateContactPoint(rl.Vector3{}, halfSizeB, normal)

	const torqueScale = 500.0
	torqueA := cross(rA, impulse)
	torqueB := cross(rB, rl.Vector3Negate(impulse))
	rbA.AngularVelocity = rl.Vector3Add(rbA.AngularVelocity, rl.Vector3Scale(torqueA, torqueScale/rbA.Mass))
	rbB.AngularVelocity = rl.Vector3Add(rbB.AngularVelocity, rl.Vector3Scale(torqueB, torqueScale/rbB.Mass))
}

func (p *PhysicsWorld) resolveSphereVsSphere(a, b *engine.GameObject, rbA, rbB *components.Rigidbody, sA, sB *components.SphereCollider) {
	diff := rl.Vector3Subtract(sA.GetCenter(), sB.GetCenter())
	dist := rl.Vector3Length(diff)
	minDist := sA.Radius + sB.Radius
	if dist >= minDist || dist < 0.0001 {
		return
	}
	p.wakeOnImpact(rbA, rbB)

	normal := rl.Vector3Scale(diff, 1/dist)
	penetration := minDist - dist

	totalMass := rbA.Mass + rbB.Mass
	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(normal, penetration*rbB.Mass/totalMass))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(normal, penetration*rbA.Mass/totalMass))

	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)

	// resting contact: settle with friction and support the upper sphere
	if rl.Vector3Length(relVel) < 0.5 && penetration < 0.1 {
		friction := (rbA.Friction + rbB.Friction) / 2
		rbA.Velocity = rl.Vector3Scale(rbA.Velocity, 1.0-friction)
		rbB.Velocity = rl.Vector3Scale(rbB.Velocity, 1.0-friction)

		switch {
		case normal.Y > 0.5:
			p.addNormalForce(a, rbA.Mass)
		case normal.Y < -0.5:
			p.addNormalForce(b, rbB.Mass)
		}

		if rl.Vector3Length(rbA.Velocity) < 0.1 {
			rbA.Velocity = rl.Vector3{}
		}
		if rl.Vector3Length(rbB.Velocity) < 0.1 {
			rbB.Velocity = rl.Vector3{}
		}
		return
	}

	if velAlongNormal > 0 {
		return
	}

	e := (rbA.Bounciness + rbB.Bounciness) / 2
	j := -(1 + e) * velAlongNormal
	j /= (1/rbA.Mass + 1/rbB.Mass)

	impulse := rl.Vector3Scale(normal, j)
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))

	rA := rl.Vector3Scale(normal, -sA.Radius)
	rB := rl.Vector3Scale(normal, sB.Radius)
	const torqueScale = 50.0
	rbA.AngularVelocity = rl.Vector3Add(rbA.AngularVelocity, rl.Vector3Scale(cross(rA, impulse), torqueScale/rbA.Mass))
	rbB.AngularVelocity = rl.Vector3Add(rbB.AngularVelocity, rl.Vector3Scale(cross(rB, rl.Vector3Negate(impulse)), torqueScale/rbB.Mass))
}

func (p *PhysicsWorld) addNormalForce(g *engine.GameObject, mass float32) {
	force := rl.Vector3{Y: -p.Gravity.Y * mass}
	p.normalForces[g] = rl.Vector3Add(p.normalForces[g], force)
}

// resolveSphereVsBox handles a dynamic sphere against a dynamic box.
func (p *PhysicsWorld) resolveSphereVsBox(sphereObj, boxObj *engine.GameObject, rbSphere, rbBox *components.Rigidbody, sphere *components.SphereCollider, box *components.BoxCollider) {
	sphereCenter := sphere.GetCenter()
	closest := ClosestPointOnOBB(boxOBB(boxObj, box), sphereCenter)

	diff := rl.Vector3Subtract(sphereCenter, closest)
	dist := rl.Vector3Length(diff)
	if dist >= sphere.Radius || dist < 0.0001 {
		return
	}
	p.wakeOnImpact(rbSphere, rbBox)

	// from box to sphere
	normal := rl.Vector3Scale(diff, 1/dist)
	penetration := sphere.Radius - dist

	totalMass := rbSphere.Mass + rbBox.Mass
	sphereObj.Transform.Position = rl.Vector3Add(sphereObj.Transform.Position, rl.Vector3Scale(normal, penetration*rbBox.Mass/totalMass))
	boxObj.Transform.Position = rl.Vector3Subtract(boxObj.Transform.Position, rl.Vector3Scale(normal, penetration*rbSphere.Mass/totalMass))

	velAlongNormal := rl.Vector3DotProduct(rl.Vector3Subtract(rbSphere.Velocity, rbBox.Velocity), normal)
	if velAlongNormal > 0 {
		return
	}

	e := (rbSphere.Bounciness + rbBox.Bounciness) / 2
	j := -(1 + e) * velAlongNormal
	j /= (1/rbSphere.Mass + 1/rbBox.Mass)

	impulse := rl.Vector3Scale(normal, j)
	rbSphere.Velocity = rl.Vector3Add(rbSphere.Velocity, rl.Vector3Scale(impulse, 1/rbSphere.Mass))
	rbBox.Velocity = rl.Vector3Subtract(rbBox.Velocity, rl.Vector3Scale(impulse, 1/rbBox.Mass))

	rSphere := rl.Vector3Scale(normal, -sphere.Radius)
	rbSphere.AngularVelocity = rl.Vector3Add(rbSphere.AngularVelocity, rl.Vector3Scale(cross(rSphere, impulse), 50.0/rbSphere.Mass))
}

// resolveStaticCollision bounces a prop off the level geometry.
func (p *PhysicsWorld) resolveStaticCollision(obj, static *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](obj)
	colStatic := engine.GetComponent[*components.BoxCollider](static)
	if rb == nil || colStatic == nil {
		return
	}
	staticOBB := boxOBB(static, colStatic)

	var (
		pushOut rl.Vector3
		lever   rl.Vector3
		scale   float32
	)
	if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
		center := sphere.GetCenter()
		diff := rl.Vector3Subtract(center, ClosestPointOnOBB(staticOBB, center))
		dist := rl.Vector3Length(diff)
		if dist >= sphere.Radius || dist < 0.0001 {
			return
		}
		normal := rl.Vector3Scale(diff, 1/dist)
		pushOut = rl.Vector3Scale(normal, sphere.Radius-dist)
		lever = rl.Vector3Scale(normal, -sphere.Radius)
		scale = 30
	} else if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
		pushOut = boxOBB(obj, box).ResolveOBB(staticOBB)
		if pushOut.X == 0 && pushOut.Y == 0 && pushOut.Z == 0 {
			return
		}
		n := normalizeOr(pushOut, worldUp)
		lever = estimateContactPoint(rl.Vector3{}, rl.Vector3Scale(box.Size, 0.5), rl.Vector3Negate(n))
		scale = 500
	} else {
		return
	}

	// static doesn't move
	obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, pushOut)

	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 0.0001 {
		return
	}
	normal := rl.Vector3Scale(pushOut, 1/pushLen)

	velAlongNormal := rl.Vector3DotProduct(rb.Velocity, normal)
	if velAlongNormal >= 0 {
		return
	}
	reflect := rl.Vector3Scale(normal, -2*velAlongNormal*rb.Bounciness)
	rb.Velocity = rl.Vector3Add(rb.Velocity, reflect)
	rb.Velocity.X *= 1 - rb.Friction
	rb.Velocity.Z *= 1 - rb.Friction

	rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity, rl.Vector3Scale(cross(lever, reflect), scale/rb.Mass))
	if normal.Y > 0.5 {
		rb.AngularVelocity.X *= 1 - rb.Friction*0.5
		rb.AngularVelocity.Z *= 1 - rb.Friction*0.5
	}
}

// resolveKinematicCollision lets a character or kinematic platform shove a
// prop out of the way. The kinematic side is never moved here.
func (p *PhysicsWorld) resolveKinematicCollision(kinematic, obj *engine.GameObject) {
	rbObj := engine.GetComponent[*components.Rigidbody](obj)
	if rbObj == nil {
		return
	}
	kinShape, ok := shapeOf(kinematic)
	if !ok {
		return
	}
	objShape, ok := shapeOf(obj)
	if !ok {
		return
	}

	var pushOut rl.Vector3
	switch {
	case kinShape.kind == shapeCapsule:
		prox := measure(kinShape.capsule, objShape)
		if prox.Separation >= 0 {
			return
		}
		// normal points toward the character; the prop goes the other way
		pushOut = rl.Vector3Scale(prox.Normal, -prox.Separation)
	case kinShape.kind == shapeBox && objShape.kind == shapeBox:
		pushOut = kinShape.box.ResolveOBB(objShape.box)
	default:
		return
	}
	if pushOut.X == 0 && pushOut.Y == 0 && pushOut.Z == 0 {
		return
	}
	rbObj.Wake()

	// pushOut points from the prop toward the kinematic side
	obj.Transform.Position = rl.Vector3Subtract(obj.Transform.Position, pushOut)
	normal := normalizeOr(pushOut, worldUp)
	approach := -rl.Vector3DotProduct(velocityOf(kinematic), normal)
	if approach > 0 {
		rbObj.Velocity = rl.Vector3Subtract(rbObj.Velocity, rl.Vector3Scale(normal, approach*kinematicPushScale))
	}
}
