package physics

import (
	"math"

	"kinemotion/internal/components"
	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var worldUp = rl.Vector3{X: 0, Y: 1, Z: 0}

func cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// normalizeOr returns v normalized, or fallback when v is degenerate.
func normalizeOr(v, fallback rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l < 1e-6 {
		return fallback
	}
	return rl.Vector3Scale(v, 1/l)
}

// estimateContactPoint estimates the contact point on an object's surface given a push direction
func estimateContactPoint(center rl.Vector3, halfSize rl.Vector3, pushDir rl.Vector3) rl.Vector3 {
	contact := center
	contact.X -= pushDir.X * halfSize.X
	contact.Y -= pushDir.Y * halfSize.Y
	contact.Z -= pushDir.Z * halfSize.Z
	return contact
}

// boxOBB builds the world OBB of a box collider.
func boxOBB(g *engine.GameObject, box *components.BoxCollider) OBB {
	return NewOBBFromBox(box.GetCenter(), box.Size, g.WorldRotation(), g.WorldScale())
}

// applyBoxFlatteningTorque tips a slow, resting box toward its nearest flat face.
func applyBoxFlatteningTorque(obj *engine.GameObject, rb *components.Rigidbody, box *components.BoxCollider, gravity, deltaTime float32) {
	speed := rl.Vector3Length(rb.Velocity)
	if speed > 2.0 {
		return
	}
	if rb.Velocity.Y < -0.5 || rb.Velocity.Y > 0.5 {
		return
	}

	quat := rl.QuaternionFromMatrix(engine.EulerMatrix(obj.WorldRotation()))

	localFaces := []rl.Vector3{
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: -1},
	}

	var bestFaceLocal rl.Vector3
	bestDot := float32(-2.0)
	for _, localFace := range localFaces {
		worldFace := rl.Vector3RotateByQuaternion(localFace, quat)
		dot := rl.Vector3DotProduct(worldFace, worldUp)
		if dot > bestDot {
			bestDot = dot
			bestFaceLocal = localFace
		}
	}

	if bestDot > 0.995 {
		return
	}

	bestFaceWorld := rl.Vector3RotateByQuaternion(bestFaceLocal, quat)
	torqueAxis := rl.Vector3CrossProduct(bestFaceWorld, worldUp)
	axisLength := rl.Vector3Length(torqueAxis)
	if axisLength < 0.001 {
		return
	}
	torqueAxis = rl.Vector3Scale(torqueAxis, 1.0/axisLength)

	// axisLength is sin(tilt)
	leverArm := (box.Size.X + box.Size.Y + box.Size.Z) / 6.0
	torqueMag := gravity * leverArm * axisLength * 2.0

	angularAccel := rl.Vector3Scale(torqueAxis, torqueMag*deltaTime*rl.Rad2deg)
	rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity, angularAccel)
}
