package physics

import (
	"math"

	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	GameObject *engine.GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Raycast returns the closest hit among all colliders.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	return p.RaycastExcluding(origin, direction, maxDistance, 0)
}

// RaycastExcluding is Raycast ignoring the object with UID exclude.
func (p *PhysicsWorld) RaycastExcluding(origin, direction rl.Vector3, maxDistance float32, exclude uint64) (RaycastHit, bool) {
	direction = normalizeOr(direction, rl.Vector3{Z: -1})
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for _, list := range [][]*engine.GameObject{p.Objects, p.Kinematics, p.Statics} {
		for _, obj := range list {
			if obj.UID == exclude {
				continue
			}
			s, ok := shapeOf(obj)
			if !ok {
				continue
			}
			var (
				info RaycastHit
				got  bool
			)
			switch s.kind {
			case shapeBox:
				info, got = raycastOBB(origin, direction, s.box, closestHit.Distance)
			case shapeSphere:
				info, got = raycastSphere(origin, direction, s.center, s.radius, closestHit.Distance)
			case shapeCapsule:
				info, got = raycastCapsule(origin, direction, s.capsule, closestHit.Distance)
			}
			if got && info.Distance <= closestHit.Distance {
				closestHit = info
				closestHit.GameObject = obj
				hit = true
			}
		}
	}

	return closestHit, hit
}

// raycastOBB runs the slab test in the box frame, so rotated ramps and
// walls are hit where they are drawn.
func raycastOBB(origin, direction rl.Vector3, o OBB, maxDistance float32) (RaycastHit, bool) {
	lo := o.toLocal(origin)
	ld := rl.Vector3{
		X: rl.Vector3DotProduct(direction, o.Axes[0]),
		Y: rl.Vector3DotProduct(direction, o.Axes[1]),
		Z: rl.Vector3DotProduct(direction, o.Axes[2]),
	}
	orig := [3]float32{lo.X, lo.Y, lo.Z}
	dir := [3]float32{ld.X, ld.Y, ld.Z}
	half := [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z}

	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)
	enterAxis, enterSign := 0, float32(1)

	for i := 0; i < 3; i++ {
		if absf(dir[i]) < 1e-8 {
			if orig[i] < -half[i] || orig[i] > half[i] {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (-half[i] - orig[i]) / dir[i]
		t2 := (half[i] - orig[i]) / dir[i]
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis, enterSign = i, sign
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	t := tmin
	if t < 0 {
		// origin inside the box
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Scale(o.Axes[enterAxis], enterSign)
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func raycastSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	// direction is unit length, so a == 1
	discriminant := b*b - 4*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	t := (-b - sqrtf(discriminant)) / 2
	if t < 0 {
		t = (-b + sqrtf(discriminant)) / 2
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := normalizeOr(rl.Vector3Subtract(point, center), worldUp)
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// raycastCapsule tests the sphere of the capsule segment nearest the ray.
func raycastCapsule(origin, direction rl.Vector3, c Capsule, maxDistance float32) (RaycastHit, bool) {
	end := rl.Vector3Add(origin, rl.Vector3Scale(direction, maxDistance))
	onSegment, _ := closestPointsSegments(c.A, c.B, origin, end)
	return raycastSphere(origin, direction, onSegment, c.Radius, maxDistance)
}
