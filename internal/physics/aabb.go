package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB is a world-aligned box used for broad-phase culling.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Extend grows the box to contain p.
func (a AABB) Extend(p rl.Vector3) AABB {
	a.Min = rl.Vector3{X: min(a.Min.X, p.X), Y: min(a.Min.Y, p.Y), Z: min(a.Min.Z, p.Z)}
	a.Max = rl.Vector3{X: max(a.Max.X, p.X), Y: max(a.Max.Y, p.Y), Z: max(a.Max.Z, p.Z)}
	return a
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return a.Extend(b.Min).Extend(b.Max)
}

// Expand grows the box by m on every side.
func (a AABB) Expand(m float32) AABB {
	d := rl.Vector3{X: m, Y: m, Z: m}
	return AABB{Min: rl.Vector3Subtract(a.Min, d), Max: rl.Vector3Add(a.Max, d)}
}
