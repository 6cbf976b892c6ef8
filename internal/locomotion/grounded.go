package locomotion

import rl "github.com/gen2brain/raylib-go/raylib"

// GroundCast builds the downward cast for b from its caster settings.
func GroundCast(b *Body) ShapeCast {
	c := b.Caster
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	dir := normalizeOrZero(c.Direction)
	if dir == (rl.Vector3{}) {
		dir = rl.Vector3{X: 0, Y: -1, Z: 0}
	}
	return ShapeCast{
		Shape:       b.Collider.Scaled(scale),
		Origin:      rl.Vector3Add(b.Position, rl.Vector3RotateByQuaternion(c.Offset, b.Rotation)),
		Rotation:    b.Rotation,
		Direction:   dir,
		MaxDistance: c.MaxDistance,
		MaxHits:     c.MaxHits,
		Exclude:     b.ID,
	}
}

// IsWalkable reports whether a hit counts as ground for the given tuning.
func IsWalkable(t Tuning, rotation rl.Quaternion, hit ShapeHit) bool {
	if !t.HasSlopeLimit {
		return true
	}
	n := rl.Vector3RotateByQuaternion(rl.Vector3Negate(hit.LocalNormal), rotation)
	return angleBetween(n, up) <= absf(t.MaxSlopeAngle)
}

// ClassifyGrounded decides grounded status from one cast's hits. No hits
// means airborne.
func ClassifyGrounded(b *Body, hits []ShapeHit) bool {
	for _, h := range hits {
		if IsWalkable(b.Tuning, b.Rotation, h) {
			return true
		}
	}
	return false
}

// UpdateGrounded classifies b and stores the flag. It returns true when
// the body just landed.
func UpdateGrounded(b *Body, hits []ShapeHit) (landed bool) {
	was := b.grounded
	b.grounded = ClassifyGrounded(b, hits)
	return b.grounded && !was
}
