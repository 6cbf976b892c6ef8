package locomotion

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	up    = rl.Vector3{X: 0, Y: 1, Z: 0}
	zAxis = rl.Vector3{X: 0, Y: 0, Z: 1}
)

// normalizeOrZero returns the unit vector of v, or zero when v is degenerate.
func normalizeOrZero(v rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l < 1e-6 || isNaN32(l) {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(v, 1/l)
}

func normalize2OrZero(v rl.Vector2) rl.Vector2 {
	l := float32(math.Hypot(float64(v.X), float64(v.Y)))
	if l < 1e-6 || isNaN32(l) {
		return rl.Vector2{}
	}
	return rl.Vector2{X: v.X / l, Y: v.Y / l}
}

// clampLength2 shrinks v to unit length if it is longer.
func clampLength2(v rl.Vector2) rl.Vector2 {
	l := float32(math.Hypot(float64(v.X), float64(v.Y)))
	if l <= 1 || isNaN32(l) {
		return v
	}
	return rl.Vector2{X: v.X / l, Y: v.Y / l}
}

func length2(v rl.Vector2) float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// angleBetween returns the unsigned angle between a and b in radians.
// Degenerate input reports a right angle, which no walkable limit accepts.
func angleBetween(a, b rl.Vector3) float32 {
	la := rl.Vector3Length(a)
	lb := rl.Vector3Length(b)
	if la < 1e-6 || lb < 1e-6 {
		return math.Pi / 2
	}
	c := rl.Vector3DotProduct(a, b) / (la * lb)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return float32(math.Acos(float64(c)))
}

// rejectFromUp removes the vertical component of v.
func rejectFromUp(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: v.X, Y: 0, Z: v.Z}
}

func isNaN32(f float32) bool {
	return f != f
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func tan32(a float32) float32 {
	return float32(math.Tan(float64(a)))
}

func deg2rad(d float32) float32 {
	return d * math.Pi / 180
}
