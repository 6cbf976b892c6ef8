package locomotion

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the per-body movement parameters.
type Tuning struct {
	Acceleration  float32 // units/s² applied by Move
	Damping       float32 // horizontal velocity factor applied every frame, in (0,1)
	JumpImpulse   float32 // vertical speed set by Jump
	MaxSlopeAngle float32 // radians, only meaningful when HasSlopeLimit
	HasSlopeLimit bool
	GravityScale  float32 // multiplier on the driver gravity while in normal control

	DashUpBoost      float32 // vertical term added to the dash direction
	DashImpulseScale float32 // multiplier turning a dash into a one-shot burst
	DashCooldown     float32 // seconds before another dash is accepted

	LookSensitivity float32 // degrees per 10000 viewport-scaled pixels
	StepCueInterval float32 // seconds between step cues at unit move length
}

// DefaultTuning mirrors the stock movement bundle: 30 accel, 0.9 damping,
// 7 jump, slopes up to 0.45π.
func DefaultTuning() Tuning {
	return Tuning{
		Acceleration:     30,
		Damping:          0.9,
		JumpImpulse:      7,
		MaxSlopeAngle:    math.Pi * 0.45,
		HasSlopeLimit:    true,
		GravityScale:     1,
		DashUpBoost:      10,
		DashImpulseScale: 0.1,
		DashCooldown:     1.5,
		LookSensitivity:  1.2,
		StepCueInterval:  0.35,
	}
}

// PlayerTuning is the player profile: heavier damping feel, higher jump and
// a 35° walkable limit.
func PlayerTuning() Tuning {
	t := DefaultTuning()
	t.Acceleration = 64
	t.Damping = 0.9
	t.JumpImpulse = 10
	t.MaxSlopeAngle = deg2rad(35)
	// keyboard dashes arrive scaled by 500: a 50 u/s burst with a 1 u/s lift
	t.DashImpulseScale = 0.1 / 64
	return t
}

// WithSlopeLimit returns a copy of t limited to the given angle in radians.
func (t Tuning) WithSlopeLimit(angle float32) Tuning {
	t.MaxSlopeAngle = angle
	t.HasSlopeLimit = true
	return t
}

// WithoutSlopeLimit returns a copy of t that treats every surface as walkable
// for grounding and no surface as climbable for contact response.
func (t Tuning) WithoutSlopeLimit() Tuning {
	t.MaxSlopeAngle = 0
	t.HasSlopeLimit = false
	return t
}

// Capsule is an upright capsule: a vertical segment of 2*HalfHeight swept by
// Radius, centred on the body position.
type Capsule struct {
	Radius     float32
	HalfHeight float32
}

// Scaled returns the capsule uniformly scaled by s.
func (c Capsule) Scaled(s float32) Capsule {
	return Capsule{Radius: c.Radius * s, HalfHeight: c.HalfHeight * s}
}

// Height is the full extent of the capsule along Y.
func (c Capsule) Height() float32 {
	return 2 * (c.HalfHeight + c.Radius)
}

// GroundCaster configures the downward shape cast used for grounding.
type GroundCaster struct {
	Scale       float32    // caster shape scale relative to the body collider
	Offset      rl.Vector3 // cast origin relative to the body position, body space
	Direction   rl.Vector3
	MaxDistance float32
	MaxHits     int
}

// DefaultGroundCaster casts the collider shrunk to 0.99 straight down 0.2
// units and keeps up to five hits.
func DefaultGroundCaster() GroundCaster {
	return GroundCaster{
		Scale:       0.99,
		Direction:   rl.Vector3{X: 0, Y: -1, Z: 0},
		MaxDistance: 0.2,
		MaxHits:     5,
	}
}
