package locomotion

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// EntityID identifies a body; hosts use their object UID.
type EntityID uint64

// BodyKind is the rigid-body classification reported by the physics collaborator.
type BodyKind uint8

const (
	KindStatic BodyKind = iota
	KindKinematic
	KindDynamic
)

func (k BodyKind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindKinematic:
		return "kinematic"
	case KindDynamic:
		return "dynamic"
	}
	return "unknown"
}

// ControlMode says who owns a body's velocity this frame.
type ControlMode uint8

const (
	ControlNormal ControlMode = iota
	ControlKnockback
)

func (m ControlMode) String() string {
	if m == ControlKnockback {
		return "knockback"
	}
	return "normal"
}

// Knockback is the stored hit-reaction trajectory.
type Knockback struct {
	Velocity  rl.Vector3
	Remaining float32
}

// Body is the locomotion record of one player or enemy.
type Body struct {
	ID       EntityID
	Kind     BodyKind
	Collider Capsule
	Caster   GroundCaster
	Tuning   Tuning

	Position rl.Vector3
	Rotation rl.Quaternion // yaw only; the body never pitches or rolls
	Velocity rl.Vector3

	// View is the camera orientation of a viewing body, nil for bodies
	// nobody looks through.
	View *CameraOrientation

	grounded bool

	// mode and knockback form one tagged variant: knockback is only
	// meaningful while mode == ControlKnockback.
	mode      ControlMode
	knockback Knockback

	dashCooldown float32
	stepCooldown float32
}

// NewBody creates a kinematic body at pos facing -Z.
func NewBody(id EntityID, collider Capsule, tuning Tuning, pos rl.Vector3) *Body {
	return &Body{
		ID:       id,
		Kind:     KindKinematic,
		Collider: collider,
		Caster:   DefaultGroundCaster(),
		Tuning:   tuning,
		Position: pos,
		Rotation: rl.QuaternionIdentity(),
	}
}

// Grounded reports the result of the latest classification pass.
func (b *Body) Grounded() bool {
	return b.grounded
}

// Mode reports whether the body is under normal or knockback control.
func (b *Body) Mode() ControlMode {
	return b.mode
}

// Knockback returns the active knockback state, if any.
func (b *Body) Knockback() (Knockback, bool) {
	if b.mode != ControlKnockback {
		return Knockback{}, false
	}
	return b.knockback, true
}

// ApplyKnockback switches the body to knockback control. A new hit replaces
// any knockback already running.
func (b *Body) ApplyKnockback(velocity rl.Vector3, duration float32) {
	if duration <= 0 {
		return
	}
	b.mode = ControlKnockback
	b.knockback = Knockback{Velocity: velocity, Remaining: duration}
}

func (b *Body) clearKnockback() {
	b.mode = ControlNormal
	b.knockback = Knockback{}
}

// DashCooldown is the time left before another dash is accepted.
func (b *Body) DashCooldown() float32 {
	return b.dashCooldown
}

// CanDash reports whether a Dash intent would be applied now.
func (b *Body) CanDash() bool {
	return b.dashCooldown <= 0
}

// Yaw is the heading in radians; zero faces -Z.
func (b *Body) Yaw() float32 {
	z := rl.Vector3RotateByQuaternion(zAxis, b.Rotation)
	return float32(math.Atan2(float64(z.X), float64(z.Z)))
}

// SetYaw replaces the orientation with a pure rotation about +Y.
func (b *Body) SetYaw(yaw float32) {
	b.Rotation = rl.QuaternionFromAxisAngle(up, yaw)
}

// Axes returns the horizontal forward and right directions of the body.
func (b *Body) Axes() (forward, right rl.Vector3) {
	z := rl.Vector3RotateByQuaternion(zAxis, b.Rotation)
	forward = normalizeOrZero(rl.Vector3{X: -z.X, Y: 0, Z: -z.Z})
	right = normalizeOrZero(rl.Vector3{X: z.Z, Y: 0, Z: -z.X})
	return forward, right
}

// HorizontalSpeed is the length of the XZ velocity.
func (b *Body) HorizontalSpeed() float32 {
	return rl.Vector3Length(rejectFromUp(b.Velocity))
}

func (b *Body) tickCooldowns(dt float32) {
	b.dashCooldown = maxf(b.dashCooldown-dt, 0)
	b.stepCooldown = maxf(b.stepCooldown-dt, 0)
}
