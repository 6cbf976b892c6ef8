package locomotion

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// stepCueThreshold is the minimum per-frame speed gain that produces
// footsteps.
const stepCueThreshold = 0.05

// IntentResolver turns intents into velocity changes on a body.
type IntentResolver struct {
	Viewport Viewport
	OnCue    func(Cue)
	OnAttack func(AttackIssued)

	log *skipLog
}

// NewIntentResolver creates a resolver that scales look input by vp.
func NewIntentResolver(vp Viewport) *IntentResolver {
	return &IntentResolver{Viewport: vp, log: newSkipLog()}
}

// Apply applies one intent to b immediately. Intents are never batched:
// two Moves in one frame add up.
func (r *IntentResolver) Apply(b *Body, in Intent, dt float32) {
	switch in := in.(type) {
	case Move:
		r.move(b, in, dt)
	case Dash:
		r.dash(b, in)
	case Jump:
		r.jump(b)
	case Look:
		r.look(b, in)
	case Attack:
		r.attack(b, in)
	}
}

func (r *IntentResolver) move(b *Body, m Move, dt float32) {
	dir := clampLength2(m.Direction)
	length := length2(dir)
	if length < 1e-6 {
		return
	}
	forward, right := b.Axes()
	wish := rl.Vector3Add(rl.Vector3Scale(forward, dir.Y), rl.Vector3Scale(right, dir.X))
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(wish, b.Tuning.Acceleration*m.SpeedMultiplier*dt))

	// stride is the speed gained this frame
	stride := length * b.Tuning.Acceleration * m.SpeedMultiplier * dt
	if b.grounded && stride > stepCueThreshold && b.stepCooldown <= 0 {
		b.stepCooldown = b.Tuning.StepCueInterval / stride
		r.cue(b, CueStep)
	}
}

func (r *IntentResolver) dash(b *Body, d Dash) {
	if !b.CanDash() {
		r.log.printf("dash-cooldown", "entity %d dash ignored, %.2fs cooldown left", b.ID, b.dashCooldown)
		return
	}
	forward, right := b.Axes()
	burst := rl.Vector3Add(rl.Vector3Scale(forward, d.Direction.Y), rl.Vector3Scale(right, d.Direction.X))
	burst = rl.Vector3Add(burst, rl.Vector3Scale(up, b.Tuning.DashUpBoost))

	b.Velocity.Y = 0
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(burst, b.Tuning.Acceleration*b.Tuning.DashImpulseScale))
	b.dashCooldown = b.Tuning.DashCooldown
	r.cue(b, CueDash)
}

func (r *IntentResolver) jump(b *Body) {
	if !b.grounded {
		return
	}
	b.Velocity.Y = b.Tuning.JumpImpulse
	r.cue(b, CueJump)
}

func (r *IntentResolver) look(b *Body, l Look) {
	if r.Viewport == nil {
		r.log.printf("no-viewport", "look ignored, no viewport")
		return
	}
	w, h := r.Viewport.Size()
	scale := float32(max(w, h))
	if scale <= 0 {
		r.log.printf("no-viewport", "look ignored, viewport is %dx%d", w, h)
		return
	}
	if b.View == nil {
		r.log.printf("no-camera", "entity %d look ignored, no camera orientation", b.ID)
		return
	}

	yaw := deg2rad(b.Tuning.LookSensitivity * l.Delta.X * scale / 10000)
	pitch := deg2rad(b.Tuning.LookSensitivity * l.Delta.Y * scale / 10000)

	turn := rl.QuaternionFromAxisAngle(up, -yaw)
	b.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(turn, b.Rotation))
	b.View.AddPitch(-pitch)
}

func (r *IntentResolver) attack(b *Body, a Attack) {
	dir := normalizeOrZero(a.Direction)
	if dir == (rl.Vector3{}) {
		dir, _ = b.Axes()
	}
	if r.OnAttack != nil {
		r.OnAttack(AttackIssued{Entity: b.ID, Origin: b.Position, Direction: dir})
	}
}

func (r *IntentResolver) cue(b *Body, kind CueKind) {
	if r.OnCue != nil {
		r.OnCue(Cue{Entity: b.ID, Kind: kind, Position: b.Position})
	}
}

// Damp scales horizontal velocity by the body's damping factor. It runs
// every frame and is the only source of horizontal deceleration.
func Damp(b *Body) {
	b.Velocity.X *= b.Tuning.Damping
	b.Velocity.Z *= b.Tuning.Damping
}

// ApplyGravity integrates controller gravity into the body velocity.
func ApplyGravity(b *Body, gravity rl.Vector3, dt float32) {
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(gravity, b.Tuning.GravityScale*dt))
}
