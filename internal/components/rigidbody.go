package components

import (
	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Rigidbody", func() engine.Serializable {
		return NewRigidbody()
	})
}

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec
	SleepAngularThreshold  = 1.0 // deg/sec
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

// Rigidbody makes a prop dynamic. Characters never carry one; they are
// driven by a CharacterController instead.
type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	AngularDamping  float32
	UseGravity      bool
	IsKinematic     bool // moves but doesn't get pushed by physics

	IsSleeping bool
	sleepTimer float32
	CanSleep   bool
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:           1.0,
		Bounciness:     0.5,
		Friction:       0.1,
		AngularDamping: 0.98,
		UseGravity:     true,
		CanSleep:       true,
	}
}

// ApplyImpulse changes velocity by impulse/mass and wakes the body.
func (r *Rigidbody) ApplyImpulse(impulse rl.Vector3) {
	if r.IsKinematic {
		return
	}
	mass := r.Mass
	if mass <= 0 {
		mass = 1
	}
	r.Velocity = rl.Vector3Add(r.Velocity, rl.Vector3Scale(impulse, 1/mass))
	r.Wake()
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep puts the body to sleep after it stays slow for SleepTimeThreshold.
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime

		// extra damping near rest reduces jitter
		r.Velocity = rl.Vector3Scale(r.Velocity, 0.9)
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, 0.9)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
			r.AngularVelocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}

func (r *Rigidbody) TypeName() string {
	return "Rigidbody"
}

func (r *Rigidbody) Serialize() map[string]any {
	return map[string]any{
		"type":        "Rigidbody",
		"mass":        r.Mass,
		"bounciness":  r.Bounciness,
		"friction":    r.Friction,
		"useGravity":  r.UseGravity,
		"isKinematic": r.IsKinematic,
		"canSleep":    r.CanSleep,
	}
}

func (r *Rigidbody) Deserialize(data map[string]any) {
	r.Mass = engine.Float(data, "mass", r.Mass)
	r.Bounciness = engine.Float(data, "bounciness", r.Bounciness)
	r.Friction = engine.Float(data, "friction", r.Friction)
	if g, ok := data["useGravity"].(bool); ok {
		r.UseGravity = g
	}
	if k, ok := data["isKinematic"].(bool); ok {
		r.IsKinematic = k
	}
	if s, ok := data["canSleep"].(bool); ok {
		r.CanSleep = s
	}
}
