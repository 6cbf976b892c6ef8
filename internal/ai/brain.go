package ai

import (
	"errors"
	"math"

	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrUnknownBrain is returned for a brain kind or script that does not exist.
var ErrUnknownBrain = errors.New("unknown brain")

// Perception is what a brain knows about itself and its target this frame.
type Perception struct {
	Position rl.Vector3
	Yaw      float32
	Grounded bool
	CanDash  bool
	DT       float32

	HasTarget     bool
	Target        rl.Vector3
	TargetVisible bool
}

// ToTarget is the world-space offset from the body to its target.
func (p Perception) ToTarget() rl.Vector3 {
	return rl.Vector3Subtract(p.Target, p.Position)
}

// Local expresses a world offset in the body's horizontal frame: x right,
// y forward. This is the frame Move and Dash take.
func (p Perception) Local(v rl.Vector3) rl.Vector2 {
	s, c := math.Sincos(float64(p.Yaw))
	forward := rl.Vector3{X: float32(-s), Z: float32(-c)}
	right := rl.Vector3{X: float32(c), Z: float32(-s)}
	return rl.Vector2{
		X: rl.Vector3DotProduct(v, right),
		Y: rl.Vector3DotProduct(v, forward),
	}
}

// Brain produces intents for one body. Brains run on the game goroutine.
type Brain interface {
	Think(p Perception) []locomotion.Intent
}

// IdleBrain never does anything.
type IdleBrain struct{}

func (IdleBrain) Think(Perception) []locomotion.Intent { return nil }

const (
	DefaultDetectionRange = 5.0
	DefaultStopDistance   = 1.2
)

// ChaseBrain walks straight at its target once it is within range.
type ChaseBrain struct {
	Range        float32
	StopDistance float32
	NeedsSight   bool // ignore targets hidden behind geometry
}

func NewChaseBrain() *ChaseBrain {
	return &ChaseBrain{Range: DefaultDetectionRange, StopDistance: DefaultStopDistance}
}

func (c *ChaseBrain) Think(p Perception) []locomotion.Intent {
	if !p.HasTarget || (c.NeedsSight && !p.TargetVisible) {
		return nil
	}
	to := p.ToTarget()
	to.Y = 0
	dist := rl.Vector3Length(to)
	if dist > c.Range || dist < c.StopDistance {
		return nil
	}
	local := p.Local(to)
	if rl.Vector2Length(local) < 1e-6 {
		return nil
	}
	return []locomotion.Intent{locomotion.Move{Direction: rl.Vector2Normalize(local), SpeedMultiplier: 1}}
}
