package locomotion

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PitchLimit keeps the view just short of straight up or down (about 88°).
const PitchLimit float32 = 1.54

// CameraOrientation is the view-only pitch of a viewing body. Yaw lives on
// the body rotation so movement and view never disagree about heading.
type CameraOrientation struct {
	Pitch float32
}

// AddPitch applies delta radians and clamps the result.
func (c *CameraOrientation) AddPitch(delta float32) {
	c.Pitch = clampf(c.Pitch+delta, -PitchLimit, PitchLimit)
}

// LookDirection composes a body yaw with the stored pitch.
func (c *CameraOrientation) LookDirection(yaw float32) rl.Vector3 {
	sy, cy := math.Sincos(float64(yaw))
	sp, cp := math.Sincos(float64(c.Pitch))
	return rl.Vector3{
		X: float32(-sy * cp),
		Y: float32(sp),
		Z: float32(-cy * cp),
	}
}

// Viewport reports the window size used to make look speed
// resolution independent.
type Viewport interface {
	Size() (width, height int)
}

// FixedViewport is a Viewport of constant size.
type FixedViewport struct {
	Width, Height int
}

func (v FixedViewport) Size() (int, int) {
	return v.Width, v.Height
}
