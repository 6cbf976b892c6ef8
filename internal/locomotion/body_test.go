package locomotion

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestBodyYawRoundTrip(t *testing.T) {
	b := testBody(1)
	assert.InDelta(t, 0, b.Yaw(), eps)

	for _, yaw := range []float32{0.3, -1.2, 2.5} {
		b.SetYaw(yaw)
		assert.InDelta(t, yaw, b.Yaw(), eps)
	}
}

func TestBodyAxes(t *testing.T) {
	b := testBody(1)
	forward, right := b.Axes()
	assert.InDelta(t, -1, forward.Z, eps)
	assert.InDelta(t, 1, right.X, eps)

	b.SetYaw(math.Pi / 2)
	forward, right = b.Axes()
	assert.InDelta(t, -1, forward.X, eps)
	assert.InDelta(t, -1, right.Z, eps)
	assert.InDelta(t, 0, rl.Vector3DotProduct(forward, right), eps)
}

func TestBodyCooldownsClampAtZero(t *testing.T) {
	b := testBody(1)
	b.dashCooldown = 0.2
	b.stepCooldown = 0.1
	b.tickCooldowns(0.5)
	assert.Equal(t, float32(0), b.DashCooldown())
	assert.Equal(t, float32(0), b.stepCooldown)
}

func TestBodyHorizontalSpeed(t *testing.T) {
	b := testBody(1)
	b.Velocity = rl.Vector3{X: 3, Y: -20, Z: 4}
	assert.InDelta(t, 5, b.HorizontalSpeed(), eps)
}

func TestCameraOrientation(t *testing.T) {
	c := &CameraOrientation{}
	dir := c.LookDirection(0)
	assert.InDelta(t, -1, dir.Z, eps)

	c.AddPitch(10)
	assert.Equal(t, PitchLimit, c.Pitch)
	c.AddPitch(-20)
	assert.Equal(t, -PitchLimit, c.Pitch)

	b := testBody(1)
	b.SetYaw(0.7)
	c.Pitch = 0
	forward, _ := b.Axes()
	look := c.LookDirection(b.Yaw())
	assert.InDelta(t, forward.X, look.X, eps)
	assert.InDelta(t, forward.Z, look.Z, eps)
}

func TestTuningSlopeHelpers(t *testing.T) {
	base := DefaultTuning()
	assert.True(t, base.HasSlopeLimit)
	assert.InDelta(t, math.Pi*0.45, base.MaxSlopeAngle, eps)

	none := base.WithoutSlopeLimit()
	assert.False(t, none.HasSlopeLimit)
	assert.True(t, base.HasSlopeLimit, "helpers return copies")

	p := PlayerTuning()
	assert.Equal(t, float32(64), p.Acceleration)
	assert.InDelta(t, deg2rad(35), p.MaxSlopeAngle, eps)
	assert.InDelta(t, 1.8, Capsule{Radius: 0.4, HalfHeight: 0.5}.Height(), eps)
}
