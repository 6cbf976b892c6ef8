package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestFlyCameraMovesAlongYaw(t *testing.T) {
	c := New(rl.Vector3{})
	c.Yaw = 0

	c.Update(1, Controls{Move: rl.Vector3{Z: 1}})
	assert.InDelta(t, 8, c.Position.X, 1e-4)
	assert.InDelta(t, 0, c.Position.Z, 1e-4)

	c.Update(1, Controls{Move: rl.Vector3{X: 1}})
	assert.InDelta(t, 8, c.Position.Z, 1e-4)

	c.Update(0.5, Controls{Move: rl.Vector3{Y: 1}, Fast: true})
	assert.InDelta(t, 16, c.Position.Y, 1e-4)
}

func TestFlyCameraDiagonalIsNormalized(t *testing.T) {
	c := New(rl.Vector3{})
	c.Update(1, Controls{Move: rl.Vector3{X: 1, Z: 1}})
	assert.InDelta(t, 8, rl.Vector3Length(c.Position), 1e-4)
}

func TestFlyCameraPitchClamp(t *testing.T) {
	c := New(rl.Vector3{})
	c.Update(0, Controls{Look: rl.Vector2{Y: -10000}})
	assert.Equal(t, float32(89), c.Pitch)
	c.Update(0, Controls{Look: rl.Vector2{Y: 10000}})
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestFollowMatchesLookDirection(t *testing.T) {
	c := New(rl.Vector3{})
	dir := rl.Vector3Normalize(rl.Vector3{X: 0, Y: 1, Z: -1})
	c.Follow(rl.Vector3{Y: 2}, dir)

	cam := c.GetRaylibCamera()
	got := rl.Vector3Subtract(cam.Target, cam.Position)
	assert.InDelta(t, dir.X, got.X, 1e-4)
	assert.InDelta(t, dir.Y, got.Y, 1e-4)
	assert.InDelta(t, dir.Z, got.Z, 1e-4)
}
