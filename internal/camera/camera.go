package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FlyCamera is a detached spectator camera for watching the simulation.
// It ignores collision and gravity.
type FlyCamera struct {
	Position  rl.Vector3
	Yaw       float32 // degrees, 0 looks along +X
	Pitch     float32 // degrees
	MoveSpeed float32
	FastScale float32
	LookSpeed float32
}

// Controls is one frame of spectator input. Move is x right, y up,
// z forward.
type Controls struct {
	Move rl.Vector3
	Look rl.Vector2 // mouse pixels
	Fast bool
}

func New(pos rl.Vector3) *FlyCamera {
	return &FlyCamera{
		Position:  pos,
		Yaw:       -90,
		Pitch:     -20,
		MoveSpeed: 8,
		FastScale: 4,
		LookSpeed: 0.1,
	}
}

// Follow places the camera at an eye position looking along dir.
func (c *FlyCamera) Follow(eye, dir rl.Vector3) {
	c.Position = eye
	c.Yaw = float32(math.Atan2(float64(dir.Z), float64(dir.X))) * rl.Rad2deg
	horiz := math.Hypot(float64(dir.X), float64(dir.Z))
	c.Pitch = float32(math.Atan2(float64(dir.Y), horiz)) * rl.Rad2deg
}

// PollControls reads the arrow keys, PageUp/PageDown, right Ctrl and the
// mouse.
func PollControls() Controls {
	var in Controls
	if rl.IsKeyDown(rl.KeyUp) {
		in.Move.Z++
	}
	if rl.IsKeyDown(rl.KeyDown) {
		in.Move.Z--
	}
	if rl.IsKeyDown(rl.KeyRight) {
		in.Move.X++
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		in.Move.X--
	}
	if rl.IsKeyDown(rl.KeyPageUp) {
		in.Move.Y++
	}
	if rl.IsKeyDown(rl.KeyPageDown) {
		in.Move.Y--
	}
	in.Fast = rl.IsKeyDown(rl.KeyRightControl)
	in.Look = rl.GetMouseDelta()
	return in
}

func (c *FlyCamera) Update(deltaTime float32, in Controls) {
	c.Yaw += in.Look.X * c.LookSpeed
	c.Pitch -= in.Look.Y * c.LookSpeed
	c.Pitch = max(-89, min(89, c.Pitch))

	forward, right := c.directions()

	var move rl.Vector3
	move = rl.Vector3Add(move, rl.Vector3Scale(forward, in.Move.Z))
	move = rl.Vector3Add(move, rl.Vector3Scale(right, in.Move.X))
	move.Y += in.Move.Y
	if l := rl.Vector3Length(move); l > 0 {
		move = rl.Vector3Scale(move, 1/l)
	}

	speed := c.MoveSpeed
	if in.Fast {
		speed *= c.FastScale
	}
	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(move, speed*deltaTime))
}

// directions returns the horizontal forward and right vectors.
func (c *FlyCamera) directions() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Z: float32(math.Cos(yawRad)),
	}
	return
}

func (c *FlyCamera) GetRaylibCamera() rl.Camera3D {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	target := rl.Vector3{
		X: c.Position.X + float32(math.Cos(yawRad)*math.Cos(pitchRad)),
		Y: c.Position.Y + float32(math.Sin(pitchRad)),
		Z: c.Position.Z + float32(math.Sin(yawRad)*math.Cos(pitchRad)),
	}

	return rl.Camera3D{
		Position:   c.Position,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}
