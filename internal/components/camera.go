package components

import (
	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Camera", func() engine.Serializable {
		return NewCamera()
	})
}

type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
	IsMain     bool
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        60.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
	}
}

func (c *Camera) TypeName() string {
	return "Camera"
}

func (c *Camera) Serialize() map[string]any {
	return map[string]any{
		"type":   "Camera",
		"fov":    c.FOV,
		"near":   c.Near,
		"far":    c.Far,
		"isMain": c.IsMain,
	}
}

func (c *Camera) Deserialize(data map[string]any) {
	c.FOV = engine.Float(data, "fov", c.FOV)
	c.Near = engine.Float(data, "near", c.Near)
	c.Far = engine.Float(data, "far", c.Far)
	if m, ok := data["isMain"].(bool); ok {
		c.IsMain = m
	}
}

// GetRaylibCamera builds a first-person camera from the nearest
// LookProvider on this object or its parents. Without one the camera looks
// along the object's yaw.
func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}

	eyePos := g.WorldPosition()

	var lookProvider engine.LookProvider
	for obj := g; obj != nil; obj = obj.Parent {
		if lp := engine.FindComponent[engine.LookProvider](obj); lp != nil {
			lookProvider = lp
			break
		}
	}

	var forward rl.Vector3
	if lookProvider != nil {
		if g.Parent == nil {
			eyePos.Y += lookProvider.GetEyeHeight()
		}
		x, y, z := lookProvider.GetLookDirection()
		forward = rl.Vector3{X: x, Y: y, Z: z}
	} else {
		yaw := g.WorldRotation().Y * rl.Deg2rad
		forward = rl.Vector3RotateByAxisAngle(rl.Vector3{Z: -1}, rl.Vector3{Y: 1}, yaw)
	}

	return rl.Camera3D{
		Position:   eyePos,
		Target:     rl.Vector3Add(eyePos, forward),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
