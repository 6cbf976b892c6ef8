package components

import (
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("CharacterController", func() engine.Serializable {
		return NewCharacterController()
	})
}

// CharacterController attaches a locomotion body to a GameObject. The body
// is the source of truth for position and heading; the transform follows it.
type CharacterController struct {
	engine.BaseComponent

	Radius     float32
	HalfHeight float32 // half the length of the capsule's inner segment
	EyeHeight  float32 // camera offset above the body position
	Profile    string  // tuning profile name
	SlopeLimit float32 // degrees; 0 keeps the profile's limit, negative disables it
	Viewer     bool    // whether a camera looks through this character

	Tuning locomotion.Tuning
	Body   *locomotion.Body
	View   locomotion.CameraOrientation
}

func NewCharacterController() *CharacterController {
	return &CharacterController{
		Radius:     0.4,
		HalfHeight: 0.5,
		EyeHeight:  0.6,
		Profile:    "default",
		Tuning:     locomotion.DefaultTuning(),
	}
}

func (c *CharacterController) TypeName() string {
	return "CharacterController"
}

func (c *CharacterController) Serialize() map[string]any {
	return map[string]any{
		"type":       "CharacterController",
		"radius":     c.Radius,
		"halfHeight": c.HalfHeight,
		"eyeHeight":  c.EyeHeight,
		"profile":    c.Profile,
		"slopeLimit": c.SlopeLimit,
		"viewer":     c.Viewer,
	}
}

func (c *CharacterController) Deserialize(data map[string]any) {
	c.Radius = engine.Float(data, "radius", c.Radius)
	c.HalfHeight = engine.Float(data, "halfHeight", c.HalfHeight)
	c.EyeHeight = engine.Float(data, "eyeHeight", c.EyeHeight)
	c.SlopeLimit = engine.Float(data, "slopeLimit", c.SlopeLimit)
	if p, ok := data["profile"].(string); ok && p != "" {
		c.Profile = p
	}
	if v, ok := data["viewer"].(bool); ok {
		c.Viewer = v
	}
	if c.Profile == "player" {
		c.Tuning = locomotion.PlayerTuning()
	}
	c.applySlopeLimit()
}

// SetTuning replaces the tuning, keeping any slope limit set on the component.
func (c *CharacterController) SetTuning(t locomotion.Tuning) {
	c.Tuning = t
	c.applySlopeLimit()
	if c.Body != nil {
		c.Body.Tuning = c.Tuning
	}
}

func (c *CharacterController) applySlopeLimit() {
	switch {
	case c.SlopeLimit < 0:
		c.Tuning = c.Tuning.WithoutSlopeLimit()
	case c.SlopeLimit > 0:
		c.Tuning = c.Tuning.WithSlopeLimit(c.SlopeLimit * rl.Deg2rad)
	}
}

// Capsule is the collider shape in body space.
func (c *CharacterController) Capsule() locomotion.Capsule {
	return locomotion.Capsule{Radius: c.Radius, HalfHeight: c.HalfHeight}
}

// Start creates the body from the current transform.
func (c *CharacterController) Start() {
	if c.Body != nil {
		return
	}
	g := c.GetGameObject()
	if g == nil {
		return
	}
	b := locomotion.NewBody(locomotion.EntityID(g.UID), c.Capsule(), c.Tuning, g.WorldPosition())
	b.SetYaw(g.Transform.Rotation.Y * rl.Deg2rad)
	if c.Viewer {
		b.View = &c.View
	}
	c.Body = b
}

func (c *CharacterController) Update(deltaTime float32) {
	c.SyncTransform()
}

// SyncTransform copies the body pose onto the GameObject.
func (c *CharacterController) SyncTransform() {
	g := c.GetGameObject()
	if g == nil || c.Body == nil {
		return
	}
	g.Transform.Position = c.Body.Position
	g.Transform.Rotation = rl.Vector3{Y: c.Body.Yaw() * rl.Rad2deg}
}

// Teleport moves the body and clears its motion.
func (c *CharacterController) Teleport(pos rl.Vector3) {
	if c.Body == nil {
		return
	}
	c.Body.Position = pos
	c.Body.Velocity = rl.Vector3{}
	c.SyncTransform()
}

// GetLookDirection implements engine.LookProvider
func (c *CharacterController) GetLookDirection() (x, y, z float32) {
	if c.Body == nil {
		return 0, 0, -1
	}
	d := c.View.LookDirection(c.Body.Yaw())
	return d.X, d.Y, d.Z
}

// GetEyeHeight implements engine.LookProvider
func (c *CharacterController) GetEyeHeight() float32 {
	return c.EyeHeight
}
