package components

import (
	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("BoxCollider", func() engine.Serializable {
		return NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
	})
}

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	if g == nil {
		return b.Offset
	}
	return rl.Vector3Add(g.WorldPosition(), b.Offset)
}

// GetWorldSize returns Size scaled by the object's world scale, always positive.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	g := b.GetGameObject()
	if g == nil {
		return b.Size
	}
	s := g.WorldScale()
	return rl.Vector3{
		X: absf(b.Size.X * s.X),
		Y: absf(b.Size.Y * s.Y),
		Z: absf(b.Size.Z * s.Z),
	}
}

func (b *BoxCollider) TypeName() string {
	return "BoxCollider"
}

func (b *BoxCollider) Serialize() map[string]any {
	return map[string]any{
		"type":   "BoxCollider",
		"size":   vecToList(b.Size),
		"offset": vecToList(b.Offset),
	}
}

func (b *BoxCollider) Deserialize(data map[string]any) {
	b.Size = listToVec(engine.Vec3(data, "size", vecToArray(b.Size)))
	b.Offset = listToVec(engine.Vec3(data, "offset", vecToArray(b.Offset)))
}
