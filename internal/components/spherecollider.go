package components

import (
	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("SphereCollider", func() engine.Serializable {
		return NewSphereCollider(0.5)
	})
}

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	if g == nil {
		return s.Offset
	}
	return rl.Vector3Add(g.WorldPosition(), s.Offset)
}

func (s *SphereCollider) TypeName() string {
	return "SphereCollider"
}

func (s *SphereCollider) Serialize() map[string]any {
	return map[string]any{
		"type":   "SphereCollider",
		"radius": s.Radius,
		"offset": vecToList(s.Offset),
	}
}

func (s *SphereCollider) Deserialize(data map[string]any) {
	s.Radius = engine.Float(data, "radius", s.Radius)
	s.Offset = listToVec(engine.Vec3(data, "offset", vecToArray(s.Offset)))
}
