package components

import (
	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("MeshRenderer", func() engine.Serializable {
		return NewMeshRenderer(MeshCube, rl.LightGray, rl.Vector3{X: 1, Y: 1, Z: 1})
	})
}

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshCapsule
)

var meshNames = map[string]MeshType{
	"cube":    MeshCube,
	"sphere":  MeshSphere,
	"capsule": MeshCapsule,
}

// MeshRenderer draws a primitive at the object's transform. Cubes follow
// the full rotation; capsules stay upright like the characters they show.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3 // cube extents, sphere radius in X, capsule radius/half-height in X/Y
	Wires    bool

	model  rl.Model
	loaded bool
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	pos := g.WorldPosition()

	switch m.MeshType {
	case MeshCube:
		m.drawCube(g)
	case MeshSphere:
		rl.DrawSphere(pos, m.Size.X, m.Color)
	case MeshCapsule:
		top := rl.Vector3{X: pos.X, Y: pos.Y + m.Size.Y, Z: pos.Z}
		bottom := rl.Vector3{X: pos.X, Y: pos.Y - m.Size.Y, Z: pos.Z}
		rl.DrawCapsule(bottom, top, m.Size.X, 12, 6, m.Color)
		if m.Wires {
			rl.DrawCapsuleWires(bottom, top, m.Size.X, 12, 6, rl.DarkGray)
		}
	}
}

func (m *MeshRenderer) drawCube(g *engine.GameObject) {
	if !m.loaded {
		m.model = rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1))
		m.loaded = true
	}

	scale := g.WorldScale()
	scaleMatrix := rl.MatrixScale(m.Size.X*scale.X, m.Size.Y*scale.Y, m.Size.Z*scale.Z)
	rotMatrix := engine.EulerMatrix(g.WorldRotation())
	pos := g.WorldPosition()
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	// scale -> rotate -> translate
	m.model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
	rl.DrawModel(m.model, rl.Vector3Zero(), 1.0, m.Color)
	if m.Wires {
		rl.DrawModelWires(m.model, rl.Vector3Zero(), 1.0, rl.DarkGray)
	}
}

func (m *MeshRenderer) Unload() {
	if m.loaded {
		rl.UnloadModel(m.model)
		m.loaded = false
	}
}

func (m *MeshRenderer) TypeName() string {
	return "MeshRenderer"
}

func (m *MeshRenderer) Serialize() map[string]any {
	mesh := "cube"
	for name, t := range meshNames {
		if t == m.MeshType {
			mesh = name
		}
	}
	return map[string]any{
		"type":  "MeshRenderer",
		"mesh":  mesh,
		"color": ColorName(m.Color),
		"size":  vecToList(m.Size),
		"wires": m.Wires,
	}
}

func (m *MeshRenderer) Deserialize(data map[string]any) {
	if name, ok := data["mesh"].(string); ok {
		if t, ok := meshNames[name]; ok {
			m.MeshType = t
		}
	}
	if c, ok := data["color"].(string); ok {
		m.Color = LookupColor(c)
	}
	m.Size = listToVec(engine.Vec3(data, "size", vecToArray(m.Size)))
	if w, ok := data["wires"].(bool); ok {
		m.Wires = w
	}
}
