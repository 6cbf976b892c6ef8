package world

import (
	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws the level with raylib's default shading, plus optional
// locomotion overlays.
type Renderer struct {
	Debug bool // capsules, velocities and ground normals
	Grid  bool

	// ShowPlayer draws the player's own mesh, for views not looking
	// through its eyes.
	ShowPlayer bool

	culled int
}

func NewRenderer() *Renderer {
	return &Renderer{Grid: true}
}

// Culled reports how many meshes the last Draw skipped.
func (r *Renderer) Culled() int {
	return r.culled
}

// Draw renders every visible mesh of w from camera. It must be called
// between rl.BeginDrawing and rl.EndDrawing.
func (r *Renderer) Draw(w *World, camera rl.Camera3D) {
	frustum := ExtractFrustum(camera)
	r.culled = 0

	rl.BeginMode3D(camera)
	if r.Grid {
		rl.DrawGrid(40, 1)
	}
	for _, g := range w.Scene.GameObjects {
		mr := engine.GetComponent[*components.MeshRenderer](g)
		if mr == nil || (g == w.Player && !r.ShowPlayer) {
			continue
		}
		if !frustum.ContainsSphere(g.WorldPosition(), boundingRadius(g, mr)) {
			r.culled++
			continue
		}
		mr.Draw()
	}
	if r.Debug {
		for _, b := range w.Driver.Bodies() {
			r.drawBody(w, b)
		}
	}
	rl.EndMode3D()
}

func boundingRadius(g *engine.GameObject, mr *components.MeshRenderer) float32 {
	s := g.WorldScale()
	switch mr.MeshType {
	case components.MeshSphere:
		return mr.Size.X * max(s.X, s.Y, s.Z)
	case components.MeshCapsule:
		return mr.Size.X + mr.Size.Y
	}
	return 0.5 * rl.Vector3Length(rl.Vector3Multiply(mr.Size, s))
}

func (r *Renderer) drawBody(w *World, b *locomotion.Body) {
	c := b.Collider
	bottom := rl.Vector3{X: b.Position.X, Y: b.Position.Y - c.HalfHeight, Z: b.Position.Z}
	top := rl.Vector3{X: b.Position.X, Y: b.Position.Y + c.HalfHeight, Z: b.Position.Z}

	color := rl.SkyBlue
	switch {
	case b.Mode() == locomotion.ControlKnockback:
		color = rl.Orange
	case b.Grounded():
		color = rl.Lime
	}
	rl.DrawCapsuleWires(bottom, top, c.Radius, 8, 4, color)

	rl.DrawLine3D(b.Position, rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, 0.2)), rl.Yellow)

	forward, _ := b.Axes()
	rl.DrawLine3D(b.Position, rl.Vector3Add(b.Position, forward), rl.Red)

	if hit, ok := w.Physics.RaycastExcluding(bottom, rl.Vector3{Y: -1}, c.Radius+1, uint64(b.ID)); ok {
		rl.DrawSphere(hit.Point, 0.05, rl.Magenta)
		rl.DrawLine3D(hit.Point, rl.Vector3Add(hit.Point, hit.Normal), rl.Magenta)
	}
}
