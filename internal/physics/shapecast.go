package physics

import (
	"cmp"
	"slices"

	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	castIterations = 32
	castSkin       = 1e-3
)

// CastShape implements locomotion.ShapeCaster by conservative advancement:
// the capsule steps forward by its current clearance until it touches or
// runs out of distance. Each collider reports at most one hit.
func (p *PhysicsWorld) CastShape(cast locomotion.ShapeCast) []locomotion.ShapeHit {
	dir := normalizeOr(cast.Direction, rl.Vector3{Y: -1})
	start := CapsuleAt(cast.Shape, cast.Origin)
	end := start.Translate(rl.Vector3Scale(dir, cast.MaxDistance))
	sweep := start.Bounds().Union(end.Bounds()).Expand(castSkin)
	toLocal := rl.QuaternionInvert(cast.Rotation)

	var hits []locomotion.ShapeHit
	visit := func(list []*engine.GameObject) {
		for _, obj := range list {
			if locomotion.EntityID(obj.UID) == cast.Exclude {
				continue
			}
			s, ok := shapeOf(obj)
			if !ok || !sweep.Intersects(s.bounds()) {
				continue
			}
			hit, ok := castAgainst(start, dir, cast.MaxDistance, s)
			if !ok {
				continue
			}
			hit.Entity = locomotion.EntityID(obj.UID)
			hit.LocalNormal = rl.Vector3RotateByQuaternion(rl.Vector3Negate(hit.Normal), toLocal)
			hits = append(hits, hit)
		}
	}
	visit(p.Statics)
	visit(p.Objects)
	visit(p.Kinematics)

	slices.SortFunc(hits, func(a, b locomotion.ShapeHit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if cast.MaxHits > 0 && len(hits) > cast.MaxHits {
		hits = hits[:cast.MaxHits]
	}
	return hits
}

// castAgainst sweeps c along dir. Distance between convex shapes is convex
// in the travel, so once the closest feature stops approaching it never
// will.
func castAgainst(c Capsule, dir rl.Vector3, maxDistance float32, s shape) (locomotion.ShapeHit, bool) {
	var t float32
	for i := 0; i < castIterations; i++ {
		prox := measure(c.Translate(rl.Vector3Scale(dir, t)), s)
		if prox.Separation <= castSkin {
			return locomotion.ShapeHit{Distance: t, Point: prox.Point, Normal: prox.Normal}, true
		}
		if rl.Vector3DotProduct(dir, prox.Normal) >= 0 {
			return locomotion.ShapeHit{}, false
		}
		t += prox.Separation
		if t > maxDistance {
			return locomotion.ShapeHit{}, false
		}
	}
	return locomotion.ShapeHit{}, false
}
