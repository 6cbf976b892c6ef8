package physics

import (
	"math"
	"testing"

	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastShapeFindsFloorBelow(t *testing.T) {
	w := NewPhysicsWorld()
	floor := newFloor()
	w.AddObject(floor)
	g, cc := newCharacter("Player", rl.Vector3{Y: 0.95})
	w.AddObject(g)

	hits := w.CastShape(locomotion.GroundCast(cc.Body))

	require.Len(t, hits, 1)
	hit := hits[0]
	assert.Equal(t, locomotion.EntityID(floor.UID), hit.Entity)
	// caster bottom sits at 0.95 - 0.99*0.9
	assert.InDelta(t, 0.95-0.99*0.9, hit.Distance, 2*castSkin)
	assert.InDelta(t, 1, hit.Normal.Y, eps)
	assert.InDelta(t, -1, hit.LocalNormal.Y, eps)
	assert.True(t, locomotion.ClassifyGrounded(cc.Body, hits))
}

func TestCastShapeOutOfReach(t *testing.T) {
	w := NewPhysicsWorld()
	w.AddObject(newFloor())
	g, cc := newCharacter("Player", rl.Vector3{Y: 2})
	w.AddObject(g)

	assert.Empty(t, w.CastShape(locomotion.GroundCast(cc.Body)))
}

func TestCastShapeReportsRampNormal(t *testing.T) {
	w := NewPhysicsWorld()
	ramp := newStaticBox("Ramp", rl.Vector3{}, rl.Vector3{X: 10, Y: 1, Z: 10}, rl.Vector3{Z: 50})
	w.AddObject(ramp)

	cast := locomotion.ShapeCast{
		Shape:       playerShape,
		Origin:      rl.Vector3{Y: 2.2},
		Rotation:    rl.QuaternionIdentity(),
		Direction:   rl.Vector3{Y: -1},
		MaxDistance: 5,
		MaxHits:     1,
	}
	hits := w.CastShape(cast)

	require.Len(t, hits, 1)
	s, c := math.Sincos(50 * math.Pi / 180)
	assert.InDelta(t, -s, hits[0].Normal.X, 1e-2)
	assert.InDelta(t, c, hits[0].Normal.Y, 1e-2)

	tuning := locomotion.DefaultTuning().WithSlopeLimit(45 * math.Pi / 180)
	assert.False(t, locomotion.IsWalkable(tuning, cast.Rotation, hits[0]))
}

func TestCastShapeSortsAndExcludes(t *testing.T) {
	w := NewPhysicsWorld()
	low := newStaticBox("Low", rl.Vector3{Y: -0.5}, rl.Vector3{X: 4, Y: 1, Z: 4}, rl.Vector3{})
	high := newStaticBox("High", rl.Vector3{X: 1, Y: -0.4}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{})
	w.AddObject(low)
	w.AddObject(high)
	g, cc := newCharacter("Player", rl.Vector3{X: 0.5, Y: 1.0})
	w.AddObject(g)

	cast := locomotion.GroundCast(cc.Body)
	cast.MaxDistance = 1
	hits := w.CastShape(cast)

	require.Len(t, hits, 2)
	assert.Equal(t, locomotion.EntityID(high.UID), hits[0].Entity)
	assert.Equal(t, locomotion.EntityID(low.UID), hits[1].Entity)
	for _, h := range hits {
		assert.NotEqual(t, cast.Exclude, h.Entity)
	}

	cast.MaxHits = 1
	assert.Len(t, w.CastShape(cast), 1)
}

func TestCastShapeLocalNormalFollowsRotation(t *testing.T) {
	w := NewPhysicsWorld()
	w.AddObject(newStaticBox("Wall", rl.Vector3{X: 2}, rl.Vector3{X: 1, Y: 4, Z: 4}, rl.Vector3{}))

	rot := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/2)
	hits := w.CastShape(locomotion.ShapeCast{
		Shape:       playerShape,
		Origin:      rl.Vector3{},
		Rotation:    rot,
		Direction:   rl.Vector3{X: 1},
		MaxDistance: 2,
		MaxHits:     5,
	})

	require.Len(t, hits, 1)
	assert.InDelta(t, 1.5-0.4, hits[0].Distance, 2*castSkin)
	assert.InDelta(t, -1, hits[0].Normal.X, eps)
	// world +X is local +Z for a body turned 90 degrees
	world := rl.Vector3RotateByQuaternion(hits[0].LocalNormal, rot)
	assert.InDelta(t, 1, world.X, eps)
}
