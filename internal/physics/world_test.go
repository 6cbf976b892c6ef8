package physics

import (
	"testing"

	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = float32(1.0 / 60.0)

func TestAddObjectClassifies(t *testing.T) {
	w := NewPhysicsWorld()
	floor := newFloor()
	prop, _ := newProp("Crate", rl.Vector3{Y: 2})
	player, _ := newCharacter("Player", rl.Vector3{Y: 1})

	platform, rb := newProp("Platform", rl.Vector3{X: 4})
	rb.IsKinematic = true

	marker := engine.NewGameObject("Marker")

	for _, g := range []*engine.GameObject{floor, prop, player, platform, marker, floor} {
		w.AddObject(g)
	}

	assert.Len(t, w.Statics, 1)
	assert.Len(t, w.Objects, 1)
	assert.Len(t, w.Kinematics, 2)
	assert.Equal(t, 1, w.DynamicObjectCount())

	cases := map[*engine.GameObject]locomotion.BodyKind{
		floor:    locomotion.KindStatic,
		prop:     locomotion.KindDynamic,
		player:   locomotion.KindKinematic,
		platform: locomotion.KindKinematic,
	}
	for g, want := range cases {
		got, ok := w.Kind(locomotion.EntityID(g.UID))
		require.True(t, ok, g.Name)
		assert.Equal(t, want, got, g.Name)
	}
	_, ok := w.Kind(locomotion.EntityID(marker.UID))
	assert.False(t, ok)
	assert.Nil(t, w.Object(marker.UID))
}

func TestRemoveObject(t *testing.T) {
	w := NewPhysicsWorld()
	prop, _ := newProp("Crate", rl.Vector3{Y: 2})
	w.AddObject(prop)

	w.RemoveObject(prop)
	w.RemoveObject(prop)

	assert.Empty(t, w.Objects)
	_, ok := w.Kind(locomotion.EntityID(prop.UID))
	assert.False(t, ok)
	assert.Nil(t, w.Object(prop.UID))
}

func TestPropSettlesOnFloor(t *testing.T) {
	w := NewPhysicsWorld()
	w.AddObject(newFloor())
	prop, rb := newProp("Crate", rl.Vector3{Y: 3})
	w.AddObject(prop)

	for i := 0; i < 180; i++ {
		w.Update(tick)
	}

	assert.InDelta(t, 0.5, prop.Transform.Position.Y, 0.02)
	assert.Less(t, rl.Vector3Length(rb.Velocity), float32(1))
}

func TestCharacterPushesProp(t *testing.T) {
	w := NewPhysicsWorld()
	g, cc := newCharacter("Player", rl.Vector3{Y: 3})
	prop, rb := newProp("Crate", rl.Vector3{X: 0.8, Y: 3})
	rb.UseGravity = false
	w.AddObject(g)
	w.AddObject(prop)
	cc.Body.Velocity = rl.Vector3{X: 5}

	w.Update(tick)

	assert.InDelta(t, 0.9, prop.Transform.Position.X, eps)
	assert.InDelta(t, 7.5, rb.Velocity.X, eps)
	// characters are never moved by the prop pass
	assert.Equal(t, rl.Vector3{Y: 3}, cc.Body.Position)
}

func TestUpdateIgnoresBadStep(t *testing.T) {
	w := NewPhysicsWorld()
	prop, _ := newProp("Crate", rl.Vector3{Y: 3})
	w.AddObject(prop)

	w.Update(0)
	w.Update(-1)

	assert.Equal(t, float32(3), prop.Transform.Position.Y)
}

func TestDriverLandsOnFloor(t *testing.T) {
	w := NewPhysicsWorld()
	w.AddObject(newFloor())
	g, cc := newCharacter("Player", rl.Vector3{Y: 2})
	w.AddObject(g)
	d := newDriverOn(w)
	d.Add(cc.Body)

	var landed int
	d.Cues.AddListener(func(c locomotion.Cue) {
		if c.Kind == locomotion.CueLand {
			landed++
		}
	})

	for i := 0; i < 120; i++ {
		d.Step(tick)
		w.Update(tick)
	}

	assert.InDelta(t, 0.9, cc.Body.Position.Y, 0.01)
	assert.True(t, cc.Body.Grounded())
	assert.Equal(t, 1, landed)
}

func TestDriverStopsAtWall(t *testing.T) {
	w := NewPhysicsWorld()
	w.AddObject(newFloor())
	w.AddObject(newStaticBox("Wall", rl.Vector3{X: 2, Y: 2}, rl.Vector3{X: 1, Y: 4, Z: 4}, rl.Vector3{}))
	g, cc := newCharacter("Player", rl.Vector3{Y: 0.9})
	w.AddObject(g)
	d := newDriverOn(w)
	d.Add(cc.Body)

	for i := 0; i < 120; i++ {
		d.Queue.Push(cc.Body.ID, locomotion.Move{Direction: rl.Vector2{X: 1}, SpeedMultiplier: 1})
		d.Step(tick)
	}

	assert.InDelta(t, 1.1, cc.Body.Position.X, 0.01)
	assert.InDelta(t, 0.9, cc.Body.Position.Y, 0.01)
}

func TestDriverPushesPropAside(t *testing.T) {
	w := NewPhysicsWorld()
	w.AddObject(newFloor())
	prop, _ := newProp("Crate", rl.Vector3{X: 2, Y: 0.5})
	w.AddObject(prop)
	g, cc := newCharacter("Player", rl.Vector3{Y: 0.9})
	w.AddObject(g)
	d := newDriverOn(w)
	d.Add(cc.Body)

	for i := 0; i < 90; i++ {
		d.Queue.Push(cc.Body.ID, locomotion.Move{Direction: rl.Vector2{X: 1}, SpeedMultiplier: 1})
		d.Step(tick)
		w.Update(tick)
	}

	// props never block a character
	assert.Greater(t, cc.Body.Position.X, float32(1.5))
	assert.Greater(t, prop.Transform.Position.X, float32(2))
}
