package world

import (
	"testing"

	"kinemotion/internal/ai"
	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"
	"kinemotion/internal/tuning"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = float32(1.0 / 60.0)

const arena = `{
  "name": "arena",
  "objects": [
    {"name": "Floor", "position": [0, -0.5, 0], "scale": [1, 1, 1],
     "components": [{"type": "BoxCollider", "size": [40, 1, 40]}]},
    {"name": "Player", "position": [0, 0.9, 0],
     "components": [
       {"type": "CharacterController", "profile": "player", "viewer": true},
       {"type": "Health", "max": 1}
     ]},
    {"name": "Grunt", "tags": ["enemy"], "position": [0, 0.9, -4],
     "components": [
       {"type": "CharacterController", "profile": "enemy"},
       {"type": "Health", "max": 0.25},
       {"type": "Brain", "kind": "chase", "target": "Player"}
     ]}
  ]
}`

func loadArena(t *testing.T, profiles *tuning.Set, brains *ai.Library) *World {
	t.Helper()
	sf, err := ParseScene([]byte(arena))
	require.NoError(t, err)
	w := New(locomotion.FixedViewport{Width: 1280, Height: 720}, profiles, brains)
	w.Load(sf)
	return w
}

func controller(g *engine.GameObject) *components.CharacterController {
	return engine.GetComponent[*components.CharacterController](g)
}

func TestLoadWiresCharacters(t *testing.T) {
	w := loadArena(t, nil, nil)

	require.NotNil(t, w.Player)
	assert.Equal(t, "Player", w.Player.Name)
	assert.Len(t, w.Driver.Bodies(), 2)
	assert.Len(t, w.Physics.Statics, 1)

	grunt := w.Scene.FindByName("Grunt")
	require.NotNil(t, grunt)
	b := engine.GetComponent[*components.Brain](grunt)
	assert.Same(t, w.Player, b.Target.Get(w.Scene))
	assert.Contains(t, w.minds, grunt.UID)

	require.NotNil(t, w.PlayerBody())
	assert.NotNil(t, w.PlayerBody().View)
}

func TestLoadFallsBackToPlayerByName(t *testing.T) {
	sf, err := ParseScene([]byte(`{"objects": [
	  {"name": "Player", "position": [0, 1, 0], "components": [{"type": "CharacterController"}]}
	]}`))
	require.NoError(t, err)
	w := New(locomotion.FixedViewport{Width: 800, Height: 600}, nil, nil)
	w.Load(sf)
	assert.NotNil(t, w.Player)
}

func TestProfilesApplyOnLoadAndReload(t *testing.T) {
	profiles, err := tuning.LoadEmbedded()
	require.NoError(t, err)
	w := loadArena(t, profiles, nil)

	assert.InDelta(t, 64, w.PlayerBody().Tuning.Acceleration, 1e-5)
	grunt := controller(w.Scene.FindByName("Grunt"))
	assert.InDelta(t, 24, grunt.Body.Tuning.Acceleration, 1e-5)

	profiles.Put(tuning.Profile{Name: "player", Acceleration: 50})
	assert.Equal(t, 1, w.ApplyProfile("player"))
	assert.InDelta(t, 50, w.PlayerBody().Tuning.Acceleration, 1e-5)
	assert.InDelta(t, 24, grunt.Body.Tuning.Acceleration, 1e-5)

	assert.Zero(t, w.ApplyProfile("ice"))
}

func TestChaseBrainClosesDistance(t *testing.T) {
	w := loadArena(t, nil, nil)
	grunt := controller(w.Scene.FindByName("Grunt"))
	start := grunt.Body.Position.Z

	for i := 0; i < 30; i++ {
		w.Update(tick)
	}
	assert.Greater(t, grunt.Body.Position.Z, start+0.5)
	assert.InDelta(t, 0, w.PlayerBody().Position.Z, 1e-3)
}

func TestPerceptionLineOfSight(t *testing.T) {
	w := loadArena(t, nil, nil)
	grunt := w.Scene.FindByName("Grunt")
	body := controller(grunt).Body

	p := w.perceive(grunt, body)
	assert.True(t, p.HasTarget)
	assert.True(t, p.TargetVisible)
	assert.Equal(t, w.PlayerBody().Position, p.Target)

	wall := engine.NewGameObject("Wall")
	wall.Transform.Position = rl.Vector3{Y: 1, Z: -2}
	wall.AddComponent(components.NewBoxCollider(rl.Vector3{X: 4, Y: 4, Z: 0.5}))
	w.Spawn(wall)

	p = w.perceive(grunt, body)
	assert.True(t, p.HasTarget)
	assert.False(t, p.TargetVisible)
}

func TestPunchKillRemovesEnemy(t *testing.T) {
	w := loadArena(t, nil, nil)
	grunt := w.Scene.FindByName("Grunt")
	controller(grunt).Teleport(rl.Vector3{Y: 0.9, Z: -1.5})

	var died []string
	w.Died.AddListener(func(g *engine.GameObject) { died = append(died, g.Name) })
	assert.Equal(t, 1, w.EnemiesLeft())

	require.NoError(t, w.PushPlayerIntents([]locomotion.Intent{locomotion.Attack{}}))
	w.Update(tick)

	assert.Equal(t, []string{"Grunt"}, died)
	assert.Equal(t, 0, w.EnemiesLeft())
	assert.Nil(t, w.Scene.FindByUID(grunt.UID))
	_, ok := w.Driver.Body(locomotion.EntityID(grunt.UID))
	assert.False(t, ok)
	assert.NotContains(t, w.minds, grunt.UID)
}

func TestFallingPlayerRespawns(t *testing.T) {
	w := loadArena(t, nil, nil)
	health := engine.GetComponent[*components.Health](w.Player)
	health.Current = 0.5
	spawn := w.PlayerBody().Position

	w.PlayerBody().Position = rl.Vector3{X: 3, Y: DeathY - 50, Z: 3}
	w.Update(tick)

	assert.Equal(t, spawn, w.PlayerBody().Position)
	assert.Equal(t, rl.Vector3{}, w.PlayerBody().Velocity)
	assert.Equal(t, float32(1), health.Current)
	assert.Equal(t, spawn, w.Player.Transform.Position)
}

const checkpoints = `{"objects": [
  {"name": "Floor", "position": [0, -0.5, 0],
   "components": [{"type": "BoxCollider", "size": [40, 1, 40]}]},
  {"name": "Start", "position": [0, 0.1, 0],
   "components": [{"type": "BoxCollider", "size": [2, 0.2, 2]}, {"type": "Checkpoint", "active": true}]},
  {"name": "Pad", "position": [10, 0.1, 0],
   "components": [{"type": "BoxCollider", "size": [2, 0.2, 2]}, {"type": "Checkpoint"}]},
  {"name": "Player", "position": [0, 1.1, 0],
   "components": [{"type": "CharacterController", "viewer": true}, {"type": "Health", "max": 1}]},
  {"name": "Dummy", "position": [10.6, 1.1, 0.6],
   "components": [{"type": "CharacterController"}]}
]}`

func TestPlayerRespawnsAtLastCheckpoint(t *testing.T) {
	sf, err := ParseScene([]byte(checkpoints))
	require.NoError(t, err)
	w := New(locomotion.FixedViewport{Width: 800, Height: 600}, nil, nil)
	w.Load(sf)
	start, pad := w.Scene.FindByName("Start"), w.Scene.FindByName("Pad")
	var reached []string
	w.Reached.AddListener(func(g *engine.GameObject) { reached = append(reached, g.Name) })

	assert.Same(t, start, w.ActiveCheckpoint())
	w.Update(tick)
	assert.Same(t, start, w.ActiveCheckpoint(), "only the player claims checkpoints")

	controller(w.Player).Teleport(rl.Vector3{X: 9.4, Y: 1.1, Z: -0.6})
	w.Update(tick)
	require.Same(t, pad, w.ActiveCheckpoint())
	assert.Equal(t, []string{"Pad"}, reached)
	assert.True(t, engine.GetComponent[*components.Checkpoint](pad).Active)
	assert.False(t, engine.GetComponent[*components.Checkpoint](start).Active)

	w.PlayerBody().Position = rl.Vector3{Y: DeathY - 10}
	w.Update(tick)

	got := w.PlayerBody().Position
	assert.InDelta(t, 10, got.X, 1e-4)
	assert.InDelta(t, 1.1, got.Y, 1e-4)
	assert.InDelta(t, 0, got.Z, 1e-4)
}

func TestRemovedCheckpointFallsBackToSpawn(t *testing.T) {
	sf, err := ParseScene([]byte(checkpoints))
	require.NoError(t, err)
	w := New(locomotion.FixedViewport{Width: 800, Height: 600}, nil, nil)
	w.Load(sf)
	spawn := w.PlayerBody().Position

	w.Despawn(w.Scene.FindByName("Start"))
	assert.Nil(t, w.ActiveCheckpoint())
	assert.Equal(t, spawn, w.RespawnPoint())
}

func TestFallingEnemyIsRemoved(t *testing.T) {
	w := loadArena(t, nil, nil)
	grunt := w.Scene.FindByName("Grunt")
	controller(grunt).Body.Position.Y = DeathY - 1

	w.Update(tick)

	assert.Nil(t, w.Scene.FindByUID(grunt.UID))
	assert.Len(t, w.Driver.Bodies(), 1)
}

func TestPushIntentsWithoutPlayer(t *testing.T) {
	w := New(locomotion.FixedViewport{Width: 800, Height: 600}, nil, nil)
	assert.ErrorIs(t, w.PushPlayerIntents([]locomotion.Intent{locomotion.Jump{}}), ErrNoPlayer)
}

func TestReloadBrainRebuildsScriptBrains(t *testing.T) {
	brains, err := ai.LoadLibrary("")
	require.NoError(t, err)
	w := New(locomotion.FixedViewport{Width: 800, Height: 600}, nil, brains)

	sf, err := ParseScene([]byte(arena))
	require.NoError(t, err)
	sf.Objects[2].Components[2] = map[string]any{"type": "Brain", "kind": "script", "script": "chase"}
	w.Load(sf)

	grunt := w.Scene.FindByName("Grunt")
	before, ok := w.minds[grunt.UID].(*ai.ScriptBrain)
	require.True(t, ok)

	assert.Equal(t, 1, w.ReloadBrain("chase"))
	after := w.minds[grunt.UID]
	assert.NotSame(t, before, after)
	assert.Zero(t, w.ReloadBrain("patrol"))
}

func TestUnknownBrainStandsIdle(t *testing.T) {
	w := New(locomotion.FixedViewport{Width: 800, Height: 600}, nil, ai.NewLibrary())
	sf, err := ParseScene([]byte(arena))
	require.NoError(t, err)
	sf.Objects[2].Components[2] = map[string]any{"type": "Brain", "kind": "script", "script": "missing"}
	w.Load(sf)

	grunt := w.Scene.FindByName("Grunt")
	assert.Equal(t, ai.IdleBrain{}, w.minds[grunt.UID])
}

func TestSnapshotRoundTripsLevel(t *testing.T) {
	w := loadArena(t, nil, nil)
	sf := Snapshot(w.Scene)

	require.Len(t, sf.Objects, 3)
	assert.Equal(t, "arena", sf.Name)
	var types []string
	for _, c := range sf.Objects[1].Components {
		types = append(types, c["type"].(string))
	}
	assert.Equal(t, []string{"CharacterController", "Health"}, types)
	assert.Equal(t, []string{"enemy"}, sf.Objects[2].Tags)

	rebuilt := sf.Build()
	require.Len(t, rebuilt, 3)
	assert.NotNil(t, controller(rebuilt[1]))
}

func TestDespawnChildDetachesFromParent(t *testing.T) {
	w := loadArena(t, nil, nil)
	pad := engine.NewGameObject("Pad")
	marker := engine.NewGameObject("Marker")
	pad.AddChild(marker)
	w.Spawn(pad)
	require.Same(t, marker, w.Scene.FindByUID(marker.UID))

	w.Despawn(marker)

	assert.Nil(t, w.Scene.FindByUID(marker.UID))
	assert.Nil(t, marker.Parent)
	assert.Empty(t, pad.Children)
	assert.Same(t, pad, w.Scene.FindByUID(pad.UID))

	w.Despawn(pad)
	assert.Nil(t, w.Scene.FindByUID(pad.UID))
}

func TestDespawnClearsBrainTargets(t *testing.T) {
	w := loadArena(t, nil, nil)
	grunt := w.Scene.FindByName("Grunt")
	b := engine.GetComponent[*components.Brain](grunt)
	require.True(t, b.Target.IsValid())

	w.Despawn(w.Player)

	assert.Nil(t, w.Player)
	assert.False(t, b.Target.IsValid())
	assert.NotPanics(t, func() { w.Update(tick) })
}
