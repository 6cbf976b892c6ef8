package combat

import (
	"testing"

	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func character(name string, pos rl.Vector3, health float32) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewCharacterController())
	if health > 0 {
		g.AddComponent(components.NewHealth(health))
	}
	g.Start()
	return g
}

func prop(pos rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject("Crate")
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	g.AddComponent(components.NewRigidbody())
	return g
}

func attackFrom(attacker *engine.GameObject) locomotion.AttackIssued {
	return locomotion.AttackIssued{
		Entity:    locomotion.EntityID(attacker.UID),
		Origin:    attacker.Transform.Position,
		Direction: rl.Vector3{Z: -1},
	}
}

func body(g *engine.GameObject) *locomotion.Body {
	return engine.GetComponent[*components.CharacterController](g).Body
}

func TestPunchKnocksBackEnemyInCone(t *testing.T) {
	player := character("Player", rl.Vector3{}, 1)
	enemy := character("Enemy", rl.Vector3{Z: -2}, 1)

	hits := DefaultPunch().Resolve(attackFrom(player), []*engine.GameObject{player, enemy})

	require.Len(t, hits, 1)
	hit := hits[0]
	assert.Same(t, enemy, hit.Object)
	assert.False(t, hit.Killed)

	want := rl.Vector3Scale(rl.Vector3Normalize(rl.Vector3{Y: 0.17, Z: -1}), 7)
	assert.InDelta(t, want.Y, hit.Push.Y, 1e-5)
	assert.InDelta(t, want.Z, hit.Push.Z, 1e-5)

	kb, ok := body(enemy).Knockback()
	require.True(t, ok)
	assert.Equal(t, hit.Push, kb.Velocity)
	assert.InDelta(t, 0.3, kb.Remaining, 1e-6)
	assert.InDelta(t, 0.75, engine.GetComponent[*components.Health](enemy).Current, 1e-6)

	// the attacker is untouched
	assert.Equal(t, locomotion.ControlNormal, body(player).Mode())
}

func TestPunchMisses(t *testing.T) {
	player := character("Player", rl.Vector3{}, 1)
	tests := []struct {
		name string
		pos  rl.Vector3
	}{
		{"behind", rl.Vector3{Z: 2}},
		{"too far", rl.Vector3{Z: -3}},
		{"outside cone", rl.Vector3{X: 1.5, Z: -1.5}},
		// level dot is 0.76, the lift tips it under 0.75
		{"lifted out of cone", rl.Vector3{X: 1.3, Z: -1.52}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enemy := character("Enemy", tt.pos, 1)
			assert.Empty(t, DefaultPunch().Resolve(attackFrom(player), []*engine.GameObject{enemy}))
			assert.Equal(t, locomotion.ControlNormal, body(enemy).Mode())
		})
	}
}

func TestPunchKillsWeakEnemy(t *testing.T) {
	player := character("Player", rl.Vector3{}, 1)
	enemy := character("Enemy", rl.Vector3{Z: -1}, 0.25)

	hits := DefaultPunch().Resolve(attackFrom(player), []*engine.GameObject{enemy})

	require.Len(t, hits, 1)
	assert.True(t, hits[0].Killed)
	assert.Equal(t, locomotion.ControlNormal, body(enemy).Mode())
}

func TestPunchWithoutHealthOnlyKnocksBack(t *testing.T) {
	player := character("Player", rl.Vector3{}, 1)
	dummy := character("Dummy", rl.Vector3{Z: -1}, 0)

	hits := DefaultPunch().Resolve(attackFrom(player), []*engine.GameObject{dummy})

	require.Len(t, hits, 1)
	assert.False(t, hits[0].Killed)
	assert.Equal(t, locomotion.ControlKnockback, body(dummy).Mode())
}

func TestPunchShovesProps(t *testing.T) {
	player := character("Player", rl.Vector3{}, 1)
	crate := prop(rl.Vector3{Z: -2})
	rb := engine.GetComponent[*components.Rigidbody](crate)
	rb.IsSleeping = true

	hits := DefaultPunch().Resolve(attackFrom(player), []*engine.GameObject{crate})

	require.Len(t, hits, 1)
	assert.Equal(t, hits[0].Push, rb.Velocity)
	assert.False(t, rb.IsSleeping)
}

func TestPunchIgnoresStaticsAndZeroDirection(t *testing.T) {
	player := character("Player", rl.Vector3{}, 1)
	wall := engine.NewGameObject("Wall")
	wall.Transform.Position = rl.Vector3{Z: -1}
	wall.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	enemy := character("Enemy", rl.Vector3{Z: -1}, 1)

	assert.Empty(t, DefaultPunch().Resolve(attackFrom(player), []*engine.GameObject{wall}))

	a := attackFrom(player)
	a.Direction = rl.Vector3{}
	assert.Empty(t, DefaultPunch().Resolve(a, []*engine.GameObject{enemy}))
}
