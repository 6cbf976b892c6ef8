package ai

import (
	"math"
	"testing"

	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeing(target rl.Vector3) Perception {
	return Perception{HasTarget: true, Target: target, TargetVisible: true, Grounded: true, DT: 0.1}
}

func moveOf(t *testing.T, intents []locomotion.Intent) locomotion.Move {
	t.Helper()
	require.NotEmpty(t, intents)
	m, ok := intents[0].(locomotion.Move)
	require.True(t, ok, "first intent is %T", intents[0])
	return m
}

func TestPerceptionLocalFrame(t *testing.T) {
	p := Perception{}
	assert.Equal(t, rl.Vector2{X: 0, Y: 1}, p.Local(rl.Vector3{Z: -1}))

	p.Yaw = math.Pi / 2
	local := p.Local(rl.Vector3{X: -1})
	assert.InDelta(t, 0, local.X, 1e-6)
	assert.InDelta(t, 1, local.Y, 1e-6)
}

func TestChaseBrain(t *testing.T) {
	tests := []struct {
		name   string
		target rl.Vector3
		yaw    float32
		want   rl.Vector2
		idle   bool
	}{
		{name: "ahead", target: rl.Vector3{Z: -3}, want: rl.Vector2{Y: 1}},
		{name: "right", target: rl.Vector3{X: 3}, want: rl.Vector2{X: 1}},
		{name: "turned", target: rl.Vector3{X: -3}, yaw: math.Pi / 2, want: rl.Vector2{Y: 1}},
		{name: "height ignored", target: rl.Vector3{Y: 10, Z: -3}, want: rl.Vector2{Y: 1}},
		{name: "out of range", target: rl.Vector3{Z: -6}, idle: true},
		{name: "close enough", target: rl.Vector3{Z: -1}, idle: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := seeing(tt.target)
			p.Yaw = tt.yaw
			got := NewChaseBrain().Think(p)
			if tt.idle {
				assert.Empty(t, got)
				return
			}
			m := moveOf(t, got)
			assert.InDelta(t, tt.want.X, m.Direction.X, 1e-5)
			assert.InDelta(t, tt.want.Y, m.Direction.Y, 1e-5)
			assert.Equal(t, float32(1), m.SpeedMultiplier)
		})
	}
}

func TestChaseBrainNeedsSight(t *testing.T) {
	c := NewChaseBrain()
	c.NeedsSight = true
	p := seeing(rl.Vector3{Z: -3})
	p.TargetVisible = false

	assert.Empty(t, c.Think(p))
	assert.Empty(t, c.Think(Perception{}))
}

func TestIdleBrain(t *testing.T) {
	assert.Nil(t, IdleBrain{}.Think(seeing(rl.Vector3{Z: -2})))
}
