package input

import (
	"math"
	"testing"

	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var forward = rl.Vector3{Z: -1}

func TestTranslateKeyboard(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		state State
		want  []locomotion.Intent
	}{
		{
			name:  "idle",
			frame: Frame{},
			want:  nil,
		},
		{
			name:  "walk forward",
			frame: Frame{Forward: true},
			want:  []locomotion.Intent{locomotion.Move{Direction: rl.Vector2{Y: 1}, SpeedMultiplier: 1}},
		},
		{
			name:  "opposite keys cancel",
			frame: Frame{Left: true, Right: true},
			want:  nil,
		},
		{
			name:  "dash when ready",
			frame: Frame{Right: true, DashHeld: true},
			state: State{CanDash: true},
			want:  []locomotion.Intent{locomotion.Dash{Direction: rl.Vector2{X: 500}}},
		},
		{
			name:  "dash cooling down walks",
			frame: Frame{Right: true, DashHeld: true},
			state: State{CanDash: false},
			want:  []locomotion.Intent{locomotion.Move{Direction: rl.Vector2{X: 1}, SpeedMultiplier: 1}},
		},
		{
			name:  "jump look attack",
			frame: Frame{JumpPressed: true, MouseDelta: rl.Vector2{X: 3, Y: -2}, AttackPressed: true},
			state: State{Look: forward},
			want: []locomotion.Intent{
				locomotion.Jump{},
				locomotion.Look{Delta: rl.Vector2{X: 3, Y: -2}},
				locomotion.Attack{Direction: forward},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.frame, tt.state))
		})
	}
}

func TestTranslateDiagonalIsUnitLength(t *testing.T) {
	got := Translate(Frame{Forward: true, Left: true}, State{})

	require.Len(t, got, 1)
	m, ok := got[0].(locomotion.Move)
	require.True(t, ok)
	assert.InDelta(t, 1, rl.Vector2Length(m.Direction), 1e-6)
	assert.InDelta(t, -math.Sqrt2/2, m.Direction.X, 1e-6)
}

func TestTranslateGamepad(t *testing.T) {
	f := Frame{
		Gamepad:        true,
		LeftStick:      rl.Vector2{Y: -1},
		RightTrigger:   1,
		RightStick:     rl.Vector2{X: 2, Y: 0},
		PadJumpPressed: true,
		PadDashPressed: true,
	}

	got := Translate(f, State{CanDash: true})

	assert.Equal(t, []locomotion.Intent{
		locomotion.Move{Direction: rl.Vector2{Y: 1}, SpeedMultiplier: 1.5},
		locomotion.Dash{Direction: rl.Vector2{Y: 200}},
		locomotion.Look{Delta: rl.Vector2{X: 10}},
		locomotion.Jump{},
	}, got)
}

func TestTranslateGamepadDeadzone(t *testing.T) {
	f := Frame{
		Gamepad:    true,
		LeftStick:  rl.Vector2{X: 0.05},
		RightStick: rl.Vector2{Y: -0.02},
	}
	assert.Empty(t, Translate(f, State{}))
}

func TestTranslateIgnoresPadWhenDisconnected(t *testing.T) {
	f := Frame{LeftStick: rl.Vector2{Y: -1}, PadAttackPressed: true}
	assert.Empty(t, Translate(f, State{}))
}
