package input

import (
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// KeyboardDashScale and GamepadDashScale stretch the unit input
	// direction into a dash burst.
	KeyboardDashScale = 500
	GamepadDashScale  = 200

	// GamepadLookScale turns a unit stick deflection into look pixels.
	GamepadLookScale = 10

	StickDeadzone = 0.1
)

// Frame is one frame of raw device state. It is filled by Poll, or by hand
// in tests.
type Frame struct {
	Forward, Back, Left, Right bool
	DashHeld                   bool
	JumpPressed                bool
	AttackPressed              bool
	MouseDelta                 rl.Vector2

	Gamepad          bool
	LeftStick        rl.Vector2 // raylib axes, +Y down
	RightStick       rl.Vector2
	RightTrigger     float32 // 0 released, 1 fully pressed
	PadJumpPressed   bool
	PadDashPressed   bool
	PadAttackPressed bool
}

// State is what the translation needs to know about the controlled body.
type State struct {
	CanDash bool
	Look    rl.Vector3 // world-space attack direction
}

// Poll reads keyboard, mouse and the given gamepad.
func Poll(gamepad int32) Frame {
	f := Frame{
		Forward:       rl.IsKeyDown(rl.KeyW),
		Back:          rl.IsKeyDown(rl.KeyS),
		Left:          rl.IsKeyDown(rl.KeyA),
		Right:         rl.IsKeyDown(rl.KeyD),
		DashHeld:      rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		JumpPressed:   rl.IsKeyPressed(rl.KeySpace),
		AttackPressed: rl.IsMouseButtonPressed(rl.MouseLeftButton),
		MouseDelta:    rl.GetMouseDelta(),
	}
	if !rl.IsGamepadAvailable(gamepad) {
		return f
	}
	f.Gamepad = true
	f.LeftStick = rl.Vector2{
		X: rl.GetGamepadAxisMovement(gamepad, rl.GamepadAxisLeftX),
		Y: rl.GetGamepadAxisMovement(gamepad, rl.GamepadAxisLeftY),
	}
	f.RightStick = rl.Vector2{
		X: rl.GetGamepadAxisMovement(gamepad, rl.GamepadAxisRightX),
		Y: rl.GetGamepadAxisMovement(gamepad, rl.GamepadAxisRightY),
	}
	// triggers rest at -1
	f.RightTrigger = (rl.GetGamepadAxisMovement(gamepad, rl.GamepadAxisRightTrigger) + 1) / 2
	f.PadJumpPressed = rl.IsGamepadButtonPressed(gamepad, rl.GamepadButtonRightFaceDown)
	f.PadDashPressed = rl.IsGamepadButtonPressed(gamepad, rl.GamepadButtonRightFaceRight)
	f.PadAttackPressed = rl.IsGamepadButtonPressed(gamepad, rl.GamepadButtonRightFaceLeft)
	return f
}

// Translate turns one frame of device state into intents. Keyboard and
// gamepad both contribute; their intents are queued in that order.
func Translate(f Frame, s State) []locomotion.Intent {
	var out []locomotion.Intent
	out = appendKeyboard(out, f, s)
	if f.Gamepad {
		out = appendGamepad(out, f, s)
	}
	return out
}

func appendKeyboard(out []locomotion.Intent, f Frame, s State) []locomotion.Intent {
	var dir rl.Vector2
	if f.Forward {
		dir.Y++
	}
	if f.Back {
		dir.Y--
	}
	if f.Right {
		dir.X++
	}
	if f.Left {
		dir.X--
	}
	if dir != (rl.Vector2{}) {
		dir = rl.Vector2Normalize(dir)
		if f.DashHeld && s.CanDash {
			out = append(out, locomotion.Dash{Direction: rl.Vector2Scale(dir, KeyboardDashScale)})
		} else {
			out = append(out, locomotion.Move{Direction: dir, SpeedMultiplier: 1})
		}
	}
	if f.JumpPressed {
		out = append(out, locomotion.Jump{})
	}
	if f.MouseDelta != (rl.Vector2{}) {
		out = append(out, locomotion.Look{Delta: f.MouseDelta})
	}
	if f.AttackPressed {
		out = append(out, locomotion.Attack{Direction: s.Look})
	}
	return out
}

func appendGamepad(out []locomotion.Intent, f Frame, s State) []locomotion.Intent {
	// stick up is -Y, forward is +Y
	move := deadzone(rl.Vector2{X: f.LeftStick.X, Y: -f.LeftStick.Y})
	if move != (rl.Vector2{}) {
		out = append(out, locomotion.Move{Direction: move, SpeedMultiplier: f.RightTrigger*0.5 + 1})
	}
	if f.PadDashPressed && s.CanDash && move != (rl.Vector2{}) {
		out = append(out, locomotion.Dash{Direction: rl.Vector2Scale(rl.Vector2Normalize(move), GamepadDashScale)})
	}
	// mouse convention already: +X turns right, +Y looks down
	if look := deadzone(f.RightStick); look != (rl.Vector2{}) {
		out = append(out, locomotion.Look{Delta: rl.Vector2Scale(look, GamepadLookScale)})
	}
	if f.PadJumpPressed {
		out = append(out, locomotion.Jump{})
	}
	if f.PadAttackPressed {
		out = append(out, locomotion.Attack{Direction: s.Look})
	}
	return out
}

// deadzone zeroes small deflections and clamps the rest to unit length.
func deadzone(v rl.Vector2) rl.Vector2 {
	l := rl.Vector2Length(v)
	if l < StickDeadzone {
		return rl.Vector2{}
	}
	if l > 1 {
		return rl.Vector2Scale(v, 1/l)
	}
	return v
}
