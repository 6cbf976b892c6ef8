package locomotion

import rl "github.com/gen2brain/raylib-go/raylib"

// TickKnockback advances an active knockback by dt. The stored velocity
// gains gravity and overwrites the body velocity; the state ends on the
// frame its remaining time first reaches zero. It reports whether the
// knockback ended this frame.
func TickKnockback(b *Body, gravity rl.Vector3, dt float32) (ended bool) {
	if b.mode != ControlKnockback {
		return false
	}
	kb := &b.knockback
	kb.Velocity = rl.Vector3Add(kb.Velocity, rl.Vector3Scale(gravity, dt))
	b.Velocity = kb.Velocity
	kb.Remaining -= dt
	if kb.Remaining <= 0 {
		b.clearKnockback()
		return true
	}
	return false
}

// overridesIntent reports whether in is suppressed while b is knocked back.
// Look stays live so the player can still aim during a hit reaction.
func overridesIntent(b *Body, in Intent) bool {
	if b.mode != ControlKnockback {
		return false
	}
	switch in.(type) {
	case Move, Dash, Jump:
		return true
	}
	return false
}
