package locomotion

import rl "github.com/gen2brain/raylib-go/raylib"

// CueKind names a locomotion moment that animation, VFX or audio hosts
// may react to.
type CueKind uint8

const (
	CueStep CueKind = iota
	CueJump
	CueDash
	CueLand
	CueKnockbackEnd
)

func (k CueKind) String() string {
	switch k {
	case CueStep:
		return "step"
	case CueJump:
		return "jump"
	case CueDash:
		return "dash"
	case CueLand:
		return "land"
	case CueKnockbackEnd:
		return "knockback-end"
	}
	return "unknown"
}

// Cue is emitted by the driver; it never feeds back into the simulation.
type Cue struct {
	Entity   EntityID
	Kind     CueKind
	Position rl.Vector3
}

// AttackIssued is raised for every Attack intent, in arrival order.
type AttackIssued struct {
	Entity    EntityID
	Origin    rl.Vector3
	Direction rl.Vector3
}
