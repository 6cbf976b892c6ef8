package locomotion

import rl "github.com/gen2brain/raylib-go/raylib"

// Intent is one per-frame request from input or AI. The set is closed.
type Intent interface {
	intent()
}

// Move accelerates along the body's horizontal axes. Direction is a 2D
// input (x right, y forward) of at most unit length.
type Move struct {
	Direction       rl.Vector2
	SpeedMultiplier float32
}

// Look turns the body (x) and pitches the view (y), in pixels.
type Look struct {
	Delta rl.Vector2
}

// Dash is a one-shot burst along the body's horizontal axes plus a lift.
type Dash struct {
	Direction rl.Vector2
}

// Jump sets the vertical speed when grounded.
type Jump struct{}

// Attack requests a strike along Direction (world space).
type Attack struct {
	Direction rl.Vector3
}

func (Move) intent()   {}
func (Look) intent()   {}
func (Dash) intent()   {}
func (Jump) intent()   {}
func (Attack) intent() {}

// Command targets an intent at one body.
type Command struct {
	Entity EntityID
	Intent Intent
}

// IntentQueue is the append-only per-frame command list. Commands keep
// their arrival order.
type IntentQueue struct {
	commands []Command
}

// Push appends an intent for entity.
func (q *IntentQueue) Push(entity EntityID, in Intent) {
	if in == nil {
		return
	}
	q.commands = append(q.commands, Command{Entity: entity, Intent: in})
}

// PushAll appends commands in order.
func (q *IntentQueue) PushAll(cmds []Command) {
	for _, c := range cmds {
		q.Push(c.Entity, c.Intent)
	}
}

// Len is the number of pending commands.
func (q *IntentQueue) Len() int {
	return len(q.commands)
}

// Drain returns the pending commands in FIFO order and empties the queue.
func (q *IntentQueue) Drain() []Command {
	out := q.commands
	q.commands = nil
	return out
}
