package locomotion

import (
	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StepStats summarizes the contact work of the latest Step.
type StepStats struct {
	Pairs          int
	Manifolds      int
	MaxPenetration float32
}

// GroundTouch lists what a body's ground cast hit this frame, walkable or
// not.
type GroundTouch struct {
	Entity EntityID
	Hits   []ShapeHit
}

// Driver owns every controller body and advances them one frame at a time.
// Collaborators are optional; a missing one only disables its stage.
type Driver struct {
	Gravity rl.Vector3
	Queue   IntentQueue

	Caster ShapeCaster
	Narrow ContactSource
	Kinds  BodyClassifier

	Intents  *IntentResolver
	Contacts *ContactResolver

	Cues      engine.EventWithArg[Cue]
	Attacks   engine.EventWithArg[AttackIssued]
	Committed engine.EventWithArg[*Body]
	Touched   engine.EventWithArg[GroundTouch]

	bodies map[EntityID]*Body
	order  []EntityID
	stats  StepStats
	log    *skipLog
}

// NewDriver creates a driver with the given world gravity.
func NewDriver(gravity rl.Vector3, vp Viewport) *Driver {
	d := &Driver{
		Gravity:  gravity,
		Intents:  NewIntentResolver(vp),
		Contacts: NewContactResolver(),
		bodies:   make(map[EntityID]*Body),
		log:      newSkipLog(),
	}
	d.Intents.OnCue = d.Cues.Invoke
	d.Intents.OnAttack = d.Attacks.Invoke
	return d
}

// Add registers b. Adding an ID twice replaces the old body in place.
func (d *Driver) Add(b *Body) {
	if b == nil {
		return
	}
	if _, exists := d.bodies[b.ID]; !exists {
		d.order = append(d.order, b.ID)
	}
	d.bodies[b.ID] = b
}

// Remove forgets the body with the given ID.
func (d *Driver) Remove(id EntityID) {
	if _, ok := d.bodies[id]; !ok {
		return
	}
	delete(d.bodies, id)
	for i, o := range d.order {
		if o == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Body implements BodyLookup.
func (d *Driver) Body(id EntityID) (*Body, bool) {
	b, ok := d.bodies[id]
	return b, ok
}

// Bodies returns the registered bodies in insertion order.
func (d *Driver) Bodies() []*Body {
	out := make([]*Body, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.bodies[id])
	}
	return out
}

// Stats reports the contact summary of the latest Step.
func (d *Driver) Stats() StepStats {
	return d.stats
}

// Step advances every body by dt. The order is fixed: grounded
// classification, intents, gravity and damping (or knockback), contact
// resolution, then integration.
func (d *Driver) Step(dt float32) {
	cmds := d.Queue.Drain()
	if dt <= 0 {
		d.log.printf("bad-dt", "step ignored, dt=%f (%d commands dropped)", dt, len(cmds))
		return
	}

	d.classifyGrounded()

	for _, c := range cmds {
		b, ok := d.bodies[c.Entity]
		if !ok {
			d.log.printf("unknown-entity", "intent for unknown entity %d dropped", c.Entity)
			continue
		}
		if overridesIntent(b, c.Intent) {
			continue
		}
		d.Intents.Apply(b, c.Intent, dt)
	}

	for _, id := range d.order {
		b := d.bodies[id]
		gravity := rl.Vector3Scale(d.Gravity, b.Tuning.GravityScale)
		if b.mode == ControlKnockback {
			if TickKnockback(b, gravity, dt) {
				d.Cues.Invoke(Cue{Entity: b.ID, Kind: CueKnockbackEnd, Position: b.Position})
			}
		} else {
			ApplyGravity(b, d.Gravity, dt)
			Damp(b)
		}
		b.tickCooldowns(dt)
	}

	d.stats = StepStats{}
	if d.Narrow != nil {
		pairs := d.Narrow.Contacts(dt)
		d.collectStats(pairs)
		d.Contacts.Resolve(pairs, d, d.Kinds, dt)
	}

	for _, id := range d.order {
		b := d.bodies[id]
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
		d.Committed.Invoke(b)
	}
}

func (d *Driver) classifyGrounded() {
	if d.Caster == nil {
		d.log.printf("no-caster", "no shape caster, grounded state frozen")
		return
	}
	for _, id := range d.order {
		b := d.bodies[id]
		hits := d.Caster.CastShape(GroundCast(b))
		if UpdateGrounded(b, hits) {
			d.Cues.Invoke(Cue{Entity: b.ID, Kind: CueLand, Position: b.Position})
		}
		if len(hits) > 0 {
			d.Touched.Invoke(GroundTouch{Entity: b.ID, Hits: hits})
		}
	}
}

func (d *Driver) collectStats(pairs []ContactPair) {
	d.stats.Pairs = len(pairs)
	for _, p := range pairs {
		d.stats.Manifolds += len(p.Manifolds)
		for _, m := range p.Manifolds {
			for _, pt := range m.Points {
				d.stats.MaxPenetration = maxf(d.stats.MaxPenetration, pt.Penetration)
			}
		}
	}
}
