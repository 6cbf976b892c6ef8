package combat

import (
	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Punch is a short cone attack. Characters in the cone take damage and are
// knocked back; props are shoved.
type Punch struct {
	Range     float32
	MinDot    float32 // cosine of the cone half-angle, exclusive
	UpBias    float32 // lift added to the push direction before normalizing
	Force     float32
	Damage    float32
	Knockback float32 // seconds
}

func DefaultPunch() Punch {
	return Punch{
		Range:     2.5,
		MinDot:    0.75,
		UpBias:    0.17,
		Force:     7,
		Damage:    0.25,
		Knockback: 0.3,
	}
}

// Hit is one object struck by a punch.
type Hit struct {
	Object *engine.GameObject
	Push   rl.Vector3
	Killed bool // health ran out; the caller removes or respawns the object
}

// Resolve applies attack a to every candidate in the cone and reports what
// it struck. The attacker itself is never hit.
func (p Punch) Resolve(a locomotion.AttackIssued, candidates []*engine.GameObject) []Hit {
	dir := rl.Vector3Normalize(a.Direction)
	if rl.Vector3Length(dir) < 1e-6 {
		return nil
	}

	var hits []Hit
	for _, g := range candidates {
		if locomotion.EntityID(g.UID) == a.Entity {
			continue
		}
		cc := engine.GetComponent[*components.CharacterController](g)
		rb := engine.GetComponent[*components.Rigidbody](g)
		var pos rl.Vector3
		switch {
		case cc != nil && cc.Body != nil:
			pos = cc.Body.Position
		case rb != nil && !rb.IsKinematic:
			pos = g.WorldPosition()
		default:
			continue
		}

		to := rl.Vector3Subtract(pos, a.Origin)
		dist := rl.Vector3Length(to)
		if dist > p.Range || dist < 1e-6 {
			continue
		}
		// the cone is measured against the lifted push direction
		lifted := rl.Vector3Normalize(rl.Vector3Add(rl.Vector3Scale(to, 1/dist), rl.Vector3{Y: p.UpBias}))
		if rl.Vector3DotProduct(lifted, dir) <= p.MinDot {
			continue
		}
		push := rl.Vector3Scale(lifted, p.Force)
		hit := Hit{Object: g, Push: push}

		if cc != nil {
			if h := engine.GetComponent[*components.Health](g); h != nil && h.Damage(p.Damage) {
				hit.Killed = true
			} else {
				cc.Body.ApplyKnockback(push, p.Knockback)
			}
		} else {
			rb.ApplyImpulse(push)
		}
		hits = append(hits, hit)
	}
	return hits
}
