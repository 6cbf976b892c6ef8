package world

import (
	"errors"
	"log"

	"kinemotion/internal/ai"
	"kinemotion/internal/combat"
	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"
	"kinemotion/internal/physics"
	"kinemotion/internal/tuning"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DeathY is the height below which a character has fallen out of the level.
const DeathY = -200

// EnemyTag marks the characters the player has to clear.
const EnemyTag = "enemy"

// World ties the level scene to the simulation. Update runs one frame in a
// fixed order: brains, locomotion, props, components, fall death.
type World struct {
	Scene   *engine.Scene
	Physics *physics.PhysicsWorld
	Driver  *locomotion.Driver
	Punch   combat.Punch

	Profiles *tuning.Set
	Brains   *ai.Library

	Player *engine.GameObject

	// Died fires for every character that ran out of health or fell out of
	// the level, before it is respawned or removed.
	Died engine.EventWithArg[*engine.GameObject]

	// Reached fires when the player stands on a new checkpoint.
	Reached engine.EventWithArg[*engine.GameObject]

	spawn      rl.Vector3
	checkpoint *engine.GameObject
	minds      map[uint64]ai.Brain
	killed []*engine.GameObject
	dt     float32
}

// New creates an empty world. profiles and brains may be nil; characters
// then keep the tuning in their component and AI falls back to chasing.
func New(vp locomotion.Viewport, profiles *tuning.Set, brains *ai.Library) *World {
	w := &World{
		Scene:    engine.NewScene("Main"),
		Physics:  physics.NewPhysicsWorld(),
		Punch:    combat.DefaultPunch(),
		Profiles: profiles,
		Brains:   brains,
		minds:    make(map[uint64]ai.Brain),
	}
	w.Driver = locomotion.NewDriver(w.Physics.Gravity, vp)
	w.Driver.Caster = w.Physics
	w.Driver.Narrow = w.Physics
	w.Driver.Kinds = w.Physics
	w.Driver.Attacks.AddListener(w.onAttack)
	w.Driver.Touched.AddListener(w.onGroundTouch)
	return w
}

// Load spawns every object of sf and resolves brain targets by name.
func (w *World) Load(sf SceneFile) {
	w.Scene.Name = sf.Name
	for _, g := range sf.Build() {
		w.Spawn(g)
	}
	w.resolveTargets()
	if w.Player == nil {
		if g := w.Scene.FindByName("Player"); g != nil && w.adoptPlayer(g) {
			log.Printf("World: no viewer in %q, using %s", sf.Name, g.Name)
		}
	}
	log.Printf("World: loaded %q, %d objects, %d characters", sf.Name, len(w.Scene.GameObjects), len(w.Driver.Bodies()))
}

// Spawn adds g and its children to the scene and the simulation.
func (w *World) Spawn(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	g.Start()
	w.Physics.AddObject(g)

	if cp := engine.GetComponent[*components.Checkpoint](g); cp != nil && cp.Active && w.checkpoint == nil {
		w.checkpoint = g
	}
	if cc := engine.GetComponent[*components.CharacterController](g); cc != nil && cc.Body != nil {
		w.applyProfile(cc)
		w.Driver.Add(cc.Body)
		if cc.Viewer && w.Player == nil {
			w.adoptPlayer(g)
		}
		if b := engine.GetComponent[*components.Brain](g); b != nil {
			w.minds[g.UID] = w.buildBrain(g.Name, b)
		}
	}

	for _, child := range g.Children {
		w.Spawn(child)
	}
}

// Despawn removes g and its children from the scene and the simulation.
// Brains chasing g lose their target.
func (w *World) Despawn(g *engine.GameObject) {
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	w.despawn(g)
}

func (w *World) despawn(g *engine.GameObject) {
	for _, child := range g.Children {
		w.despawn(child)
	}
	w.Driver.Remove(locomotion.EntityID(g.UID))
	w.Physics.RemoveObject(g)
	delete(w.minds, g.UID)
	if g == w.Player {
		w.Player = nil
	}
	if g == w.checkpoint {
		w.checkpoint = nil
	}
	if mr := engine.GetComponent[*components.MeshRenderer](g); mr != nil {
		mr.Unload()
	}
	if g.Scene != nil {
		g.Scene.RemoveGameObject(g)
	}
	for _, other := range w.Scene.GameObjects {
		if b := engine.GetComponent[*components.Brain](other); b != nil && b.Target.UID == g.UID {
			b.Target.Clear()
		}
	}
}

func (w *World) adoptPlayer(g *engine.GameObject) bool {
	cc := engine.GetComponent[*components.CharacterController](g)
	if cc == nil || cc.Body == nil {
		return false
	}
	w.Player = g
	w.spawn = cc.Body.Position
	return true
}

// EnemiesLeft counts the enemy-tagged characters still in the scene.
func (w *World) EnemiesLeft() int {
	return len(w.Scene.FindByTag(EnemyTag))
}

// ActiveCheckpoint is the checkpoint the player respawns above, nil when
// the player has not reached one.
func (w *World) ActiveCheckpoint() *engine.GameObject {
	return w.checkpoint
}

// RespawnPoint is where the player comes back after dying.
func (w *World) RespawnPoint() rl.Vector3 {
	if w.checkpoint != nil {
		return rl.Vector3Add(w.checkpoint.WorldPosition(), rl.Vector3{Y: 1})
	}
	return w.spawn
}

// onGroundTouch moves the active checkpoint to whatever the player stands
// on, steep or not.
func (w *World) onGroundTouch(t locomotion.GroundTouch) {
	if w.Player == nil || uint64(t.Entity) != w.Player.UID {
		return
	}
	for _, hit := range t.Hits {
		g := w.Scene.FindByUID(uint64(hit.Entity))
		cp := engine.GetComponent[*components.Checkpoint](g)
		if cp == nil || g == w.checkpoint {
			continue
		}
		if old := engine.GetComponent[*components.Checkpoint](w.checkpoint); old != nil {
			old.Active = false
		}
		cp.Active = true
		w.checkpoint = g
		log.Printf("World: checkpoint %s reached", g.Name)
		w.Reached.Invoke(g)
	}
}

// PlayerBody returns the locomotion body of the player, if any.
func (w *World) PlayerBody() *locomotion.Body {
	if cc := engine.GetComponent[*components.CharacterController](w.Player); cc != nil {
		return cc.Body
	}
	return nil
}

// Update advances the world by one frame.
func (w *World) Update(dt float32) {
	w.dt = dt
	w.think()
	w.Driver.Step(dt)
	w.processKills()
	w.Physics.Update(dt)
	w.Scene.Update(dt)
	w.fallDeath()
}

func (w *World) applyProfile(cc *components.CharacterController) {
	if w.Profiles == nil {
		return
	}
	p, err := w.Profiles.Profile(cc.Profile)
	if err != nil {
		log.Printf("World: %v, keeping component tuning", err)
		return
	}
	cc.SetTuning(p.Tuning())
	cc.Body.Caster = p.Caster()
}

// ApplyProfile re-applies a changed tuning profile to every live body that
// uses it.
func (w *World) ApplyProfile(name string) int {
	n := 0
	for _, g := range w.Scene.GameObjects {
		cc := engine.GetComponent[*components.CharacterController](g)
		if cc == nil || cc.Body == nil || cc.Profile != name {
			continue
		}
		w.applyProfile(cc)
		n++
	}
	return n
}

func (w *World) buildBrain(name string, b *components.Brain) ai.Brain {
	if w.Brains == nil {
		if b.Kind == "script" {
			log.Printf("World: %s: no brain library, chasing instead", name)
		}
		return ai.NewChaseBrain()
	}
	brain, err := w.Brains.Brain(b.Kind, b.Script)
	if err != nil {
		log.Printf("World: %s: %v, standing idle", name, err)
		return ai.IdleBrain{}
	}
	return brain
}

// ReloadBrain rebuilds the brain of every character running script name.
// Script memory starts over.
func (w *World) ReloadBrain(name string) int {
	n := 0
	for _, g := range w.Scene.GameObjects {
		b := engine.GetComponent[*components.Brain](g)
		if b == nil || b.Kind != "script" || b.Script != name {
			continue
		}
		if _, ok := w.minds[g.UID]; !ok {
			continue
		}
		w.minds[g.UID] = w.buildBrain(g.Name, b)
		n++
	}
	return n
}

func (w *World) resolveTargets() {
	for _, g := range w.Scene.GameObjects {
		b := engine.GetComponent[*components.Brain](g)
		if b == nil || b.Target.IsValid() || b.TargetName == "" {
			continue
		}
		if target := w.Scene.FindByName(b.TargetName); target != nil {
			b.Target.Set(target)
		} else {
			log.Printf("World: %s: brain target %q not found", g.Name, b.TargetName)
		}
	}
}

// think asks every brain for this frame's intents.
func (w *World) think() {
	for _, body := range w.Driver.Bodies() {
		uid := uint64(body.ID)
		mind, ok := w.minds[uid]
		if !ok {
			continue
		}
		g := w.Scene.FindByUID(uid)
		if g == nil {
			continue
		}
		for _, in := range mind.Think(w.perceive(g, body)) {
			w.Driver.Queue.Push(body.ID, in)
		}
	}
}

func (w *World) perceive(g *engine.GameObject, body *locomotion.Body) ai.Perception {
	p := ai.Perception{
		Position: body.Position,
		Yaw:      body.Yaw(),
		Grounded: body.Grounded(),
		CanDash:  body.CanDash(),
		DT:       w.dt,
	}
	b := engine.GetComponent[*components.Brain](g)
	if b == nil {
		return p
	}
	target := b.Target.Get(w.Scene)
	if target == nil {
		return p
	}
	p.HasTarget = true
	p.Target = target.WorldPosition()
	if cc := engine.GetComponent[*components.CharacterController](target); cc != nil && cc.Body != nil {
		p.Target = cc.Body.Position
	}

	to := rl.Vector3Subtract(p.Target, p.Position)
	dist := rl.Vector3Length(to)
	if dist < 1e-6 {
		p.TargetVisible = true
		return p
	}
	hit, ok := w.Physics.RaycastExcluding(p.Position, to, dist, g.UID)
	p.TargetVisible = !ok || hit.GameObject == target
	return p
}

func (w *World) onAttack(a locomotion.AttackIssued) {
	for _, hit := range w.Punch.Resolve(a, w.Scene.GameObjects) {
		if hit.Killed {
			w.killed = append(w.killed, hit.Object)
		}
	}
}

// processKills handles deaths from punches once the driver is done with
// its bodies for the frame.
func (w *World) processKills() {
	for _, g := range w.killed {
		w.die(g)
	}
	w.killed = w.killed[:0]
}

func (w *World) fallDeath() {
	var fallen []*engine.GameObject
	for _, body := range w.Driver.Bodies() {
		if body.Position.Y >= DeathY {
			continue
		}
		if g := w.Scene.FindByUID(uint64(body.ID)); g != nil {
			fallen = append(fallen, g)
		}
	}
	for _, g := range fallen {
		if h := engine.GetComponent[*components.Health](g); h != nil {
			h.Current = 0
		}
		w.die(g)
	}

	// props just disappear
	var lost []*engine.GameObject
	for _, g := range w.Physics.Objects {
		if g.Transform.Position.Y < DeathY {
			lost = append(lost, g)
		}
	}
	for _, g := range lost {
		w.Despawn(g)
	}
}

// die respawns the player above the active checkpoint, or where it
// started, and removes anyone else.
func (w *World) die(g *engine.GameObject) {
	if g.Scene != w.Scene {
		return
	}
	w.Died.Invoke(g)
	if g != w.Player {
		w.Despawn(g)
		return
	}
	cc := engine.GetComponent[*components.CharacterController](g)
	if cc == nil {
		return
	}
	cc.Teleport(w.RespawnPoint())
	if h := engine.GetComponent[*components.Health](g); h != nil {
		h.Reset()
	}
	log.Printf("World: %s respawned", g.Name)
}

// ErrNoPlayer is returned by helpers that need a player character.
var ErrNoPlayer = errors.New("level has no player")

// PushPlayerIntents queues intents for the player.
func (w *World) PushPlayerIntents(intents []locomotion.Intent) error {
	body := w.PlayerBody()
	if body == nil {
		return ErrNoPlayer
	}
	for _, in := range intents {
		w.Driver.Queue.Push(body.ID, in)
	}
	return nil
}
