package game

import (
	"fmt"
	"log"
	"time"

	"kinemotion/internal/ai"
	"kinemotion/internal/camera"
	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/input"
	"kinemotion/internal/locomotion"
	"kinemotion/internal/tuning"
	"kinemotion/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Config is what the demo binary passes in from its flags.
type Config struct {
	Level     string
	TuningDir string
	BrainDir  string
	Width     int32
	Height    int32
	FPS       int32
	Gamepad   int32
	Watch     bool
}

type Game struct {
	Config    Config
	World     *world.World
	Renderer  *world.Renderer
	Panel     *TuningPanel
	HUD       *HUD
	DebugMode bool

	// Spectator detaches the view from the player.
	Spectator *camera.FlyCamera
	spectate  bool

	watcher *tuning.Watcher

	onCue  engine.ListenerID
	onDied engine.ListenerID

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// windowViewport reports the live window size.
type windowViewport struct{}

func (windowViewport) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func New(cfg Config) (*Game, error) {
	profiles, err := tuning.Load(cfg.TuningDir)
	if err != nil {
		return nil, err
	}
	brains, err := ai.LoadLibrary(cfg.BrainDir)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Config:    cfg,
		World:     world.New(windowViewport{}, profiles, brains),
		Renderer:  world.NewRenderer(),
		HUD:       NewHUD(),
		Spectator: camera.New(rl.Vector3{Y: 10}),
	}
	g.Panel = NewTuningPanel(profiles, g.World)
	g.onCue = g.World.Driver.Cues.AddListener(g.HUD.OnCue)
	g.onDied = g.World.Died.AddListener(func(obj *engine.GameObject) {
		log.Printf("World: %s died, %d enemies left", obj.Name, g.World.EnemiesLeft())
	})
	return g, nil
}

// detach unsubscribes the game from world events.
func (g *Game) detach() {
	g.World.Driver.Cues.RemoveListener(g.onCue)
	g.World.Died.RemoveListener(g.onDied)
}

func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(g.Config.Width, g.Config.Height, "kinemotion")
	defer rl.CloseWindow()

	rl.SetTargetFPS(g.Config.FPS)
	rl.DisableCursor()
	initPanelStyle()

	sf, err := world.ReadScene(g.Config.Level)
	if err != nil {
		return err
	}
	g.World.Load(sf)
	defer g.unload()

	if g.Config.Watch {
		g.startWatcher()
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

func (g *Game) startWatcher() {
	var dirs []string
	if d := g.World.Profiles.Dir; d != "" {
		dirs = append(dirs, d)
	}
	if d := g.World.Brains.Dir; d != "" {
		dirs = append(dirs, d)
	}
	if len(dirs) == 0 {
		return
	}
	w, err := tuning.NewWatcher(dirs...)
	if err != nil {
		log.Printf("Tuning: hot reload disabled: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) unload() {
	g.detach()
	if g.watcher != nil {
		g.watcher.Close()
	}
	for _, obj := range g.World.Scene.GameObjects {
		if mr := engine.GetComponent[*components.MeshRenderer](obj); mr != nil {
			mr.Unload()
		}
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	g.pollReloads()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
		g.Renderer.Debug = g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.Panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.toggleSpectator()
	}

	// the panel owns the mouse while open
	switch {
	case g.Panel.Open:
	case g.spectate:
		g.Spectator.Update(deltaTime, camera.PollControls())
	default:
		g.drivePlayer()
	}

	g.World.Update(deltaTime)
	g.HUD.Update(deltaTime)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) toggleSpectator() {
	g.spectate = !g.spectate
	g.Renderer.ShowPlayer = g.spectate
	if g.spectate {
		if cam, ok := g.camera(); ok {
			g.Spectator.Follow(cam.Position, rl.Vector3Subtract(cam.Target, cam.Position))
		}
	}
}

func (g *Game) drivePlayer() {
	if body := g.World.PlayerBody(); body != nil {
		frame := input.Poll(g.Config.Gamepad)
		state := input.State{CanDash: body.CanDash(), Look: lookDirection(body)}
		g.World.PushPlayerIntents(input.Translate(frame, state))
	}
}

// pollReloads drains the watcher without blocking.
func (g *Game) pollReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.Reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Tuning: watch: %v", err)
		default:
			return
		}
	}
}

func lookDirection(b *locomotion.Body) rl.Vector3 {
	if b.View != nil {
		return b.View.LookDirection(b.Yaw())
	}
	forward, _ := b.Axes()
	return forward
}

func (g *Game) camera() (rl.Camera3D, bool) {
	player := g.World.Player
	if player == nil {
		return rl.Camera3D{}, false
	}
	if cam := engine.GetComponent[*components.Camera](player); cam != nil {
		return cam.GetRaylibCamera(), true
	}
	for _, child := range player.Children {
		if cam := engine.GetComponent[*components.Camera](child); cam != nil {
			return cam.GetRaylibCamera(), true
		}
	}
	// no camera component: look through the eyes
	if b := g.World.PlayerBody(); b != nil {
		cc := engine.GetComponent[*components.CharacterController](g.World.Player)
		eye := rl.Vector3Add(b.Position, rl.Vector3{Y: cc.EyeHeight})
		return rl.Camera3D{
			Position:   eye,
			Target:     rl.Vector3Add(eye, lookDirection(b)),
			Up:         rl.Vector3{Y: 1},
			Fovy:       60,
			Projection: rl.CameraPerspective,
		}, true
	}
	return rl.Camera3D{}, false
}

func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	if g.spectate {
		g.Renderer.Draw(g.World, g.Spectator.GetRaylibCamera())
	} else if cam, ok := g.camera(); ok {
		g.Renderer.Draw(g.World, cam)
	}
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD move, Shift dash, Space jump, click punch", 10, 10, 20, rl.DarkGray)
	rl.DrawText("F1 debug view, F2 spectator, Tab tuning panel", 10, 35, 20, rl.DarkGray)
	rl.DrawFPS(10, 60)

	g.HUD.Draw(g.World)
	g.Panel.Draw()

	if g.DebugMode {
		stats := g.World.Driver.Stats()
		y := int32(rl.GetScreenHeight()) - 110
		rl.DrawText(fmt.Sprintf("Pairs: %d  Manifolds: %d  Max pen: %.3f", stats.Pairs, stats.Manifolds, stats.MaxPenetration), 10, y, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Props: %d  Culled: %d", g.World.Physics.DynamicObjectCount(), g.Renderer.Culled()), 10, y+20, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Update:  %.2f ms", g.updateMs), 10, y+40, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), 10, y+60, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Total:   %.2f ms", g.updateMs+g.drawMs), 10, y+80, 16, rl.Lime)
	}
}
