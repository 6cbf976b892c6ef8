// Headless soak test: many controller bodies running scripted intents over
// a level, reporting tunnelling, penetration depth and frame timing.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"
	"kinemotion/internal/tuning"
	"kinemotion/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type config struct {
	Level     string
	TuningDir string
	Bodies    int
	Frames    int
	DT        float32
	Seed      int64
	Profile   string
}

type report struct {
	Bodies         int
	Frames         int
	Tunnelled      int
	MaxPenetration float32
	Mean, P99, Max time.Duration
}

func main() {
	cfg := config{}
	flag.StringVar(&cfg.Level, "level", "", "level file (empty for a flat test floor)")
	flag.StringVar(&cfg.TuningDir, "tuning", "assets/tuning", "tuning profile directory")
	flag.IntVar(&cfg.Bodies, "n", 200, "number of bodies")
	flag.IntVar(&cfg.Frames, "frames", 3600, "frames to simulate")
	dt := flag.Float64("dt", 1.0/60.0, "frame time in seconds")
	flag.Int64Var(&cfg.Seed, "seed", 42, "random seed")
	flag.StringVar(&cfg.Profile, "profile", "player", "tuning profile for the spawned bodies")
	flag.Parse()
	cfg.DT = float32(*dt)

	r, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d bodies x %d frames\n", r.Bodies, r.Frames)
	fmt.Printf("tunnelled:       %d\n", r.Tunnelled)
	fmt.Printf("max penetration: %.4f\n", r.MaxPenetration)
	fmt.Printf("frame time:      mean %v | p99 %v | max %v\n",
		r.Mean.Round(time.Microsecond), r.P99.Round(time.Microsecond), r.Max.Round(time.Microsecond))
	if r.Tunnelled > 0 {
		os.Exit(1)
	}
}

// flatLevel is used when no level file is given.
var flatLevel = world.SceneFile{
	Name: "soak",
	Objects: []world.ObjectDef{{
		Name:     "Floor",
		Position: [3]float32{0, -0.5, 0},
		Components: []map[string]any{
			{"type": "BoxCollider", "size": []any{200.0, 1.0, 200.0}},
		},
	}},
}

func run(cfg config) (report, error) {
	profiles, err := tuning.Load(cfg.TuningDir)
	if err != nil {
		return report{}, err
	}
	sf := flatLevel
	if cfg.Level != "" {
		if sf, err = world.ReadScene(cfg.Level); err != nil {
			return report{}, err
		}
	}

	w := world.New(locomotion.FixedViewport{Width: 1280, Height: 720}, profiles, nil)
	w.Load(sf)

	rng := rand.New(rand.NewSource(cfg.Seed))
	bodies := spawnBodies(w, rng, cfg)

	tunnelled := make(map[uint64]bool)
	w.Died.AddListener(func(g *engine.GameObject) {
		tunnelled[g.UID] = true
	})

	r := report{Bodies: len(bodies), Frames: cfg.Frames}
	times := make([]time.Duration, 0, cfg.Frames)
	for frame := 0; frame < cfg.Frames; frame++ {
		for _, b := range bodies {
			for _, in := range scriptedIntents(rng, frame, b) {
				w.Driver.Queue.Push(b.ID, in)
			}
		}
		start := time.Now()
		w.Update(cfg.DT)
		times = append(times, time.Since(start))
		r.MaxPenetration = max(r.MaxPenetration, w.Driver.Stats().MaxPenetration)
	}
	r.Tunnelled = len(tunnelled)
	r.Mean, r.P99, r.Max = summarize(times)
	return r, nil
}

// spawnBodies drops the bodies on a grid above the origin.
func spawnBodies(w *world.World, rng *rand.Rand, cfg config) []*locomotion.Body {
	side := int(math.Ceil(math.Sqrt(float64(cfg.Bodies))))
	bodies := make([]*locomotion.Body, 0, cfg.Bodies)
	for i := 0; i < cfg.Bodies; i++ {
		g := engine.NewGameObject(fmt.Sprintf("Soak_%d", i))
		g.Transform.Position = rl.Vector3{
			X: float32(i%side-side/2) * 2,
			Y: 1 + rng.Float32(),
			Z: float32(i/side-side/2) * 2,
		}
		g.Transform.Rotation.Y = rng.Float32() * 360
		cc := components.NewCharacterController()
		cc.Profile = cfg.Profile
		g.AddComponent(cc)
		w.Spawn(g)
		bodies = append(bodies, cc.Body)
	}
	return bodies
}

// scriptedIntents wanders each body around with the occasional jump,
// dash and turn.
func scriptedIntents(rng *rand.Rand, frame int, b *locomotion.Body) []locomotion.Intent {
	phase := float64(frame)/90 + float64(b.ID)
	dir := rl.Vector2{X: float32(math.Cos(phase)), Y: float32(math.Sin(phase))}
	out := []locomotion.Intent{locomotion.Move{Direction: dir, SpeedMultiplier: 1}}
	switch rng.Intn(120) {
	case 0:
		out = append(out, locomotion.Jump{})
	case 1:
		out = append(out, locomotion.Dash{Direction: rl.Vector2Scale(dir, 500)})
	case 2:
		out = append(out, locomotion.Look{Delta: rl.Vector2{X: rng.Float32()*200 - 100}})
	}
	return out
}

func summarize(times []time.Duration) (mean, p99, worst time.Duration) {
	if len(times) == 0 {
		return 0, 0, 0
	}
	var total time.Duration
	for _, t := range times {
		total += t
	}
	sorted := append([]time.Duration(nil), times...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(0.99*float64(len(sorted)))) - 1
	return total / time.Duration(len(times)), sorted[idx], sorted[len(sorted)-1]
}
