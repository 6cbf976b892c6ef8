package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"kinemotion/internal/game"
)

func main() {
	cfg := game.Config{}
	flag.StringVar(&cfg.Level, "level", "assets/levels/arena.json", "level file to load")
	flag.StringVar(&cfg.TuningDir, "tuning", "assets/tuning", "tuning profile directory")
	flag.StringVar(&cfg.BrainDir, "brains", "assets/brains", "brain script directory")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	fps := flag.Int("fps", 120, "target frame rate")
	gamepad := flag.Int("gamepad", 0, "gamepad index")
	flag.BoolVar(&cfg.Watch, "watch", true, "hot reload tuning and brain files")
	flag.Parse()

	cfg.Width, cfg.Height = int32(*width), int32(*height)
	cfg.FPS, cfg.Gamepad = int32(*fps), int32(*gamepad)

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := g.Run(); err != nil {
		log.Fatal(err)
	}
}
