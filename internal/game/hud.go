package game

import (
	"fmt"

	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/locomotion"
	"kinemotion/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cueFlash is how long a cue stays on screen.
const cueFlash = 0.6

type flash struct {
	cue locomotion.Cue
	ttl float32
}

// HUD shows the player's locomotion state and recent cues.
type HUD struct {
	flashes []flash
}

func NewHUD() *HUD {
	return &HUD{}
}

func (h *HUD) OnCue(c locomotion.Cue) {
	h.flashes = append(h.flashes, flash{cue: c, ttl: cueFlash})
	if len(h.flashes) > 8 {
		h.flashes = h.flashes[len(h.flashes)-8:]
	}
}

func (h *HUD) Update(dt float32) {
	live := h.flashes[:0]
	for _, f := range h.flashes {
		f.ttl -= dt
		if f.ttl > 0 {
			live = append(live, f)
		}
	}
	h.flashes = live
}

// Lines is the text block for body b.
func (h *HUD) Lines(b *locomotion.Body, health *components.Health) []string {
	lines := []string{
		fmt.Sprintf("Grounded: %v", b.Grounded()),
		fmt.Sprintf("Mode:     %s", b.Mode()),
		fmt.Sprintf("Speed:    %.2f  (vy %.2f)", b.HorizontalSpeed(), b.Velocity.Y),
		fmt.Sprintf("Dash:     %s", cooldown(b.DashCooldown())),
	}
	if kb, ok := b.Knockback(); ok {
		lines = append(lines, fmt.Sprintf("Knockback: %.2fs", kb.Remaining))
	}
	if health != nil {
		lines = append(lines, fmt.Sprintf("Health:   %.0f%%", health.Fraction()*100))
	}
	for _, f := range h.flashes {
		if f.cue.Entity == b.ID {
			lines = append(lines, "> "+f.cue.Kind.String())
		}
	}
	return lines
}

func cooldown(t float32) string {
	if t <= 0 {
		return "ready"
	}
	return fmt.Sprintf("%.2fs", t)
}

// Status is the player's text block plus the level progress.
func (h *HUD) Status(w *world.World) []string {
	b := w.PlayerBody()
	if b == nil {
		return nil
	}
	lines := h.Lines(b, engine.GetComponent[*components.Health](w.Player))
	lines = append(lines, fmt.Sprintf("Enemies:  %d", w.EnemiesLeft()))
	if cp := w.ActiveCheckpoint(); cp != nil {
		lines = append(lines, "Checkpoint: "+cp.Name)
	}
	return lines
}

func (h *HUD) Draw(w *world.World) {
	lines := h.Status(w)
	if lines == nil {
		return
	}
	health := engine.GetComponent[*components.Health](w.Player)

	x := int32(rl.GetScreenWidth()) - 260
	y := int32(10)
	for _, line := range lines {
		rl.DrawText(line, x, y, 18, rl.RayWhite)
		y += 22
	}

	if health != nil {
		bar := rl.Rectangle{X: float32(x), Y: float32(y + 6), Width: 200, Height: 10}
		rl.DrawRectangleRec(bar, rl.DarkGray)
		bar.Width *= health.Fraction()
		rl.DrawRectangleRec(bar, rl.Red)
	}

	// crosshair
	cx, cy := int32(rl.GetScreenWidth()/2), int32(rl.GetScreenHeight()/2)
	rl.DrawLine(cx-6, cy, cx+6, cy, rl.White)
	rl.DrawLine(cx, cy-6, cx, cy+6, rl.White)
}
