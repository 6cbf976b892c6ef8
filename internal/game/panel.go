package game

import (
	"fmt"
	"log"
	"path/filepath"

	"kinemotion/internal/components"
	"kinemotion/internal/engine"
	"kinemotion/internal/tuning"
	"kinemotion/internal/world"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel colors, dark with an indigo accent.
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 235)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)
	colorText      = rl.NewColor(200, 200, 208, 255)
	colorTextMuted = rl.NewColor(119, 119, 119, 255)
)

func initPanelStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// TuningPanel edits one tuning profile live. Changes apply to every body
// using the profile immediately; Save writes the profile back to disk.
type TuningPanel struct {
	Open bool

	profiles *tuning.Set
	world    *world.World
	names    []string
	index    int
	edit     tuning.Profile
}

func NewTuningPanel(profiles *tuning.Set, w *world.World) *TuningPanel {
	p := &TuningPanel{profiles: profiles, world: w}
	p.Refresh()
	return p
}

// Toggle opens or closes the panel and hands the mouse over.
func (p *TuningPanel) Toggle() {
	p.Open = !p.Open
	if p.Open {
		p.selectPlayerProfile()
		rl.EnableCursor()
	} else {
		rl.DisableCursor()
	}
}

// Refresh re-reads the edited profile from the set.
func (p *TuningPanel) Refresh() {
	if p.profiles == nil {
		return
	}
	p.names = p.profiles.Names()
	if len(p.names) == 0 {
		return
	}
	p.index = min(p.index, len(p.names)-1)
	p.edit, _ = p.profiles.Profile(p.names[p.index])
}

func (p *TuningPanel) selectPlayerProfile() {
	cc := engine.GetComponent[*components.CharacterController](p.world.Player)
	if cc == nil {
		return
	}
	p.Select(cc.Profile)
}

// Select switches the panel to the named profile.
func (p *TuningPanel) Select(name string) bool {
	for i, n := range p.names {
		if n == name {
			p.index = i
			p.Refresh()
			return true
		}
	}
	return false
}

// Apply stores the edited profile and pushes it to live bodies.
func (p *TuningPanel) Apply() int {
	if p.profiles == nil || p.edit.Name == "" {
		return 0
	}
	p.profiles.Put(p.edit)
	return p.world.ApplyProfile(p.edit.Name)
}

// Revert drops unsaved edits by re-reading the profile file.
func (p *TuningPanel) Revert() error {
	path := filepath.Join(p.profiles.Dir, p.edit.Name+".yaml")
	if _, err := p.profiles.Reload(path); err != nil {
		return err
	}
	p.Refresh()
	p.Apply()
	return nil
}

func (p *TuningPanel) Draw() {
	if !p.Open || p.profiles == nil || len(p.names) == 0 {
		return
	}

	x, y := float32(10), float32(100)
	const w, row = 320, 26
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: 12*row + 20}, colorBgPanel)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: w, Height: 12*row + 20}, 1, colorAccent)

	y += 10
	if textButton(rl.Rectangle{X: x + 10, Y: y, Width: 24, Height: 20}, "<") {
		p.index = (p.index + len(p.names) - 1) % len(p.names)
		p.Refresh()
	}
	rl.DrawText(p.edit.Name, int32(x+44), int32(y+2), 18, rl.White)
	if textButton(rl.Rectangle{X: x + w - 34, Y: y, Width: 24, Height: 20}, ">") {
		p.index = (p.index + 1) % len(p.names)
		p.Refresh()
	}
	y += row + 4

	before := p.edit
	slider := func(label string, v *float32, lo, hi float32) {
		rl.DrawText(label, int32(x+10), int32(y+4), 14, colorTextMuted)
		bounds := rl.Rectangle{X: x + 120, Y: y, Width: 140, Height: 18}
		*v = gui.Slider(bounds, "", fmt.Sprintf("%.4g", *v), *v, lo, hi)
		y += row
	}
	slider("Acceleration", &p.edit.Acceleration, 0, 100)
	slider("Damping", &p.edit.Damping, 0, 0.99)
	slider("Jump", &p.edit.JumpImpulse, 0, 20)
	slider("Gravity scale", &p.edit.GravityScale, 0, 3)
	slider("Max slope", &p.edit.MaxSlopeDeg, 0, 90)
	slider("Dash boost", &p.edit.Dash.UpBoost, 0, 20)
	slider("Dash scale", &p.edit.Dash.ImpulseScale, 0, 0.2)
	slider("Dash cooldown", &p.edit.Dash.Cooldown, 0, 5)
	slider("Look", &p.edit.LookSensitivity, 0, 5)

	p.edit.NoSlopeLimit = gui.CheckBox(rl.Rectangle{X: x + 10, Y: y, Width: 16, Height: 16}, "No slope limit", p.edit.NoSlopeLimit)
	y += row

	if p.edit != before {
		p.Apply()
	}

	if textButton(rl.Rectangle{X: x + 10, Y: y, Width: 80, Height: 22}, "Save") {
		if err := p.profiles.Save(p.edit.Name); err != nil {
			log.Printf("Tuning: %v", err)
		}
	}
	if p.profiles.Dir != "" && textButton(rl.Rectangle{X: x + 100, Y: y, Width: 80, Height: 22}, "Revert") {
		if err := p.Revert(); err != nil {
			log.Printf("Tuning: %v", err)
		}
	}
}

// textButton is a flat clickable label in the panel colors.
func textButton(bounds rl.Rectangle, text string) bool {
	hover := rl.CheckCollisionPointRec(rl.GetMousePosition(), bounds)
	bg := colorBgElement
	if hover {
		bg = colorBgHover
	}
	rl.DrawRectangleRec(bounds, bg)
	tw := rl.MeasureText(text, 14)
	rl.DrawText(text, int32(bounds.X+bounds.Width/2)-tw/2, int32(bounds.Y+bounds.Height/2)-7, 14, colorText)
	return hover && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}
