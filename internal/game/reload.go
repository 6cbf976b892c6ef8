package game

import (
	"log"

	"kinemotion/internal/tuning"
	"kinemotion/internal/world"
)

// Reload applies a changed tuning profile or brain script to the running
// world. Files that fail to parse leave the previous version live.
func (g *Game) Reload(path string) {
	reload(g.World, path)
	g.Panel.Refresh()
}

func reload(w *world.World, path string) {
	switch {
	case tuning.IsProfileFile(path):
		if w.Profiles == nil {
			return
		}
		p, err := w.Profiles.Reload(path)
		if err != nil {
			log.Printf("Tuning: %v, keeping previous profile", err)
			return
		}
		n := w.ApplyProfile(p.Name)
		log.Printf("Tuning: reloaded %s, %d bodies updated", p.Name, n)

	case tuning.IsScriptFile(path):
		if w.Brains == nil {
			return
		}
		name, err := w.Brains.Reload(path)
		if err != nil {
			log.Printf("AI: %v, keeping previous script", err)
			return
		}
		n := w.ReloadBrain(name)
		log.Printf("AI: reloaded %s, %d brains restarted", name, n)
	}
}
