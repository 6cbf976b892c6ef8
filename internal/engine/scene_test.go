package engine

import "testing"

// level builds a small scene: a player, two tagged enemies and a pad with
// a marker child.
func level() (*Scene, map[string]*GameObject) {
	scene := NewScene("Arena")
	objs := map[string]*GameObject{}
	for _, name := range []string{"Player", "Grunt", "Hunter", "Pad", "Marker"} {
		g := NewGameObject(name)
		objs[name] = g
		scene.AddGameObject(g)
	}
	objs["Grunt"].Tags = []string{"enemy"}
	objs["Hunter"].Tags = []string{"enemy", "scripted"}
	objs["Pad"].Tags = []string{"checkpoint"}
	objs["Pad"].AddChild(objs["Marker"])
	return scene, objs
}

func TestSceneAddSetsOwnerAndIndex(t *testing.T) {
	scene, objs := level()

	if len(scene.GameObjects) != 5 {
		t.Fatalf("Expected 5 objects, got %d", len(scene.GameObjects))
	}
	for name, g := range objs {
		if g.Scene != scene {
			t.Errorf("%s.Scene not set", name)
		}
		if scene.FindByUID(g.UID) != g {
			t.Errorf("%s missing from the UID index", name)
		}
	}
	if scene.FindByUID(0) != nil || scene.FindByUID(99999) != nil {
		t.Error("Unknown UIDs should resolve to nil")
	}
}

func TestSceneRemoveClearsOwner(t *testing.T) {
	scene, objs := level()
	grunt := objs["Grunt"]

	scene.RemoveGameObject(grunt)

	if grunt.Scene != nil {
		t.Error("Removed object should no longer point at the scene")
	}
	if scene.FindByUID(grunt.UID) != nil {
		t.Error("Removed object still in the UID index")
	}
	if scene.FindByName("Grunt") != nil {
		t.Error("Removed object still found by name")
	}
	if scene.FindByUID(objs["Hunter"].UID) != objs["Hunter"] {
		t.Error("Neighbour lost from the UID index")
	}
}

func TestSceneRemoveTakesChildren(t *testing.T) {
	scene, objs := level()
	pad, marker := objs["Pad"], objs["Marker"]

	scene.RemoveGameObject(pad)

	if len(scene.GameObjects) != 3 {
		t.Errorf("Expected 3 objects left, got %d", len(scene.GameObjects))
	}
	if scene.FindByUID(marker.UID) != nil || marker.Scene != nil {
		t.Error("Child should leave the scene with its parent")
	}
	if marker.Parent != pad {
		t.Error("Removal from the scene should keep the hierarchy intact")
	}
	for _, g := range scene.GameObjects {
		if scene.FindByUID(g.UID) != g {
			t.Errorf("UID index out of step for %s", g.Name)
		}
	}
}

func TestSceneRemoveFromOtherSceneKeepsOwner(t *testing.T) {
	scene, objs := level()
	other := NewScene("Other")
	player := objs["Player"]

	other.RemoveGameObject(player)

	if player.Scene != scene {
		t.Error("Removing from a scene that does not own the object should not detach it")
	}
	if scene.FindByUID(player.UID) != player {
		t.Error("Owner scene lost the object")
	}
}

func TestSceneFindByTag(t *testing.T) {
	scene, objs := level()

	enemies := scene.FindByTag("enemy")
	if len(enemies) != 2 || enemies[0] != objs["Grunt"] || enemies[1] != objs["Hunter"] {
		t.Errorf("Expected Grunt and Hunter in scene order, got %v", enemies)
	}
	if got := scene.FindByTag("scripted"); len(got) != 1 {
		t.Errorf("Expected 1 scripted enemy, got %d", len(got))
	}
	if got := scene.FindByTag("boss"); len(got) != 0 {
		t.Errorf("Unknown tag should find nothing, got %d", len(got))
	}

	scene.RemoveGameObject(objs["Grunt"])
	if got := scene.FindByTag("enemy"); len(got) != 1 {
		t.Errorf("Removed enemies should not be found, got %d", len(got))
	}
}

func TestSceneZeroValueAdd(t *testing.T) {
	var scene Scene
	g := NewGameObject("Late")

	scene.AddGameObject(g) // must not panic

	if scene.FindByUID(g.UID) != g {
		t.Error("Zero-value scene should index its first object")
	}
}
