package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"kinemotion/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type SceneFile struct {
	Name    string      `json:"name,omitempty"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name       string           `json:"name"`
	Tags       []string         `json:"tags,omitempty"`
	Position   [3]float32       `json:"position"`
	Rotation   [3]float32       `json:"rotation"`
	Scale      [3]float32       `json:"scale"`
	Components []map[string]any `json:"components"`
	Children   []ObjectDef      `json:"children,omitempty"`
}

// ParseScene decodes a level file.
func ParseScene(data []byte) (SceneFile, error) {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return SceneFile{}, fmt.Errorf("parse scene: %w", err)
	}
	return sf, nil
}

// ReadScene loads a level file from disk.
func ReadScene(path string) (SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneFile{}, fmt.Errorf("read scene: %w", err)
	}
	sf, err := ParseScene(data)
	if err != nil {
		return SceneFile{}, fmt.Errorf("%s: %w", path, err)
	}
	if sf.Name == "" {
		sf.Name = path
	}
	return sf, nil
}

// Build creates the root objects of a scene file. Components are looked
// up in the engine registry; unknown types are skipped with a log line.
func (sf SceneFile) Build() []*engine.GameObject {
	roots := make([]*engine.GameObject, 0, len(sf.Objects))
	for _, def := range sf.Objects {
		roots = append(roots, def.build())
	}
	return roots
}

func (def ObjectDef) build() *engine.GameObject {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	g.Transform.Position = rl.Vector3{X: def.Position[0], Y: def.Position[1], Z: def.Position[2]}
	g.Transform.Rotation = rl.Vector3{X: def.Rotation[0], Y: def.Rotation[1], Z: def.Rotation[2]}

	// Default scale to 1 if zero
	if def.Scale == [3]float32{} {
		g.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	} else {
		g.Transform.Scale = rl.Vector3{X: def.Scale[0], Y: def.Scale[1], Z: def.Scale[2]}
	}

	for _, data := range def.Components {
		typeName, _ := data["type"].(string)
		c, ok := engine.CreateComponent(typeName, data)
		if !ok {
			log.Printf("World: %s: unknown component %q skipped", def.Name, typeName)
			continue
		}
		g.AddComponent(c)
	}

	for _, child := range def.Children {
		g.AddChild(child.build())
	}
	return g
}

// --- Saving ---

// Snapshot captures the current state of the scene's root objects.
// Components that cannot be serialized are left out.
func Snapshot(scene *engine.Scene) SceneFile {
	sf := SceneFile{Name: scene.Name}
	for _, g := range scene.GameObjects {
		if g.Parent != nil {
			continue
		}
		sf.Objects = append(sf.Objects, snapshotObject(g))
	}
	return sf
}

func snapshotObject(g *engine.GameObject) ObjectDef {
	def := ObjectDef{
		Name:     g.Name,
		Tags:     g.Tags,
		Position: [3]float32{g.Transform.Position.X, g.Transform.Position.Y, g.Transform.Position.Z},
		Rotation: [3]float32{g.Transform.Rotation.X, g.Transform.Rotation.Y, g.Transform.Rotation.Z},
		Scale:    [3]float32{g.Transform.Scale.X, g.Transform.Scale.Y, g.Transform.Scale.Z},
	}
	for _, c := range g.Components() {
		if s, ok := c.(engine.Serializable); ok {
			def.Components = append(def.Components, s.Serialize())
		}
	}
	for _, child := range g.Children {
		def.Children = append(def.Children, snapshotObject(child))
	}
	return def
}

// SaveScene writes sf as indented JSON.
func SaveScene(path string, sf SceneFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	return nil
}
