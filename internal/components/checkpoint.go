package components

import "kinemotion/internal/engine"

func init() {
	engine.RegisterComponent("Checkpoint", func() engine.Serializable {
		return &Checkpoint{}
	})
}

// Checkpoint marks a collider the player respawns above once it has stood
// on it. Active marks the level's starting checkpoint.
type Checkpoint struct {
	engine.BaseComponent
	Active bool
}

func (c *Checkpoint) TypeName() string {
	return "Checkpoint"
}

func (c *Checkpoint) Serialize() map[string]any {
	return map[string]any{
		"type":   "Checkpoint",
		"active": c.Active,
	}
}

func (c *Checkpoint) Deserialize(data map[string]any) {
	if v, ok := data["active"].(bool); ok {
		c.Active = v
	}
}
