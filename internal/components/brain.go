package components

import "kinemotion/internal/engine"

func init() {
	engine.RegisterComponent("Brain", func() engine.Serializable {
		return NewBrain()
	})
}

// Brain marks a character as AI driven. It only carries configuration;
// the world builds the runtime brain from it.
type Brain struct {
	engine.BaseComponent
	Kind   string // "chase" or "script"
	Script string // brain script name, for Kind == "script"
	Target engine.GameObjectRef
	// TargetName is resolved into Target when the level loads.
	TargetName string
}

func NewBrain() *Brain {
	return &Brain{Kind: "chase", TargetName: "Player"}
}

func (b *Brain) TypeName() string {
	return "Brain"
}

func (b *Brain) Serialize() map[string]any {
	return map[string]any{
		"type":   "Brain",
		"kind":   b.Kind,
		"script": b.Script,
		"target": b.TargetName,
	}
}

func (b *Brain) Deserialize(data map[string]any) {
	if k, ok := data["kind"].(string); ok && k != "" {
		b.Kind = k
	}
	if s, ok := data["script"].(string); ok {
		b.Script = s
	}
	if t, ok := data["target"].(string); ok && t != "" {
		b.TargetName = t
	}
}
