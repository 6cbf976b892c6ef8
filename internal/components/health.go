package components

import "kinemotion/internal/engine"

func init() {
	engine.RegisterComponent("Health", func() engine.Serializable {
		return NewHealth(1)
	})
}

// Health is a normalized hit-point pool. Knockback and death are decided
// by whoever deals the damage.
type Health struct {
	engine.BaseComponent
	Max     float32
	Current float32
}

func NewHealth(max float32) *Health {
	return &Health{Max: max, Current: max}
}

// Damage subtracts amount and reports whether the pool is now empty.
func (h *Health) Damage(amount float32) (dead bool) {
	if amount > 0 {
		h.Current -= amount
	}
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current <= 0
}

func (h *Health) Reset() {
	h.Current = h.Max
}

// Fraction is Current/Max, 0 for an empty or unset pool.
func (h *Health) Fraction() float32 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

func (h *Health) TypeName() string {
	return "Health"
}

func (h *Health) Serialize() map[string]any {
	return map[string]any{
		"type": "Health",
		"max":  h.Max,
	}
}

func (h *Health) Deserialize(data map[string]any) {
	h.Max = engine.Float(data, "max", h.Max)
	h.Current = h.Max
}
