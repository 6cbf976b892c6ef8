package engine

import (
	"fmt"
	"sort"
)

// Serializable is a component that can round-trip through a scene file.
type Serializable interface {
	Component
	TypeName() string
	Serialize() map[string]any
	Deserialize(data map[string]any)
}

// ComponentFactory creates an empty component ready for Deserialize.
type ComponentFactory func() Serializable

var componentRegistry = map[string]ComponentFactory{}

// RegisterComponent makes a component type loadable by name. Registering
// the same name twice is a programming error.
func RegisterComponent(name string, factory ComponentFactory) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = factory
}

// CreateComponent builds a registered component and fills it from data.
func CreateComponent(name string, data map[string]any) (Serializable, bool) {
	factory, ok := componentRegistry[name]
	if !ok {
		return nil, false
	}
	c := factory()
	if data != nil {
		c.Deserialize(data)
	}
	return c, true
}

// RegisteredComponents returns the registered names in sorted order.
func RegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Float reads a JSON number property as float32.
func Float(data map[string]any, key string, fallback float32) float32 {
	if v, ok := data[key].(float64); ok {
		return float32(v)
	}
	return fallback
}

// Vec3 reads a JSON [x, y, z] property.
func Vec3(data map[string]any, key string, fallback [3]float32) [3]float32 {
	raw, ok := data[key].([]any)
	if !ok || len(raw) != 3 {
		return fallback
	}
	var out [3]float32
	for i, v := range raw {
		f, ok := v.(float64)
		if !ok {
			return fallback
		}
		out[i] = float32(f)
	}
	return out
}
