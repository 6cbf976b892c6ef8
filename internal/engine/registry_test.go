package engine

import "testing"

type mockComponent struct {
	BaseComponent
	Speed  float32
	Offset [3]float32
}

func (m *mockComponent) TypeName() string { return "Mock" }

func (m *mockComponent) Serialize() map[string]any {
	return map[string]any{
		"speed":  m.Speed,
		"offset": []any{m.Offset[0], m.Offset[1], m.Offset[2]},
	}
}

func (m *mockComponent) Deserialize(data map[string]any) {
	m.Speed = Float(data, "speed", 1)
	m.Offset = Vec3(data, "offset", [3]float32{0, 0.5, 0})
}

func resetRegistry(t *testing.T) {
	saved := componentRegistry
	componentRegistry = map[string]ComponentFactory{}
	t.Cleanup(func() { componentRegistry = saved })
}

func TestRegisterAndCreateComponent(t *testing.T) {
	resetRegistry(t)
	RegisterComponent("Mock", func() Serializable { return &mockComponent{} })

	c, ok := CreateComponent("Mock", map[string]any{
		"speed":  float64(4.5),
		"offset": []any{float64(1), float64(2), float64(3)},
	})
	if !ok {
		t.Fatal("CreateComponent should find a registered name")
	}
	m := c.(*mockComponent)
	if m.Speed != 4.5 {
		t.Errorf("Expected speed 4.5, got %f", m.Speed)
	}
	if m.Offset != [3]float32{1, 2, 3} {
		t.Errorf("Expected offset [1 2 3], got %v", m.Offset)
	}
}

func TestCreateComponentDefaults(t *testing.T) {
	resetRegistry(t)
	RegisterComponent("Mock", func() Serializable { return &mockComponent{} })

	c, ok := CreateComponent("Mock", map[string]any{"offset": []any{"x", 1, 2}})
	if !ok {
		t.Fatal("CreateComponent should succeed")
	}
	m := c.(*mockComponent)
	if m.Speed != 1 {
		t.Errorf("Missing speed should fall back to 1, got %f", m.Speed)
	}
	if m.Offset != [3]float32{0, 0.5, 0} {
		t.Errorf("Malformed offset should fall back, got %v", m.Offset)
	}

	// nil data skips Deserialize entirely
	c, _ = CreateComponent("Mock", nil)
	if c.(*mockComponent).Speed != 0 {
		t.Error("nil data should leave the component zeroed")
	}
}

func TestCreateComponentUnknown(t *testing.T) {
	resetRegistry(t)
	if _, ok := CreateComponent("Nope", nil); ok {
		t.Error("CreateComponent should fail for unregistered names")
	}
}

func TestRegisterComponentDuplicatePanics(t *testing.T) {
	resetRegistry(t)
	RegisterComponent("Mock", func() Serializable { return &mockComponent{} })

	defer func() {
		if recover() == nil {
			t.Error("Registering a duplicate name should panic")
		}
	}()
	RegisterComponent("Mock", func() Serializable { return &mockComponent{} })
}

func TestRegisteredComponentsSorted(t *testing.T) {
	resetRegistry(t)
	for _, name := range []string{"Rigidbody", "Brain", "Health"} {
		RegisterComponent(name, func() Serializable { return &mockComponent{} })
	}

	names := RegisteredComponents()
	want := []string{"Brain", "Health", "Rigidbody"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
