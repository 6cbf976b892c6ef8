package engine

// GameObjectRef is a serializable reference to a GameObject by UID.
// A zero UID means "no target".
type GameObjectRef struct {
	UID uint64
}

// Get resolves the reference, returning nil when it is empty or the object
// has left the scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at g; nil clears it.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
		return
	}
	r.UID = g.UID
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
