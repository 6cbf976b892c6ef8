package locomotion

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const eps = 1e-4

// slopeNormal is the outward normal of a ramp rising toward +X at angle a.
func slopeNormal(a float32) rl.Vector3 {
	s, c := math.Sincos(float64(a))
	return rl.Vector3{X: float32(-s), Y: float32(c), Z: 0}
}

func testBody(id EntityID) *Body {
	return NewBody(id, Capsule{Radius: 0.4, HalfHeight: 0.5}, DefaultTuning(), rl.Vector3{})
}

type bodyMap map[EntityID]*Body

func (m bodyMap) Body(id EntityID) (*Body, bool) {
	b, ok := m[id]
	return b, ok
}

type kindMap map[EntityID]BodyKind

func (m kindMap) Kind(id EntityID) (BodyKind, bool) {
	k, ok := m[id]
	return k, ok
}

type cueRecorder struct {
	cues []Cue
}

func (r *cueRecorder) record(c Cue) {
	r.cues = append(r.cues, c)
}

func (r *cueRecorder) kinds() []CueKind {
	out := make([]CueKind, 0, len(r.cues))
	for _, c := range r.cues {
		out = append(out, c.Kind)
	}
	return out
}
