package components

import rl "github.com/gen2brain/raylib-go/raylib"

func vecToList(v rl.Vector3) []any {
	return []any{v.X, v.Y, v.Z}
}

func vecToArray(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func listToVec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
