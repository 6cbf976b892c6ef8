package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum holds the six clip planes of a camera, normals pointing inward.
type Frustum struct {
	planes [6]plane
}

type plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum derives the clip planes from the camera's view-projection
// matrix (Gribb/Hartmann).
func ExtractFrustum(camera rl.Camera3D) Frustum {
	aspect := float32(1)
	if h := rl.GetScreenHeight(); h > 0 {
		aspect = float32(rl.GetScreenWidth()) / float32(h)
	}
	return FrustumFor(camera, aspect)
}

// FrustumFor is ExtractFrustum with an explicit aspect ratio.
func FrustumFor(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.GetCameraMatrix(camera)
	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, 0.1, 1000.0)
	} else {
		halfH := camera.Fovy / 2
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, 0.1, 1000.0)
	}
	m := rl.MatrixMultiply(view, proj)

	rows := [4][4]float32{
		{m.M0, m.M4, m.M8, m.M12},
		{m.M1, m.M5, m.M9, m.M13},
		{m.M2, m.M6, m.M10, m.M14},
		{m.M3, m.M7, m.M11, m.M15},
	}
	var f Frustum
	for i := 0; i < 3; i++ {
		f.planes[2*i] = planeFrom(rows[3], rows[i], 1)
		f.planes[2*i+1] = planeFrom(rows[3], rows[i], -1)
	}
	return f
}

func planeFrom(w, r [4]float32, sign float32) plane {
	p := plane{
		normal:   rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
		distance: w[3] + sign*r[3],
	}
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	p.normal = rl.Vector3Scale(p.normal, 1/length)
	p.distance /= length
	return p
}

// ContainsSphere reports whether any part of the sphere is inside.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, p := range f.planes {
		if rl.Vector3DotProduct(p.normal, center)+p.distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
