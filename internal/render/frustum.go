package render

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	nearPlane = 0.1
	farPlane  = 1000.0
)

// plane is n·p + d = 0 with n pointing into the frustum.
type plane struct {
	n rl.Vector3
	d float32
}

// frustum holds the left, right, bottom, top, near and far planes.
type frustum [6]plane

// frustumFor extracts the planes of a perspective camera from its
// view-projection matrix (Gribb/Hartmann).
func frustumFor(cam rl.Camera3D, aspect float32) frustum {
	view := rl.MatrixLookAt(cam.Position, cam.Target, cam.Up)
	proj := rl.MatrixPerspective(cam.Fovy*rl.Deg2rad, aspect, nearPlane, farPlane)
	m := rl.MatrixMultiply(view, proj)

	rows := [4][4]float32{
		{m.M0, m.M4, m.M8, m.M12},
		{m.M1, m.M5, m.M9, m.M13},
		{m.M2, m.M6, m.M10, m.M14},
		{m.M3, m.M7, m.M11, m.M15},
	}
	var f frustum
	for i := range 3 {
		f[2*i] = makePlane(rows[3], rows[i], 1)
		f[2*i+1] = makePlane(rows[3], rows[i], -1)
	}
	return f
}

func makePlane(w, r [4]float32, sign float32) plane {
	p := plane{
		n: rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
		d: w[3] + sign*r[3],
	}
	if l := rl.Vector3Length(p.n); l > 0 {
		p.n = rl.Vector3Scale(p.n, 1/l)
		p.d /= l
	}
	return p
}

// containsBox reports whether any part of the box may be visible. It tests
// the corner furthest along each plane normal.
func (f *frustum) containsBox(center, half rl.Vector3) bool {
	for _, p := range f {
		r := half.X*abs(p.n.X) + half.Y*abs(p.n.Y) + half.Z*abs(p.n.Z)
		if rl.Vector3DotProduct(p.n, center)+p.d < -r {
			return false
		}
	}
	return true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
