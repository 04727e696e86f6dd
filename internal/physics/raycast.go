package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type RaycastHit struct {
	Index    int // position of the hit box in the slice passed to Raycast
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast returns the closest box hit by the ray within maxDistance.
// A ray starting inside a box hits its far side.
func Raycast(origin, direction rl.Vector3, maxDistance float32, boxes []Box) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	best := RaycastHit{Index: -1, Distance: maxDistance}
	for i, b := range boxes {
		h, ok := raycastBox(origin, direction, b.AABB(), maxDistance)
		if ok && h.Distance < best.Distance {
			h.Index = i
			best = h
		}
	}
	return best, best.Index >= 0
}

// raycastBox is the slab test. The normal is taken from the axis whose slab
// was entered last.
func raycastBox(origin, dir rl.Vector3, a AABB, maxDistance float32) (RaycastHit, bool) {
	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{a.Min.X, a.Min.Y, a.Min.Z}
	hi := [3]float32{a.Max.X, a.Max.Y, a.Max.Z}

	tmin, tmax := float32(-1e30), float32(1e30)
	var normal [3]float32
	for i := range 3 {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = [3]float32{}
			normal[i] = sign
		}
		tmax = min(tmax, t2)
	}
	if tmin > tmax || tmax < 0 {
		return RaycastHit{}, false
	}

	t := tmin
	n := rl.Vector3{X: normal[0], Y: normal[1], Z: normal[2]}
	if t < 0 {
		t = tmax
		n = rl.Vector3Negate(dir)
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}
	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(dir, t)),
		Normal:   n,
		Distance: t,
	}, true
}
