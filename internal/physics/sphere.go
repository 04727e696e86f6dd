package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// insideEpsilon is the penetration length below which the sphere center is
// treated as lying inside the box.
const insideEpsilon = 1e-4

// Contact describes a sphere overlapping a box.
type Contact struct {
	Closest     rl.Vector3 // closest point on the box to the sphere center
	Penetration rl.Vector3 // sphere center minus Closest
	Normal      rl.Vector3 // unit push-out direction, box to sphere
	Depth       float32    // distance to move along Normal to separate
}

// ClosestPointOnBox returns the point of the box nearest to p.
func ClosestPointOnBox(p, boxCenter, half rl.Vector3) rl.Vector3 {
	return NewAABBFromCenter(boxCenter, half).ClosestPoint(p)
}

// Intersects reports whether a sphere overlaps an axis-aligned box. The test
// is strict: a sphere exactly touching a face does not intersect it.
func Intersects(sphereCenter rl.Vector3, radius float32, boxCenter, half rl.Vector3) bool {
	closest := ClosestPointOnBox(sphereCenter, boxCenter, half)
	return rl.Vector3Distance(closest, sphereCenter) < radius
}

// SphereBoxContact is Intersects plus the data needed to separate the two.
func SphereBoxContact(sphereCenter rl.Vector3, radius float32, boxCenter, half rl.Vector3) (Contact, bool) {
	box := NewAABBFromCenter(boxCenter, half)
	closest := box.ClosestPoint(sphereCenter)
	pen := rl.Vector3Subtract(sphereCenter, closest)
	dist := rl.Vector3Length(pen)
	if dist >= radius {
		return Contact{}, false
	}

	c := Contact{Closest: closest, Penetration: pen}
	if dist > insideEpsilon {
		c.Normal = rl.Vector3Scale(pen, 1/dist)
		c.Depth = radius - dist
		return c, true
	}

	// Center is inside the box: leave through the nearest face.
	point := AABB{Min: sphereCenter, Max: sphereCenter}
	mtv := point.Resolve(box)
	l := rl.Vector3Length(mtv)
	if l < insideEpsilon {
		c.Normal = rl.Vector3{Y: 1}
		c.Depth = radius
		return c, true
	}
	c.Normal = rl.Vector3Scale(mtv, 1/l)
	c.Depth = l + radius
	return c, true
}
