package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Box is an axis-aligned box collider given by its center and half extents.
type Box struct {
	Center rl.Vector3
	Half   rl.Vector3
}

// Top returns the world-space height of the box's upper face.
func (b Box) Top() float32 {
	return b.Center.Y + b.Half.Y
}

// AABB converts the box to its min/max corner form.
func (b Box) AABB() AABB {
	return NewAABBFromCenter(b.Center, b.Half)
}

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// NewAABBFromPoints returns the smallest AABB containing all points.
func NewAABBFromPoints(first rl.Vector3, rest ...rl.Vector3) AABB {
	a := AABB{Min: first, Max: first}
	for _, p := range rest {
		a.Min = rl.Vector3Min(a.Min, p)
		a.Max = rl.Vector3Max(a.Max, p)
	}
	return a
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Half() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Subtract(a.Max, a.Min), 0.5)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// ClosestPoint clamps p into the box on every axis.
func (a AABB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: clamp(p.X, a.Min.X, a.Max.X),
		Y: clamp(p.Y, a.Min.Y, a.Max.Y),
		Z: clamp(p.Z, a.Min.Z, a.Max.Z),
	}
}

// Resolve returns the minimum translation vector to push 'a' out of 'b'.
// Returns zero vector if no overlap.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3Zero()
	}

	// Penetration depth in each direction
	dx1 := b.Max.X - a.Min.X // push a in +X
	dx2 := a.Max.X - b.Min.X // push a in -X
	dy1 := b.Max.Y - a.Min.Y // push a in +Y
	dy2 := a.Max.Y - b.Min.Y // push a in -Y
	dz1 := b.Max.Z - a.Min.Z // push a in +Z
	dz2 := a.Max.Z - b.Min.Z // push a in -Z

	// Ties prefer +Y so a sphere sunk exactly into a floor goes up.
	min := dy1
	result := rl.Vector3{Y: dy1}

	if dx1 < min {
		min = dx1
		result = rl.Vector3{X: dx1}
	}
	if dx2 < min {
		min = dx2
		result = rl.Vector3{X: -dx2}
	}
	if dy2 < min {
		min = dy2
		result = rl.Vector3{Y: -dy2}
	}
	if dz1 < min {
		min = dz1
		result = rl.Vector3{Z: dz1}
	}
	if dz2 < min {
		result = rl.Vector3{Z: -dz2}
	}

	return result
}
