package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/constraints"
)

// clampSlack lets a vector already rescaled to the limit pass a second clamp
// untouched despite float32 rounding.
const clampSlack = 1e-6

// clamp restricts a value to a range
func clamp[T constraints.Float](v, min, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Horizontal drops the vertical component of v.
func Horizontal(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: v.X, Z: v.Z}
}

// HorizontalSpeed returns the length of v projected on the XZ plane.
func HorizontalSpeed(v rl.Vector3) float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Z*v.Z)))
}

// ClampHorizontalSpeed rescales (X, Z) to exactly max when the horizontal
// speed exceeds it, keeping the direction. Y is never touched.
func ClampHorizontalSpeed(v rl.Vector3, max float32) rl.Vector3 {
	speedSq := v.X*v.X + v.Z*v.Z
	if speedSq <= max*max*(1+clampSlack) {
		return v
	}
	scale := max / float32(math.Sqrt(float64(speedSq)))
	v.X *= scale
	v.Z *= scale
	return v
}
