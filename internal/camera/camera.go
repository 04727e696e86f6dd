package camera

import (
	"math"

	"rockup/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// degenerateHorizontal is the shortest camera-to-subject run on the XZ plane
// that still gives a usable forward direction.
const degenerateHorizontal = 1e-4

// Orbit is a third-person camera circling a subject at a fixed distance.
// Yaw and Pitch are in degrees; yaw 90 puts the camera on the subject's +Z side.
type Orbit struct {
	Position rl.Vector3
	Target   rl.Vector3

	Yaw         float32
	Pitch       float32
	Distance    float32
	MinDistance float32
	MaxDistance float32
	Sensitivity float32 // degrees of yaw per pixel of drag
	Fovy        float32
}

func New(pos rl.Vector3) *Orbit {
	return &Orbit{
		Position:    pos,
		Yaw:         90,
		Pitch:       20,
		Distance:    15,
		MinDistance: 5,
		MaxDistance: 40,
		Sensitivity: 0.3,
		Fovy:        45,
	}
}

// Follow places the camera behind subject according to yaw, pitch and distance.
func (c *Orbit) Follow(subject rl.Vector3) {
	c.Target = subject
	c.Position = rl.Vector3Add(subject, rl.Vector3Scale(c.offsetDir(), c.Distance))
}

// Drag turns the camera around its target by a horizontal mouse movement.
func (c *Orbit) Drag(dx float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dx*c.Sensitivity), 360))
}

// SetDistance changes the follow distance, clamped to the allowed range.
func (c *Orbit) SetDistance(d float32) {
	c.Distance = min(max(d, c.MinDistance), c.MaxDistance)
}

// Basis returns the movement directions on the XZ plane for a subject seen
// from the current camera position. Forward points from the camera towards
// the subject and right is forward rotated a quarter turn clockwise seen
// from above.
func (c *Orbit) Basis(subject rl.Vector3) (forward, right rl.Vector3) {
	view := physics.Horizontal(rl.Vector3Subtract(subject, c.Position))
	if l := rl.Vector3Length(view); l > degenerateHorizontal {
		forward = rl.Vector3Scale(view, 1/l)
	} else {
		d := c.offsetDir()
		forward = rl.Vector3Normalize(rl.Vector3{X: -d.X, Z: -d.Z})
	}
	right = rl.Vector3{X: -forward.Z, Z: forward.X}
	return forward, right
}

func (c *Orbit) offsetDir() rl.Vector3 {
	yaw := float64(c.Yaw) * math.Pi / 180
	pitch := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yaw) * math.Cos(pitch)),
		Y: float32(math.Sin(pitch)),
		Z: float32(math.Sin(yaw) * math.Cos(pitch)),
	}
}

func (c *Orbit) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
