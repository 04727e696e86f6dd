// Package render draws a world snapshot with raylib.
package render

import (
	"rockup/internal/blocks"
	"rockup/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBackground = rl.NewColor(25, 25, 25, 255)
	colorPlayer     = rl.NewColor(140, 120, 100, 255)
	colorWire       = rl.NewColor(255, 255, 255, 60)
	colorShadow     = rl.NewColor(0, 0, 0, 90)
)

// shadowFade is the drop height at which the shadow reaches its smallest size.
const shadowFade = 30

// drawFunc draws one block.
type drawFunc func(b blocks.Block)

// drawers maps every shape kind to its geometry.
var drawers = map[blocks.ShapeKind]drawFunc{
	blocks.ShapeBox:    drawBox,
	blocks.ShapeSphere: drawSphere,
}

type Renderer struct {
	// ShowColliders adds wireframes of the collision boxes.
	ShowColliders bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Background is the clear color for a frame.
func (r *Renderer) Background() rl.Color {
	return colorBackground
}

// DrawWorld draws the active block set and the player. It must be called
// between BeginDrawing and EndDrawing.
func (r *Renderer) DrawWorld(s world.Snapshot) {
	rl.BeginMode3D(s.Camera)
	defer rl.EndMode3D()

	view := frustumFor(s.Camera, float32(rl.GetScreenWidth())/float32(rl.GetScreenHeight()))
	for _, b := range s.Blocks {
		if !view.containsBox(b.Center, b.Half) {
			continue
		}
		draw, ok := drawers[b.Shape.Kind]
		if !ok {
			draw = drawBox
		}
		draw(b)
		if r.ShowColliders && b.Obstacle {
			rl.DrawCubeWiresV(b.Center, size(b), colorWire)
		}
	}

	if s.Shadow != nil {
		// Shrinks as the player rises above the surface.
		radius := s.Radius * max(0.3, 1-(s.Shadow.Distance-s.Radius)/shadowFade)
		top := rl.Vector3Add(s.Shadow.Point, rl.Vector3{Y: 0.02})
		rl.DrawCylinder(top, radius, radius, 0.01, 16, colorShadow)
	}

	rl.DrawSphere(s.Player, s.Radius, colorPlayer)
	rl.DrawSphereWires(s.Player, s.Radius, 8, 12, rl.DarkBrown)
}

func drawBox(b blocks.Block) {
	rl.DrawCubeV(b.Center, size(b), b.Shape.Tint)
	rl.DrawCubeWiresV(b.Center, size(b), rl.Fade(rl.Black, 0.3))
}

func drawSphere(b blocks.Block) {
	radius := max(b.Half.X, b.Half.Y, b.Half.Z)
	rl.DrawSphere(b.Center, radius, b.Shape.Tint)
}

func size(b blocks.Block) rl.Vector3 {
	return rl.Vector3Scale(b.Half, 2)
}
