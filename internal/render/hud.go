package render

import (
	"fmt"

	"rockup/internal/world"

	"github.com/dustin/go-humanize"
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Actions are the HUD widgets the user clicked this frame.
type Actions struct {
	Reset bool
}

var (
	colorPanel = rl.NewColor(18, 18, 24, 220)
	colorText  = rl.NewColor(200, 200, 208, 255)
	colorError = rl.NewColor(255, 110, 110, 255)
)

// InitStyle sets the raygui theme. Call after the window exists.
func InitStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(28, 28, 38, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(38, 38, 52, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(rl.NewColor(108, 99, 255, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// HUDLines returns the status lines shown in the corner panel.
func HUDLines(s world.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("State: %s", s.State),
		fmt.Sprintf("Seed: %d", s.Seed),
		fmt.Sprintf("Height: %.1f", s.Player.Y),
		fmt.Sprintf("Speed: %.3f", s.Speed),
		fmt.Sprintf("Policy: %s", s.Policy),
		fmt.Sprintf("Ticks: %s", humanize.Comma(int64(s.Tick))),
	}
	if s.Goal != nil && s.State == world.Playing {
		lines = append(lines, fmt.Sprintf("Goal: %.0f up", s.Goal.Center.Y-s.Player.Y))
	}
	return lines
}

// DrawHUD draws the status panel and the controls. It returns what the user
// clicked.
func (r *Renderer) DrawHUD(s world.Snapshot) Actions {
	const (
		x, y    = 10, 10
		width   = 220
		lineH   = 20
		padding = 8
	)
	lines := HUDLines(s)
	height := float32(len(lines)*lineH + 2*padding + 56)
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: width, Height: height}, colorPanel)

	for i, line := range lines {
		gui.Label(rl.Rectangle{X: x + padding, Y: float32(y + padding + i*lineH), Width: width - 2*padding, Height: lineH}, line)
	}

	rowY := float32(y + padding + len(lines)*lineH + 4)
	r.ShowColliders = gui.CheckBox(rl.Rectangle{X: x + padding, Y: rowY, Width: 16, Height: 16}, "Colliders", r.ShowColliders)

	var a Actions
	a.Reset = gui.Button(rl.Rectangle{X: x + padding, Y: rowY + 24, Width: width - 2*padding, Height: 24}, "Reset (R)")

	switch {
	case s.Err != nil:
		rl.DrawText(s.Err.Error(), x, int32(height)+y+10, 18, colorError)
	case s.State == world.Lobby && !s.Open:
		rl.DrawText("WASD to roll, Space to jump, drag to look", x, int32(height)+y+10, 18, colorText)
	case s.State == world.Clear:
		w := int32(rl.GetScreenWidth())
		msg := "CLEAR! Press R to play again"
		rl.DrawText(msg, (w-rl.MeasureText(msg, 40))/2, int32(rl.GetScreenHeight())/3, 40, rl.Gold)
	}
	return a
}
