package world

import (
	"rockup/internal/blocks"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Lobby box geometry. The room is centered on lobbyCenterY and extends
// lobbySize in every direction; the floor is two panels that slide apart.
const (
	lobbyCenterY   = 200
	lobbySize      = 10
	lobbyThickness = 1
)

var (
	wallTint  = rl.NewColor(102, 102, 102, 255)
	panelTint = rl.NewColor(153, 76, 25, 255)
)

// buildLobby adds the lobby room to the registry. Panel order is left, right
// so the first registered collider is the left floor half.
func buildLobby(r *blocks.Registry, panelSpeed, openDistance float32) {
	floorY := float32(lobbyCenterY - lobbySize)
	half := float32(lobbySize) / 2

	panel := func(x, dir float32) {
		b := blocks.NewBlock(rl.Vector3{X: x, Y: floorY}, rl.Vector3{X: half, Y: lobbyThickness, Z: lobbySize}).
			WithRole(blocks.PanelRole(blocks.AxisX, dir, panelSpeed, openDistance)).
			WithTint(panelTint)
		r.Add(blocks.Lobby, b)
	}
	panel(-half, -1)
	panel(half, 1)

	wall := func(center, halfExt rl.Vector3) {
		r.Add(blocks.Lobby, blocks.NewBlock(center, halfExt).WithTint(wallTint))
	}
	// Ceiling
	wall(rl.Vector3{Y: lobbyCenterY + lobbySize}, rl.Vector3{X: lobbySize, Y: lobbyThickness, Z: lobbySize})
	// Back, left, right, front
	wall(rl.Vector3{Y: lobbyCenterY, Z: -lobbySize}, rl.Vector3{X: lobbySize, Y: lobbySize, Z: lobbyThickness})
	wall(rl.Vector3{X: -lobbySize, Y: lobbyCenterY}, rl.Vector3{X: lobbyThickness, Y: lobbySize, Z: lobbySize})
	wall(rl.Vector3{X: lobbySize, Y: lobbyCenterY}, rl.Vector3{X: lobbyThickness, Y: lobbySize, Z: lobbySize})
	wall(rl.Vector3{Y: lobbyCenterY, Z: lobbySize}, rl.Vector3{X: lobbySize, Y: lobbySize, Z: lobbyThickness})
}
