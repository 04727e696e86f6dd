// Package game runs the interactive window around a world.
package game

import (
	"log/slog"
	"time"

	"rockup/internal/config"
	"rockup/internal/render"
	"rockup/internal/sfx"
	"rockup/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	World    *world.World
	Renderer *render.Renderer
	Sound    *sfx.Player

	cfg   config.Config
	clock *fixedClock
	zoom  zoom
}

// New wraps w in a window loop. sound may be nil.
func New(cfg config.Config, w *world.World, sound *sfx.Player) *Game {
	g := &Game{
		World:    w,
		Renderer: render.NewRenderer(),
		Sound:    sound,
		cfg:      cfg,
		clock:    newFixedClock(time.Duration(cfg.Game.TickMS)*time.Millisecond, cfg.Game.MaxCatchUp),
		zoom:     zoom{seconds: cfg.Game.ZoomSeconds, target: w.Camera.Distance},
	}
	w.OnTransition.AddListener(func(t world.Transition) {
		if c, ok := cueFor(t); ok {
			g.Sound.Play(c)
		}
	})
	w.OnOpen.AddListener(func(uint64) {
		g.Sound.Play(sfx.CueOpen)
	})
	return g
}

func cueFor(t world.Transition) (sfx.Cue, bool) {
	switch t.To {
	case world.Falling:
		return sfx.CueFall, true
	case world.Playing:
		return sfx.CueLand, true
	case world.Clear:
		return sfx.CueClear, true
	case world.Lobby:
		return sfx.CueReset, true
	}
	return 0, false
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(g.cfg.Game.WindowWidth), int32(g.cfg.Game.WindowHeight), g.cfg.Game.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyEscape)
	rl.SetTargetFPS(120)
	render.InitStyle()

	slog.Info("Window opened", "width", g.cfg.Game.WindowWidth, "height", g.cfg.Game.WindowHeight)

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		g.Update()
		g.Draw()
	}
}

// Update applies this frame's edge events and runs the fixed ticks it owes.
func (g *Game) Update() {
	dt := rl.GetFrameTime()

	if rl.IsKeyPressed(rl.KeyR) {
		g.World.RequestReset()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.World.Jump()
	}

	g.updateCamera(dt)

	in := readInput()
	for range g.clock.Advance(dt) {
		g.World.Tick(in)
	}
}

func (g *Game) updateCamera(dt float32) {
	cam := g.World.Camera
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		cam.Drag(rl.GetMouseDelta().X)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		target := min(max(g.zoom.target-wheel*g.cfg.Game.ZoomStep, cam.MinDistance), cam.MaxDistance)
		g.zoom.To(cam.Distance, target)
	}
	if d, ok := g.zoom.Update(dt); ok {
		cam.SetDistance(d)
	}
}

func readInput() world.Input {
	return world.Input{
		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
	}
}

func (g *Game) Draw() {
	s := g.World.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(g.Renderer.Background())
	g.Renderer.DrawWorld(s)
	actions := g.Renderer.DrawHUD(s)
	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
	rl.EndDrawing()

	if actions.Reset {
		g.World.RequestReset()
	}
}
