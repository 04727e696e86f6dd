// Package world runs the simulation: the player, both collider sets, the
// camera and the state machine that moves a run from the lobby to the goal.
package world

import (
	"errors"
	"fmt"
	"log/slog"

	"rockup/internal/blocks"
	"rockup/internal/camera"
	"rockup/internal/config"
	"rockup/internal/mapgen"
	"rockup/internal/physics"
	"rockup/internal/player"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is the set of movement keys held during a tick.
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// World owns every piece of simulation state. It is not safe for concurrent
// use; Tick, Jump and RequestReset must be called from one goroutine.
type World struct {
	Player *player.Player
	Camera *camera.Orbit
	Blocks *blocks.Registry

	// OnTransition fires after every state change and every reset.
	OnTransition Event[Transition]
	// OnOpen fires once per run when the lobby floor starts to open.
	OnOpen Event[uint64]

	cfg     config.Config
	source  mapgen.Source
	trigger config.Trigger

	state       State
	tick        uint64
	seed        int64
	open        bool
	travelled   float32
	towerPolicy physics.Policy
	safeSpawn   rl.Vector3
	mapErr      error

	colliders []physics.Box
}

// New builds the lobby and places the player at the lobby spawn. The map
// source is only used when the player drops into the tower.
func New(cfg config.Config, src mapgen.Source) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("world: nil map source")
	}

	cam := camera.New(cfg.Camera.Start.Vector3())
	cam.Yaw = cfg.Camera.Yaw
	cam.Pitch = cfg.Camera.Pitch
	cam.Distance = cfg.Camera.Distance
	cam.MinDistance = cfg.Camera.MinDistance
	cam.MaxDistance = cfg.Camera.MaxDistance
	cam.Sensitivity = cfg.Camera.Sensitivity

	w := &World{
		Player:    player.New(cfg.Tuning(), cfg.Player.Radius, cfg.Lobby.Spawn.Vector3()),
		Camera:    cam,
		Blocks:    blocks.NewRegistry(),
		cfg:       cfg,
		source:    src,
		trigger:   cfg.Trigger(),
		seed:      cfg.Map.Seed,
		safeSpawn: mapgen.DefaultSpawn,
	}
	buildLobby(w.Blocks, cfg.Lobby.PanelSpeed, cfg.Lobby.PanelOpenDistance)
	w.Camera.Follow(w.Player.Position)
	return w, nil
}

func (w *World) State() State { return w.state }

// Seed is the seed of the current or next generated tower.
func (w *World) Seed() int64 { return w.seed }

// Open reports whether the lobby floor has been triggered.
func (w *World) Open() bool { return w.open }

// Ticks returns the number of ticks simulated since New.
func (w *World) Ticks() uint64 { return w.tick }

// LastError returns the map error that keeps the world from entering the
// tower, if any. It is cleared by RequestReset.
func (w *World) LastError() error { return w.mapErr }

// Policy returns the collision policy of the active set.
func (w *World) Policy() physics.Policy {
	if w.state.ActiveSet() == blocks.Tower {
		return w.towerPolicy
	}
	return physics.PolicyBounce
}

// Tick advances the simulation by one fixed step. Damping is skipped on a
// tick whose movement a bounce wall hit cancelled, so the rebound speed is
// exactly restitution times the incoming speed.
func (w *World) Tick(in Input) {
	w.tick++
	p := w.Player

	// The player is frozen once the goal is reached.
	if w.state == Clear {
		w.Camera.Follow(p.Position)
		return
	}

	fwd, right := w.Camera.Basis(p.Position)
	var dir rl.Vector3
	if in.Forward {
		dir = rl.Vector3Add(dir, fwd)
	}
	if in.Back {
		dir = rl.Vector3Subtract(dir, fwd)
	}
	if in.Right {
		dir = rl.Vector3Add(dir, right)
	}
	if in.Left {
		dir = rl.Vector3Subtract(dir, right)
	}
	p.Accelerate(dir)
	p.ClampSpeed()
	p.ApplyGravity()

	next := rl.Vector3Add(p.Position, p.Velocity)
	p.Grounded = false

	if w.state == Lobby && w.open {
		w.travelled = w.Blocks.SlidePanels(blocks.Lobby)
	}

	set := w.state.ActiveSet()
	w.colliders = w.Blocks.AppendColliders(w.colliders[:0], set)
	next, out := w.resolver().Resolve(&p.Body, next, w.colliders)
	p.Position = next

	if !out.WallHit {
		p.Damp()
	}

	w.advance()
	w.Camera.Follow(p.Position)
}

func (w *World) resolver() physics.Resolver {
	if w.state.ActiveSet() == blocks.Tower {
		return physics.Resolver{Policy: w.towerPolicy, Restitution: w.cfg.Tower.Restitution}
	}
	return physics.Resolver{Policy: physics.PolicyBounce, Restitution: w.cfg.Lobby.Restitution}
}

// advance applies the transition rules to the resolved position.
func (w *World) advance() {
	p := w.Player
	switch w.state {
	case Lobby:
		if !w.open && (w.trigger == config.TriggerZone || w.trigger == config.TriggerBoth) && p.Position.Z > w.cfg.Lobby.ZoneZ {
			w.openFloor()
		}
		if p.Position.Y < w.cfg.Lobby.DeckY {
			w.Blocks.ExcludePanels(blocks.Lobby)
			w.transition(Falling, ReasonDeck)
		}
	case Falling:
		if p.Position.Y < w.cfg.Tower.LandY && w.mapErr == nil {
			w.enterTower()
		}
	case Playing:
		if p.Position.Y < w.cfg.Tower.FallY {
			slog.Debug("Player fell out of the tower", "position", p.Position)
			p.Teleport(w.safeSpawn)
			return
		}
		goal, ok := w.Blocks.Goal(blocks.Tower)
		if ok && rl.Vector3Distance(p.Position, goal.Center) < w.cfg.Tower.GoalRadius {
			w.Blocks.ClearSet(blocks.Tower)
			p.Velocity = rl.Vector3Zero()
			w.transition(Clear, ReasonGoal)
		}
	}
}

func (w *World) enterTower() {
	m, err := w.source.GenerateMap(w.seed)
	if err != nil {
		w.mapErr = fmt.Errorf("generate map: %w", err)
		slog.Error("Cannot enter the tower", "seed", w.seed, "error", err)
		return
	}
	w.Blocks.ClearSet(blocks.Tower)
	for _, b := range m.Blocks {
		w.Blocks.Add(blocks.Tower, b)
	}
	w.seed = m.Seed
	w.towerPolicy = m.Policy
	w.safeSpawn = m.Spawn
	w.Player.Velocity.Y *= w.cfg.Tower.LandDamping
	w.transition(Playing, ReasonLanded)
}

// Jump makes the player jump if it is grounded. In the lobby a jump also
// opens the floor when the trigger includes jumping.
func (w *World) Jump() {
	if w.state == Clear {
		return
	}
	if !w.Player.Jump() {
		return
	}
	if w.state == Lobby && !w.open && (w.trigger == config.TriggerJump || w.trigger == config.TriggerBoth) {
		w.openFloor()
	}
}

func (w *World) openFloor() {
	w.open = true
	slog.Info("Lobby floor opening", "tick", w.tick)
	w.OnOpen.Invoke(w.tick)
}

// RequestReset returns the world to the lobby with the configured seed.
func (w *World) RequestReset() {
	w.seed = w.cfg.Map.Seed
	w.Player.Reset()
	w.open = false
	w.travelled = 0
	w.Blocks.RestorePanels(blocks.Lobby)
	w.Blocks.ClearSet(blocks.Tower)
	w.mapErr = nil
	w.safeSpawn = mapgen.DefaultSpawn
	w.transition(Lobby, ReasonReset)
	w.Camera.Follow(w.Player.Position)
}

func (w *World) transition(to State, reason Reason) {
	t := Transition{
		From:     w.state,
		To:       to,
		Reason:   reason,
		Tick:     w.tick,
		Position: w.Player.Position,
		Seed:     w.seed,
	}
	w.state = to
	w.OnTransition.Invoke(t)
}

// Snapshot is a read-only view of the world for drawing and reporting.
type Snapshot struct {
	State     State
	Tick      uint64
	Seed      int64
	Open      bool
	Travelled float32
	Policy    physics.Policy

	Player   rl.Vector3
	Velocity rl.Vector3
	Radius   float32
	Grounded bool
	Speed    float32

	Active blocks.Set
	// Blocks are the blocks of the active set, including excluded and
	// decor blocks. The slice is shared with the registry.
	Blocks []blocks.Block
	Goal   *blocks.Block
	// Shadow is where the player would land straight below, if anywhere
	// within shadowRange.
	Shadow *physics.RaycastHit

	Camera rl.Camera3D
	Err    error
}

func (w *World) Snapshot() Snapshot {
	set := w.state.ActiveSet()
	s := Snapshot{
		State:     w.state,
		Tick:      w.tick,
		Seed:      w.seed,
		Open:      w.open,
		Travelled: w.travelled,
		Policy:    w.Policy(),
		Player:    w.Player.Position,
		Velocity:  w.Player.Velocity,
		Radius:    w.Player.Radius,
		Grounded:  w.Player.Grounded,
		Speed:     w.Player.HorizontalSpeed(),
		Active:    set,
		Blocks:    w.Blocks.Blocks(set),
		Camera:    w.Camera.GetRaylibCamera(),
		Err:       w.mapErr,
	}
	if g, ok := w.Blocks.Goal(set); ok {
		s.Goal = &g
	}
	if h, ok := w.groundBelow(set); ok {
		s.Shadow = &h
	}
	return s
}

const shadowRange = 60

func (w *World) groundBelow(set blocks.Set) (physics.RaycastHit, bool) {
	boxes := w.Blocks.AppendColliders(nil, set)
	return physics.Raycast(w.Player.Position, rl.Vector3{Y: -1}, shadowRange, boxes)
}
