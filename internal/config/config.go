// Package config loads the game settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"rockup/internal/mapgen"
	"rockup/internal/physics"
	"rockup/internal/player"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/goccy/go-yaml"
)

// Vec3 is a vector written as a three element YAML sequence.
type Vec3 [3]float32

func (v Vec3) Vector3() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Trigger selects what opens the lobby floor.
type Trigger string

const (
	TriggerJump Trigger = "jump" // jumping while grounded in the lobby
	TriggerZone Trigger = "zone" // rolling past the zone line towards the front wall
	TriggerBoth Trigger = "both"
)

func ParseTrigger(s string) (Trigger, error) {
	switch t := Trigger(strings.ToLower(strings.TrimSpace(s))); t {
	case TriggerJump, TriggerZone, TriggerBoth:
		return t, nil
	}
	return "", fmt.Errorf("unknown open trigger %q", s)
}

type Player struct {
	Radius         float32 `yaml:"radius"`
	Acceleration   float32 `yaml:"acceleration"`
	MaxSpeed       float32 `yaml:"max_speed"`
	Friction       float32 `yaml:"friction"`
	AirDamping     float32 `yaml:"air_damping"`
	JumpImpulse    float32 `yaml:"jump_impulse"`
	JumpSpeedBonus float32 `yaml:"jump_speed_bonus"`
	Gravity        float32 `yaml:"gravity"`
}

type Camera struct {
	Start       Vec3    `yaml:"start"`
	Yaw         float32 `yaml:"yaw"`
	Pitch       float32 `yaml:"pitch"`
	Distance    float32 `yaml:"distance"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	Sensitivity float32 `yaml:"sensitivity"`
}

type Lobby struct {
	Spawn             Vec3    `yaml:"spawn"`
	Restitution       float32 `yaml:"restitution"`
	OpenTrigger       string  `yaml:"open_trigger"`
	ZoneZ             float32 `yaml:"zone_z"`
	PanelSpeed        float32 `yaml:"panel_speed"`
	PanelOpenDistance float32 `yaml:"panel_open_distance"`
	// DeckY is the height below which the player has left the lobby.
	DeckY float32 `yaml:"deck_y"`
}

type Tower struct {
	Restitution float32 `yaml:"restitution"`
	// LandY is the height at which a falling player enters the tower.
	LandY       float32 `yaml:"land_y"`
	FallY       float32 `yaml:"fall_y"`
	GoalRadius  float32 `yaml:"goal_radius"`
	LandDamping float32 `yaml:"land_damping"`
}

type Map struct {
	// Path is an .obj or .tmx file. Empty means procedural generation.
	Path       string  `yaml:"path"`
	Seed       int64   `yaml:"seed"`
	RandomSeed bool    `yaml:"random_seed"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Pillars    bool    `yaml:"pillars"`
	Policy     string  `yaml:"policy"` // overrides the source's own policy when set
	TiledUnit  float32 `yaml:"tiled_unit"`
}

type Game struct {
	TickMS       int     `yaml:"tick_ms"`
	MaxCatchUp   int     `yaml:"max_catch_up"`
	WindowWidth  int     `yaml:"window_width"`
	WindowHeight int     `yaml:"window_height"`
	Title        string  `yaml:"title"`
	ZoomStep     float32 `yaml:"zoom_step"`
	ZoomSeconds  float32 `yaml:"zoom_seconds"`
	Sound        bool    `yaml:"sound"`
}

// Config is the full settings tree.
type Config struct {
	Player Player `yaml:"player"`
	Camera Camera `yaml:"camera"`
	Lobby  Lobby  `yaml:"lobby"`
	Tower  Tower  `yaml:"tower"`
	Map    Map    `yaml:"map"`
	Game   Game   `yaml:"game"`
}

// Default returns the settings the game ships with.
func Default() Config {
	t := player.DefaultTuning()
	return Config{
		Player: Player{
			Radius:         1.2,
			Acceleration:   t.Acceleration,
			MaxSpeed:       t.MaxSpeed,
			Friction:       t.Friction,
			AirDamping:     t.AirDamping,
			JumpImpulse:    t.JumpImpulse,
			JumpSpeedBonus: t.JumpSpeedBonus,
			Gravity:        t.Gravity,
		},
		Camera: Camera{
			Start:       Vec3{0, 5, 10},
			Yaw:         90,
			Pitch:       20,
			Distance:    15,
			MinDistance: 5,
			MaxDistance: 40,
			Sensitivity: 0.3,
		},
		Lobby: Lobby{
			Spawn:             Vec3{0, 205, 0},
			Restitution:       0.5,
			OpenTrigger:       string(TriggerJump),
			ZoneZ:             5,
			PanelSpeed:        0.1,
			PanelOpenDistance: 10,
			DeckY:             190,
		},
		Tower: Tower{
			Restitution: 0.8,
			LandY:       5,
			FallY:       -15,
			GoalRadius:  3,
			LandDamping: 0.5,
		},
		Map: Map{
			Seed:      777,
			Width:     mapgen.DefaultWidth,
			Height:    mapgen.DefaultHeight,
			Pillars:   true,
			TiledUnit: 1,
		},
		Game: Game{
			TickMS:       16,
			MaxCatchUp:   5,
			WindowWidth:  1280,
			WindowHeight: 720,
			Title:        "Rock Up",
			ZoomStep:     2,
			ZoomSeconds:  0.25,
			Sound:        true,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float32) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	unit := func(name string, v float32) {
		if v <= 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %v", name, v))
		}
	}

	positive("player.radius", c.Player.Radius)
	positive("player.acceleration", c.Player.Acceleration)
	positive("player.max_speed", c.Player.MaxSpeed)
	positive("player.jump_impulse", c.Player.JumpImpulse)
	positive("player.gravity", c.Player.Gravity)
	if c.Player.JumpSpeedBonus < 0 {
		errs = append(errs, fmt.Errorf("player.jump_speed_bonus must not be negative"))
	}
	unit("player.friction", c.Player.Friction)
	unit("player.air_damping", c.Player.AirDamping)

	positive("camera.distance", c.Camera.Distance)
	positive("camera.sensitivity", c.Camera.Sensitivity)
	if c.Camera.MinDistance > c.Camera.MaxDistance {
		errs = append(errs, fmt.Errorf("camera.min_distance above camera.max_distance"))
	}

	unit("lobby.restitution", c.Lobby.Restitution)
	positive("lobby.panel_speed", c.Lobby.PanelSpeed)
	positive("lobby.panel_open_distance", c.Lobby.PanelOpenDistance)
	if _, err := ParseTrigger(c.Lobby.OpenTrigger); err != nil {
		errs = append(errs, fmt.Errorf("lobby.open_trigger: %w", err))
	}
	if c.Lobby.DeckY >= c.Lobby.Spawn[1] {
		errs = append(errs, fmt.Errorf("lobby.deck_y must be below the lobby spawn"))
	}

	unit("tower.restitution", c.Tower.Restitution)
	unit("tower.land_damping", c.Tower.LandDamping)
	positive("tower.goal_radius", c.Tower.GoalRadius)
	if c.Tower.FallY >= c.Tower.LandY {
		errs = append(errs, fmt.Errorf("tower.fall_y must be below tower.land_y"))
	}

	if c.Map.Policy != "" {
		if _, err := physics.ParsePolicy(c.Map.Policy); err != nil {
			errs = append(errs, fmt.Errorf("map.policy: %w", err))
		}
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		errs = append(errs, fmt.Errorf("map size must be positive, got %dx%d", c.Map.Width, c.Map.Height))
	}

	if c.Game.TickMS <= 0 || c.Game.MaxCatchUp <= 0 {
		errs = append(errs, fmt.Errorf("game.tick_ms and game.max_catch_up must be positive"))
	}
	return errors.Join(errs...)
}

// Tuning returns the player movement constants.
func (c Config) Tuning() player.Tuning {
	return player.Tuning{
		Acceleration:   c.Player.Acceleration,
		MaxSpeed:       c.Player.MaxSpeed,
		Friction:       c.Player.Friction,
		AirDamping:     c.Player.AirDamping,
		JumpImpulse:    c.Player.JumpImpulse,
		JumpSpeedBonus: c.Player.JumpSpeedBonus,
		Gravity:        c.Player.Gravity,
	}
}

// Trigger returns the parsed open trigger. Call Validate first.
func (c Config) Trigger() Trigger {
	t, err := ParseTrigger(c.Lobby.OpenTrigger)
	if err != nil {
		return TriggerJump
	}
	return t
}

// Source builds the map source described by the map section.
func (c Config) Source() (mapgen.Source, error) {
	var src mapgen.Source
	if c.Map.Path == "" {
		src = &mapgen.Procedural{
			Width:      c.Map.Width,
			Height:     c.Map.Height,
			Pillars:    c.Map.Pillars,
			RandomSeed: c.Map.RandomSeed,
		}
	} else {
		var err error
		if src, err = mapgen.Open(c.Map.Path, c.Map.TiledUnit); err != nil {
			return nil, err
		}
	}
	if c.Map.Policy == "" {
		return src, nil
	}
	p, err := physics.ParsePolicy(c.Map.Policy)
	if err != nil {
		return nil, err
	}
	return policyOverride{Source: src, policy: p}, nil
}

type policyOverride struct {
	mapgen.Source
	policy physics.Policy
}

func (o policyOverride) GenerateMap(seed int64) (*mapgen.Map, error) {
	m, err := o.Source.GenerateMap(seed)
	if err != nil {
		return nil, err
	}
	m.Policy = o.policy
	return m, nil
}
