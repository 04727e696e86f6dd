// Rockup is a marble game: drop out of the sky lobby and climb the tower.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"rockup/internal/config"
	"rockup/internal/game"
	"rockup/internal/logging"
	"rockup/internal/sfx"
	"rockup/internal/world"
)

var (
	levelFlag   = logging.LevelFlag{Value: slog.LevelInfo}
	configFlag  = flag.String("config", "", "YAML settings file")
	mapFlag     = flag.String("map", "", "load the tower from an .obj or .tmx file")
	seedFlag    = flag.Int64("seed", 0, "tower seed, 0 keeps the configured seed")
	policyFlag  = flag.String("policy", "", "collision policy for the tower: bounce or slide")
	logFileFlag = flag.String("logfile", "", "write logs to this file instead of the console")
	muteFlag    = flag.Bool("mute", false, "disable sound cues")
)

func init() {
	flag.Var(&levelFlag, "loglevel", "set log level")
}

func main() {
	flag.Parse()
	logging.Setup(levelFlag.Value, *logFileFlag)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	src, err := cfg.Source()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// A broken map file is reported now instead of after the fall.
	if _, err := src.GenerateMap(cfg.Map.Seed); err != nil {
		fmt.Fprintf(os.Stderr, "load map: %v\n", err)
		os.Exit(1)
	}

	w, err := world.New(cfg, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	w.OnTransition.AddListener(func(t world.Transition) {
		slog.Info("State changed", "from", t.From, "to", t.To, "reason", t.Reason, "tick", t.Tick, "seed", t.Seed)
	})

	var sound *sfx.Player
	if cfg.Game.Sound && !*muteFlag {
		if sound, err = sfx.New(); err != nil {
			slog.Warn("Sound disabled", "error", err)
		}
	}

	game.New(cfg, w, sound).Run()
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return cfg, err
		}
	}
	if *mapFlag != "" {
		cfg.Map.Path = *mapFlag
	}
	if *seedFlag != 0 {
		cfg.Map.Seed = *seedFlag
	}
	if *policyFlag != "" {
		cfg.Map.Policy = *policyFlag
	}
	return cfg, cfg.Validate()
}
