// Towersim runs the game without a window. The scripted player jumps out of
// the lobby and rolls around the tower while every state change is printed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"rockup/internal/config"
	"rockup/internal/logging"
	"rockup/internal/world"

	"github.com/dustin/go-humanize"
)

var (
	levelFlag  = logging.LevelFlag{Value: slog.LevelWarn}
	configFlag = flag.String("config", "", "YAML settings file")
	mapFlag    = flag.String("map", "", "load the tower from an .obj or .tmx file")
	seedFlag   = flag.Int64("seed", 0, "tower seed, 0 keeps the configured seed")
	ticksFlag  = flag.Int("ticks", 3000, "number of ticks to simulate")
)

func init() {
	flag.Var(&levelFlag, "loglevel", "set log level")
}

func main() {
	flag.Parse()
	logging.Setup(levelFlag.Value, "")

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *mapFlag != "" {
		cfg.Map.Path = *mapFlag
	}
	if *seedFlag != 0 {
		cfg.Map.Seed = *seedFlag
	}
	src, err := cfg.Source()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	w, err := world.New(cfg, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	transitions := 0
	w.OnTransition.AddListener(func(t world.Transition) {
		transitions++
		fmt.Printf("tick %6d  %-8s -> %-8s  %-16s  y=%.1f\n", t.Tick, t.From, t.To, t.Reason, t.Position.Y)
	})

	start := time.Now()
	for i := range *ticksFlag {
		if w.State() == world.Lobby {
			w.Jump()
		}
		w.Tick(script(i))
		if w.State() == world.Clear {
			break
		}
	}
	elapsed := time.Since(start)

	s := w.Snapshot()
	fmt.Printf("\n%s ticks in %v, %d transitions, final state %s at y=%.1f (seed %d)\n",
		humanize.Comma(int64(s.Tick)), elapsed.Round(time.Microsecond), transitions, s.State, s.Player.Y, s.Seed)
	if err := w.LastError(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// script turns the player through a slow circle, one quarter every 200 ticks.
func script(i int) world.Input {
	switch (i / 200) % 4 {
	case 0:
		return world.Input{Forward: true}
	case 1:
		return world.Input{Right: true}
	case 2:
		return world.Input{Back: true}
	default:
		return world.Input{Left: true}
	}
}
