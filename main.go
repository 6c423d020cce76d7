package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"goatkeeper/internal/game"
	"goatkeeper/internal/gamemap"
	"goatkeeper/internal/generate"

	"github.com/gdamore/tcell/v2"
)

func main() {
	mapFile := flag.String("map", "", "level file (built-in map when empty)")
	configFile := flag.String("config", "", "TOML config file")
	autopilot := flag.Bool("autopilot", false, "start with the autopilot playing")
	fps := flag.Int("fps", 0, "frames per second (config value when 0)")
	logFile := flag.String("logfile", "", "write diagnostics to this file")
	seed := flag.Int64("generate", 0, "play a generated pitch from this seed instead of a map file")
	flag.Parse()

	if err := run(*mapFile, *configFile, *seed, *autopilot, *fps, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(mapFile, configFile string, seed int64, autopilot bool, fps int, logFile string) error {
	// Logs must not tear the screen: file or nothing.
	logger := slog.New(slog.DiscardHandler)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(logger)

	cfg := game.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = game.LoadConfig(configFile); err != nil {
			return err
		}
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	gmap, mapName, err := pickMap(mapFile, cfg.MapPath, seed)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	g, err := game.New(screen, gmap, cfg,
		game.WithLogger(logger),
		game.WithAutopilot(autopilot),
		game.WithMapName(mapName),
	)
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := g.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// pickMap generates a pitch when seed is set, else loads the map named by
// the flag, then the config, then the built-in one.
func pickMap(flagPath, cfgPath string, seed int64) (*gamemap.GameMap, string, error) {
	if seed != 0 {
		gmap, err := generate.Pitch(generate.DefaultConfig(seed))
		return gmap, fmt.Sprintf("generated-%d", seed), err
	}
	if flagPath == "" {
		flagPath = cfgPath
	}
	return game.LoadMap(flagPath)
}
