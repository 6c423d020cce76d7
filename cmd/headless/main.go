// goatkeeper-headless runs a level without a terminal, with the
// autopilot playing, and appends the result to the run log.
//
//	go run ./cmd/headless -ticks 3600 -log runs.jsonl
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"goatkeeper/internal/behaviour"
	"goatkeeper/internal/game"
	"goatkeeper/internal/gamemap"
	"goatkeeper/internal/generate"

	bt "github.com/joeycumines/go-behaviortree"
)

// fastTick is the ticker period when not running in real time.
const fastTick = time.Microsecond

type options struct {
	gmap     *gamemap.GameMap
	mapName  string
	cfg      game.Config
	ticks    int
	realtime bool
	logger   *slog.Logger
}

func main() {
	mapFile := flag.String("map", "", "level file (built-in map when empty)")
	configFile := flag.String("config", "", "TOML config file")
	seed := flag.Int64("generate", 0, "simulate a generated pitch from this seed")
	ticks := flag.Int("ticks", 1800, "frames to simulate")
	fps := flag.Int("fps", 0, "frames per second (config value when 0)")
	realtime := flag.Bool("realtime", false, "pace frames at the frame rate")
	logFile := flag.String("log", "", "run log file (XDG data dir when empty)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := mainErr(*mapFile, *configFile, *seed, *ticks, *fps, *realtime, *logFile, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func mainErr(mapFile, configFile string, seed int64, ticks, fps int, realtime bool, logFile string, logger *slog.Logger) error {
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
	if mapFile == "" {
		mapFile = cfg.MapPath
	}
	opts := options{cfg: cfg, ticks: ticks, realtime: realtime, logger: logger}
	var err error
	if seed != 0 {
		opts.mapName = fmt.Sprintf("generated-%d", seed)
		opts.gmap, err = generate.Pitch(generate.DefaultConfig(seed))
	} else {
		opts.gmap, opts.mapName, err = game.LoadMap(mapFile)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log, err := simulate(ctx, opts)
	if err != nil {
		return err
	}
	logger.Info("run finished", "run", log.ID, "ticks", log.Ticks, "goals", log.Goals, "caught", log.Caught)
	if logFile != "" {
		return game.AppendRunLog(logFile, log)
	}
	return game.SaveRunLog(log)
}

// simulate plays opts.ticks frames with the autopilot. Each frame is a
// sequence of a go-behaviortree tick budget, wrapped as a behaviour leaf,
// then one simulation step. A ticker drives the sequence and stops when
// the budget fails.
func simulate(ctx context.Context, opts options) (game.RunLog, error) {
	if err := opts.cfg.Validate(); err != nil {
		return game.RunLog{}, err
	}
	level, err := game.LoadLevel(opts.gmap, opts.cfg, opts.logger)
	if err != nil {
		return game.RunLog{}, err
	}
	defer level.Close()
	pilot := game.NewAutopilot(level)
	dt := opts.cfg.FrameStep()
	run := game.NewRunLog(opts.mapName, true)

	budget := bt.New(func([]bt.Node) (bt.Status, error) {
		if level.Score().Ticks >= opts.ticks {
			return bt.Failure, nil
		}
		return bt.Success, nil
	})
	step := behaviour.Func("step", func(dt float64, _ behaviour.State) behaviour.State {
		for _, ev := range level.Step(dt, pilot.Next(dt)) {
			opts.logger.Debug("event", "tick", level.Score().Ticks, "event", ev.String())
		}
		return behaviour.Success
	})
	frame := behaviour.NewSequence("frame", behaviour.Wrap("budget", budget, opts.logger), step)

	period := fastTick
	if opts.realtime {
		period = time.Second / time.Duration(opts.cfg.FPS)
	}
	ticker := bt.NewTickerStopOnFailure(ctx, period, behaviour.Adapt(frame, dt))
	select {
	case <-ticker.Done():
	case <-ctx.Done():
		ticker.Stop()
		<-ticker.Done()
	}
	run.Record(level)
	if err := ticker.Err(); err != nil {
		return run, fmt.Errorf("simulation: %w", err)
	}
	return run, nil
}
