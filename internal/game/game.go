package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"goatkeeper/internal/gamemap"
	"goatkeeper/internal/pushdown"
	"goatkeeper/internal/render"
	"goatkeeper/internal/system"
	"goatkeeper/internal/vecmath"

	"github.com/gdamore/tcell/v2"
)

// moveHold is how long one movement key press keeps the player walking.
// Terminals report presses, not held keys; key repeat extends it.
const moveHold = 0.2

// maxMessages caps the message log.
const maxMessages = 50

// Option configures a Game.
type Option func(*Game)

// WithLogger routes game and agent diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithAutopilot starts every level with the autopilot driving.
func WithAutopilot(on bool) Option { return func(g *Game) { g.autopilot = on } }

// WithMapName sets the map name written to run logs.
func WithMapName(name string) Option { return func(g *Game) { g.mapName = name } }

// WithRunLogSink replaces where finished runs are written. nil drops them.
func WithRunLogSink(fn func(RunLog) error) Option { return func(g *Game) { g.sink = fn } }

// Game is the top-level orchestrator for one terminal.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	gmap     *gamemap.GameMap
	cfg      Config
	log      *slog.Logger
	mapName  string
	sink     func(RunLog) error

	machine   *pushdown.Machine
	level     *Level
	pilot     *Autopilot
	run       RunLog
	autopilot bool
	showSight bool

	input    []Action
	moveDir  vecmath.Vec3
	moveLeft float64
	messages []string
}

// New creates a Game drawing on an initialised screen. The map is shared
// read-only; every play starts from a fresh level built from it.
func New(screen tcell.Screen, gmap *gamemap.GameMap, cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tiles, _ := render.LookupTileSet(cfg.Theme)
	g := &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen, tiles),
		gmap:     gmap,
		cfg:      cfg,
		log:      slog.Default(),
		mapName:  "default",
		sink:     SaveRunLog,
	}
	for _, opt := range opts {
		opt(g)
	}
	// Fail now rather than on the intro screen.
	probe, err := LoadLevel(gmap, cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	probe.Close()
	g.machine = pushdown.NewMachine(&introScreen{g: g}, pushdown.WithLogger(g.log))
	return g, nil
}

// Run drives the frame loop until the player quits or ctx is cancelled.
// Terminal events are read on a separate goroutine and handed over on a
// channel; all game state is touched by this goroutine only. The screen
// is finalised on return.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Fini()
	defer g.Close()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.FPS))
	defer ticker.Stop()
	g.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			g.HandleEvent(ev)
		case <-ticker.C:
			if !g.Frame() {
				return nil
			}
		}
	}
}

// HandleEvent queues a terminal event for the next frame.
func (g *Game) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventKey:
		if a := keyToAction(ev); a != ActionNone {
			g.input = append(g.input, a)
		}
	}
}

// Frame advances the screen machine by one frame and reports whether the
// game is still running.
func (g *Game) Frame() bool {
	running := g.machine.Update(g.cfg.FrameStep())
	g.input = g.input[:0]
	if !running && g.level != nil {
		g.endLevel()
	}
	return running
}

// Level returns the level being played, or nil outside play.
func (g *Game) Level() *Level { return g.level }

// Close ends any level in progress and releases the screen machine.
func (g *Game) Close() {
	if g.level != nil {
		g.endLevel()
	}
	g.machine.Close()
}

func (g *Game) startLevel() error {
	l, err := LoadLevel(g.gmap, g.cfg, g.log)
	if err != nil {
		return err
	}
	g.level = l
	g.pilot = NewAutopilot(l)
	g.run = NewRunLog(g.mapName, g.autopilot)
	g.messages = nil
	g.moveLeft = 0
	g.addMessage("Find the ball and carry it to the goal.")
	return nil
}

func (g *Game) endLevel() {
	g.run.Record(g.level)
	if g.sink != nil {
		if err := g.sink(g.run); err != nil {
			g.log.Warn("run log not saved", "error", err)
		}
	}
	g.log.Info("run finished", "run", g.run.ID, "ticks", g.run.Ticks, "goals", g.run.Goals, "caught", g.run.Caught)
	g.level.Close()
	g.level, g.pilot = nil, nil
}

func (g *Game) step(dt float64) {
	var dir vecmath.Vec3
	switch {
	case g.autopilot:
		dir = g.pilot.Next(dt)
	case g.moveLeft > 0:
		dir = g.moveDir
		g.moveLeft -= dt
	}
	for _, ev := range g.level.Step(dt, dir) {
		switch ev {
		case EventPickup:
			g.addMessage("You pick up the ball.")
		case EventGoal:
			g.addMessage(fmt.Sprintf("Goal! %d scored.", g.level.Score().Goals))
		case EventCaught:
			g.addMessage("A goat caught you. Back to the start.")
		}
	}
}

func (g *Game) draw(paused bool) {
	if cx, cy, ok := g.gmap.WorldToCell(g.level.PlayerPosition()); ok {
		g.renderer.CenterOn(cx, cy)
	}
	frame := render.Frame{World: g.level.World, Grid: g.gmap}
	if g.showSight {
		frame.Sight = g.level.SightCones()
	}
	g.renderer.DrawFrame(frame)
	s := g.level.Score()
	g.renderer.DrawHUD(render.HUD{
		Tick:      s.Ticks,
		Goals:     s.Goals,
		Caught:    s.Caught,
		Autopilot: g.autopilot,
		Paused:    paused,
		Enemies:   system.EnemyRoster(g.level.World),
		Messages:  g.messages,
	})
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}
