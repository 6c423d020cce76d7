package game

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"goatkeeper/assets"
	"goatkeeper/internal/agent"
	"goatkeeper/internal/component"
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/factory"
	"goatkeeper/internal/gamemap"
	"goatkeeper/internal/system"
	"goatkeeper/internal/vecmath"
)

// ErrNoPlayer is returned by LoadLevel for a map without a player cell.
var ErrNoPlayer = errors.New("map has no player start")

// Event is something that happened during a Step.
type Event uint8

const (
	EventPickup Event = iota + 1 // player picked up the ball
	EventGoal                    // ball delivered to a goal
	EventCaught                  // an enemy touched the player
)

func (e Event) String() string {
	switch e {
	case EventPickup:
		return "pickup"
	case EventGoal:
		return "goal"
	case EventCaught:
		return "caught"
	default:
		return "unknown"
	}
}

// Score counts what happened on a level so far.
type Score struct {
	Ticks   int
	Goals   int
	Caught  int
	Pickups int
}

type enemyRef struct {
	id    ecs.EntityID
	enemy *agent.Enemy
}

// Level is one loaded map with its entities.
type Level struct {
	World  *ecs.World
	Grid   *gamemap.GameMap
	Player ecs.EntityID
	Ball   ecs.EntityID // NilEntity when the map has no ball
	Goals  []ecs.EntityID

	cfg      Config
	log      *slog.Logger
	enemies  []enemyRef
	spawn    vecmath.Vec3
	ballHome vecmath.Vec3
	carrying bool
	score    Score
}

// LoadMap parses the level file at path, or the built-in map when path is
// empty. name identifies the map in run logs.
func LoadMap(path string) (gmap *gamemap.GameMap, name string, err error) {
	if path == "" {
		gmap, err = gamemap.ParseString(assets.DefaultMap)
		return gmap, "default", err
	}
	gmap, err = gamemap.Load(path)
	return gmap, path, err
}

// LoadLevel creates the entities a map describes. Patrol groups
// 0..PatrolGroups-1 go to enemies in map order; groups other than 0 are
// walked in reverse. An enemy without a group gets no AI.
func LoadLevel(gmap *gamemap.GameMap, cfg Config, logger *slog.Logger) (*Level, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Level{
		World: ecs.NewWorld(),
		Grid:  gmap,
		Ball:  ecs.NilEntity,
		cfg:   cfg,
		log:   logger,
	}
	size := gmap.NodeSize
	groups := make([][]vecmath.Vec3, cfg.PatrolGroups)
	var enemyCells []vecmath.Vec3
	havePlayer := false

	gmap.Each(func(x, y int, t gamemap.Tile) {
		pos := gmap.CellToWorld(x, y)
		switch t.Kind {
		case gamemap.TileWall:
			factory.NewWall(l.World, pos, size)
		case gamemap.TilePlayer:
			if havePlayer {
				logger.Warn("extra player start ignored", "x", x, "y", y)
				return
			}
			havePlayer = true
			l.spawn = pos
		case gamemap.TileEnemy:
			enemyCells = append(enemyCells, pos)
		case gamemap.TileBall:
			if l.Ball != ecs.NilEntity {
				logger.Warn("extra ball ignored", "x", x, "y", y)
				return
			}
			l.ballHome = pos
			l.Ball = factory.NewBall(l.World, pos, size)
		case gamemap.TileGoal:
			l.Goals = append(l.Goals, factory.NewGoal(l.World, pos, size))
		case gamemap.TileDecoration:
			factory.NewDecoration(l.World, pos)
		case gamemap.TilePatrol:
			if t.Patrol < len(groups) {
				groups[t.Patrol] = append(groups[t.Patrol], pos)
			}
		}
	})
	if !havePlayer {
		return nil, ErrNoPlayer
	}
	l.Player = factory.NewPlayer(l.World, l.spawn, size)

	for i, pos := range enemyCells {
		name := fmt.Sprintf("goat-%d", i)
		id, e := factory.NewEnemy(l.World, pos, size, factory.EnemySpec{
			Name:   name,
			Config: cfg.Agent,
			Grid:   gmap,
			Logger: logger,
		})
		var targets []vecmath.Vec3
		if i < len(groups) {
			targets = slices.Clone(groups[i])
			if i != 0 {
				slices.Reverse(targets)
			}
		}
		if len(targets) == 0 {
			logger.Info("no patrol group for enemy", "enemy", name, "group", i)
		}
		e.InitialiseBehaviours(targets)
		l.enemies = append(l.enemies, enemyRef{id: id, enemy: e})
	}
	logger.Debug("level loaded",
		"width", gmap.Width, "height", gmap.Height,
		"enemies", len(l.enemies), "goals", len(l.Goals))
	return l, nil
}

// Enemies returns the enemy controllers in map order.
func (l *Level) Enemies() []*agent.Enemy {
	out := make([]*agent.Enemy, len(l.enemies))
	for i, r := range l.enemies {
		out[i] = r.enemy
	}
	return out
}

// Score returns the running totals.
func (l *Level) Score() Score { return l.score }

// Carrying reports whether the player holds the ball.
func (l *Level) Carrying() bool { return l.carrying }

// PlayerPosition returns the player's world position.
func (l *Level) PlayerPosition() vecmath.Vec3 { return l.transform(l.Player).Pos }

// BallPosition returns the ball's world position; ok is false without a ball.
func (l *Level) BallPosition() (vecmath.Vec3, bool) {
	if l.Ball == ecs.NilEntity {
		return vecmath.Vec3{}, false
	}
	return l.transform(l.Ball).Pos, true
}

// GoalPositions lists the goal centres.
func (l *Level) GoalPositions() []vecmath.Vec3 {
	out := make([]vecmath.Vec3, len(l.Goals))
	for i, id := range l.Goals {
		out[i] = l.transform(id).Pos
	}
	return out
}

// Step advances the level by dt with the player walking along dir (any
// length, zero to stand still). Order: player control, enemy AI,
// integration, then pickup, goal and capture rules.
func (l *Level) Step(dt float64, dir vecmath.Vec3) []Event {
	l.score.Ticks++
	tf := l.transform(l.Player)
	body := l.World.Get(l.Player, component.CBody).(*component.Body)
	dir = dir.Flat(0)
	if dir.IsZero() {
		body.SetLinearVelocity(vecmath.Vec3{})
	} else {
		body.SetLinearVelocity(dir.Normalised().Scale(l.cfg.PlayerSpeed))
		tf.SetOrientation(vecmath.LookAt(tf.Pos, tf.Pos.Add(dir), vecmath.Up))
	}

	var see []ecs.EntityID
	if l.carrying {
		l.carryBall()
		see = append(see, l.Ball)
	}
	system.UpdateEnemies(l.World, l.Player, dt, see...)
	system.Integrate(l.World, l.Grid, dt)
	if l.carrying {
		l.carryBall()
	}
	return l.applyRules()
}

func (l *Level) applyRules() []Event {
	var events []Event
	for _, r := range l.enemies {
		if system.Touching(l.World, r.id, l.Player) {
			l.score.Caught++
			l.log.Info("player caught", "enemy", r.enemy.Name())
			l.resetPlayer()
			l.resetBall()
			return append(events, EventCaught)
		}
	}
	if l.Ball == ecs.NilEntity {
		return events
	}
	if !l.carrying && system.Touching(l.World, l.Player, l.Ball) {
		l.carrying = true
		l.score.Pickups++
		l.carryBall()
		events = append(events, EventPickup)
	}
	if l.carrying {
		for _, g := range l.Goals {
			if system.Touching(l.World, l.Ball, g) {
				l.score.Goals++
				l.log.Info("goal scored", "goals", l.score.Goals)
				l.resetBall()
				events = append(events, EventGoal)
				break
			}
		}
	}
	return events
}

func (l *Level) carryBall() {
	l.transform(l.Ball).SetPosition(l.PlayerPosition())
	l.World.Get(l.Ball, component.CBody).(*component.Body).SetLinearVelocity(vecmath.Vec3{})
}

func (l *Level) resetPlayer() {
	l.transform(l.Player).SetPosition(l.spawn)
	l.World.Get(l.Player, component.CBody).(*component.Body).SetLinearVelocity(vecmath.Vec3{})
}

func (l *Level) resetBall() {
	l.carrying = false
	if l.Ball == ecs.NilEntity {
		return
	}
	l.transform(l.Ball).SetPosition(l.ballHome)
	l.World.Get(l.Ball, component.CBody).(*component.Body).SetLinearVelocity(vecmath.Vec3{})
}

func (l *Level) transform(id ecs.EntityID) *component.Transform {
	return l.World.Get(id, component.CTransform).(*component.Transform)
}

// SightCones returns each enemy's visible cells, in map order.
func (l *Level) SightCones() []system.Visibility {
	out := make([]system.Visibility, 0, len(l.enemies))
	for _, r := range l.enemies {
		out = append(out, system.SightCone(l.Grid, r.enemy, l.transform(r.id).Pos))
	}
	return out
}

// Close releases every enemy controller.
func (l *Level) Close() {
	for _, r := range l.enemies {
		r.enemy.Close()
	}
	l.enemies = nil
}
