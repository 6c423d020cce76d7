// Package agent binds a pushdown machine and behaviour trees to one
// enemy: sensing the player, following grid paths and steering a body.
package agent

import (
	"log/slog"
	"math"

	"goatkeeper/internal/pushdown"
	"goatkeeper/internal/vecmath"
)

// Mode summarises what an enemy is doing, for HUDs and logs.
type Mode string

const (
	ModeInert      Mode = "inert"
	ModeIdle       Mode = "idle"
	ModePatrolling Mode = "patrolling"
	ModeTracking   Mode = "tracking"
	ModeHalted     Mode = "halted"
)

// Stats counts controller events since construction.
type Stats struct {
	TrackingStarts int
	PlayerLosses   int
	Arrivals       int
}

// Option configures an Enemy.
type Option func(*Enemy)

// WithPathfinder attaches the level's navigation grid. Without one every
// pathfinding request fails softly.
func WithPathfinder(p Pathfinder) Option { return func(e *Enemy) { e.grid = p } }

// WithTinter attaches the visual that tracking recolours.
func WithTinter(t Tinter) Option { return func(e *Enemy) { e.tint = t } }

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Enemy) {
		if l != nil {
			e.log = l
		}
	}
}

// Enemy is the per-agent AI record. It owns its pushdown machine and
// borrows its transform, body and pathfinder.
type Enemy struct {
	name      string
	cfg       Config
	transform Transform
	body      Body
	grid      Pathfinder
	tint      Tinter
	log       *slog.Logger

	machine  *pushdown.Machine
	tracking *trackingState

	trackingPlayer bool
	playerPos      vecmath.Vec3
	lostFor        float64

	moveTarget  vecmath.Vec3
	lastArrived vecmath.Vec3
	hasArrived  bool
	speed       float64

	stats Stats
}

// New creates an enemy with no behaviours. Call InitialiseBehaviours to
// give it AI.
func New(name string, t Transform, b Body, cfg Config, opts ...Option) *Enemy {
	e := &Enemy{
		name:      name,
		cfg:       cfg,
		transform: t,
		body:      b,
		log:       slog.Default(),
		speed:     cfg.PatrolSpeed,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("enemy", name)
	e.setColour(e.cfg.DefaultColour)
	return e
}

func (e *Enemy) Name() string { return e.name }

func (e *Enemy) Config() Config { return e.cfg }

// Speed is the current steering speed.
func (e *Enemy) Speed() float64 { return e.speed }

func (e *Enemy) Stats() Stats { return e.stats }

// Machine returns the enemy's pushdown machine, or nil when it has no AI.
func (e *Enemy) Machine() *pushdown.Machine { return e.machine }

// PlayerPosition is the last tracked player position. It is the zero
// vector while not tracking.
func (e *Enemy) PlayerPosition() vecmath.Vec3 { return e.playerPos }

// TrackingPlayer reports whether the enemy is chasing the player.
func (e *Enemy) TrackingPlayer() bool { return e.trackingPlayer }

// LastArrived returns the most recent target MoveToTarget reached.
func (e *Enemy) LastArrived() (vecmath.Vec3, bool) { return e.lastArrived, e.hasArrived }

// MoveTarget is the waypoint steering is currently heading for.
func (e *Enemy) MoveTarget() vecmath.Vec3 { return e.moveTarget }

// StartTrackingPlayer begins or refreshes a chase towards p.
func (e *Enemy) StartTrackingPlayer(p vecmath.Vec3) {
	if !e.trackingPlayer {
		e.stats.TrackingStarts++
	}
	e.trackingPlayer = true
	e.playerPos = p
	e.speed = e.cfg.TrackingSpeed
	e.lostFor = e.cfg.LostPlayerTime
	e.setColour(e.cfg.TrackingColour)
}

// UpdateTrackingPlayer moves the chase target without touching speed,
// colour or the grace timer.
func (e *Enemy) UpdateTrackingPlayer(p vecmath.Vec3) { e.playerPos = p }

// LostPlayer ends a chase and restores patrol speed and colour.
func (e *Enemy) LostPlayer() {
	if e.trackingPlayer {
		e.stats.PlayerLosses++
	}
	e.trackingPlayer = false
	e.playerPos = vecmath.Vec3{}
	e.lostFor = 0
	e.speed = e.cfg.PatrolSpeed
	e.setColour(e.cfg.DefaultColour)
}

// UpdateLostPlayerTime runs down the grace timer, never below zero.
func (e *Enemy) UpdateLostPlayerTime(dt float64) {
	e.lostFor = math.Max(0, e.lostFor-dt)
}

// LostPlayerTimeLeft is the remaining grace before an unseen player is
// dropped.
func (e *Enemy) LostPlayerTimeLeft() float64 { return e.lostFor }

// Sense applies one tick of visibility to the tracking state. A visible
// player starts or refreshes tracking. An unseen player ends tracking,
// once the grace time has run out.
func (e *Enemy) Sense(dt float64, player vecmath.Vec3, visible bool) {
	if visible {
		e.StartTrackingPlayer(player)
		return
	}
	if !e.trackingPlayer {
		return
	}
	if e.cfg.LostPlayerTime > 0 {
		e.UpdateLostPlayerTime(dt)
		if e.lostFor > 0 {
			return
		}
	}
	e.LostPlayer()
}

// CanSee reports whether player lies inside the sight cone: within
// SightRadius and at most SightHalfAngle off the facing direction. A
// player standing on the enemy is visible.
func (e *Enemy) CanSee(player vecmath.Vec3) bool {
	pos := e.transform.Position()
	toPlayer := player.Sub(pos)
	dist := toPlayer.Length()
	if dist > e.cfg.SightRadius {
		return false
	}
	if dist == 0 {
		return true
	}
	forward := e.transform.Orientation().Rotate(vecmath.Forward)
	return vecmath.AngleBetween(forward, toPlayer) <= e.cfg.SightHalfAngle
}

// CanSeeThrough is CanSee with an occlusion test. A nil los never blocks.
func (e *Enemy) CanSeeThrough(player vecmath.Vec3, los LineOfSight) bool {
	if !e.CanSee(player) {
		return false
	}
	return los == nil || !los.Blocked(e.transform.Position(), player)
}

// Visible applies the configured visibility variant.
func (e *Enemy) Visible(player vecmath.Vec3, los LineOfSight) bool {
	if e.cfg.Occlusion {
		return e.CanSeeThrough(player, los)
	}
	return e.CanSee(player)
}

// MoveToTarget steers one frame towards target and reports whether the
// enemy is still travelling. It returns false exactly once, on the call
// that finds the planar distance within ArriveOffset. Later calls with the
// same target return true without steering until a different target has
// been reached.
func (e *Enemy) MoveToTarget(dt float64, target vecmath.Vec3) bool {
	pos := e.transform.Position()
	flat := target.Flat(pos.Y)
	if vecmath.PlanarDistance(pos, flat) <= e.cfg.ArriveOffset {
		if e.hasArrived && e.lastArrived == target {
			return true
		}
		e.stats.Arrivals++
		e.lastArrived = target
		e.hasArrived = true
		if e.cfg.Movement == MoveVelocity {
			e.halt()
		}
		return false
	}
	if e.PathFinding(flat) {
		e.Move(dt)
	}
	return true
}

// PathFinding selects the next waypoint towards target: the first one
// past the start cell that is further than WaypointSeparation away, or
// target itself when none is. It reports false without a pathfinder or
// without a route.
func (e *Enemy) PathFinding(target vecmath.Vec3) bool {
	if e.grid == nil {
		return false
	}
	pos := e.transform.Position()
	path, ok := e.grid.FindPath(pos, target)
	if !ok {
		return false
	}
	for _, wp := range path[min(1, len(path)):] {
		wp = wp.Flat(pos.Y)
		if vecmath.PlanarDistance(pos, wp) > e.cfg.WaypointSeparation {
			e.moveTarget = wp
			return true
		}
	}
	e.moveTarget = target.Flat(pos.Y)
	return true
}

// Move faces the current waypoint and drives the body towards it.
func (e *Enemy) Move(dt float64) {
	pos := e.transform.Position()
	dir := e.moveTarget.Sub(pos).Flat(0)
	dist := dir.Length()
	if dist == 0 {
		return
	}
	e.transform.SetOrientation(vecmath.LookAt(pos, e.moveTarget.Flat(pos.Y), vecmath.Up))
	dir = dir.Scale(1 / dist)

	switch e.cfg.Movement {
	case MoveImpulse:
		e.body.ApplyLinearImpulse(dir.Scale(e.speed))
	default:
		speed := e.speed
		if dt > 0 && speed*dt > dist {
			speed = dist / dt
		}
		v := dir.Scale(speed)
		v.Y = e.body.LinearVelocity().Y
		e.body.SetLinearVelocity(v)
	}
}

func (e *Enemy) halt() {
	v := e.body.LinearVelocity()
	e.body.SetLinearVelocity(vecmath.Vec3{Y: v.Y})
}

func (e *Enemy) setColour(name string) {
	if e.tint != nil && name != "" {
		e.tint.SetColour(colour(name))
	}
}
