package game

import (
	"goatkeeper/internal/behaviour"
	"goatkeeper/internal/vecmath"
)

// centreSnap is how close, as a fraction of a cell, the player must be to
// the centre of its current path cell before heading for the next one.
const centreSnap = 0.25

// Autopilot walks the player from the ball to a goal and back, forever.
// It is a behaviour tree:
//
//	selector
//	├── sequence deliver
//	│   ├── fetch ball
//	│   └── score
//	└── idle
type Autopilot struct {
	level *Level
	tree  *behaviour.Selector
	dir   vecmath.Vec3
}

// NewAutopilot builds the tree for l.
func NewAutopilot(l *Level) *Autopilot {
	a := &Autopilot{level: l}
	deliver := behaviour.NewSequence("deliver",
		behaviour.Func("fetch ball", a.fetch),
		behaviour.Func("score", a.score),
	)
	a.tree = behaviour.NewSelector("autopilot", deliver, behaviour.Func("idle", a.idle))
	return a
}

// Tree exposes the root node.
func (a *Autopilot) Tree() behaviour.Node { return a.tree }

// Next runs one frame of the tree and returns the direction the player
// should walk. A resolved tree restarts on the next call.
func (a *Autopilot) Next(dt float64) vecmath.Vec3 {
	if a.tree.State().Terminal() {
		a.tree.Reset()
	}
	a.dir = vecmath.Vec3{}
	a.tree.Execute(dt)
	return a.dir
}

func (a *Autopilot) fetch(_ float64, _ behaviour.State) behaviour.State {
	if a.level.Carrying() {
		return behaviour.Success
	}
	ball, ok := a.level.BallPosition()
	if !ok || !a.steer(ball) {
		return behaviour.Failure
	}
	return behaviour.Ongoing
}

func (a *Autopilot) score(_ float64, state behaviour.State) behaviour.State {
	if !a.level.Carrying() {
		if state == behaviour.Initialise {
			// Lost the ball between fetch and score.
			return behaviour.Failure
		}
		return behaviour.Success
	}
	goal, ok := a.nearestGoal()
	if !ok || !a.steer(goal) {
		return behaviour.Failure
	}
	return behaviour.Ongoing
}

func (a *Autopilot) idle(_ float64, _ behaviour.State) behaviour.State {
	a.dir = vecmath.Vec3{}
	return behaviour.Success
}

func (a *Autopilot) nearestGoal() (vecmath.Vec3, bool) {
	pos := a.level.PlayerPosition()
	var best vecmath.Vec3
	found := false
	for _, g := range a.level.GoalPositions() {
		if !found || vecmath.PlanarDistance(pos, g) < vecmath.PlanarDistance(pos, best) {
			best, found = g, true
		}
	}
	return best, found
}

// steer points a.dir along the grid path to target. It reports false when
// no path exists.
func (a *Autopilot) steer(target vecmath.Vec3) bool {
	pos := a.level.PlayerPosition()
	path, ok := a.level.Grid.FindPath(pos, target)
	if !ok {
		return false
	}
	next := target
	if len(path) > 1 {
		next = path[1]
		if vecmath.PlanarDistance(pos, path[0]) > centreSnap*a.level.Grid.NodeSize {
			next = path[0]
		}
	}
	a.dir = next.Sub(pos).Flat(0)
	return true
}
