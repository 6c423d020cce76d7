package agent

import (
	"fmt"

	"goatkeeper/internal/behaviour"
	"goatkeeper/internal/pushdown"
	"goatkeeper/internal/vecmath"
)

// actionContext is copied into each action: the waypoint it owns and a
// non-owning handle to the enemy it drives.
type actionContext struct {
	Target vecmath.Vec3
	Enemy  *Enemy
}

// InitialiseBehaviours builds the patrol loop over targets as the initial
// state and a tracking state as the reserve. An empty target list leaves
// the enemy without AI. Calling it again replaces the previous machine.
func (e *Enemy) InitialiseBehaviours(targets []vecmath.Vec3) {
	if e.machine != nil {
		e.machine.Close()
		e.machine, e.tracking = nil, nil
	}
	if len(targets) == 0 {
		e.log.Info("patrol targets missing, enemy has no AI")
		return
	}
	patrol := &patrolState{tree: e.newPatrolTree(targets)}
	e.tracking = &trackingState{tree: e.newTrackingTree(), enemy: e}
	e.machine = pushdown.NewMachine(patrol, pushdown.WithLogger(e.log))
	e.machine.AddReserveState(e.tracking)
	e.log.Debug("behaviours initialised", "targets", len(targets))
}

func (e *Enemy) newPatrolTree(targets []vecmath.Vec3) *behaviour.Sequence {
	seq := behaviour.NewSequence("patrolling sequence")
	for i, t := range targets {
		name := fmt.Sprintf("patrol %d", i)
		seq.AddChild(behaviour.NewAction(name, actionContext{Target: t, Enemy: e}, patrolStep))
	}
	return seq
}

func (e *Enemy) newTrackingTree() behaviour.Node {
	return behaviour.NewAction("tracking player", actionContext{Enemy: e}, trackStep)
}

func patrolStep(dt float64, ctx actionContext, state behaviour.State) behaviour.State {
	e := ctx.Enemy
	if e.TrackingPlayer() {
		return behaviour.Failure
	}
	switch state {
	case behaviour.Initialise:
		return behaviour.Ongoing
	case behaviour.Ongoing:
		if last, ok := e.LastArrived(); ok && last == ctx.Target {
			return behaviour.Success
		}
		if !e.MoveToTarget(dt, ctx.Target) {
			return behaviour.Success
		}
	}
	return state
}

func trackStep(dt float64, ctx actionContext, state behaviour.State) behaviour.State {
	e := ctx.Enemy
	switch state {
	case behaviour.Initialise:
		return behaviour.Ongoing
	case behaviour.Ongoing:
		if !e.TrackingPlayer() {
			return behaviour.Failure
		}
		if !e.MoveToTarget(dt, e.PlayerPosition()) {
			e.LostPlayer()
			return behaviour.Success
		}
	}
	return state
}

// patrolState loops its sequence forever and asks for the reserve state
// when the sequence fails.
type patrolState struct {
	pushdown.BaseState
	tree behaviour.Node
}

func (s *patrolState) OnUpdate(dt float64) (pushdown.Result, pushdown.State) {
	switch s.tree.Execute(dt) {
	case behaviour.Failure:
		return pushdown.Push, nil
	case behaviour.Success:
		s.tree.Reset()
	}
	return pushdown.NoChange, nil
}

func (s *patrolState) OnSleep() { s.tree.Reset() }

// trackingState pops itself as soon as its action resolves.
type trackingState struct {
	tree  behaviour.Node
	enemy *Enemy
}

func (s *trackingState) OnAwake() {
	s.enemy.log.Info("start tracking player", "state", "tracking")
}

func (s *trackingState) OnSleep() {
	s.tree.Reset()
	s.enemy.log.Info("stop tracking player", "state", "tracking")
}

func (s *trackingState) OnUpdate(dt float64) (pushdown.Result, pushdown.State) {
	if s.tree.Execute(dt) != behaviour.Ongoing {
		return pushdown.Pop, nil
	}
	return pushdown.NoChange, nil
}

// UpdateAction advances the pushdown machine by one frame and reports
// whether the enemy still has running AI.
func (e *Enemy) UpdateAction(dt float64) bool {
	if e.machine == nil {
		return false
	}
	return e.machine.Update(dt)
}

// Mode reports the active behaviour.
func (e *Enemy) Mode() Mode {
	if e.machine == nil {
		return ModeInert
	}
	switch e.machine.Status() {
	case pushdown.NotStarted:
		return ModeIdle
	case pushdown.Halted:
		return ModeHalted
	}
	if e.machine.Active() == pushdown.State(e.tracking) {
		return ModeTracking
	}
	return ModePatrolling
}

// Close releases the enemy's machine. The enemy is inert afterwards.
func (e *Enemy) Close() {
	if e.machine != nil {
		e.machine.Close()
	}
	e.machine, e.tracking = nil, nil
}
