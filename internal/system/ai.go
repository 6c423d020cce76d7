package system

import (
	"goatkeeper/internal/agent"
	"goatkeeper/internal/component"
	"goatkeeper/internal/ecs"
)

// EnemyStatus is one line of the enemy roster.
type EnemyStatus struct {
	ID       ecs.EntityID
	Name     string
	Mode     agent.Mode
	Tracking bool
}

// UpdateEnemies runs one AI tick for every enemy controller in entity
// order: sight test against the player, tracking decision, then one
// pushdown update. Sight rays ignore the enemy itself and the player.
// Extra entities in see are also transparent to sight rays. Without a
// positioned player every enemy senses nothing. Returns the number of
// enemies tracking the player after the tick.
func UpdateEnemies(w *ecs.World, player ecs.EntityID, dt float64, see ...ecs.EntityID) int {
	ppos := w.Get(player, component.CTransform)
	tracking := 0
	for _, id := range w.Query(component.CAI, component.CTransform) {
		e := w.Get(id, component.CAI).(component.AI).Enemy
		if e == nil {
			continue
		}
		if ppos != nil {
			p := ppos.(*component.Transform).Pos
			e.Sense(dt, p, e.Visible(p, LineOfSight(w, append([]ecs.EntityID{id, player}, see...)...)))
		} else {
			e.Sense(dt, e.PlayerPosition(), false)
		}
		e.UpdateAction(dt)
		if e.TrackingPlayer() {
			tracking++
		}
	}
	return tracking
}

// EnemyRoster lists every enemy controller in entity order.
func EnemyRoster(w *ecs.World) []EnemyStatus {
	var out []EnemyStatus
	for _, id := range w.Query(component.CAI) {
		e := w.Get(id, component.CAI).(component.AI).Enemy
		if e == nil {
			continue
		}
		out = append(out, EnemyStatus{ID: id, Name: e.Name(), Mode: e.Mode(), Tracking: e.TrackingPlayer()})
	}
	return out
}

// Touching reports whether the colliders of a and b overlap, treating
// both as spheres bounding their volumes.
func Touching(w *ecs.World, a, b ecs.EntityID) bool {
	ta, ca, ok := volume(w, a)
	if !ok {
		return false
	}
	tb, cb, ok := volume(w, b)
	if !ok {
		return false
	}
	r := boundingRadius(ca) + boundingRadius(cb)
	return ta.Pos.Sub(tb.Pos).LengthSq() <= r*r
}

func volume(w *ecs.World, id ecs.EntityID) (*component.Transform, component.Collider, bool) {
	tc := w.Get(id, component.CTransform)
	cc := w.Get(id, component.CCollider)
	if tc == nil || cc == nil {
		return nil, component.Collider{}, false
	}
	return tc.(*component.Transform), cc.(component.Collider), true
}

func boundingRadius(c component.Collider) float64 {
	if c.Shape == component.ShapeSphere {
		return c.Radius
	}
	return c.HalfSize.Length()
}
