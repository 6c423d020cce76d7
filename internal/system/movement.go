package system

import (
	"math"

	"goatkeeper/internal/component"
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/gamemap"
	"goatkeeper/internal/vecmath"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // full step taken
	MoveSlid                      // one axis blocked, the other taken
	MoveBlocked                   // no movement possible
)

// TryMove steps from pos by delta on the grid. Each horizontal axis is
// tried separately so bodies slide along walls. A nil grid never blocks.
func TryMove(gmap *gamemap.GameMap, pos, delta vecmath.Vec3) (vecmath.Vec3, MoveResult) {
	next := pos.Add(delta)
	if walkableAt(gmap, next) {
		return next, MoveOK
	}
	if delta.X != 0 {
		if p := pos.Add(vecmath.Vec3{X: delta.X, Y: delta.Y}); walkableAt(gmap, p) {
			return p, MoveSlid
		}
	}
	if delta.Z != 0 {
		if p := pos.Add(vecmath.Vec3{Y: delta.Y, Z: delta.Z}); walkableAt(gmap, p) {
			return p, MoveSlid
		}
	}
	return pos, MoveBlocked
}

func walkableAt(gmap *gamemap.GameMap, p vecmath.Vec3) bool {
	if gmap == nil {
		return true
	}
	x, y, ok := gmap.WorldToCell(p)
	return ok && gmap.IsWalkable(x, y)
}

// Integrate advances every dynamic body by dt with semi-implicit Euler:
// forces change velocity, damping bleeds it, velocity moves the transform
// through TryMove. Velocity on a blocked axis is zeroed. Forces are
// cleared afterwards.
func Integrate(w *ecs.World, gmap *gamemap.GameMap, dt float64) {
	for _, id := range w.Query(component.CBody, component.CTransform) {
		body := w.Get(id, component.CBody).(*component.Body)
		tf := w.Get(id, component.CTransform).(*component.Transform)
		if body.Static() {
			body.ClearForces()
			continue
		}
		body.Velocity = body.Velocity.Add(body.Force.Scale(body.InverseMass * dt))
		if body.Damping > 0 {
			body.Velocity = body.Velocity.Scale(math.Pow(1-body.Damping, dt))
		}

		next, res := TryMove(gmap, tf.Pos, body.Velocity.Scale(dt))
		if res != MoveOK {
			moved := next.Sub(tf.Pos)
			if moved.X == 0 {
				body.Velocity.X = 0
			}
			if moved.Z == 0 {
				body.Velocity.Z = 0
			}
		}
		tf.Pos = next
		body.ClearForces()
	}
}
