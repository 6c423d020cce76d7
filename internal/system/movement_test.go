package system

import (
	"math"
	"testing"

	"goatkeeper/internal/component"
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/gamemap"
	"goatkeeper/internal/vecmath"
)

func setupMoveWorld() (*ecs.World, *gamemap.GameMap, ecs.EntityID) {
	w := ecs.NewWorld()
	gmap := gamemap.New(10, 10, 1)
	// Carve a small open area.
	for y := 1; y <= 8; y++ {
		for x := 1; x <= 8; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	id := w.CreateEntity()
	w.Add(id, component.NewTransform(vecmath.Vec3{X: 3, Z: 3}))
	w.Add(id, component.NewBody(1, 0))
	return w, gmap, id
}

func TestTryMove(t *testing.T) {
	_, gmap, _ := setupMoveWorld()
	cases := []struct {
		name  string
		from  vecmath.Vec3
		delta vecmath.Vec3
		want  vecmath.Vec3
		res   MoveResult
	}{
		{"open", vecmath.Vec3{X: 3, Z: 3}, vecmath.Vec3{X: 1}, vecmath.Vec3{X: 4, Z: 3}, MoveOK},
		{"into wall", vecmath.Vec3{X: 1, Z: 3}, vecmath.Vec3{X: -1}, vecmath.Vec3{X: 1, Z: 3}, MoveBlocked},
		{"slide along wall", vecmath.Vec3{X: 1, Z: 3}, vecmath.Vec3{X: -1, Z: 0.4}, vecmath.Vec3{X: 1, Z: 3.4}, MoveSlid},
		{"corner", vecmath.Vec3{X: 1, Z: 1}, vecmath.Vec3{X: -1, Z: -1}, vecmath.Vec3{X: 1, Z: 1}, MoveBlocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, res := TryMove(gmap, tc.from, tc.delta)
			if res != tc.res || !vecmath.ApproxEqual(got, tc.want, 1e-9) {
				t.Errorf("TryMove = %v,%v; want %v,%v", got, res, tc.want, tc.res)
			}
		})
	}
	if got, res := TryMove(nil, vecmath.Vec3{}, vecmath.Vec3{X: -50}); res != MoveOK || got.X != -50 {
		t.Errorf("nil grid should never block, got %v %v", got, res)
	}
}

func TestIntegrateMovesByVelocity(t *testing.T) {
	w, gmap, id := setupMoveWorld()
	body := w.Get(id, component.CBody).(*component.Body)
	body.SetLinearVelocity(vecmath.Vec3{X: 2})

	Integrate(w, gmap, 0.5)

	pos := w.Get(id, component.CTransform).(*component.Transform).Pos
	if !vecmath.ApproxEqual(pos, vecmath.Vec3{X: 4, Z: 3}, 1e-9) {
		t.Fatalf("position = %v; want (4,0,3)", pos)
	}
}

func TestIntegrateAppliesForceAndClears(t *testing.T) {
	w, gmap, id := setupMoveWorld()
	body := w.Get(id, component.CBody).(*component.Body)
	body.AddForce(vecmath.Vec3{Z: 4})

	Integrate(w, gmap, 0.25)

	if !vecmath.ApproxEqual(body.Velocity, vecmath.Vec3{Z: 1}, 1e-9) {
		t.Errorf("velocity = %v; want (0,0,1)", body.Velocity)
	}
	if !body.Force.IsZero() {
		t.Error("forces must be cleared after integration")
	}
}

func TestIntegrateDamping(t *testing.T) {
	w, gmap, id := setupMoveWorld()
	body := w.Get(id, component.CBody).(*component.Body)
	body.Damping = 0.6
	body.SetLinearVelocity(vecmath.Vec3{X: 1})

	Integrate(w, gmap, 1)

	if math.Abs(body.Velocity.X-0.4) > 1e-9 {
		t.Errorf("velocity after one second = %v; want 0.4", body.Velocity.X)
	}
}

func TestIntegrateStopsAtWalls(t *testing.T) {
	w, gmap, id := setupMoveWorld()
	body := w.Get(id, component.CBody).(*component.Body)
	tf := w.Get(id, component.CTransform).(*component.Transform)
	tf.Pos = vecmath.Vec3{X: 1, Z: 3}
	body.SetLinearVelocity(vecmath.Vec3{X: -4, Z: 1})

	Integrate(w, gmap, 0.25)

	if body.Velocity.X != 0 {
		t.Errorf("blocked axis velocity = %v; want 0", body.Velocity.X)
	}
	if body.Velocity.Z != 1 {
		t.Errorf("free axis velocity = %v; want 1", body.Velocity.Z)
	}
	if tf.Pos.X != 1 {
		t.Errorf("x = %v; should not enter the wall", tf.Pos.X)
	}
}

func TestIntegrateSkipsStaticBodies(t *testing.T) {
	w, gmap, id := setupMoveWorld()
	w.Add(id, component.NewBody(0, 0))
	body := w.Get(id, component.CBody).(*component.Body)
	body.AddForce(vecmath.Vec3{X: 100})

	Integrate(w, gmap, 1)

	if pos := w.Get(id, component.CTransform).(*component.Transform).Pos; pos.X != 3 {
		t.Errorf("static body moved to %v", pos)
	}
	if !body.Force.IsZero() {
		t.Error("static body forces must still be cleared")
	}
}
