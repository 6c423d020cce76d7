package system

import (
	"math"
	"testing"

	"goatkeeper/internal/component"
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/factory"
	"goatkeeper/internal/vecmath"
)

func addSphere(w *ecs.World, pos vecmath.Vec3, r float64) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.NewTransform(pos))
	w.Add(id, component.Sphere(r))
	return id
}

func TestRaycastHitsClosest(t *testing.T) {
	w := ecs.NewWorld()
	far := addSphere(w, vecmath.Vec3{Z: -10}, 1)
	near := factory.NewWall(w, vecmath.Vec3{Z: -5}, 2)

	hit, ok := Raycast(w, Ray{Dir: vecmath.Vec3{Z: -3}}, 100)
	if !ok || hit.Entity != near {
		t.Fatalf("hit = %+v, %v; want wall %v", hit, ok, near)
	}
	if math.Abs(hit.Dist-4) > 1e-9 {
		t.Errorf("dist = %v; want 4 (front face of the wall)", hit.Dist)
	}

	hit, ok = Raycast(w, Ray{Dir: vecmath.Vec3{Z: -1}}, 100, near)
	if !ok || hit.Entity != far {
		t.Fatalf("ignoring the wall should hit the sphere, got %+v", hit)
	}
	if math.Abs(hit.Dist-9) > 1e-9 {
		t.Errorf("dist = %v; want 9", hit.Dist)
	}
	if !vecmath.ApproxEqual(hit.Point, vecmath.Vec3{Z: -9}, 1e-9) {
		t.Errorf("point = %v", hit.Point)
	}
}

func TestRaycastMisses(t *testing.T) {
	w := ecs.NewWorld()
	addSphere(w, vecmath.Vec3{Z: -10}, 1)
	cases := []struct {
		name    string
		ray     Ray
		maxDist float64
	}{
		{"pointing away", Ray{Dir: vecmath.Vec3{Z: 1}}, 100},
		{"passes beside", Ray{Origin: vecmath.Vec3{X: 2}, Dir: vecmath.Vec3{Z: -1}}, 100},
		{"too short", Ray{Dir: vecmath.Vec3{Z: -1}}, 8},
		{"zero direction", Ray{}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if hit, ok := Raycast(w, tc.ray, tc.maxDist); ok {
				t.Errorf("unexpected hit %+v", hit)
			}
		})
	}
}

func TestRaycastFromInside(t *testing.T) {
	w := ecs.NewWorld()
	id := factory.NewWall(w, vecmath.Vec3{}, 2)
	hit, ok := Raycast(w, Ray{Dir: vecmath.Vec3{X: 1}}, 10)
	if !ok || hit.Entity != id || hit.Dist != 0 {
		t.Errorf("ray starting inside a box should hit at 0, got %+v %v", hit, ok)
	}
}

func TestLineOfSight(t *testing.T) {
	w := ecs.NewWorld()
	from := addSphere(w, vecmath.Vec3{}, 0.5)
	to := addSphere(w, vecmath.Vec3{X: 10}, 0.5)
	los := LineOfSight(w, from, to)
	if los.Blocked(vecmath.Vec3{}, vecmath.Vec3{X: 10}) {
		t.Fatal("nothing between the endpoints")
	}

	factory.NewWall(w, vecmath.Vec3{X: 5}, 1)
	if !los.Blocked(vecmath.Vec3{}, vecmath.Vec3{X: 10}) {
		t.Error("wall between the endpoints should block")
	}
	if los.Blocked(vecmath.Vec3{}, vecmath.Vec3{X: 3}) {
		t.Error("wall beyond the segment should not block")
	}
}
