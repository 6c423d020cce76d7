package system

import (
	"math"
	"slices"

	"goatkeeper/internal/agent"
	"goatkeeper/internal/component"
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/vecmath"
)

// Ray is a half-line from Origin along Dir. Dir need not be normalised.
type Ray struct {
	Origin, Dir vecmath.Vec3
}

// RayHit is the nearest collider a ray met.
type RayHit struct {
	Entity ecs.EntityID
	Dist   float64
	Point  vecmath.Vec3
}

// Raycast returns the closest collider hit within maxDist, skipping the
// ignored entities. Ties go to the lower entity ID.
func Raycast(w *ecs.World, ray Ray, maxDist float64, ignore ...ecs.EntityID) (RayHit, bool) {
	dir := ray.Dir.Normalised()
	if dir.IsZero() {
		return RayHit{}, false
	}
	best := RayHit{Dist: math.Inf(1)}
	for _, id := range w.Query(component.CCollider, component.CTransform) {
		if slices.Contains(ignore, id) {
			continue
		}
		col := w.Get(id, component.CCollider).(component.Collider)
		centre := w.Get(id, component.CTransform).(*component.Transform).Pos

		var t float64
		var ok bool
		switch col.Shape {
		case component.ShapeSphere:
			t, ok = raySphere(ray.Origin, dir, centre, col.Radius)
		default:
			t, ok = rayAABB(ray.Origin, dir, centre.Sub(col.HalfSize), centre.Add(col.HalfSize))
		}
		if ok && t <= maxDist && t < best.Dist {
			best = RayHit{Entity: id, Dist: t, Point: ray.Origin.Add(dir.Scale(t))}
		}
	}
	return best, best.Entity != ecs.NilEntity
}

// LineOfSight tests the segment between two points against every
// collider except the ignored entities.
func LineOfSight(w *ecs.World, ignore ...ecs.EntityID) agent.LineOfSight {
	return agent.LineOfSightFunc(func(from, to vecmath.Vec3) bool {
		d := to.Sub(from)
		dist := d.Length()
		if dist == 0 {
			return false
		}
		_, hit := Raycast(w, Ray{Origin: from, Dir: d}, dist, ignore...)
		return hit
	})
}

// rayAABB is the slab test. A ray starting inside the box hits at 0.
func rayAABB(o, d, lo, hi vecmath.Vec3) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	axes := [3][4]float64{
		{o.X, d.X, lo.X, hi.X},
		{o.Y, d.Y, lo.Y, hi.Y},
		{o.Z, d.Z, lo.Z, hi.Z},
	}
	for _, a := range axes {
		orig, dir, near, far := a[0], a[1], a[2], a[3]
		if dir == 0 {
			if orig < near || orig > far {
				return 0, false
			}
			continue
		}
		t1, t2 := (near-orig)/dir, (far-orig)/dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// raySphere expects d normalised. A ray starting inside the sphere hits at 0.
func raySphere(o, d, c vecmath.Vec3, r float64) (float64, bool) {
	oc := o.Sub(c)
	b := oc.Dot(d)
	cc := oc.LengthSq() - r*r
	if cc <= 0 {
		return 0, true
	}
	disc := b*b - cc
	if disc < 0 || b > 0 {
		return 0, false
	}
	return -b - math.Sqrt(disc), true
}
