package component

import (
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/vecmath"
)

const CCollider ecs.ComponentType = 4

// Shape selects the collision volume of a Collider.
type Shape uint8

const (
	ShapeAABB Shape = iota
	ShapeSphere
)

// Collider is the volume used for ray casts. AABB uses HalfSize; Sphere
// uses Radius. The volume is centred on the entity's Transform.
type Collider struct {
	Shape    Shape
	HalfSize vecmath.Vec3
	Radius   float64
}

func (Collider) Type() ecs.ComponentType { return CCollider }

// Box returns an axis-aligned box collider.
func Box(half vecmath.Vec3) Collider { return Collider{Shape: ShapeAABB, HalfSize: half} }

// Sphere returns a sphere collider.
func Sphere(r float64) Collider { return Collider{Shape: ShapeSphere, Radius: r} }
