package component

import (
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/vecmath"
)

const CBody ecs.ComponentType = 2

// Body is a point mass integrated by system.Integrate. A zero InverseMass
// makes the body immovable.
type Body struct {
	Velocity    vecmath.Vec3
	Force       vecmath.Vec3
	InverseMass float64
	// Damping is the fraction of velocity lost per second.
	Damping float64
}

// NewBody returns a body with the given mass. mass <= 0 yields a static body.
func NewBody(mass, damping float64) *Body {
	b := &Body{Damping: damping}
	if mass > 0 {
		b.InverseMass = 1 / mass
	}
	return b
}

func (*Body) Type() ecs.ComponentType { return CBody }

func (b *Body) AddForce(f vecmath.Vec3) { b.Force = b.Force.Add(f) }

// ApplyLinearImpulse changes velocity immediately by j/m.
func (b *Body) ApplyLinearImpulse(j vecmath.Vec3) {
	b.Velocity = b.Velocity.Add(j.Scale(b.InverseMass))
}

func (b *Body) SetLinearVelocity(v vecmath.Vec3) { b.Velocity = v }

func (b *Body) LinearVelocity() vecmath.Vec3 { return b.Velocity }

func (b *Body) ClearForces() { b.Force = vecmath.Vec3{} }

// Static reports whether the body ignores forces.
func (b *Body) Static() bool { return b.InverseMass == 0 }
