package component

import (
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/vecmath"
)

const CTransform ecs.ComponentType = 1

// Transform places an entity in the world. Stored as a pointer so systems
// and agents can update it in place.
type Transform struct {
	Pos    vecmath.Vec3
	Orient vecmath.Quat
	Scale  vecmath.Vec3
}

// NewTransform returns a unit-scale transform at pos with identity orientation.
func NewTransform(pos vecmath.Vec3) *Transform {
	return &Transform{Pos: pos, Orient: vecmath.Identity, Scale: vecmath.Vec3{X: 1, Y: 1, Z: 1}}
}

func (*Transform) Type() ecs.ComponentType { return CTransform }

func (t *Transform) Position() vecmath.Vec3 { return t.Pos }

func (t *Transform) SetPosition(p vecmath.Vec3) { t.Pos = p }

func (t *Transform) Orientation() vecmath.Quat { return t.Orient }

func (t *Transform) SetOrientation(q vecmath.Quat) { t.Orient = q }

// Forward is the direction the entity faces.
func (t *Transform) Forward() vecmath.Vec3 { return t.Orient.Rotate(vecmath.Forward) }
