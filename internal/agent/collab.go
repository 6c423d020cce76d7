package agent

import (
	"goatkeeper/internal/vecmath"

	"github.com/gdamore/tcell/v2"
)

// Transform is the agent's placement in the world.
type Transform interface {
	Position() vecmath.Vec3
	SetPosition(vecmath.Vec3)
	Orientation() vecmath.Quat
	SetOrientation(vecmath.Quat)
}

// Body is the physics handle steering writes to. The controller never
// touches mass or inertia.
type Body interface {
	AddForce(vecmath.Vec3)
	ApplyLinearImpulse(vecmath.Vec3)
	SetLinearVelocity(vecmath.Vec3)
	LinearVelocity() vecmath.Vec3
	ClearForces()
}

// Pathfinder returns waypoints from the cell at from to the cell at to,
// start cell first. Paths are read-only to the caller.
type Pathfinder interface {
	FindPath(from, to vecmath.Vec3) ([]vecmath.Vec3, bool)
}

// LineOfSight reports whether something other than the two endpoints'
// owners sits between from and to.
type LineOfSight interface {
	Blocked(from, to vecmath.Vec3) bool
}

// LineOfSightFunc adapts a function to LineOfSight.
type LineOfSightFunc func(from, to vecmath.Vec3) bool

func (f LineOfSightFunc) Blocked(from, to vecmath.Vec3) bool { return f(from, to) }

// Tinter recolours the agent's visual.
type Tinter interface {
	SetColour(tcell.Color)
}
