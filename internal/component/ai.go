package component

import (
	"goatkeeper/internal/agent"
	"goatkeeper/internal/ecs"
)

const CAI ecs.ComponentType = 5

// AI attaches an enemy controller to an entity. The component owns the
// controller; destroying the entity drops it.
type AI struct {
	Enemy *agent.Enemy
}

func (AI) Type() ecs.ComponentType { return CAI }
