package component

import "goatkeeper/internal/ecs"

const (
	CTagPlayer     ecs.ComponentType = 8
	CTagWall       ecs.ComponentType = 9
	CTagBall       ecs.ComponentType = 10
	CTagGoal       ecs.ComponentType = 11
	CTagEnemy      ecs.ComponentType = 12
	CTagDecoration ecs.ComponentType = 13
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagWall marks an immovable wall block.
type TagWall struct{}

func (TagWall) Type() ecs.ComponentType { return CTagWall }

// TagBall marks the ball the player carries to the goal.
type TagBall struct{}

func (TagBall) Type() ecs.ComponentType { return CTagBall }

// TagGoal marks the goal zone.
type TagGoal struct{}

func (TagGoal) Type() ecs.ComponentType { return CTagGoal }

// TagEnemy marks an enemy, whether or not it has AI.
type TagEnemy struct{}

func (TagEnemy) Type() ecs.ComponentType { return CTagEnemy }

// TagDecoration marks scenery that neither moves nor blocks sight.
type TagDecoration struct{}

func (TagDecoration) Type() ecs.ComponentType { return CTagDecoration }
