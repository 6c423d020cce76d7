package factory

import (
	"log/slog"

	"goatkeeper/assets"
	"goatkeeper/internal/agent"
	"goatkeeper/internal/component"
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/vecmath"

	"github.com/gdamore/tcell/v2"
)

// Collider sizes as a fraction of the grid node size.
const (
	playerRadius = 0.2
	enemyRadius  = 0.2
	ballRadius   = 0.1
)

// NewPlayer creates the player entity at pos. size is the grid node size.
func NewPlayer(w *ecs.World, pos vecmath.Vec3, size float64) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.NewTransform(pos))
	w.Add(id, component.NewBody(1, 0))
	w.Add(id, component.Sphere(size*playerRadius))
	w.Add(id, &component.Renderable{
		Glyph:       assets.GlyphPlayer,
		FGColor:     assets.DefaultTheme.Player,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 10,
	})
	w.Add(id, component.TagPlayer{})
	return id
}

// EnemySpec is what NewEnemy needs beyond a position.
type EnemySpec struct {
	Name   string
	Config agent.Config
	Grid   agent.Pathfinder
	Logger *slog.Logger
}

// NewEnemy creates an enemy entity with a controller that has no
// behaviours yet. The controller steers the entity's own transform and
// body and tints its renderable.
func NewEnemy(w *ecs.World, pos vecmath.Vec3, size float64, spec EnemySpec) (ecs.EntityID, *agent.Enemy) {
	id := w.CreateEntity()
	tf := component.NewTransform(pos)
	body := component.NewBody(1, spec.Config.Friction)
	rend := &component.Renderable{
		Glyph:       assets.GlyphGoat,
		FGColor:     assets.DefaultTheme.Enemy,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 5,
	}
	enemy := agent.New(spec.Name, tf, body, spec.Config,
		agent.WithPathfinder(spec.Grid),
		agent.WithTinter(rend),
		agent.WithLogger(spec.Logger),
	)
	w.Add(id, tf)
	w.Add(id, body)
	w.Add(id, component.Sphere(size*enemyRadius))
	w.Add(id, rend)
	w.Add(id, component.AI{Enemy: enemy})
	w.Add(id, component.TagEnemy{})
	return id, enemy
}

// NewWall creates an immovable wall block filling one grid cell.
func NewWall(w *ecs.World, pos vecmath.Vec3, size float64) ecs.EntityID {
	id := w.CreateEntity()
	half := size / 2
	w.Add(id, component.NewTransform(pos))
	w.Add(id, component.Box(vecmath.Vec3{X: half, Y: half, Z: half}))
	w.Add(id, &component.Renderable{
		Glyph:       assets.GlyphWall,
		FGColor:     assets.DefaultTheme.Wall,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 0,
	})
	w.Add(id, component.TagWall{})
	return id
}

// NewBall creates the ball the player carries to the goal.
func NewBall(w *ecs.World, pos vecmath.Vec3, size float64) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.NewTransform(pos))
	w.Add(id, component.NewBody(0.5, 0.6))
	w.Add(id, component.Sphere(size*ballRadius))
	w.Add(id, &component.Renderable{
		Glyph:       assets.GlyphBall,
		FGColor:     assets.DefaultTheme.Ball,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 8,
	})
	w.Add(id, component.TagBall{})
	return id
}

// NewGoal creates the goal zone, a flat box on the floor.
func NewGoal(w *ecs.World, pos vecmath.Vec3, size float64) ecs.EntityID {
	id := w.CreateEntity()
	half := size / 2
	w.Add(id, component.NewTransform(pos))
	w.Add(id, component.Box(vecmath.Vec3{X: half, Y: half / 10, Z: half}))
	w.Add(id, &component.Renderable{
		Glyph:       assets.GlyphGoal,
		FGColor:     assets.DefaultTheme.Goal,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 2,
	})
	w.Add(id, component.TagGoal{})
	return id
}

// NewDecoration creates scenery with no collider.
func NewDecoration(w *ecs.World, pos vecmath.Vec3) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.NewTransform(pos))
	w.Add(id, &component.Renderable{
		Glyph:       assets.GlyphDecoration,
		FGColor:     assets.DefaultTheme.Decoration,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 1,
	})
	w.Add(id, component.TagDecoration{})
	return id
}
