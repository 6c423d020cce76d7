package system

import (
	"io"
	"log/slog"
	"testing"

	"goatkeeper/internal/agent"
	"goatkeeper/internal/component"
	"goatkeeper/internal/ecs"
	"goatkeeper/internal/factory"
	"goatkeeper/internal/gamemap"
	"goatkeeper/internal/vecmath"
)

const tickDt = 1.0 / 60

// newAIWorld creates an open 10×10 map with the player at (5,0,1) and one
// goat at (5,0,5) patrolling towards (5,0,8), facing the player.
func newAIWorld(t *testing.T) (*ecs.World, *gamemap.GameMap, ecs.EntityID, *agent.Enemy) {
	t.Helper()
	w := ecs.NewWorld()
	gmap := openMap(10, 10)
	player := factory.NewPlayer(w, vecmath.Vec3{X: 5, Z: 1}, 1)
	_, enemy := factory.NewEnemy(w, vecmath.Vec3{X: 5, Z: 5}, 1, factory.EnemySpec{
		Name:   "goat",
		Config: agent.DefaultConfig(),
		Grid:   gmap,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	enemy.InitialiseBehaviours([]vecmath.Vec3{{X: 5, Z: 8}})
	return w, gmap, player, enemy
}

func TestUpdateEnemiesTracksVisiblePlayer(t *testing.T) {
	w, _, player, enemy := newAIWorld(t)

	if n := UpdateEnemies(w, player, tickDt); n != 1 {
		t.Fatalf("tracking = %d; want 1", n)
	}
	if enemy.PlayerPosition() != (vecmath.Vec3{X: 5, Z: 1}) {
		t.Errorf("player position = %v", enemy.PlayerPosition())
	}
	UpdateEnemies(w, player, tickDt)
	if enemy.Mode() != agent.ModeTracking {
		t.Errorf("mode = %v; want tracking on the tick after sighting", enemy.Mode())
	}
}

func TestUpdateEnemiesWallBlocksSight(t *testing.T) {
	w, _, player, enemy := newAIWorld(t)
	factory.NewWall(w, vecmath.Vec3{X: 5, Z: 3}, 1)

	for range 3 {
		UpdateEnemies(w, player, tickDt)
	}
	if enemy.TrackingPlayer() {
		t.Error("a wall between goat and player must block sight")
	}
	if enemy.Mode() != agent.ModePatrolling {
		t.Errorf("mode = %v; want patrolling", enemy.Mode())
	}
}

func TestUpdateEnemiesSeeThroughExtras(t *testing.T) {
	w, _, player, enemy := newAIWorld(t)
	ball := factory.NewBall(w, vecmath.Vec3{X: 5, Z: 2}, 1)

	UpdateEnemies(w, player, tickDt)
	if enemy.TrackingPlayer() {
		t.Fatal("the ball blocks sight unless listed as transparent")
	}
	UpdateEnemies(w, player, tickDt, ball)
	if !enemy.TrackingPlayer() {
		t.Error("a transparent ball should not block sight")
	}
}

func TestUpdateEnemiesWithoutPlayer(t *testing.T) {
	w, _, player, enemy := newAIWorld(t)
	enemy.StartTrackingPlayer(vecmath.Vec3{X: 1})
	w.DestroyEntity(player)

	if n := UpdateEnemies(w, player, tickDt); n != 0 {
		t.Errorf("tracking = %d; want 0 with no player", n)
	}
	if enemy.TrackingPlayer() {
		t.Error("a missing player is never visible")
	}
}

func TestEnemyRosterInEntityOrder(t *testing.T) {
	w, gmap, _, first := newAIWorld(t)
	_, second := factory.NewEnemy(w, vecmath.Vec3{X: 2, Z: 2}, 1, factory.EnemySpec{Name: "kid", Config: agent.DefaultConfig(), Grid: gmap})

	roster := EnemyRoster(w)
	if len(roster) != 2 {
		t.Fatalf("roster = %+v", roster)
	}
	if roster[0].Name != first.Name() || roster[1].Name != second.Name() {
		t.Errorf("roster order = %s, %s", roster[0].Name, roster[1].Name)
	}
	if roster[0].Mode != agent.ModeIdle || roster[1].Mode != agent.ModeInert {
		t.Errorf("modes = %v, %v; want idle, inert", roster[0].Mode, roster[1].Mode)
	}
}

func TestTouching(t *testing.T) {
	w := ecs.NewWorld()
	a := addSphere(w, vecmath.Vec3{}, 1)
	b := addSphere(w, vecmath.Vec3{X: 1.5}, 1)
	c := addSphere(w, vecmath.Vec3{X: 5}, 1)
	bare := w.CreateEntity()
	w.Add(bare, component.NewTransform(vecmath.Vec3{}))

	if !Touching(w, a, b) {
		t.Error("overlapping spheres should touch")
	}
	if Touching(w, a, c) {
		t.Error("distant spheres should not touch")
	}
	if Touching(w, a, bare) {
		t.Error("entities without colliders never touch")
	}
}
