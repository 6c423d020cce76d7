package game

import (
	"testing"

	"goatkeeper/internal/behaviour"
	"goatkeeper/internal/vecmath"
)

func TestAutopilotScoresRepeatedly(t *testing.T) {
	l := loadLevel(t, pitchMap, DefaultConfig())
	pilot := NewAutopilot(l)

	for range 300 {
		l.Step(tickDt, pilot.Next(tickDt))
	}
	s := l.Score()
	if s.Goals < 3 {
		t.Errorf("autopilot scored %d goals in 300 ticks; want at least 3", s.Goals)
	}
	if s.Pickups < s.Goals {
		t.Errorf("pickups %d < goals %d", s.Pickups, s.Goals)
	}
}

func TestAutopilotFirstStepHeadsForBall(t *testing.T) {
	l := loadLevel(t, pitchMap, DefaultConfig())
	pilot := NewAutopilot(l)

	dir := pilot.Next(tickDt)
	if dir.Normalised() != (vecmath.Vec3{X: 1}) {
		t.Errorf("first direction = %v; want east", dir)
	}
	if got := pilot.Tree().State(); got != behaviour.Ongoing {
		t.Errorf("tree state = %v; want ongoing", got)
	}
}

func TestAutopilotIdlesWithoutBall(t *testing.T) {
	l := loadLevel(t, "1\n3\n1\np.g\n", DefaultConfig())
	pilot := NewAutopilot(l)

	if dir := pilot.Next(tickDt); !dir.IsZero() {
		t.Errorf("direction = %v; want standing still", dir)
	}
	if got := pilot.Tree().State(); got != behaviour.Success {
		t.Errorf("tree state = %v; want success through idle", got)
	}
}

func TestAutopilotDetoursAroundWalls(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlayerSpeed = 6
	l := loadLevel(t, `1
5
3
p...o
.xxx.
...g.
`, cfg)
	pilot := NewAutopilot(l)
	for range 200 {
		l.Step(tickDt, pilot.Next(tickDt))
		if l.Score().Goals > 0 {
			return
		}
	}
	t.Fatalf("no goal after 200 ticks; player at %v carrying %v", l.PlayerPosition(), l.Carrying())
}
