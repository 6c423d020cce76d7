package game

import (
	"fmt"

	"goatkeeper/assets"
	"goatkeeper/internal/pushdown"
)

// The screen flow runs on a pushdown machine:
//
//	intro --confirm--> play --pause--> pause
//	  ^                 |                |
//	  +------quit-------+     <--pause---+
//
// Quitting the intro pops the last state and ends the game.

type introScreen struct {
	pushdown.BaseState
	g *Game
}

func (s *introScreen) OnAwake() { s.g.drawIntro() }

func (s *introScreen) OnUpdate(float64) (pushdown.Result, pushdown.State) {
	for _, a := range s.g.input {
		switch a {
		case ActionConfirm:
			if err := s.g.startLevel(); err != nil {
				s.g.log.Error("start level", "error", err)
				continue
			}
			return pushdown.Push, &playScreen{g: s.g}
		case ActionQuit:
			return pushdown.Pop, nil
		}
	}
	return pushdown.NoChange, nil
}

type playScreen struct {
	pushdown.BaseState
	g *Game
}

func (s *playScreen) OnUpdate(dt float64) (pushdown.Result, pushdown.State) {
	g := s.g
	for _, a := range g.input {
		switch a {
		case ActionPause:
			g.draw(true)
			return pushdown.Push, &pauseScreen{g: g}
		case ActionQuit:
			g.endLevel()
			return pushdown.Pop, nil
		case ActionAutopilot:
			g.autopilot = !g.autopilot
			g.moveLeft = 0
			g.addMessage(fmt.Sprintf("Autopilot %s.", onOff(g.autopilot)))
		case ActionSight:
			g.showSight = !g.showSight
		default:
			if dir, ok := actionToDir(a); ok {
				g.moveDir, g.moveLeft = dir, moveHold
				if dir.IsZero() {
					g.moveLeft = 0
				}
			}
		}
	}
	g.step(dt)
	g.draw(false)
	return pushdown.NoChange, nil
}

type pauseScreen struct {
	pushdown.BaseState
	g *Game
}

func (s *pauseScreen) OnUpdate(float64) (pushdown.Result, pushdown.State) {
	for _, a := range s.g.input {
		switch a {
		case ActionPause, ActionConfirm, ActionQuit:
			return pushdown.Pop, nil
		}
	}
	s.g.draw(true)
	return pushdown.NoChange, nil
}

var introLines = []string{
	"GOATKEEPER",
	"",
	"Carry the ball " + assets.GlyphBall + " to the goal " + assets.GlyphGoal + ".",
	"Stay out of sight of the goats " + assets.GlyphGoat + ".",
	"",
	"arrows/hjkl move   p pause   a autopilot   v sight cones",
	"",
	"Enter to start, q to quit",
}

func (g *Game) drawIntro() { g.renderer.DrawTitle(introLines...) }

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
