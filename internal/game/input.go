package game

import (
	"goatkeeper/internal/vecmath"

	"github.com/gdamore/tcell/v2"
)

// Action represents a player-requested action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionMoveNE
	ActionMoveNW
	ActionMoveSE
	ActionMoveSW
	ActionStop
	ActionConfirm
	ActionPause
	ActionQuit
	ActionAutopilot
	ActionSight
)

// keyToAction maps a tcell key event to an action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyEscape:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'k', 'K':
		return ActionMoveN
	case 'j', 'J':
		return ActionMoveS
	case 'l', 'L':
		return ActionMoveE
	case 'h', 'H':
		return ActionMoveW
	case 'y', 'Y':
		return ActionMoveNW
	case 'u', 'U':
		return ActionMoveNE
	case 'b', 'B':
		return ActionMoveSW
	case 'n', 'N':
		return ActionMoveSE
	case '.':
		return ActionStop
	case ' ':
		return ActionConfirm
	case 'p', 'P':
		return ActionPause
	case 'q', 'Q':
		return ActionQuit
	case 'a', 'A':
		return ActionAutopilot
	case 'v', 'V':
		return ActionSight
	}
	return ActionNone
}

// actionToDir converts a movement action to a world direction on the
// ground plane. Screen up is -Z.
func actionToDir(a Action) (vecmath.Vec3, bool) {
	switch a {
	case ActionMoveN:
		return vecmath.Vec3{Z: -1}, true
	case ActionMoveS:
		return vecmath.Vec3{Z: 1}, true
	case ActionMoveE:
		return vecmath.Vec3{X: 1}, true
	case ActionMoveW:
		return vecmath.Vec3{X: -1}, true
	case ActionMoveNE:
		return vecmath.Vec3{X: 1, Z: -1}, true
	case ActionMoveNW:
		return vecmath.Vec3{X: -1, Z: -1}, true
	case ActionMoveSE:
		return vecmath.Vec3{X: 1, Z: 1}, true
	case ActionMoveSW:
		return vecmath.Vec3{X: -1, Z: 1}, true
	case ActionStop:
		return vecmath.Vec3{}, true
	}
	return vecmath.Vec3{}, false
}
