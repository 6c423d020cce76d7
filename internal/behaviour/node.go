// Package behaviour implements tick-driven behaviour trees.
//
// A tree is built from Action leaves and three composites (Sequence,
// Selector, Parallel). Each call to Execute advances the tree by one
// simulation frame; a node that has not finished reports Ongoing and is
// executed again on the next frame with its internal progress intact.
// Reset returns a whole subtree to Initialise.
package behaviour

// State is the evaluation state of a node.
type State uint8

const (
	Initialise State = iota // not executed since the last Reset
	Ongoing
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Initialise:
		return "initialise"
	case Ongoing:
		return "ongoing"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends an evaluation cycle.
func (s State) Terminal() bool { return s == Success || s == Failure }

// Node is one unit of behaviour logic.
type Node interface {
	Name() string
	State() State
	Execute(dt float64) State
	Reset()
}

type base struct {
	name  string
	state State
}

func (b *base) Name() string { return b.name }

func (b *base) State() State { return b.state }

func (b *base) resetBase() { b.state = Initialise }
