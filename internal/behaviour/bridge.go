package behaviour

import (
	"log/slog"

	bt "github.com/joeycumines/go-behaviortree"
)

// ToStatus maps a node state onto go-behaviortree's status set.
// Initialise and Ongoing both map to Running.
func ToStatus(s State) bt.Status {
	switch s {
	case Success:
		return bt.Success
	case Failure:
		return bt.Failure
	default:
		return bt.Running
	}
}

// FromStatus is the inverse of ToStatus. Unknown statuses map to Failure.
func FromStatus(s bt.Status) State {
	switch s {
	case bt.Running:
		return Ongoing
	case bt.Success:
		return Success
	default:
		return Failure
	}
}

// Adapt exposes n as a go-behaviortree node. Every tick executes n with
// the fixed frame step dt. A node that has resolved is reset before the
// next tick so a bt.Ticker can drive it indefinitely.
func Adapt(n Node, dt float64) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if n.State().Terminal() {
			n.Reset()
		}
		return ToStatus(n.Execute(dt)), nil
	})
}

// Wrap embeds a go-behaviortree node as a leaf of a behaviour tree. A
// tick error is logged and reported as Failure.
func Wrap(name string, node bt.Node, logger *slog.Logger) Node {
	if logger == nil {
		logger = slog.Default()
	}
	return Func(name, func(_ float64, _ State) State {
		status, err := node.Tick()
		if err != nil {
			logger.Warn("behaviour tick failed", "node", name, "error", err)
			return Failure
		}
		return FromStatus(status)
	})
}
