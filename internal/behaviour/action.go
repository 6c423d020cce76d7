package behaviour

// ActionFunc advances an action by one frame. It receives the action's
// context value and the state the action is currently in, and returns the
// next state.
type ActionFunc[C any] func(dt float64, ctx C, state State) State

// Action is a leaf node wrapping a callback. The context is copied into
// the action at construction; it typically holds target data and a
// non-owning handle to the agent being driven.
type Action[C any] struct {
	base
	ctx C
	fn  ActionFunc[C]
}

// NewAction creates a leaf that calls fn with ctx on every Execute.
func NewAction[C any](name string, ctx C, fn ActionFunc[C]) *Action[C] {
	return &Action[C]{base: base{name: name}, ctx: ctx, fn: fn}
}

// Execute calls the callback and records its result. A callback that
// answers Initialise is treated as Ongoing so the node always leaves
// Initialise on its first run.
func (a *Action[C]) Execute(dt float64) State {
	next := a.fn(dt, a.ctx, a.state)
	if next == Initialise {
		next = Ongoing
	}
	a.state = next
	return next
}

func (a *Action[C]) Reset() { a.resetBase() }

// Func adapts a context-free callback into an Action.
func Func(name string, fn func(dt float64, state State) State) *Action[struct{}] {
	return NewAction(name, struct{}{}, func(dt float64, _ struct{}, s State) State {
		return fn(dt, s)
	})
}
