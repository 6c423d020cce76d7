package behaviour

// composite owns an ordered list of children. cursor marks the first
// child that has not yet resolved in the current run.
type composite struct {
	base
	children []Node
	cursor   int
}

// AddChild appends n. The composite takes ownership of n.
func (c *composite) AddChild(n Node) { c.children = append(c.children, n) }

// Children returns the child list in evaluation order.
func (c *composite) Children() []Node { return c.children }

func (c *composite) Reset() {
	c.resetBase()
	c.cursor = 0
	for _, child := range c.children {
		child.Reset()
	}
}

// Sequence succeeds once every child has succeeded in order and fails as
// soon as one child fails.
type Sequence struct{ composite }

func NewSequence(name string, children ...Node) *Sequence {
	return &Sequence{composite{base: base{name: name}, children: children}}
}

func (s *Sequence) Execute(dt float64) State {
	if s.state.Terminal() {
		return s.state
	}
	for s.cursor < len(s.children) {
		switch s.children[s.cursor].Execute(dt) {
		case Success:
			s.cursor++
		case Failure:
			s.state = Failure
			return s.state
		default:
			s.state = Ongoing
			return s.state
		}
	}
	s.state = Success
	return s.state
}

// Selector succeeds on the first child success and fails only once every
// child has failed.
type Selector struct{ composite }

func NewSelector(name string, children ...Node) *Selector {
	return &Selector{composite{base: base{name: name}, children: children}}
}

func (s *Selector) Execute(dt float64) State {
	if s.state.Terminal() {
		return s.state
	}
	for s.cursor < len(s.children) {
		switch s.children[s.cursor].Execute(dt) {
		case Failure:
			s.cursor++
		case Success:
			s.state = Success
			return s.state
		default:
			s.state = Ongoing
			return s.state
		}
	}
	s.state = Failure
	return s.state
}

// Parallel sweeps all of its children in order on every frame, even after
// it has resolved. An Ongoing child ends the sweep with Ongoing. A
// resolved child overwrites the recorded result unless that result is
// already Success, so once a sweep records Success later failures cannot
// undo it. A Parallel with no children reports Success.
type Parallel struct{ composite }

func NewParallel(name string, children ...Node) *Parallel {
	return &Parallel{composite{base: base{name: name}, children: children}}
}

func (p *Parallel) Execute(dt float64) State {
	for _, child := range p.children {
		switch st := child.Execute(dt); st {
		case Success, Failure:
			if p.state != Success {
				p.state = st
			}
		default:
			p.state = Ongoing
			return p.state
		}
	}
	if p.state == Initialise {
		p.state = Success
	}
	return p.state
}
