// Package pushdown implements a stack-based state machine.
//
// The active state is always the top of the stack. A state can push a new
// state on top of itself (suspending itself) or pop itself (resuming the
// state beneath). Popped states are kept in a reserve pool so that a Push
// without an explicit target can reuse them instead of constructing a new
// state for the same role.
package pushdown

import (
	"errors"
	"log/slog"
)

// Result is the transition a state requests from OnUpdate.
type Result uint8

const (
	NoChange Result = iota
	Push
	Pop
)

func (r Result) String() string {
	switch r {
	case NoChange:
		return "no-change"
	case Push:
		return "push"
	case Pop:
		return "pop"
	default:
		return "unknown"
	}
}

// State is one mode of a machine.
//
// OnUpdate returns the requested transition. For Push the second return
// value is the state to push; nil asks the machine to draw one from its
// reserve pool. The second value is ignored for NoChange and Pop.
type State interface {
	OnAwake()
	OnSleep()
	OnUpdate(dt float64) (Result, State)
}

// BaseState provides no-op lifecycle hooks for embedding.
type BaseState struct{}

func (BaseState) OnAwake() {}

func (BaseState) OnSleep() {}

// Status is the lifecycle of a machine.
type Status uint8

const (
	NotStarted Status = iota
	Running
	Halted
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// ErrEmptyReserve is recorded when a state pushes without a target and
// the reserve pool has nothing to offer.
var ErrEmptyReserve = errors.New("pushdown: push requested with empty reserve")

// Machine drives a stack of states. It is not safe for concurrent use.
type Machine struct {
	initial State
	stack   []State
	reserve []State
	status  Status
	err     error
	log     *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger routes machine diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// NewMachine creates a machine that activates initial on its first Update.
func NewMachine(initial State, opts ...Option) *Machine {
	m := &Machine{initial: initial, log: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddReserveState registers a dormant state that an untargeted Push can use.
func (m *Machine) AddReserveState(s State) {
	m.reserve = append(m.reserve, s)
}

// Update advances the machine by one frame and reports whether it is
// still running. At most one push or pop is resolved per call.
func (m *Machine) Update(dt float64) bool {
	switch m.status {
	case Halted:
		return false
	case NotStarted:
		if m.initial == nil {
			m.status = Halted
			return false
		}
		m.stack = append(m.stack, m.initial)
		m.status = Running
		m.initial.OnAwake()
		return true
	}

	active := m.Active()
	result, next := active.OnUpdate(dt)
	switch result {
	case Pop:
		active.OnSleep()
		m.reserve = append(m.reserve, active)
		m.stack = m.stack[:len(m.stack)-1]
		if len(m.stack) == 0 {
			m.status = Halted
			return false
		}
		m.Active().OnAwake()
	case Push:
		active.OnSleep()
		if next == nil {
			if len(m.reserve) == 0 {
				m.status = Halted
				m.err = ErrEmptyReserve
				m.log.Warn("pushdown halted", "error", ErrEmptyReserve, "depth", len(m.stack))
				return false
			}
			next = m.reserve[len(m.reserve)-1]
			m.reserve = m.reserve[:len(m.reserve)-1]
		}
		m.stack = append(m.stack, next)
		next.OnAwake()
	}
	return true
}

// Active returns the executing state, or nil when the machine is not running.
func (m *Machine) Active() State {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns the number of states on the active stack.
func (m *Machine) Depth() int { return len(m.stack) }

// ReserveLen returns the number of dormant states in the reserve pool.
func (m *Machine) ReserveLen() int { return len(m.reserve) }

// Status reports the machine lifecycle.
func (m *Machine) Status() Status { return m.status }

// Running reports whether the active stack is non-empty.
func (m *Machine) Running() bool { return m.status == Running }

// Err returns the reason the machine halted abnormally, if any.
func (m *Machine) Err() error { return m.err }

// Close releases every state held by both stacks and halts the machine.
func (m *Machine) Close() {
	clear(m.stack)
	clear(m.reserve)
	m.stack = nil
	m.reserve = nil
	m.status = Halted
}
