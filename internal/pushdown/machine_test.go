package pushdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// probe is a state whose transitions are scripted by the test.
type probe struct {
	name   string
	awake  int
	sleep  int
	update int
	result Result
	next   State
}

func (p *probe) OnAwake() { p.awake++ }

func (p *probe) OnSleep() { p.sleep++ }

func (p *probe) OnUpdate(float64) (Result, State) {
	p.update++
	r, n := p.result, p.next
	// Requests are one-shot.
	p.result, p.next = NoChange, nil
	return r, n
}

func TestFirstUpdateActivatesInitialState(t *testing.T) {
	initial := &probe{name: "initial"}
	m := NewMachine(initial)
	require.Equal(t, NotStarted, m.Status())
	require.Nil(t, m.Active())

	require.True(t, m.Update(0.1))
	require.Equal(t, Running, m.Status())
	require.Same(t, initial, m.Active())
	require.Equal(t, 1, initial.awake)
	require.Zero(t, initial.update, "bootstrap frame must not run OnUpdate")

	require.True(t, m.Update(0.1))
	require.Equal(t, 1, initial.awake, "OnAwake must fire exactly once")
	require.Equal(t, 1, initial.update)
}

func TestPopOnlyStateHaltsAndKeepsItInReserve(t *testing.T) {
	initial := &probe{name: "initial"}
	m := NewMachine(initial)
	m.Update(0)

	initial.result = Pop
	require.False(t, m.Update(0))
	require.Equal(t, Halted, m.Status())
	require.Zero(t, m.Depth())
	require.Equal(t, 1, m.ReserveLen())
	require.Equal(t, 1, initial.sleep)
	require.NoError(t, m.Err())

	// Halted machines never resume.
	require.False(t, m.Update(0))
	require.Equal(t, 1, initial.update)
}

func TestPushExplicitStateLeavesReserveAlone(t *testing.T) {
	initial := &probe{name: "initial"}
	reserved := &probe{name: "reserved"}
	explicit := &probe{name: "explicit"}
	m := NewMachine(initial)
	m.AddReserveState(reserved)
	m.Update(0)

	initial.result, initial.next = Push, explicit
	require.True(t, m.Update(0))
	require.Same(t, explicit, m.Active())
	require.Equal(t, 2, m.Depth())
	require.Equal(t, 1, m.ReserveLen())
	require.Equal(t, 1, initial.sleep)
	require.Equal(t, 1, explicit.awake)
	require.Zero(t, reserved.awake)
}

func TestPushWithoutStateDrawsFromReserve(t *testing.T) {
	initial := &probe{name: "initial"}
	reserved := &probe{name: "reserved"}
	m := NewMachine(initial)
	m.AddReserveState(reserved)
	m.Update(0)

	initial.result = Push
	require.True(t, m.Update(0))
	require.Same(t, reserved, m.Active())
	require.Zero(t, m.ReserveLen())
	require.Equal(t, 1, reserved.awake)

	// Popping returns it to the pool and resumes the initial state.
	reserved.result = Pop
	require.True(t, m.Update(0))
	require.Same(t, initial, m.Active())
	require.Equal(t, 1, m.ReserveLen())
	require.Equal(t, 1, reserved.sleep)
	require.Equal(t, 2, initial.awake)

	// And it is reused, not duplicated, on the next push.
	initial.result = Push
	require.True(t, m.Update(0))
	require.Same(t, reserved, m.Active())
	require.Equal(t, 2, reserved.awake)
	require.Zero(t, m.ReserveLen())
}

func TestPushWithEmptyReserveHalts(t *testing.T) {
	initial := &probe{name: "initial"}
	m := NewMachine(initial)
	m.Update(0)

	initial.result = Push
	require.False(t, m.Update(0))
	require.Equal(t, Halted, m.Status())
	require.ErrorIs(t, m.Err(), ErrEmptyReserve)
	require.Equal(t, 1, initial.sleep)
	require.False(t, m.Update(0))
}

func TestReservePoolIsLIFO(t *testing.T) {
	initial := &probe{name: "initial"}
	first := &probe{name: "first"}
	second := &probe{name: "second"}
	m := NewMachine(initial)
	m.AddReserveState(first)
	m.AddReserveState(second)
	m.Update(0)

	initial.result = Push
	m.Update(0)
	require.Same(t, second, m.Active())

	second.result = Push
	m.Update(0)
	require.Same(t, first, m.Active())
	require.Equal(t, 3, m.Depth())
}

func TestNoChangeIgnoresReturnedState(t *testing.T) {
	initial := &probe{name: "initial"}
	m := NewMachine(initial)
	m.Update(0)

	initial.next = &probe{name: "ignored"}
	require.True(t, m.Update(0))
	require.Same(t, initial, m.Active())
	require.Equal(t, 1, m.Depth())
}

func TestNilInitialStateHalts(t *testing.T) {
	m := NewMachine(nil)
	require.False(t, m.Update(0))
	require.Equal(t, Halted, m.Status())
}

func TestCloseDropsBothStacks(t *testing.T) {
	initial := &probe{name: "initial"}
	m := NewMachine(initial)
	m.AddReserveState(&probe{name: "reserved"})
	m.Update(0)

	m.Close()
	require.Zero(t, m.Depth())
	require.Zero(t, m.ReserveLen())
	require.False(t, m.Update(0))
}

func TestBaseStateHooksAreNoops(t *testing.T) {
	type idle struct{ BaseState }
	var s idle
	s.OnAwake()
	s.OnSleep()
}
