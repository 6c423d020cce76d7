package behaviour

import (
	"errors"
	"testing"

	bt "github.com/joeycumines/go-behaviortree"
	"github.com/stretchr/testify/require"
)

// scripted returns an action that replays script one entry per Execute,
// repeating the last entry once the script runs out. calls counts Execute.
func scripted(name string, calls *int, script ...State) *Action[struct{}] {
	i := 0
	return Func(name, func(_ float64, _ State) State {
		if calls != nil {
			*calls++
		}
		s := script[min(i, len(script)-1)]
		i++
		return s
	})
}

// terminal returns an action that behaves like a real leaf: it stays
// Ongoing for after frames, resolves to result, and keeps returning that
// result until Reset.
func terminal(name string, after int, result State) *Action[struct{}] {
	n := 0
	return Func(name, func(_ float64, s State) State {
		if s == Initialise {
			n = 0
		}
		if s.Terminal() {
			return s
		}
		n++
		if n > after {
			return result
		}
		return Ongoing
	})
}

func TestActionLeavesInitialise(t *testing.T) {
	a := Func("noop", func(_ float64, s State) State { return s })
	require.Equal(t, Initialise, a.State())
	require.Equal(t, Ongoing, a.Execute(0.1))
	require.Equal(t, Ongoing, a.State())
	a.Reset()
	require.Equal(t, Initialise, a.State())
}

func TestActionContextPassedByValue(t *testing.T) {
	type ctx struct{ target int }
	seen := 0
	a := NewAction("ctx", ctx{target: 7}, func(_ float64, c ctx, _ State) State {
		seen = c.target
		return Success
	})
	require.Equal(t, Success, a.Execute(0))
	require.Equal(t, 7, seen)
}

func TestSequenceFailsOnFirstFailure(t *testing.T) {
	var second int
	seq := NewSequence("seq",
		scripted("a", nil, Ongoing, Failure),
		scripted("b", &second, Success),
	)
	require.Equal(t, Ongoing, seq.Execute(0))
	require.Equal(t, Failure, seq.Execute(0))
	require.Zero(t, second, "children after a failure must not run")
	// Holds its result until reset.
	require.Equal(t, Failure, seq.Execute(0))
}

func TestSequenceSucceedsOnlyAfterAllChildrenInOrder(t *testing.T) {
	var aCalls, bCalls, cCalls int
	seq := NewSequence("seq",
		scripted("a", &aCalls, Success),
		scripted("b", &bCalls, Ongoing, Ongoing, Success),
		scripted("c", &cCalls, Ongoing, Success),
	)
	want := []State{Ongoing, Ongoing, Ongoing, Success}
	for i, w := range want {
		require.Equal(t, w, seq.Execute(0), "tick %d", i)
	}
	require.Equal(t, 1, aCalls, "succeeded child re-executed")
	require.Equal(t, 3, bCalls)
	require.Equal(t, 2, cCalls)
}

func TestSequenceEmptySucceeds(t *testing.T) {
	require.Equal(t, Success, NewSequence("empty").Execute(0))
}

func TestSelectorSucceedsOnFirstSuccess(t *testing.T) {
	var third int
	sel := NewSelector("sel",
		scripted("a", nil, Failure),
		scripted("b", nil, Ongoing, Success),
		scripted("c", &third, Success),
	)
	require.Equal(t, Ongoing, sel.Execute(0))
	require.Equal(t, Success, sel.Execute(0))
	require.Zero(t, third)
}

func TestSelectorFailsOnlyWhenAllFail(t *testing.T) {
	sel := NewSelector("sel",
		scripted("a", nil, Ongoing, Failure),
		scripted("b", nil, Failure),
		scripted("c", nil, Ongoing, Ongoing, Failure),
	)
	want := []State{Ongoing, Ongoing, Ongoing, Failure}
	for i, w := range want {
		require.Equal(t, w, sel.Execute(0), "tick %d", i)
	}
}

func TestSelectorEmptyFails(t *testing.T) {
	require.Equal(t, Failure, NewSelector("empty").Execute(0))
}

func TestParallelPolicy(t *testing.T) {
	cases := []struct {
		name   string
		script []State
		want   State
	}{
		{"ongoing first short-circuits", []State{Ongoing, Success}, Ongoing},
		{"success sticks", []State{Success, Failure}, Success},
		{"failure then success", []State{Failure, Success}, Success},
		{"all fail", []State{Failure, Failure}, Failure},
		{"all succeed", []State{Success, Success}, Success},
		{"success then ongoing", []State{Success, Ongoing}, Ongoing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParallel("par")
			for i, s := range tc.script {
				p.AddChild(scripted(string(rune('a'+i)), nil, s))
			}
			require.Equal(t, tc.want, p.Execute(0))
		})
	}
}

func TestParallelStopsSweepAtOngoing(t *testing.T) {
	var second int
	p := NewParallel("par",
		scripted("a", nil, Ongoing),
		scripted("b", &second, Success),
	)
	p.Execute(0)
	p.Execute(0)
	require.Zero(t, second)
}

func TestParallelRunsEveryChildEverySweep(t *testing.T) {
	var a, b int
	p := NewParallel("par",
		scripted("a", &a, Success),
		scripted("b", &b, Ongoing, Ongoing, Failure),
	)
	require.Equal(t, Ongoing, p.Execute(0))
	require.Equal(t, Ongoing, p.Execute(0))
	// a still reports Success, so b's Failure cannot downgrade the result.
	require.Equal(t, Success, p.Execute(0))
	require.Equal(t, 3, a)
	require.Equal(t, 3, b)
}

func TestParallelKeepsSweepingAfterResolving(t *testing.T) {
	var calls int
	p := NewParallel("par", scripted("flip", &calls, Failure, Success, Failure))
	require.Equal(t, Failure, p.Execute(0))
	require.Equal(t, Success, p.Execute(0), "a later success overwrites a failure")
	require.Equal(t, Success, p.Execute(0), "a recorded success sticks")
	require.Equal(t, 3, calls)
}

func TestParallelOngoingReopensResult(t *testing.T) {
	p := NewParallel("par", scripted("a", nil, Success, Ongoing, Failure))
	require.Equal(t, Success, p.Execute(0))
	require.Equal(t, Ongoing, p.Execute(0))
	require.Equal(t, Failure, p.Execute(0))
}

func TestParallelEmptySucceeds(t *testing.T) {
	require.Equal(t, Success, NewParallel("empty").Execute(0))
}

func TestResetRecursesToEveryDescendant(t *testing.T) {
	leafA := terminal("a", 1, Success)
	leafB := terminal("b", 0, Success)
	leafC := terminal("c", 1, Failure)
	inner := NewSequence("inner", leafA, leafB)
	par := NewParallel("par", leafC)
	root := NewSequence("root", inner, par)

	require.Equal(t, Ongoing, root.Execute(0))
	require.Equal(t, Ongoing, root.Execute(0))
	require.Equal(t, Failure, root.Execute(0))

	root.Reset()
	for _, n := range []Node{root, inner, par, leafA, leafB, leafC} {
		require.Equal(t, Initialise, n.State(), "node %s", n.Name())
	}
	// After a reset the composite passes through Ongoing again.
	require.Equal(t, Ongoing, root.Execute(0))
}

func TestResetRewindsCursor(t *testing.T) {
	var aCalls int
	seq := NewSequence("seq",
		scripted("a", &aCalls, Success),
		terminal("b", 1, Success),
	)
	require.Equal(t, Ongoing, seq.Execute(0))
	seq.Reset()
	require.Equal(t, Ongoing, seq.Execute(0))
	require.Equal(t, 2, aCalls, "reset must restart at the first child")
}

func TestAdaptDrivesNodeFromGoBehaviortree(t *testing.T) {
	node := Adapt(terminal("leaf", 1, Success), 0.016)

	status, err := node.Tick()
	require.NoError(t, err)
	require.Equal(t, bt.Running, status)

	status, err = node.Tick()
	require.NoError(t, err)
	require.Equal(t, bt.Success, status)

	// The resolved node is reset on the next tick and runs again.
	status, err = node.Tick()
	require.NoError(t, err)
	require.Equal(t, bt.Running, status)
}

func TestAdaptComposesWithStockComposites(t *testing.T) {
	tree := bt.New(
		bt.Selector,
		Adapt(terminal("fails", 0, Failure), 0),
		Adapt(terminal("succeeds", 0, Success), 0),
	)
	status, err := tree.Tick()
	require.NoError(t, err)
	require.Equal(t, bt.Success, status)
}

func TestWrapMapsStatusAndErrors(t *testing.T) {
	ok := Wrap("ok", bt.New(func([]bt.Node) (bt.Status, error) { return bt.Success, nil }), nil)
	require.Equal(t, Success, ok.Execute(0))

	running := Wrap("running", bt.New(func([]bt.Node) (bt.Status, error) { return bt.Running, nil }), nil)
	require.Equal(t, Ongoing, running.Execute(0))

	broken := Wrap("broken", bt.New(func([]bt.Node) (bt.Status, error) {
		return bt.Success, errors.New("boom")
	}), nil)
	require.Equal(t, Failure, broken.Execute(0))
}

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []State{Ongoing, Success, Failure} {
		require.Equal(t, s, FromStatus(ToStatus(s)))
	}
	require.Equal(t, bt.Running, ToStatus(Initialise))
}
