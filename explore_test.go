package turingmachines_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/testutil"
)

func seeded(m *tm.TuringMachine) (*tm.Explorer, []tm.ConfigurationID) {
	m.ReinitTapes()
	e := tm.NewExplorer(m)
	return e, e.Seed()
}

func TestExplorer_SeedOnePerInitialState(t *testing.T) {
	c := testutil.NewChain()
	c.M.SetInitialState(1)
	e, roots := seeded(c.M)
	require.Len(t, roots, 2)
	assert.Equal(t, 0, e.State(roots[0]))
	assert.Equal(t, 1, e.State(roots[1]))
	for _, r := range roots {
		assert.True(t, e.IsHard(r))
		assert.Equal(t, tm.NoConfiguration, e.Parent(r))
	}
}

func TestExplorer_SiblingIsolation(t *testing.T) {
	g := testutil.NewGrid(&tm.Cell{Column: 1, Line: 1})
	e, roots := seeded(g.M)
	root := roots[0]

	materialize := func(ids []tm.ConfigurationID) []tm.Configuration {
		out := make([]tm.Configuration, len(ids))
		for i, id := range ids {
			out[i] = e.Materialize(id)
		}
		return out
	}

	rootSnap := e.Materialize(root)
	firstIDs := e.Explore(root)
	if diff := cmp.Diff(rootSnap, g.M.SaveConfiguration()); diff != "" {
		t.Errorf("Explore left the live machine moved (-want +got):\n%s", diff)
	}

	first := materialize(firstIDs)
	second := materialize(e.Explore(root))
	require.Len(t, first, 8)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("exploring twice differs (-first +second):\n%s", diff)
	}

	// Children 0..3 move head 0, 4..7 move head 1; the other head stays put.
	start := []tm.Cell{{Column: 0, Line: 0}, {Column: 2, Line: 2}}
	for i, c := range first {
		still := 1
		if i >= 4 {
			still = 0
		}
		assert.Equal(t, start[still], c.Tapes[0].Heads[still], "child %d", i)
		assert.Equal(t, rootSnap.Tapes[0].Cells, c.Tapes[0].Cells, "child %d", i)
	}
	assert.Equal(t, tm.Cell{Column: 0, Line: 1}, first[0].Tapes[0].Heads[0])
	assert.Equal(t, tm.Cell{Column: 0, Line: 0}, first[1].Tapes[0].Heads[0], "down is blocked by the bound")
	assert.Equal(t, tm.Cell{Column: 1, Line: 0}, first[3].Tapes[0].Heads[0])
	assert.Equal(t, tm.Cell{Column: 2, Line: 1}, first[5].Tapes[0].Heads[1])
}

func TestExplorer_SoftChainMatchesDirectFiring(t *testing.T) {
	const depth = 80
	u := testutil.NewUnary(strings.Repeat("1", depth), false)
	e, roots := seeded(u.M)

	ids := []tm.ConfigurationID{roots[0]}
	for k := 0; k < depth; k++ {
		children := e.Explore(ids[len(ids)-1])
		require.Len(t, children, 1, "depth %d", k)
		ids = append(ids, children[0])
	}
	assert.False(t, e.IsHard(ids[depth]))

	for _, k := range []int{0, 1, 31, 32, 33, 64, depth} {
		got := e.Materialize(ids[k])
		assert.Equal(t, k, e.Depth(ids[k]))

		e.Materialize(roots[0])
		for i := 0; i < k; i++ {
			u.Step.Fire(false)
		}
		want := u.M.SaveConfiguration()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("depth %d: soft materialisation differs (-direct +soft):\n%s", k, diff)
		}
	}
}

func TestExplorer_PathTo(t *testing.T) {
	u := testutil.NewUnary("1", false)
	e, roots := seeded(u.M)
	c1 := e.Explore(roots[0])[0]
	c2 := e.Explore(c1)[0]

	p := e.PathTo(c2)
	require.Len(t, p.Configurations, 3)
	assert.Equal(t, []*tm.Transition{u.Step, u.Accept}, p.Transitions)
	assert.Equal(t, u.Y, p.Last().State)
	assert.Equal(t, tm.Cell{Column: 1}, p.Last().Tapes[0].Heads[0])
}

func TestExplorer_SearchAccepting(t *testing.T) {
	u := testutil.NewUnary("11", false)
	e, _ := seeded(u.M)
	p, err := e.Search(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Accepting)
	assert.Equal(t, 3, p.Len())
	assert.Len(t, p.Configurations, 4)
	assert.Equal(t, u.Y, p.Last().State)
	assert.Equal(t, 4, p.Iterations)
}

func TestExplorer_SearchMinimalDepth(t *testing.T) {
	// Two ways to reach the accepting state: a long chain and a short one.
	m := newMachine(t)
	states := make([]int, 6)
	for i := range states {
		states[i] = m.AddState("s")
	}
	m.SetInitialState(states[0])
	m.SetAcceptingState(states[5])
	for _, edge := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 5}} {
		_, _ = m.AddTransition(states[edge[0]], states[edge[1]])
	}
	_, _ = m.AddTransition(states[0], states[4])
	_, _ = m.AddTransition(states[4], states[5])

	e, _ := seeded(m)
	p, err := e.Search(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, states[4], p.Configurations[1].State)
}

func TestExplorer_SearchPrefersAcceptingOverEarlierReject(t *testing.T) {
	m := newMachine(t)
	a := m.AddState("a")
	rej := m.AddState("reject")
	mid := m.AddState("mid")
	acc := m.AddState("accept")
	m.SetInitialState(a)
	m.SetFinalState(rej)
	m.SetAcceptingState(acc)
	_, _ = m.AddTransition(a, rej)
	_, _ = m.AddTransition(a, mid)
	_, _ = m.AddTransition(mid, acc)
	_, _ = m.AddTransition(rej, acc) // final states are never expanded

	e, _ := seeded(m)
	p, err := e.Search(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Accepting)
	assert.Equal(t, []int{a, mid, acc}, []int{p.Configurations[0].State, p.Configurations[1].State, p.Configurations[2].State})
}

func TestExplorer_SearchExhausted(t *testing.T) {
	g := testutil.NewGrid(nil, tm.WithMaximumNonDeterministicSearch(50))
	e, _ := seeded(g.M)
	p, err := e.Search(context.Background())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, tm.ErrSearchExhausted)
	assert.Contains(t, err.Error(), "after 50 configurations")
}

func TestExplorer_SearchCancelled(t *testing.T) {
	g := testutil.NewGrid(nil)
	e, _ := seeded(g.M)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Search(ctx)
	assert.ErrorIs(t, err, tm.ErrSearchCancelled)
}

func TestExplorer_SearchNoResolvablePath(t *testing.T) {
	u := testutil.NewUnary("10", false)
	e, _ := seeded(u.M)
	_, err := e.Search(context.Background())
	assert.ErrorIs(t, err, tm.ErrNoResolvablePath)
}

func TestExplorer_SearchFromAddedRoot(t *testing.T) {
	u := testutil.NewUnary("11", false)
	u.M.ReinitTapes()
	u.Tape.MoveHead(0, tm.Right, false)
	start := u.M.SaveConfiguration()
	start.State = u.A

	e := tm.NewExplorer(u.M)
	root := e.AddRoot(start)
	assert.True(t, e.IsHard(root))
	assert.Equal(t, u.A, e.State(root))

	p, err := e.Search(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Accepting)
	assert.Equal(t, []*tm.Transition{u.Step, u.Accept}, p.Transitions)
	assert.Equal(t, tm.Cell{Column: 1}, p.Configurations[0].Tapes[0].Heads[0])
	assert.Equal(t, 3, p.Iterations)
}

func TestExplorer_CapDiscardsRejectingWitness(t *testing.T) {
	m := newMachine(t)
	m.SetMaximumNonDeterministicSearch(10)
	a := m.AddState("a")
	r := m.AddState("r")
	m.SetInitialState(a)
	m.SetFinalState(r)
	_, _ = m.AddTransition(a, r)
	_, _ = m.AddTransition(a, a)

	e, _ := seeded(m)
	p, err := e.Search(context.Background())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, tm.ErrSearchExhausted)
}
