package turingmachines_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/internal/logger"
	"github.com/comalice/turingmachines/testutil"
)

func TestDefinition_RoundTrip(t *testing.T) {
	for name, m := range map[string]*tm.TuringMachine{
		"unary": testutil.NewUnary("101", true).M,
		"grid":  testutil.NewGrid(&tm.Cell{Column: 2, Line: 1}).M,
		"chain": testutil.NewChain().M,
	} {
		t.Run(name, func(t *testing.T) {
			d := m.Definition()
			rebuilt, err := tm.NewFromDefinition(d, tm.WithLogger(logger.Discard()))
			require.NoError(t, err)
			assert.Equal(t, m.ID(), rebuilt.ID())
			if diff := cmp.Diff(d, rebuilt.Definition()); diff != "" {
				t.Errorf("definition changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefinition_RebuiltMachineRuns(t *testing.T) {
	g := testutil.NewGrid(&tm.Cell{Column: 1, Line: 0})
	rebuilt, err := tm.NewFromDefinition(g.M.Definition(), tm.WithLogger(logger.Discard()))
	require.NoError(t, err)
	require.NoError(t, rebuilt.Build(context.Background()))
	assert.Equal(t, 2, rebuilt.Path().Len())
}

func TestDefinition_Export(t *testing.T) {
	u := testutil.NewUnary("10", false)
	d := u.M.Definition()

	assert.Equal(t, []string{"0", "1"}, d.Symbols)
	assert.Equal(t, []tm.StateDefinition{
		{Name: "A", Initial: true},
		{Name: "Y", Final: true, Accepting: true},
	}, d.States)
	require.Len(t, d.Tapes, 1)
	assert.Equal(t, []tm.InputDefinition{{Column: 0, Symbol: "1"}, {Column: 1, Symbol: "0"}}, d.Tapes[0].Input)
	assert.Equal(t, []tm.TransitionDefinition{
		{
			From:    0,
			To:      0,
			Guards:  []tm.GuardDefinition{{Tape: 0, Head: 0, Symbols: []string{"1"}}},
			Actions: []tm.ActionDefinition{{Tape: 0, Head: 0, Move: "RIGHT"}},
		},
		{
			From:   0,
			To:     1,
			Guards: []tm.GuardDefinition{{Tape: 0, Head: 0, Symbols: []string{tm.Blank}}},
		},
	}, d.Transitions)
}

func TestDefinition_Validate(t *testing.T) {
	d := tm.Definition{
		Symbols: []string{"a", "a", ""},
		States:  []tm.StateDefinition{{Name: "s", Accepting: true}},
		Tapes:   []tm.TapeDefinition{{Heads: []tm.CellDefinition{{}}}},
		Transitions: []tm.TransitionDefinition{
			{From: 0, To: 3},
			{From: 0, To: 0, Guards: []tm.GuardDefinition{{Tape: 0, Head: 2, Symbols: []string{"a"}}}},
			{From: 0, To: 0, Actions: []tm.ActionDefinition{{Tape: 0, Head: 0, Move: "SIDEWAYS"}}},
		},
	}
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, tm.ErrDuplicateSymbol)
	assert.ErrorIs(t, err, tm.ErrInvalidSymbol)
	assert.ErrorIs(t, err, tm.ErrOutOfRange)
	assert.Contains(t, err.Error(), "accepting state must be final")
	assert.Contains(t, err.Error(), "SIDEWAYS")

	_, err = tm.NewFromDefinition(d)
	assert.ErrorIs(t, err, tm.ErrOutOfRange)
}
