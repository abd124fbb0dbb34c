package turingmachines_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/internal/logger"
)

func newMachine(t *testing.T) *tm.TuringMachine {
	t.Helper()
	return tm.New(tm.WithLogger(logger.Discard()))
}

func TestTape_AddHeadMidpoint(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()

	h := tape.AddHead()
	pos, ok := tape.HeadInitialPosition(h)
	require.True(t, ok)
	assert.Equal(t, tm.Cell{Column: 0, Line: 0}, pos)

	tape.SetLeftBound(tm.Bound(2))
	tape.SetRightBound(tm.Bound(8))
	tape.SetBottomBound(tm.Bound(-4))
	h = tape.AddHead()
	pos, _ = tape.HeadInitialPosition(h)
	assert.Equal(t, tm.Cell{Column: 5, Line: 0}, pos)

	tape.SetTopBound(tm.Bound(-2))
	h = tape.AddHead()
	pos, _ = tape.HeadInitialPosition(h)
	assert.Equal(t, tm.Cell{Column: 5, Line: -3}, pos)
}

func TestTape_BoundsClampHeadsAndInput(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	h := tape.AddHead()
	tape.SetHeadInitialPosition(h, -5, 7)
	for c := -6; c <= 6; c++ {
		tape.WriteInput(c, 0, "x")
	}

	tape.SetLeftBound(tm.Bound(-2))
	tape.SetTopBound(tm.Bound(3))

	pos, _ := tape.HeadInitialPosition(h)
	assert.Equal(t, tm.Cell{Column: -2, Line: 3}, pos)
	for c := range tape.InputCells() {
		assert.GreaterOrEqual(t, c.Column, -2)
		assert.LessOrEqual(t, c.Line, 3)
	}
	assert.Len(t, tape.InputCells(), 9)

	tape.SetRightBound(tm.Bound(1))
	assert.Len(t, tape.InputCells(), 4)
	tape.SetBottomBound(tm.Bound(1))
	assert.Empty(t, tape.InputCells())
}

func TestTape_InvertedBoundSnapsOpposite(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	tape.SetRightBound(tm.Bound(3))
	tape.SetLeftBound(tm.Bound(5))
	assert.Equal(t, 5, *tape.LeftBound())
	assert.Equal(t, 5, *tape.RightBound())

	tape.SetTopBound(tm.Bound(0))
	tape.SetBottomBound(tm.Bound(2))
	assert.Equal(t, 2, *tape.TopBound())

	tape.SetTopBound(tm.Bound(-1))
	assert.Equal(t, -1, *tape.BottomBound())

	tape.SetLeftBound(nil)
	assert.Nil(t, tape.LeftBound())
	assert.Equal(t, 5, *tape.RightBound())
}

func TestTape_LiveCellsSurviveBoundChange(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	h := tape.AddHead()
	tape.Reinit()
	tape.Write(h, "a", false)
	tape.SetLeftBound(tm.Bound(1))
	assert.Equal(t, "a", tape.Cell(0, 0))
	assert.Equal(t, tm.Blank, tape.Input(0, 0))
}

func TestTape_ReinitIdempotent(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	tape.AddHead()
	h := tape.AddHead()
	tape.SetHeadInitialPosition(h, 3, -1)
	tape.WriteInput(0, 0, "a")
	tape.WriteInput(3, -1, "b")

	tape.Reinit()
	first := tape.SaveConfiguration()
	tape.Reinit()
	second := tape.SaveConfiguration()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reinit not idempotent (-first +second):\n%s", diff)
	}
	assert.Equal(t, "b", tape.Read(h))
}

func TestTape_ReinitDiscardsWork(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	h := tape.AddHead()
	tape.WriteInput(0, 0, "a")
	tape.Reinit()
	tape.Write(h, "z", false)
	tape.MoveHead(h, tm.Up, false)

	tape.Reinit()
	assert.Equal(t, "a", tape.Read(h))
	pos, _ := tape.HeadPosition(h)
	assert.Equal(t, tm.Cell{}, pos)
}

func TestTape_MoveHeadStopsAtBound(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	tape.SetLeftBound(tm.Bound(0))
	tape.SetRightBound(tm.Bound(1))
	h := tape.AddHead()
	tape.Reinit()

	tape.MoveHead(h, tm.Left, false)
	pos, _ := tape.HeadPosition(h)
	assert.Equal(t, tm.Cell{Column: 0}, pos)

	tape.MoveHead(h, tm.Right, false)
	tape.MoveHead(h, tm.Right, false)
	pos, _ = tape.HeadPosition(h)
	assert.Equal(t, tm.Cell{Column: 1}, pos)

	tape.MoveHead(h, tm.Up, false)
	tape.MoveHead(h, tm.Up, false)
	pos, _ = tape.HeadPosition(h)
	assert.Equal(t, tm.Cell{Column: 1, Line: 2}, pos)

	tape.MoveHead(5, tm.Up, false)
}

func TestTape_WriteBlankClears(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	h := tape.AddHead()
	tape.Reinit()

	tape.Write(h, "q", false)
	assert.Equal(t, "q", tape.Read(h))
	tape.Write(h, tm.Blank, false)
	assert.Equal(t, tm.Blank, tape.Read(h))
	assert.Empty(t, tape.Cells())

	tape.WriteInput(4, 4, "x")
	tape.WriteInput(4, 4, tm.Blank)
	assert.Empty(t, tape.InputCells())
}

func TestTape_SnapshotIsDeepCopy(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	h := tape.AddHead()
	tape.Reinit()
	tape.Write(h, "a", false)

	snap := tape.SaveConfiguration()
	tape.Write(h, "b", false)
	tape.MoveHead(h, tm.Right, false)
	assert.Equal(t, "a", snap.Cells[tm.Cell{}])
	assert.Equal(t, tm.Cell{}, snap.Heads[0])

	tape.LoadConfiguration(snap, false)
	assert.Equal(t, "a", tape.Read(h))
	tape.Write(h, "c", false)
	assert.Equal(t, "a", snap.Cells[tm.Cell{}])
}

func TestTape_RemoveHeadRenumbersGuardsAndActions(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	tape.AddHead()
	tape.AddHead()
	tape.AddHead()
	s := m.AddState("s")
	tr, err := m.AddTransition(s, s)
	require.NoError(t, err)
	tr.AddReadSymbols(tape, 0, "a")
	tr.AddReadSymbols(tape, 2, "c")
	tr.AddAction(tm.Move(tape, 0, tm.Left))
	tr.AddAction(tm.Write(tape, 2, "z"))

	require.True(t, tape.RemoveHead(0))
	assert.False(t, tape.RemoveHead(7))
	assert.Equal(t, 2, tape.Heads())

	guards := tr.Guards()
	require.Len(t, guards, 1)
	assert.Equal(t, 1, guards[0].Head)
	assert.Equal(t, []string{"c"}, guards[0].Symbols)

	actions := tr.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, 1, actions[0].Head)
	assert.Equal(t, tm.WriteAction, actions[0].Kind)
}

func TestTape_EventsOnlyWhenLogging(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	h := tape.AddHead()
	tape.Reinit()

	var moves []tm.HeadPayload
	var writes []tm.WritePayload
	m.Bus().Subscribe(tm.TopicHeadMoved, func(e tm.Event) { moves = append(moves, e.Data.(tm.HeadPayload)) })
	m.Bus().Subscribe(tm.TopicHeadWrite, func(e tm.Event) { writes = append(writes, e.Data.(tm.WritePayload)) })

	tape.MoveHead(h, tm.Right, false)
	tape.Write(h, "a", false)
	assert.Empty(t, moves)
	assert.Empty(t, writes)

	tape.MoveHead(h, tm.Up, true)
	tape.Write(h, "b", true)
	require.Len(t, moves, 1)
	assert.Equal(t, tm.HeadPayload{Tape: tape, Head: h, Column: 1, Line: 1}, moves[0])
	require.Len(t, writes, 1)
	assert.Equal(t, "b", writes[0].Symbol)
	assert.Equal(t, 1, writes[0].Column)
}
