// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/internal/logger"
)

// GenUnary creates a single-tape machine that walks right over n "1"s and
// accepts on the blank after them. Its run has n+1 transitions.
func GenUnary(n int) *tm.TuringMachine {
	m := tm.New(tm.WithLogger(logger.Discard()))
	_ = m.AddSymbol("1")
	tape := m.AddTape()
	tape.AddHead()
	for i := 0; i < n; i++ {
		tape.WriteInput(i, 0, "1")
	}
	a := m.AddState("A")
	y := m.AddState("Y")
	m.SetInitialState(a)
	m.SetAcceptingState(y)
	step, _ := m.AddTransition(a, a)
	step.AddReadSymbols(tape, 0, "1")
	step.AddAction(tm.Move(tape, 0, tm.Right))
	accept, _ := m.AddTransition(a, y)
	accept.AddReadSymbols(tape, 0, tm.Blank)
	return m
}

// GenGrid creates a size x size bounded tape with two heads in opposite
// corners and a single "0" in the bottom-right corner. Either head may move
// in any direction; reading the "0" accepts.
func GenGrid(size int) *tm.TuringMachine {
	m := tm.New(tm.WithLogger(logger.Discard()), tm.WithMaximumNonDeterministicSearch(1<<30))
	_ = m.AddSymbol("0")
	_ = m.AddSymbol("1")
	tape := m.AddTape()
	tape.SetLeftBound(tm.Bound(0))
	tape.SetRightBound(tm.Bound(size - 1))
	tape.SetBottomBound(tm.Bound(0))
	tape.SetTopBound(tm.Bound(size - 1))
	h0, h1 := tape.AddHead(), tape.AddHead()
	tape.SetHeadInitialPosition(h0, 0, 0)
	tape.SetHeadInitialPosition(h1, size-1, size-1)
	for line := 0; line < size; line++ {
		for col := 0; col < size; col++ {
			tape.WriteInput(col, line, "1")
		}
	}
	tape.WriteInput(size-1, 0, "0")

	s := m.AddState("S")
	y := m.AddState("Y")
	m.SetInitialState(s)
	m.SetAcceptingState(y)
	for _, h := range []int{h0, h1} {
		t, _ := m.AddTransition(s, y)
		t.AddReadSymbols(tape, h, "0")
	}
	for _, h := range []int{h0, h1} {
		for _, d := range []tm.Direction{tm.Up, tm.Down, tm.Left, tm.Right} {
			t, _ := m.AddTransition(s, s)
			t.AddAction(tm.Move(tape, h, d))
		}
	}
	return m
}
