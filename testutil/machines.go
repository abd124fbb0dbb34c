// Package testutil provides ready-made machines shared by the tests of the
// engine and its adapters.
package testutil

import (
	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/internal/logger"
)

// Unary is a single-tape machine over {0,1}: state A walks right over 1s and
// moves to the accepting state Y on a blank. With reject set, reading a 0 in A
// leads to the final non-accepting state R.
type Unary struct {
	M      *tm.TuringMachine
	Tape   *tm.Tape
	A      int
	Y      int
	R      int
	Step   *tm.Transition
	Accept *tm.Transition
	Reject *tm.Transition
}

// NewUnary builds the machine with input written from column 0 on line 0.
func NewUnary(input string, reject bool, opts ...tm.Option) *Unary {
	opts = append([]tm.Option{tm.WithLogger(logger.Discard())}, opts...)
	m := tm.New(opts...)
	_ = m.AddSymbol("0")
	_ = m.AddSymbol("1")

	u := &Unary{M: m, R: -1}
	u.Tape = m.AddTape()
	u.Tape.AddHead()

	u.A = m.AddState("A")
	m.SetInitialState(u.A)
	u.Y = m.AddState("Y")
	m.SetAcceptingState(u.Y)

	u.Step, _ = m.AddTransition(u.A, u.A)
	u.Step.AddReadSymbols(u.Tape, 0, "1")
	u.Step.AddAction(tm.Move(u.Tape, 0, tm.Right))

	u.Accept, _ = m.AddTransition(u.A, u.Y)
	u.Accept.AddReadSymbols(u.Tape, 0, tm.Blank)

	if reject {
		u.R = m.AddState("R")
		m.SetFinalState(u.R)
		u.Reject, _ = m.AddTransition(u.A, u.R)
		u.Reject.AddReadSymbols(u.Tape, 0, "0")
	}

	for i, r := range input {
		u.Tape.WriteInput(i, 0, string(r))
	}
	return u
}

// Grid is a 3x3 bounded tape with two heads. From S either head may move in
// any direction; S goes to the accepting state Y as soon as a head reads "0".
type Grid struct {
	M    *tm.TuringMachine
	Tape *tm.Tape
	S    int
	Y    int
}

// NewGrid builds the grid machine. Head 0 starts at (0,0), head 1 at (2,2).
// Every cell holds "1" except target, which holds "0"; a nil target leaves
// the grid without any "0" so the search never ends on its own.
func NewGrid(target *tm.Cell, opts ...tm.Option) *Grid {
	opts = append([]tm.Option{tm.WithLogger(logger.Discard())}, opts...)
	m := tm.New(opts...)
	_ = m.AddSymbol("0")
	_ = m.AddSymbol("1")

	g := &Grid{M: m}
	g.Tape = m.AddTape()
	g.Tape.SetLeftBound(tm.Bound(0))
	g.Tape.SetRightBound(tm.Bound(2))
	g.Tape.SetBottomBound(tm.Bound(0))
	g.Tape.SetTopBound(tm.Bound(2))
	h0 := g.Tape.AddHead()
	h1 := g.Tape.AddHead()
	g.Tape.SetHeadInitialPosition(h0, 0, 0)
	g.Tape.SetHeadInitialPosition(h1, 2, 2)

	for line := 0; line <= 2; line++ {
		for col := 0; col <= 2; col++ {
			sym := "1"
			if target != nil && target.Column == col && target.Line == line {
				sym = "0"
			}
			g.Tape.WriteInput(col, line, sym)
		}
	}

	g.S = m.AddState("S")
	m.SetInitialState(g.S)
	g.Y = m.AddState("Y")
	m.SetAcceptingState(g.Y)

	for _, h := range []int{h0, h1} {
		t, _ := m.AddTransition(g.S, g.Y)
		t.AddReadSymbols(g.Tape, h, "0")
	}
	for _, h := range []int{h0, h1} {
		for _, d := range []tm.Direction{tm.Up, tm.Down, tm.Left, tm.Right} {
			t, _ := m.AddTransition(g.S, g.S)
			t.AddAction(tm.Move(g.Tape, h, d))
		}
	}
	return g
}

// Chain is a three-state machine 0 -> 1 -> 2 with an extra edge 0 -> 2 and a
// self loop on 2.
type Chain struct {
	M           *tm.TuringMachine
	Transitions []*tm.Transition
}

// NewChain builds the chain machine.
func NewChain(opts ...tm.Option) *Chain {
	opts = append([]tm.Option{tm.WithLogger(logger.Discard())}, opts...)
	m := tm.New(opts...)
	c := &Chain{M: m}
	for _, name := range []string{"q0", "q1", "q2"} {
		m.AddState(name)
	}
	m.SetInitialState(0)
	m.SetAcceptingState(2)
	for _, e := range [][2]int{{0, 1}, {1, 2}, {0, 2}, {2, 2}} {
		t, _ := m.AddTransition(e[0], e[1])
		c.Transitions = append(c.Transitions, t)
	}
	return c
}
