package turingmachines_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/testutil"
)

func TestIsDeterministic(t *testing.T) {
	type guard struct {
		head int
		syms []string
	}
	tests := []struct {
		name     string
		initials int
		out      [][]guard
		want     bool
	}{
		{"single transition", 1, [][]guard{{{0, []string{"a"}}}}, true},
		{"disjoint guards", 1, [][]guard{{{0, []string{"a"}}}, {{0, []string{"b", tm.Blank}}}}, true},
		{"overlapping guards", 1, [][]guard{{{0, []string{"a", "b"}}}, {{0, []string{"b"}}}}, false},
		{"two unguarded", 1, [][]guard{nil, nil}, false},
		{"unguarded against guarded", 1, [][]guard{nil, {{0, []string{"a"}}}}, false},
		{"different heads overlap", 1, [][]guard{{{0, []string{"a"}}}, {{1, []string{"a"}}}}, false},
		{"two heads disjoint on one", 1, [][]guard{
			{{0, []string{"a"}}, {1, []string{"a"}}},
			{{0, []string{"a"}}, {1, []string{"b"}}},
		}, true},
		{"two initial states", 2, [][]guard{{{0, []string{"a"}}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t)
			_ = m.AddSymbol("a")
			_ = m.AddSymbol("b")
			tape := m.AddTape()
			tape.AddHead()
			tape.AddHead()
			s := m.AddState("s")
			m.SetInitialState(s)
			for i := 1; i < tt.initials; i++ {
				m.SetInitialState(m.AddState("extra"))
			}
			for _, guards := range tt.out {
				tr, _ := m.AddTransition(s, s)
				for _, g := range guards {
					tr.AddReadSymbols(tape, g.head, g.syms...)
				}
			}
			assert.Equal(t, tt.want, m.IsDeterministic())
		})
	}
}

func TestIsDeterministic_Scenarios(t *testing.T) {
	assert.True(t, testutil.NewUnary("11", true).M.IsDeterministic())
	assert.False(t, testutil.NewGrid(nil).M.IsDeterministic())
}

func TestIsDeterministic_GuardSymbolOutsideAlphabet(t *testing.T) {
	m := newMachine(t)
	tape := m.AddTape()
	tape.AddHead()
	tape.AddHead()
	s := m.AddState("s")
	m.SetInitialState(s)
	first, _ := m.AddTransition(s, s)
	first.AddReadSymbols(tape, 0, "zz")
	second, _ := m.AddTransition(s, s)
	second.AddReadSymbols(tape, 1, "yy")
	assert.False(t, m.IsDeterministic())
}
