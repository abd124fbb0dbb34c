package turingmachines

import (
	"fmt"
	"slices"
	"strings"
)

// ReadGuard restricts what one head must read for a transition to be valid.
// The head must read one of Symbols; Blank in Symbols accepts an empty cell.
type ReadGuard struct {
	Tape    *Tape
	Head    int
	Symbols []string
}

// Transition is an edge of the automaton graph. It is valid when every guard
// holds; firing it runs its actions in order and moves to the output state.
type Transition struct {
	m       *TuringMachine
	input   int
	output  int
	guards  []ReadGuard
	actions []Action
}

// Input returns the index of the state the transition leaves from.
func (t *Transition) Input() int { return t.input }

// Output returns the index of the state the transition leads to.
func (t *Transition) Output() int { return t.output }

// Guards returns a copy of the read guards in insertion order.
func (t *Transition) Guards() []ReadGuard {
	out := make([]ReadGuard, len(t.guards))
	for i, g := range t.guards {
		out[i] = ReadGuard{Tape: g.Tape, Head: g.Head, Symbols: slices.Clone(g.Symbols)}
	}
	return out
}

func (t *Transition) guardIndex(tape *Tape, head int) int {
	for i, g := range t.guards {
		if g.Tape == tape && g.Head == head {
			return i
		}
	}
	return -1
}

// ReadSymbols returns the symbols accepted under a head. ok is false when the
// head is unconstrained.
func (t *Transition) ReadSymbols(tape *Tape, head int) (symbols []string, ok bool) {
	i := t.guardIndex(tape, head)
	if i < 0 {
		return nil, false
	}
	return slices.Clone(t.guards[i].Symbols), true
}

// AddReadSymbols adds accepted symbols for a head. Blank accepts an empty cell.
func (t *Transition) AddReadSymbols(tape *Tape, head int, symbols ...string) {
	if tape == nil || head < 0 || head >= tape.Heads() {
		return
	}
	i := t.guardIndex(tape, head)
	if i < 0 {
		t.guards = append(t.guards, ReadGuard{Tape: tape, Head: head})
		i = len(t.guards) - 1
	}
	for _, s := range symbols {
		if slices.Contains(t.guards[i].Symbols, s) {
			continue
		}
		t.guards[i].Symbols = append(t.guards[i].Symbols, s)
		t.m.publish(TopicReadSymbolAdded, ReadSymbolPayload{Transition: t, Tape: tape, Head: head, Symbol: s})
	}
	if len(t.guards[i].Symbols) == 0 {
		t.guards = slices.Delete(t.guards, i, i+1)
	}
}

// RemoveReadSymbols removes accepted symbols for a head. A guard left with no
// symbols is dropped, which leaves the head unconstrained.
func (t *Transition) RemoveReadSymbols(tape *Tape, head int, symbols ...string) {
	i := t.guardIndex(tape, head)
	if i < 0 {
		return
	}
	for _, s := range symbols {
		j := slices.Index(t.guards[i].Symbols, s)
		if j < 0 {
			continue
		}
		t.guards[i].Symbols = slices.Delete(t.guards[i].Symbols, j, j+1)
		t.m.publish(TopicReadSymbolRemoved, ReadSymbolPayload{Transition: t, Tape: tape, Head: head, Symbol: s})
	}
	if len(t.guards[i].Symbols) == 0 {
		t.guards = slices.Delete(t.guards, i, i+1)
	}
}

// IsCurrentlyValid reports whether every guard is satisfied by the live tapes.
func (t *Transition) IsCurrentlyValid() bool {
	for _, g := range t.guards {
		if !slices.Contains(g.Symbols, g.Tape.Read(g.Head)) {
			return false
		}
	}
	return true
}

// Actions returns a copy of the action list.
func (t *Transition) Actions() []Action {
	return slices.Clone(t.actions)
}

// AddAction appends an action.
func (t *Transition) AddAction(a Action) {
	if a.Tape == nil {
		return
	}
	t.actions = append(t.actions, a)
	t.m.publish(TopicActionAdded, ActionPayload{Transition: t, Index: len(t.actions) - 1, Action: a})
}

// RemoveAction removes the action at index i.
func (t *Transition) RemoveAction(i int) bool {
	if i < 0 || i >= len(t.actions) {
		return false
	}
	a := t.actions[i]
	t.actions = slices.Delete(t.actions, i, i+1)
	t.m.publish(TopicActionRemoved, ActionPayload{Transition: t, Index: i, Action: a})
	return true
}

// Fire runs the actions in order and makes the output state current. Guards
// are not checked. log gates the notifications.
func (t *Transition) Fire(log bool) {
	if log {
		t.m.publish(TopicTransitionFired, TransitionPayload{Transition: t})
	}
	for _, a := range t.actions {
		a.apply(log)
	}
	t.m.setCurrentState(t.output, log)
}

func (t *Transition) String() string {
	s := fmt.Sprintf("%d->%d", t.input, t.output)
	if l := t.Label(); l != "" {
		s += " " + l
	}
	return s
}

// Label renders the guards and actions, e.g. "[T0H0:a|_] / T0H1:LEFT".
// Blank is shown as "_".
func (t *Transition) Label() string {
	var b strings.Builder
	if len(t.guards) > 0 {
		b.WriteString("[")
		for i, g := range t.guards {
			if i > 0 {
				b.WriteString(" ")
			}
			syms := make([]string, len(g.Symbols))
			for j, s := range g.Symbols {
				if s == Blank {
					s = "_"
				}
				syms[j] = s
			}
			fmt.Fprintf(&b, "T%dH%d:%s", g.Tape.Index(), g.Head, strings.Join(syms, "|"))
		}
		b.WriteString("]")
	}
	if len(t.actions) > 0 {
		acts := make([]string, len(t.actions))
		for i, a := range t.actions {
			acts[i] = a.String()
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("/ ")
		b.WriteString(strings.Join(acts, ", "))
	}
	return b.String()
}
