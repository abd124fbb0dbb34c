package turingmachines

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Definition is a serializable description of a machine: the same add/edit
// calls a loader replays to rebuild it. States, tapes and heads are referred
// to by index.
type Definition struct {
	ID                            string                 `json:"id" yaml:"id"`
	MaximumNonDeterministicSearch int                    `json:"maximumNonDeterministicSearch,omitempty" yaml:"maximumNonDeterministicSearch,omitempty"`
	Symbols                       []string               `json:"symbols" yaml:"symbols"`
	States                        []StateDefinition      `json:"states" yaml:"states"`
	Tapes                         []TapeDefinition       `json:"tapes" yaml:"tapes"`
	Transitions                   []TransitionDefinition `json:"transitions" yaml:"transitions"`
}

type StateDefinition struct {
	Name      string `json:"name" yaml:"name"`
	Initial   bool   `json:"initial,omitempty" yaml:"initial,omitempty"`
	Final     bool   `json:"final,omitempty" yaml:"final,omitempty"`
	Accepting bool   `json:"accepting,omitempty" yaml:"accepting,omitempty"`
}

type TapeDefinition struct {
	Left   *int              `json:"left,omitempty" yaml:"left,omitempty"`
	Right  *int              `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom *int              `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Top    *int              `json:"top,omitempty" yaml:"top,omitempty"`
	Heads  []CellDefinition  `json:"heads" yaml:"heads"`
	Input  []InputDefinition `json:"input,omitempty" yaml:"input,omitempty"`
}

type CellDefinition struct {
	Column int `json:"column" yaml:"column"`
	Line   int `json:"line" yaml:"line"`
}

type InputDefinition struct {
	Column int    `json:"column" yaml:"column"`
	Line   int    `json:"line" yaml:"line"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

type TransitionDefinition struct {
	From    int                `json:"from" yaml:"from"`
	To      int                `json:"to" yaml:"to"`
	Guards  []GuardDefinition  `json:"guards,omitempty" yaml:"guards,omitempty"`
	Actions []ActionDefinition `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// GuardDefinition lists accepted symbols for a head; "" accepts blank.
type GuardDefinition struct {
	Tape    int      `json:"tape" yaml:"tape"`
	Head    int      `json:"head" yaml:"head"`
	Symbols []string `json:"symbols" yaml:"symbols"`
}

// ActionDefinition is either a move (Move set to UP, DOWN, LEFT or RIGHT) or
// a write of Symbol ("" erases).
type ActionDefinition struct {
	Tape   int    `json:"tape" yaml:"tape"`
	Head   int    `json:"head" yaml:"head"`
	Move   string `json:"move,omitempty" yaml:"move,omitempty"`
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
}

// Validate checks every index used by the definition.
func (d *Definition) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for _, s := range d.Symbols {
		switch {
		case s == Blank:
			errs = append(errs, fmt.Errorf("symbols: %w", ErrInvalidSymbol))
		case seen[s]:
			errs = append(errs, fmt.Errorf("symbol %q: %w", s, ErrDuplicateSymbol))
		}
		seen[s] = true
	}
	for i, s := range d.States {
		if s.Accepting && !s.Final {
			errs = append(errs, fmt.Errorf("state %d (%s): accepting state must be final", i, s.Name))
		}
	}
	headOK := func(tape, head int) bool {
		return tape >= 0 && tape < len(d.Tapes) && head >= 0 && head < len(d.Tapes[tape].Heads)
	}
	for i, t := range d.Transitions {
		if t.From < 0 || t.From >= len(d.States) || t.To < 0 || t.To >= len(d.States) {
			errs = append(errs, fmt.Errorf("transition %d: %d->%d: %w", i, t.From, t.To, ErrOutOfRange))
		}
		for _, g := range t.Guards {
			if !headOK(g.Tape, g.Head) {
				errs = append(errs, fmt.Errorf("transition %d guard on tape %d head %d: %w", i, g.Tape, g.Head, ErrOutOfRange))
			}
		}
		for _, a := range t.Actions {
			if !headOK(a.Tape, a.Head) {
				errs = append(errs, fmt.Errorf("transition %d action on tape %d head %d: %w", i, a.Tape, a.Head, ErrOutOfRange))
			}
			if a.Move != "" {
				if _, err := ParseDirection(a.Move); err != nil {
					errs = append(errs, fmt.Errorf("transition %d: %w", i, err))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// NewFromDefinition builds a machine from d. Options are applied after the
// definition's own id and search cap.
func NewFromDefinition(d Definition, opts ...Option) (*TuringMachine, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	base := []Option{WithID(d.ID), WithMaximumNonDeterministicSearch(d.MaximumNonDeterministicSearch)}
	m := New(append(base, opts...)...)

	for _, s := range d.Symbols {
		if err := m.AddSymbol(s); err != nil {
			return nil, err
		}
	}
	for _, sd := range d.States {
		id := m.AddState(sd.Name)
		if sd.Initial {
			m.SetInitialState(id)
		}
		if sd.Final {
			m.SetFinalState(id)
		}
		if sd.Accepting {
			m.SetAcceptingState(id)
		}
	}
	for _, td := range d.Tapes {
		t := m.AddTape()
		t.SetLeftBound(td.Left)
		t.SetRightBound(td.Right)
		t.SetBottomBound(td.Bottom)
		t.SetTopBound(td.Top)
		for _, h := range td.Heads {
			t.SetHeadInitialPosition(t.AddHead(), h.Column, h.Line)
		}
		for _, in := range td.Input {
			t.WriteInput(in.Column, in.Line, in.Symbol)
		}
	}
	for _, trd := range d.Transitions {
		tr, err := m.AddTransition(trd.From, trd.To)
		if err != nil {
			return nil, err
		}
		for _, g := range trd.Guards {
			tr.AddReadSymbols(m.tapes[g.Tape], g.Head, g.Symbols...)
		}
		for _, a := range trd.Actions {
			tape := m.tapes[a.Tape]
			if a.Move != "" {
				dir, _ := ParseDirection(a.Move)
				tr.AddAction(Move(tape, a.Head, dir))
			} else {
				tr.AddAction(Write(tape, a.Head, a.Symbol))
			}
		}
	}
	return m, nil
}

// Definition exports the machine's structure and tape inputs.
func (m *TuringMachine) Definition() Definition {
	d := Definition{
		ID:                            m.id,
		MaximumNonDeterministicSearch: m.maxSearch,
		Symbols:                       slices.Clone(m.symbols),
	}
	for _, s := range m.states {
		d.States = append(d.States, StateDefinition{Name: s.name, Initial: s.initial, Final: s.final, Accepting: s.accepting})
	}
	for _, t := range m.tapes {
		td := TapeDefinition{Left: t.LeftBound(), Right: t.RightBound(), Bottom: t.BottomBound(), Top: t.TopBound()}
		for _, h := range t.heads {
			td.Heads = append(td.Heads, CellDefinition{Column: h.initial.Column, Line: h.initial.Line})
		}
		cells := slices.SortedFunc(maps.Keys(t.input), func(a, b Cell) int {
			return cmp.Or(cmp.Compare(a.Line, b.Line), cmp.Compare(a.Column, b.Column))
		})
		for _, c := range cells {
			td.Input = append(td.Input, InputDefinition{Column: c.Column, Line: c.Line, Symbol: t.input[c]})
		}
		d.Tapes = append(d.Tapes, td)
	}
	m.eachTransition(func(t *Transition) {
		trd := TransitionDefinition{From: t.input, To: t.output}
		for _, g := range t.guards {
			trd.Guards = append(trd.Guards, GuardDefinition{Tape: g.Tape.Index(), Head: g.Head, Symbols: slices.Clone(g.Symbols)})
		}
		for _, a := range t.actions {
			ad := ActionDefinition{Tape: a.Tape.Index(), Head: a.Head}
			if a.Kind == MoveAction {
				ad.Move = a.Direction.String()
			} else {
				ad.Symbol = a.Symbol
			}
			trd.Actions = append(trd.Actions, ad)
		}
		d.Transitions = append(d.Transitions, trd)
	})
	return d
}
