package turingmachines

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type state struct {
	name      string
	initial   bool
	final     bool
	accepting bool
	out       []*Transition
}

// TuringMachine is a multi-tape, possibly non-deterministic Turing machine:
// a graph of states and guarded transitions over 2-D tapes.
//
// Structural edits (states, transitions, tapes, heads, symbols) must not be
// made while a build is running in the background.
type TuringMachine struct {
	id        string
	bus       *Bus
	logger    *log.Logger
	maxSearch int

	states  []*state
	tapes   []*Tape
	symbols []string
	current int

	buildMu  sync.Mutex
	building bool
	cancel   func()

	run    *Path
	cursor int
	mode   Mode
}

// New creates an empty machine.
func New(opts ...Option) *TuringMachine {
	m := &TuringMachine{
		id:        uuid.NewString(),
		maxSearch: DefaultMaximumNonDeterministicSearch,
		current:   -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.bus == nil {
		m.bus = NewBus()
	}
	if m.logger == nil {
		m.logger = defaultLogger()
	}
	return m
}

// ID returns the machine's identifier.
func (m *TuringMachine) ID() string { return m.id }

// Bus returns the event bus the machine publishes on.
func (m *TuringMachine) Bus() *Bus { return m.bus }

func (m *TuringMachine) publish(topic Topic, data any) {
	if m == nil || m.bus == nil {
		return
	}
	m.bus.Publish(Event{Topic: topic, Machine: m, Data: data})
}

// report publishes err on the error topic, logs it and returns it.
func (m *TuringMachine) report(err error) error {
	m.logger.Warn("turing machine error", "machine", m.id, "err", err)
	m.publish(TopicError, ErrorPayload{Err: err})
	return err
}

//
// States
//

// AddState appends a state and returns its index.
func (m *TuringMachine) AddState(name string) int {
	m.states = append(m.states, &state{name: name})
	id := len(m.states) - 1
	m.publish(TopicStateAdded, StatePayload{State: id, Name: name})
	return id
}

// RemoveState removes a state and every transition into or out of it. Higher
// state indices, and transition endpoints referring to them, shift down by one.
// Any built run is discarded.
func (m *TuringMachine) RemoveState(id int) bool {
	if !m.hasState(id) {
		return false
	}
	m.clearRun()

	for _, t := range m.states[id].out {
		m.publish(TopicTransitionRemoved, TransitionPayload{Transition: t})
	}
	for i, s := range m.states {
		if i == id {
			continue
		}
		s.out = slices.DeleteFunc(s.out, func(t *Transition) bool {
			if t.output == id {
				m.publish(TopicTransitionRemoved, TransitionPayload{Transition: t})
				return true
			}
			return false
		})
	}

	name := m.states[id].name
	m.states = slices.Delete(m.states, id, id+1)
	for _, s := range m.states {
		for _, t := range s.out {
			if t.input > id {
				t.input--
			}
			if t.output > id {
				t.output--
			}
		}
	}
	switch {
	case m.current == id:
		m.current = -1
	case m.current > id:
		m.current--
	}
	m.publish(TopicStateRemoved, StatePayload{State: id, Name: name})
	return true
}

func (m *TuringMachine) hasState(id int) bool {
	return id >= 0 && id < len(m.states)
}

// States returns the number of states.
func (m *TuringMachine) States() int { return len(m.states) }

// StateName returns the name of a state.
func (m *TuringMachine) StateName(id int) string {
	if !m.hasState(id) {
		return ""
	}
	return m.states[id].name
}

// RenameState changes the name of a state. Names need not be unique.
func (m *TuringMachine) RenameState(id int, name string) bool {
	if !m.hasState(id) {
		return false
	}
	m.states[id].name = name
	m.publish(TopicStateRenamed, StatePayload{State: id, Name: name})
	return true
}

// StateIndex returns the first state with the given name, or -1.
func (m *TuringMachine) StateIndex(name string) int {
	for i, s := range m.states {
		if s.name == name {
			return i
		}
	}
	return -1
}

func (m *TuringMachine) IsInitialState(id int) bool   { return m.hasState(id) && m.states[id].initial }
func (m *TuringMachine) IsFinalState(id int) bool     { return m.hasState(id) && m.states[id].final }
func (m *TuringMachine) IsAcceptingState(id int) bool { return m.hasState(id) && m.states[id].accepting }

func (m *TuringMachine) setFlags(id int, fn func(s *state)) bool {
	if !m.hasState(id) {
		return false
	}
	fn(m.states[id])
	m.publish(TopicStateFlagsChanged, StatePayload{State: id, Name: m.states[id].name})
	return true
}

func (m *TuringMachine) SetInitialState(id int) bool {
	return m.setFlags(id, func(s *state) { s.initial = true })
}

func (m *TuringMachine) UnsetInitialState(id int) bool {
	return m.setFlags(id, func(s *state) { s.initial = false })
}

func (m *TuringMachine) SetFinalState(id int) bool {
	return m.setFlags(id, func(s *state) { s.final = true })
}

// UnsetFinalState also clears the accepting flag.
func (m *TuringMachine) UnsetFinalState(id int) bool {
	return m.setFlags(id, func(s *state) { s.final, s.accepting = false, false })
}

// SetAcceptingState also sets the final flag.
func (m *TuringMachine) SetAcceptingState(id int) bool {
	return m.setFlags(id, func(s *state) { s.final, s.accepting = true, true })
}

func (m *TuringMachine) UnsetAcceptingState(id int) bool {
	return m.setFlags(id, func(s *state) { s.accepting = false })
}

// InitialStates returns the indices of all initial states in order.
func (m *TuringMachine) InitialStates() []int {
	var out []int
	for i, s := range m.states {
		if s.initial {
			out = append(out, i)
		}
	}
	return out
}

// CurrentState returns the state the live run is in, or -1.
func (m *TuringMachine) CurrentState() int { return m.current }

func (m *TuringMachine) setCurrentState(id int, log bool) {
	m.current = id
	if log {
		m.publish(TopicCurrentStateChanged, StatePayload{State: id, Name: m.StateName(id)})
	}
}

// IsValid reports whether the machine has at least one initial state and at
// least one final state.
func (m *TuringMachine) IsValid() bool {
	var initial, final bool
	for _, s := range m.states {
		initial = initial || s.initial
		final = final || s.final
	}
	return initial && final
}

//
// Transitions
//

// AddTransition adds a transition between two existing states.
func (m *TuringMachine) AddTransition(input, output int) (*Transition, error) {
	if !m.hasState(input) || !m.hasState(output) {
		return nil, fmt.Errorf("transition %d->%d: %w", input, output, ErrOutOfRange)
	}
	t := &Transition{m: m, input: input, output: output}
	m.states[input].out = append(m.states[input].out, t)
	m.publish(TopicTransitionAdded, TransitionPayload{Transition: t})
	return t, nil
}

// RemoveTransition removes t from its input state.
func (m *TuringMachine) RemoveTransition(t *Transition) bool {
	if t == nil || !m.hasState(t.input) {
		return false
	}
	s := m.states[t.input]
	i := slices.Index(s.out, t)
	if i < 0 {
		return false
	}
	s.out = slices.Delete(s.out, i, i+1)
	m.publish(TopicTransitionRemoved, TransitionPayload{Transition: t})
	return true
}

// TransitionsFrom returns the outgoing transitions of a state in insertion order.
func (m *TuringMachine) TransitionsFrom(id int) []*Transition {
	if !m.hasState(id) {
		return nil
	}
	return slices.Clone(m.states[id].out)
}

// Transitions returns every transition, grouped by input state.
func (m *TuringMachine) Transitions() []*Transition {
	var out []*Transition
	for _, s := range m.states {
		out = append(out, s.out...)
	}
	return out
}

func (m *TuringMachine) eachTransition(fn func(t *Transition)) {
	for _, s := range m.states {
		for _, t := range s.out {
			fn(t)
		}
	}
}

//
// Tapes
//

// AddTape appends an unbounded, empty tape with no heads.
func (m *TuringMachine) AddTape() *Tape {
	t := newTape(m)
	m.tapes = append(m.tapes, t)
	m.publish(TopicTapeAdded, TapePayload{Tape: t})
	return t
}

// RemoveTape removes a tape together with every guard and action using it.
// Any built run is discarded.
func (m *TuringMachine) RemoveTape(t *Tape) bool {
	i := m.tapeIndex(t)
	if i < 0 {
		return false
	}
	m.clearRun()
	m.eachTransition(func(tr *Transition) {
		tr.guards = slices.DeleteFunc(tr.guards, func(g ReadGuard) bool { return g.Tape == t })
		tr.actions = slices.DeleteFunc(tr.actions, func(a Action) bool { return a.Tape == t })
	})
	m.tapes = slices.Delete(m.tapes, i, i+1)
	m.publish(TopicTapeRemoved, TapePayload{Tape: t})
	t.m = nil
	return true
}

// Tapes returns the machine's tapes in order.
func (m *TuringMachine) Tapes() []*Tape {
	return slices.Clone(m.tapes)
}

// Tape returns tape i, or nil.
func (m *TuringMachine) Tape(i int) *Tape {
	if i < 0 || i >= len(m.tapes) {
		return nil
	}
	return m.tapes[i]
}

func (m *TuringMachine) tapeIndex(t *Tape) int {
	return slices.Index(m.tapes, t)
}

// scrubHead drops guards and actions on head h of tape and renumbers the heads
// above it.
func (m *TuringMachine) scrubHead(tape *Tape, h int) {
	m.clearRun()
	m.eachTransition(func(tr *Transition) {
		tr.guards = slices.DeleteFunc(tr.guards, func(g ReadGuard) bool { return g.Tape == tape && g.Head == h })
		for i := range tr.guards {
			if tr.guards[i].Tape == tape && tr.guards[i].Head > h {
				tr.guards[i].Head--
			}
		}
		tr.actions = slices.DeleteFunc(tr.actions, func(a Action) bool { return a.Tape == tape && a.Head == h })
		for i := range tr.actions {
			if tr.actions[i].Tape == tape && tr.actions[i].Head > h {
				tr.actions[i].Head--
			}
		}
	})
}

// ReinitTapes calls Reinit on every tape.
func (m *TuringMachine) ReinitTapes() {
	for _, t := range m.tapes {
		t.Reinit()
	}
}
