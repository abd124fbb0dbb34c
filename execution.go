package turingmachines

import (
	"context"
	"fmt"
	"slices"
)

// Mode is the execution controller's state.
type Mode int

const (
	// ModeIdle means no run is loaded.
	ModeIdle Mode = iota
	// ModeBuilt means a run found by Build is loaded.
	ModeBuilt
	// ModeManual means the caller is choosing transitions by hand.
	ModeManual
)

func (md Mode) String() string {
	switch md {
	case ModeIdle:
		return "idle"
	case ModeBuilt:
		return "built"
	case ModeManual:
		return "manual"
	}
	return "unknown"
}

// Mode returns the controller state.
func (m *TuringMachine) Mode() Mode { return m.mode }

// IsBuilt reports whether a run (built or manual) is loaded.
func (m *TuringMachine) IsBuilt() bool { return m.run != nil }

// Cursor returns the number of transitions of the loaded run already played.
func (m *TuringMachine) Cursor() int { return m.cursor }

// Path returns a copy of the loaded run, or nil.
func (m *TuringMachine) Path() *Path {
	if m.run == nil {
		return nil
	}
	p := *m.run
	p.Configurations = slices.Clone(m.run.Configurations)
	p.Transitions = slices.Clone(m.run.Transitions)
	return &p
}

func (m *TuringMachine) clearRun() {
	m.run = nil
	m.cursor = 0
	m.mode = ModeIdle
}

// ClearBuild discards the loaded run. The tapes are left as they are.
func (m *TuringMachine) ClearBuild() {
	m.clearRun()
}

//
// Automatic build
//

func (m *TuringMachine) startBuild(cancel context.CancelFunc) bool {
	m.buildMu.Lock()
	defer m.buildMu.Unlock()
	if m.building {
		return false
	}
	m.building = true
	m.cancel = cancel
	return true
}

func (m *TuringMachine) finishBuild() {
	m.buildMu.Lock()
	defer m.buildMu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
	m.building = false
	m.cancel = nil
}

// IsBuilding reports whether a build is running.
func (m *TuringMachine) IsBuilding() bool {
	m.buildMu.Lock()
	defer m.buildMu.Unlock()
	return m.building
}

// CancelBuild asks the running build, if any, to stop. The build notices at
// its next search iteration and fails with ErrSearchCancelled.
func (m *TuringMachine) CancelBuild() {
	m.buildMu.Lock()
	defer m.buildMu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

// Build searches for an accepting run from every initial state and loads it,
// with the cursor on the first configuration. If no accepting run exists the
// shortest run to a final non-accepting state is loaded instead.
//
// On failure the previous run is discarded, except for ErrInvalidMachine and
// ErrBuildInProgress which change nothing. The tapes and the current state are
// put back as they were before the build.
func (m *TuringMachine) Build(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	if !m.startBuild(cancel) {
		cancel()
		return m.report(fmt.Errorf("build: %w", ErrBuildInProgress))
	}
	defer m.finishBuild()
	return m.build(ctx)
}

// BuildAsync runs Build on a background goroutine and calls callback with its
// result. It returns false, and does nothing, if a build is already running.
// Events raised by the build are delivered on that goroutine.
func (m *TuringMachine) BuildAsync(ctx context.Context, callback func(error)) bool {
	ctx, cancel := context.WithCancel(ctx)
	if !m.startBuild(cancel) {
		cancel()
		return false
	}
	go func() {
		err := m.build(ctx)
		m.finishBuild()
		if callback != nil {
			callback(err)
		}
	}()
	return true
}

func (m *TuringMachine) build(ctx context.Context) error {
	if !m.IsValid() {
		return m.report(fmt.Errorf("build: %w", ErrInvalidMachine))
	}

	m.publish(TopicExploreStart, ExplorePayload{})
	m.logger.Debug("build started", "machine", m.id, "states", len(m.states), "tapes", len(m.tapes))

	saved := m.SaveConfiguration()
	m.ReinitTapes()
	p, err := NewExplorer(m).Search(ctx)
	if err != nil {
		m.clearRun()
		m.LoadConfiguration(saved, true)
		m.publish(TopicExploreEnd, ExplorePayload{Err: err})
		return m.report(fmt.Errorf("build: %w", err))
	}

	m.run = p
	m.cursor = 0
	m.mode = ModeBuilt
	m.publish(TopicExploreEnd, ExplorePayload{Iterations: p.Iterations, Accepting: p.Accepting})
	m.logger.Debug("build finished", "machine", m.id, "steps", p.Len(), "accepting", p.Accepting)
	m.LoadConfiguration(p.Configurations[0], true)
	return nil
}

//
// Navigation
//

func (m *TuringMachine) requireRun(op string) error {
	if m.run == nil {
		return m.report(fmt.Errorf("%s: %w", op, ErrNotBuilt))
	}
	return nil
}

// Tick fires the next transition of the loaded run with notifications. It
// returns false at the end of the run.
func (m *TuringMachine) Tick() (bool, error) {
	if err := m.requireRun("tick"); err != nil {
		return false, err
	}
	if m.cursor >= len(m.run.Transitions) {
		return false, nil
	}
	m.run.Transitions[m.cursor].Fire(true)
	m.cursor++
	return true, nil
}

func (m *TuringMachine) loadAt(i int) {
	m.cursor = i
	m.LoadConfiguration(m.run.Configurations[i], true)
}

// LoadPreviousConfiguration steps the cursor back once, reloading the whole
// snapshot. At the start of the run it reloads the first configuration.
func (m *TuringMachine) LoadPreviousConfiguration() error {
	if err := m.requireRun("load previous configuration"); err != nil {
		return err
	}
	m.loadAt(max(m.cursor-1, 0))
	return nil
}

// LoadNextConfiguration steps the cursor forward once by loading the snapshot
// rather than firing the transition.
func (m *TuringMachine) LoadNextConfiguration() error {
	if err := m.requireRun("load next configuration"); err != nil {
		return err
	}
	m.loadAt(min(m.cursor+1, len(m.run.Configurations)-1))
	return nil
}

// LoadFirstConfiguration moves the cursor to the start of the run.
func (m *TuringMachine) LoadFirstConfiguration() error {
	if err := m.requireRun("load first configuration"); err != nil {
		return err
	}
	m.loadAt(0)
	return nil
}

// LoadLastConfiguration moves the cursor to the end of the run.
func (m *TuringMachine) LoadLastConfiguration() error {
	if err := m.requireRun("load last configuration"); err != nil {
		return err
	}
	m.loadAt(len(m.run.Configurations) - 1)
	return nil
}

//
// Manual execution
//

// BuildManual starts a hand-driven run in the first initial state.
func (m *TuringMachine) BuildManual() error {
	if !m.IsValid() {
		return m.report(fmt.Errorf("build manual: %w", ErrInvalidMachine))
	}
	if m.IsBuilding() {
		return m.report(fmt.Errorf("build manual: %w", ErrBuildInProgress))
	}
	m.ReinitTapes()
	m.setCurrentState(m.InitialStates()[0], false)
	first := m.SaveConfiguration()
	m.run = &Path{Configurations: []Configuration{first}}
	m.cursor = 0
	m.mode = ModeManual
	m.LoadConfiguration(first, true)
	return nil
}

// ManualSetCurrentState picks the initial state a manual run starts from. It is
// only allowed before the first manual step.
func (m *TuringMachine) ManualSetCurrentState(id int) error {
	if m.mode != ModeManual {
		return m.report(fmt.Errorf("manual set current state: %w", ErrNotBuilt))
	}
	if !m.IsInitialState(id) {
		return m.report(fmt.Errorf("manual set current state %d: %w: not an initial state", id, ErrInvalidManualStep))
	}
	if m.cursor != 0 {
		return m.report(fmt.Errorf("manual set current state %d: %w: run already started", id, ErrInvalidManualStep))
	}
	first := m.run.Configurations[0]
	first.State = id
	m.run = &Path{Configurations: []Configuration{first}}
	m.LoadConfiguration(first, true)
	return nil
}

// ManualFireTransition fires t from the cursor position. Any run recorded past
// the cursor is discarded first. t must leave the current state and be valid.
func (m *TuringMachine) ManualFireTransition(t *Transition) error {
	if m.mode != ModeManual {
		return m.report(fmt.Errorf("manual fire: %w", ErrNotBuilt))
	}
	if t == nil || t.m != m || !m.hasState(t.input) || !slices.Contains(m.states[t.input].out, t) {
		return m.report(fmt.Errorf("manual fire: %w: unknown transition", ErrInvalidManualStep))
	}
	if t.input != m.current {
		return m.report(fmt.Errorf("manual fire %s: %w: current state is %d", t, ErrInvalidManualStep, m.current))
	}
	if !t.IsCurrentlyValid() {
		return m.report(fmt.Errorf("manual fire %s: %w: guard not satisfied", t, ErrInvalidManualStep))
	}

	m.run.Configurations = m.run.Configurations[:m.cursor+1]
	m.run.Transitions = m.run.Transitions[:m.cursor]
	t.Fire(true)
	m.run.Configurations = append(m.run.Configurations, m.SaveConfiguration())
	m.run.Transitions = append(m.run.Transitions, t)
	m.cursor++
	m.run.Accepting = m.IsAcceptingState(m.current)
	return nil
}

// ClearManual reloads the first configuration of the manual run and discards it.
func (m *TuringMachine) ClearManual() error {
	if m.mode != ModeManual {
		return m.report(fmt.Errorf("clear manual: %w", ErrNotBuilt))
	}
	m.LoadConfiguration(m.run.Configurations[0], true)
	m.clearRun()
	return nil
}
