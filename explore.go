package turingmachines

import (
	"context"
	"fmt"
	"slices"
)

// Explorer walks the tree of configurations of a machine. It owns an arena of
// configurations addressed by ConfigurationID; only roots and a few promoted
// nodes hold full snapshots, every other node is a parent handle plus the
// transition fired to reach it.
//
// An Explorer drives the machine's live tapes and current state; nothing else
// may use them while it runs.
type Explorer struct {
	m     *TuringMachine
	nodes []node
}

// NewExplorer creates an explorer with an empty arena.
func NewExplorer(m *TuringMachine) *Explorer {
	return &Explorer{m: m}
}

// Len returns the number of configurations in the arena.
func (e *Explorer) Len() int {
	return len(e.nodes)
}

func (e *Explorer) add(n node) ConfigurationID {
	e.nodes = append(e.nodes, n)
	return ConfigurationID(len(e.nodes) - 1)
}

// Parent returns the configuration id was reached from, or NoConfiguration.
func (e *Explorer) Parent(id ConfigurationID) ConfigurationID {
	return e.nodes[id].parent
}

// Via returns the transition fired to reach id, nil for roots.
func (e *Explorer) Via(id ConfigurationID) *Transition {
	return e.nodes[id].via
}

// State returns the automaton state of configuration id.
func (e *Explorer) State(id ConfigurationID) int {
	return e.nodes[id].state
}

// Depth returns the number of transitions between id and its root.
func (e *Explorer) Depth(id ConfigurationID) int {
	return e.nodes[id].depth
}

// IsHard reports whether id holds a full snapshot.
func (e *Explorer) IsHard(id ConfigurationID) bool {
	return e.nodes[id].snapshot != nil
}

// Seed adds one hard root configuration per initial state, using the live
// tapes as they are. Callers normally reinitialise the tapes first.
func (e *Explorer) Seed() []ConfigurationID {
	var roots []ConfigurationID
	for _, s := range e.m.InitialStates() {
		e.m.setCurrentState(s, false)
		snap := e.m.SaveConfiguration()
		roots = append(roots, e.add(node{parent: NoConfiguration, state: s, snapshot: &snap}))
	}
	return roots
}

// AddRoot adds c as a hard root configuration.
func (e *Explorer) AddRoot(c Configuration) ConfigurationID {
	snap := c.Clone()
	return e.add(node{parent: NoConfiguration, state: c.State, snapshot: &snap})
}

// Load materialises id into the live tapes without publishing events.
func (e *Explorer) Load(id ConfigurationID) {
	var chain []*Transition
	cur := id
	for e.nodes[cur].snapshot == nil {
		chain = append(chain, e.nodes[cur].via)
		cur = e.nodes[cur].parent
	}
	e.m.LoadConfiguration(*e.nodes[cur].snapshot, false)
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].Fire(false)
	}
}

// Materialize returns the full snapshot of id. The live tapes are left at id.
func (e *Explorer) Materialize(id ConfigurationID) Configuration {
	e.Load(id)
	return e.m.SaveConfiguration()
}

// Explore returns the children of id: one soft configuration per outgoing
// transition valid in id, in insertion order. Every transition is tested and
// fired from a fresh copy of id, so siblings never observe each other. The live
// tapes are left at id.
func (e *Explorer) Explore(id ConfigurationID) []ConfigurationID {
	base := e.Materialize(id)
	n := e.nodes[id]
	if n.snapshot == nil && n.soft >= maxSoftChain {
		e.nodes[id].snapshot = &base
		n.soft = 0
	}
	if !e.m.hasState(base.State) {
		return nil
	}

	var children []ConfigurationID
	dirty := false
	for _, t := range e.m.states[base.State].out {
		if dirty {
			e.m.LoadConfiguration(base, false)
			dirty = false
		}
		if !t.IsCurrentlyValid() {
			continue
		}
		t.Fire(false)
		dirty = true
		children = append(children, e.add(node{
			parent: id,
			via:    t,
			state:  t.output,
			depth:  n.depth + 1,
			soft:   n.soft + 1,
		}))
	}
	if dirty {
		e.m.LoadConfiguration(base, false)
	}
	return children
}

// PathTo rebuilds the run from the root of id down to id, materialising every
// configuration on it by a single forward replay.
func (e *Explorer) PathTo(id ConfigurationID) *Path {
	var ids []ConfigurationID
	for cur := id; cur != NoConfiguration; cur = e.nodes[cur].parent {
		ids = append(ids, cur)
	}
	slices.Reverse(ids)

	p := &Path{Configurations: []Configuration{e.Materialize(ids[0])}}
	for _, cur := range ids[1:] {
		t := e.nodes[cur].via
		t.Fire(false)
		p.Configurations = append(p.Configurations, e.m.SaveConfiguration())
		p.Transitions = append(p.Transitions, t)
	}
	return p
}

// Search runs a breadth-first search from the seeded roots (Seed is called if
// the arena is empty). It stops at the first accepting configuration. Failing
// that, the first final non-accepting configuration found is the answer; final
// configurations are never expanded.
//
// The search stops with ErrSearchExhausted after the machine's maximum number
// of configurations, and with ErrSearchCancelled when ctx is done. Because the
// cap can cut a level short, an accepting path is minimal only among the
// configurations examined.
func (e *Explorer) Search(ctx context.Context) (*Path, error) {
	var queue []ConfigurationID
	if len(e.nodes) == 0 {
		queue = e.Seed()
	} else {
		for i, n := range e.nodes {
			if n.parent == NoConfiguration {
				queue = append(queue, ConfigurationID(i))
			}
		}
	}

	limit := e.m.maxSearch
	iterations := 0
	accepting, rejecting := NoConfiguration, NoConfiguration
	for head := 0; head < len(queue); head++ {
		if iterations >= limit {
			return nil, fmt.Errorf("after %d configurations: %w", iterations, ErrSearchExhausted)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("after %d configurations: %w", iterations, ErrSearchCancelled)
		}
		iterations++

		id := queue[head]
		s := e.nodes[id].state
		if e.m.IsAcceptingState(s) {
			accepting = id
			break
		}
		if e.m.IsFinalState(s) {
			if rejecting == NoConfiguration {
				rejecting = id
			}
			continue
		}
		queue = append(queue, e.Explore(id)...)
	}

	e.m.logger.Debug("search finished",
		"machine", e.m.id,
		"iterations", iterations,
		"configurations", len(e.nodes),
		"accepting", accepting != NoConfiguration,
	)

	var p *Path
	switch {
	case accepting != NoConfiguration:
		p = e.PathTo(accepting)
		p.Accepting = true
	case rejecting != NoConfiguration:
		p = e.PathTo(rejecting)
	default:
		return nil, fmt.Errorf("after %d configurations: %w", iterations, ErrNoResolvablePath)
	}
	p.Iterations = iterations
	return p, nil
}
