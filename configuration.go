package turingmachines

// Configuration is a full snapshot of a run: the current state and, for every
// tape in machine order, its live cells and head positions.
type Configuration struct {
	State int
	Tapes []TapeSnapshot
}

// Clone returns an independent copy of c.
func (c Configuration) Clone() Configuration {
	out := Configuration{State: c.State, Tapes: make([]TapeSnapshot, len(c.Tapes))}
	for i, t := range c.Tapes {
		out.Tapes[i] = t.Clone()
	}
	return out
}

// SaveConfiguration snapshots the current state and every tape.
func (m *TuringMachine) SaveConfiguration() Configuration {
	c := Configuration{State: m.current, Tapes: make([]TapeSnapshot, len(m.tapes))}
	for i, t := range m.tapes {
		c.Tapes[i] = t.SaveConfiguration()
	}
	return c
}

// LoadConfiguration restores a snapshot into the live tapes. With log set, one
// tape-loaded event per tape and then a current-state-changed event are
// published so a renderer can resynchronise.
func (m *TuringMachine) LoadConfiguration(c Configuration, log bool) {
	for i, t := range m.tapes {
		if i < len(c.Tapes) {
			t.LoadConfiguration(c.Tapes[i], log)
		}
	}
	m.setCurrentState(c.State, log)
}

// ConfigurationID is a handle on a configuration held by an Explorer.
type ConfigurationID int

// NoConfiguration is the parent of root configurations.
const NoConfiguration ConfigurationID = -1

// maxSoftChain bounds how many transitions a soft configuration may be away
// from its nearest hard ancestor before Explore promotes it to hard.
const maxSoftChain = 32

// node is either hard (snapshot set) or soft (parent + via). Soft nodes are
// materialised by replaying via transitions from the nearest hard ancestor.
type node struct {
	parent   ConfigurationID
	via      *Transition
	state    int
	depth    int
	soft     int
	snapshot *Configuration
}

// Path is a run: Configurations[i+1] is reached from Configurations[i] by
// firing Transitions[i].
type Path struct {
	Configurations []Configuration
	Transitions    []*Transition
	Accepting      bool
	Iterations     int
}

// Len returns the number of transitions in the path.
func (p *Path) Len() int {
	return len(p.Transitions)
}

// Last returns the final configuration of the path.
func (p *Path) Last() Configuration {
	return p.Configurations[len(p.Configurations)-1]
}
