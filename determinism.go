package turingmachines

import (
	"slices"
	"strings"
)

type headKey struct {
	tape *Tape
	head int
}

// IsDeterministic reports whether the machine has at most one initial state
// and no state has two outgoing transitions that could both be valid on the
// same reading of the heads.
//
// For each state, every transition is expanded into the Cartesian product of
// the symbols it accepts on each head guarded by any transition of that state;
// an unguarded head accepts every symbol of the alphabet, every symbol named in
// a guard and blank. Two transitions sharing a tuple make the state
// non-deterministic. This is exponential in the number of guarded heads.
func (m *TuringMachine) IsDeterministic() bool {
	if len(m.InitialStates()) > 1 {
		return false
	}
	for _, s := range m.states {
		if !deterministicState(s.out, m.symbols) {
			return false
		}
	}
	return true
}

func deterministicState(out []*Transition, alphabet []string) bool {
	if len(out) < 2 {
		return true
	}

	var keys []headKey
	universe := append([]string{Blank}, alphabet...)
	for _, t := range out {
		for _, g := range t.guards {
			k := headKey{tape: g.Tape, head: g.Head}
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
			for _, sym := range g.Symbols {
				if !slices.Contains(universe, sym) {
					universe = append(universe, sym)
				}
			}
		}
	}

	seen := make(map[string]bool)
	for _, t := range out {
		sets := make([][]string, len(keys))
		for i, k := range keys {
			if syms, ok := t.ReadSymbols(k.tape, k.head); ok {
				sets[i] = syms
			} else {
				sets[i] = universe
			}
		}
		// A transition never collides with itself, even if a guard lists a
		// symbol twice.
		own := make(map[string]bool)
		collided := false
		product(sets, func(tuple []string) bool {
			key := tupleKey(tuple)
			if own[key] {
				return true
			}
			own[key] = true
			if seen[key] {
				collided = true
				return false
			}
			return true
		})
		if collided {
			return false
		}
		for k := range own {
			seen[k] = true
		}
	}
	return true
}

// product calls fn with every tuple of the Cartesian product of sets, in
// odometer order, until fn returns false.
func product(sets [][]string, fn func([]string) bool) {
	for _, s := range sets {
		if len(s) == 0 {
			return
		}
	}
	idx := make([]int, len(sets))
	tuple := make([]string, len(sets))
	for {
		for i, j := range idx {
			tuple[i] = sets[i][j]
		}
		if !fn(tuple) {
			return
		}
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(sets[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return
		}
	}
}

func tupleKey(tuple []string) string {
	var b strings.Builder
	for _, s := range tuple {
		b.WriteString(s)
		b.WriteByte(0)
	}
	return b.String()
}
