package turingmachines

import (
	"fmt"
	"slices"
)

// Symbols returns the alphabet in order.
func (m *TuringMachine) Symbols() []string {
	return slices.Clone(m.symbols)
}

// AddSymbol appends a symbol to the alphabet. Blank and duplicates are rejected.
func (m *TuringMachine) AddSymbol(symbol string) error {
	if symbol == Blank {
		return m.report(fmt.Errorf("add symbol: %w: blank is implicit", ErrInvalidSymbol))
	}
	if slices.Contains(m.symbols, symbol) {
		return m.report(fmt.Errorf("add symbol %q: %w", symbol, ErrDuplicateSymbol))
	}
	m.symbols = append(m.symbols, symbol)
	m.publish(TopicSymbolAdded, SymbolPayload{Index: len(m.symbols) - 1, Symbol: symbol})
	return nil
}

// EditSymbol renames symbol i everywhere it is used: guards, write actions and
// tape cells.
func (m *TuringMachine) EditSymbol(i int, symbol string) error {
	if i < 0 || i >= len(m.symbols) {
		return m.report(fmt.Errorf("edit symbol %d: %w", i, ErrOutOfRange))
	}
	if symbol == Blank {
		return m.report(fmt.Errorf("edit symbol %d: %w: blank is implicit", i, ErrInvalidSymbol))
	}
	previous := m.symbols[i]
	if previous == symbol {
		return nil
	}
	if slices.Contains(m.symbols, symbol) {
		return m.report(fmt.Errorf("edit symbol %q to %q: %w", previous, symbol, ErrDuplicateSymbol))
	}
	m.symbols[i] = symbol
	m.replaceSymbol(previous, symbol)
	m.publish(TopicSymbolEdited, SymbolPayload{Index: i, Symbol: symbol, Previous: previous})
	return nil
}

// RemoveSymbol removes symbol i from the alphabet, from every guard and from
// every tape. Write actions of the symbol become blank writes.
func (m *TuringMachine) RemoveSymbol(i int) bool {
	if i < 0 || i >= len(m.symbols) {
		return false
	}
	symbol := m.symbols[i]
	m.symbols = slices.Delete(m.symbols, i, i+1)
	m.replaceSymbol(symbol, Blank)
	m.publish(TopicSymbolRemoved, SymbolPayload{Index: i, Symbol: symbol})
	return true
}

// replaceSymbol rewrites from into to. A Blank target removes from guards
// instead of accepting empty cells.
func (m *TuringMachine) replaceSymbol(from, to string) {
	m.eachTransition(func(t *Transition) {
		for gi := range t.guards {
			g := &t.guards[gi]
			j := slices.Index(g.Symbols, from)
			if j < 0 {
				continue
			}
			if to == Blank || slices.Contains(g.Symbols, to) {
				g.Symbols = slices.Delete(g.Symbols, j, j+1)
			} else {
				g.Symbols[j] = to
			}
		}
		t.guards = slices.DeleteFunc(t.guards, func(g ReadGuard) bool { return len(g.Symbols) == 0 })
		for ai := range t.actions {
			if t.actions[ai].Kind == WriteAction && t.actions[ai].Symbol == from {
				t.actions[ai].Symbol = to
			}
		}
	})
	for _, tape := range m.tapes {
		tape.renameSymbol(from, to)
	}
}
