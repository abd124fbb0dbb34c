package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	tm "github.com/comalice/turingmachines"
)

// DefaultVisualizer renders machines for external tools.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the automaton graph. The current
// state, if any, is highlighted.
func (v *DefaultVisualizer) ExportDOT(m *tm.TuringMachine) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph TuringMachine {
  rankdir=LR;
  node [shape=circle, fontsize=10];
  edge [fontsize=9];
`)

	current := m.CurrentState()
	for id := 0; id < m.States(); id++ {
		fmt.Fprintf(&buf, "  %s [label=%s%s];\n", nodeID(id), quote(m.StateName(id)), stateStyle(m, id, id == current))
	}

	for i, id := range m.InitialStates() {
		start := fmt.Sprintf("start%d", i)
		fmt.Fprintf(&buf, "  %s [shape=point];\n", start)
		fmt.Fprintf(&buf, "  %s -> %s;\n", start, nodeID(id))
	}

	for _, t := range m.Transitions() {
		fmt.Fprintf(&buf, "  %s -> %s [label=%s];\n", nodeID(t.Input()), nodeID(t.Output()), quote(t.Label()))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the machine definition to JSON.
func (v *DefaultVisualizer) ExportJSON(m *tm.TuringMachine) ([]byte, error) {
	return json.MarshalIndent(m.Definition(), "", "  ")
}

func nodeID(state int) string {
	return fmt.Sprintf("q%d", state)
}

// stateStyle returns the attribute suffix for a state node.
func stateStyle(m *tm.TuringMachine, id int, active bool) string {
	var attrs []string
	switch {
	case m.IsAcceptingState(id):
		attrs = append(attrs, "shape=doublecircle")
	case m.IsFinalState(id):
		attrs = append(attrs, "shape=doubleoctagon")
	}
	if active {
		attrs = append(attrs, "style=filled", "fillcolor=lightgreen")
	}
	if len(attrs) == 0 {
		return ""
	}
	return ", " + strings.Join(attrs, ", ")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
