// Package render draws tapes and run status for terminals.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tm "github.com/comalice/turingmachines"
)

// Theme holds the styles used by a Renderer.
type Theme struct {
	Name   string
	Cell   lipgloss.Style
	Head   lipgloss.Style
	Status lipgloss.Style
	Accept lipgloss.Style
	Reject lipgloss.Style
	plain  bool
}

// DefaultTheme colours heads and the run status.
func DefaultTheme() Theme {
	return Theme{
		Name:   "default",
		Cell:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#444444", Dark: "#BBBBBB"}),
		Head:   lipgloss.NewStyle().Bold(true).Reverse(true),
		Status: lipgloss.NewStyle().Bold(true),
		Accept: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Reject: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// PlainTheme renders without escape codes.
func PlainTheme() Theme {
	return Theme{Name: "plain", plain: true}
}

// Renderer turns machine state into text.
type Renderer struct {
	theme Theme
}

func New(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.theme.plain {
		return text
	}
	return s.Render(text)
}

type window struct {
	left, right, bottom, top int
}

// tapeWindow is the tape's finite bounds, or the extent of its cells and
// heads on unbounded sides.
func tapeWindow(t *tm.Tape) window {
	var cells []tm.Cell
	for c := range t.Cells() {
		cells = append(cells, c)
	}
	for h := 0; h < t.Heads(); h++ {
		c, _ := t.HeadPosition(h)
		cells = append(cells, c)
	}

	w := window{}
	for i, c := range cells {
		if i == 0 {
			w = window{left: c.Column, right: c.Column, bottom: c.Line, top: c.Line}
			continue
		}
		w.left = min(w.left, c.Column)
		w.right = max(w.right, c.Column)
		w.bottom = min(w.bottom, c.Line)
		w.top = max(w.top, c.Line)
	}
	if b := t.LeftBound(); b != nil {
		w.left = *b
	}
	if b := t.RightBound(); b != nil {
		w.right = *b
	}
	if b := t.BottomBound(); b != nil {
		w.bottom = *b
	}
	if b := t.TopBound(); b != nil {
		w.top = *b
	}
	w.right = max(w.right, w.left)
	w.top = max(w.top, w.bottom)
	return w
}

// Tape draws the tape's live cells, top line first. Cells under a head are
// bracketed; blank cells show as "_".
func (r *Renderer) Tape(t *tm.Tape) string {
	w := tapeWindow(t)
	heads := make(map[tm.Cell]bool)
	for h := 0; h < t.Heads(); h++ {
		c, _ := t.HeadPosition(h)
		heads[c] = true
	}

	width := 1
	for _, s := range t.Cells() {
		width = max(width, lipgloss.Width(s))
	}

	var lines []string
	for line := w.top; line >= w.bottom; line-- {
		var b strings.Builder
		for col := w.left; col <= w.right; col++ {
			sym := t.Cell(col, line)
			if sym == tm.Blank {
				sym = "_"
			}
			sym += strings.Repeat(" ", width-lipgloss.Width(sym))
			if heads[tm.Cell{Column: col, Line: line}] {
				b.WriteString(r.style(r.theme.Head, "["+sym+"]"))
			} else {
				b.WriteString(r.style(r.theme.Cell, " "+sym+" "))
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// Status describes the current state and the position in the loaded run.
func (r *Renderer) Status(m *tm.TuringMachine) string {
	name := "-"
	if s := m.CurrentState(); s >= 0 {
		name = m.StateName(s)
	}
	out := r.style(r.theme.Status, "state "+name)

	p := m.Path()
	if p == nil {
		return out
	}
	out += fmt.Sprintf(" step %d/%d", m.Cursor(), p.Len())
	if m.Cursor() == p.Len() {
		if p.Accepting {
			out += " " + r.style(r.theme.Accept, "accepted")
		} else if m.IsFinalState(m.CurrentState()) {
			out += " " + r.style(r.theme.Reject, "rejected")
		}
	}
	return out
}

// Machine renders the status line followed by every tape.
func (r *Renderer) Machine(m *tm.TuringMachine) string {
	parts := []string{r.Status(m)}
	for i, t := range m.Tapes() {
		parts = append(parts, fmt.Sprintf("tape %d", i), r.Tape(t))
	}
	return strings.Join(parts, "\n")
}
