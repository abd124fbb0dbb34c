package turingmachines

import "maps"

// Blank is the symbol read from an empty cell. It is never stored.
const Blank = ""

// Cell is a position on a 2-D tape.
type Cell struct {
	Column int
	Line   int
}

// Side names one of the four tape bounds.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideBottom
	SideTop
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideTop:
		return "top"
	}
	return "unknown"
}

// Bound returns a finite bound value, for use with the Set*Bound methods.
// A nil bound means unbounded.
func Bound(v int) *int {
	return &v
}

type head struct {
	current Cell
	initial Cell
}

// TapeSnapshot is a deep copy of a tape's live cells and head positions.
type TapeSnapshot struct {
	Cells map[Cell]string
	Heads []Cell
}

// Clone returns an independent copy of the snapshot.
func (s TapeSnapshot) Clone() TapeSnapshot {
	return TapeSnapshot{
		Cells: maps.Clone(s.Cells),
		Heads: append([]Cell(nil), s.Heads...),
	}
}

// Tape is a sparse 2-D grid with any number of heads. Columns grow to the
// right, lines grow toward the top. Tapes are created by
// TuringMachine.AddTape and belong to that machine.
type Tape struct {
	m *TuringMachine

	left, right, bottom, top *int

	input map[Cell]string
	cells map[Cell]string
	heads []head
}

func newTape(m *TuringMachine) *Tape {
	return &Tape{
		m:     m,
		input: make(map[Cell]string),
		cells: make(map[Cell]string),
	}
}

// Index returns the tape's position in its machine, or -1 once removed.
func (t *Tape) Index() int {
	if t.m == nil {
		return -1
	}
	return t.m.tapeIndex(t)
}

func copyBound(b *int) *int {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func (t *Tape) LeftBound() *int   { return copyBound(t.left) }
func (t *Tape) RightBound() *int  { return copyBound(t.right) }
func (t *Tape) BottomBound() *int { return copyBound(t.bottom) }
func (t *Tape) TopBound() *int    { return copyBound(t.top) }

// SetLeftBound sets the smallest reachable column. If it exceeds the right
// bound, the right bound is moved onto it.
func (t *Tape) SetLeftBound(b *int) {
	t.left = copyBound(b)
	if t.left != nil && t.right != nil && *t.right < *t.left {
		t.right = copyBound(t.left)
		t.publishBound(SideRight, t.right)
	}
	t.clamp()
	t.publishBound(SideLeft, t.left)
}

// SetRightBound sets the largest reachable column. If it is below the left
// bound, the left bound is moved onto it.
func (t *Tape) SetRightBound(b *int) {
	t.right = copyBound(b)
	if t.right != nil && t.left != nil && *t.left > *t.right {
		t.left = copyBound(t.right)
		t.publishBound(SideLeft, t.left)
	}
	t.clamp()
	t.publishBound(SideRight, t.right)
}

// SetBottomBound sets the smallest reachable line. If it exceeds the top
// bound, the top bound is moved onto it.
func (t *Tape) SetBottomBound(b *int) {
	t.bottom = copyBound(b)
	if t.bottom != nil && t.top != nil && *t.top < *t.bottom {
		t.top = copyBound(t.bottom)
		t.publishBound(SideTop, t.top)
	}
	t.clamp()
	t.publishBound(SideBottom, t.bottom)
}

// SetTopBound sets the largest reachable line. If it is below the bottom
// bound, the bottom bound is moved onto it.
func (t *Tape) SetTopBound(b *int) {
	t.top = copyBound(b)
	if t.top != nil && t.bottom != nil && *t.bottom > *t.top {
		t.bottom = copyBound(t.top)
		t.publishBound(SideBottom, t.bottom)
	}
	t.clamp()
	t.publishBound(SideTop, t.top)
}

func (t *Tape) publishBound(side Side, b *int) {
	t.m.publish(TopicBoundChanged, BoundPayload{Tape: t, Side: side, Bound: copyBound(b)})
}

// InBounds reports whether c lies inside the tape's bounds.
func (t *Tape) InBounds(c Cell) bool {
	if t.left != nil && c.Column < *t.left {
		return false
	}
	if t.right != nil && c.Column > *t.right {
		return false
	}
	if t.bottom != nil && c.Line < *t.bottom {
		return false
	}
	if t.top != nil && c.Line > *t.top {
		return false
	}
	return true
}

func clampInt(v int, lo, hi *int) int {
	if lo != nil && v < *lo {
		v = *lo
	}
	if hi != nil && v > *hi {
		v = *hi
	}
	return v
}

func (t *Tape) clampCell(c Cell) Cell {
	return Cell{
		Column: clampInt(c.Column, t.left, t.right),
		Line:   clampInt(c.Line, t.bottom, t.top),
	}
}

// clamp pulls heads back into bounds and drops input cells outside them.
// Live cells are left alone.
func (t *Tape) clamp() {
	for i := range t.heads {
		t.heads[i].initial = t.clampCell(t.heads[i].initial)
		t.heads[i].current = t.clampCell(t.heads[i].current)
	}
	for c := range t.input {
		if !t.InBounds(c) {
			delete(t.input, c)
		}
	}
}

func midpoint(lo, hi *int) int {
	switch {
	case lo != nil && hi != nil:
		return *lo + (*hi-*lo)/2
	default:
		return clampInt(0, lo, hi)
	}
}

// AddHead appends a head placed at the middle of the tape and returns its index.
func (t *Tape) AddHead() int {
	c := Cell{Column: midpoint(t.left, t.right), Line: midpoint(t.bottom, t.top)}
	t.heads = append(t.heads, head{current: c, initial: c})
	h := len(t.heads) - 1
	t.m.publish(TopicHeadAdded, HeadPayload{Tape: t, Head: h, Column: c.Column, Line: c.Line})
	return h
}

// RemoveHead removes head h. Guards and actions on h are dropped and higher
// head indices shift down by one. It returns false if h does not exist.
func (t *Tape) RemoveHead(h int) bool {
	if h < 0 || h >= len(t.heads) {
		return false
	}
	c := t.heads[h].initial
	t.heads = append(t.heads[:h], t.heads[h+1:]...)
	if t.m != nil {
		t.m.scrubHead(t, h)
	}
	t.m.publish(TopicHeadRemoved, HeadPayload{Tape: t, Head: h, Column: c.Column, Line: c.Line})
	return true
}

// Heads returns the number of heads on the tape.
func (t *Tape) Heads() int {
	return len(t.heads)
}

// HeadPosition returns the live position of head h.
func (t *Tape) HeadPosition(h int) (Cell, bool) {
	if h < 0 || h >= len(t.heads) {
		return Cell{}, false
	}
	return t.heads[h].current, true
}

// HeadInitialPosition returns the position head h takes on Reinit.
func (t *Tape) HeadInitialPosition(h int) (Cell, bool) {
	if h < 0 || h >= len(t.heads) {
		return Cell{}, false
	}
	return t.heads[h].initial, true
}

// SetHeadInitialPosition moves the starting position of head h, clamped to
// the bounds.
func (t *Tape) SetHeadInitialPosition(h int, column, line int) bool {
	if h < 0 || h >= len(t.heads) {
		return false
	}
	c := t.clampCell(Cell{Column: column, Line: line})
	t.heads[h].initial = c
	t.m.publish(TopicHeadInitialMoved, HeadPayload{Tape: t, Head: h, Column: c.Column, Line: c.Line})
	return true
}

// WriteInput sets a cell of the word the tape starts with. Blank clears the
// cell. Writes outside the bounds are ignored.
func (t *Tape) WriteInput(column, line int, symbol string) {
	c := Cell{Column: column, Line: line}
	if !t.InBounds(c) {
		return
	}
	if symbol == Blank {
		delete(t.input, c)
	} else {
		t.input[c] = symbol
	}
	t.m.publish(TopicInputWritten, WritePayload{Tape: t, Head: -1, Column: column, Line: line, Symbol: symbol})
}

// Input returns the input symbol at a cell.
func (t *Tape) Input(column, line int) string {
	return t.input[Cell{Column: column, Line: line}]
}

// InputCells returns a copy of the non-blank input cells.
func (t *Tape) InputCells() map[Cell]string {
	return maps.Clone(t.input)
}

// Reinit copies the input into the live cells and puts every head back on its
// initial position.
func (t *Tape) Reinit() {
	t.cells = maps.Clone(t.input)
	if t.cells == nil {
		t.cells = make(map[Cell]string)
	}
	for i := range t.heads {
		t.heads[i].current = t.heads[i].initial
	}
}

// Read returns the live symbol under head h, or Blank.
func (t *Tape) Read(h int) string {
	if h < 0 || h >= len(t.heads) {
		return Blank
	}
	return t.cells[t.heads[h].current]
}

// Cell returns the live symbol at a position, or Blank.
func (t *Tape) Cell(column, line int) string {
	return t.cells[Cell{Column: column, Line: line}]
}

// Cells returns a copy of the non-blank live cells.
func (t *Tape) Cells() map[Cell]string {
	return maps.Clone(t.cells)
}

// MoveHead moves head h one cell. A move across a finite bound does nothing.
func (t *Tape) MoveHead(h int, dir Direction, log bool) {
	if h < 0 || h >= len(t.heads) {
		return
	}
	next := dir.apply(t.heads[h].current)
	if !t.InBounds(next) {
		return
	}
	t.heads[h].current = next
	if log {
		t.m.publish(TopicHeadMoved, HeadPayload{Tape: t, Head: h, Column: next.Column, Line: next.Line})
	}
}

// Write sets the live cell under head h. Blank clears it.
func (t *Tape) Write(h int, symbol string, log bool) {
	if h < 0 || h >= len(t.heads) {
		return
	}
	c := t.heads[h].current
	if symbol == Blank {
		delete(t.cells, c)
	} else {
		t.cells[c] = symbol
	}
	if log {
		t.m.publish(TopicHeadWrite, WritePayload{Tape: t, Head: h, Column: c.Column, Line: c.Line, Symbol: symbol})
	}
}

// SaveConfiguration returns a deep copy of the live cells and head positions.
func (t *Tape) SaveConfiguration() TapeSnapshot {
	s := TapeSnapshot{
		Cells: maps.Clone(t.cells),
		Heads: make([]Cell, len(t.heads)),
	}
	if s.Cells == nil {
		s.Cells = make(map[Cell]string)
	}
	for i, h := range t.heads {
		s.Heads[i] = h.current
	}
	return s
}

// LoadConfiguration replaces the live cells and head positions with a copy of
// s. Heads missing from s keep their position.
func (t *Tape) LoadConfiguration(s TapeSnapshot, log bool) {
	t.cells = maps.Clone(s.Cells)
	if t.cells == nil {
		t.cells = make(map[Cell]string)
	}
	for i := range t.heads {
		if i < len(s.Heads) {
			t.heads[i].current = s.Heads[i]
		}
	}
	if log {
		t.m.publish(TopicTapeLoaded, TapePayload{Tape: t})
	}
}

// renameSymbol replaces from with to in the input and live cells; to == Blank
// erases the cells.
func (t *Tape) renameSymbol(from, to string) {
	for _, cells := range []map[Cell]string{t.input, t.cells} {
		for c, s := range cells {
			if s != from {
				continue
			}
			if to == Blank {
				delete(cells, c)
			} else {
				cells[c] = to
			}
		}
	}
}
