package turingmachines

import "fmt"

// Direction is a head movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	}
	return "UNKNOWN"
}

// ParseDirection is the inverse of Direction.String, case-sensitive.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "UP":
		return Up, nil
	case "DOWN":
		return Down, nil
	case "LEFT":
		return Left, nil
	case "RIGHT":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) apply(c Cell) Cell {
	switch d {
	case Up:
		c.Line++
	case Down:
		c.Line--
	case Left:
		c.Column--
	case Right:
		c.Column++
	}
	return c
}

// ActionKind tags an Action.
type ActionKind int

const (
	MoveAction ActionKind = iota
	WriteAction
)

// Action is one step executed when a transition fires: either a head move or
// a write under a head. Symbol is only used by writes, Direction only by moves.
type Action struct {
	Kind      ActionKind
	Tape      *Tape
	Head      int
	Direction Direction
	Symbol    string
}

// Move builds a move action.
func Move(tape *Tape, head int, dir Direction) Action {
	return Action{Kind: MoveAction, Tape: tape, Head: head, Direction: dir}
}

// Write builds a write action; Blank erases the cell.
func Write(tape *Tape, head int, symbol string) Action {
	return Action{Kind: WriteAction, Tape: tape, Head: head, Symbol: symbol}
}

func (a Action) apply(log bool) {
	switch a.Kind {
	case MoveAction:
		a.Tape.MoveHead(a.Head, a.Direction, log)
	case WriteAction:
		a.Tape.Write(a.Head, a.Symbol, log)
	}
}

func (a Action) String() string {
	switch a.Kind {
	case MoveAction:
		return fmt.Sprintf("T%dH%d:%s", a.Tape.Index(), a.Head, a.Direction)
	case WriteAction:
		sym := a.Symbol
		if sym == Blank {
			sym = "_"
		}
		return fmt.Sprintf("T%dH%d:=%s", a.Tape.Index(), a.Head, sym)
	}
	return "?"
}
