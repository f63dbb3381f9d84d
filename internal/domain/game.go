package domain

import "errors"

// Move is one history record: the board after a mark was placed at Index.
// The initial record has Index -1 and Mark Empty.
type Move struct {
	Board Board `json:"board"`
	Index int   `json:"index"`
	Mark  Cell  `json:"mark"`
}

// Initial reports whether m is the empty-board start record.
func (m Move) Initial() bool { return m.Index < 0 }

// Phase is the state of the active board.
type Phase uint8

const (
	PhaseEmpty Phase = iota
	PhaseInProgress
	PhaseWon
	PhaseDrawn
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseWon:
		return "won"
	case PhaseDrawn:
		return "drawn"
	default:
		return "empty"
	}
}

// Game holds a match together with its full move history. The history is
// branch-on-write: moving after a jump to an earlier step drops the later records.
type Game struct {
	history   []Move
	step      int
	ascending bool
}

// Errors returned by domain operations. A failed operation never changes the game.
var (
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrOccupied       = errors.New("cell occupied")
	ErrGameOver       = errors.New("game over")
	ErrStepOutOfRange = errors.New("step out of range")
)

// New returns a new game with X to move.
func New() Game {
	return Game{history: []Move{{Index: -1}}, ascending: true}
}

// Step is the index of the active history record.
func (g *Game) Step() int { return g.step }

// Len is the number of history records, including the start record.
func (g *Game) Len() int { return len(g.history) }

// Ascending reports the history display order.
func (g *Game) Ascending() bool { return g.ascending }

// Current returns the active history record.
func (g *Game) Current() Move { return g.history[g.step] }

// Board returns the active board.
func (g *Game) Board() Board { return g.history[g.step].Board }

// Outcome evaluates the active board.
func (g *Game) Outcome() Outcome { return Evaluate(g.Board()) }

// History returns a copy of all records.
func (g *Game) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

// Next returns the mark to play on the active board, derived from parity.
func (g *Game) Next() Cell {
	if g.Board().Marks()%2 == 0 {
		return X
	}
	return O
}

// Phase classifies the active board.
func (g *Game) Phase() Phase {
	b := g.Board()
	switch Evaluate(b).Result {
	case Win:
		return PhaseWon
	case Draw:
		return PhaseDrawn
	}
	if b.Marks() == 0 {
		return PhaseEmpty
	}
	return PhaseInProgress
}

// ApplyMove plays the next mark at cell i (0..8) of the active board.
func (g *Game) ApplyMove(i int) error {
	if i < 0 || i > 8 {
		return ErrOutOfBounds
	}
	cur := g.history[g.step]
	if Evaluate(cur.Board).Decided() {
		return ErrGameOver
	}
	if cur.Board[i] != Empty {
		return ErrOccupied
	}

	// Place the mark on a copy
	mark := g.Next()
	b := cur.Board
	b[i] = mark

	// Drop the redo branch. Capping the slice makes append copy, so copies of g keep their records.
	hist := g.history[:g.step+1 : g.step+1]
	g.history = append(hist, Move{Board: b, Index: i, Mark: mark})
	g.step = len(g.history) - 1
	return nil
}

// JumpTo makes record k the active one without touching the history.
func (g *Game) JumpTo(k int) error {
	if k < 0 || k >= len(g.history) {
		return ErrStepOutOfRange
	}
	g.step = k
	return nil
}

// ToggleSort flips the history display order.
func (g *Game) ToggleSort() { g.ascending = !g.ascending }

// Reset discards the history. X moves first again.
func (g *Game) Reset() { *g = New() }
