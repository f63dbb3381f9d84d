package domain

import (
	"errors"
	"fmt"
)

// ErrCorrupt is wrapped by Restore when a snapshot breaks a history invariant.
var ErrCorrupt = errors.New("corrupt snapshot")

// Snapshot is the serializable form of a Game.
type Snapshot struct {
	History   []Move `json:"history"`
	Step      int    `json:"step"`
	Ascending bool   `json:"ascending"`
}

// Snapshot captures the game for storage.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{History: g.History(), Step: g.step, Ascending: g.ascending}
}

// Restore rebuilds a game from a snapshot, checking every record against its predecessor.
func Restore(s Snapshot) (Game, error) {
	if len(s.History) == 0 {
		return Game{}, fmt.Errorf("%w: empty history", ErrCorrupt)
	}
	if first := s.History[0]; !first.Initial() || first.Mark != Empty || first.Board != (Board{}) {
		return Game{}, fmt.Errorf("%w: record 0 is not the empty board", ErrCorrupt)
	}
	for k := 1; k < len(s.History); k++ {
		prev, m := s.History[k-1], s.History[k]
		if err := checkRecord(prev, m); err != nil {
			return Game{}, fmt.Errorf("%w: record %d: %v", ErrCorrupt, k, err)
		}
	}
	if s.Step < 0 || s.Step >= len(s.History) {
		return Game{}, fmt.Errorf("%w: step %d of %d", ErrCorrupt, s.Step, len(s.History))
	}
	g := Game{history: make([]Move, len(s.History)), step: s.Step, ascending: s.Ascending}
	copy(g.history, s.History)
	return g, nil
}

func checkRecord(prev, m Move) error {
	if m.Index < 0 || m.Index > 8 {
		return ErrOutOfBounds
	}
	if Evaluate(prev.Board).Decided() {
		return ErrGameOver
	}
	if prev.Board[m.Index] != Empty {
		return ErrOccupied
	}
	want := X
	if prev.Board.Marks()%2 == 1 {
		want = O
	}
	if m.Mark != want {
		return fmt.Errorf("mark %q out of turn", m.Mark)
	}
	b := prev.Board
	b[m.Index] = m.Mark
	if b != m.Board {
		return errors.New("board differs in more than the played cell")
	}
	return nil
}
