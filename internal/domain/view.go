package domain

import (
	"fmt"
	"slices"
)

// Row is one line of the move history table.
type Row struct {
	Move     int    `json:"move"`
	Player   Cell   `json:"player"`
	Row      int    `json:"row,omitempty"`
	Col      int    `json:"col,omitempty"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// View is everything a renderer needs for one frame. It is derived from the
// game on each call and never stored.
type View struct {
	Board     Board   `json:"board"`
	Outcome   Outcome `json:"-"`
	Phase     string  `json:"phase"`
	Status    string  `json:"status"`
	Winner    Cell    `json:"winner"`
	Line      []int   `json:"line,omitempty"`
	Next      Cell    `json:"next"`
	Step      int     `json:"step"`
	Ascending bool    `json:"ascending"`
	SortLabel string  `json:"sort_label"`
	Rows      []Row   `json:"rows"`
}

// Highlight reports whether cell i is on the winning line.
func (v View) Highlight(i int) bool { return v.Outcome.Contains(i) }

// View projects the game for rendering.
func (g *Game) View() View {
	out := g.Outcome()
	v := View{
		Board:     g.Board(),
		Outcome:   out,
		Phase:     g.Phase().String(),
		Status:    Status(out, g.Next()),
		Next:      g.Next(),
		Step:      g.step,
		Ascending: g.ascending,
		SortLabel: "descending",
		Rows:      g.Rows(),
	}
	if out.Result == Win {
		v.Winner = out.Winner
		v.Line = out.Line[:]
	}
	if !g.ascending {
		v.SortLabel = "ascending"
	}
	return v
}

// Status is the line shown above the board.
func Status(o Outcome, next Cell) string {
	switch o.Result {
	case Win:
		return "Winner: " + o.Winner.String()
	case Draw:
		return "Draw"
	default:
		return "Next player: " + next.String()
	}
}

// Rows lists the history in display order. The start row always comes first.
func (g *Game) Rows() []Row {
	rows := make([]Row, len(g.history))
	for k, m := range g.history {
		r := Row{Move: k, Selected: k == g.step}
		if m.Initial() {
			r.Label = "Go to game start"
		} else {
			r.Player = m.Mark
			r.Row = 1 + m.Index/3
			r.Col = 1 + m.Index%3
			r.Label = fmt.Sprintf("Go to move #%d", k)
		}
		rows[k] = r
	}
	if !g.ascending {
		slices.Reverse(rows[1:])
	}
	return rows
}
