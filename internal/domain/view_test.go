package domain

import "testing"

func TestStatusText(t *testing.T) {
	g := New()
	if got := g.View().Status; got != "Next player: X" {
		t.Fatalf("unexpected status %q", got)
	}
	playMoves(t, &g, []int{0})
	if got := g.View().Status; got != "Next player: O" {
		t.Fatalf("unexpected status %q", got)
	}
	playMoves(t, &g, []int{1, 4, 2, 8})
	if got := g.View().Status; got != "Winner: X" {
		t.Fatalf("unexpected status %q", got)
	}

	d := New()
	playMoves(t, &d, []int{0, 2, 1, 3, 5, 4, 6, 7, 8})
	if got := d.View().Status; got != "Draw" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestRowsAscending(t *testing.T) {
	g := New()
	playMoves(t, &g, []int{0, 4, 7})
	rows := g.Rows()
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Label != "Go to game start" || rows[0].Player != Empty || rows[0].Row != 0 {
		t.Fatalf("unexpected start row %+v", rows[0])
	}
	want := []Row{
		{Move: 1, Player: X, Row: 1, Col: 1, Label: "Go to move #1"},
		{Move: 2, Player: O, Row: 2, Col: 2, Label: "Go to move #2"},
		{Move: 3, Player: X, Row: 3, Col: 2, Label: "Go to move #3", Selected: true},
	}
	for i, w := range want {
		if rows[i+1] != w {
			t.Fatalf("row %d = %+v, want %+v", i+1, rows[i+1], w)
		}
	}
}

func TestRowsDescendingPinsStart(t *testing.T) {
	g := New()
	playMoves(t, &g, []int{0, 4, 7})
	g.ToggleSort()
	rows := g.Rows()
	order := []int{0, 3, 2, 1}
	for i, m := range order {
		if rows[i].Move != m {
			t.Fatalf("position %d holds move %d, want %d", i, rows[i].Move, m)
		}
	}
}

func TestSelectedFollowsJump(t *testing.T) {
	g := New()
	playMoves(t, &g, []int{0, 4})
	_ = g.JumpTo(1)
	for _, r := range g.Rows() {
		if r.Selected != (r.Move == 1) {
			t.Fatalf("row %d selected=%v", r.Move, r.Selected)
		}
	}
}

func TestViewSortLabelAndLine(t *testing.T) {
	g := New()
	v := g.View()
	if v.SortLabel != "descending" || !v.Ascending {
		t.Fatalf("unexpected sort label %q asc=%v", v.SortLabel, v.Ascending)
	}
	g.ToggleSort()
	if v := g.View(); v.SortLabel != "ascending" {
		t.Fatalf("unexpected sort label %q", v.SortLabel)
	}

	playMoves(t, &g, []int{0, 1, 4, 2, 8})
	v = g.View()
	if v.Winner != X || len(v.Line) != 3 || v.Line[1] != 4 {
		t.Fatalf("unexpected win view %+v", v)
	}
	if !v.Highlight(8) || v.Highlight(1) {
		t.Fatalf("highlight mismatch")
	}
	if v.Phase != "won" {
		t.Fatalf("unexpected phase %q", v.Phase)
	}
}
