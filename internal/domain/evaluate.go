package domain

import "fmt"

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// MarshalText encodes a cell as "", "X" or "O".
func (c Cell) MarshalText() ([]byte, error) {
	if c > O {
		return nil, fmt.Errorf("invalid cell %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (c *Cell) UnmarshalText(b []byte) error {
	switch string(b) {
	case "":
		*c = Empty
	case "X":
		*c = X
	case "O":
		*c = O
	default:
		return fmt.Errorf("invalid cell %q", string(b))
	}
	return nil
}

// Board is a fixed 3x3 board stored row-major.
type Board [9]Cell

// Marks counts the non-empty cells.
func (b Board) Marks() int {
	n := 0
	for _, c := range b {
		if c != Empty {
			n++
		}
	}
	return n
}

// Full reports whether no cell is empty.
func (b Board) Full() bool { return b.Marks() == len(b) }

// Line is a triple of cell indices.
type Line [3]int

// Lines lists every winning line. The order decides which line is reported
// when a board completes more than one.
var Lines = [8]Line{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// Result classifies a board.
type Result uint8

const (
	InProgress Result = iota
	Win
	Draw
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is the evaluation of a board. Winner and Line are only set for Win.
type Outcome struct {
	Result Result
	Winner Cell
	Line   Line
}

// Decided reports whether the game on this board is over.
func (o Outcome) Decided() bool { return o.Result != InProgress }

// Contains reports whether cell i lies on the winning line.
func (o Outcome) Contains(i int) bool {
	if o.Result != Win {
		return false
	}
	return o.Line[0] == i || o.Line[1] == i || o.Line[2] == i
}

// Evaluate maps a board to its outcome.
func Evaluate(b Board) Outcome {
	for _, ln := range Lines {
		c := b[ln[0]]
		if c != Empty && b[ln[1]] == c && b[ln[2]] == c {
			return Outcome{Result: Win, Winner: c, Line: ln}
		}
	}
	if b.Full() {
		return Outcome{Result: Draw}
	}
	return Outcome{Result: InProgress}
}
