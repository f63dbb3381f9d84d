// Package tui plays a hot-seat game in the terminal.
package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jaminalder/tictactoe-history/internal/domain"
)

const help = `commands:
  <0-8> | m <i>   place the next mark on cell i (row-major)
  j <k>           jump to history step k
  s               toggle history order
  r               reset the game
  h               show this help
  q               quit
`

// Session runs one terminal game.
type Session struct {
	game domain.Game
	out  *termenv.Output
}

// New creates a session writing to w. Pass termenv.WithProfile(termenv.Ascii)
// to disable colors.
func New(w io.Writer, opts ...termenv.OutputOption) *Session {
	return &Session{game: domain.New(), out: termenv.NewOutput(w, opts...)}
}

// Game returns the current game.
func (s *Session) Game() domain.Game { return s.game }

// Run reads commands from r until EOF or q.
func (s *Session) Run(r io.Reader) error {
	s.render()
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		quit, err := s.exec(strings.Fields(sc.Text()))
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, s.out.String(err.Error()).Foreground(s.out.Color("1")))
			continue
		}
		s.render()
	}
}

var errUsage = errors.New("unknown command, h for help")

func (s *Session) exec(args []string) (bool, error) {
	if len(args) == 0 {
		return false, errUsage
	}
	cmd := args[0]
	if _, err := strconv.Atoi(cmd); err == nil {
		args, cmd = []string{"m", cmd}, "m"
	}
	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help":
		fmt.Fprint(s.out, help)
		return false, nil
	case "s", "sort":
		s.game.ToggleSort()
	case "r", "reset":
		s.game.Reset()
	case "m", "move", "j", "jump":
		if len(args) != 2 {
			return false, errUsage
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("not a number: %q", args[1])
		}
		if cmd == "m" || cmd == "move" {
			return false, s.game.ApplyMove(n)
		}
		return false, s.game.JumpTo(n)
	default:
		return false, errUsage
	}
	return false, nil
}

func (s *Session) render() {
	v := s.game.View()
	o := s.out

	fmt.Fprintln(o)
	fmt.Fprintln(o, o.String(v.Status).Bold())
	for r := 0; r < 3; r++ {
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			cells[c] = s.cell(v, i)
		}
		fmt.Fprintln(o, " "+strings.Join(cells, " | "))
		if r < 2 {
			fmt.Fprintln(o, "---+---+---")
		}
	}

	fmt.Fprintf(o, "\nMove history (%s)\n", order(v.Ascending))
	for _, row := range v.Rows {
		line := fmt.Sprintf("%2d  %s", row.Move, row.Label)
		if row.Move > 0 {
			line = fmt.Sprintf("%2d  Player %s  row %d col %d", row.Move, row.Player, row.Row, row.Col)
		}
		if row.Selected {
			fmt.Fprintln(o, o.String("* "+line).Bold())
			continue
		}
		fmt.Fprintln(o, "  "+line)
	}
}

// cell renders cell i; empty cells show their index so players know what to type.
func (s *Session) cell(v domain.View, i int) string {
	c := v.Board[i]
	if c == domain.Empty {
		return s.out.String(strconv.Itoa(i)).Faint().String()
	}
	st := s.out.String(c.String())
	if c == domain.X {
		st = st.Foreground(s.out.Color("4"))
	} else {
		st = st.Foreground(s.out.Color("5"))
	}
	if v.Highlight(i) {
		st = st.Reverse()
	}
	return st.String()
}

func order(asc bool) string {
	if asc {
		return "ascending"
	}
	return "descending"
}
