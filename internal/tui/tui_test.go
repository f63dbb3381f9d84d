package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tictactoe-history/internal/domain"
)

func run(t *testing.T, input string) (*Session, string) {
	t.Helper()
	var out bytes.Buffer
	s := New(&out, termenv.WithProfile(termenv.Ascii))
	require.NoError(t, s.Run(strings.NewReader(input)))
	return s, out.String()
}

func TestPlayToWin(t *testing.T) {
	s, out := run(t, "0\n1\nm 4\n2\n8\nq\n")
	g := s.Game()
	assert.Equal(t, domain.Win, g.Outcome().Result)
	assert.Contains(t, out, "Winner: X")
	assert.Contains(t, out, "Player X  row 3 col 3")
}

func TestRejectedMoveReportsError(t *testing.T) {
	s, out := run(t, "4\n4\n")
	assert.Contains(t, out, domain.ErrOccupied.Error())
	g := s.Game()
	assert.Equal(t, 2, g.Len())
}

func TestJumpSortReset(t *testing.T) {
	s, out := run(t, "0\n4\nj 1\ns\n")
	g := s.Game()
	assert.Equal(t, 1, g.Step())
	assert.Equal(t, 3, g.Len())
	assert.False(t, g.Ascending())
	assert.Contains(t, out, "* ")
	assert.Contains(t, out, "Move history (descending)")

	s, _ = run(t, "0\n4\nr\n")
	g = s.Game()
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, domain.X, g.Next())
}

func TestUsageErrors(t *testing.T) {
	_, out := run(t, "x\nj\nj a\nj 5\nh\n")
	assert.Equal(t, 2, strings.Count(out, errUsage.Error()))
	assert.Contains(t, out, `not a number: "a"`)
	assert.Contains(t, out, domain.ErrStepOutOfRange.Error())
	assert.Contains(t, out, "toggle history order")
}
