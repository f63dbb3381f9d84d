package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tictactoe-history/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "", "version"), "tictactoe version dev")
}

func TestPlayCommand(t *testing.T) {
	out := execute(t, "0\n3\n1\n4\n2\nq\n", "play")
	assert.Contains(t, out, "Winner: X")
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, serveCmd.Flags().Set("addr", ":9999"))
	require.NoError(t, serveCmd.Flags().Set("store", config.StoreSQLite))
	require.NoError(t, rootCmd.PersistentFlags().Set("log-level", "debug"))
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("log-level", "") })

	cfg, err := loadConfig(serveCmd)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, config.StoreSQLite, cfg.Store)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Store = config.StoreSQLite
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "games.db")
	st, err := openStore(testContext(t), cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// testContext returns a context canceled when the test ends
// (stand-in for testing.T.Context, which requires Go 1.24).
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
