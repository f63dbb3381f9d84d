package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir into an empty dir so no stray .env is picked up
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "tictactoe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
store: redis
redis:
  addr: "cache:6379"
  ttl: 30m
`), 0o644))

	t.Setenv("TTT_ADDR", ":9100")
	t.Setenv("TTT_REDIS_DB", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TTT_STORE=sqlite\nTTT_SQLITE_PATH=games.db\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("TTT_STORE")
		os.Unsetenv("TTT_SQLITE_PATH")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "games.db", cfg.SQLite.Path)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	_, err := Load("missing.yaml")
	require.Error(t, err)

	t.Setenv("TTT_REDIS_TTL", "soon")
	_, err = Load("")
	require.ErrorContains(t, err, "TTT_REDIS_TTL")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := Default()
	bad.Store = "etcd"
	assert.ErrorContains(t, bad.Validate(), "unknown store")

	bad = Default()
	bad.LogLevel = "chatty"
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.Addr = ""
	assert.Error(t, bad.Validate())
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
