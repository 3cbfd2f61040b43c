package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/qroute/pkg/cache"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log_level = "warn"
workers = 3
trace = true
device_files = ["a.toml", "b.toml"]

[cache]
backend = "redis"
ttl = "2h"
prefix = "lab:"

[cache.redis]
addr = "localhost:6380"
db = 2
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.Trace)
	assert.Equal(t, []string{"a.toml", "b.toml"}, cfg.DeviceFiles)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "lab:", cfg.Cache.Prefix)
	assert.Equal(t, "localhost:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)

	ttl, err := cfg.tableTTL()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, ttl)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Zero(t, cfg.Workers)

	ttl, err := cfg.tableTTL()
	require.NoError(t, err)
	assert.Equal(t, defaultTableTTL, ttl)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, qerrors.IsConfiguration(err), "explicit missing file: %v", err)

	_, err = loadConfig(writeConfig(t, "workers = \"many\""))
	assert.True(t, qerrors.IsConfiguration(err), "type mismatch: %v", err)

	_, err = loadConfig(writeConfig(t, "[cache]\nbakend = \"file\""))
	assert.True(t, qerrors.IsConfiguration(err), "unknown key: %v", err)

	cfg, err := loadConfig(writeConfig(t, "[cache]\nttl = \"soon\""))
	require.NoError(t, err)
	_, err = cfg.tableTTL()
	assert.True(t, qerrors.IsConfiguration(err), "bad ttl: %v", err)
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	path, err := configPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/custom-config", appName, "config.toml"), path)
}

func TestDefaultPathsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	path, err := configPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", appName, "config.toml"), path)

	dir, err := cache.DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cache", appName), dir)

	c := New(io.Discard, LogInfo)
	require.NoError(t, c.setup(c.RootCommand()))
	fileDir, err := c.fileCacheDir()
	require.NoError(t, err)
	assert.Equal(t, dir, fileDir)
}

func TestNewTableCache(t *testing.T) {
	cfg := &Config{}
	cfg.Cache.Dir = t.TempDir()

	c, err := newTableCache(t.Context(), cfg, false)
	require.NoError(t, err)
	assert.IsType(t, (*cache.FileCache)(nil), c)

	c, err = newTableCache(t.Context(), cfg, true)
	require.NoError(t, err)
	assert.IsType(t, cache.NullCache{}, c)

	cfg.Cache.Backend = "none"
	c, err = newTableCache(t.Context(), cfg, false)
	require.NoError(t, err)
	assert.IsType(t, cache.NullCache{}, c)

	cfg.Cache.Backend = "etcd"
	_, err = newTableCache(t.Context(), cfg, false)
	assert.True(t, qerrors.IsConfiguration(err))
}

func TestParseQubits(t *testing.T) {
	qs, err := parseQubits("terminal", "1, 3,5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, qs)

	qs, err = parseQubits("usable", "  ")
	require.NoError(t, err)
	assert.Nil(t, qs)

	_, err = parseQubits("terminal", "1,,2")
	assert.True(t, qerrors.IsConfiguration(err))

	_, err = parseQubit("root", "-")
	assert.True(t, qerrors.IsConfiguration(err))
}
