package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_LocalOnly(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[log]
level = "debug"

[cache]
capacity = 10

[scheduler]
quantum = 15

[priority]
strategies = ["pareto"]

[store]
event_log = "badger"
snapshot = "sqlite"

[server]
addr = ":9000"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Cache.Capacity)
	assert.Equal(t, 15, cfg.Scheduler.Quantum)
	assert.Equal(t, []string{"pareto"}, cfg.Priority.Strategies)
	assert.Equal(t, domain.BackendBadger, cfg.Store.EventLog)
	assert.Equal(t, domain.BackendSQLite, cfg.Store.Snapshot)
	assert.Equal(t, domain.DefaultNamespace, cfg.Store.Namespace)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_LocalOverridesGlobal(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[log]
level = "warn"

[cache]
capacity = 5
`)
	writeConfig(t, dataDir, `
[cache]
capacity = 7
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Cache.Capacity)
}

func TestLoader_Load_Warnings(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
color = "blue"

[cache]
capacity = "lots"
ttl = 3

[workers]
default = "x"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"invalid value for cache.capacity: lots",
		"unknown key in [cache]: ttl",
		"unknown section: color",
		"unknown section: workers",
	}, cfg.Warnings)
	assert.Equal(t, domain.DefaultCacheCapacity, cfg.Cache.Capacity)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[log\nlevel=")

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	require.Error(t, err)
}

func TestLoader_LoadGlobal_NoDir(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		mutate func(*domain.Config)
		want   error
		name   string
	}{
		{name: "defaults", mutate: func(*domain.Config) {}},
		{name: "zero capacity", mutate: func(c *domain.Config) { c.Cache.Capacity = 0 }, want: domain.ErrInvalidCapacity},
		{name: "negative quantum", mutate: func(c *domain.Config) { c.Scheduler.Quantum = -1 }, want: domain.ErrInvalidQuantum},
		{name: "bad event log", mutate: func(c *domain.Config) { c.Store.EventLog = "s3" }, want: domain.ErrUnknownBackend},
		{name: "bad snapshot", mutate: func(c *domain.Config) { c.Store.Snapshot = "csv" }, want: domain.ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.NewDefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRender(t *testing.T) {
	out, err := Render(domain.NewDefaultConfig())
	require.NoError(t, err)

	assert.Contains(t, out, "[cache]")
	assert.Contains(t, out, "capacity = 50")
	assert.NotContains(t, out, "Warnings")
}
