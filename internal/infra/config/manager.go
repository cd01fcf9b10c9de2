package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Info describes one configuration file on disk.
type Info struct {
	Path    string
	Content string
	Exists  bool
}

// Manager inspects and creates configuration files.
type Manager struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/lembra)
}

// NewManager creates a new Manager.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(dataDir, globalConfDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// LocalInfo returns information about the data directory config file.
func (m *Manager) LocalInfo() Info {
	return readInfo(filepath.Join(m.dataDir, domain.ConfigFileName))
}

// GlobalInfo returns information about the global config file.
func (m *Manager) GlobalInfo() Info {
	if m.globalConfDir == "" {
		return Info{}
	}
	return readInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

func readInfo(path string) Info {
	content, err := os.ReadFile(path) //nolint:gosec // Path is built from known config locations
	if err != nil {
		return Info{Path: path}
	}
	return Info{Path: path, Content: string(content), Exists: true}
}

// InitLocal writes the config template into the data directory.
func (m *Manager) InitLocal() (string, error) {
	return initConfig(m.dataDir)
}

// InitGlobal writes the config template into the global config directory.
func (m *Manager) InitGlobal() (string, error) {
	if m.globalConfDir == "" {
		return "", errors.New("global config directory not available")
	}
	return initConfig(m.globalConfDir)
}

func initConfig(dir string) (string, error) {
	path := filepath.Join(dir, domain.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s: %w", path, domain.ErrConfigExists)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return path, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template()), 0o600); err != nil {
		return path, fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// Template returns a commented config file holding the defaults.
func Template() string {
	cfg := domain.NewDefaultConfig()
	quoted := make([]string, len(cfg.Priority.Strategies))
	for i, s := range cfg.Priority.Strategies {
		quoted[i] = fmt.Sprintf("%q", s)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# lembra configuration\n\n")
	fmt.Fprintf(&b, "[log]\n# debug, info, warn, error\nlevel = %q\n\n", cfg.Log.Level)
	fmt.Fprintf(&b, "[cache]\n# Number of task snapshots kept in the read cache\ncapacity = %d\n\n", cfg.Cache.Capacity)
	fmt.Fprintf(&b, "[scheduler]\n# Base round-robin slice in minutes (energy is added per task)\nquantum = %d\n\n", cfg.Scheduler.Quantum)
	fmt.Fprintf(&b, "[priority]\n# Summed in order: eisenhower, pareto, mood\nstrategies = [%s]\n\n", strings.Join(quoted, ", "))
	fmt.Fprintf(&b, "[store]\n# Event log backend: git, badger, none\nevent_log = %q\n", cfg.Store.EventLog)
	fmt.Fprintf(&b, "# Snapshot backend: json, sqlite, none\nsnapshot = %q\n", cfg.Store.Snapshot)
	fmt.Fprintf(&b, "# Ref namespace used by the git event log\nnamespace = %q\n\n", cfg.Store.Namespace)
	fmt.Fprintf(&b, "[server]\naddr = %q\n", cfg.Server.Addr)
	return b.String()
}
