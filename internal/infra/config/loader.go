// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/lembra)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns $XDG_CONFIG_HOME/lembra, falling back to ~/.config/lembra.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Merge order: defaults <- global <- data dir (later takes precedence).
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.LoadLocal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadLocal returns only the data directory configuration.
func (l *Loader) LoadLocal() (*domain.Config, error) {
	return loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
}

func loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is built from known config locations
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to a partial config and collects warnings.
// Only keys present in the file are set; everything else stays zero so merging can
// tell "unset" apart from "set".
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	unknownKey := func(section, key string) {
		warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, key))
	}
	badValue := func(section, key string, v any) {
		warnings = append(warnings, fmt.Sprintf("invalid value for %s.%s: %v", section, key, v))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					} else {
						badValue(section, k, v)
					}
				default:
					unknownKey(section, k)
				}
			}
		case "cache":
			for k, v := range m {
				switch k {
				case "capacity":
					if n, ok := v.(int64); ok {
						res.Cache.Capacity = int(n)
					} else {
						badValue(section, k, v)
					}
				default:
					unknownKey(section, k)
				}
			}
		case "scheduler":
			for k, v := range m {
				switch k {
				case "quantum":
					if n, ok := v.(int64); ok {
						res.Scheduler.Quantum = int(n)
					} else {
						badValue(section, k, v)
					}
				default:
					unknownKey(section, k)
				}
			}
		case "priority":
			for k, v := range m {
				switch k {
				case "strategies":
					names, ok := stringList(v)
					if !ok {
						badValue(section, k, v)
						continue
					}
					res.Priority.Strategies = names
				default:
					unknownKey(section, k)
				}
			}
		case "store":
			for k, v := range m {
				var dst *string
				switch k {
				case "event_log":
					dst = &res.Store.EventLog
				case "snapshot":
					dst = &res.Store.Snapshot
				case "namespace":
					dst = &res.Store.Namespace
				default:
					unknownKey(section, k)
					continue
				}
				if s, ok := v.(string); ok {
					*dst = s
				} else {
					badValue(section, k, v)
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Server.Addr = s
					} else {
						badValue(section, k, v)
					}
				default:
					unknownKey(section, k)
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Log:       base.Log,
		Store:     base.Store,
		Server:    base.Server,
		Cache:     base.Cache,
		Scheduler: base.Scheduler,
		Priority:  domain.PriorityConfig{Strategies: slices.Clone(base.Priority.Strategies)},
		Warnings:  append(slices.Clone(base.Warnings), override.Warnings...),
	}

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Cache.Capacity != 0 {
		result.Cache.Capacity = override.Cache.Capacity
	}
	if override.Scheduler.Quantum != 0 {
		result.Scheduler.Quantum = override.Scheduler.Quantum
	}
	if override.Priority.Strategies != nil {
		result.Priority.Strategies = slices.Clone(override.Priority.Strategies)
	}
	if override.Store.EventLog != "" {
		result.Store.EventLog = override.Store.EventLog
	}
	if override.Store.Snapshot != "" {
		result.Store.Snapshot = override.Store.Snapshot
	}
	if override.Store.Namespace != "" {
		result.Store.Namespace = override.Store.Namespace
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	return result
}

// Validate reports the first setting that cannot be used.
func Validate(cfg *domain.Config) error {
	if cfg.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity %d: %w", cfg.Cache.Capacity, domain.ErrInvalidCapacity)
	}
	if cfg.Scheduler.Quantum <= 0 {
		return fmt.Errorf("scheduler.quantum %d: %w", cfg.Scheduler.Quantum, domain.ErrInvalidQuantum)
	}
	switch cfg.Store.EventLog {
	case domain.BackendGit, domain.BackendBadger, domain.BackendNone:
	default:
		return fmt.Errorf("store.event_log %q: %w", cfg.Store.EventLog, domain.ErrUnknownBackend)
	}
	switch cfg.Store.Snapshot {
	case domain.BackendJSON, domain.BackendSQLite, domain.BackendNone:
	default:
		return fmt.Errorf("store.snapshot %q: %w", cfg.Store.Snapshot, domain.ErrUnknownBackend)
	}
	return nil
}

// Render returns the effective configuration as TOML.
func Render(cfg *domain.Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}
