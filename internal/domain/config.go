package domain

// Storage backend names.
const (
	BackendNone   = "none"
	BackendGit    = "git"
	BackendBadger = "badger"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config defaults.
const (
	DefaultLogLevel      = "info"
	DefaultCacheCapacity = 50
	DefaultQuantum       = 25
	DefaultNamespace     = "lembra"
	DefaultServerAddr    = "127.0.0.1:8080"
)

// DefaultStrategies returns the priority strategies enabled by default.
func DefaultStrategies() []string {
	return []string{"eisenhower", "pareto", "mood"}
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Store     StoreConfig     `toml:"store"`
	Server    ServerConfig    `toml:"server"`
	Priority  PriorityConfig  `toml:"priority"`
	Warnings  []string        `toml:"-"` // Unknown keys found while loading
	Cache     CacheConfig     `toml:"cache"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// CacheConfig holds task cache settings.
type CacheConfig struct {
	Capacity int `toml:"capacity"`
}

// SchedulerConfig holds round-robin settings.
type SchedulerConfig struct {
	Quantum int `toml:"quantum"`
}

// PriorityConfig holds the ordered list of scoring strategies.
type PriorityConfig struct {
	Strategies []string `toml:"strategies"`
}

// StoreConfig selects persistence backends.
type StoreConfig struct {
	EventLog  string `toml:"event_log"` // git, badger, none
	Snapshot  string `toml:"snapshot"`  // json, sqlite, none
	Namespace string `toml:"namespace"` // ref namespace for the git event log
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// NewDefaultConfig returns a Config populated with defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Log:       LogConfig{Level: DefaultLogLevel},
		Cache:     CacheConfig{Capacity: DefaultCacheCapacity},
		Scheduler: SchedulerConfig{Quantum: DefaultQuantum},
		Priority:  PriorityConfig{Strategies: DefaultStrategies()},
		Store: StoreConfig{
			EventLog:  BackendGit,
			Snapshot:  BackendJSON,
			Namespace: DefaultNamespace,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"
