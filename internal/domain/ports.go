package domain

import (
	"context"
	"time"
)

// EventLog persists the store's event log outside the process.
type EventLog interface {
	// Append stores an event at the end of the log and returns its sequence number.
	Append(ctx context.Context, e Event) (uint64, error)

	// Load returns all events in log order.
	Load(ctx context.Context) ([]Event, error)

	// Close releases any resources held by the log.
	Close() error
}

// SnapshotStore persists flattened projections (the output of a store query).
type SnapshotStore interface {
	// Save replaces the stored snapshot with tasks, keeping their order.
	Save(ctx context.Context, tasks []Task) error

	// Load returns the last saved snapshot. An empty slice means nothing was saved.
	Load(ctx context.Context) ([]Task, error)

	// Close releases any resources held by the store.
	Close() error
}

// Logger writes audit entries, optionally scoped to a task.
// An empty taskID writes to the global log only.
type Logger interface {
	Info(taskID, category, msg string)
	Debug(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (data dir + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
