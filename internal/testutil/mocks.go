// Package testutil provides test doubles shared across packages.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Ensure mocks implement their interfaces.
var (
	_ domain.Clock         = (*MockClock)(nil)
	_ domain.Clock         = (*StepClock)(nil)
	_ domain.EventLog      = (*MockEventLog)(nil)
	_ domain.SnapshotStore = (*MockSnapshotStore)(nil)
	_ domain.Logger        = (*MockLogger)(nil)
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// StepClock returns Start, Start+Step, Start+2*Step, ... on successive calls.
type StepClock struct {
	Start time.Time
	Step  time.Duration
	n     int
	mu    sync.Mutex
}

// NewStepClock creates a clock that advances by step on every call.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{Start: start, Step: step}
}

// Now returns the next time in the sequence.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.Start.Add(time.Duration(c.n) * c.Step)
	c.n++
	return t
}

// MockEventLog is an in-memory domain.EventLog.
// Fields are ordered to minimize memory padding.
type MockEventLog struct {
	AppendErr error
	LoadErr   error
	Events    []domain.Event
	Closed    bool
	mu        sync.Mutex
}

// Append stores the event and returns its 1-based sequence number.
func (m *MockEventLog) Append(_ context.Context, e domain.Event) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return 0, m.AppendErr
	}
	m.Events = append(m.Events, e)
	return uint64(len(m.Events)), nil
}

// Load returns a copy of the stored events.
func (m *MockEventLog) Load(_ context.Context) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]domain.Event(nil), m.Events...), nil
}

// Close marks the log as closed.
func (m *MockEventLog) Close() error {
	m.Closed = true
	return nil
}

// MockSnapshotStore is an in-memory domain.SnapshotStore.
// Fields are ordered to minimize memory padding.
type MockSnapshotStore struct {
	SaveErr error
	LoadErr error
	Tasks   []domain.Task
	Saves   int
	Closed  bool
}

// Save replaces the stored tasks.
func (m *MockSnapshotStore) Save(_ context.Context, tasks []domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks = make([]domain.Task, len(tasks))
	for i, t := range tasks {
		m.Tasks[i] = t.Clone()
	}
	m.Saves++
	return nil
}

// Load returns a copy of the stored tasks.
func (m *MockSnapshotStore) Load(_ context.Context) ([]domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]domain.Task, len(m.Tasks))
	for i, t := range m.Tasks {
		out[i] = t.Clone()
	}
	return out, nil
}

// Close marks the store as closed.
func (m *MockSnapshotStore) Close() error {
	m.Closed = true
	return nil
}

// MockLogger records log lines as "LEVEL taskID category msg".
type MockLogger struct {
	Lines []string
	mu    sync.Mutex
}

func (m *MockLogger) record(level, taskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, fmt.Sprintf("%s %s %s %s", level, taskID, category, msg))
}

// Info records an info line.
func (m *MockLogger) Info(taskID, category, msg string) { m.record("INFO", taskID, category, msg) }

// Debug records a debug line.
func (m *MockLogger) Debug(taskID, category, msg string) { m.record("DEBUG", taskID, category, msg) }

// Warn records a warning line.
func (m *MockLogger) Warn(taskID, category, msg string) { m.record("WARN", taskID, category, msg) }

// Error records an error line.
func (m *MockLogger) Error(taskID, category, msg string) { m.record("ERROR", taskID, category, msg) }

// Task builds a minimal valid task for tests.
func Task(id, title string) domain.Task {
	return domain.Task{
		ID:     id,
		Title:  title,
		Status: domain.StatusTodo,
	}
}
