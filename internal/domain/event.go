package domain

import (
	"fmt"
	"time"
)

// EventType names a kind of domain event.
type EventType string

// Event types. The values are the wire names used in persisted logs.
const (
	EventTaskCreated   EventType = "TASK_CREATED"
	EventStatusUpdated EventType = "STATUS_UPDATED"
)

// AllEventTypes returns every event type the store emits.
func AllEventTypes() []EventType {
	return []EventType{EventTaskCreated, EventStatusUpdated}
}

// Event is an immutable fact appended to the store's log.
type Event interface {
	Type() EventType
	TaskID() string
	Time() time.Time
}

// TaskCreated records that a task snapshot was inserted.
type TaskCreated struct {
	At   time.Time
	Task Task
}

// StatusUpdated records a status and progress change.
type StatusUpdated struct {
	At       time.Time
	ID       string
	Status   Status
	Progress int
}

// Type returns EventTaskCreated.
func (e TaskCreated) Type() EventType { return EventTaskCreated }

// TaskID returns the created task's ID.
func (e TaskCreated) TaskID() string { return e.Task.ID }

// Time returns when the event was created.
func (e TaskCreated) Time() time.Time { return e.At }

// Type returns EventStatusUpdated.
func (e StatusUpdated) Type() EventType { return EventStatusUpdated }

// TaskID returns the updated task's ID.
func (e StatusUpdated) TaskID() string { return e.ID }

// Time returns when the event was created.
func (e StatusUpdated) Time() time.Time { return e.At }

// EventRecord is the serialized form of an event.
// Seq is the 1-based position in the log.
// Fields are ordered to minimize memory padding.
type EventRecord struct {
	At       time.Time `json:"at" yaml:"at"`
	Task     *Task     `json:"task,omitempty" yaml:"task,omitempty"`
	Type     EventType `json:"type" yaml:"type"`
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Status   Status    `json:"status,omitempty" yaml:"status,omitempty"`
	Seq      uint64    `json:"seq" yaml:"seq"`
	Progress int       `json:"progress,omitempty" yaml:"progress,omitempty"`
}

// ToRecord converts an event into its serialized form.
func ToRecord(seq uint64, e Event) (EventRecord, error) {
	switch ev := e.(type) {
	case TaskCreated:
		task := ev.Task.Clone()
		return EventRecord{Seq: seq, Type: EventTaskCreated, At: ev.At, Task: &task}, nil
	case StatusUpdated:
		return EventRecord{
			Seq:      seq,
			Type:     EventStatusUpdated,
			At:       ev.At,
			ID:       ev.ID,
			Status:   ev.Status,
			Progress: ev.Progress,
		}, nil
	default:
		return EventRecord{}, fmt.Errorf("%w: %T", ErrUnknownEventType, e)
	}
}

// FromRecord converts a serialized record back into an event.
func FromRecord(r EventRecord) (Event, error) {
	switch r.Type {
	case EventTaskCreated:
		if r.Task == nil {
			return nil, fmt.Errorf("record %d: %s without task", r.Seq, r.Type)
		}
		return TaskCreated{At: r.At, Task: r.Task.Clone()}, nil
	case EventStatusUpdated:
		return StatusUpdated{At: r.At, ID: r.ID, Status: r.Status, Progress: r.Progress}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, r.Type)
	}
}
