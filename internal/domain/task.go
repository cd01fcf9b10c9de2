// Package domain contains core business entities and interfaces.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Task is an immutable snapshot of a work item.
// Every change produces a new snapshot bound to the same ID.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt        time.Time `json:"createdAt" yaml:"createdAt"`
	DueAt            time.Time `json:"dueAt" yaml:"dueAt"`
	Context          Context   `json:"context" yaml:"context"`
	ID               string    `json:"id" yaml:"id"`
	Title            string    `json:"title" yaml:"title"`
	Description      string    `json:"description,omitempty" yaml:"description,omitempty"`
	Status           Status    `json:"status" yaml:"status"`
	Recurrence       string    `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
	CategoryID       string    `json:"categoryId,omitempty" yaml:"categoryId,omitempty"`
	Dependencies     []string  `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Tags             []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Comments         []Comment `json:"comments,omitempty" yaml:"comments,omitempty"`
	SharedWith       []string  `json:"sharedWith,omitempty" yaml:"sharedWith,omitempty"`
	Subtasks         []string  `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
	Confidence       float64   `json:"confidence" yaml:"confidence"`
	EstimatedMinutes int       `json:"estimatedMinutes" yaml:"estimatedMinutes"`
	Energy           int       `json:"energy" yaml:"energy"`
	Urgency          int       `json:"urgency" yaml:"urgency"`
	Importance       int       `json:"importance" yaml:"importance"`
	Progress         int       `json:"progress" yaml:"progress"`
	EffortScore      int       `json:"effortScore" yaml:"effortScore"`
}

// Context holds free-form hints about where and how a task is done.
type Context struct {
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Device   string `json:"device,omitempty" yaml:"device,omitempty"`
	Mood     string `json:"mood,omitempty" yaml:"mood,omitempty"`
}

// Device contexts recognised by the priority matrix.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
)

// Comment represents a note attached to a task.
// Fields are ordered to minimize memory padding.
type Comment struct {
	Time   time.Time `json:"time" yaml:"time"`
	Author string    `json:"author" yaml:"author"`
	Body   string    `json:"body" yaml:"body"`
}

// Clone returns a deep copy of the task so callers cannot reach shared slices.
func (t Task) Clone() Task {
	c := t
	c.Dependencies = slices.Clone(t.Dependencies)
	c.Tags = slices.Clone(t.Tags)
	c.Comments = slices.Clone(t.Comments)
	c.SharedWith = slices.Clone(t.SharedWith)
	c.Subtasks = slices.Clone(t.Subtasks)
	return c
}

// WithStatus returns a new snapshot with status and progress replaced.
// All other fields are preserved.
func (t Task) WithStatus(status Status, progress int) Task {
	c := t.Clone()
	c.Status = status
	c.Progress = progress
	return c
}

// IsDone returns true if the task is finished.
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// IsOverdue reports whether the due time is before now.
// A zero due time is never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.DueAt.IsZero() && t.DueAt.Before(now)
}

// IsMobile reports whether the task is bound to a mobile device context.
func (t Task) IsMobile() bool {
	return t.Context.Device == DeviceMobile
}

// Defaults applied by NewTask.
const (
	DefaultDescription      = "Generated automatically"
	DefaultEnergy           = 5
	DefaultEstimatedMinutes = 30
	DefaultRecurrence       = "none"
	DefaultCategory         = "root"
	DefaultLocation         = "home"
	DefaultTag              = "auto"
)

// NewTask builds a task with the defaults used for quick capture.
// An energy of 0 falls back to DefaultEnergy and a zero due time falls back to now.
func NewTask(title string, energy int, due time.Time, clock Clock) Task {
	now := clock.Now()
	if energy == 0 {
		energy = DefaultEnergy
	}
	if due.IsZero() {
		due = now
	}
	return Task{
		ID:               uuid.NewString(),
		Title:            title,
		Description:      DefaultDescription,
		CreatedAt:        now,
		DueAt:            due,
		EstimatedMinutes: DefaultEstimatedMinutes,
		Energy:           energy,
		Tags:             []string{DefaultTag},
		Status:           StatusTodo,
		Context: Context{
			Location: DefaultLocation,
			Device:   DeviceDesktop,
		},
		Recurrence: DefaultRecurrence,
		CategoryID: DefaultCategory,
	}
}
