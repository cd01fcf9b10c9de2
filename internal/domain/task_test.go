package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestTask_Clone_DeepCopiesSlices(t *testing.T) {
	orig := Task{
		ID:           "a",
		Title:        "Write report",
		Dependencies: []string{"b"},
		Tags:         []string{"work"},
		Comments:     []Comment{{Author: "system", Body: "hi"}},
		SharedWith:   []string{"ana"},
		Subtasks:     []string{"c"},
	}

	c := orig.Clone()
	c.Dependencies[0] = "x"
	c.Tags[0] = "x"
	c.Comments[0].Body = "x"
	c.SharedWith[0] = "x"
	c.Subtasks[0] = "x"

	assert.Equal(t, "b", orig.Dependencies[0])
	assert.Equal(t, "work", orig.Tags[0])
	assert.Equal(t, "hi", orig.Comments[0].Body)
	assert.Equal(t, "ana", orig.SharedWith[0])
	assert.Equal(t, "c", orig.Subtasks[0])
}

func TestTask_WithStatus_PreservesOtherFields(t *testing.T) {
	orig := Task{
		ID:               "a",
		Title:            "Write report",
		Status:           StatusTodo,
		EstimatedMinutes: 45,
		Tags:             []string{"work"},
	}

	updated := orig.WithStatus(StatusDoing, 40)

	assert.Equal(t, StatusTodo, orig.Status)
	assert.Equal(t, 0, orig.Progress)
	assert.Equal(t, StatusDoing, updated.Status)
	assert.Equal(t, 40, updated.Progress)
	assert.Equal(t, orig.ID, updated.ID)
	assert.Equal(t, orig.Title, updated.Title)
	assert.Equal(t, orig.EstimatedMinutes, updated.EstimatedMinutes)
	assert.Equal(t, orig.Tags, updated.Tags)
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, Task{DueAt: now.Add(-time.Hour)}.IsOverdue(now))
	assert.False(t, Task{DueAt: now.Add(time.Hour)}.IsOverdue(now))
	assert.False(t, Task{}.IsOverdue(now))
}

func TestNewTask_Defaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	task := NewTask("Buy milk", 0, time.Time{}, fixedClock{now: now})

	require.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, DefaultEnergy, task.Energy)
	assert.Equal(t, now, task.CreatedAt)
	assert.Equal(t, now, task.DueAt)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, []string{DefaultTag}, task.Tags)
	assert.Equal(t, DeviceDesktop, task.Context.Device)
	assert.Equal(t, DefaultRecurrence, task.Recurrence)
	assert.Equal(t, DefaultCategory, task.CategoryID)
}

func TestNewTask_UniqueIDs(t *testing.T) {
	clock := fixedClock{now: time.Now()}
	a := NewTask("a", 3, time.Time{}, clock)
	b := NewTask("b", 3, time.Time{}, clock)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 3, a.Energy)
}

func TestCreateTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{"valid", Task{ID: "a", Title: "t", Status: StatusTodo}, nil},
		{"empty id", Task{Title: "t", Status: StatusTodo}, ErrEmptyID},
		{"empty title", Task{ID: "a", Status: StatusTodo}, ErrEmptyTitle},
		{"bad status", Task{ID: "a", Title: "t", Status: "blocked"}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CreateTask{Task: tt.task}.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateStatus_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     UpdateStatus
		wantErr error
	}{
		{"valid", UpdateStatus{ID: "a", Status: StatusDone, Progress: 100}, nil},
		{"empty id", UpdateStatus{Status: StatusDone}, ErrEmptyID},
		{"bad status", UpdateStatus{ID: "a", Status: "closed"}, ErrInvalidStatus},
		{"negative progress", UpdateStatus{ID: "a", Status: StatusDoing, Progress: -1}, ErrInvalidProgress},
		{"progress over 100", UpdateStatus{ID: "a", Status: StatusDoing, Progress: 101}, ErrInvalidProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
