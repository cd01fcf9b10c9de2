package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// CreateTaskInput contains the parameters for creating a task.
// Zero values fall back to the quick-capture defaults.
// Fields are ordered to minimize memory padding.
type CreateTaskInput struct {
	DueAt            time.Time
	ID               string   // Optional, generated when empty
	Title            string   // Required
	Description      string   // Optional
	Category         string   // Optional, predicted from the title when empty
	Mood             string   // Optional context mood
	Device           string   // Optional context device (desktop, mobile)
	Tags             []string // Optional, replaces the default tag
	Dependencies     []string // IDs this task waits on
	Energy           int
	Urgency          int
	Importance       int
	EffortScore      int
	EstimatedMinutes int
}

// CreateTaskOutput contains the created task.
type CreateTaskOutput struct {
	Task domain.Task
}

// CreateTask is the use case for adding a task to the store.
type CreateTask struct {
	store       TaskStore
	clock       domain.Clock
	categorizer Categorizer
	logger      domain.Logger
}

// NewCreateTask creates a new CreateTask use case. categorizer may be nil.
func NewCreateTask(store TaskStore, clock domain.Clock, categorizer Categorizer, logger domain.Logger) *CreateTask {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &CreateTask{
		store:       store,
		clock:       clock,
		categorizer: categorizer,
		logger:      logger,
	}
}

// Execute builds a task from the input and dispatches it.
func (uc *CreateTask) Execute(_ context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	if in.Title == "" {
		return nil, domain.ErrEmptyTitle
	}

	task := domain.NewTask(in.Title, in.Energy, in.DueAt, uc.clock)
	if in.ID != "" {
		task.ID = in.ID
	}
	if in.Description != "" {
		task.Description = in.Description
	}
	switch {
	case in.Category != "":
		task.CategoryID = in.Category
	case uc.categorizer != nil:
		if label, ok := uc.categorizer.Predict(in.Title); ok {
			task.CategoryID = label
		}
	}
	if in.Device != "" {
		task.Context.Device = in.Device
	}
	if len(in.Tags) > 0 {
		task.Tags = in.Tags
	}
	if in.EstimatedMinutes != 0 {
		task.EstimatedMinutes = in.EstimatedMinutes
	}
	task.Context.Mood = in.Mood
	task.Dependencies = in.Dependencies
	task.Urgency = in.Urgency
	task.Importance = in.Importance
	task.EffortScore = in.EffortScore

	e, err := uc.store.DispatchStrict(domain.CreateTask{Task: task})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	created := e.(domain.TaskCreated).Task
	if uc.logger != nil {
		uc.logger.Info(created.ID, "task", fmt.Sprintf("created: %q", created.Title))
	}
	return &CreateTaskOutput{Task: created}, nil
}
