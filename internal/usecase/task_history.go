package usecase

import (
	"context"
	"fmt"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/history"
)

// TaskHistoryInput identifies the task whose versions are listed.
type TaskHistoryInput struct {
	ID string
}

// TaskHistoryOutput contains the versions, oldest first.
type TaskHistoryOutput struct {
	Versions []history.Version
}

// TaskHistory lists every recorded snapshot of a task.
type TaskHistory struct {
	versions VersionLog
}

// NewTaskHistory creates a new TaskHistory use case.
func NewTaskHistory(versions VersionLog) *TaskHistory {
	return &TaskHistory{versions: versions}
}

// Execute returns the task's versions or ErrTaskNotFound when none exist.
func (uc *TaskHistory) Execute(_ context.Context, in TaskHistoryInput) (*TaskHistoryOutput, error) {
	if in.ID == "" {
		return nil, domain.ErrEmptyID
	}
	versions := uc.versions.Versions(in.ID)
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, in.ID)
	}
	return &TaskHistoryOutput{Versions: versions}, nil
}
