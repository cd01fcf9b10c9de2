package usecase

import (
	"context"
	"fmt"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// UpdateStatusInput contains the parameters for changing a task's status.
type UpdateStatusInput struct {
	Progress *int // Optional, nil = progress implied by the status
	ID       string
	Status   domain.Status
}

// UpdateStatusOutput contains the task before and after the change.
type UpdateStatusOutput struct {
	Before domain.Task
	After  domain.Task
}

// UpdateStatus is the use case for moving a task on the board.
type UpdateStatus struct {
	store  TaskStore
	cache  TaskCache
	logger domain.Logger
}

// NewUpdateStatus creates a new UpdateStatus use case. cache may be nil.
func NewUpdateStatus(store TaskStore, cache TaskCache, logger domain.Logger) *UpdateStatus {
	return &UpdateStatus{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Execute dispatches the status change and refreshes the cached snapshot.
func (uc *UpdateStatus) Execute(_ context.Context, in UpdateStatusInput) (*UpdateStatusOutput, error) {
	before, err := getTask(uc.store, in.ID)
	if err != nil {
		return nil, err
	}

	progress := in.Status.DefaultProgress()
	if in.Progress != nil {
		progress = *in.Progress
	}

	if _, err := uc.store.DispatchStrict(domain.UpdateStatus{ID: in.ID, Status: in.Status, Progress: progress}); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	var epoch uint64
	if uc.cache != nil {
		epoch = uc.cache.Epoch()
	}
	after, err := getTask(uc.store, in.ID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.SetIfEpoch(after.ID, after, epoch)
	}
	if uc.logger != nil {
		uc.logger.Info(after.ID, "task", fmt.Sprintf("status: %s -> %s", before.Status, after.Status))
	}
	return &UpdateStatusOutput{Before: before, After: after}, nil
}

// AdvanceStatusInput identifies the task to move to its next column.
type AdvanceStatusInput struct {
	ID string
}

// AdvanceStatus moves a task to the next status on the board.
type AdvanceStatus struct {
	update *UpdateStatus
	store  TaskStore
}

// NewAdvanceStatus creates a new AdvanceStatus use case.
func NewAdvanceStatus(store TaskStore, update *UpdateStatus) *AdvanceStatus {
	return &AdvanceStatus{store: store, update: update}
}

// Execute advances todo to doing and doing to done. Done tasks stay done.
func (uc *AdvanceStatus) Execute(ctx context.Context, in AdvanceStatusInput) (*UpdateStatusOutput, error) {
	task, err := getTask(uc.store, in.ID)
	if err != nil {
		return nil, err
	}
	return uc.update.Execute(ctx, UpdateStatusInput{ID: in.ID, Status: task.Status.Next()})
}
