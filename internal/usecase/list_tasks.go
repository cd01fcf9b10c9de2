package usecase

import (
	"context"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// ListTasksInput contains the filters for listing tasks.
type ListTasksInput struct {
	Status domain.Status // Optional, empty = all statuses
	Query  string        // Optional full-text filter on titles
}

// ListTasksOutput contains the matching tasks in store order.
type ListTasksOutput struct {
	Tasks []domain.Task
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store  TaskStore
	search Searcher
}

// NewListTasks creates a new ListTasks use case. search may be nil when
// query filtering is not needed.
func NewListTasks(store TaskStore, search Searcher) *ListTasks {
	return &ListTasks{store: store, search: search}
}

// Execute returns the tasks matching the filters.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if in.Status != "" && !in.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	var allowed map[string]bool
	if in.Query != "" && uc.search != nil {
		ids := uc.search.Search(in.Query)
		allowed = make(map[string]bool, len(ids))
		for _, id := range ids {
			allowed[id] = true
		}
	}

	tasks := []domain.Task{}
	for _, t := range uc.store.Query() {
		if in.Status != "" && t.Status != in.Status {
			continue
		}
		if allowed != nil && !allowed[t.ID] {
			continue
		}
		tasks = append(tasks, t)
	}
	return &ListTasksOutput{Tasks: tasks}, nil
}
