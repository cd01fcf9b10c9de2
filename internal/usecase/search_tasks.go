package usecase

import (
	"context"
	"strings"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// SearchTasksInput contains the free-text query.
type SearchTasksInput struct {
	Query string
}

// SearchTasksOutput contains the matching tasks in first-indexed order.
type SearchTasksOutput struct {
	Tasks []domain.Task
}

// SearchTasks resolves a title query through the full-text index.
type SearchTasks struct {
	store  TaskStore
	search Searcher
}

// NewSearchTasks creates a new SearchTasks use case.
func NewSearchTasks(store TaskStore, search Searcher) *SearchTasks {
	return &SearchTasks{store: store, search: search}
}

// Execute returns the tasks whose titles share a token with the query.
func (uc *SearchTasks) Execute(_ context.Context, in SearchTasksInput) (*SearchTasksOutput, error) {
	tasks := []domain.Task{}
	if strings.TrimSpace(in.Query) == "" {
		return &SearchTasksOutput{Tasks: tasks}, nil
	}
	for _, id := range uc.search.Search(in.Query) {
		if t, ok := uc.store.Get(id); ok {
			tasks = append(tasks, t)
		}
	}
	return &SearchTasksOutput{Tasks: tasks}, nil
}
