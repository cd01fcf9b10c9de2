// Package usecase contains the application use cases.
package usecase

import (
	"fmt"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/history"
)

// TaskStore is the part of the event-sourced store the use cases depend on.
type TaskStore interface {
	DispatchStrict(cmd domain.Command) (domain.Event, error)
	Query() []domain.Task
	Get(id string) (domain.Task, bool)
	Events() []domain.Event
}

// TaskCache is a read-through cache in front of TaskStore.
// Fills go through SetIfEpoch so a read that raced an invalidation is dropped.
type TaskCache interface {
	Get(key string) (domain.Task, bool)
	Epoch() uint64
	SetIfEpoch(key string, value domain.Task, epoch uint64) bool
}

// Categorizer suggests a category for a task title.
type Categorizer interface {
	Predict(text string) (label string, ok bool)
}

// VersionLog returns the recorded snapshots of a task.
type VersionLog interface {
	Versions(id string) []history.Version
}

// Searcher resolves a free-text query to task IDs.
type Searcher interface {
	Search(query string) []string
}

// getTask returns the task or ErrTaskNotFound wrapped with the ID.
func getTask(store TaskStore, id string) (domain.Task, error) {
	if id == "" {
		return domain.Task{}, domain.ErrEmptyID
	}
	t, ok := store.Get(id)
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	return t, nil
}
