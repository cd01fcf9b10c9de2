package usecase

import (
	"context"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// ShowTaskInput identifies the task to show.
type ShowTaskInput struct {
	ID string
}

// ShowTaskOutput contains the task and whether it was served from cache.
type ShowTaskOutput struct {
	Task   domain.Task
	Cached bool
}

// ShowTask reads a task through the cache.
type ShowTask struct {
	store TaskStore
	cache TaskCache
}

// NewShowTask creates a new ShowTask use case. cache may be nil.
func NewShowTask(store TaskStore, cache TaskCache) *ShowTask {
	return &ShowTask{store: store, cache: cache}
}

// Execute returns the cached snapshot when present, otherwise loads it from
// the store and caches it unless the cache was invalidated during the read.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	if uc.cache != nil {
		if t, ok := uc.cache.Get(in.ID); ok {
			return &ShowTaskOutput{Task: t, Cached: true}, nil
		}
	}

	var epoch uint64
	if uc.cache != nil {
		epoch = uc.cache.Epoch()
	}
	t, err := getTask(uc.store, in.ID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.SetIfEpoch(t.ID, t, epoch)
	}
	return &ShowTaskOutput{Task: t}, nil
}
