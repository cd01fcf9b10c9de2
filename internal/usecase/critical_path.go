package usecase

import (
	"context"

	"github.com/giselleandrade1/lembrafacil/internal/analytics"
)

// CriticalPathInput contains the critical path options.
type CriticalPathInput struct {
	Strict bool // Report dependency cycles as an error
}

// CriticalPathOutput contains the longest dependency chain.
type CriticalPathOutput struct {
	Tasks  []string // IDs on the chain, first to last
	Length int      // Sum of estimated minutes along the chain
}

// CriticalPath computes the longest dependency chain of the current tasks.
type CriticalPath struct {
	store TaskStore
}

// NewCriticalPath creates a new CriticalPath use case.
func NewCriticalPath(store TaskStore) *CriticalPath {
	return &CriticalPath{store: store}
}

// Execute computes the chain length and its task IDs.
func (uc *CriticalPath) Execute(_ context.Context, in CriticalPathInput) (*CriticalPathOutput, error) {
	tasks := uc.store.Query()

	var length int
	if in.Strict {
		var err error
		if length, err = analytics.CriticalPathStrict(tasks); err != nil {
			return nil, err
		}
	} else {
		length = analytics.CriticalPath(tasks)
	}
	return &CriticalPathOutput{Length: length, Tasks: analytics.CriticalTasks(tasks)}, nil
}
