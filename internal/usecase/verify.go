package usecase

import (
	"context"
	"fmt"
	"reflect"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/store"
)

// VerifyInput contains no parameters.
type VerifyInput struct{}

// VerifyOutput summarizes a successful replay check.
type VerifyOutput struct {
	Events int
	Tasks  int
}

// Verify replays the event log into a fresh store and compares the result
// with the live projection.
type Verify struct {
	store TaskStore
}

// NewVerify creates a new Verify use case.
func NewVerify(s TaskStore) *Verify {
	return &Verify{store: s}
}

// Execute returns ErrReplayMismatch wrapped with the first differing task.
func (uc *Verify) Execute(_ context.Context, _ VerifyInput) (*VerifyOutput, error) {
	events := uc.store.Events()
	live := uc.store.Query()

	fresh := store.New(nil, nil)
	if err := fresh.Replay(events); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	replayed := fresh.Query()
	projected := store.Project(events)

	if len(replayed) != len(live) || len(projected) != len(live) {
		return nil, fmt.Errorf("%w: %d live tasks, %d replayed, %d projected",
			domain.ErrReplayMismatch, len(live), len(replayed), len(projected))
	}
	for i, t := range live {
		if !reflect.DeepEqual(t, replayed[i]) {
			return nil, fmt.Errorf("%w: task %s (position %d)", domain.ErrReplayMismatch, t.ID, i)
		}
		if p, ok := projected[t.ID]; !ok || !reflect.DeepEqual(t, p) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrReplayMismatch, t.ID)
		}
	}
	return &VerifyOutput{Events: len(events), Tasks: len(live)}, nil
}
