package usecase

import (
	"context"

	"github.com/giselleandrade1/lembrafacil/internal/analytics"
)

// ScheduleInput contains the scheduling options.
type ScheduleInput struct {
	Quantum int // Optional, 0 = configured scheduler
}

// ScheduleOutput contains the round-robin timeline.
type ScheduleOutput struct {
	Totals   map[string]int // Minutes allotted per task
	Slots    []analytics.Slot
	Quantum  int
	Makespan int // End of the last slot
}

// Schedule lays the current tasks out on a round-robin timeline.
type Schedule struct {
	store     TaskStore
	scheduler *analytics.RoundRobin
}

// NewSchedule creates a new Schedule use case.
func NewSchedule(store TaskStore, scheduler *analytics.RoundRobin) *Schedule {
	return &Schedule{store: store, scheduler: scheduler}
}

// Execute schedules every task in store order.
func (uc *Schedule) Execute(_ context.Context, in ScheduleInput) (*ScheduleOutput, error) {
	scheduler, err := resolveScheduler(uc.scheduler, in.Quantum)
	if err != nil {
		return nil, err
	}

	slots := scheduler.Schedule(uc.store.Query())
	out := &ScheduleOutput{
		Slots:   slots,
		Totals:  analytics.Totals(slots),
		Quantum: scheduler.Quantum(),
	}
	if n := len(slots); n > 0 {
		out.Makespan = slots[n-1].End
	}
	return out, nil
}
