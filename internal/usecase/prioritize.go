package usecase

import (
	"context"

	"github.com/giselleandrade1/lembrafacil/internal/analytics"
)

// ClassifyInput contains no parameters; the whole projection is classified.
type ClassifyInput struct{}

// ClassifyOutput contains the non-empty matrix cells.
type ClassifyOutput struct {
	Cells []analytics.Cell
	Count int
}

// Classify buckets the current tasks into the priority matrix.
type Classify struct {
	store    TaskStore
	priority *analytics.PriorityEngine
}

// NewClassify creates a new Classify use case.
func NewClassify(store TaskStore, priority *analytics.PriorityEngine) *Classify {
	return &Classify{store: store, priority: priority}
}

// Execute classifies every task.
func (uc *Classify) Execute(_ context.Context, _ ClassifyInput) (*ClassifyOutput, error) {
	m := uc.priority.Classify(uc.store.Query())
	return &ClassifyOutput{Cells: m.Cells(), Count: m.Count()}, nil
}

// RankTasksInput contains the ranking options.
type RankTasksInput struct {
	Limit    int  // Optional, 0 = all
	OnlyTodo bool // Skip tasks that are already done
}

// RankTasksOutput contains the tasks ordered by combined score.
type RankTasksOutput struct {
	Strategies []string
	Ranked     []analytics.Ranked
}

// RankTasks orders the current tasks by the configured strategies.
type RankTasks struct {
	store    TaskStore
	priority *analytics.PriorityEngine
}

// NewRankTasks creates a new RankTasks use case.
func NewRankTasks(store TaskStore, priority *analytics.PriorityEngine) *RankTasks {
	return &RankTasks{store: store, priority: priority}
}

// Execute scores and sorts the tasks, highest first.
func (uc *RankTasks) Execute(_ context.Context, in RankTasksInput) (*RankTasksOutput, error) {
	tasks := uc.store.Query()
	if in.OnlyTodo {
		pending := tasks[:0]
		for _, t := range tasks {
			if !t.IsDone() {
				pending = append(pending, t)
			}
		}
		tasks = pending
	}

	ranked := uc.priority.Rank(tasks)
	if in.Limit > 0 && len(ranked) > in.Limit {
		ranked = ranked[:in.Limit]
	}
	return &RankTasksOutput{Strategies: uc.priority.Strategies(), Ranked: ranked}, nil
}
