package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Options configures Analyze.
type Options struct {
	Scheduler *RoundRobin
	Priority  *PriorityEngine
	// Strict makes a dependency cycle fail the whole report.
	Strict bool
}

// Report bundles every derived view of one task snapshot.
// Fields are ordered to minimize memory padding.
type Report struct {
	Matrix        *Matrix  `json:"-"`
	Cells         []Cell   `json:"matrix"`
	CriticalTasks []string `json:"criticalTasks"`
	Schedule      []Slot   `json:"schedule"`
	Ranking       []Ranked `json:"ranking"`
	Heatmap       Heatmap  `json:"heatmap"`
	Tasks         int      `json:"tasks"`
	CriticalPath  int      `json:"criticalPath"`
	Burndown      int      `json:"burndown"`
	Forecast      int      `json:"forecastHours"`
}

// Analyze computes every view concurrently. The task slice is shared read-only
// between workers and is not modified.
func Analyze(ctx context.Context, tasks []domain.Task, opts Options) (*Report, error) {
	if opts.Scheduler == nil {
		opts.Scheduler = DefaultRoundRobin()
	}
	if opts.Priority == nil {
		opts.Priority = DefaultPriorityEngine()
	}

	r := &Report{Tasks: len(tasks)}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if opts.Strict {
			length, err := CriticalPathStrict(tasks)
			if err != nil {
				return err
			}
			r.CriticalPath = length
		} else {
			r.CriticalPath = CriticalPath(tasks)
		}
		r.CriticalTasks = CriticalTasks(tasks)
		return gCtx.Err()
	})
	g.Go(func() error {
		r.Schedule = opts.Scheduler.Schedule(tasks)
		return gCtx.Err()
	})
	g.Go(func() error {
		r.Matrix = opts.Priority.Classify(tasks)
		r.Cells = r.Matrix.Cells()
		r.Ranking = opts.Priority.Rank(tasks)
		return gCtx.Err()
	})
	g.Go(func() error {
		r.Burndown = Burndown(tasks)
		r.Forecast = Forecast(tasks)
		r.Heatmap = BuildHeatmap(tasks)
		return gCtx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}
