package usecase

import (
	"context"
	"fmt"

	"github.com/giselleandrade1/lembrafacil/internal/analytics"
)

// AnalyzeInput contains the options for a full analytics report.
type AnalyzeInput struct {
	Quantum int  // Optional, 0 = configured scheduler
	Strict  bool // Fail on dependency cycles instead of skipping them
}

// AnalyzeOutput contains the report.
type AnalyzeOutput struct {
	Report *analytics.Report
}

// Analyze builds the analytics report over the current projection.
type Analyze struct {
	store     TaskStore
	scheduler *analytics.RoundRobin
	priority  *analytics.PriorityEngine
}

// NewAnalyze creates a new Analyze use case.
func NewAnalyze(store TaskStore, scheduler *analytics.RoundRobin, priority *analytics.PriorityEngine) *Analyze {
	return &Analyze{
		store:     store,
		scheduler: scheduler,
		priority:  priority,
	}
}

// Execute runs the report on a snapshot of the store.
func (uc *Analyze) Execute(ctx context.Context, in AnalyzeInput) (*AnalyzeOutput, error) {
	scheduler, err := resolveScheduler(uc.scheduler, in.Quantum)
	if err != nil {
		return nil, err
	}

	report, err := analytics.Analyze(ctx, uc.store.Query(), analytics.Options{
		Scheduler: scheduler,
		Priority:  uc.priority,
		Strict:    in.Strict,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return &AnalyzeOutput{Report: report}, nil
}

// resolveScheduler returns a scheduler for quantum, or the configured one when quantum is 0.
func resolveScheduler(configured *analytics.RoundRobin, quantum int) (*analytics.RoundRobin, error) {
	if quantum == 0 {
		if configured == nil {
			return analytics.DefaultRoundRobin(), nil
		}
		return configured, nil
	}
	return analytics.NewRoundRobin(quantum)
}
