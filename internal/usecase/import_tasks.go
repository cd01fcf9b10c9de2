package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// TaskFileParser decodes a task file into tasks with defaults applied.
type TaskFileParser func(r io.Reader, clock domain.Clock) ([]domain.Task, error)

// ImportTasksInput contains the file content to import.
type ImportTasksInput struct {
	Content string // YAML task file content
	DryRun  bool   // If true, parse and validate without creating tasks
}

// ImportTasksOutput contains the imported (or would-be imported) tasks.
type ImportTasksOutput struct {
	Tasks    []domain.Task
	Warnings []string // Dependencies that point at unknown tasks
}

// ImportTasks is the use case for bulk-creating tasks from a file.
type ImportTasks struct {
	store  TaskStore
	parse  TaskFileParser
	clock  domain.Clock
	logger domain.Logger
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(store TaskStore, parse TaskFileParser, clock domain.Clock, logger domain.Logger) *ImportTasks {
	return &ImportTasks{
		store:  store,
		parse:  parse,
		clock:  clock,
		logger: logger,
	}
}

// Execute parses the content and dispatches one CreateTask per entry.
// Nothing is dispatched when parsing fails.
func (uc *ImportTasks) Execute(_ context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	tasks, err := uc.parse(strings.NewReader(in.Content), uc.clock)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}
	var warnings []string
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if known[dep] {
				continue
			}
			if _, ok := uc.store.Get(dep); !ok {
				warnings = append(warnings, fmt.Sprintf("task %s depends on unknown task %s", t.ID, dep))
			}
		}
	}

	out := &ImportTasksOutput{Tasks: tasks, Warnings: warnings}
	if in.DryRun {
		return out, nil
	}

	for i, t := range tasks {
		e, err := uc.store.DispatchStrict(domain.CreateTask{Task: t})
		if err != nil {
			return nil, fmt.Errorf("import task %s: %w", t.ID, err)
		}
		out.Tasks[i] = e.(domain.TaskCreated).Task
	}
	if uc.logger != nil {
		uc.logger.Info("", "import", fmt.Sprintf("imported %d tasks", len(tasks)))
	}
	return out, nil
}
