// Package importer reads task definitions from YAML files.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// File is the document layout of an import file.
//
//	tasks:
//	  - title: Write report
//	    urgency: 8
//	    importance: 6
//	    dependencies: [research]
type File struct {
	Tasks []domain.Task `yaml:"tasks"`
}

// Parse decodes a task file and fills omitted fields with the quick-capture
// defaults. Unknown keys are rejected so that typos do not silently drop data.
func Parse(r io.Reader, clock domain.Clock) ([]domain.Task, error) {
	if clock == nil {
		clock = domain.RealClock{}
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("decode task file: %w", err)
	}

	now := clock.Now()
	seen := make(map[string]int, len(f.Tasks))
	tasks := make([]domain.Task, 0, len(f.Tasks))
	for i, t := range f.Tasks {
		t = applyDefaults(t, now)
		if err := (domain.CreateTask{Task: t}).Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		if prev, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("task %d: duplicate id %q (first used by task %d)", i+1, t.ID, prev)
		}
		seen[t.ID] = i + 1
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// LoadFile parses the task file at path.
func LoadFile(path string, clock domain.Clock) ([]domain.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f, clock)
}

func applyDefaults(t domain.Task, now time.Time) domain.Task {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = domain.StatusTodo
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.Energy == 0 {
		t.Energy = domain.DefaultEnergy
	}
	if t.EstimatedMinutes == 0 {
		t.EstimatedMinutes = domain.DefaultEstimatedMinutes
	}
	if t.Recurrence == "" {
		t.Recurrence = domain.DefaultRecurrence
	}
	if t.CategoryID == "" {
		t.CategoryID = domain.DefaultCategory
	}
	if t.Context.Device == "" {
		t.Context.Device = domain.DeviceDesktop
	}
	if t.Progress == 0 {
		t.Progress = t.Status.DefaultProgress()
	}
	return t
}
