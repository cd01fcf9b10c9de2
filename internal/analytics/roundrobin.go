package analytics

import (
	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Slot is one contiguous run of a task on the simulated timeline, in minutes from 0.
type Slot struct {
	ID    string `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Len returns the minutes allocated by the slot.
func (s Slot) Len() int { return s.End - s.Start }

// RoundRobin simulates preemptive round-robin execution of a task set.
// Each turn a task runs for quantum+energy minutes or until it finishes,
// whichever is shorter, so higher-energy tasks get longer turns.
type RoundRobin struct {
	quantum int
}

// NewRoundRobin creates a scheduler with the given base quantum.
func NewRoundRobin(quantum int) (*RoundRobin, error) {
	if quantum <= 0 {
		return nil, domain.ErrInvalidQuantum
	}
	return &RoundRobin{quantum: quantum}, nil
}

// DefaultRoundRobin returns a scheduler using domain.DefaultQuantum.
func DefaultRoundRobin() *RoundRobin {
	return &RoundRobin{quantum: domain.DefaultQuantum}
}

// Quantum returns the base quantum in minutes.
func (r *RoundRobin) Quantum() int { return r.quantum }

type runnable struct {
	id        string
	energy    int
	remaining int
}

// Schedule returns the timeline that runs every task to completion.
// Tasks start in input order; an unfinished task goes to the back of the queue.
// A task with zero or negative duration gets a single slot of that length.
func (r *RoundRobin) Schedule(tasks []domain.Task) []Slot {
	queue := make([]runnable, 0, len(tasks))
	for _, t := range tasks {
		queue = append(queue, runnable{id: t.ID, energy: t.Energy, remaining: t.EstimatedMinutes})
	}

	timeline := make([]Slot, 0, len(tasks))
	clock := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		slice := min(r.quantum+cur.energy, cur.remaining)
		if slice <= 0 && cur.remaining > 0 {
			// Very negative energy must not stall the queue.
			slice = 1
		}
		timeline = append(timeline, Slot{ID: cur.id, Start: clock, End: clock + slice})
		clock += slice
		cur.remaining -= slice
		if cur.remaining > 0 {
			queue = append(queue, cur)
		}
	}
	return timeline
}

// Totals returns the minutes allocated per task ID across a timeline.
func Totals(timeline []Slot) map[string]int {
	out := make(map[string]int)
	for _, s := range timeline {
		out[s.ID] += s.Len()
	}
	return out
}
