// Package history keeps an append-only log of task snapshots for audit and undo.
package history

import (
	"sync"
	"time"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Version is one recorded snapshot of a task.
type Version struct {
	At   time.Time   `json:"at"`
	Task domain.Task `json:"task"`
}

// History maps task IDs to their ordered snapshots.
type History struct {
	versions map[string][]Version
	mu       sync.RWMutex
}

// New creates an empty history.
func New() *History {
	return &History{versions: make(map[string][]Version)}
}

// Append records task as a new version at time at.
func (h *History) Append(task domain.Task, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.versions[task.ID] = append(h.versions[task.ID], Version{At: at, Task: task.Clone()})
}

// Versions returns the snapshots recorded for id, oldest first.
// It returns an empty slice for unknown IDs.
func (h *History) Versions(id string) []Version {
	h.mu.RLock()
	defer h.mu.RUnlock()

	src := h.versions[id]
	out := make([]Version, len(src))
	for i, v := range src {
		out[i] = Version{At: v.At, Task: v.Task.Clone()}
	}
	return out
}

// Latest returns the newest snapshot recorded for id.
func (h *History) Latest(id string) (Version, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	src := h.versions[id]
	if len(src) == 0 {
		return Version{}, false
	}
	v := src[len(src)-1]
	return Version{At: v.At, Task: v.Task.Clone()}, true
}

// Len returns the number of versions recorded for id.
func (h *History) Len(id string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.versions[id])
}
