// Package crdt implements a last-writer-wins element set of task snapshots.
//
// The set keeps two maps: the latest add (snapshot and timestamp) per task ID
// and the latest remove timestamp per task ID. A task is visible when its add
// timestamp is greater than or equal to its remove timestamp, so adds win ties.
// Merging two replicas takes the per-key maximum of both maps, which makes
// merge commutative, associative and idempotent.
package crdt

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"slices"
	"sync"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// entry is the latest add recorded for one ID.
type entry struct {
	item domain.Task
	ts   int64
}

// Set is a last-writer-wins element set keyed by task ID.
// Timestamps are supplied by the caller and may be logical or wall-clock.
type Set struct {
	adds    map[string]entry
	removes map[string]int64
	mu      sync.RWMutex
}

// New creates an empty set.
func New() *Set {
	return &Set{
		adds:    make(map[string]entry),
		removes: make(map[string]int64),
	}
}

// Add records item as present at ts.
// An add at or before the existing add timestamp does not change visibility.
func (s *Set) Add(item domain.Task, ts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(entry{item: item.Clone(), ts: ts})
}

// Remove records id as removed at ts.
func (s *Set) Remove(id string, ts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id, ts)
}

// Contains reports whether id is currently visible.
func (s *Set) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.adds[id]
	return ok && s.visible(id, e)
}

// Lookup returns the visible snapshot for id.
func (s *Set) Lookup(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.adds[id]
	if !ok || !s.visible(id, e) {
		return domain.Task{}, false
	}
	return e.item.Clone(), true
}

// Values returns the visible snapshots ordered by task ID.
func (s *Set) Values() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.adds))
	for id, e := range s.adds {
		if s.visible(id, e) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	out := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.adds[id].item.Clone())
	}
	return out
}

// Merge folds other into s.
func (s *Set) Merge(other *Set) {
	if other == nil || other == s {
		return
	}
	adds, removes := other.state()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range adds {
		s.addLocked(e)
	}
	for id, ts := range removes {
		s.removeLocked(id, ts)
	}
}

// Clone returns an independent replica with the same state.
func (s *Set) Clone() *Set {
	c := New()
	c.Merge(s)
	return c
}

// Equal reports whether both replicas expose the same visible set.
func (s *Set) Equal(other *Set) bool {
	a, b := s.Values(), other.Values()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if fingerprint(a[i]) != fingerprint(b[i]) {
			return false
		}
	}
	return true
}

func (s *Set) state() ([]entry, map[string]int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	adds := make([]entry, 0, len(s.adds))
	for _, e := range s.adds {
		adds = append(adds, e)
	}
	removes := make(map[string]int64, len(s.removes))
	for id, ts := range s.removes {
		removes[id] = ts
	}
	return adds, removes
}

func (s *Set) visible(id string, e entry) bool {
	removedAt, ok := s.removes[id]
	return !ok || e.ts >= removedAt
}

func (s *Set) addLocked(e entry) {
	cur, ok := s.adds[e.item.ID]
	if ok && !wins(e, cur) {
		return
	}
	s.adds[e.item.ID] = e
}

func (s *Set) removeLocked(id string, ts int64) {
	if cur, ok := s.removes[id]; ok && cur >= ts {
		return
	}
	s.removes[id] = ts
}

// wins reports whether candidate replaces current.
// Equal timestamps fall back to a content fingerprint so every replica picks
// the same snapshot regardless of delivery order.
func wins(candidate, current entry) bool {
	if candidate.ts != current.ts {
		return candidate.ts > current.ts
	}
	a, b := fingerprint(candidate.item), fingerprint(current.item)
	return bytes.Compare(a[:], b[:]) > 0
}

func fingerprint(t domain.Task) [sha256.Size]byte {
	data, err := json.Marshal(t)
	if err != nil {
		return sha256.Sum256([]byte(t.ID))
	}
	return sha256.Sum256(data)
}
