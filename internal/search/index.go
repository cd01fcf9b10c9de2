// Package search maintains an in-memory full-text index over task titles.
package search

import (
	"slices"
	"strings"
	"sync"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Index maps lowercase title tokens to task IDs.
// It can be subscribed to the event bus to stay current.
type Index struct {
	postings map[string]map[string]struct{}
	tokens   map[string][]string // id -> indexed tokens
	seq      map[string]int      // id -> first-indexed position
	next     int
	mu       sync.RWMutex
}

// New creates an empty index.
func New() *Index {
	return &Index{
		postings: make(map[string]map[string]struct{}),
		tokens:   make(map[string][]string),
		seq:      make(map[string]int),
	}
}

// Tokenize lowercases s and splits it on whitespace.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// Build replaces the index content with tasks.
func (ix *Index) Build(tasks []domain.Task) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	clear(ix.postings)
	clear(ix.tokens)
	clear(ix.seq)
	ix.next = 0
	for _, t := range tasks {
		ix.addLocked(t)
	}
}

// Add indexes t, replacing the tokens of a previous title for the same ID.
func (ix *Index) Add(t domain.Task) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.addLocked(t)
}

func (ix *Index) addLocked(t domain.Task) {
	for _, tok := range ix.tokens[t.ID] {
		delete(ix.postings[tok], t.ID)
		if len(ix.postings[tok]) == 0 {
			delete(ix.postings, tok)
		}
	}

	toks := Tokenize(t.Title)
	ix.tokens[t.ID] = toks
	if _, ok := ix.seq[t.ID]; !ok {
		ix.seq[t.ID] = ix.next
		ix.next++
	}
	for _, tok := range toks {
		set := ix.postings[tok]
		if set == nil {
			set = make(map[string]struct{})
			ix.postings[tok] = set
		}
		set[t.ID] = struct{}{}
	}
}

// HandleEvent indexes the task carried by a TaskCreated event.
// Other events do not change titles and are ignored.
func (ix *Index) HandleEvent(e domain.Event) {
	if created, ok := e.(domain.TaskCreated); ok {
		ix.Add(created.Task)
	}
}

// Search returns the IDs of tasks whose title contains any query token,
// in the order the tasks were first indexed.
func (ix *Index) Search(query string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	hits := make(map[string]struct{})
	for _, tok := range Tokenize(query) {
		for id := range ix.postings[tok] {
			hits[id] = struct{}{}
		}
	}

	out := make([]string, 0, len(hits))
	for id := range hits {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b string) int { return ix.seq[a] - ix.seq[b] })
	return out
}

// Len returns the number of indexed tasks.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.tokens)
}
