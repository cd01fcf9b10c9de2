package search

import (
	"maps"
	"slices"
	"sync"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// DefaultCategories seeds a Classifier with a small vocabulary per category.
var DefaultCategories = map[string]string{
	"work":   "reuniao projeto entrega cliente",
	"home":   "mercado limpeza casa familia",
	"growth": "estudar curso leitura prática",
}

// Classifier predicts a task category from title tokens.
// Each (label, token) pair counts how often the token was seen under the label;
// a prediction is the label with the highest summed count.
type Classifier struct {
	weights map[string]map[string]int // label -> token -> count
	labels  []string                  // first-trained order, used to break ties
	mu      sync.RWMutex
}

// NewClassifier creates a classifier trained on seeds (label -> text).
// Seed labels are registered in sorted order.
func NewClassifier(seeds map[string]string) *Classifier {
	c := &Classifier{weights: make(map[string]map[string]int)}
	for _, label := range slices.Sorted(maps.Keys(seeds)) {
		c.Train(label, seeds[label])
	}
	return c
}

// Train counts every token of text under label.
func (c *Classifier) Train(label, text string) {
	if label == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.weights[label]
	if !ok {
		w = make(map[string]int)
		c.weights[label] = w
		c.labels = append(c.labels, label)
	}
	for _, tok := range Tokenize(text) {
		w[tok]++
	}
}

// Predict returns the best label for text. ok is false when no token of
// text was ever seen under any label.
func (c *Classifier) Predict(text string) (label string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tokens := Tokenize(text)
	best := 0
	for _, l := range c.labels {
		score := 0
		for _, tok := range tokens {
			score += c.weights[l][tok]
		}
		if score > best {
			best, label = score, l
		}
	}
	return label, best > 0
}

// Labels returns the known labels in the order they were first trained.
func (c *Classifier) Labels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// HandleEvent learns from created tasks that carry an explicit category.
func (c *Classifier) HandleEvent(e domain.Event) {
	created, ok := e.(domain.TaskCreated)
	if !ok {
		return
	}
	if cat := created.Task.CategoryID; cat != "" && cat != domain.DefaultCategory {
		c.Train(cat, created.Task.Title)
	}
}
