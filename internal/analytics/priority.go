package analytics

import (
	"fmt"
	"math"
	"slices"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Strategy scores a single task. Higher means more pressing.
type Strategy interface {
	Name() string
	Score(t domain.Task) float64
}

// Strategy names accepted by NewStrategy and the [priority] config section.
const (
	StrategyEisenhower = "eisenhower"
	StrategyPareto     = "pareto"
	StrategyMood       = "mood"
)

// Eisenhower scores urgency times importance.
type Eisenhower struct{}

// Name returns StrategyEisenhower.
func (Eisenhower) Name() string { return StrategyEisenhower }

// Score returns urgency * importance.
func (Eisenhower) Score(t domain.Task) float64 {
	return float64(t.Urgency * t.Importance)
}

// Pareto weights importance at 80% and energy at 20%, rounded half up.
type Pareto struct{}

// Name returns StrategyPareto.
func (Pareto) Name() string { return StrategyPareto }

// Score returns round(0.8*importance + 0.2*energy).
func (Pareto) Score(t domain.Task) float64 {
	return math.Floor(0.8*float64(t.Importance) + 0.2*float64(t.Energy) + 0.5)
}

// MoodEffort favours high-effort tasks, boosts focused moods and penalizes energy cost.
type MoodEffort struct{}

// FocusedMood is the mood hint that earns MoodBoost.
const (
	FocusedMood = "focused"
	MoodBoost   = 10
)

// Name returns StrategyMood.
func (MoodEffort) Name() string { return StrategyMood }

// Score returns effortScore + boost - energy.
func (MoodEffort) Score(t domain.Task) float64 {
	boost := 0
	if t.Context.Mood == FocusedMood {
		boost = MoodBoost
	}
	return float64(t.EffortScore + boost - t.Energy)
}

// NewStrategy returns the strategy registered under name.
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case StrategyEisenhower:
		return Eisenhower{}, nil
	case StrategyPareto:
		return Pareto{}, nil
	case StrategyMood:
		return MoodEffort{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, name)
	}
}

// Matrix dimensions. Urgency, importance and energy each fall into one of
// Bins buckets; the last axis is the device context (0 desktop, 1 mobile).
const (
	Bins     = 3
	BinWidth = 4
	Contexts = 2
)

// Matrix buckets tasks by [urgency][importance][energy][context].
type Matrix [Bins][Bins][Bins][Contexts][]domain.Task

// Count returns the number of tasks across all cells.
func (m *Matrix) Count() int {
	n := 0
	for u := range Bins {
		for i := range Bins {
			for e := range Bins {
				for c := range Contexts {
					n += len(m[u][i][e][c])
				}
			}
		}
	}
	return n
}

// Cell is a non-empty matrix bucket, flattened for display and JSON.
type Cell struct {
	Tasks      []string `json:"tasks"`
	Urgency    int      `json:"urgency"`
	Importance int      `json:"importance"`
	Energy     int      `json:"energy"`
	Context    int      `json:"context"`
}

// Cells returns the non-empty buckets in index order.
func (m *Matrix) Cells() []Cell {
	var out []Cell
	for u := range Bins {
		for i := range Bins {
			for e := range Bins {
				for c := range Contexts {
					tasks := m[u][i][e][c]
					if len(tasks) == 0 {
						continue
					}
					ids := make([]string, len(tasks))
					for k, t := range tasks {
						ids[k] = t.ID
					}
					out = append(out, Cell{Urgency: u, Importance: i, Energy: e, Context: c, Tasks: ids})
				}
			}
		}
	}
	return out
}

// bin maps a 0-10 style value onto [0, Bins-1].
// Negative values land in the first bin.
func bin(v int) int {
	if v < 0 {
		return 0
	}
	return min(Bins-1, v/BinWidth)
}

// PriorityEngine folds the scores of an ordered list of strategies.
type PriorityEngine struct {
	strategies []Strategy
}

// NewPriorityEngine creates an engine from strategies, scored in order.
func NewPriorityEngine(strategies ...Strategy) *PriorityEngine {
	return &PriorityEngine{strategies: slices.Clone(strategies)}
}

// DefaultPriorityEngine uses every shipped strategy.
func DefaultPriorityEngine() *PriorityEngine {
	return NewPriorityEngine(Eisenhower{}, Pareto{}, MoodEffort{})
}

// PriorityEngineFromNames builds an engine from configured strategy names.
func PriorityEngineFromNames(names []string) (*PriorityEngine, error) {
	strategies := make([]Strategy, 0, len(names))
	for _, name := range names {
		s, err := NewStrategy(name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return NewPriorityEngine(strategies...), nil
}

// Strategies returns the names of the configured strategies.
func (p *PriorityEngine) Strategies() []string {
	out := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		out[i] = s.Name()
	}
	return out
}

// Score returns the sum of all strategy scores for t.
func (p *PriorityEngine) Score(t domain.Task) float64 {
	var total float64
	for _, s := range p.strategies {
		total += s.Score(t)
	}
	return total
}

// Classify places each task into exactly one matrix cell.
func (p *PriorityEngine) Classify(tasks []domain.Task) *Matrix {
	var m Matrix
	for _, t := range tasks {
		ctx := 0
		if t.IsMobile() {
			ctx = 1
		}
		u, i, e := bin(t.Urgency), bin(t.Importance), bin(t.Energy)
		m[u][i][e][ctx] = append(m[u][i][e][ctx], t.Clone())
	}
	return &m
}

// Ranked pairs a task ID with its engine score.
type Ranked struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Rank returns tasks ordered by score, highest first. Equal scores keep input order.
func (p *PriorityEngine) Rank(tasks []domain.Task) []Ranked {
	out := make([]Ranked, len(tasks))
	for i, t := range tasks {
		out[i] = Ranked{ID: t.ID, Title: t.Title, Score: p.Score(t)}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return out
}
