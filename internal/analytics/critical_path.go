// Package analytics computes derived views over task snapshots: critical path,
// round-robin timelines, priority scores and reports.
//
// Every function here is pure. Inputs are never modified, so callers may pass
// the same snapshot to several computations concurrently.
package analytics

import (
	"fmt"
	"slices"
	"strings"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// depGraph is the dependency graph of a task set, one node per distinct ID.
// Edges run from a dependency to the task that depends on it.
type depGraph struct {
	index map[string]int
	ids   []string
	dur   []int
	succ  [][]int
	deps  [][]int
}

func buildGraph(tasks []domain.Task) depGraph {
	g := depGraph{index: make(map[string]int, len(tasks))}
	for _, t := range tasks {
		if i, ok := g.index[t.ID]; ok {
			g.dur[i] = t.EstimatedMinutes
			continue
		}
		g.index[t.ID] = len(g.ids)
		g.ids = append(g.ids, t.ID)
		g.dur = append(g.dur, t.EstimatedMinutes)
	}
	g.succ = make([][]int, len(g.ids))
	g.deps = make([][]int, len(g.ids))

	for _, t := range tasks {
		to := g.index[t.ID]
		for _, dep := range t.Dependencies {
			from, ok := g.index[dep]
			if !ok {
				continue
			}
			g.succ[from] = append(g.succ[from], to)
			g.deps[to] = append(g.deps[to], from)
		}
	}
	return g
}

// pathResult holds the outcome of Kahn's longest-path pass.
// ready[i] is false for nodes that never reached zero indegree.
type pathResult struct {
	longest []int
	prev    []int
	ready   []bool
	drained int
}

func (g depGraph) longestPaths() pathResult {
	n := len(g.ids)
	res := pathResult{longest: make([]int, n), prev: make([]int, n), ready: make([]bool, n)}
	indeg := make([]int, n)
	for i := range n {
		indeg[i] = len(g.deps[i])
		res.prev[i] = -1
	}

	queue := make([]int, 0, n)
	for i := range n {
		if indeg[i] == 0 {
			queue = append(queue, i)
			res.longest[i] = g.dur[i]
			res.ready[i] = true
		}
	}

	// relaxed tracks the best value seen for nodes still waiting on dependencies.
	relaxed := make([]int, n)
	seen := make([]bool, n)
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		res.drained++
		for _, next := range g.succ[cur] {
			candidate := res.longest[cur] + g.dur[next]
			if !seen[next] || candidate > relaxed[next] {
				relaxed[next] = candidate
				res.prev[next] = cur
				seen[next] = true
			}
			indeg[next]--
			if indeg[next] == 0 {
				res.longest[next] = relaxed[next]
				res.ready[next] = true
				queue = append(queue, next)
			}
		}
	}
	return res
}

// CriticalPath returns the length of the longest duration-weighted chain in
// the dependency graph, in minutes. Dependencies on IDs outside tasks are
// ignored. Tasks caught in a dependency cycle never become ready and are left
// out of the result; an empty or fully cyclic input yields 0.
func CriticalPath(tasks []domain.Task) int {
	return buildGraph(tasks).longestPaths().best()
}

// best returns the largest value among drained nodes, or 0.
func (r pathResult) best() int {
	best := 0
	for i, v := range r.longest {
		if r.ready[i] {
			best = max(best, v)
		}
	}
	return best
}

// CriticalPathStrict is CriticalPath but fails with ErrCycleDetected when any
// task is part of, or depends on, a dependency cycle.
func CriticalPathStrict(tasks []domain.Task) (int, error) {
	g := buildGraph(tasks)
	res := g.longestPaths()
	if res.drained < len(g.ids) {
		var stuck []string
		for i, ok := range res.ready {
			if !ok {
				stuck = append(stuck, g.ids[i])
			}
		}
		slices.Sort(stuck)
		return 0, fmt.Errorf("%w: %s", domain.ErrCycleDetected, strings.Join(stuck, ", "))
	}
	return res.best(), nil
}

// CriticalTasks returns the IDs on the longest chain, first task first.
// Ties go to the task that appears first in the input.
func CriticalTasks(tasks []domain.Task) []string {
	g := buildGraph(tasks)
	res := g.longestPaths()

	end := -1
	for i, v := range res.longest {
		if res.ready[i] && (end < 0 || v > res.longest[end]) {
			end = i
		}
	}
	if end < 0 {
		return []string{}
	}

	var chain []string
	for i := end; i >= 0; i = res.prev[i] {
		chain = append(chain, g.ids[i])
	}
	slices.Reverse(chain)
	return chain
}

// PERT returns the three-point estimate (optimistic + 4*likely + pessimistic) / 6.
func PERT(optimistic, likely, pessimistic float64) float64 {
	return (optimistic + 4*likely + pessimistic) / 6
}
