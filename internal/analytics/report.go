package analytics

import (
	"math"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Burndown returns the percentage of tasks that are done, rounded to the nearest integer.
// An empty list reports 0.
func Burndown(tasks []domain.Task) int {
	total := max(len(tasks), 1)
	done := 0
	for _, t := range tasks {
		if t.IsDone() {
			done++
		}
	}
	return int(math.Floor(float64(done)/float64(total)*100 + 0.5))
}

// Forecast returns the average estimate of unfinished tasks in whole hours, at least 1.
func Forecast(tasks []domain.Task) int {
	var sum, n int
	for _, t := range tasks {
		if !t.IsDone() {
			sum += t.EstimatedMinutes
			n++
		}
	}
	avg := float64(sum) / float64(max(n, 1))
	return max(1, int(math.Floor(avg/60+0.5)))
}

// Heatmap counts task creation times by weekday (Sunday first) and hour.
type Heatmap [7][24]int

// BuildHeatmap returns the creation heatmap of tasks.
// Times are read in their own location. Tasks without a creation time are skipped.
func BuildHeatmap(tasks []domain.Task) Heatmap {
	var h Heatmap
	for _, t := range tasks {
		if t.CreatedAt.IsZero() {
			continue
		}
		h[t.CreatedAt.Weekday()][t.CreatedAt.Hour()]++
	}
	return h
}

// Peak returns the busiest weekday and hour. ok is false when the map is empty.
func (h Heatmap) Peak() (day, hour, count int, ok bool) {
	for d := range h {
		for hr, c := range h[d] {
			if c > count {
				day, hour, count, ok = d, hr, c, true
			}
		}
	}
	return day, hour, count, ok
}
