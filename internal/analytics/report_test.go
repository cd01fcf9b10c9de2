package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

func withStatus(t domain.Task, s domain.Status) domain.Task {
	return t.WithStatus(s, s.DefaultProgress())
}

func TestBurndown(t *testing.T) {
	assert.Equal(t, 0, Burndown(nil))
	assert.Equal(t, 33, Burndown([]domain.Task{withStatus(task("a", 1), domain.StatusDone), task("b", 1), task("c", 1)}))
	assert.Equal(t, 67, Burndown([]domain.Task{withStatus(task("a", 1), domain.StatusDone), withStatus(task("b", 1), domain.StatusDone), task("c", 1)}))
	assert.Equal(t, 100, Burndown([]domain.Task{withStatus(task("a", 1), domain.StatusDone)}))
}

func TestForecast(t *testing.T) {
	assert.Equal(t, 1, Forecast(nil))
	assert.Equal(t, 1, Forecast([]domain.Task{task("a", 90), task("b", 30)}))
	assert.Equal(t, 3, Forecast([]domain.Task{task("a", 150)}))
	assert.Equal(t, 2, Forecast([]domain.Task{task("a", 120), withStatus(task("b", 600), domain.StatusDone)}))
}

func TestBuildHeatmap(t *testing.T) {
	sat := time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC)
	a, b, c := task("a", 1), task("b", 1), task("c", 1)
	a.CreatedAt = sat
	b.CreatedAt = sat.Add(30 * time.Minute)
	c.CreatedAt = sat.Add(24 * time.Hour)

	h := BuildHeatmap([]domain.Task{a, b, c, task("no-time", 1)})

	assert.Equal(t, 2, h[time.Saturday][9])
	assert.Equal(t, 1, h[time.Sunday][9])

	day, hour, count, ok := h.Peak()
	require.True(t, ok)
	assert.Equal(t, int(time.Saturday), day)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 2, count)

	_, _, _, ok = Heatmap{}.Peak()
	assert.False(t, ok)
}

func TestAnalyze(t *testing.T) {
	tasks := []domain.Task{task("A", 10), task("B", 5, "A"), task("C", 20, "A"), task("D", 5, "B", "C")}

	r, err := Analyze(context.Background(), tasks, Options{})
	require.NoError(t, err)

	assert.Equal(t, 4, r.Tasks)
	assert.Equal(t, 35, r.CriticalPath)
	assert.Equal(t, []string{"A", "C", "D"}, r.CriticalTasks)
	assert.Equal(t, 4, r.Matrix.Count())
	assert.Len(t, r.Ranking, 4)
	assert.Equal(t, DefaultRoundRobin().Schedule(tasks), r.Schedule)
	assert.Equal(t, 0, r.Burndown)
}

func TestAnalyze_StrictCycle(t *testing.T) {
	tasks := []domain.Task{task("A", 1, "B"), task("B", 1, "A")}

	_, err := Analyze(context.Background(), tasks, Options{Strict: true})
	require.ErrorIs(t, err, domain.ErrCycleDetected)

	r, err := Analyze(context.Background(), tasks, Options{})
	require.NoError(t, err)
	assert.Zero(t, r.CriticalPath)
}

func TestAnalyze_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, []domain.Task{task("A", 1)}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}
