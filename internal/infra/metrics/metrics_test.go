package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/cache"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

func TestMetrics_HandleEventCountsByType(t *testing.T) {
	m := New(nil, nil)

	m.HandleEvent(domain.TaskCreated{Task: domain.Task{ID: "a"}})
	m.HandleEvent(domain.TaskCreated{Task: domain.Task{ID: "b"}})
	m.HandleEvent(domain.StatusUpdated{ID: "a", Status: domain.StatusDone})

	assert.InDelta(t, 2, promtest.ToFloat64(m.events.WithLabelValues(string(domain.EventTaskCreated))), 0)
	assert.InDelta(t, 1, promtest.ToFloat64(m.events.WithLabelValues(string(domain.EventStatusUpdated))), 0)
}

func TestMetrics_TaskCollector(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Status: domain.StatusTodo},
		{ID: "b", Status: domain.StatusDone},
		{ID: "c", Status: domain.StatusDone},
		{ID: "d", Status: domain.StatusDoing},
	}
	m := New(func() []domain.Task { return tasks }, nil)

	expected := `
# HELP lembra_store_burndown_percent Share of tasks that are done
# TYPE lembra_store_burndown_percent gauge
lembra_store_burndown_percent 50
# HELP lembra_store_tasks Current number of tasks by status
# TYPE lembra_store_tasks gauge
lembra_store_tasks{status="doing"} 1
lembra_store_tasks{status="done"} 2
lembra_store_tasks{status="todo"} 1
`
	err := promtest.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"lembra_store_tasks", "lembra_store_burndown_percent")
	require.NoError(t, err)
}

func TestMetrics_CacheCollector(t *testing.T) {
	c, err := cache.New(1)
	require.NoError(t, err)
	c.Set("a", domain.Task{ID: "a"})
	c.Get("a")
	c.Get("missing")
	c.Set("b", domain.Task{ID: "b"})

	m := New(nil, c.Stats)

	expected := `
# HELP lembra_cache_entries Entries currently cached
# TYPE lembra_cache_entries gauge
lembra_cache_entries 1
# HELP lembra_cache_evictions_total Entries evicted from the cache
# TYPE lembra_cache_evictions_total counter
lembra_cache_evictions_total 1
# HELP lembra_cache_hits_total Cache lookups that found an entry
# TYPE lembra_cache_hits_total counter
lembra_cache_hits_total 1
# HELP lembra_cache_misses_total Cache lookups that found nothing
# TYPE lembra_cache_misses_total counter
lembra_cache_misses_total 1
`
	err = promtest.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"lembra_cache_entries", "lembra_cache_evictions_total", "lembra_cache_hits_total", "lembra_cache_misses_total")
	require.NoError(t, err)
}

func TestMetrics_Handler(t *testing.T) {
	m := New(nil, nil)
	m.HandleEvent(domain.TaskCreated{Task: domain.Task{ID: "a"}})
	m.ObserveRequest(http.MethodGet, "/api/tasks", http.StatusOK, 3*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `lembra_store_events_total{type="TASK_CREATED"} 1`)
	assert.Contains(t, string(body), `lembra_store_events_total{type="STATUS_UPDATED"} 0`)
	assert.Contains(t, string(body), `lembra_http_request_duration_seconds_count{code="200",method="GET",route="/api/tasks"} 1`)
}
