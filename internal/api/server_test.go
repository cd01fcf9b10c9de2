package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/history"
	"github.com/giselleandrade1/lembrafacil/internal/testutil"
)

func newTestServer(t *testing.T, deps app.Deps) (*Server, *app.Container) {
	t.Helper()
	if deps.Clock == nil {
		deps.Clock = testutil.NewStepClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), time.Minute)
	}
	c, err := app.NewWithDeps(context.Background(), app.Config{DataDir: t.TempDir()}, deps)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return New(c), c
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestTasks_CreateGetUpdate(t *testing.T) {
	s, _ := newTestServer(t, app.Deps{})

	rec := do(t, s, http.MethodPost, "/api/tasks", `{"id":"a","title":"Write report","urgency":8}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/api/tasks/a", rec.Header().Get("Location"))
	created := decode[domain.Task](t, rec)
	assert.Equal(t, domain.StatusTodo, created.Status)
	assert.Equal(t, 8, created.Urgency)

	rec = do(t, s, http.MethodGet, "/api/tasks/a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "miss", rec.Header().Get("X-Cache"))
	rec = do(t, s, http.MethodGet, "/api/tasks/a", "")
	assert.Equal(t, "hit", rec.Header().Get("X-Cache"))

	rec = do(t, s, http.MethodPatch, "/api/tasks/a/status", `{"status":"doing","progress":20}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Task](t, rec)
	assert.Equal(t, domain.StatusDoing, updated.Status)
	assert.Equal(t, 20, updated.Progress)

	rec = do(t, s, http.MethodGet, "/api/tasks/a/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	versions := decode[[]history.Version](t, rec)
	require.Len(t, versions, 2)
	assert.Equal(t, domain.StatusTodo, versions[0].Task.Status)
}

func TestTasks_ListFilters(t *testing.T) {
	s, _ := newTestServer(t, app.Deps{})
	do(t, s, http.MethodPost, "/api/tasks", `{"id":"a","title":"Write report"}`)
	do(t, s, http.MethodPost, "/api/tasks", `{"id":"b","title":"Buy milk"}`)
	do(t, s, http.MethodPatch, "/api/tasks/b/status", `{"status":"done"}`)

	rec := do(t, s, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Task](t, rec), 2)

	rec = do(t, s, http.MethodGet, "/api/tasks?status=done", "")
	tasks := decode[[]domain.Task](t, rec)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].ID)

	rec = do(t, s, http.MethodGet, "/api/tasks?q=report", "")
	tasks = decode[[]domain.Task](t, rec)
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].ID)

	rec = do(t, s, http.MethodGet, "/api/tasks?q=nothing", "")
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestTasks_Errors(t *testing.T) {
	s, _ := newTestServer(t, app.Deps{})
	do(t, s, http.MethodPost, "/api/tasks", `{"id":"a","title":"A"}`)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"missing task", http.MethodGet, "/api/tasks/zzz", "", http.StatusNotFound},
		{"missing history", http.MethodGet, "/api/tasks/zzz/history", "", http.StatusNotFound},
		{"update missing", http.MethodPatch, "/api/tasks/zzz/status", `{"status":"done"}`, http.StatusNotFound},
		{"bad status", http.MethodPatch, "/api/tasks/a/status", `{"status":"blocked"}`, http.StatusBadRequest},
		{"bad progress", http.MethodPatch, "/api/tasks/a/status", `{"status":"doing","progress":101}`, http.StatusBadRequest},
		{"empty title", http.MethodPost, "/api/tasks", `{"id":"b"}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/tasks", `{"title":"x","color":"red"}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/tasks", `{`, http.StatusBadRequest},
		{"bad list status", http.MethodGet, "/api/tasks?status=later", "", http.StatusBadRequest},
		{"bad quantum", http.MethodGet, "/api/schedule?quantum=abc", "", http.StatusBadRequest},
		{"negative quantum", http.MethodGet, "/api/schedule?quantum=-1", "", http.StatusBadRequest},
		{"bad strict flag", http.MethodGet, "/api/analytics?strict=yes", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			if tt.want != http.StatusNotFound || strings.HasPrefix(tt.target, "/api/tasks") {
				assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
			}
		})
	}
}

func TestAnalytics(t *testing.T) {
	s, _ := newTestServer(t, app.Deps{})
	do(t, s, http.MethodPost, "/api/tasks", `{"id":"a","title":"A","estimatedMinutes":30}`)
	do(t, s, http.MethodPost, "/api/tasks", `{"id":"b","title":"B","estimatedMinutes":45,"dependencies":["a"]}`)

	rec := do(t, s, http.MethodGet, "/api/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[map[string]any](t, rec)
	assert.InDelta(t, 75, report["criticalPath"], 0)
	assert.Equal(t, []any{"a", "b"}, report["criticalTasks"])

	rec = do(t, s, http.MethodGet, "/api/schedule?quantum=100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sched := decode[scheduleResponse](t, rec)
	assert.Equal(t, 100, sched.Quantum)
	assert.Equal(t, 75, sched.Makespan)
	assert.Equal(t, map[string]int{"a": 30, "b": 45}, sched.Totals)

	rec = do(t, s, http.MethodGet, "/api/matrix", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[matrixResponse](t, rec).Count)
}

func TestAnalytics_StrictCycle(t *testing.T) {
	s, _ := newTestServer(t, app.Deps{})
	do(t, s, http.MethodPost, "/api/tasks", `{"id":"a","title":"A","dependencies":["b"]}`)
	do(t, s, http.MethodPost, "/api/tasks", `{"id":"b","title":"B","dependencies":["a"]}`)

	rec := do(t, s, http.MethodGet, "/api/analytics?strict=true", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/analytics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthAndPersistFailure(t *testing.T) {
	log := &testutil.MockEventLog{}
	s, _ := newTestServer(t, app.Deps{EventLog: log})

	rec := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[healthResponse](t, rec).Status)

	log.AppendErr = errors.New("disk full")
	rec = do(t, s, http.MethodPost, "/api/tasks", `{"id":"a","title":"A"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "event log out of date")

	rec = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", decode[healthResponse](t, rec).Status)

	log.AppendErr = nil
	rec = do(t, s, http.MethodPost, "/api/tasks", `{"id":"b","title":"B"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, log.Events, 2, "queued event is written before the new one")
	assert.Equal(t, "a", log.Events[0].TaskID())

	rec = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, app.Deps{})
	do(t, s, http.MethodPost, "/api/tasks", `{"id":"a","title":"A"}`)
	do(t, s, http.MethodGet, "/api/tasks/a", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `lembra_store_events_total{type="TASK_CREATED"} 1`)
	assert.Regexp(t, `lembra_http_request_duration_seconds_count\{code="201",method="POST",route="/api/tasks/?"\} 1`, body)
	assert.Contains(t, body, `route="/api/tasks/{id}"`)
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t, app.Deps{})

	rec := do(t, s, http.MethodGet, "/health", "")
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "6f1c2a9e-3b4d-4c5e-8f70-123456789abc")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "6f1c2a9e-3b4d-4c5e-8f70-123456789abc", rec.Header().Get("X-Request-ID"))
}

func TestServe_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t, app.Deps{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx // test helper
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
