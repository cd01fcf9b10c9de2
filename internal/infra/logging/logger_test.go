package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/testutil"
)

var fixed = &testutil.MockClock{NowTime: time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC)}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_TaskAndGlobal(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, slog.LevelInfo, fixed)
	defer func() { _ = logger.Close() }()

	logger.Info("ab-12", "usecase", `task created: "my task"`)
	logger.Info("", "system", "started")

	global, err := logger.Lines("")
	require.NoError(t, err)
	require.Len(t, global, 2)
	assert.Equal(t, `[2025-12-30 09:32:51] [INFO] [task-ab-12] [usecase] task created: "my task"`, global[0])
	assert.Equal(t, `[2025-12-30 09:32:51] [INFO] [global] [system] started`, global[1])

	task, err := logger.Lines("ab-12")
	require.NoError(t, err)
	assert.Len(t, task, 1)
}

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, slog.LevelWarn, fixed)
	defer func() { _ = logger.Close() }()

	logger.Debug("a", "task", "debug message")
	logger.Info("a", "task", "info message")
	logger.Warn("a", "task", "warn message")
	logger.Error("a", "task", "error message")

	content, err := os.ReadFile(domain.GlobalLogPath(dir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "[WARN]")
	assert.Contains(t, string(content), "[ERROR]")
}

func TestLogger_DisabledWhenEmptyDir(t *testing.T) {
	logger := New("", slog.LevelDebug, nil)
	defer func() { _ = logger.Close() }()

	assert.NotPanics(t, func() {
		logger.Info("a", "task", "message")
		logger.HandleEvent(domain.TaskCreated{Task: domain.Task{ID: "a"}})
	})
	lines, err := logger.Lines("a")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestLogger_SeparateTaskFiles(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, slog.LevelInfo, fixed)
	defer func() { _ = logger.Close() }()

	logger.Info("1", "task", "message for task 1")
	logger.Info("2", "task", "message for task 2")
	logger.Info("1", "task", "another message for task 1")

	one, err := logger.Lines("1")
	require.NoError(t, err)
	assert.Len(t, one, 2)

	two, err := os.ReadFile(domain.TaskLogPath(dir, "2"))
	require.NoError(t, err)
	assert.Contains(t, string(two), "message for task 2")
	assert.NotContains(t, string(two), "task 1")
}

func TestLogger_UnsafeTaskIDs(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, slog.LevelInfo, fixed)
	defer func() { _ = logger.Close() }()

	logger.Info("../escape", "task", "contained")

	assert.FileExists(t, filepath.Join(dir, "logs", "task-___escape.log"))
}

func TestLogger_HandleEvent(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, slog.LevelInfo, fixed)
	defer func() { _ = logger.Close() }()

	logger.HandleEvent(domain.TaskCreated{Task: domain.Task{ID: "a", Title: "Pay rent"}})
	logger.HandleEvent(domain.StatusUpdated{ID: "a", Status: domain.StatusDone, Progress: 100})

	lines, err := logger.Lines("a")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `TASK_CREATED: "Pay rent"`)
	assert.Contains(t, lines[1], "STATUS_UPDATED: done (100%)")
}

func TestLogger_Close(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, slog.LevelInfo, fixed)

	logger.Info("1", "task", "test message")
	require.NoError(t, logger.Close())

	assert.FileExists(t, domain.GlobalLogPath(dir))
	assert.FileExists(t, domain.TaskLogPath(dir, "1"))

	// Writing after Close reopens the files.
	logger.Info("1", "task", "again")
	require.NoError(t, logger.Close())
	lines, err := logger.Lines("1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}
