// Package logging provides the file-based audit log.
// Entries go to a global file (<data>/logs/lembra.log) and, when scoped to a
// task, also to a per-task file (<data>/logs/task-<id>.log).
package logging

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes audit entries to log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	clock      domain.Clock
	globalFile *os.File
	taskFiles  map[string]*os.File
	dataDir    string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a Logger that writes under dataDir.
// If dataDir is empty, logging is disabled.
func New(dataDir string, level slog.Level, clock domain.Clock) *Logger {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Logger{
		dataDir:   dataDir,
		level:     level,
		clock:     clock,
		taskFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) open(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// files returns the files an entry for taskID goes to, opening them on first use.
func (l *Logger) files(taskID string) []*os.File {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []*os.File
	if l.globalFile == nil {
		if f, err := l.open(domain.GlobalLogPath(l.dataDir)); err == nil {
			l.globalFile = f
		}
	}
	if l.globalFile != nil {
		out = append(out, l.globalFile)
	}
	if taskID == "" {
		return out
	}

	f, ok := l.taskFiles[taskID]
	if !ok {
		var err error
		if f, err = l.open(domain.TaskLogPath(l.dataDir, taskID)); err != nil {
			return out
		}
		l.taskFiles[taskID] = f
	}
	return append(out, f)
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	if l.globalFile != nil {
		errs = append(errs, l.globalFile.Close())
		l.globalFile = nil
	}
	for id, f := range l.taskFiles {
		errs = append(errs, f.Close())
		delete(l.taskFiles, id)
	}
	return errors.Join(errs...)
}

// formatLog formats one entry.
// Format: [2025-12-30 09:32:51] [INFO] [task-<id>] [category] message
func formatLog(t time.Time, level slog.Level, taskID, category, msg string) string {
	scope := "global"
	if taskID != "" {
		scope = "task-" + taskID
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format(time.DateTime),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, taskID, category, msg string) {
	if l.dataDir == "" || level < l.level {
		return
	}
	entry := formatLog(l.clock.Now(), level, taskID, category, msg)
	for _, f := range l.files(taskID) {
		_, _ = io.WriteString(f, entry)
	}
}

// Info logs an info message.
func (l *Logger) Info(taskID, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}

// HandleEvent records a store event in the audit log.
func (l *Logger) HandleEvent(e domain.Event) {
	switch ev := e.(type) {
	case domain.TaskCreated:
		l.Info(ev.Task.ID, "event", fmt.Sprintf("%s: %q", ev.Type(), ev.Task.Title))
	case domain.StatusUpdated:
		l.Info(ev.ID, "event", fmt.Sprintf("%s: %s (%d%%)", ev.Type(), ev.Status, ev.Progress))
	default:
		l.Debug(e.TaskID(), "event", string(e.Type()))
	}
}

// Lines returns the entries of a task's log file, oldest first.
// An empty taskID reads the global log. A missing file yields no lines.
func (l *Logger) Lines(taskID string) ([]string, error) {
	if l.dataDir == "" {
		return nil, nil
	}
	path := domain.GlobalLogPath(l.dataDir)
	if taskID != "" {
		path = domain.TaskLogPath(l.dataDir, taskID)
	}

	f, err := os.Open(path) //nolint:gosec // Path is built from the data directory
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return lines, nil
}
