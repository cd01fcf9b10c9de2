// Package jsonstore provides a JSON file implementation of domain.SnapshotStore.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Ensure Store implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*Store)(nil)

// snapshotData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type snapshotData struct {
	SavedAt time.Time     `json:"savedAt"`
	Tasks   []domain.Task `json:"tasks"`
	Version int           `json:"version"`
}

const formatVersion = 1

// Store keeps the last saved snapshot in a single JSON file.
// Access is serialized across processes with flock on a sibling lock file.
type Store struct {
	clock    domain.Clock
	path     string
	lockPath string
}

// New creates a Store for the given file path.
// The file does not need to exist; it is created on first save.
func New(path string, clock domain.Clock) *Store {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Store{
		clock:    clock,
		path:     path,
		lockPath: path + ".lock",
	}
}

// Save replaces the stored snapshot with tasks.
func (s *Store) Save(ctx context.Context, tasks []domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.withLock(syscall.LOCK_EX, func() error {
		return s.write(&snapshotData{
			Version: formatVersion,
			SavedAt: s.clock.Now(),
			Tasks:   tasks,
		})
	})
}

// Load returns the saved tasks in saved order. A missing file yields no tasks.
func (s *Store) Load(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data *snapshotData
	err := s.withLock(syscall.LOCK_SH, func() error {
		var err error
		data, err = s.read()
		return err
	})
	if err != nil {
		return nil, err
	}
	return data.Tasks, nil
}

// SavedAt returns when the snapshot was written. ok is false when nothing was saved.
func (s *Store) SavedAt() (at time.Time, ok bool, err error) {
	var data *snapshotData
	err = s.withLock(syscall.LOCK_SH, func() error {
		var err error
		data, err = s.read()
		return err
	})
	if err != nil || data.SavedAt.IsZero() {
		return time.Time{}, false, err
	}
	return data.SavedAt, true, nil
}

// Close is a no-op; locks are only held during a call.
func (s *Store) Close() error { return nil }

// withLock runs fn while holding a flock of the given type.
func (s *Store) withLock(lockType int, fn func() error) error {
	lock, err := s.acquireLock(lockType)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)
	return fn()
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*snapshotData, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &snapshotData{Tasks: []domain.Task{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var data snapshotData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse snapshot file: %w", err)
	}
	if data.Version > formatVersion {
		return nil, fmt.Errorf("snapshot file version %d is newer than supported %d", data.Version, formatVersion)
	}
	if data.Tasks == nil {
		data.Tasks = []domain.Task{}
	}
	return &data, nil
}

func (s *Store) write(data *snapshotData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
