package domain

import (
	"path/filepath"
)

// DataDirName is the default data directory created in the working directory.
const DataDirName = ".lembra"

// GlobalConfigDir returns the global configuration directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "lembra")
}

// TaskLogPath returns the path to a task's audit log file.
func TaskLogPath(dataDir, taskID string) string {
	return filepath.Join(dataDir, "logs", "task-"+SafeFileName(taskID)+".log")
}

// GlobalLogPath returns the path to the global audit log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "lembra.log")
}

// EventRepoPath returns the path to the git repository holding the event log.
func EventRepoPath(dataDir string) string {
	return filepath.Join(dataDir, "events.git")
}

// BadgerPath returns the path to the badger event log directory.
func BadgerPath(dataDir string) string {
	return filepath.Join(dataDir, "events.badger")
}

// SnapshotJSONPath returns the path to the JSON snapshot file.
func SnapshotJSONPath(dataDir string) string {
	return filepath.Join(dataDir, "tasks.json")
}

// SnapshotSQLitePath returns the path to the SQLite snapshot database.
func SnapshotSQLitePath(dataDir string) string {
	return filepath.Join(dataDir, "tasks.db")
}

// SafeFileName replaces characters that are not safe in file names with '_'.
func SafeFileName(s string) string {
	out := []byte(s)
	for i, c := range out {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum && c != '-' && c != '_' {
			out[i] = '_'
		}
	}
	return string(out)
}
