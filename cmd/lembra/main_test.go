package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

func TestRun_ConfigInitWithoutEventLog(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), domain.DataDirName)

	err := run(context.Background(), []string{"--data-dir", dataDir, "--global-config-dir", "", "config", "init"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dataDir, domain.ConfigFileName))
	assert.NoDirExists(t, domain.EventRepoPath(dataDir), "config init does not open the store")
}

func TestRun_AddThenVerify(t *testing.T) {
	dataDir := t.TempDir()
	args := []string{"--data-dir", dataDir, "--global-config-dir", ""}

	require.NoError(t, run(context.Background(), append(args, "add", "--id", "a", "Persisted task")))
	require.NoError(t, run(context.Background(), append(args, "verify")))
	require.NoError(t, run(context.Background(), append(args, "show", "a")))
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
