package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

func TestConfigCommand_ShowsFilesAndEffective(t *testing.T) {
	tc := newTestCLI(t)
	require.NoError(t, os.WriteFile(filepath.Join(tc.globalDir, domain.ConfigFileName),
		[]byte("[scheduler]\nquantum = 40\n"), 0o600))

	out := tc.mustRun(t, "config")
	assert.Contains(t, out, "# Global: "+filepath.Join(tc.globalDir, domain.ConfigFileName))
	assert.Contains(t, out, "quantum = 40")
	assert.Contains(t, out, "(not found)")
	assert.Contains(t, out, "# Effective")
	assert.Equal(t, 0, tc.opens, "config never opens the event log")
}

func TestConfigCommand_ReportsWarnings(t *testing.T) {
	tc := newTestCLI(t)
	require.NoError(t, os.WriteFile(filepath.Join(tc.dataDir, domain.ConfigFileName),
		[]byte("[cache]\ncapacity = \"lots\"\n"), 0o600))

	out := tc.mustRun(t, "config")
	assert.Contains(t, out, "Warning:")
}

func TestConfigInitCommand(t *testing.T) {
	tc := newTestCLI(t)

	out := tc.mustRun(t, "config", "init")
	path := filepath.Join(tc.dataDir, domain.ConfigFileName)
	assert.Equal(t, "Created "+path+"\n", out)
	assert.FileExists(t, path)

	_, err := tc.run("config", "init")
	require.ErrorIs(t, err, domain.ErrConfigExists)

	out = tc.mustRun(t, "config", "init", "--global")
	assert.Contains(t, out, filepath.Join(tc.globalDir, domain.ConfigFileName))
}

func TestSnapshotAndVerifyCommands(t *testing.T) {
	tc := newTestCLI(t)
	tc.mustRun(t, "add", "--id", "a", "A")

	_, err := tc.run("snapshot")
	require.Error(t, err, "no snapshot store configured")

	out := tc.mustRun(t, "verify")
	assert.Equal(t, "OK: 1 events rebuild 1 tasks\n", out)
}

func TestServeCommand_UsesConfiguredAddr(t *testing.T) {
	originalFunc := serveFunc
	defer func() {
		serveFunc = originalFunc
	}()

	var got string
	serveFunc = func(_ context.Context, _ *app.Container, addr string) error {
		got = addr
		return nil
	}

	tc := newTestCLI(t)
	tc.mustRun(t, "serve")
	assert.Equal(t, domain.DefaultServerAddr, got)

	tc.mustRun(t, "serve", "--addr", ":9999")
	assert.Equal(t, ":9999", got)
}
