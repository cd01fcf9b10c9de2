package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// seedChain creates a -> b where b depends on a.
func seedChain(t *testing.T, tc *testCLI) {
	t.Helper()
	tc.mustRun(t, "add", "--id", "a", "--minutes", "30", "--urgency", "9", "--importance", "9", "Research")
	tc.mustRun(t, "add", "--id", "b", "--minutes", "45", "--depends-on", "a", "Write report")
}

func TestCriticalPathCommand(t *testing.T) {
	tc := newTestCLI(t)
	seedChain(t, tc)

	out := tc.mustRun(t, "critical-path")
	assert.Equal(t, "Critical path: 75 min\n  1. a\n  2. b\n", out)
}

func TestCriticalPathCommand_Cycle(t *testing.T) {
	tc := newTestCLI(t)
	tc.mustRun(t, "add", "--id", "c", "--depends-on", "d", "C")
	tc.mustRun(t, "add", "--id", "d", "--depends-on", "c", "D")

	out := tc.mustRun(t, "critical-path")
	assert.Equal(t, "Critical path: 0 min\n", out)

	_, err := tc.run("critical-path", "--strict")
	require.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestScheduleCommand(t *testing.T) {
	tc := newTestCLI(t)
	seedChain(t, tc)

	out := tc.mustRun(t, "schedule")
	assert.Contains(t, out, "Quantum: 25 min  Makespan: 75 min")
	assert.Contains(t, out, "START")

	out = tc.mustRun(t, "schedule", "--quantum", "100", "--json")
	assert.Contains(t, out, `"Quantum": 100`)
	assert.Contains(t, out, `"Makespan": 75`)

	_, err := tc.run("schedule", "--quantum", "-5")
	require.ErrorIs(t, err, domain.ErrInvalidQuantum)
}

func TestMatrixCommand(t *testing.T) {
	tc := newTestCLI(t)
	seedChain(t, tc)

	out := tc.mustRun(t, "matrix")
	assert.Contains(t, out, "URGENCY")
	assert.Regexp(t, `high\s+high\s+mid\s+desktop\s+a`, out)
	assert.Regexp(t, `low\s+low\s+mid\s+desktop\s+b`, out)
}

func TestRankCommand(t *testing.T) {
	tc := newTestCLI(t)
	seedChain(t, tc)
	tc.mustRun(t, "status", "a", "done")

	out := tc.mustRun(t, "rank")
	assert.Contains(t, out, "Strategies: ")
	assert.Contains(t, out, "Research")

	out = tc.mustRun(t, "rank", "--pending")
	assert.NotContains(t, out, "Research")
	assert.Contains(t, out, "Write report")
}

func TestAnalyzeCommand(t *testing.T) {
	tc := newTestCLI(t)
	seedChain(t, tc)
	tc.mustRun(t, "status", "a", "done")

	out := tc.mustRun(t, "analyze")
	assert.Contains(t, out, "Tasks: 2")
	assert.Contains(t, out, "Burndown: 50%")
	assert.Contains(t, out, "Critical path: 75 min (a -> b)")
	assert.Contains(t, out, "Top priorities:")

	out = tc.mustRun(t, "analyze", "--json")
	assert.Contains(t, out, `"criticalPath": 75`)
	assert.Contains(t, out, `"burndown": 50`)
}
