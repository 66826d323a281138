package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/batchrun/internal/report"
	"github.com/roach88/batchrun/internal/runner"
)

func seedReport(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "report.db")
	st, err := report.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.WriteBuild(ctx, report.Build{ID: "build-1", Name: "demo", Total: 2, Ran: 2}))
	require.NoError(t, st.WriteBuild(ctx, report.Build{ID: "build-2", Name: "demo", Suppressed: true, Total: 2, Ran: 2, Failed: 1}))
	require.NoError(t, st.WriteFailures(ctx, "build-2", []error{
		&runner.TargetError{Action: "lint", Project: "web", Err: errors.New("exit status 1")},
	}))
	return dbPath
}

func executeFailures(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewFailuresCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())
	err := cmd.Execute()
	return buf.String(), err
}

func TestFailuresLatestBuild(t *testing.T) {
	dbPath := seedReport(t)

	out, err := executeFailures(t, "text", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "Build demo (build-2): 1 of 2 targets failed (suppressed)\n1. lint@web: exit status 1\n", out)
}

func TestFailuresSpecificBuild(t *testing.T) {
	dbPath := seedReport(t)

	out, err := executeFailures(t, "text", "--db", dbPath, "--build", "build-1")
	require.NoError(t, err)
	assert.Contains(t, out, "No failures recorded.")
}

func TestFailuresUnknownBuild(t *testing.T) {
	dbPath := seedReport(t)

	_, err := executeFailures(t, "text", "--db", dbPath, "--build", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFailuresEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "report.db")

	_, err := executeFailures(t, "text", "--db", dbPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no builds recorded")
}
