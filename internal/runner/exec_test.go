package runner

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandExecutorRunsInDir(t *testing.T) {
	if _, err := exec.LookPath("pwd"); err != nil {
		t.Skip("pwd not available")
	}
	dir := t.TempDir()

	out, err := CommandExecutor{}.Exec(context.Background(), dir, []string{"pwd"})
	require.NoError(t, err)
	assert.Contains(t, string(out), dir)
}

func TestCommandExecutorEmptyCommand(t *testing.T) {
	_, err := CommandExecutor{}.Exec(context.Background(), t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty command")
}

func TestCommandExecutorFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out, err := CommandExecutor{Env: []string{"BATCHRUN_MSG=nope"}}.Exec(
		context.Background(), t.TempDir(), []string{"sh", "-c", "echo $BATCHRUN_MSG; exit 3"})
	require.Error(t, err)
	assert.Equal(t, "nope\n", string(out))
}
