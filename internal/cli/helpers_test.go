package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBuildFile = `
name: demo
workers: 1
projects:
  - name: core
  - name: web
actions:
  - name: lint
    run: ["lint"]
  - name: test
    run: ["test"]
`

// writeBuildFile writes a build file with project directories into a temp dir.
func writeBuildFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "build.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// failingExec fails every command run in a directory ending in one of the
// given project names.
func failingExec(projects ...string) func(context.Context, string, []string) ([]byte, error) {
	return func(_ context.Context, dir string, argv []string) ([]byte, error) {
		for _, p := range projects {
			if filepath.Base(dir) == p {
				return []byte(argv[0] + " output"), errors.New("exit status 1")
			}
		}
		return nil, nil
	}
}
