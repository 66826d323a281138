package runner

import (
	"context"
	"errors"
	"os/exec"
)

// Executor runs a command in a directory and returns its combined output.
type Executor interface {
	Exec(ctx context.Context, dir string, argv []string) ([]byte, error)
}

// ExecFunc adapts a function to Executor.
type ExecFunc func(ctx context.Context, dir string, argv []string) ([]byte, error)

// Exec calls f.
func (f ExecFunc) Exec(ctx context.Context, dir string, argv []string) ([]byte, error) {
	return f(ctx, dir, argv)
}

// CommandExecutor runs commands with os/exec.
type CommandExecutor struct {
	// Env is appended to the inherited environment.
	Env []string
}

// Exec runs argv in dir and returns its combined stdout and stderr.
func (e CommandExecutor) Exec(ctx context.Context, dir string, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	if len(e.Env) > 0 {
		cmd.Env = append(cmd.Environ(), e.Env...)
	}
	return cmd.CombinedOutput()
}
