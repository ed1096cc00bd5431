// SPDX-License-Identifier: MPL-2.0

// Package execx provides an interface for external command execution.
package execx

import (
	"context"
	"errors"
	"os/exec"
)

type (
	// Runner defines the interface for running external commands.
	// This abstraction allows substituting fakes for the external
	// collaborators (python, venv creation, pip) in tests.
	Runner interface {
		// Run executes a command and returns combined stdout/stderr output.
		// The working directory is set to dir if non-empty. A non-nil env
		// replaces the process environment entirely.
		Run(ctx context.Context, dir string, env []string, name string, args ...string) (output []byte, err error)

		// LookPath searches for an executable in the PATH and returns its
		// absolute path.
		LookPath(name string) (string, error)
	}

	// ExecRunner implements Runner using os/exec.
	ExecRunner struct{}
)

// NewRunner creates a new ExecRunner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and returns combined stdout/stderr output.
func (r *ExecRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	if env != nil {
		cmd.Env = env
	}
	return cmd.CombinedOutput()
}

// LookPath searches for an executable in the PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// ExitCode extracts the process exit code from a Run error.
// It returns 0 for a nil error and 1 for errors that do not carry
// an exit status (e.g., the binary could not be started at all).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// Verify ExecRunner implements Runner at compile time.
var _ Runner = (*ExecRunner)(nil)
