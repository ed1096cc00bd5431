// SPDX-License-Identifier: MPL-2.0

// Package launch starts the long-running entry-point process and waits
// for it to exit.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

type (
	// Result is the terminal value of a successful launch. ExitCode is the
	// child's exit status verbatim.
	Result struct {
		ExitCode  int
		StartedAt time.Time
	}

	// Launcher spawns the entry point as a foreground child with the
	// parent's standard streams passed through unmodified.
	Launcher struct {
		// Dir is the child's working directory.
		Dir string
		// Stdin, Stdout, Stderr default to the parent's streams when nil.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewLauncher creates a Launcher rooted at the given directory.
func NewLauncher(dir string) *Launcher {
	return &Launcher{Dir: dir}
}

// Launch runs argv as a foreground child and blocks until it terminates.
// No timeout is enforced; interrupting the orchestrator terminates the
// child through ordinary signal delivery. A non-nil env replaces the child
// environment entirely. The returned error is non-nil only when the child
// could not be started at all; a non-zero child exit is reported through
// Result.ExitCode.
func (l *Launcher) Launch(ctx context.Context, env []string, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, fmt.Errorf("no entry point given")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = l.Dir
	if env != nil {
		cmd.Env = env
	}
	cmd.Stdin = l.stdin()
	cmd.Stdout = l.stdout()
	cmd.Stderr = l.stderr()

	result := Result{StartedAt: time.Now()}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	return result, nil
}

func (l *Launcher) stdin() io.Reader {
	if l.Stdin != nil {
		return l.Stdin
	}
	return os.Stdin
}

func (l *Launcher) stdout() io.Writer {
	if l.Stdout != nil {
		return l.Stdout
	}
	return os.Stdout
}

func (l *Launcher) stderr() io.Writer {
	if l.Stderr != nil {
		return l.Stderr
	}
	return os.Stderr
}
