// SPDX-License-Identifier: MPL-2.0

// Package venv creates and activates the project's isolated Python
// environment.
package venv

import (
	"context"
	"fmt"
	"os"

	"github.com/Raheem-19/serena/internal/execx"
)

type (
	// State describes the environment after a manager operation.
	State struct {
		// Path is the environment directory.
		Path string
		// Exists reports whether the directory is present on disk.
		Exists bool
		// Activated reports whether the activation overlay was harvested.
		Activated bool
		// Env is the full child-process environment with the activation
		// overlay applied. Nil until Activate succeeds.
		Env []string
	}

	// Manager provisions the isolated environment.
	Manager struct {
		// Runner executes external commands.
		Runner execx.Runner
	}
)

// NewManager creates a Manager backed by the given runner.
func NewManager(runner execx.Runner) *Manager {
	return &Manager{Runner: runner}
}

// DetectActive reports whether the marker value indicates an already
// activated environment. The marker is read once at the CLI boundary and
// passed in explicitly so callers can simulate activation in tests.
func DetectActive(marker string) bool {
	return marker != ""
}

// Ensure makes sure the environment directory exists, creating it with
// the interpreter's venv facility when absent. Re-invocation against an
// existing directory is a no-op. The existence check is not atomic;
// concurrent invocations against the same path can race on creation.
func (m *Manager) Ensure(ctx context.Context, python, path string) (State, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return State{Path: path, Exists: true}, nil
	}

	out, err := m.Runner.Run(ctx, "", nil, python, "-m", "venv", path)
	if err != nil {
		return State{Path: path}, fmt.Errorf("create virtual environment at %s: %w: %s", path, err, string(out))
	}

	return State{Path: path, Exists: true}, nil
}
