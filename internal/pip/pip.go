// SPDX-License-Identifier: MPL-2.0

// Package pip ensures Python packages are installed via the interpreter's
// package manager.
package pip

import (
	"context"
	"fmt"
	"strings"

	"github.com/Raheem-19/serena/internal/execx"
)

type (
	// State describes a package after EnsurePackage. Present is never set
	// speculatively: it reflects either a successful probe or a successful
	// install command, whose exit status is trusted without re-probing.
	State struct {
		Present          bool
		InstallAttempted bool
	}

	// Installer runs pip through the resolved interpreter (python -m pip).
	Installer struct {
		// Runner executes external commands.
		Runner execx.Runner
		// Dir is the source tree for editable installs.
		Dir string
	}
)

// NewInstaller creates an Installer rooted at the given source tree.
func NewInstaller(runner execx.Runner, dir string) *Installer {
	return &Installer{Runner: runner, Dir: dir}
}

// EnsurePackage makes sure the named package is installed. It first probes
// with a zero-side-effect `pip show`; when the package resolves, no install
// command runs. Otherwise it performs an editable install against the local
// source tree. A non-nil env replaces the child environment entirely.
func (i *Installer) EnsurePackage(ctx context.Context, python, name string, env []string) (State, error) {
	if _, err := i.Runner.Run(ctx, i.Dir, env, python, "-m", "pip", "show", name); err == nil {
		return State{Present: true}, nil
	}

	out, err := i.Runner.Run(ctx, i.Dir, env, python, "-m", "pip", "install", "-e", ".")
	if err != nil {
		return State{InstallAttempted: true}, fmt.Errorf("failed to install %s: %w: %s", name, err, string(out))
	}
	return State{Present: true, InstallAttempted: true}, nil
}

// InstallAll installs the named packages unconditionally, with no pre-probe.
// The auxiliary set is installed this way on every install run; pip itself
// makes the operation idempotent.
func (i *Installer) InstallAll(ctx context.Context, python string, names []string, env []string) error {
	if len(names) == 0 {
		return nil
	}

	args := append([]string{"-m", "pip", "install"}, names...)
	out, err := i.Runner.Run(ctx, i.Dir, env, python, args...)
	if err != nil {
		return fmt.Errorf("failed to install %s: %w: %s", strings.Join(names, ", "), err, string(out))
	}
	return nil
}
