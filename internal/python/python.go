// SPDX-License-Identifier: MPL-2.0

// Package python locates the Python interpreter and reads its version.
package python

import (
	"context"
	"strings"

	"github.com/Raheem-19/serena/internal/execx"
)

// candidateBinaries are tried in order when no explicit binary is configured.
var candidateBinaries = []string{"python3", "python"}

type (
	// Info describes the outcome of the interpreter check. It is produced
	// once per run and never mutated afterwards.
	Info struct {
		// Present reports whether a working interpreter was found.
		Present bool
		// Path is the resolved interpreter path (empty when not present).
		Path string
		// Version is the reported interpreter version, e.g. "3.11.4".
		// Informational only; no minimum version is enforced.
		Version string
	}

	// Checker probes for a usable Python interpreter.
	Checker struct {
		// Runner executes external commands.
		Runner execx.Runner
		// Binary overrides interpreter discovery when non-empty.
		Binary string
	}
)

// NewChecker creates a Checker backed by the given runner.
func NewChecker(runner execx.Runner, binary string) *Checker {
	return &Checker{Runner: runner, Binary: binary}
}

// Check resolves the interpreter and invokes its self-report command.
// A missing binary or a non-zero exit yields Info{Present: false};
// the caller decides whether that is fatal.
func (c *Checker) Check(ctx context.Context) Info {
	path, ok := c.resolve()
	if !ok {
		return Info{}
	}

	out, err := c.Runner.Run(ctx, "", nil, path, "--version")
	if err != nil {
		return Info{}
	}

	return Info{
		Present: true,
		Path:    path,
		Version: ParseVersion(string(out)),
	}
}

// resolve finds the interpreter binary on the PATH.
func (c *Checker) resolve() (string, bool) {
	if c.Binary != "" {
		path, err := c.Runner.LookPath(c.Binary)
		if err != nil {
			return "", false
		}
		return path, true
	}

	for _, name := range candidateBinaries {
		if path, err := c.Runner.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

// ParseVersion extracts the version from interpreter self-report output,
// e.g. "Python 3.11.4" yields "3.11.4". The second whitespace-delimited
// token is taken verbatim; anything else yields an empty string.
func ParseVersion(output string) string {
	fields := strings.Fields(output)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
