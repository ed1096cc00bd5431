// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// markerVar is the process-scoped marker set by venv activation.
const markerVar = "VIRTUAL_ENV"

// Activate runs the environment's activation procedure and returns a State
// whose Env field carries the resulting environment overlay. A child shell
// cannot mutate this process's environment, so the POSIX activate script is
// executed in the embedded shell interpreter and the variables it exports
// are harvested for every later child process.
func (m *Manager) Activate(ctx context.Context, path string) (State, error) {
	if runtime.GOOS == "windows" {
		return m.activateWindows(path)
	}

	script := filepath.Join(path, "bin", "activate")
	if _, err := os.Stat(script); err != nil {
		return State{Path: path, Exists: true}, fmt.Errorf("activation script not found at %s: %w", script, err)
	}

	overlay, err := harvestActivation(ctx, script)
	if err != nil {
		return State{Path: path, Exists: true}, fmt.Errorf("activate virtual environment at %s: %w", path, err)
	}

	return State{
		Path:      path,
		Exists:    true,
		Activated: true,
		Env:       mergeEnviron(os.Environ(), overlay),
	}, nil
}

// activateWindows synthesizes the overlay from the known venv layout.
// Windows venvs carry a cmd/PowerShell activation pair that the embedded
// POSIX interpreter cannot source.
func (m *Manager) activateWindows(path string) (State, error) {
	scripts := filepath.Join(path, "Scripts")
	if info, err := os.Stat(scripts); err != nil || !info.IsDir() {
		return State{Path: path, Exists: true}, fmt.Errorf("activation layout not found at %s", scripts)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return State{Path: path, Exists: true}, fmt.Errorf("resolve environment path: %w", err)
	}

	overlay := map[string]string{
		markerVar: abs,
		"PATH":    filepath.Join(abs, "Scripts") + string(os.PathListSeparator) + os.Getenv("PATH"),
	}
	return State{
		Path:      path,
		Exists:    true,
		Activated: true,
		Env:       mergeEnviron(os.Environ(), overlay),
	}, nil
}

// harvestActivation sources the activate script inside the embedded shell
// and reports the variables it is expected to export.
func harvestActivation(ctx context.Context, script string) (map[string]string, error) {
	quoted, err := syntax.Quote(script, syntax.LangPOSIX)
	if err != nil {
		return nil, fmt.Errorf("quote script path: %w", err)
	}

	src := fmt.Sprintf(". %s\nprintf '%s=%%s\\n' \"$%s\"\nprintf 'PATH=%%s\\n' \"$PATH\"\n",
		quoted, markerVar, markerVar)

	prog, err := syntax.NewParser().Parse(strings.NewReader(src), "activate")
	if err != nil {
		return nil, fmt.Errorf("parse activation script: %w", err)
	}

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.Dir(filepath.Dir(script)),
		interp.StdIO(nil, &stdout, &stderr),
	)
	if err != nil {
		return nil, fmt.Errorf("create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		return nil, fmt.Errorf("%w: %s", err, stderr.String())
	}

	overlay := make(map[string]string)
	for _, line := range strings.Split(stdout.String(), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok || value == "" {
			continue
		}
		overlay[key] = value
	}
	if overlay[markerVar] == "" {
		return nil, fmt.Errorf("activation did not set %s", markerVar)
	}
	return overlay, nil
}

// mergeEnviron applies overrides onto a base environment slice.
func mergeEnviron(base []string, overrides map[string]string) []string {
	merged := make([]string, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(overrides))
	for _, entry := range base {
		key, _, ok := strings.Cut(entry, "=")
		if ok {
			if value, replace := overrides[key]; replace {
				merged = append(merged, key+"="+value)
				seen[key] = true
				continue
			}
		}
		merged = append(merged, entry)
	}
	for key, value := range overrides {
		if !seen[key] {
			merged = append(merged, key+"="+value)
		}
	}
	return merged
}
