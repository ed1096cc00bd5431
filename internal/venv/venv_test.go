// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

type fakeRunner struct {
	runErr error
	output string

	calls   int
	ranName string
	ranArgs []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, _ []string, name string, args ...string) ([]byte, error) {
	f.calls++
	f.ranName = name
	f.ranArgs = args
	if f.runErr != nil {
		return []byte(f.output), f.runErr
	}
	return []byte(f.output), nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	return name, nil
}

func TestEnsureCreatesWhenAbsent(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	path := filepath.Join(t.TempDir(), ".venv")

	st, err := NewManager(runner).Ensure(context.Background(), "/usr/bin/python3", path)
	if err != nil {
		t.Fatalf("Ensure() error: %v", err)
	}
	if !st.Exists || st.Path != path {
		t.Errorf("Ensure() = %+v, want exists at %s", st, path)
	}
	if runner.calls != 1 {
		t.Fatalf("runner calls = %d, want 1", runner.calls)
	}
	if want := "-m venv " + path; strings.Join(runner.ranArgs, " ") != want {
		t.Errorf("ran %s %v, want venv module invocation", runner.ranName, runner.ranArgs)
	}
}

func TestEnsureExistingDirIsNoOp(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	path := t.TempDir()

	st, err := NewManager(runner).Ensure(context.Background(), "/usr/bin/python3", path)
	if err != nil {
		t.Fatalf("Ensure() error: %v", err)
	}
	if !st.Exists {
		t.Errorf("Ensure() = %+v, want Exists", st)
	}
	if runner.calls != 0 {
		t.Errorf("runner invoked %d times for an existing environment, want 0", runner.calls)
	}
}

func TestEnsureCreateFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{runErr: errors.New("exit status 1"), output: "Error: no module named venv"}
	path := filepath.Join(t.TempDir(), ".venv")

	_, err := NewManager(runner).Ensure(context.Background(), "/usr/bin/python3", path)
	if err == nil {
		t.Fatal("Ensure() error = nil, want creation failure")
	}
	if !strings.Contains(err.Error(), "no module named venv") {
		t.Errorf("error does not carry command output: %v", err)
	}
}

func TestDetectActive(t *testing.T) {
	t.Parallel()

	if DetectActive("") {
		t.Error("DetectActive(\"\") = true, want false")
	}
	if !DetectActive("/home/u/project/.venv") {
		t.Error("DetectActive(path) = false, want true")
	}
}

func TestActivateMissingScript(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX activation layout")
	}

	path := t.TempDir()
	_, err := NewManager(&fakeRunner{}).Activate(context.Background(), path)
	if err == nil {
		t.Fatal("Activate() error = nil, want missing script failure")
	}
	if !strings.Contains(err.Error(), "activation script not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestActivateHarvestsOverlay(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX activation layout")
	}

	path := t.TempDir()
	bin := filepath.Join(path, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	// Minimal stand-in for the script venv generates: exports the marker
	// and prepends the environment's bin directory.
	script := "VIRTUAL_ENV=" + path + "\nexport VIRTUAL_ENV\nPATH=\"" + bin + ":$PATH\"\nexport PATH\n"
	if err := os.WriteFile(filepath.Join(bin, "activate"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := NewManager(&fakeRunner{}).Activate(context.Background(), path)
	if err != nil {
		t.Fatalf("Activate() error: %v", err)
	}
	if !st.Activated {
		t.Errorf("Activate() = %+v, want Activated", st)
	}

	envMap := make(map[string]string, len(st.Env))
	for _, entry := range st.Env {
		key, value, ok := strings.Cut(entry, "=")
		if ok {
			envMap[key] = value
		}
	}
	if envMap["VIRTUAL_ENV"] != path {
		t.Errorf("VIRTUAL_ENV = %q, want %q", envMap["VIRTUAL_ENV"], path)
	}
	if !strings.HasPrefix(envMap["PATH"], bin+":") {
		t.Errorf("PATH = %q, want %s first", envMap["PATH"], bin)
	}
}

func TestActivateScriptWithoutMarker(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX activation layout")
	}

	path := t.TempDir()
	bin := filepath.Join(path, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bin, "activate"), []byte("true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewManager(&fakeRunner{}).Activate(context.Background(), path)
	if err == nil {
		t.Fatal("Activate() error = nil, want missing marker failure")
	}
	if !strings.Contains(err.Error(), "VIRTUAL_ENV") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMergeEnviron(t *testing.T) {
	t.Parallel()

	base := []string{"HOME=/home/u", "PATH=/usr/bin", "LANG=C"}
	overrides := map[string]string{
		"PATH":        "/venv/bin:/usr/bin",
		"VIRTUAL_ENV": "/venv",
	}

	merged := mergeEnviron(base, overrides)
	sort.Strings(merged)

	want := []string{"HOME=/home/u", "LANG=C", "PATH=/venv/bin:/usr/bin", "VIRTUAL_ENV=/venv"}
	if strings.Join(merged, ";") != strings.Join(want, ";") {
		t.Errorf("mergeEnviron() = %v, want %v", merged, want)
	}
}
