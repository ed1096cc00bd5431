// SPDX-License-Identifier: MPL-2.0

package pip

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type call struct {
	dir  string
	env  []string
	name string
	args []string
}

// scriptedRunner replays one result per Run invocation, in order.
type scriptedRunner struct {
	results []struct {
		out string
		err error
	}
	calls []call
}

func (s *scriptedRunner) Run(_ context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	s.calls = append(s.calls, call{dir: dir, env: env, name: name, args: args})
	if len(s.results) == 0 {
		return nil, nil
	}
	r := s.results[0]
	s.results = s.results[1:]
	return []byte(r.out), r.err
}

func (s *scriptedRunner) LookPath(name string) (string, error) {
	return name, nil
}

func scripted(results ...struct {
	out string
	err error
}) *scriptedRunner {
	return &scriptedRunner{results: results}
}

func result(out string, err error) struct {
	out string
	err error
} {
	return struct {
		out string
		err error
	}{out, err}
}

func TestEnsurePackageProbeHit(t *testing.T) {
	t.Parallel()

	runner := scripted(result("Name: serena\nVersion: 0.1.0", nil))
	st, err := NewInstaller(runner, "/src/serena").EnsurePackage(context.Background(), "python3", "serena", nil)
	if err != nil {
		t.Fatalf("EnsurePackage() error: %v", err)
	}
	if !st.Present || st.InstallAttempted {
		t.Errorf("EnsurePackage() = %+v, want present without install", st)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("runner calls = %d, want probe only", len(runner.calls))
	}
	if want := "-m pip show serena"; strings.Join(runner.calls[0].args, " ") != want {
		t.Errorf("probe args = %v, want %q", runner.calls[0].args, want)
	}
}

func TestEnsurePackageInstallsOnMiss(t *testing.T) {
	t.Parallel()

	runner := scripted(
		result("WARNING: Package(s) not found: serena", errors.New("exit status 1")),
		result("Successfully installed serena-0.1.0", nil),
	)
	st, err := NewInstaller(runner, "/src/serena").EnsurePackage(context.Background(), "python3", "serena", nil)
	if err != nil {
		t.Fatalf("EnsurePackage() error: %v", err)
	}
	if !st.Present || !st.InstallAttempted {
		t.Errorf("EnsurePackage() = %+v, want present via install", st)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("runner calls = %d, want probe then install", len(runner.calls))
	}

	install := runner.calls[1]
	if want := "-m pip install -e ."; strings.Join(install.args, " ") != want {
		t.Errorf("install args = %v, want editable install", install.args)
	}
	if install.dir != "/src/serena" {
		t.Errorf("install dir = %q, want the source tree", install.dir)
	}
}

func TestEnsurePackageInstallFailure(t *testing.T) {
	t.Parallel()

	runner := scripted(
		result("", errors.New("exit status 1")),
		result("ERROR: no setup.py found", errors.New("exit status 1")),
	)
	st, err := NewInstaller(runner, "/src/serena").EnsurePackage(context.Background(), "python3", "serena", nil)
	if err == nil {
		t.Fatal("EnsurePackage() error = nil, want install failure")
	}
	if st.Present {
		t.Errorf("Present set despite failed install: %+v", st)
	}
	if !st.InstallAttempted {
		t.Errorf("InstallAttempted not recorded: %+v", st)
	}
	if !strings.Contains(err.Error(), "no setup.py found") {
		t.Errorf("error does not carry pip output: %v", err)
	}
}

func TestEnsurePackagePassesEnv(t *testing.T) {
	t.Parallel()

	env := []string{"VIRTUAL_ENV=/venv", "PATH=/venv/bin"}
	runner := scripted(result("", nil))
	if _, err := NewInstaller(runner, "").EnsurePackage(context.Background(), "python3", "serena", env); err != nil {
		t.Fatalf("EnsurePackage() error: %v", err)
	}
	if strings.Join(runner.calls[0].env, ";") != strings.Join(env, ";") {
		t.Errorf("probe env = %v, want activation overlay", runner.calls[0].env)
	}
}

func TestInstallAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		names    []string
		runErr   error
		wantArgs string
		wantErr  bool
	}{
		{
			name:     "auxiliary set in one invocation",
			names:    []string{"flask", "flask-cors"},
			wantArgs: "-m pip install flask flask-cors",
		},
		{
			name:  "empty set is a no-op",
			names: nil,
		},
		{
			name:    "failure names the packages",
			names:   []string{"flask"},
			runErr:  errors.New("exit status 1"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := scripted(result("", tt.runErr))
			err := NewInstaller(runner, "").InstallAll(context.Background(), "python3", tt.names, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("InstallAll() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantArgs == "" {
				if len(tt.names) == 0 && len(runner.calls) != 0 {
					t.Errorf("runner invoked for an empty package set")
				}
				return
			}
			if strings.Join(runner.calls[0].args, " ") != tt.wantArgs {
				t.Errorf("args = %v, want %q", runner.calls[0].args, tt.wantArgs)
			}
		})
	}
}
