// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"testing"

	"github.com/Raheem-19/serena/internal/issue"
)

func TestStageIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stage Stage
		want  bool
	}{
		{"runtime check", StageRuntimeCheck, true},
		{"env create", StageEnvCreate, true},
		{"env activate", StageEnvActivate, true},
		{"package install", StagePackageInstall, true},
		{"launch", StageLaunch, true},
		{"empty", Stage(""), false},
		{"unknown", Stage("teardown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.stage.IsValid()
			if valid != tt.want {
				t.Errorf("IsValid() = %v, want %v", valid, tt.want)
			}
			if !tt.want {
				if len(errs) != 1 {
					t.Fatalf("IsValid() errors = %d, want 1", len(errs))
				}
				if !errors.Is(errs[0], ErrInvalidStage) {
					t.Errorf("error does not wrap ErrInvalidStage: %v", errs[0])
				}
			}
		})
	}
}

func TestStageErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	serr := NewStageError(StageEnvCreate, cause)

	if !errors.Is(serr, cause) {
		t.Errorf("StageError does not unwrap to its cause")
	}
	if serr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", serr.ExitCode)
	}
	if got := serr.Error(); got != "env-create: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestStageErrorIssueId(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stage Stage
		want  issue.Id
	}{
		{StageRuntimeCheck, issue.PythonNotFoundId},
		{StageEnvCreate, issue.VenvCreateFailedId},
		{StageEnvActivate, issue.VenvActivateFailedId},
		{StagePackageInstall, issue.PackageInstallFailedId},
		{StageLaunch, issue.DashboardLaunchFailedId},
	}

	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			t.Parallel()

			serr := NewStageError(tt.stage, errors.New("x"))
			if got := serr.IssueId(); got != tt.want {
				t.Errorf("IssueId() = %v, want %v", got, tt.want)
			}
		})
	}
}
