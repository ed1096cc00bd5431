// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"

	"github.com/Raheem-19/serena/internal/issue"
)

// StageError records a fatal stage failure. Exactly one of a StageError or
// a launch result exists at the end of a run; no stage attempts recovery
// or retry.
type StageError struct {
	// Stage is the pipeline stage that failed.
	Stage Stage
	// ExitCode is the process exit code the run terminates with.
	ExitCode int
	// Err is the underlying cause.
	Err error
}

// NewStageError creates a StageError for the given stage. Every fatal
// stage before launch collapses to exit code 1.
func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, ExitCode: 1, Err: err}
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Err.Error())
	}
	return fmt.Sprintf("%s failed", e.Stage)
}

// Unwrap returns the underlying cause for use with errors.Is/As.
func (e *StageError) Unwrap() error { return e.Err }

// IssueId maps the failed stage to its remediation issue.
func (e *StageError) IssueId() issue.Id {
	switch e.Stage {
	case StageRuntimeCheck:
		return issue.PythonNotFoundId
	case StageEnvCreate:
		return issue.VenvCreateFailedId
	case StageEnvActivate:
		return issue.VenvActivateFailedId
	case StagePackageInstall:
		return issue.PackageInstallFailedId
	default:
		return issue.DashboardLaunchFailedId
	}
}
