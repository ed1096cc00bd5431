// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidStage is the sentinel error wrapped by InvalidStageError.
var ErrInvalidStage = errors.New("invalid stage")

// Pipeline stages, in the order the install flow visits them. The launch
// flow skips environment creation and activation.
const (
	StageRuntimeCheck   Stage = "runtime-check"
	StageEnvCreate      Stage = "env-create"
	StageEnvActivate    Stage = "env-activate"
	StagePackageInstall Stage = "package-install"
	StageLaunch         Stage = "launch"
)

type (
	// Stage identifies the pipeline stage that produced a result.
	Stage string

	// InvalidStageError is returned when a Stage value is not recognized.
	// It wraps ErrInvalidStage for errors.Is() compatibility.
	InvalidStageError struct {
		Value Stage
	}
)

// Error implements the error interface.
func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("invalid stage %q", string(e.Value))
}

// Unwrap returns ErrInvalidStage for errors.Is() compatibility.
func (e *InvalidStageError) Unwrap() error { return ErrInvalidStage }

// IsValid returns whether the Stage is one of the recognized pipeline
// stages, and a list of validation errors if it is not.
func (s Stage) IsValid() (bool, []error) {
	switch s {
	case StageRuntimeCheck, StageEnvCreate, StageEnvActivate, StagePackageInstall, StageLaunch:
		return true, nil
	}
	return false, []error{&InvalidStageError{Value: s}}
}

// String returns the stage name.
func (s Stage) String() string { return string(s) }
