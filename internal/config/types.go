// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// DefaultVenvDir is the fixed relative name of the isolated environment,
	// created on demand under the invocation's working directory.
	DefaultVenvDir = ".venv"

	// DefaultProject is the package ensured by the bootstrap pipeline.
	DefaultProject = "serena"

	// DefaultDashboardHost is the address the dashboard entry point binds.
	DefaultDashboardHost = "0.0.0.0"

	// DefaultDashboardPort is the port the dashboard entry point serves on.
	DefaultDashboardPort = 24287

	// DefaultEntryPoint is the script handed to the interpreter at launch.
	DefaultEntryPoint = "run_dashboard.py"
)

// ErrInvalidDashboardPort is the sentinel error wrapped by InvalidDashboardPortError.
var ErrInvalidDashboardPort = errors.New("invalid dashboard port")

type (
	// Config represents the serena configuration.
	Config struct {
		// PythonBin overrides interpreter discovery when non-empty.
		PythonBin string `mapstructure:"python_bin"`
		// VenvDir is the isolated environment directory, relative to the
		// working directory.
		VenvDir string `mapstructure:"venv_dir"`
		// Project is the primary package ensured by the pipeline.
		Project string `mapstructure:"project"`
		// ExtraPackages are installed unconditionally by the install flow.
		ExtraPackages []string `mapstructure:"extra_packages"`
		// EntryPoint is the dashboard script handed to the interpreter.
		EntryPoint string `mapstructure:"entry_point"`
		// Dashboard describes the endpoint the entry point is expected to serve.
		Dashboard DashboardConfig `mapstructure:"dashboard"`
		// UI holds user interface settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// DashboardConfig is informational: the orchestrator prints the expected
	// endpoint but never binds it; serving is the entry point's job.
	DashboardConfig struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	}

	// UIConfig holds user interface settings.
	UIConfig struct {
		// Verbose enables verbose output by default.
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidDashboardPortError is returned when the configured port is
	// outside the valid range. It wraps ErrInvalidDashboardPort for
	// errors.Is() compatibility.
	InvalidDashboardPortError struct {
		Value int
	}
)

// Error implements the error interface.
func (e *InvalidDashboardPortError) Error() string {
	return fmt.Sprintf("invalid dashboard port %d (must be in range 1-65535)", e.Value)
}

// Unwrap returns ErrInvalidDashboardPort for errors.Is() compatibility.
func (e *InvalidDashboardPortError) Unwrap() error { return ErrInvalidDashboardPort }

// DefaultConfig returns the configuration used when no config file exists.
// The defaults reproduce the original launcher behavior: auto-discovered
// interpreter, a .venv environment, an editable serena install plus the
// dashboard packages, and the dashboard on 0.0.0.0:24287.
func DefaultConfig() *Config {
	return &Config{
		VenvDir:       DefaultVenvDir,
		Project:       DefaultProject,
		ExtraPackages: []string{"flask", "flask-cors"},
		EntryPoint:    DefaultEntryPoint,
		Dashboard: DashboardConfig{
			Host: DefaultDashboardHost,
			Port: DefaultDashboardPort,
		},
	}
}

// Validate checks the merged configuration. Values merged through Viper
// defaults or environment overrides never pass the CUE schema, so range
// constraints are re-checked here.
func (c *Config) Validate() error {
	if c.Dashboard.Port < 1 || c.Dashboard.Port > 65535 {
		return &InvalidDashboardPortError{Value: c.Dashboard.Port}
	}
	return nil
}
