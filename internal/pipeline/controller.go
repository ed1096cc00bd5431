// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Raheem-19/serena/internal/issue"
	"github.com/Raheem-19/serena/internal/launch"
	"github.com/Raheem-19/serena/internal/pip"
	"github.com/Raheem-19/serena/internal/python"
	"github.com/Raheem-19/serena/internal/venv"

	"github.com/charmbracelet/log"
)

// flowState enumerates the states of the linear bootstrap state machine.
type flowState int

const (
	stateCheckRuntime flowState = iota
	stateEnsureEnv
	stateActivateEnv
	stateDetectEnv
	stateEnsurePackage
	stateAuxPackages
	stateLaunch
	stateDone
)

type (
	// RuntimeChecker confirms the interpreter is invocable and extracts
	// its version.
	RuntimeChecker interface {
		Check(ctx context.Context) python.Info
	}

	// EnvironmentManager creates and activates the isolated environment.
	EnvironmentManager interface {
		Ensure(ctx context.Context, pythonPath, envDir string) (venv.State, error)
		Activate(ctx context.Context, envDir string) (venv.State, error)
	}

	// PackageInstaller idempotently ensures the target package and
	// unconditionally installs the auxiliary set.
	PackageInstaller interface {
		EnsurePackage(ctx context.Context, pythonPath, name string, env []string) (pip.State, error)
		InstallAll(ctx context.Context, pythonPath string, names []string, env []string) error
	}

	// ProcessLauncher starts the entry point and blocks until it exits.
	ProcessLauncher interface {
		Launch(ctx context.Context, env []string, argv []string) (launch.Result, error)
	}

	// Options configures a pipeline run. The already-active marker is read
	// once at the CLI boundary and injected here so tests can simulate an
	// activated environment without touching real process state.
	Options struct {
		// VenvDir is the isolated environment directory.
		VenvDir string
		// Project is the primary package ensured by both flows.
		Project string
		// ExtraPackages are installed unconditionally by the install flow.
		ExtraPackages []string
		// EntryPoint is the script handed to the interpreter at launch.
		EntryPoint string
		// DashboardURL, when non-empty, is printed before launch. The entry
		// point owns binding and serving it.
		DashboardURL string
		// ActiveEnvMarker is the VIRTUAL_ENV value of the invocation.
		ActiveEnvMarker string
		// Interactive makes terminal errors block on acknowledgment so the
		// diagnostic is not lost when the session window closes.
		Interactive bool
	}

	// Controller sequences the collaborators into the install and launch
	// flows and owns uniform error and exit reporting. Collaborators only
	// return small results; no component reads another's internal state.
	Controller struct {
		Runtime  RuntimeChecker
		Env      EnvironmentManager
		Packages PackageInstaller
		Launcher ProcessLauncher

		Opts Options

		// Out receives user-facing status lines; ErrOut the diagnostics.
		Out    io.Writer
		ErrOut io.Writer
		// Stdin is read for the interactive acknowledgment prompt.
		Stdin  io.Reader
		Logger *log.Logger
	}
)

// NewController wires a Controller to the standard streams.
func NewController(runtime RuntimeChecker, env EnvironmentManager, packages PackageInstaller, launcher ProcessLauncher, opts Options, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		Runtime:  runtime,
		Env:      env,
		Packages: packages,
		Launcher: launcher,
		Opts:     opts,
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
		Stdin:    os.Stdin,
		Logger:   logger,
	}
}

// Install runs the install flow:
//
//	CheckRuntime → EnsureEnvironment → ActivateEnvironment →
//	EnsurePackage → EnsureAuxiliaryPackages → Done
//
// and returns the process exit code: 0 on success, 1 on any fatal stage.
func (c *Controller) Install(ctx context.Context) int {
	var (
		info python.Info
		env  venv.State
	)

	state := stateCheckRuntime
	for {
		switch state {
		case stateCheckRuntime:
			var serr *StageError
			if info, serr = c.checkRuntime(ctx); serr != nil {
				return c.fail(serr)
			}
			state = stateEnsureEnv

		case stateEnsureEnv:
			st, err := c.Env.Ensure(ctx, info.Path, c.Opts.VenvDir)
			if err != nil {
				return c.fail(NewStageError(StageEnvCreate, err))
			}
			c.Logger.Debug("virtual environment ready", "path", st.Path)
			state = stateActivateEnv

		case stateActivateEnv:
			var err error
			if env, err = c.Env.Activate(ctx, c.Opts.VenvDir); err != nil {
				return c.fail(NewStageError(StageEnvActivate, err))
			}
			fmt.Fprintf(c.Out, "Virtual environment active at %s\n", env.Path)
			state = stateEnsurePackage

		case stateEnsurePackage:
			pkg, err := c.Packages.EnsurePackage(ctx, info.Path, c.Opts.Project, env.Env)
			if err != nil {
				return c.fail(NewStageError(StagePackageInstall, err))
			}
			c.reportPackage(pkg)
			state = stateAuxPackages

		case stateAuxPackages:
			if err := c.Packages.InstallAll(ctx, info.Path, c.Opts.ExtraPackages, env.Env); err != nil {
				return c.fail(NewStageError(StagePackageInstall, err))
			}
			state = stateDone

		case stateDone:
			fmt.Fprintf(c.Out, "Installation complete. Run 'serena run' to start the dashboard.\n")
			return 0
		}
	}
}

// Launch runs the launch flow:
//
//	CheckRuntime → DetectEnvironment (warning only) → EnsurePackage →
//	Launch → Done
//
// and returns the process exit code: the child's own exit status once it
// was started, 1 for any fatal stage before that.
func (c *Controller) Launch(ctx context.Context) int {
	var info python.Info

	state := stateCheckRuntime
	for {
		switch state {
		case stateCheckRuntime:
			var serr *StageError
			if info, serr = c.checkRuntime(ctx); serr != nil {
				return c.fail(serr)
			}
			state = stateDetectEnv

		case stateDetectEnv:
			// Best effort: the launch flow proceeds regardless of the result.
			if !venv.DetectActive(c.Opts.ActiveEnvMarker) {
				c.Logger.Warn("no active virtual environment detected, using the system interpreter")
			}
			state = stateEnsurePackage

		case stateEnsurePackage:
			pkg, err := c.Packages.EnsurePackage(ctx, info.Path, c.Opts.Project, nil)
			if err != nil {
				return c.fail(NewStageError(StagePackageInstall, err))
			}
			c.reportPackage(pkg)
			state = stateLaunch

		case stateLaunch:
			if c.Opts.DashboardURL != "" {
				fmt.Fprintf(c.Out, "Dashboard: %s\n", c.Opts.DashboardURL)
			}
			result, err := c.Launcher.Launch(ctx, nil, []string{info.Path, c.Opts.EntryPoint})
			if err != nil {
				return c.fail(NewStageError(StageLaunch, err))
			}
			// Done: the launched process's own exit status is the run's
			// final verdict.
			if result.ExitCode != 0 {
				c.Logger.Warn("dashboard exited with non-zero status", "code", result.ExitCode)
			}
			return result.ExitCode
		}
	}
}

// checkRuntime executes the RuntimeCheck stage shared by both flows and
// surfaces the interpreter version as an informational line.
func (c *Controller) checkRuntime(ctx context.Context) (python.Info, *StageError) {
	info := c.Runtime.Check(ctx)
	if !info.Present {
		return info, NewStageError(StageRuntimeCheck, errors.New("python runtime not installed"))
	}
	fmt.Fprintf(c.Out, "Using Python %s\n", info.Version)
	return info, nil
}

func (c *Controller) reportPackage(pkg pip.State) {
	if pkg.InstallAttempted {
		c.Logger.Debug("package installed", "project", c.Opts.Project)
		return
	}
	c.Logger.Debug("package already installed", "project", c.Opts.Project)
}

// fail is the absorbing terminal-error state: it formats the diagnostic,
// appends the stage's remediation text, and — only in interactive
// invocations — blocks awaiting acknowledgment so the message is not lost
// when the window closes.
func (c *Controller) fail(serr *StageError) int {
	fmt.Fprintf(c.ErrOut, "Error: %s\n", serr.Error())

	if rendered, err := issue.Get(serr.IssueId()).Render("dark"); err == nil {
		fmt.Fprint(c.ErrOut, rendered)
	}

	if c.Opts.Interactive {
		fmt.Fprint(c.ErrOut, "\nPress Enter to close... ")
		_, _ = bufio.NewReader(c.Stdin).ReadString('\n')
	}

	return serr.ExitCode
}
