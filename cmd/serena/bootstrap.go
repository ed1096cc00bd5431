// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/Raheem-19/serena/internal/config"
	"github.com/Raheem-19/serena/internal/execx"
	"github.com/Raheem-19/serena/internal/launch"
	"github.com/Raheem-19/serena/internal/pip"
	"github.com/Raheem-19/serena/internal/pipeline"
	"github.com/Raheem-19/serena/internal/python"
	"github.com/Raheem-19/serena/internal/venv"

	"golang.org/x/term"
)

// activeEnvMarker is the process-scoped marker venv activation sets.
const activeEnvMarker = "VIRTUAL_ENV"

// newController wires the pipeline controller to the real collaborators.
// Ambient process state (the VIRTUAL_ENV marker, terminal attachment) is
// read here, once, and injected as explicit values.
func newController(cfg *config.Config) *pipeline.Controller {
	runner := execx.NewRunner()

	opts := pipeline.Options{
		VenvDir:         cfg.VenvDir,
		Project:         cfg.Project,
		ExtraPackages:   cfg.ExtraPackages,
		EntryPoint:      cfg.EntryPoint,
		DashboardURL:    dashboardURL(cfg),
		ActiveEnvMarker: os.Getenv(activeEnvMarker),
		Interactive:     term.IsTerminal(int(os.Stdin.Fd())),
	}

	return pipeline.NewController(
		python.NewChecker(runner, cfg.PythonBin),
		venv.NewManager(runner),
		pip.NewInstaller(runner, ""),
		launch.NewLauncher(""),
		opts,
		newLogger(),
	)
}

// dashboardURL formats the expected dashboard endpoint. A wildcard bind
// address is shown as localhost, which is where the user will reach it.
func dashboardURL(cfg *config.Config) string {
	host := cfg.Dashboard.Host
	if host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, cfg.Dashboard.Port)
}
