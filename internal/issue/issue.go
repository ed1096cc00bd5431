// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	PythonNotFoundId Id = iota + 1
	VenvCreateFailedId
	VenvActivateFailedId
	PackageInstallFailedId
	DashboardLaunchFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // links to docs that cover this issue
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	pythonNotFoundIssue = &Issue{
		id: PythonNotFoundId,
		mdMsg: `
# Python is not installed!

Serena needs a working Python 3 interpreter, but none was found on your PATH.

## Things you can try:
- Install Python 3:
  - Linux: ` + "`sudo apt install python3 python3-venv`" + ` or ` + "`sudo dnf install python3`" + `
  - macOS: ` + "`brew install python`" + `
  - Windows: Download from https://www.python.org/downloads/ and tick "Add to PATH"

- Verify the installation:
~~~
$ python3 --version
~~~

- Or point serena at a specific interpreter in your config:
~~~cue
python_bin: "/usr/local/bin/python3.11"
~~~`,
		extLinks: []HttpLink{"https://www.python.org/downloads/"},
	}

	venvCreateFailedIssue = &Issue{
		id: VenvCreateFailedId,
		mdMsg: `
# Failed to create the virtual environment!

The interpreter's venv facility exited with an error.

## Common causes:
- The venv module is missing (Debian/Ubuntu split it out)
- No write permission in the project directory
- A broken half-created environment directory

## Things you can try:
- Install the venv module:
~~~
$ sudo apt install python3-venv
~~~

- Remove a broken environment and retry:
~~~
$ rm -rf .venv
$ serena install
~~~`,
	}

	venvActivateFailedIssue = &Issue{
		id: VenvActivateFailedId,
		mdMsg: `
# Failed to activate the virtual environment!

The environment exists but its activation procedure did not complete.

## Things you can try:
- Check that the activation script exists:
~~~
$ ls .venv/bin/activate
~~~

- Recreate the environment from scratch:
~~~
$ rm -rf .venv
$ serena install
~~~`,
	}

	packageInstallFailedIssue = &Issue{
		id: PackageInstallFailedId,
		mdMsg: `
# Package installation failed!

pip exited with an error while installing serena or its dashboard packages.

## Common causes:
- No network access to the package index
- Running outside the project source tree (editable installs need it)
- An outdated pip

## Things you can try:
- Run the install from the repository root (where setup.py / pyproject.toml lives)
- Upgrade pip inside the environment:
~~~
$ .venv/bin/python -m pip install --upgrade pip
~~~

- Re-run with verbose output for the full pip log:
~~~
$ serena --verbose install
~~~`,
	}

	dashboardLaunchFailedIssue = &Issue{
		id: DashboardLaunchFailedId,
		mdMsg: `
# Failed to start the dashboard!

The dashboard entry point could not be started.

## Common causes:
- run_dashboard.py is missing from the working directory
- The configured interpreter is not runnable
- The dashboard port is already in use

## Things you can try:
- Run from the repository root where run_dashboard.py lives
- Check whether another process holds the port:
~~~
$ lsof -i :24287
~~~

- Re-run the install flow first:
~~~
$ serena install
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the serena configuration file.

## Configuration file locations:
- Linux: ~/.config/serena/config.cue
- macOS: ~/Library/Application Support/serena/config.cue
- Windows: %APPDATA%\serena\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ serena config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
python_bin: "python3"
venv_dir:   ".venv"

dashboard: {
  host: "0.0.0.0"
  port: 24287
}

ui: {
  verbose: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		pythonNotFoundIssue.Id():        pythonNotFoundIssue,
		venvCreateFailedIssue.Id():      venvCreateFailedIssue,
		venvActivateFailedIssue.Id():    venvActivateFailedIssue,
		packageInstallFailedIssue.Id():  packageInstallFailedIssue,
		dashboardLaunchFailedIssue.Id(): dashboardLaunchFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
