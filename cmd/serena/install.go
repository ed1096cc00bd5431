// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Provision the environment and install serena",
	Long: `Provision the isolated Python environment and install serena.

The install flow verifies the Python interpreter, creates the virtual
environment when it does not exist yet, activates it, installs serena in
editable mode against the local source tree, and installs the dashboard
packages. Re-running it is safe: an existing environment is reused and an
already-installed package is left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl := newController(loadConfig())
		if code := ctl.Install(cmd.Context()); code != 0 {
			return &ExitError{Code: code}
		}
		return nil
	},
}
