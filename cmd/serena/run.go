// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the Serena dashboard",
	Long: `Launch the Serena dashboard and wait for it to exit.

The launch flow verifies the Python interpreter, warns when no virtual
environment is active (and proceeds anyway), makes sure the serena package
is installed, and then starts the dashboard entry point in the foreground
with the terminal's streams attached. The dashboard's own exit status
becomes this command's exit status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl := newController(loadConfig())
		if code := ctl.Launch(cmd.Context()); code != 0 {
			return &ExitError{Code: code}
		}
		return nil
	},
}
