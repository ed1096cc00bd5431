// SPDX-License-Identifier: MPL-2.0

// serena bootstraps and launches the Serena dashboard.
package main

import (
	cmd "github.com/Raheem-19/serena/cmd/serena"
)

func main() {
	cmd.Execute()
}
