// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Raheem-19/serena/internal/config"
	"github.com/Raheem-19/serena/internal/issue"

	"github.com/spf13/cobra"
)

// defaultConfigContent is written by `serena config init`.
const defaultConfigContent = `// serena configuration
//
// All fields are optional; unset fields fall back to their defaults.

// python_bin: "python3"
venv_dir: ".venv"
project:  "serena"

extra_packages: ["flask", "flask-cors"]

entry_point: "run_dashboard.py"

dashboard: {
	host: "0.0.0.0"
	port: 24287
}

ui: {
	verbose: false
}
`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage serena configuration",
	Long: `Manage serena configuration.

Configuration is stored in:
  - Linux: ~/.config/serena/config.cue
  - macOS: ~/Library/Application Support/serena/config.cue
  - Windows: %APPDATA%\serena\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

func showConfig() error {
	cfg, path, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if path != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	pythonBin := cfg.PythonBin
	if pythonBin == "" {
		pythonBin = "(auto: python3, python)"
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("python_bin"), valueStyle.Render(pythonBin))
	fmt.Printf("%s: %s\n", keyStyle.Render("venv_dir"), valueStyle.Render(cfg.VenvDir))
	fmt.Printf("%s: %s\n", keyStyle.Render("project"), valueStyle.Render(cfg.Project))
	fmt.Printf("%s: %s\n", keyStyle.Render("extra_packages"), valueStyle.Render(strings.Join(cfg.ExtraPackages, ", ")))
	fmt.Printf("%s: %s\n", keyStyle.Render("entry_point"), valueStyle.Render(cfg.EntryPoint))
	fmt.Printf("%s: %s\n", keyStyle.Render("dashboard"), valueStyle.Render(fmt.Sprintf("%s:%d", cfg.Dashboard.Host, cfg.Dashboard.Port)))
	fmt.Printf("%s: %s\n", keyStyle.Render("ui.verbose"), valueStyle.Render(fmt.Sprintf("%t", cfg.UI.Verbose)))

	return nil
}

func initConfigFile() error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s %s\n", WarningStyle.Render("Config file already exists:"), path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("%s %s\n", SuccessStyle.Render("Created config file:"), path)
	return nil
}

func showConfigPath() error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
