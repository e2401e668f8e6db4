// ABOUTME: Cobra command for interactive configuration.
// ABOUTME: Launches a bubbletea TUI wizard to set the instance URL and data directory.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harper/rsshub-mcp/internal/config"
	"github.com/harper/rsshub-mcp/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the RSSHub connection",
	Long:  "Interactive wizard to configure the instance URL and data directory.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	// A broken config file must not block the wizard that repairs it.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: existing config not usable (%v); starting from defaults\n", err)
		cfg = &config.Config{}
	}

	model := tui.NewSetupModel(cfg.Instance, cfg.DataDir)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup canceled.")
		return nil
	}

	instance, dataDir := final.Result()
	cfg.Instance = instance
	cfg.DataDir = dataDir
	cfg.Normalize()
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Config saved to %s\n", config.ConfigPath())
	return nil
}
