// ABOUTME: Tests for CLI commands
// ABOUTME: Tests command structure, flags, and subcommands

package main

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "rsshub-mcp" {
		t.Errorf("expected Use to be 'rsshub-mcp', got %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("expected root command to have a short description")
	}
	if rootCmd.RunE == nil {
		t.Error("expected root command to serve MCP when run without a subcommand")
	}

	// Check persistent flags exist
	for _, name := range []string{"instance", "data-dir", "http", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s persistent flag to exist", name)
		}
	}
}

func TestSearchCommand(t *testing.T) {
	if searchCmd.Use != "search <query>" {
		t.Errorf("expected Use to be 'search <query>', got %q", searchCmd.Use)
	}
}

func TestFetchCommand(t *testing.T) {
	if fetchCmd.Use != "fetch [route]" {
		t.Errorf("expected Use to be 'fetch [route]', got %q", fetchCmd.Use)
	}

	// Check flags exist
	if fetchCmd.Flags().Lookup("param") == nil {
		t.Error("expected --param flag to exist")
	}
	if fetchCmd.Flags().Lookup("render") == nil {
		t.Error("expected --render flag to exist")
	}
}

func TestSubscribeCommand(t *testing.T) {
	if subscribeCmd.Use != "subscribe <route>" {
		t.Errorf("expected Use to be 'subscribe <route>', got %q", subscribeCmd.Use)
	}

	if subscribeCmd.Flags().Lookup("name") == nil {
		t.Error("expected --name flag to exist")
	}
	if subscribeCmd.Flags().Lookup("param") == nil {
		t.Error("expected --param flag to exist")
	}
}

func TestUnsubscribeCommand(t *testing.T) {
	if unsubscribeCmd.Use != "unsubscribe" {
		t.Errorf("expected Use to be 'unsubscribe', got %q", unsubscribeCmd.Use)
	}

	if unsubscribeCmd.Flags().Lookup("id") == nil {
		t.Error("expected --id flag to exist")
	}
	if unsubscribeCmd.Flags().Lookup("route") == nil {
		t.Error("expected --route flag to exist")
	}
}

func TestListCommand(t *testing.T) {
	if listCmd.Use != "list" {
		t.Errorf("expected Use to be 'list', got %q", listCmd.Use)
	}
	if len(listCmd.Aliases) == 0 {
		t.Error("expected list command to have aliases")
	}
}

func TestExportCommand(t *testing.T) {
	if exportCmd.Use != "export [file]" {
		t.Errorf("expected Use to be 'export [file]', got %q", exportCmd.Use)
	}
}

func TestSetupCommand(t *testing.T) {
	if setupCmd.Use != "setup" {
		t.Errorf("expected Use to be 'setup', got %q", setupCmd.Use)
	}
}

func TestInstallSkillCommand(t *testing.T) {
	if installSkillCmd.Use != "install-skill" {
		t.Errorf("expected Use to be 'install-skill', got %q", installSkillCmd.Use)
	}
}

func TestSkipsInit(t *testing.T) {
	// setup must run even when the config file is broken; fetch needs the
	// full wiring.
	if !skipsInit(setupCmd) {
		t.Error("expected setup to skip dependency init")
	}
	if !skipsInit(versionCmd) {
		t.Error("expected version to skip dependency init")
	}
	if !skipsInit(installSkillCmd) {
		t.Error("expected install-skill to skip dependency init")
	}
	if skipsInit(fetchCmd) {
		t.Error("expected fetch to run dependency init")
	}
	if skipsInit(rootCmd) {
		t.Error("expected the root serve command to run dependency init")
	}
}
