// ABOUTME: Install Claude Code skill for rsshub-mcp
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the rsshub skill for Claude Code.

This copies the skill definition to ~/.claude/skills/rsshub/
so Claude Code can use the rsshub tools contextually.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return installSkill()
	},
}

func init() {
	rootCmd.AddCommand(installSkillCmd)
}

func installSkill() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	skillPath := filepath.Join(home, ".claude", "skills", "rsshub", "SKILL.md")

	if err := installSkillToPath(skillPath); err != nil {
		return err
	}

	fmt.Printf("Installed rsshub skill to %s\n", skillPath)
	fmt.Println("Claude Code will now recognize rsshub feed workflows.")
	return nil
}

func installSkillToPath(skillPath string) error {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(skillPath), 0755); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(skillPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}
	return nil
}
