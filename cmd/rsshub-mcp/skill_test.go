// ABOUTME: Tests for the install-skill command
// ABOUTME: Covers directory creation, file writing, and overwrite scenarios

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSkillCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, ".claude", "skills", "rsshub")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	// Verify directory doesn't exist yet
	if _, err := os.Stat(skillDir); !os.IsNotExist(err) {
		t.Fatal("skill directory should not exist before test")
	}

	err := installSkillToPath(skillPath)
	if err != nil {
		t.Fatalf("installSkillToPath failed: %v", err)
	}

	info, err := os.Stat(skillDir)
	if err != nil {
		t.Fatalf("skill directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected skill directory to be a directory")
	}
}

func TestSkillWritesFile(t *testing.T) {
	tmpDir := t.TempDir()
	skillPath := filepath.Join(tmpDir, ".claude", "skills", "rsshub", "SKILL.md")

	err := installSkillToPath(skillPath)
	if err != nil {
		t.Fatalf("installSkillToPath failed: %v", err)
	}

	info, err := os.Stat(skillPath)
	if err != nil {
		t.Fatalf("skill file was not created: %v", err)
	}
	if info.IsDir() {
		t.Error("expected skill file to be a file, not a directory")
	}
	if info.Size() == 0 {
		t.Error("skill file should not be empty")
	}
}

func TestSkillFileContent(t *testing.T) {
	tmpDir := t.TempDir()
	skillPath := filepath.Join(tmpDir, ".claude", "skills", "rsshub", "SKILL.md")

	err := installSkillToPath(skillPath)
	if err != nil {
		t.Fatalf("installSkillToPath failed: %v", err)
	}

	content, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("failed to read skill file: %v", err)
	}

	contentStr := string(content)

	expectedSections := []string{
		"name: rsshub",
		"# rsshub",
		"## When to use rsshub",
		"mcp__rsshub__",
		"CLI commands",
	}

	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("skill file missing expected section: %q", section)
		}
	}

	// Verify it starts with YAML front matter
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("skill file should start with YAML front matter (---)")
	}
}

func TestSkillOverwritesExisting(t *testing.T) {
	tmpDir := t.TempDir()
	skillDir := filepath.Join(tmpDir, ".claude", "skills", "rsshub")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("failed to create skill directory: %v", err)
	}

	originalContent := "# Old skill file content\nThis should be overwritten."
	if err := os.WriteFile(skillPath, []byte(originalContent), 0644); err != nil {
		t.Fatalf("failed to write original file: %v", err)
	}

	err := installSkillToPath(skillPath)
	if err != nil {
		t.Fatalf("installSkillToPath failed: %v", err)
	}

	content, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("failed to read skill file: %v", err)
	}

	if string(content) == originalContent {
		t.Error("skill file should have been overwritten")
	}

	if !strings.Contains(string(content), "name: rsshub") {
		t.Error("skill file should contain new content")
	}
}

func TestSkillCreatesNestedDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	skillPath := filepath.Join(tmpDir, ".claude", "skills", "rsshub", "SKILL.md")

	claudeDir := filepath.Join(tmpDir, ".claude")
	if _, err := os.Stat(claudeDir); !os.IsNotExist(err) {
		t.Fatal(".claude directory should not exist before test")
	}

	err := installSkillToPath(skillPath)
	if err != nil {
		t.Fatalf("installSkillToPath failed: %v", err)
	}

	dirs := []string{
		filepath.Join(tmpDir, ".claude"),
		filepath.Join(tmpDir, ".claude", "skills"),
		filepath.Join(tmpDir, ".claude", "skills", "rsshub"),
	}

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("directory %q was not created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%q should be a directory", dir)
		}
	}
}

func TestSkillContentMatchesEmbedded(t *testing.T) {
	tmpDir := t.TempDir()
	skillPath := filepath.Join(tmpDir, ".claude", "skills", "rsshub", "SKILL.md")

	err := installSkillToPath(skillPath)
	if err != nil {
		t.Fatalf("installSkillToPath failed: %v", err)
	}

	installedContent, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("failed to read installed skill file: %v", err)
	}

	embeddedContent, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("failed to read embedded skill file: %v", err)
	}

	if string(installedContent) != string(embeddedContent) {
		t.Error("installed content does not match embedded content")
	}
}
