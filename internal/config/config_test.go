// ABOUTME: Tests for configuration loading and precedence
// ABOUTME: Verifies defaults, YAML file parsing, env overrides, and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every recognized variable so tests see a clean slate.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvInstance, EnvDataDir, EnvHTTPAddr, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Instance != DefaultInstance {
		t.Errorf("expected default instance %q, got %q", DefaultInstance, cfg.Instance)
	}
	if cfg.DataDir == "" {
		t.Error("expected non-empty data dir")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if !cfg.IsDefaultInstance() {
		t.Error("expected IsDefaultInstance to be true for defaults")
	}
}

func TestLoadEnvOverridesTrailingSlash(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvInstance, "https://rss.example.net/")
	t.Setenv(EnvDataDir, "/tmp/rsshub-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Instance != "https://rss.example.net" {
		t.Errorf("expected trailing slash stripped, got %q", cfg.Instance)
	}
	if cfg.DataDir != "/tmp/rsshub-test" {
		t.Errorf("expected data dir from env, got %q", cfg.DataDir)
	}
	if cfg.IsDefaultInstance() {
		t.Error("expected IsDefaultInstance to be false for custom instance")
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "rsshub-mcp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "instance: http://localhost:1200\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Instance != "http://localhost:1200" {
		t.Errorf("expected instance from file, got %q", cfg.Instance)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level from file, got %q", cfg.LogLevel)
	}

	// Environment wins over the file.
	t.Setenv(EnvInstance, "https://rss.internal.example")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Instance != "https://rss.internal.example" {
		t.Errorf("expected env to win over file, got %q", cfg.Instance)
	}
}

func TestLoadRejectsBadInstance(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvInstance, "not-a-url")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for non-URL instance")
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvLogLevel, "loud")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for unknown log level")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		Instance: "https://rss.example.net",
		DataDir:  "/var/lib/rsshub-mcp",
		LogLevel: "debug",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(ConfigPath()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Instance != cfg.Instance {
		t.Errorf("instance = %q, want %q", loaded.Instance, cfg.Instance)
	}
	if loaded.DataDir != cfg.DataDir {
		t.Errorf("data dir = %q, want %q", loaded.DataDir, cfg.DataDir)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", loaded.LogLevel)
	}
}

func TestStorePath(t *testing.T) {
	cfg := &Config{DataDir: "/var/lib/rsshub-mcp"}
	want := filepath.Join("/var/lib/rsshub-mcp", "subscriptions.json")
	if got := cfg.StorePath(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := ExpandPath("~/feeds"); got != filepath.Join(home, "feeds") {
		t.Errorf("expected ~ expansion, got %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expected absolute path unchanged, got %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("expected empty path unchanged, got %q", got)
	}
}
