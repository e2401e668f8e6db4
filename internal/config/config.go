// ABOUTME: Configuration loading with YAML file, environment, and flag precedence
// ABOUTME: Resolves the RSSHub instance URL, data directory, and server settings

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Environment variable names recognized by Load. RSSHUB_INSTANCE and
// RSSHUB_MCP_DATA_DIR are the documented knobs; the rest tune the optional
// debug server.
const (
	EnvInstance = "RSSHUB_INSTANCE"
	EnvDataDir  = "RSSHUB_MCP_DATA_DIR"
	EnvHTTPAddr = "RSSHUB_MCP_HTTP_ADDR"
	EnvLogLevel = "RSSHUB_MCP_LOG_LEVEL"
)

// Config stores rsshub-mcp configuration.
type Config struct {
	// Instance is the base URL of the RSSHub instance, without a trailing slash.
	Instance string `yaml:"instance"`

	// DataDir holds subscriptions.json. Supports ~ and $VAR expansion.
	// Defaults to ~/.local/share/rsshub-mcp.
	DataDir string `yaml:"data_dir"`

	// HTTPAddr enables the read-only debug API when non-empty, e.g. ":8085".
	HTTPAddr string `yaml:"http_addr"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `yaml:"log_level"`
}

// Load resolves configuration in ascending precedence: built-in defaults,
// the YAML config file, then environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Instance: DefaultInstance,
		DataDir:  defaultDataDir(),
		LogLevel: "info",
	}

	path := ConfigPath()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if v := os.Getenv(EnvInstance); v != "" {
		cfg.Instance = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize trims the instance URL and expands the data directory so the
// rest of the program can join paths without re-checking separators.
func (c *Config) Normalize() {
	c.Instance = strings.TrimRight(strings.TrimSpace(c.Instance), "/")
	c.DataDir = ExpandPath(c.DataDir)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks that the resolved configuration is usable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Instance, validation.Required, validation.By(checkBaseURL)),
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// Save writes the configuration to the config file, creating the parent
// directory when needed.
func (c *Config) Save() error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// IsDefaultInstance reports whether the configured instance is the public
// rsshub.app deployment, which rate-limits aggressively.
func (c *Config) IsDefaultInstance() bool {
	return c.Instance == DefaultInstance
}

// SlogLevel maps the configured log level onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// StorePath returns the subscription file location under the data directory.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "subscriptions.json")
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "rsshub-mcp", "config.yaml")
}

// ExpandPath expands a leading ~ and any $VAR references in path.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// defaultDataDir returns the standard XDG data directory for rsshub-mcp.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "rsshub-mcp")
}

func checkBaseURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("must be an absolute http or https URL")
	}
	return nil
}
