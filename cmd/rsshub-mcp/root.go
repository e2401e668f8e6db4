// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads configuration and wires the catalog cache, store, and fetch client

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/rsshub-mcp/internal/catalog"
	"github.com/harper/rsshub-mcp/internal/config"
	"github.com/harper/rsshub-mcp/internal/fetcher"
	"github.com/harper/rsshub-mcp/internal/store"
)

var (
	flagInstance string
	flagDataDir  string
	flagHTTP     string
	flagLogLevel string

	cfg         *config.Config
	logger      *slog.Logger
	routeCache  *catalog.Cache
	subStore    *store.Store
	fetchClient *fetcher.Client
)

var rootCmd = &cobra.Command{
	Use:   "rsshub-mcp",
	Short: "MCP server and CLI for RSSHub feeds",
	Long: `
██████╗ ███████╗███████╗██╗  ██╗██╗   ██╗██████╗
██╔══██╗██╔════╝██╔════╝██║  ██║██║   ██║██╔══██╗
██████╔╝███████╗███████╗███████║██║   ██║██████╔╝
██╔══██╗╚════██║╚════██║██╔══██║██║   ██║██╔══██╗
██║  ██║███████║███████║██║  ██║╚██████╔╝██████╔╝
╚═╝  ╚═╝╚══════╝╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═════╝

Bridge between MCP clients and an RSSHub instance.

Run without arguments to serve MCP on stdio, or use the
subcommands to search routes and manage subscriptions directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipsInit(cmd) {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if flagInstance != "" {
			cfg.Instance = flagInstance
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if flagHTTP != "" {
			cfg.HTTPAddr = flagHTTP
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		cfg.Normalize()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		// stdout carries the MCP framing; every log line goes to stderr.
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		}))
		slog.SetDefault(logger)

		routeCache = catalog.NewCache(
			catalog.NewClient(cfg.Instance, &http.Client{Timeout: config.CatalogTimeout}),
			config.CacheTTL, time.Now, logger)
		subStore = store.New(cfg.StorePath())
		fetchClient = fetcher.New(cfg.Instance, &http.Client{Timeout: config.FeedTimeout}, logger)

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// skipsInit lists the commands that must work without a loadable config,
// setup first among them since it exists to repair one.
func skipsInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "setup", "version", "install-skill", "help", "completion":
		return true
	}
	return false
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagInstance, "instance", "", "RSSHub instance base URL (default: https://rsshub.app)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory for subscriptions (default: ~/.local/share/rsshub-mcp)")
	rootCmd.PersistentFlags().StringVar(&flagHTTP, "http", "", "listen address for the read-only debug API (default: disabled)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (default: info)")
}
