// ABOUTME: Centralized configuration defaults for rsshub-mcp
// ABOUTME: Contains magic numbers shared by the catalog, fetcher, and tool layers

package config

import "time"

// Upstream settings
const (
	DefaultInstance = "https://rsshub.app"
	UserAgent       = "rsshub-mcp/1.0"
)

// HTTP settings
const (
	CatalogTimeout   = 30 * time.Second
	FeedTimeout      = 60 * time.Second
	MaxResponseBytes = int64(50 * 1024 * 1024)
	FetchConcurrency = 4
)

// Catalog settings
const (
	CacheTTL          = 24 * time.Hour
	SearchResultLimit = 50
)

// Diagnostic and preview settings
const (
	SnippetLimit     = 1000
	PreviewItemLimit = 10
)
