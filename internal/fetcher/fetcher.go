// ABOUTME: Feed fetch orchestrator that composes instance URLs and classifies upstream responses
// ABOUTME: Returns structured diagnostics for failures instead of propagating raw HTTP errors

package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/harper/rsshub-mcp/internal/config"
)

// Diagnostic kinds, one per failure category.
const (
	KindUnavailable   = "upstream_unavailable"
	KindRouteNotFound = "route_not_found"
	KindOverloaded    = "upstream_overloaded"
	KindInternalError = "upstream_internal_error"
	KindUpstreamError = "upstream_error"
)

// Client issues feed requests against one RSSHub instance.
type Client struct {
	base       string
	http       *http.Client
	logger     *slog.Logger
	publicHost bool
	limit      int
}

// New builds a fetch client for the given instance base URL. The caller owns
// the http.Client and its timeout.
func New(base string, httpClient *http.Client, logger *slog.Logger) *Client {
	base = strings.TrimRight(base, "/")
	return &Client{
		base:       base,
		http:       httpClient,
		logger:     logger,
		publicHost: base == config.DefaultInstance,
		limit:      config.FetchConcurrency,
	}
}

// Result is the outcome of one feed fetch. Diagnostic is nil on success; a
// zero StatusCode means the request never completed.
type Result struct {
	URL         string        `json:"url"`
	StatusCode  int           `json:"status_code,omitempty"`
	ContentType string        `json:"content_type,omitempty"`
	Duration    time.Duration `json:"-"`
	Body        []byte        `json:"-"`
	Diagnostic  *Diagnostic   `json:"diagnostic,omitempty"`
}

// OK reports whether the fetch produced usable feed data.
func (r *Result) OK() bool {
	return r.Diagnostic == nil
}

// Diagnostic describes a failed fetch in terms a caller can act on.
type Diagnostic struct {
	Status      int    `json:"status,omitempty"`
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	Suggestion  string `json:"suggestion,omitempty"`
	BodySnippet string `json:"body_snippet,omitempty"`
}

// FetchRoute GETs a single route from the instance. path is normalized to a
// leading slash; params become the query string with repeated keys kept.
// Network failures and HTTP statuses of 400 and above come back as a Result
// carrying a Diagnostic, not as an error. The error return is reserved for
// requests that cannot be constructed at all.
func (c *Client) FetchRoute(ctx context.Context, path string, params url.Values) (*Result, error) {
	target := c.base + normalizePath(path)
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", target, err)
	}
	req.Header.Set("User-Agent", config.UserAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("feed fetch failed", slog.String("url", target), slog.String("error", err.Error()))
		return c.unreachable(target, fmt.Sprintf("request failed: %v", err), time.Since(start)), nil
	}
	defer resp.Body.Close()

	limitedReader := io.LimitReader(resp.Body, config.MaxResponseBytes+1)
	body, err := io.ReadAll(limitedReader)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("feed body read failed", slog.String("url", target), slog.String("error", err.Error()))
		return c.unreachable(target, fmt.Sprintf("reading response body failed: %v", err), duration), nil
	}
	if int64(len(body)) > config.MaxResponseBytes {
		return c.unreachable(target, fmt.Sprintf("response exceeds the %d byte cap", config.MaxResponseBytes), duration), nil
	}
	if resp.StatusCode >= 600 {
		return c.unreachable(target, fmt.Sprintf("instance returned invalid status %d", resp.StatusCode), duration), nil
	}

	result := &Result{
		URL:         target,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Duration:    duration,
		Body:        body,
	}
	if resp.StatusCode >= 400 {
		result.Diagnostic = c.classify(resp.StatusCode, result.ContentType, body)
		c.logger.Warn("feed fetch returned error status",
			slog.String("url", target),
			slog.Int("status", resp.StatusCode),
			slog.String("kind", result.Diagnostic.Kind))
		return result, nil
	}

	c.logger.Debug("feed fetched",
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", duration))
	return result, nil
}

func (c *Client) unreachable(target, message string, duration time.Duration) *Result {
	return &Result{
		URL:      target,
		Duration: duration,
		Diagnostic: &Diagnostic{
			Kind:       KindUnavailable,
			Message:    message,
			Suggestion: "check that the instance is reachable and retry; slow routes can exceed the 60s timeout",
		},
	}
}

// classify maps an error status onto a category with remediation advice.
func (c *Client) classify(status int, contentType string, body []byte) *Diagnostic {
	d := &Diagnostic{Status: status}

	switch {
	case status == http.StatusNotFound:
		d.Kind = KindRouteNotFound
		d.Message = "the instance has no handler for this route (HTTP 404)"
		d.Suggestion = "use search_routes to discover valid route paths and compare with the route's example invocation"
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable:
		d.Kind = KindOverloaded
		if c.publicHost {
			d.Message = fmt.Sprintf("the public rsshub.app instance rejected the request (HTTP %d)", status)
			d.Suggestion = "rsshub.app rate-limits aggressively; retry later or self-host an instance and point RSSHUB_INSTANCE at it"
		} else {
			d.Message = fmt.Sprintf("the instance is overloaded or behind a failing proxy (HTTP %d)", status)
			d.Suggestion = "retry shortly and check the health of the configured instance"
		}
	case status == http.StatusInternalServerError:
		d.Kind = KindInternalError
		d.Message = "the route handler failed on the instance (HTTP 500)"
		d.Suggestion = "verify the route parameters; the route may also be broken upstream"
	default:
		d.Kind = KindUpstreamError
		d.Message = fmt.Sprintf("the instance returned HTTP %d", status)
		d.Suggestion = "inspect the response snippet for details"
	}

	if isTextual(contentType, body) {
		d.BodySnippet = snippet(body, config.SnippetLimit)
	}
	return d
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// isTextual decides whether a response body is safe to quote in a
// diagnostic. An absent content type falls back to sniffing the bytes.
func isTextual(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "text/"):
		return true
	case strings.Contains(ct, "json"), strings.Contains(ct, "xml"), strings.Contains(ct, "html"):
		return true
	case ct == "":
		return len(body) > 0 && utf8.Valid(body) && bytes.IndexByte(body, 0) < 0
	default:
		return false
	}
}

// snippet truncates body to at most limit characters, never splitting a rune.
func snippet(body []byte, limit int) string {
	runes := []rune(string(body))
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes)
}
