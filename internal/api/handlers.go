// ABOUTME: HTTP handlers for the read-only debug API
// ABOUTME: JSON views over the route catalog, the subscription store, and single-route fetches

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/harper/rsshub-mcp/internal/catalog"
	"github.com/harper/rsshub-mcp/internal/config"
	"github.com/harper/rsshub-mcp/internal/fetcher"
	"github.com/harper/rsshub-mcp/internal/models"
	"github.com/harper/rsshub-mcp/internal/parse"
	"github.com/harper/rsshub-mcp/internal/search"
	"github.com/harper/rsshub-mcp/internal/store"
)

// Handler holds the debug API route handlers.
type Handler struct {
	cache   *catalog.Cache
	store   *store.Store
	fetcher *fetcher.Client
	logger  *slog.Logger
}

// NewHandler creates a Handler over the shared catalog cache, store, and
// fetch client.
func NewHandler(cache *catalog.Cache, st *store.Store, fc *fetcher.Client, logger *slog.Logger) *Handler {
	return &Handler{cache: cache, store: st, fetcher: fc, logger: logger}
}

type searchResponse struct {
	Query  string         `json:"query"`
	Count  int            `json:"count"`
	Routes []models.Route `json:"routes"`
}

type subscriptionsResponse struct {
	Count         int                   `json:"count"`
	Subscriptions []models.Subscription `json:"subscriptions"`
}

// feedResponse mirrors a fetch outcome without the raw body; fetch the route
// from the instance directly when the full payload is needed.
type feedResponse struct {
	URL         string              `json:"url"`
	Status      int                 `json:"status,omitempty"`
	ContentType string              `json:"content_type,omitempty"`
	DurationMS  int64               `json:"duration_ms"`
	BodyBytes   int                 `json:"body_bytes"`
	Preview     *parse.Preview      `json:"preview,omitempty"`
	ParseNote   string              `json:"parse_note,omitempty"`
	Diagnostic  *fetcher.Diagnostic `json:"diagnostic,omitempty"`
}

// SearchRoutes handles GET /api/routes/search?q=<keyword>.
func (h *Handler) SearchRoutes(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("q is required"))
		return
	}

	routes, err := h.cache.Routes(r.Context())
	if err != nil {
		h.logger.Error("catalog fetch failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("route catalog is unavailable"))
		return
	}

	matches := search.Filter(routes, query, config.SearchResultLimit)
	if matches == nil {
		matches = []models.Route{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Count: len(matches), Routes: matches})
}

// ListSubscriptions handles GET /api/subscriptions.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, _ *http.Request) {
	subs, err := h.store.List()
	if err != nil {
		h.logger.Error("subscription list failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to load subscriptions"))
		return
	}
	writeJSON(w, http.StatusOK, subscriptionsResponse{Count: len(subs), Subscriptions: subs})
}

// Feed handles GET /api/feed?route=<path>. Query parameters other than route
// pass through to the instance.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	route := strings.TrimSpace(params.Get("route"))
	if route == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("route is required"))
		return
	}
	params.Del("route")

	result, err := h.fetcher.FetchRoute(r.Context(), route, params)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}

	resp := feedResponse{
		URL:         result.URL,
		Status:      result.StatusCode,
		ContentType: result.ContentType,
		DurationMS:  result.Duration.Milliseconds(),
		BodyBytes:   len(result.Body),
		Diagnostic:  result.Diagnostic,
	}
	if !result.OK() {
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}

	if feed, err := parse.Parse(result.Body); err != nil {
		resp.ParseNote = fmt.Sprintf("response is not a parseable feed: %v", err)
	} else {
		preview := feed.Preview(config.PreviewItemLimit, config.SnippetLimit)
		resp.Preview = &preview
	}
	writeJSON(w, http.StatusOK, resp)
}
