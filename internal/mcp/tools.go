// ABOUTME: MCP tool definitions and handlers for route discovery, subscriptions, and fetching
// ABOUTME: Adapts tool calls into catalog lookups, store operations, and instance HTTP requests

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/rsshub-mcp/internal/config"
	"github.com/harper/rsshub-mcp/internal/fetcher"
	"github.com/harper/rsshub-mcp/internal/models"
	"github.com/harper/rsshub-mcp/internal/parse"
	"github.com/harper/rsshub-mcp/internal/search"
)

// Type definitions for input/output structures

type GetFeedInput struct {
	Route  string         `json:"route,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

type SearchRoutesInput struct {
	Query string `json:"query"`
}

type SubscribeInput struct {
	Route  string         `json:"route"`
	Name   string         `json:"name,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

type UnsubscribeInput struct {
	ID    string `json:"id,omitempty"`
	Route string `json:"route,omitempty"`
}

// FeedPayload is the JSON body returned for a feed fetch. Diagnostic is set
// instead of Preview/Body when the fetch failed.
type FeedPayload struct {
	URL         string              `json:"url"`
	Status      int                 `json:"status,omitempty"`
	ContentType string              `json:"content_type,omitempty"`
	DurationMS  int64               `json:"duration_ms"`
	BodyBytes   int                 `json:"body_bytes"`
	Preview     *parse.Preview      `json:"preview,omitempty"`
	ParseNote   string              `json:"parse_note,omitempty"`
	Body        string              `json:"body,omitempty"`
	Diagnostic  *fetcher.Diagnostic `json:"diagnostic,omitempty"`
}

type SubscribeOutput struct {
	Created      bool                `json:"created"`
	Message      string              `json:"message"`
	Subscription models.Subscription `json:"subscription"`
}

type UnsubscribeOutput struct {
	Removed int    `json:"removed"`
	Message string `json:"message"`
}

// AggregateItem is one subscription's outcome within an aggregate fetch.
type AggregateItem struct {
	Subscription models.Subscription `json:"subscription"`
	OK           bool                `json:"ok"`
	Feed         *FeedPayload        `json:"feed"`
}

type AggregateOutput struct {
	Count     int             `json:"count"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Items     []AggregateItem `json:"items"`
	Message   string          `json:"message,omitempty"`
}

// Tool registration

func (s *Server) registerTools() {
	s.registerGetFeedTool()
	s.registerSearchRoutesTool()
	s.registerSubscribeTool()
	s.registerUnsubscribeTool()
	s.registerListSubscriptionsTool()
}

func (s *Server) registerGetFeedTool() {
	tool := mcp.Tool{
		Name:        "get_feed",
		Description: "Fetch feed content from the configured RSSHub instance. With a route, fetches that single route and returns the feed body plus a structured preview of its items. Without a route, fetches every saved subscription concurrently and returns per-subscription results; individual failures are reported inline and never abort the batch. Use search_routes first to discover valid route paths.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"route": map[string]interface{}{
					"type":        "string",
					"description": "RSSHub route path with concrete parameter values filled in. Example: '/github/issue/golang/go'. Omit to fetch all subscriptions instead.",
				},
				"params": map[string]interface{}{
					"type":        "object",
					"description": "Optional query parameters appended to the request, e.g. {\"limit\": 10, \"mode\": \"fulltext\"}. When fetching subscriptions, these override each subscription's stored defaults key by key.",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetFeed)
}

func (s *Server) registerSearchRoutesTool() {
	tool := mcp.Tool{
		Name:        "search_routes",
		Description: "Search the RSSHub route catalog by keyword. Matches against namespace, route name, path, description, website URL, and category tags, case-insensitively. Returns a Markdown list of matching routes with their path patterns, parameter docs, and example invocations. The catalog is fetched from the instance and cached for a day. Use this before get_feed or subscribe to find the right route path.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Keyword to search for. Works best with a site or service name. Example: 'github', 'bilibili', 'telegram'",
				},
			},
			Required: []string{"query"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleSearchRoutes)
}

func (s *Server) registerSubscribeTool() {
	tool := mcp.Tool{
		Name:        "subscribe",
		Description: "Save an RSSHub route as a subscription so get_feed without arguments includes it. Optionally attach a display name and default query parameters applied on every fetch. Subscribing to an already-saved route is a no-op that returns the existing record. Routes are stored as given (after normalizing the leading slash); fill parameter placeholders with concrete values first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"route": map[string]interface{}{
					"type":        "string",
					"description": "Route path with concrete parameter values. Example: '/bilibili/user/video/2267573'",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Optional human-readable label for the subscription. Example: 'bilibili uploads'",
				},
				"params": map[string]interface{}{
					"type":        "object",
					"description": "Optional default query parameters stored with the subscription and applied on every fetch. Example: {\"limit\": 20}",
				},
			},
			Required: []string{"route"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleSubscribe)
}

func (s *Server) registerUnsubscribeTool() {
	tool := mcp.Tool{
		Name:        "unsubscribe",
		Description: "Remove a saved subscription by its id or by its exact route path. At least one selector is required; when both are given, id takes precedence and route is ignored. Returns the number of removed records, which is 0 when nothing matched. Use list_subscriptions to look up ids and routes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Subscription id as shown by list_subscriptions. Example: 'abc12345-1234-1234-1234-123456789abc'",
				},
				"route": map[string]interface{}{
					"type":        "string",
					"description": "Exact route path of the subscription to remove. Example: '/github/issue/golang/go'",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleUnsubscribe)
}

func (s *Server) registerListSubscriptionsTool() {
	tool := mcp.Tool{
		Name:        "list_subscriptions",
		Description: "List all saved subscriptions with their ids, routes, display names, stored default parameters, and creation times. Use this to see what get_feed without arguments will fetch, or to find the id/route needed by unsubscribe.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListSubscriptions)
}

// Handler implementations

func (s *Server) handleGetFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GetFeedInput
	if err := req.BindArguments(&input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input: %v", err)), nil
	}

	if strings.TrimSpace(input.Route) == "" {
		return s.fetchAllSubscriptions(ctx, input.Params)
	}

	result, err := s.fetcher.FetchRoute(ctx, strings.TrimSpace(input.Route), fetcher.Values(input.Params))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := buildFeedPayload(result, true)
	jsonBytes, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}

	if !result.OK() {
		return mcp.NewToolResultError(string(jsonBytes)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// fetchAllSubscriptions is the aggregate form of get_feed. Per-item failures
// are data, not a tool error: the result carries them inline so one broken
// route never masks the feeds that worked.
func (s *Server) fetchAllSubscriptions(ctx context.Context, override map[string]any) (*mcp.CallToolResult, error) {
	subs, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load subscriptions: %v", err)), nil
	}

	output := AggregateOutput{Items: make([]AggregateItem, 0, len(subs))}
	if len(subs) == 0 {
		output.Message = "no subscriptions saved; use subscribe to add routes, or pass a route to fetch one directly"
	}

	for _, item := range s.fetcher.FetchSubscriptions(ctx, subs, override) {
		ok := item.Result.OK()
		if ok {
			output.Succeeded++
		} else {
			output.Failed++
		}
		// Bodies are omitted in aggregate results; previews carry the items.
		output.Items = append(output.Items, AggregateItem{
			Subscription: item.Subscription,
			OK:           ok,
			Feed:         buildFeedPayload(item.Result, false),
		})
	}
	output.Count = len(output.Items)

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleSearchRoutes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SearchRoutesInput
	if err := req.BindArguments(&input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input: %v", err)), nil
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return mcp.NewToolResultError("query is required; pass a keyword like 'github' or 'bilibili'"), nil
	}

	routes, err := s.cache.Routes(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("route catalog is unavailable: %v; check that the instance is reachable and retry", err)), nil
	}

	matches := search.Filter(routes, query, config.SearchResultLimit)
	return mcp.NewToolResultText(formatRoutesMarkdown(query, matches)), nil
}

func (s *Server) handleSubscribe(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SubscribeInput
	if err := req.BindArguments(&input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input: %v", err)), nil
	}

	if strings.TrimSpace(input.Route) == "" {
		return mcp.NewToolResultError("route is required; use search_routes to find route paths"), nil
	}

	sub, created, err := s.store.Subscribe(input.Route, strings.TrimSpace(input.Name), fetcher.StringParams(input.Params))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save subscription: %v", err)), nil
	}

	output := SubscribeOutput{Created: created, Subscription: sub}
	if created {
		output.Message = fmt.Sprintf("subscribed to %s", sub.Route)
	} else {
		output.Message = fmt.Sprintf("already subscribed to %s; existing record returned unchanged", sub.Route)
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleUnsubscribe(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input UnsubscribeInput
	if err := req.BindArguments(&input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input: %v", err)), nil
	}

	id := strings.TrimSpace(input.ID)
	route := strings.TrimSpace(input.Route)
	if id == "" && route == "" {
		return mcp.NewToolResultError("provide id or route; id takes precedence when both are given"), nil
	}

	removed, err := s.store.Unsubscribe(id, route)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove subscription: %v", err)), nil
	}

	output := UnsubscribeOutput{Removed: removed}
	if removed == 0 {
		output.Message = "no matching subscription; list_subscriptions shows current ids and routes"
	} else {
		output.Message = fmt.Sprintf("removed %d subscription(s)", removed)
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListSubscriptions(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subs, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load subscriptions: %v", err)), nil
	}
	return mcp.NewToolResultText(formatSubscriptionsMarkdown(subs)), nil
}

// Output formatting

// buildFeedPayload converts a fetch result into the tool payload. The raw
// body is only attached when includeBody is set; aggregate results skip it
// to keep batch output bounded.
func buildFeedPayload(result *fetcher.Result, includeBody bool) *FeedPayload {
	payload := &FeedPayload{
		URL:         result.URL,
		Status:      result.StatusCode,
		ContentType: result.ContentType,
		DurationMS:  result.Duration.Milliseconds(),
		BodyBytes:   len(result.Body),
		Diagnostic:  result.Diagnostic,
	}
	if !result.OK() {
		return payload
	}

	if includeBody {
		payload.Body = string(result.Body)
	}

	feed, err := parse.Parse(result.Body)
	if err != nil {
		payload.ParseNote = fmt.Sprintf("response is not a parseable feed: %v", err)
		return payload
	}
	preview := feed.Preview(config.PreviewItemLimit, config.SnippetLimit)
	payload.Preview = &preview
	return payload
}

func formatRoutesMarkdown(query string, routes []models.Route) string {
	if len(routes) == 0 {
		return fmt.Sprintf("No routes match %q. Try a broader keyword, such as the site's domain name without the TLD.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Routes matching %q\n\n", query)
	if len(routes) >= config.SearchResultLimit {
		fmt.Fprintf(&b, "Showing the first %d matches; narrow the query for more specific results.\n\n", len(routes))
	}

	for _, route := range routes {
		name := route.Name
		if name == "" {
			name = route.FullPath()
		}
		fmt.Fprintf(&b, "## %s: %s\n", route.Namespace, name)
		fmt.Fprintf(&b, "- Route: `%s`\n", route.FullPath())
		if route.Example != "" {
			fmt.Fprintf(&b, "- Example: `%s`\n", route.Example)
		}
		if route.Description != "" {
			fmt.Fprintf(&b, "- Description: %s\n", route.Description)
		}
		for _, key := range sortedKeys(route.Parameters) {
			fmt.Fprintf(&b, "- Parameter `%s`: %s\n", key, route.Parameters[key])
		}
		if route.URL != "" {
			fmt.Fprintf(&b, "- Website: %s\n", route.URL)
		}
		b.WriteString("\n")
	}

	b.WriteString("Replace `:placeholders` in a route with concrete values, then fetch it with get_feed or save it with subscribe.")
	return b.String()
}

func formatSubscriptionsMarkdown(subs []models.Subscription) string {
	if len(subs) == 0 {
		return "No subscriptions yet. Use search_routes to discover routes and subscribe to save them."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Subscriptions (%d)\n\n", len(subs))
	for _, sub := range subs {
		label := sub.Name
		if label == "" {
			label = sub.Route
		}
		fmt.Fprintf(&b, "## %s\n", label)
		fmt.Fprintf(&b, "- id: `%s`\n", sub.ID)
		fmt.Fprintf(&b, "- route: `%s`\n", sub.Route)
		for _, key := range sortedKeys(sub.Params) {
			fmt.Fprintf(&b, "- param `%s`: %s\n", key, sub.Params[key])
		}
		fmt.Fprintf(&b, "- created: %s\n\n", sub.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))
	}

	b.WriteString("Fetch them all with get_feed (no arguments), or remove one with unsubscribe.")
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
