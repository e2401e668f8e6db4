// ABOUTME: MCP prompt definitions and handlers
// ABOUTME: Provides workflow templates for discovering routes and triaging fetched feeds

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.registerFindFeedsPrompt()
	s.registerFeedTriagePrompt()
}

func (s *Server) registerFindFeedsPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "find-feeds",
			Description: "Discover RSSHub routes for a topic or site and turn the good ones into subscriptions",
			Arguments: []mcp.PromptArgument{
				{
					Name:        "topic",
					Description: "Topic, site, or service to find feeds for (e.g. 'github', 'bilibili', 'hacker news')",
					Required:    true,
				},
			},
		},
		s.handleFindFeeds,
	)
}

//nolint:funlen // Prompt handlers contain large template strings
func (s *Server) handleFindFeeds(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := ""
	if req.Params.Arguments != nil {
		topic = req.Params.Arguments["topic"]
	}
	if topic == "" {
		topic = "the topic you care about"
	}

	template := fmt.Sprintf(`# Find Feeds: %s

## Overview
Turn "%s" into working feed subscriptions. RSSHub generates feeds for sites
that do not publish their own, addressed by route paths like
'/github/issue/golang/go'. The catalog of routes is searchable; the workflow
below finds candidate routes, verifies they return content, and saves the
keepers.

## Workflow Steps

### Step 1: Search the route catalog
Call search_routes with a focused keyword.

- Start with the site or service name: search_routes(query="%s")
- Results show the route pattern, its parameters, and an example invocation
- If nothing matches, try a shorter keyword or the site's domain without the TLD

### Step 2: Pick routes and fill their parameters
Route patterns contain ':placeholder' segments that need concrete values.

- Compare the pattern with its example: '/user/video/:uid' with example
  '/bilibili/user/video/2267573' shows :uid is a numeric user id
- Parameter docs in the search output explain each placeholder
- Build the full route with every placeholder replaced

### Step 3: Verify each candidate with get_feed
Fetch the filled-in route once before saving it.

- get_feed(route="/github/issue/golang/go")
- A preview with items means the route works
- A 404 diagnostic means the path is wrong: re-check against search_routes
- A 5xx diagnostic usually means the instance is overloaded or the route is
  broken upstream; retry once before discarding the candidate

### Step 4: Subscribe to the keepers
Save the verified routes so they are fetched together later.

- subscribe(route="...", name="a short label")
- Attach default query parameters when the route supports them, e.g.
  subscribe(route="...", params={"limit": 20})
- Subscribing twice to the same route is harmless; the existing record is
  returned unchanged

### Step 5: Confirm the subscription set
- list_subscriptions shows everything that was saved
- get_feed with no arguments fetches them all as a final check

## Tips
- Prefer routes whose example invocations are close to what you need
- Keep subscription names short; they become feed labels in batch results
`, topic, topic, topic)

	return &mcp.GetPromptResult{
		Description: "Route discovery and subscription workflow",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}

func (s *Server) registerFeedTriagePrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "feed-triage",
			Description: "Fetch all subscriptions, summarize what is new, and repair or remove broken routes",
			Arguments: []mcp.PromptArgument{
				{
					Name:        "focus",
					Description: "Optional topic to prioritize when summarizing (e.g. 'releases', 'security')",
					Required:    false,
				},
			},
		},
		s.handleFeedTriage,
	)
}

//nolint:funlen // Prompt handlers contain large template strings
func (s *Server) handleFeedTriage(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := "everything"
	if req.Params.Arguments != nil {
		if f, ok := req.Params.Arguments["focus"]; ok && f != "" {
			focus = f
		}
	}

	template := fmt.Sprintf(`# Feed Triage

## Overview
Fetch every subscription, report what is new with priority given to %s, and
deal with routes that failed. Aggregate fetches never abort on a single bad
route: failures arrive inline, per subscription, next to the feeds that
worked.

## Workflow Steps

### Step 1: Fetch everything
Call get_feed with no arguments.

- Each subscription returns ok=true with a preview, or ok=false with a
  diagnostic
- The summary counts (succeeded/failed) tell you how much triage is needed

### Step 2: Summarize the successes
Walk the previews of the items that fetched cleanly.

- Group by subscription name and highlight items relevant to %s
- Use each item's published timestamp to call out what is actually new
- Skip boilerplate items; previews cap content, so link the item URL for
  anything worth reading in full

### Step 3: Triage the failures
Read each failing item's diagnostic; the kind field says what to do.

- route_not_found: the saved route path no longer exists. Re-run
  search_routes for the site, find the replacement pattern, subscribe to the
  corrected route, and unsubscribe the dead one.
- upstream_overloaded: the instance rejected the request (rate limiting on
  the public rsshub.app deployment is the usual cause). Nothing is wrong with
  the subscription; retry later or switch RSSHUB_INSTANCE to a self-hosted
  deployment.
- upstream_internal_error: the route handler crashed. Check the
  subscription's stored parameters first; if they look right the route is
  likely broken upstream, so retry tomorrow before removing it.
- upstream_unavailable: the instance could not be reached at all. Verify the
  configured instance URL before touching any subscriptions.

### Step 4: Clean up
- unsubscribe(id="...") for routes confirmed dead
- subscribe replacements found in Step 3
- list_subscriptions to confirm the final set

## Output Format
Present the triage as three short sections: New Content (grouped by
subscription), Failures (route, diagnosis, action taken), and Subscription
Changes.
`, focus, focus)

	return &mcp.GetPromptResult{
		Description: "Aggregate fetch triage workflow",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}
