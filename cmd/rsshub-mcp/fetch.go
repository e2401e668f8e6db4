// ABOUTME: Fetch command for retrieving feeds from the configured instance
// ABOUTME: Handles single-route fetch or batch fetch of all subscriptions with colored output

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/rsshub-mcp/internal/config"
	"github.com/harper/rsshub-mcp/internal/fetcher"
	"github.com/harper/rsshub-mcp/internal/models"
	"github.com/harper/rsshub-mcp/internal/parse"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [route]",
	Short: "Fetch a route or all subscriptions",
	Long: `Fetch feed content from the configured RSSHub instance.

With a route argument, fetches that single route and shows an item preview.
Without one, fetches every saved subscription concurrently; individual
failures are reported inline and never abort the batch.

Query parameters are passed with -p key=value and override each
subscription's stored defaults key by key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("param")
		render, _ := cmd.Flags().GetBool("render")

		params, err := parseParams(pairs)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			return fetchOne(cmd, args[0], params, render)
		}
		return fetchAll(cmd, params)
	},
}

func fetchOne(cmd *cobra.Command, route string, params map[string]any, render bool) error {
	result, err := fetchClient.FetchRoute(cmd.Context(), route, fetcher.Values(params))
	if err != nil {
		return err
	}

	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	if !result.OK() {
		d := result.Diagnostic
		fmt.Printf("%s %s\n", red("x"), d.Message)
		if d.Suggestion != "" {
			fmt.Printf("  %s\n", faint(d.Suggestion))
		}
		return errors.New("fetch failed")
	}

	feed, err := parse.Parse(result.Body)
	if err != nil {
		fmt.Printf("Fetched %s (%d bytes) but the response is not a parseable feed: %v\n",
			result.URL, len(result.Body), err)
		return nil
	}
	preview := feed.Preview(config.PreviewItemLimit, config.SnippetLimit)

	if render {
		out, err := renderPreview(preview)
		if err != nil {
			return fmt.Errorf("failed to render preview: %w", err)
		}
		fmt.Print(out)
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("%s %s\n", bold(preview.Title), faint(fmt.Sprintf("(%d items, %s)", preview.ItemCount, result.Duration.Round(time.Millisecond))))
	for _, item := range preview.Items {
		printItem(item, faint)
	}
	return nil
}

func fetchAll(cmd *cobra.Command, params map[string]any) error {
	subs, err := subStore.List()
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		fmt.Println("No subscriptions found. Add one with 'rsshub-mcp subscribe <route>'")
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	succeeded := 0
	failed := 0
	for _, item := range fetchClient.FetchSubscriptions(cmd.Context(), subs, params) {
		name := subscriptionDisplayName(item.Subscription)
		if !item.Result.OK() {
			fmt.Printf("%s %s: %s\n", red("x"), name, item.Result.Diagnostic.Message)
			failed++
			continue
		}

		succeeded++
		feed, err := parse.Parse(item.Result.Body)
		if err != nil {
			fmt.Printf("%s %s %s\n", green("v"), name, faint("(not a parseable feed)"))
			continue
		}
		fmt.Printf("%s %s %s\n", green("v"), name, faint(fmt.Sprintf("(%d items)", len(feed.Items))))
	}

	fmt.Println()
	fmt.Printf("Summary: %d subscription(s) fetched\n", len(subs))
	if succeeded > 0 {
		fmt.Printf("  %s %d ok\n", green("v"), succeeded)
	}
	if failed > 0 {
		fmt.Printf("  %s %d failed\n", red("x"), failed)
	}
	return nil
}

// printItem writes one preview item line with its age and link.
func printItem(item parse.PreviewItem, faint func(a ...interface{}) string) {
	age := ""
	if item.Published != "" {
		if t, err := time.Parse(time.RFC3339, item.Published); err == nil {
			age = faint(" " + humanize.Time(t))
		}
	}
	fmt.Printf("  %s%s\n", item.Title, age)
	if item.Link != "" {
		fmt.Printf("    %s\n", faint(item.Link))
	}
}

// renderPreview lays the preview out as Markdown and renders it with glamour.
func renderPreview(p parse.Preview) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	for _, item := range p.Items {
		fmt.Fprintf(&b, "## %s\n\n", item.Title)
		if item.Published != "" {
			if t, err := time.Parse(time.RFC3339, item.Published); err == nil {
				fmt.Fprintf(&b, "*%s*\n\n", humanize.Time(t))
			}
		}
		if item.Summary != "" {
			fmt.Fprintf(&b, "%s\n\n", item.Summary)
		}
		if item.Link != "" {
			fmt.Fprintf(&b, "[%s](%s)\n\n", item.Link, item.Link)
		}
	}
	return glamour.Render(b.String(), "dark")
}

// parseParams converts repeated key=value flags into fetch parameters.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

// subscriptionDisplayName returns a human-readable name for the subscription.
func subscriptionDisplayName(sub models.Subscription) string {
	if sub.Name != "" {
		return sub.Name
	}
	return sub.Route
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringArrayP("param", "p", nil, "query parameter as key=value (repeatable)")
	fetchCmd.Flags().Bool("render", false, "render the item previews as Markdown in the terminal")
}
