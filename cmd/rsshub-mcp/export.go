// ABOUTME: Export command for writing subscriptions as an OPML document
// ABOUTME: Builds concrete instance URLs and groups feeds by namespace folder

package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/rsshub-mcp/internal/models"
	"github.com/harper/rsshub-mcp/internal/opml"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export subscriptions as OPML",
	Long: `Export the subscription set as an OPML document.

Each subscription becomes a feed entry whose URL points at the configured
instance with its stored parameters as the query string, so any feed reader
can consume the export directly. Feeds are grouped into folders by
namespace. Writes to stdout unless a file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subs, err := subStore.List()
		if err != nil {
			return fmt.Errorf("failed to list subscriptions: %w", err)
		}

		doc := opml.NewDocument("rsshub-mcp subscriptions")
		for _, sub := range subs {
			doc.AddFeed(subscriptionURL(cfg.Instance, sub), subscriptionDisplayName(sub), routeNamespace(sub.Route))
		}

		if len(args) == 1 {
			if err := doc.WriteFile(args[0]); err != nil {
				return fmt.Errorf("failed to write OPML file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d subscription(s) to %s\n", len(subs), args[0])
			return nil
		}
		return doc.Write(os.Stdout)
	},
}

// subscriptionURL builds the concrete feed URL a reader would poll for this
// subscription: instance base plus route plus stored params.
func subscriptionURL(base string, sub models.Subscription) string {
	target := strings.TrimRight(base, "/") + sub.Route
	if len(sub.Params) > 0 {
		values := url.Values{}
		for key, value := range sub.Params {
			values.Set(key, value)
		}
		target += "?" + values.Encode()
	}
	return target
}

// routeNamespace extracts the namespace from a route path, the first
// segment of "/github/issue/golang/go".
func routeNamespace(route string) string {
	route = strings.TrimPrefix(route, "/")
	if i := strings.IndexByte(route, '/'); i >= 0 {
		return route[:i]
	}
	return route
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
