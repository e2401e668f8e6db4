// ABOUTME: Search command for discovering RSSHub routes from the terminal
// ABOUTME: Displays catalog matches with parameters and examples using color formatting

package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/rsshub-mcp/internal/config"
	"github.com/harper/rsshub-mcp/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the route catalog",
	Long: `Search the RSSHub route catalog by keyword.

Matches against namespace, route name, path, description, website, and
categories. The catalog is fetched from the configured instance and cached
for a day.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := routeCache.Routes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load route catalog: %w", err)
		}

		matches := search.Filter(routes, args[0], config.SearchResultLimit)
		if len(matches) == 0 {
			fmt.Printf("No routes match %q. Try a broader keyword.\n", args[0])
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		for _, route := range matches {
			name := route.Name
			if name == "" {
				name = route.Namespace
			}
			fmt.Printf("%s  %s\n", bold(route.FullPath()), name)
			if route.Example != "" {
				fmt.Printf("  %s %s\n", faint("example:"), cyan(route.Example))
			}
			if route.Description != "" {
				fmt.Printf("  %s\n", faint(route.Description))
			}
			if len(route.Parameters) > 0 {
				keys := make([]string, 0, len(route.Parameters))
				for key := range route.Parameters {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					fmt.Printf("  %s %s\n", faint(":"+key), route.Parameters[key])
				}
			}
			fmt.Println()
		}

		fmt.Printf("%d route(s)", len(matches))
		if len(matches) >= config.SearchResultLimit {
			fmt.Printf(" %s", faint("(capped; narrow the query for more)"))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
