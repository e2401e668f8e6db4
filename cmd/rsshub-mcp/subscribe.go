// ABOUTME: Subscribe command for saving RSSHub routes
// ABOUTME: Stores a route with an optional display name and default query parameters

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/rsshub-mcp/internal/fetcher"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <route>",
	Short: "Save a route as a subscription",
	Long: `Save an RSSHub route so 'fetch' without arguments includes it.

The route must have concrete parameter values filled in, e.g.
'/github/issue/golang/go'. Default query parameters given with -p are
stored and applied on every fetch. Subscribing to an already-saved route
returns the existing record unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		pairs, _ := cmd.Flags().GetStringArray("param")

		params, err := parseParams(pairs)
		if err != nil {
			return err
		}

		sub, created, err := subStore.Subscribe(args[0], name, fetcher.StringParams(params))
		if err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		if created {
			fmt.Printf("%s subscribed to %s %s\n", green("v"), sub.Route, faint("("+sub.ID[:8]+")"))
		} else {
			fmt.Printf("%s already subscribed to %s %s\n", faint("-"), sub.Route, faint("("+sub.ID[:8]+")"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
	subscribeCmd.Flags().StringP("name", "n", "", "display name for the subscription")
	subscribeCmd.Flags().StringArrayP("param", "p", nil, "default query parameter as key=value (repeatable)")
}
