// ABOUTME: List command for viewing saved subscriptions
// ABOUTME: Displays id, route, stored parameters, and age using color formatting

package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List saved subscriptions",
	Long:    "List saved subscriptions with their ids, routes, default parameters, and age",
	RunE: func(cmd *cobra.Command, args []string) error {
		subs, err := subStore.List()
		if err != nil {
			return fmt.Errorf("failed to list subscriptions: %w", err)
		}

		if len(subs) == 0 {
			fmt.Println("No subscriptions found. Add one with 'rsshub-mcp subscribe <route>'")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		for _, sub := range subs {
			// ID (first 8 chars, faint)
			idShort := sub.ID
			if len(idShort) > 8 {
				idShort = idShort[:8]
			}
			fmt.Print(faint(idShort))
			fmt.Print(" ")

			if sub.Name != "" {
				fmt.Printf("%s ", bold(sub.Name))
			}
			fmt.Print(sub.Route)

			if len(sub.Params) > 0 {
				keys := make([]string, 0, len(sub.Params))
				for key := range sub.Params {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				pairs := ""
				for i, key := range keys {
					if i > 0 {
						pairs += " "
					}
					pairs += key + "=" + sub.Params[key]
				}
				fmt.Printf(" %s", faint("["+pairs+"]"))
			}

			fmt.Printf(" %s", faint(humanize.Time(sub.CreatedAt)))
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
