// ABOUTME: Unsubscribe command for removing saved subscriptions
// ABOUTME: Selects by subscription id or exact route path

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe",
	Short: "Remove a saved subscription",
	Long: `Remove a subscription by its id or by its exact route path.

At least one selector is required; when both are given, --id wins and
--route is ignored. Use 'list' to look up ids and routes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		route, _ := cmd.Flags().GetString("route")

		if id == "" && route == "" {
			return errors.New("provide --id or --route")
		}

		removed, err := subStore.Unsubscribe(id, route)
		if err != nil {
			return fmt.Errorf("failed to remove subscription: %w", err)
		}

		if removed == 0 {
			fmt.Println("No matching subscription. 'rsshub-mcp list' shows current ids and routes.")
			return nil
		}
		fmt.Printf("Removed %d subscription(s)\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unsubscribeCmd)
	unsubscribeCmd.Flags().String("id", "", "subscription id to remove")
	unsubscribeCmd.Flags().String("route", "", "exact route path to remove")
}
