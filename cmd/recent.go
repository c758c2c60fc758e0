/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/seckatie/launchwatch/internal/core/dashboard"
	"github.com/spf13/cobra"
)

// recentCmd represents the recent command
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Print the three most recent past launches, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecent(cmd)
	},
}

// runRecent prints the recent launches. A failed fetch is logged and prints
// an empty list, the same fallback the dashboard uses.
func runRecent(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c := dashboard.NewController(newClient(cfg))
	if err := c.LoadRecent(cmd.Context()); err != nil {
		log.Printf("Recent launches unavailable: %v", err)
	}

	out := cmd.OutOrStdout()
	launches := c.Snapshot().RecentNewestFirst()
	if len(launches) == 0 {
		fmt.Fprintln(out, "No recent launches.")
		return nil
	}
	fmt.Fprintln(out, "Past Launches")
	for _, l := range launches {
		printLaunchSummary(out, l)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
