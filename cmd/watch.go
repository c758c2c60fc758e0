/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/seckatie/launchwatch/internal/core/dashboard"
	"github.com/seckatie/launchwatch/internal/core/spacex"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:          "watch <launch-id>",
	Short:        "Look up a launch and print the elapsed time every second",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args[0])
	},
}

func runWatch(cmd *cobra.Command, id string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	detail, err := runLookup(cmd, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ticker := dashboard.NewElapsedTicker(detail.DateUTC)
	err = ticker.Run(ctx, func(e spacex.Elapsed) error {
		_, err := fmt.Fprintf(out, "Elapsed time since launch: %s\n", e)
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
