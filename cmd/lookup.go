/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/seckatie/launchwatch/internal/core"
	"github.com/seckatie/launchwatch/internal/core/dashboard"
	"github.com/seckatie/launchwatch/internal/core/spacex"
	"github.com/spf13/cobra"
)

// errLookupFailed is returned after the error banner has been printed.
var errLookupFailed = errors.New("lookup failed")

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:          "lookup <launch-id>",
	Short:        "Look up one launch by id and print its status and elapsed time",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runLookup(cmd, args[0])
		return err
	},
}

// runLookup submits id through a dashboard controller and prints the result
// card or the error banner.
func runLookup(cmd *cobra.Command, id string) (spacex.LaunchDetail, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return spacex.LaunchDetail{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	c := dashboard.NewController(newClient(cfg))
	state, err := c.Submit(cmd.Context(), id)
	if err != nil {
		return spacex.LaunchDetail{}, err
	}

	out := cmd.OutOrStdout()
	if state.ErrorVisible || state.Result == nil {
		fmt.Fprintln(out, core.LookupErrorMessage)
		return spacex.LaunchDetail{}, errLookupFailed
	}
	printLaunchDetail(out, *state.Result, state.Elapsed)
	return *state.Result, nil
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
