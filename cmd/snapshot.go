/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/

// The snapshot command captures a running dashboard into a single HTML file.
//
// Features:
//   - Renders the page in Chrome/Chromium so the lazily loaded launch list is present.
//   - Waits for a CSS selector before capture (the launch cards by default).
//   - Inlines the stylesheet and launch patch images and strips scripts.
//   - Formats the resulting HTML.
//
// Example usage:
//
//	launchwatch snapshot --url=http://localhost:8080/ --out=dashboard.html
//	launchwatch snapshot --timeout=60s --chrome-path="/path/to/chrome" --headful
package cmd

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/seckatie/launchwatch/internal/core/snapshot"
	"github.com/spf13/cobra"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:          "snapshot",
	Short:        "Capture a running dashboard into a self-contained HTML file",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSnapshot(cmd)
	},
}

// runSnapshot is the main function for the snapshot command.
func runSnapshot(cmd *cobra.Command) error {
	url, err := cmd.Flags().GetString("url")
	if err != nil {
		return fmt.Errorf("failed to read --url: %w", err)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to read --out: %w", err)
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return fmt.Errorf("failed to read --timeout: %w", err)
	}
	waitSelector, err := cmd.Flags().GetString("wait-selector")
	if err != nil {
		return fmt.Errorf("failed to read --wait-selector: %w", err)
	}
	chromePath, err := cmd.Flags().GetString("chrome-path")
	if err != nil {
		return fmt.Errorf("failed to read --chrome-path: %w", err)
	}
	headful, err := cmd.Flags().GetBool("headful")
	if err != nil {
		return fmt.Errorf("failed to read --headful: %w", err)
	}

	if chromePath == "" && runtime.GOOS == "darwin" {
		// Best-effort default for macOS.
		chromePath = "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"
	}

	opts := snapshot.Options{
		ChromePath:   chromePath,
		Headless:     !headful,
		Timeout:      timeout,
		WaitSelector: waitSelector,
	}

	res, err := snapshot.WriteFile(cmd.Context(), url, outPath, opts)
	if err != nil {
		return err
	}
	if res.LaunchCards == 0 {
		log.Printf("Warning: snapshot of %s contains no launch cards", res.FinalURL)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%d launch cards) to %s\n", res.Title, res.LaunchCards, outPath)
	return nil
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().String("url", "http://localhost:8080/", "Dashboard URL to capture")
	snapshotCmd.Flags().StringP("out", "o", "launchwatch-snapshot.html", "Output file")
	snapshotCmd.Flags().Duration("timeout", 40*time.Second, "Capture timeout")
	snapshotCmd.Flags().String("wait-selector", snapshot.DefaultWaitSelector, `CSS selector to wait for before capture ("-" to skip)`)
	snapshotCmd.Flags().String("chrome-path", "", "Path to Chrome/Chromium executable")
	snapshotCmd.Flags().Bool("headful", false, "Run Chrome with a visible window (not headless)")
}
