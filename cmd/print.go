/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/seckatie/launchwatch/internal/core/spacex"
)

func printLaunchSummary(w io.Writer, l spacex.LaunchSummary) {
	local := l.DateUTC.Local()
	fmt.Fprintf(w, "Name: %s\n", l.Name)
	fmt.Fprintf(w, "  Launch Date: %s\n", local.Format("1/2/2006"))
	fmt.Fprintf(w, "  Launch Time: %s\n", local.Format("3:04:05 PM"))
	if l.PatchImageURL != "" {
		fmt.Fprintf(w, "  Patch: %s\n", l.PatchImageURL)
	}
	fmt.Fprintf(w, "  ID: %s\n", l.ID)
}

func printLaunchDetail(w io.Writer, d spacex.LaunchDetail, elapsed spacex.Elapsed) {
	fmt.Fprintf(w, "%s [%s]\n", d.Name, d.StatusLabel())
	fmt.Fprintf(w, "  Launched: %s\n", d.DateUTC.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "  Elapsed time since launch: %s\n", elapsed)
	if d.PatchImageURL != "" {
		fmt.Fprintf(w, "  Patch: %s\n", d.PatchImageURL)
	}
	fmt.Fprintf(w, "  ID: %s\n", d.ID)
}
