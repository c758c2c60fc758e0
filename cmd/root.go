/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/seckatie/launchwatch/internal/config"
	"github.com/seckatie/launchwatch/internal/core"
	"github.com/seckatie/launchwatch/internal/core/dashboard"
	"github.com/seckatie/launchwatch/internal/core/spacex"
	"github.com/seckatie/launchwatch/internal/core/web"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "launchwatch",
	Short: "Dashboard for recent SpaceX launches",
	Long: `launchwatch serves a single page that lists the three most recent
past SpaceX launches and lets you look up any launch by its id, showing
its status and the time elapsed since it flew.

Run without a subcommand to start the web dashboard. The recent, lookup
and watch subcommands print the same data in the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sessions := dashboard.NewRegistry(newClient(cfg), cfg.Session.TTL)
		registerEventLogging(sessions)
		go sessions.Run(ctx, 0)

		if err := web.StartServer(ctx, cfg.Addr(), sessions); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("api-base", core.DefaultAPIBaseURL, "Base URL of the SpaceX API")
	rootCmd.PersistentFlags().Duration("api-timeout", core.DefaultAPITimeout, "Per-request timeout for API calls (0 = none)")
	rootCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	rootCmd.Flags().String("host", "localhost", "Host to listen on")
	rootCmd.Flags().Duration("session-ttl", dashboard.DefaultSessionTTL, "How long an idle dashboard page keeps its state")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path, cmd.Flags())
}

func newClient(cfg config.Config) *spacex.Client {
	return spacex.NewClient(spacex.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
}

// registerEventLogging logs every controller state change.
func registerEventLogging(sessions *dashboard.Registry) {
	sessions.RegisterEventListener(dashboard.OnLaunchesLoadedEvent, func(event dashboard.Event) error {
		ev := event.(dashboard.LaunchesLoadedEvent)
		log.Printf("Loaded %d recent launch(es)", ev.Count)
		return nil
	})
	sessions.RegisterEventListener(dashboard.OnLaunchesFailedEvent, func(event dashboard.Event) error {
		ev := event.(dashboard.LaunchesFailedEvent)
		log.Printf("Recent launches unavailable, showing empty list: %v", ev.Err)
		return nil
	})
	sessions.RegisterEventListener(dashboard.OnLookupSucceededEvent, func(event dashboard.Event) error {
		ev := event.(dashboard.LookupSucceededEvent)
		log.Printf("Lookup #%d found %s (%s)", ev.Generation, ev.Detail.ID, ev.Detail.Name)
		return nil
	})
	sessions.RegisterEventListener(dashboard.OnLookupFailedEvent, func(event dashboard.Event) error {
		ev := event.(dashboard.LookupFailedEvent)
		log.Printf("Lookup #%d for %q failed (%s): %v", ev.Generation, ev.ID, ev.Result, ev.Err)
		return nil
	})
	sessions.RegisterEventListener(dashboard.OnLookupDiscardedEvent, func(event dashboard.Event) error {
		ev := event.(dashboard.LookupDiscardedEvent)
		log.Printf("Discarded stale lookup #%d for %q (latest is #%d)", ev.Generation, ev.ID, ev.Latest)
		return nil
	})
}
