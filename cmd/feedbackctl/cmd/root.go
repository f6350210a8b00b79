// Package cmd contains the feedbackctl commands
package cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"feedback-dashboard/internal/analytics"
	"feedback-dashboard/internal/app"
	"feedback-dashboard/internal/config"
	"feedback-dashboard/internal/logger"
)

var (
	verbose bool
	version = "dev"

	service *analytics.Service
	cleanup func()

	// openService builds the service from the environment. Tests replace it.
	openService = func(ctx context.Context) (*analytics.Service, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger.Setup(level, cfg.LogFormat, cfg.LogFile)

		a, err := app.New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return a.Service, func() { _ = a.Close(context.Background()) }, nil
	}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "feedbackctl",
	Short: "Guest feedback dashboard operations",
	Long: `feedbackctl runs the dashboard's analytics jobs against the configured store.

It reads the same environment (.env) as the API server.

Example usage:
  feedbackctl stats            # Print feedback statistics
  feedbackctl trends           # Recompute and cache rating trends
  feedbackctl trends --cached  # Print the cached trends snapshot
  feedbackctl summary          # Generate and cache the AI summary`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		svc, closeFn, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		service, cleanup = svc, closeFn
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The service is closed whether or not the command succeeded.
func Execute() error {
	defer closeService()
	return rootCmd.ExecuteContext(context.Background())
}

func closeService() {
	if cleanup != nil {
		cleanup()
	}
	service, cleanup = nil, nil
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
