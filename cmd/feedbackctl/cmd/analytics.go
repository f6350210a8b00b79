package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print feedback statistics",
	Long:  `Compute totals, rating distribution, status counts and the 30-day daily trend from every stored record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := service.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats)
	},
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Recompute rating trends and cache the snapshot",
	Long: `Compare 7-day and 30-day rating averages, overall and per category, and overwrite
the cached trends snapshot. A significant drop is sent to the configured notifier.

Examples:
  feedbackctl trends            # Recompute and cache
  feedbackctl trends --cached   # Print the last cached snapshot only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cached, _ := cmd.Flags().GetBool("cached")
		if cached {
			trends, err := service.LatestTrends(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), trends)
		}

		trends, err := service.RefreshTrends(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), trends)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate the AI summary of the last month of feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, err := service.GenerateSummary(cmd.Context())
		if err != nil {
			return err
		}
		if outcome.Degraded() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", outcome.Err)
		}
		return printJSON(cmd.OutOrStdout(), outcome.Value)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(summaryCmd)

	trendsCmd.Flags().Bool("cached", false, "print the cached snapshot instead of recomputing")
}
