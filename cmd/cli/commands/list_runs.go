package commands

import (
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/core/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ListRunsCmd creates the listRuns command
func ListRunsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listRuns",
		Short: "List a month's allocation runs",
		Long:  "List every allocation run recorded for a month, oldest first, with its parameters and summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetString("month")

			app.Logger.Debug("listRuns command", zap.String("month", month))

			records, err := services.ListRuns(app.Ctx, app.Database, month)
			if err != nil {
				return err
			}

			fmt.Printf("\n📋 Allocation Runs for %s (%d)\n\n", month, len(records))
			if len(records) == 0 {
				fmt.Println("  (no runs recorded)")
				fmt.Println()
				return nil
			}

			for _, record := range records {
				run := record.Run
				fmt.Printf("  • %s\n", run.ID)
				fmt.Printf("      Executed:    %s\n", run.ExecutedAt.Format("2006-01-02 15:04:05"))
				fmt.Printf("      Weights:     preference %.1f / balancing %.1f (seed %d)\n",
					run.Parameters.PreferenceWeight, run.Parameters.BalancingWeight, run.Parameters.TieBreakSeed)
				fmt.Printf("      Fill:        %.1f%% (%d filled, %d open, %d unmet)\n",
					run.Summary.FillPercent, run.Summary.Filled, run.Summary.Unfilled, run.Summary.UnmetDemand)
				fmt.Printf("      Confidence:  %.1f avg\n", run.Summary.AvgConfidence)
				fmt.Printf("      Allocations: %d\n", len(record.Allocations))
			}
			fmt.Println()

			fmt.Println("💡 Compare two runs with: diffRuns --run-a <id> --run-b <id>")

			return nil
		},
	}

	cmd.Flags().String("month", "", "Target month in YYYY-MM format (required)")
	cmd.MarkFlagRequired("month")

	return cmd
}
