package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/core/services"
)

// RunAllocationCmd creates the runAllocation command
func RunAllocationCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runAllocation",
		Short: "Run the allocation engine for a month",
		Long:  "Run the allocation engine to assign players to the month's sessions from their availability, producing a new immutable run. Weights default to the config file and can be overridden per run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetString("month")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			params := model.Parameters{
				PreferenceWeight: app.Cfg.PreferenceWeight,
				BalancingWeight:  app.Cfg.BalancingWeight,
				TieBreakSeed:     app.Cfg.TieBreakSeed,
			}
			if cmd.Flags().Changed("preference-weight") {
				params.PreferenceWeight, _ = cmd.Flags().GetFloat64("preference-weight")
			}
			if cmd.Flags().Changed("balancing-weight") {
				params.BalancingWeight, _ = cmd.Flags().GetFloat64("balancing-weight")
			}
			if cmd.Flags().Changed("seed") {
				params.TieBreakSeed, _ = cmd.Flags().GetInt64("seed")
			}

			app.Logger.Debug("runAllocation command",
				zap.String("month", month),
				zap.Bool("dry_run", dryRun))

			result, err := services.RunAllocation(app.Ctx, app.Database, app.Cfg, month, params, app.Logger, dryRun)
			if err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}
			outcome := result.Outcome

			fmt.Printf("\n🎯 Allocation Results\n\n")
			fmt.Printf("Run ID:         %s\n", outcome.Run.ID)
			fmt.Printf("Month:          %s\n", outcome.Run.Month)
			fmt.Printf("Weights:        preference %.1f / balancing %.1f (seed %d)\n",
				params.PreferenceWeight, params.BalancingWeight, params.TieBreakSeed)
			fmt.Printf("Allocations:    %d\n", len(outcome.Allocations))
			fmt.Printf("Fill:           %.1f%% (%d filled, %d open slots)\n",
				outcome.Run.Summary.FillPercent,
				outcome.Run.Summary.Filled,
				outcome.Run.Summary.Unfilled)
			fmt.Printf("Avg confidence: %.1f\n", outcome.Run.Summary.AvgConfidence)
			if dryRun {
				fmt.Printf("Mode:           🧪 DRY RUN (not saved)\n")
			} else {
				fmt.Printf("Status:         ✅ SAVED (new run, prior runs untouched)\n")
			}
			fmt.Println()

			// Suggestions below the clean-match threshold come with reasons
			if len(outcome.Deviations) > 0 {
				fmt.Printf("🔍 Low-Confidence Suggestions (%d):\n", len(outcome.Deviations))
				for _, allocation := range outcome.Allocations {
					deviations, ok := outcome.Deviations[allocation.ID]
					if !ok {
						continue
					}
					fmt.Printf("  • %s → %s (confidence %.1f)\n",
						allocation.PlayerID, allocation.SessionID, allocation.Confidence)
					for _, d := range deviations {
						fmt.Printf("      - %s (-%.1f)\n", d.Rule, d.Magnitude)
					}
				}
				fmt.Println()
			}

			if len(outcome.Waitlist) > 0 {
				fmt.Printf("⏳ Waitlist (%d):\n", len(outcome.Waitlist))
				for _, entry := range outcome.Waitlist {
					fmt.Printf("  • %s wanted %s (%s)\n", entry.PlayerID, entry.SessionID, entry.Reason)
				}
				fmt.Println()
			}

			if len(outcome.Infeasible) > 0 {
				fmt.Printf("⚠️  Sessions Below Minimum Viable Fill (%d):\n", len(outcome.Infeasible))
				for _, session := range outcome.Infeasible {
					fmt.Printf("  • %s: %d assigned, %d needed (%s)\n",
						session.SessionID, session.Assigned, session.MinViableFill, session.Reason)
				}
				fmt.Println()
			}

			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to save the run.")
			}

			return nil
		},
	}

	cmd.Flags().String("month", "", "Target month in YYYY-MM format (required)")
	cmd.MarkFlagRequired("month")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().Float64("preference-weight", 0, "Override the configured preference weight")
	cmd.Flags().Float64("balancing-weight", 0, "Override the configured balancing weight")
	cmd.Flags().Int64("seed", 0, "Override the configured tie-break seed")

	return cmd
}
