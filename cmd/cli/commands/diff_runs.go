package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/pkg/core/services"
)

// DiffRunsCmd creates the diffRuns command
func DiffRunsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diffRuns",
		Short: "Compare two allocation runs of the same month",
		Long:  "Show which players and sessions changed between two runs, with per-side average confidence, so a weight change can be judged before confirming",
		RunE: func(cmd *cobra.Command, args []string) error {
			runA, _ := cmd.Flags().GetString("run-a")
			runB, _ := cmd.Flags().GetString("run-b")

			app.Logger.Debug("diffRuns command",
				zap.String("run_a", runA),
				zap.String("run_b", runB))

			diff, err := services.DiffRuns(app.Ctx, app.Database, runA, runB)
			if err != nil {
				return fmt.Errorf("diff failed: %w", err)
			}

			fmt.Printf("\n🔀 Run Comparison (%s)\n\n", diff.RunA.Month)
			fmt.Printf("  A: %s  (pref %.1f / bal %.1f, avg confidence %.1f)\n",
				diff.RunA.ID, diff.RunA.Parameters.PreferenceWeight,
				diff.RunA.Parameters.BalancingWeight, diff.RunA.Summary.AvgConfidence)
			fmt.Printf("  B: %s  (pref %.1f / bal %.1f, avg confidence %.1f)\n",
				diff.RunB.ID, diff.RunB.Parameters.PreferenceWeight,
				diff.RunB.Parameters.BalancingWeight, diff.RunB.Summary.AvgConfidence)
			fmt.Println()

			if len(diff.Players) == 0 && len(diff.Sessions) == 0 {
				fmt.Println("✅ The runs produced identical allocations.")
				return nil
			}

			if len(diff.Players) > 0 {
				fmt.Printf("👤 Changed Players (%d):\n", len(diff.Players))
				for _, delta := range diff.Players {
					fmt.Printf("  • %s (confidence %.1f → %.1f)\n",
						delta.PlayerID, delta.AvgConfidenceA, delta.AvgConfidenceB)
					if len(delta.AddedSessions) > 0 {
						fmt.Printf("      + %s\n", strings.Join(delta.AddedSessions, ", "))
					}
					if len(delta.RemovedSessions) > 0 {
						fmt.Printf("      - %s\n", strings.Join(delta.RemovedSessions, ", "))
					}
				}
				fmt.Println()
			}

			if len(diff.Sessions) > 0 {
				fmt.Printf("🏸 Changed Sessions (%d):\n", len(diff.Sessions))
				for _, delta := range diff.Sessions {
					fmt.Printf("  • %s (confidence %.1f → %.1f)\n",
						delta.SessionID, delta.AvgConfidenceA, delta.AvgConfidenceB)
					if len(delta.AddedPlayers) > 0 {
						fmt.Printf("      + %s\n", strings.Join(delta.AddedPlayers, ", "))
					}
					if len(delta.RemovedPlayers) > 0 {
						fmt.Printf("      - %s\n", strings.Join(delta.RemovedPlayers, ", "))
					}
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("run-a", "", "Baseline run ID (required)")
	cmd.MarkFlagRequired("run-a")
	cmd.Flags().String("run-b", "", "Comparison run ID (required)")
	cmd.MarkFlagRequired("run-b")

	return cmd
}
