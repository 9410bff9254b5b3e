package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/pkg/core/services"
)

// MaterialiseMonthCmd creates the materialiseMonth command
func MaterialiseMonthCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materialiseMonth",
		Short: "Expand session templates into dated sessions for a month",
		Long:  "Expand each session template's recurrence rule into concrete dated sessions for the target month, skipping configured holiday dates and already-materialised sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetString("month")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("materialiseMonth command",
				zap.String("month", month),
				zap.Bool("dry_run", dryRun))

			result, err := services.MaterialiseMonth(app.Ctx, app.Database, month, app.Cfg.SkipDates, app.Logger, dryRun)
			if err != nil {
				return fmt.Errorf("materialisation failed: %w", err)
			}

			fmt.Printf("\n📅 Materialised Sessions for %s\n\n", result.Month)
			for _, session := range result.Created {
				fmt.Printf("  • %s  %s  %s-%s  grade %s  capacity %d\n",
					session.Date,
					session.Weekday().String()[:3],
					clock(session.StartMinute),
					clock(session.EndMinute),
					session.Grade,
					session.Capacity)
			}
			if len(result.Created) == 0 {
				fmt.Println("  (no new sessions)")
			}
			fmt.Println()

			fmt.Printf("Created:          %d\n", len(result.Created))
			fmt.Printf("Skipped (config): %d\n", result.Skipped)
			fmt.Printf("Already existed:  %d\n", result.Existing)
			fmt.Println()

			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to save sessions.")
			} else {
				fmt.Println("✅ Sessions have been saved to the database.")
			}

			return nil
		},
	}

	cmd.Flags().String("month", "", "Target month in YYYY-MM format (required)")
	cmd.MarkFlagRequired("month")
	cmd.Flags().Bool("dry-run", false, "Show what would be created without saving")

	return cmd
}

// clock formats minutes-since-midnight as HH:MM
func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
