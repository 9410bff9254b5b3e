package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/pkg/core/services"
)

// ReportCmd creates the report command
func ReportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a month's allocation reports",
		Long: `Show read-only reporting views for a month's run: per-player schedules
with payment status, session fill rates, allocation balance, group-chat
announcement messages, and organiser alerts. Defaults to the month's most
recent run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetString("month")
			runID, _ := cmd.Flags().GetString("run")
			view, _ := cmd.Flags().GetString("view")

			app.Logger.Debug("report command",
				zap.String("month", month),
				zap.String("run_id", runID),
				zap.String("view", view))

			report, err := services.BuildMonthReport(app.Ctx, app.Database, month, runID)
			if err != nil {
				return fmt.Errorf("report failed: %w", err)
			}

			fmt.Printf("\n📊 Month Report for %s (run %s)\n\n", month, report.Run.ID)

			showAll := view == "all"

			if showAll || view == "dashboard" {
				fmt.Printf("Players:          %d\n", report.Metrics.TotalPlayers)
				fmt.Printf("Sessions:         %d\n", report.Metrics.SessionsThisMonth)
				fmt.Printf("Pending payments: %d\n", report.Metrics.PendingPayments)
				fmt.Printf("Unfilled:         %d\n", report.Metrics.UnfilledSessions)
				fmt.Println()

				if len(report.Alerts) > 0 {
					fmt.Printf("🚨 Alerts (%d):\n", len(report.Alerts))
					for _, alert := range report.Alerts {
						fmt.Printf("  • [%s] %s\n", alert.Category, alert.Message)
					}
					fmt.Println()
				}
			}

			if showAll || view == "fill" {
				fmt.Printf("📅 Session Fill (%d sessions, %d fully booked, %d open slots):\n",
					report.FillSummary.TotalSessions,
					report.FillSummary.FullyBooked,
					report.FillSummary.OpenSlots)
				for _, fill := range report.Fills {
					bar := "✅"
					if fill.Remaining > 0 {
						bar = "⚠️ "
					}
					fmt.Printf("  %s %s  grade %s  %d/%d (%d%%)\n",
						bar, fill.Session.Date, fill.Session.Grade,
						fill.Assigned, fill.Session.Capacity, fill.FillPercent)
				}
				fmt.Println()
			}

			if showAll || view == "balance" {
				fmt.Printf("⚖️  Balance (mean %.1f sessions/player):\n", report.Balance.Mean)
				if len(report.Balance.OverAllocated) == 0 && len(report.Balance.UnderAllocated) == 0 {
					fmt.Println("  All players within tolerance.")
				}
				for _, pb := range report.Balance.OverAllocated {
					fmt.Printf("  ▲ %s: %d sessions (%+.1f)\n", pb.Player.FullName(), pb.Count, pb.Delta)
				}
				for _, pb := range report.Balance.UnderAllocated {
					fmt.Printf("  ▼ %s: %d sessions (%+.1f)\n", pb.Player.FullName(), pb.Count, pb.Delta)
				}
				fmt.Println()
			}

			if showAll || view == "schedules" {
				fmt.Printf("👤 Player Schedules (%d):\n", len(report.Schedules))
				for _, schedule := range report.Schedules {
					fmt.Printf("  • %s [%s]\n", schedule.Player.FullName(), schedule.PaymentStatus)
					if len(schedule.Entries) == 0 {
						fmt.Println("      (no sessions)")
					}
					for _, entry := range schedule.Entries {
						fmt.Printf("      %s  %s  conf %.1f\n",
							entry.Session.Date, entry.Status, entry.Confidence)
					}
				}
				fmt.Println()
			}

			if view == "messages" {
				for i, message := range report.Messages {
					if i > 0 {
						fmt.Println(strings.Repeat("-", 40))
					}
					fmt.Println(message.Message)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("month", "", "Target month in YYYY-MM format (required)")
	cmd.MarkFlagRequired("month")
	cmd.Flags().String("run", "", "Run ID to report on (defaults to the month's latest run)")
	cmd.Flags().String("view", "all", "View to show: all, dashboard, fill, balance, schedules or messages")

	return cmd
}
