package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/core/reporting"
	"github.com/jakechorley/baddersbot/pkg/db"
)

// balanceTolerance is how far from the mean allocation count a player can
// sit before the balance report flags them
const balanceTolerance = 1.0

// ReportStore defines the database operations needed for month reporting
type ReportStore interface {
	GetPlayers(ctx context.Context) ([]db.Player, error)
	GetMonthlySessions(ctx context.Context, month string) ([]db.MonthlySession, error)
	GetRuns(ctx context.Context, month string) ([]db.AllocationRun, error)
	GetAllocations(ctx context.Context, runID string) ([]db.Allocation, error)
	GetWaitlist(ctx context.Context, runID string) ([]db.WaitlistEntry, error)
	GetPaymentStatuses(ctx context.Context, month string) ([]db.PaymentStatus, error)
}

// MonthReport bundles every read-only reporting view for one run
type MonthReport struct {
	Run         model.AllocationRun
	Schedules   []reporting.PlayerSchedule
	Fills       []reporting.SessionFill
	FillSummary reporting.FillSummary
	Balance     reporting.BalanceReport
	Messages    []reporting.SessionMessage
	Metrics     reporting.Metrics
	Alerts      []reporting.Alert
}

// BuildMonthReport assembles the reporting views for a month. With an
// empty runID the month's most recent run is used; reporting never
// writes anything.
func BuildMonthReport(ctx context.Context, database ReportStore, month, runID string) (*MonthReport, error) {
	runs, err := database.GetRuns(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: no allocation runs recorded for %s", model.ErrValidation, month)
	}

	var run *db.AllocationRun
	if runID == "" {
		run = &runs[len(runs)-1]
	} else {
		for i := range runs {
			if runs[i].ID == runID {
				run = &runs[i]
				break
			}
		}
		if run == nil {
			return nil, fmt.Errorf("%w: run %q not found in month %s", model.ErrValidation, runID, month)
		}
	}

	playerRecords, err := database.GetPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}
	sessionRecords, err := database.GetMonthlySessions(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly sessions: %w", err)
	}
	allocationRecords, err := database.GetAllocations(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}
	waitlistRecords, err := database.GetWaitlist(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch waitlist: %w", err)
	}
	paymentRecords, err := database.GetPaymentStatuses(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment statuses: %w", err)
	}

	players := make([]model.Player, len(playerRecords))
	for i, p := range playerRecords {
		players[i] = p.ToModel()
	}
	sessions := make([]model.MonthlySession, len(sessionRecords))
	for i, s := range sessionRecords {
		sessions[i] = s.ToModel()
	}
	allocations := make([]model.Allocation, len(allocationRecords))
	for i, a := range allocationRecords {
		allocations[i] = a.ToModel()
	}
	waitlist := make([]model.WaitlistEntry, len(waitlistRecords))
	for i, w := range waitlistRecords {
		waitlist[i] = w.ToModel()
	}
	payments := make([]model.PaymentStatus, len(paymentRecords))
	for i, p := range paymentRecords {
		payments[i] = p.ToModel()
	}

	report := &MonthReport{Run: run.ToModel()}
	report.Schedules = reporting.BuildPlayerSchedules(players, sessions, allocations, payments)
	report.Fills, report.FillSummary = reporting.BuildFillReport(sessions, allocations)
	report.Balance = reporting.BuildBalanceReport(players, allocations, balanceTolerance)
	report.Messages = reporting.BuildSessionMessages(sessions, allocations, players, waitlist)
	report.Metrics, report.Alerts = reporting.BuildDashboard(players, sessions, allocations, payments)

	return report, nil
}
