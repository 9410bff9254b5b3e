package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/baddersbot/internal/config"
	"github.com/jakechorley/baddersbot/pkg/core/allocator"
	"github.com/jakechorley/baddersbot/pkg/core/allocator/rules"
	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/db"
)

// RunAllocationStore defines the database operations needed for one
// allocation run
type RunAllocationStore interface {
	GetPlayers(ctx context.Context) ([]db.Player, error)
	GetMonthlySessions(ctx context.Context, month string) ([]db.MonthlySession, error)
	GetAvailability(ctx context.Context, month string) ([]db.Availability, error)
	InsertRun(ctx context.Context, run *db.AllocationRun) error
	InsertAllocations(ctx context.Context, allocations []db.Allocation) error
	InsertWaitlist(ctx context.Context, entries []db.WaitlistEntry) error
}

// RunAllocationResult contains the allocation results
type RunAllocationResult struct {
	Outcome *allocator.Outcome
	Saved   bool
}

// RunAllocation loads the month's inputs, runs the engine under the
// configured time budget, and persists the new run and its suggested
// allocations. A rerun always produces a fresh run record; prior runs
// are never touched. If dryRun is true nothing is saved.
func RunAllocation(
	ctx context.Context,
	database RunAllocationStore,
	cfg *config.Config,
	month string,
	params model.Parameters,
	logger *zap.Logger,
	dryRun bool,
) (*RunAllocationResult, error) {
	logger.Debug("Starting allocation run",
		zap.String("month", month),
		zap.Float64("preference_weight", params.PreferenceWeight),
		zap.Float64("balancing_weight", params.BalancingWeight),
		zap.Int64("seed", params.TieBreakSeed),
		zap.Bool("dry_run", dryRun))

	playerRecords, err := database.GetPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}
	sessionRecords, err := database.GetMonthlySessions(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly sessions: %w", err)
	}
	availabilityRecords, err := database.GetAvailability(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	players := make([]model.Player, len(playerRecords))
	for i, p := range playerRecords {
		players[i] = p.ToModel()
	}
	sessions := make([]model.MonthlySession, len(sessionRecords))
	for i, s := range sessionRecords {
		sessions[i] = s.ToModel()
	}
	availability := make([]model.Availability, len(availabilityRecords))
	for i, a := range availabilityRecords {
		availability[i] = a.ToModel()
	}

	runCtx := ctx
	if cfg.EngineTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.EngineTimeoutSeconds)*time.Second)
		defer cancel()
	}

	outcome, err := allocator.Run(runCtx, allocator.Config{
		Month:               month,
		Players:             players,
		Sessions:            sessions,
		Availability:        availability,
		Parameters:          params,
		Rules:               rules.Default(params),
		CleanMatchThreshold: cfg.CleanMatchThreshold,
		MinViableFill:       cfg.MinViableFill,
	})
	if err != nil {
		return nil, fmt.Errorf("allocation engine failed: %w", err)
	}

	logger.Info("Engine completed",
		zap.String("run_id", outcome.Run.ID),
		zap.Int("allocations", len(outcome.Allocations)),
		zap.Int("waitlisted", len(outcome.Waitlist)),
		zap.Int("infeasible_sessions", len(outcome.Infeasible)),
		zap.Float64("avg_confidence", outcome.Run.Summary.AvgConfidence))

	if dryRun {
		logger.Info("Dry run: allocations not saved")
		return &RunAllocationResult{Outcome: outcome}, nil
	}

	runRecord := db.FromModelRun(outcome.Run)
	if err := database.InsertRun(ctx, &runRecord); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	allocationRecords := make([]db.Allocation, len(outcome.Allocations))
	for i, a := range outcome.Allocations {
		allocationRecords[i] = db.FromModelAllocation(a)
	}
	if err := database.InsertAllocations(ctx, allocationRecords); err != nil {
		return nil, fmt.Errorf("failed to insert allocations: %w", err)
	}

	waitlistRecords := make([]db.WaitlistEntry, len(outcome.Waitlist))
	for i, e := range outcome.Waitlist {
		waitlistRecords[i] = db.FromModelWaitlist(outcome.Run.ID, e)
	}
	if err := database.InsertWaitlist(ctx, waitlistRecords); err != nil {
		return nil, fmt.Errorf("failed to insert waitlist: %w", err)
	}

	return &RunAllocationResult{Outcome: outcome, Saved: true}, nil
}
