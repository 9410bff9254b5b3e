package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/core/history"
	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/db"
)

// DiffRunsStore defines the database operations needed to compare two runs
type DiffRunsStore interface {
	GetRun(ctx context.Context, runID string) (*db.AllocationRun, error)
	GetAllocations(ctx context.Context, runID string) ([]db.Allocation, error)
}

// DiffRuns loads two runs of the same month and produces per-player and
// per-session deltas, used to justify a weight change side by side.
func DiffRuns(ctx context.Context, database DiffRunsStore, runIDA, runIDB string) (*history.RunDiff, error) {
	recordA, err := loadRunRecord(ctx, database, runIDA)
	if err != nil {
		return nil, err
	}
	recordB, err := loadRunRecord(ctx, database, runIDB)
	if err != nil {
		return nil, err
	}

	return history.Diff(*recordA, *recordB)
}

func loadRunRecord(ctx context.Context, database DiffRunsStore, runID string) (*history.RunRecord, error) {
	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run %s: %w", runID, err)
	}
	if run == nil {
		return nil, fmt.Errorf("%w: run %q not found", model.ErrValidation, runID)
	}

	allocationRecords, err := database.GetAllocations(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations for run %s: %w", runID, err)
	}

	allocations := make([]model.Allocation, len(allocationRecords))
	for i, a := range allocationRecords {
		allocations[i] = a.ToModel()
	}

	return &history.RunRecord{Run: run.ToModel(), Allocations: allocations}, nil
}
