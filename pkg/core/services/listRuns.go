package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/core/history"
	"github.com/jakechorley/baddersbot/pkg/core/model"
	"github.com/jakechorley/baddersbot/pkg/db"
)

// ListRunsStore defines the database operations needed to list runs
type ListRunsStore interface {
	GetRuns(ctx context.Context, month string) ([]db.AllocationRun, error)
	GetAllocations(ctx context.Context, runID string) ([]db.Allocation, error)
}

// ListRuns returns every run recorded for a month as full run records,
// ordered oldest first
func ListRuns(ctx context.Context, database ListRunsStore, month string) ([]history.RunRecord, error) {
	runRecords, err := database.GetRuns(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	store := history.NewStore()
	for _, record := range runRecords {
		allocationRecords, err := database.GetAllocations(ctx, record.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch allocations for run %s: %w", record.ID, err)
		}
		allocations := make([]model.Allocation, len(allocationRecords))
		for i, a := range allocationRecords {
			allocations[i] = a.ToModel()
		}
		if err := store.Add(history.RunRecord{Run: record.ToModel(), Allocations: allocations}); err != nil {
			return nil, err
		}
	}

	return store.RunsForMonth(month), nil
}
