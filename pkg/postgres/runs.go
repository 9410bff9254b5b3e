package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/baddersbot/pkg/db"
)

const runColumns = `id, month, preference_weight, balancing_weight, tie_break_seed,
	executed_at, filled, unfilled, unmet_demand, fill_percent, avg_confidence`

// GetRuns retrieves a month's allocation runs ordered by execution time
func (d *DB) GetRuns(ctx context.Context, month string) ([]db.AllocationRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+runColumns+`
		FROM allocation_run
		WHERE month = $1
		ORDER BY executed_at
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.AllocationRun
	for rows.Next() {
		var r db.AllocationRun
		if err := rows.Scan(&r.ID, &r.Month, &r.PreferenceWeight, &r.BalancingWeight, &r.TieBreakSeed,
			&r.ExecutedAt, &r.Filled, &r.Unfilled, &r.UnmetDemand, &r.FillPercent, &r.AvgConfidence); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun retrieves a single allocation run by id. Returns nil, nil when
// the run does not exist.
func (d *DB) GetRun(ctx context.Context, runID string) (*db.AllocationRun, error) {
	var r db.AllocationRun
	err := d.pool.QueryRow(ctx, `
		SELECT `+runColumns+`
		FROM allocation_run
		WHERE id = $1
	`, runID).Scan(&r.ID, &r.Month, &r.PreferenceWeight, &r.BalancingWeight, &r.TieBreakSeed,
		&r.ExecutedAt, &r.Filled, &r.Unfilled, &r.UnmetDemand, &r.FillPercent, &r.AvgConfidence)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return &r, nil
}

// InsertRun inserts a new allocation run record. Runs are append-only;
// there is deliberately no update statement for this table.
func (d *DB) InsertRun(ctx context.Context, run *db.AllocationRun) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO allocation_run (`+runColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, run.ID, run.Month, run.PreferenceWeight, run.BalancingWeight, run.TieBreakSeed,
		run.ExecutedAt, run.Filled, run.Unfilled, run.UnmetDemand, run.FillPercent, run.AvgConfidence)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}
