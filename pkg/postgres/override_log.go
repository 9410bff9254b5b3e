package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/db"
)

// GetOverrideLogs retrieves a run's audit entries ordered by time
func (d *DB) GetOverrideLogs(ctx context.Context, runID string) ([]db.OverrideLog, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, actor, at, kind, allocation_ids, prior_session_id, new_session_id, constraint_violation, reason
		FROM override_log
		WHERE run_id = $1
		ORDER BY at, id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query override logs: %w", err)
	}
	defer rows.Close()

	var entries []db.OverrideLog
	for rows.Next() {
		var e db.OverrideLog
		if err := rows.Scan(&e.ID, &e.RunID, &e.Actor, &e.At, &e.Kind, &e.AllocationIDs,
			&e.PriorSessionID, &e.NewSessionID, &e.ConstraintViolation, &e.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan override log: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating override logs: %w", err)
	}

	return entries, nil
}
