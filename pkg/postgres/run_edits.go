package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/db"
)

// SaveRunEdits commits an editing session's allocation updates together
// with their audit entries in one transaction. Partial saves are
// impossible: a failure anywhere rolls back both, so a manual allocation
// can never land without its override log entry.
func (d *DB) SaveRunEdits(ctx context.Context, allocations []db.Allocation, entries []db.OverrideLog) error {
	if len(allocations) == 0 && len(entries) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range allocations {
		tag, err := tx.Exec(ctx, `
			UPDATE allocation
			SET session_id = $2, player_id = $3, source = $4, confidence = $5, status = $6, overfull = $7
			WHERE id = $1
		`, a.ID, a.SessionID, a.PlayerID, a.Source, a.Confidence, a.Status, a.Overfull)
		if err != nil {
			return fmt.Errorf("failed to update allocation: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("allocation %s not found", a.ID)
		}
	}

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO override_log (id, run_id, actor, at, kind, allocation_ids, prior_session_id, new_session_id, constraint_violation, reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, e.ID, e.RunID, e.Actor, e.At, e.Kind, e.AllocationIDs, e.PriorSessionID, e.NewSessionID, e.ConstraintViolation, e.Reason)
		if err != nil {
			return fmt.Errorf("failed to insert override log: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
