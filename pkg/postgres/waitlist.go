package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/baddersbot/pkg/db"
)

// GetWaitlist returns the waitlist recorded for a run.
func (d *DB) GetWaitlist(ctx context.Context, runID string) ([]db.WaitlistEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT run_id, player_id, session_id, reason
		FROM run_waitlist
		WHERE run_id = $1
		ORDER BY session_id, player_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query waitlist: %w", err)
	}
	defer rows.Close()

	var entries []db.WaitlistEntry
	for rows.Next() {
		var e db.WaitlistEntry
		if err := rows.Scan(&e.RunID, &e.PlayerID, &e.SessionID, &e.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan waitlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read waitlist entries: %w", err)
	}

	return entries, nil
}

// InsertWaitlist records a run's waitlist. Entries are written once with
// the run and never updated.
func (d *DB) InsertWaitlist(ctx context.Context, entries []db.WaitlistEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO run_waitlist (run_id, player_id, session_id, reason)
			VALUES ($1, $2, $3, $4)
		`, e.RunID, e.PlayerID, e.SessionID, e.Reason)
		if err != nil {
			return fmt.Errorf("failed to insert waitlist entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
